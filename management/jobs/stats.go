// Copyright 2026 The Taller Authors, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package jobs

import (
	"context"
	"fmt"

	"taller/internal/log"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/robfig/cron/v3"
)

type OrderCounter interface {
	CountByStatus(ctx context.Context) (map[string]int64, error)
}

// StatsJob publishes the number of orders per status as a gauge on a
// cron schedule.
type StatsJob struct {
	log      *log.Logger
	orders   OrderCounter
	schedule string
	gauge    *prometheus.GaugeVec
	cron     *cron.Cron
}

func NewStatsJob(orders OrderCounter, reg prometheus.Registerer, schedule string) *StatsJob {
	j := &StatsJob{
		log:      log.GetLogger("stats-job"),
		orders:   orders,
		schedule: schedule,
		gauge: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "taller_orders",
			Help: "Repair orders by status",
		}, []string{"status"}),
		cron: cron.New(),
	}
	reg.MustRegister(j.gauge)
	return j
}

// Refresh counts the orders once and updates the gauge.
func (j *StatsJob) Refresh(ctx context.Context) error {
	counts, err := j.orders.CountByStatus(ctx)
	if err != nil {
		return fmt.Errorf("count orders: %w", err)
	}
	for status, n := range counts {
		j.gauge.WithLabelValues(status).Set(float64(n))
	}
	return nil
}

// Run refreshes immediately, then on every tick of the schedule until ctx
// is done. An empty schedule disables the job.
func (j *StatsJob) Run(ctx context.Context) error {
	if j.schedule == "" {
		j.log.Info("stats schedule not configured, skipping")
		return nil
	}
	if _, err := cron.ParseStandard(j.schedule); err != nil {
		return fmt.Errorf("invalid stats schedule %q: %w", j.schedule, err)
	}

	_, err := j.cron.AddFunc(j.schedule, func() {
		if err := j.Refresh(ctx); err != nil {
			j.log.Error("refresh order stats failed", err)
		}
	})
	if err != nil {
		return err
	}

	if err := j.Refresh(ctx); err != nil {
		j.log.Error("refresh order stats failed", err)
	}

	j.cron.Start()
	j.log.Info("stats job started", "schedule", j.schedule)

	<-ctx.Done()
	<-j.cron.Stop().Done()
	return nil
}
