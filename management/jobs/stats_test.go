package jobs

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

type fakeCounter struct {
	calls  atomic.Int32
	counts map[string]int64
	err    error
}

func (f *fakeCounter) CountByStatus(context.Context) (map[string]int64, error) {
	f.calls.Add(1)
	return f.counts, f.err
}

func TestStatsJob_Refresh(t *testing.T) {
	counter := &fakeCounter{counts: map[string]int64{"received": 4, "ready": 1, "delivered": 0}}
	j := NewStatsJob(counter, prometheus.NewRegistry(), "@every 1m")

	if err := j.Refresh(context.Background()); err != nil {
		t.Fatal(err)
	}
	if got := testutil.ToFloat64(j.gauge.WithLabelValues("received")); got != 4 {
		t.Fatalf("received = %v", got)
	}
	if got := testutil.ToFloat64(j.gauge.WithLabelValues("ready")); got != 1 {
		t.Fatalf("ready = %v", got)
	}

	counter.err = errors.New("db down")
	if err := j.Refresh(context.Background()); err == nil {
		t.Fatal("expected refresh error")
	}
}

func TestStatsJob_InvalidSchedule(t *testing.T) {
	j := NewStatsJob(&fakeCounter{}, prometheus.NewRegistry(), "every now and then")
	if err := j.Run(context.Background()); err == nil {
		t.Fatal("expected schedule error")
	}
}

func TestStatsJob_EmptyScheduleDisabled(t *testing.T) {
	counter := &fakeCounter{}
	j := NewStatsJob(counter, prometheus.NewRegistry(), "")
	if err := j.Run(context.Background()); err != nil {
		t.Fatal(err)
	}
	if counter.calls.Load() != 0 {
		t.Fatal("disabled job counted orders")
	}
}

func TestStatsJob_RunRefreshesThenStops(t *testing.T) {
	counter := &fakeCounter{counts: map[string]int64{"in_progress": 2}}
	j := NewStatsJob(counter, prometheus.NewRegistry(), "@every 1h")

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- j.Run(ctx) }()

	for i := 0; testutil.ToFloat64(j.gauge.WithLabelValues("in_progress")) != 2; i++ {
		if i == 500 {
			t.Fatal("no refresh on start")
		}
		time.Sleep(10 * time.Millisecond)
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatal(err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("job did not stop")
	}
}
