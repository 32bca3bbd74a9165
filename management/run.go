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

package management

import (
	"context"
	"errors"
	"net/http"
	"time"

	"taller/internal/config"
	"taller/internal/log"
	"taller/management/database"
	"taller/management/jobs"
	"taller/management/server"
	"taller/management/service"
	"taller/pkg/redis"

	"golang.org/x/sync/errgroup"
)

// Start runs the server until ctx is cancelled.
func Start(ctx context.Context, cfg *config.Config) error {
	logger := log.GetLogger("management")

	db, err := database.Open(&cfg.Database)
	if err != nil {
		return err
	}
	if err := database.Migrate(db); err != nil {
		return err
	}

	var cache service.PlateCache
	if cfg.Redis.Addr != "" {
		client, err := redis.NewClient(ctx, &redis.ClientConfig{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
			MaxWait:  cfg.Redis.ConnectWait,
		})
		if err != nil {
			return err
		}
		defer client.Close()
		cache = service.NewRedisPlateCache(client, cfg.Redis.TTL)
		logger.Info("plate cache enabled", "addr", cfg.Redis.Addr, "ttl", cfg.Redis.TTL)
	}

	// 初始化服务实例
	hs, err := server.NewServer(&server.ServerConfig{
		Cfg:   cfg,
		DB:    db,
		Cache: cache,
	})
	if err != nil {
		return err
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return hs.Start(ctx)
	})

	g.Go(func() error {
		return jobs.NewStatsJob(hs.Orders(), hs.Registry(), cfg.Jobs.StatsSchedule).Run(ctx)
	})

	g.Go(func() error {
		srv := &http.Server{
			Addr:              cfg.App.Listen,
			Handler:           hs,
			ReadHeaderTimeout: 10 * time.Second,
		}

		go func() {
			<-ctx.Done()
			logger.Info("shutting down http server")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = srv.Shutdown(shutdownCtx)
		}()

		logger.Info("http server listening", "addr", cfg.App.Listen)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		logger.Error("server exited with error", err)
		return err
	}
	return nil
}

// Migrate creates or updates the schema and exits.
func Migrate(cfg *config.Config) error {
	db, err := database.Open(&cfg.Database)
	if err != nil {
		return err
	}
	if err := database.Migrate(db); err != nil {
		return err
	}
	log.GetLogger("management").Info("schema migrated", "driver", cfg.Database.Driver)
	return nil
}
