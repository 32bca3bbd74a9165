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

package command

import (
	"os"
	"os/signal"
	"syscall"

	"taller/internal/config"
	"taller/internal/log"
	"taller/management"

	"github.com/spf13/cobra"
)

func serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "start the http server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cm, cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			defer log.Sync()

			// only the log level is applied without a restart
			cm.Watch(func(c *config.Config) {
				log.SetLevel(c.App.Level)
				log.GetLogger("config").Info("config reloaded", "level", log.Level())
			})

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return management.Start(ctx, cfg)
		},
	}

	fs := cmd.Flags()
	fs.StringP("listen", "l", "", "listen address, e.g. :8080")
	fs.String("log-level", "", "log level (debug, info, warn, error, silent)")
	fs.String("mode", "", "gin mode (debug, release, test)")
	fs.String("db-driver", "", "database driver (sqlite, mysql)")
	fs.String("db-dsn", "", "database dsn")
	fs.String("redis-addr", "", "redis address, enables the plate lookup cache")
	fs.Bool("metrics", true, "expose prometheus metrics")
	fs.String("metrics-path", "", "metrics path")
	return cmd
}
