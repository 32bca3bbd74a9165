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
	"fmt"
	"os"

	"taller/internal/config"
	"taller/internal/log"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "taller",
	Short: "taller runs the scooter workshop web application",
	Long: `taller serves the workshop storefront, the repair status lookup,
read-only budgets and the back-office panel.`,
	SilenceUsage: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringP("config", "c", "", "config file (default ./taller.yaml)")
	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(migrateCmd())
	rootCmd.AddCommand(versionCmd())
}

// loadConfig resolves the config for cmd and applies the log level and
// gin mode it carries.
func loadConfig(cmd *cobra.Command) (*config.ConfigManager, *config.Config, error) {
	cm := config.NewConfigManager()
	cfg, err := cm.LoadConf(cmd)
	if err != nil {
		return nil, nil, err
	}
	log.SetLevel(cfg.App.Level)
	if cfg.App.Mode != "" {
		gin.SetMode(cfg.App.Mode)
	}
	return cm, cfg, nil
}
