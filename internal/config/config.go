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

package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"taller/internal/log"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var Conf *Config

// flagKeys maps command line flags onto config keys.
var flagKeys = map[string]string{
	"listen":       "app.listen",
	"log-level":    "app.level",
	"mode":         "app.mode",
	"db-driver":    "database.driver",
	"db-dsn":       "database.dsn",
	"redis-addr":   "redis.addr",
	"metrics":      "metrics.enabled",
	"metrics-path": "metrics.path",
}

type ConfigManager struct {
	v          *viper.Viper
	fileLoaded bool
}

// NewConfigManager return ConfigManager instance.
func NewConfigManager() *ConfigManager {
	return &ConfigManager{v: viper.New()}
}

// Viper return viper instance.
func (cm *ConfigManager) Viper() *viper.Viper {
	return cm.v
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.listen", ":8080")
	v.SetDefault("app.name", "taller")
	v.SetDefault("app.level", "info")
	v.SetDefault("app.mode", "release")
	v.SetDefault("database.driver", "sqlite")
	v.SetDefault("database.dsn", "taller.db")
	v.SetDefault("database.log_level", "warn")
	v.SetDefault("redis.ttl", "5m")
	v.SetDefault("redis.connect_wait", "30s")
	v.SetDefault("metrics.enabled", true)
	v.SetDefault("metrics.path", "/metrics")
	v.SetDefault("jobs.stats_schedule", "@every 1m")
}

// LoadConf resolves the configuration from defaults, the config file,
// TALLER_* environment variables and the flags of cmd, in that order of
// increasing precedence.
func (cm *ConfigManager) LoadConf(cmd *cobra.Command) (*Config, error) {
	v := cm.v
	v.SetConfigType("yaml")
	setDefaults(v)

	configName := GetConfigFilePath(cmd)
	if configName != "" {
		v.SetConfigFile(configName)
		if err := v.ReadInConfig(); err != nil {
			if !errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("read config %s: %w", configName, err)
			}
		} else {
			cm.fileLoaded = true
		}
	}

	v.SetEnvPrefix("TALLER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if cmd != nil {
		for name, key := range flagKeys {
			f := cmd.Flags().Lookup(name)
			if f == nil {
				continue
			}
			if err := v.BindPFlag(key, f); err != nil {
				return nil, err
			}
		}
	}

	var conf Config
	if err := v.Unmarshal(&conf); err != nil {
		return nil, err
	}
	Conf = &conf
	return &conf, nil
}

// GetConfigFilePath get config filepath.
func GetConfigFilePath(cmd *cobra.Command) string {
	// 1. explicit flag
	if cmd != nil {
		if p, err := cmd.Flags().GetString("config"); err == nil && p != "" {
			return p
		}
	}
	// 2. env
	if path := os.Getenv("TALLER_CONFIG"); path != "" {
		return path
	}
	// 3. working directory
	if _, err := os.Stat("taller.yaml"); err == nil {
		return "taller.yaml"
	}
	return ""
}

// Save writes the effective configuration to path.
func (cm *ConfigManager) Save(path string) error {
	return cm.v.WriteConfigAs(path)
}

// Watch re-reads the config file whenever it changes and hands the new
// config to fn. It is a no-op when no config file was loaded. fn runs on
// the watcher goroutine and is the only consumer of a reload; Conf keeps
// the value resolved at startup.
func (cm *ConfigManager) Watch(fn func(*Config)) bool {
	if !cm.fileLoaded {
		return false
	}
	cm.v.OnConfigChange(func(e fsnotify.Event) {
		cm.reload(e, fn)
	})
	cm.v.WatchConfig()
	return true
}

func (cm *ConfigManager) reload(e fsnotify.Event, fn func(*Config)) {
	if !e.Has(fsnotify.Write) && !e.Has(fsnotify.Create) {
		return
	}
	var conf Config
	if err := cm.v.Unmarshal(&conf); err != nil {
		log.GetLogger("config").Error("reload config failed, keeping previous", err, "file", e.Name)
		return
	}
	fn(&conf)
}
