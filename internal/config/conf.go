package config

import "time"

type Config struct {
	App      AppConfig      `mapstructure:"app"`
	Database DatabaseConfig `mapstructure:"database"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Metrics  MetricsConfig  `mapstructure:"metrics"`
	Jobs     JobsConfig     `mapstructure:"jobs"`
}

type AppConfig struct {
	Listen string `mapstructure:"listen"`
	Name   string `mapstructure:"name"`
	Level  string `mapstructure:"level"`
	// Mode is the gin mode: debug, release or test.
	Mode string `mapstructure:"mode"`
}

type DatabaseConfig struct {
	Driver   string `mapstructure:"driver"`
	DSN      string `mapstructure:"dsn"`
	LogLevel string `mapstructure:"log_level"`
}

// RedisConfig enables the plate lookup cache when Addr is set.
type RedisConfig struct {
	Addr     string        `mapstructure:"addr"`
	Password string        `mapstructure:"password"`
	DB       int           `mapstructure:"db"`
	TTL      time.Duration `mapstructure:"ttl"`
	// ConnectWait is how long startup keeps retrying an unreachable server.
	ConnectWait time.Duration `mapstructure:"connect_wait"`
}

type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path"`
}

// JobsConfig holds cron schedules. An empty schedule disables the job.
type JobsConfig struct {
	StatsSchedule string `mapstructure:"stats_schedule"`
}
