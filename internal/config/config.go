// Package config loads process configuration from flags, environment and an
// optional config file, in that order of precedence.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/rogerio-castellano/expiry-tracker/internal/models"
)

// Config is the startup configuration. Runtime-mutable settings (alert
// threshold and friends) start from Defaults and live in the settings store
// afterwards.
type Config struct {
	Addr        string
	StoreDriver string // memory | sqlite | postgres
	SQLitePath  string
	DatabaseURL string
	RedisAddr   string
	BackupDir   string
	S3Bucket    string
	S3Region    string
	S3Endpoint  string
	Defaults    models.Settings
}

// Load parses flags and environment. Environment variables use the EXPIRY_
// prefix with underscores, e.g. EXPIRY_STORE_DRIVER=sqlite.
func Load(args []string) (Config, error) {
	v := viper.New()
	v.SetDefault("addr", ":8080")
	v.SetDefault("store.driver", "memory")
	v.SetDefault("store.sqlite_path", "./data/products.db")
	v.SetDefault("redis.addr", "")
	v.SetDefault("backup.dir", "./backups")
	v.SetDefault("backup.s3.bucket", "")
	v.SetDefault("backup.s3.region", "")
	v.SetDefault("backup.s3.endpoint", "")
	v.SetDefault("defaults.alert_threshold_days", 3)
	v.SetDefault("defaults.category", "Other")
	v.SetDefault("defaults.currency", "USD")

	v.SetEnvPrefix("EXPIRY")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	flags := pflag.NewFlagSet("expiry-tracker", pflag.ContinueOnError)
	configPath := flags.String("config", "", "path to config file")
	flags.String("addr", v.GetString("addr"), "listen address")
	flags.String("store", v.GetString("store.driver"), "store driver (memory|sqlite|postgres)")
	if err := flags.Parse(args); err != nil {
		return Config{}, err
	}
	if err := v.BindPFlag("addr", flags.Lookup("addr")); err != nil {
		return Config{}, err
	}
	if err := v.BindPFlag("store.driver", flags.Lookup("store")); err != nil {
		return Config{}, err
	}

	if *configPath != "" {
		v.SetConfigFile(*configPath)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("failed to read config file: %w", err)
		}
	} else {
		v.SetConfigName("expiry-tracker")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return Config{}, fmt.Errorf("failed to read config file: %w", err)
			}
		}
	}

	defaults := models.DefaultSettings()
	defaults.AlertThresholdDays = v.GetInt("defaults.alert_threshold_days")
	defaults.DefaultCategory = v.GetString("defaults.category")
	defaults.Currency = v.GetString("defaults.currency")
	if defaults.AlertThresholdDays < 0 {
		return Config{}, fmt.Errorf("alert threshold must be zero or positive, got %d", defaults.AlertThresholdDays)
	}

	cfg := Config{
		Addr:        v.GetString("addr"),
		StoreDriver: v.GetString("store.driver"),
		SQLitePath:  v.GetString("store.sqlite_path"),
		DatabaseURL: v.GetString("database_url"),
		RedisAddr:   v.GetString("redis.addr"),
		BackupDir:   v.GetString("backup.dir"),
		S3Bucket:    v.GetString("backup.s3.bucket"),
		S3Region:    v.GetString("backup.s3.region"),
		S3Endpoint:  v.GetString("backup.s3.endpoint"),
		Defaults:    defaults,
	}

	switch cfg.StoreDriver {
	case "memory", "sqlite", "postgres":
	default:
		return Config{}, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
	}
	return cfg, nil
}
