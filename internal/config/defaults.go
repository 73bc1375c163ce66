package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

// Default values for every key. Each key must have a default so that
// environment overrides are picked up by viper's Unmarshal.
const (
	DefaultAddr               = "127.0.0.1:8080"
	DefaultShutdownTimeout    = 10 * time.Second
	DefaultReadHeaderTimeout  = 5 * time.Second
	DefaultTokenTTL           = 24 * time.Hour
	DefaultIssuer             = "gtd"
	DefaultLogLevel           = "info"
	DefaultLogFormat          = "text"
	DefaultCheckpointSchedule = "@every 1h"
	DefaultOptimizeSchedule   = "0 4 * * *"
)

// Default returns the configuration used when no file or env var is set
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:              DefaultAddr,
			ShutdownTimeout:   DefaultShutdownTimeout,
			ReadHeaderTimeout: DefaultReadHeaderTimeout,
		},
		Database: DatabaseConfig{Path: DefaultDatabasePath()},
		Auth: AuthConfig{
			TokenTTL: DefaultTokenTTL,
			Issuer:   DefaultIssuer,
		},
		Log: LogConfig{
			Level:  DefaultLogLevel,
			Format: DefaultLogFormat,
		},
		Maintenance: MaintenanceConfig{
			CheckpointSchedule: DefaultCheckpointSchedule,
			OptimizeSchedule:   DefaultOptimizeSchedule,
		},
	}
}

// DefaultDatabasePath is ~/.gtd/gtd.db, or gtd.db in the working directory
// when the home directory is unknown
func DefaultDatabasePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "gtd.db"
	}
	return filepath.Join(home, ".gtd", "gtd.db")
}

func setDefaults(v *viper.Viper) {
	d := Default()

	v.SetDefault("server.addr", d.Server.Addr)
	v.SetDefault("server.shutdown_timeout", d.Server.ShutdownTimeout)
	v.SetDefault("server.read_header_timeout", d.Server.ReadHeaderTimeout)

	v.SetDefault("database.path", d.Database.Path)

	v.SetDefault("auth.jwt_secret", d.Auth.JWTSecret)
	v.SetDefault("auth.token_ttl", d.Auth.TokenTTL)
	v.SetDefault("auth.issuer", d.Auth.Issuer)

	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.format", d.Log.Format)
	v.SetDefault("log.file", d.Log.File)

	v.SetDefault("maintenance.checkpoint_schedule", d.Maintenance.CheckpointSchedule)
	v.SetDefault("maintenance.optimize_schedule", d.Maintenance.OptimizeSchedule)
}
