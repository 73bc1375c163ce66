package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment override, e.g. GTD_AUTH_JWT_SECRET
const EnvPrefix = "GTD"

// MinSecretLength mirrors the auth service's requirement so serve can fail
// before opening the database
const MinSecretLength = 32

// Config represents the application configuration
type Config struct {
	Server      ServerConfig      `yaml:"server" mapstructure:"server" json:"server"`
	Database    DatabaseConfig    `yaml:"database" mapstructure:"database" json:"database"`
	Auth        AuthConfig        `yaml:"auth" mapstructure:"auth" json:"auth"`
	Log         LogConfig         `yaml:"log" mapstructure:"log" json:"log"`
	Maintenance MaintenanceConfig `yaml:"maintenance" mapstructure:"maintenance" json:"maintenance"`
}

// ServerConfig controls the HTTP listener
type ServerConfig struct {
	Addr              string        `yaml:"addr" mapstructure:"addr" json:"addr"`
	ShutdownTimeout   time.Duration `yaml:"shutdown_timeout" mapstructure:"shutdown_timeout" json:"shutdown_timeout"`
	ReadHeaderTimeout time.Duration `yaml:"read_header_timeout" mapstructure:"read_header_timeout" json:"read_header_timeout"`
}

// DatabaseConfig locates the SQLite file
type DatabaseConfig struct {
	Path string `yaml:"path" mapstructure:"path" json:"path"`
}

// AuthConfig holds token settings
type AuthConfig struct {
	JWTSecret string        `yaml:"jwt_secret" mapstructure:"jwt_secret" json:"jwt_secret"`
	TokenTTL  time.Duration `yaml:"token_ttl" mapstructure:"token_ttl" json:"token_ttl"`
	Issuer    string        `yaml:"issuer" mapstructure:"issuer" json:"issuer"`
}

// LogConfig controls the slog handler
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level" json:"level"`
	Format string `yaml:"format" mapstructure:"format" json:"format"`
	File   string `yaml:"file" mapstructure:"file" json:"file"` // empty means stderr
}

// MaintenanceConfig holds cron specs for the SQLite housekeeping jobs.
// An empty spec disables that job.
type MaintenanceConfig struct {
	CheckpointSchedule string `yaml:"checkpoint_schedule" mapstructure:"checkpoint_schedule" json:"checkpoint_schedule"`
	OptimizeSchedule   string `yaml:"optimize_schedule" mapstructure:"optimize_schedule" json:"optimize_schedule"`
}

// Load reads configuration from defaults, then the YAML file at path, then
// GTD_* environment variables. An empty path means the default location,
// where a missing file is fine; an explicit path must exist.
func Load(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		var err error
		if path, err = DefaultPath(); err != nil {
			path = ""
		}
	}

	v := viper.New()
	setDefaults(v)

	if path != "" {
		if _, err := os.Stat(path); err == nil || explicit {
			v.SetConfigFile(path)
			v.SetConfigType("yaml")
			if err := v.ReadInConfig(); err != nil {
				return nil, fmt.Errorf("failed to read config %s: %w", path, err)
			}
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	cfg.Database.Path = expandHome(cfg.Database.Path)
	cfg.Log.File = expandHome(cfg.Log.File)

	return &cfg, nil
}

// Validate checks the settings every command relies on
func (c *Config) Validate() error {
	var errs []error

	if strings.TrimSpace(c.Database.Path) == "" {
		errs = append(errs, errors.New("database.path is required"))
	}
	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Errorf("log.level %q must be one of debug, info, warn, error", c.Log.Level))
	}
	switch strings.ToLower(c.Log.Format) {
	case "text", "json":
	default:
		errs = append(errs, fmt.Errorf("log.format %q must be text or json", c.Log.Format))
	}

	return errors.Join(errs...)
}

// ValidateServe adds the checks only the HTTP server needs
func (c *Config) ValidateServe() error {
	errs := []error{c.Validate()}

	if c.Server.Addr == "" {
		errs = append(errs, errors.New("server.addr is required"))
	}
	if c.Server.ShutdownTimeout <= 0 {
		errs = append(errs, errors.New("server.shutdown_timeout must be positive"))
	}
	if c.Server.ReadHeaderTimeout <= 0 {
		errs = append(errs, errors.New("server.read_header_timeout must be positive"))
	}
	if len(c.Auth.JWTSecret) < MinSecretLength {
		errs = append(errs, fmt.Errorf("auth.jwt_secret must be at least %d bytes (set %s_AUTH_JWT_SECRET)", MinSecretLength, EnvPrefix))
	}
	if c.Auth.TokenTTL <= 0 {
		errs = append(errs, errors.New("auth.token_ttl must be positive"))
	}

	return errors.Join(errs...)
}

// Save writes the config as YAML to path, creating its directory
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return err
	}

	data, err := c.Marshal()
	if err != nil {
		return err
	}

	// the file may hold the signing secret
	return os.WriteFile(path, data, 0o600)
}

// Marshal renders the config as YAML
func (c *Config) Marshal() ([]byte, error) {
	return yaml.Marshal(c)
}

// Redacted returns a copy safe to print
func (c *Config) Redacted() *Config {
	out := *c
	if out.Auth.JWTSecret != "" {
		out.Auth.JWTSecret = "<redacted>"
	}
	return &out
}

// MarshalYAML writes durations as "30s" rather than nanoseconds
func (s ServerConfig) MarshalYAML() (any, error) {
	return struct {
		Addr              string `yaml:"addr"`
		ShutdownTimeout   string `yaml:"shutdown_timeout"`
		ReadHeaderTimeout string `yaml:"read_header_timeout"`
	}{s.Addr, s.ShutdownTimeout.String(), s.ReadHeaderTimeout.String()}, nil
}

// MarshalYAML writes the token lifetime as a duration string
func (a AuthConfig) MarshalYAML() (any, error) {
	return struct {
		JWTSecret string `yaml:"jwt_secret"`
		TokenTTL  string `yaml:"token_ttl"`
		Issuer    string `yaml:"issuer"`
	}{a.JWTSecret, a.TokenTTL.String(), a.Issuer}, nil
}

// DefaultPath returns the path to the config file
func DefaultPath() (string, error) {
	// Try XDG_CONFIG_HOME first
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, "gtd", "config.yaml"), nil
	}

	// Fall back to ~/.config
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	return filepath.Join(homeDir, ".config", "gtd", "config.yaml"), nil
}

func expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}
