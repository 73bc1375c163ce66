package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func TestLoadConfigWithoutFile(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() without config file failed: %v", err)
	}

	if cfg.Server.Addr != DefaultAddr {
		t.Errorf("Server.Addr = %s, want %s (default)", cfg.Server.Addr, DefaultAddr)
	}
	if cfg.Auth.TokenTTL != DefaultTokenTTL {
		t.Errorf("Auth.TokenTTL = %v, want %v", cfg.Auth.TokenTTL, DefaultTokenTTL)
	}
	if cfg.Maintenance.OptimizeSchedule != DefaultOptimizeSchedule {
		t.Errorf("OptimizeSchedule = %q, want %q", cfg.Maintenance.OptimizeSchedule, DefaultOptimizeSchedule)
	}
	if cfg.Database.Path == "" {
		t.Error("Database.Path should default to a file under the home directory")
	}
}

func TestLoadConfigWithFile(t *testing.T) {
	tempDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", tempDir)

	configDir := filepath.Join(tempDir, "gtd")
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		t.Fatalf("Failed to create config dir: %v", err)
	}

	configContent := `server:
  addr: ":9090"
  shutdown_timeout: 30s
auth:
  token_ttl: 2h
log:
  format: json
`
	if err := os.WriteFile(filepath.Join(configDir, "config.yaml"), []byte(configContent), 0o644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() with config file failed: %v", err)
	}

	if cfg.Server.Addr != ":9090" {
		t.Errorf("Server.Addr = %s, want :9090", cfg.Server.Addr)
	}
	if cfg.Server.ShutdownTimeout != 30*time.Second {
		t.Errorf("ShutdownTimeout = %v, want 30s", cfg.Server.ShutdownTimeout)
	}
	if cfg.Auth.TokenTTL != 2*time.Hour {
		t.Errorf("TokenTTL = %v, want 2h", cfg.Auth.TokenTTL)
	}
	if cfg.Log.Format != "json" {
		t.Errorf("Log.Format = %s, want json", cfg.Log.Format)
	}

	// Unspecified values should use defaults
	if cfg.Server.ReadHeaderTimeout != DefaultReadHeaderTimeout {
		t.Errorf("ReadHeaderTimeout = %v, want %v (default)", cfg.Server.ReadHeaderTimeout, DefaultReadHeaderTimeout)
	}
	if cfg.Log.Level != DefaultLogLevel {
		t.Errorf("Log.Level = %s, want %s (default)", cfg.Log.Level, DefaultLogLevel)
	}
}

func TestLoadConfig_EnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	if err := os.WriteFile(path, []byte("log:\n  level: warn\nserver:\n  addr: \":1111\"\n"), 0o644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	t.Setenv("GTD_SERVER_ADDR", ":2222")
	t.Setenv("GTD_AUTH_JWT_SECRET", testSecret)
	t.Setenv("GTD_AUTH_TOKEN_TTL", "45m")
	t.Setenv("GTD_DATABASE_PATH", "/tmp/gtd-test.db")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load(%s) failed: %v", path, err)
	}

	if cfg.Server.Addr != ":2222" {
		t.Errorf("Server.Addr = %s, want :2222 from env", cfg.Server.Addr)
	}
	if cfg.Log.Level != "warn" {
		t.Errorf("Log.Level = %s, want warn from file", cfg.Log.Level)
	}
	if cfg.Auth.JWTSecret != testSecret {
		t.Error("Auth.JWTSecret was not read from env")
	}
	if cfg.Auth.TokenTTL != 45*time.Minute {
		t.Errorf("TokenTTL = %v, want 45m", cfg.Auth.TokenTTL)
	}
	if cfg.Database.Path != "/tmp/gtd-test.db" {
		t.Errorf("Database.Path = %s, want /tmp/gtd-test.db", cfg.Database.Path)
	}
}

func TestLoadConfig_ExplicitPathMustExist(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("Load() with a missing explicit path should fail")
	}
}

func TestSaveConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gtd", "config.yaml")

	cfg := Default()
	cfg.Server.Addr = ":7070"
	cfg.Server.ShutdownTimeout = 3 * time.Second
	cfg.Auth.JWTSecret = testSecret

	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save() failed: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("Config file not created at %s", path)
	}
	if info.Mode().Perm() != 0o600 {
		t.Errorf("Config file mode = %v, want 0600", info.Mode().Perm())
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read saved config: %v", err)
	}
	if !strings.Contains(string(data), "shutdown_timeout: 3s") {
		t.Errorf("Durations should be written as strings, got:\n%s", data)
	}

	cfg2, err := Load(path)
	if err != nil {
		t.Fatalf("Load() after Save() failed: %v", err)
	}
	if cfg2.Server.Addr != ":7070" {
		t.Errorf("Reloaded Server.Addr = %s, want :7070", cfg2.Server.Addr)
	}
	if cfg2.Server.ShutdownTimeout != 3*time.Second {
		t.Errorf("Reloaded ShutdownTimeout = %v, want 3s", cfg2.Server.ShutdownTimeout)
	}
	if cfg2.Auth.JWTSecret != testSecret {
		t.Error("Reloaded JWTSecret does not match")
	}
}

func TestRedacted(t *testing.T) {
	cfg := Default()
	cfg.Auth.JWTSecret = testSecret

	redacted := cfg.Redacted()
	if redacted.Auth.JWTSecret == testSecret {
		t.Error("Redacted() should hide the secret")
	}
	if cfg.Auth.JWTSecret != testSecret {
		t.Error("Redacted() must not modify the original")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		serve   bool
		wantErr string
	}{
		{"defaults are valid", func(*Config) {}, false, ""},
		{"bad log level", func(c *Config) { c.Log.Level = "loud" }, false, "log.level"},
		{"bad log format", func(c *Config) { c.Log.Format = "xml" }, false, "log.format"},
		{"no database", func(c *Config) { c.Database.Path = " " }, false, "database.path"},
		{"serve needs a secret", func(*Config) {}, true, "auth.jwt_secret"},
		{"serve rejects short secret", func(c *Config) { c.Auth.JWTSecret = "short" }, true, "auth.jwt_secret"},
		{"serve rejects zero ttl", func(c *Config) { c.Auth.JWTSecret = testSecret; c.Auth.TokenTTL = 0 }, true, "auth.token_ttl"},
		{"serve with secret", func(c *Config) { c.Auth.JWTSecret = testSecret }, true, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(cfg)

			var err error
			if tt.serve {
				err = cfg.ValidateServe()
			} else {
				err = cfg.Validate()
			}

			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %v, want mention of %s", err, tt.wantErr)
			}
		})
	}
}
