package cli

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thenoetrevino/gtd/internal/config"
)

func newCommand(t *testing.T, args ...string) *cobra.Command {
	t.Helper()
	cmd := &cobra.Command{Use: "test"}
	AddGlobalFlags(cmd)
	require.NoError(t, cmd.ParseFlags(args))
	return cmd
}

func TestLoadConfig_KeepsInjectedConfig(t *testing.T) {
	injected := config.Default()
	cmd := newCommand(t)
	cmd.SetContext(WithConfig(context.Background(), injected))

	cfg, err := LoadConfig(cmd)
	require.NoError(t, err)
	assert.Same(t, injected, cfg)
}

func TestLoadConfig_ReadsFlagPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server:\n  addr: 127.0.0.1:9999\n"), 0o600))

	cmd := newCommand(t, "--config", path)
	cfg, err := LoadConfig(cmd)
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:9999", cfg.Server.Addr)

	fromCtx, err := ConfigFromContext(cmd.Context())
	require.NoError(t, err)
	assert.Same(t, cfg, fromCtx)
}

func TestLoadConfig_Errors(t *testing.T) {
	cmd := newCommand(t, "--config", filepath.Join(t.TempDir(), "missing.yaml"))
	_, err := LoadConfig(cmd)
	assert.Equal(t, ExitDataErr, ExitCodeFor(err))

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("log:\n  format: xml\n"), 0o600))
	cmd = newCommand(t, "--config", path)
	_, err = LoadConfig(cmd)
	assert.Equal(t, ExitValidation, ExitCodeFor(err))
}

func TestLoadConfig_SkipAnnotation(t *testing.T) {
	cmd := newCommand(t, "--config", "/does/not/exist.yaml")
	cmd.Annotations = map[string]string{SkipConfigAnnotation: "true"}

	cfg, err := LoadConfig(cmd)
	assert.NoError(t, err)
	assert.Nil(t, cfg)
}

func TestConfigFromContext_Missing(t *testing.T) {
	_, err := ConfigFromContext(context.Background())
	assert.ErrorIs(t, err, ErrNoConfig)
}
