package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thenoetrevino/gtd/internal/cli"
	"github.com/thenoetrevino/gtd/internal/config"
)

func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	root := NewRootCmd()
	var stdout, stderr bytes.Buffer
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs(args)
	err := root.Execute()
	return stdout.String(), stderr.String(), err
}

func TestRootCmd_RegistersCommands(t *testing.T) {
	root := NewRootCmd()

	names := make(map[string]bool)
	for _, c := range root.Commands() {
		names[c.Name()] = true
	}
	for _, want := range []string{"serve", "migrate", "config", "user", "task"} {
		assert.True(t, names[want], "missing command %q", want)
	}
	for _, flag := range []string{"config", "json", "quiet"} {
		assert.NotNil(t, root.PersistentFlags().Lookup(flag), "missing flag --%s", flag)
	}
}

func TestConfigInitThenShow(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	stdout, _, err := run(t, "config", "init", "--config", path)
	require.NoError(t, err)
	assert.Contains(t, stdout, path)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Len(t, cfg.Auth.JWTSecret, 2*config.MinSecretLength)
	assert.NoError(t, cfg.ValidateServe())

	stdout, _, err = run(t, "config", "show", "--config", path)
	require.NoError(t, err)
	assert.Contains(t, stdout, "<redacted>")
	assert.NotContains(t, stdout, cfg.Auth.JWTSecret)

	// A second init refuses to clobber the file
	_, stderr, err := run(t, "config", "init", "--config", path)
	require.Error(t, err)
	assert.Equal(t, cli.ExitUsage, cli.ExitCodeFor(err))
	assert.Contains(t, stderr, "--force")

	_, _, err = run(t, "config", "init", "--config", path, "--force")
	require.NoError(t, err)
	reloaded, err := config.Load(path)
	require.NoError(t, err)
	assert.NotEqual(t, cfg.Auth.JWTSecret, reloaded.Auth.JWTSecret)
}

func TestMigrate(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	cfg := config.Default()
	cfg.Database.Path = filepath.Join(dir, "data", "gtd.db")
	require.NoError(t, cfg.Save(path))

	stdout, _, err := run(t, "migrate", "--config", path, "--json")
	require.NoError(t, err)
	assert.Contains(t, stdout, `"success":true`)

	_, err = os.Stat(cfg.Database.Path)
	assert.NoError(t, err)
}

func TestMissingExplicitConfig(t *testing.T) {
	_, _, err := run(t, "config", "show", "--config", filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
	assert.Equal(t, cli.ExitDataErr, cli.ExitCodeFor(err))
}

func TestInvalidConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("log:\n  level: chatty\n"), 0o600))

	_, _, err := run(t, "config", "show", "--config", path)
	require.Error(t, err)
	assert.Equal(t, cli.ExitValidation, cli.ExitCodeFor(err))
}
