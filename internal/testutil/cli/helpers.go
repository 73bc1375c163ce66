package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"strings"
	"testing"

	"github.com/spf13/cobra"

	gtdcli "github.com/thenoetrevino/gtd/internal/cli"
	"github.com/thenoetrevino/gtd/internal/config"
)

// Output is what a command wrote to its streams
type Output struct {
	Stdout string
	Stderr string
}

// ExecuteCLICommand mounts cmd under a bare root carrying the global flags
// and runs it with cfg already loaded
func ExecuteCLICommand(t *testing.T, cfg *config.Config, cmd *cobra.Command, args []string) (Output, error) {
	t.Helper()
	return ExecuteCLICommandWithInput(t, cfg, strings.NewReader(""), cmd, args)
}

// ExecuteCLICommandWithInput is ExecuteCLICommand with stdin
func ExecuteCLICommandWithInput(t *testing.T, cfg *config.Config, stdin io.Reader, cmd *cobra.Command, args []string) (Output, error) {
	t.Helper()

	root := &cobra.Command{
		Use: "gtd",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			_, err := gtdcli.LoadConfig(cmd)
			return err
		},
	}
	gtdcli.AddGlobalFlags(root)
	root.AddCommand(cmd)

	var stdout, stderr bytes.Buffer
	root.SetIn(stdin)
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs(append([]string{cmd.Name()}, args...))

	// Disable usage output on error for cleaner test output
	root.SilenceUsage = true
	root.SilenceErrors = true

	ctx := context.Background()
	if cfg != nil {
		ctx = gtdcli.WithConfig(ctx, cfg)
	}
	err := root.ExecuteContext(ctx)

	return Output{Stdout: stdout.String(), Stderr: stderr.String()}, err
}

// ParseJSON parses JSON output from CLI commands
func ParseJSON(t *testing.T, output string) map[string]any {
	t.Helper()

	var result map[string]any
	if err := json.Unmarshal([]byte(output), &result); err != nil {
		t.Fatalf("Failed to parse JSON output: %v\nOutput: %s", err, output)
	}

	return result
}
