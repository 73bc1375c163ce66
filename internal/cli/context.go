package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/gtd/internal/config"
)

type configKey struct{}

// SkipConfigAnnotation marks commands that run without loading the config,
// such as config init
const SkipConfigAnnotation = "gtd/skip-config"

// ErrNoConfig means a command ran without the root command loading config
var ErrNoConfig = errors.New("configuration not loaded")

// WithConfig stores the loaded configuration for subcommands
func WithConfig(ctx context.Context, cfg *config.Config) context.Context {
	return context.WithValue(ctx, configKey{}, cfg)
}

// ConfigFromContext returns the configuration stored by WithConfig
func ConfigFromContext(ctx context.Context) (*config.Config, error) {
	if ctx == nil {
		return nil, ErrNoConfig
	}
	cfg, ok := ctx.Value(configKey{}).(*config.Config)
	if !ok || cfg == nil {
		return nil, ErrNoConfig
	}
	return cfg, nil
}

// AddGlobalFlags registers the persistent flags every command understands
func AddGlobalFlags(root *cobra.Command) {
	root.PersistentFlags().String("config", "", "Config file (default $XDG_CONFIG_HOME/gtd/config.yaml)")
	root.PersistentFlags().Bool("json", false, "Output in JSON format")
	root.PersistentFlags().Bool("quiet", false, "Minimal output (IDs only)")
}

// LoadConfig reads and validates the configuration named by --config and
// stores it in the command's context. A configuration already in the context
// is kept, which lets tests inject one.
func LoadConfig(cmd *cobra.Command) (*config.Config, error) {
	if cmd.Annotations[SkipConfigAnnotation] == "true" {
		return nil, nil
	}
	if cfg, err := ConfigFromContext(cmd.Context()); err == nil {
		return cfg, nil
	}

	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return nil, &ExitError{Code: ExitDataErr, Err: err}
	}
	if err := cfg.Validate(); err != nil {
		return nil, &ExitError{Code: ExitValidation, Err: fmt.Errorf("invalid configuration: %w", err)}
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cmd.SetContext(WithConfig(ctx, cfg))
	return cfg, nil
}

// GetCLIFromContext opens the database named by the command's config.
// The caller must Close the returned CLI.
func GetCLIFromContext(ctx context.Context) (*CLI, error) {
	cfg, err := ConfigFromContext(ctx)
	if err != nil {
		return nil, err
	}
	return NewCLI(ctx, cfg)
}

// FormatterFor builds an OutputFormatter from the persistent --json and
// --quiet flags, writing to the command's configured streams
func FormatterFor(cmd *cobra.Command) *OutputFormatter {
	jsonOutput, _ := cmd.Flags().GetBool("json")
	quietMode, _ := cmd.Flags().GetBool("quiet")
	return &OutputFormatter{
		JSON:  jsonOutput,
		Quiet: quietMode,
		Out:   cmd.OutOrStdout(),
		Err:   cmd.ErrOrStderr(),
	}
}
