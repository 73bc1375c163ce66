package settings

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/gtd/internal/cli"
	"github.com/thenoetrevino/gtd/internal/cli/styles"
	"github.com/thenoetrevino/gtd/internal/config"
)

// ConfigCmd returns the config parent command
func ConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect or create the configuration file",
	}

	cmd.AddCommand(ShowCmd())
	cmd.AddCommand(InitCmd())

	return cmd
}

// ShowCmd returns the config show subcommand
func ShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		Long:  "Print the configuration after defaults, the config file and GTD_* environment variables are merged. The signing secret is redacted.",
		Args:  cobra.NoArgs,
		RunE:  runShow,
	}
}

func runShow(cmd *cobra.Command, args []string) error {
	formatter := cli.FormatterFor(cmd)

	cfg, err := cli.ConfigFromContext(cmd.Context())
	if err != nil {
		return formatter.Fail("CONFIG_ERROR", err)
	}
	redacted := cfg.Redacted()

	return formatter.Success(redacted, func(w io.Writer) error {
		data, err := redacted.Marshal()
		if err != nil {
			return err
		}
		_, err = w.Write(data)
		return err
	})
}

// InitCmd returns the config init subcommand
func InitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a starter configuration file",
		Long: `Write the default configuration, with a freshly generated signing secret,
to the --config path or the default location.

Examples:
  gtd config init
  gtd config init --config ./gtd.yaml --force
`,
		Args:        cobra.NoArgs,
		Annotations: map[string]string{cli.SkipConfigAnnotation: "true"},
		RunE:        runInit,
	}

	cmd.Flags().Bool("force", false, "Overwrite an existing file")

	return cmd
}

// initResult is what init reports
type initResult struct {
	Path string `json:"path"`
}

func runInit(cmd *cobra.Command, args []string) error {
	formatter := cli.FormatterFor(cmd)
	force, _ := cmd.Flags().GetBool("force")

	path, _ := cmd.Flags().GetString("config")
	if path == "" {
		var err error
		if path, err = config.DefaultPath(); err != nil {
			return formatter.Fail("CONFIG_PATH_ERROR", err)
		}
	}

	if _, err := os.Stat(path); err == nil && !force {
		return formatter.FailWithSuggestion("CONFIG_EXISTS",
			cli.Usage(fmt.Errorf("%s already exists", path)),
			"Pass --force to overwrite it")
	} else if err != nil && !errors.Is(err, os.ErrNotExist) {
		return formatter.Fail("CONFIG_PATH_ERROR", err)
	}

	secret, err := generateSecret()
	if err != nil {
		return formatter.Fail("SECRET_ERROR", err)
	}

	cfg := config.Default()
	cfg.Auth.JWTSecret = secret
	if err := cfg.Save(path); err != nil {
		return formatter.Fail("CONFIG_WRITE_ERROR", err)
	}

	result := initResult{Path: path}
	return formatter.Success(result, func(w io.Writer) error {
		_, err := fmt.Fprintf(w, "%s %s\n", styles.DoneStyle.Render("Wrote"), path)
		return err
	})
}

// generateSecret returns 32 random bytes, hex encoded
func generateSecret() (string, error) {
	buf := make([]byte, config.MinSecretLength)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate secret: %w", err)
	}
	return hex.EncodeToString(buf), nil
}
