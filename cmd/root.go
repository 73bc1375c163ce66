package cmd

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/gtd/internal/cli"
	"github.com/thenoetrevino/gtd/internal/cli/server"
	"github.com/thenoetrevino/gtd/internal/cli/settings"
	"github.com/thenoetrevino/gtd/internal/cli/task"
	"github.com/thenoetrevino/gtd/internal/cli/user"
	"github.com/thenoetrevino/gtd/internal/logging"
)

// NewRootCmd builds the gtd command tree
func NewRootCmd() *cobra.Command {
	var logCloser io.Closer

	rootCmd := &cobra.Command{
		Use:   "gtd",
		Short: "gtd - a Getting Things Done task server",
		Long: `gtd serves a JSON API for Getting Things Done: an inbox, next actions,
upcoming and someday lists, projects and labels, one account per person.

Start with:
  gtd config init
  gtd migrate
  gtd serve
`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := cli.LoadConfig(cmd)
			if err != nil || cfg == nil {
				return err
			}
			logCloser, err = logging.Init(cfg.Log)
			return err
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if logCloser == nil {
				return nil
			}
			return logCloser.Close()
		},
	}

	cli.AddGlobalFlags(rootCmd)

	rootCmd.AddCommand(server.ServeCmd())
	rootCmd.AddCommand(server.MigrateCmd())
	rootCmd.AddCommand(settings.ConfigCmd())
	rootCmd.AddCommand(user.UserCmd())
	rootCmd.AddCommand(task.TaskCmd())

	return rootCmd
}

// Execute runs the command named by os.Args
func Execute() error {
	return NewRootCmd().Execute()
}
