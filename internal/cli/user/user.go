package user

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/gtd/internal/cli"
	"github.com/thenoetrevino/gtd/internal/cli/styles"
	"github.com/thenoetrevino/gtd/internal/models"
	authservice "github.com/thenoetrevino/gtd/internal/services/auth"
)

// UserCmd returns the user parent command
func UserCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "Manage accounts",
	}

	cmd.AddCommand(CreateCmd())

	return cmd
}

// CreateCmd returns the user create subcommand
func CreateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create an account",
		Long: `Create an account directly in the database, applying the same rules as
registration through the API.

Examples:
  gtd user create --email ada@example.com --name "Ada"
  echo "$PASSWORD" | gtd user create --email ada@example.com --password-stdin
`,
		Args: cobra.NoArgs,
		RunE: runCreate,
	}

	cmd.Flags().String("email", "", "Account email (required)")
	cmd.Flags().String("password", "", "Account password")
	cmd.Flags().Bool("password-stdin", false, "Read the password from stdin")
	cmd.Flags().String("name", "", "Display name (defaults to the email's local part)")
	cmd.MarkFlagsMutuallyExclusive("password", "password-stdin")
	if err := cmd.MarkFlagRequired("email"); err != nil {
		slog.Error("Error marking email flag as required", "error", err)
	}

	return cmd
}

// userResult is what create reports
type userResult struct {
	ID          int       `json:"id"`
	Email       string    `json:"email"`
	DisplayName string    `json:"displayName"`
	CreatedAt   time.Time `json:"createdAt"`
}

func (r userResult) GetID() int { return r.ID }

func runCreate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	formatter := cli.FormatterFor(cmd)

	email, _ := cmd.Flags().GetString("email")
	name, _ := cmd.Flags().GetString("name")

	password, err := readPassword(cmd)
	if err != nil {
		return formatter.FailWithSuggestion("NO_PASSWORD", cli.Usage(err),
			"Pass --password or pipe it with --password-stdin")
	}

	cliInstance, err := cli.GetCLIFromContext(ctx)
	if err != nil {
		return formatter.Fail("INITIALIZATION_ERROR", err)
	}
	defer func() {
		if err := cliInstance.Close(); err != nil {
			slog.Error("Error closing CLI", "error", err)
		}
	}()

	user, err := authservice.CreateAccount(ctx, cliInstance.Repo, authservice.RegisterRequest{
		Email:       email,
		Password:    password,
		DisplayName: name,
	})
	if err != nil {
		switch {
		case errors.Is(err, models.ErrValidation):
			return formatter.Fail("VALIDATION_ERROR", err)
		case errors.Is(err, models.ErrConflict):
			return formatter.Fail("USER_EXISTS", err)
		}
		return formatter.Fail("USER_CREATE_ERROR", err)
	}

	result := userResult{
		ID:          int(user.ID),
		Email:       user.Email,
		DisplayName: user.DisplayName,
		CreatedAt:   user.CreatedAt.UTC(),
	}
	return formatter.Success(result, func(w io.Writer) error {
		_, err := fmt.Fprintf(w, "%s %s (id %d)\n",
			styles.DoneStyle.Render("Created user"), result.Email, result.ID)
		return err
	})
}

// readPassword takes the password from --password or the first line of stdin
func readPassword(cmd *cobra.Command) (string, error) {
	if fromStdin, _ := cmd.Flags().GetBool("password-stdin"); fromStdin {
		line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return "", fmt.Errorf("failed to read password: %w", err)
		}
		password := strings.TrimRight(line, "\r\n")
		if password == "" {
			return "", errors.New("no password on stdin")
		}
		return password, nil
	}

	password, _ := cmd.Flags().GetString("password")
	if password == "" {
		return "", errors.New("a password is required")
	}
	return password, nil
}
