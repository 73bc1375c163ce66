package task

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/gtd/internal/cli"
	"github.com/thenoetrevino/gtd/internal/cli/styles"
	"github.com/thenoetrevino/gtd/internal/models"
	taskservice "github.com/thenoetrevino/gtd/internal/services/task"
)

// ListCmd returns the task list subcommand
func ListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tasks",
		Long: `List a user's tasks with the same filters the API accepts.

Examples:
  gtd task list --email ada@example.com
  gtd task list --email ada@example.com --list next --status all
  gtd task list --email ada@example.com --view upcoming
`,
		Args: cobra.NoArgs,
		RunE: runList,
	}

	addOwnerFlag(cmd)
	cmd.Flags().String("list", "", "System list: Inbox, Next, Upcoming or Someday")
	cmd.Flags().String("status", "", "Open, Done or All (default Open, or Done with --archived)")
	cmd.Flags().Bool("archived", false, "Show archived tasks")
	cmd.Flags().String("view", "", "Named view; only \"upcoming\" is supported")
	cmd.Flags().Int("project", 0, "Only tasks in this project")
	cmd.Flags().Int("label", 0, "Only tasks carrying this label")

	return cmd
}

// listResult is what list reports
type listResult struct {
	Tasks      []taskResult `json:"tasks"`
	TotalCount int          `json:"totalCount"`
}

func runList(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	formatter := cli.FormatterFor(cmd)

	cliInstance, err := cli.GetCLIFromContext(ctx)
	if err != nil {
		return formatter.Fail("INITIALIZATION_ERROR", err)
	}
	defer func() {
		if err := cliInstance.Close(); err != nil {
			slog.Error("Error closing CLI", "error", err)
		}
	}()

	userID, err := lookupOwner(ctx, cmd, cliInstance)
	if err != nil {
		return formatter.FailWithSuggestion("USER_NOT_FOUND", err,
			"Create the account with: gtd user create --email <email>")
	}

	req := taskservice.ListTasksRequest{UserID: userID}
	req.SystemList, _ = cmd.Flags().GetString("list")
	req.Status, _ = cmd.Flags().GetString("status")
	req.View, _ = cmd.Flags().GetString("view")
	if cmd.Flags().Changed("archived") {
		archived, _ := cmd.Flags().GetBool("archived")
		req.Archived = &archived
	}
	if cmd.Flags().Changed("project") {
		projectID, _ := cmd.Flags().GetInt("project")
		req.ProjectID = &projectID
	}
	if cmd.Flags().Changed("label") {
		labelID, _ := cmd.Flags().GetInt("label")
		req.LabelID = &labelID
	}

	list, err := cliInstance.TaskService.ListTasks(ctx, req)
	if err != nil {
		return formatter.Fail("TASK_FETCH_ERROR", err)
	}

	if formatter.Quiet {
		ids := make([]int, len(list.Tasks))
		for i, task := range list.Tasks {
			ids[i] = task.ID
		}
		return formatter.IDs(ids)
	}

	result := listResult{Tasks: make([]taskResult, len(list.Tasks)), TotalCount: list.TotalCount}
	for i, task := range list.Tasks {
		result.Tasks[i] = toTaskResult(task)
	}

	return formatter.Success(result, func(w io.Writer) error {
		return writeList(w, result)
	})
}

func writeList(w io.Writer, result listResult) error {
	if result.TotalCount == 0 {
		_, err := fmt.Fprintln(w, styles.SubtitleStyle.Render("No tasks found"))
		return err
	}

	if _, err := fmt.Fprintf(w, "%s\n\n", styles.TitleStyle.Render(fmt.Sprintf("Tasks (%d)", result.TotalCount))); err != nil {
		return err
	}
	for _, task := range result.Tasks {
		var line strings.Builder
		fmt.Fprintf(&line, "  %s ", styles.SubtitleStyle.Render(fmt.Sprintf("#%-4d", task.ID)))
		line.WriteString(renderPriority(task.Priority))
		line.WriteString(" ")
		if task.Status == string(models.TaskStatusDone) {
			line.WriteString(styles.DoneStyle.Render(task.Name))
		} else {
			line.WriteString(styles.ValueStyle.Render(task.Name))
		}
		line.WriteString("  " + styles.LabelStyle.Render(task.SystemList))
		if task.DueDate != nil {
			line.WriteString("  " + styles.SubtitleStyle.Render("due "+formatDue(*task.DueDate)))
		}
		if _, err := fmt.Fprintln(w, line.String()); err != nil {
			return err
		}
	}
	return nil
}
