package task

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/gtd/internal/cli"
	"github.com/thenoetrevino/gtd/internal/cli/styles"
	"github.com/thenoetrevino/gtd/internal/models"
)

// ShowCmd returns the task show subcommand
func ShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show task details",
		Long:  "Display a task with its project, labels and description. The description is rendered as markdown.",
		Args:  cobra.ExactArgs(1),
		RunE:  runShow,
	}

	addOwnerFlag(cmd)

	return cmd
}

func runShow(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	formatter := cli.FormatterFor(cmd)

	taskID, err := strconv.Atoi(args[0])
	if err != nil || taskID <= 0 {
		return formatter.FailWithSuggestion("INVALID_TASK_ID",
			cli.Usage(errors.New("task ID must be a positive integer")),
			"Usage: gtd task show <id> --email <email>")
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

	userID, err := lookupOwner(ctx, cmd, cliInstance)
	if err != nil {
		return formatter.Fail("USER_NOT_FOUND", err)
	}

	task, err := cliInstance.TaskService.GetTask(ctx, userID, taskID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return formatter.Fail("TASK_NOT_FOUND", fmt.Errorf("task %d not found: %w", taskID, models.ErrNotFound))
		}
		return formatter.Fail("TASK_FETCH_ERROR", err)
	}

	result := toTaskResult(task)
	return formatter.Success(result, func(w io.Writer) error {
		_, err := fmt.Fprintln(w, renderTask(task))
		return err
	})
}

func renderTask(task *models.TaskDetail) string {
	var content strings.Builder

	content.WriteString(styles.TitleStyle.Render(fmt.Sprintf("#%d: %s", task.ID, task.Name)))
	content.WriteString("\n\n")

	field := func(label, value string) string {
		return styles.LabelStyle.Render(label) + " " + value
	}

	content.WriteString(field("Status:", styles.RenderStatus(task.Status)))
	content.WriteString("  ")
	content.WriteString(field("Priority:", styles.RenderPriority(task.Priority)))
	content.WriteString("  ")
	content.WriteString(field("List:", styles.ValueStyle.Render(string(task.SystemList))))
	content.WriteString("\n")

	if task.ProjectName != nil {
		content.WriteString(field("Project:", styles.ValueStyle.Render(*task.ProjectName)))
		content.WriteString("\n")
	}
	if task.DueDate != nil {
		due := formatDue(*task.DueDate)
		if task.Status == models.TaskStatusOpen && task.DueDate.Before(time.Now()) {
			due = styles.OverdueStyle.Render(due)
		} else {
			due = styles.ValueStyle.Render(due)
		}
		content.WriteString(field("Due:", due))
		content.WriteString("\n")
	}
	if task.CompletedAt != nil {
		content.WriteString(field("Completed:", styles.DoneStyle.Render(task.CompletedAt.UTC().Format("2006-01-02 15:04 MST"))))
		content.WriteString("\n")
	}

	if len(task.Labels) > 0 {
		chips := make([]string, len(task.Labels))
		for i, l := range task.Labels {
			chips[i] = styles.RenderLabelChip(l)
		}
		content.WriteString(field("Labels:", strings.Join(chips, " ")))
		content.WriteString("\n")
	}

	content.WriteString(styles.SectionStyle.Render("Description"))
	content.WriteString("\n")
	var desc string
	if task.Description != nil {
		desc = *task.Description
	}
	content.WriteString(styles.RenderMarkdown(desc, styles.CardWidth-6))

	content.WriteString("\n")
	content.WriteString(styles.SubtitleStyle.Render(fmt.Sprintf("Created %s  Updated %s",
		task.CreatedAt.UTC().Format("2006-01-02 15:04"),
		task.UpdatedAt.UTC().Format("2006-01-02 15:04"))))

	return styles.RenderCard(content.String())
}

// renderPriority renders the JSON form of a priority
func renderPriority(p *string) string {
	if p == nil {
		return styles.RenderPriority(nil)
	}
	priority := models.Priority(*p)
	return styles.RenderPriority(&priority)
}
