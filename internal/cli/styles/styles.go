package styles

import (
	"charm.land/lipgloss/v2"

	"github.com/thenoetrevino/gtd/internal/models"
)

// Palette colors
const (
	Accent = "#874BFD"
	Title  = "#D75FD7"
	Subtle = "#585858"
	Normal = "#D0D0D0"
	Green  = "#5FD75F"
	Blue   = "#5F87D7"
	Red    = "#FF0000"
	Yellow = "#FFD700"
)

var (
	// Card styles
	CardWidth = 80
	CardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(Accent)).
			Padding(1, 2).
			Width(CardWidth)

	// Text styles
	TitleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(Title))
	SubtitleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(Subtle))
	LabelStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(Accent)) // field labels like "List:"
	ValueStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color(Normal))
	SectionStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(Accent)).MarginTop(1)

	// Status styles
	DoneStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(Green))
	OverdueStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(Red))
)

// priorityColors runs from red for P1 down to grey for P4
var priorityColors = map[models.Priority]string{
	models.PriorityP1: Red,
	models.PriorityP2: Yellow,
	models.PriorityP3: Blue,
	models.PriorityP4: Subtle,
}

// ═══════════════════════════════════════════════════════════════════
// HELPER FUNCTIONS
// ═══════════════════════════════════════════════════════════════════

// ColoredText renders text with a hex color
func ColoredText(text, hexColor string) string {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(hexColor)).
		Render(text)
}

// RenderPriority renders "P1".."P4" in its urgency color, or "-" when unset
func RenderPriority(p *models.Priority) string {
	if p == nil {
		return SubtitleStyle.Render("-")
	}
	return lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(priorityColors[*p])).
		Render(string(*p))
}

// RenderStatus renders a task status, highlighting done tasks
func RenderStatus(status models.TaskStatus) string {
	if status == models.TaskStatusDone {
		return DoneStyle.Render(string(status))
	}
	return ValueStyle.Render(string(status))
}

// RenderLabelChip renders a label as "[name]" with the label's color
func RenderLabelChip(label *models.LabelSummary) string {
	style := lipgloss.NewStyle().Bold(true)
	if label.Color != nil {
		style = style.Foreground(lipgloss.Color(*label.Color))
	}
	return style.Render("[" + label.Name + "]")
}

// RenderCard wraps content in a styled card border
func RenderCard(content string) string {
	return CardStyle.Render(content)
}
