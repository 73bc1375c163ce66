package styles

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/thenoetrevino/gtd/internal/models"
)

func TestRenderPriority(t *testing.T) {
	p := models.PriorityP1
	assert.Contains(t, RenderPriority(&p), "P1")
	assert.Contains(t, RenderPriority(nil), "-")
}

func TestRenderLabelChip(t *testing.T) {
	color := "#FF0000"
	assert.Contains(t, RenderLabelChip(&models.LabelSummary{Name: "urgent", Color: &color}), "[urgent]")
	assert.Contains(t, RenderLabelChip(&models.LabelSummary{Name: "plain"}), "[plain]")
}

func TestRenderMarkdown(t *testing.T) {
	assert.Contains(t, RenderMarkdown("", 40), "No description")

	out := RenderMarkdown("# Groceries\n\n- milk\n- eggs", 40)
	assert.Contains(t, out, "Groceries")
	assert.Contains(t, out, "milk")

	first, err := getRenderer(40)
	assert.NoError(t, err)
	second, err := getRenderer(40)
	assert.NoError(t, err)
	assert.Same(t, first, second, "renderers are cached per width")
}
