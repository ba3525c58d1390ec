package topics

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPlainRenderer(t *testing.T) {
	assert.Equal(t, "# Title", (&PlainRenderer{}).Render("# Title", ".md"))
}

func TestGlamourRenderer(t *testing.T) {
	r := &GlamourRenderer{Style: "notty", Width: 60}

	assert.Equal(t, "plain text", r.Render("plain text", ".txt"))

	out := r.Render("# Backups\n\nMoved aside, never deleted.", ".md")
	assert.Contains(t, out, "Backups")
	assert.Contains(t, out, "never deleted")
}
