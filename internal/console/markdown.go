// ABOUTME: Markdown preview rendering for prompt text
// ABOUTME: Converts prompt bodies to HTML so trainers see what the agent voices

package console

import (
	"bytes"
	"html/template"

	"github.com/yuin/goldmark"
)

// renderMarkdown converts prompt markdown to HTML for preview cards.
func (c *Console) renderMarkdown(text string) template.HTML {
	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(text), &buf); err != nil {
		c.logger.Error("failed to convert markdown", "error", err)
		return template.HTML("<p>Failed to render preview.</p>")
	}
	return template.HTML(buf.String())
}
