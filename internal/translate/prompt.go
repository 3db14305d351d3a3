package translate

import (
	"fmt"
	"strings"

	"traductor/internal/domain"
)

// PromptBuilder assembles the single request payload sent to the
// translation backend: the selected context passages as labeled blocks,
// followed by the translation task and the source text.
type PromptBuilder struct {
	sourceText string
	selection  domain.ContextSelection
	direction  domain.Direction
}

// NewPromptBuilder creates a builder for one translation request.
func NewPromptBuilder(sourceText string, selection domain.ContextSelection, direction domain.Direction) *PromptBuilder {
	return &PromptBuilder{sourceText: sourceText, selection: selection, direction: direction}
}

// Build renders the full prompt.
func (b *PromptBuilder) Build() string {
	var prompt strings.Builder
	b.writeReferenceMaterial(&prompt)
	b.writeTask(&prompt)
	b.writeSourceText(&prompt)
	return prompt.String()
}

func (b *PromptBuilder) writeReferenceMaterial(prompt *strings.Builder) {
	if len(b.selection.Items) == 0 {
		return
	}
	prompt.WriteString("<reference_material>\n")
	for _, m := range b.selection.Items {
		label := string(m.Item.Level)
		if m.Item.Title != "" {
			label += ": " + m.Item.Title
		}
		fmt.Fprintf(prompt, "[%s] (%s)\n%s\n\n", label, m.Item.ID, m.Item.Text)
	}
	prompt.WriteString("</reference_material>\n\n")
}

func (b *PromptBuilder) writeTask(prompt *strings.Builder) {
	prompt.WriteString("<task>\n")
	fmt.Fprintf(prompt, "Translate the text below from %s to %s.\n", b.direction.Source, b.direction.Target)
	if len(b.selection.Items) > 0 {
		prompt.WriteString("Use the reference material above to match its terminology, register and phrasing where relevant.\n")
	}
	prompt.WriteString("Reply with the translation only, no commentary.\n")
	prompt.WriteString("</task>\n\n")
}

func (b *PromptBuilder) writeSourceText(prompt *strings.Builder) {
	prompt.WriteString("<source_text>\n")
	prompt.WriteString(b.sourceText)
	prompt.WriteString("\n</source_text>\n")
}
