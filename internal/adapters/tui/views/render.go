package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"indexdesk/internal/adapters/tui/styles"
	"indexdesk/internal/domain"
)

// RenderKeyHelp formats a key binding as "key description"
func RenderKeyHelp(b key.Binding) string {
	help := b.Help()
	return styles.HelpKey.Render(help.Key) + " " + styles.HelpDesc.Render(help.Desc)
}

// RenderHelpLine joins key bindings with the help separator. Disabled
// bindings are skipped.
func RenderHelpLine(bindings ...key.Binding) string {
	parts := make([]string, 0, len(bindings))
	for _, b := range bindings {
		if !b.Enabled() {
			continue
		}
		parts = append(parts, RenderKeyHelp(b))
	}
	return strings.Join(parts, styles.HelpSeparator.String())
}

// RenderMessage renders a status line in the error or success style
func RenderMessage(message string, isError bool) string {
	if message == "" {
		return ""
	}
	if isError {
		return styles.ErrorMsg.Render(message)
	}
	return styles.Success.Render(message)
}

// RenderLabelValue renders a label: value pair
func RenderLabelValue(label, value string) string {
	return styles.InputLabel.Render(label+":") + " " + value
}

// RenderDocument renders a hit as an indented JSON block
func RenderDocument(doc domain.Document, selected bool) string {
	if selected {
		return styles.HitSelected.Render(doc.Pretty())
	}
	return styles.Hit.Render(doc.Pretty())
}

// RenderWindow joins as many blocks as fit in height rows, keeping the
// block at cursor visible. A height of 0 renders every block.
func RenderWindow(blocks []string, cursor, height int) string {
	if height == 0 || len(blocks) == 0 {
		return lipgloss.JoinVertical(lipgloss.Left, blocks...)
	}
	cursor = max(0, min(cursor, len(blocks)-1))

	start := cursor
	used := lipgloss.Height(blocks[start])
	for start > 0 && used+lipgloss.Height(blocks[start-1]) <= height {
		start--
		used += lipgloss.Height(blocks[start])
	}
	end := cursor + 1
	for end < len(blocks) && used+lipgloss.Height(blocks[end]) <= height {
		used += lipgloss.Height(blocks[end])
		end++
	}

	out := lipgloss.JoinVertical(lipgloss.Left, blocks[start:end]...)
	if end < len(blocks) {
		out += "\n" + styles.MutedText.Render(fmt.Sprintf("… %d more on this page", len(blocks)-end))
	}
	return out
}

// ViewBuilder helps construct view output with consistent formatting
type ViewBuilder struct {
	b strings.Builder
}

// NewViewBuilder creates a new view builder
func NewViewBuilder() *ViewBuilder {
	return &ViewBuilder{}
}

// Title adds a title followed by a blank line
func (v *ViewBuilder) Title(title string) *ViewBuilder {
	v.b.WriteString(styles.Title.Render(title))
	v.b.WriteString("\n\n")
	return v
}

// Subtitle adds a single subtitle line
func (v *ViewBuilder) Subtitle(subtitle string) *ViewBuilder {
	v.b.WriteString(styles.Subtitle.Render(subtitle))
	v.b.WriteString("\n")
	return v
}

// Line adds a line of text
func (v *ViewBuilder) Line(text string) *ViewBuilder {
	v.b.WriteString(text)
	v.b.WriteString("\n")
	return v
}

// BlankLine adds a blank line
func (v *ViewBuilder) BlankLine() *ViewBuilder {
	v.b.WriteString("\n")
	return v
}

// Muted adds muted text followed by a newline
func (v *ViewBuilder) Muted(text string) *ViewBuilder {
	v.b.WriteString(styles.MutedText.Render(text))
	v.b.WriteString("\n")
	return v
}

// Message adds the status line when non-empty
func (v *ViewBuilder) Message(message string, isError bool) *ViewBuilder {
	if message == "" {
		return v
	}
	v.b.WriteString(RenderMessage(message, isError))
	v.b.WriteString("\n\n")
	return v
}

// Help adds a help line with key bindings
func (v *ViewBuilder) Help(bindings ...key.Binding) *ViewBuilder {
	v.b.WriteString(RenderHelpLine(bindings...))
	return v
}

// Raw adds raw text without any formatting
func (v *ViewBuilder) Raw(text string) *ViewBuilder {
	v.b.WriteString(text)
	return v
}

// String returns the built view wrapped in the app style
func (v *ViewBuilder) String() string {
	return styles.App.Render(v.b.String())
}
