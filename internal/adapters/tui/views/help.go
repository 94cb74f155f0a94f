package views

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"indexdesk/internal/adapters/tui/styles"
)

// HelpKeyMap defines key bindings for the help view
type HelpKeyMap struct {
	Close key.Binding
}

var HelpKeys = HelpKeyMap{
	Close: key.NewBinding(
		key.WithKeys("esc", "q", "?"),
		key.WithHelp("esc/q/?", "close"),
	),
}

// HelpModel is the model for the help view
type HelpModel struct {
	ViewState
}

// NewHelpModel creates a new help view model
func NewHelpModel() *HelpModel {
	return &HelpModel{}
}

// Init initializes the help view
func (m *HelpModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the help view
func (m *HelpModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, HelpKeys.Close) {
			return m, func() tea.Msg {
				return CloseModalMsg{}
			}
		}
	}

	return m, nil
}

// View renders the help view
func (m *HelpModel) View() string {
	var b strings.Builder

	b.WriteString(styles.Title.Render("indexdesk Help"))
	b.WriteString("\n\n")

	b.WriteString(styles.Subtitle.Render("Search engine document console"))
	b.WriteString("\n\n")

	b.WriteString(styles.InputLabel.Render("Indexes"))
	b.WriteString("\n")
	b.WriteString(helpLine("j / k / ↑ / ↓", "Move up/down"))
	b.WriteString(helpLine("ctrl+f / ctrl+b", "Next/previous page"))
	b.WriteString(helpLine("enter", "Open index"))
	b.WriteString(helpLine("/", "Type an index UID"))
	b.WriteString(helpLine("r", "Reload"))
	b.WriteString("\n")

	b.WriteString(styles.InputLabel.Render("Documents"))
	b.WriteString("\n")
	b.WriteString(helpLine("/", "Edit query, filter, sort and paging"))
	b.WriteString(helpLine("tab / enter / esc", "Next field, search, leave form"))
	b.WriteString(helpLine("j / k", "Select hit"))
	b.WriteString(helpLine("n / p", "Next/previous page"))
	b.WriteString(helpLine("r", "Search again"))
	b.WriteString(helpLine("y", "Copy selected document"))
	b.WriteString(helpLine("esc", "Back to indexes"))
	b.WriteString("\n")

	b.WriteString(styles.InputLabel.Render("Changes"))
	b.WriteString("\n")
	b.WriteString(helpLine("a", "Add documents (ctrl+v paste, ctrl+s save)"))
	b.WriteString(helpLine("e", "Edit selected document"))
	b.WriteString(helpLine("E", "Edit selected document in $EDITOR"))
	b.WriteString(helpLine("d", "Delete selected document"))
	b.WriteString("\n")

	b.WriteString(styles.InputLabel.Render("General"))
	b.WriteString("\n")
	b.WriteString(helpLine("?", "Toggle help"))
	b.WriteString(helpLine("q / Ctrl+C", "Quit"))
	b.WriteString("\n")

	b.WriteString(styles.MutedText.Render("  Changes are applied by the engine asynchronously; results refresh every few seconds."))
	b.WriteString("\n\n")

	// Close hint
	b.WriteString(styles.HelpDesc.Render("Press "))
	b.WriteString(styles.HelpKey.Render("esc"))
	b.WriteString(styles.HelpDesc.Render(" or "))
	b.WriteString(styles.HelpKey.Render("?"))
	b.WriteString(styles.HelpDesc.Render(" to close"))

	return styles.App.Render(b.String())
}

func helpLine(key, desc string) string {
	return "  " + styles.HelpKey.Render(padRight(key, 20)) + styles.HelpDesc.Render(desc) + "\n"
}

func padRight(s string, length int) string {
	if len(s) >= length {
		return s
	}
	return s + strings.Repeat(" ", length-len(s))
}
