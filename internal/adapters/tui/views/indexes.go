package views

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"indexdesk/internal/adapters/tui/styles"
	"indexdesk/internal/application/commands"
	"indexdesk/internal/domain"
	"indexdesk/internal/ports"
)

// maxListedIndexes bounds the single ListIndexes call made by the index list
const maxListedIndexes = 1000

// IndexesKeyMap defines key bindings for the index list
type IndexesKeyMap struct {
	Up       key.Binding
	Down     key.Binding
	NextPage key.Binding
	PrevPage key.Binding
	Open     key.Binding
	Type     key.Binding
	Reload   key.Binding
	Help     key.Binding
	Quit     key.Binding

	// active while a UID is being typed
	Go     key.Binding
	Cancel key.Binding
}

var IndexesKeys = IndexesKeyMap{
	Up: key.NewBinding(
		key.WithKeys("k", "up"),
		key.WithHelp("k/↑", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("j", "down"),
		key.WithHelp("j/↓", "down"),
	),
	NextPage: key.NewBinding(
		key.WithKeys("ctrl+f", "pgdown"),
		key.WithHelp("ctrl+f", "next page"),
	),
	PrevPage: key.NewBinding(
		key.WithKeys("ctrl+b", "pgup"),
		key.WithHelp("ctrl+b", "prev page"),
	),
	Open: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "open"),
	),
	Type: key.NewBinding(
		key.WithKeys("/"),
		key.WithHelp("/", "type uid"),
	),
	Reload: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "reload"),
	),
	Go: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "open"),
	),
	Cancel: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "cancel"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "help"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

// IndexesModel lists the indexes of the engine
type IndexesModel struct {
	ViewState
	ctx    context.Context
	engine ports.SearchEngine

	indexes   []domain.IndexInfo
	total     int64
	paginator *Paginator
	loading   bool

	typing   bool
	uidInput textinput.Model
}

type indexesLoadedMsg struct {
	result *commands.ListIndexesResult
	err    error
}

// NewIndexesModel creates a new index list model
func NewIndexesModel(ctx context.Context, engine ports.SearchEngine) *IndexesModel {
	input := textinput.New()
	input.Placeholder = "movies"
	input.Prompt = "Index UID: "
	input.CharLimit = 400

	return &IndexesModel{
		ctx:       ctx,
		engine:    engine,
		paginator: NewPaginator(15),
		uidInput:  input,
	}
}

// Init loads the index list
func (m *IndexesModel) Init() tea.Cmd {
	return m.Reload()
}

// Reload fetches the index list again
func (m *IndexesModel) Reload() tea.Cmd {
	m.loading = true
	return func() tea.Msg {
		result, err := commands.NewListIndexesCommand(m.engine, 0, maxListedIndexes).Execute(m.ctx)
		return indexesLoadedMsg{result: result, err: err}
	}
}

// Selected returns the index under the cursor
func (m *IndexesModel) Selected() (domain.IndexInfo, bool) {
	c := m.paginator.Cursor()
	if c < 0 || c >= len(m.indexes) {
		return domain.IndexInfo{}, false
	}
	return m.indexes[c], true
}

// Update handles messages for the index list
func (m *IndexesModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case indexesLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.SetError(msg.err)
			return m, nil
		}
		m.ClearMessage()
		m.indexes = msg.result.Indexes
		m.total = msg.result.Total
		m.paginator.SetTotal(len(m.indexes))
		return m, nil

	case tea.KeyMsg:
		if m.typing {
			return m, m.updateTyping(msg)
		}

		switch {
		case key.Matches(msg, IndexesKeys.Quit):
			return m, tea.Quit
		case key.Matches(msg, IndexesKeys.Up):
			m.paginator.CursorUp()
		case key.Matches(msg, IndexesKeys.Down):
			m.paginator.CursorDown()
		case key.Matches(msg, IndexesKeys.NextPage):
			m.paginator.NextPage()
		case key.Matches(msg, IndexesKeys.PrevPage):
			m.paginator.PrevPage()
		case key.Matches(msg, IndexesKeys.Reload):
			return m, m.Reload()
		case key.Matches(msg, IndexesKeys.Help):
			return m, func() tea.Msg { return SwitchToHelpMsg{} }
		case key.Matches(msg, IndexesKeys.Type):
			m.typing = true
			m.uidInput.SetValue("")
			return m, m.uidInput.Focus()
		case key.Matches(msg, IndexesKeys.Open):
			if idx, ok := m.Selected(); ok {
				return m, switchToDocuments(idx.UID)
			}
		}
		return m, nil
	}

	if m.typing {
		var cmd tea.Cmd
		m.uidInput, cmd = m.uidInput.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *IndexesModel) updateTyping(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, IndexesKeys.Cancel):
		m.typing = false
		m.uidInput.Blur()
		return nil
	case key.Matches(msg, IndexesKeys.Go):
		uid := strings.TrimSpace(m.uidInput.Value())
		if uid == "" {
			return nil
		}
		m.typing = false
		m.uidInput.Blur()
		return switchToDocuments(uid)
	}

	var cmd tea.Cmd
	m.uidInput, cmd = m.uidInput.Update(msg)
	return cmd
}

func switchToDocuments(uid string) tea.Cmd {
	return func() tea.Msg { return SwitchToDocumentsMsg{Index: uid} }
}

// View renders the index list
func (m *IndexesModel) View() string {
	v := NewViewBuilder().Title("Indexes")

	switch {
	case m.loading && len(m.indexes) == 0:
		v.Muted("Loading indexes...")
	case len(m.indexes) == 0 && m.Message == "":
		v.Muted("No indexes yet. Press / to open one by UID.")
	default:
		start, end := m.paginator.VisibleRange()
		for i := start; i < end; i++ {
			v.Line(m.renderIndex(i))
		}
		v.BlankLine()
		v.Muted(fmt.Sprintf("Page %d/%d · %d indexes",
			m.paginator.CurrentPage(), m.paginator.TotalPages(), m.total))
	}
	v.BlankLine()

	if m.typing {
		v.Line(styles.InputFocused.Render(m.uidInput.View()))
		v.BlankLine()
	}

	v.Message(m.Message, m.MessageErr)

	if m.typing {
		return v.Help(IndexesKeys.Go, IndexesKeys.Cancel).String()
	}
	return v.Help(
		IndexesKeys.Open,
		IndexesKeys.Type,
		IndexesKeys.Reload,
		IndexesKeys.Help,
		IndexesKeys.Quit,
	).String()
}

func (m *IndexesModel) renderIndex(i int) string {
	idx := m.indexes[i]
	pk := idx.PrimaryKey
	if pk == "" {
		pk = "no primary key"
	}
	line := fmt.Sprintf("%-30s %s", idx.UID, styles.MutedText.Render(pk))
	if i == m.paginator.Cursor() {
		return styles.ListSelected.Render("› " + line)
	}
	return styles.ListItem.Render("  " + line)
}
