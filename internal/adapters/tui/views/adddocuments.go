package views

import (
	"context"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"

	"indexdesk/internal/application"
	"indexdesk/internal/application/commands"
	"indexdesk/internal/domain"
	"indexdesk/internal/ports"
)

// ModalKeyMap defines key bindings shared by the JSON editing modals
type ModalKeyMap struct {
	Submit key.Binding
	Paste  key.Binding
	Cancel key.Binding
}

var ModalKeys = ModalKeyMap{
	Submit: key.NewBinding(
		key.WithKeys("ctrl+s"),
		key.WithHelp("ctrl+s", "save"),
	),
	Paste: key.NewBinding(
		key.WithKeys("ctrl+v"),
		key.WithHelp("ctrl+v", "paste"),
	),
	Cancel: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "cancel"),
	),
}

// AddDocumentsModel is the modal used to add a batch of documents
type AddDocumentsModel struct {
	ViewState
	ctx       context.Context
	engine    ports.SearchEngine
	journal   ports.TaskJournal
	clipboard ports.Clipboard
	notes     *Notifications

	index  string
	editor textarea.Model
	busy   bool
}

// NewAddDocumentsModel creates the add documents modal
func NewAddDocumentsModel(ctx context.Context, engine ports.SearchEngine, journal ports.TaskJournal, clipboard ports.Clipboard, notes *Notifications) *AddDocumentsModel {
	return &AddDocumentsModel{
		ctx:       ctx,
		engine:    engine,
		journal:   journal,
		clipboard: clipboard,
		notes:     notes,
		editor:    newJSONEditor(),
	}
}

func newJSONEditor() textarea.Model {
	ta := textarea.New()
	ta.ShowLineNumbers = true
	ta.CharLimit = 0
	ta.MaxHeight = 0
	ta.SetWidth(80)
	ta.SetHeight(16)
	return ta
}

// Reset prepares the modal for an index with an empty batch
func (m *AddDocumentsModel) Reset(index string) tea.Cmd {
	m.index = index
	m.busy = false
	m.editor.SetValue("[]")
	return m.editor.Focus()
}

// Text returns the batch being edited
func (m *AddDocumentsModel) Text() string {
	return m.editor.Value()
}

// SetSize updates the view dimensions and the editor size
func (m *AddDocumentsModel) SetSize(width, height int) {
	m.ViewState.SetSize(width, height)
	resizeEditor(&m.editor, width, height)
}

// Init initializes the modal
func (m *AddDocumentsModel) Init() tea.Cmd {
	return textarea.Blink
}

// Update handles messages for the modal
func (m *AddDocumentsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case MutationErrMsg:
		m.busy = false
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, ModalKeys.Cancel):
			return m, func() tea.Msg { return CloseModalMsg{} }
		case key.Matches(msg, ModalKeys.Paste):
			m.paste()
			return m, nil
		case key.Matches(msg, ModalKeys.Submit):
			return m, m.submit()
		}
	}

	var cmd tea.Cmd
	m.editor, cmd = m.editor.Update(msg)
	return m, cmd
}

// paste replaces the batch with the clipboard content when it holds a
// document or an array of documents. Anything else is ignored.
func (m *AddDocumentsModel) paste() {
	if m.clipboard == nil {
		return
	}
	text, err := m.clipboard.ReadAll()
	if err != nil {
		return
	}
	docs, ok := domain.CoercePastedDocuments(text)
	if !ok {
		return
	}
	m.editor.SetValue(domain.FormatDocuments(docs))
}

func (m *AddDocumentsModel) submit() tea.Cmd {
	if m.busy {
		return nil
	}
	docs, err := application.ParseDocumentBatch(m.editor.Value())
	if err != nil {
		m.notes.Warning(err.Error())
		return nil
	}

	m.busy = true
	ctx, engine, journal, uid := m.ctx, m.engine, m.journal, m.index
	return func() tea.Msg {
		result, err := commands.NewAddDocumentsCommand(engine, journal, uid, docs).Execute(ctx)
		if err != nil {
			return MutationErrMsg{Index: uid, Err: err}
		}
		return MutationSuccessMsg{Index: uid, Result: result}
	}
}

// View renders the modal
func (m *AddDocumentsModel) View() string {
	return NewViewBuilder().
		Title("Add Documents · "+m.index).
		Muted("A JSON array of objects. Documents with an existing id are replaced.").
		BlankLine().
		Line(m.editor.View()).
		BlankLine().
		Help(ModalKeys.Submit, ModalKeys.Paste, ModalKeys.Cancel).
		String()
}

func resizeEditor(ta *textarea.Model, width, height int) {
	if width > 8 {
		ta.SetWidth(width - 8)
	}
	if height > 12 {
		ta.SetHeight(height - 12)
	}
}
