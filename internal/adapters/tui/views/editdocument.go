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

// EditDocumentModel is the modal used to update one document
type EditDocumentModel struct {
	ViewState
	ctx     context.Context
	engine  ports.SearchEngine
	journal ports.TaskJournal
	notes   *Notifications

	index  string
	editor textarea.Model
	busy   bool
}

// NewEditDocumentModel creates the edit document modal
func NewEditDocumentModel(ctx context.Context, engine ports.SearchEngine, journal ports.TaskJournal, notes *Notifications) *EditDocumentModel {
	return &EditDocumentModel{
		ctx:     ctx,
		engine:  engine,
		journal: journal,
		notes:   notes,
		editor:  newJSONEditor(),
	}
}

// Reset loads doc into the editor
func (m *EditDocumentModel) Reset(index string, doc domain.Document) tea.Cmd {
	m.index = index
	m.busy = false
	m.editor.SetValue(doc.Pretty())
	return m.editor.Focus()
}

// Text returns the document being edited
func (m *EditDocumentModel) Text() string {
	return m.editor.Value()
}

// SetSize updates the view dimensions and the editor size
func (m *EditDocumentModel) SetSize(width, height int) {
	m.ViewState.SetSize(width, height)
	resizeEditor(&m.editor, width, height)
}

// Init initializes the modal
func (m *EditDocumentModel) Init() tea.Cmd {
	return textarea.Blink
}

// Update handles messages for the modal
func (m *EditDocumentModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
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
		case key.Matches(msg, ModalKeys.Submit):
			return m, m.submit()
		}
	}

	var cmd tea.Cmd
	m.editor, cmd = m.editor.Update(msg)
	return m, cmd
}

func (m *EditDocumentModel) submit() tea.Cmd {
	if m.busy {
		return nil
	}
	doc, err := application.ParseDocument(m.editor.Value())
	if err != nil {
		m.notes.Warning(err.Error())
		return nil
	}
	m.busy = true
	return runUpdate(m.ctx, m.engine, m.journal, m.index, doc)
}

// runUpdate sends one edited document to the engine
func runUpdate(ctx context.Context, engine ports.SearchEngine, journal ports.TaskJournal, uid string, doc domain.Document) tea.Cmd {
	return func() tea.Msg {
		result, err := commands.NewUpdateDocumentsCommand(engine, journal, uid, doc).Execute(ctx)
		if err != nil {
			return MutationErrMsg{Index: uid, Err: err}
		}
		return MutationSuccessMsg{Index: uid, Result: result}
	}
}

// View renders the modal
func (m *EditDocumentModel) View() string {
	return NewViewBuilder().
		Title("Edit Document · "+m.index).
		Muted("Fields are merged into the stored document with the same primary key.").
		BlankLine().
		Line(m.editor.View()).
		BlankLine().
		Help(ModalKeys.Submit, ModalKeys.Cancel).
		String()
}
