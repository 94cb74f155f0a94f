package views

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"indexdesk/internal/adapters/tui/styles"
	"indexdesk/internal/application/commands"
)

// DeleteModel is the model for the delete confirmation view
type DeleteModel struct {
	ConfirmationModel
	ctx        context.Context
	command    *commands.DeleteDocumentCommand
	documentID string
}

// NewDeleteModel creates a new delete view model
func NewDeleteModel(ctx context.Context) *DeleteModel {
	return &DeleteModel{
		ConfirmationModel: NewConfirmationModel(),
		ctx:               ctx,
	}
}

// SetTarget sets the document the confirmation applies to
func (m *DeleteModel) SetTarget(cmd *commands.DeleteDocumentCommand, documentID string) {
	m.command = cmd
	m.documentID = documentID
	m.busy = false
}

// Init initializes the delete view
func (m *DeleteModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the delete view
func (m *DeleteModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		return m, nil

	case tea.KeyMsg:
		handled, cmd := m.HandleKeyMsg(msg,
			deleteCmd(m.ctx, m.command),
			func() tea.Msg { return CloseModalMsg{} },
		)
		if handled {
			return m, cmd
		}
	}

	return m, nil
}

// deleteCmd captures command; a later SetTarget does not change the pending delete
func deleteCmd(ctx context.Context, command *commands.DeleteDocumentCommand) tea.Cmd {
	return func() tea.Msg {
		if command == nil {
			return MutationErrMsg{Err: fmt.Errorf("no document selected")}
		}

		result, err := command.Execute(ctx)
		if err != nil {
			return MutationErrMsg{Index: command.IndexUID, Err: err}
		}
		return MutationSuccessMsg{Index: command.IndexUID, Result: result}
	}
}

// View renders the delete confirmation view
func (m *DeleteModel) View() string {
	v := NewViewBuilder().
		Title("Delete Document").
		Raw(styles.ErrorMsg.Render("This action cannot be undone!")).
		BlankLine().BlankLine()

	if m.command != nil {
		v.Line(RenderLabelValue("Index", m.command.IndexUID))
		v.Line(RenderTargetInfo("Delete", m.command.PrimaryKey, m.documentID))
		v.BlankLine()
	}

	return v.Raw(RenderConfirmPrompt("Are you sure?")).String()
}
