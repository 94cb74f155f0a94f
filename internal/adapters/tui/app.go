package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"indexdesk/internal/adapters/tui/views"
	"indexdesk/internal/logger"
	"indexdesk/internal/ports"
)

// ViewState represents the current view
type ViewState int

const (
	ViewIndexes ViewState = iota
	ViewDocuments
	ViewAdd
	ViewEdit
	ViewDelete
	ViewHelp
)

// Options wires the application to its adapters
type Options struct {
	Engine    ports.SearchEngine
	Journal   ports.TaskJournal // may be nil
	Clipboard ports.Clipboard   // may be nil
	Editor    ports.EditorOpener
	Logger    *zap.Logger

	PollIndex  time.Duration
	PollSearch time.Duration
	ToastTTL   time.Duration

	// Index opens this index directly instead of the index list
	Index string
}

// App is the main TUI application model
type App struct {
	log *zap.Logger

	state     ViewState
	prev      ViewState
	notes     *views.Notifications
	indexes   *views.IndexesModel
	documents *views.DocumentsModel
	add       *views.AddDocumentsModel
	edit      *views.EditDocumentModel
	del       *views.DeleteModel
	help      *views.HelpModel

	initialIndex string
	width        int
	height       int
}

// NewApp creates a new TUI application
func NewApp(opts Options) *App {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	ctx := logger.ContextWithLogger(context.Background(), log)
	notes := views.NewNotifications(opts.ToastTTL)

	return &App{
		log:     log,
		state:   ViewIndexes,
		notes:   notes,
		indexes: views.NewIndexesModel(ctx, opts.Engine),
		documents: views.NewDocumentsModel(ctx, views.DocumentsDeps{
			Engine:        opts.Engine,
			Journal:       opts.Journal,
			Clipboard:     opts.Clipboard,
			Editor:        opts.Editor,
			Notifications: notes,
			PollIndex:     opts.PollIndex,
			PollSearch:    opts.PollSearch,
		}),
		add:          views.NewAddDocumentsModel(ctx, opts.Engine, opts.Journal, opts.Clipboard, notes),
		edit:         views.NewEditDocumentModel(ctx, opts.Engine, opts.Journal, notes),
		del:          views.NewDeleteModel(ctx),
		help:         views.NewHelpModel(),
		initialIndex: opts.Index,
	}
}

// State returns the active view
func (a *App) State() ViewState {
	return a.state
}

// Documents returns the documents page model
func (a *App) Documents() *views.DocumentsModel {
	return a.documents
}

// Notifications returns the shared toast stack
func (a *App) Notifications() *views.Notifications {
	return a.notes
}

// Init initializes the application
func (a *App) Init() tea.Cmd {
	if a.initialIndex != "" {
		a.state = ViewDocuments
		return tea.Batch(a.indexes.Init(), a.documents.Open(a.initialIndex))
	}
	return a.indexes.Init()
}

// Update handles messages for the application
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.indexes.SetSize(msg.Width, msg.Height)
		a.documents.SetSize(msg.Width, msg.Height)
		a.add.SetSize(msg.Width, msg.Height)
		a.edit.SetSize(msg.Width, msg.Height)
		a.del.SetSize(msg.Width, msg.Height)
		a.help.SetSize(msg.Width, msg.Height)
		return a, nil

	// View switching messages
	case views.SwitchToIndexesMsg:
		a.state = ViewIndexes
		return a, a.indexes.Reload()

	case views.SwitchToDocumentsMsg:
		a.log.Info("opening index", zap.String("index", msg.Index))
		a.state = ViewDocuments
		return a, a.documents.Open(msg.Index)

	case views.SwitchToAddMsg:
		a.state = ViewAdd
		return a, a.add.Reset(msg.Index)

	case views.SwitchToEditMsg:
		a.state = ViewEdit
		return a, a.edit.Reset(msg.Index, msg.Document)

	case views.SwitchToDeleteMsg:
		a.state = ViewDelete
		a.del.SetTarget(msg.Command, msg.DocumentID)
		return a, nil

	case views.SwitchToHelpMsg:
		a.prev = a.state
		a.state = ViewHelp
		return a, nil

	case views.CloseModalMsg:
		if a.state == ViewHelp {
			a.state = a.prev
		} else {
			a.state = ViewDocuments
		}
		return a, nil

	// Mutation results close the modal that issued them on success only
	case views.MutationSuccessMsg:
		a.log.Info("mutation enqueued",
			zap.String("index", msg.Index),
			zap.Int64("task", msg.Result.Task.UID),
		)
		if a.state == ViewAdd || a.state == ViewEdit || a.state == ViewDelete {
			a.state = ViewDocuments
		}
		_, cmd := a.documents.Update(msg)
		return a, cmd

	case views.MutationErrMsg:
		if a.state == ViewDelete {
			a.state = ViewDocuments
		}
		_, cmd := a.documents.Update(msg)
		a.add.Update(msg)
		a.edit.Update(msg)
		return a, cmd

	case tea.KeyMsg:
		return a, a.updateCurrent(msg)
	}

	// Background messages (polls, search results, spinner) always reach both
	// pages so their loops survive while a modal is open.
	_, docCmd := a.documents.Update(msg)
	_, idxCmd := a.indexes.Update(msg)
	if a.state == ViewDocuments || a.state == ViewIndexes {
		return a, tea.Batch(docCmd, idxCmd)
	}
	return a, tea.Batch(docCmd, idxCmd, a.updateCurrent(msg))
}

func (a *App) updateCurrent(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch a.state {
	case ViewIndexes:
		_, cmd = a.indexes.Update(msg)
	case ViewDocuments:
		_, cmd = a.documents.Update(msg)
	case ViewAdd:
		_, cmd = a.add.Update(msg)
	case ViewEdit:
		_, cmd = a.edit.Update(msg)
	case ViewDelete:
		_, cmd = a.del.Update(msg)
	case ViewHelp:
		_, cmd = a.help.Update(msg)
	}
	return cmd
}

// View renders the current view
func (a *App) View() string {
	var body string
	switch a.state {
	case ViewDocuments:
		body = a.documents.View()
	case ViewAdd:
		body = a.add.View()
	case ViewEdit:
		body = a.edit.View()
	case ViewDelete:
		body = a.del.View()
	case ViewHelp:
		body = a.help.View()
	default:
		body = a.indexes.View()
	}

	if toasts := a.notes.View(); toasts != "" {
		return lipgloss.JoinVertical(lipgloss.Left, body, lipgloss.NewStyle().PaddingLeft(2).Render(toasts))
	}
	return body
}
