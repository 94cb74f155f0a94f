package views

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/dustin/go-humanize"

	"indexdesk/internal/adapters/editor"
	"indexdesk/internal/adapters/tui/styles"
	"indexdesk/internal/application"
	"indexdesk/internal/application/commands"
	"indexdesk/internal/domain"
	"indexdesk/internal/ports"
)

// DocumentsKeyMap defines key bindings for the documents page
type DocumentsKeyMap struct {
	Up       key.Binding
	Down     key.Binding
	Form     key.Binding
	NextPage key.Binding
	PrevPage key.Binding
	Add      key.Binding
	Edit     key.Binding
	External key.Binding
	Delete   key.Binding
	Copy     key.Binding
	Refetch  key.Binding
	Back     key.Binding
	Help     key.Binding
	Quit     key.Binding
}

var DocumentsKeys = DocumentsKeyMap{
	Up: key.NewBinding(
		key.WithKeys("k", "up"),
		key.WithHelp("k/↑", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("j", "down"),
		key.WithHelp("j/↓", "down"),
	),
	Form: key.NewBinding(
		key.WithKeys("/"),
		key.WithHelp("/", "search"),
	),
	NextPage: key.NewBinding(
		key.WithKeys("n"),
		key.WithHelp("n", "next page"),
	),
	PrevPage: key.NewBinding(
		key.WithKeys("p"),
		key.WithHelp("p", "prev page"),
	),
	Add: key.NewBinding(
		key.WithKeys("a"),
		key.WithHelp("a", "add"),
	),
	Edit: key.NewBinding(
		key.WithKeys("e"),
		key.WithHelp("e", "edit"),
	),
	External: key.NewBinding(
		key.WithKeys("E"),
		key.WithHelp("E", "$EDITOR"),
	),
	Delete: key.NewBinding(
		key.WithKeys("d"),
		key.WithHelp("d", "delete"),
	),
	Copy: key.NewBinding(
		key.WithKeys("y"),
		key.WithHelp("y", "copy"),
	),
	Refetch: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "refresh"),
	),
	Back: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "indexes"),
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

// DocumentsDeps are the collaborators of the documents page
type DocumentsDeps struct {
	Engine        ports.SearchEngine
	Journal       ports.TaskJournal // may be nil
	Clipboard     ports.Clipboard   // may be nil
	Editor        ports.EditorOpener
	Notifications *Notifications

	PollIndex  time.Duration
	PollSearch time.Duration
}

// DocumentsModel is the search and edit page of a single index
type DocumentsModel struct {
	ViewState
	ctx  context.Context
	deps DocumentsDeps

	index      string
	info       *domain.IndexInfo
	generation int

	query domain.SearchQuery
	form  *SearchForm

	result  *domain.SearchResult
	cursor  int
	seq     uint64
	loading bool
	spinner spinner.Model
}

type searchResultMsg struct {
	index  string
	seq    uint64
	result *domain.SearchResult
	err    error
}

type indexInfoMsg struct {
	generation int
	info       *domain.IndexInfo
	err        error
}

type pollSearchMsg struct {
	index      string
	generation int
}

type pollIndexMsg struct {
	index      string
	generation int
}

type externalEditMsg struct {
	index    string
	scratch  *editor.Scratch
	original string
	err      error
}

// NewDocumentsModel creates the documents page
func NewDocumentsModel(ctx context.Context, deps DocumentsDeps) *DocumentsModel {
	if deps.Notifications == nil {
		deps.Notifications = NewNotifications(0)
	}
	if deps.PollIndex <= 0 {
		deps.PollIndex = 30 * time.Second
	}
	if deps.PollSearch <= 0 {
		deps.PollSearch = 5 * time.Second
	}

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = styles.Spinner

	return &DocumentsModel{
		ctx:     ctx,
		deps:    deps,
		query:   domain.DefaultSearchQuery(),
		form:    NewSearchForm(),
		spinner: s,
	}
}

// Open resets the page for an index and starts the polling loops
func (m *DocumentsModel) Open(uid string) tea.Cmd {
	m.generation++
	m.index = uid
	m.info = nil
	m.query = domain.DefaultSearchQuery()
	m.result = nil
	m.cursor = 0
	m.form.Close()
	m.form.Set(m.query)
	m.ClearMessage()

	return tea.Batch(
		m.fetchIndex(),
		m.issueSearch(),
		m.scheduleIndexPoll(),
		m.scheduleSearchPoll(),
		m.spinner.Tick,
	)
}

// Close stops the polling loops of the current index
func (m *DocumentsModel) Close() {
	m.generation++
	m.index = ""
	m.loading = false
}

// Index returns the UID of the open index, empty when none is open
func (m *DocumentsModel) Index() string {
	return m.index
}

// Query returns the query currently applied to the results
func (m *DocumentsModel) Query() domain.SearchQuery {
	return m.query
}

// Result returns the last accepted search result
func (m *DocumentsModel) Result() *domain.SearchResult {
	return m.result
}

// Loading reports whether a search is in flight
func (m *DocumentsModel) Loading() bool {
	return m.loading
}

// Refetch runs the current query again
func (m *DocumentsModel) Refetch() tea.Cmd {
	if m.index == "" {
		return nil
	}
	return m.issueSearch()
}

func (m *DocumentsModel) primaryKey() string {
	if m.info == nil {
		return ""
	}
	return m.info.PrimaryKey
}

func (m *DocumentsModel) selected() (domain.Document, bool) {
	if m.result == nil || m.cursor < 0 || m.cursor >= len(m.result.Hits) {
		return nil, false
	}
	return m.result.Hits[m.cursor], true
}

// issueSearch sends the current query tagged with a new sequence number
func (m *DocumentsModel) issueSearch() tea.Cmd {
	m.seq++
	m.loading = true

	seq, uid, query := m.seq, m.index, m.query
	engine := m.deps.Engine
	return func() tea.Msg {
		result, err := commands.NewSearchCommand(engine, uid, query).Execute(m.ctx)
		return searchResultMsg{index: uid, seq: seq, result: result, err: err}
	}
}

func (m *DocumentsModel) fetchIndex() tea.Cmd {
	gen, uid := m.generation, m.index
	engine := m.deps.Engine
	return func() tea.Msg {
		info, err := commands.NewFetchIndexCommand(engine, uid).Execute(m.ctx)
		return indexInfoMsg{generation: gen, info: info, err: err}
	}
}

func (m *DocumentsModel) scheduleSearchPoll() tea.Cmd {
	gen, uid := m.generation, m.index
	return tea.Tick(m.deps.PollSearch, func(time.Time) tea.Msg {
		return pollSearchMsg{index: uid, generation: gen}
	})
}

func (m *DocumentsModel) scheduleIndexPoll() tea.Cmd {
	gen, uid := m.generation, m.index
	return tea.Tick(m.deps.PollIndex, func(time.Time) tea.Msg {
		return pollIndexMsg{index: uid, generation: gen}
	})
}

// current reports whether a tick belongs to the open index selection
func (m *DocumentsModel) current(uid string, generation int) bool {
	return m.index != "" && uid == m.index && generation == m.generation
}

// Init initializes the documents page
func (m *DocumentsModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the documents page
func (m *DocumentsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	notes := m.deps.Notifications

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case spinner.TickMsg:
		if m.index == "" {
			return m, nil
		}
		notes.Prune()
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case pollSearchMsg:
		if !m.current(msg.index, msg.generation) {
			return m, nil
		}
		notes.Prune()
		// A slow search must be allowed to land before the next one is sent.
		if m.loading {
			return m, m.scheduleSearchPoll()
		}
		return m, tea.Batch(m.issueSearch(), m.scheduleSearchPoll())

	case pollIndexMsg:
		if !m.current(msg.index, msg.generation) {
			return m, nil
		}
		notes.Prune()
		return m, tea.Batch(m.fetchIndex(), m.scheduleIndexPoll())

	case searchResultMsg:
		if msg.index != m.index || msg.seq != m.seq {
			return m, nil
		}
		m.loading = false
		if msg.err != nil {
			m.SetError(msg.err)
			return m, nil
		}
		m.ClearMessage()
		m.result = msg.result
		if m.cursor >= len(m.result.Hits) {
			m.cursor = max(len(m.result.Hits)-1, 0)
		}
		return m, nil

	case indexInfoMsg:
		if msg.generation != m.generation {
			return m, nil
		}
		if msg.err != nil {
			m.SetError(msg.err)
			return m, nil
		}
		m.info = msg.info
		return m, nil

	case MutationSuccessMsg:
		notes.Success(msg.Result.Message)
		if msg.Index != m.index {
			return m, nil
		}
		return m, m.Refetch()

	case MutationErrMsg:
		notes.Danger(msg.Err.Error())
		return m, nil

	case externalEditMsg:
		return m, m.finishExternalEdit(msg)

	case tea.KeyMsg:
		if m.form.Active() {
			return m, m.updateForm(msg)
		}
		return m, m.handleKey(msg)
	}

	return m, nil
}

func (m *DocumentsModel) handleKey(msg tea.KeyMsg) tea.Cmd {
	notes := m.deps.Notifications

	switch {
	case key.Matches(msg, DocumentsKeys.Quit):
		return tea.Quit

	case key.Matches(msg, DocumentsKeys.Back):
		m.Close()
		return func() tea.Msg { return SwitchToIndexesMsg{} }

	case key.Matches(msg, DocumentsKeys.Help):
		return func() tea.Msg { return SwitchToHelpMsg{} }

	case key.Matches(msg, DocumentsKeys.Form):
		return m.form.Open(m.query)

	case key.Matches(msg, DocumentsKeys.Up):
		if m.cursor > 0 {
			m.cursor--
		}

	case key.Matches(msg, DocumentsKeys.Down):
		if m.result != nil && m.cursor < len(m.result.Hits)-1 {
			m.cursor++
		}

	case key.Matches(msg, DocumentsKeys.NextPage):
		next := m.query.NextPage()
		if m.result == nil || next.Offset == m.query.Offset || int64(next.Offset) >= m.result.EstimatedTotalHits {
			return nil
		}
		return m.applyQuery(next)

	case key.Matches(msg, DocumentsKeys.PrevPage):
		if m.query.Offset == 0 {
			return nil
		}
		return m.applyQuery(m.query.PrevPage())

	case key.Matches(msg, DocumentsKeys.Refetch):
		return m.Refetch()

	case key.Matches(msg, DocumentsKeys.Add):
		uid := m.index
		return func() tea.Msg { return SwitchToAddMsg{Index: uid} }

	case key.Matches(msg, DocumentsKeys.Edit):
		doc, ok := m.selected()
		if !ok {
			notes.Info("No document selected")
			return nil
		}
		uid := m.index
		return func() tea.Msg { return SwitchToEditMsg{Index: uid, Document: doc} }

	case key.Matches(msg, DocumentsKeys.External):
		return m.startExternalEdit()

	case key.Matches(msg, DocumentsKeys.Delete):
		return m.confirmDelete()

	case key.Matches(msg, DocumentsKeys.Copy):
		m.copySelected()
	}

	return nil
}

// applyQuery makes q the current query and searches with it
func (m *DocumentsModel) applyQuery(q domain.SearchQuery) tea.Cmd {
	m.query = q
	m.cursor = 0
	m.form.Set(q)
	return m.issueSearch()
}

func (m *DocumentsModel) updateForm(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.form.Keys.Cancel):
		m.form.Close()
		return nil

	case key.Matches(msg, m.form.Keys.Submit):
		q, err := m.form.Query()
		if err == nil {
			err = commands.NewSearchCommand(m.deps.Engine, m.index, q).Validate()
		}
		if err != nil {
			m.deps.Notifications.Warning(err.Error())
			return nil
		}
		m.form.Close()
		return m.applyQuery(q)
	}

	return m.form.Update(msg)
}

func (m *DocumentsModel) confirmDelete() tea.Cmd {
	notes := m.deps.Notifications

	doc, ok := m.selected()
	if !ok {
		notes.Info("No document selected")
		return nil
	}

	cmd := commands.NewDeleteDocumentCommand(m.deps.Engine, m.deps.Journal, m.index, m.primaryKey(), doc)
	id, err := cmd.DocumentID()
	if err != nil {
		if errors.Is(err, application.ErrNoPrimaryKey) {
			notes.Danger("Cannot delete document: " + err.Error())
		} else {
			notes.Warning(err.Error())
		}
		return nil
	}
	return func() tea.Msg { return SwitchToDeleteMsg{Command: cmd, DocumentID: id} }
}

func (m *DocumentsModel) copySelected() {
	notes := m.deps.Notifications

	doc, ok := m.selected()
	if !ok {
		notes.Info("No document selected")
		return
	}
	if m.deps.Clipboard == nil {
		notes.Danger("Clipboard is not available")
		return
	}
	if err := m.deps.Clipboard.WriteAll(doc.Pretty()); err != nil {
		notes.Danger(fmt.Sprintf("Copy failed: %v", err))
		return
	}
	if id, ok := doc.PrimaryKeyValue(m.primaryKey()); ok {
		notes.Info(fmt.Sprintf("Copied document %s", id))
		return
	}
	notes.Info("Copied document")
}

func (m *DocumentsModel) startExternalEdit() tea.Cmd {
	notes := m.deps.Notifications

	doc, ok := m.selected()
	if !ok {
		notes.Info("No document selected")
		return nil
	}
	if m.deps.Editor == nil {
		notes.Danger("No editor configured")
		return nil
	}

	scratch, err := editor.NewScratch(doc)
	if err != nil {
		notes.Danger(err.Error())
		return nil
	}
	c, err := m.deps.Editor.Command(scratch.Path)
	if err != nil {
		_ = scratch.Remove()
		notes.Danger(err.Error())
		return nil
	}

	uid, original := m.index, doc.Pretty()
	return tea.ExecProcess(c, func(err error) tea.Msg {
		return externalEditMsg{index: uid, scratch: scratch, original: original, err: err}
	})
}

func (m *DocumentsModel) finishExternalEdit(msg externalEditMsg) tea.Cmd {
	notes := m.deps.Notifications
	defer func() { _ = msg.scratch.Remove() }()

	if msg.err != nil {
		notes.Danger(fmt.Sprintf("Editor failed: %v", msg.err))
		return nil
	}
	text, err := msg.scratch.Read()
	if err != nil {
		notes.Danger(err.Error())
		return nil
	}
	if strings.TrimSpace(text) == strings.TrimSpace(msg.original) {
		notes.Info("No changes")
		return nil
	}

	doc, err := application.ParseDocument(text)
	if err != nil {
		notes.Warning(err.Error())
		return nil
	}
	return runUpdate(m.ctx, m.deps.Engine, m.deps.Journal, msg.index, doc)
}

// View renders the documents page
func (m *DocumentsModel) View() string {
	v := NewViewBuilder().Title("Documents · " + m.index)

	switch {
	case m.info == nil:
		v.Muted("primary key: loading...")
	case m.info.PrimaryKey == "":
		v.Muted("no primary key: documents cannot be deleted from here")
	default:
		v.Line(RenderLabelValue("Primary key", m.info.PrimaryKey))
	}
	v.BlankLine()

	if m.form.Active() {
		v.Raw(m.form.View())
		v.BlankLine()
	} else {
		v.Subtitle(m.renderQuerySummary())
	}

	v.Line(m.renderStatus())
	v.BlankLine()
	v.Message(m.Message, m.MessageErr)

	if m.result != nil {
		if len(m.result.Hits) == 0 {
			v.Muted("No documents match.")
		} else {
			v.Raw(m.renderHits())
		}
		v.BlankLine()
	}

	if m.form.Active() {
		return v.Raw(m.form.RenderHelp()).String()
	}
	return v.Help(
		DocumentsKeys.Form,
		DocumentsKeys.NextPage,
		DocumentsKeys.PrevPage,
		DocumentsKeys.Add,
		DocumentsKeys.Edit,
		DocumentsKeys.Delete,
		DocumentsKeys.Copy,
		DocumentsKeys.Help,
	).String()
}

func (m *DocumentsModel) renderQuerySummary() string {
	q := m.query
	parts := []string{fmt.Sprintf("q: %q", q.Query)}
	if q.Filter != "" {
		parts = append(parts, "filter: "+q.Filter)
	}
	if q.Sort != "" {
		parts = append(parts, "sort: "+strings.Join(domain.ParseSort(q.Sort), ", "))
	}
	parts = append(parts, fmt.Sprintf("offset %d · limit %d", q.Offset, q.Limit))
	return strings.Join(parts, "  ")
}

func (m *DocumentsModel) renderStatus() string {
	var b strings.Builder
	if m.loading {
		b.WriteString(m.spinner.View())
		b.WriteString(" ")
	}
	switch {
	case m.result != nil:
		r := m.result
		first := 0
		if len(r.Hits) > 0 {
			first = m.query.Offset + 1
		}
		fmt.Fprintf(&b, "%d-%d of ~%s hits · %dms",
			first, m.query.Offset+len(r.Hits),
			humanize.Comma(r.EstimatedTotalHits), r.ProcessingTimeMs)
	case m.loading:
		b.WriteString("Searching...")
	}
	return b.String()
}

// renderHits renders as many hits as fit, keeping the selected one visible
func (m *DocumentsModel) renderHits() string {
	blocks := make([]string, len(m.result.Hits))
	for i, hit := range m.result.Hits {
		blocks[i] = RenderDocument(hit, i == m.cursor)
	}
	return RenderWindow(blocks, m.cursor, m.BodyHeight(14))
}
