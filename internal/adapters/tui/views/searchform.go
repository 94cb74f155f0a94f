package views

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"indexdesk/internal/adapters/tui/styles"
	"indexdesk/internal/application"
	"indexdesk/internal/domain"
)

// Search form fields, in tab order
const (
	fieldQuery = iota
	fieldOffset
	fieldLimit
	fieldFilter
	fieldSort
	fieldCount
)

// SearchFormKeyMap defines key bindings for the search form
type SearchFormKeyMap struct {
	Submit key.Binding
	Cancel key.Binding
	Next   key.Binding
	Prev   key.Binding
}

// SearchFormKeys are the default search form bindings
var SearchFormKeys = SearchFormKeyMap{
	Submit: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "search"),
	),
	Cancel: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "cancel"),
	),
	Next: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "next field"),
	),
	Prev: key.NewBinding(
		key.WithKeys("shift+tab"),
		key.WithHelp("shift+tab", "previous field"),
	),
}

type searchField struct {
	label   string
	numeric bool
	input   textinput.Model
}

// SearchForm edits a domain.SearchQuery. Offset and limit only accept digits.
type SearchForm struct {
	fields  [fieldCount]searchField
	focused int
	active  bool
	Keys    SearchFormKeyMap
}

// NewSearchForm creates an inactive search form
func NewSearchForm() *SearchForm {
	f := &SearchForm{Keys: SearchFormKeys}
	f.fields[fieldQuery] = newSearchField("Query", "full-text query", false)
	f.fields[fieldOffset] = newSearchField("Offset", "0", true)
	f.fields[fieldLimit] = newSearchField("Limit", strconv.Itoa(domain.DefaultSearchLimit), true)
	f.fields[fieldFilter] = newSearchField("Filter", "genre = horror AND year > 2000", false)
	f.fields[fieldSort] = newSearchField("Sort", "year:desc, title:asc", false)
	return f
}

func newSearchField(label, placeholder string, numeric bool) searchField {
	input := textinput.New()
	input.Placeholder = placeholder
	if numeric {
		input.CharLimit = 9
	}
	return searchField{label: label, numeric: numeric, input: input}
}

// Active reports whether the form has keyboard focus
func (f *SearchForm) Active() bool {
	return f.active
}

// Open loads q into the fields and focuses the query field
func (f *SearchForm) Open(q domain.SearchQuery) tea.Cmd {
	f.Set(q)
	f.active = true
	f.focus(fieldQuery)
	return textinput.Blink
}

// Close drops keyboard focus without touching the values
func (f *SearchForm) Close() {
	f.active = false
	f.fields[f.focused].input.Blur()
}

// Set writes q into the fields
func (f *SearchForm) Set(q domain.SearchQuery) {
	f.fields[fieldQuery].input.SetValue(q.Query)
	f.fields[fieldOffset].input.SetValue(strconv.Itoa(q.Offset))
	f.fields[fieldLimit].input.SetValue(strconv.Itoa(q.Limit))
	f.fields[fieldFilter].input.SetValue(q.Filter)
	f.fields[fieldSort].input.SetValue(q.Sort)
}

// SetValue replaces the raw text of one field
func (f *SearchForm) SetValue(field int, value string) {
	if field < 0 || field >= fieldCount {
		return
	}
	f.fields[field].input.SetValue(value)
}

// Query reads the fields back. An empty offset is 0 and an empty limit is
// the default page size.
func (f *SearchForm) Query() (domain.SearchQuery, error) {
	q := domain.SearchQuery{
		Query:  f.fields[fieldQuery].input.Value(),
		Filter: f.value(fieldFilter),
		Sort:   f.value(fieldSort),
	}

	var err error
	if q.Offset, err = f.number(fieldOffset, 0); err != nil {
		return q, err
	}
	if q.Limit, err = f.number(fieldLimit, domain.DefaultSearchLimit); err != nil {
		return q, err
	}
	return q, nil
}

func (f *SearchForm) value(field int) string {
	return strings.TrimSpace(f.fields[field].input.Value())
}

func (f *SearchForm) number(field, def int) (int, error) {
	v := f.value(field)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		name := strings.ToLower(f.fields[field].label)
		return 0, &application.ValidationError{Field: name, Message: name + " should be a number"}
	}
	return n, nil
}

// Update moves focus between fields and feeds keys to the focused one.
// Letters typed into a numeric field are dropped.
func (f *SearchForm) Update(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, f.Keys.Next):
		f.focus((f.focused + 1) % fieldCount)
		return nil
	case key.Matches(msg, f.Keys.Prev):
		f.focus((f.focused + fieldCount - 1) % fieldCount)
		return nil
	}

	field := &f.fields[f.focused]
	if field.numeric && msg.Type == tea.KeyRunes && !digits(msg.Runes) {
		return nil
	}
	var cmd tea.Cmd
	field.input, cmd = field.input.Update(msg)
	return cmd
}

func digits(runes []rune) bool {
	for _, r := range runes {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

func (f *SearchForm) focus(field int) {
	f.fields[f.focused].input.Blur()
	f.focused = field
	f.fields[field].input.Focus()
}

// View renders every field, highlighting the focused one
func (f *SearchForm) View() string {
	var b strings.Builder
	for i, field := range f.fields {
		b.WriteString(styles.InputLabel.Render(field.label))
		b.WriteString("\n")
		if i == f.focused && f.active {
			b.WriteString(styles.InputFocused.Render(field.input.View()))
		} else {
			b.WriteString(styles.InputField.Render(field.input.View()))
		}
		b.WriteString("\n")
	}
	return b.String()
}

// RenderHelp renders the form's key hints
func (f *SearchForm) RenderHelp() string {
	parts := make([]string, 0, 3)
	for _, b := range []key.Binding{f.Keys.Next, f.Keys.Submit, f.Keys.Cancel} {
		h := b.Help()
		parts = append(parts, styles.HelpKey.Render(h.Key)+" "+styles.HelpDesc.Render(h.Desc))
	}
	return strings.Join(parts, "  ")
}
