package views

// ViewState holds the layout and the status line shared by the page and
// modal models. Embed it in view models.
type ViewState struct {
	Width  int
	Height int

	// Message is a status line that stays until the next successful load.
	// Transient feedback goes through Notifications instead.
	Message    string
	MessageErr bool
}

// SetSize updates the view dimensions
func (s *ViewState) SetSize(width, height int) {
	s.Width = width
	s.Height = height
}

// SetError shows err on the status line
func (s *ViewState) SetError(err error) {
	s.Message = err.Error()
	s.MessageErr = true
}

// ClearMessage clears the status line
func (s *ViewState) ClearMessage() {
	s.Message = ""
	s.MessageErr = false
}

// BodyHeight returns the rows left once chrome rows are taken, or 0 when
// the terminal size is unknown or too small to window anything.
func (s *ViewState) BodyHeight(chrome int) int {
	if s.Height <= chrome {
		return 0
	}
	return s.Height - chrome
}
