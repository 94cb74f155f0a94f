package views

import (
	"time"

	"github.com/charmbracelet/lipgloss"

	"indexdesk/internal/adapters/tui/styles"
)

// ToastKind selects the color of a toast
type ToastKind int

const (
	ToastSuccess ToastKind = iota
	ToastInfo
	ToastWarning
	ToastDanger
)

func (k ToastKind) String() string {
	switch k {
	case ToastSuccess:
		return "success"
	case ToastInfo:
		return "info"
	case ToastWarning:
		return "warning"
	case ToastDanger:
		return "danger"
	default:
		return "unknown"
	}
}

// Toast is a short-lived notification
type Toast struct {
	Kind    ToastKind
	Text    string
	Expires time.Time
}

// Notifications holds the toasts shown under every view. Expired toasts
// are hidden immediately and dropped on the next Prune.
type Notifications struct {
	toasts []Toast
	ttl    time.Duration
	now    func() time.Time
}

// NewNotifications creates an empty toast stack with the given lifetime
func NewNotifications(ttl time.Duration) *Notifications {
	if ttl <= 0 {
		ttl = 4 * time.Second
	}
	return &Notifications{ttl: ttl, now: time.Now}
}

// Push adds a toast
func (n *Notifications) Push(kind ToastKind, text string) {
	n.toasts = append(n.toasts, Toast{
		Kind:    kind,
		Text:    text,
		Expires: n.now().Add(n.ttl),
	})
}

func (n *Notifications) Success(text string) { n.Push(ToastSuccess, text) }
func (n *Notifications) Info(text string)    { n.Push(ToastInfo, text) }
func (n *Notifications) Warning(text string) { n.Push(ToastWarning, text) }
func (n *Notifications) Danger(text string)  { n.Push(ToastDanger, text) }

// Prune drops expired toasts
func (n *Notifications) Prune() {
	now := n.now()
	kept := n.toasts[:0]
	for _, t := range n.toasts {
		if now.Before(t.Expires) {
			kept = append(kept, t)
		}
	}
	n.toasts = kept
}

// Active returns the toasts that have not expired yet, oldest first
func (n *Notifications) Active() []Toast {
	now := n.now()
	var out []Toast
	for _, t := range n.toasts {
		if now.Before(t.Expires) {
			out = append(out, t)
		}
	}
	return out
}

// Count returns how many active toasts have the given kind
func (n *Notifications) Count(kind ToastKind) int {
	c := 0
	for _, t := range n.Active() {
		if t.Kind == kind {
			c++
		}
	}
	return c
}

// View renders the active toasts, newest last
func (n *Notifications) View() string {
	active := n.Active()
	if len(active) == 0 {
		return ""
	}
	lines := make([]string, 0, len(active))
	for _, t := range active {
		lines = append(lines, toastStyle(t.Kind).Render(t.Text))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func toastStyle(kind ToastKind) lipgloss.Style {
	switch kind {
	case ToastSuccess:
		return styles.ToastSuccess
	case ToastWarning:
		return styles.ToastWarning
	case ToastDanger:
		return styles.ToastDanger
	default:
		return styles.ToastInfo
	}
}
