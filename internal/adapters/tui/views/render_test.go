package views

import (
	"strings"
	"testing"

	"github.com/charmbracelet/bubbles/key"
)

func TestRenderWindow(t *testing.T) {
	block := "a\nb" // two rows each
	blocks := []string{block, block, block, block, block}

	tests := []struct {
		name     string
		cursor   int
		height   int
		wantRows int
		wantMore bool
	}{
		{"unknown height renders all", 0, 0, 10, false},
		{"window from top", 0, 4, 4, true},
		{"cursor at the end", 4, 4, 4, false},
		{"cursor out of range is clamped", 9, 2, 2, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := RenderWindow(blocks, tt.cursor, tt.height)
			rows := strings.Count(out, "a\nb") * 2
			if rows != tt.wantRows {
				t.Errorf("rendered %d block rows, want %d", rows, tt.wantRows)
			}
			if got := strings.Contains(out, "more on this page"); got != tt.wantMore {
				t.Errorf("more marker = %v, want %v", got, tt.wantMore)
			}
		})
	}
}

func TestRenderHelpLineSkipsDisabled(t *testing.T) {
	on := key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add"))
	off := key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete"), key.WithDisabled())

	out := RenderHelpLine(on, off)
	if !strings.Contains(out, "add") {
		t.Errorf("help line %q is missing the enabled binding", out)
	}
	if strings.Contains(out, "delete") {
		t.Errorf("help line %q shows a disabled binding", out)
	}
}

func TestViewStateBodyHeight(t *testing.T) {
	var s ViewState
	if got := s.BodyHeight(10); got != 0 {
		t.Errorf("BodyHeight() before resize = %d, want 0", got)
	}
	s.SetSize(80, 30)
	if got := s.BodyHeight(10); got != 20 {
		t.Errorf("BodyHeight() = %d, want 20", got)
	}
	if got := s.BodyHeight(40); got != 0 {
		t.Errorf("BodyHeight() with oversized chrome = %d, want 0", got)
	}
}
