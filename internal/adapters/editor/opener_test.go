package editor

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"indexdesk/internal/domain"
)

func fakeOpener(env map[string]string, installed ...string) *Opener {
	return &Opener{
		lookupEnv: func(k string) string { return env[k] },
		lookPath: func(name string) (string, error) {
			for _, bin := range installed {
				if bin == name {
					return "/usr/bin/" + name, nil
				}
			}
			return "", errors.New("not found")
		},
	}
}

func TestOpenerCommand(t *testing.T) {
	tests := []struct {
		name      string
		env       map[string]string
		installed []string
		wantArgs  []string
		wantErr   bool
	}{
		{
			name:     "editor env",
			env:      map[string]string{"EDITOR": "hx", "VISUAL": "code"},
			wantArgs: []string{"hx", "/tmp/doc.json"},
		},
		{
			name:     "editor with arguments",
			env:      map[string]string{"EDITOR": `code --wait`},
			wantArgs: []string{"code", "--wait", "/tmp/doc.json"},
		},
		{
			name:     "visual fallback",
			env:      map[string]string{"VISUAL": "emacs -nw"},
			wantArgs: []string{"emacs", "-nw", "/tmp/doc.json"},
		},
		{
			name:      "common editor fallback",
			installed: []string{"nano"},
			wantArgs:  []string{"/usr/bin/nano", "/tmp/doc.json"},
		},
		{
			name:    "nothing available",
			wantErr: true,
		},
		{
			name:    "unbalanced quotes",
			env:     map[string]string{"EDITOR": `vim "broken`},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := fakeOpener(tt.env, tt.installed...)
			cmd, err := o.Command("/tmp/doc.json")
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got command %v", cmd.Args)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if strings.Join(cmd.Args, " ") != strings.Join(tt.wantArgs, " ") {
				t.Errorf("args = %v, want %v", cmd.Args, tt.wantArgs)
			}
		})
	}
}

func TestScratchRoundTrip(t *testing.T) {
	t.Setenv("TMPDIR", t.TempDir())

	s, err := NewScratch(domain.Document{"id": "1", "title": "Dune"})
	if err != nil {
		t.Fatalf("NewScratch: %v", err)
	}
	if filepath.Ext(s.Path) != ".json" {
		t.Errorf("scratch path %q should end in .json", s.Path)
	}

	text, err := s.Read()
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if !strings.Contains(text, `"title": "Dune"`) {
		t.Errorf("scratch content not pretty printed: %s", text)
	}

	if err := s.Remove(); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if _, err := os.Stat(s.Path); !os.IsNotExist(err) {
		t.Errorf("scratch file still present: %v", err)
	}
}
