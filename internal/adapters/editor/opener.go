// Package editor opens documents in the user's external editor.
package editor

import (
	"fmt"
	"os"
	"os/exec"

	"github.com/kballard/go-shellquote"

	"indexdesk/internal/ports"
)

// Opener implements ports.EditorOpener
type Opener struct {
	lookupEnv func(string) string
	lookPath  func(string) (string, error)
}

var _ ports.EditorOpener = (*Opener)(nil)

// NewOpener creates a new editor opener
func NewOpener() *Opener {
	return &Opener{lookupEnv: os.Getenv, lookPath: exec.LookPath}
}

// Command returns an exec.Cmd for opening a file in the editor.
// $EDITOR and $VISUAL may carry arguments, e.g. "code --wait".
func (o *Opener) Command(path string) (*exec.Cmd, error) {
	argv, err := o.editorArgs()
	if err != nil {
		return nil, err
	}

	cmd := exec.Command(argv[0], append(argv[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	return cmd, nil
}

// editorArgs returns the editor command line to use
func (o *Opener) editorArgs() ([]string, error) {
	for _, env := range []string{"EDITOR", "VISUAL"} {
		value := o.lookupEnv(env)
		if value == "" {
			continue
		}
		argv, err := shellquote.Split(value)
		if err != nil {
			return nil, fmt.Errorf("invalid $%s: %w", env, err)
		}
		if len(argv) > 0 {
			return argv, nil
		}
	}

	// Try common editors
	for _, editor := range []string{"nvim", "vim", "vi", "nano"} {
		if path, err := o.lookPath(editor); err == nil {
			return []string{path}, nil
		}
	}

	return nil, fmt.Errorf("no editor found: set $EDITOR environment variable")
}
