package ports

import "os/exec"

// EditorOpener defines the interface for opening files in an external editor
type EditorOpener interface {
	// Command returns an exec.Cmd for opening a file in the editor.
	// It uses $EDITOR, then $VISUAL, falling back to common editors.
	// This is useful for integrating with bubbletea's ExecProcess
	Command(path string) (*exec.Cmd, error)
}
