// Package clipboard wraps the system clipboard.
package clipboard

import (
	"github.com/atotto/clipboard"

	"indexdesk/internal/ports"
)

// System implements ports.Clipboard on the OS clipboard
type System struct{}

var _ ports.Clipboard = System{}

// Available reports whether a clipboard utility was found
func (System) Available() bool {
	return !clipboard.Unsupported
}

func (System) ReadAll() (string, error) {
	return clipboard.ReadAll()
}

func (System) WriteAll(text string) error {
	return clipboard.WriteAll(text)
}
