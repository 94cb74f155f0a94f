package editor

import (
	"fmt"
	"os"

	"indexdesk/internal/domain"
)

// Scratch is a temporary JSON file holding one document while it is edited
// outside the console
type Scratch struct {
	Path string
}

// NewScratch writes doc, pretty printed, to a new temporary file
func NewScratch(doc domain.Document) (*Scratch, error) {
	f, err := os.CreateTemp("", "indexdesk-*.json")
	if err != nil {
		return nil, fmt.Errorf("failed to create scratch file: %w", err)
	}
	defer f.Close()

	if _, err := f.WriteString(doc.Pretty() + "\n"); err != nil {
		os.Remove(f.Name())
		return nil, fmt.Errorf("failed to write scratch file: %w", err)
	}
	return &Scratch{Path: f.Name()}, nil
}

// Read returns the current content of the scratch file
func (s *Scratch) Read() (string, error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		return "", fmt.Errorf("failed to read scratch file: %w", err)
	}
	return string(data), nil
}

// Remove deletes the scratch file
func (s *Scratch) Remove() error {
	return os.Remove(s.Path)
}
