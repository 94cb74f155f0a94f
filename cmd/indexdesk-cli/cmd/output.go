package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"indexdesk/internal/domain"
)

// render writes v in the selected output format. text is used for the
// default human readable format.
func render(v any, text func(w io.Writer)) error {
	w := os.Stdout
	switch output {
	case "", "text":
		text(w)
		return nil
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		defer enc.Close()
		return enc.Encode(v)
	default:
		return fmt.Errorf("unknown output format %q (want text, json or yaml)", output)
	}
}

// documents marshals hits as JSON numbers in JSON and as plain scalars in YAML
type documents []domain.Document

func (d documents) MarshalYAML() (any, error) {
	return plain([]domain.Document(d)), nil
}

// plain converts json.Number values so YAML prints them as numbers.
// Integers that do not fit in int64 stay strings to keep their digits.
func plain(v any) any {
	switch t := v.(type) {
	case json.Number:
		if i, err := t.Int64(); err == nil {
			return i
		}
		if f, err := t.Float64(); err == nil && t.String() != "" && !isInteger(t.String()) {
			return f
		}
		return t.String()
	case domain.Document:
		return plain(map[string]any(t))
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[k] = plain(val)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, val := range t {
			out[i] = plain(val)
		}
		return out
	case []domain.Document:
		out := make([]any, len(t))
		for i, d := range t {
			out[i] = plain(d)
		}
		return out
	default:
		return v
	}
}

func isInteger(s string) bool {
	for i, r := range s {
		if r == '-' && i == 0 {
			continue
		}
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// readInput returns the contents of path, or stdin for "" and "-"
func readInput(path string) (string, error) {
	if path == "" || path == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("failed to read stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}
	return string(data), nil
}
