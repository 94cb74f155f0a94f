package cmd

import (
	"encoding/json"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"indexdesk/internal/domain"
)

func TestPlain(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want any
	}{
		{"small integer", json.Number("42"), int64(42)},
		{"float", json.Number("1.5"), 1.5},
		{"integer beyond int64", json.Number("92233720368547758070"), "92233720368547758070"},
		{"string", "alien", "alien"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := plain(tt.in); got != tt.want {
				t.Errorf("plain(%v) = %#v, want %#v", tt.in, got, tt.want)
			}
		})
	}
}

func TestDocumentsMarshalYAML(t *testing.T) {
	docs := documents{
		{"id": json.Number("9007199254740993"), "tags": []any{"a", json.Number("2")}},
	}
	data, err := yaml.Marshal(docs)
	if err != nil {
		t.Fatalf("yaml.Marshal() error = %v", err)
	}
	out := string(data)
	if !strings.Contains(out, "id: 9007199254740993") {
		t.Errorf("expected unquoted id, got:\n%s", out)
	}
	if !strings.Contains(out, "- 2") {
		t.Errorf("expected numeric tag, got:\n%s", out)
	}
}

func TestDocumentsMarshalJSONKeepsPrecision(t *testing.T) {
	docs := documents{domain.Document{"id": json.Number("9007199254740993")}}
	data, err := json.Marshal(docs)
	if err != nil {
		t.Fatalf("json.Marshal() error = %v", err)
	}
	if got := string(data); got != `[{"id":9007199254740993}]` {
		t.Errorf("json.Marshal() = %s", got)
	}
}

func TestMaskKey(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"", ""},
		{"abc", "***"},
		{"masterKey123", "********y123"},
	}
	for _, tt := range tests {
		if got := maskKey(tt.in); got != tt.want {
			t.Errorf("maskKey(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
