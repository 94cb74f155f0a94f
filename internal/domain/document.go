package domain

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Payload errors returned while decoding user-edited JSON
var (
	ErrInvalidJSON   = errors.New("invalid JSON")
	ErrNotArray      = errors.New("not a JSON array")
	ErrNotObject     = errors.New("not a JSON object")
	ErrEmptyDocument = errors.New("empty payload")
)

// Document is an opaque JSON object stored in an index
type Document map[string]any

// PrimaryKeyValue returns the document's identifier for the given primary key
// field. Strings are returned as-is and numbers without exponent notation.
func (d Document) PrimaryKeyValue(primaryKey string) (string, bool) {
	if primaryKey == "" {
		return "", false
	}
	v, ok := d[primaryKey]
	if !ok || v == nil {
		return "", false
	}
	switch id := v.(type) {
	case string:
		return id, id != ""
	case json.Number:
		return id.String(), true
	case float64:
		return strconv.FormatFloat(id, 'f', -1, 64), true
	case int:
		return strconv.Itoa(id), true
	case int64:
		return strconv.FormatInt(id, 10), true
	default:
		return "", false
	}
}

// Pretty renders the document as indented JSON with sorted keys
func (d Document) Pretty() string {
	out, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return fmt.Sprintf("%v", map[string]any(d))
	}
	return string(out)
}

// FormatDocuments renders a batch as an indented JSON array
func FormatDocuments(docs []Document) string {
	if len(docs) == 0 {
		return "[]"
	}
	out, err := json.MarshalIndent(docs, "", "  ")
	if err != nil {
		return "[]"
	}
	return string(out)
}

// DecodeJSON decodes a JSON value keeping numbers as json.Number so large
// identifiers survive a round trip.
func DecodeJSON(data []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidJSON, err)
	}
	if dec.More() {
		return nil, fmt.Errorf("%w: trailing data", ErrInvalidJSON)
	}
	return v, nil
}

// ParseDocumentBatch parses text that must hold a non-empty JSON array of objects
func ParseDocumentBatch(text string) ([]Document, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyDocument
	}
	v, err := DecodeJSON([]byte(text))
	if err != nil {
		return nil, err
	}
	arr, ok := v.([]any)
	if !ok {
		return nil, ErrNotArray
	}
	if len(arr) == 0 {
		return nil, ErrEmptyDocument
	}
	docs := make([]Document, 0, len(arr))
	for i, el := range arr {
		obj, ok := el.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("element %d: %w", i, ErrNotObject)
		}
		docs = append(docs, Document(obj))
	}
	return docs, nil
}

// ParseDocument parses text that must hold a single non-empty JSON object
func ParseDocument(text string) (Document, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyDocument
	}
	v, err := DecodeJSON([]byte(text))
	if err != nil {
		return nil, err
	}
	obj, ok := v.(map[string]any)
	if !ok {
		return nil, ErrNotObject
	}
	if len(obj) == 0 {
		return nil, ErrEmptyDocument
	}
	return Document(obj), nil
}

// CoercePastedDocuments interprets pasted text as a document batch. A single
// object becomes a one-element batch. Anything that is not an object or an
// array of objects is rejected with ok=false.
func CoercePastedDocuments(text string) ([]Document, bool) {
	v, err := DecodeJSON([]byte(strings.TrimSpace(text)))
	if err != nil {
		return nil, false
	}
	switch val := v.(type) {
	case map[string]any:
		return []Document{Document(val)}, true
	case []any:
		docs := make([]Document, 0, len(val))
		for _, el := range val {
			obj, ok := el.(map[string]any)
			if !ok {
				return nil, false
			}
			docs = append(docs, Document(obj))
		}
		return docs, true
	default:
		return nil, false
	}
}
