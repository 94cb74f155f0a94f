package application

import (
	"fmt"
	"strings"

	"indexdesk/internal/domain"
)

// ValidateRequired checks if a string field is non-empty (after trimming whitespace).
// Returns a ValidationError if the field is empty.
func ValidateRequired(fieldName, value string) error {
	if strings.TrimSpace(value) == "" {
		// Format field name with spaces for error message (e.g., "indexUID" -> "index UID")
		displayName := formatFieldName(fieldName)
		return &ValidationError{
			Field:   fieldName,
			Message: fmt.Sprintf("%s is required", displayName),
		}
	}
	return nil
}

// formatFieldName converts camelCase field names to space-separated words
// for more readable error messages (e.g., "indexUID" -> "index UID")
func formatFieldName(fieldName string) string {
	replacements := map[string]string{
		"indexUID":   "index UID",
		"primaryKey": "primary key",
		"documentID": "document ID",
		"taskUID":    "task UID",
	}

	if formatted, ok := replacements[fieldName]; ok {
		return formatted
	}

	return fieldName
}

// ValidateSearchQuery checks the pagination bounds of a search form
func ValidateSearchQuery(q domain.SearchQuery) error {
	if q.Limit >= domain.MaxSearchLimit {
		return &ValidationError{
			Field:   "limit",
			Message: MsgLimitTooLarge,
			Err:     ErrLimitTooLarge,
		}
	}
	if q.Limit < 0 {
		return &ValidationError{Field: "limit", Message: "limit must not be negative"}
	}
	if q.Offset < 0 {
		return &ValidationError{Field: "offset", Message: "offset must not be negative"}
	}
	return nil
}

// ParseDocumentBatch validates the text of an add-documents form and
// returns the decoded batch
func ParseDocumentBatch(text string) ([]domain.Document, error) {
	docs, err := domain.ParseDocumentBatch(text)
	if err != nil {
		return nil, &ValidationError{
			Field:   "documents",
			Message: MsgInvalidBatch,
			Err:     fmt.Errorf("%w: %w", ErrInvalidPayload, err),
		}
	}
	return docs, nil
}

// ParseDocument validates the text of an edit-document form and returns
// the decoded document
func ParseDocument(text string) (domain.Document, error) {
	doc, err := domain.ParseDocument(text)
	if err != nil {
		return nil, &ValidationError{
			Field:   "document",
			Message: MsgInvalidDocument,
			Err:     fmt.Errorf("%w: %w", ErrInvalidPayload, err),
		}
	}
	return doc, nil
}
