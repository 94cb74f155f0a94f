package meili

import (
	"fmt"
	"net/http"

	"indexdesk/internal/ports"
)

// APIError is an error response returned by the search engine
type APIError struct {
	StatusCode int
	Message    string
	Code       string
	Type       string
	Link       string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("request failed: status %d", e.StatusCode)
	}
	if e.Code == "" {
		return e.Message
	}
	return fmt.Sprintf("%s (%s)", e.Message, e.Code)
}

// Is lets callers match a 404 with errors.Is(err, ports.ErrNotFound)
func (e *APIError) Is(target error) bool {
	return target == ports.ErrNotFound && e.StatusCode == http.StatusNotFound
}
