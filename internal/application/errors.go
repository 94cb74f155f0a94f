package application

import (
	"errors"
	"fmt"

	"indexdesk/internal/domain"
	"indexdesk/internal/ports"
)

// Sentinel errors for common conditions
var (
	ErrNotFound       = ports.ErrNotFound
	ErrNoPrimaryKey   = errors.New("this index has no primary key")
	ErrInvalidPayload = errors.New("invalid payload")
	ErrLimitTooLarge  = errors.New("limit too large")
)

// User-facing validation messages
var (
	MsgLimitTooLarge   = fmt.Sprintf("limit should be less than %d", domain.MaxSearchLimit)
	MsgInvalidBatch    = "Added documents should be JSON Array whose length > 0"
	MsgInvalidDocument = "Updated document should be a non-empty JSON object"
)

// ValidationError represents a validation failure with details.
// Error returns the bare message so it can be shown to the user as-is.
type ValidationError struct {
	Field   string
	Message string
	Err     error
}

func (e *ValidationError) Error() string {
	return e.Message
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// IsValidation reports whether err is (or wraps) a ValidationError
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
