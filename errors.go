package grantview

import (
	"errors"
	"fmt"
)

// Sentinel errors.
var (
	// ErrNotFound is returned when an evaluation or settings record does not exist.
	ErrNotFound = errors.New("not found")

	// ErrUnsupportedFileType is returned when a document is neither PDF nor DOCX.
	ErrUnsupportedFileType = errors.New("unsupported file type: only PDF and DOCX documents are accepted")

	// ErrUnknownDecision is returned for a decision outside the known set.
	ErrUnknownDecision = errors.New("unknown decision")
)

// RequestError is returned when the backend answers with a non-success status.
type RequestError struct {
	Op         string
	StatusCode int
	Detail     string
}

func (e *RequestError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("%s: backend returned status %d", e.Op, e.StatusCode)
	}
	return fmt.Sprintf("%s: backend returned status %d: %s", e.Op, e.StatusCode, e.Detail)
}

// ValidationError is returned when user-supplied values are rejected locally.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// IsNotFound reports whether err signals a missing record.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
