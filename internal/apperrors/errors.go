package apperrors

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNotFound is returned when no product exists for a well-formed id.
var ErrNotFound = errors.New("product not found")

// FieldError names a single violated field rule.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError aggregates every field rule violated by a candidate
// record. It is recoverable: the caller can resubmit corrected data.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	msgs := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		msgs[i] = f.Message
	}
	return fmt.Sprintf("Validation Error: %s", strings.Join(msgs, ", "))
}

// InvalidIDError marks a syntactically malformed identifier. It is distinct
// from ErrNotFound: the id could never address any record.
type InvalidIDError struct {
	Field string
	Value string
}

func (e *InvalidIDError) Error() string {
	if e.Field == "" || e.Field == "_id" {
		return fmt.Sprintf("Invalid ID format: %s", e.Value)
	}
	return fmt.Sprintf("Invalid %s: %s", e.Field, e.Value)
}

// ConflictError marks a uniqueness-constraint violation reported by the
// storage backend.
type ConflictError struct {
	Field string
	Value string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("Duplicate value for field %q: %s already exists", e.Field, e.Value)
}

// AuthError marks an invalid or expired authentication token. No route uses
// authentication yet; the variant exists so the translator stays complete.
type AuthError struct {
	Expired bool
}

func (e *AuthError) Error() string {
	if e.Expired {
		return "Token expired"
	}
	return "Invalid token"
}

// UploadError marks a rejected file upload. Reserved like AuthError.
type UploadError struct {
	Reason string
}

func (e *UploadError) Error() string {
	return e.Reason
}
