// Package apperr holds the error taxonomy shared by the services and the HTTP layer.
package apperr

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrNotFound     = errors.New("resource not found")
	ErrForbidden    = errors.New("access denied")
	ErrUnauthorized = errors.New("authentication required")
)

// FieldMessage is a single field-level validation failure.
type FieldMessage struct {
	FieldName string `json:"fieldName"`
	Message   string `json:"message"`
}

// ValidationError carries every violated field of one request.
type ValidationError struct {
	Errors []FieldMessage
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Errors))
	for _, f := range e.Errors {
		parts = append(parts, fmt.Sprintf("%s: %s", f.FieldName, f.Message))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Validator accumulates field violations instead of stopping at the first one.
type Validator struct {
	errs []FieldMessage
}

// Check records message against field when ok is false.
func (v *Validator) Check(ok bool, field, message string) {
	if !ok {
		v.errs = append(v.errs, FieldMessage{FieldName: field, Message: message})
	}
}

// Add records a violation unconditionally.
func (v *Validator) Add(field, message string) {
	v.errs = append(v.errs, FieldMessage{FieldName: field, Message: message})
}

// Err returns nil when nothing was recorded, otherwise a *ValidationError.
func (v *Validator) Err() error {
	if len(v.errs) == 0 {
		return nil
	}
	out := make([]FieldMessage, len(v.errs))
	copy(out, v.errs)
	return &ValidationError{Errors: out}
}
