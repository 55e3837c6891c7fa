package errors

import (
	"fmt"
	"sort"
	"strings"
)

// FieldError represents a single validation failure for one field: the rule
// as it was evaluated (with the message already resolved) and the resolved
// message itself. It is the expected, data-dependent outcome of validation
// and is never raised as a panic.
type FieldError struct {
	// Field is the name of the failing field.
	Field string `json:"field"`

	// Message is the resolved failure message: the validator's overriding
	// message when one was produced, otherwise the rule's own message.
	Message string `json:"message"`

	// Rule is the rule object as evaluated, carrying the resolved message.
	// It is kept loosely typed so this package stays free of the engine's
	// rule model.
	Rule interface{} `json:"-"`
}

// Error implements the standard error interface.
func (e *FieldError) Error() string {
	return fmt.Sprintf("field '%s': %s", e.Field, e.Message)
}

// Failures maps each failing field name to its FieldError. It is the
// aggregate outcome of validating every configured field: one entry per
// failing field, never more.
type Failures map[string]*FieldError

// Error implements the standard error interface with a stable, sorted
// summary of the failing fields.
func (f Failures) Error() string {
	if len(f) == 0 {
		return "validation failed"
	}
	return fmt.Sprintf("validation failed for %d field(s): %s", len(f), strings.Join(f.Fields(), ", "))
}

// Fields returns the failing field names in sorted order.
func (f Failures) Fields() []string {
	fields := make([]string, 0, len(f))
	for field := range f {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	return fields
}

// ToMap converts the failure set into a field→message map for structured
// client responses.
func (f Failures) ToMap() map[string]string {
	out := make(map[string]string, len(f))
	for field, fieldErr := range f {
		out[field] = fieldErr.Message
	}
	return out
}
