package domain

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Sentinel errors for the point domain. Use errors.Is() to check these.
var (
	// ErrInvalidSubmission marks a registration rejected by field validation.
	// The concrete error is a *ValidationError.
	ErrInvalidSubmission = errors.New("invalid submission")

	// ErrPointNotFound indicates no point has the requested id.
	ErrPointNotFound = errors.New("point not found")

	// ErrPhotoStorage indicates the uploaded photo could not be persisted.
	// Nothing is written to the database when it occurs.
	ErrPhotoStorage = errors.New("photo storage failed")

	// ErrUnknownItem indicates a submission referenced an item id missing
	// from the catalog. The concrete error is an *UnknownItemsError.
	ErrUnknownItem = errors.New("unknown item")
)

// Violation names one invalid submission field.
type Violation struct {
	Field   string
	Message string
}

// ValidationError carries every violation found in a submission.
type ValidationError struct {
	Violations []Violation
}

// NewValidationError returns a ValidationError for violations.
func NewValidationError(violations ...Violation) *ValidationError {
	return &ValidationError{Violations: violations}
}

func (e *ValidationError) Error() string {
	parts := make([]string, len(e.Violations))
	for i, v := range e.Violations {
		parts[i] = v.Field + ": " + v.Message
	}
	return ErrInvalidSubmission.Error() + ": " + strings.Join(parts, "; ")
}

// Is reports ErrInvalidSubmission.
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidSubmission
}

// Fields returns the names of the violated fields in order.
func (e *ValidationError) Fields() []string {
	out := make([]string, len(e.Violations))
	for i, v := range e.Violations {
		out[i] = v.Field
	}
	return out
}

// UnknownItemsError lists the submitted item ids absent from the catalog.
// IDs may be empty when the database reported a foreign-key violation
// without naming the offending row.
type UnknownItemsError struct {
	IDs []int64
}

func (e *UnknownItemsError) Error() string {
	if len(e.IDs) == 0 {
		return ErrUnknownItem.Error()
	}
	return fmt.Sprintf("%s: %s", ErrUnknownItem, joinIDs(e.IDs))
}

// Is reports ErrUnknownItem.
func (e *UnknownItemsError) Is(target error) bool {
	return target == ErrUnknownItem
}

// Violation renders the error as a violation on the items field.
func (e *UnknownItemsError) Violation() Violation {
	if len(e.IDs) == 0 {
		return Violation{Field: "items", Message: "References an unknown item"}
	}
	return Violation{Field: "items", Message: "Unknown item id(s): " + joinIDs(e.IDs)}
}

func joinIDs(ids []int64) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.FormatInt(id, 10)
	}
	return strings.Join(parts, ", ")
}
