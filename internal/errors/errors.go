package errors

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnsupportedValueKind is returned when a cell value is not one of
// absent, boolean, integer or text.
var ErrUnsupportedValueKind = errors.New("unsupported value kind")

// ValidationError represents an input validation failure
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error for %s: %s", e.Field, e.Message)
}

// UserError represents an error caused by user input or configuration.
// Suggestion can provide a concrete fix for the user.
type UserError struct {
	Message    string
	Suggestion string
	Err        error
}

func (e *UserError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *UserError) Unwrap() error {
	return e.Err
}

// NewUserError creates a UserError with a message and optional suggestion.
func NewUserError(message, suggestion string) *UserError {
	return &UserError{Message: message, Suggestion: suggestion}
}

// WrapUserError wraps an underlying error with a user-facing message and suggestion.
func WrapUserError(err error, message, suggestion string) *UserError {
	return &UserError{Message: message, Suggestion: suggestion, Err: err}
}

// UnsupportedValueError reports a cell whose Go value cannot be rendered.
// Row and Column are zero-based; a negative position means it is unknown.
type UnsupportedValueError struct {
	Row    int
	Column int
	Type   string
}

func (e *UnsupportedValueError) Error() string {
	if e.Row < 0 || e.Column < 0 {
		return fmt.Sprintf("%s: %s", ErrUnsupportedValueKind, e.Type)
	}
	return fmt.Sprintf("%s: %s at row %d, column %d", ErrUnsupportedValueKind, e.Type, e.Row, e.Column)
}

func (e *UnsupportedValueError) Unwrap() error {
	return ErrUnsupportedValueKind
}

// At returns a copy of e positioned at row, column.
func (e *UnsupportedValueError) At(row, column int) *UnsupportedValueError {
	return &UnsupportedValueError{Row: row, Column: column, Type: e.Type}
}

// Type checkers
func IsValidationError(err error) bool {
	var e *ValidationError
	return errors.As(err, &e)
}

func IsUserError(err error) bool {
	var e *UserError
	return errors.As(err, &e)
}

func IsUnsupportedValue(err error) bool {
	return errors.Is(err, ErrUnsupportedValueKind)
}

// UserSuggestion returns a suggestion string if err is a UserError, or a
// generic hint for unsupported values.
func UserSuggestion(err error) string {
	var ue *UserError
	if errors.As(err, &ue) && ue.Suggestion != "" {
		return ue.Suggestion
	}
	if IsUnsupportedValue(err) {
		return "Cells may only hold null, booleans, integers or strings"
	}
	return ""
}

// InvalidChoiceError builds a UserError for a flag or key that only accepts
// a fixed set of values.
func InvalidChoiceError(name, value string, choices []string) *UserError {
	return NewUserError(
		fmt.Sprintf("invalid %s %q", name, value),
		fmt.Sprintf("Use one of: %s", strings.Join(choices, ", ")),
	)
}
