// internal/catalog/errors.go
package catalog

import (
	"errors"
	"fmt"
)

var (
	// ErrClassification indicates an item is flagged as both or neither movie and series.
	ErrClassification = errors.New("item is not exactly one of movie or series")

	// ErrInvalidField indicates a numeric or time field that does not parse.
	ErrInvalidField = errors.New("invalid field value")
)

// ClassificationError reports the custom-field flags of a rejected item.
type ClassificationError struct {
	ID     string
	Title  string
	Movie  bool
	Series bool
}

func (e *ClassificationError) Error() string {
	return fmt.Sprintf("item %s (%q): movie=%t series=%t", e.ID, e.Title, e.Movie, e.Series)
}

func (e *ClassificationError) Unwrap() error { return ErrClassification }

// FieldError reports a field value that could not be parsed.
type FieldError struct {
	ID    string
	Field string
	Value string
	Err   error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("item %s: field %s: %q: %v", e.ID, e.Field, e.Value, e.Err)
}

func (e *FieldError) Unwrap() []error { return []error{ErrInvalidField, e.Err} }
