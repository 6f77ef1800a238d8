package srt

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidTimestamp indicates a time value that is not h:mm:ss,fff.
	ErrInvalidTimestamp = errors.New("invalid timestamp")

	// ErrInvalidNumber indicates an entry number that is not an integer.
	ErrInvalidNumber = errors.New("invalid entry number")

	// ErrMissingTimes indicates an entry number without a timing line.
	ErrMissingTimes = errors.New("entry without timing line")
)

// FormatError locates a malformed line in a subtitle file.
type FormatError struct {
	Line int
	Text string
	Err  error
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("line %d: %v (%q)", e.Line, e.Err, e.Text)
}

func (e *FormatError) Unwrap() error { return e.Err }
