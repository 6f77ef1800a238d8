package tags

import (
	"errors"
	"fmt"
)

// MaxSeason is the highest season a (S<n>) marker may carry.
const MaxSeason = 999

var (
	// ErrInvalidNumber is wrapped by FormatError.
	ErrInvalidNumber = errors.New("invalid number")
	// ErrSeasonRange is the cause of a FormatError for a season above MaxSeason.
	ErrSeasonRange = fmt.Errorf("season above %d", MaxSeason)
)

// FormatError reports a marker whose numeric value does not parse.
type FormatError struct {
	Marker string // e.g. "season"
	Value  string // raw text captured inside the marker
	Err    error
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("%s marker: %v %q", e.Marker, ErrInvalidNumber, e.Value)
}

func (e *FormatError) Unwrap() []error {
	return []error{ErrInvalidNumber, e.Err}
}
