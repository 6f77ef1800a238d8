// internal/publish/errors.go
package publish

import "errors"

var (
	// ErrLocked indicates another run holds the server output directory.
	ErrLocked = errors.New("output directory locked by another run")

	// ErrWriteFailed indicates an output file could not be written.
	ErrWriteFailed = errors.New("failed to write output")
)
