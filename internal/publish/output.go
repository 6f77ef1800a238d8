package publish

import (
	"io"
	"os"
	"path/filepath"
)

//go:generate mockgen -destination=mocks/mock_output.go -package=mocks . Output

// Output is the sink for generated files of one server.
// Paths are relative and use forward slashes.
type Output interface {
	MkdirAll(dir string) error
	Create(path string) (io.WriteCloser, error)
}

// DirOutput writes below a directory on the local filesystem.
type DirOutput struct {
	Root string
}

// NewDirOutput creates an Output rooted at root.
func NewDirOutput(root string) *DirOutput {
	return &DirOutput{Root: root}
}

func (d *DirOutput) abs(rel string) string {
	return filepath.Join(d.Root, filepath.FromSlash(rel))
}

// MkdirAll creates dir and its parents.
func (d *DirOutput) MkdirAll(dir string) error {
	return os.MkdirAll(d.abs(dir), 0o755)
}

// Create creates or truncates the file at path.
func (d *DirOutput) Create(path string) (io.WriteCloser, error) {
	return os.Create(d.abs(path))
}

// countingWriter counts bytes written through it.
type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}
