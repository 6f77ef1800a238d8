package publish

import (
	"fmt"
	"io"
	"path"
	"slices"
	"strings"
)

// Link modes for video files.
const (
	LinkSymlink = "symlink"
	LinkCopy    = "copy"
)

// ScriptName is the staging script written at the root of a server's output.
const ScriptName = "stage.sh"

// script collects the shell commands that move a server's output to its
// target root. Generated files are copied from the script's own directory,
// videos and images are taken from their publication paths.
type script struct {
	targetRoot string
	linkMode   string
	clean      bool
	roots      []string
	dirs       map[string]bool
	lines      []string
}

func newScript(targetRoot, linkMode string, clean bool) *script {
	return &script{
		targetRoot: targetRoot,
		linkMode:   linkMode,
		clean:      clean,
		dirs:       make(map[string]bool),
	}
}

// shellQuote wraps s in single quotes for /bin/sh.
func shellQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}

func dst(rel string) string { return `"$DST"/` + shellQuote(rel) }
func src(rel string) string { return `"$SRC"/` + shellQuote(rel) }

func isRemote(p string) bool {
	return strings.HasPrefix(p, "http://") || strings.HasPrefix(p, "https://")
}

// mkdir emits a directory creation once per directory.
func (s *script) mkdir(dir string) {
	if dir == "" || dir == "." || s.dirs[dir] {
		return
	}
	s.dirs[dir] = true
	root, _, _ := strings.Cut(dir, "/")
	if !slices.Contains(s.roots, root) {
		s.roots = append(s.roots, root)
	}
	s.lines = append(s.lines, "mkdir -p "+dst(dir))
}

// copyGenerated copies a file written to the output directory.
func (s *script) copyGenerated(rel string) {
	s.lines = append(s.lines, fmt.Sprintf("cp %s %s", src(rel), dst(rel)))
}

// video links or copies a video from its publication path.
func (s *script) video(from, rel string) {
	cmd := "ln -sf"
	if s.linkMode == LinkCopy {
		cmd = "cp"
	}
	s.lines = append(s.lines, fmt.Sprintf("%s %s %s", cmd, shellQuote(from), dst(rel)))
}

// image downloads or copies an image.
func (s *script) image(from, rel string) {
	if isRemote(from) {
		s.lines = append(s.lines, fmt.Sprintf("wget -q -O %s %s", dst(rel), shellQuote(from)))
		return
	}
	s.lines = append(s.lines, fmt.Sprintf("cp %s %s", shellQuote(from), dst(rel)))
}

// WriteTo renders the script.
func (s *script) WriteTo(w io.Writer) (int64, error) {
	var b strings.Builder
	b.WriteString("#!/bin/sh\n")
	b.WriteString("set -e\n\n")
	b.WriteString(`SRC=$(cd "$(dirname "$0")" && pwd)` + "\n")
	fmt.Fprintf(&b, "DST=%s\n\n", shellQuote(s.targetRoot))
	if s.clean {
		for _, root := range s.roots {
			fmt.Fprintf(&b, "rm -rf %s\n", dst(root))
		}
		if len(s.roots) > 0 {
			b.WriteString("\n")
		}
	}
	for _, line := range s.lines {
		b.WriteString(line)
		b.WriteString("\n")
	}
	n, err := io.WriteString(w, b.String())
	return int64(n), err
}

// joinName appends an extension to a base name inside dir.
func joinName(dir, base, ext string) string {
	return path.Join(dir, base+ext)
}
