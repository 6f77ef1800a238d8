package srt

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Write serializes entries renumbered from 1 with their offsets applied.
func Write(w io.Writer, entries []Entry) error {
	bw := bufio.NewWriter(w)
	for i, e := range entries {
		fmt.Fprintf(bw, "%d\n", i+1)
		fmt.Fprintf(bw, "%s --> %s", FormatTimestamp(e.EffectiveStart()), FormatTimestamp(e.EffectiveEnd()))
		if e.Flags != "" {
			fmt.Fprintf(bw, " %s", e.Flags)
		}
		bw.WriteString("\n")
		for _, line := range e.Lines {
			bw.WriteString(line)
			bw.WriteString("\n")
		}
		bw.WriteString("\n")
	}
	return bw.Flush()
}

// WriteFile writes entries to path, creating parent directories.
func WriteFile(path string, entries []Entry) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create subtitles: %w", err)
	}
	if err := Write(f, entries); err != nil {
		_ = f.Close()
		return fmt.Errorf("write subtitles: %w", err)
	}
	return f.Close()
}
