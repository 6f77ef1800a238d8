// Package srt reads and writes SubRip subtitle files and applies time offsets.
package srt

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Entry is one numbered, timed subtitle block.
// Start and End are the recorded times; Offset is applied only when writing.
type Entry struct {
	Number int
	Start  time.Duration
	End    time.Duration
	Flags  string // rendering hints after the end time, e.g. "X1:40 X2:600"
	Lines  []string
	Offset time.Duration
}

// EffectiveStart returns Start shifted by Offset, never below zero.
func (e Entry) EffectiveStart() time.Duration { return clamp(e.Start + e.Offset) }

// EffectiveEnd returns End shifted by Offset, never below zero.
func (e Entry) EffectiveEnd() time.Duration { return clamp(e.End + e.Offset) }

func clamp(d time.Duration) time.Duration {
	if d < 0 {
		return 0
	}
	return d
}

// FormatTimestamp renders d as hh:mm:ss,fff.
func FormatTimestamp(d time.Duration) string {
	d = clamp(d)
	ms := d.Milliseconds()
	h := ms / 3_600_000
	m := ms / 60_000 % 60
	s := ms / 1000 % 60
	return fmt.Sprintf("%02d:%02d:%02d,%03d", h, m, s, ms%1000)
}

var timestampRe = regexp.MustCompile(`^(-)?(\d+):(\d{1,2}):(\d{1,2})(?:[,.](\d{1,3}))?$`)

// ParseTimestamp parses h:mm:ss,fff. A period is accepted as the fraction
// separator and a short fraction is read as tenths/hundredths ("1.5" = 1500ms).
// A leading minus sign yields a negative duration.
func ParseTimestamp(value string) (time.Duration, error) {
	m := timestampRe.FindStringSubmatch(strings.TrimSpace(value))
	if m == nil {
		return 0, fmt.Errorf("%w %q", ErrInvalidTimestamp, value)
	}
	h, _ := strconv.Atoi(m[2])
	mm, _ := strconv.Atoi(m[3])
	s, _ := strconv.Atoi(m[4])
	if mm > 59 || s > 59 {
		return 0, fmt.Errorf("%w %q", ErrInvalidTimestamp, value)
	}
	var ms int
	if m[5] != "" {
		ms, _ = strconv.Atoi(m[5] + strings.Repeat("0", 3-len(m[5])))
	}
	d := time.Duration(h)*time.Hour +
		time.Duration(mm)*time.Minute +
		time.Duration(s)*time.Second +
		time.Duration(ms)*time.Millisecond
	if m[1] == "-" {
		d = -d
	}
	return d, nil
}

var offsetRe = regexp.MustCompile(`(?i)\(Offset\s+([^)]*)\)`)

// FindOffset looks for an "(Offset H:MM:SS.fff)" annotation in s.
// It returns the offset and s with the annotation removed and trimmed.
// found is false when there is no annotation; err is set when the
// annotation exists but its time does not parse.
func FindOffset(s string) (offset time.Duration, rest string, found bool, err error) {
	loc := offsetRe.FindStringSubmatchIndex(s)
	if loc == nil {
		return 0, s, false, nil
	}
	rest = strings.TrimSpace(s[:loc[0]] + s[loc[1]:])
	offset, err = ParseTimestamp(s[loc[2]:loc[3]])
	return offset, rest, true, err
}
