package srt

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ms(n int) time.Duration { return time.Duration(n) * time.Millisecond }

func TestParseTimestamp(t *testing.T) {
	tests := []struct {
		in   string
		want time.Duration
	}{
		{"00:00:01,000", ms(1000)},
		{"00:00:03,500", ms(3500)},
		{"01:02:03,004", time.Hour + 2*time.Minute + 3*time.Second + ms(4)},
		{"0:00:00.500", ms(500)},
		{"0:00:01.5", ms(1500)},
		{"0:00:02", 2 * time.Second},
		{"-0:00:01.250", -ms(1250)},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseTimestamp(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseTimestamp_Invalid(t *testing.T) {
	for _, in := range []string{"", "abc", "00:61:00,000", "1:2", "00:00:01,0000"} {
		_, err := ParseTimestamp(in)
		assert.ErrorIs(t, err, ErrInvalidTimestamp, in)
	}
}

func TestFormatTimestamp(t *testing.T) {
	assert.Equal(t, "00:00:01,500", FormatTimestamp(ms(1500)))
	assert.Equal(t, "01:02:03,004", FormatTimestamp(time.Hour+2*time.Minute+3*time.Second+ms(4)))
	assert.Equal(t, "00:00:00,000", FormatTimestamp(-time.Second))
}

func TestFindOffset(t *testing.T) {
	d, rest, found, err := FindOffset("Hello (Offset 0:00:02.000) world")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, 2*time.Second, d)
	assert.Equal(t, "Hello  world", rest)

	_, rest, found, err = FindOffset("Untertitel.de.")
	require.NoError(t, err)
	assert.False(t, found)
	assert.Equal(t, "Untertitel.de.", rest)

	_, _, found, err = FindOffset("(Offset soon)")
	assert.True(t, found)
	assert.ErrorIs(t, err, ErrInvalidTimestamp)
}

func TestParseWrite_OffsetApplied(t *testing.T) {
	input := "1\n00:00:01,000 --> 00:00:03,500\nHello\n\n"

	entries, err := Parse(strings.NewReader(input), Options{Offset: ms(500), Strict: true})
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, ms(1000), entries[0].Start, "offset is stored, not applied")
	assert.Equal(t, ms(500), entries[0].Offset)

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, entries))
	assert.Equal(t, "1\n00:00:01,500 --> 00:00:04,000\nHello\n\n", buf.String())
}

func TestParse_MultipleEntries(t *testing.T) {
	input := "\ufeff7\r\n00:00:01,000 --> 00:00:02,000 X1:10 X2:20\r\nLine one\r\nLine two\r\n\r\n\r\n9\r\n00:00:03,000 --> 00:00:04,000\r\n\r\n12\r\n00:00:05,000 --> 00:00:06,000\r\nLast"

	entries, err := Parse(strings.NewReader(input), Options{Strict: true})
	require.NoError(t, err)
	require.Len(t, entries, 3)

	assert.Equal(t, 7, entries[0].Number)
	assert.Equal(t, "X1:10 X2:20", entries[0].Flags)
	assert.Equal(t, []string{"Line one", "Line two"}, entries[0].Lines)
	assert.Empty(t, entries[1].Lines, "entry without text")
	assert.Equal(t, []string{"Last"}, entries[2].Lines, "entry flushed at EOF")
}

func TestParse_OffsetAnnotations(t *testing.T) {
	input := strings.Join([]string{
		"(Offset 0:00:01.000)",
		"",
		"1",
		"00:00:01,000 --> 00:00:02,000",
		"First",
		"",
		"2",
		"00:00:03,000 --> 00:00:04,000",
		"(Offset 0:00:02.000) Second",
		"",
		"3",
		"00:00:05,000 --> 00:00:06,000",
		"Third",
		"",
	}, "\n")

	entries, err := Parse(strings.NewReader(input), Options{Offset: ms(250), Strict: true})
	require.NoError(t, err)
	require.Len(t, entries, 3)

	assert.Equal(t, time.Second, entries[0].Offset, "file-level annotation replaces base offset")
	assert.Equal(t, 2*time.Second, entries[1].Offset)
	assert.Equal(t, []string{"Second"}, entries[1].Lines, "annotation removed from text")
	assert.Equal(t, 2*time.Second, entries[2].Offset, "offset carries forward")
}

func TestParse_StrictErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  error
	}{
		{"bad number", "one\n00:00:01,000 --> 00:00:02,000\nx\n", ErrInvalidNumber},
		{"bad times", "1\n00:00:01 -> 00:00:02\nx\n", ErrInvalidTimestamp},
		{"missing times", "1\n", ErrMissingTimes},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(tt.input), Options{Strict: true})
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.want)

			var ferr *FormatError
			assert.True(t, errors.As(err, &ferr))
		})
	}
}

func TestParse_Lenient(t *testing.T) {
	input := "one\nbroken times\nText\n\n"

	entries, err := Parse(strings.NewReader(input), Options{})
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, 0, entries[0].Number)
	assert.Equal(t, time.Duration(0), entries[0].Start)
	assert.Equal(t, []string{"Text"}, entries[0].Lines)
}

func TestRoundTrip(t *testing.T) {
	entries := []Entry{
		{Number: 4, Start: ms(1000), End: ms(2000), Lines: []string{"a", "b"}, Offset: ms(100)},
		{Number: 9, Start: ms(61_500), End: ms(63_000), Lines: []string{"c"}, Offset: -ms(100)},
	}

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, entries))

	parsed, err := Parse(&buf, Options{Strict: true})
	require.NoError(t, err)
	require.Len(t, parsed, len(entries))

	for i, e := range entries {
		assert.Equal(t, i+1, parsed[i].Number, "renumbered")
		assert.Equal(t, e.Lines, parsed[i].Lines)
		assert.Equal(t, e.EffectiveStart(), parsed[i].Start)
		assert.Equal(t, e.EffectiveEnd(), parsed[i].End)
	}
}

func TestParseFile_Missing(t *testing.T) {
	entries, err := ParseFile(filepath.Join(t.TempDir(), "nope.srt"), Options{Strict: true})
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "movie.de.srt")
	entries := []Entry{{Start: ms(0), End: ms(1000), Lines: []string{"Hallo"}}}

	require.NoError(t, WriteFile(path, entries))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "1\n00:00:00,000 --> 00:00:01,000\nHallo\n\n", string(data))

	parsed, err := ParseFile(path, Options{Strict: true})
	require.NoError(t, err)
	require.Len(t, parsed, 1)
	assert.Equal(t, []string{"Hallo"}, parsed[0].Lines)
}
