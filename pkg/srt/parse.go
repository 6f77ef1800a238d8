package srt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Options controls parsing.
type Options struct {
	Offset time.Duration // base offset stored on entries until an annotation replaces it
	Strict bool          // malformed numbers and times are errors instead of zero
}

// state of the line reader. Blocks cycle number → times → text → blank → number.
type state int

const (
	stateNumber state = iota
	stateTimes
	stateText
	stateBlank
)

var timesRe = regexp.MustCompile(`^\s*(\S+)\s*-->\s*(\S+)(.*)$`)

// Parse reads all entries from r in a single forward pass.
//
// An "(Offset …)" annotation standing alone between entries, or embedded in the
// first text line of an entry, replaces the running offset for that entry and
// all later ones. Embedded annotations are removed from the text.
func Parse(r io.Reader, opts Options) ([]Entry, error) {
	p := &parser{opts: opts, offset: opts.Offset}
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		p.line++
		text := strings.TrimRight(sc.Text(), "\r")
		if p.line == 1 {
			text = strings.TrimPrefix(text, "\ufeff")
		}
		if err := p.feed(text); err != nil {
			return nil, err
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read subtitles: %w", err)
	}
	if err := p.finish(); err != nil {
		return nil, err
	}
	return p.entries, nil
}

// ParseFile parses the subtitle file at path. A missing file yields no entries.
func ParseFile(path string, opts Options) ([]Entry, error) {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("open subtitles: %w", err)
	}
	defer func() { _ = f.Close() }()

	entries, err := Parse(f, opts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return entries, nil
}

type parser struct {
	opts    Options
	state   state
	line    int
	offset  time.Duration
	cur     Entry
	entries []Entry
}

func (p *parser) feed(text string) error {
	switch p.state {
	case stateNumber, stateBlank:
		return p.number(text)
	case stateTimes:
		return p.times(text)
	case stateText:
		return p.content(text)
	}
	return nil
}

func (p *parser) number(text string) error {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil
	}
	if d, rest, found, err := FindOffset(trimmed); found && rest == "" {
		return p.setOffset(d, err, trimmed)
	}
	n, err := strconv.Atoi(trimmed)
	if err != nil {
		if p.opts.Strict {
			return &FormatError{Line: p.line, Text: text, Err: ErrInvalidNumber}
		}
		n = 0
	}
	p.cur = Entry{Number: n}
	p.state = stateTimes
	return nil
}

func (p *parser) times(text string) error {
	p.state = stateText
	m := timesRe.FindStringSubmatch(text)
	if m == nil {
		return p.malformedTimes(text)
	}
	start, err := ParseTimestamp(m[1])
	if err != nil {
		return p.malformedTimes(text)
	}
	end, err := ParseTimestamp(m[2])
	if err != nil {
		return p.malformedTimes(text)
	}
	p.cur.Start = start
	p.cur.End = end
	p.cur.Flags = strings.TrimSpace(m[3])
	return nil
}

func (p *parser) malformedTimes(text string) error {
	if p.opts.Strict {
		return &FormatError{Line: p.line, Text: text, Err: ErrInvalidTimestamp}
	}
	return nil
}

func (p *parser) content(text string) error {
	if strings.TrimSpace(text) == "" {
		p.flush()
		p.state = stateBlank
		return nil
	}
	if len(p.cur.Lines) == 0 {
		d, rest, found, err := FindOffset(text)
		if found {
			if err := p.setOffset(d, err, text); err != nil {
				return err
			}
			if rest == "" {
				return nil
			}
			text = rest
		}
	}
	p.cur.Lines = append(p.cur.Lines, text)
	return nil
}

func (p *parser) setOffset(d time.Duration, err error, text string) error {
	if err != nil {
		if p.opts.Strict {
			return &FormatError{Line: p.line, Text: text, Err: err}
		}
		d = 0
	}
	p.offset = d
	return nil
}

func (p *parser) flush() {
	p.cur.Offset = p.offset
	p.entries = append(p.entries, p.cur)
	p.cur = Entry{}
}

func (p *parser) finish() error {
	switch p.state {
	case stateText:
		p.flush()
	case stateTimes:
		if p.opts.Strict {
			return &FormatError{Line: p.line, Text: "", Err: ErrMissingTimes}
		}
	}
	return nil
}
