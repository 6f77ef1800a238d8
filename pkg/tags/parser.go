package tags

import (
	"regexp"
	"strconv"
	"strings"
)

// Options configures a Parser.
type Options struct {
	Skin           string
	SpecialsMarker string // literal marker text, DefaultSpecialsMarker when empty
	Strict         bool   // numeric marker values that do not parse are errors

	// KnownLanguage reports whether a code inside a language marker is recognized.
	// Nil accepts every code.
	KnownLanguage func(code string) bool
}

// Parser strips markers from titles in a fixed order.
type Parser struct {
	opts  Options
	rules []rule
}

// rule matches one marker kind. apply receives the submatches of the first
// occurrence; every occurrence of the pattern is removed afterwards.
type rule struct {
	name  string
	re    *regexp.Regexp
	apply func(p *Parser, r *Result, m []string) error
}

var (
	codecRe      = regexp.MustCompile(`(?i)\((TV|BluRay|H264|H265)\)`)
	definitionRe = regexp.MustCompile(`(?i)\((SD|HD)\)`)
	aspectRe     = regexp.MustCompile(`\((4:3|16:9|21:9)\)`)
	mpaaRe       = regexp.MustCompile(`\(F(\d[^()\s]*)\)`)
	ratingRe     = regexp.MustCompile(`\(R(\d[^()\s]*)\)`)
	seasonRe     = regexp.MustCompile(`\(S(\d[^()\s]*)\)`)
	languageRe   = regexp.MustCompile(`\(L((?:\s+[A-Za-z]{2,3})+)\s*\)`)
)

// NewParser creates a Parser. The rule order is part of the contract:
// codec, definition, aspect, MPAA, rating, specials, season, languages.
func NewParser(opts Options) *Parser {
	if opts.SpecialsMarker == "" {
		opts.SpecialsMarker = DefaultSpecialsMarker
	}
	p := &Parser{opts: opts}
	p.rules = []rule{
		{name: "codec", re: codecRe, apply: applyCodec},
		{name: "definition", re: definitionRe, apply: applyDefinition},
		{name: "aspect", re: aspectRe, apply: applyAspect},
		{name: "mpaa", re: mpaaRe, apply: applyMPAA},
		{name: "rating", re: ratingRe, apply: applyRating},
		{name: "specials", re: regexp.MustCompile(regexp.QuoteMeta(opts.SpecialsMarker)), apply: applySpecial},
		{name: "season", re: seasonRe, apply: applySeason},
		{name: "languages", re: languageRe, apply: applyLanguages},
	}
	return p
}

// Parse extracts all markers from title. The returned Result.Title has the
// markers removed, whitespace runs collapsed and surrounding space trimmed.
// Parsing Result.Title again finds nothing.
func (p *Parser) Parse(title string) (Result, error) {
	var r Result
	for _, rl := range p.rules {
		m := rl.re.FindStringSubmatch(title)
		if m == nil {
			continue
		}
		if err := rl.apply(p, &r, m); err != nil {
			return Result{}, err
		}
		title = rl.re.ReplaceAllLiteralString(title, " ")
	}
	r.Title = strings.Join(strings.Fields(title), " ")
	return r, nil
}

func applyCodec(p *Parser, r *Result, m []string) error {
	switch strings.ToLower(m[1]) {
	case "tv":
		r.Codec = CodecTV
	case "bluray":
		r.Codec = CodecBluRay
	case "h264":
		r.Codec = CodecH264
	case "h265":
		r.Codec = CodecH265
	}
	if strings.EqualFold(p.opts.Skin, SkinTransparency) && (r.Codec == CodecTV || r.Codec == CodecBluRay) {
		r.Codec = CodecH264
	}
	return nil
}

func applyDefinition(_ *Parser, r *Result, m []string) error {
	if strings.EqualFold(m[1], "hd") {
		r.Definition = DefinitionHD
	} else {
		r.Definition = DefinitionSD
	}
	return nil
}

func applyAspect(_ *Parser, r *Result, m []string) error {
	r.Aspect = Aspect(m[1])
	return nil
}

func applyMPAA(p *Parser, r *Result, m []string) error {
	n, err := p.number("mpaa", m[1], r)
	if err != nil {
		return err
	}
	r.MPAA = &n
	return nil
}

func applyRating(p *Parser, r *Result, m []string) error {
	raw := m[1]
	v, err := strconv.ParseFloat(strings.Replace(raw, ",", ".", 1), 64)
	if err != nil {
		ferr := &FormatError{Marker: "rating", Value: raw, Err: err}
		if p.opts.Strict {
			return ferr
		}
		r.Issues = append(r.Issues, ferr)
		v = 0
	}
	r.Rating = &v
	return nil
}

func applySpecial(_ *Parser, r *Result, _ []string) error {
	r.Special = true
	return nil
}

func applySeason(p *Parser, r *Result, m []string) error {
	n, err := p.number("season", m[1], r)
	if err != nil {
		return err
	}
	if n > MaxSeason {
		if n, err = p.fail("season", m[1], ErrSeasonRange, r); err != nil {
			return err
		}
	}
	r.Season = &n
	return nil
}

func applyLanguages(p *Parser, r *Result, m []string) error {
	var codes []string
	for _, code := range strings.Fields(m[1]) {
		code = strings.ToLower(code)
		if p.opts.KnownLanguage != nil && !p.opts.KnownLanguage(code) {
			continue
		}
		codes = append(codes, code)
	}
	if len(codes) > 0 {
		r.Languages = codes
	}
	return nil
}

// number parses an integer marker value according to the strictness policy.
func (p *Parser) number(marker, raw string, r *Result) (int, error) {
	n, err := strconv.Atoi(raw)
	if err == nil {
		return n, nil
	}
	return p.fail(marker, raw, err, r)
}

// fail reports a bad marker value: returned when strict, recorded as an
// issue with value 0 otherwise.
func (p *Parser) fail(marker, raw string, err error, r *Result) (int, error) {
	ferr := &FormatError{Marker: marker, Value: raw, Err: err}
	if p.opts.Strict {
		return 0, ferr
	}
	r.Issues = append(r.Issues, ferr)
	return 0, nil
}
