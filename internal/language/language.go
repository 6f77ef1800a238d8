// Package language maps catalog language codes to their long-form descriptions.
package language

import (
	"sort"
	"strings"

	xlang "golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

type entry struct {
	code2       string // ISO 639-1
	code3       string // ISO 639-2/T
	alt3        string // ISO 639-2/B where it differs
	description string // long form used in catalog titles
}

var builtin = []entry{
	{"de", "deu", "ger", "Deutsch"},
	{"en", "eng", "", "English"},
	{"fr", "fra", "fre", "Français"},
	{"it", "ita", "", "Italiano"},
	{"es", "spa", "", "Español"},
	{"nl", "nld", "dut", "Nederlands"},
	{"pt", "por", "", "Português"},
	{"sv", "swe", "", "Svenska"},
	{"da", "dan", "", "Dansk"},
	{"no", "nor", "", "Norsk"},
	{"fi", "fin", "", "Suomi"},
	{"pl", "pol", "", "Polski"},
	{"ru", "rus", "", "Русский"},
	{"ja", "jpn", "", "日本語"},
	{"zh", "zho", "chi", "中文"},
	{"ko", "kor", "", "한국어"},
	{"tr", "tur", "", "Türkçe"},
}

// Table resolves codes and descriptions. The zero value is not usable; use New.
type Table struct {
	descriptions map[string]string // code2 → description
	byToken      map[string]string // lowercased code2/code3/description → code2
}

// New builds a table from the builtin entries plus overrides (code → description).
func New(overrides map[string]string) *Table {
	t := &Table{
		descriptions: make(map[string]string, len(builtin)+len(overrides)),
		byToken:      make(map[string]string, len(builtin)*4),
	}
	for _, e := range builtin {
		t.add(e.code2, e.description)
		t.byToken[e.code3] = e.code2
		if e.alt3 != "" {
			t.byToken[e.alt3] = e.code2
		}
	}
	for code, desc := range overrides {
		t.add(strings.ToLower(strings.TrimSpace(code)), strings.TrimSpace(desc))
	}
	return t
}

func (t *Table) add(code, description string) {
	if code == "" {
		return
	}
	t.descriptions[code] = description
	t.byToken[code] = code
	if description != "" {
		t.byToken[strings.ToLower(description)] = code
	}
}

// Known reports whether code is a recognized language code.
func (t *Table) Known(code string) bool {
	code = strings.ToLower(strings.TrimSpace(code))
	if _, ok := t.descriptions[code]; ok {
		return true
	}
	_, err := xlang.ParseBase(code)
	return err == nil && len(code) == 2
}

// Description returns the long-form description for code. Codes outside the
// table fall back to the language's own name, then to the upper-cased code.
func (t *Table) Description(code string) string {
	code = strings.ToLower(strings.TrimSpace(code))
	if code == "" {
		return ""
	}
	if d, ok := t.descriptions[code]; ok {
		return d
	}
	if tag, err := xlang.Parse(code); err == nil {
		if name := display.Self.Name(tag); name != "" {
			return name
		}
	}
	return strings.ToUpper(code)
}

// Lookup resolves a code (2 or 3 letters) or a description to the 2-letter code.
func (t *Table) Lookup(token string) (string, bool) {
	token = strings.ToLower(strings.TrimSpace(token))
	if token == "" {
		return "", false
	}
	if code, ok := t.byToken[token]; ok {
		return code, true
	}
	if t.Known(token) {
		return token, true
	}
	return "", false
}

// Codes returns the codes with a configured or builtin description, sorted.
func (t *Table) Codes() []string {
	codes := make([]string, 0, len(t.descriptions))
	for c := range t.descriptions {
		codes = append(codes, c)
	}
	sort.Strings(codes)
	return codes
}
