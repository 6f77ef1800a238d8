package media

import (
	"strings"

	"github.com/samber/lo"
)

// Describer maps a language code to its long-form description.
type Describer interface {
	Description(code string) string
}

type substitution struct {
	from, to string
}

// languageSubs holds the rewrites for one target language: markers are
// matched inside metadata text, suffixes directly in front of a file
// extension.
type languageSubs struct {
	markers  []substitution
	suffixes []substitution
}

// newLanguageSubs rewrites every code in codes other than target, both as the
// "(code)" marker and as its long-form description.
func newLanguageSubs(target string, codes []string, d Describer) languageSubs {
	var subs languageSubs
	to := d.Description(target)
	for _, code := range lo.Uniq(codes) {
		if code == target {
			continue
		}
		marker := substitution{from: "(" + code + ")", to: "(" + target + ")"}
		subs.markers = append(subs.markers, marker)
		subs.suffixes = append(subs.suffixes, marker)
		if from := d.Description(code); from != "" && to != "" && from != to {
			subs.markers = append(subs.markers, substitution{from: "(" + from + ")", to: "(" + to + ")"})
			subs.suffixes = append(subs.suffixes, substitution{from: from, to: to})
		}
	}
	return subs
}

func (s languageSubs) text(v string) string {
	for _, sub := range s.markers {
		v = strings.ReplaceAll(v, sub.from, sub.to)
	}
	return v
}

func (s languageSubs) suffix(v, ext string) string {
	for _, sub := range s.suffixes {
		if strings.HasSuffix(v, sub.from+ext) {
			return strings.TrimSuffix(v, sub.from+ext) + sub.to + ext
		}
	}
	return v
}

func (s languageSubs) file(f *File) {
	if f.Filename != "" {
		f.Filename = strings.TrimSuffix(s.suffix(f.Filename+f.Extension, f.Extension), f.Extension)
	}
	f.StoragePath = s.suffix(f.StoragePath, f.Extension)
	f.PublicationPath = s.suffix(f.PublicationPath, f.Extension)
}

// localize rewrites v for target in place. Video files of a node that does
// not declare target are blanked first: they stay described but are not
// published for this language.
func (s languageSubs) localize(v *Video, target string) {
	if !v.HasLanguage(target) {
		for _, f := range v.Files {
			if f.Kind == FileVideo {
				f.Filename = ""
			}
		}
	}
	v.SetTitle(s.text(v.Title()))
	v.SortTitle = s.text(v.SortTitle)
	v.ExternalID = s.text(v.ExternalID)
	for _, f := range v.Files {
		s.file(f)
	}
	v.Languages = []string{target}
}

// CloneForLanguage returns an independent clone of item for the target
// language. codes are all language codes associated with the item; their
// markers are rewritten to target in titles, sort titles, external ids and
// owned file names. Series episodes are localized with the series.
func CloneForLanguage(item Item, target string, codes []string, d Describer) Item {
	subs := newLanguageSubs(target, codes, d)
	switch it := item.(type) {
	case *Movie:
		c := it.Clone()
		subs.localize(&c.Video, target)
		return c
	case *Episode:
		c := it.Clone()
		subs.localize(&c.Video, target)
		return c
	case *Series:
		c := it.Clone()
		subs.localize(&c.Video, target)
		for _, e := range c.Episodes {
			subs.localize(&e.Video, target)
		}
		return c
	default:
		return nil
	}
}

// CloneLanguages returns one clone per code, in order.
func CloneLanguages(item Item, codes []string, d Describer) []Item {
	return lo.Map(codes, func(code string, _ int) Item {
		return CloneForLanguage(item, code, codes, d)
	})
}
