package publish

import (
	"fmt"
	"path"
	"regexp"
	"strconv"
	"strings"

	"github.com/vmunix/xbmcpub/internal/media"
)

// Default naming templates.
const (
	DefaultSeasonTemplate  = "Season {season:02}"
	DefaultEpisodeTemplate = "{series} S{season:02}E{episode:02} {title}"
)

// Layout places published items below a language directory.
type Layout struct {
	MoviesDir       string
	SeriesDir       string
	SpecialsDir     string
	SeasonTemplate  string
	EpisodeTemplate string
}

func (l Layout) withDefaults() Layout {
	if l.MoviesDir == "" {
		l.MoviesDir = "Filme"
	}
	if l.SeriesDir == "" {
		l.SeriesDir = "Serien"
	}
	if l.SpecialsDir == "" {
		l.SpecialsDir = "Specials"
	}
	if l.SeasonTemplate == "" {
		l.SeasonTemplate = DefaultSeasonTemplate
	}
	if l.EpisodeTemplate == "" {
		l.EpisodeTemplate = DefaultEpisodeTemplate
	}
	return l
}

// MovieDir returns the directory of a movie, or of its bonus material.
func (l Layout) MovieDir(lang string, m *media.Movie, specials bool) string {
	dir := l.MoviesDir
	if specials {
		dir = l.SpecialsDir
	}
	return path.Join(lang, dir, m.Filename())
}

// SeriesDirFor returns the directory of a series.
func (l Layout) SeriesDirFor(lang string, s *media.Series) string {
	return path.Join(lang, l.SeriesDir, s.Filename())
}

// SeasonDir returns the season folder name for a display season.
func (l Layout) SeasonDir(season string) string {
	return applyTemplate(l.SeasonTemplate, map[string]any{"season": season})
}

// EpisodeName returns the base name shared by an episode's files.
func (l Layout) EpisodeName(s *media.Series, e *media.Episode) string {
	return media.Normalize(applyTemplate(l.EpisodeTemplate, map[string]any{
		"series":  s.Filename(),
		"title":   e.Filename(),
		"season":  e.DisplaySeason,
		"episode": e.DisplayEpisode,
	}))
}

// ConvertSeason pads a season number to at least two digits.
func ConvertSeason(season string) string {
	return padNumber(season, 2)
}

func padNumber(s string, width int) string {
	s = strings.TrimSpace(s)
	if len(s) >= width {
		return s
	}
	if _, err := strconv.Atoi(s); err != nil {
		return s
	}
	return strings.Repeat("0", width-len(s)) + s
}

// formatPattern matches {name} or {name:02} style placeholders.
var formatPattern = regexp.MustCompile(`\{(\w+)(?::(\d+))?\}`)

// applyTemplate substitutes variables into a template string.
// Supports {name} for simple substitution and {name:02} for zero-padded
// integers and numeric strings.
func applyTemplate(template string, vars map[string]any) string {
	return formatPattern.ReplaceAllStringFunc(template, func(match string) string {
		parts := formatPattern.FindStringSubmatch(match)
		val, ok := vars[parts[1]]
		if !ok {
			return match
		}

		if parts[2] != "" {
			width, err := strconv.Atoi(parts[2])
			if err == nil {
				switch v := val.(type) {
				case int:
					return fmt.Sprintf("%0*d", width, v)
				case string:
					return padNumber(v, width)
				}
			}
		}

		return fmt.Sprintf("%v", val)
	})
}
