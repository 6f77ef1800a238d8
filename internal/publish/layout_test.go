package publish

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vmunix/xbmcpub/internal/media"
)

func TestConvertSeason(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"3", "03"},
		{"12", "12"},
		{"0", "00"},
		{"123", "123"},
		{"x", "x"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ConvertSeason(tt.in))
		})
	}
}

func TestApplyTemplate(t *testing.T) {
	tests := []struct {
		name     string
		template string
		vars     map[string]any
		want     string
	}{
		{"int padding", "S{season:02}", map[string]any{"season": 2}, "S02"},
		{"string padding", "S{season:02}", map[string]any{"season": "2"}, "S02"},
		{"plain", "{title}", map[string]any{"title": "Heat"}, "Heat"},
		{"unknown kept", "{foo}", map[string]any{}, "{foo}"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, applyTemplate(tt.template, tt.vars))
		})
	}
}

func TestLayout_Paths(t *testing.T) {
	l := Layout{}.withDefaults()

	m := media.NewMovie()
	m.SetTitle("Heat")
	m.SetYear(1995)
	assert.Equal(t, "de/Filme/Heat (1995)", l.MovieDir("de", m, false))
	assert.Equal(t, "de/Specials/Heat (1995)", l.MovieDir("de", m, true))

	s := media.NewSeries(7)
	s.SetTitle("Dark")
	assert.Equal(t, "en/Serien/Dark", l.SeriesDirFor("en", s))
	assert.Equal(t, "Season 03", l.SeasonDir("3"))

	e := &media.Episode{DisplaySeason: "1", DisplayEpisode: "3"}
	e.SetTitle("Secrets")
	assert.Equal(t, "Dark S01E03 Secrets", l.EpisodeName(s, e))
}
