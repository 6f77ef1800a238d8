package tags

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_AllMarkers(t *testing.T) {
	p := NewParser(Options{Strict: true})

	r, err := p.Parse("Foo (H264)(HD)(16:9)(S2)")
	require.NoError(t, err)

	assert.Equal(t, "Foo", r.Title)
	assert.Equal(t, CodecH264, r.Codec)
	assert.Equal(t, DefinitionHD, r.Definition)
	assert.Equal(t, Aspect16x9, r.Aspect)
	require.NotNil(t, r.Season)
	assert.Equal(t, 2, *r.Season)
	assert.Nil(t, r.Languages)
}

func TestParse_Languages(t *testing.T) {
	p := NewParser(Options{Strict: true})

	r, err := p.Parse("Bar (L de en)")
	require.NoError(t, err)

	assert.Equal(t, "Bar", r.Title)
	assert.Equal(t, []string{"de", "en"}, r.Languages)
}

func TestParse_LanguagesUnknownIgnored(t *testing.T) {
	known := map[string]bool{"de": true, "en": true}
	p := NewParser(Options{KnownLanguage: func(c string) bool { return known[c] }})

	r, err := p.Parse("Bar (L de xx)")
	require.NoError(t, err)
	assert.Equal(t, []string{"de"}, r.Languages)
	assert.Equal(t, "Bar", r.Title)

	r, err = p.Parse("Bar (L xx yy)")
	require.NoError(t, err)
	assert.Nil(t, r.Languages, "no known code leaves languages untouched")
	assert.Equal(t, "Bar", r.Title, "marker is removed even when ignored")
}

func TestParse_Codec(t *testing.T) {
	tests := []struct {
		title string
		skin  string
		want  Codec
	}{
		{"A (TV)", "", CodecTV},
		{"A (BluRay)", "", CodecBluRay},
		{"A (H265)", "", CodecH265},
		{"A (TV)", SkinTransparency, CodecH264},
		{"A (BluRay)", "Transparency", CodecH264},
		{"A (H265)", SkinTransparency, CodecH265},
		{"A", SkinTransparency, CodecUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.title+"/"+tt.skin, func(t *testing.T) {
			r, err := NewParser(Options{Skin: tt.skin}).Parse(tt.title)
			require.NoError(t, err)
			assert.Equal(t, tt.want, r.Codec)
			assert.Equal(t, "A", r.Title)
		})
	}
}

func TestParse_Overrides(t *testing.T) {
	p := NewParser(Options{Strict: true})

	r, err := p.Parse("Film (F16) (R7,5) (4:3) (SD)")
	require.NoError(t, err)

	assert.Equal(t, "Film", r.Title)
	require.NotNil(t, r.MPAA)
	assert.Equal(t, 16, *r.MPAA)
	require.NotNil(t, r.Rating)
	assert.InDelta(t, 7.5, *r.Rating, 0.0001)
	assert.Equal(t, Aspect4x3, r.Aspect)
	assert.Equal(t, DefinitionSD, r.Definition)
}

func TestParse_SpecialsMarker(t *testing.T) {
	p := NewParser(Options{SpecialsMarker: "[Extra]"})

	r, err := p.Parse("Making of [Extra]")
	require.NoError(t, err)
	assert.True(t, r.Special)
	assert.Equal(t, "Making of", r.Title)

	r, err = NewParser(Options{}).Parse("Making of (Special)")
	require.NoError(t, err)
	assert.True(t, r.Special, "default marker")
}

func TestParse_PlainParenthesesUntouched(t *testing.T) {
	p := NewParser(Options{Strict: true})

	for _, title := range []string{"Fargo (Final Cut)", "Sin City (Recut)", "La Haine (La)", "Solaris (SF)"} {
		r, err := p.Parse(title)
		require.NoError(t, err, title)
		assert.Equal(t, title, r.Title)
		assert.True(t, r.Empty(), title)
	}
}

func TestParse_FormatErrorStrict(t *testing.T) {
	p := NewParser(Options{Strict: true})

	_, err := p.Parse("Foo (S2x)")
	require.Error(t, err)

	var ferr *FormatError
	require.True(t, errors.As(err, &ferr))
	assert.Equal(t, "season", ferr.Marker)
	assert.Equal(t, "2x", ferr.Value)
	assert.ErrorIs(t, err, ErrInvalidNumber)
}

func TestParse_FormatErrorLenient(t *testing.T) {
	p := NewParser(Options{})

	r, err := p.Parse("Foo (F1a)(S3)")
	require.NoError(t, err)
	require.NotNil(t, r.MPAA)
	assert.Equal(t, 0, *r.MPAA)
	require.NotNil(t, r.Season)
	assert.Equal(t, 3, *r.Season)
	require.Len(t, r.Issues, 1)
	assert.ErrorIs(t, r.Issues[0], ErrInvalidNumber)
	assert.Equal(t, "Foo", r.Title)
}

func TestParse_SeasonRange(t *testing.T) {
	_, err := NewParser(Options{Strict: true}).Parse("Foo (S99999999999)")
	var ferr *FormatError
	require.True(t, errors.As(err, &ferr))
	assert.Equal(t, "season", ferr.Marker)
	assert.ErrorIs(t, err, ErrInvalidNumber)

	_, err = NewParser(Options{Strict: true}).Parse("Foo (S1000)")
	assert.ErrorIs(t, err, ErrSeasonRange)

	r, err := NewParser(Options{}).Parse("Foo (S1000)")
	require.NoError(t, err)
	require.NotNil(t, r.Season)
	assert.Equal(t, 0, *r.Season)
	require.Len(t, r.Issues, 1)
	assert.ErrorIs(t, r.Issues[0], ErrSeasonRange)

	r, err = NewParser(Options{Strict: true}).Parse("Foo (S999)")
	require.NoError(t, err)
	assert.Equal(t, MaxSeason, *r.Season)
}

func TestParse_Idempotent(t *testing.T) {
	p := NewParser(Options{Strict: true})

	titles := []string{
		"Foo (H264)(HD)(16:9)(F12)(R8)(Special)(S2)(L de en)",
		"  Spaced   Title (BluRay)  (21:9) ",
		"Bar (L de en)",
		"Plain",
	}
	for _, title := range titles {
		t.Run(title, func(t *testing.T) {
			first, err := p.Parse(title)
			require.NoError(t, err)

			second, err := p.Parse(first.Title)
			require.NoError(t, err)
			assert.Equal(t, first.Title, second.Title)
			assert.True(t, second.Empty())
		})
	}
}

func TestParse_LanguageMarkerReplacesNotMerges(t *testing.T) {
	p := NewParser(Options{})

	r, err := p.Parse("X (L fr)")
	require.NoError(t, err)
	assert.Equal(t, []string{"fr"}, r.Languages)
}
