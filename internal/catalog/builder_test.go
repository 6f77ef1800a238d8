package catalog

import (
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vmunix/xbmcpub/internal/language"
	"github.com/vmunix/xbmcpub/internal/media"
	"github.com/vmunix/xbmcpub/pkg/tags"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

var testServers = []Server{
	{ID: "a", StorageRoots: []string{`\\nas`}, PublicationRoot: "smb://nas"},
	{ID: "b", StorageRoots: []string{"/mnt/b"}, PublicationRoot: "nfs://b"},
}

func newTestBuilder(strict bool) *Builder {
	langs := language.New(nil)
	parser := tags.NewParser(tags.Options{Strict: strict, KnownLanguage: langs.Known})
	return NewBuilder(Options{Strict: strict}, parser, langs, NewResolver(testServers), testLogger())
}

const testCatalog = `<?xml version="1.0" encoding="UTF-8"?>
<catalog>
  <item>
    <id>1</id>
    <title>Heat (H264)(HD)(16:9)(F16)(L de en)</title>
    <titlesort>Heat</titlesort>
    <rating>8,2</rating>
    <year>1995</year>
    <releasedate>1995-12-15</releasedate>
    <plot>Cops and robbers.</plot>
    <runtime>170</runtime>
    <mpaa>12</mpaa>
    <imdbid>tt0113277</imdbid>
    <genres><genre>Crime</genre><genre> Drama </genre><genre/></genres>
    <crew>
      <member role="Director"><name>Michael Mann</name></member>
      <member role="Writer"><name>Michael Mann</name></member>
      <member role="Producer"><name>Art Linson</name></member>
    </crew>
    <cast><star><name>Al Pacino</name><role>Vincent Hanna</role></star></cast>
    <audio><track language="ger" codec="ac3" channels="6"/></audio>
    <links>
      <link><urltype>Movie</urltype><description>Film</description><url>\\nas\filme\Heat (de).mkv</url></link>
      <link><urltype>Movie</urltype><description>Making of (Special)</description><url>/mnt/b/Heat Making Of.mkv</url></link>
      <link><urltype>Image</urltype><description>ExtraBackdrop</description><url>http://img.example/heat-fanart.jpg</url></link>
      <link><urltype>Subtitle</urltype><description>Untertitel.en. (Offset 0:00:00.500)</description><url>\\nas\filme\Heat.en.srt</url></link>
      <link><urltype>Trailer</urltype><description/><url>http://yt.example/x</url></link>
    </links>
    <customfields><movie>yes</movie><series>no</series></customfields>
  </item>
  <item>
    <id>2</id>
    <title>Dark (L de)</title>
    <year>2017</year>
    <links><link><urltype>Image</urltype><description>Poster (S1)</description><url>/mnt/b/dark-s1.jpg</url></link></links>
    <discs>
      <disc>
        <title>Disc 1 (HD)</title>
        <episodes>
          <episode><title>Secrets</title><links><link><urltype>Movie</urltype><url>/mnt/b/Dark/S01E01.mkv</url></link></links></episode>
          <episode><title>Lies (4:3)</title><links><link><urltype>Movie</urltype><url>\\NAS\serien\Dark\S01E02.mkv</url></link></links></episode>
        </episodes>
      </disc>
      <disc>
        <title>Extras (Special)</title>
        <episodes><episode><title>Behind the scenes</title></episode></episodes>
      </disc>
      <disc>
        <title>Disc 3 (S2)</title>
        <episodes><episode><title>Ghosts (L en)</title></episode></episodes>
      </disc>
    </discs>
    <customfields><series>x</series></customfields>
  </item>
</catalog>`

func buildTestCatalog(t *testing.T) *media.Collection {
	t.Helper()
	doc, err := Decode(strings.NewReader(testCatalog))
	require.NoError(t, err)

	c, err := newTestBuilder(true).Build(doc)
	require.NoError(t, err)
	require.Len(t, c.Movies, 1)
	require.Len(t, c.Series, 1)
	return c
}

func TestBuild_Movie(t *testing.T) {
	m := buildTestCatalog(t).Movies[0]

	assert.Equal(t, "Heat", m.Title())
	assert.Equal(t, "Heat (1995)", m.Filename())
	assert.Equal(t, tags.CodecH264, m.VideoCodec)
	assert.Equal(t, tags.DefinitionHD, m.Definition)
	assert.Equal(t, tags.Aspect16x9, m.AspectRatio)
	assert.Equal(t, "16", m.MPAA, "marker overrides field")
	assert.InDelta(t, 8.2, m.Rating, 0.001)
	assert.Equal(t, 170, m.Runtime)
	assert.Equal(t, "tt0113277", m.ExternalID)
	assert.Equal(t, []string{"de", "en"}, m.Languages)
	assert.Equal(t, []string{"Crime", "Drama"}, m.Genres)
	assert.Len(t, m.Directors, 1)
	assert.Len(t, m.Writers, 1)
	require.Len(t, m.Actors, 1)
	assert.Equal(t, "Vincent Hanna", m.Actors[0].Role)
	assert.Equal(t, []media.AudioStream{{Language: "de", Codec: "ac3", Channels: 6}}, m.AudioStreams)

	require.Len(t, m.Files, 4, "trailer link skipped")

	feature := m.Files[0]
	assert.Equal(t, "a", feature.Server)
	assert.Equal(t, "smb://nas/filme/Heat (de).mkv", feature.PublicationPath)
	assert.False(t, feature.Special)

	extra := m.Files[1]
	assert.Equal(t, "b", extra.Server)
	assert.True(t, extra.Special)
	assert.Equal(t, 1, extra.Index)

	require.Len(t, m.Images, 1)
	assert.Equal(t, media.ImageFanart, m.Images[0].Kind)
	assert.Equal(t, media.NoSeason, m.Images[0].Season)
	assert.Equal(t, "", m.Images[0].File.Server)

	require.Len(t, m.SubtitleStreams, 1)
	sub := m.SubtitleStreams[0]
	assert.Equal(t, "en", sub.Language)
	assert.Equal(t, 500*time.Millisecond, sub.Offset)
	assert.Same(t, m.Files[3], sub.File)

	assert.Equal(t, []string{"a", "b"}, m.Servers.IDs())
}

func TestBuild_Series(t *testing.T) {
	s := buildTestCatalog(t).Series[0]

	assert.Equal(t, 2, s.ID)
	assert.Equal(t, "Dark (2017)", s.Filename())
	assert.Equal(t, []string{"de"}, s.Languages)
	require.Len(t, s.Images, 1)
	assert.Equal(t, 1, s.Images[0].Season)
	assert.Equal(t, media.ImagePoster, s.Images[0].Kind)

	require.Len(t, s.Episodes, 4)
	secrets, lies, extras, ghosts := s.Episodes[0], s.Episodes[1], s.Episodes[2], s.Episodes[3]

	assert.Equal(t, tags.DefinitionHD, secrets.Definition, "from disc template")
	assert.Equal(t, "1", secrets.DisplaySeason)
	assert.Equal(t, "1", secrets.DisplayEpisode)
	assert.Equal(t, []string{"de"}, secrets.Languages, "inherited from series")
	assert.Equal(t, []string{"b"}, secrets.Servers.IDs())

	assert.Equal(t, tags.Aspect4x3, lies.AspectRatio)
	assert.Equal(t, "2", lies.DisplayEpisode)
	assert.Equal(t, 2, lies.ActualEpisode)
	assert.Equal(t, "smb://nas/serien/Dark/S01E02.mkv", lies.Files[0].PublicationPath)

	assert.True(t, extras.Special)
	assert.Equal(t, "0", extras.DisplaySeason)
	assert.Equal(t, tags.DefinitionUnknown, extras.Definition, "templates are per disc")

	assert.Equal(t, 2, ghosts.ActualSeason)
	assert.Equal(t, []string{"en"}, ghosts.Languages)

	assert.Equal(t, 4, s.TotalEpisodes)
	assert.Equal(t, 3, s.RegularEpisodes)
	assert.Equal(t, 1, s.Specials)
	assert.Equal(t, []int{1, 2, 1}, s.EpisodesPerSeason)
	assert.Equal(t, []string{"a", "b"}, s.Servers.IDs())
}

func TestBuild_SeriesHandles(t *testing.T) {
	const catalog = `<catalog>
  <item><title>Alpha</title><customfields><series>yes</series></customfields>
    <discs><disc><title>D1</title><episodes><episode><title>A1</title></episode></episodes></disc></discs>
  </item>
  <item><title>Beta</title><customfields><series>yes</series></customfields>
    <discs><disc><title>D1</title><episodes><episode><title>B1</title></episode></episodes></disc></discs>
  </item>
  <item><id>1</id><title>Gamma</title><customfields><series>yes</series></customfields></item>
</catalog>`
	doc, err := Decode(strings.NewReader(catalog))
	require.NoError(t, err)

	c, err := newTestBuilder(true).Build(doc)
	require.NoError(t, err)
	require.Len(t, c.Series, 3)
	alpha, beta, gamma := c.Series[0], c.Series[1], c.Series[2]

	assert.Equal(t, 1, alpha.ID)
	assert.Equal(t, 2, beta.ID)
	assert.Equal(t, 3, gamma.ID, "id 1 already allocated")

	require.Len(t, beta.Episodes, 1)
	owner, ok := c.SeriesByID(beta.Episodes[0].SeriesID)
	require.True(t, ok)
	assert.Same(t, beta, owner)
	owner, ok = c.SeriesByID(alpha.Episodes[0].SeriesID)
	require.True(t, ok)
	assert.Same(t, alpha, owner)
}

func TestBuild_DefaultLanguage(t *testing.T) {
	rec := Record{ID: "3", Title: "Plain", CustomFields: CustomFields{Fields: []CustomField{field("movie", "1")}}}

	item, err := newTestBuilder(true).Item(rec)
	require.NoError(t, err)
	assert.Equal(t, []string{DefaultDefaultLanguage}, item.Meta().Languages)
}

func field(name, value string) CustomField {
	f := CustomField{Value: value}
	f.XMLName.Local = name
	return f
}

func TestBuild_Classification(t *testing.T) {
	tests := []struct {
		name   string
		fields []CustomField
	}{
		{"neither", nil},
		{"both", []CustomField{field("movie", "yes"), field("series", "yes")}},
		{"both false", []CustomField{field("movie", "no"), field("series", "no")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := newTestBuilder(true).Item(Record{ID: "9", Title: "X", CustomFields: CustomFields{Fields: tt.fields}})
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrClassification)

			var cerr *ClassificationError
			require.True(t, errors.As(err, &cerr))
			assert.Equal(t, "9", cerr.ID)
		})
	}
}

func TestBuild_Numbers(t *testing.T) {
	rec := Record{
		ID:           "5",
		Title:        "Broken",
		Year:         "19x5",
		Runtime:      "90",
		CustomFields: CustomFields{Fields: []CustomField{field("movie", "yes")}},
	}

	_, err := newTestBuilder(true).Item(rec)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidField)

	var ferr *FieldError
	require.True(t, errors.As(err, &ferr))
	assert.Equal(t, "year", ferr.Field)

	item, err := newTestBuilder(false).Item(rec)
	require.NoError(t, err)
	assert.Equal(t, 0, item.Meta().Year())
	assert.Equal(t, 90, item.Meta().Runtime)
}

func TestBuild_TitleMarkers(t *testing.T) {
	rec := Record{ID: "6", Title: "Foo (S2x)", CustomFields: CustomFields{Fields: []CustomField{field("series", "yes")}}}

	_, err := newTestBuilder(true).Item(rec)
	assert.ErrorIs(t, err, tags.ErrInvalidNumber)
	assert.ErrorIs(t, err, ErrInvalidField)

	item, err := newTestBuilder(false).Item(Record{ID: "6", Title: "Foo (S2x)", CustomFields: rec.CustomFields})
	require.NoError(t, err)
	assert.Equal(t, "Foo", item.Meta().Title())
}

func TestBuild_YearFromReleaseDate(t *testing.T) {
	rec := Record{ID: "7", Title: "Up", ReleaseDate: "2009-05-29", CustomFields: CustomFields{Fields: []CustomField{field("movie", "yes")}}}

	item, err := newTestBuilder(true).Item(rec)
	require.NoError(t, err)
	assert.Equal(t, 2009, item.Meta().Year())
	assert.Equal(t, "2009-05-29", item.Meta().Date)
}
