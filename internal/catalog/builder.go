// Package catalog reads catalog exports and builds the media graph from them.
package catalog

import (
	"log/slog"
	"regexp"
	"strconv"
	"strings"

	"github.com/samber/lo"

	"github.com/vmunix/xbmcpub/internal/language"
	"github.com/vmunix/xbmcpub/internal/media"
	"github.com/vmunix/xbmcpub/pkg/srt"
	"github.com/vmunix/xbmcpub/pkg/tags"
)

// Defaults for Options fields left empty.
const (
	DefaultMovieField      = "movie"
	DefaultSeriesField     = "series"
	DefaultSubtitlePrefix  = "Untertitel"
	DefaultDefaultLanguage = "de"
)

// Options configures a Builder.
type Options struct {
	MovieField      string // custom field flagging movies
	SeriesField     string // custom field flagging series
	SubtitlePrefix  string // subtitle link descriptions start with "<prefix>.<lang>."
	DefaultLanguage string // used when neither item nor series declares languages
	Strict          bool   // numeric fields that do not parse are errors
}

// Builder turns catalog records into media items.
type Builder struct {
	opts      Options
	parser    *tags.Parser
	languages *language.Table
	resolver  *Resolver
	subtitles *regexp.Regexp
	log       *slog.Logger

	seriesIDs    map[int]bool // handles handed out since the last Build
	nextSeriesID int
}

// NewBuilder creates a Builder. A nil resolver leaves every file unbound.
func NewBuilder(opts Options, parser *tags.Parser, languages *language.Table, resolver *Resolver, logger *slog.Logger) *Builder {
	if opts.MovieField == "" {
		opts.MovieField = DefaultMovieField
	}
	if opts.SeriesField == "" {
		opts.SeriesField = DefaultSeriesField
	}
	if opts.SubtitlePrefix == "" {
		opts.SubtitlePrefix = DefaultSubtitlePrefix
	}
	if opts.DefaultLanguage == "" {
		opts.DefaultLanguage = DefaultDefaultLanguage
	}
	if resolver == nil {
		resolver = NewResolver(nil)
	}
	return &Builder{
		opts:      opts,
		parser:    parser,
		languages: languages,
		resolver:  resolver,
		subtitles: subtitlePattern(opts.SubtitlePrefix),
		log:       logger.With("component", "catalog"),
		seriesIDs: make(map[int]bool),
	}
}

// Build converts every record of doc. The first error aborts the build.
func (b *Builder) Build(doc *Document) (*media.Collection, error) {
	c := &media.Collection{}
	b.seriesIDs = make(map[int]bool)
	b.nextSeriesID = 0
	for _, rec := range doc.Items {
		item, err := b.Item(rec)
		if err != nil {
			return nil, err
		}
		switch it := item.(type) {
		case *media.Movie:
			c.Movies = append(c.Movies, it)
		case *media.Series:
			c.Series = append(c.Series, it)
		}
	}
	b.log.Info("catalog built", "movies", len(c.Movies), "series", len(c.Series))
	return c, nil
}

// Item converts one record into a *media.Movie or *media.Series.
func (b *Builder) Item(rec Record) (media.Item, error) {
	movie := rec.CustomFields.Flag(b.opts.MovieField)
	series := rec.CustomFields.Flag(b.opts.SeriesField)
	if movie == series {
		return nil, &ClassificationError{ID: rec.ID, Title: rec.Title, Movie: movie, Series: series}
	}
	if movie {
		return b.movie(rec)
	}
	return b.series(rec)
}

func (b *Builder) movie(rec Record) (*media.Movie, error) {
	m := media.NewMovie()
	r, err := b.video(rec, rec.ID, &m.Video)
	if err != nil {
		return nil, err
	}
	m.ApplyTags(r)
	if err := b.links(rec.Links, rec.ID, &m.Video); err != nil {
		return nil, err
	}
	b.defaultLanguages(&m.Video, nil)

	b.log.Debug("movie", "id", rec.ID, "title", m.Title(), "files", len(m.Files), "servers", m.Servers.IDs())
	return m, nil
}

func (b *Builder) series(rec Record) (*media.Series, error) {
	id, err := b.seriesID(rec)
	if err != nil {
		return nil, err
	}
	s := media.NewSeries(id)
	r, err := b.video(rec, rec.ID, &s.Video)
	if err != nil {
		return nil, err
	}
	s.ApplyTags(r)
	if err := b.links(rec.Links, rec.ID, &s.Video); err != nil {
		return nil, err
	}
	b.defaultLanguages(&s.Video, nil)

	for _, disc := range rec.Discs {
		tmpl := s.Template()
		dr, err := b.parse(rec.ID, "disc", disc.Title)
		if err != nil {
			return nil, err
		}
		tmpl.ApplyTags(dr)

		for _, er := range disc.Episodes {
			e := tmpl.Derive()
			r, err := b.video(er, rec.ID, &e.Video)
			if err != nil {
				return nil, err
			}
			e.ApplyTags(r)
			if err := b.links(er.Links, rec.ID, &e.Video); err != nil {
				return nil, err
			}
			b.defaultLanguages(&e.Video, s.Languages)
			s.AddEpisode(e)
		}
	}

	b.log.Debug("series", "id", rec.ID, "title", s.Title(), "episodes", s.TotalEpisodes,
		"specials", s.Specials, "servers", s.Servers.IDs())
	return s, nil
}

// seriesID returns the series handle: the record id when it is positive and
// not yet taken, otherwise the next free positive number.
func (b *Builder) seriesID(rec Record) (int, error) {
	id, err := b.integer(rec.ID, "id", rec.ID)
	if err != nil {
		return 0, err
	}
	if id > 0 && !b.seriesIDs[id] {
		b.seriesIDs[id] = true
		return id, nil
	}
	for {
		b.nextSeriesID++
		if !b.seriesIDs[b.nextSeriesID] {
			break
		}
	}
	b.seriesIDs[b.nextSeriesID] = true
	b.log.Warn("series id missing or taken", "id", rec.ID, "title", rec.Title, "allocated", b.nextSeriesID)
	return b.nextSeriesID, nil
}

// defaultLanguages fills an empty language list from inherit, then from
// the configured default.
func (b *Builder) defaultLanguages(v *media.Video, inherit []string) {
	if len(v.Languages) > 0 {
		return
	}
	if len(inherit) > 0 {
		v.Languages = append([]string(nil), inherit...)
		return
	}
	v.Languages = []string{b.opts.DefaultLanguage}
}

// video reads the shared fields of rec into v and returns the title tags,
// which the caller applies so that marker overrides win over plain fields.
func (b *Builder) video(rec Record, id string, v *media.Video) (tags.Result, error) {
	r, err := b.parse(id, "title", rec.Title)
	if err != nil {
		return tags.Result{}, err
	}
	v.SetTitle(r.Title)

	year, err := b.integer(id, "year", text(rec.Year, yearOf(rec.ReleaseDate)))
	if err != nil {
		return tags.Result{}, err
	}
	v.SetYear(year)

	if v.Rating, err = b.decimal(id, "rating", rec.Rating); err != nil {
		return tags.Result{}, err
	}
	if v.Runtime, err = b.integer(id, "runtime", rec.Runtime); err != nil {
		return tags.Result{}, err
	}
	if v.PlayCount, err = b.integer(id, "playcount", rec.PlayCount); err != nil {
		return tags.Result{}, err
	}

	v.SortTitle = text(rec.TitleSort, "")
	v.OriginalTitle = text(rec.OriginalTitle, "")
	v.Group = text(rec.Set, "")
	v.Date = text(rec.ReleaseDate, "")
	v.Plot = text(rec.Plot, "")
	v.Country = text(rec.Country, "")
	v.MPAA = text(rec.MPAA, "")
	v.ExternalID = text(rec.IMDbID, "")
	v.PlayDate = text(rec.LastPlayed, "")
	v.Genres = cleanList(rec.Genres)
	v.Studios = cleanList(rec.Studios)

	for _, c := range rec.Crew {
		p := media.Person{Name: text(c.Name, ""), Role: text(c.Role, ""), Thumb: text(c.Thumb, "")}
		if p.Name == "" {
			continue
		}
		switch strings.ToLower(p.Role) {
		case "director", "regie", "regisseur":
			v.Directors = append(v.Directors, p)
		case "writer", "screenplay", "drehbuch":
			v.Writers = append(v.Writers, p)
		}
	}
	for _, c := range rec.Cast {
		if name := text(c.Name, ""); name != "" {
			v.Actors = append(v.Actors, media.Person{Name: name, Role: text(c.Role, ""), Thumb: text(c.Thumb, "")})
		}
	}
	for _, t := range rec.Audio {
		channels, err := b.integer(id, "audio channels", t.Channels)
		if err != nil {
			return tags.Result{}, err
		}
		lang := strings.ToLower(text(t.Language, ""))
		if code, ok := b.languages.Lookup(lang); ok {
			lang = code
		}
		v.AudioStreams = append(v.AudioStreams, media.AudioStream{Language: lang, Codec: text(t.Codec, ""), Channels: channels})
	}
	return r, nil
}

// links turns link records into owned files, images and subtitle streams.
func (b *Builder) links(links []Link, id string, v *media.Video) error {
	for _, l := range links {
		url := text(l.URL, "")
		if url == "" {
			continue
		}
		kind, exact, ok := classifyLink(l.URLType)
		if !ok {
			b.log.Debug("skipping link", "item", id, "urltype", l.URLType, "url", url)
			continue
		}
		if !exact {
			b.log.Warn("urltype matched approximately", "item", id, "urltype", l.URLType, "kind", kind)
		}

		f := media.NewFile(kind, text(l.Description, ""), url)
		b.resolver.Resolve(f)

		switch kind {
		case media.FileVideo:
			r, err := b.parse(id, "link description", f.Description)
			if err != nil {
				return err
			}
			f.Special = r.Special
			v.AddFile(f)

		case media.FileImage:
			r, err := b.parse(id, "link description", f.Description)
			if err != nil {
				return err
			}
			season := media.NoSeason
			if r.Season != nil {
				season = *r.Season
			}
			v.AddFile(f)
			v.Images = append(v.Images, &media.Image{Kind: imageKind(f.Description), Season: season, File: f})

		case media.FileSubtitle:
			m := b.subtitles.FindStringSubmatch(f.Description)
			if m == nil {
				b.log.Warn("subtitle link without language", "item", id, "description", f.Description)
				continue
			}
			code, ok := b.languages.Lookup(m[1])
			if !ok {
				b.log.Warn("subtitle link with unknown language", "item", id, "language", m[1])
				continue
			}
			offset, _, _, err := srt.FindOffset(f.Description)
			if err != nil {
				if err := b.invalid(id, "subtitle offset", f.Description, err); err != nil {
					return err
				}
			}
			v.AddSubtitle(f, &media.SubtitleStream{Language: code, Offset: offset})
		}
	}
	return nil
}

func (b *Builder) parse(id, field, title string) (tags.Result, error) {
	r, err := b.parser.Parse(title)
	if err != nil {
		return tags.Result{}, &FieldError{ID: id, Field: field, Value: title, Err: err}
	}
	for _, issue := range r.Issues {
		b.log.Warn("invalid marker value, using zero", "item", id, "field", field, "error", issue)
	}
	return r, nil
}

func (b *Builder) integer(id, field, value string) (int, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, b.invalid(id, field, value, err)
	}
	return n, nil
}

func (b *Builder) decimal(id, field, value string) (float64, error) {
	value = strings.ReplaceAll(strings.TrimSpace(value), ",", ".")
	if value == "" {
		return 0, nil
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, b.invalid(id, field, value, err)
	}
	return f, nil
}

// invalid returns a FieldError when strict, otherwise logs and returns nil.
func (b *Builder) invalid(id, field, value string, err error) error {
	if b.opts.Strict {
		return &FieldError{ID: id, Field: field, Value: value, Err: err}
	}
	b.log.Warn("invalid field value, using zero", "item", id, "field", field, "value", value, "error", err)
	return nil
}

func cleanList(values []string) []string {
	out := lo.Compact(lo.Map(values, func(s string, _ int) string { return strings.TrimSpace(s) }))
	if len(out) == 0 {
		return nil
	}
	return lo.Uniq(out)
}

// yearOf returns the leading year of a YYYY-MM-DD date.
func yearOf(date string) string {
	date = strings.TrimSpace(date)
	if len(date) >= 4 && strings.Trim(date[:4], "0123456789") == "" {
		return date[:4]
	}
	return ""
}
