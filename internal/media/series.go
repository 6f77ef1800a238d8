package media

import (
	"slices"
	"strconv"

	"github.com/vmunix/xbmcpub/pkg/tags"
)

// Movie is a single feature with its extras.
type Movie struct {
	Video
}

// NewMovie returns an empty movie.
func NewMovie() *Movie { return &Movie{} }

func (*Movie) Kind() Kind { return KindMovie }
func (*Movie) isItem()    {}

// SpecialsSlot is the EpisodesPerSeason index that counts specials.
const SpecialsSlot = 0

// Series owns its episodes and the counters derived from them.
type Series struct {
	Video

	ID       int
	Season   int // default season for episodes without a season marker
	Episodes []*Episode

	TotalEpisodes     int
	RegularEpisodes   int
	Specials          int
	EpisodesPerSeason []int // index 0 counts specials, grown on demand
}

// NewSeries returns an empty series with the default season convention.
func NewSeries(id int) *Series {
	return &Series{ID: id, Season: 1, EpisodesPerSeason: []int{0}}
}

func (*Series) Kind() Kind { return KindSeries }
func (*Series) isItem()    {}

// ApplyTags applies the shared attributes and a series-level season marker.
func (s *Series) ApplyTags(r tags.Result) {
	s.Video.ApplyTags(r)
	if r.Season != nil {
		s.Season = *r.Season
	}
}

// Template returns a pseudo-episode carrying the attributes episodes inherit
// from the series. A disc applies its own tags to the template before its
// episodes are derived from it.
func (s *Series) Template() *Episode {
	t := &Episode{
		SeriesID:      s.ID,
		ActualSeason:  s.Season,
		DisplaySeason: strconv.Itoa(s.Season),
	}
	t.VideoCodec = s.VideoCodec
	t.Definition = s.Definition
	t.AspectRatio = s.AspectRatio
	t.MPAA = s.MPAA
	t.Languages = slices.Clone(s.Languages)
	return t
}

// AddEpisode registers e: the season slot, clamped to tags.MaxSeason, grows
// on demand and is incremented, the running totals are updated and the episode numbers are
// derived from them. The episode's servers propagate to the series.
func (s *Series) AddEpisode(e *Episode) {
	e.SeriesID = s.ID
	if e.Special {
		e.ActualSeason = SpecialsSlot
		e.DisplaySeason = strconv.Itoa(SpecialsSlot)
	}
	slot := min(max(e.ActualSeason, 0), tags.MaxSeason)
	e.ActualSeason = slot
	for len(s.EpisodesPerSeason) <= slot {
		s.EpisodesPerSeason = append(s.EpisodesPerSeason, 0)
	}
	s.EpisodesPerSeason[slot]++

	s.TotalEpisodes++
	if e.Special {
		s.Specials++
	} else {
		s.RegularEpisodes++
	}
	e.ActualEpisode = s.TotalEpisodes
	e.DisplayEpisode = strconv.Itoa(s.EpisodesPerSeason[slot])
	if e.DisplaySeason == "" {
		e.DisplaySeason = strconv.Itoa(slot)
	}

	s.Episodes = append(s.Episodes, e)
	s.Servers.Merge(e.Servers)
}

// Seasons returns the non-empty season slots in ascending order.
func (s *Series) Seasons() []int {
	var out []int
	for season, n := range s.EpisodesPerSeason {
		if n > 0 {
			out = append(out, season)
		}
	}
	return out
}

// Episode belongs to the series identified by SeriesID.
type Episode struct {
	Video

	SeriesID       int
	ActualSeason   int
	ActualEpisode  int
	DisplaySeason  string
	DisplayEpisode string
	Special        bool
}

func (*Episode) Kind() Kind { return KindEpisode }
func (*Episode) isItem()    {}

// ApplyTags applies the shared attributes plus the season and specials markers.
func (e *Episode) ApplyTags(r tags.Result) {
	e.Video.ApplyTags(r)
	if r.Special {
		e.Special = true
	}
	if r.Season != nil {
		e.ActualSeason = *r.Season
		e.DisplaySeason = strconv.Itoa(*r.Season)
	}
}

// Derive returns a new episode carrying the resolved attributes of the
// template e. Titles, files and counters are not inherited.
func (e *Episode) Derive() *Episode {
	d := &Episode{
		SeriesID:      e.SeriesID,
		ActualSeason:  e.ActualSeason,
		DisplaySeason: e.DisplaySeason,
		Special:       e.Special,
	}
	d.VideoCodec = e.VideoCodec
	d.Definition = e.Definition
	d.AspectRatio = e.AspectRatio
	d.MPAA = e.MPAA
	d.Languages = slices.Clone(e.Languages)
	return d
}

// Collection is the root of the graph.
type Collection struct {
	Movies []*Movie
	Series []*Series
}

// SeriesByID resolves an episode's series handle.
func (c *Collection) SeriesByID(id int) (*Series, bool) {
	for _, s := range c.Series {
		if s.ID == id {
			return s, true
		}
	}
	return nil, false
}

// Items returns movies then series.
func (c *Collection) Items() []Item {
	items := make([]Item, 0, len(c.Movies)+len(c.Series))
	for _, m := range c.Movies {
		items = append(items, m)
	}
	for _, s := range c.Series {
		items = append(items, s)
	}
	return items
}
