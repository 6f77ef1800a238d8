package media

import (
	"slices"

	"github.com/samber/lo"
)

// fileMap maps source files to their copies so that streams follow the
// files they were cloned with.
type fileMap map[*File]*File

// clone copies m.
//
//	deep:   Genres, Studios, Languages, Files, Servers
//	shared: Images (the slice and the *Image values are the source's)
func (m *Media) clone(files fileMap) Media {
	c := Media{
		title:         m.title,
		year:          m.year,
		filename:      m.filename,
		SortTitle:     m.SortTitle,
		OriginalTitle: m.OriginalTitle,
		Group:         m.Group,
		Rating:        m.Rating,
		Date:          m.Date,
		Plot:          m.Plot,
		Runtime:       m.Runtime,
		Country:       m.Country,
		Genres:        slices.Clone(m.Genres),
		Studios:       slices.Clone(m.Studios),
		Languages:     slices.Clone(m.Languages),
		Images:        m.Images,
		Servers:       m.Servers.Clone(),
	}
	if m.Files != nil {
		c.Files = make([]*File, len(m.Files))
		for i, f := range m.Files {
			c.Files[i] = f.Clone()
			files[f] = c.Files[i]
		}
	}
	return c
}

// clone copies v. People and audio streams are values and are copied;
// subtitle streams are copied and point at the copied files.
func (v *Video) clone() Video {
	files := make(fileMap, len(v.Files))
	c := Video{
		Media:        v.Media.clone(files),
		MPAA:         v.MPAA,
		PlayCount:    v.PlayCount,
		PlayDate:     v.PlayDate,
		ExternalID:   v.ExternalID,
		Directors:    slices.Clone(v.Directors),
		Writers:      slices.Clone(v.Writers),
		Actors:       slices.Clone(v.Actors),
		VideoCodec:   v.VideoCodec,
		Definition:   v.Definition,
		AspectRatio:  v.AspectRatio,
		AudioStreams: slices.Clone(v.AudioStreams),
	}
	if v.SubtitleStreams != nil {
		c.SubtitleStreams = lo.Map(v.SubtitleStreams, func(s *SubtitleStream, _ int) *SubtitleStream {
			cs := *s
			if f, ok := files[s.File]; ok {
				cs.File = f
			}
			return &cs
		})
	}
	return c
}

// retainFiles drops the files keep rejects, together with their subtitle
// streams, and renumbers the remaining files per kind.
func (v *Video) retainFiles(keep func(*File) bool) {
	v.Files = lo.Filter(v.Files, func(f *File, _ int) bool { return keep(f) })
	v.SubtitleStreams = lo.Filter(v.SubtitleStreams, func(s *SubtitleStream, _ int) bool {
		return s.File == nil || slices.Contains(v.Files, s.File)
	})
	next := make(map[FileKind]int, 3)
	for _, f := range v.Files {
		f.Index = next[f.Kind]
		next[f.Kind]++
	}
}

// Clone returns an independent copy of m.
func (m *Movie) Clone() *Movie {
	return &Movie{Video: m.Video.clone()}
}

// Clone returns an independent copy of e, including its series handle.
func (e *Episode) Clone() *Episode {
	return &Episode{
		Video:          e.Video.clone(),
		SeriesID:       e.SeriesID,
		ActualSeason:   e.ActualSeason,
		ActualEpisode:  e.ActualEpisode,
		DisplaySeason:  e.DisplaySeason,
		DisplayEpisode: e.DisplayEpisode,
		Special:        e.Special,
	}
}

// Clone returns an independent copy of s and all of its episodes.
func (s *Series) Clone() *Series {
	c := s.cloneHeader()
	if s.Episodes != nil {
		c.Episodes = lo.Map(s.Episodes, func(e *Episode, _ int) *Episode { return e.Clone() })
	}
	return c
}

// cloneHeader copies the series metadata and counters without episodes.
func (s *Series) cloneHeader() *Series {
	return &Series{
		Video:             s.Video.clone(),
		ID:                s.ID,
		Season:            s.Season,
		TotalEpisodes:     s.TotalEpisodes,
		RegularEpisodes:   s.RegularEpisodes,
		Specials:          s.Specials,
		EpisodesPerSeason: slices.Clone(s.EpisodesPerSeason),
	}
}

// Clone returns an independent copy of item.
func Clone(item Item) Item {
	switch it := item.(type) {
	case *Movie:
		return it.Clone()
	case *Series:
		return it.Clone()
	case *Episode:
		return it.Clone()
	default:
		return nil
	}
}
