package media

import (
	"slices"
	"strconv"

	"github.com/vmunix/xbmcpub/pkg/tags"
)

// Video holds the fields shared by movies, series and episodes.
type Video struct {
	Media

	MPAA            string
	PlayCount       int
	PlayDate        string
	ExternalID      string
	Directors       []Person
	Writers         []Person
	Actors          []Person
	VideoCodec      tags.Codec
	Definition      tags.Definition
	AspectRatio     tags.Aspect
	AudioStreams    []AudioStream
	SubtitleStreams []*SubtitleStream
}

// Meta returns the shared video fields of an Item.
func (v *Video) Meta() *Video { return v }

// ApplyTags copies the attributes found by the tag parser. Absent markers
// leave the current values alone; a language marker replaces the list.
// The title is not touched.
func (v *Video) ApplyTags(r tags.Result) {
	if r.Codec != tags.CodecUnknown {
		v.VideoCodec = r.Codec
	}
	if r.Definition != tags.DefinitionUnknown {
		v.Definition = r.Definition
	}
	if r.Aspect != tags.AspectUnknown {
		v.AspectRatio = r.Aspect
	}
	if r.MPAA != nil {
		v.MPAA = strconv.Itoa(*r.MPAA)
	}
	if r.Rating != nil {
		v.Rating = *r.Rating
	}
	if r.Languages != nil {
		v.Languages = slices.Clone(r.Languages)
	}
}

// AddSubtitle takes ownership of a subtitle file and registers its stream.
func (v *Video) AddSubtitle(f *File, s *SubtitleStream) {
	v.AddFile(f)
	s.File = f
	v.SubtitleStreams = append(v.SubtitleStreams, s)
}
