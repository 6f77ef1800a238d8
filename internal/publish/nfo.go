package publish

import (
	"encoding/xml"
	"fmt"
	"io"
	"strconv"

	"github.com/samber/lo"

	"github.com/vmunix/xbmcpub/internal/media"
)

// NFO is the shared shape of movie, tvshow and episodedetails documents.
type NFO struct {
	XMLName        xml.Name
	Title          string       `xml:"title"`
	ShowTitle      string       `xml:"showtitle,omitempty"`
	SortTitle      string       `xml:"sorttitle,omitempty"`
	OriginalTitle  string       `xml:"originaltitle,omitempty"`
	Set            string       `xml:"set,omitempty"`
	Rating         string       `xml:"rating,omitempty"`
	Year           int          `xml:"year,omitempty"`
	Season         string       `xml:"season,omitempty"`
	Episode        string       `xml:"episode,omitempty"`
	DisplaySeason  string       `xml:"displayseason,omitempty"`
	DisplayEpisode string       `xml:"displayepisode,omitempty"`
	Plot           string       `xml:"plot,omitempty"`
	Runtime        int          `xml:"runtime,omitempty"`
	MPAA           string       `xml:"mpaa,omitempty"`
	PlayCount      int          `xml:"playcount,omitempty"`
	PlayDate       string       `xml:"playdate,omitempty"`
	Aired          string       `xml:"aired,omitempty"`
	Premiered      string       `xml:"premiered,omitempty"`
	ID             string       `xml:"id,omitempty"`
	Country        string       `xml:"country,omitempty"`
	Genres         []string     `xml:"genre"`
	Studios        []string     `xml:"studio"`
	Directors      []string     `xml:"director"`
	Credits        []string     `xml:"credits"`
	Actors         []nfoActor   `xml:"actor"`
	FileInfo       *nfoFileInfo `xml:"fileinfo,omitempty"`
	Thumbs         []nfoThumb   `xml:"thumb"`
	Fanart         *nfoFanart   `xml:"fanart,omitempty"`
}

type nfoActor struct {
	Name  string `xml:"name"`
	Role  string `xml:"role,omitempty"`
	Thumb string `xml:"thumb,omitempty"`
}

type nfoFileInfo struct {
	StreamDetails nfoStreamDetails `xml:"streamdetails"`
}

type nfoStreamDetails struct {
	Video     *nfoVideo     `xml:"video,omitempty"`
	Audio     []nfoAudio    `xml:"audio"`
	Subtitles []nfoSubtitle `xml:"subtitle"`
}

type nfoVideo struct {
	Codec  string `xml:"codec,omitempty"`
	Aspect string `xml:"aspect,omitempty"`
	Width  int    `xml:"width,omitempty"`
	Height int    `xml:"height,omitempty"`
}

type nfoAudio struct {
	Codec    string `xml:"codec,omitempty"`
	Language string `xml:"language,omitempty"`
	Channels int    `xml:"channels,omitempty"`
}

type nfoSubtitle struct {
	Language string `xml:"language"`
}

type nfoThumb struct {
	Aspect string `xml:"aspect,attr,omitempty"`
	Type   string `xml:"type,attr,omitempty"`
	Season string `xml:"season,attr,omitempty"`
	URL    string `xml:",chardata"`
}

type nfoFanart struct {
	Thumbs []nfoThumb `xml:"thumb"`
}

// newNFO fills the fields every document shares. Images are limited to
// those reachable from server.
func newNFO(root string, v *media.Video, server string) *NFO {
	doc := &NFO{
		XMLName:       xml.Name{Local: root},
		Title:         v.Title(),
		SortTitle:     v.SortTitle,
		OriginalTitle: v.OriginalTitle,
		Set:           v.Group,
		Year:          v.Year(),
		Plot:          v.Plot,
		Runtime:       v.Runtime,
		MPAA:          v.MPAA,
		PlayCount:     v.PlayCount,
		PlayDate:      v.PlayDate,
		ID:            v.ExternalID,
		Country:       v.Country,
		Genres:        v.Genres,
		Studios:       v.Studios,
		Directors:     personNames(v.Directors),
		Credits:       personNames(v.Writers),
		FileInfo:      newFileInfo(v),
	}
	if v.Rating > 0 {
		doc.Rating = strconv.FormatFloat(v.Rating, 'f', 1, 64)
	}
	for _, a := range v.Actors {
		doc.Actors = append(doc.Actors, nfoActor{Name: a.Name, Role: a.Role, Thumb: a.Thumb})
	}
	for _, img := range visibleImages(v.Images, server) {
		thumb := nfoThumb{URL: img.File.PublicationPath}
		if img.Season != media.NoSeason {
			thumb.Type = "season"
			thumb.Season = strconv.Itoa(img.Season)
		}
		if img.Kind == media.ImageFanart {
			if doc.Fanart == nil {
				doc.Fanart = &nfoFanart{}
			}
			doc.Fanart.Thumbs = append(doc.Fanart.Thumbs, thumb)
			continue
		}
		thumb.Aspect = string(img.Kind)
		doc.Thumbs = append(doc.Thumbs, thumb)
	}
	return doc
}

func personNames(people []media.Person) []string {
	return lo.Map(people, func(p media.Person, _ int) string { return p.Name })
}

// visibleImages returns images whose file is unbound or on server.
func visibleImages(images []*media.Image, server string) []*media.Image {
	return lo.Filter(images, func(img *media.Image, _ int) bool {
		return img.File != nil && (img.File.Server == "" || img.File.OnServer(server))
	})
}

func newFileInfo(v *media.Video) *nfoFileInfo {
	var sd nfoStreamDetails
	width, height := v.Definition.Size()
	video := nfoVideo{Codec: v.VideoCodec.NFO(), Aspect: v.AspectRatio.Ratio(), Width: width, Height: height}
	if video != (nfoVideo{}) {
		sd.Video = &video
	}
	for _, a := range v.AudioStreams {
		sd.Audio = append(sd.Audio, nfoAudio{Codec: a.Codec, Language: a.Language, Channels: a.Channels})
	}
	for _, s := range v.SubtitleStreams {
		sd.Subtitles = append(sd.Subtitles, nfoSubtitle{Language: s.Language})
	}
	if sd.Video == nil && len(sd.Audio) == 0 && len(sd.Subtitles) == 0 {
		return nil
	}
	return &nfoFileInfo{StreamDetails: sd}
}

// MovieNFO builds the <movie> document.
func MovieNFO(m *media.Movie, server string) *NFO {
	doc := newNFO("movie", &m.Video, server)
	doc.Premiered = m.Date
	return doc
}

// SeriesNFO builds the <tvshow> document.
func SeriesNFO(s *media.Series, server string) *NFO {
	doc := newNFO("tvshow", &s.Video, server)
	doc.Premiered = s.Date
	doc.Season = strconv.Itoa(len(s.Seasons()))
	doc.Episode = strconv.Itoa(s.TotalEpisodes)
	return doc
}

// EpisodeNFO builds the <episodedetails> document.
func EpisodeNFO(s *media.Series, e *media.Episode, server string) *NFO {
	doc := newNFO("episodedetails", &e.Video, server)
	doc.ShowTitle = s.Title()
	doc.Season = strconv.Itoa(e.ActualSeason)
	doc.Episode = e.DisplayEpisode
	doc.DisplaySeason = e.DisplaySeason
	doc.DisplayEpisode = e.DisplayEpisode
	doc.Aired = e.Date
	return doc
}

// WriteNFO writes doc as an indented XML document.
func WriteNFO(w io.Writer, doc *NFO) error {
	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encoding %s: %w", doc.XMLName.Local, err)
	}
	if err := enc.Close(); err != nil {
		return err
	}
	_, err := io.WriteString(w, "\n")
	return err
}
