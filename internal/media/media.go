// Package media models the catalog graph: movies and series with their
// episodes, and the files, images, people and streams each of them owns.
package media

import (
	"fmt"
	"slices"
)

// Kind is the variant tag of an Item.
type Kind int

const (
	KindMovie Kind = iota + 1
	KindSeries
	KindEpisode
)

func (k Kind) String() string {
	switch k {
	case KindMovie:
		return "movie"
	case KindSeries:
		return "series"
	case KindEpisode:
		return "episode"
	default:
		return "unknown"
	}
}

// Item is the closed set {*Movie, *Series, *Episode}.
// Dispatch on it with a type switch.
type Item interface {
	Kind() Kind
	Meta() *Video
	isItem()
}

// Person is a director, writer or actor.
type Person struct {
	Name  string
	Role  string
	Thumb string
}

// AudioStream describes one audio track.
type AudioStream struct {
	Language string
	Codec    string
	Channels int
}

// ImageKind is the artwork slot an image fills.
type ImageKind string

const (
	ImagePoster ImageKind = "poster"
	ImageFanart ImageKind = "fanart"
	ImageThumb  ImageKind = "thumb"
	ImageBanner ImageKind = "banner"
)

// NoSeason marks an image that is not tied to a season.
const NoSeason = -1

// Image is an artwork reference. File is the image file it is staged from.
type Image struct {
	Kind   ImageKind
	Season int
	File   *File
}

// Media holds the fields shared by every Item.
// Title and year are only changed through SetTitle and SetYear, which keep
// Filename in sync.
type Media struct {
	title    string
	year     int
	filename string

	SortTitle     string
	OriginalTitle string
	Group         string // movie set / collection name
	Rating        float64
	Date          string // publishing date, YYYY-MM-DD
	Plot          string
	Runtime       int // minutes
	Country       string
	Genres        []string
	Studios       []string
	Languages     []string
	Images        []*Image
	Files         []*File
	Servers       ServerSet
}

// Title returns the cleaned title.
func (m *Media) Title() string { return m.title }

// Year returns the publishing year, 0 when unknown.
func (m *Media) Year() int { return m.year }

// Filename returns the name derived from title and year.
func (m *Media) Filename() string { return m.filename }

// SetTitle sets the title and recomputes Filename.
func (m *Media) SetTitle(title string) {
	m.title = title
	m.refreshFilename()
}

// SetYear sets the publishing year and recomputes Filename.
func (m *Media) SetYear(year int) {
	m.year = year
	m.refreshFilename()
}

func (m *Media) refreshFilename() {
	name := m.title
	if m.year > 0 {
		name = fmt.Sprintf("%s (%d)", name, m.year)
	}
	m.filename = Normalize(name)
}

// AddFile takes ownership of f, assigns its index among files of the same
// kind and adds its server to the membership set.
func (m *Media) AddFile(f *File) {
	f.Index = len(m.FilesOf(f.Kind))
	m.Files = append(m.Files, f)
	m.Servers.Add(f.Server)
}

// FilesOf returns the owned files of the given kind in order.
func (m *Media) FilesOf(kind FileKind) []*File {
	var out []*File
	for _, f := range m.Files {
		if f.Kind == kind {
			out = append(out, f)
		}
	}
	return out
}

// HasLanguage reports whether code is among the declared languages.
func (m *Media) HasLanguage(code string) bool {
	return slices.Contains(m.Languages, code)
}
