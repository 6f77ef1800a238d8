package catalog

import (
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/text/encoding/htmlindex"
)

// Document is a catalog export.
type Document struct {
	XMLName xml.Name `xml:"catalog"`
	Items   []Record `xml:"item"`
}

// Record is one catalog item. Episodes reuse the same shape.
type Record struct {
	ID            string       `xml:"id"`
	Title         string       `xml:"title"`
	TitleSort     string       `xml:"titlesort"`
	OriginalTitle string       `xml:"originaltitle"`
	Set           string       `xml:"set"`
	Rating        string       `xml:"rating"`
	Year          string       `xml:"year"`
	ReleaseDate   string       `xml:"releasedate"`
	Plot          string       `xml:"plot"`
	Runtime       string       `xml:"runtime"`
	MPAA          string       `xml:"mpaa"`
	Country       string       `xml:"country"`
	IMDbID        string       `xml:"imdbid"`
	PlayCount     string       `xml:"playcount"`
	LastPlayed    string       `xml:"lastplayed"`
	Genres        []string     `xml:"genres>genre"`
	Studios       []string     `xml:"studios>studio"`
	Crew          []CrewMember `xml:"crew>member"`
	Cast          []CastMember `xml:"cast>star"`
	Audio         []Track      `xml:"audio>track"`
	Links         []Link       `xml:"links>link"`
	Discs         []Disc       `xml:"discs>disc"`
	CustomFields  CustomFields `xml:"customfields"`
}

// CrewMember is a director or writer credit.
type CrewMember struct {
	Role  string `xml:"role,attr"`
	Name  string `xml:"name"`
	Thumb string `xml:"thumb"`
}

// CastMember is an actor credit.
type CastMember struct {
	Name  string `xml:"name"`
	Role  string `xml:"role"`
	Thumb string `xml:"thumb"`
}

// Track is an audio track.
type Track struct {
	Language string `xml:"language,attr"`
	Codec    string `xml:"codec,attr"`
	Channels string `xml:"channels,attr"`
}

// Link is a typed reference to a video, image or subtitle file.
type Link struct {
	URLType     string `xml:"urltype"`
	Description string `xml:"description"`
	URL         string `xml:"url"`
}

// Disc groups the episodes of a series.
type Disc struct {
	Title    string   `xml:"title"`
	Episodes []Record `xml:"episodes>episode"`
}

// CustomFields holds user-defined fields by element name.
type CustomFields struct {
	Fields []CustomField `xml:",any"`
}

// CustomField is one user-defined field.
type CustomField struct {
	XMLName xml.Name
	Value   string `xml:",chardata"`
}

// Get returns the trimmed value of the named field, or def when absent.
func (c CustomFields) Get(name, def string) string {
	for _, f := range c.Fields {
		if strings.EqualFold(f.XMLName.Local, name) {
			return strings.TrimSpace(f.Value)
		}
	}
	return def
}

// Flag reports whether the named field holds a true value.
func (c CustomFields) Flag(name string) bool {
	switch strings.ToLower(c.Get(name, "")) {
	case "yes", "y", "true", "1", "x", "on", "ja", "j":
		return true
	default:
		return false
	}
}

// Decode reads a catalog document. Exports declaring a legacy encoding such as
// ISO-8859-1 or windows-1252 are transcoded to UTF-8.
func Decode(r io.Reader) (*Document, error) {
	var doc Document
	dec := xml.NewDecoder(r)
	dec.CharsetReader = charsetReader
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("decoding catalog: %w", err)
	}
	return &doc, nil
}

func charsetReader(label string, input io.Reader) (io.Reader, error) {
	enc, err := htmlindex.Get(label)
	if err != nil {
		return nil, fmt.Errorf("unsupported encoding %q: %w", label, err)
	}
	return enc.NewDecoder().Reader(input), nil
}

// DecodeFile reads the catalog document at path.
func DecodeFile(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening catalog: %w", err)
	}
	defer f.Close()
	return Decode(f)
}

// text returns the trimmed value, or def when empty.
func text(v, def string) string {
	if v = strings.TrimSpace(v); v == "" {
		return def
	}
	return v
}
