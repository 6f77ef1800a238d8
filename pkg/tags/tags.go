// Package tags extracts structured attributes embedded as parenthesized markers in catalog titles.
package tags

// SkinTransparency is the player skin that only ships flags for H264 sources.
const SkinTransparency = "transparency"

// DefaultSpecialsMarker marks a disc, episode or video file as bonus material.
const DefaultSpecialsMarker = "(Special)"

// Codec is the video codec flag shown by the player skin.
type Codec string

const (
	CodecUnknown Codec = ""
	CodecTV      Codec = "TV"
	CodecBluRay  Codec = "BluRay"
	CodecH264    Codec = "H264"
	CodecH265    Codec = "H265"
)

// NFO returns the codec value written to streamdetails.
func (c Codec) NFO() string {
	switch c {
	case CodecTV:
		return "mpeg2video"
	case CodecBluRay:
		return "vc1"
	case CodecH264:
		return "h264"
	case CodecH265:
		return "hevc"
	default:
		return ""
	}
}

// Definition is the SD/HD resolution class.
type Definition string

const (
	DefinitionUnknown Definition = ""
	DefinitionSD      Definition = "SD"
	DefinitionHD      Definition = "HD"
)

// Size returns the nominal frame size for the definition.
func (d Definition) Size() (width, height int) {
	switch d {
	case DefinitionSD:
		return 720, 576
	case DefinitionHD:
		return 1920, 1080
	default:
		return 0, 0
	}
}

// Aspect is the display aspect ratio.
type Aspect string

const (
	AspectUnknown Aspect = ""
	Aspect4x3     Aspect = "4:3"
	Aspect16x9    Aspect = "16:9"
	Aspect21x9    Aspect = "21:9"
)

// Ratio returns the decimal form used in streamdetails.
func (a Aspect) Ratio() string {
	switch a {
	case Aspect4x3:
		return "1.33"
	case Aspect16x9:
		return "1.78"
	case Aspect21x9:
		return "2.33"
	default:
		return ""
	}
}

// Result holds the attributes found in one title.
// Optional attributes are nil (or zero) when their marker was absent.
type Result struct {
	Title      string // title with all markers removed
	Codec      Codec
	Definition Definition
	Aspect     Aspect
	MPAA       *int
	Rating     *float64
	Special    bool
	Season     *int
	Languages  []string // nil when no language marker matched a known code

	// Issues collects number format problems that were defaulted to zero
	// because the parser is lenient.
	Issues []error
}

// Empty reports whether no marker was found.
func (r Result) Empty() bool {
	return r.Codec == CodecUnknown &&
		r.Definition == DefinitionUnknown &&
		r.Aspect == AspectUnknown &&
		r.MPAA == nil &&
		r.Rating == nil &&
		!r.Special &&
		r.Season == nil &&
		r.Languages == nil &&
		len(r.Issues) == 0
}
