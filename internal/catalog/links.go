package catalog

import (
	"maps"
	"regexp"
	"slices"
	"strings"
	"unicode"

	"github.com/hbollon/go-edlib"

	"github.com/vmunix/xbmcpub/internal/media"
)

// urlTypeThreshold is the minimum similarity for a near-miss urltype.
const urlTypeThreshold = 0.9

var urlTypes = map[string]media.FileKind{
	"movie":        media.FileVideo,
	"moviefile":    media.FileVideo,
	"film":         media.FileVideo,
	"filmdatei":    media.FileVideo,
	"video":        media.FileVideo,
	"videofile":    media.FileVideo,
	"image":        media.FileImage,
	"imagefile":    media.FileImage,
	"picture":      media.FileImage,
	"bild":         media.FileImage,
	"subtitle":     media.FileSubtitle,
	"subtitles":    media.FileSubtitle,
	"subtitlefile": media.FileSubtitle,
	"untertitel":   media.FileSubtitle,
}

func normalizeURLType(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		if unicode.IsLetter(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// classifyLink maps a urltype to a file kind. exact is false when the
// urltype only resembles a known one.
func classifyLink(urlType string) (kind media.FileKind, exact, ok bool) {
	key := normalizeURLType(urlType)
	if key == "" {
		return 0, false, false
	}
	if kind, ok := urlTypes[key]; ok {
		return kind, true, true
	}

	var best float32
	for _, candidate := range slices.Sorted(maps.Keys(urlTypes)) {
		score := edlib.JaroWinklerSimilarity(key, candidate)
		if score > best {
			best, kind = score, urlTypes[candidate]
		}
	}
	if best >= urlTypeThreshold {
		return kind, false, true
	}
	return 0, false, false
}

// imageKind classifies an image link by its description.
func imageKind(description string) media.ImageKind {
	d := strings.ToLower(description)
	switch {
	case strings.Contains(d, "backdrop"), strings.Contains(d, "fanart"):
		return media.ImageFanart
	case strings.Contains(d, "banner"):
		return media.ImageBanner
	case strings.Contains(d, "thumb"):
		return media.ImageThumb
	default:
		return media.ImagePoster
	}
}

// subtitlePattern matches "<prefix>.<lang>." at the start of a description.
func subtitlePattern(prefix string) *regexp.Regexp {
	return regexp.MustCompile(`(?i)^\s*` + regexp.QuoteMeta(prefix) + `\.([^.\s]+)\.`)
}
