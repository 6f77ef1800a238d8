package publish

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/vmunix/xbmcpub/internal/media"
	"github.com/vmunix/xbmcpub/pkg/srt"
)

// subtitles rewrites every published subtitle stream of v into dir as
// <base>.<lang>.srt with the stream offsets applied. Sources that are
// missing or empty are skipped.
func (r *run) subtitles(dir, base string, v *media.Video) error {
	seen := make(map[string]int)
	for _, s := range v.SubtitleStreams {
		if s.File == nil || !s.File.Published() {
			continue
		}
		entries, err := srt.ParseFile(filepath.FromSlash(s.File.StoragePath), srt.Options{
			Offset: s.Offset,
			Strict: r.opts.Strict,
		})
		if err != nil {
			return fmt.Errorf("subtitles for %s: %w", v.Title(), err)
		}
		if len(entries) == 0 {
			r.logger.Warn("subtitle source missing or empty", "path", s.File.StoragePath, "title", v.Title())
			continue
		}

		name := subtitleName(base, s.Language, seen)
		rel := joinName(dir, name, ".srt")
		if err := r.create(rel, func(w io.Writer) error { return srt.Write(w, entries) }); err != nil {
			return err
		}
		r.script.copyGenerated(rel)
		r.stats.Subtitles++
	}
	return nil
}

// subtitleName returns <base>.<lang>, numbering repeated languages.
func subtitleName(base, lang string, seen map[string]int) string {
	if lang == "" {
		lang = "und"
	}
	name := base + "." + lang
	n := seen[lang]
	seen[lang]++
	if n > 0 {
		name = fmt.Sprintf("%s.%d", name, n)
	}
	return name
}
