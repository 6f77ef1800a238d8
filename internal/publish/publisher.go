// Package publish writes the per-server, per-language XBMC library: NFO
// documents, rewritten subtitles and a staging script that places them
// together with links to the video files below the server's target root.
package publish

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"

	"github.com/vmunix/xbmcpub/internal/media"
)

// LockName is the lock file guarding a server output directory.
const LockName = ".xbmcpub.lock"

// Server is a publication target.
type Server struct {
	ID         string
	TargetRoot string // root on the player the staging script writes to
	OutputDir  string // local directory receiving generated files
}

// Options configures a Publisher.
type Options struct {
	Languages []string // target languages, one library tree each
	Layout    Layout
	LinkMode  string
	Clean     bool
	Strict    bool // malformed subtitle numbers and times are errors
	Workers   int

	// Output returns the sink for a server. Defaults to a DirOutput on
	// the server's OutputDir.
	Output func(Server) Output
}

// Stats summarizes what was published to one server.
type Stats struct {
	Server    string
	Movies    int
	Specials  int
	Series    int
	Episodes  int
	NFOs      int
	Subtitles int
	Videos    int
	Images    int
	Bytes     int64
	Duration  time.Duration
}

// Publisher publishes a collection to every configured server.
type Publisher struct {
	opts      Options
	servers   []Server
	describer media.Describer
	logger    *slog.Logger
}

// New creates a Publisher.
func New(opts Options, servers []Server, describer media.Describer, logger *slog.Logger) *Publisher {
	opts.Layout = opts.Layout.withDefaults()
	if opts.LinkMode == "" {
		opts.LinkMode = LinkSymlink
	}
	if opts.Workers < 1 {
		opts.Workers = 1
	}
	if opts.Output == nil {
		opts.Output = func(s Server) Output { return NewDirOutput(s.OutputDir) }
	}
	return &Publisher{
		opts:      opts,
		servers:   servers,
		describer: describer,
		logger:    logger.With("component", "publish"),
	}
}

// Publish writes coll for every server. Servers are processed concurrently up
// to the configured number of workers; the first error cancels the rest.
// Stats are returned in server order.
func (p *Publisher) Publish(ctx context.Context, coll *media.Collection) ([]Stats, error) {
	stats := make([]Stats, len(p.servers))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(p.opts.Workers)
	for i, srv := range p.servers {
		g.Go(func() error {
			st, err := p.publishServer(ctx, srv, coll)
			stats[i] = st
			if err != nil {
				return fmt.Errorf("server %s: %w", srv.ID, err)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return stats, err
	}
	return stats, nil
}

func (p *Publisher) publishServer(ctx context.Context, srv Server, coll *media.Collection) (Stats, error) {
	start := time.Now()
	logger := p.logger.With("server", srv.ID)

	if srv.OutputDir != "" {
		unlock, err := lockOutput(srv.OutputDir)
		if err != nil {
			return Stats{Server: srv.ID}, err
		}
		defer unlock()
	}

	r := &run{
		Publisher: p,
		server:    srv,
		out:       p.opts.Output(srv),
		script:    newScript(srv.TargetRoot, p.opts.LinkMode, p.opts.Clean),
		dirs:      make(map[string]bool),
		logger:    logger,
		stats:     Stats{Server: srv.ID},
	}
	err := r.publish(ctx, coll)
	r.stats.Duration = time.Since(start)
	if err != nil {
		return r.stats, err
	}

	logger.Info("server published",
		"movies", r.stats.Movies,
		"specials", r.stats.Specials,
		"series", r.stats.Series,
		"episodes", r.stats.Episodes,
		"duration", r.stats.Duration)
	return r.stats, nil
}

// lockOutput takes the lock file in dir without waiting.
func lockOutput(dir string) (func(), error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create output directory: %w", err)
	}
	lock := flock.New(filepath.Join(dir, LockName))
	locked, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("lock %s: %w", dir, err)
	}
	if !locked {
		return nil, fmt.Errorf("%s: %w", dir, ErrLocked)
	}
	return func() { _ = lock.Unlock() }, nil
}

// run is the state of publishing one server.
type run struct {
	*Publisher

	server Server
	out    Output
	script *script
	dirs   map[string]bool
	logger *slog.Logger
	stats  Stats
}

func (r *run) publish(ctx context.Context, coll *media.Collection) error {
	for _, m := range coll.Movies {
		if err := ctx.Err(); err != nil {
			return err
		}
		for _, specials := range []bool{false, true} {
			fm, ok := media.FilterMovie(m, r.server.ID, specials)
			if !ok {
				continue
			}
			for _, lang := range r.opts.Languages {
				lm := media.CloneForLanguage(fm, lang, r.codes(fm.Languages), r.describer).(*media.Movie)
				if err := r.movie(lang, lm, specials); err != nil {
					return err
				}
			}
		}
	}

	for _, s := range coll.Series {
		if err := ctx.Err(); err != nil {
			return err
		}
		fs, ok := media.FilterSeries(s, r.server.ID)
		if !ok {
			continue
		}
		for _, lang := range r.opts.Languages {
			ls := media.CloneForLanguage(fs, lang, r.codes(seriesLanguages(fs)), r.describer).(*media.Series)
			if err := r.series(lang, ls); err != nil {
				return err
			}
		}
	}

	return r.create(ScriptName, func(w io.Writer) error {
		_, err := r.script.WriteTo(w)
		return err
	})
}

// codes returns every code whose markers are rewritten for a target.
func (r *run) codes(item []string) []string {
	return lo.Uniq(append(append([]string{}, item...), r.opts.Languages...))
}

func seriesLanguages(s *media.Series) []string {
	langs := append([]string{}, s.Languages...)
	for _, e := range s.Episodes {
		langs = append(langs, e.Languages...)
	}
	return langs
}

func publishedVideos(v *media.Video) []*media.File {
	return lo.Filter(v.FilesOf(media.FileVideo), func(f *media.File, _ int) bool {
		return f.Published()
	})
}

func (r *run) movie(lang string, m *media.Movie, specials bool) error {
	// The language clone blanks the videos of a movie without lang; such a
	// movie gets no directory and no NFO.
	videos := publishedVideos(&m.Video)
	if len(videos) == 0 {
		r.logger.Debug("movie not published in language", "title", m.Title(), "language", lang)
		return nil
	}

	dir := r.opts.Layout.MovieDir(lang, m, specials)
	base := m.Filename()
	if err := r.mkdir(dir); err != nil {
		return err
	}
	if err := r.nfo(joinName(dir, base, ".nfo"), MovieNFO(m, r.server.ID)); err != nil {
		return err
	}
	for _, f := range videos {
		name := videoName(base, f, len(videos))
		if specials {
			name = media.Normalize(f.Filename) + f.Extension
		}
		r.video(f, joinName(dir, name, ""))
	}
	if err := r.subtitles(dir, base, &m.Video); err != nil {
		return err
	}
	r.images(dir, base+"-", m.Images)

	if specials {
		r.stats.Specials++
	} else {
		r.stats.Movies++
	}
	return nil
}

func (r *run) series(lang string, s *media.Series) error {
	// Episodes whose videos the language clone blanked are left out, and a
	// series without any is skipped like a movie.
	episodes := lo.Filter(s.Episodes, func(e *media.Episode, _ int) bool {
		return len(publishedVideos(&e.Video)) > 0
	})
	if len(episodes) == 0 {
		r.logger.Debug("series not published in language", "title", s.Title(), "language", lang)
		return nil
	}

	dir := r.opts.Layout.SeriesDirFor(lang, s)
	if err := r.mkdir(dir); err != nil {
		return err
	}
	if err := r.nfo(joinName(dir, "tvshow", ".nfo"), SeriesNFO(s, r.server.ID)); err != nil {
		return err
	}
	r.images(dir, "", s.Images)

	for _, e := range episodes {
		seasonDir := joinName(dir, r.opts.Layout.SeasonDir(e.DisplaySeason), "")
		if err := r.mkdir(seasonDir); err != nil {
			return err
		}
		base := r.opts.Layout.EpisodeName(s, e)
		if err := r.nfo(joinName(seasonDir, base, ".nfo"), EpisodeNFO(s, e, r.server.ID)); err != nil {
			return err
		}
		videos := publishedVideos(&e.Video)
		for _, f := range videos {
			r.video(f, joinName(seasonDir, videoName(base, f, len(videos)), ""))
		}
		if err := r.subtitles(seasonDir, base, &e.Video); err != nil {
			return err
		}
		r.images(seasonDir, base+"-", e.Images)
		r.stats.Episodes++
	}
	r.stats.Series++
	return nil
}

// videoName names a video after its owner; multi-part items get a part number.
func videoName(base string, f *media.File, parts int) string {
	if parts > 1 {
		return fmt.Sprintf("%s - part%d%s", base, f.Index+1, f.Extension)
	}
	return base + f.Extension
}

func (r *run) video(f *media.File, rel string) {
	r.script.video(f.PublicationPath, rel)
	r.stats.Videos++
}

// images stages the artwork visible on this server. Names follow the
// player's artwork conventions: <prefix><kind>, season art as
// season<NN>-<kind> or season-specials-<kind>.
func (r *run) images(dir, prefix string, images []*media.Image) {
	seen := make(map[string]int)
	for _, img := range visibleImages(images, r.server.ID) {
		name := prefix + string(img.Kind)
		if img.Season != media.NoSeason {
			name = fmt.Sprintf("%sseason%s-%s", prefix, seasonLabel(img.Season), img.Kind)
		}
		if n := seen[name]; n > 0 {
			seen[name]++
			name = fmt.Sprintf("%s%d", name, n)
		} else {
			seen[name] = 1
		}
		ext := img.File.Extension
		if ext == "" {
			ext = ".jpg"
		}
		r.script.image(img.File.PublicationPath, joinName(dir, name, ext))
		r.stats.Images++
	}
}

func seasonLabel(season int) string {
	if season == media.SpecialsSlot {
		return "-specials"
	}
	return ConvertSeason(fmt.Sprint(season))
}

func (r *run) nfo(rel string, doc *NFO) error {
	if err := r.create(rel, func(w io.Writer) error { return WriteNFO(w, doc) }); err != nil {
		return err
	}
	r.script.copyGenerated(rel)
	r.stats.NFOs++
	return nil
}

func (r *run) mkdir(dir string) error {
	if !r.dirs[dir] {
		if err := r.out.MkdirAll(dir); err != nil {
			return fmt.Errorf("%w: %s: %w", ErrWriteFailed, dir, err)
		}
		r.dirs[dir] = true
	}
	r.script.mkdir(dir)
	return nil
}

// create writes one generated file through the output sink.
func (r *run) create(rel string, write func(io.Writer) error) error {
	f, err := r.out.Create(rel)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrWriteFailed, rel, err)
	}
	cw := &countingWriter{w: f}
	werr := write(cw)
	cerr := f.Close()
	if err := errors.Join(werr, cerr); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrWriteFailed, rel, err)
	}
	r.stats.Bytes += cw.n
	return nil
}
