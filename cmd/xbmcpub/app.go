package main

import (
	"io"
	"log/slog"
	"strings"

	"github.com/vmunix/xbmcpub/internal/catalog"
	"github.com/vmunix/xbmcpub/internal/config"
	"github.com/vmunix/xbmcpub/internal/language"
	"github.com/vmunix/xbmcpub/internal/publish"
	"github.com/vmunix/xbmcpub/pkg/tags"
)

// loadConfig loads the config at path, or the discovered one when path is empty.
func loadConfig(path string) (*config.Config, string, error) {
	if path == "" {
		found, err := config.Discover()
		if err != nil {
			return nil, "", err
		}
		path = found
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, path, err
	}
	return cfg, path, nil
}

func parseLogLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func newLogger(w io.Writer, level string) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: parseLogLevel(level),
	}))
}

func newTagParser(cfg *config.Config, languages *language.Table) *tags.Parser {
	return tags.NewParser(tags.Options{
		Skin:           cfg.General.Skin,
		SpecialsMarker: cfg.Tags.SpecialsMarker,
		Strict:         cfg.General.StrictNumbers,
		KnownLanguage:  languages.Known,
	})
}

func newBuilder(cfg *config.Config, languages *language.Table, logger *slog.Logger) *catalog.Builder {
	servers := make([]catalog.Server, 0, len(cfg.Servers))
	for _, s := range cfg.Servers {
		servers = append(servers, catalog.Server{
			ID:              s.ID,
			StorageRoots:    s.StorageRoots,
			PublicationRoot: s.PublicationRoot,
		})
	}
	return catalog.NewBuilder(catalog.Options{
		MovieField:      cfg.Catalog.MovieField,
		SeriesField:     cfg.Catalog.SeriesField,
		SubtitlePrefix:  cfg.Catalog.SubtitlePrefix,
		DefaultLanguage: cfg.General.DefaultLanguage,
		Strict:          cfg.General.StrictNumbers,
	}, newTagParser(cfg, languages), languages, catalog.NewResolver(servers), logger)
}

func newPublisher(cfg *config.Config, languages *language.Table, logger *slog.Logger) *publish.Publisher {
	servers := make([]publish.Server, 0, len(cfg.Servers))
	for _, s := range cfg.Servers {
		servers = append(servers, publish.Server{
			ID:         s.ID,
			TargetRoot: s.TargetRoot,
			OutputDir:  s.OutputDir,
		})
	}
	return publish.New(publish.Options{
		Languages: cfg.General.Languages,
		Layout: publish.Layout{
			MoviesDir:       cfg.Layout.MoviesDir,
			SeriesDir:       cfg.Layout.SeriesDir,
			SpecialsDir:     cfg.Layout.SpecialsDir,
			SeasonTemplate:  cfg.Layout.SeasonTemplate,
			EpisodeTemplate: cfg.Layout.EpisodeTemplate,
		},
		LinkMode: cfg.Layout.LinkMode,
		Clean:    cfg.Layout.Clean,
		Strict:   cfg.General.StrictNumbers,
		Workers:  cfg.Publish.Workers,
	}, servers, languages, logger)
}
