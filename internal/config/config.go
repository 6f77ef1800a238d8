// Package config handles TOML configuration loading with environment variable substitution.
package config

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/BurntSushi/toml"
)

// Config is the root configuration structure.
type Config struct {
	General       GeneralConfig     `toml:"general"`
	Tags          TagsConfig        `toml:"tags"`
	Catalog       CatalogConfig     `toml:"catalog"`
	Layout        LayoutConfig      `toml:"layout"`
	Publish       PublishConfig     `toml:"publish"`
	LanguageNames map[string]string `toml:"language_names"`
	Servers       []ServerConfig    `toml:"servers"`
}

type GeneralConfig struct {
	Input           string   `toml:"input"`
	LogLevel        string   `toml:"log_level"`
	Skin            string   `toml:"skin"`
	DefaultLanguage string   `toml:"default_language"`
	Languages       []string `toml:"languages"`
	StrictNumbers   bool     `toml:"strict_numbers"`
}

type TagsConfig struct {
	SpecialsMarker string `toml:"specials_marker"`
}

type CatalogConfig struct {
	MovieField     string `toml:"movie_field"`
	SeriesField    string `toml:"series_field"`
	SubtitlePrefix string `toml:"subtitle_prefix"`
}

type LayoutConfig struct {
	MoviesDir       string `toml:"movies_dir"`
	SeriesDir       string `toml:"series_dir"`
	SpecialsDir     string `toml:"specials_dir"`
	SeasonTemplate  string `toml:"season_template"`
	EpisodeTemplate string `toml:"episode_template"`
	LinkMode        string `toml:"link_mode"`
	Clean           bool   `toml:"clean"`
}

type PublishConfig struct {
	Workers int `toml:"workers"`
}

// ServerConfig describes one publishing target.
type ServerConfig struct {
	ID              string   `toml:"id"`
	StorageRoots    []string `toml:"storage_roots"`
	PublicationRoot string   `toml:"publication_root"`
	TargetRoot      string   `toml:"target_root"`
	OutputDir       string   `toml:"output_dir"`
}

// Link modes for video files in the staging script.
const (
	LinkSymlink = "symlink"
	LinkCopy    = "copy"
)

// Load reads and parses the configuration file.
// Unresolved environment variables and validation failures are reported
// together as a *ConfigError.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	content, missing := substituteEnvVars(string(data))

	var cfg Config
	md, err := toml.Decode(content, &cfg)
	if err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	cfg.applyDefaults(md)

	cerr := &ConfigError{Path: path, Missing: missing, Errors: cfg.Validate()}
	if cerr.HasErrors() {
		return nil, cerr
	}
	return &cfg, nil
}

func (c *Config) applyDefaults(md toml.MetaData) {
	if c.General.LogLevel == "" {
		c.General.LogLevel = "info"
	}
	if c.General.DefaultLanguage == "" {
		c.General.DefaultLanguage = "de"
	}
	c.General.DefaultLanguage = strings.ToLower(c.General.DefaultLanguage)
	if len(c.General.Languages) == 0 {
		c.General.Languages = []string{c.General.DefaultLanguage}
	}
	for i, l := range c.General.Languages {
		c.General.Languages[i] = strings.ToLower(strings.TrimSpace(l))
	}
	if !md.IsDefined("general", "strict_numbers") {
		c.General.StrictNumbers = true
	}
	if c.Tags.SpecialsMarker == "" {
		c.Tags.SpecialsMarker = "(Special)"
	}
	if c.Catalog.MovieField == "" {
		c.Catalog.MovieField = "movie"
	}
	if c.Catalog.SeriesField == "" {
		c.Catalog.SeriesField = "series"
	}
	if c.Catalog.SubtitlePrefix == "" {
		c.Catalog.SubtitlePrefix = "Untertitel"
	}
	if c.Layout.MoviesDir == "" {
		c.Layout.MoviesDir = "Filme"
	}
	if c.Layout.SeriesDir == "" {
		c.Layout.SeriesDir = "Serien"
	}
	if c.Layout.SpecialsDir == "" {
		c.Layout.SpecialsDir = "Specials"
	}
	if c.Layout.SeasonTemplate == "" {
		c.Layout.SeasonTemplate = "Season {season:02}"
	}
	if c.Layout.EpisodeTemplate == "" {
		c.Layout.EpisodeTemplate = "{series} S{season:02}E{episode:02} {title}"
	}
	if c.Layout.LinkMode == "" {
		c.Layout.LinkMode = LinkSymlink
	}
	if c.Publish.Workers == 0 {
		c.Publish.Workers = 1
	}
	for i := range c.Servers {
		if c.Servers[i].TargetRoot == "" {
			c.Servers[i].TargetRoot = c.Servers[i].OutputDir
		}
	}
}

// Server returns the server with the given id.
func (c *Config) Server(id string) (ServerConfig, bool) {
	for _, s := range c.Servers {
		if s.ID == id {
			return s, true
		}
	}
	return ServerConfig{}, false
}

// envVarPattern matches ${VAR} and ${VAR:-default}.
var envVarPattern = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)(:-([^}]*))?\}`)

// substituteEnvVars replaces environment references. Unset variables without
// a default are left in place and returned in missing.
func substituteEnvVars(content string) (string, []string) {
	var missing []string
	result := envVarPattern.ReplaceAllStringFunc(content, func(match string) string {
		m := envVarPattern.FindStringSubmatch(match)
		name, hasDefault, def := m[1], m[2] != "", m[3]
		value, ok := os.LookupEnv(name)
		switch {
		case ok && (value != "" || !hasDefault):
			return value
		case hasDefault:
			return def
		default:
			missing = append(missing, name)
			return match
		}
	})
	return result, missing
}
