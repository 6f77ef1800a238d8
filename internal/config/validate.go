// internal/config/validate.go
package config

import (
	"fmt"
	"strings"
)

var validLogLevels = map[string]bool{
	"debug": true, "info": true, "warn": true, "error": true, "": true,
}

var validLinkModes = map[string]bool{
	LinkSymlink: true, LinkCopy: true,
}

// Validate checks the configuration for errors.
// Returns a slice of error messages (empty if valid).
func (c *Config) Validate() []string {
	var errs []string

	if c.General.Input == "" {
		errs = append(errs, "general.input: required")
	}
	if !validLogLevels[c.General.LogLevel] {
		errs = append(errs, fmt.Sprintf("general.log_level: must be one of debug, info, warn, error; got %q", c.General.LogLevel))
	}
	if !isLanguageCode(c.General.DefaultLanguage) {
		errs = append(errs, fmt.Sprintf("general.default_language: must be a 2-letter code, got %q", c.General.DefaultLanguage))
	}
	for i, l := range c.General.Languages {
		if !isLanguageCode(l) {
			errs = append(errs, fmt.Sprintf("general.languages[%d]: must be a 2-letter code, got %q", i, l))
		}
	}

	if strings.TrimSpace(c.Tags.SpecialsMarker) == "" {
		errs = append(errs, "tags.specials_marker: must not be blank")
	}
	if c.Catalog.MovieField != "" && strings.EqualFold(c.Catalog.MovieField, c.Catalog.SeriesField) {
		errs = append(errs, "catalog.series_field: must differ from catalog.movie_field")
	}

	if !validLinkModes[c.Layout.LinkMode] {
		errs = append(errs, fmt.Sprintf("layout.link_mode: must be one of symlink, copy; got %q", c.Layout.LinkMode))
	}
	if !strings.Contains(c.Layout.SeasonTemplate, "{season") {
		errs = append(errs, "layout.season_template: must contain {season}")
	}
	if !strings.Contains(c.Layout.EpisodeTemplate, "{episode") {
		errs = append(errs, "layout.episode_template: must contain {episode}")
	}
	if c.Publish.Workers < 1 {
		errs = append(errs, fmt.Sprintf("publish.workers: must be at least 1, got %d", c.Publish.Workers))
	}

	if len(c.Servers) == 0 {
		errs = append(errs, "servers: at least one server must be configured")
	}
	seen := make(map[string]bool, len(c.Servers))
	for i, s := range c.Servers {
		prefix := fmt.Sprintf("servers[%d]", i)
		if s.ID == "" {
			errs = append(errs, prefix+".id: required")
		} else {
			prefix = fmt.Sprintf("servers.%s", s.ID)
			if seen[s.ID] {
				errs = append(errs, prefix+": duplicate id")
			}
			seen[s.ID] = true
		}
		if len(s.StorageRoots) == 0 {
			errs = append(errs, prefix+".storage_roots: at least one root required")
		}
		for j, root := range s.StorageRoots {
			if strings.TrimSpace(root) == "" {
				errs = append(errs, fmt.Sprintf("%s.storage_roots[%d]: must not be blank", prefix, j))
			}
		}
		if s.OutputDir == "" {
			errs = append(errs, prefix+".output_dir: required")
		}
	}

	return errs
}

func isLanguageCode(s string) bool {
	if len(s) != 2 {
		return false
	}
	for _, r := range s {
		if r < 'a' || r > 'z' {
			return false
		}
	}
	return true
}
