// internal/config/discover.go
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// DefaultPath returns the XDG-compliant default config path.
func DefaultPath() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "./xbmcpub.toml"
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "xbmcpub", "config.toml")
}

// Discover finds the config file using the standard search order.
// Search order:
//  1. XBMCPUB_CONFIG environment variable
//  2. ./xbmcpub.toml (current directory)
//  3. $XDG_CONFIG_HOME/xbmcpub/config.toml
//  4. /etc/xbmcpub/config.toml
func Discover() (string, error) {
	if envPath := os.Getenv("XBMCPUB_CONFIG"); envPath != "" {
		if _, err := os.Stat(envPath); err != nil {
			return "", fmt.Errorf("XBMCPUB_CONFIG=%s: %w", envPath, err)
		}
		return envPath, nil
	}

	paths := []string{
		"./xbmcpub.toml",
		DefaultPath(),
		"/etc/xbmcpub/config.toml",
	}
	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			return p, nil
		}
	}

	return "", fmt.Errorf("config not found, checked: %s", strings.Join(paths, ", "))
}
