package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vmunix/xbmcpub/internal/config"
	"github.com/vmunix/xbmcpub/internal/language"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Configuration management",
}

var configTestCmd = &cobra.Command{
	Use:   "test [path]",
	Short: "Validate configuration file",
	Long:  "Validates TOML syntax, required fields, and environment variable substitution without publishing.",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runConfigTest,
}

var configInitCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "Write an example configuration file",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runConfigInit,
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configTestCmd)
	configCmd.AddCommand(configInitCmd)
	configInitCmd.Flags().Bool("force", false, "Overwrite an existing file")
	configTestCmd.Flags().String("server", "", "Show the settings of one server")
	configTestCmd.Flags().String("write", "", "Write the effective configuration to this path")
}

func runConfigTest(cmd *cobra.Command, args []string) error {
	path := configPath
	if len(args) > 0 {
		path = args[0]
	}
	out := cmd.OutOrStdout()

	cfg, path, err := loadConfig(path)
	if path != "" {
		fmt.Fprintf(out, "Validating %s...\n\n", path)
	}
	if err != nil {
		var configErr *config.ConfigError
		if errors.As(err, &configErr) {
			printConfigErrors(out, configErr)
			return fmt.Errorf("configuration invalid")
		}
		return fmt.Errorf("failed to load config: %w", err)
	}

	printConfigSummary(out, cfg)

	if id, _ := cmd.Flags().GetString("server"); id != "" {
		srv, ok := cfg.Server(id)
		if !ok {
			return fmt.Errorf("unknown server %q", id)
		}
		printServer(out, srv)
	}

	fmt.Fprintln(out, "\nConfiguration valid!")

	if dest, _ := cmd.Flags().GetString("write"); dest != "" {
		if err := cfg.Write(dest); err != nil {
			return fmt.Errorf("writing config: %w", err)
		}
		fmt.Fprintf(out, "Wrote effective configuration to %s\n", dest)
	}
	return nil
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	force, _ := cmd.Flags().GetBool("force")
	path := config.DefaultPath()
	if len(args) > 0 {
		path = args[0]
	}

	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	}
	if err := config.WriteDefault(path); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
	return nil
}

func printConfigErrors(w io.Writer, e *config.ConfigError) {
	if len(e.Missing) > 0 {
		fmt.Fprintln(w, "Missing environment variables:")
		for _, m := range e.Missing {
			fmt.Fprintf(w, "  - %s\n", m)
		}
		fmt.Fprintln(w)
	}

	if len(e.Errors) > 0 {
		fmt.Fprintln(w, "Validation errors:")
		for _, err := range e.Errors {
			fmt.Fprintf(w, "  - %s\n", err)
		}
		fmt.Fprintln(w)
	}
}

func printConfigSummary(w io.Writer, cfg *config.Config) {
	fmt.Fprintln(w, "Configuration Summary:")
	fmt.Fprintf(w, "  Input:      %s (log: %s)\n", cfg.General.Input, cfg.General.LogLevel)
	fmt.Fprintf(w, "  Languages:  %s (default: %s)\n", strings.Join(cfg.General.Languages, ", "), cfg.General.DefaultLanguage)
	fmt.Fprintf(w, "  Known:      %s\n", strings.Join(language.New(cfg.LanguageNames).Codes(), " "))
	fmt.Fprintf(w, "  Layout:     %s, %s, %s (%s)\n", cfg.Layout.MoviesDir, cfg.Layout.SeriesDir, cfg.Layout.SpecialsDir, cfg.Layout.LinkMode)
	fmt.Fprintf(w, "  Workers:    %d\n", cfg.Publish.Workers)

	ids := make([]string, 0, len(cfg.Servers))
	for _, s := range cfg.Servers {
		ids = append(ids, s.ID)
	}
	fmt.Fprintf(w, "  Servers:    %s\n", strings.Join(ids, ", "))
}

func printServer(w io.Writer, s config.ServerConfig) {
	fmt.Fprintf(w, "\nServer %s:\n", s.ID)
	fmt.Fprintf(w, "  Storage:     %s\n", strings.Join(s.StorageRoots, ", "))
	fmt.Fprintf(w, "  Publication: %s\n", s.PublicationRoot)
	fmt.Fprintf(w, "  Target:      %s\n", s.TargetRoot)
	fmt.Fprintf(w, "  Output:      %s\n", s.OutputDir)
}
