package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/vmunix/xbmcpub/internal/catalog"
	"github.com/vmunix/xbmcpub/internal/language"
	"github.com/vmunix/xbmcpub/internal/publish"
)

var publishCmd = &cobra.Command{
	Use:   "publish",
	Short: "Publish the catalog to every configured server",
	Long: `Build the media graph from the catalog export and publish it.

For every server and language an XBMC library tree is written to the
server's output_dir together with stage.sh, which copies it to target_root.

Examples:
  xbmcpub publish
  xbmcpub --config ./xbmcpub.toml publish --json`,
	Args: cobra.NoArgs,
	RunE: runPublishCmd,
}

func init() {
	rootCmd.AddCommand(publishCmd)
}

func runPublishCmd(cmd *cobra.Command, _ []string) error {
	cfg, path, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	runID := uuid.NewString()
	logger := newLogger(cmd.ErrOrStderr(), cfg.General.LogLevel).With("run_id", runID)
	logger.Info("publishing",
		"config", path,
		"input", cfg.General.Input,
		"languages", cfg.General.Languages,
		"servers", len(cfg.Servers))

	doc, err := catalog.DecodeFile(cfg.General.Input)
	if err != nil {
		return err
	}

	languages := language.New(cfg.LanguageNames)
	coll, err := newBuilder(cfg, languages, logger).Build(doc)
	if err != nil {
		return fmt.Errorf("building media graph: %w", err)
	}
	logger.Info("media graph built", "movies", len(coll.Movies), "series", len(coll.Series))

	stats, err := newPublisher(cfg, languages, logger).Publish(cmd.Context(), coll)
	if err != nil {
		return err
	}

	if jsonOutput {
		return writeStatsJSON(cmd.OutOrStdout(), runID, stats)
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), renderStats(stats))
	return err
}

// StatsJSON is the JSON form of one server's publish summary.
type StatsJSON struct {
	Server     string `json:"server"`
	Movies     int    `json:"movies"`
	Specials   int    `json:"specials"`
	Series     int    `json:"series"`
	Episodes   int    `json:"episodes"`
	NFOs       int    `json:"nfos"`
	Subtitles  int    `json:"subtitles"`
	Videos     int    `json:"videos"`
	Images     int    `json:"images"`
	Bytes      int64  `json:"bytes"`
	DurationMS int64  `json:"duration_ms"`
}

func writeStatsJSON(w io.Writer, runID string, stats []publish.Stats) error {
	servers := make([]StatsJSON, len(stats))
	for i, s := range stats {
		servers[i] = StatsJSON{
			Server:     s.Server,
			Movies:     s.Movies,
			Specials:   s.Specials,
			Series:     s.Series,
			Episodes:   s.Episodes,
			NFOs:       s.NFOs,
			Subtitles:  s.Subtitles,
			Videos:     s.Videos,
			Images:     s.Images,
			Bytes:      s.Bytes,
			DurationMS: s.Duration.Milliseconds(),
		}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(map[string]any{"run_id": runID, "servers": servers})
}

func renderStats(stats []publish.Stats) string {
	headers := []string{"Server", "Movies", "Specials", "Series", "Episodes", "NFOs", "Subtitles", "Videos", "Images", "Size", "Time"}
	aligns := []columnAlignment{alignLeft}
	for range headers[1:] {
		aligns = append(aligns, alignRight)
	}

	rows := make([][]string, 0, len(stats))
	for _, s := range stats {
		rows = append(rows, []string{
			s.Server,
			strconv.Itoa(s.Movies),
			strconv.Itoa(s.Specials),
			strconv.Itoa(s.Series),
			strconv.Itoa(s.Episodes),
			strconv.Itoa(s.NFOs),
			strconv.Itoa(s.Subtitles),
			strconv.Itoa(s.Videos),
			strconv.Itoa(s.Images),
			humanize.Bytes(uint64(max(s.Bytes, 0))),
			s.Duration.Round(time.Millisecond).String(),
		})
	}
	return renderTable(headers, rows, aligns)
}
