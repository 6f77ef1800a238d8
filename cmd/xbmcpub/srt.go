package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vmunix/xbmcpub/pkg/srt"
)

var srtCmd = &cobra.Command{
	Use:   "srt [flags] <file>",
	Short: "Rewrite a subtitle file with an offset",
	Long: `Parse a SubRip file, apply an offset to every entry and write it renumbered.

The offset accepts subtitle timestamps (0:00:01.500, -0:00:02) and Go
durations (1.5s, -250ms). "(Offset ...)" annotations inside the file
replace it from that point on.

Examples:
  xbmcpub srt --offset 0:00:01.500 movie.de.srt
  xbmcpub srt --offset -250ms --output fixed.srt movie.de.srt`,
	Args: cobra.ExactArgs(1),
	RunE: runSrtCmd,
}

func init() {
	rootCmd.AddCommand(srtCmd)
	srtCmd.Flags().String("offset", "0", "Offset added to every entry")
	srtCmd.Flags().StringP("output", "o", "", "Write to file instead of stdout")
	srtCmd.Flags().Bool("lenient", false, "Default malformed numbers and times to zero")
}

// parseOffset accepts a subtitle timestamp or a Go duration.
func parseOffset(s string) (time.Duration, error) {
	if s == "" || s == "0" {
		return 0, nil
	}
	if d, err := srt.ParseTimestamp(s); err == nil {
		return d, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("invalid offset %q", s)
	}
	return d, nil
}

func runSrtCmd(cmd *cobra.Command, args []string) error {
	offsetFlag, _ := cmd.Flags().GetString("offset")
	output, _ := cmd.Flags().GetString("output")
	lenient, _ := cmd.Flags().GetBool("lenient")

	offset, err := parseOffset(offsetFlag)
	if err != nil {
		return err
	}

	if _, err := os.Stat(args[0]); err != nil {
		return fmt.Errorf("reading subtitles: %w", err)
	}
	entries, err := srt.ParseFile(args[0], srt.Options{Offset: offset, Strict: !lenient})
	if err != nil {
		return err
	}

	if output != "" {
		return srt.WriteFile(output, entries)
	}
	return srt.Write(cmd.OutOrStdout(), entries)
}
