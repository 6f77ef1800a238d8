package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vmunix/xbmcpub/internal/language"
	"github.com/vmunix/xbmcpub/pkg/tags"
)

// ParseResultJSON is the JSON-friendly representation of a tags.Result.
type ParseResultJSON struct {
	Input      string   `json:"input"`
	Title      string   `json:"title"`
	Codec      string   `json:"codec,omitempty"`
	Definition string   `json:"definition,omitempty"`
	Aspect     string   `json:"aspect,omitempty"`
	MPAA       *int     `json:"mpaa,omitempty"`
	Rating     *float64 `json:"rating,omitempty"`
	Special    bool     `json:"special,omitempty"`
	Season     *int     `json:"season,omitempty"`
	Languages  []string `json:"languages,omitempty"`
	Issues     []string `json:"issues,omitempty"`
}

func toParseJSON(input string, r tags.Result) ParseResultJSON {
	out := ParseResultJSON{
		Input:      input,
		Title:      r.Title,
		Codec:      string(r.Codec),
		Definition: string(r.Definition),
		Aspect:     string(r.Aspect),
		MPAA:       r.MPAA,
		Rating:     r.Rating,
		Special:    r.Special,
		Season:     r.Season,
		Languages:  r.Languages,
	}
	for _, issue := range r.Issues {
		out.Issues = append(out.Issues, issue.Error())
	}
	return out
}

var parseCmd = &cobra.Command{
	Use:   "parse [flags] <title>...",
	Short: "Show the markers found in catalog titles",
	Long: `Parse catalog titles and print the attributes carried by their markers.

Examples:
  xbmcpub parse "Foo (H264)(HD)(16:9)(S2)"
  xbmcpub parse --json "Bar (L de en)" "Baz (F12)(R7.5)"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runParseCmd,
}

func init() {
	rootCmd.AddCommand(parseCmd)
	parseCmd.Flags().String("skin", "", "Player skin")
	parseCmd.Flags().String("specials-marker", tags.DefaultSpecialsMarker, "Marker for bonus material")
	parseCmd.Flags().Bool("lenient", false, "Default malformed numbers to zero instead of failing")
	// Note: --json is inherited from root as persistent flag
}

func runParseCmd(cmd *cobra.Command, args []string) error {
	skin, _ := cmd.Flags().GetString("skin")
	marker, _ := cmd.Flags().GetString("specials-marker")
	lenient, _ := cmd.Flags().GetBool("lenient")

	parser := tags.NewParser(tags.Options{
		Skin:           skin,
		SpecialsMarker: marker,
		Strict:         !lenient,
		KnownLanguage:  language.New(nil).Known,
	})

	results := make([]ParseResultJSON, 0, len(args))
	for _, title := range args {
		r, err := parser.Parse(title)
		if err != nil {
			return fmt.Errorf("parsing %q: %w", title, err)
		}
		results = append(results, toParseJSON(title, r))
	}

	out := cmd.OutOrStdout()
	if jsonOutput {
		return outputJSON(out, results)
	}
	for i, r := range results {
		if i > 0 {
			fmt.Fprintln(out)
		}
		printHumanReadable(out, r)
	}
	return nil
}

func printHumanReadable(w io.Writer, r ParseResultJSON) {
	fmt.Fprintf(w, "Title:       %s\n", valueOrEmpty(r.Title))
	if r.Codec != "" {
		fmt.Fprintf(w, "Codec:       %s\n", r.Codec)
	}
	if r.Definition != "" {
		fmt.Fprintf(w, "Definition:  %s\n", r.Definition)
	}
	if r.Aspect != "" {
		fmt.Fprintf(w, "Aspect:      %s\n", r.Aspect)
	}
	if r.MPAA != nil {
		fmt.Fprintf(w, "MPAA:        %d\n", *r.MPAA)
	}
	if r.Rating != nil {
		fmt.Fprintf(w, "Rating:      %g\n", *r.Rating)
	}
	if r.Season != nil {
		fmt.Fprintf(w, "Season:      %d\n", *r.Season)
	}
	fmt.Fprintf(w, "Special:     %s\n", boolToYesNo(r.Special))
	if len(r.Languages) > 0 {
		fmt.Fprintf(w, "Languages:   %s\n", strings.Join(r.Languages, ", "))
	}
	for _, issue := range r.Issues {
		fmt.Fprintf(w, "Issue:       %s\n", issue)
	}
}

// valueOrEmpty returns the value or an empty placeholder.
func valueOrEmpty(s string) string {
	if s == "" {
		return "(none)"
	}
	return s
}

// boolToYesNo converts a boolean to yes/no string.
func boolToYesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

// outputJSON writes a single result as an object, several as an array.
func outputJSON(w io.Writer, results []ParseResultJSON) error {
	var output any = results
	if len(results) == 1 {
		output = results[0]
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(output)
}
