package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var version = "dev"

var (
	configPath string
	jsonOutput bool
)

var rootCmd = &cobra.Command{
	Use:   "xbmcpub",
	Short: "Publish a media catalog as XBMC libraries",
	Long: `xbmcpub - publish a media catalog as XBMC libraries

Reads the catalog export, builds the movie and series graph and writes one
library per server and language: NFO files, subtitles and a staging script.

Without a subcommand, xbmcpub runs 'publish'.`,
	SilenceUsage: true,
	RunE:         runPublishCmd,
}

func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to config file (default: discovered)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output as JSON")

	rootCmd.Version = version
	rootCmd.SetVersionTemplate("xbmcpub {{.Version}}\n")
}
