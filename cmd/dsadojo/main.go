package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"dsadojo/internal/app"
)

func main() {
	cfg := app.DefaultConfig()

	flag.StringVar(&cfg.DataDir, "data-dir", cfg.DataDir, "directory for the progress database (default ~/.local/share/dsadojo)")
	flag.StringVar(&cfg.CatalogDir, "catalogs", cfg.CatalogDir, "directory holding curriculum catalogs")
	flag.StringVar(&cfg.CatalogID, "catalog", cfg.CatalogID, "catalog id to open (default: first found)")
	flag.StringVar(&cfg.LogPath, "log", cfg.LogPath, "write JSON logs to this file")
	flag.BoolVar(&cfg.Debug, "debug", cfg.Debug, "verbose logging")
	flag.BoolVar(&cfg.ASCIIOnly, "ascii", cfg.ASCIIOnly, "avoid non-ASCII glyphs")
	flag.StringVar(&cfg.UI.StyleVariant, "style", cfg.UI.StyleVariant, "ui style variant (roadmap_dark, paper_light)")
	flag.StringVar(&cfg.UI.MotionLevel, "motion", cfg.UI.MotionLevel, "ui motion level (off, reduced, full)")
	flag.Parse()

	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, "dsadojo:", err)
		os.Exit(2)
	}

	a, err := app.New(cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, "dsadojo:", err)
		os.Exit(1)
	}
	defer a.Close()

	if err := a.Run(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "dsadojo:", err)
		os.Exit(1)
	}
}
