package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"time"

	"github.com/desertthunder/amp/internal/catalog"
	"github.com/desertthunder/amp/internal/lyrics"
	"github.com/desertthunder/amp/internal/shared"
	"github.com/urfave/cli/v3"
)

func main() {
	logger := shared.NewLogger(nil)

	config := shared.DefaultConfig()
	if _, err := os.Stat("config.toml"); err == nil {
		if loadedConfig, err := shared.LoadConfig("config.toml"); err == nil {
			config = loadedConfig
		}
	}

	cat := catalog.NewYouTubeCatalog(config.Catalog.ProxyURL, nil, config.Catalog.RateRPS)

	lyricsClient := &http.Client{Timeout: time.Duration(config.Lyrics.TimeoutSeconds) * time.Second}
	provider := lyrics.NewLRCLIBProvider(config.Lyrics.BaseURL, lyricsClient, logger)

	runner := NewRunner(RunnerOpts{
		Config:  config,
		Catalog: cat,
		Lyrics:  provider,
		Logger:  logger,
	})

	app := &cli.Command{
		Name:     "amp",
		Usage:    "Play, queue, and read along with YouTube Music from the terminal",
		Version:  "0.3.0",
		Commands: runner.register(),
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		err_ := errors.Unwrap(err)
		if errors.Is(err_, shared.ErrNotImplemented) {
			logger.Warn("not implemented")
			os.Exit(0)
		} else {
			logger.Fatalf("application error: %v", err)
		}
	}
}
