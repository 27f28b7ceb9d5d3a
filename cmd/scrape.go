/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package cmd

import (
	"context"
	"fmt"
	"net/http"

	"github.com/urfave/cli/v3"

	"github.com/humaidq/labranges/catalog"
	"github.com/humaidq/labranges/scraper"
)

var CmdScrape = newScrapeCommand()

func newScrapeCommand() *cli.Command {
	return &cli.Command{
		Name:  "scrape",
		Usage: "Scrape the reference range article, write JSON and optionally store it",
		Flags: append([]cli.Flag{
			&cli.StringFlag{
				Name:    "url",
				Value:   scraper.DefaultURL,
				Sources: cli.EnvVars("LABRANGES_URL"),
				Usage:   "article to scrape",
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Value:   "lab_values.json",
				Usage:   "JSON file to write the parsed catalog to (empty to skip)",
			},
			&cli.BoolFlag{
				Name:  "keep-fallback",
				Usage: "keep records without numeric bounds",
			},
			&cli.IntFlag{
				Name:  "concurrency",
				Value: scraper.DefaultConcurrency,
				Usage: "number of items parsed in parallel",
			},
			&cli.DurationFlag{
				Name:  "timeout",
				Usage: "HTTP timeout for fetching the article (0 for the default)",
			},
		}, storeFlags()...),
		Action: scrape,
	}
}

func scrape(ctx context.Context, cmd *cli.Command) error {
	s := &scraper.Scraper{
		URL:         cmd.String("url"),
		Concurrency: int(cmd.Int("concurrency")),
	}

	if timeout := cmd.Duration("timeout"); timeout > 0 {
		s.Client = &http.Client{Timeout: timeout}
	}

	c, err := s.Scrape(ctx)
	if err != nil {
		return fmt.Errorf("failed to scrape reference ranges: %w", err)
	}

	if !cmd.Bool("keep-fallback") {
		var filtered []string
		c, filtered = c.WithoutFallbacks()

		if len(filtered) > 0 {
			appLogger.Info("Removed non-numeric or fallback ranges", "tests", len(filtered))
			for _, name := range filtered {
				appLogger.Info("Removed fallback range", "test", name)
			}
		}
	}

	if output := cmd.String("output"); output != "" {
		if err := catalog.WriteFile(output, c); err != nil {
			return err
		}
		appLogger.Info("Saved parsed lab values", "file", output)
	}

	return persist(ctx, cmd, c)
}
