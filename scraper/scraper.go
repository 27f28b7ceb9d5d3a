/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */

// Package scraper fetches a lab reference article, extracts its headings
// and list items, and parses every "test: value" item into range records.
package scraper

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/humaidq/labranges/catalog"
	"github.com/humaidq/labranges/refrange"
)

// DefaultConcurrency bounds the number of items parsed at once.
const DefaultConcurrency = 8

// Scraper turns a reference range article into a catalog.
type Scraper struct {
	Client      *http.Client
	URL         string
	Concurrency int
}

// Scrape fetches s.URL and builds the catalog.
func (s *Scraper) Scrape(ctx context.Context) (catalog.Catalog, error) {
	url := s.URL
	if url == "" {
		url = DefaultURL
	}

	logger.Info("Fetching reference ranges", "url", url)

	body, err := Fetch(ctx, s.Client, url)
	if err != nil {
		return catalog.Catalog{}, err
	}

	raw, err := Extract(bytes.NewReader(body))
	if err != nil {
		return catalog.Catalog{}, err
	}

	if len(raw) == 0 {
		return catalog.Catalog{}, fmt.Errorf("%w: %s", ErrNoSections, url)
	}

	c, err := Build(ctx, raw, s.Concurrency)
	if err != nil {
		return catalog.Catalog{}, err
	}

	logger.Info("Parsed reference ranges", "sections", len(c.Sections), "tests", c.TestCount())

	return c, nil
}

// Build parses every raw item into a catalog item. Items are parsed
// concurrently with at most limit workers; output order follows input order.
func Build(ctx context.Context, raw []RawSection, limit int) (catalog.Catalog, error) {
	if limit <= 0 {
		limit = DefaultConcurrency
	}

	c := catalog.Catalog{Sections: make([]catalog.Section, len(raw))}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)

	for i, rs := range raw {
		c.Sections[i] = catalog.Section{Name: rs.Name, Items: make([]catalog.Item, len(rs.Items))}

		for j, text := range rs.Items {
			items := c.Sections[i].Items
			g.Go(func() error {
				if err := ctx.Err(); err != nil {
					return err
				}
				items[j] = ParseItem(text)
				return nil
			})
		}
	}

	if err := g.Wait(); err != nil {
		return catalog.Catalog{}, fmt.Errorf("failed to parse items: %w", err)
	}

	return c, nil
}

// SplitItem splits a list item at its first colon into a test name and a
// value. ok is false when the item has no colon and so carries no value.
func SplitItem(text string) (test, value string, ok bool) {
	test, value, ok = strings.Cut(text, ":")
	if !ok {
		return strings.TrimSpace(text), "", false
	}
	return strings.TrimSpace(test), strings.TrimSpace(value), true
}

// ParseItem parses a "test: value" list item. Items without a colon are
// never handed to the parser and get an empty range list.
func ParseItem(text string) catalog.Item {
	test, value, ok := SplitItem(text)
	if !ok {
		return catalog.Item{Test: test, Ranges: []refrange.Record{}}
	}

	return catalog.Item{Test: test, Ranges: refrange.Parse(value)}
}
