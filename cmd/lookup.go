/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/humaidq/labranges/db"
)

var CmdLookup = newLookupCommand()

func newLookupCommand() *cli.Command {
	return &cli.Command{
		Name:      "lookup",
		Usage:     "Print stored reference ranges for a test from PostgreSQL",
		ArgsUsage: "<test name>",
		Flags: []cli.Flag{
			databaseURLFlag(),
		},
		Action: lookup,
	}
}

type lookupResult struct {
	Type   string          `json:"type"`
	Test   string          `json:"test"`
	Ranges json.RawMessage `json:"ranges"`
}

func lookup(ctx context.Context, cmd *cli.Command) error {
	name := strings.TrimSpace(strings.Join(cmd.Args().Slice(), " "))
	if name == "" {
		return errTestNameRequired
	}

	databaseURL := cmd.String("database-url")
	if databaseURL == "" {
		return errDatabaseURLRequired
	}

	if err := db.Init(ctx, databaseURL); err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer db.Close()

	docs, err := db.FindDocuments(ctx, name)
	if err != nil {
		return err
	}

	if len(docs) == 0 {
		appLogger.Warn("No stored reference ranges", "test", name)
		return nil
	}

	enc := json.NewEncoder(cmd.Root().Writer)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")

	for _, doc := range docs {
		if err := enc.Encode(lookupResult{Type: doc.Type, Test: doc.Test, Ranges: doc.Ranges}); err != nil {
			return fmt.Errorf("failed to write result: %w", err)
		}
	}

	return nil
}
