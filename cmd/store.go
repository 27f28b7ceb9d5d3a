/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package cmd

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/humaidq/labranges/catalog"
)

var CmdStore = newStoreCommand()

func newStoreCommand() *cli.Command {
	return &cli.Command{
		Name:  "store",
		Usage: "Store a previously written catalog JSON file",
		Flags: append([]cli.Flag{
			&cli.StringFlag{
				Name:    "input",
				Aliases: []string{"i"},
				Value:   "lab_values.json",
				Usage:   "catalog JSON file written by scrape",
			},
		}, storeFlags()...),
		Action: storeFile,
	}
}

func storeFile(ctx context.Context, cmd *cli.Command) error {
	c, err := catalog.ReadFile(cmd.String("input"))
	if err != nil {
		return err
	}

	appLogger.Info("Loaded catalog", "sections", len(c.Sections), "tests", c.TestCount())

	return persist(ctx, cmd, c)
}
