/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package main

import (
	"context"
	"log"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/humaidq/labranges/cmd"
)

func main() {
	app := &cli.Command{
		Name:   "labranges",
		Usage:  "Lab reference range scraper and parser",
		Flags:  []cli.Flag{cmd.FlagLogLevel},
		Before: cmd.ApplyLogLevel,
		Commands: []*cli.Command{
			cmd.CmdParse,
			cmd.CmdScrape,
			cmd.CmdStore,
			cmd.CmdLookup,
			cmd.CmdMigrate,
		},
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}
