/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package cmd

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/humaidq/labranges/refrange"
	"github.com/humaidq/labranges/scraper"
)

var CmdParse = newParseCommand()

func newParseCommand() *cli.Command {
	return &cli.Command{
		Name:      "parse",
		Usage:     "Parse reference range values and print them as JSON lines",
		ArgsUsage: "[value...]",
		Description: "Each argument is parsed as one value. Without arguments, every non-empty " +
			"line of standard input is parsed.",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "sex",
				Usage: "force every record to male or female",
			},
			&cli.BoolFlag{
				Name:  "items",
				Usage: "treat input as \"test: value\" list items; items without a colon get no ranges",
			},
		},
		Action: parseValues,
	}
}

type parsedLine struct {
	Test   string            `json:"test,omitempty"`
	Input  string            `json:"input"`
	Ranges []refrange.Record `json:"ranges"`
}

func parseValues(ctx context.Context, cmd *cli.Command) error {
	sex, err := refrange.ParseSex(cmd.String("sex"))
	if err != nil {
		return err
	}

	enc := json.NewEncoder(cmd.Root().Writer)
	enc.SetEscapeHTML(false)

	emit := func(line parsedLine) error {
		if err := enc.Encode(line); err != nil {
			return fmt.Errorf("failed to write result: %w", err)
		}
		return nil
	}

	items := cmd.Bool("items")

	handle := func(text string) error {
		line := parsedLine{Input: text, Ranges: []refrange.Record{}}

		value := text
		if items {
			var ok bool
			if line.Test, value, ok = scraper.SplitItem(text); !ok {
				return emit(line)
			}
		}

		records, err := refrange.ParseWithSex(value, sex)
		if err != nil {
			return err
		}
		line.Ranges = records

		return emit(line)
	}

	if cmd.Args().Present() {
		for _, value := range cmd.Args().Slice() {
			if err := handle(value); err != nil {
				return err
			}
		}
		return nil
	}

	sc := bufio.NewScanner(cmd.Root().Reader)
	for sc.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}

		text := strings.TrimSpace(sc.Text())
		if text == "" {
			continue
		}

		if err := handle(text); err != nil {
			return err
		}
	}

	if err := sc.Err(); err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}

	return nil
}
