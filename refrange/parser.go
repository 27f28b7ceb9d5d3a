/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */

// Package refrange turns free-text clinical reference ranges such as
// "Females: <10 ng/mL; Males: 5-20 ng/mL (fasting)" into Records.
//
// Parsing never fails on malformed text: anything that is not a closed range
// or an inequality becomes a fallback Record. The package holds no mutable
// state and is safe for concurrent use.
package refrange

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/humaidq/labranges/normalize"
)

var (
	sectionSeparator     = regexp.MustCompile(`\s*;\s*`)
	alternativeSeparator = regexp.MustCompile(`\s+or\s+`)
	sexLabel             = regexp.MustCompile(`(?i)^(female|male)s?:`)
)

// Parse converts a raw value string into range records in textual order:
// sections, then alternatives, then the main expression before any
// parenthetical content. The result is never nil.
func Parse(value string) []Record {
	return parse(value, SexUnspecified)
}

// ParseWithSex is Parse with every record forced to sex. Section labels in
// value are ignored when sex is set.
func ParseWithSex(value string, sex Sex) ([]Record, error) {
	if !sex.Valid() {
		return nil, fmt.Errorf("%w: unknown sex %q", ErrInvalidArgument, sex)
	}

	return parse(value, sex), nil
}

func parse(value string, override Sex) []Record {
	return parseSections(stripThousandsSeparators(normalize.Text(value)), override)
}

// parseSections parses already normalized text. Parenthetical content
// recurses here so the input is normalized only once.
func parseSections(value string, override Sex) []Record {
	records := make([]Record, 0)

	value = strings.TrimSpace(value)

	for _, section := range sectionSeparator.Split(value, -1) {
		sex := override
		if sex == SexUnspecified {
			sex, section = detectSex(section)
		}

		for _, part := range alternativeSeparator.Split(section, -1) {
			if part == "" {
				continue
			}
			records = append(records, parseSingle(part, sex)...)
		}
	}

	return records
}

// detectSex strips a leading "Female:"/"Males:" style label from section.
func detectSex(section string) (Sex, string) {
	m := sexLabel.FindStringSubmatch(section)
	if m == nil {
		return SexUnspecified, section
	}

	sex := SexMale
	if strings.EqualFold(m[1], "female") {
		sex = SexFemale
	}

	return sex, strings.TrimSpace(section[len(m[0]):])
}

// stripThousandsSeparators deletes commas that sit between two digits.
func stripThousandsSeparators(s string) string {
	if !strings.Contains(s, ",") {
		return s
	}

	var sb strings.Builder
	sb.Grow(len(s))

	for i := 0; i < len(s); i++ {
		if s[i] == ',' && i > 0 && i+1 < len(s) && isDigit(s[i-1]) && isDigit(s[i+1]) {
			continue
		}
		sb.WriteByte(s[i])
	}

	return sb.String()
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

// parseSingle handles one alternative part. Parenthetical spans are parsed
// recursively with sex forced and emitted after the main expression.
func parseSingle(part string, sex Sex) []Record {
	part = strings.TrimSpace(part)

	spans := parentheticalSpans(part)

	var nested []Record
	for _, sp := range spans {
		nested = append(nested, parseSections(sp.inner(part), sex)...)
	}

	var records []Record
	if main := removeSpans(part, spans); main != "" {
		records = append(records, classify(main, sex))
	}

	return append(records, nested...)
}
