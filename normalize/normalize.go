/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */

// Package normalize canonicalizes text scraped from lab reference tables so
// that it can be matched with simple ASCII patterns.
package normalize

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// symbolReplacer folds glyphs that survive NFKD into their ASCII spelling.
// The micro sign decomposes to GREEK SMALL LETTER MU under NFKD, so both
// code points are mapped.
var symbolReplacer = strings.NewReplacer(
	"\u00a0", " ",
	"µ", "u",
	"μ", "u",
	"×", "x",
	"˂", "<",
	"≥", ">=",
	"≤", "<=",
)

// Text returns s in NFKD form with non-breaking spaces, micro signs,
// multiplication signs and inequality glyphs replaced by ASCII, trimmed of
// surrounding whitespace. It is idempotent.
func Text(s string) string {
	if s == "" {
		return ""
	}

	s = norm.NFKD.String(s)
	s = symbolReplacer.Replace(s)

	return strings.TrimSpace(s)
}
