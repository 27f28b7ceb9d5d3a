/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package refrange

import (
	"regexp"
	"strconv"
	"strings"
)

const number = `(-?\d+(?:\.\d+)?)`

var (
	closedRangePattern = regexp.MustCompile(`^` + number + `\s*-\s*` + number + `(?:\s*(.*))?$`)
	inequalityPattern  = regexp.MustCompile(`^([<>]=?)\s*` + number + `(?:\s*(.*))?$`)
)

// classifier turns a main expression into a Record when it recognises it.
type classifier struct {
	name  string
	match func(expr string, sex Sex) (Record, bool)
}

// classifiers are tried in order and the first match wins. The closed range
// comes before the inequality so "5-10" is never read as an open bound.
var classifiers = []classifier{
	{name: "closed-range", match: matchClosedRange},
	{name: "inequality", match: matchInequality},
	{name: "fallback", match: matchFallback},
}

func classify(expr string, sex Sex) Record {
	for _, c := range classifiers {
		if rec, ok := c.match(expr, sex); ok {
			return rec
		}
	}

	// unreachable, matchFallback accepts everything
	return Record{Unit: expr, Sex: sex}
}

func matchClosedRange(expr string, sex Sex) (Record, bool) {
	m := closedRangePattern.FindStringSubmatch(expr)
	if m == nil {
		return Record{}, false
	}

	unit, ok := unitOf(m[3])
	if !ok {
		return Record{}, false
	}

	low, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return Record{}, false
	}

	high, err := strconv.ParseFloat(m[2], 64)
	if err != nil {
		return Record{}, false
	}

	return Record{Low: ptr(low), High: ptr(high), Unit: unit, Sex: sex}, true
}

func matchInequality(expr string, sex Sex) (Record, bool) {
	m := inequalityPattern.FindStringSubmatch(expr)
	if m == nil {
		return Record{}, false
	}

	unit, ok := unitOf(m[3])
	if !ok {
		return Record{}, false
	}

	n, err := strconv.ParseFloat(m[2], 64)
	if err != nil {
		return Record{}, false
	}

	if strings.HasPrefix(m[1], "<") {
		return Record{High: ptr(n), Unit: unit, Sex: sex}, true
	}

	return Record{Low: ptr(n), Unit: unit, Sex: sex}, true
}

func matchFallback(expr string, sex Sex) (Record, bool) {
	return Record{Unit: expr, Sex: sex}, true
}

// unitOf trims the text trailing a number. Text starting with ':' means the
// number was part of a ratio such as a 1:20 titer, which is not a bound.
func unitOf(rest string) (string, bool) {
	rest = strings.TrimSpace(rest)
	if strings.HasPrefix(rest, ":") {
		return "", false
	}
	return rest, true
}
