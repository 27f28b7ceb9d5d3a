/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package refrange

import (
	"strings"
	"unicode"
)

// span is a top-level parenthetical: s[open] == '(' and s[close] == ')'.
type span struct {
	open  int
	close int
}

func (sp span) inner(s string) string {
	return s[sp.open+1 : sp.close]
}

// parentheticalSpans returns the balanced top-level parenthetical spans of s
// in order. Nested parentheses stay inside their enclosing span. An unmatched
// ')' is ignored, and an unclosed '(' is treated as literal text with
// scanning resumed right after it.
func parentheticalSpans(s string) []span {
	var spans []span

	from := 0
	for from < len(s) {
		depth, open := 0, -1

		for i := from; i < len(s); i++ {
			switch s[i] {
			case '(':
				if depth == 0 {
					open = i
				}
				depth++
			case ')':
				if depth == 0 {
					continue
				}
				depth--
				if depth == 0 {
					spans = append(spans, span{open: open, close: i})
				}
			}
		}

		if depth == 0 {
			break
		}
		from = open + 1
	}

	return spans
}

// removeSpans drops every span, and the whitespace just before it, from s.
func removeSpans(s string, spans []span) string {
	if len(spans) == 0 {
		return strings.TrimSpace(s)
	}

	var sb strings.Builder

	last := 0
	for _, sp := range spans {
		sb.WriteString(strings.TrimRightFunc(s[last:sp.open], unicode.IsSpace))
		last = sp.close + 1
	}
	sb.WriteString(s[last:])

	return strings.TrimSpace(sb.String())
}
