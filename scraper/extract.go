/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package scraper

import (
	"fmt"
	"io"
	"strings"

	nethtml "golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/humaidq/labranges/normalize"
)

// RawSection is a heading and the text of the list items that follow it,
// before any value parsing.
type RawSection struct {
	Name  string
	Items []string
}

var parseHTML = nethtml.Parse

// Extract returns every h3 heading with the li text of the first ul that
// follows it, normalized and in document order. A heading with no list
// before the next h3 gives a section with no items.
func Extract(r io.Reader) ([]RawSection, error) {
	doc, err := parseHTML(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	var sections []RawSection

	walk(doc, func(n *nethtml.Node) {
		if !isElement(n, atom.H3) {
			return
		}

		section := RawSection{Name: normalize.Text(nodeText(n)), Items: []string{}}

		if list := nextList(n); list != nil {
			walk(list, func(li *nethtml.Node) {
				if isElement(li, atom.Li) {
					section.Items = append(section.Items, normalize.Text(nodeText(li)))
				}
			})
		}

		sections = append(sections, section)
	})

	return sections, nil
}

// walk visits n and its descendants in document order.
func walk(n *nethtml.Node, visit func(*nethtml.Node)) {
	visit(n)
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walk(c, visit)
	}
}

func isElement(n *nethtml.Node, a atom.Atom) bool {
	return n.Type == nethtml.ElementNode && n.DataAtom == a
}

// nextList returns the first ul sibling after heading, stopping at the next h3.
func nextList(heading *nethtml.Node) *nethtml.Node {
	for s := heading.NextSibling; s != nil; s = s.NextSibling {
		if isElement(s, atom.H3) {
			return nil
		}
		if isElement(s, atom.Ul) {
			return s
		}
	}
	return nil
}

// nodeText joins the trimmed, non-empty text nodes under n with single spaces.
func nodeText(n *nethtml.Node) string {
	var parts []string

	walk(n, func(c *nethtml.Node) {
		if c.Type != nethtml.TextNode {
			return
		}
		if t := strings.TrimSpace(c.Data); t != "" {
			parts = append(parts, t)
		}
	})

	return strings.Join(parts, " ")
}
