/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */

// Package catalog holds scraped lab tests grouped by section and the
// unit-keyed document shape used when persisting them.
package catalog

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/humaidq/labranges/refrange"
)

// Item is one lab test and its parsed reference ranges.
type Item struct {
	Test   string            `json:"test"`
	Ranges []refrange.Record `json:"ranges"`
}

// Section is a heading of the source article with the tests listed under it.
type Section struct {
	Name  string
	Items []Item
}

// Catalog is the ordered list of sections scraped from one article.
type Catalog struct {
	Sections []Section
}

// TestCount returns the number of items across all sections.
func (c Catalog) TestCount() int {
	n := 0
	for _, s := range c.Sections {
		n += len(s.Items)
	}
	return n
}

// MarshalJSON encodes the catalog as an object keyed by section name, in
// document order.
func (c Catalog) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteByte('{')
	for i, s := range c.Sections {
		if i > 0 {
			buf.WriteByte(',')
		}

		key, err := json.Marshal(s.Name)
		if err != nil {
			return nil, fmt.Errorf("failed to encode section name: %w", err)
		}

		items := s.Items
		if items == nil {
			items = []Item{}
		}

		value, err := json.Marshal(items)
		if err != nil {
			return nil, fmt.Errorf("failed to encode section %q: %w", s.Name, err)
		}

		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')

	return buf.Bytes(), nil
}

// UnmarshalJSON decodes the object form produced by MarshalJSON, keeping
// section order.
func (c *Catalog) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return fmt.Errorf("failed to read catalog: %w", err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return errCatalogNotObject
	}

	sections := []Section{}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return fmt.Errorf("failed to read section name: %w", err)
		}

		name, ok := tok.(string)
		if !ok {
			return errCatalogNotObject
		}

		var items []Item
		if err := dec.Decode(&items); err != nil {
			return fmt.Errorf("failed to decode section %q: %w", name, err)
		}

		sections = append(sections, Section{Name: name, Items: items})
	}

	if _, err := dec.Token(); err != nil {
		return fmt.Errorf("failed to read catalog: %w", err)
	}

	c.Sections = sections

	return nil
}

// WithoutFallbacks returns a copy of c without fallback records, along with
// the sorted names of tests that lost at least one record.
func (c Catalog) WithoutFallbacks() (Catalog, []string) {
	out := Catalog{Sections: make([]Section, 0, len(c.Sections))}
	seen := make(map[string]struct{})

	for _, s := range c.Sections {
		section := Section{Name: s.Name, Items: make([]Item, 0, len(s.Items))}

		for _, item := range s.Items {
			kept := make([]refrange.Record, 0, len(item.Ranges))
			for _, r := range item.Ranges {
				if r.IsFallback() {
					seen[item.Test] = struct{}{}
					continue
				}
				kept = append(kept, r)
			}
			section.Items = append(section.Items, Item{Test: item.Test, Ranges: kept})
		}

		out.Sections = append(out.Sections, section)
	}

	filtered := make([]string, 0, len(seen))
	for name := range seen {
		filtered = append(filtered, name)
	}
	sort.Strings(filtered)

	return out, filtered
}
