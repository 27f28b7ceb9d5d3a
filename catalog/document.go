/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package catalog

import (
	"encoding/json"

	"github.com/humaidq/labranges/refrange"
)

// Entry is a Record with its unit moved into the enclosing UnitGroup.
type Entry struct {
	Low  *float64     `json:"low" bson:"low"`
	High *float64     `json:"high" bson:"high"`
	Sex  refrange.Sex `json:"sex,omitempty" bson:"sex,omitempty"`
}

// UnitGroup collects the entries of one test that share a unit.
type UnitGroup struct {
	Unit    string
	Entries []Entry
}

// Value returns the stored form of the group: a bare Entry when the group
// has exactly one entry, otherwise the list.
func (g UnitGroup) Value() any {
	if len(g.Entries) == 1 {
		return g.Entries[0]
	}
	return g.Entries
}

// Document is the persisted form of one Item.
type Document struct {
	Type   string
	Test   string
	Ranges []UnitGroup
}

// RangesMap returns the unit-keyed mapping of the document's ranges.
func (d Document) RangesMap() map[string]any {
	m := make(map[string]any, len(d.Ranges))
	for _, g := range d.Ranges {
		m[g.Unit] = g.Value()
	}
	return m
}

// RangesJSON encodes RangesMap.
func (d Document) RangesJSON() ([]byte, error) {
	return json.Marshal(d.RangesMap())
}

// Compact regroups an item's records by unit, keeping first-seen unit order
// and record order within each unit.
func Compact(section string, item Item) Document {
	doc := Document{Type: section, Test: item.Test, Ranges: []UnitGroup{}}
	index := make(map[string]int)

	for _, r := range item.Ranges {
		i, ok := index[r.Unit]
		if !ok {
			i = len(doc.Ranges)
			index[r.Unit] = i
			doc.Ranges = append(doc.Ranges, UnitGroup{Unit: r.Unit})
		}

		doc.Ranges[i].Entries = append(doc.Ranges[i].Entries, Entry{Low: r.Low, High: r.High, Sex: r.Sex})
	}

	return doc
}

// Documents compacts every item of the catalog.
func (c Catalog) Documents() []Document {
	docs := make([]Document, 0, c.TestCount())
	for _, s := range c.Sections {
		for _, item := range s.Items {
			docs = append(docs, Compact(s.Name, item))
		}
	}
	return docs
}
