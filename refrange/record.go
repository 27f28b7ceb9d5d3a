/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package refrange

import (
	"fmt"
	"strconv"
	"strings"
)

// Sex scopes a reference range to one biological sex.
type Sex string

// Sex values recognised in section labels. The zero value means the range
// is not sex specific.
const (
	SexUnspecified Sex = ""
	SexMale        Sex = "male"
	SexFemale      Sex = "female"
)

// Valid reports whether s is one of the known Sex values, including
// SexUnspecified.
func (s Sex) Valid() bool {
	switch s {
	case SexUnspecified, SexMale, SexFemale:
		return true
	default:
		return false
	}
}

// ParseSex maps user input such as "Female" or "males" to a Sex.
func ParseSex(value string) (Sex, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "":
		return SexUnspecified, nil
	case "male", "males", "m":
		return SexMale, nil
	case "female", "females", "f":
		return SexFemale, nil
	default:
		return SexUnspecified, fmt.Errorf("%w: unknown sex %q", ErrInvalidArgument, value)
	}
}

// Record is one structured reference range.
//
// A nil Low or High marks an open end. When both are nil the record is a
// fallback and Unit holds the original cleaned text. Low <= High is not
// enforced; source order is passed through.
type Record struct {
	Low  *float64 `json:"low"`
	High *float64 `json:"high"`
	Unit string   `json:"unit"`
	Sex  Sex      `json:"sex,omitempty"`
}

// IsFallback reports whether the record carries no numeric bound.
func (r Record) IsFallback() bool {
	return r.Low == nil && r.High == nil
}

func (r Record) String() string {
	var sb strings.Builder

	sb.WriteString("[")
	sb.WriteString(formatBound(r.Low))
	sb.WriteString(", ")
	sb.WriteString(formatBound(r.High))
	sb.WriteString("]")

	if r.Unit != "" {
		sb.WriteString(" ")
		sb.WriteString(r.Unit)
	}

	if r.Sex != SexUnspecified {
		sb.WriteString(" (")
		sb.WriteString(string(r.Sex))
		sb.WriteString(")")
	}

	return sb.String()
}

func formatBound(v *float64) string {
	if v == nil {
		return "-"
	}
	return strconv.FormatFloat(*v, 'g', -1, 64)
}

// ptr is a helper to create pointers to float64 values
func ptr(f float64) *float64 {
	return &f
}
