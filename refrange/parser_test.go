// SPDX-FileCopyrightText: 2025 Humaid Alqasimi
// SPDX-License-Identifier: Apache-2.0

package refrange

import (
	"errors"
	"reflect"
	"strings"
	"sync"
	"testing"
)

func rng(low, high float64, unit string, sex Sex) Record {
	return Record{Low: ptr(low), High: ptr(high), Unit: unit, Sex: sex}
}

func below(high float64, unit string, sex Sex) Record {
	return Record{High: ptr(high), Unit: unit, Sex: sex}
}

func above(low float64, unit string, sex Sex) Record {
	return Record{Low: ptr(low), Unit: unit, Sex: sex}
}

func text(unit string, sex Sex) Record {
	return Record{Unit: unit, Sex: sex}
}

func assertRecords(t *testing.T, input string, got, want []Record) {
	t.Helper()

	if got == nil {
		t.Fatalf("Parse(%q) returned nil slice", input)
	}

	if len(got) != len(want) {
		t.Fatalf("Parse(%q) returned %d records %v, want %d %v", input, len(got), got, len(want), want)
	}

	for i := range want {
		if !reflect.DeepEqual(got[i], want[i]) {
			t.Fatalf("Parse(%q)[%d] = %v, want %v", input, i, got[i], want[i])
		}
	}
}

func TestParse(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  []Record
	}{
		{
			name:  "empty",
			input: "",
			want:  []Record{},
		},
		{
			name:  "whitespace only",
			input: "   ",
			want:  []Record{},
		},
		{
			name:  "closed range with unit",
			input: "150-400 units",
			want:  []Record{rng(150, 400, "units", SexUnspecified)},
		},
		{
			name:  "closed range without unit",
			input: "5 - 10",
			want:  []Record{rng(5, 10, "", SexUnspecified)},
		},
		{
			name:  "thousands separators",
			input: "1,200-1,500",
			want:  []Record{rng(1200, 1500, "", SexUnspecified)},
		},
		{
			name:  "thousands separators in millions",
			input: "150,000-450,000/uL",
			want:  []Record{rng(150000, 450000, "/uL", SexUnspecified)},
		},
		{
			name:  "list comma is kept",
			input: "Negative, trace",
			want:  []Record{text("Negative, trace", SexUnspecified)},
		},
		{
			name:  "negative and decimal bounds",
			input: "-2.5-+2.5 mEq/L",
			want:  []Record{text("-2.5-+2.5 mEq/L", SexUnspecified)},
		},
		{
			name:  "negative bounds",
			input: "-3 - -1 SD",
			want:  []Record{rng(-3, -1, "SD", SexUnspecified)},
		},
		{
			name:  "inverted bounds pass through",
			input: "20-5 mg",
			want:  []Record{rng(20, 5, "mg", SexUnspecified)},
		},
		{
			name:  "less than",
			input: "<10 ng/mL",
			want:  []Record{below(10, "ng/mL", SexUnspecified)},
		},
		{
			name:  "less or equal",
			input: "<= 0.5",
			want:  []Record{below(0.5, "", SexUnspecified)},
		},
		{
			name:  "greater than",
			input: ">60 mL/min/1.73 m2",
			want:  []Record{above(60, "mL/min/1.73 m2", SexUnspecified)},
		},
		{
			name:  "modifier less-than glyph",
			input: "˂35 U/L",
			want:  []Record{below(35, "U/L", SexUnspecified)},
		},
		{
			name:  "sex sections",
			input: "Females: <10 ng/mL; Males: 5-20 ng/mL",
			want: []Record{
				below(10, "ng/mL", SexFemale),
				rng(5, 20, "ng/mL", SexMale),
			},
		},
		{
			name:  "sex label is case insensitive",
			input: "MALE: 13.5-17.5 g/dL; female: 12.0-15.5 g/dL",
			want: []Record{
				rng(13.5, 17.5, "g/dL", SexMale),
				rng(12.0, 15.5, "g/dL", SexFemale),
			},
		},
		{
			name:  "sex word without colon is not a label",
			input: "Male adults 5-10",
			want:  []Record{text("Male adults 5-10", SexUnspecified)},
		},
		{
			name:  "alternatives",
			input: "Negative or <1:20 titer",
			want: []Record{
				text("Negative", SexUnspecified),
				text("<1:20 titer", SexUnspecified),
			},
		},
		{
			name:  "alternatives keep order and duplicates",
			input: "5-10 mg or 5-10 mg",
			want: []Record{
				rng(5, 10, "mg", SexUnspecified),
				rng(5, 10, "mg", SexUnspecified),
			},
		},
		{
			name:  "or inside a word does not split",
			input: "Normal color",
			want:  []Record{text("Normal color", SexUnspecified)},
		},
		{
			name:  "parenthetical after main",
			input: "70-100 mg/dL (3.9-5.6 mmol/L)",
			want: []Record{
				rng(70, 100, "mg/dL", SexUnspecified),
				rng(3.9, 5.6, "mmol/L", SexUnspecified),
			},
		},
		{
			name:  "parenthetical only",
			input: "(3.9-5.6 mmol/L)",
			want:  []Record{rng(3.9, 5.6, "mmol/L", SexUnspecified)},
		},
		{
			name:  "parenthetical inherits section sex",
			input: "Females: <10 ng/mL; Males: 5-20 ng/mL (fasting)",
			want: []Record{
				below(10, "ng/mL", SexFemale),
				rng(5, 20, "ng/mL", SexMale),
				text("fasting", SexMale),
			},
		},
		{
			name:  "parenthetical with its own sections",
			input: "Varies (Males: 10-20 U; Females: 5-15 U)",
			want: []Record{
				text("Varies", SexUnspecified),
				rng(10, 20, "U", SexMale),
				rng(5, 15, "U", SexFemale),
			},
		},
		{
			name:  "several parentheticals",
			input: "4-10 x10^9/L (adult) (4,000-10,000/uL)",
			want: []Record{
				rng(4, 10, "x10^9/L", SexUnspecified),
				text("adult", SexUnspecified),
				rng(4000, 10000, "/uL", SexUnspecified),
			},
		},
		{
			name:  "text after parenthetical is kept in main",
			input: "2-8 (trough) ug/mL",
			want: []Record{
				rng(2, 8, "ug/mL", SexUnspecified),
				text("trough", SexUnspecified),
			},
		},
		{
			name:  "nested parentheticals",
			input: "1-5 U (0.02-0.08 ukat/L (SI))",
			want: []Record{
				rng(1, 5, "U", SexUnspecified),
				rng(0.02, 0.08, "ukat/L", SexUnspecified),
				text("SI", SexUnspecified),
			},
		},
		{
			name:  "unclosed parenthesis is literal",
			input: "10-20 (approx",
			want:  []Record{rng(10, 20, "(approx", SexUnspecified)},
		},
		{
			name:  "stray closing parenthesis is literal",
			input: "Positive) result",
			want:  []Record{text("Positive) result", SexUnspecified)},
		},
		{
			name:  "empty sections and parentheses contribute nothing",
			input: ";; ()",
			want:  []Record{},
		},
		{
			name:  "greater or equal glyph",
			input: "≥50 mL/min",
			want:  []Record{above(50, "mL/min", SexUnspecified)},
		},
		{
			name:  "ratio is not a bound",
			input: "5-10:1",
			want:  []Record{text("5-10:1", SexUnspecified)},
		},
		{
			name:  "micro sign folded in unit",
			input: "0.5-2.0 µg/dL",
			want:  []Record{rng(0.5, 2.0, "ug/dL", SexUnspecified)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assertRecords(t, tt.input, Parse(tt.input), tt.want)
		})
	}
}

func TestParseInequalityGlyphsMatchASCII(t *testing.T) {
	t.Parallel()

	pairs := [][2]string{
		{"≥50 U", ">=50 U"},
		{"≤ 7.5 %", "<= 7.5 %"},
		{"Males: ≥10; Females: ≤8", "Males: >=10; Females: <=8"},
	}

	for _, p := range pairs {
		got := Parse(p[0])
		want := Parse(p[1])
		if !reflect.DeepEqual(got, want) {
			t.Fatalf("Parse(%q) = %v, Parse(%q) = %v", p[0], got, p[1], want)
		}
	}
}

func TestParseWithSexOverridesLabels(t *testing.T) {
	t.Parallel()

	input := "Females: <10 ng/mL; 5-20 ng/mL"

	got, err := ParseWithSex(input, SexMale)
	if err != nil {
		t.Fatalf("ParseWithSex failed: %v", err)
	}

	assertRecords(t, input, got, []Record{
		text("Females: <10 ng/mL", SexMale),
		rng(5, 20, "ng/mL", SexMale),
	})
}

func TestParseWithSexUnspecifiedMatchesParse(t *testing.T) {
	t.Parallel()

	input := "Females: <10 ng/mL; Males: 5-20 ng/mL"

	got, err := ParseWithSex(input, SexUnspecified)
	if err != nil {
		t.Fatalf("ParseWithSex failed: %v", err)
	}

	if want := Parse(input); !reflect.DeepEqual(got, want) {
		t.Fatalf("ParseWithSex = %v, want %v", got, want)
	}
}

func TestParseWithSexRejectsUnknownSex(t *testing.T) {
	t.Parallel()

	got, err := ParseWithSex("5-10", Sex("other"))
	if !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument, got %v", err)
	}

	if got != nil {
		t.Fatalf("expected no records on contract violation, got %v", got)
	}
}

func TestParseDeeplyNestedParentheticals(t *testing.T) {
	t.Parallel()

	const depth = 2000

	input := strings.Repeat("(", depth) + "1,000-2,000 \u00b5g" + strings.Repeat(")", depth)

	assertRecords(t, input, Parse(input), []Record{rng(1000, 2000, "ug", SexUnspecified)})
}

func TestParseNestedKeepsSectionSex(t *testing.T) {
	t.Parallel()

	input := "Males: 5-20 ng/mL ((0.5-2 nmol/L) Female: 1-3)"

	assertRecords(t, input, Parse(input), []Record{
		rng(5, 20, "ng/mL", SexMale),
		text("Female: 1-3", SexMale),
		rng(0.5, 2, "nmol/L", SexMale),
	})
}

func TestParseSex(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  Sex
	}{
		{"", SexUnspecified},
		{"   ", SexUnspecified},
		{"male", SexMale},
		{"Males", SexMale},
		{" M ", SexMale},
		{"m", SexMale},
		{"female", SexFemale},
		{"FEMALES", SexFemale},
		{"f", SexFemale},
		{"\tFemale\n", SexFemale},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()

			got, err := ParseSex(tt.input)
			if err != nil {
				t.Fatalf("ParseSex(%q) failed: %v", tt.input, err)
			}
			if got != tt.want {
				t.Fatalf("ParseSex(%q) = %q, want %q", tt.input, got, tt.want)
			}
			if !got.Valid() {
				t.Fatalf("ParseSex(%q) returned invalid sex %q", tt.input, got)
			}
		})
	}

	for _, bad := range []string{"x", "man", "woman", "unisex", "male:"} {
		if _, err := ParseSex(bad); !errors.Is(err, ErrInvalidArgument) {
			t.Fatalf("ParseSex(%q) = %v, want ErrInvalidArgument", bad, err)
		}
	}
}

func TestParseConcurrent(t *testing.T) {
	t.Parallel()

	input := "Females: <10 ng/mL; Males: 5-20 ng/mL (0.5-2 nmol/L)"
	want := Parse(input)

	var wg sync.WaitGroup
	errs := make(chan string, 32)

	for range 32 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if got := Parse(input); !reflect.DeepEqual(got, want) {
				errs <- "concurrent Parse result differs"
			}
		}()
	}

	wg.Wait()
	close(errs)

	for msg := range errs {
		t.Fatal(msg)
	}
}
