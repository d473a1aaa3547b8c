package catalog

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// Kind is the inferred type of a CSV cell.
type Kind int

const (
	KindString Kind = iota
	KindNumber
	KindBool
)

// Value is a type-inferred CSV cell.
type Value struct {
	Kind Kind
	Str  string
	Num  float64
	Bool bool
}

// Row maps header names to the cells present in one CSV record.
// Empty and missing cells have no entry.
type Row map[string]Value

var numberPattern = regexp.MustCompile(`^\s*-?(\d+\.?|\.\d+|\d+\.\d+)([eE][-+]?\d+)?\s*$`)

// Numbers beyond this magnitude lose integer precision and stay strings.
const maxExactFloat = 1 << 53

// Infer converts a raw cell to a Value. It reports false for empty cells.
func Infer(raw string) (Value, bool) {
	switch raw {
	case "":
		return Value{}, false
	case "true", "TRUE":
		return Value{Kind: KindBool, Bool: true}, true
	case "false", "FALSE":
		return Value{Kind: KindBool, Bool: false}, true
	}

	if numberPattern.MatchString(raw) {
		if f, err := strconv.ParseFloat(strings.TrimSpace(raw), 64); err == nil && math.Abs(f) <= maxExactFloat {
			return Value{Kind: KindNumber, Num: f}, true
		}
	}
	return Value{Kind: KindString, Str: raw}, true
}

// String renders the value as text. Numbers print without a trailing
// fraction, so a numeric slug like 24921 comes back as "24921".
func (v Value) String() string {
	switch v.Kind {
	case KindNumber:
		return strconv.FormatFloat(v.Num, 'f', -1, 64)
	case KindBool:
		return strconv.FormatBool(v.Bool)
	default:
		return v.Str
	}
}

// Truthy reports whether the value counts as set for flag columns.
func (v Value) Truthy() bool {
	switch v.Kind {
	case KindNumber:
		return v.Num != 0 && !math.IsNaN(v.Num)
	case KindBool:
		return v.Bool
	default:
		return v.Str != ""
	}
}

// String returns the text of the named cell, or "" when absent.
func (r Row) String(field string) string {
	v, ok := r[field]
	if !ok {
		return ""
	}
	return v.String()
}

// Flag returns the truthiness of the named cell; absent cells are false.
func (r Row) Flag(field string) bool {
	v, ok := r[field]
	return ok && v.Truthy()
}
