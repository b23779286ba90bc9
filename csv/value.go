package csv

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// Kind is the inferred type of a cell.
type Kind int

const (
	// Null is an empty cell or a column the record does not have.
	Null Kind = iota
	// String is any cell that is not a number or a boolean.
	String
	// Number is a numeric-looking cell.
	Number
	// Bool is a true/false cell.
	Bool
)

// maxSafeInteger bounds the numbers that are inferred; larger values stay strings.
const maxSafeInteger = 1<<53 - 1

var numberPattern = regexp.MustCompile(`^\s*-?(\d+\.?|\.\d+|\d+\.\d+)([eE][-+]?\d+)?\s*$`)

// Value is a dynamically typed cell.
type Value struct {
	kind Kind
	str  string
	num  float64
	b    bool
}

// StringValue returns a string cell.
func StringValue(s string) Value { return Value{kind: String, str: s} }

// NumberValue returns a numeric cell.
func NumberValue(n float64) Value { return Value{kind: Number, num: n} }

// BoolValue returns a boolean cell.
func BoolValue(b bool) Value { return Value{kind: Bool, b: b} }

// Infer converts raw cell text into a typed Value.
func Infer(raw string) Value {
	switch raw {
	case "":
		return Value{}
	case "true", "TRUE":
		return BoolValue(true)
	case "false", "FALSE":
		return BoolValue(false)
	}

	if numberPattern.MatchString(raw) {
		n, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err == nil && n >= -maxSafeInteger && n <= maxSafeInteger {
			return NumberValue(n)
		}
	}

	return StringValue(raw)
}

// Kind reports the inferred type.
func (v Value) Kind() Kind { return v.kind }

// Present reports whether the cell holds anything at all.
func (v Value) Present() bool { return v.kind != Null }

// Truthy reports whether the cell is present and not "", 0, NaN or false.
func (v Value) Truthy() bool {
	switch v.kind {
	case String:
		return v.str != ""
	case Number:
		return v.num != 0 && !math.IsNaN(v.num)
	case Bool:
		return v.b
	default:
		return false
	}
}

// Text returns the display form of the cell. Null cells are empty.
func (v Value) Text() string {
	switch v.kind {
	case String:
		return v.str
	case Number:
		return strconv.FormatFloat(v.num, 'f', -1, 64)
	case Bool:
		return strconv.FormatBool(v.b)
	default:
		return ""
	}
}

// IsString reports whether the cell is the string s. Numbers never equal a string.
func (v Value) IsString(s string) bool {
	return v.kind == String && v.str == s
}

// IsNumber reports whether the cell is exactly the number n.
func (v Value) IsNumber(n float64) bool {
	return v.kind == Number && v.num == n
}

// Row is one parsed record keyed by lowercased column name.
type Row map[string]Value

// Get returns the named cell, or a Null value if the row has no such column.
func (r Row) Get(column string) Value {
	return r[column]
}
