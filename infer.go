package appsettings

import (
	"math"
	"strconv"
	"strings"

	json "github.com/goccy/go-json"
)

// ValueKind is the JSON type chosen for a legacy value.
type ValueKind int

const (
	KindString ValueKind = iota
	KindBool
	KindInt
	KindFloat
)

func (k ValueKind) String() string {
	switch k {
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	default:
		return "string"
	}
}

// Value is a legacy string value with its inferred JSON type.
type Value struct {
	Kind  ValueKind
	Raw   string
	Bool  bool
	Int   int64
	Float float64
}

// Infer picks the JSON type for raw by trying, in order, boolean, integer,
// floating point, and falling back to string. Surrounding whitespace is
// ignored for the typed parses; string values keep raw verbatim.
//
// Only "true" and "false" (any case) are booleans, so "1" is an integer.
// Integers are base 10 and may have leading zeros or a sign. Floats must be
// finite and decimal; "NaN", "Inf" and hex floats stay strings.
func Infer(raw string) Value {
	s := strings.TrimSpace(raw)
	switch {
	case strings.EqualFold(s, "true"):
		return Value{Kind: KindBool, Raw: raw, Bool: true}
	case strings.EqualFold(s, "false"):
		return Value{Kind: KindBool, Raw: raw}
	}
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return Value{Kind: KindInt, Raw: raw, Int: i}
	}
	if isDecimalFloat(s) {
		if f, err := strconv.ParseFloat(s, 64); err == nil && !math.IsInf(f, 0) && !math.IsNaN(f) {
			return Value{Kind: KindFloat, Raw: raw, Float: f}
		}
	}
	return Value{Kind: KindString, Raw: raw}
}

// isDecimalFloat rejects the non-decimal spellings strconv.ParseFloat
// accepts (hex mantissas, inf, nan, underscores).
func isDecimalFloat(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9', r == '.', r == 'e', r == 'E', r == '+', r == '-':
		default:
			return false
		}
	}
	return true
}

// Any returns the value as a Go value suitable for JSON encoding.
func (v Value) Any() any {
	switch v.Kind {
	case KindBool:
		return v.Bool
	case KindInt:
		return v.Int
	case KindFloat:
		return v.Float
	default:
		return v.Raw
	}
}

// JSON returns the compact JSON encoding of v.
func (v Value) JSON() ([]byte, error) {
	switch v.Kind {
	case KindBool:
		return []byte(strconv.FormatBool(v.Bool)), nil
	case KindInt:
		return []byte(strconv.FormatInt(v.Int, 10)), nil
	case KindFloat:
		return json.Marshal(v.Float)
	default:
		return json.MarshalNoEscape(v.Raw)
	}
}
