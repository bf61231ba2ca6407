package domain

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// ValueKind identifies the type held by a Value.
type ValueKind int

const (
	// KindAbsent is the zero Value: no value is present.
	KindAbsent ValueKind = iota

	// KindString is a text value.
	KindString

	// KindNumber is a numeric value.
	KindNumber
)

// Value is a scalar field value: a string, a number, or absent.
type Value struct {
	kind ValueKind
	str  string
	num  float64
}

// StringValue returns a string Value.
func StringValue(s string) Value {
	return Value{kind: KindString, str: s}
}

// NumberValue returns a numeric Value.
func NumberValue(n float64) Value {
	return Value{kind: KindNumber, num: n}
}

// Kind returns the kind of value held.
func (v Value) Kind() ValueKind {
	return v.kind
}

// IsAbsent returns true if no value is present.
func (v Value) IsAbsent() bool {
	return v.kind == KindAbsent
}

// String returns the textual form of the value.
// Integral numbers are written without a fraction; absent values are empty.
func (v Value) String() string {
	switch v.kind {
	case KindString:
		return v.str
	case KindNumber:
		if v.num == math.Trunc(v.num) && math.Abs(v.num) < 1e18 {
			return strconv.FormatInt(int64(v.num), 10)
		}
		return strconv.FormatFloat(v.num, 'f', -1, 64)
	default:
		return ""
	}
}

// Trimmed returns String with leading and trailing control characters
// and spaces removed. Every rune up to and including U+0020 is trimmed;
// other Unicode whitespace is kept.
func (v Value) Trimmed() string {
	return strings.TrimFunc(v.String(), func(r rune) bool {
		return r <= ' '
	})
}

// MarshalJSON encodes strings as JSON strings, numbers as JSON numbers
// and absent values as null.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case KindString:
		return json.Marshal(v.str)
	case KindNumber:
		return json.Marshal(v.num)
	default:
		return []byte("null"), nil
	}
}

// UnmarshalJSON decodes a JSON string, number or null.
// Booleans are kept as their string form.
func (v *Value) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	switch x := raw.(type) {
	case nil:
		*v = Value{}
	case string:
		*v = StringValue(x)
	case float64:
		*v = NumberValue(x)
	case bool:
		*v = StringValue(strconv.FormatBool(x))
	default:
		return ErrInvalidInput
	}
	return nil
}

// Fields maps field names to values. Keys are matched exactly.
type Fields map[string]Value

// Get returns the value for key, or an absent Value if there is none.
func (f Fields) Get(key string) Value {
	return f[key]
}

// Has returns true if key is present, even when its value is absent.
func (f Fields) Has(key string) bool {
	_, ok := f[key]
	return ok
}

// Set stores a value under key.
func (f Fields) Set(key string, v Value) {
	f[key] = v
}

// SetString stores a string value under key.
func (f Fields) SetString(key, s string) {
	f[key] = StringValue(s)
}
