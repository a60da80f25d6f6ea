package valueobjects

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// ScalarKind identifies the type held by a Scalar
type ScalarKind string

const (
	KindString ScalarKind = "string"
	KindNumber ScalarKind = "number"
	KindBool   ScalarKind = "bool"
)

// Scalar is an attribute value of a fractal node: a string, a number or a boolean.
// The zero value is the empty string.
type Scalar struct {
	kind ScalarKind
	str  string
	num  float64
	flag bool
}

// StringValue creates a string scalar
func StringValue(s string) Scalar {
	return Scalar{kind: KindString, str: s}
}

// NumberValue creates a numeric scalar
func NumberValue(f float64) Scalar {
	return Scalar{kind: KindNumber, num: f}
}

// IntValue creates a numeric scalar from an integer
func IntValue(i int) Scalar {
	return NumberValue(float64(i))
}

// BoolValue creates a boolean scalar
func BoolValue(b bool) Scalar {
	return Scalar{kind: KindBool, flag: b}
}

// Kind returns the scalar's type
func (s Scalar) Kind() ScalarKind {
	if s.kind == "" {
		return KindString
	}
	return s.kind
}

// Str returns the string value; empty for non-string scalars
func (s Scalar) Str() string {
	return s.str
}

// Number returns the numeric value; zero for non-numeric scalars
func (s Scalar) Number() float64 {
	return s.num
}

// Bool returns the boolean value; false for non-boolean scalars
func (s Scalar) Bool() bool {
	return s.flag
}

// IsFinite is false only for NaN or infinite numbers
func (s Scalar) IsFinite() bool {
	return s.Kind() != KindNumber || isFinite(s.num)
}

// Value returns the scalar as a plain Go value (string, float64 or bool)
func (s Scalar) Value() interface{} {
	switch s.Kind() {
	case KindNumber:
		return s.num
	case KindBool:
		return s.flag
	default:
		return s.str
	}
}

func (s Scalar) String() string {
	switch s.Kind() {
	case KindNumber:
		return strconv.FormatFloat(s.num, 'g', -1, 64)
	case KindBool:
		return strconv.FormatBool(s.flag)
	default:
		return s.str
	}
}

// ScalarFrom converts a plain Go value into a Scalar.
// Accepted types are string, bool, json.Number and the built-in numeric types.
func ScalarFrom(v interface{}) (Scalar, error) {
	switch val := v.(type) {
	case string:
		return StringValue(val), nil
	case bool:
		return BoolValue(val), nil
	case float64:
		return NumberValue(val), nil
	case float32:
		return NumberValue(float64(val)), nil
	case int:
		return IntValue(val), nil
	case int32:
		return NumberValue(float64(val)), nil
	case int64:
		return NumberValue(float64(val)), nil
	case uint:
		return NumberValue(float64(val)), nil
	case uint32:
		return NumberValue(float64(val)), nil
	case uint64:
		return NumberValue(float64(val)), nil
	case json.Number:
		f, err := val.Float64()
		if err != nil {
			return Scalar{}, fmt.Errorf("number %s is out of range", val.String())
		}
		return NumberValue(f), nil
	default:
		return Scalar{}, fmt.Errorf("unsupported scalar type %T", v)
	}
}
