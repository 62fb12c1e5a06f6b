package score

import (
	"cmp"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"golang.org/x/exp/constraints"
	"gopkg.in/yaml.v3"
)

var (
	ErrTypeMismatch   = errors.New("type mismatch")
	ErrDivisionByZero = errors.New("integer division by zero")
)

// Number is the set of Go types a score can be built from.
type Number interface {
	constraints.Integer | constraints.Float
}

// Kind is the numeric representation of a Value.
type Kind uint8

const (
	KindInt Kind = iota
	KindFloat
)

func (k Kind) String() string {
	if k == KindFloat {
		return "float"
	}
	return "int"
}

// Value is a score: either an int64 or a float64. The zero Value is Int(0).
//
// Two ints combine to an int for every operation except Div, which always
// yields a float. Any float operand makes the result a float.
type Value struct {
	kind Kind
	i    int64
	f    float64
}

func Int(v int64) Value {
	return Value{kind: KindInt, i: v}
}

func Float(v float64) Value {
	return Value{kind: KindFloat, f: v}
}

// Of converts any Go integer or float into a Value.
func Of[N Number](n N) Value {
	// only float types keep a fraction
	var half N = 1
	half /= 2
	if half != 0 {
		return Float(float64(n))
	}
	// unsigned values past MaxInt64 do not fit an int
	var top N
	top--
	if top > 0 {
		if u := uint64(n); u > math.MaxInt64 {
			return Float(float64(u))
		}
	}
	return Int(int64(n))
}

// ValueOf converts a dynamically typed number into a Value. Anything that
// is not a Go numeric type fails with ErrTypeMismatch.
func ValueOf(v any) (Value, error) {
	switch n := v.(type) {
	case Value:
		return n, nil
	case int:
		return Of(n), nil
	case int8:
		return Of(n), nil
	case int16:
		return Of(n), nil
	case int32:
		return Of(n), nil
	case int64:
		return Of(n), nil
	case uint:
		return Of(n), nil
	case uint8:
		return Of(n), nil
	case uint16:
		return Of(n), nil
	case uint32:
		return Of(n), nil
	case uint64:
		return Of(n), nil
	case float32:
		return Of(n), nil
	case float64:
		return Of(n), nil
	case json.Number:
		return parseNumber(string(n))
	default:
		return Value{}, fmt.Errorf("%w: %T is not a number", ErrTypeMismatch, v)
	}
}

// Parse reads a Value from its text form. Integral literals become ints.
func Parse(s string) (Value, error) {
	return parseNumber(strings.TrimSpace(s))
}

func parseNumber(s string) (Value, error) {
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return Int(i), nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return Value{}, fmt.Errorf("%w: %q is not a number", ErrTypeMismatch, s)
	}
	return Float(f), nil
}

func (v Value) Kind() Kind {
	return v.kind
}

func (v Value) IsInt() bool {
	return v.kind == KindInt
}

// Int64 returns the value as an int64, truncating floats.
func (v Value) Int64() int64 {
	if v.kind == KindFloat {
		return int64(v.f)
	}
	return v.i
}

func (v Value) Float64() float64 {
	if v.kind == KindFloat {
		return v.f
	}
	return float64(v.i)
}

// Compare orders two values numerically regardless of kind. NaN sorts
// before every other value. Mixed kinds compare exactly, without rounding
// the int to a float64.
func (v Value) Compare(o Value) int {
	switch {
	case v.kind == KindInt && o.kind == KindInt:
		return cmp.Compare(v.i, o.i)
	case v.kind == KindInt:
		return compareIntFloat(v.i, o.f)
	case o.kind == KindInt:
		return -compareIntFloat(o.i, v.f)
	}
	return cmp.Compare(v.f, o.f)
}

func compareIntFloat(i int64, f float64) int {
	switch {
	case math.IsNaN(f):
		return 1
	case f >= 1<<63:
		return -1
	case f < -(1 << 63):
		return 1
	}
	t := math.Trunc(f)
	if c := cmp.Compare(i, int64(t)); c != 0 {
		return c
	}
	// same integer part, the fraction decides
	return cmp.Compare(t, f)
}

// Equal reports numeric equality, so Int(2) equals Float(2).
func (v Value) Equal(o Value) bool {
	return v.Compare(o) == 0
}

func (v Value) Sign() int {
	return v.Compare(Value{})
}

// String renders ints plainly and floats always with a fraction or exponent
// so the kind survives a round trip.
func (v Value) String() string {
	if v.kind == KindInt {
		return strconv.FormatInt(v.i, 10)
	}
	switch {
	case math.IsNaN(v.f):
		return "nan"
	case math.IsInf(v.f, 1):
		return "inf"
	case math.IsInf(v.f, -1):
		return "-inf"
	}
	abs := math.Abs(v.f)
	if abs != 0 && (abs >= 1e16 || abs < 1e-4) {
		return strconv.FormatFloat(v.f, 'e', -1, 64)
	}
	s := strconv.FormatFloat(v.f, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

// MarshalJSON writes non-finite floats as strings, JSON has no literal for them.
func (v Value) MarshalJSON() ([]byte, error) {
	if v.kind == KindFloat && (math.IsNaN(v.f) || math.IsInf(v.f, 0)) {
		return json.Marshal(v.String())
	}
	return []byte(v.String()), nil
}

func (v *Value) UnmarshalJSON(b []byte) error {
	s := string(b)
	if unq, err := strconv.Unquote(s); err == nil {
		s = unq
	}
	parsed, err := parseNumber(s)
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

// MarshalYAML tags floats explicitly so integral floats read back as floats.
func (v Value) MarshalYAML() (any, error) {
	if v.kind == KindInt {
		return v.i, nil
	}
	s := v.String()
	switch {
	case math.IsNaN(v.f):
		s = ".nan"
	case math.IsInf(v.f, 1):
		s = ".inf"
	case math.IsInf(v.f, -1):
		s = "-.inf"
	}
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!float", Value: s}, nil
}

func (v *Value) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("%w: line %d: expected a number", ErrTypeMismatch, node.Line)
	}
	switch node.ShortTag() {
	case "!!int":
		var i int64
		if err := node.Decode(&i); err != nil {
			return fmt.Errorf("%w: line %d: %v", ErrTypeMismatch, node.Line, err)
		}
		*v = Int(i)
	case "!!float":
		var f float64
		if err := node.Decode(&f); err != nil {
			return fmt.Errorf("%w: line %d: %v", ErrTypeMismatch, node.Line, err)
		}
		*v = Float(f)
	default:
		return fmt.Errorf("%w: line %d: %q is not a number", ErrTypeMismatch, node.Line, node.Value)
	}
	return nil
}
