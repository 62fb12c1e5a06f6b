package score

import (
	"fmt"
	"strings"
)

// Op is a binary operator usable between two scorers or a scorer and a
// scalar.
type Op int

const (
	OpAdd Op = iota
	OpSub
	OpMul
	OpDiv
	OpFloorDiv
	OpMod
	OpPow
	OpMin
	OpMax
)

var opSymbols = []string{
	OpAdd:      "+",
	OpSub:      "-",
	OpMul:      "*",
	OpDiv:      "/",
	OpFloorDiv: "//",
	OpMod:      "%",
	OpPow:      "**",
	OpMin:      "&",
	OpMax:      "|",
}

var opNames = map[string]Op{
	"add":      OpAdd,
	"sub":      OpSub,
	"mul":      OpMul,
	"div":      OpDiv,
	"floordiv": OpFloorDiv,
	"mod":      OpMod,
	"pow":      OpPow,
	"min":      OpMin,
	"and":      OpMin,
	"max":      OpMax,
	"or":       OpMax,
}

// ParseOp accepts either the operator symbol ("+", "//", "&") or its name
// ("add", "floordiv", "min").
func ParseOp(s string) (Op, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for op, sym := range opSymbols {
		if s == sym {
			return Op(op), nil
		}
	}
	if op, ok := opNames[s]; ok {
		return op, nil
	}
	return 0, fmt.Errorf("unknown operator: %q", s)
}

func (o Op) String() string {
	if o < 0 || int(o) >= len(opSymbols) {
		return fmt.Sprintf("Op(%d)", int(o))
	}
	return opSymbols[o]
}

// Logical reports whether o is one of the min/max operators, which keep
// only the keys both scorers share.
func (o Op) Logical() bool {
	return o == OpMin || o == OpMax
}

func (o Op) apply(a, b Value) (Value, error) {
	switch o {
	case OpAdd:
		return a.Add(b), nil
	case OpSub:
		return a.Sub(b), nil
	case OpMul:
		return a.Mul(b), nil
	case OpDiv:
		return a.Div(b), nil
	case OpFloorDiv:
		return a.FloorDiv(b)
	case OpMod:
		return a.Mod(b)
	case OpPow:
		return a.Pow(b), nil
	case OpMin:
		return a.Min(b), nil
	case OpMax:
		return a.Max(b), nil
	default:
		return Value{}, fmt.Errorf("unknown operator: %s", o)
	}
}
