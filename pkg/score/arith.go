package score

import "math"

// bothInt reports whether int arithmetic applies. Int results that would
// overflow int64 are computed in float64 instead, so they keep their sign
// and order.
func (v Value) bothInt(o Value) bool {
	return v.kind == KindInt && o.kind == KindInt
}

func (v Value) Add(o Value) Value {
	if v.bothInt(o) {
		if r := v.i + o.i; (v.i^r)&(o.i^r) >= 0 {
			return Int(r)
		}
	}
	return Float(v.Float64() + o.Float64())
}

func (v Value) Sub(o Value) Value {
	if v.bothInt(o) {
		if r := v.i - o.i; (v.i^o.i)&(v.i^r) >= 0 {
			return Int(r)
		}
	}
	return Float(v.Float64() - o.Float64())
}

func (v Value) Mul(o Value) Value {
	if v.bothInt(o) {
		if r, ok := mulInt(v.i, o.i); ok {
			return Int(r)
		}
	}
	return Float(v.Float64() * o.Float64())
}

// Div is true division: always a float, IEEE semantics on a zero divisor.
func (v Value) Div(o Value) Value {
	return Float(v.Float64() / o.Float64())
}

// FloorDiv rounds the quotient toward negative infinity. An int divisor of
// zero fails with ErrDivisionByZero; floats follow IEEE.
func (v Value) FloorDiv(o Value) (Value, error) {
	if v.bothInt(o) {
		if o.i == 0 {
			return Value{}, ErrDivisionByZero
		}
		if v.i == math.MinInt64 && o.i == -1 {
			return Float(-float64(v.i)), nil
		}
		return Int(floorDiv(v.i, o.i)), nil
	}
	return Float(math.Floor(v.Float64() / o.Float64())), nil
}

// Mod returns a remainder carrying the sign of the divisor, consistent
// with FloorDiv.
func (v Value) Mod(o Value) (Value, error) {
	if v.bothInt(o) {
		if o.i == 0 {
			return Value{}, ErrDivisionByZero
		}
		r := v.i % o.i
		if r != 0 && (r < 0) != (o.i < 0) {
			r += o.i
		}
		return Int(r), nil
	}
	a, b := v.Float64(), o.Float64()
	r := math.Mod(a, b)
	if r != 0 && (r < 0) != (b < 0) {
		r += b
	}
	return Float(r), nil
}

// Pow keeps ints for a non-negative int exponent, a negative exponent
// yields a float.
func (v Value) Pow(o Value) Value {
	if v.bothInt(o) && o.i >= 0 {
		if r, ok := ipow(v.i, o.i); ok {
			return Int(r)
		}
	}
	return Float(math.Pow(v.Float64(), o.Float64()))
}

func (v Value) Neg() Value {
	if v.kind == KindInt {
		if v.i == math.MinInt64 {
			return Float(-float64(v.i))
		}
		return Int(-v.i)
	}
	return Float(-v.f)
}

func (v Value) Abs() Value {
	if v.kind == KindInt {
		switch {
		case v.i == math.MinInt64:
			return Float(-float64(v.i))
		case v.i < 0:
			return Int(-v.i)
		}
		return v
	}
	return Float(math.Abs(v.f))
}

// Round rounds half to even at the given number of decimal digits. Ints
// are unchanged unless digits is negative, in which case they round to a
// power of ten and stay ints.
func (v Value) Round(digits int) Value {
	if v.kind == KindInt {
		if digits >= 0 {
			return v
		}
		if r, ok := roundInt(v.i, -digits); ok {
			return Int(r)
		}
		p := math.Pow10(-digits)
		return Float(math.RoundToEven(float64(v.i)/p) * p)
	}
	if math.IsNaN(v.f) || math.IsInf(v.f, 0) {
		return v
	}
	if digits < 0 {
		p := math.Pow10(-digits)
		if math.IsInf(p, 0) {
			return Float(math.Copysign(0, v.f))
		}
		return Float(math.RoundToEven(v.f/p) * p)
	}
	p := math.Pow10(digits)
	scaled := v.f * p
	if math.IsInf(scaled, 0) {
		return v
	}
	return Float(math.RoundToEven(scaled) / p)
}

// Min returns the smaller value, v on a tie.
func (v Value) Min(o Value) Value {
	if o.Compare(v) < 0 {
		return o
	}
	return v
}

// Max returns the larger value, v on a tie.
func (v Value) Max(o Value) Value {
	if o.Compare(v) > 0 {
		return o
	}
	return v
}

func floorDiv(a, b int64) int64 {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}

// mulInt reports false when a*b does not fit in an int64.
func mulInt(a, b int64) (int64, bool) {
	if a == 0 || b == 0 {
		return 0, true
	}
	r := a * b
	if (a == -1 && b == math.MinInt64) || (b == -1 && a == math.MinInt64) || r/b != a {
		return 0, false
	}
	return r, true
}

func ipow(base, exp int64) (int64, bool) {
	result := int64(1)
	var ok bool
	for {
		if exp&1 == 1 {
			if result, ok = mulInt(result, base); !ok {
				return 0, false
			}
		}
		exp >>= 1
		if exp == 0 {
			return result, true
		}
		if base, ok = mulInt(base, base); !ok {
			return 0, false
		}
	}
}

// roundInt rounds a to a multiple of 10^places, half to even. It reports
// false when the rounded value does not fit in an int64.
func roundInt(a int64, places int) (int64, bool) {
	if places > 18 {
		// 10^19 and up exceed int64, only the nearest multiple 0 fits
		if places == 19 && (a > 5e18 || a < -5e18) {
			return 0, false
		}
		return 0, true
	}
	p, _ := ipow(10, int64(places))
	q := floorDiv(a, p)
	rem := a % p
	if rem < 0 {
		rem += p
	}
	if rem*2 > p || (rem*2 == p && q%2 != 0) {
		q++
	}
	return mulInt(q, p)
}
