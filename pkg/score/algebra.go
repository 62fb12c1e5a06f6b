package score

import "fmt"

// Apply combines s with other key by key.
//
// Arithmetic operators follow the carry/drop rule: keys in both scorers
// are combined, keys only in s are carried through unchanged (for every
// operator, * and ** included) and keys only in other are dropped. This
// lets a sparse delta update a scorer without adding keys to it.
//
// OpMin and OpMax instead keep only the keys present in both.
func (s *Scorer[K]) Apply(op Op, other *Scorer[K]) (*Scorer[K], error) {
	if op.Logical() {
		return s.intersect(op, other)
	}
	out := s.Clone()
	for i, k := range out.keys {
		j, ok := other.lookup(k)
		if !ok {
			continue
		}
		v, err := op.apply(out.scores[i], other.scores[j])
		if err != nil {
			return nil, fmt.Errorf("%v %s %v for key %v: %w", out.scores[i], op, other.scores[j], k, err)
		}
		out.scores[i] = v
	}
	return out, nil
}

func (s *Scorer[K]) intersect(op Op, other *Scorer[K]) (*Scorer[K], error) {
	out := New[K]()
	for k, v := range s.All() {
		w, ok := other.Get(k)
		if !ok {
			continue
		}
		r, err := op.apply(v, w)
		if err != nil {
			return nil, err
		}
		out.Set(k, r)
	}
	return out, nil
}

// ApplyScalar combines every score with v. OpMin keeps the scores >= v
// (see Threshold) and OpMax raises scores to at least v (see MaxScalar).
func (s *Scorer[K]) ApplyScalar(op Op, v Value) (*Scorer[K], error) {
	switch op {
	case OpMin:
		return s.Threshold(v), nil
	case OpMax:
		return s.MaxScalar(v), nil
	}
	out := s.Clone()
	for i, cur := range out.scores {
		r, err := op.apply(cur, v)
		if err != nil {
			return nil, fmt.Errorf("%v %s %v for key %v: %w", cur, op, v, out.keys[i], err)
		}
		out.scores[i] = r
	}
	return out, nil
}

func (s *Scorer[K]) carry(other *Scorer[K], fn func(a, b Value) Value) *Scorer[K] {
	out := s.Clone()
	for i, k := range out.keys {
		if j, ok := other.lookup(k); ok {
			out.scores[i] = fn(out.scores[i], other.scores[j])
		}
	}
	return out
}

func (s *Scorer[K]) each(fn func(Value) Value) *Scorer[K] {
	out := s.Clone()
	for i, v := range out.scores {
		out.scores[i] = fn(v)
	}
	return out
}

func (s *Scorer[K]) filter(keep func(Value) bool) *Scorer[K] {
	out := New[K]()
	for k, v := range s.All() {
		if keep(v) {
			out.Set(k, v)
		}
	}
	return out
}

func (s *Scorer[K]) Add(other *Scorer[K]) *Scorer[K] { return s.carry(other, Value.Add) }
func (s *Scorer[K]) Sub(other *Scorer[K]) *Scorer[K] { return s.carry(other, Value.Sub) }
func (s *Scorer[K]) Mul(other *Scorer[K]) *Scorer[K] { return s.carry(other, Value.Mul) }
func (s *Scorer[K]) Div(other *Scorer[K]) *Scorer[K] { return s.carry(other, Value.Div) }
func (s *Scorer[K]) Pow(other *Scorer[K]) *Scorer[K] { return s.carry(other, Value.Pow) }

// FloorDiv fails with ErrDivisionByZero when a shared key holds an int zero
// in other.
func (s *Scorer[K]) FloorDiv(other *Scorer[K]) (*Scorer[K], error) {
	return s.Apply(OpFloorDiv, other)
}

func (s *Scorer[K]) Mod(other *Scorer[K]) (*Scorer[K], error) {
	return s.Apply(OpMod, other)
}

func (s *Scorer[K]) AddScalar(v Value) *Scorer[K] { return s.each(func(a Value) Value { return a.Add(v) }) }
func (s *Scorer[K]) SubScalar(v Value) *Scorer[K] { return s.each(func(a Value) Value { return a.Sub(v) }) }
func (s *Scorer[K]) MulScalar(v Value) *Scorer[K] { return s.each(func(a Value) Value { return a.Mul(v) }) }
func (s *Scorer[K]) DivScalar(v Value) *Scorer[K] { return s.each(func(a Value) Value { return a.Div(v) }) }
func (s *Scorer[K]) PowScalar(v Value) *Scorer[K] { return s.each(func(a Value) Value { return a.Pow(v) }) }

func (s *Scorer[K]) FloorDivScalar(v Value) (*Scorer[K], error) {
	return s.ApplyScalar(OpFloorDiv, v)
}

func (s *Scorer[K]) ModScalar(v Value) (*Scorer[K], error) {
	return s.ApplyScalar(OpMod, v)
}

// Negate flips the sign of every score.
func (s *Scorer[K]) Negate() *Scorer[K] { return s.each(Value.Neg) }

func (s *Scorer[K]) Abs() *Scorer[K] { return s.each(Value.Abs) }

// Round rounds every score half to even at digits decimal places.
func (s *Scorer[K]) Round(digits int) *Scorer[K] {
	return s.each(func(v Value) Value { return v.Round(digits) })
}

// FilterPositive keeps only the keys with a strictly positive score. It is
// the scorer's unary plus and is not an identity.
func (s *Scorer[K]) FilterPositive() *Scorer[K] {
	return s.filter(func(v Value) bool { return v.Sign() > 0 })
}

// Min keeps the keys present in both scorers with the smaller score.
func (s *Scorer[K]) Min(other *Scorer[K]) *Scorer[K] {
	out, _ := s.intersect(OpMin, other)
	return out
}

// Max keeps the keys present in both scorers with the larger score.
func (s *Scorer[K]) Max(other *Scorer[K]) *Scorer[K] {
	out, _ := s.intersect(OpMax, other)
	return out
}

// Threshold keeps the items scoring at least v. Kept scores are unchanged.
func (s *Scorer[K]) Threshold(v Value) *Scorer[K] {
	return s.filter(func(a Value) bool { return a.Compare(v) >= 0 })
}

// MaxScalar raises every score below v to v. No key is dropped.
func (s *Scorer[K]) MaxScalar(v Value) *Scorer[K] {
	return s.each(func(a Value) Value { return a.Max(v) })
}
