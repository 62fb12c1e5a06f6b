package score

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// s1 = {a:1, b:2, c:5, d:3}, s2 = {a:-2, b:3, c:4}
func fixtures(t *testing.T) (*Scorer[string], *Scorer[string]) {
	t.Helper()
	s1 := mustPairs(t, []string{"a", "b", "c"}, []int{1, 2, 5})
	s1.Set("d", Int(3))
	s2 := mustPairs(t, []string{"a", "b", "c"}, []int{-2, 3, 4})
	return s1, s2
}

func TestAdd_CarryDrop(t *testing.T) {
	s1, s2 := fixtures(t)
	s2.Set("e", Int(100))

	got := s1.Add(s2)
	assert.Equal(t, items("a", -1, "b", 5, "c", 9, "d", 3), got.Items())
	assert.False(t, got.Has("e"))

	// operands are untouched
	assert.Equal(t, items("a", 1, "b", 2, "c", 5, "d", 3), s1.Items())
	assert.Equal(t, 4, s2.Len())
}

func TestAdd_DisjointIsLeftUnchanged(t *testing.T) {
	a := mustPairs(t, []string{"x", "y"}, []int{1, 2})
	b := mustPairs(t, []string{"z"}, []int{3})
	got := a.Add(b)
	assert.True(t, got.Equal(a))
	assert.False(t, got.Has("z"))
}

func TestBinary_CarryAppliesToEveryOperator(t *testing.T) {
	s1, s2 := fixtures(t)
	tests := []struct {
		name string
		got  *Scorer[string]
		want []Item[string]
	}{
		{"sub", s1.Sub(s2), items("a", 3, "b", -1, "c", 1, "d", 3)},
		{"mul", s1.Mul(s2), items("a", -2, "b", 6, "c", 20, "d", 3)},
		{"div", s1.Div(s2), items("a", -0.5, "b", 2.0/3.0, "c", 1.25, "d", 3)},
		{"pow", s1.Pow(s2), items("a", 1.0, "b", 8, "c", 625, "d", 3)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.got.Items())
		})
	}
}

func TestFloorDivMod(t *testing.T) {
	s1, s2 := fixtures(t)
	got, err := s1.FloorDiv(s2)
	require.NoError(t, err)
	assert.Equal(t, items("a", -1, "b", 0, "c", 1, "d", 3), got.Items())

	got, err = s1.Mod(s2)
	require.NoError(t, err)
	assert.Equal(t, items("a", -1, "b", 2, "c", 1, "d", 3), got.Items())

	zero := mustPairs(t, []string{"b"}, []int{0})
	_, err = s1.FloorDiv(zero)
	assert.ErrorIs(t, err, ErrDivisionByZero)
	_, err = s1.Mod(zero)
	assert.ErrorIs(t, err, ErrDivisionByZero)

	// a zero divisor on a key s1 lacks is dropped before it is used
	_, err = s1.Mod(mustPairs(t, []string{"zz"}, []int{0}))
	assert.NoError(t, err)
}

func TestSubSelfIsZero(t *testing.T) {
	s1, _ := fixtures(t)
	got := s1.Sub(s1)
	assert.Equal(t, s1.Len(), got.Len())
	for _, v := range got.All() {
		assert.Equal(t, Int(0), v)
	}
}

func TestScalar(t *testing.T) {
	s1, _ := fixtures(t)

	assert.True(t, s1.AddScalar(Int(0)).Equal(s1))
	assert.Equal(t, items("a", 0.25, "b", 0.5, "c", 1.25, "d", 0.75), s1.DivScalar(Int(4)).Items())
	assert.Equal(t, items("a", 3, "b", 4, "c", 7, "d", 5), s1.AddScalar(Int(2)).Items())
	assert.Equal(t, items("a", -1, "b", 0, "c", 3, "d", 1), s1.SubScalar(Int(2)).Items())
	assert.Equal(t, items("a", 1.5, "b", 3.0, "c", 7.5, "d", 4.5), s1.MulScalar(Float(1.5)).Items())
	assert.Equal(t, items("a", 1, "b", 4, "c", 25, "d", 9), s1.PowScalar(Int(2)).Items())

	got, err := s1.FloorDivScalar(Int(2))
	require.NoError(t, err)
	assert.Equal(t, items("a", 0, "b", 1, "c", 2, "d", 1), got.Items())

	got, err = s1.ModScalar(Int(2))
	require.NoError(t, err)
	assert.Equal(t, items("a", 1, "b", 0, "c", 1, "d", 1), got.Items())

	_, err = s1.ModScalar(Int(0))
	assert.ErrorIs(t, err, ErrDivisionByZero)

	inf := s1.DivScalar(Int(0))
	for _, v := range inf.All() {
		assert.True(t, math.IsInf(v.Float64(), 1))
	}
}

func TestApply(t *testing.T) {
	s1, s2 := fixtures(t)
	for _, op := range []Op{OpAdd, OpSub, OpMul, OpDiv, OpPow} {
		got, err := s1.Apply(op, s2)
		require.NoError(t, err)
		assert.Equal(t, 4, got.Len(), op.String())
	}

	got, err := s1.Apply(OpAdd, nil)
	require.NoError(t, err)
	assert.True(t, got.Equal(s1))

	_, err = s1.Apply(Op(99), s2)
	assert.Error(t, err)

	got, err = s1.ApplyScalar(OpMin, Int(2))
	require.NoError(t, err)
	assert.True(t, got.Equal(s1.Threshold(Int(2))))

	got, err = s1.ApplyScalar(OpMax, Int(2))
	require.NoError(t, err)
	assert.True(t, got.Equal(s1.MaxScalar(Int(2))))
}

func TestUnary(t *testing.T) {
	s1, s2 := fixtures(t)

	assert.Equal(t, items("a", 2, "b", -3, "c", -4), s2.Negate().Items())
	assert.Equal(t, items("a", 2, "b", 3, "c", 4), s2.Abs().Items())

	pos := s2.FilterPositive()
	assert.Equal(t, items("b", 3, "c", 4), pos.Items())

	// s1 + (+s2) is not s1 + s2
	assert.Equal(t, items("a", 1, "b", 5, "c", 9, "d", 3), s1.Add(pos).Items())

	zero := mustPairs(t, []string{"z", "p"}, []int{0, 1})
	assert.Equal(t, []string{"p"}, zero.FilterPositive().Keys())
}

func TestRound(t *testing.T) {
	s := mustPairs(t, []string{"a", "b", "c"}, []float64{1.234, 2.5, -0.125})
	assert.Equal(t, items("a", 1.23, "b", 2.5, "c", -0.12), s.Round(2).Items())
	assert.Equal(t, items("a", 1.0, "b", 2.0, "c", 0.0), s.Round(0).Items())
}

func TestLogical(t *testing.T) {
	s1, s2 := fixtures(t)

	assert.Equal(t, items("a", -2, "b", 2, "c", 4), s1.Min(s2).Items())
	assert.Equal(t, items("a", 1, "b", 3, "c", 5), s1.Max(s2).Items())

	assert.Equal(t, items("b", 2, "c", 5, "d", 3), s1.Threshold(Int(2)).Items())
	assert.Equal(t, items("a", 2, "b", 2, "c", 5, "d", 3), s1.MaxScalar(Int(2)).Items())

	got, err := s1.Apply(OpMax, s2)
	require.NoError(t, err)
	assert.True(t, got.Equal(s1.Max(s2)))
}

func TestLogical_KeySetIsIntersection(t *testing.T) {
	a := mustPairs(t, []string{"w", "x", "y"}, []int{1, 2, 3})
	b := mustPairs(t, []string{"y", "z", "w"}, []int{0, 0, 5})

	assert.Equal(t, []string{"w", "y"}, a.Min(b).Keys())
	assert.Equal(t, []string{"w", "y"}, a.Max(b).Keys())
	assert.Equal(t, 0, a.Min(nil).Len())
}

func TestOverflow_KeepsSignForFilterAndRanking(t *testing.T) {
	s := FromItems(
		Item[string]{Key: "big", Score: Int(math.MaxInt64)},
		Item[string]{Key: "one", Score: Int(1)},
	)
	bumped := s.AddScalar(Int(1))
	assert.Equal(t, 2, bumped.FilterPositive().Len())

	best, err := bumped.Best()
	require.NoError(t, err)
	assert.Equal(t, "big", best.Key)

	low := FromItems(
		Item[string]{Key: "min", Score: Int(math.MinInt64)},
		Item[string]{Key: "zero", Score: Int(0)},
	)
	best, err = low.Abs().Best()
	require.NoError(t, err)
	assert.Equal(t, "min", best.Key)
}
