// Package rank implements stable order statistics over sequences and maps:
// ranking permutations, signed top-k selection and the lower median.
package rank

import (
	"cmp"
	"errors"
	"slices"
)

// Order selects the direction of a ranking.
type Order int

const (
	Ascending Order = iota
	Descending
)

var (
	ErrEmptyInput         = errors.New("empty input")
	ErrLengthMismatch     = errors.New("length mismatch")
	ErrInvalidPermutation = errors.New("invalid permutation")
	errNilCompareFunc     = errors.New("compare func required")
)

func (o Order) String() string {
	if o == Descending {
		return "descending"
	}
	return "ascending"
}

// ranker holds a comparison over positions of a sequence. Positions are
// ordered by value first and by original index second, which makes the
// ordering total and every derived view stable.
type ranker struct {
	n     int
	cmp   func(i, j int) int
	order Order
}

func newRanker[S ~[]E, E any](s S, fn func(a, b E) int, o Order) ranker {
	return ranker{
		n:     len(s),
		cmp:   func(i, j int) int { return fn(s[i], s[j]) },
		order: o,
	}
}

// compare reports whether position i ranks before (-1) or after (+1) j.
func (r ranker) compare(i, j int) int {
	c := r.cmp(i, j)
	if r.order == Descending {
		c = -c
	}
	if c != 0 {
		return c
	}
	return cmp.Compare(i, j)
}

func (r ranker) before(i, j int) bool {
	return r.compare(i, j) < 0
}

func (r ranker) sortAll() []int {
	idx := identity(r.n)
	slices.SortFunc(idx, r.compare)
	return idx
}

func identity(n int) []int {
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	return idx
}

// Rank returns the permutation of indices that stably sorts s in the given
// order. The input is not modified.
func Rank[S ~[]E, E cmp.Ordered](s S, o Order) ([]int, error) {
	return RankFunc(s, cmp.Compare[E], o)
}

// RankFunc is Rank with a caller supplied comparison.
func RankFunc[S ~[]E, E any](s S, fn func(a, b E) int, o Order) ([]int, error) {
	if fn == nil {
		return nil, errNilCompareFunc
	}
	if len(s) == 0 {
		return nil, ErrEmptyInput
	}
	return newRanker(s, fn, o).sortAll(), nil
}

// Sorted returns a sorted copy of s.
func Sorted[S ~[]E, E cmp.Ordered](s S, o Order) (S, error) {
	return SortedFunc(s, cmp.Compare[E], o)
}

func SortedFunc[S ~[]E, E any](s S, fn func(a, b E) int, o Order) (S, error) {
	idx, err := RankFunc(s, fn, o)
	if err != nil {
		return nil, err
	}
	return Reorder(s, idx)
}

// Reorder applies a permutation computed by Rank to any collection of the
// same length, so one ranking can be reused across parallel slices.
func Reorder[S ~[]E, E any](s S, perm []int) (S, error) {
	if len(s) != len(perm) {
		return nil, ErrLengthMismatch
	}
	seen := make([]bool, len(s))
	out := make(S, 0, len(s))
	for _, i := range perm {
		if i < 0 || i >= len(s) || seen[i] {
			return nil, ErrInvalidPermutation
		}
		seen[i] = true
		out = append(out, s[i])
	}
	return out, nil
}

// ArgMin returns the index of the first smallest element.
func ArgMin[S ~[]E, E cmp.Ordered](s S) (int, error) {
	return ArgMinFunc(s, cmp.Compare[E])
}

// ArgMax returns the index of the first largest element.
func ArgMax[S ~[]E, E cmp.Ordered](s S) (int, error) {
	return ArgMaxFunc(s, cmp.Compare[E])
}

func ArgMinFunc[S ~[]E, E any](s S, fn func(a, b E) int) (int, error) {
	return argBest(s, fn, Ascending)
}

func ArgMaxFunc[S ~[]E, E any](s S, fn func(a, b E) int) (int, error) {
	return argBest(s, fn, Descending)
}

func argBest[S ~[]E, E any](s S, fn func(a, b E) int, o Order) (int, error) {
	if fn == nil {
		return 0, errNilCompareFunc
	}
	if len(s) == 0 {
		return 0, ErrEmptyInput
	}
	r := newRanker(s, fn, o)
	best := 0
	for i := 1; i < r.n; i++ {
		if r.before(i, best) {
			best = i
		}
	}
	return best, nil
}
