package rank

import "cmp"

// Median returns the lower median of s: the element at position (n-1)/2
// of the stable ascending order. Elements are never averaged.
func Median[S ~[]E, E cmp.Ordered](s S) (E, error) {
	return MedianFunc(s, cmp.Compare[E])
}

func MedianFunc[S ~[]E, E any](s S, fn func(a, b E) int) (E, error) {
	i, err := ArgMedianFunc(s, fn)
	if err != nil {
		var zero E
		return zero, err
	}
	return s[i], nil
}

// ArgMedianFunc returns the index in s of the lower median.
func ArgMedianFunc[S ~[]E, E any](s S, fn func(a, b E) int) (int, error) {
	if fn == nil {
		return 0, errNilCompareFunc
	}
	if len(s) == 0 {
		return 0, ErrEmptyInput
	}
	r := newRanker(s, fn, Ascending)
	return r.nth((r.n - 1) / 2), nil
}

// nth returns the position that lands at rank n in the total order.
// Quickselect with a median-of-three pivot; ties never collide because
// positions are unique.
func (r ranker) nth(n int) int {
	idx := identity(r.n)
	lo, hi := 0, len(idx)-1
	for lo < hi {
		p := r.partition(idx, lo, hi)
		switch {
		case p == n:
			return idx[p]
		case p < n:
			lo = p + 1
		default:
			hi = p - 1
		}
	}
	return idx[n]
}

func (r ranker) partition(idx []int, lo, hi int) int {
	mid := lo + (hi-lo)/2
	if r.before(idx[mid], idx[lo]) {
		idx[mid], idx[lo] = idx[lo], idx[mid]
	}
	if r.before(idx[hi], idx[lo]) {
		idx[hi], idx[lo] = idx[lo], idx[hi]
	}
	if r.before(idx[mid], idx[hi]) {
		idx[mid], idx[hi] = idx[hi], idx[mid]
	}
	// idx[hi] now holds the median of the three
	pivot := idx[hi]
	store := lo
	for i := lo; i < hi; i++ {
		if r.before(idx[i], pivot) {
			idx[store], idx[i] = idx[i], idx[store]
			store++
		}
	}
	idx[store], idx[hi] = idx[hi], idx[store]
	return store
}
