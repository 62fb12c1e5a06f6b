package rank

import (
	"cmp"
	"container/heap"
	"math"
	"slices"
)

// Unbounded used as k selects the whole sequence: descending for
// Unbounded, ascending for -Unbounded.
const Unbounded = math.MaxInt

// heapSelectRatio is the n/k ratio above which bounded heap selection
// beats a full sort.
const heapSelectRatio = 4

// Resolve maps a signed k onto a result size and an order for a sequence
// of n elements: k > 0 is the k largest descending, k < 0 the |k|
// smallest ascending and k == 0 everything descending.
func Resolve(k, n int) (int, Order) {
	switch {
	case k == 0:
		return n, Descending
	case k > 0:
		return min(k, n), Descending
	case k <= -n:
		return n, Ascending
	default:
		return -k, Ascending
	}
}

// TopK returns min(|k|, n) elements of s ranked per the sign of k.
func TopK[S ~[]E, E cmp.Ordered](s S, k int) (S, error) {
	return TopKFunc(s, k, cmp.Compare[E])
}

func TopKFunc[S ~[]E, E any](s S, k int, fn func(a, b E) int) (S, error) {
	idx, err := ArgTopKFunc(s, k, fn)
	if err != nil {
		return nil, err
	}
	out := make(S, len(idx))
	for i, j := range idx {
		out[i] = s[j]
	}
	return out, nil
}

// ArgTopK is TopK returning indices into s instead of elements.
func ArgTopK[S ~[]E, E cmp.Ordered](s S, k int) ([]int, error) {
	return ArgTopKFunc(s, k, cmp.Compare[E])
}

func ArgTopKFunc[S ~[]E, E any](s S, k int, fn func(a, b E) int) ([]int, error) {
	if fn == nil {
		return nil, errNilCompareFunc
	}
	if len(s) == 0 {
		return nil, ErrEmptyInput
	}
	count, o := Resolve(k, len(s))
	return newRanker(s, fn, o).top(count), nil
}

func (r ranker) top(count int) []int {
	if count <= 0 {
		return []int{}
	}
	if count*heapSelectRatio >= r.n {
		return r.sortAll()[:count]
	}

	// h keeps the best count positions seen so far with the one ranking
	// last at the root, so each candidate needs a single comparison.
	h := &positionHeap{r: r, idx: make([]int, 0, count)}
	for i := 0; i < r.n; i++ {
		if h.Len() < count {
			heap.Push(h, i)
			continue
		}
		if r.before(i, h.idx[0]) {
			h.idx[0] = i
			heap.Fix(h, 0)
		}
	}
	out := h.idx
	slices.SortFunc(out, r.compare)
	return out
}

type positionHeap struct {
	r   ranker
	idx []int
}

func (h *positionHeap) Len() int           { return len(h.idx) }
func (h *positionHeap) Less(i, j int) bool { return h.r.before(h.idx[j], h.idx[i]) }
func (h *positionHeap) Swap(i, j int)      { h.idx[i], h.idx[j] = h.idx[j], h.idx[i] }
func (h *positionHeap) Push(x any)         { h.idx = append(h.idx, x.(int)) }

func (h *positionHeap) Pop() any {
	last := h.idx[len(h.idx)-1]
	h.idx = h.idx[:len(h.idx)-1]
	return last
}
