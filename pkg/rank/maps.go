package rank

import (
	"cmp"
	"maps"
	"slices"
)

// Pair is a key/value entry of an ordered view over a map.
type Pair[K comparable, V any] struct {
	Key   K `json:"key" yaml:"key"`
	Value V `json:"value" yaml:"value"`
}

// By selects what an ordered map view sorts on.
type By int

const (
	ByValue By = iota
	ByKey
)

// sortedKeys gives a map the index order a sequence has. Ties among values
// therefore break by ascending key.
func sortedKeys[M ~map[K]V, K cmp.Ordered, V any](m M) []K {
	return slices.Sorted(maps.Keys(m))
}

func mapValues[M ~map[K]V, K cmp.Ordered, V any](m M, keys []K) []V {
	vals := make([]V, len(keys))
	for i, k := range keys {
		vals[i] = m[k]
	}
	return vals
}

// ArgSortMap returns the keys of m ranked by their values.
func ArgSortMap[M ~map[K]V, K, V cmp.Ordered](m M, o Order) ([]K, error) {
	keys := sortedKeys(m)
	idx, err := Rank(mapValues(m, keys), o)
	if err != nil {
		return nil, err
	}
	return Reorder(keys, idx)
}

// ArgMinMap returns the key holding the smallest value.
func ArgMinMap[M ~map[K]V, K, V cmp.Ordered](m M) (K, error) {
	keys := sortedKeys(m)
	i, err := ArgMin(mapValues(m, keys))
	if err != nil {
		var zero K
		return zero, err
	}
	return keys[i], nil
}

// ArgMaxMap returns the key holding the largest value.
func ArgMaxMap[M ~map[K]V, K, V cmp.Ordered](m M) (K, error) {
	keys := sortedKeys(m)
	i, err := ArgMax(mapValues(m, keys))
	if err != nil {
		var zero K
		return zero, err
	}
	return keys[i], nil
}

// ReorderMap lists the entries of m in the order of keys. Every key must be
// present in m exactly once and cover all of it.
func ReorderMap[M ~map[K]V, K comparable, V any](m M, keys []K) ([]Pair[K, V], error) {
	if len(keys) != len(m) {
		return nil, ErrLengthMismatch
	}
	seen := make(map[K]struct{}, len(keys))
	out := make([]Pair[K, V], 0, len(keys))
	for _, k := range keys {
		v, ok := m[k]
		if _, dup := seen[k]; !ok || dup {
			return nil, ErrInvalidPermutation
		}
		seen[k] = struct{}{}
		out = append(out, Pair[K, V]{Key: k, Value: v})
	}
	return out, nil
}

// OrderedMap returns the entries of m sorted by value or by key.
func OrderedMap[M ~map[K]V, K, V cmp.Ordered](m M, by By, o Order) ([]Pair[K, V], error) {
	if len(m) == 0 {
		return nil, ErrEmptyInput
	}
	var keys []K
	if by == ByKey {
		keys = sortedKeys(m)
		if o == Descending {
			slices.Reverse(keys)
		}
	} else {
		var err error
		if keys, err = ArgSortMap(m, o); err != nil {
			return nil, err
		}
	}
	return ReorderMap(m, keys)
}
