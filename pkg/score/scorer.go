// Package score provides Scorer, an insertion-ordered mapping from keys to
// numeric scores with element-wise algebra and stable ranking queries.
package score

import (
	"errors"
	"fmt"
	"iter"
	"slices"

	"github.com/mchmarny/scorekit/pkg/rank"
)

var (
	ErrKeyNotFound    = errors.New("key not found")
	ErrLengthMismatch = rank.ErrLengthMismatch
	ErrEmptyInput     = rank.ErrEmptyInput
)

// Item is a scored key.
type Item[K comparable] struct {
	Key   K     `json:"key" yaml:"key"`
	Score Value `json:"score" yaml:"score"`
}

// Scorer maps keys to scores and remembers the order keys were first set.
// Re-assigning a key keeps its position. The zero value is an empty scorer
// ready to use.
//
// A Scorer is not safe for concurrent mutation. Operators never modify
// their operands and always return an independent copy.
type Scorer[K comparable] struct {
	keys   []K
	scores []Value
	slot   map[K]int
}

// New returns an empty scorer.
func New[K comparable]() *Scorer[K] {
	return &Scorer[K]{slot: map[K]int{}}
}

func withCapacity[K comparable](n int) *Scorer[K] {
	return &Scorer[K]{
		keys:   make([]K, 0, n),
		scores: make([]Value, 0, n),
		slot:   make(map[K]int, n),
	}
}

// FromMap builds a scorer from a Go map. Go maps have no order, so the
// resulting insertion order is unspecified.
func FromMap[K comparable, N Number](m map[K]N) *Scorer[K] {
	s := withCapacity[K](len(m))
	for k, n := range m {
		s.Set(k, Of(n))
	}
	return s
}

// FromPairs builds a scorer from parallel key and score slices. A repeated
// key keeps its first position and its last score.
func FromPairs[K comparable, N Number](keys []K, scores []N) (*Scorer[K], error) {
	if len(keys) != len(scores) {
		return nil, fmt.Errorf("%d keys and %d scores: %w", len(keys), len(scores), ErrLengthMismatch)
	}
	s := withCapacity[K](len(keys))
	for i, k := range keys {
		s.Set(k, Of(scores[i]))
	}
	return s, nil
}

// FromAny is FromPairs for dynamically typed scores.
func FromAny[K comparable](keys []K, scores []any) (*Scorer[K], error) {
	if len(keys) != len(scores) {
		return nil, fmt.Errorf("%d keys and %d scores: %w", len(keys), len(scores), ErrLengthMismatch)
	}
	s := withCapacity[K](len(keys))
	for i, k := range keys {
		v, err := ValueOf(scores[i])
		if err != nil {
			return nil, fmt.Errorf("score for key %v: %w", k, err)
		}
		s.Set(k, v)
	}
	return s, nil
}

func FromItems[K comparable](items ...Item[K]) *Scorer[K] {
	s := withCapacity[K](len(items))
	for _, it := range items {
		s.Set(it.Key, it.Score)
	}
	return s
}

func (s *Scorer[K]) Len() int {
	if s == nil {
		return 0
	}
	return len(s.keys)
}

func (s *Scorer[K]) lookup(key K) (int, bool) {
	if s == nil || s.slot == nil {
		return 0, false
	}
	i, ok := s.slot[key]
	return i, ok
}

func (s *Scorer[K]) Has(key K) bool {
	_, ok := s.lookup(key)
	return ok
}

// Get returns the score of key and whether it is present.
func (s *Scorer[K]) Get(key K) (Value, bool) {
	i, ok := s.lookup(key)
	if !ok {
		return Value{}, false
	}
	return s.scores[i], true
}

// Score returns the score of key or ErrKeyNotFound.
func (s *Scorer[K]) Score(key K) (Value, error) {
	v, ok := s.Get(key)
	if !ok {
		return Value{}, fmt.Errorf("%v: %w", key, ErrKeyNotFound)
	}
	return v, nil
}

// Set assigns a score. New keys are appended to the order, existing keys
// are updated in place.
func (s *Scorer[K]) Set(key K, v Value) {
	if s.slot == nil {
		s.slot = map[K]int{}
	}
	if i, ok := s.slot[key]; ok {
		s.scores[i] = v
		return
	}
	s.slot[key] = len(s.keys)
	s.keys = append(s.keys, key)
	s.scores = append(s.scores, v)
}

// Delete removes key and reports whether it was present.
func (s *Scorer[K]) Delete(key K) bool {
	i, ok := s.lookup(key)
	if !ok {
		return false
	}
	delete(s.slot, key)
	s.keys = slices.Delete(s.keys, i, i+1)
	s.scores = slices.Delete(s.scores, i, i+1)
	for j := i; j < len(s.keys); j++ {
		s.slot[s.keys[j]] = j
	}
	return true
}

// Update adds the scores of other to s, appending keys s does not have yet.
func (s *Scorer[K]) Update(other *Scorer[K]) {
	for k, v := range other.All() {
		cur, _ := s.Get(k)
		s.Set(k, cur.Add(v))
	}
}

// Keys returns the keys in insertion order.
func (s *Scorer[K]) Keys() []K {
	if s == nil {
		return nil
	}
	return slices.Clone(s.keys)
}

// Items returns the scored keys in insertion order.
func (s *Scorer[K]) Items() []Item[K] {
	out := make([]Item[K], s.Len())
	for i := range out {
		out[i] = s.item(i)
	}
	return out
}

// All iterates keys and scores in insertion order.
func (s *Scorer[K]) All() iter.Seq2[K, Value] {
	return func(yield func(K, Value) bool) {
		for i := 0; i < s.Len(); i++ {
			if !yield(s.keys[i], s.scores[i]) {
				return
			}
		}
	}
}

// Map copies the scores into a plain Go map.
func (s *Scorer[K]) Map() map[K]Value {
	m := make(map[K]Value, s.Len())
	for k, v := range s.All() {
		m[k] = v
	}
	return m
}

func (s *Scorer[K]) Clone() *Scorer[K] {
	out := withCapacity[K](s.Len())
	if s == nil {
		return out
	}
	out.keys = append(out.keys, s.keys...)
	out.scores = append(out.scores, s.scores...)
	for k, i := range s.slot {
		out.slot[k] = i
	}
	return out
}

// Equal reports whether both scorers hold the same keys in the same order
// with numerically equal scores.
func (s *Scorer[K]) Equal(o *Scorer[K]) bool {
	if s.Len() != o.Len() {
		return false
	}
	for i := 0; i < s.Len(); i++ {
		if s.keys[i] != o.keys[i] || !s.scores[i].Equal(o.scores[i]) {
			return false
		}
	}
	return true
}

func (s *Scorer[K]) item(i int) Item[K] {
	return Item[K]{Key: s.keys[i], Score: s.scores[i]}
}

func (s *Scorer[K]) itemsAt(idx []int) []Item[K] {
	out := make([]Item[K], len(idx))
	for n, i := range idx {
		out[n] = s.item(i)
	}
	return out
}
