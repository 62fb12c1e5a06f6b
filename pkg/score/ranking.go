package score

import "github.com/mchmarny/scorekit/pkg/rank"

// DefaultK is the k used when a caller does not ask for a specific number
// of items, which makes TopK(DefaultK) equivalent to Best.
const DefaultK = 1

// Ranking accessors rank by score; ties keep insertion order. All of them
// fail with ErrEmptyInput on an empty scorer.

// Best returns the top scoring item.
func (s *Scorer[K]) Best() (Item[K], error) {
	i, err := rank.ArgMaxFunc(s.values(), Value.Compare)
	if err != nil {
		return Item[K]{}, err
	}
	return s.item(i), nil
}

// Worst returns the lowest scoring item.
func (s *Scorer[K]) Worst() (Item[K], error) {
	i, err := rank.ArgMinFunc(s.values(), Value.Compare)
	if err != nil {
		return Item[K]{}, err
	}
	return s.item(i), nil
}

// TopK returns the k best items in descending order. A negative k returns
// the |k| worst items in ascending order and zero returns every item
// descending.
func (s *Scorer[K]) TopK(k int) ([]Item[K], error) {
	idx, err := rank.ArgTopKFunc(s.values(), k, Value.Compare)
	if err != nil {
		return nil, err
	}
	return s.itemsAt(idx), nil
}

// BottomK returns the k worst items in ascending order. Zero or
// rank.Unbounded returns every item ascending.
func (s *Scorer[K]) BottomK(k int) ([]Item[K], error) {
	if k == 0 || k == rank.Unbounded {
		return s.Ascending()
	}
	return s.TopK(-k)
}

func (s *Scorer[K]) Ascending() ([]Item[K], error) {
	return s.ordered(rank.Ascending)
}

func (s *Scorer[K]) Descending() ([]Item[K], error) {
	return s.ordered(rank.Descending)
}

func (s *Scorer[K]) ordered(o rank.Order) ([]Item[K], error) {
	idx, err := rank.RankFunc(s.values(), Value.Compare, o)
	if err != nil {
		return nil, err
	}
	return s.itemsAt(idx), nil
}

// Median returns the lower median item: for an even count the smaller of
// the two middle items, never an average.
func (s *Scorer[K]) Median() (Item[K], error) {
	i, err := rank.ArgMedianFunc(s.values(), Value.Compare)
	if err != nil {
		return Item[K]{}, err
	}
	return s.item(i), nil
}

func (s *Scorer[K]) values() []Value {
	if s == nil {
		return nil
	}
	return s.scores
}
