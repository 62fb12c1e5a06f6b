package rank

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var letters = map[string]int{"a": 1, "b": 4, "c": -1}

func TestArgSortMap(t *testing.T) {
	keys, err := ArgSortMap(letters, Ascending)
	require.NoError(t, err)
	assert.Equal(t, []string{"c", "a", "b"}, keys)

	keys, err = ArgSortMap(letters, Descending)
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "a", "c"}, keys)

	_, err = ArgSortMap(map[string]int{}, Ascending)
	assert.ErrorIs(t, err, ErrEmptyInput)
}

func TestArgSortMap_TiesBreakByKey(t *testing.T) {
	m := map[string]int{"z": 1, "y": 1, "x": 0}
	keys, err := ArgSortMap(m, Descending)
	require.NoError(t, err)
	assert.Equal(t, []string{"y", "z", "x"}, keys)
}

func TestArgMinMaxMap(t *testing.T) {
	k, err := ArgMinMap(letters)
	require.NoError(t, err)
	assert.Equal(t, "c", k)

	k, err = ArgMaxMap(letters)
	require.NoError(t, err)
	assert.Equal(t, "b", k)

	_, err = ArgMaxMap(map[int]int{})
	assert.ErrorIs(t, err, ErrEmptyInput)
}

func TestOrderedMap(t *testing.T) {
	byValue, err := OrderedMap(letters, ByValue, Ascending)
	require.NoError(t, err)
	assert.Equal(t, []Pair[string, int]{{"c", -1}, {"a", 1}, {"b", 4}}, byValue)

	byKey, err := OrderedMap(letters, ByKey, Ascending)
	require.NoError(t, err)
	assert.Equal(t, []Pair[string, int]{{"a", 1}, {"b", 4}, {"c", -1}}, byKey)

	byKeyDesc, err := OrderedMap(letters, ByKey, Descending)
	require.NoError(t, err)
	assert.Equal(t, []Pair[string, int]{{"c", -1}, {"b", 4}, {"a", 1}}, byKeyDesc)
}

func TestReorderMap(t *testing.T) {
	keys, err := ArgSortMap(letters, Ascending)
	require.NoError(t, err)
	got, err := ReorderMap(letters, keys)
	require.NoError(t, err)
	assert.Equal(t, []Pair[string, int]{{"c", -1}, {"a", 1}, {"b", 4}}, got)

	_, err = ReorderMap(letters, []string{"a", "b"})
	assert.ErrorIs(t, err, ErrLengthMismatch)

	_, err = ReorderMap(letters, []string{"a", "b", "x"})
	assert.ErrorIs(t, err, ErrInvalidPermutation)

	_, err = ReorderMap(letters, []string{"a", "a", "b"})
	assert.ErrorIs(t, err, ErrInvalidPermutation)
}
