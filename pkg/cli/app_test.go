package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/mchmarny/scorekit/pkg/data"
	"github.com/mchmarny/scorekit/pkg/score"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	leftScores  = "a: 1\nb: 5\nc: 3\nd: 4\n"
	rightScores = "b: 2\nc: 3\nz: 9\n"
)

type testEnv struct {
	dir string
	db  string
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	dir := t.TempDir()
	return &testEnv{dir: dir, db: filepath.Join(dir, "test.db")}
}

func (e *testEnv) file(t *testing.T, name, content string) string {
	t.Helper()
	p := filepath.Join(e.dir, name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0600))
	return p
}

func (e *testEnv) run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var buf bytes.Buffer
	app := newApp()
	app.Writer = &buf
	full := append([]string{appName, "--config", e.dir, "--db", e.db}, args...)
	err := app.Run(context.Background(), full)
	return buf.String(), err
}

func decodeItems(t *testing.T, out string) []score.Item[string] {
	t.Helper()
	var items []score.Item[string]
	require.NoError(t, json.Unmarshal([]byte(out), &items))
	return items
}

func itemKeys(items []score.Item[string]) []string {
	keys := make([]string, len(items))
	for i, it := range items {
		keys[i] = it.Key
	}
	return keys
}

func TestRank_TopK(t *testing.T) {
	e := newTestEnv(t)
	src := e.file(t, "left.yaml", leftScores)

	out, err := e.run(t, "rank", "--source", src, "--k", "2")
	require.NoError(t, err)
	items := decodeItems(t, out)
	assert.Equal(t, []string{"b", "d"}, itemKeys(items))
	assert.True(t, items[0].Score.Equal(score.Int(5)))
}

func TestRank_DefaultKFromConfig(t *testing.T) {
	e := newTestEnv(t)
	src := e.file(t, "left.yaml", leftScores)

	out, err := e.run(t, "rank", "--source", src)
	require.NoError(t, err)
	assert.Equal(t, []string{"b"}, itemKeys(decodeItems(t, out)))
}

func TestRank_Bottom(t *testing.T) {
	e := newTestEnv(t)
	src := e.file(t, "left.yaml", leftScores)

	out, err := e.run(t, "rank", "--source", src, "--k", "2", "--bottom")
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "c"}, itemKeys(decodeItems(t, out)))
}

func TestRank_Order(t *testing.T) {
	e := newTestEnv(t)
	src := e.file(t, "left.yaml", leftScores)

	out, err := e.run(t, "rank", "--source", src, "--order", "asc")
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "c", "d", "b"}, itemKeys(decodeItems(t, out)))

	_, err = e.run(t, "rank", "--source", src, "--order", "sideways")
	assert.Error(t, err)
}

func TestRank_ConflictingSelections(t *testing.T) {
	e := newTestEnv(t)
	src := e.file(t, "left.yaml", leftScores)

	tests := []struct {
		name string
		args []string
	}{
		{"order with k", []string{"--order", "asc", "--k", "2"}},
		{"order with bottom", []string{"--order", "desc", "--bottom"}},
		{"median with k", []string{"--median", "--k", "2"}},
		{"median with order", []string{"--median", "--order", "asc"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := e.run(t, append([]string{"rank", "--source", src}, tt.args...)...)
			assert.Error(t, err)
			assert.Empty(t, out)
		})
	}
}

func TestRank_ZeroDefaultKListsAll(t *testing.T) {
	e := newTestEnv(t)
	src := e.file(t, "left.yaml", leftScores)
	require.NoError(t, os.WriteFile(filepath.Join(e.dir, "config.yaml"), []byte("default_k: 0\n"), 0600))

	out, err := e.run(t, "rank", "--source", src)
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "d", "c", "a"}, itemKeys(decodeItems(t, out)))
}

func TestRank_Median(t *testing.T) {
	e := newTestEnv(t)
	src := e.file(t, "left.yaml", leftScores)

	out, err := e.run(t, "rank", "--source", src, "--median")
	require.NoError(t, err)
	var med score.Item[string]
	require.NoError(t, json.Unmarshal([]byte(out), &med))
	assert.Equal(t, "c", med.Key)
}

func TestRank_EmptySource(t *testing.T) {
	e := newTestEnv(t)
	src := e.file(t, "empty.yaml", "")

	_, err := e.run(t, "rank", "--source", src)
	assert.ErrorIs(t, err, score.ErrEmptyInput)
}

func TestRank_YAMLOutput(t *testing.T) {
	e := newTestEnv(t)
	src := e.file(t, "left.yaml", leftScores)

	out, err := e.run(t, "--format", "yaml", "rank", "--source", src, "--k", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "key: b")
	assert.Contains(t, out, "score: 5")
}

func TestRank_MissingSource(t *testing.T) {
	e := newTestEnv(t)
	_, err := e.run(t, "rank")
	assert.Error(t, err)
}

func TestCombine_Sets(t *testing.T) {
	e := newTestEnv(t)
	left := e.file(t, "left.yaml", leftScores)
	right := e.file(t, "right.yaml", rightScores)

	out, err := e.run(t, "combine", "--left", left, "--right", right, "--op", "+")
	require.NoError(t, err)
	items := decodeItems(t, out)
	assert.Equal(t, []string{"a", "b", "c", "d"}, itemKeys(items))
	assert.True(t, items[1].Score.Equal(score.Int(7)))
	assert.True(t, items[2].Score.Equal(score.Int(6)))
}

func TestCombine_Intersection(t *testing.T) {
	e := newTestEnv(t)
	left := e.file(t, "left.yaml", leftScores)
	right := e.file(t, "right.yaml", rightScores)

	out, err := e.run(t, "combine", "--left", left, "--right", right, "--op", "min")
	require.NoError(t, err)
	items := decodeItems(t, out)
	assert.Equal(t, []string{"b", "c"}, itemKeys(items))
	assert.True(t, items[0].Score.Equal(score.Int(2)))
}

func TestCombine_ScalarAndRound(t *testing.T) {
	e := newTestEnv(t)
	left := e.file(t, "left.yaml", leftScores)

	out, err := e.run(t, "combine", "--left", left, "--scalar", "3", "--op", "/", "--unary", "round", "--digits", "1")
	require.NoError(t, err)
	items := decodeItems(t, out)
	require.Len(t, items, 4)
	assert.Equal(t, score.KindFloat, items[0].Score.Kind())
	assert.InDelta(t, 0.3, items[0].Score.Float64(), 1e-9)
	assert.InDelta(t, 1.7, items[1].Score.Float64(), 1e-9)
}

func TestCombine_UnaryOnly(t *testing.T) {
	e := newTestEnv(t)
	left := e.file(t, "left.yaml", leftScores)

	out, err := e.run(t, "combine", "--left", left, "--unary", "neg", "--order", "desc")
	require.NoError(t, err)
	items := decodeItems(t, out)
	assert.Equal(t, []string{"a", "c", "d", "b"}, itemKeys(items))
	assert.True(t, items[0].Score.Equal(score.Int(-1)))
}

func TestCombine_DivisionByZero(t *testing.T) {
	e := newTestEnv(t)
	left := e.file(t, "left.yaml", leftScores)

	_, err := e.run(t, "combine", "--left", left, "--scalar", "0", "--op", "//")
	assert.ErrorIs(t, err, score.ErrDivisionByZero)
}

func TestCombine_InvalidArgs(t *testing.T) {
	e := newTestEnv(t)
	left := e.file(t, "left.yaml", leftScores)
	right := e.file(t, "right.yaml", rightScores)

	tests := []struct {
		name string
		args []string
	}{
		{"no operation", []string{"--left", left}},
		{"op without operand", []string{"--left", left, "--op", "+"}},
		{"both operands", []string{"--left", left, "--right", right, "--scalar", "1", "--op", "+"}},
		{"unknown op", []string{"--left", left, "--scalar", "1", "--op", "^"}},
		{"bad scalar", []string{"--left", left, "--scalar", "many", "--op", "+"}},
		{"unknown unary", []string{"--left", left, "--unary", "sqrt"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := e.run(t, append([]string{"combine"}, tt.args...)...)
			assert.Error(t, err)
		})
	}
}

func TestCombine_Save(t *testing.T) {
	e := newTestEnv(t)
	left := e.file(t, "left.yaml", leftScores)

	_, err := e.run(t, "combine", "--left", left, "--scalar", "2", "--op", "*", "--save", "doubled")
	require.NoError(t, err)

	out, err := e.run(t, "rank", "--source", "set:doubled", "--k", "1")
	require.NoError(t, err)
	items := decodeItems(t, out)
	require.Len(t, items, 1)
	assert.Equal(t, "b", items[0].Key)
	assert.True(t, items[0].Score.Equal(score.Int(10)))
}

func TestStore_Lifecycle(t *testing.T) {
	e := newTestEnv(t)
	src := e.file(t, "left.yaml", leftScores)

	_, err := e.run(t, "store", "save", "--name", "first", "--source", src)
	require.NoError(t, err)

	out, err := e.run(t, "store", "list")
	require.NoError(t, err)
	var list []*data.SetInfo
	require.NoError(t, json.Unmarshal([]byte(out), &list))
	require.Len(t, list, 1)
	assert.Equal(t, "first", list[0].Name)
	assert.Equal(t, 4, list[0].Items)

	out, err = e.run(t, "store", "show", "--name", "first")
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c", "d"}, itemKeys(decodeItems(t, out)))

	_, err = e.run(t, "store", "delete", "--name", "first")
	require.NoError(t, err)

	_, err = e.run(t, "store", "show", "--name", "first")
	assert.ErrorIs(t, err, data.ErrSetNotFound)

	_, err = e.run(t, "store", "delete", "--name", "first")
	assert.ErrorIs(t, err, data.ErrSetNotFound)
}

func TestConfig_InvalidFormat(t *testing.T) {
	e := newTestEnv(t)
	src := e.file(t, "left.yaml", leftScores)

	_, err := e.run(t, "--format", "xml", "rank", "--source", src)
	assert.Error(t, err)
}

func TestCombine_KeepPositive(t *testing.T) {
	e := newTestEnv(t)
	left := e.file(t, "left.yaml", leftScores)

	out, err := e.run(t, "combine", "--file", left, "--scalar", "3", "--op", "sub", "--unary", "pos")
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "d"}, itemKeys(decodeItems(t, out)))
}
