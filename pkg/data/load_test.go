package data

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scores.yaml")
	require.NoError(t, os.WriteFile(path, []byte("a: 1\nb: 2\n"), 0600))

	s, err := Load(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, s.Keys())
}

func TestLoad_URL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"x": 0.5}`))
	}))
	defer srv.Close()

	s, err := Load(context.Background(), srv.URL+"/scores.json")
	require.NoError(t, err)
	assert.Equal(t, []string{"x"}, s.Keys())
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load(context.Background(), "")
	assert.Error(t, err)

	_, err = Load(context.Background(), filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
