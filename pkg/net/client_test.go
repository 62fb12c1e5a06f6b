package net

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetHTTPClient(t *testing.T) {
	client, err := GetHTTPClient()
	require.NoError(t, err)
	assert.NotNil(t, client)
	assert.NotNil(t, client.Jar)
}

func TestIsURL(t *testing.T) {
	assert.True(t, IsURL("https://example.com/scores.yaml"))
	assert.True(t, IsURL("HTTP://example.com/s.json"))
	assert.False(t, IsURL("./scores.yaml"))
	assert.False(t, IsURL("ftp://example.com/s"))
}

func TestFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/ok":
			assert.Equal(t, clientAgent, r.Header.Get("User-Agent"))
			_, _ = w.Write([]byte("a: 1\n"))
		case "/big":
			_, _ = w.Write([]byte(strings.Repeat("x", maxFetchBytes+1)))
		case "/fail":
			http.Error(w, "boom", http.StatusInternalServerError)
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	ctx := context.Background()

	b, err := Fetch(ctx, srv.URL+"/ok")
	require.NoError(t, err)
	assert.Equal(t, "a: 1\n", string(b))

	_, err = Fetch(ctx, srv.URL+"/missing")
	assert.ErrorIs(t, err, ErrorURLNotFound)

	_, err = Fetch(ctx, srv.URL+"/fail")
	assert.Error(t, err)

	_, err = Fetch(ctx, srv.URL+"/big")
	assert.ErrorIs(t, err, ErrorTooLarge)
}

func TestPrintHTTPResponse_Nil(t *testing.T) {
	// should not panic
	PrintHTTPResponse(nil)
}

func TestPrintHTTPResponse_WithResponse(t *testing.T) {
	resp := &http.Response{
		StatusCode: 200,
		Header:     http.Header{},
		Body:       http.NoBody,
	}
	// should not panic
	PrintHTTPResponse(resp)
}
