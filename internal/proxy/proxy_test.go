package proxy

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRoutesNormalizesAndSorts(t *testing.T) {
	table, err := ParseRoutes(map[string]string{
		"docs":       "http://upstream-a",
		"/docs/api/": "http://upstream-b",
	})
	require.NoError(t, err)
	require.Equal(t, 2, table.Len())

	rt, ok := table.Match("/docs/api/v1")
	require.True(t, ok)
	assert.Equal(t, "/docs/api/", rt.Prefix, "longest prefix wins")

	rt, ok = table.Match("/docs/intro")
	require.True(t, ok)
	assert.Equal(t, "/docs/", rt.Prefix)

	_, ok = table.Match("/other")
	assert.False(t, ok)
}

func TestParseRoutesRejectsRelativeTarget(t *testing.T) {
	_, err := ParseRoutes(map[string]string{"/x/": "not-a-url"})
	assert.Error(t, err)
}

func TestWrapForwardsAndRewritesHTML(t *testing.T) {
	origin := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/index.html":
			w.Header().Set("Content-Type", "text/html; charset=utf-8")
			_, _ = w.Write([]byte(`<html><body><a href="/page">p</a><img src="/img.png"><a href="https://e.com/x">x</a></body></html>`))
		case "/raw":
			w.Header().Set("Content-Type", "text/plain")
			_, _ = w.Write([]byte("plain /untouched"))
		default:
			http.NotFound(w, r)
		}
	}))
	defer origin.Close()

	table, err := ParseRoutes(map[string]string{"/docs/": origin.URL})
	require.NoError(t, err)

	fallthroughHit := false
	handler := table.Wrap(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fallthroughHit = true
		w.WriteHeader(http.StatusTeapot)
	}))
	front := httptest.NewServer(handler)
	defer front.Close()

	resp, err := http.Get(front.URL + "/docs/index.html")
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), `href="/docs/page"`)
	assert.Contains(t, string(body), `src="/docs/img.png"`)
	assert.Contains(t, string(body), `href="https://e.com/x"`, "external links stay")

	resp, err = http.Get(front.URL + "/docs/raw")
	require.NoError(t, err)
	body, _ = io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.Equal(t, "plain /untouched", string(body), "non-HTML passes through")

	resp, err = http.Get(front.URL + "/elsewhere")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusTeapot, resp.StatusCode)
	assert.True(t, fallthroughHit)
}
