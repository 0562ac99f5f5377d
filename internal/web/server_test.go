package web

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
	"golang.org/x/net/html"

	"github.com/yuzeguitarist/loveqr/internal/app"
	"github.com/yuzeguitarist/loveqr/internal/config"
)

func newTestServer(t *testing.T) (http.Handler, *observer.ObservedLogs) {
	t.Helper()
	core, logs := observer.New(zap.InfoLevel)
	s, err := NewServer(config.Default(), zap.New(core))
	require.NoError(t, err)
	return s.Router(), logs
}

func get(t *testing.T, h http.Handler, target string) (*http.Response, string) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	resp := w.Result()
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, string(body)
}

func TestLoveQR(t *testing.T) {
	h, _ := newTestServer(t)
	for _, path := range []string{"/api/love-qr", "/love-qr"} {
		resp, body := get(t, h, path+"?text=Hello&size=300")
		require.Equal(t, http.StatusOK, resp.StatusCode, body)
		assert.Equal(t, "image/svg+xml", resp.Header.Get("Content-Type"))
		assert.Equal(t, "public, max-age=3600", resp.Header.Get("Cache-Control"))
		assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
		assert.True(t, strings.HasPrefix(body, "<svg"))
		assert.Contains(t, body, `width="300" height="300"`)
		assert.Contains(t, body, "<title>Hello</title>")
	}
}

func TestLoveQRDefaults(t *testing.T) {
	h, _ := newTestServer(t)
	resp, body := get(t, h, "/api/love-qr")
	require.Equal(t, http.StatusOK, resp.StatusCode, body)
	assert.Contains(t, body, `width="300" height="300" viewBox="0 0 300 300"`)
	assert.Contains(t, body, "<title>"+app.DefaultText+"</title>")

	// empty values fall back as well
	_, body = get(t, h, "/api/love-qr?text=&size=")
	assert.Contains(t, body, "<title>"+app.DefaultText+"</title>")
	assert.Contains(t, body, `width="300"`)
}

func TestLoveQRDataAlias(t *testing.T) {
	h, _ := newTestServer(t)
	resp, body := get(t, h, "/api/love-qr?data=alias&size=120&level=h&format=svg")
	require.Equal(t, http.StatusOK, resp.StatusCode, body)
	assert.Contains(t, body, "<title>alias</title>")
	assert.Contains(t, body, `width="120" height="120"`)
}

func TestLoveQRDeterministic(t *testing.T) {
	h, _ := newTestServer(t)
	_, a := get(t, h, "/api/love-qr?text=forever&size=256")
	_, b := get(t, h, "/api/love-qr?text=forever&size=256")
	assert.Equal(t, a, b)
}

func TestLoveQRErrors(t *testing.T) {
	h, logs := newTestServer(t)
	cases := map[string]string{
		"/api/love-qr?size=0":      "size must be a positive integer",
		"/api/love-qr?size=-5":     "size must be a positive integer",
		"/api/love-qr?size=abc":    `got "abc"`,
		"/api/love-qr?size=100000": "exceeds maximum",
		"/api/love-qr?format=png":  "unsupported format",
		"/api/love-qr?level=Z":     "unknown error-correction level",
	}
	// over capacity even at the largest symbol version
	cases["/api/love-qr?level=H&text="+strings.Repeat("x", 5000)] = "qr encoding failed"
	for target, want := range cases {
		resp, body := get(t, h, target)
		assert.Equal(t, http.StatusInternalServerError, resp.StatusCode, target)
		assert.Equal(t, "text/plain; charset=utf-8", resp.Header.Get("Content-Type"))
		assert.True(t, strings.HasPrefix(body, "Error: "), body)
		assert.Contains(t, body, want, target)
	}
	assert.Equal(t, len(cases), logs.FilterMessage("love-qr failed").Len())
}

func TestNotFound(t *testing.T) {
	h, logs := newTestServer(t)
	resp, body := get(t, h, "/unknown/path")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "Not Found", body)

	entries := logs.FilterMessage("http request").All()
	require.Len(t, entries, 1)
	assert.EqualValues(t, http.StatusNotFound, entries[0].ContextMap()["status"])
	assert.NotEmpty(t, entries[0].ContextMap()["request_id"])
}

func TestMethodNotAllowed(t *testing.T) {
	h, _ := newTestServer(t)
	req := httptest.NewRequest(http.MethodPost, "/api/love-qr", nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}

func TestIndexPage(t *testing.T) {
	h, _ := newTestServer(t)
	resp, body := get(t, h, "/")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "text/html; charset=utf-8", resp.Header.Get("Content-Type"))

	doc, err := html.Parse(strings.NewReader(body))
	require.NoError(t, err)

	inputs := map[string]bool{}
	var action string
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			for _, a := range n.Attr {
				if n.Data == "form" && a.Key == "action" {
					action = a.Val
				}
				if (n.Data == "input" || n.Data == "select") && a.Key == "name" {
					inputs[a.Val] = true
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	assert.Equal(t, "/api/love-qr", action)
	for _, name := range []string{"text", "size", "level", "format"} {
		assert.True(t, inputs[name], "missing form field %s", name)
	}
}

func TestHealthz(t *testing.T) {
	h, _ := newTestServer(t)
	resp, body := get(t, h, "/healthz")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var out map[string]string
	require.NoError(t, json.Unmarshal([]byte(body), &out))
	assert.Equal(t, "ok", out["status"])
	assert.Equal(t, "skip2", out["encoder"])
}

func TestRecoverer(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	h := Chain(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("broken heart")
	}), zap.New(core))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	require.Equal(t, 1, logs.Len())
	assert.EqualValues(t, http.StatusInternalServerError, logs.All()[0].ContextMap()["status"])
}
