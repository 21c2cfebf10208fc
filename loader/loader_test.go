package loader

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/jsonref/referrors"
)

func writeTempFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadJSONFile(t *testing.T) {
	path := writeTempFile(t, "doc.json", `{"name": "pet", "count": 3}`)

	l, err := New()
	require.NoError(t, err)

	doc, err := l.Load(path)
	require.NoError(t, err)

	m, ok := doc.(map[string]any)
	require.True(t, ok, "Expected map[string]any, got %T", doc)
	assert.Equal(t, "pet", m["name"])
	assert.Equal(t, float64(3), m["count"], "JSON numbers decode as float64")
}

func TestLoadYAMLFile(t *testing.T) {
	path := writeTempFile(t, "doc.yaml", "name: pet\ncount: 3\nratio: 0.5\n")

	l, err := New()
	require.NoError(t, err)

	doc, err := l.Load(path)
	require.NoError(t, err)

	m, ok := doc.(map[string]any)
	require.True(t, ok, "Expected map[string]any, got %T", doc)
	assert.Equal(t, "pet", m["name"])
	assert.Equal(t, 3, m["count"], "YAML integers decode as int")
	assert.Equal(t, 0.5, m["ratio"])
}

func TestLoadYAMLScalarDocument(t *testing.T) {
	path := writeTempFile(t, "doc.yaml", "42\n")

	l, err := New()
	require.NoError(t, err)

	doc, err := l.Load(path)
	require.NoError(t, err)
	assert.Equal(t, 42, doc)
}

func TestLoadFileURI(t *testing.T) {
	path := writeTempFile(t, "doc.json", `{"ok": true}`)

	l, err := New()
	require.NoError(t, err)

	doc, err := l.Load("file://" + path)
	require.NoError(t, err)

	m, ok := doc.(map[string]any)
	require.True(t, ok, "Expected map[string]any, got %T", doc)
	assert.Equal(t, true, m["ok"])
}

func TestLoadFileURIWithRemoteHost(t *testing.T) {
	l, err := New()
	require.NoError(t, err)

	_, err = l.Load("file://example.com/etc/passwd")
	require.Error(t, err)
	assert.True(t, errors.Is(err, referrors.ErrLoader))
	assert.Contains(t, err.Error(), "remote file URIs are not supported")
}

func TestLoadHTTP(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"type": "object"}`))
	}))
	defer server.Close()

	l, err := New()
	require.NoError(t, err)

	doc, err := l.Load(server.URL)
	require.NoError(t, err)
	m, ok := doc.(map[string]any)
	require.True(t, ok, "Expected map[string]any, got %T", doc)
	assert.Equal(t, "object", m["type"])

	// Second load hits the cache
	again, err := l.Load(server.URL)
	require.NoError(t, err)
	assert.Equal(t, int32(1), calls.Load(), "Expected cached document on second load")

	sameMap, ok := again.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "object", sameMap["type"])
}

func TestLoadHTTPYAMLContentType(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/yaml")
		_, _ = w.Write([]byte("count: 7\n"))
	}))
	defer server.Close()

	l, err := New()
	require.NoError(t, err)

	doc, err := l.Load(server.URL)
	require.NoError(t, err)
	m, ok := doc.(map[string]any)
	require.True(t, ok, "Expected map[string]any, got %T", doc)
	assert.Equal(t, 7, m["count"], "YAML integers decode as int")
}

func TestLoadSetsUserAgent(t *testing.T) {
	var gotUA string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{}`))
	}))
	defer server.Close()

	l, err := New(WithUserAgent("custom-agent/9.9"))
	require.NoError(t, err)

	_, err = l.Load(server.URL)
	require.NoError(t, err)
	assert.Equal(t, "custom-agent/9.9", gotUA)
}

func TestLoadCacheDisabled(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{}`))
	}))
	defer server.Close()

	l, err := New(WithCacheDisabled(true))
	require.NoError(t, err)

	_, err = l.Load(server.URL)
	require.NoError(t, err)
	_, err = l.Load(server.URL)
	require.NoError(t, err)
	assert.Equal(t, int32(2), calls.Load(), "Expected a fetch per load with caching disabled")
}

func TestLoadHTTPStatusError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "not here", http.StatusNotFound)
	}))
	defer server.Close()

	l, err := New()
	require.NoError(t, err)

	_, err = l.Load(server.URL)
	require.Error(t, err)
	assert.True(t, errors.Is(err, referrors.ErrLoader))

	var loadErr *referrors.LoaderError
	require.True(t, errors.As(err, &loadErr))
	assert.Equal(t, server.URL, loadErr.URI)
	assert.Contains(t, loadErr.Message, "HTTP 404")
}

func TestLoadMissingFile(t *testing.T) {
	l, err := New()
	require.NoError(t, err)

	_, err = l.Load(filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, referrors.ErrLoader))
	assert.Contains(t, err.Error(), "failed to read file")
}

func TestLoadDecodeError(t *testing.T) {
	path := writeTempFile(t, "broken.json", `{"unterminated": `)

	l, err := New()
	require.NoError(t, err)

	_, err = l.Load(path)
	require.Error(t, err)

	var loadErr *referrors.LoaderError
	require.True(t, errors.As(err, &loadErr))
	assert.Contains(t, loadErr.Message, "failed to decode document")
	assert.Error(t, loadErr.Cause)
}

func TestLoadMaxDocumentSize(t *testing.T) {
	t.Run("oversized file", func(t *testing.T) {
		path := writeTempFile(t, "big.json", `{"padding": "`+strings.Repeat("x", 256)+`"}`)

		l, err := New(WithMaxDocumentSize(64))
		require.NoError(t, err)

		_, err = l.Load(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "exceeds maximum size limit")
	})

	t.Run("oversized HTTP response", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"padding": "` + strings.Repeat("x", 256) + `"}`))
		}))
		defer server.Close()

		l, err := New(WithMaxDocumentSize(64))
		require.NoError(t, err)

		_, err = l.Load(server.URL)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "exceeds maximum size limit")
	})

	t.Run("negative size rejected", func(t *testing.T) {
		_, err := New(WithMaxDocumentSize(-1))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "cannot be negative")
	})

	t.Run("unlimited by default", func(t *testing.T) {
		path := writeTempFile(t, "big.json", `{"padding": "`+strings.Repeat("x", 256)+`"}`)

		l, err := New()
		require.NoError(t, err)

		doc, err := l.Load(path)
		require.NoError(t, err)
		assert.Contains(t, doc, "padding")
	})

	t.Run("zero means unlimited", func(t *testing.T) {
		path := writeTempFile(t, "big.json", `{"padding": "`+strings.Repeat("x", 256)+`"}`)

		l, err := New(WithMaxDocumentSize(0))
		require.NoError(t, err)

		_, err = l.Load(path)
		require.NoError(t, err)
	})
}

func TestLoadErrorsNotCached(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if calls.Add(1) == 1 {
			http.Error(w, "flaky", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"ok": true}`))
	}))
	defer server.Close()

	l, err := New()
	require.NoError(t, err)

	_, err = l.Load(server.URL)
	require.Error(t, err, "First load should fail")

	doc, err := l.Load(server.URL)
	require.NoError(t, err, "Second load should retry and succeed")
	m, ok := doc.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, true, m["ok"])
	assert.Equal(t, int32(2), calls.Load())
}

func TestStoreSeedsCache(t *testing.T) {
	l, err := New()
	require.NoError(t, err)

	seeded := map[string]any{"seeded": true}
	l.Store("http://nonexistent.invalid/doc.json", seeded)

	doc, err := l.Load("http://nonexistent.invalid/doc.json")
	require.NoError(t, err, "Seeded document should load without a fetch")
	assert.Equal(t, seeded, doc)

	// Fragments share the fragment-free cache entry
	doc, err = l.Load("http://nonexistent.invalid/doc.json#/seeded")
	require.NoError(t, err)
	assert.Equal(t, seeded, doc)
}

func TestClearCache(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{}`))
	}))
	defer server.Close()

	l, err := New()
	require.NoError(t, err)

	_, err = l.Load(server.URL)
	require.NoError(t, err)
	l.ClearCache()
	_, err = l.Load(server.URL)
	require.NoError(t, err)
	assert.Equal(t, int32(2), calls.Load(), "Expected a fresh fetch after ClearCache")
}

func TestConcurrentLoadsCoalesce(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		time.Sleep(50 * time.Millisecond)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"shared": true}`))
	}))
	defer server.Close()

	l, err := New()
	require.NoError(t, err)

	var wg sync.WaitGroup
	for range 10 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			doc, loadErr := l.Load(server.URL)
			assert.NoError(t, loadErr)
			m, ok := doc.(map[string]any)
			if assert.True(t, ok) {
				assert.Equal(t, true, m["shared"])
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, int32(1), calls.Load(), "Concurrent loads of one URI should share a single fetch")
}

func TestLoadFuncAdapter(t *testing.T) {
	path := writeTempFile(t, "doc.json", `{"via": "func"}`)

	l, err := New()
	require.NoError(t, err)

	fn := l.LoadFunc()
	doc, err := fn(path)
	require.NoError(t, err)
	m, ok := doc.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "func", m["via"])
}

func TestDetectFormat(t *testing.T) {
	cases := []struct {
		name        string
		uri         string
		contentType string
		data        string
		want        format
	}{
		{"json extension", "schemas/pet.json", "", "count: 1", formatJSON},
		{"yaml extension", "schemas/pet.yaml", "", `{"a": 1}`, formatYAML},
		{"yml extension", "schemas/pet.yml", "", `{"a": 1}`, formatYAML},
		{"url path extension", "https://example.com/pet.json?v=2", "", "", formatJSON},
		{"json content type", "https://example.com/pet", "application/json; charset=utf-8", "", formatJSON},
		{"schema json content type", "https://example.com/pet", "application/schema+json", "", formatJSON},
		{"yaml content type", "https://example.com/pet", "text/yaml", "", formatYAML},
		{"object content sniff", "https://example.com/pet", "text/plain", `{"a": 1}`, formatJSON},
		{"array content sniff", "https://example.com/pet", "", "\n\t [1, 2]", formatJSON},
		{"yaml content fallback", "https://example.com/pet", "", "a: 1", formatYAML},
		{"extension beats content type", "pet.yaml", "application/json", "", formatYAML},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := detectFormat(tc.uri, tc.contentType, []byte(tc.data))
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestCacheKey(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"http://example.com/doc.json", "http://example.com/doc.json"},
		{"http://example.com/doc.json#/a/b", "http://example.com/doc.json"},
		{"doc.json#frag", "doc.json"},
		{"#/local/only", ""},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, cacheKey(tc.in), "cacheKey(%q)", tc.in)
	}
}
