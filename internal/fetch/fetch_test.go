package fetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestURL(t *testing.T) {
	var gotUA, gotCustom string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		gotCustom = r.Header.Get("X-Board")
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte("<html><body><h1>Backend Engineer</h1></body></html>"))
	}))
	defer server.Close()

	opts := DefaultOptions()
	opts.Headers = map[string]string{"X-Board": "acme"}
	result, err := URL(context.Background(), server.URL, opts)
	require.NoError(t, err)

	assert.Equal(t, server.URL, result.URL)
	assert.Equal(t, http.StatusOK, result.StatusCode)
	assert.Equal(t, "text/html", result.ContentType)
	assert.Contains(t, result.HTML, "<h1>Backend Engineer</h1>")
	assert.Equal(t, DefaultUserAgent, gotUA)
	assert.Equal(t, "acme", gotCustom)
}

func TestURL_NonOKStatusKeepsResult(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer server.Close()

	result, err := URL(context.Background(), server.URL, nil)
	var fetchErr *Error
	require.ErrorAs(t, err, &fetchErr)
	assert.Equal(t, "HTTP status 404", fetchErr.Message)
	require.NotNil(t, result)
	assert.Equal(t, http.StatusNotFound, result.StatusCode)
}

func TestURL_Invalid(t *testing.T) {
	for _, u := range []string{
		"not-a-valid-url",
		"file:///etc/passwd",
		"ftp://example.com/job",
		"javascript:alert(1)",
		"https://",
	} {
		t.Run(u, func(t *testing.T) {
			result, err := URL(context.Background(), u, nil)
			assert.Nil(t, result)
			var fetchErr *Error
			require.ErrorAs(t, err, &fetchErr)
			assert.Contains(t, err.Error(), "invalid URL")
		})
	}
}

func TestURL_CapsBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(strings.Repeat("x", 4096)))
	}))
	defer server.Close()

	result, err := URL(context.Background(), server.URL, &Options{MaxBodyBytes: 100})
	require.NoError(t, err)
	assert.Len(t, result.HTML, 100)
}

func TestURL_CanceledContext(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("ok"))
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := URL(ctx, server.URL, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestExtractMainText(t *testing.T) {
	tests := []struct {
		name      string
		html      string
		selectors []string
		noise     []string
		want      []string
		dropped   []string
	}{
		{
			name: "main element",
			html: `<html><body><nav>Navigation</nav>
				<main><h1>Senior Go Engineer</h1><p>Own the billing pipeline.</p></main>
				<footer>Footer</footer></body></html>`,
			selectors: DefaultTextSelectors(),
			want:      []string{"Senior Go Engineer", "Own the billing pipeline."},
			dropped:   []string{"Navigation", "Footer"},
		},
		{
			name:      "article element",
			html:      `<html><body><article><h1>Platform Team</h1><p>Kubernetes and Go.</p></article></body></html>`,
			selectors: DefaultTextSelectors(),
			want:      []string{"Platform Team", "Kubernetes and Go."},
		},
		{
			name:      "falls back to body",
			html:      `<html><body><div>Remote friendly.</div></body></html>`,
			selectors: DefaultTextSelectors(),
			want:      []string{"Remote friendly."},
		},
		{
			name: "job board selectors skip sidebar",
			html: `<html><body><div class="sidebar">Similar jobs</div>
				<div class="job-description"><h2>Requirements</h2><p>5 years experience in Go</p></div></body></html>`,
			selectors: JobPostingSelectors(),
			want:      []string{"Requirements", "5 years experience in Go"},
			dropped:   []string{"Similar jobs"},
		},
		{
			name: "noise removed inside content",
			html: `<html><body><main><p>Build APIs.</p>
				<div class="eeo-statement">Equal opportunity employer</div></main></body></html>`,
			selectors: DefaultTextSelectors(),
			noise:     []string{"", ".eeo-statement"},
			want:      []string{"Build APIs."},
			dropped:   []string{"Equal opportunity"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			text, err := ExtractMainText(tt.html, tt.selectors, tt.noise...)
			require.NoError(t, err)
			for _, w := range tt.want {
				assert.Contains(t, text, w)
			}
			for _, d := range tt.dropped {
				assert.NotContains(t, text, d)
			}
		})
	}
}

func TestExtractMainText_CompactsLines(t *testing.T) {
	html := "<html><body><main>\n\n   Go   \n\n\t\n  Postgres \n</main></body></html>"
	text, err := ExtractMainText(html, DefaultTextSelectors())
	require.NoError(t, err)
	assert.Equal(t, "Go\nPostgres", text)
}

func TestSelectorSets(t *testing.T) {
	assert.Subset(t, DefaultTextSelectors(), []string{"main", "article"})
	assert.Subset(t, JobPostingSelectors(), []string{".job-description", "#job-content", "main"})
}
