// Package fetch retrieves job postings by URL and reduces them to plain text for
// tailoring.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

const (
	// DefaultTimeout bounds a single page request.
	DefaultTimeout = 30 * time.Second
	// DefaultMaxBodyBytes caps how much of a page is read.
	DefaultMaxBodyBytes = 5 << 20
	// DefaultUserAgent identifies the fetcher to job boards.
	DefaultUserAgent = "Mozilla/5.0 (compatible; ResumeBuilder/1.0)"
)

// Result is a fetched page.
type Result struct {
	URL         string
	HTML        string
	Text        string
	ContentType string
	StatusCode  int
}

// Error reports a failure to retrieve or read a posting page.
type Error struct {
	URL     string
	Message string
	Cause   error
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("fetch error for %s: %s", e.URL, e.Message)
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Options tunes page requests. Zero values fall back to the package defaults.
type Options struct {
	Timeout      time.Duration
	UserAgent    string
	Headers      map[string]string
	MaxBodyBytes int64
}

// DefaultOptions returns Options populated with the package defaults.
func DefaultOptions() *Options {
	return &Options{
		Timeout:      DefaultTimeout,
		UserAgent:    DefaultUserAgent,
		MaxBodyBytes: DefaultMaxBodyBytes,
	}
}

func (o *Options) bodyLimit() int64 {
	if o.MaxBodyBytes > 0 {
		return o.MaxBodyBytes
	}
	return DefaultMaxBodyBytes
}

func (o *Options) newRequest(ctx context.Context, target string) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, err
	}
	ua := o.UserAgent
	if ua == "" {
		ua = DefaultUserAgent
	}
	req.Header.Set("User-Agent", ua)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")
	for k, v := range o.Headers {
		req.Header.Set(k, v)
	}
	return req, nil
}

// validURL reports whether target is an absolute http(s) URL.
func validURL(target string) (*url.URL, bool) {
	u, err := url.Parse(target)
	if err != nil || u.Host == "" {
		return nil, false
	}
	return u, u.Scheme == "http" || u.Scheme == "https"
}

// URL downloads the page at target. On a non-200 status the partial Result is
// returned alongside the error.
func URL(ctx context.Context, target string, opts *Options) (*Result, error) {
	if opts == nil {
		opts = DefaultOptions()
	}
	fail := func(msg string, cause error) error {
		return &Error{URL: target, Message: msg, Cause: cause}
	}

	if _, ok := validURL(target); !ok {
		return nil, fail("invalid URL", nil)
	}

	req, err := opts.newRequest(ctx, target)
	if err != nil {
		return nil, fail("failed to create request", err)
	}

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	resp, err := (&http.Client{Timeout: timeout}).Do(req)
	if err != nil {
		return nil, fail("HTTP request failed", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, opts.bodyLimit()))
	if err != nil {
		return nil, fail("failed to read response body", err)
	}

	res := &Result{
		URL:         target,
		HTML:        string(body),
		ContentType: resp.Header.Get("Content-Type"),
		StatusCode:  resp.StatusCode,
	}
	if resp.StatusCode != http.StatusOK {
		return res, fail(fmt.Sprintf("HTTP status %d", resp.StatusCode), nil)
	}
	return res, nil
}

// boilerplate is stripped from every page before content selection.
const boilerplate = "nav, footer, header, script, style, noscript, iframe, svg, " +
	".ad, .ads, .advertisement, .sidebar, .cookie-banner, .popup, [role='dialog']"

// ExtractMainText returns the visible text of the first element matching
// contentSelectors, after removing boilerplate and noiseSelectors. The whole body
// is used when no selector matches.
func ExtractMainText(html string, contentSelectors []string, noiseSelectors ...string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", fmt.Errorf("failed to parse HTML: %w", err)
	}

	doc.Find(boilerplate).Remove()
	if noise := strings.Join(nonEmpty(noiseSelectors), ", "); noise != "" {
		doc.Find(noise).Remove()
	}

	content := doc.Find("body")
	for _, sel := range contentSelectors {
		if match := doc.Find(sel); match.Length() > 0 {
			content = match.First()
			break
		}
	}
	return compactLines(content.Text()), nil
}

// DefaultTextSelectors returns content selectors for ordinary article pages.
func DefaultTextSelectors() []string {
	return []string{"main", "article", ".content", "#content", ".main-content", "#main-content"}
}

// JobPostingSelectors returns content selectors common to job boards, falling
// back to the generic article selectors.
func JobPostingSelectors() []string {
	return []string{
		".job-description", "#job-description",
		".job-content", "#job-content",
		".job-details", ".posting-content",
		"[data-testid='job-description']",
		"[itemprop='description']",
		"main", "article", ".content", "#content",
	}
}

func nonEmpty(in []string) []string {
	out := in[:0:0]
	for _, s := range in {
		if strings.TrimSpace(s) != "" {
			out = append(out, s)
		}
	}
	return out
}

// compactLines trims every line and drops the blank ones.
func compactLines(text string) string {
	var b strings.Builder
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)
	}
	return b.String()
}
