package fetch

import (
	"context"
	"log"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// DefaultCacheTTL is how long a fetched posting is reused.
const DefaultCacheTTL = time.Hour

// SharedFetchTimeout bounds one fetch shared by every caller of a URL, covering the
// plain request and the browser fallback.
const SharedFetchTimeout = 2 * DefaultTimeout

// DefaultMaxPostingChars caps the posting text handed to tailoring.
const DefaultMaxPostingChars = 50000

// Renderer returns the HTML of url after client-side rendering.
type Renderer func(ctx context.Context, url string) (string, error)

// Posting is the text of one job posting.
type Posting struct {
	URL       string
	Text      string
	Platform  Platform
	Rendered  bool // text came from the headless-browser fallback
	FromCache bool
}

// JobFetcherConfig configures a JobFetcher.
type JobFetcherConfig struct {
	Options  *Options
	CacheTTL time.Duration
	MaxChars int
	// Renderer is tried when plain HTTP yields too little text. Nil disables the fallback.
	Renderer Renderer
	Verbose  bool
}

// JobFetcher fetches job postings and keeps their text in an in-memory cache.
// Concurrent requests for the same URL share one fetch.
type JobFetcher struct {
	options  *Options
	ttl      time.Duration
	maxChars int
	render   Renderer
	verbose  bool

	mu      sync.Mutex
	entries map[string]cacheEntry
	group   singleflight.Group
	now     func() time.Time
}

type cacheEntry struct {
	posting Posting
	expires time.Time
}

// NewJobFetcher creates a fetcher. A nil config uses the defaults without a browser fallback.
func NewJobFetcher(cfg *JobFetcherConfig) *JobFetcher {
	if cfg == nil {
		cfg = &JobFetcherConfig{}
	}
	f := &JobFetcher{
		options:  cfg.Options,
		ttl:      cfg.CacheTTL,
		maxChars: cfg.MaxChars,
		render:   cfg.Renderer,
		verbose:  cfg.Verbose,
		entries:  make(map[string]cacheEntry),
		now:      time.Now,
	}
	if f.options == nil {
		f.options = DefaultOptions()
	}
	if f.ttl <= 0 {
		f.ttl = DefaultCacheTTL
	}
	if f.maxChars <= 0 {
		f.maxChars = DefaultMaxPostingChars
	}
	return f
}

// JobDescription returns the posting text at urlStr.
func (f *JobFetcher) JobDescription(ctx context.Context, urlStr string) (*Posting, error) {
	urlStr = strings.TrimSpace(urlStr)
	if p, ok := f.cached(urlStr); ok {
		p.FromCache = true
		return &p, nil
	}

	// The shared fetch outlives any one caller; each caller stops waiting on its
	// own context.
	ch := f.group.DoChan(urlStr, func() (any, error) {
		fetchCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), SharedFetchTimeout)
		defer cancel()
		p, err := f.fetch(fetchCtx, urlStr)
		if err != nil {
			return nil, err
		}
		f.store(p)
		return p, nil
	})
	select {
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		p := res.Val.(Posting)
		return &p, nil
	case <-ctx.Done():
		return nil, &Error{URL: urlStr, Message: "request abandoned", Cause: ctx.Err()}
	}
}

// Invalidate drops urlStr from the cache.
func (f *JobFetcher) Invalidate(urlStr string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.entries, strings.TrimSpace(urlStr))
}

// Len returns the number of cached postings. Expired entries linger until the next
// fetch stores a posting.
func (f *JobFetcher) Len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.entries)
}

func (f *JobFetcher) cached(urlStr string) (Posting, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	e, ok := f.entries[urlStr]
	if !ok {
		return Posting{}, false
	}
	if !f.now().Before(e.expires) {
		delete(f.entries, urlStr)
		return Posting{}, false
	}
	return e.posting, true
}

// store caches p and drops every expired entry.
func (f *JobFetcher) store(p Posting) {
	f.mu.Lock()
	defer f.mu.Unlock()
	now := f.now()
	for key, e := range f.entries {
		if !now.Before(e.expires) {
			delete(f.entries, key)
		}
	}
	f.entries[p.URL] = cacheEntry{posting: p, expires: now.Add(f.ttl)}
}

func (f *JobFetcher) fetch(ctx context.Context, urlStr string) (Posting, error) {
	platform := DetectPlatform(urlStr)
	posting := Posting{URL: urlStr, Platform: platform}

	result, err := URL(ctx, urlStr, f.options)
	if err != nil {
		return posting, err
	}
	text, err := ExtractPosting(result.HTML, platform)
	if err != nil {
		return posting, &Error{URL: urlStr, Message: "failed to extract posting", Cause: err}
	}

	if ShouldUseBrowser(text) && f.render != nil {
		if f.verbose {
			log.Printf("[FETCH] %s yielded %d chars; trying browser", urlStr, len(text))
		}
		html, rerr := f.render(ctx, urlStr)
		if rerr != nil {
			log.Printf("[FETCH] Browser fallback failed for %s: %v", urlStr, rerr)
		} else if rendered, xerr := ExtractPosting(html, platform); xerr == nil && len(rendered) > len(text) {
			text = rendered
			posting.Rendered = true
		}
	}

	if strings.TrimSpace(text) == "" {
		return posting, &Error{URL: urlStr, Message: "no job description text found"}
	}
	posting.Text = truncateRunes(text, f.maxChars)
	if f.verbose {
		log.Printf("[FETCH] %s: %d chars (platform=%s, rendered=%v)", urlStr, len(posting.Text), platform, posting.Rendered)
	}
	return posting, nil
}

// ExtractPosting reduces a job posting page to text using the platform's selectors.
func ExtractPosting(html string, platform Platform) (string, error) {
	return ExtractMainText(html, PlatformContentSelectors(platform), PlatformNoiseSelectors(platform)...)
}

func truncateRunes(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max])
}
