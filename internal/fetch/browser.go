package fetch

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/chromedp/chromedp"
)

// MinContentLength is the fewest characters a plain HTTP extraction may yield
// before the posting is assumed to be rendered client-side.
const MinContentLength = 500

// hydrationDelay is how long a board gets to populate the posting after load.
const hydrationDelay = 2 * time.Second

// ShouldUseBrowser reports whether extractedText is too short to be a real posting.
func ShouldUseBrowser(extractedText string) bool {
	return utf8.RuneCountInString(strings.TrimSpace(extractedText)) < MinContentLength
}

// Browser renders pages in headless Chrome.
type Browser struct {
	ExecPath string        // empty uses chromedp's Chrome lookup
	Timeout  time.Duration // whole render; DefaultTimeout when zero
	Verbose  bool
}

// BrowserRenderer returns a Renderer backed by headless Chrome.
func BrowserRenderer(execPath string, timeout time.Duration, verbose bool) Renderer {
	b := &Browser{ExecPath: execPath, Timeout: timeout, Verbose: verbose}
	return b.Render
}

// WithBrowser renders url once with a throwaway Browser.
func WithBrowser(ctx context.Context, url, execPath string, timeout time.Duration, verbose bool) (string, error) {
	return (&Browser{ExecPath: execPath, Timeout: timeout, Verbose: verbose}).Render(ctx, url)
}

func (b *Browser) allocatorOptions() []chromedp.ExecAllocatorOption {
	opts := append([]chromedp.ExecAllocatorOption{}, chromedp.DefaultExecAllocatorOptions[:]...)
	opts = append(opts,
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.UserAgent(DefaultUserAgent),
	)
	if b.ExecPath != "" {
		opts = append(opts, chromedp.ExecPath(b.ExecPath))
	}
	return opts
}

// Render loads url, waits for the posting to hydrate and returns the page HTML.
func (b *Browser) Render(ctx context.Context, url string) (string, error) {
	timeout := b.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if b.Verbose {
		log.Printf("[BROWSER] Rendering %s (timeout %s)", url, timeout)
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, b.allocatorOptions()...)
	defer cancelAlloc()
	tabCtx, cancelTab := chromedp.NewContext(allocCtx)
	defer cancelTab()
	runCtx, cancelRun := context.WithTimeout(tabCtx, timeout)
	defer cancelRun()

	var html string
	if err := chromedp.Run(runCtx,
		chromedp.Navigate(url),
		chromedp.WaitReady("body"),
		chromedp.Sleep(hydrationDelay),
		chromedp.OuterHTML("html", &html),
	); err != nil {
		return "", fmt.Errorf("browser rendering failed: %w", err)
	}

	if b.Verbose {
		log.Printf("[BROWSER] Rendered %s: %d bytes", url, len(html))
	}
	return html, nil
}
