// Package pdf prints laid-out resume documents to PDF through headless Chrome.
package pdf

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"github.com/jonathan/resume-builder/internal/rendering"
)

// DefaultTimeout bounds one print job.
const DefaultTimeout = 30 * time.Second

// ChromeEncoder prints a PDF-target Document's HTML with headless Chrome.
// The page size and margins come from the document's @page rule.
type ChromeEncoder struct {
	ExecPath string // empty uses chromedp's lookup
	Timeout  time.Duration
	Verbose  bool
}

// NewChromeEncoder creates an encoder using the Chrome binary at execPath.
func NewChromeEncoder(execPath string, timeout time.Duration) *ChromeEncoder {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &ChromeEncoder{ExecPath: execPath, Timeout: timeout}
}

// Encode returns the PDF bytes for doc.
func (e *ChromeEncoder) Encode(ctx context.Context, doc *rendering.Document) ([]byte, error) {
	if doc == nil || doc.Target != rendering.TargetPDF {
		return nil, &rendering.RenderError{Message: "pdf encoder needs a document rendered for the pdf target"}
	}
	if doc.HTML == "" {
		return nil, &rendering.RenderError{Message: "document has no HTML to print"}
	}

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
	)
	if e.ExecPath != "" {
		opts = append(opts, chromedp.ExecPath(e.ExecPath))
	}

	allocCtx, cancel := chromedp.NewExecAllocator(ctx, opts...)
	defer cancel()

	browserCtx, cancel := chromedp.NewContext(allocCtx)
	defer cancel()

	timeout := e.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	browserCtx, cancel = context.WithTimeout(browserCtx, timeout)
	defer cancel()

	if e.Verbose {
		log.Printf("[PDF] Printing template %s (%d pages)", doc.TemplateID, len(doc.Pages))
	}

	var out []byte
	err := chromedp.Run(browserCtx,
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			tree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(tree.Frame.ID, doc.HTML).Do(ctx)
		}),
		chromedp.WaitReady("body"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			out, _, err = page.PrintToPDF().
				WithPrintBackground(true).
				WithPreferCSSPageSize(true).
				Do(ctx)
			return err
		}),
	)
	if err != nil {
		return nil, &rendering.RenderError{Message: "pdf printing failed", Cause: fmt.Errorf("chrome: %w", err)}
	}

	if e.Verbose {
		log.Printf("[PDF] Printed %d bytes", len(out))
	}
	return out, nil
}
