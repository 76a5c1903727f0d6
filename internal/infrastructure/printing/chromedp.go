package printing

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"go.uber.org/zap"
)

const defaultChromeTimeout = 30 * time.Second

// ChromedpConfig configures the headless Chrome printer
type ChromedpConfig struct {
	// RemoteURL is the DevTools websocket of a running Chrome. Empty launches
	// a local browser.
	RemoteURL string
	Timeout   time.Duration
	// NoSandbox is needed when Chrome runs as root in a container
	NoSandbox bool
	Logger    *zap.Logger
}

// ChromedpRenderer prints HTML to PDF with Chrome
type ChromedpRenderer struct {
	timeout     time.Duration
	logger      *zap.Logger
	allocCtx    context.Context
	allocCancel context.CancelFunc
}

// NewChromedpRenderer prepares the browser allocator. Chrome itself starts
// lazily on the first print.
func NewChromedpRenderer(cfg ChromedpConfig) *ChromedpRenderer {
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultChromeTimeout
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	r := &ChromedpRenderer{timeout: cfg.Timeout, logger: logger}
	if cfg.RemoteURL != "" {
		r.allocCtx, r.allocCancel = chromedp.NewRemoteAllocator(context.Background(), cfg.RemoteURL)
		return r
	}

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.DisableGPU,
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("disable-extensions", true),
		chromedp.Flag("font-render-hinting", "none"),
	)
	if cfg.NoSandbox {
		opts = append(opts, chromedp.NoSandbox)
	}
	r.allocCtx, r.allocCancel = chromedp.NewExecAllocator(context.Background(), opts...)
	return r
}

// RenderHTML prints html on the given paper
func (r *ChromedpRenderer) RenderHTML(ctx context.Context, html string, opts PageOptions) ([]byte, error) {
	if strings.TrimSpace(html) == "" {
		return nil, NewRenderError(ErrCodeInvalidHTML, "HTML content is empty", nil)
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = r.timeout
	}
	start := time.Now()

	tabCtx, cancelTab := chromedp.NewContext(r.allocCtx,
		chromedp.WithLogf(func(format string, args ...any) {
			r.logger.Debug(fmt.Sprintf(format, args...))
		}),
	)
	defer cancelTab()
	tabCtx, cancelTimeout := context.WithTimeout(tabCtx, timeout)
	defer cancelTimeout()
	stop := context.AfterFunc(ctx, cancelTab)
	defer stop()

	params := printParamsFor(opts)
	var pdf []byte
	err := chromedp.Run(tabCtx,
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			tree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(tree.Frame.ID, html).Do(ctx)
		}),
		chromedp.ActionFunc(func(ctx context.Context) error {
			data, _, err := params.Do(ctx)
			pdf = data
			return err
		}),
	)
	if err != nil {
		switch {
		case errors.Is(tabCtx.Err(), context.DeadlineExceeded):
			return nil, NewRenderError(ErrCodeRenderTimeout, fmt.Sprintf("PDF rendering timed out after %v", timeout), err)
		case ctx.Err() != nil:
			return nil, NewRenderError(ErrCodeRenderTimeout, "PDF rendering was cancelled", ctx.Err())
		}
		r.logger.Error("chromedp rendering failed", zap.Error(err))
		return nil, NewRenderError(ErrCodeRenderFailed, "chromedp execution failed", err)
	}
	if len(pdf) == 0 {
		return nil, NewRenderError(ErrCodeRenderFailed, "generated PDF is empty", nil)
	}

	r.logger.Debug("PDF rendered",
		zap.Int("bytes", len(pdf)),
		zap.Duration("duration", time.Since(start)))
	return pdf, nil
}

// Close shuts the browser down
func (r *ChromedpRenderer) Close() error {
	if r.allocCancel != nil {
		r.allocCancel()
	}
	return nil
}

// printParamsFor converts page options to Chrome print parameters, in inches
func printParamsFor(opts PageOptions) *page.PrintToPDFParams {
	p := page.PrintToPDF().
		WithPrintBackground(true).
		WithPaperWidth(mmToInches(opts.WidthMM)).
		WithPaperHeight(mmToInches(opts.HeightMM)).
		WithMarginTop(mmToInches(opts.MarginMM)).
		WithMarginRight(mmToInches(opts.MarginMM)).
		WithMarginBottom(mmToInches(opts.MarginMM)).
		WithMarginLeft(mmToInches(opts.MarginMM)).
		WithLandscape(opts.Landscape)
	if opts.FooterHTML != "" {
		bottom := opts.MarginMM
		if bottom < 10 {
			bottom = 10
		}
		p = p.WithDisplayHeaderFooter(true).
			WithHeaderTemplate("<span></span>").
			WithFooterTemplate(opts.FooterHTML).
			WithMarginBottom(mmToInches(bottom))
	}
	return p
}

func mmToInches(mm float64) float64 {
	return mm / 25.4
}

var _ HTMLRenderer = (*ChromedpRenderer)(nil)
