package printing

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"go.uber.org/zap"
)

const (
	defaultChromeTimeout = 30 * time.Second
	defaultScale         = 1.0
	mmPerInch            = 25.4
)

// ChromedpConfig configures ChromedpRenderer. With an empty RemoteURL a local
// headless Chrome is launched on the first render.
type ChromedpConfig struct {
	DefaultTimeout time.Duration
	RemoteURL      string
	NoSandbox      bool // needed when running as root, e.g. in containers
	Scale          float64
	Logger         *zap.Logger
}

// ChromedpRenderer prints pages through the Chrome DevTools protocol. Each
// render opens its own tab on a shared browser allocator.
type ChromedpRenderer struct {
	config   ChromedpConfig
	logger   *zap.Logger
	allocCtx context.Context
	release  context.CancelFunc
}

func NewChromedpRenderer(cfg *ChromedpConfig) (*ChromedpRenderer, error) {
	var c ChromedpConfig
	if cfg != nil {
		c = *cfg
	}
	if c.DefaultTimeout <= 0 {
		c.DefaultTimeout = defaultChromeTimeout
	}
	if c.Scale <= 0 {
		c.Scale = defaultScale
	}
	if c.Logger == nil {
		c.Logger = zap.NewNop()
	}

	r := &ChromedpRenderer{config: c, logger: c.Logger.Named("chromedp")}
	if c.RemoteURL != "" {
		r.allocCtx, r.release = chromedp.NewRemoteAllocator(context.Background(), c.RemoteURL)
	} else {
		r.allocCtx, r.release = chromedp.NewExecAllocator(context.Background(), allocatorOptions(c.NoSandbox)...)
	}
	return r, nil
}

func allocatorOptions(noSandbox bool) []chromedp.ExecAllocatorOption {
	opts := append([]chromedp.ExecAllocatorOption{}, chromedp.DefaultExecAllocatorOptions[:]...)
	opts = append(opts,
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("disable-extensions", true),
		chromedp.Flag("font-render-hinting", "none"),
	)
	if noSandbox {
		opts = append(opts, chromedp.NoSandbox)
	}
	return opts
}

// Render loads req.HTML into a blank tab and prints it
func (r *ChromedpRenderer) Render(ctx context.Context, req *RenderRequest) (*RenderResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	started := time.Now()

	timeout := req.Timeout
	if timeout <= 0 {
		timeout = r.config.DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	tab, closeTab := chromedp.NewContext(r.allocCtx, chromedp.WithLogf(r.logger.Sugar().Debugf))
	defer closeTab()
	// the tab hangs off the allocator, so the caller deadline is tied in by hand
	defer context.AfterFunc(ctx, closeTab)()

	var pdf []byte
	err := chromedp.Run(tab,
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			tree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(tree.Frame.ID, req.HTML).Do(ctx)
		}),
		chromedp.ActionFunc(func(ctx context.Context) (err error) {
			pdf, _, err = printParams(req, r.config.Scale).Do(ctx)
			return err
		}),
	)
	switch {
	case err != nil && errors.Is(ctx.Err(), context.DeadlineExceeded):
		return nil, NewRenderError(ErrCodeRenderTimeout, fmt.Sprintf("PDF rendering timed out after %v", timeout), err)
	case err != nil && errors.Is(ctx.Err(), context.Canceled):
		return nil, NewRenderError(ErrCodeRenderTimeout, "PDF rendering was cancelled", err)
	case err != nil:
		r.logger.Error("chromedp rendering failed", zap.String("title", req.Title), zap.Error(err))
		return nil, NewRenderError(ErrCodeRenderFailed, "chromedp execution failed", err)
	case len(pdf) == 0:
		return nil, NewRenderError(ErrCodeRenderFailed, "generated PDF is empty", nil)
	}

	elapsed := time.Since(started)
	r.logger.Debug("PDF rendered", zap.String("title", req.Title), zap.Int("bytes", len(pdf)), zap.Duration("elapsed", elapsed))
	return &RenderResult{PDF: pdf, Elapsed: elapsed}, nil
}

// printParams maps paper and margins, given in millimeters, onto the
// inch based DevTools print call. Roll paper follows the page's @page size.
func printParams(req *RenderRequest, scale float64) *page.PrintToPDFParams {
	inches := func(mm int) float64 { return float64(mm) / mmPerInch }
	width, height := req.PaperSize.Dimensions()
	m := req.Margins
	return page.PrintToPDF().
		WithPrintBackground(true).
		WithPaperWidth(inches(width)).
		WithPaperHeight(inches(height)).
		WithMarginTop(inches(m.Top)).
		WithMarginRight(inches(m.Right)).
		WithMarginBottom(inches(m.Bottom)).
		WithMarginLeft(inches(m.Left)).
		WithScale(scale).
		WithPreferCSSPageSize(req.PaperSize.IsReceipt())
}

// Close shuts the browser down
func (r *ChromedpRenderer) Close() error {
	if r.release != nil {
		r.release()
	}
	return nil
}

var _ PDFRenderer = (*ChromedpRenderer)(nil)
