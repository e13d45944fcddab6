package printing

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"go.uber.org/zap"
)

// A4 paper dimensions in inches
const (
	a4WidthInches  = 8.27
	a4HeightInches = 11.69
)

// ChromedpRenderer renders HTML to PDF using a headless Chrome instance
type ChromedpRenderer struct {
	logger         *zap.Logger
	defaultTimeout time.Duration

	mu          sync.Mutex
	allocCtx    context.Context
	allocCancel context.CancelFunc
}

// ChromedpOptions configures the renderer
type ChromedpOptions struct {
	// ExecPath is the path to the Chrome binary. Empty uses the default lookup.
	ExecPath string
	// DefaultTimeout is the rendering timeout when the request does not set one
	DefaultTimeout time.Duration
}

// NewChromedpRenderer creates a renderer backed by a shared Chrome allocator.
// The allocator is created lazily on first render so that construction never
// fails when Chrome is absent.
func NewChromedpRenderer(opts ChromedpOptions, logger *zap.Logger) *ChromedpRenderer {
	timeout := opts.DefaultTimeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	allocOpts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.NoSandbox,
		chromedp.DisableGPU,
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("hide-scrollbars", true),
	)
	if opts.ExecPath != "" {
		allocOpts = append(allocOpts, chromedp.ExecPath(opts.ExecPath))
	}

	allocCtx, allocCancel := chromedp.NewExecAllocator(context.Background(), allocOpts...)

	return &ChromedpRenderer{
		logger:         logger,
		defaultTimeout: timeout,
		allocCtx:       allocCtx,
		allocCancel:    allocCancel,
	}
}

// Render converts HTML to an A4 portrait PDF
func (r *ChromedpRenderer) Render(ctx context.Context, req *RenderRequest) (*RenderResult, error) {
	if strings.TrimSpace(req.HTML) == "" {
		return nil, NewRenderError(ErrCodeInvalidHTML, "HTML content is empty", nil)
	}

	timeout := req.Timeout
	if timeout <= 0 {
		timeout = r.defaultTimeout
	}

	r.mu.Lock()
	allocCtx := r.allocCtx
	r.mu.Unlock()
	if allocCtx == nil {
		return nil, NewRenderError(ErrCodeRenderFailed, "renderer is closed", nil)
	}

	tabCtx, tabCancel := chromedp.NewContext(allocCtx)
	defer tabCancel()

	renderCtx, cancel := context.WithTimeout(tabCtx, timeout)
	defer cancel()

	start := time.Now()

	var pdfData []byte
	err := chromedp.Run(renderCtx,
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			frameTree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return fmt.Errorf("get frame tree: %w", err)
			}
			return page.SetDocumentContent(frameTree.Frame.ID, req.HTML).Do(ctx)
		}),
		chromedp.ActionFunc(func(ctx context.Context) error {
			data, _, err := page.PrintToPDF().
				WithPaperWidth(a4WidthInches).
				WithPaperHeight(a4HeightInches).
				WithMarginTop(mmToInches(req.Margins.Top)).
				WithMarginRight(mmToInches(req.Margins.Right)).
				WithMarginBottom(mmToInches(req.Margins.Bottom)).
				WithMarginLeft(mmToInches(req.Margins.Left)).
				WithPrintBackground(true).
				WithPreferCSSPageSize(false).
				Do(ctx)
			if err != nil {
				return err
			}
			pdfData = data
			return nil
		}),
	)

	duration := time.Since(start)

	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			r.logger.Warn("pdf render timed out",
				zap.Duration("timeout", timeout),
				zap.String("title", req.Title))
			return nil, NewRenderError(ErrCodeRenderTimeout,
				fmt.Sprintf("rendering exceeded timeout of %s", timeout), err)
		}
		r.logger.Error("pdf render failed",
			zap.Error(err),
			zap.String("title", req.Title))
		return nil, NewRenderError(ErrCodeRenderFailed, "failed to render PDF", err)
	}

	r.logger.Debug("pdf rendered",
		zap.Duration("duration", duration),
		zap.Int("bytes", len(pdfData)),
		zap.String("title", req.Title))

	return &RenderResult{
		PDFData:        pdfData,
		RenderDuration: duration,
	}, nil
}

// Close shuts down the Chrome allocator
func (r *ChromedpRenderer) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.allocCancel != nil {
		r.allocCancel()
		r.allocCancel = nil
		r.allocCtx = nil
	}
	return nil
}

func mmToInches(mm int) float64 {
	return float64(mm) / 25.4
}
