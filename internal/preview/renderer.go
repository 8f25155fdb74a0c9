// Package preview screenshots repainted mail bodies in headless Chrome with
// prefers-color-scheme emulated as dark.
package preview

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/chromedp/cdproto/emulation"
	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
)

const (
	defaultWidth   = 600
	defaultHeight  = 800
	defaultTimeout = 20 * time.Second
)

// Options configures a Renderer.
type Options struct {
	ChromePath string
	// ThumbnailWidth scales screenshots down to at most this width; 0 keeps them full size.
	ThumbnailWidth int
	Timeout        time.Duration
	Logger         *log.Logger
}

// Renderer owns one Chrome allocator shared by all screenshots.
type Renderer struct {
	allocator context.Context
	cancel    context.CancelFunc
	opts      Options
	logger    *log.Logger
}

// New starts an allocator. Chrome itself is launched lazily on first use.
func New(opts Options) *Renderer {
	if opts.Timeout <= 0 {
		opts.Timeout = defaultTimeout
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	allocOpts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("hide-scrollbars", true),
		chromedp.Flag("mute-audio", true),
		chromedp.Flag("no-first-run", true),
		chromedp.Flag("no-default-browser-check", true),
		chromedp.Flag("disable-background-networking", true),
		chromedp.Flag("disable-extensions", true),
		chromedp.Flag("disable-sync", true),
		// mail bodies must not phone home while being rendered
		chromedp.Flag("blink-settings", "imagesEnabled=false"),
	)
	if strings.TrimSpace(opts.ChromePath) != "" {
		allocOpts = append(allocOpts, chromedp.ExecPath(opts.ChromePath))
	}
	allocCtx, cancel := chromedp.NewExecAllocator(context.Background(), allocOpts...)
	return &Renderer{
		allocator: allocCtx,
		cancel:    cancel,
		opts:      opts,
		logger:    opts.Logger,
	}
}

// Close shuts the browser down.
func (r *Renderer) Close() {
	if r.cancel != nil {
		r.cancel()
	}
}

// Screenshot loads html into a blank tab of the given viewport width and
// returns a PNG of the full page, scaled to the thumbnail width if set.
func (r *Renderer) Screenshot(ctx context.Context, html string, width int) ([]byte, error) {
	if width <= 0 {
		width = defaultWidth
	}
	taskCtx, cancelTab := chromedp.NewContext(r.allocator)
	defer cancelTab()

	if ctx != nil {
		var cancel context.CancelFunc
		taskCtx, cancel = context.WithCancel(taskCtx)
		go func() {
			select {
			case <-ctx.Done():
				cancel()
			case <-taskCtx.Done():
			}
		}()
		defer cancel()
	}
	taskCtx, cancelTimeout := context.WithTimeout(taskCtx, r.opts.Timeout)
	defer cancelTimeout()

	start := time.Now()
	var shot []byte
	err := chromedp.Run(taskCtx,
		chromedp.EmulateViewport(int64(width), defaultHeight),
		chromedp.ActionFunc(func(ctx context.Context) error {
			return emulation.SetEmulatedMedia().WithFeatures([]*emulation.MediaFeature{
				{Name: "prefers-color-scheme", Value: "dark"},
			}).Do(ctx)
		}),
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			tree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(tree.Frame.ID, html).Do(ctx)
		}),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.FullScreenshot(&shot, 100),
	)
	if err != nil {
		return nil, fmt.Errorf("preview screenshot: %w", err)
	}
	r.logger.Printf("preview: %d bytes of html -> %d byte png in %s", len(html), len(shot), time.Since(start))
	if r.opts.ThumbnailWidth > 0 {
		return Thumbnail(shot, r.opts.ThumbnailWidth)
	}
	return shot, nil
}
