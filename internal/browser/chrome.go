package browser

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/chromedp/chromedp"
)

// Pool owns one headless Chrome process shared by all venue scrapes and
// hands out isolated tabs. Venues never share a tab, so one venue's
// navigation state cannot leak into another's.
type Pool struct {
	allocCtx context.Context
	cancel   context.CancelFunc
}

// NewPool launches the Chrome allocator. The extra flags keep Chrome
// alive in minimal container environments.
func NewPool(headless bool) *Pool {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", headless),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("disable-software-rasterizer", true),
	)
	allocCtx, cancel := chromedp.NewExecAllocator(context.Background(), opts...)
	return &Pool{allocCtx: allocCtx, cancel: cancel}
}

// NewPage opens a fresh tab.
func (p *Pool) NewPage() Page {
	ctx, cancel := chromedp.NewContext(p.allocCtx)
	return &chromePage{ctx: ctx, cancel: cancel}
}

// Close shuts down the browser process and every open tab.
func (p *Pool) Close() {
	p.cancel()
}

type chromePage struct {
	ctx    context.Context
	cancel context.CancelFunc
}

// run executes chromedp actions on this tab, bounded by the caller's
// deadline. chromedp requires its own context as the base, so the
// caller's deadline is re-applied on top of it.
func (p *chromePage) run(ctx context.Context, actions ...chromedp.Action) error {
	runCtx := p.ctx
	if deadline, ok := ctx.Deadline(); ok {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithDeadline(p.ctx, deadline)
		defer cancel()
	}
	return chromedp.Run(runCtx, actions...)
}

func (p *chromePage) Navigate(ctx context.Context, url string) error {
	if err := p.run(ctx, chromedp.Navigate(url)); err != nil {
		return fmt.Errorf("navigating to %s: %w", url, err)
	}
	return nil
}

func (p *chromePage) WaitVisible(ctx context.Context, selector string) error {
	if err := p.run(ctx, chromedp.WaitVisible(selector, chromedp.ByQuery)); err != nil {
		return fmt.Errorf("waiting for %q: %w", selector, err)
	}
	return nil
}

func (p *chromePage) Sleep(ctx context.Context, d time.Duration) error {
	return p.run(ctx, chromedp.Sleep(d))
}

func (p *chromePage) Click(ctx context.Context, selector string) error {
	if err := p.run(ctx, chromedp.Click(selector, chromedp.ByQuery)); err != nil {
		return fmt.Errorf("clicking %q: %w", selector, err)
	}
	return nil
}

// QueryAll snapshots the rendered document and parses it with goquery, so
// element reads never race further page mutation.
func (p *chromePage) QueryAll(ctx context.Context, selector string) ([]Element, error) {
	var html string
	if err := p.run(ctx, chromedp.OuterHTML("html", &html, chromedp.ByQuery)); err != nil {
		return nil, fmt.Errorf("reading rendered document: %w", err)
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("parsing rendered document: %w", err)
	}
	return Elements(doc.Find(selector)), nil
}

func (p *chromePage) Close() error {
	p.cancel()
	return nil
}
