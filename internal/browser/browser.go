package browser

import (
	"context"
	"time"
)

// Page is one isolated browsing context. All calls honor the deadline on
// the supplied context; a venue scrape owns its page exclusively and must
// Close it on every exit path.
type Page interface {
	// Navigate loads the given URL and waits for the page load event.
	Navigate(ctx context.Context, url string) error
	// WaitVisible blocks until an element matching selector is visible.
	WaitVisible(ctx context.Context, selector string) error
	// Sleep pauses to let client-side rendering settle.
	Sleep(ctx context.Context, d time.Duration) error
	// Click activates the first element matching selector.
	Click(ctx context.Context, selector string) error
	// QueryAll returns all elements currently matching selector, in
	// document order, as a read-only snapshot of the rendered DOM.
	QueryAll(ctx context.Context, selector string) ([]Element, error)
	// Close releases the browsing context.
	Close() error
}

// Element is a read-only view of one rendered DOM element.
type Element interface {
	// Text returns the element's rendered text. Block-level children
	// contribute one line each, matching what a user sees on screen.
	Text() string
	// Attr returns the named attribute, or "" when absent.
	Attr(name string) string
	// Select returns descendant elements matching selector, in document
	// order.
	Select(selector string) []Element
}
