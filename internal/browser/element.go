package browser

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// htmlElement wraps a goquery selection as a read-only Element.
type htmlElement struct {
	sel *goquery.Selection
}

// NewElement wraps a goquery selection. Exported so fixture-backed test
// pages share the exact text/attribute semantics of the real browser.
func NewElement(sel *goquery.Selection) Element {
	return htmlElement{sel: sel}
}

// Elements wraps every node of a goquery selection, in document order.
func Elements(sel *goquery.Selection) []Element {
	out := make([]Element, 0, sel.Length())
	sel.Each(func(_ int, s *goquery.Selection) {
		out = append(out, htmlElement{sel: s})
	})
	return out
}

// Text flattens the element to its rendered text. goquery concatenates
// text nodes with no separators, so block children are joined with
// newlines here to match what the browser displays line by line.
func (e htmlElement) Text() string {
	children := e.sel.Children()
	if children.Length() > 0 {
		var lines []string
		children.Each(func(_ int, c *goquery.Selection) {
			if t := strings.TrimSpace(c.Text()); t != "" {
				lines = append(lines, t)
			}
		})
		if len(lines) > 0 {
			return strings.Join(lines, "\n")
		}
	}
	return strings.TrimSpace(e.sel.Text())
}

func (e htmlElement) Attr(name string) string {
	v, _ := e.sel.Attr(name)
	return v
}

func (e htmlElement) Select(selector string) []Element {
	return Elements(e.sel.Find(selector))
}
