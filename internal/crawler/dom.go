// Static-HTML implementation of ElementHandle on top of goquery. Used by
// tests to exercise extraction and pipeline logic against fixture markup
// without a live browser.

package crawler

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

type HTMLHandle struct {
	sel *goquery.Selection
}

// ParseCards parses a page and returns one handle per card-selector match.
func ParseCards(pageHTML, cardSelector string) ([]ElementHandle, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(pageHTML))
	if err != nil {
		return nil, fmt.Errorf("could not parse HTML: %w", err)
	}

	var handles []ElementHandle
	doc.Find(cardSelector).Each(func(_ int, s *goquery.Selection) {
		handles = append(handles, &HTMLHandle{sel: s})
	})
	return handles, nil
}

func (h *HTMLHandle) Text() (string, error) {
	if h.sel.Length() == 0 {
		return "", nil
	}
	return subtreeText(h.sel.Get(0), false), nil
}

// VisibleText approximates innerText for static markup: nodes hidden via
// the hidden attribute or an inline display:none are skipped. Layout-based
// visibility needs a real browser; the playwright adapter covers that.
func (h *HTMLHandle) VisibleText() (string, error) {
	if h.sel.Length() == 0 {
		return "", nil
	}
	return subtreeText(h.sel.Get(0), true), nil
}

func (h *HTMLHandle) Attribute(name string) (string, error) {
	value, _ := h.sel.Attr(name)
	return value, nil
}

func (h *HTMLHandle) Find(selector string) (handle ElementHandle, err error) {
	//goquery panics on selectors cascadia cannot compile
	defer func() {
		if r := recover(); r != nil {
			handle = nil
			err = fmt.Errorf("invalid selector %q: %v", selector, r)
		}
	}()

	found := h.sel.Find(selector).First()
	if found.Length() == 0 {
		return nil, nil
	}
	return &HTMLHandle{sel: found}, nil
}

// subtreeText walks the node depth-first. Each text leaf contributes its
// trimmed content; contributions are joined with single spaces.
func subtreeText(n *html.Node, visibleOnly bool) string {
	var parts []string
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		switch child.Type {
		case html.TextNode:
			if trimmed := strings.TrimSpace(child.Data); trimmed != "" {
				parts = append(parts, strings.Join(strings.Fields(trimmed), " "))
			}
		case html.ElementNode:
			if child.Data == "script" || child.Data == "style" {
				continue
			}
			if visibleOnly && nodeHidden(child) {
				continue
			}
			if text := subtreeText(child, visibleOnly); text != "" {
				parts = append(parts, text)
			}
		}
	}
	return strings.Join(parts, " ")
}

func nodeHidden(n *html.Node) bool {
	for _, attr := range n.Attr {
		if attr.Key == "hidden" {
			return true
		}
		if attr.Key == "style" && strings.Contains(strings.ReplaceAll(strings.ToLower(attr.Val), " ", ""), "display:none") {
			return true
		}
	}
	return false
}
