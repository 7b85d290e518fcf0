// Field extraction over the ElementHandle abstraction. Every function here
// is total: selector misses, detached handles and adapter errors all come
// back as the empty string, and the caller decides whether a missing field
// drops the card.

package crawler

import (
	"net/url"
	"strings"
)

// ExtractText returns the full subtree text under selector, trimmed.
// The recursive concatenation matters: location fields on some boards render
// the interesting part (modality markers) inside nested tooltip spans that a
// first-text-node read would miss.
func ExtractText(card ElementHandle, selector string) string {
	el, err := card.Find(selector)
	if err != nil || el == nil {
		return ""
	}
	text, err := el.Text()
	if err != nil {
		return ""
	}
	return strings.TrimSpace(text)
}

// ExtractVisibleText returns only the as-rendered text under selector.
// Used where hidden duplicate markup would pollute the value.
func ExtractVisibleText(card ElementHandle, selector string) string {
	el, err := card.Find(selector)
	if err != nil || el == nil {
		return ""
	}
	text, err := el.VisibleText()
	if err != nil {
		return ""
	}
	return strings.TrimSpace(text)
}

// ExtractAttribute returns an attribute value. An empty or "." selector
// means the card itself is the target, which lets a card that is itself the
// anchor element reuse its own href.
func ExtractAttribute(card ElementHandle, selector, attribute string) string {
	el := card
	if selector != "" && selector != "." {
		child, err := card.Find(selector)
		if err != nil || child == nil {
			return ""
		}
		el = child
	}
	value, err := el.Attribute(attribute)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(value)
}

// ResolveURL turns an extracted link into an absolute URL against the source
// page. Relative links must never reach the persistence layer; failures
// yield "" so the card gets dropped upstream.
func ResolveURL(base, href string) string {
	if href == "" {
		return ""
	}
	baseURL, err := url.Parse(base)
	if err != nil {
		return ""
	}
	ref, err := url.Parse(href)
	if err != nil {
		return ""
	}
	return baseURL.ResolveReference(ref).String()
}

// CompanyFromURL derives a company label from the source host. A
// low-fidelity fallback for sites without an explicit company field, not a
// real company-name extractor: "https://www.getonbrd.com/..." -> "getonbrd".
func CompanyFromURL(sourceURL string) string {
	u, err := url.Parse(sourceURL)
	if err != nil || u.Hostname() == "" {
		return "Unknown"
	}
	host := strings.TrimPrefix(u.Hostname(), "www.")
	if i := strings.Index(host, "."); i > 0 {
		return host[:i]
	}
	return host
}
