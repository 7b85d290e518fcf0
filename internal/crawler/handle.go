package crawler

// ElementHandle is the capability the field extractor needs from a rendered
// DOM node. Keeping it this narrow means extraction logic never touches the
// automation library directly: production uses the playwright adapter,
// tests use the static-HTML adapter in dom.go.
type ElementHandle interface {
	// Text returns the concatenated text of the whole subtree,
	// visible or not.
	Text() (string, error)

	// VisibleText returns only as-rendered text (innerText semantics).
	VisibleText() (string, error)

	// Attribute returns the named attribute value, empty if absent.
	Attribute(name string) (string, error)

	// Find resolves a child by selector. Returns nil when nothing matches.
	Find(selector string) (ElementHandle, error)
}

// RawPosting is one posting as extracted from a card, before date
// normalization and validation. Lives only within a single pipeline pass.
type RawPosting struct {
	Title         string
	Company       string
	URL           string
	PostedDateRaw string
	Location      string
}
