package crawler

import (
	"github.com/playwright-community/playwright-go"
)

// recursiveTextJS mirrors subtreeText in dom.go for live pages: depth-first
// walk, trimmed text leaves joined by single spaces, hidden nodes included.
const recursiveTextJS = `node => {
	const walk = n => {
		let out = '';
		for (const child of n.childNodes) {
			if (child.nodeType === 3) {
				const trimmed = (child.textContent || '').trim();
				if (trimmed) out += (out ? ' ' : '') + trimmed.replace(/\s+/g, ' ');
			} else if (child.nodeType === 1) {
				const t = walk(child);
				if (t) out += (out ? ' ' : '') + t;
			}
		}
		return out;
	};
	return walk(node) || (node.textContent || '').trim();
}`

// pwHandle adapts a playwright locator to ElementHandle.
type pwHandle struct {
	loc playwright.Locator
}

func (h *pwHandle) Text() (string, error) {
	result, err := h.loc.Evaluate(recursiveTextJS, nil)
	if err != nil {
		return "", err
	}
	if text, ok := result.(string); ok {
		return text, nil
	}
	return "", nil
}

func (h *pwHandle) VisibleText() (string, error) {
	return h.loc.InnerText()
}

func (h *pwHandle) Attribute(name string) (string, error) {
	return h.loc.GetAttribute(name)
}

func (h *pwHandle) Find(selector string) (ElementHandle, error) {
	child := h.loc.Locator(selector).First()
	count, err := child.Count()
	if err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, nil
	}
	return &pwHandle{loc: child}, nil
}
