package browser

import (
	"log"
	"time"

	"github.com/playwright-community/playwright-go"
)

// ScrollToLoadMore drives infinite-scroll result lists. Bounded at
// maxScrolls iterations with a fixed pause between each; stops early once
// the page height no longer grows. This is the only retry/backoff loop in
// the system.
func ScrollToLoadMore(page playwright.Page, maxScrolls int, pause time.Duration) {
	previousHeight := -1

	for i := 0; i < maxScrolls; i++ {
		height, err := pageHeight(page)
		if err != nil {
			log.Printf("⚠️ Scroll height read failed: %v", err)
			return
		}
		if height == previousHeight {
			break
		}

		if _, err := page.Evaluate("() => window.scrollBy(0, window.innerHeight)"); err != nil {
			log.Printf("⚠️ Scroll failed: %v", err)
			return
		}
		time.Sleep(pause)
		previousHeight = height
	}

	//back to the top so extraction sees the full list from a known position
	page.Evaluate("() => window.scrollTo(0, 0)")
}

func pageHeight(page playwright.Page) (int, error) {
	result, err := page.Evaluate("() => document.documentElement.scrollHeight")
	if err != nil {
		return 0, err
	}
	switch v := result.(type) {
	case int:
		return v, nil
	case float64:
		return int(v), nil
	default:
		return 0, nil
	}
}
