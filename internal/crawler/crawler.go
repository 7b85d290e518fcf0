// Crawler renders one configured listing page at a time through playwright
// and turns its cards into RawPostings. Navigation or selector-wait failures
// abort only the current site; a missing card selector counts as zero cards,
// not an error.

package crawler

import (
	"context"
	"fmt"
	"log"
	"time"

	"go-jobradar-crawler/internal/browser"
	"go-jobradar-crawler/internal/sites"
	"go-jobradar-crawler/utils"

	"github.com/playwright-community/playwright-go"
)

const (
	navigationTimeoutMs = 60000
	cardWaitTimeoutMs   = 15000
	maxScrolls          = 5
	scrollPause         = time.Second
)

type Crawler struct {
	manager *browser.Manager
	shots   *utils.ScreenshotDebugger
}

func New(manager *browser.Manager) *Crawler {
	return &Crawler{
		manager: manager,
		shots:   utils.NewScreenshotDebugger(),
	}
}

// ScrapeSite renders the site and extracts one RawPosting per usable card.
func (c *Crawler) ScrapeSite(ctx context.Context, site sites.Descriptor) ([]RawPosting, error) {
	browserCtx, err := c.manager.NewContext()
	if err != nil {
		return nil, fmt.Errorf("could not create browser context: %w", err)
	}
	defer browserCtx.Close()

	page, err := browserCtx.NewPage()
	if err != nil {
		return nil, fmt.Errorf("could not create page: %w", err)
	}

	page.SetExtraHTTPHeaders(map[string]string{
		"Accept-Language": "es-ES,es;q=0.9",
	})

	log.Printf("🌐 Scraping jobs from: %s", site.URL)
	if _, err := page.Goto(site.URL, playwright.PageGotoOptions{
		WaitUntil: playwright.WaitUntilStateDomcontentloaded,
		Timeout:   playwright.Float(navigationTimeoutMs),
	}); err != nil {
		return nil, fmt.Errorf("navigation failed for %s: %w", site.URL, err)
	}

	//give client-side rendering a moment to fill the list
	time.Sleep(3 * time.Second)

	if _, err := page.WaitForSelector(site.CardSelector, playwright.PageWaitForSelectorOptions{
		Timeout: playwright.Float(cardWaitTimeoutMs),
	}); err != nil {
		log.Printf("⚠️ Job cards not found with selector %q on %s", site.CardSelector, site.URL)
		c.shots.CaptureAndLog(page, "no-cards", fmt.Sprintf("No cards matched on %s", site.URL))
		return nil, nil
	}

	if site.ScrollToLoad {
		log.Println("  📜 Scrolling results to load more jobs")
		browser.ScrollToLoadMore(page, maxScrolls, scrollPause)
	}

	cards, err := page.Locator(site.CardSelector).All()
	if err != nil {
		return nil, fmt.Errorf("could not list job cards: %w", err)
	}
	log.Printf("  📦 Found %d job cards on %s", len(cards), site.URL)

	var postings []RawPosting
	seen := make(map[string]bool)
	for _, card := range cards {
		if ctx.Err() != nil {
			return postings, ctx.Err()
		}

		posting, ok := PostingFromCard(&pwHandle{loc: card}, site)
		if !ok {
			continue
		}
		if seen[posting.URL] {
			continue
		}
		seen[posting.URL] = true
		postings = append(postings, posting)
	}

	log.Printf("  ✅ Extracted %d postings from %s", len(postings), site.URL)
	return postings, nil
}

// PostingFromCard extracts the configured fields from one card. Cards
// missing a required field (title, date string, resolvable link) are dropped
// silently: ok=false.
func PostingFromCard(card ElementHandle, site sites.Descriptor) (RawPosting, bool) {
	title := ExtractText(card, site.TitleSelector)
	dateStr := ExtractText(card, site.DateSelector)
	href := ExtractAttribute(card, site.LinkSelector, "href")

	if title == "" || dateStr == "" || href == "" {
		return RawPosting{}, false
	}

	absoluteURL := ResolveURL(site.URL, href)
	if absoluteURL == "" {
		return RawPosting{}, false
	}

	location := ""
	if site.LocationSelector != "" {
		if site.Policy == sites.PolicyGetOnBrd {
			//GetOnBrd renders modality markers in the visible text only;
			//the full subtree carries duplicated tooltip noise
			location = ExtractVisibleText(card, site.LocationSelector)
		} else {
			location = ExtractText(card, site.LocationSelector)
		}
	}

	return RawPosting{
		Title:         title,
		Company:       CompanyFromURL(site.URL),
		URL:           absoluteURL,
		PostedDateRaw: dateStr,
		Location:      location,
	}, true
}
