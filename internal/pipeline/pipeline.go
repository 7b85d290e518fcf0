// The run orchestrator: drives the crawler over every configured site,
// pushes each extracted posting through date normalization, validation and
// the persistence gate, and tallies the outcome. Failures are absorbed at
// the smallest unit that can take them: a bad card drops the card, a bad
// site moves on to the next site. Only startup belongs to the caller.

package pipeline

import (
	"context"
	"log"
	"time"

	"go-jobradar-crawler/internal/crawler"
	"go-jobradar-crawler/internal/dates"
	"go-jobradar-crawler/internal/dedup"
	"go-jobradar-crawler/internal/filter"
	"go-jobradar-crawler/internal/models"
	"go-jobradar-crawler/internal/sites"
)

// Scraper obtains the raw postings of one site. Satisfied by
// crawler.Crawler; tests substitute fixtures.
type Scraper interface {
	ScrapeSite(ctx context.Context, site sites.Descriptor) ([]crawler.RawPosting, error)
}

// Store is the persistence gate contract. SaveIfNew returns (nil, nil) on a
// duplicate URL.
type Store interface {
	SaveIfNew(ctx context.Context, title, company, url string, postedDate time.Time) (*models.Job, error)
}

// Reporter receives newly saved jobs. Optional.
type Reporter interface {
	SendJob(job models.Job) error
}

type Summary struct {
	Found   int
	Saved   int
	Skipped int
	Errors  int
}

type Options struct {
	//SeenCache short-circuits URLs this machine already gated. Optional.
	SeenCache *dedup.SeenCache
	//Reporter gets each saved job. Optional.
	Reporter Reporter
	//DaysToCheck is the posting-age window. Zero means 7.
	DaysToCheck int
	//SiteDelay is the politeness pause between sites. Zero means 1s.
	SiteDelay time.Duration
}

type Runner struct {
	scraper Scraper
	store   Store
	opts    Options
}

func NewRunner(scraper Scraper, store Store, opts Options) *Runner {
	if opts.DaysToCheck == 0 {
		opts.DaysToCheck = 7
	}
	if opts.SiteDelay == 0 {
		opts.SiteDelay = time.Second
	}
	return &Runner{scraper: scraper, store: store, opts: opts}
}

// Run processes every site sequentially and returns the aggregate counters.
// It never fails: per-site and per-card errors are counted and absorbed.
func (r *Runner) Run(ctx context.Context, descriptors []sites.Descriptor) Summary {
	var summary Summary

	for i, site := range descriptors {
		log.Printf("\n▶️ Processing: %s", site.URL)

		postings, err := r.scraper.ScrapeSite(ctx, site)
		if err != nil {
			log.Printf("❌ Error scraping site %s: %v", site.URL, err)
			summary.Errors++
			continue
		}
		summary.Found += len(postings)

		for _, posting := range postings {
			r.processPosting(ctx, site, posting, &summary)
		}

		//politeness pause toward the remote servers
		if i < len(descriptors)-1 {
			time.Sleep(r.opts.SiteDelay)
		}
	}

	return summary
}

func (r *Runner) processPosting(ctx context.Context, site sites.Descriptor, posting crawler.RawPosting, summary *Summary) {
	postedDate, parsed := dates.Parse(posting.PostedDateRaw)

	//age window applies only when the date actually parsed; unparseable
	//dates fall through to validation and the ingestion-time fallback
	if parsed && !dates.WithinDays(postedDate, r.opts.DaysToCheck) {
		log.Printf("  ⏭ Outside date range: %s (%s)", posting.Title, posting.PostedDateRaw)
		summary.Skipped++
		return
	}

	if !validForSite(site, posting) {
		log.Printf("  ⏭ Does not match filters: %s", posting.Title)
		summary.Skipped++
		return
	}

	if !parsed {
		//observable fallback, not silent data loss
		log.Printf("  ⏱ Unparseable date %q for %q, stamping ingestion time", posting.PostedDateRaw, posting.Title)
		postedDate = time.Now()
	}

	if r.opts.SeenCache != nil && r.opts.SeenCache.IsSeen(posting.URL) {
		log.Printf("  ⏭ Already seen: %s", posting.URL)
		summary.Skipped++
		return
	}

	job, err := r.store.SaveIfNew(ctx, posting.Title, posting.Company, posting.URL, postedDate)
	if err != nil {
		log.Printf("  ❌ Error saving job %q: %v", posting.Title, err)
		summary.Errors++
		return
	}

	if r.opts.SeenCache != nil {
		r.opts.SeenCache.Mark(posting.URL)
	}

	if job == nil {
		log.Printf("  ⏭ Duplicate job skipped: %s", posting.URL)
		summary.Skipped++
		return
	}

	log.Printf("  ✅ Saved: %s (ID: %d)", job.Title, job.ID)
	summary.Saved++

	if r.opts.Reporter != nil {
		if err := r.opts.Reporter.SendJob(*job); err != nil {
			log.Printf("  ⚠️ Failed to report job: %v", err)
		}
	}
}

// validForSite applies the validator variant the descriptor's policy tag
// selects. Level is never supplied from the pipeline, so the seniority
// branch of IsValidJob stays moot on this path.
func validForSite(site sites.Descriptor, posting crawler.RawPosting) bool {
	switch site.Policy {
	case sites.PolicyGetOnBrd:
		return filter.IsValidGetOnBrdJob(posting.Title, posting.Location, "", "")
	default:
		return filter.IsValidJob(posting.Title, "", "")
	}
}
