package pipeline

import (
	"context"
	"errors"
	"testing"
	"time"

	"go-jobradar-crawler/internal/crawler"
	"go-jobradar-crawler/internal/database"
	"go-jobradar-crawler/internal/dedup"
	"go-jobradar-crawler/internal/models"
	"go-jobradar-crawler/internal/sites"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fixtureScraper renders static HTML through the same extraction path the
// playwright crawler uses.
type fixtureScraper struct {
	pages map[string]string
	errs  map[string]error
}

func (f *fixtureScraper) ScrapeSite(_ context.Context, site sites.Descriptor) ([]crawler.RawPosting, error) {
	if err := f.errs[site.URL]; err != nil {
		return nil, err
	}

	handles, err := crawler.ParseCards(f.pages[site.URL], site.CardSelector)
	if err != nil {
		return nil, err
	}

	var postings []crawler.RawPosting
	for _, handle := range handles {
		if posting, ok := crawler.PostingFromCard(handle, site); ok {
			postings = append(postings, posting)
		}
	}
	return postings, nil
}

func defaultSite() sites.Descriptor {
	return sites.Descriptor{
		URL:           "https://x.com/jobs",
		CardSelector:  ".card",
		TitleSelector: "h3 a",
		DateSelector:  ".date",
		LinkSelector:  "h3 a",
	}
}

func testOptions() Options {
	return Options{DaysToCheck: 7, SiteDelay: time.Millisecond}
}

func TestRun_EndToEnd(t *testing.T) {
	site := defaultSite()
	scraper := &fixtureScraper{pages: map[string]string{
		site.URL: `
			<div class="card">
				<h3><a href="/jobs/42">Junior Backend Developer</a></h3>
				<span class="date">hace 2 dias</span>
			</div>`,
	}}
	store := database.NewMemoryRepository()

	summary := NewRunner(scraper, store, testOptions()).Run(context.Background(), []sites.Descriptor{site})

	assert.Equal(t, Summary{Found: 1, Saved: 1}, summary)

	jobs, err := store.RecentJobs(context.Background(), 7)
	require.NoError(t, err)
	require.Len(t, jobs, 1)
	assert.Equal(t, "Junior Backend Developer", jobs[0].Title)
	assert.Equal(t, "https://x.com/jobs/42", jobs[0].URL)
	assert.Equal(t, "x", jobs[0].Company)
	assert.WithinDuration(t, time.Now().Add(-48*time.Hour), jobs[0].PostedDate, time.Minute)
}

func TestRun_SecondRunSkipsDuplicate(t *testing.T) {
	site := defaultSite()
	scraper := &fixtureScraper{pages: map[string]string{
		site.URL: `
			<div class="card">
				<h3><a href="/jobs/42">Junior Backend Developer</a></h3>
				<span class="date">hoy</span>
			</div>`,
	}}
	store := database.NewMemoryRepository()
	runner := NewRunner(scraper, store, testOptions())

	first := runner.Run(context.Background(), []sites.Descriptor{site})
	second := runner.Run(context.Background(), []sites.Descriptor{site})

	assert.Equal(t, Summary{Found: 1, Saved: 1}, first)
	assert.Equal(t, Summary{Found: 1, Skipped: 1}, second)
}

func TestRun_SeenCacheShortCircuits(t *testing.T) {
	site := defaultSite()
	scraper := &fixtureScraper{pages: map[string]string{
		site.URL: `
			<div class="card">
				<h3><a href="/jobs/42">Junior Backend Developer</a></h3>
				<span class="date">hoy</span>
			</div>`,
	}}
	cache := dedup.NewSeenCache(t.TempDir(), 30)
	cache.Mark("https://x.com/jobs/42")

	opts := testOptions()
	opts.SeenCache = cache
	store := database.NewMemoryRepository()

	summary := NewRunner(scraper, store, opts).Run(context.Background(), []sites.Descriptor{site})

	assert.Equal(t, Summary{Found: 1, Skipped: 1}, summary)
	count, _ := store.CountJobs(context.Background())
	assert.Zero(t, count)
}

func TestRun_FiltersNonMatchingPostings(t *testing.T) {
	site := defaultSite()
	scraper := &fixtureScraper{pages: map[string]string{
		site.URL: `
			<div class="card">
				<h3><a href="/jobs/1">Marketing Manager</a></h3>
				<span class="date">hoy</span>
			</div>
			<div class="card">
				<h3><a href="/jobs/2">Golang Developer</a></h3>
				<span class="date">hoy</span>
			</div>`,
	}}
	store := database.NewMemoryRepository()

	summary := NewRunner(scraper, store, testOptions()).Run(context.Background(), []sites.Descriptor{site})

	assert.Equal(t, Summary{Found: 2, Saved: 1, Skipped: 1}, summary)
}

func TestRun_GetOnBrdLocationPolicy(t *testing.T) {
	site := sites.Descriptor{
		URL:              "https://www.getonbrd.com/empleos",
		CardSelector:     ".card",
		TitleSelector:    "strong",
		DateSelector:     ".date",
		LinkSelector:     "a",
		LocationSelector: ".location",
		Policy:           sites.PolicyGetOnBrd,
	}
	scraper := &fixtureScraper{pages: map[string]string{
		site.URL: `
			<div class="card">
				<a href="/empleos/1"><strong>Golang Developer</strong></a>
				<span class="date">hoy</span>
				<span class="location">Buenos Aires (Híbrido)</span>
			</div>
			<div class="card">
				<a href="/empleos/2"><strong>Golang Developer</strong></a>
				<span class="date">hoy</span>
				<span class="location">Santiago (Híbrido)</span>
			</div>`,
	}}
	store := database.NewMemoryRepository()

	summary := NewRunner(scraper, store, testOptions()).Run(context.Background(), []sites.Descriptor{site})

	assert.Equal(t, Summary{Found: 2, Saved: 1, Skipped: 1}, summary)

	jobs, err := store.RecentJobs(context.Background(), 7)
	require.NoError(t, err)
	require.Len(t, jobs, 1)
	assert.Equal(t, "https://www.getonbrd.com/empleos/1", jobs[0].URL)
}

func TestRun_UnparseableDateGetsIngestionTime(t *testing.T) {
	site := defaultSite()
	scraper := &fixtureScraper{pages: map[string]string{
		site.URL: `
			<div class="card">
				<h3><a href="/jobs/9">Junior Golang Developer</a></h3>
				<span class="date">publicado recientemente</span>
			</div>`,
	}}
	store := database.NewMemoryRepository()

	summary := NewRunner(scraper, store, testOptions()).Run(context.Background(), []sites.Descriptor{site})

	assert.Equal(t, Summary{Found: 1, Saved: 1}, summary)

	jobs, err := store.RecentJobs(context.Background(), 7)
	require.NoError(t, err)
	require.Len(t, jobs, 1)
	assert.WithinDuration(t, time.Now(), jobs[0].PostedDate, time.Minute)
}

func TestRun_OldPostingsSkipped(t *testing.T) {
	site := defaultSite()
	scraper := &fixtureScraper{pages: map[string]string{
		site.URL: `
			<div class="card">
				<h3><a href="/jobs/7">Golang Developer</a></h3>
				<span class="date">hace 3 semanas</span>
			</div>`,
	}}
	store := database.NewMemoryRepository()

	summary := NewRunner(scraper, store, testOptions()).Run(context.Background(), []sites.Descriptor{site})

	assert.Equal(t, Summary{Found: 1, Skipped: 1}, summary)
}

func TestRun_SiteFailureIsolated(t *testing.T) {
	broken := defaultSite()
	working := defaultSite()
	working.URL = "https://y.com/jobs"

	scraper := &fixtureScraper{
		pages: map[string]string{
			working.URL: `
				<div class="card">
					<h3><a href="/jobs/1">Golang Developer</a></h3>
					<span class="date">hoy</span>
				</div>`,
		},
		errs: map[string]error{broken.URL: errors.New("navigation timeout")},
	}
	store := database.NewMemoryRepository()

	summary := NewRunner(scraper, store, testOptions()).Run(context.Background(), []sites.Descriptor{broken, working})

	//the broken site counts one error, the second site still saves
	assert.Equal(t, Summary{Found: 1, Saved: 1, Errors: 1}, summary)
}

type failingStore struct{}

func (failingStore) SaveIfNew(context.Context, string, string, string, time.Time) (*models.Job, error) {
	return nil, errors.New("connection reset")
}

func TestRun_StoreFailureCountsError(t *testing.T) {
	site := defaultSite()
	scraper := &fixtureScraper{pages: map[string]string{
		site.URL: `
			<div class="card">
				<h3><a href="/jobs/1">Golang Developer</a></h3>
				<span class="date">hoy</span>
			</div>`,
	}}

	summary := NewRunner(scraper, failingStore{}, testOptions()).Run(context.Background(), []sites.Descriptor{site})

	assert.Equal(t, Summary{Found: 1, Errors: 1}, summary)
}
