// Loading of the sites.csv source configuration. Each row describes one
// listing page and the selectors that locate posting cards and their fields.
// Site-specific behavior hangs off a Policy tag derived once here, so the
// validator and orchestrator never string-match URLs inline.

package sites

import (
	"encoding/csv"
	"fmt"
	"log"
	"net/url"
	"os"
	"strings"
)

// Policy selects the validation variant applied to a site's postings.
type Policy int

const (
	// PolicyDefault runs the base technology/seniority filter.
	PolicyDefault Policy = iota
	// PolicyGetOnBrd additionally applies the Argentina/remote location table.
	PolicyGetOnBrd
)

// Descriptor is one configured source. Selector strings are opaque; the
// rendering layer interprets them. Immutable once loaded.
type Descriptor struct {
	URL              string
	CardSelector     string
	TitleSelector    string
	DateSelector     string
	LinkSelector     string
	LocationSelector string

	// Policy and ScrollToLoad are derived from the URL host at load time.
	Policy       Policy
	ScrollToLoad bool
}

var columns = []string{"url", "job_card_selector", "title_selector", "date_selector", "link_selector", "location_selector"}

// Load reads and validates the sites CSV. Rows missing a required column are
// skipped with a warning; location_selector may be blank.
func Load(path string) ([]Descriptor, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("could not open sites file %s: %w", path, err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("could not parse sites file %s: %w", path, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("sites file %s is empty", path)
	}

	//map header names to positions so column order does not matter
	index := make(map[string]int)
	for i, name := range records[0] {
		index[strings.TrimSpace(strings.ToLower(name))] = i
	}
	for _, required := range columns[:5] {
		if _, ok := index[required]; !ok {
			return nil, fmt.Errorf("sites file %s is missing column %q", path, required)
		}
	}

	var descriptors []Descriptor
	for _, row := range records[1:] {
		d := Descriptor{
			URL:              field(row, index, "url"),
			CardSelector:     field(row, index, "job_card_selector"),
			TitleSelector:    field(row, index, "title_selector"),
			DateSelector:     field(row, index, "date_selector"),
			LinkSelector:     field(row, index, "link_selector"),
			LocationSelector: field(row, index, "location_selector"),
		}

		if d.URL == "" || d.CardSelector == "" || d.TitleSelector == "" || d.DateSelector == "" || d.LinkSelector == "" {
			log.Printf("⚠️ Skipping incomplete sites row: %v", row)
			continue
		}

		tagSite(&d)
		descriptors = append(descriptors, d)
	}

	log.Printf("📋 Loaded %d site configurations from %s", len(descriptors), path)
	return descriptors, nil
}

func field(row []string, index map[string]int, name string) string {
	i, ok := index[name]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

// tagSite derives per-site behavior from the host once, at load time.
func tagSite(d *Descriptor) {
	host := ""
	if u, err := url.Parse(d.URL); err == nil {
		host = strings.ToLower(u.Hostname())
	}

	if strings.Contains(host, "getonbrd") {
		d.Policy = PolicyGetOnBrd
	}
	if strings.Contains(host, "linkedin") {
		d.ScrollToLoad = true
	}
}
