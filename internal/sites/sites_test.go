package sites

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sites.csv")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("could not write temp csv: %v", err)
	}
	return path
}

func TestLoad(t *testing.T) {
	path := writeCSV(t, `url,job_card_selector,title_selector,date_selector,link_selector,location_selector
https://www.getonbrd.com/jobs/programming,.gb-results-list__item,strong,.color-hint,.,span.location
https://x.com/jobs,.card,h3 a,.date,h3 a,
`)

	descriptors, err := Load(path)
	require.NoError(t, err)
	require.Len(t, descriptors, 2)

	gob := descriptors[0]
	assert.Equal(t, "https://www.getonbrd.com/jobs/programming", gob.URL)
	assert.Equal(t, ".gb-results-list__item", gob.CardSelector)
	assert.Equal(t, ".", gob.LinkSelector)
	assert.Equal(t, "span.location", gob.LocationSelector)
	assert.Equal(t, PolicyGetOnBrd, gob.Policy)
	assert.False(t, gob.ScrollToLoad)

	plain := descriptors[1]
	assert.Equal(t, PolicyDefault, plain.Policy)
	assert.Empty(t, plain.LocationSelector)
}

func TestLoad_SkipsIncompleteRows(t *testing.T) {
	path := writeCSV(t, `url,job_card_selector,title_selector,date_selector,link_selector,location_selector
https://x.com/jobs,.card,h3 a,,h3 a,
https://y.com/jobs,.card,h3 a,.date,h3 a,
`)

	descriptors, err := Load(path)
	require.NoError(t, err)
	require.Len(t, descriptors, 1)
	assert.Equal(t, "https://y.com/jobs", descriptors[0].URL)
}

func TestLoad_LinkedInGetsScrollBehavior(t *testing.T) {
	path := writeCSV(t, `url,job_card_selector,title_selector,date_selector,link_selector,location_selector
https://www.linkedin.com/jobs/search?keywords=junior,li.base-search-card__info,h3,time,a.base-card__full-link,
`)

	descriptors, err := Load(path)
	require.NoError(t, err)
	require.Len(t, descriptors, 1)
	assert.True(t, descriptors[0].ScrollToLoad)
	assert.Equal(t, PolicyDefault, descriptors[0].Policy)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.csv"))
	assert.Error(t, err)
}

func TestLoad_MissingColumn(t *testing.T) {
	path := writeCSV(t, `url,job_card_selector,title_selector,link_selector
https://x.com/jobs,.card,h3 a,h3 a
`)
	_, err := Load(path)
	assert.Error(t, err)
}
