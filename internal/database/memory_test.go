package database

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Identical URLs must persist exactly once, whatever the other fields say.
func TestMemoryRepository_SaveIfNewIdempotent(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()
	posted := time.Now().Add(-48 * time.Hour)

	first, err := repo.SaveIfNew(ctx, "Junior Backend Developer", "getonbrd", "https://x.com/jobs/42", posted)
	require.NoError(t, err)
	require.NotNil(t, first)
	assert.NotZero(t, first.ID)
	assert.False(t, first.FoundAt.IsZero())

	second, err := repo.SaveIfNew(ctx, "Different Title", "other", "https://x.com/jobs/42", time.Now())
	require.NoError(t, err)
	assert.Nil(t, second)

	count, err := repo.CountJobs(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)
}

func TestMemoryRepository_JobExists(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	exists, err := repo.JobExists(ctx, "https://x.com/jobs/1")
	require.NoError(t, err)
	assert.False(t, exists)

	_, err = repo.SaveIfNew(ctx, "Golang Developer", "x", "https://x.com/jobs/1", time.Now())
	require.NoError(t, err)

	exists, err = repo.JobExists(ctx, "https://x.com/jobs/1")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestMemoryRepository_RecentJobs(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	_, err := repo.SaveIfNew(ctx, "Fresh", "x", "https://x.com/jobs/fresh", time.Now().Add(-24*time.Hour))
	require.NoError(t, err)
	_, err = repo.SaveIfNew(ctx, "Stale", "x", "https://x.com/jobs/stale", time.Now().Add(-30*24*time.Hour))
	require.NoError(t, err)

	jobs, err := repo.RecentJobs(ctx, 7)
	require.NoError(t, err)
	require.Len(t, jobs, 1)
	assert.Equal(t, "Fresh", jobs[0].Title)
}
