package database

import (
	"context"
	"sync"
	"time"

	"go-jobradar-crawler/internal/models"
)

// MemoryRepository backs the same uniqueness contract as the Postgres
// repository with a mutex-guarded map. Meant for tests and dry runs.
type MemoryRepository struct {
	mu     sync.Mutex
	nextID int64
	byURL  map[string]models.Job
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		nextID: 1,
		byURL:  make(map[string]models.Job),
	}
}

func (m *MemoryRepository) JobExists(_ context.Context, url string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.byURL[url]
	return ok, nil
}

func (m *MemoryRepository) SaveIfNew(_ context.Context, title, company, url string, postedDate time.Time) (*models.Job, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.byURL[url]; ok {
		return nil, nil
	}

	job := models.Job{
		ID:         m.nextID,
		Title:      title,
		Company:    company,
		URL:        url,
		PostedDate: postedDate,
		FoundAt:    time.Now(),
	}
	m.nextID++
	m.byURL[url] = job
	return &job, nil
}

func (m *MemoryRepository) RecentJobs(_ context.Context, days int) ([]models.Job, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	since := time.Now().AddDate(0, 0, -days)
	var jobs []models.Job
	for _, job := range m.byURL {
		if job.PostedDate.After(since) {
			jobs = append(jobs, job)
		}
	}
	return jobs, nil
}

func (m *MemoryRepository) CountJobs(_ context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return int64(len(m.byURL)), nil
}

func (m *MemoryRepository) DeleteOlderThan(_ context.Context, days int) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	cutoff := time.Now().AddDate(0, 0, -days)
	var removed int64
	for url, job := range m.byURL {
		if job.FoundAt.Before(cutoff) {
			delete(m.byURL, url)
			removed++
		}
	}
	return removed, nil
}
