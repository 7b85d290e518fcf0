package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go-jobradar-crawler/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const uniqueViolationCode = "23505"

type Repository struct {
	db *pgxpool.Pool
}

func ConnectDB(ctx context.Context, connString string) (*Repository, error) {
	config, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, fmt.Errorf("unable to parse database url: %w", err)
	}

	config.MaxConns = 10
	config.MinConns = 2
	config.MaxConnLifetime = time.Hour

	// IMPORTANT: Supabase connection pooler (PgBouncer in Transaction mode)
	// does not support prepared statements easily. We MUST disable the statement cache.
	config.ConnConfig.DefaultQueryExecMode = pgx.QueryExecModeExec

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("unable to connect to database: %w", err)
	}

	// Ping to ensure connection
	if err := pool.Ping(ctx); err != nil {
		return nil, fmt.Errorf("database unreachable: %w", err)
	}

	return &Repository{db: pool}, nil
}

func (r *Repository) Close() {
	if r.db != nil {
		r.db.Close()
	}
}

// JobExists reports whether a posting with this URL was already persisted.
func (r *Repository) JobExists(ctx context.Context, url string) (bool, error) {
	var id int64
	err := r.db.QueryRow(ctx, "SELECT id FROM jobs WHERE url = $1", url).Scan(&id)
	if err == pgx.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check job existence: %w", err)
	}
	return true, nil
}

// SaveIfNew inserts the posting unless its URL was seen before. Returns
// (nil, nil) on a duplicate. A unique violation racing in between the
// existence check and the insert is also a duplicate, not an error: the gate
// stays idempotent at the cost of one wasted write attempt.
func (r *Repository) SaveIfNew(ctx context.Context, title, company, url string, postedDate time.Time) (*models.Job, error) {
	exists, err := r.JobExists(ctx, url)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, nil
	}

	job := &models.Job{
		Title:      title,
		Company:    company,
		URL:        url,
		PostedDate: postedDate,
	}

	query := `
		INSERT INTO jobs (title, company, url, posted_date)
		VALUES ($1, $2, $3, $4)
		RETURNING id, found_at`

	err = r.db.QueryRow(ctx, query, title, company, url, postedDate).
		Scan(&job.ID, &job.FoundAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to save job: %w", err)
	}

	return job, nil
}

// RecentJobs returns jobs posted within the last N days, newest first.
func (r *Repository) RecentJobs(ctx context.Context, days int) ([]models.Job, error) {
	since := time.Now().AddDate(0, 0, -days)

	rows, err := r.db.Query(ctx,
		"SELECT id, title, company, url, posted_date, found_at FROM jobs WHERE posted_date >= $1 ORDER BY posted_date DESC",
		since)
	if err != nil {
		return nil, fmt.Errorf("failed to query recent jobs: %w", err)
	}
	defer rows.Close()

	var jobs []models.Job
	for rows.Next() {
		var job models.Job
		if err := rows.Scan(&job.ID, &job.Title, &job.Company, &job.URL, &job.PostedDate, &job.FoundAt); err != nil {
			return nil, fmt.Errorf("failed to scan job row: %w", err)
		}
		jobs = append(jobs, job)
	}
	return jobs, rows.Err()
}

func (r *Repository) CountJobs(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.QueryRow(ctx, "SELECT COUNT(*) FROM jobs").Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count jobs: %w", err)
	}
	return count, nil
}

// DeleteOlderThan removes jobs first seen more than N days ago. Used by the
// retention sweep, never by the crawl itself.
func (r *Repository) DeleteOlderThan(ctx context.Context, days int) (int64, error) {
	cutoff := time.Now().AddDate(0, 0, -days)

	tag, err := r.db.Exec(ctx, "DELETE FROM jobs WHERE found_at < $1", cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to delete old jobs: %w", err)
	}
	return tag.RowsAffected(), nil
}
