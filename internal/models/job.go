package models

import (
	"time"
)

// Job is a persisted posting. URL is the identity key: the jobs table
// carries a unique constraint on it and rows are never mutated after insert.
type Job struct {
	ID         int64     `json:"id"`
	Title      string    `json:"title"`
	Company    string    `json:"company"`
	URL        string    `json:"url"`
	PostedDate time.Time `json:"posted_date"`
	FoundAt    time.Time `json:"found_at"`
}
