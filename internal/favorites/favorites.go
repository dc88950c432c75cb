// Package favorites maintains the user's favorited-job list across anonymous
// and authenticated sessions.
package favorites

import (
	"errors"
	"time"

	"github.com/brvagas/jobhub/internal/jobsource"
)

// Favorite is a snapshot copy of the job fields the favorites views need.
// It is a copy, not a reference: the source job is never mutated and later
// changes to it do not propagate here.
type Favorite struct {
	ID         int64                `json:"id"`
	Number     int                  `json:"number"`
	Title      string               `json:"title"`
	Labels     []jobsource.Label    `json:"labels"`
	Repository jobsource.Repository `json:"repository"`
	User       jobsource.Account    `json:"user"`
	CreatedAt  time.Time            `json:"created_at"`
	Comments   int                  `json:"comments"`
}

// Snapshot copies the favorite-relevant fields out of a job.
func Snapshot(job jobsource.Job) Favorite {
	labels := make([]jobsource.Label, len(job.Labels))
	copy(labels, job.Labels)
	return Favorite{
		ID:         job.ID,
		Number:     job.Number,
		Title:      job.Title,
		Labels:     labels,
		Repository: job.Repository,
		User:       job.User,
		CreatedAt:  job.CreatedAt,
		Comments:   job.Comments,
	}
}

// ErrNoDocument indicates the backing store has no favorites stored at all,
// as opposed to an explicitly emptied list.
var ErrNoDocument = errors.New("no favorites document")
