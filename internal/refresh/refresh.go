// Package refresh wires up the cron job that periodically re-fetches the job
// list and keeps a snapshot cache warm.
package refresh

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/brvagas/jobhub/internal/catalog"
	"github.com/brvagas/jobhub/internal/jobsource"
	"github.com/brvagas/jobhub/pkg/log"
)

// Refresher wraps robfig/cron and manages the refresh loop. The cache is
// optional; without one a failed refresh simply keeps the previous list.
type Refresher struct {
	cron   *cron.Cron
	store  *catalog.Store
	query  jobsource.Query
	cache  *Cache
	logger *log.Logger
	spec   string
}

// New creates a Refresher that fires every interval.
func New(store *catalog.Store, query jobsource.Query, cache *Cache, logger *log.Logger, interval time.Duration) *Refresher {
	return &Refresher{
		cron:   cron.New(cron.WithLogger(cron.DefaultLogger)),
		store:  store,
		query:  query,
		cache:  cache,
		logger: logger,
		spec:   fmt.Sprintf("@every %s", interval),
	}
}

// Start registers the job and starts the scheduler. Also runs one refresh
// immediately so the list is populated without waiting for the first tick.
func (r *Refresher) Start(ctx context.Context) error {
	_, err := r.cron.AddFunc(r.spec, func() {
		r.run(ctx)
	})
	if err != nil {
		return fmt.Errorf("cron.AddFunc: %w", err)
	}

	r.cron.Start()
	r.logger.Info("refresh scheduler started, spec %s", r.spec)

	go r.run(ctx)

	return nil
}

// Stop shuts the scheduler down. Already-running refreshes finish on their
// own.
func (r *Refresher) Stop() {
	r.cron.Stop()
	r.logger.Info("refresh scheduler stopped")
}

func (r *Refresher) run(ctx context.Context) {
	if err := r.store.Refresh(ctx, r.query); err != nil {
		r.logger.Error("refresh failed: %v", err)
		r.primeFromCache(ctx)
		return
	}
	r.snapshot(ctx)
}

// snapshot stores the freshly fetched list so a later outage can degrade to
// stale data instead of an empty list.
func (r *Refresher) snapshot(ctx context.Context) {
	if r.cache == nil {
		return
	}
	if err := r.cache.Store(ctx, r.store.Jobs()); err != nil {
		r.logger.Warn("failed to snapshot job list: %v", err)
	}
}

// primeFromCache fills an empty store from the snapshot after a fatal fetch
// failure. A store that already holds a list keeps it.
func (r *Refresher) primeFromCache(ctx context.Context) {
	if r.cache == nil || len(r.store.Jobs()) > 0 {
		return
	}
	jobs, err := r.cache.Load(ctx)
	if err != nil {
		r.logger.Warn("failed to load job snapshot: %v", err)
		return
	}
	if len(jobs) == 0 {
		return
	}
	r.logger.Info("serving %d jobs from snapshot cache", len(jobs))
	r.store.SetJobs(jobs)
}
