// Package catalog owns the in-memory job list, its filtered views and the
// aggregate statistics derived from them.
package catalog

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/brvagas/jobhub/internal/jobsource"
	"github.com/brvagas/jobhub/pkg/log"
)

// DefaultSearchDebounce decouples free-text input from re-filtering so that
// keystrokes do not each trigger a full pass.
const DefaultSearchDebounce = 300 * time.Millisecond

// PageSizes are the allowed page sizes for the paginated view.
var PageSizes = []int{12, 24, 48}

// NotFoundError indicates that no job carries the requested number. It is an
// empty/not-found state, distinct from a network failure.
type NotFoundError struct {
	Number int
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("job not found: #%d", e.Number)
}

// Fetcher loads the complete job list from the remote source.
type Fetcher interface {
	FetchAll(ctx context.Context, q jobsource.Query) ([]jobsource.Job, *jobsource.PageInfo, error)
}

// PageView is one page of the filtered list.
type PageView struct {
	Items      []jobsource.Job
	Page       int
	TotalPages int
	PageSize   int
	Start      int // 1-based index of the first shown item
	End        int // 1-based index of the last shown item
}

// Store is the single owner of the fetched job list. It derives the filtered
// view and the statistics lazily, recomputing only when the jobs or a filter
// value change, and pages the filtered view. All methods are safe for
// concurrent use; consumers observe changes through Subscribe.
type Store struct {
	mu      sync.Mutex
	fetcher Fetcher
	logger  *log.Logger

	jobs    []jobsource.Job
	filters Filters
	loading bool

	dirty    bool
	filtered []jobsource.Job
	stats    Stats

	page     int
	pageSize int

	debounce    time.Duration
	searchTimer *time.Timer

	subs    map[int]func()
	nextSub int
}

// NewStore creates an empty store paging at pageSize (falls back to 12 when
// the size is not one of PageSizes).
func NewStore(fetcher Fetcher, logger *log.Logger, pageSize int) *Store {
	if !validPageSize(pageSize) {
		pageSize = PageSizes[0]
	}
	return &Store{
		fetcher:  fetcher,
		logger:   logger,
		page:     1,
		pageSize: pageSize,
		debounce: DefaultSearchDebounce,
		subs:     make(map[int]func()),
	}
}

func validPageSize(size int) bool {
	for _, s := range PageSizes {
		if s == size {
			return true
		}
	}
	return false
}

// Refresh fetches the job list and replaces the previous one. On failure the
// previous list is kept and the error is returned for the caller to surface.
func (s *Store) Refresh(ctx context.Context, q jobsource.Query) error {
	s.mu.Lock()
	s.loading = true
	s.mu.Unlock()
	s.notify()

	jobs, _, err := s.fetcher.FetchAll(ctx, q)

	s.mu.Lock()
	s.loading = false
	if err == nil {
		s.jobs = jobs
		s.page = 1
		s.dirty = true
	}
	s.mu.Unlock()
	s.notify()

	if err != nil {
		s.logger.Warn("job list refresh failed, keeping previous list: %v", err)
		return err
	}
	s.logger.Debug("job list refreshed, %d jobs", len(jobs))
	return nil
}

// SetJobs replaces the job list directly. Used to prime the store from a
// cached snapshot when the remote source is unavailable.
func (s *Store) SetJobs(jobs []jobsource.Job) {
	s.mu.Lock()
	s.jobs = jobs
	s.page = 1
	s.dirty = true
	s.mu.Unlock()
	s.notify()
}

// Loading reports whether a refresh is in flight.
func (s *Store) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// Jobs returns the full unfiltered list.
func (s *Store) Jobs() []jobsource.Job {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.jobs
}

// SetSearchTerm applies the free-text filter immediately.
func (s *Store) SetSearchTerm(term string) {
	s.setFilter(func(f *Filters) { f.SearchTerm = term })
}

// SetSearchTermDebounced schedules the free-text filter after the debounce
// window, superseding any pending application.
func (s *Store) SetSearchTermDebounced(term string) {
	s.mu.Lock()
	if s.searchTimer != nil {
		s.searchTimer.Stop()
	}
	s.searchTimer = time.AfterFunc(s.debounce, func() {
		s.SetSearchTerm(term)
	})
	s.mu.Unlock()
}

func (s *Store) SetTechnology(tech string) {
	s.setFilter(func(f *Filters) { f.Technology = tech })
}

func (s *Store) SetModality(modality string) {
	s.setFilter(func(f *Filters) { f.Modality = modality })
}

func (s *Store) SetLevel(level string) {
	s.setFilter(func(f *Filters) { f.Level = level })
}

func (s *Store) SetRepository(repo string) {
	s.setFilter(func(f *Filters) { f.Repository = repo })
}

// ClearFilters resets all five filter values atomically.
func (s *Store) ClearFilters() {
	s.setFilter(func(f *Filters) { *f = Filters{} })
}

// Filters returns the current filter values.
func (s *Store) Filters() Filters {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.filters
}

// setFilter mutates the filter state, resets pagination to page 1 and marks
// the derived views stale.
func (s *Store) setFilter(mutate func(*Filters)) {
	s.mu.Lock()
	before := s.filters
	mutate(&s.filters)
	if s.filters != before {
		s.page = 1
		s.dirty = true
	}
	s.mu.Unlock()
	s.notify()
}

// Filtered returns the filtered view, recomputing it only if jobs or filters
// changed since the last derivation.
func (s *Store) Filtered() []jobsource.Job {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.recompute()
	return s.filtered
}

// Stats returns the aggregate counts for the currently filtered list.
func (s *Store) Stats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.recompute()
	return s.stats
}

// recompute refreshes the memoized filtered view and stats. Callers must
// hold s.mu.
func (s *Store) recompute() {
	if !s.dirty {
		return
	}
	s.filtered = Apply(s.jobs, s.filters)
	s.stats = ComputeStats(s.filtered)
	s.dirty = false

	// A shrinking result set must never leave the view on a page past the
	// end while page 1 has items.
	if total := s.totalPages(); s.page > total {
		s.page = total
	}
	if s.page < 1 {
		s.page = 1
	}
}

func (s *Store) totalPages() int {
	n := (len(s.filtered) + s.pageSize - 1) / s.pageSize
	if n < 1 {
		n = 1
	}
	return n
}

// SetPageSize switches the page size and resets to page 1.
func (s *Store) SetPageSize(size int) error {
	if !validPageSize(size) {
		return fmt.Errorf("page size must be one of %v", PageSizes)
	}
	s.mu.Lock()
	s.pageSize = size
	s.page = 1
	s.mu.Unlock()
	s.notify()
	return nil
}

// GoToPage moves to the given page, clamped into the valid range.
func (s *Store) GoToPage(page int) {
	s.mu.Lock()
	s.recompute()
	if page < 1 {
		page = 1
	}
	if total := s.totalPages(); page > total {
		page = total
	}
	s.page = page
	s.mu.Unlock()
	s.notify()
}

// NextPage advances one page if there is one.
func (s *Store) NextPage() {
	s.mu.Lock()
	s.recompute()
	if s.page < s.totalPages() {
		s.page++
	}
	s.mu.Unlock()
	s.notify()
}

// PrevPage moves back one page if there is one.
func (s *Store) PrevPage() {
	s.mu.Lock()
	s.recompute()
	if s.page > 1 {
		s.page--
	}
	s.mu.Unlock()
	s.notify()
}

// CurrentPage returns the page of the filtered list the view is on.
func (s *Store) CurrentPage() PageView {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.recompute()

	start := (s.page - 1) * s.pageSize
	end := start + s.pageSize
	if end > len(s.filtered) {
		end = len(s.filtered)
	}
	if start > end {
		start = end
	}

	view := PageView{
		Items:      s.filtered[start:end],
		Page:       s.page,
		TotalPages: s.totalPages(),
		PageSize:   s.pageSize,
	}
	if len(view.Items) > 0 {
		view.Start = start + 1
		view.End = end
	}
	return view
}

// FindByNumber locates a job by its stable human-facing number.
func (s *Store) FindByNumber(number int) (jobsource.Job, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, job := range s.jobs {
		if job.Number == number {
			return job, nil
		}
	}
	return jobsource.Job{}, &NotFoundError{Number: number}
}

// Subscribe registers a change callback and returns its unsubscribe func.
// Callbacks run synchronously after each state change, outside the store
// lock.
func (s *Store) Subscribe(fn func()) func() {
	s.mu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}

func (s *Store) notify() {
	s.mu.Lock()
	fns := make([]func(), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.mu.Unlock()

	for _, fn := range fns {
		fn()
	}
}
