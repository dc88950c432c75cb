package favorites

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/brvagas/jobhub/internal/jobsource"
	"github.com/brvagas/jobhub/pkg/log"
)

// Write-through timing. Changes are persisted after a short debounce so rapid
// toggles coalesce into one write; a write is skipped inside the guard window
// after a load unless the list changed in between, so freshly-loaded data is
// never clobbered by default state.
const (
	SaveDebounce = 200 * time.Millisecond
	LoadGuard    = time.Second
)

// Synchronizer owns the in-memory favorites list and keeps it written through
// to the active backing store: local device storage for anonymous sessions,
// the remote per-user document for signed-in ones. The in-memory list is
// authoritative for the session; persistence failures are logged and
// swallowed.
type Synchronizer struct {
	mu     sync.Mutex
	local  Repository
	remote Repository
	logger *log.Logger

	list    []Favorite
	uid     string // empty = anonymous
	loading bool

	loadedAt time.Time
	dirty    bool // changed since the last load or persist

	saveTimer *time.Timer
	debounce  time.Duration
	guard     time.Duration
}

// NewSynchronizer creates a synchronizer in the anonymous state. Call
// SetUser (or Load) to populate the list.
func NewSynchronizer(local, remote Repository, logger *log.Logger) *Synchronizer {
	return &Synchronizer{
		local:    local,
		remote:   remote,
		logger:   logger,
		debounce: SaveDebounce,
		guard:    LoadGuard,
	}
}

func (s *Synchronizer) repo() Repository {
	if s.uid == "" {
		return s.local
	}
	return s.remote
}

// SetUser switches the session state and loads the list from the matching
// store. The first sign-in of a user with no remote document migrates any
// local-device list to the remote document and clears the local copy.
func (s *Synchronizer) SetUser(ctx context.Context, uid string) error {
	s.mu.Lock()
	s.stopTimerLocked()
	s.uid = uid
	s.loading = true
	s.mu.Unlock()

	list, err := s.load(ctx, uid)

	s.mu.Lock()
	s.loading = false
	s.list = list
	s.loadedAt = time.Now()
	s.dirty = false
	s.mu.Unlock()

	return err
}

// load resolves the initial list for the session, performing the one-time
// migration when needed. A load failure yields an empty list; the error is
// reported but the session stays usable.
func (s *Synchronizer) load(ctx context.Context, uid string) ([]Favorite, error) {
	if uid == "" {
		list, err := s.local.Load(ctx, "")
		if errors.Is(err, ErrNoDocument) {
			return nil, nil
		}
		if err != nil {
			s.logger.Warn("failed to load local favorites: %v", err)
			return nil, err
		}
		return list, nil
	}

	list, err := s.remote.Load(ctx, uid)
	if err == nil {
		// Remote document present: it is the sole source of truth, local
		// storage is ignored.
		return list, nil
	}
	if !errors.Is(err, ErrNoDocument) {
		s.logger.Warn("failed to load remote favorites: %v", err)
		return nil, err
	}

	// Remote document absent: migrate the local-device list if one exists.
	localList, localErr := s.local.Load(ctx, "")
	if errors.Is(localErr, ErrNoDocument) {
		return nil, nil
	}
	if localErr != nil {
		s.logger.Warn("failed to read local favorites for migration: %v", localErr)
		return nil, localErr
	}

	if err := s.remote.Save(ctx, uid, localList); err != nil {
		s.logger.Warn("favorites migration failed: %v", err)
		return localList, err
	}
	if err := s.local.Clear(ctx, ""); err != nil {
		s.logger.Warn("failed to clear local favorites after migration: %v", err)
	}
	return localList, nil
}

// Toggle removes the job if its id is present, otherwise appends a snapshot
// copy. The in-memory update is synchronous; persistence is scheduled behind
// the debounce window. The job argument is never mutated.
func (s *Synchronizer) Toggle(job jobsource.Job) {
	s.mu.Lock()
	if idx := s.indexOf(job.ID); idx >= 0 {
		s.list = append(s.list[:idx], s.list[idx+1:]...)
	} else {
		s.list = append(s.list, Snapshot(job))
	}
	s.dirty = true
	s.scheduleSaveLocked()
	s.mu.Unlock()
}

// Add appends a snapshot if the id is not already present. Adding a present
// id is a no-op.
func (s *Synchronizer) Add(job jobsource.Job) {
	s.mu.Lock()
	if s.indexOf(job.ID) < 0 {
		s.list = append(s.list, Snapshot(job))
		s.dirty = true
		s.scheduleSaveLocked()
	}
	s.mu.Unlock()
}

// Remove deletes the favorite with the given id, if present.
func (s *Synchronizer) Remove(id int64) {
	s.mu.Lock()
	if idx := s.indexOf(id); idx >= 0 {
		s.list = append(s.list[:idx], s.list[idx+1:]...)
		s.dirty = true
		s.scheduleSaveLocked()
	}
	s.mu.Unlock()
}

// IsFavorite reports membership. It reflects the most recent completed
// toggle immediately, without waiting for persistence.
func (s *Synchronizer) IsFavorite(id int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.indexOf(id) >= 0
}

// Favorites returns a copy of the current list.
func (s *Synchronizer) Favorites() []Favorite {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Favorite, len(s.list))
	copy(out, s.list)
	return out
}

// Loading reports whether the initial load for the current session state is
// still in flight.
func (s *Synchronizer) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

func (s *Synchronizer) indexOf(id int64) int {
	for i, f := range s.list {
		if f.ID == id {
			return i
		}
	}
	return -1
}

func (s *Synchronizer) scheduleSaveLocked() {
	if s.saveTimer != nil {
		s.saveTimer.Stop()
	}
	s.saveTimer = time.AfterFunc(s.debounce, func() {
		s.persist(context.Background())
	})
}

func (s *Synchronizer) stopTimerLocked() {
	if s.saveTimer != nil {
		s.saveTimer.Stop()
		s.saveTimer = nil
	}
}

// persist writes the current list through to the active store. Failures are
// logged and swallowed; the in-memory list stays authoritative for the
// session.
func (s *Synchronizer) persist(ctx context.Context) {
	s.mu.Lock()
	if s.loading {
		s.mu.Unlock()
		return
	}
	if !s.dirty && time.Since(s.loadedAt) < s.guard {
		// Nothing changed since the load; writing now could only clobber
		// freshly-loaded data.
		s.mu.Unlock()
		return
	}
	list := make([]Favorite, len(s.list))
	copy(list, s.list)
	uid := s.uid
	repo := s.repo()
	s.dirty = false
	s.mu.Unlock()

	if err := repo.Save(ctx, uid, list); err != nil {
		s.logger.Warn("failed to persist favorites: %v", err)
	}
}

// Flush forces any pending write immediately. The CLI calls it before
// exiting so the debounce window cannot outlive the process.
func (s *Synchronizer) Flush(ctx context.Context) {
	s.mu.Lock()
	s.stopTimerLocked()
	dirty := s.dirty
	s.mu.Unlock()
	if dirty {
		s.persist(ctx)
	}
}

// Close stops the pending save timer without persisting.
func (s *Synchronizer) Close() {
	s.mu.Lock()
	s.stopTimerLocked()
	s.mu.Unlock()
}
