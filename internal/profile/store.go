package profile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/brvagas/jobhub/internal/docstore"
	"github.com/brvagas/jobhub/pkg/log"
)

// Patch is a partial profile update. Nil fields are left untouched; non-nil
// fields replace the current value wholesale.
type Patch struct {
	DisplayName     *string
	PhotoURL        *string
	Bio             *string
	Experiences     *[]Experience
	Skills          *[]string
	Technologies    *[]string
	WorkPreferences *WorkPreferences
	ViewedJobs      *[]ViewedJob
}

// Store owns the profile document of the signed-in user. It is remote-only:
// there is no anonymous fallback, and every mutation rewrites the full
// document.
type Store struct {
	docs     docstore.Store
	logger   *log.Logger
	validate *validator.Validate

	mu      sync.Mutex
	uid     string
	profile Profile
	loaded  bool
}

func NewStore(docs docstore.Store, logger *log.Logger) *Store {
	return &Store{
		docs:     docs,
		logger:   logger,
		validate: validator.New(),
	}
}

// Load fetches the document for uid, creating it with defaults seeded from
// the identity user when it does not exist yet.
func (s *Store) Load(ctx context.Context, uid string, seed Seed) error {
	var doc Profile
	raw, err := s.docs.Get(ctx, docstore.CollectionProfiles, uid)
	switch {
	case errors.Is(err, docstore.ErrNotFound):
		doc = newProfile(seed)
		if err := s.write(ctx, uid, doc); err != nil {
			return err
		}
	case err != nil:
		return err
	default:
		if err := json.Unmarshal(raw, &doc); err != nil {
			return fmt.Errorf("decode profile for %s: %w", uid, err)
		}
	}

	s.mu.Lock()
	s.uid = uid
	s.profile = doc
	s.loaded = true
	s.mu.Unlock()
	return nil
}

// Reset drops the in-memory state on sign-out.
func (s *Store) Reset() {
	s.mu.Lock()
	s.uid = ""
	s.profile = Profile{}
	s.loaded = false
	s.mu.Unlock()
}

// Loaded reports whether a profile document is held in memory.
func (s *Store) Loaded() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loaded
}

// Profile returns a copy of the current document.
func (s *Store) Profile() Profile {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.profile.clone()
}

// Update shallow-merges patch into the current profile, stamps lastUpdated
// and writes the entire resulting document back. It reports success; write
// failures are logged, not surfaced, and leave the in-memory state unchanged.
func (s *Store) Update(ctx context.Context, patch Patch) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.updateLocked(ctx, patch)
}

func (s *Store) updateLocked(ctx context.Context, patch Patch) bool {
	if !s.loaded {
		return false
	}

	next := s.profile.clone()
	if patch.DisplayName != nil {
		next.DisplayName = *patch.DisplayName
	}
	if patch.PhotoURL != nil {
		next.PhotoURL = *patch.PhotoURL
	}
	if patch.Bio != nil {
		next.Bio = *patch.Bio
	}
	if patch.Experiences != nil {
		next.Experiences = *patch.Experiences
	}
	if patch.Skills != nil {
		next.Skills = *patch.Skills
	}
	if patch.Technologies != nil {
		next.Technologies = *patch.Technologies
	}
	if patch.WorkPreferences != nil {
		next.WorkPreferences = *patch.WorkPreferences
	}
	if patch.ViewedJobs != nil {
		next.ViewedJobs = *patch.ViewedJobs
	}
	next.LastUpdated = time.Now()

	if err := s.write(ctx, s.uid, next); err != nil {
		s.logger.Warn("failed to persist profile for %s: %v", s.uid, err)
		return false
	}
	s.profile = next
	return true
}

func (s *Store) write(ctx context.Context, uid string, doc Profile) error {
	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode profile for %s: %w", uid, err)
	}
	return s.docs.Set(ctx, docstore.CollectionProfiles, uid, raw)
}

// AddSkill appends skill unless it is already present; adding a duplicate is
// a successful no-op.
func (s *Store) AddSkill(ctx context.Context, skill string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, have := range s.profile.Skills {
		if have == skill {
			return true
		}
	}
	skills := append(append([]string(nil), s.profile.Skills...), skill)
	return s.updateLocked(ctx, Patch{Skills: &skills})
}

func (s *Store) RemoveSkill(ctx context.Context, skill string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	skills := make([]string, 0, len(s.profile.Skills))
	for _, have := range s.profile.Skills {
		if have != skill {
			skills = append(skills, have)
		}
	}
	return s.updateLocked(ctx, Patch{Skills: &skills})
}

// AddTechnology appends technology unless already present.
func (s *Store) AddTechnology(ctx context.Context, technology string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, have := range s.profile.Technologies {
		if have == technology {
			return true
		}
	}
	techs := append(append([]string(nil), s.profile.Technologies...), technology)
	return s.updateLocked(ctx, Patch{Technologies: &techs})
}

func (s *Store) RemoveTechnology(ctx context.Context, technology string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	techs := make([]string, 0, len(s.profile.Technologies))
	for _, have := range s.profile.Technologies {
		if have != technology {
			techs = append(techs, have)
		}
	}
	return s.updateLocked(ctx, Patch{Technologies: &techs})
}

// AddExperience validates exp, assigns it a fresh id and appends it.
func (s *Store) AddExperience(ctx context.Context, exp Experience) (bool, error) {
	if err := s.validate.Struct(exp); err != nil {
		return false, err
	}
	exp.ID = newExperienceID()

	s.mu.Lock()
	defer s.mu.Unlock()
	exps := append(append([]Experience(nil), s.profile.Experiences...), exp)
	return s.updateLocked(ctx, Patch{Experiences: &exps}), nil
}

func (s *Store) RemoveExperience(ctx context.Context, id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	exps := make([]Experience, 0, len(s.profile.Experiences))
	for _, have := range s.profile.Experiences {
		if have.ID != id {
			exps = append(exps, have)
		}
	}
	return s.updateLocked(ctx, Patch{Experiences: &exps})
}

// AddViewedJob records a job view at the front of the history. Re-viewing a
// job moves its entry to the front instead of duplicating it; the history is
// capped at MaxViewedJobs entries.
func (s *Store) AddViewedJob(ctx context.Context, id int64, title string) bool {
	entry := ViewedJob{ID: id, Title: title, ViewedAt: time.Now()}

	s.mu.Lock()
	defer s.mu.Unlock()
	viewed := make([]ViewedJob, 0, len(s.profile.ViewedJobs)+1)
	viewed = append(viewed, entry)
	for _, have := range s.profile.ViewedJobs {
		if have.ID != id {
			viewed = append(viewed, have)
		}
	}
	if len(viewed) > MaxViewedJobs {
		viewed = viewed[:MaxViewedJobs]
	}
	return s.updateLocked(ctx, Patch{ViewedJobs: &viewed})
}

// UpdateWorkPreferences validates and merges prefs into the nested
// preferences struct. Nil slice fields keep their current value.
func (s *Store) UpdateWorkPreferences(ctx context.Context, prefs WorkPreferences) (bool, error) {
	if err := s.validate.Struct(prefs); err != nil {
		return false, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	merged := s.profile.WorkPreferences.clone()
	if prefs.SalaryRange != (SalaryRange{}) {
		merged.SalaryRange = prefs.SalaryRange
	}
	if prefs.Locations != nil {
		merged.Locations = prefs.Locations
	}
	if prefs.Modalities != nil {
		merged.Modalities = prefs.Modalities
	}
	if prefs.JobTypes != nil {
		merged.JobTypes = prefs.JobTypes
	}
	return s.updateLocked(ctx, Patch{WorkPreferences: &merged}), nil
}
