package profile

import (
	"time"

	"github.com/google/uuid"
)

// Profile is the full per-user document stored under userProfiles/{uid}.
// Every mutation rewrites the whole document (last write wins, no version
// check).
type Profile struct {
	DisplayName     string          `json:"displayName"`
	PhotoURL        string          `json:"photoURL"`
	Bio             string          `json:"bio"`
	Experiences     []Experience    `json:"experiences"`
	Skills          []string        `json:"skills"`
	Technologies    []string        `json:"technologies"`
	WorkPreferences WorkPreferences `json:"workPreferences"`
	ViewedJobs      []ViewedJob     `json:"viewedJobs"`
	LastUpdated     time.Time       `json:"lastUpdated"`
}

// Experience is one professional-history entry. IDs are assigned on add.
type Experience struct {
	ID          string `json:"id"`
	Title       string `json:"title" validate:"required"`
	Company     string `json:"company" validate:"required"`
	StartDate   string `json:"startDate"`
	EndDate     string `json:"endDate"`
	Current     bool   `json:"current"`
	Description string `json:"description"`
}

// WorkPreferences holds the job-search preferences section of the profile.
type WorkPreferences struct {
	SalaryRange SalaryRange `json:"salaryRange"`
	Locations   []string    `json:"locations"`
	Modalities  []string    `json:"modalities"`
	JobTypes    []string    `json:"jobTypes"`
}

type SalaryRange struct {
	Min int `json:"min"`
	Max int `json:"max" validate:"omitempty,gtefield=Min"`
}

// ViewedJob is one entry of the most-recent-first view history.
type ViewedJob struct {
	ID       int64     `json:"id"`
	Title    string    `json:"title"`
	ViewedAt time.Time `json:"viewedAt"`
}

// MaxViewedJobs caps the view-history length.
const MaxViewedJobs = 50

// Seed carries the identity fields used to initialize a brand-new profile.
type Seed struct {
	DisplayName string
	PhotoURL    string
}

func newProfile(seed Seed) Profile {
	return Profile{
		DisplayName:  seed.DisplayName,
		PhotoURL:     seed.PhotoURL,
		Experiences:  []Experience{},
		Skills:       []string{},
		Technologies: []string{},
		WorkPreferences: WorkPreferences{
			Locations:  []string{},
			Modalities: []string{},
			JobTypes:   []string{},
		},
		ViewedJobs:  []ViewedJob{},
		LastUpdated: time.Now(),
	}
}

func newExperienceID() string {
	return uuid.New().String()
}

// clone returns a copy with independent slice storage so callers cannot
// mutate the store's state through the returned value.
func (p Profile) clone() Profile {
	out := p
	out.Experiences = append([]Experience(nil), p.Experiences...)
	out.Skills = append([]string(nil), p.Skills...)
	out.Technologies = append([]string(nil), p.Technologies...)
	out.ViewedJobs = append([]ViewedJob(nil), p.ViewedJobs...)
	out.WorkPreferences = p.WorkPreferences.clone()
	return out
}

func (w WorkPreferences) clone() WorkPreferences {
	out := w
	out.Locations = append([]string(nil), w.Locations...)
	out.Modalities = append([]string(nil), w.Modalities...)
	out.JobTypes = append([]string(nil), w.JobTypes...)
	return out
}
