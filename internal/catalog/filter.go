package catalog

import (
	"strings"

	"github.com/brvagas/jobhub/internal/jobsource"
)

// Filters holds the five independent filter values. An empty value means
// "no filter" for that dimension.
type Filters struct {
	SearchTerm string
	Technology string
	Modality   string
	Level      string
	Repository string
}

// IsZero reports whether no filter is active.
func (f Filters) IsZero() bool {
	return f == Filters{}
}

// Apply derives the filtered view. It is a pure function of (jobs, filters):
// the five predicates are AND-combined, matching is case-insensitive
// substring containment, and the relative order of surviving jobs is
// preserved. The input slice is never mutated.
func Apply(jobs []jobsource.Job, f Filters) []jobsource.Job {
	if f.IsZero() {
		return jobs
	}

	term := strings.ToLower(f.SearchTerm)

	filtered := make([]jobsource.Job, 0, len(jobs))
	for _, job := range jobs {
		if term != "" {
			title := strings.ToLower(job.Title)
			repo := strings.ToLower(job.Repository.FullName)
			if !strings.Contains(title, term) && !strings.Contains(repo, term) {
				continue
			}
		}
		if f.Technology != "" && !hasLabelContaining(job, f.Technology) {
			continue
		}
		if f.Modality != "" && !hasLabelContaining(job, f.Modality) {
			continue
		}
		if f.Level != "" && !hasLabelContaining(job, f.Level) {
			continue
		}
		if f.Repository != "" &&
			!strings.Contains(strings.ToLower(job.Repository.FullName), strings.ToLower(f.Repository)) {
			continue
		}
		filtered = append(filtered, job)
	}
	return filtered
}

// Stats are the aggregate counts derived from the currently filtered list.
type Stats struct {
	Total  int `json:"total"`
	Remote int `json:"remote"`
	Onsite int `json:"onsite"`
	Hybrid int `json:"hybrid"`
	Junior int `json:"junior"`
	Mid    int `json:"mid"`
	Senior int `json:"senior"`
}

// ComputeStats counts category membership over jobs. Each category matches
// either localized spelling of its label.
func ComputeStats(jobs []jobsource.Job) Stats {
	stats := Stats{Total: len(jobs)}
	for _, job := range jobs {
		if hasLabelContainingAny(job, "remoto", "remote") {
			stats.Remote++
		}
		if hasLabelContainingAny(job, "presencial", "on-site") {
			stats.Onsite++
		}
		if hasLabelContainingAny(job, "híbrido", "hybrid") {
			stats.Hybrid++
		}
		if hasLabelContainingAny(job, "júnior", "junior") {
			stats.Junior++
		}
		if hasLabelContainingAny(job, "pleno", "mid") {
			stats.Mid++
		}
		if hasLabelContainingAny(job, "sênior", "senior") {
			stats.Senior++
		}
	}
	return stats
}
