package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/brvagas/jobhub/internal/jobsource"
)

func sampleJobs() []jobsource.Job {
	return []jobsource.Job{
		{
			ID: 1, Number: 10, Title: "Desenvolvedor React Sênior",
			Labels:     labels("Remoto", "Sênior", "React"),
			Repository: jobsource.Repository{FullName: "empresa/frontend-vagas"},
		},
		{
			ID: 2, Number: 20, Title: "Dev Backend Júnior",
			Labels:     labels("Presencial", "Júnior", "Go"),
			Repository: jobsource.Repository{FullName: "empresa/backend-vagas"},
		},
		{
			ID: 3, Number: 30, Title: "Engenheiro de Dados Pleno",
			Labels:     labels("Híbrido", "Pleno", "Python"),
			Repository: jobsource.Repository{FullName: "outra/data-vagas"},
		},
	}
}

func TestApply_NoFiltersReturnsInputUnchanged(t *testing.T) {
	jobs := sampleJobs()
	got := Apply(jobs, Filters{})

	assert.Equal(t, jobs, got)
}

func TestApply_SearchTermMatchesTitleOrRepository(t *testing.T) {
	jobs := sampleJobs()

	byTitle := Apply(jobs, Filters{SearchTerm: "react"})
	assert.Len(t, byTitle, 1)
	assert.Equal(t, int64(1), byTitle[0].ID)

	byRepo := Apply(jobs, Filters{SearchTerm: "BACKEND"})
	assert.Len(t, byRepo, 1)
	assert.Equal(t, int64(2), byRepo[0].ID)
}

func TestApply_LabelFilters(t *testing.T) {
	jobs := sampleJobs()

	assert.Len(t, Apply(jobs, Filters{Technology: "python"}), 1)
	assert.Len(t, Apply(jobs, Filters{Modality: "Presencial"}), 1)
	assert.Len(t, Apply(jobs, Filters{Level: "pleno"}), 1)
}

func TestApply_RepositoryFilter(t *testing.T) {
	jobs := sampleJobs()

	got := Apply(jobs, Filters{Repository: "empresa"})
	assert.Len(t, got, 2)
}

func TestApply_PredicatesAreANDCombined(t *testing.T) {
	jobs := sampleJobs()

	got := Apply(jobs, Filters{Modality: "Remoto", Level: "Júnior"})
	assert.Empty(t, got)

	got = Apply(jobs, Filters{Modality: "Remoto", Level: "Sênior", Technology: "React"})
	assert.Len(t, got, 1)
}

func TestApply_PreservesRelativeOrder(t *testing.T) {
	jobs := sampleJobs()

	got := Apply(jobs, Filters{Repository: "vagas"})
	assert.Equal(t, []int64{1, 2, 3}, []int64{got[0].ID, got[1].ID, got[2].ID})
}

func TestApply_DoesNotMutateInput(t *testing.T) {
	jobs := sampleJobs()
	_ = Apply(jobs, Filters{SearchTerm: "react"})

	assert.Equal(t, sampleJobs(), jobs)
}

func TestComputeStats(t *testing.T) {
	stats := ComputeStats(sampleJobs())

	assert.Equal(t, 3, stats.Total)
	assert.Equal(t, 1, stats.Remote)
	assert.Equal(t, 1, stats.Onsite)
	assert.Equal(t, 1, stats.Hybrid)
	assert.Equal(t, 1, stats.Junior)
	assert.Equal(t, 1, stats.Mid)
	assert.Equal(t, 1, stats.Senior)
}

func TestComputeStats_CategoriesNeverExceedTotal(t *testing.T) {
	jobs := sampleJobs()
	for _, f := range []Filters{{}, {Modality: "Remoto"}, {SearchTerm: "dev"}} {
		filtered := Apply(jobs, f)
		stats := ComputeStats(filtered)

		assert.Equal(t, len(filtered), stats.Total)
		assert.LessOrEqual(t, stats.Remote, stats.Total)
		assert.LessOrEqual(t, stats.Junior, stats.Total)
		assert.LessOrEqual(t, stats.Senior, stats.Total)
	}
}

func TestComputeStats_EnglishSpellings(t *testing.T) {
	jobs := []jobsource.Job{
		{ID: 1, Labels: labels("Remote", "Senior", "React")},
		{ID: 2, Labels: labels("On-site", "Junior")},
	}

	filtered := Apply(jobs, Filters{Modality: "Remote"})
	assert.Len(t, filtered, 1)
	assert.Equal(t, int64(1), filtered[0].ID)

	stats := ComputeStats(filtered)
	assert.Equal(t, 1, stats.Total)
	assert.Equal(t, 1, stats.Remote)
	assert.Equal(t, 1, stats.Senior)
	assert.Equal(t, 0, stats.Onsite)
}
