package catalog

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brvagas/jobhub/internal/jobsource"
	"github.com/brvagas/jobhub/pkg/log"
)

// fakeFetcher returns a canned list or error.
type fakeFetcher struct {
	jobs  []jobsource.Job
	err   error
	calls int
}

func (f *fakeFetcher) FetchAll(_ context.Context, _ jobsource.Query) ([]jobsource.Job, *jobsource.PageInfo, error) {
	f.calls++
	return f.jobs, nil, f.err
}

func manyJobs(n int) []jobsource.Job {
	jobs := make([]jobsource.Job, n)
	for i := range jobs {
		jobs[i] = jobsource.Job{
			ID:     int64(i + 1),
			Number: i + 1,
			Title:  fmt.Sprintf("Vaga %d", i+1),
			Labels: labels("Remoto"),
		}
	}
	return jobs
}

func TestRefresh_ReplacesJobs(t *testing.T) {
	fetcher := &fakeFetcher{jobs: sampleJobs()}
	store := NewStore(fetcher, nil, 12)

	require.NoError(t, store.Refresh(context.Background(), jobsource.Query{}))
	assert.Len(t, store.Jobs(), 3)
	assert.False(t, store.Loading())
}

func TestRefresh_FailureKeepsPreviousList(t *testing.T) {
	fetcher := &fakeFetcher{jobs: sampleJobs()}
	store := NewStore(fetcher, nil, 12)
	require.NoError(t, store.Refresh(context.Background(), jobsource.Query{}))

	fetcher.err = errors.New("network down")
	err := store.Refresh(context.Background(), jobsource.Query{})

	assert.Error(t, err)
	assert.Len(t, store.Jobs(), 3, "previous list survives a failed refresh")
	assert.False(t, store.Loading())
}

func TestRefresh_LogsOutcome(t *testing.T) {
	var buf bytes.Buffer
	logger := log.NewWithWriter(log.LevelDebug, &buf)
	fetcher := &fakeFetcher{jobs: sampleJobs()}
	store := NewStore(fetcher, logger, 12)

	require.NoError(t, store.Refresh(context.Background(), jobsource.Query{}))
	assert.Contains(t, buf.String(), "job list refreshed, 3 jobs")

	buf.Reset()
	fetcher.err = errors.New("network down")
	assert.Error(t, store.Refresh(context.Background(), jobsource.Query{}))
	assert.Contains(t, buf.String(), "refresh failed")
	assert.Contains(t, buf.String(), "network down")
}

func TestStats_DerivedFromFilteredList(t *testing.T) {
	store := NewStore(nil, nil, 12)
	store.SetJobs([]jobsource.Job{
		{ID: 1, Labels: labels("Remote", "Senior", "React")},
		{ID: 2, Labels: labels("On-site", "Junior")},
	})

	store.SetModality("Remote")

	filtered := store.Filtered()
	require.Len(t, filtered, 1)
	assert.Equal(t, int64(1), filtered[0].ID)

	stats := store.Stats()
	assert.Equal(t, 1, stats.Total)
	assert.Equal(t, 1, stats.Remote)
}

func TestClearFilters_RestoresFullList(t *testing.T) {
	store := NewStore(nil, nil, 12)
	store.SetJobs(sampleJobs())

	store.SetSearchTerm("react")
	store.SetModality("Remoto")
	store.SetLevel("Sênior")
	require.Len(t, store.Filtered(), 1)

	store.ClearFilters()

	assert.Equal(t, Filters{}, store.Filters())
	assert.Len(t, store.Filtered(), 3)
	assert.Equal(t, 3, store.Stats().Total)
}

func TestPagination_SliceBounds(t *testing.T) {
	store := NewStore(nil, nil, 12)
	store.SetJobs(manyJobs(25))

	view := store.CurrentPage()
	assert.Equal(t, 1, view.Page)
	assert.Equal(t, 3, view.TotalPages)
	assert.Len(t, view.Items, 12)
	assert.Equal(t, 1, view.Start)
	assert.Equal(t, 12, view.End)
	assert.Equal(t, 1, view.Items[0].Number)

	store.GoToPage(3)
	view = store.CurrentPage()
	assert.Len(t, view.Items, 1)
	assert.Equal(t, 25, view.Items[0].Number)
	assert.Equal(t, 25, view.Start)
	assert.Equal(t, 25, view.End)
}

func TestPagination_FilterChangeResetsToPageOne(t *testing.T) {
	store := NewStore(nil, nil, 12)
	store.SetJobs(manyJobs(25))
	store.GoToPage(3)
	require.Equal(t, 3, store.CurrentPage().Page)

	store.SetSearchTerm("Vaga")

	assert.Equal(t, 1, store.CurrentPage().Page)
}

func TestPagination_PageSizeChangeResetsToPageOne(t *testing.T) {
	store := NewStore(nil, nil, 12)
	store.SetJobs(manyJobs(30))
	store.GoToPage(2)

	require.NoError(t, store.SetPageSize(24))

	view := store.CurrentPage()
	assert.Equal(t, 1, view.Page)
	assert.Equal(t, 24, view.PageSize)
	assert.Len(t, view.Items, 24)
}

func TestPagination_InvalidPageSizeRejected(t *testing.T) {
	store := NewStore(nil, nil, 12)
	assert.Error(t, store.SetPageSize(13))
}

func TestPagination_NeverShowsEmptyPageWhileItemsExist(t *testing.T) {
	store := NewStore(nil, nil, 12)
	store.SetJobs(manyJobs(25))
	store.GoToPage(3)

	// Shrinking the data below the current page must clamp, not show an
	// empty page.
	store.SetJobs(manyJobs(5))

	view := store.CurrentPage()
	assert.Equal(t, 1, view.Page)
	assert.Len(t, view.Items, 5)
}

func TestPagination_ClampsOutOfRangeRequests(t *testing.T) {
	store := NewStore(nil, nil, 12)
	store.SetJobs(manyJobs(25))

	store.GoToPage(99)
	assert.Equal(t, 3, store.CurrentPage().Page)

	store.GoToPage(-1)
	assert.Equal(t, 1, store.CurrentPage().Page)
}

func TestNextPrevPage(t *testing.T) {
	store := NewStore(nil, nil, 12)
	store.SetJobs(manyJobs(25))

	store.PrevPage()
	assert.Equal(t, 1, store.CurrentPage().Page)

	store.NextPage()
	assert.Equal(t, 2, store.CurrentPage().Page)

	store.NextPage()
	store.NextPage() // already on the last page
	assert.Equal(t, 3, store.CurrentPage().Page)
}

func TestFindByNumber(t *testing.T) {
	store := NewStore(nil, nil, 12)
	store.SetJobs(sampleJobs())

	job, err := store.FindByNumber(20)
	require.NoError(t, err)
	assert.Equal(t, int64(2), job.ID)

	_, err = store.FindByNumber(999)
	var nf *NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, 999, nf.Number)
}

func TestSubscribe_NotifiedOnChanges(t *testing.T) {
	store := NewStore(nil, nil, 12)

	var calls int
	unsubscribe := store.Subscribe(func() { calls++ })

	store.SetJobs(sampleJobs())
	store.SetModality("Remoto")
	assert.GreaterOrEqual(t, calls, 2)

	before := calls
	unsubscribe()
	store.ClearFilters()
	assert.Equal(t, before, calls, "no notifications after unsubscribe")
}

func TestSearchDebounce_LastTermWins(t *testing.T) {
	store := NewStore(nil, nil, 12)
	store.SetJobs(sampleJobs())
	store.debounce = 20 * time.Millisecond

	store.SetSearchTermDebounced("rea")
	store.SetSearchTermDebounced("react")

	// Before the window expires nothing is applied.
	assert.Equal(t, "", store.Filters().SearchTerm)

	assert.Eventually(t, func() bool {
		return store.Filters().SearchTerm == "react"
	}, time.Second, 5*time.Millisecond)
	assert.Len(t, store.Filtered(), 1)
}

func TestFiltered_MemoizedUntilInputsChange(t *testing.T) {
	store := NewStore(nil, nil, 12)
	store.SetJobs(sampleJobs())

	first := store.Filtered()
	second := store.Filtered()
	assert.Equal(t, &first[0], &second[0], "same backing array while inputs are unchanged")

	store.SetLevel("Pleno")
	third := store.Filtered()
	assert.Len(t, third, 1)
}
