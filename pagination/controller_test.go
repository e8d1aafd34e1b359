package pagination

import (
	"context"
	"errors"
	"testing"

	"github.com/pevans/newsscrape/relevance"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeFetcher serves pages from memory and records what was requested.
type fakeFetcher struct {
	pages     map[int][]relevance.RawArticle
	failOn    int
	requested []int
}

func (f *fakeFetcher) FetchPage(_ context.Context, page int) ([]relevance.RawArticle, error) {
	f.requested = append(f.requested, page)
	if f.failOn == page {
		return nil, errors.New("navigation timed out")
	}
	return f.pages[page], nil
}

// classifyByDate treats RawDate "in" as inside the window.
func classifyByDate(raw relevance.RawArticle) relevance.ClassifiedArticle {
	return relevance.ClassifiedArticle{RawArticle: raw, InWindow: raw.RawDate == "in"}
}

func fullPages(n, perPage int) map[int][]relevance.RawArticle {
	pages := make(map[int][]relevance.RawArticle, n)
	for p := 1; p <= n; p++ {
		for i := 0; i < perPage; i++ {
			pages[p] = append(pages[p], relevance.RawArticle{Title: "t", RawDate: "in"})
		}
	}
	return pages
}

// TestPaginate_PageCap verifies ten fully recent pages stop at the cap
func TestPaginate_PageCap(t *testing.T) {
	fetcher := &fakeFetcher{pages: fullPages(12, 3)}
	c := NewController(fetcher, classifyByDate, nil)

	state, err := c.Paginate(context.Background(), SearchOutcome{Success: true})
	require.NoError(t, err)

	assert.True(t, state.Stopped)
	assert.Equal(t, ReasonPageCap, state.StopReason)
	assert.Equal(t, MaxPages, state.PageNumber)
	assert.Len(t, state.Collected, 30)
	assert.Equal(t, []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, fetcher.requested)
}

// TestPaginate_WindowExhausted verifies a stale article on page 3 stops the walk
func TestPaginate_WindowExhausted(t *testing.T) {
	pages := fullPages(5, 2)
	pages[3] = []relevance.RawArticle{
		{Title: "fresh", RawDate: "in"},
		{Title: "stale", RawDate: "out"},
	}
	fetcher := &fakeFetcher{pages: pages}
	c := NewController(fetcher, classifyByDate, nil)

	state, err := c.Paginate(context.Background(), SearchOutcome{Success: true})
	require.NoError(t, err)

	assert.Equal(t, ReasonWindowExhausted, state.StopReason)
	assert.Equal(t, 3, state.PageNumber)
	assert.Len(t, state.Collected, 6, "should keep every article from pages 1-3")
	assert.Equal(t, "stale", state.Collected[5].Title)
	assert.False(t, state.Collected[5].InWindow)
	assert.Equal(t, []int{1, 2, 3}, fetcher.requested)
}

// TestPaginate_NoResults verifies an empty search never fetches a page
func TestPaginate_NoResults(t *testing.T) {
	fetcher := &fakeFetcher{pages: fullPages(2, 1)}
	c := NewController(fetcher, classifyByDate, nil)

	state, err := c.Paginate(context.Background(), SearchOutcome{Success: false, NoResults: true})
	require.NoError(t, err)

	assert.True(t, state.Stopped)
	assert.Equal(t, ReasonNoResults, state.StopReason)
	assert.Empty(t, state.Collected)
	assert.Empty(t, fetcher.requested)
}

// TestPaginate_SearchFailed verifies an unmatched category acts like no results
func TestPaginate_SearchFailed(t *testing.T) {
	fetcher := &fakeFetcher{pages: fullPages(2, 1)}
	c := NewController(fetcher, classifyByDate, nil)

	state, err := c.Paginate(context.Background(), SearchOutcome{Success: false})
	require.NoError(t, err)

	assert.Equal(t, ReasonNoResults, state.StopReason)
	assert.Empty(t, fetcher.requested)
}

// TestPaginate_FetchError verifies errors propagate with no partial state
func TestPaginate_FetchError(t *testing.T) {
	fetcher := &fakeFetcher{pages: fullPages(5, 1), failOn: 2}
	c := NewController(fetcher, classifyByDate, nil)

	state, err := c.Paginate(context.Background(), SearchOutcome{Success: true})

	require.Error(t, err)
	assert.Nil(t, state)
	assert.Contains(t, err.Error(), "page 2")
	assert.Contains(t, err.Error(), "navigation timed out")
}

// TestPaginate_EmptyPage verifies an empty page ends the walk
func TestPaginate_EmptyPage(t *testing.T) {
	pages := fullPages(1, 2)
	fetcher := &fakeFetcher{pages: pages}
	c := NewController(fetcher, classifyByDate, nil)

	state, err := c.Paginate(context.Background(), SearchOutcome{Success: true})
	require.NoError(t, err)

	assert.Equal(t, ReasonWindowExhausted, state.StopReason)
	assert.Len(t, state.Collected, 2)
	assert.Equal(t, []int{1, 2}, fetcher.requested)
}

// TestPaginate_CustomCap verifies WithMaxPages
func TestPaginate_CustomCap(t *testing.T) {
	fetcher := &fakeFetcher{pages: fullPages(5, 1)}
	c := NewController(fetcher, classifyByDate, nil).WithMaxPages(2)

	state, err := c.Paginate(context.Background(), SearchOutcome{Success: true})
	require.NoError(t, err)

	assert.Equal(t, ReasonPageCap, state.StopReason)
	assert.Len(t, state.Collected, 2)
}

// TestStateAdvance_StaleOnCapPage verifies a stale article on the last page
// reports the window, not the cap
func TestStateAdvance_StaleOnCapPage(t *testing.T) {
	s := NewState(1)

	more := s.Advance([]relevance.ClassifiedArticle{{InWindow: false}})

	assert.False(t, more)
	assert.Equal(t, ReasonWindowExhausted, s.StopReason)
}

// TestStateAdvance_AfterStop verifies a stopped state ignores further pages
func TestStateAdvance_AfterStop(t *testing.T) {
	s := NewState(3)
	s.Advance([]relevance.ClassifiedArticle{{InWindow: false}})

	more := s.Advance([]relevance.ClassifiedArticle{{InWindow: true}})

	assert.False(t, more)
	assert.Len(t, s.Collected, 1)
	assert.Equal(t, 1, s.PageNumber)
}

// TestNewState_Defaults verifies the initial state
func TestNewState_Defaults(t *testing.T) {
	s := NewState(0)

	assert.Equal(t, 1, s.PageNumber)
	assert.False(t, s.Stopped)
	assert.Equal(t, ReasonNone, s.StopReason)
	assert.Empty(t, s.Collected)
}
