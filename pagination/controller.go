// Package pagination walks the pages of one search result set and decides
// when to stop.
//
// Result pages are sorted newest first, so once a page holds an article from
// outside the recency window every later page is older still and is never
// fetched. The sort order is not re-checked; when the site does not honor it
// the collected set comes up short.
package pagination

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/pevans/newsscrape/relevance"
)

// MaxPages is the number of result pages the site serves without a
// subscription.
const MaxPages = 10

// StopReason explains why pagination ended.
type StopReason string

const (
	ReasonNone            StopReason = "NONE"
	ReasonWindowExhausted StopReason = "WINDOW_EXHAUSTED"
	ReasonPageCap         StopReason = "PAGE_CAP"
	ReasonNoResults       StopReason = "NO_RESULTS"
)

// SearchOutcome is what the search step reports before any page is read.
type SearchOutcome struct {
	Success   bool
	NoResults bool
	// PageCounts is the site's own pagination summary, if it showed one.
	PageCounts string
}

// PageFetcher returns the raw articles on one results page. Pages are
// numbered from 1.
type PageFetcher interface {
	FetchPage(ctx context.Context, page int) ([]relevance.RawArticle, error)
}

// ClassifyFunc labels one raw article.
type ClassifyFunc func(relevance.RawArticle) relevance.ClassifiedArticle

// State is the progress of one scrape attempt.
type State struct {
	PageNumber int
	Collected  []relevance.ClassifiedArticle
	Stopped    bool
	StopReason StopReason
	maxPages   int
}

// NewState returns a state positioned on page 1.
func NewState(maxPages int) *State {
	if maxPages <= 0 {
		maxPages = MaxPages
	}
	return &State{PageNumber: 1, StopReason: ReasonNone, maxPages: maxPages}
}

// StopNoResults ends the walk before any page was fetched.
func (s *State) StopNoResults() {
	s.Collected = nil
	s.Stopped = true
	s.StopReason = ReasonNoResults
}

// Advance appends a classified page and moves to the next page or stops.
// It returns true when another page should be fetched.
//
// A page where every article is in the window continues the walk unless it
// was the last allowed page. A page with any article outside the window, or
// with no articles at all, means results have aged past the window.
func (s *State) Advance(page []relevance.ClassifiedArticle) bool {
	if s.Stopped {
		return false
	}

	s.Collected = append(s.Collected, page...)

	if len(page) == 0 || !allInWindow(page) {
		s.Stopped = true
		s.StopReason = ReasonWindowExhausted
		return false
	}

	if s.PageNumber >= s.maxPages {
		s.Stopped = true
		s.StopReason = ReasonPageCap
		return false
	}

	s.PageNumber++
	return true
}

func allInWindow(page []relevance.ClassifiedArticle) bool {
	for _, a := range page {
		if !a.InWindow {
			return false
		}
	}
	return true
}

// Controller drives the fetch, classify, decide loop for one attempt. It
// performs no recovery: a fetch error ends the attempt and is returned as is.
type Controller struct {
	fetcher  PageFetcher
	classify ClassifyFunc
	maxPages int
	logger   *slog.Logger
}

// NewController creates a controller. A nil logger discards output.
func NewController(fetcher PageFetcher, classify ClassifyFunc, logger *slog.Logger) *Controller {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Controller{
		fetcher:  fetcher,
		classify: classify,
		maxPages: MaxPages,
		logger:   logger,
	}
}

// WithMaxPages overrides the page cap.
func (c *Controller) WithMaxPages(n int) *Controller {
	if n > 0 {
		c.maxPages = n
	}
	return c
}

// Paginate walks the result pages for a search that has already run.
func (c *Controller) Paginate(ctx context.Context, search SearchOutcome) (*State, error) {
	state := NewState(c.maxPages)

	if !search.Success || search.NoResults {
		c.logger.Warn("search returned nothing to paginate",
			"no_results", search.NoResults, "success", search.Success)
		state.StopNoResults()
		return state, nil
	}

	if search.PageCounts != "" {
		c.logger.Info("search result pages", "page_counts", search.PageCounts)
	}

	for {
		raws, err := c.fetcher.FetchPage(ctx, state.PageNumber)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch page %d: %w", state.PageNumber, err)
		}

		page := make([]relevance.ClassifiedArticle, 0, len(raws))
		for _, raw := range raws {
			page = append(page, c.classify(raw))
		}

		c.logger.Debug("classified page", "page", state.PageNumber, "articles", len(page))

		if !state.Advance(page) {
			break
		}
	}

	if state.StopReason == ReasonPageCap {
		c.logger.Warn("reached the maximum number of pages", "max_pages", c.maxPages)
	}
	c.logger.Info("pagination stopped",
		"reason", string(state.StopReason),
		"page", state.PageNumber,
		"collected", len(state.Collected))

	return state, nil
}
