// Package newsscrape searches a news site for a phrase and topic, keeps the
// articles published within the last few months and exports them to a
// spreadsheet with their images.
package newsscrape

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/pevans/newsscrape/config"
	"github.com/pevans/newsscrape/export"
	"github.com/pevans/newsscrape/history"
	"github.com/pevans/newsscrape/pagination"
	"github.com/pevans/newsscrape/recency"
	"github.com/pevans/newsscrape/relevance"
	"github.com/pevans/newsscrape/retry"
)

// Input validation errors. Both wrap ErrInvalidArgument and are never
// retried.
var (
	ErrInvalidArgument = errors.New("invalid argument")
	ErrEmptyPhrase     = errors.New("search_phrase is required")
)

// SearchDriver runs the site search and selects the topic filter.
type SearchDriver interface {
	Search(ctx context.Context, phrase, category string) (pagination.SearchOutcome, error)
}

// Exporter writes the collected articles of a successful run.
type Exporter interface {
	Export(ctx context.Context, articles []relevance.ClassifiedArticle) (*export.Report, error)
}

// Recorder keeps a record of each run.
type Recorder interface {
	Start(phrase, category string, numMonths int) (*history.Run, error)
	Finish(runID uuid.UUID, outcome history.Outcome) error
}

// Result describes a completed run.
type Result struct {
	RunID      uuid.UUID
	Articles   []relevance.ClassifiedArticle
	InWindow   int
	StopReason pagination.StopReason
	Attempts   int
	Report     *export.Report
}

// Scraper ties the search, pagination, retry and export steps together.
type Scraper struct {
	search     SearchDriver
	pages      pagination.PageFetcher
	exporter   Exporter
	recorder   Recorder
	logger     *slog.Logger
	retryDelay time.Duration
	maxPages   int
	now        func() time.Time
}

// Options holds optional Scraper settings.
type Options struct {
	Recorder   Recorder
	Logger     *slog.Logger
	RetryDelay time.Duration
	MaxPages   int
	Now        func() time.Time
}

// New creates a Scraper. The search driver and page fetcher usually share
// one site session.
func New(search SearchDriver, pages pagination.PageFetcher, exporter Exporter, opts Options) *Scraper {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	maxPages := opts.MaxPages
	if maxPages <= 0 {
		maxPages = pagination.MaxPages
	}

	return &Scraper{
		search:     search,
		pages:      pages,
		exporter:   exporter,
		recorder:   opts.Recorder,
		logger:     logger,
		retryDelay: opts.RetryDelay,
		maxPages:   maxPages,
		now:        now,
	}
}

// Validate checks input before anything touches the site.
func Validate(in config.Input) error {
	if in.SearchPhrase == "" {
		return fmt.Errorf("%w: %w", ErrInvalidArgument, ErrEmptyPhrase)
	}
	if in.NumMonths <= 0 {
		return fmt.Errorf("%w: %w: got %d", ErrInvalidArgument, recency.ErrInvalidMonthCount, in.NumMonths)
	}
	return nil
}

// Run performs one full run: validate, search and paginate under the retry
// budget, then export. When every attempt fails the error wraps
// retry.ErrAborted and nothing is exported.
func (s *Scraper) Run(ctx context.Context, in config.Input) (*Result, error) {
	log := s.logger.With("phrase", in.SearchPhrase, "category", in.NewsCategory, "num_months", in.NumMonths)

	now := s.now()
	if err := Validate(in); err != nil {
		s.recordInvalid(in, err)
		return nil, err
	}

	window, err := recency.NewWindow(in.NumMonths, now)
	if err != nil {
		err = fmt.Errorf("%w: %w", ErrInvalidArgument, err)
		s.recordInvalid(in, err)
		return nil, err
	}
	log.Info("months to consider", "window", window.Strings())

	result := &Result{}
	if run := s.recordStart(in); run != nil {
		result.RunID = run.RunID
	}

	classifier := relevance.NewClassifier(in.SearchPhrase, window, now)
	controller := pagination.NewController(s.pages, classifier.Classify, log).WithMaxPages(s.maxPages)
	runner := retry.NewRunner(s.retryDelay, log)

	state, err := retry.Run(ctx, runner, func(ctx context.Context) (*pagination.State, error) {
		outcome, err := s.search.Search(ctx, in.SearchPhrase, in.NewsCategory)
		if err != nil {
			return nil, fmt.Errorf("search failed: %w", err)
		}
		return controller.Paginate(ctx, outcome)
	})
	result.Attempts = runner.Attempts()
	if err != nil {
		s.recordFinish(result.RunID, history.Outcome{
			Status:   history.StatusAborted,
			Attempts: result.Attempts,
			Err:      err,
		})
		return nil, err
	}

	result.Articles = state.Collected
	result.StopReason = state.StopReason
	result.InWindow = len(relevance.InWindow(state.Collected))
	log.Info("scrape finished",
		"collected", len(result.Articles),
		"in_window", result.InWindow,
		"stop_reason", string(result.StopReason),
		"attempts", result.Attempts)

	outcome := history.Outcome{
		Status:        history.StatusSucceeded,
		Attempts:      result.Attempts,
		ArticlesFound: len(result.Articles),
		StopReason:    string(result.StopReason),
	}

	if len(result.Articles) > 0 {
		report, err := s.exporter.Export(ctx, result.Articles)
		if err != nil {
			err = fmt.Errorf("export failed: %w", err)
			outcome.Status = history.StatusExportFailed
			outcome.Err = err
			s.recordFinish(result.RunID, outcome)
			return nil, err
		}
		result.Report = report
		outcome.ArticlesExported = report.Rows
	}

	s.recordFinish(result.RunID, outcome)
	return result, nil
}

func (s *Scraper) recordStart(in config.Input) *history.Run {
	if s.recorder == nil {
		return nil
	}
	run, err := s.recorder.Start(in.SearchPhrase, in.NewsCategory, in.NumMonths)
	if err != nil {
		s.logger.Error("failed to record run start", "error", err)
		return nil
	}
	return run
}

func (s *Scraper) recordFinish(runID uuid.UUID, outcome history.Outcome) {
	if s.recorder == nil || runID == uuid.Nil {
		return
	}
	if err := s.recorder.Finish(runID, outcome); err != nil {
		s.logger.Error("failed to record run outcome", "run_id", runID, "error", err)
	}
}

func (s *Scraper) recordInvalid(in config.Input, err error) {
	run := s.recordStart(in)
	if run == nil {
		return
	}
	s.recordFinish(run.RunID, history.Outcome{Status: history.StatusInvalid, Err: err})
}
