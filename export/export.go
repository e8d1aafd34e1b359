// Package export writes the in-window articles of a finished run to a
// spreadsheet and downloads their images alongside it.
package export

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/pevans/newsscrape/relevance"
)

// DefaultSpreadsheetName is the workbook written into the output directory.
const DefaultSpreadsheetName = "all_news_data.xlsx"

const sheetName = "Sheet1"

// Headers are the spreadsheet's column titles, in order.
var Headers = []string{
	"Title", "Date", "Description", "Picture Filename",
	"Count Search Phrases", "Contains Money",
}

// Exporter writes spreadsheets and images into one directory.
type Exporter struct {
	dir             string
	spreadsheetName string
	client          *http.Client
	userAgent       string
	logger          *slog.Logger
}

// Config holds exporter settings.
type Config struct {
	Dir             string
	SpreadsheetName string
	UserAgent       string
	ImageTimeout    time.Duration
}

// Report summarizes one export.
type Report struct {
	SpreadsheetPath string
	Rows            int
	ImagesSaved     int
	ImagesFailed    int
}

// NewExporter creates an exporter, creating its directory if needed. A nil
// logger discards output.
func NewExporter(config Config, logger *slog.Logger) (*Exporter, error) {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if config.SpreadsheetName == "" {
		config.SpreadsheetName = DefaultSpreadsheetName
	}
	if config.ImageTimeout <= 0 {
		config.ImageTimeout = 30 * time.Second
	}

	if err := os.MkdirAll(config.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	return &Exporter{
		dir:             config.Dir,
		spreadsheetName: config.SpreadsheetName,
		client:          &http.Client{Timeout: config.ImageTimeout},
		userAgent:       config.UserAgent,
		logger:          logger,
	}, nil
}

// ImagePath returns where the image of the article at 1-based position
// index in the collected list is saved.
func (e *Exporter) ImagePath(index int) string {
	return filepath.Join(e.dir, fmt.Sprintf("news%d.jpg", index))
}

// Export clears previous output, downloads images for in-window articles
// and writes one spreadsheet row per in-window article. Articles outside
// the window keep their position for image numbering but are not written.
// A failed image download is logged and skipped.
func (e *Exporter) Export(ctx context.Context, articles []relevance.ClassifiedArticle) (*Report, error) {
	if err := e.clear(); err != nil {
		return nil, err
	}

	report := &Report{SpreadsheetPath: filepath.Join(e.dir, e.spreadsheetName)}

	rows := make([]row, 0, len(articles))
	for i, a := range articles {
		if !a.InWindow {
			continue
		}

		picture := relevance.NotAvailable
		if a.HasImage() {
			picture = e.ImagePath(i + 1)
			if err := e.downloadImage(ctx, a.ImageURL, picture); err != nil {
				e.logger.Error("failed to download image", "url", a.ImageURL, "error", err)
				report.ImagesFailed++
			} else {
				report.ImagesSaved++
			}
		}

		rows = append(rows, row{article: a, picture: picture})
	}

	if err := writeSpreadsheet(report.SpreadsheetPath, rows); err != nil {
		return nil, err
	}
	report.Rows = len(rows)

	e.logger.Info("export complete",
		"spreadsheet", report.SpreadsheetPath,
		"rows", report.Rows,
		"images_saved", report.ImagesSaved,
		"images_failed", report.ImagesFailed)

	return report, nil
}

// clear removes spreadsheets and images left by an earlier run.
func (e *Exporter) clear() error {
	for _, pattern := range []string{"*.xlsx", "*.jpg"} {
		matches, err := filepath.Glob(filepath.Join(e.dir, pattern))
		if err != nil {
			return fmt.Errorf("failed to list %s files: %w", pattern, err)
		}
		for _, m := range matches {
			if err := os.Remove(m); err != nil {
				return fmt.Errorf("failed to remove %s: %w", m, err)
			}
		}
	}
	return nil
}
