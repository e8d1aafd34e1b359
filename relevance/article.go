package relevance

import (
	"time"

	"github.com/pevans/newsscrape/recency"
)

// NotAvailable marks a field the results page did not provide.
const NotAvailable = "N/A"

// RawArticle is one search result as it appeared on the page.
type RawArticle struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	RawDate     string `json:"raw_date"`
	ImageURL    string `json:"image_url"` // NotAvailable when the result has no image
}

// HasImage reports whether the article carries a downloadable image URL.
func (a RawArticle) HasImage() bool {
	return a.ImageURL != "" && a.ImageURL != NotAvailable
}

// ClassifiedArticle is a RawArticle annotated with its date bucket and
// match metrics.
type ClassifiedArticle struct {
	RawArticle

	// Bucket is nil when the raw date could not be parsed.
	Bucket        *recency.Bucket `json:"bucket,omitempty"`
	PhraseMatches int             `json:"phrase_matches"`
	ContainsMoney bool            `json:"contains_money"`
	InWindow      bool            `json:"in_window"`
}

// Classify scores raw against searchPhrase and decides whether its date
// falls inside window. Title and description are joined with no separator
// before scoring. An unparseable date is never in the window.
func Classify(raw RawArticle, searchPhrase string, window *recency.Window, now time.Time) ClassifiedArticle {
	text := raw.Title + raw.Description

	out := ClassifiedArticle{
		RawArticle:    raw,
		PhraseMatches: CountPhrase(text, searchPhrase),
		ContainsMoney: ContainsMoney(text),
	}

	if b, ok := recency.Normalize(raw.RawDate, now); ok {
		out.Bucket = &b
		out.InWindow = window != nil && window.Contains(b)
	}

	return out
}

// Classifier binds the search phrase, window and clock of one run so pages
// can be classified one article at a time.
type Classifier struct {
	phrase string
	window *recency.Window
	now    time.Time
}

// NewClassifier creates a classifier for a single run.
func NewClassifier(phrase string, window *recency.Window, now time.Time) *Classifier {
	return &Classifier{phrase: phrase, window: window, now: now}
}

// Classify classifies one article.
func (c *Classifier) Classify(raw RawArticle) ClassifiedArticle {
	return Classify(raw, c.phrase, c.window, c.now)
}

// InWindow returns the articles whose date falls inside the window, in
// their original order.
func InWindow(articles []ClassifiedArticle) []ClassifiedArticle {
	var out []ClassifiedArticle
	for _, a := range articles {
		if a.InWindow {
			out = append(out, a)
		}
	}
	return out
}
