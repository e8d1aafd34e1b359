// Package scraper searches a news site over HTTP and reads its result pages.
package scraper

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/pevans/newsscrape/pagination"
	"github.com/pevans/newsscrape/relevance"
)

// ErrNotSearched is returned when a page is requested before Search.
var ErrNotSearched = errors.New("search must run before fetching pages")

// Session holds the state of one search: the phrase and the selected topic
// filter. It is not safe for concurrent use.
type Session struct {
	config SiteConfig
	client *http.Client
	logger *slog.Logger

	phrase   string
	topic    string
	searched bool
}

// NewSession creates a session. A nil logger discards output.
func NewSession(config SiteConfig, logger *slog.Logger) *Session {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Session{
		config: config,
		client: &http.Client{Timeout: config.Timeout},
		logger: logger,
	}
}

// Search runs the site search for phrase and selects the topic filter whose
// label matches category, ignoring case. An empty category searches every
// topic. A category the site does not offer yields an unsuccessful outcome
// rather than an error.
func (s *Session) Search(ctx context.Context, phrase, category string) (pagination.SearchOutcome, error) {
	s.phrase = phrase
	s.topic = ""
	s.searched = false

	doc, err := s.fetchHTML(ctx, s.searchURL(0))
	if err != nil {
		return pagination.SearchOutcome{}, fmt.Errorf("failed to load search page: %w", err)
	}
	s.searched = true

	sel := s.config.Selectors
	if noResults := strings.TrimSpace(doc.Find(sel.NoResults).First().Text()); noResults != "" {
		s.logger.Info("search reported", "text", noResults)
		if strings.Contains(noResults, sel.NoResultsText) {
			s.logger.Warn("no results found for search", "phrase", phrase)
			return pagination.SearchOutcome{NoResults: true}, nil
		}
	}

	outcome := pagination.SearchOutcome{
		PageCounts: normalizeSpace(doc.Find(sel.PageCounts).First().Text()),
	}

	if category == "" {
		outcome.Success = true
		return outcome, nil
	}

	topic, ok := findTopic(doc, sel, category)
	if !ok {
		s.logger.Warn("category not offered for search", "category", category, "phrase", phrase)
		return outcome, nil
	}

	s.logger.Info("found matching category", "category", category, "filter", topic)
	s.topic = topic
	outcome.Success = true
	return outcome, nil
}

// FetchPage reads one page of the current search's results.
func (s *Session) FetchPage(ctx context.Context, page int) ([]relevance.RawArticle, error) {
	if !s.searched {
		return nil, ErrNotSearched
	}

	doc, err := s.fetchHTML(ctx, s.searchURL(page))
	if err != nil {
		return nil, err
	}

	articles := ExtractResults(doc, s.config.Selectors)
	s.logger.Debug("fetched results page", "page", page, "articles", len(articles))
	return articles, nil
}

// ExtractResults pulls every result item out of a search results page.
// Fields missing from an item are reported as relevance.NotAvailable.
func ExtractResults(doc *goquery.Document, sel SelectorConfig) []relevance.RawArticle {
	root := doc.Selection
	if sel.Results != "" {
		root = doc.Find(sel.Results)
	}

	articles := []relevance.RawArticle{}
	root.Find(sel.Item).Each(func(i int, item *goquery.Selection) {
		article := relevance.RawArticle{
			Title:       textOr(item, sel.Title),
			Description: textOr(item, sel.Description),
			RawDate:     textOr(item, sel.Timestamp),
			ImageURL:    relevance.NotAvailable,
		}
		if src, ok := item.Find(sel.Image).First().Attr("src"); ok && src != "" {
			article.ImageURL = src
		}
		articles = append(articles, article)
	})

	return articles
}

func findTopic(doc *goquery.Document, sel SelectorConfig, category string) (string, bool) {
	var value string
	var found bool

	doc.Find(sel.Topic).EachWithBreak(func(i int, li *goquery.Selection) bool {
		li.Find(sel.TopicLabel).EachWithBreak(func(j int, span *goquery.Selection) bool {
			if strings.EqualFold(strings.TrimSpace(span.Text()), category) {
				value, found = li.Find(sel.TopicInput).First().Attr("value")
				return false
			}
			return true
		})
		return !found
	})

	return value, found && value != ""
}

func textOr(item *goquery.Selection, selector string) string {
	text := normalizeSpace(item.Find(selector).First().Text())
	if text == "" {
		return relevance.NotAvailable
	}
	return text
}

func normalizeSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// searchURL builds the search URL for page. Page 0 means the bare search
// page with no topic filter or page number.
func (s *Session) searchURL(page int) string {
	cfg := s.config.Search

	q := url.Values{}
	q.Set(cfg.QueryParam, s.phrase)
	if cfg.SortParam != "" {
		q.Set(cfg.SortParam, cfg.SortNewest)
	}
	if page > 0 {
		if s.topic != "" && cfg.TopicParam != "" {
			q.Set(cfg.TopicParam, s.topic)
		}
		q.Set(cfg.PageParam, strconv.Itoa(page))
	}

	return strings.TrimRight(s.config.BaseURL, "/") + cfg.Path + "?" + q.Encode()
}

// fetchHTML fetches and parses one page.
func (s *Session) fetchHTML(ctx context.Context, pageURL string) (*goquery.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	if s.config.UserAgent != "" {
		req.Header.Set("User-Agent", s.config.UserAgent)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch URL: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP error: %d %s", resp.StatusCode, resp.Status)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	return doc, nil
}
