package scraper

import "time"

// SiteConfig describes how to search the news site and where each piece of
// a result lives in its HTML.
type SiteConfig struct {
	BaseURL   string        `yaml:"base_url"`
	UserAgent string        `yaml:"user_agent"`
	Timeout   time.Duration `yaml:"timeout"`

	Search    SearchConfig   `yaml:"search"`
	Selectors SelectorConfig `yaml:"selectors"`
}

// SearchConfig names the search endpoint and its query parameters.
type SearchConfig struct {
	Path       string `yaml:"path"`
	QueryParam string `yaml:"query_param"`
	SortParam  string `yaml:"sort_param"`
	SortNewest string `yaml:"sort_newest"` // Value of SortParam that sorts newest first
	PageParam  string `yaml:"page_param"`
	TopicParam string `yaml:"topic_param"`
}

// SelectorConfig holds the CSS selectors for the search results page.
type SelectorConfig struct {
	NoResults     string `yaml:"no_results"`
	NoResultsText string `yaml:"no_results_text"`
	PageCounts    string `yaml:"page_counts"`
	Topic         string `yaml:"topic"`
	TopicLabel    string `yaml:"topic_label"`
	TopicInput    string `yaml:"topic_input"`
	Results       string `yaml:"results"`
	Item          string `yaml:"item"`
	Title         string `yaml:"title"`
	Description   string `yaml:"description"`
	Timestamp     string `yaml:"timestamp"`
	Image         string `yaml:"image"`
}

// DefaultSiteConfig returns the configuration for the Los Angeles Times
// search pages.
func DefaultSiteConfig() SiteConfig {
	return SiteConfig{
		BaseURL:   "https://www.latimes.com",
		UserAgent: "newsscrape/1.0 (news search export)",
		Timeout:   20 * time.Second,
		Search: SearchConfig{
			Path:       "/search",
			QueryParam: "q",
			SortParam:  "s",
			SortNewest: "1",
			PageParam:  "p",
			TopicParam: "f0",
		},
		Selectors: SelectorConfig{
			NoResults:     ".search-results-module-no-results",
			NoResultsText: "There are not any results that match",
			PageCounts:    ".search-results-module-page-counts",
			Topic:         "ul.search-filter-menu > li",
			TopicLabel:    "span",
			TopicInput:    "input.checkbox-input-element",
			Results:       ".search-results-module-results-menu",
			Item:          "div.promo-wrapper",
			Title:         "h3.promo-title",
			Description:   "p.promo-description",
			Timestamp:     "p.promo-timestamp",
			Image:         "img.image",
		},
	}
}
