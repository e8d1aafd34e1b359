package config

import (
	"github.com/pevans/newsscrape/recency"
)

// Environment variables that supply the run's input.
const (
	EnvSearchPhrase = "SEARCH_PHRASE"
	EnvNewsCategory = "NEWS_CATEGORY"
	EnvNumMonths    = "NUM_MONTHS"
)

// Input is what one run searches for.
type Input struct {
	SearchPhrase string `yaml:"search_phrase"`
	NewsCategory string `yaml:"news_category"`
	NumMonths    int    `yaml:"num_months"`
}

// InputFromEnv overlays environment values on base. Unset variables keep
// the base value. NUM_MONTHS must be a positive integer when set.
func InputFromEnv(getenv func(string) string, base Input) (Input, error) {
	in := base

	if v := getenv(EnvSearchPhrase); v != "" {
		in.SearchPhrase = v
	}
	if v := getenv(EnvNewsCategory); v != "" {
		in.NewsCategory = v
	}
	if v := getenv(EnvNumMonths); v != "" {
		n, err := recency.ParseMonthCount(v)
		if err != nil {
			return Input{}, err
		}
		in.NumMonths = n
	}

	return in, nil
}
