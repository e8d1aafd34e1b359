package recency

import (
	"regexp"
	"strings"
	"time"
)

// relativeUnit maps a unit that can follow a count ("3 hours ago") to the
// offset subtracted from now. Every count collapses to a single unit: "48
// minutes ago" subtracts one minute, not 48. Month buckets only need to be
// right at month boundaries, and callers depend on the coarse result.
type relativeUnit struct {
	pattern *regexp.Regexp
	offset  time.Duration
}

// Declaration order matters: the first unit that matches wins.
var relativeUnits = []relativeUnit{
	{regexp.MustCompile(`^\d+\s*now`), 0},
	{regexp.MustCompile(`^\d+\s*sec`), time.Second},
	{regexp.MustCompile(`^\d+\s*seconds`), time.Second},
	{regexp.MustCompile(`^\d+\s*min`), time.Minute},
	{regexp.MustCompile(`^\d+\s*minutes`), time.Minute},
	{regexp.MustCompile(`^\d+\s*hour`), time.Hour},
	{regexp.MustCompile(`^\d+\s*hours`), time.Hour},
	{regexp.MustCompile(`^\d+\s*day`), 24 * time.Hour},
}

type monthName struct {
	abbr string
	full string
}

// Abbreviations the site uses, checked in order. Entries whose abbreviation
// is already the full name stop the search without changing anything.
var monthNames = []monthName{
	{"Jan.", "January"}, {"Jan", "January"},
	{"Feb.", "February"}, {"Feb", "February"},
	{"March", "March"}, {"Mar", "March"},
	{"April", "April"}, {"Apr", "April"},
	{"May", "May"},
	{"June", "June"}, {"Jun", "June"},
	{"July", "July"}, {"Jul", "July"},
	{"Aug.", "August"}, {"Aug", "August"},
	{"Sept.", "September"}, {"Sept", "September"}, {"Sep", "September"},
	{"Oct.", "October"}, {"Oct", "October"},
	{"Nov.", "November"}, {"Nov", "November"},
	{"Dec.", "December"}, {"Dec", "December"},
}

var dateLayouts = []string{
	"January. 2, 2006",
	"January 2, 2006",
}

// Normalize parses a raw date string into the bucket it falls in. Relative
// forms ("5 min ago") are resolved against now. The second return value is
// false when the string cannot be understood; such dates are neither recent
// nor stale.
func Normalize(raw string, now time.Time) (Bucket, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Bucket{}, false
	}

	for _, unit := range relativeUnits {
		if unit.pattern.MatchString(raw) {
			return BucketOf(now.Add(-unit.offset)), true
		}
	}

	expanded := expandMonth(raw)
	for _, layout := range dateLayouts {
		t, err := time.Parse(layout, expanded)
		if err == nil {
			return BucketOf(t), true
		}
	}

	return Bucket{}, false
}

// expandMonth replaces the first abbreviation from monthNames that appears
// in s as a whole word. A word is only matched when it is not part of a
// longer run of letters, so "March" never becomes "Marchch".
func expandMonth(s string) string {
	for _, m := range monthNames {
		idx := wordIndex(s, m.abbr)
		if idx < 0 {
			continue
		}
		return s[:idx] + m.full + s[idx+len(m.abbr):]
	}
	return s
}

// wordIndex finds word in s where it is not preceded or followed by a
// letter. It returns -1 when there is no such occurrence.
func wordIndex(s, word string) int {
	for start := 0; start <= len(s)-len(word); {
		i := strings.Index(s[start:], word)
		if i < 0 {
			return -1
		}
		i += start
		end := i + len(word)
		before := i == 0 || !isLetter(s[i-1])
		after := end == len(s) || !isLetter(s[end])
		if before && after {
			return i
		}
		start = i + 1
	}
	return -1
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}
