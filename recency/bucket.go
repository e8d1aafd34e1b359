// Package recency turns the assorted date strings a news site prints into
// month buckets and decides which buckets count as recent.
package recency

import (
	"fmt"
	"time"
)

// Bucket is a calendar month used as the unit of recency comparison.
type Bucket struct {
	Month time.Month
	Year  int
}

// BucketOf returns the bucket containing t, in t's own location.
func BucketOf(t time.Time) Bucket {
	return Bucket{Month: t.Month(), Year: t.Year()}
}

// String formats the bucket as "MM-YYYY".
func (b Bucket) String() string {
	return fmt.Sprintf("%02d-%04d", int(b.Month), b.Year)
}

// Compare orders buckets by year, then month. It returns -1, 0 or +1.
func (b Bucket) Compare(other Bucket) int {
	switch {
	case b.Year < other.Year:
		return -1
	case b.Year > other.Year:
		return 1
	case b.Month < other.Month:
		return -1
	case b.Month > other.Month:
		return 1
	}
	return 0
}

// Before reports whether b is an earlier month than other.
func (b Bucket) Before(other Bucket) bool {
	return b.Compare(other) < 0
}

// Previous returns the bucket one calendar month earlier, wrapping January
// back to December of the prior year.
func (b Bucket) Previous() Bucket {
	t := time.Date(b.Year, b.Month, 1, 0, 0, 0, 0, time.UTC).AddDate(0, -1, 0)
	return BucketOf(t)
}
