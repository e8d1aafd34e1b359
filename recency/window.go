package recency

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ErrInvalidMonthCount is returned when a window is requested with a month
// count that is not a positive integer.
var ErrInvalidMonthCount = errors.New("num_months must be a positive integer")

// Window is the ordered set of buckets considered recent: the month that
// contains now, then each earlier month, newest first.
type Window struct {
	buckets []Bucket
}

// NewWindow returns the window of numMonths consecutive buckets ending at
// the bucket containing now. A count of 1 yields only the current month.
func NewWindow(numMonths int, now time.Time) (*Window, error) {
	if numMonths <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidMonthCount, numMonths)
	}

	buckets := make([]Bucket, 0, numMonths)
	b := BucketOf(now)
	for i := 0; i < numMonths; i++ {
		buckets = append(buckets, b)
		b = b.Previous()
	}

	return &Window{buckets: buckets}, nil
}

// ParseMonthCount validates a month count supplied as text, e.g. from an
// environment variable. Only base-10 integers greater than zero are
// accepted; "5.0", "five" and "" are rejected.
func ParseMonthCount(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidMonthCount, s)
	}
	if n <= 0 {
		return 0, fmt.Errorf("%w: got %d", ErrInvalidMonthCount, n)
	}
	return n, nil
}

// Buckets returns a copy of the window's buckets, newest first.
func (w *Window) Buckets() []Bucket {
	out := make([]Bucket, len(w.buckets))
	copy(out, w.buckets)
	return out
}

// Len returns the number of months in the window.
func (w *Window) Len() int {
	return len(w.buckets)
}

// Contains reports whether b is one of the window's buckets.
func (w *Window) Contains(b Bucket) bool {
	for _, wb := range w.buckets {
		if wb == b {
			return true
		}
	}
	return false
}

// Strings returns the buckets formatted as "MM-YYYY", newest first.
func (w *Window) Strings() []string {
	out := make([]string, len(w.buckets))
	for i, b := range w.buckets {
		out[i] = b.String()
	}
	return out
}
