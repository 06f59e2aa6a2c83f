// Package timeline turns a flat list of finished books into the
// month-bucketed view rendered on the reading-timeline page. Everything here
// is pure: no I/O, no clock, deterministic for a given input.
package timeline

import (
	"sort"
	"time"

	"github.com/bookbrust/bookbrust/internal/bookapi"
)

// UnknownMonth is the bucket key for entries without a finished date.
const UnknownMonth = "unknown"

// MonthCount is the number of books finished in one month bucket.
type MonthCount struct {
	Month string
	Count int
}

// GroupByMonth partitions entries into buckets keyed by the YYYY-MM prefix
// of their finished date. Entries without a finished date land under
// UnknownMonth. Every entry goes into exactly one bucket, and order within a
// bucket follows input order.
func GroupByMonth(entries []bookapi.ShelfEntry) map[string][]bookapi.ShelfEntry {
	grouped := make(map[string][]bookapi.ShelfEntry)
	for _, entry := range entries {
		grouped[MonthKey(entry.FinishedDate)] = append(grouped[MonthKey(entry.FinishedDate)], entry)
	}
	return grouped
}

// MonthKey reduces a finished-date string to its month bucket key: the first
// seven characters ("2025-05"), or UnknownMonth when the date is absent or
// too short to carry a month.
func MonthKey(finishedDate string) string {
	if len(finishedDate) < 7 {
		return UnknownMonth
	}
	return finishedDate[:7]
}

// MonthlyCounts returns one count per bucket, following the order of months.
// Months not present in the grouping are skipped rather than reported as
// zero.
func MonthlyCounts(grouped map[string][]bookapi.ShelfEntry, months []string) []MonthCount {
	counts := make([]MonthCount, 0, len(months))
	for _, m := range months {
		entries, ok := grouped[m]
		if !ok {
			continue
		}
		counts = append(counts, MonthCount{Month: m, Count: len(entries)})
	}
	return counts
}

// SortedMonths returns the grouping's keys in descending plain string order,
// most recent month first. Under byte comparison the UnknownMonth key sorts
// before every "20XX-MM" key ('u' > '2'), so undated books head the list;
// this matches how the shipped client has always ordered them.
func SortedMonths(grouped map[string][]bookapi.ShelfEntry) []string {
	months := make([]string, 0, len(grouped))
	for m := range grouped {
		months = append(months, m)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(months)))
	return months
}

// MonthLabel formats a month key for display, e.g. "2025-05" → "May 2025".
// Only year and month are stored, so a synthetic first-of-month day is
// appended before parsing. Keys that do not parse (including UnknownMonth)
// are labeled "Unknown".
func MonthLabel(key string) string {
	t, err := time.Parse("2006-01-02", key+"-01")
	if err != nil {
		return "Unknown"
	}
	return t.Format("January 2006")
}
