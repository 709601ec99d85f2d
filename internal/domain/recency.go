package domain

import (
	"time"

	"golang.org/x/text/cases"
)

// AskedWithin is the coarse recency bucket describing how long ago a company
// is believed to have asked a question. It is supplied by the uploader, never
// derived from LastAskedDate in the ingestion path. The zero value means
// "unknown".
type AskedWithin string

// Recency buckets, ordered most to least recent.
const (
	AskedWithin30Days  AskedWithin = "30days"
	AskedWithin2Months AskedWithin = "2months"
	AskedWithin6Months AskedWithin = "6months"
	AskedWithinOlder   AskedWithin = "older"
)

// Valid reports whether b is one of the defined buckets.
func (b AskedWithin) Valid() bool {
	switch b {
	case AskedWithin30Days, AskedWithin2Months, AskedWithin6Months, AskedWithinOlder:
		return true
	}
	return false
}

// CategorizeTime maps a concrete date onto a recency bucket relative to now.
// A nil date yields the zero bucket. Only used for dates that arrive through
// the direct API; CSV ingestion always stores the uploader-supplied bucket.
func CategorizeTime(date *time.Time, now time.Time) AskedWithin {
	if date == nil {
		return ""
	}
	days := int(now.Sub(*date).Hours() / 24)
	if days < 0 {
		days = -days
	}
	switch {
	case days <= 30:
		return AskedWithin30Days
	case days <= 60:
		return AskedWithin2Months
	case days <= 180:
		return AskedWithin6Months
	}
	return AskedWithinOlder
}

// companyFolder performs Unicode case folding for company-name comparison.
var companyFolder = cases.Fold()

// CompanyKey returns the normalized form of a company name used for
// case-insensitive dedup. The display casing stored on a tag is whatever the
// first upload supplied; only the key is folded.
func CompanyKey(name string) string {
	return companyFolder.String(name)
}
