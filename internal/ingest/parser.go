package ingest

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/preptrack/go-prep-backend/internal/domain"
)

// Recognized header aliases, checked in order. Matching is case-sensitive per
// the upload contract; both the exporter-style headers ("Acceptance %") and
// camelCase variants are accepted.
var (
	titleHeaders      = []string{"Title", "title"}
	difficultyHeaders = []string{"Difficulty", "difficulty"}
	linkHeaders       = []string{"URL", "url", "Link", "link"}
	acceptanceHeaders = []string{"Acceptance %", "Acceptance Rate", "acceptanceRate"}
	frequencyHeaders  = []string{"Frequency %", "frequency"}
	topicsHeaders     = []string{"Topics", "topics"}
)

// BatchRow is one parsed, validated candidate fragment. It exists only for
// the duration of a single ingestion call.
type BatchRow struct {
	// Row is the 1-based position in the uploaded file, used for reporting
	// and for the in-batch tie-break order.
	Row int

	Title          string
	Difficulty     string
	Topics         domain.StringList
	Link           string
	AcceptanceRate float64
	Frequency      float64

	// Tag is the single company tag this row contributes, built from the
	// batch-level company name and recency bucket.
	Tag domain.CompanyTag
}

// Key returns the natural key used to match this row against the catalog.
func (r BatchRow) Key() string { return r.Title + "\x00" + r.Link }

// RowError is a recoverable, row-local validation failure. It is collected
// into the batch report and never aborts the batch.
type RowError struct {
	Row     int
	Message string
}

// Error implements the error interface.
func (e RowError) Error() string {
	return fmt.Sprintf("row %d: %s", e.Row, e.Message)
}

// ParseRow converts one raw CSV record into a BatchRow.
//
// Required fields are title, difficulty, and link; each is trimmed and the
// row fails with a RowError when any is empty afterwards. Topics are split on
// commas with empty entries dropped. Acceptance rate and frequency parse as
// floats; absent, unparsable, or negative values become 0 (the "blank" value
// that never clobbers catalog data during reconciliation).
func ParseRow(rec map[string]string, row int, company string, bucket domain.AskedWithin) (BatchRow, error) {
	title := strings.TrimSpace(firstField(rec, titleHeaders))
	difficulty := strings.TrimSpace(firstField(rec, difficultyHeaders))
	link := strings.TrimSpace(firstField(rec, linkHeaders))

	if title == "" || difficulty == "" || link == "" {
		return BatchRow{}, RowError{Row: row, Message: "missing required fields"}
	}

	freq := parseRate(firstField(rec, frequencyHeaders))
	return BatchRow{
		Row:            row,
		Title:          title,
		Difficulty:     difficulty,
		Topics:         splitTopics(firstField(rec, topicsHeaders)),
		Link:           link,
		AcceptanceRate: parseRate(firstField(rec, acceptanceHeaders)),
		Frequency:      freq,
		Tag: domain.CompanyTag{
			Company:     company,
			CompanyKey:  domain.CompanyKey(company),
			AskedWithin: bucket,
			Frequency:   freq,
		},
	}, nil
}

// firstField returns the first non-empty value among the alias columns.
func firstField(rec map[string]string, keys []string) string {
	for _, k := range keys {
		if v, ok := rec[k]; ok && strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

// parseRate parses a percentage-like field. A trailing "%" is tolerated.
func parseRate(s string) float64 {
	s = strings.TrimSuffix(strings.TrimSpace(s), "%")
	if s == "" {
		return 0
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f < 0 {
		return 0
	}
	return f
}

// splitTopics splits a comma-separated topics field, trimming entries and
// dropping empties.
func splitTopics(s string) domain.StringList {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make(domain.StringList, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, t)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
