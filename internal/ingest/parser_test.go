package ingest

import (
	"errors"
	"strings"
	"testing"

	"github.com/preptrack/go-prep-backend/internal/domain"
)

func TestParseRow_AllFields(t *testing.T) {
	rec := map[string]string{
		"Title":        "  Two Sum ",
		"Difficulty":   "Easy",
		"URL":          " https://x/two-sum ",
		"Acceptance %": "49.2",
		"Frequency %":  "5",
		"Topics":       "Array, Hash Table, ,",
	}
	row, err := ParseRow(rec, 1, "Google", domain.AskedWithin30Days)
	if err != nil {
		t.Fatalf("ParseRow: %v", err)
	}
	if row.Title != "Two Sum" || row.Difficulty != "Easy" || row.Link != "https://x/two-sum" {
		t.Fatalf("unexpected required fields: %+v", row)
	}
	if row.AcceptanceRate != 49.2 || row.Frequency != 5 {
		t.Fatalf("unexpected rates: %+v", row)
	}
	if len(row.Topics) != 2 || row.Topics[0] != "Array" || row.Topics[1] != "Hash Table" {
		t.Fatalf("unexpected topics: %#v", row.Topics)
	}
	if row.Tag.Company != "Google" || row.Tag.AskedWithin != domain.AskedWithin30Days {
		t.Fatalf("unexpected tag: %+v", row.Tag)
	}
	if row.Tag.LastAskedDate != nil {
		t.Fatalf("csv rows must not carry a concrete asked date")
	}
	if row.Tag.Frequency != 5 {
		t.Fatalf("tag frequency should mirror the row frequency: %+v", row.Tag)
	}
}

func TestParseRow_HeaderAliases(t *testing.T) {
	rec := map[string]string{
		"title":          "LRU Cache",
		"difficulty":     "Medium",
		"link":           "https://x/lru",
		"acceptanceRate": "38.5%",
		"frequency":      "2.5",
		"topics":         "Design",
	}
	row, err := ParseRow(rec, 3, "Meta", domain.AskedWithin2Months)
	if err != nil {
		t.Fatalf("ParseRow: %v", err)
	}
	if row.AcceptanceRate != 38.5 {
		t.Fatalf("percent suffix should parse: %v", row.AcceptanceRate)
	}
	if row.Link != "https://x/lru" {
		t.Fatalf("lowercase link alias not recognized: %+v", row)
	}
}

func TestParseRow_MissingRequiredFields(t *testing.T) {
	cases := []map[string]string{
		{"Difficulty": "Easy", "URL": "https://x/a"},             // no title
		{"Title": "A", "URL": "https://x/a"},                     // no difficulty
		{"Title": "A", "Difficulty": "Easy"},                     // no link
		{"Title": "   ", "Difficulty": "Easy", "URL": "https://x/a"}, // blank title
	}
	for i, rec := range cases {
		_, err := ParseRow(rec, i+1, "Google", domain.AskedWithin30Days)
		var re RowError
		if !errors.As(err, &re) {
			t.Fatalf("case %d: expected RowError, got %v", i, err)
		}
		if re.Row != i+1 {
			t.Fatalf("case %d: row index %d attached, want %d", i, re.Row, i+1)
		}
	}
}

func TestParseRow_BadNumbersBecomeZero(t *testing.T) {
	rec := map[string]string{
		"Title":        "A",
		"Difficulty":   "Hard",
		"URL":          "https://x/a",
		"Acceptance %": "n/a",
		"Frequency %":  "-3",
	}
	row, err := ParseRow(rec, 1, "Amazon", domain.AskedWithinOlder)
	if err != nil {
		t.Fatalf("ParseRow: %v", err)
	}
	if row.AcceptanceRate != 0 || row.Frequency != 0 {
		t.Fatalf("unparsable/negative rates must default to 0: %+v", row)
	}
}

func TestReadRows_HeaderAndOrder(t *testing.T) {
	in := "Title,Difficulty,URL\nTwo Sum,Easy,https://x/two-sum\nLRU Cache,Medium,https://x/lru\n"
	rows, err := ReadRows(strings.NewReader(in))
	if err != nil {
		t.Fatalf("ReadRows: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if rows[0]["Title"] != "Two Sum" || rows[1]["Title"] != "LRU Cache" {
		t.Fatalf("row order not preserved: %#v", rows)
	}
}

func TestReadRows_ShortRow(t *testing.T) {
	in := "Title,Difficulty,URL\nTwo Sum,Easy\n"
	rows, err := ReadRows(strings.NewReader(in))
	if err != nil {
		t.Fatalf("ReadRows: %v", err)
	}
	if _, ok := rows[0]["URL"]; ok {
		t.Fatalf("missing trailing column should stay unset: %#v", rows[0])
	}
}

func TestReadRows_Empty(t *testing.T) {
	if _, err := ReadRows(strings.NewReader("")); !errors.Is(err, ErrNoRows) {
		t.Fatalf("expected ErrNoRows for empty input, got %v", err)
	}
	if _, err := ReadRows(strings.NewReader("Title,Difficulty,URL\n")); !errors.Is(err, ErrNoRows) {
		t.Fatalf("expected ErrNoRows for header-only input, got %v", err)
	}
}
