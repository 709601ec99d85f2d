// Package ingest implements the bulk-ingestion core: CSV decoding, per-row
// parsing and validation, reconciliation of parsed rows against the existing
// catalog, and the batch report returned to the caller.
//
// The package is persistence-free by design: it turns input rows into an
// explicit Plan of insert/update operations which the import service then
// executes against the repository layer. Keeping the "what to write" decision
// separate from "how to write it" makes every rule here testable in memory.
package ingest

import (
	"encoding/csv"
	"errors"
	"io"
	"strings"
)

// ErrNoRows is returned when the input contains a header but no data rows,
// or no content at all.
var ErrNoRows = errors.New("csv contains no data rows")

// ReadRows decodes a CSV stream into header-keyed records. The first line is
// the header; remaining lines become one map each, keyed by the trimmed
// header cell. Rows shorter than the header leave the missing columns unset;
// longer rows drop the extras.
//
// Row order is preserved; the caller derives 1-based row indexes from slice
// position for error reporting.
func ReadRows(r io.Reader) ([]map[string]string, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrNoRows
		}
		return nil, err
	}
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}

	var rows []map[string]string
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		row := make(map[string]string, len(header))
		for i, h := range header {
			if h == "" {
				continue
			}
			if i < len(rec) {
				row[h] = rec[i]
			}
		}
		rows = append(rows, row)
	}
	if len(rows) == 0 {
		return nil, ErrNoRows
	}
	return rows, nil
}
