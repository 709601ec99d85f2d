package ingest

// RowErrorDetail is one entry in the report's error list.
type RowErrorDetail struct {
	// Row is the 1-based position of the failing row in the uploaded file.
	Row int `json:"row"`
	// Message describes why the row was rejected.
	Message string `json:"message"`
}

// Report summarizes one executed batch. Created and updated count planned
// operations one-to-one; skipped counts valid rows that matched an existing
// question without changing anything. Row failures never abort the batch, so
// a report with errors alongside writes is the normal partial-success shape.
type Report struct {
	Created int              `json:"created"`
	Updated int              `json:"updated"`
	Skipped int              `json:"skipped"`
	Errors  int              `json:"errors"`
	Details []RowErrorDetail `json:"details"`
}

// AddError records one failure against a row.
func (r *Report) AddError(row int, msg string) {
	r.Errors++
	r.Details = append(r.Details, RowErrorDetail{Row: row, Message: msg})
}

// BuildReport combines the executed plan with the parse failures collected
// during row validation.
func BuildReport(plan Plan, rowErrs []RowError) Report {
	created, updated, skipped := plan.Counts()
	rep := Report{
		Created: created,
		Updated: updated,
		Skipped: skipped,
		Errors:  len(rowErrs),
		Details: make([]RowErrorDetail, 0, len(rowErrs)),
	}
	for _, e := range rowErrs {
		rep.Details = append(rep.Details, RowErrorDetail{Row: e.Row, Message: e.Message})
	}
	return rep
}
