package ingest

import (
	"github.com/preptrack/go-prep-backend/internal/domain"
)

// OpKind tags a planned operation.
type OpKind int

const (
	// OpInsert creates a brand-new question from a batch row.
	OpInsert OpKind = iota
	// OpUpdate merges a batch row into a question that already existed, or
	// into an insert planned earlier in the same batch (Folded).
	OpUpdate
)

// ScalarPatch carries the "meaningful" field overwrites for an update. Zero
// values mean "leave the stored value alone": an empty difficulty, empty
// topic set, empty link, or non-positive rate never reaches the database.
type ScalarPatch struct {
	Difficulty     string
	Topics         domain.StringList
	Link           string
	AcceptanceRate float64
	Frequency      float64
}

// Empty reports whether the patch would change nothing.
func (p ScalarPatch) Empty() bool {
	return p.Difficulty == "" && len(p.Topics) == 0 && p.Link == "" &&
		p.AcceptanceRate <= 0 && p.Frequency <= 0
}

// Fields returns the column map for the non-blank patch fields, suitable for
// a partial update.
func (p ScalarPatch) Fields() map[string]any {
	out := make(map[string]any, 5)
	if p.Difficulty != "" {
		out["difficulty"] = p.Difficulty
	}
	if len(p.Topics) > 0 {
		out["topics"] = p.Topics
	}
	if p.Link != "" {
		out["link"] = p.Link
	}
	if p.AcceptanceRate > 0 {
		out["acceptance_rate"] = p.AcceptanceRate
	}
	if p.Frequency > 0 {
		out["frequency"] = p.Frequency
	}
	return out
}

// Op is one atomic per-question operation in a batch plan.
type Op struct {
	Kind OpKind
	// Row is the 1-based input row that produced this operation.
	Row int

	// Insert is the full document to create. Later rows in the same batch
	// may have folded additional tags or scalars into it before execution.
	// Folded updates alias the insert they merged into.
	Insert *domain.Question

	// QuestionID targets a pre-existing question (OpUpdate only).
	QuestionID string
	Patch      ScalarPatch
	NewTags    []domain.CompanyTag

	// Folded marks an update whose effect was merged into a pending insert
	// planned earlier in this batch. Folded ops carry no write of their own
	// but still count toward the report's updated total.
	Folded bool
}

// Plan is the full set of decisions for one batch: the ordered operations
// plus the rows that matched an existing question without changing anything.
type Plan struct {
	Ops     []Op
	Skipped []int // 1-based rows that planned no work
}

// Counts returns the created/updated/skipped totals implied by the plan.
// Counts are per planned operation, one per contributing input row.
func (p Plan) Counts() (created, updated, skipped int) {
	for _, op := range p.Ops {
		if op.Kind == OpInsert {
			created++
		} else {
			updated++
		}
	}
	return created, updated, len(p.Skipped)
}
