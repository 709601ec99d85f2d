package ingest

import (
	"github.com/preptrack/go-prep-backend/internal/domain"
)

// working tracks the evolving in-batch view of one natural key. For a pending
// insert it aliases the planned document; for a pre-existing question it is a
// private copy of the snapshot that accumulates this batch's merges so later
// duplicate rows observe earlier rows' effects.
type working struct {
	q       *domain.Question
	pending bool
	tagKeys map[string]struct{}
}

// Reconcile decides, per parsed row, whether to insert a new question or
// merge into an existing one, producing the batch plan.
//
// Rules:
//   - Rows match the catalog by the exact (title, link) pair.
//   - A non-match plans an insert carrying the row's single company tag.
//   - A match plans an update: scalar fields overwrite only when the incoming
//     value is non-blank, and the row's company tag is appended only when the
//     question does not already carry that company (case-insensitive key;
//     an already-present company's tag is never touched).
//   - Duplicate keys within one batch fold sequentially: the second row sees
//     the first row's effect, so re-uploading a file is idempotent. An update
//     against a pending insert mutates the planned document in place and is
//     marked Folded.
//   - A matching row that contributes neither a scalar change nor a new tag
//     is recorded as skipped.
//
// The snapshot is read once up front; Reconcile never touches storage.
func Reconcile(rows []BatchRow, existing []domain.Question) Plan {
	index := make(map[string]*working, len(existing))
	for i := range existing {
		q := existing[i]
		keys := make(map[string]struct{}, len(q.Companies))
		for _, tag := range q.Companies {
			keys[tag.CompanyKey] = struct{}{}
		}
		index[q.Title+"\x00"+q.Link] = &working{q: &q, tagKeys: keys}
	}

	var plan Plan
	for _, row := range rows {
		w, ok := index[row.Key()]
		if !ok {
			q := &domain.Question{
				Title:          row.Title,
				Difficulty:     row.Difficulty,
				Topics:         row.Topics,
				Link:           row.Link,
				AcceptanceRate: row.AcceptanceRate,
				Frequency:      row.Frequency,
				IsActive:       true,
				Companies:      []domain.CompanyTag{row.Tag},
			}
			plan.Ops = append(plan.Ops, Op{Kind: OpInsert, Row: row.Row, Insert: q})
			index[row.Key()] = &working{
				q:       q,
				pending: true,
				tagKeys: map[string]struct{}{row.Tag.CompanyKey: {}},
			}
			continue
		}

		patch := ScalarPatch{
			Difficulty:     row.Difficulty,
			Topics:         row.Topics,
			Link:           row.Link,
			AcceptanceRate: row.AcceptanceRate,
			Frequency:      row.Frequency,
		}

		var newTag *domain.CompanyTag
		if _, tagged := w.tagKeys[row.Tag.CompanyKey]; !tagged {
			tag := row.Tag
			newTag = &tag
			w.tagKeys[tag.CompanyKey] = struct{}{}
		}

		if patch.Empty() && newTag == nil {
			plan.Skipped = append(plan.Skipped, row.Row)
			continue
		}

		applyPatch(w.q, patch)

		op := Op{Kind: OpUpdate, Row: row.Row, Patch: patch}
		if newTag != nil {
			op.NewTags = []domain.CompanyTag{*newTag}
		}
		if w.pending {
			// Merge into the planned insert document; no separate write.
			op.Folded = true
			op.Insert = w.q
			if newTag != nil {
				w.q.Companies = append(w.q.Companies, *newTag)
			}
		} else {
			op.QuestionID = w.q.ID
		}
		plan.Ops = append(plan.Ops, op)
	}
	return plan
}

// applyPatch folds the non-blank patch fields into the working copy so that
// later duplicate rows in the same batch see them.
func applyPatch(q *domain.Question, p ScalarPatch) {
	if p.Difficulty != "" {
		q.Difficulty = p.Difficulty
	}
	if len(p.Topics) > 0 {
		q.Topics = p.Topics
	}
	if p.Link != "" {
		q.Link = p.Link
	}
	if p.AcceptanceRate > 0 {
		q.AcceptanceRate = p.AcceptanceRate
	}
	if p.Frequency > 0 {
		q.Frequency = p.Frequency
	}
}
