// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the Question
// model and its embedded company tags.
//
// All functions are context-aware and accept a *gorm.DB handle, making them
// safe for use within transactions or connection-scoped operations.
// They follow the "thin repository" approach: no business logic, only CRUD
// persistence and query composition.
//
// Error semantics:
//   - When a question is not found, functions return gorm.ErrRecordNotFound
//     (also exported here as ErrNotFound).
//   - AppendCompanyTag maps a unique violation on (question_id, company_key)
//     to a false "appended" result rather than an error; this is the atomic
//     add-tag-if-absent primitive the import pipeline relies on under
//     concurrent uploads.
//   - On other DB errors, the raw gorm error is propagated.
package repo

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/preptrack/go-prep-backend/internal/domain"
)

// QuestionFilter captures the catalog query parameters. Zero values disable
// the corresponding filter.
type QuestionFilter struct {
	Company    string             // substring, case-insensitive
	Difficulty string             // exact
	Topics     []string           // membership: any of
	Bucket     domain.AskedWithin // recency bucket on any company tag
	Search     string             // substring over title or topics
}

// CreateQuestion inserts a question together with its company tags. IDs and
// UTC timestamps are assigned here; the caller's document is updated in
// place.
func CreateQuestion(ctx context.Context, db *gorm.DB, q *domain.Question) error {
	now := time.Now().UTC()
	if q.ID == "" {
		q.ID = uuid.NewString()
	}
	q.CreatedAt = now
	for i := range q.Companies {
		if q.Companies[i].ID == "" {
			q.Companies[i].ID = uuid.NewString()
		}
		q.Companies[i].QuestionID = q.ID
		q.Companies[i].CreatedAt = now
	}
	return db.WithContext(ctx).Create(q).Error
}

// GetQuestion fetches one active question by id with its company tags.
// Returns ErrNotFound for missing or inactive rows.
func GetQuestion(ctx context.Context, db *gorm.DB, id string) (*domain.Question, error) {
	var q domain.Question
	err := db.WithContext(ctx).
		Preload("Companies").
		Where("id = ? AND is_active = ?", id, true).
		First(&q).Error
	if err != nil {
		return nil, err
	}
	return &q, nil
}

// FindByTitles returns every question whose title appears in titles, with
// company tags preloaded. This is the reconciliation snapshot: matching by
// title keeps the query narrow, the engine then keys on (title, link).
// Inactive rows are included on purpose, since they still occupy the natural
// key and must match rather than collide on insert.
func FindByTitles(ctx context.Context, db *gorm.DB, titles []string) ([]domain.Question, error) {
	if len(titles) == 0 {
		return nil, nil
	}
	var out []domain.Question
	err := db.WithContext(ctx).
		Preload("Companies").
		Where("title IN ?", titles).
		Find(&out).Error
	return out, err
}

// UpdateQuestionFields applies a partial column update to one question.
// Returns ErrNotFound when the id does not exist.
func UpdateQuestionFields(ctx context.Context, db *gorm.DB, id string, fields map[string]any) error {
	if len(fields) == 0 {
		return nil
	}
	res := db.WithContext(ctx).
		Model(&domain.Question{}).
		Where("id = ?", id).
		Updates(fields)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// AppendCompanyTag inserts a company tag for questionID if that company is
// not already present. The (question_id, company_key) unique index resolves
// the race between concurrent uploads: a duplicate violation means another
// writer got there first and the call reports appended=false with no error.
func AppendCompanyTag(ctx context.Context, db *gorm.DB, questionID string, tag domain.CompanyTag) (appended bool, err error) {
	tag.ID = uuid.NewString()
	tag.QuestionID = questionID
	tag.CreatedAt = time.Now().UTC()
	if tag.CompanyKey == "" {
		tag.CompanyKey = domain.CompanyKey(tag.Company)
	}
	if err := db.WithContext(ctx).Create(&tag).Error; err != nil {
		if isDuplicate(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// applyQuestionFilter composes the WHERE clauses for a catalog query. Company
// and bucket filters may match different tags on the same question, mirroring
// the non-elemMatch semantics of the public query contract.
func applyQuestionFilter(db *gorm.DB, f QuestionFilter) *gorm.DB {
	q := db.Where("questions.is_active = ?", true)

	if f.Company != "" {
		pat := "%" + strings.ToLower(f.Company) + "%"
		q = q.Where("EXISTS (SELECT 1 FROM company_tags ct WHERE ct.question_id = questions.id AND ct.company_key LIKE ?)", pat)
	}
	if f.Difficulty != "" {
		q = q.Where("questions.difficulty = ?", f.Difficulty)
	}
	if f.Bucket != "" {
		q = q.Where("EXISTS (SELECT 1 FROM company_tags ct WHERE ct.question_id = questions.id AND ct.asked_within = ?)", string(f.Bucket))
	}
	if len(f.Topics) > 0 {
		// Topics are stored JSON-encoded; membership is an exact quoted match.
		clause := q.Session(&gorm.Session{NewDB: true})
		sub := clause.Where("1 = 0")
		for _, t := range f.Topics {
			sub = sub.Or("questions.topics LIKE ?", "%"+jsonQuoted(t)+"%")
		}
		q = q.Where(sub)
	}
	if f.Search != "" {
		pat := "%" + strings.ToLower(f.Search) + "%"
		q = q.Where("LOWER(questions.title) LIKE ? OR LOWER(questions.topics) LIKE ?", pat, pat)
	}
	return q
}

// jsonQuoted wraps a topic the way it appears inside the serialized list.
func jsonQuoted(s string) string {
	return fmt.Sprintf("%q", s)
}

// ListQuestions returns one page of the filtered catalog, newest first, with
// company tags preloaded.
func ListQuestions(ctx context.Context, db *gorm.DB, f QuestionFilter, offset, limit int) ([]domain.Question, error) {
	var out []domain.Question
	q := applyQuestionFilter(db.WithContext(ctx).Model(&domain.Question{}), f).
		Preload("Companies").
		Order("questions.created_at DESC, questions.id ASC")
	if offset > 0 {
		q = q.Offset(offset)
	}
	if limit > 0 {
		q = q.Limit(limit)
	}
	err := q.Find(&out).Error
	return out, err
}

// CountQuestions returns the total number of questions matching the filter.
func CountQuestions(ctx context.Context, db *gorm.DB, f QuestionFilter) (int64, error) {
	var total int64
	err := applyQuestionFilter(db.WithContext(ctx).Model(&domain.Question{}), f).
		Count(&total).Error
	return total, err
}

// DistinctTopics returns the sorted set of topics across active questions.
// Topic lists are JSON text columns, so the merge happens here rather than in
// SQL.
func DistinctTopics(ctx context.Context, db *gorm.DB) ([]string, error) {
	var rows []domain.Question
	err := db.WithContext(ctx).
		Select("topics").
		Where("is_active = ?", true).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	seen := make(map[string]struct{})
	var out []string
	for _, r := range rows {
		for _, t := range r.Topics {
			if t == "" {
				continue
			}
			if _, ok := seen[t]; !ok {
				seen[t] = struct{}{}
				out = append(out, t)
			}
		}
	}
	sort.Strings(out)
	return out, nil
}

// RecentQuestions returns the newest active questions, tags preloaded.
func RecentQuestions(ctx context.Context, db *gorm.DB, limit int) ([]domain.Question, error) {
	var out []domain.Question
	err := db.WithContext(ctx).
		Preload("Companies").
		Where("is_active = ?", true).
		Order("created_at DESC").
		Limit(limit).
		Find(&out).Error
	return out, err
}

// DeleteQuestion removes a question, its company tags (FK cascade), and any
// tracking rows pointing at it. Returns ErrNotFound when the id is unknown.
func DeleteQuestion(ctx context.Context, db *gorm.DB, id string) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("id = ?", id).Delete(&domain.Question{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		if err := tx.Where("question_id = ?", id).Delete(&domain.CompanyTag{}).Error; err != nil {
			return err
		}
		return tx.Where("question_id = ?", id).Delete(&domain.Tracking{}).Error
	})
}
