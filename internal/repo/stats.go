// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides small aggregate queries over the catalog
// used by the stats and dashboard endpoints. Each function is context-aware
// and safe to call from services or handlers.
package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/preptrack/go-prep-backend/internal/domain"
)

// CompanyCount is one row of the company aggregation: a display name and the
// number of active questions tagged with that company.
type CompanyCount struct {
	Name  string `json:"name"`
	Count int64  `json:"count"`
}

// CompanyCounts groups company tags on active questions by folded company
// key, most-tagged first. MIN(company) picks a deterministic display casing
// when uploads disagreed.
func CompanyCounts(ctx context.Context, db *gorm.DB) ([]CompanyCount, error) {
	var out []CompanyCount
	err := db.WithContext(ctx).
		Model(&domain.CompanyTag{}).
		Select("MIN(company_tags.company) AS name, COUNT(*) AS count").
		Joins("JOIN questions ON questions.id = company_tags.question_id AND questions.is_active = ?", true).
		Group("company_tags.company_key").
		Order("count DESC, name ASC").
		Scan(&out).Error
	return out, err
}

// DifficultyCounts returns the number of active questions per difficulty.
// Difficulties without questions are present with a zero count.
func DifficultyCounts(ctx context.Context, db *gorm.DB) (map[string]int64, error) {
	var rows []struct {
		Difficulty string
		Count      int64
	}
	err := db.WithContext(ctx).
		Model(&domain.Question{}).
		Select("difficulty, COUNT(*) AS count").
		Where("is_active = ?", true).
		Group("difficulty").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	out := map[string]int64{
		domain.DifficultyEasy:   0,
		domain.DifficultyMedium: 0,
		domain.DifficultyHard:   0,
	}
	for _, r := range rows {
		out[r.Difficulty] = r.Count
	}
	return out, nil
}

// CountActiveQuestions returns the total number of active catalog entries.
func CountActiveQuestions(ctx context.Context, db *gorm.DB) (int64, error) {
	var total int64
	err := db.WithContext(ctx).
		Model(&domain.Question{}).
		Where("is_active = ?", true).
		Count(&total).Error
	return total, err
}

// CountByBucket returns how many active questions carry at least one company
// tag in the given recency bucket.
func CountByBucket(ctx context.Context, db *gorm.DB, bucket domain.AskedWithin) (int64, error) {
	var total int64
	err := db.WithContext(ctx).
		Model(&domain.Question{}).
		Where("is_active = ?", true).
		Where("EXISTS (SELECT 1 FROM company_tags ct WHERE ct.question_id = questions.id AND ct.asked_within = ?)", string(bucket)).
		Count(&total).Error
	return total, err
}

// CountTrackedUsers returns the number of distinct users holding at least one
// tracking row; the admin dashboard reports it as the user total.
func CountTrackedUsers(ctx context.Context, db *gorm.DB) (int64, error) {
	var total int64
	err := db.WithContext(ctx).
		Model(&domain.Tracking{}).
		Distinct("user_id").
		Count(&total).Error
	return total, err
}
