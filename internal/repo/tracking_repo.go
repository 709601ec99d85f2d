// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the Tracking
// model (per-user progress on questions).
package repo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/preptrack/go-prep-backend/internal/domain"
)

// TrackingFilter narrows tracking queries. Nil pointers disable the filter.
type TrackingFilter struct {
	IsSolved *bool
	IsRevise *bool
}

// CreateTracking inserts a tracking row. ID and UTC timestamp are assigned
// here. The (user_id, question_id) unique index maps violations to
// ErrDuplicate.
func CreateTracking(ctx context.Context, db *gorm.DB, t *domain.Tracking) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	t.CreatedAt = time.Now().UTC()
	if err := db.WithContext(ctx).Create(t).Error; err != nil {
		if isDuplicate(err) {
			return ErrDuplicate
		}
		return err
	}
	return nil
}

// GetTracking fetches the tracking row for one (user, question) pair.
func GetTracking(ctx context.Context, db *gorm.DB, userID, questionID string) (*domain.Tracking, error) {
	var t domain.Tracking
	err := db.WithContext(ctx).
		Where("user_id = ? AND question_id = ?", userID, questionID).
		First(&t).Error
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// UpdateTracking applies a partial column update to one tracking row.
func UpdateTracking(ctx context.Context, db *gorm.DB, id string, fields map[string]any) error {
	res := db.WithContext(ctx).
		Model(&domain.Tracking{}).
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

// applyTrackingFilter scopes a query to one user plus the optional flags.
func applyTrackingFilter(db *gorm.DB, userID string, f TrackingFilter) *gorm.DB {
	q := db.Where("user_id = ?", userID)
	if f.IsSolved != nil {
		q = q.Where("is_solved = ?", *f.IsSolved)
	}
	if f.IsRevise != nil {
		q = q.Where("is_revise = ?", *f.IsRevise)
	}
	return q
}

// ListTrackingPage returns one page of a user's tracking rows, most recently
// touched first, with questions preloaded.
func ListTrackingPage(ctx context.Context, db *gorm.DB, userID string, f TrackingFilter, offset, limit int) ([]domain.Tracking, error) {
	var out []domain.Tracking
	err := applyTrackingFilter(db.WithContext(ctx), userID, f).
		Preload("Question").
		Order("updated_at DESC, id ASC").
		Offset(offset).
		Limit(limit).
		Find(&out).Error
	return out, err
}

// CountTracking returns the total rows matching the filter for pagination.
func CountTracking(ctx context.Context, db *gorm.DB, userID string, f TrackingFilter) (int64, error) {
	var total int64
	err := applyTrackingFilter(db.WithContext(ctx).Model(&domain.Tracking{}), userID, f).
		Count(&total).Error
	return total, err
}

// TrackingByQuestionIDs returns the user's tracking rows for the given
// questions, keyed by question id. Used to decorate catalog pages.
func TrackingByQuestionIDs(ctx context.Context, db *gorm.DB, userID string, questionIDs []string) (map[string]domain.Tracking, error) {
	if len(questionIDs) == 0 {
		return map[string]domain.Tracking{}, nil
	}
	var rows []domain.Tracking
	err := db.WithContext(ctx).
		Where("user_id = ? AND question_id IN ?", userID, questionIDs).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make(map[string]domain.Tracking, len(rows))
	for _, r := range rows {
		out[r.QuestionID] = r
	}
	return out, nil
}

// ListAllTracking returns every tracking row for a user with questions
// preloaded; the stats aggregation walks the full set.
func ListAllTracking(ctx context.Context, db *gorm.DB, userID string) ([]domain.Tracking, error) {
	var out []domain.Tracking
	err := db.WithContext(ctx).
		Preload("Question.Companies").
		Where("user_id = ?", userID).
		Find(&out).Error
	return out, err
}

// RecentlySolved returns the user's latest solved questions, newest solve
// first.
func RecentlySolved(ctx context.Context, db *gorm.DB, userID string, limit int) ([]domain.Tracking, error) {
	var out []domain.Tracking
	err := db.WithContext(ctx).
		Preload("Question").
		Where("user_id = ? AND is_solved = ?", userID, true).
		Order("solved_at DESC").
		Limit(limit).
		Find(&out).Error
	return out, err
}

// DeleteTracking removes the row for one (user, question) pair, returning
// ErrNotFound when none exists.
func DeleteTracking(ctx context.Context, db *gorm.DB, userID, questionID string) error {
	res := db.WithContext(ctx).
		Where("user_id = ? AND question_id = ?", userID, questionID).
		Delete(&domain.Tracking{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
