// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides the Metadata singleton used for
// client-side cache invalidation.
package repo

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/preptrack/go-prep-backend/internal/domain"
)

// UpsertMetadata writes the value for key, creating the row when absent and
// overwriting it otherwise. Idempotent: the latest call always wins.
func UpsertMetadata(ctx context.Context, db *gorm.DB, key string, value int64) error {
	rec := domain.Metadata{
		Key:       key,
		Value:     value,
		UpdatedAt: time.Now().UTC(),
	}
	return db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
		}).
		Create(&rec).Error
}

// GetMetadata fetches one metadata row, or ErrNotFound when the key has never
// been written.
func GetMetadata(ctx context.Context, db *gorm.DB, key string) (*domain.Metadata, error) {
	var rec domain.Metadata
	err := db.WithContext(ctx).Where("key = ?", key).First(&rec).Error
	if err != nil {
		return nil, err
	}
	return &rec, nil
}
