// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for company
// requests and their message threads.
package repo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/preptrack/go-prep-backend/internal/domain"
)

// CreateRequest inserts a company request together with any initial messages.
// IDs and UTC timestamps are assigned here.
func CreateRequest(ctx context.Context, db *gorm.DB, r *domain.CompanyRequest) error {
	now := time.Now().UTC()
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	if r.Status == "" {
		r.Status = domain.RequestStatusPending
	}
	r.CreatedAt = now
	for i := range r.Messages {
		if r.Messages[i].ID == "" {
			r.Messages[i].ID = uuid.NewString()
		}
		r.Messages[i].RequestID = r.ID
		r.Messages[i].CreatedAt = now
	}
	return db.WithContext(ctx).Create(r).Error
}

// GetRequest fetches one request by id with its thread preloaded, oldest
// message first.
func GetRequest(ctx context.Context, db *gorm.DB, id string) (*domain.CompanyRequest, error) {
	var r domain.CompanyRequest
	err := db.WithContext(ctx).
		Preload("Messages", func(tx *gorm.DB) *gorm.DB {
			return tx.Order("created_at ASC, id ASC")
		}).
		Where("id = ?", id).
		First(&r).Error
	if err != nil {
		return nil, err
	}
	return &r, nil
}

// ListRequests returns requests newest first, threads preloaded. When userID
// is non-empty only that user's requests are returned; admins pass "" to see
// everything.
func ListRequests(ctx context.Context, db *gorm.DB, userID string) ([]domain.CompanyRequest, error) {
	q := db.WithContext(ctx).
		Preload("Messages", func(tx *gorm.DB) *gorm.DB {
			return tx.Order("created_at ASC, id ASC")
		}).
		Order("created_at DESC")
	if userID != "" {
		q = q.Where("user_id = ?", userID)
	}
	var out []domain.CompanyRequest
	err := q.Find(&out).Error
	return out, err
}

// AppendRequestMessage adds one message to a request's thread and bumps the
// parent's updated_at so list ordering reflects thread activity.
func AppendRequestMessage(ctx context.Context, db *gorm.DB, requestID string, m *domain.RequestMessage) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if m.ID == "" {
			m.ID = uuid.NewString()
		}
		m.RequestID = requestID
		m.CreatedAt = time.Now().UTC()
		if err := tx.Create(m).Error; err != nil {
			return err
		}
		res := tx.Model(&domain.CompanyRequest{}).
			Where("id = ?", requestID).
			Update("updated_at", m.CreatedAt)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

// UpdateRequestStatus transitions a request to status, returning ErrNotFound
// for an unknown id.
func UpdateRequestStatus(ctx context.Context, db *gorm.DB, id, status string) error {
	res := db.WithContext(ctx).
		Model(&domain.CompanyRequest{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"status":     status,
			"updated_at": time.Now().UTC(),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
