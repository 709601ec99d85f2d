// Package services – RequestService
//
// This file implements RequestService, which owns company requests and their
// message threads. Access rules: a thread belongs to its creator, admins may
// read and post anywhere, and once a request leaves pending only admins may
// still reply (the status transition posts a system message so the creator
// sees the outcome inline).
package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"gorm.io/gorm"

	"github.com/preptrack/go-prep-backend/internal/domain"
	"github.com/preptrack/go-prep-backend/internal/repo"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// RequestService provides company-request operations.
type RequestService struct {
	// DB is the GORM handle used for persistence.
	DB *gorm.DB
}

// NewRequestService constructs a RequestService.
func NewRequestService(db *gorm.DB) *RequestService {
	return &RequestService{DB: db}
}

// Create opens a request for company on behalf of userID, optionally seeding
// the thread with a first message.
func (s *RequestService) Create(ctx context.Context, userID, company, message string) (*domain.CompanyRequest, error) {
	tr := otel.Tracer("services/RequestService")
	ctx, span := tr.Start(ctx, "Create",
		trace.WithAttributes(attribute.String("user.id", userID)),
	)
	defer span.End()

	company = strings.TrimSpace(company)
	if company == "" {
		return nil, ErrEmptyCompanyName
	}
	message = strings.TrimSpace(message)
	if utf8.RuneCountInString(message) > domain.MaxRequestMessageLen {
		return nil, ErrMessageTooLong
	}

	r := &domain.CompanyRequest{
		UserID:  userID,
		Company: company,
		Status:  domain.RequestStatusPending,
	}
	if message != "" {
		r.Messages = []domain.RequestMessage{{SenderID: userID, Content: message}}
	}
	if err := repo.CreateRequest(ctx, s.DB, r); err != nil {
		return nil, err
	}
	return r, nil
}

// List returns requests with threads preloaded. Admins see everything;
// everyone else sees only their own.
func (s *RequestService) List(ctx context.Context, userID string, isAdmin bool) ([]domain.CompanyRequest, error) {
	scope := userID
	if isAdmin {
		scope = ""
	}
	return repo.ListRequests(ctx, s.DB, scope)
}

// Get fetches one request, enforcing the creator-or-admin rule.
func (s *RequestService) Get(ctx context.Context, id, userID string, isAdmin bool) (*domain.CompanyRequest, error) {
	r, err := repo.GetRequest(ctx, s.DB, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRequestNotFound
		}
		return nil, err
	}
	if !isAdmin && r.UserID != userID {
		return nil, ErrForbiddenRequest
	}
	return r, nil
}

// AddMessage appends one message to a request's thread. Only the creator and
// admins may post; non-admins are blocked once the request leaves pending.
func (s *RequestService) AddMessage(ctx context.Context, id, senderID, content string, isAdmin bool) (*domain.RequestMessage, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, ErrEmptyMessage
	}
	if utf8.RuneCountInString(content) > domain.MaxRequestMessageLen {
		return nil, ErrMessageTooLong
	}

	r, err := s.Get(ctx, id, senderID, isAdmin)
	if err != nil {
		return nil, err
	}
	if !isAdmin && r.Status != domain.RequestStatusPending {
		return nil, ErrRequestClosed
	}

	m := &domain.RequestMessage{SenderID: senderID, Content: content}
	if err := repo.AppendRequestMessage(ctx, s.DB, r.ID, m); err != nil {
		return nil, err
	}
	return m, nil
}

// UpdateStatus transitions a request (admin only at the handler layer) and
// records the outcome in the thread as a system message.
func (s *RequestService) UpdateStatus(ctx context.Context, id, adminID, status string) error {
	if !domain.ValidRequestStatus(status) {
		return ErrInvalidStatus
	}
	if err := repo.UpdateRequestStatus(ctx, s.DB, id, status); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrRequestNotFound
		}
		return err
	}
	note := &domain.RequestMessage{
		SenderID: adminID,
		Content:  fmt.Sprintf("Request marked as %s.", status),
		IsSystem: true,
	}
	return repo.AppendRequestMessage(ctx, s.DB, id, note)
}
