// Package services – TrackingService
//
// This file implements TrackingService, which owns per-user progress on
// questions. Upsert is the only write path: a first touch creates the row, a
// later touch patches it, and solvedAt follows the isSolved flag (stamped when
// it flips true, cleared when false).
package services

import (
	"context"
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"gorm.io/gorm"

	"github.com/preptrack/go-prep-backend/internal/domain"
	"github.com/preptrack/go-prep-backend/internal/repo"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// TrackingUpdate carries the upsert fields. Nil pointers leave the stored
// value alone.
type TrackingUpdate struct {
	IsSolved *bool
	IsRevise *bool
	Notes    *string
}

// TrackingPage is one page of a user's progress records.
type TrackingPage struct {
	Items      []domain.Tracking `json:"items"`
	Total      int64             `json:"total"`
	Page       int               `json:"page"`
	PageSize   int               `json:"pageSize"`
	TotalPages int               `json:"totalPages"`
}

// TrackingStats is the per-user progress summary.
type TrackingStats struct {
	TotalTracked   int64             `json:"totalTracked"`
	Solved         int64             `json:"solved"`
	Revising       int64             `json:"revising"`
	ByDifficulty   map[string]int64  `json:"solvedByDifficulty"`
	ByCompany      map[string]int64  `json:"solvedByCompany"`
	RecentlySolved []domain.Tracking `json:"recentlySolved"`
}

// TrackingService provides progress reads and the upsert write path.
type TrackingService struct {
	// DB is the GORM handle used for persistence.
	DB *gorm.DB
}

// NewTrackingService constructs a TrackingService.
func NewTrackingService(db *gorm.DB) *TrackingService {
	return &TrackingService{DB: db}
}

// Upsert creates or patches the user's progress on one question. The question
// must exist and be active.
func (s *TrackingService) Upsert(ctx context.Context, userID, questionID string, in TrackingUpdate) (*domain.Tracking, error) {
	tr := otel.Tracer("services/TrackingService")
	ctx, span := tr.Start(ctx, "Upsert",
		trace.WithAttributes(
			attribute.String("user.id", userID),
			attribute.String("question.id", questionID),
		),
	)
	defer span.End()

	if in.Notes != nil {
		n := strings.TrimSpace(*in.Notes)
		if utf8.RuneCountInString(n) > domain.MaxTrackingNotesLen {
			return nil, ErrNotesTooLong
		}
		in.Notes = &n
	}

	if _, err := repo.GetQuestion(ctx, s.DB, questionID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrQuestionNotFound
		}
		return nil, err
	}

	existing, err := repo.GetTracking(ctx, s.DB, userID, questionID)
	switch {
	case err == nil:
		return s.patch(ctx, existing, in)
	case errors.Is(err, gorm.ErrRecordNotFound):
		return s.create(ctx, userID, questionID, in)
	default:
		return nil, err
	}
}

func (s *TrackingService) create(ctx context.Context, userID, questionID string, in TrackingUpdate) (*domain.Tracking, error) {
	t := &domain.Tracking{UserID: userID, QuestionID: questionID}
	if in.IsSolved != nil {
		t.IsSolved = *in.IsSolved
	}
	if in.IsRevise != nil {
		t.IsRevise = *in.IsRevise
	}
	if in.Notes != nil {
		t.Notes = *in.Notes
	}
	if t.IsSolved {
		now := time.Now().UTC()
		t.SolvedAt = &now
	}
	if err := repo.CreateTracking(ctx, s.DB, t); err != nil {
		if errors.Is(err, repo.ErrDuplicate) {
			// Lost a race with a concurrent upsert; fall through to patch.
			if existing, gerr := repo.GetTracking(ctx, s.DB, userID, questionID); gerr == nil {
				return s.patch(ctx, existing, in)
			}
		}
		return nil, err
	}
	return t, nil
}

func (s *TrackingService) patch(ctx context.Context, t *domain.Tracking, in TrackingUpdate) (*domain.Tracking, error) {
	fields := make(map[string]any, 5)
	if in.IsSolved != nil && *in.IsSolved != t.IsSolved {
		fields["is_solved"] = *in.IsSolved
		t.IsSolved = *in.IsSolved
		if *in.IsSolved {
			now := time.Now().UTC()
			fields["solved_at"] = now
			t.SolvedAt = &now
		} else {
			fields["solved_at"] = gorm.Expr("NULL")
			t.SolvedAt = nil
		}
	}
	if in.IsRevise != nil && *in.IsRevise != t.IsRevise {
		fields["is_revise"] = *in.IsRevise
		t.IsRevise = *in.IsRevise
	}
	if in.Notes != nil && *in.Notes != t.Notes {
		fields["notes"] = *in.Notes
		t.Notes = *in.Notes
	}
	if len(fields) == 0 {
		return t, nil
	}
	fields["updated_at"] = time.Now().UTC()
	if err := repo.UpdateTracking(ctx, s.DB, t.ID, fields); err != nil {
		return nil, err
	}
	return t, nil
}

// ListPage returns one page of the user's progress, most recently touched
// first, with questions preloaded.
func (s *TrackingService) ListPage(ctx context.Context, userID string, f repo.TrackingFilter, page, pageSize int) (*TrackingPage, error) {
	if page < 1 {
		page = 1
	}
	if pageSize <= 0 || pageSize > 100 {
		pageSize = 20
	}

	total, err := repo.CountTracking(ctx, s.DB, userID, f)
	if err != nil {
		return nil, err
	}
	out := &TrackingPage{
		Items:    []domain.Tracking{},
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	}
	if total == 0 {
		return out, nil
	}
	out.TotalPages = int((total + int64(pageSize) - 1) / int64(pageSize))

	out.Items, err = repo.ListTrackingPage(ctx, s.DB, userID, f, (page-1)*pageSize, pageSize)
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Stats aggregates the user's progress: totals, solved counts by difficulty
// and company, and the latest solves.
func (s *TrackingService) Stats(ctx context.Context, userID string) (*TrackingStats, error) {
	tr := otel.Tracer("services/TrackingService")
	ctx, span := tr.Start(ctx, "Stats",
		trace.WithAttributes(attribute.String("user.id", userID)),
	)
	defer span.End()

	rows, err := repo.ListAllTracking(ctx, s.DB, userID)
	if err != nil {
		return nil, err
	}

	out := &TrackingStats{
		TotalTracked: int64(len(rows)),
		ByDifficulty: map[string]int64{
			domain.DifficultyEasy:   0,
			domain.DifficultyMedium: 0,
			domain.DifficultyHard:   0,
		},
		ByCompany:      map[string]int64{},
		RecentlySolved: []domain.Tracking{},
	}
	for _, t := range rows {
		if t.IsRevise {
			out.Revising++
		}
		if !t.IsSolved {
			continue
		}
		out.Solved++
		if t.Question == nil {
			continue
		}
		out.ByDifficulty[t.Question.Difficulty]++
		for _, tag := range t.Question.Companies {
			out.ByCompany[tag.Company]++
		}
	}

	out.RecentlySolved, err = repo.RecentlySolved(ctx, s.DB, userID, 5)
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Delete removes the user's progress on one question.
func (s *TrackingService) Delete(ctx context.Context, userID, questionID string) error {
	if err := repo.DeleteTracking(ctx, s.DB, userID, questionID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTrackingNotFound
		}
		return err
	}
	return nil
}
