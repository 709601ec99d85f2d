package services

import (
	"context"
	"strings"
	"testing"

	"github.com/preptrack/go-prep-backend/internal/domain"
	"github.com/preptrack/go-prep-backend/internal/repo"
)

func TestTrackingUpsert_CreateThenPatch(t *testing.T) {
	db := newSvcDB(t)
	svc := NewTrackingService(db)
	ctx := context.Background()

	q := seedSvcQuestion(t, db, "Two Sum", domain.DifficultyEasy, "Google")

	got, err := svc.Upsert(ctx, "u1", q.ID, TrackingUpdate{IsSolved: boolPtrSvc(true)})
	if err != nil {
		t.Fatalf("first upsert: %v", err)
	}
	if !got.IsSolved || got.SolvedAt == nil {
		t.Fatalf("solvedAt not stamped: %+v", got)
	}

	got, err = svc.Upsert(ctx, "u1", q.ID, TrackingUpdate{
		IsRevise: boolPtrSvc(true),
		Notes:    strPtr("  two pointers  "),
	})
	if err != nil {
		t.Fatalf("second upsert: %v", err)
	}
	if !got.IsSolved || !got.IsRevise || got.Notes != "two pointers" {
		t.Fatalf("patch lost state: %+v", got)
	}

	// Unsolving clears the solve timestamp.
	got, err = svc.Upsert(ctx, "u1", q.ID, TrackingUpdate{IsSolved: boolPtrSvc(false)})
	if err != nil {
		t.Fatalf("unsolve: %v", err)
	}
	if got.IsSolved || got.SolvedAt != nil {
		t.Fatalf("solvedAt not cleared: %+v", got)
	}
	stored, err := repo.GetTracking(ctx, db, "u1", q.ID)
	if err != nil {
		t.Fatalf("GetTracking: %v", err)
	}
	if stored.IsSolved || stored.SolvedAt != nil || !stored.IsRevise {
		t.Fatalf("stored row out of step: %+v", stored)
	}
}

func TestTrackingUpsert_Validation(t *testing.T) {
	db := newSvcDB(t)
	svc := NewTrackingService(db)
	ctx := context.Background()

	if _, err := svc.Upsert(ctx, "u1", "missing", TrackingUpdate{IsSolved: boolPtrSvc(true)}); err != ErrQuestionNotFound {
		t.Fatalf("unknown question: got %v", err)
	}

	q := seedSvcQuestion(t, db, "Two Sum", domain.DifficultyEasy)
	long := strings.Repeat("x", domain.MaxTrackingNotesLen+1)
	if _, err := svc.Upsert(ctx, "u1", q.ID, TrackingUpdate{Notes: &long}); err != ErrNotesTooLong {
		t.Fatalf("long notes: got %v", err)
	}
}

func TestTrackingListPage(t *testing.T) {
	db := newSvcDB(t)
	svc := NewTrackingService(db)
	ctx := context.Background()

	for i, solved := range []bool{true, true, false} {
		q := seedSvcQuestion(t, db, "Q"+string(rune('A'+i)), domain.DifficultyEasy)
		if _, err := svc.Upsert(ctx, "u1", q.ID, TrackingUpdate{IsSolved: boolPtrSvc(solved)}); err != nil {
			t.Fatalf("seed %d: %v", i, err)
		}
	}

	page, err := svc.ListPage(ctx, "u1", repo.TrackingFilter{IsSolved: boolPtrSvc(true)}, 1, 20)
	if err != nil {
		t.Fatalf("ListPage: %v", err)
	}
	if page.Total != 2 || len(page.Items) != 2 {
		t.Fatalf("page = %+v", page)
	}
	for _, item := range page.Items {
		if item.Question == nil {
			t.Fatalf("question not preloaded: %+v", item)
		}
	}

	empty, err := svc.ListPage(ctx, "u2", repo.TrackingFilter{}, 1, 20)
	if err != nil {
		t.Fatalf("ListPage u2: %v", err)
	}
	if empty.Total != 0 || len(empty.Items) != 0 {
		t.Fatalf("expected empty page, got %+v", empty)
	}
}

func TestTrackingStats(t *testing.T) {
	db := newSvcDB(t)
	svc := NewTrackingService(db)
	ctx := context.Background()

	easy := seedSvcQuestion(t, db, "A", domain.DifficultyEasy, "Google")
	hard := seedSvcQuestion(t, db, "B", domain.DifficultyHard, "Google", "Stripe")
	open := seedSvcQuestion(t, db, "C", domain.DifficultyMedium)

	if _, err := svc.Upsert(ctx, "u1", easy.ID, TrackingUpdate{IsSolved: boolPtrSvc(true)}); err != nil {
		t.Fatalf("seed easy: %v", err)
	}
	if _, err := svc.Upsert(ctx, "u1", hard.ID, TrackingUpdate{IsSolved: boolPtrSvc(true), IsRevise: boolPtrSvc(true)}); err != nil {
		t.Fatalf("seed hard: %v", err)
	}
	if _, err := svc.Upsert(ctx, "u1", open.ID, TrackingUpdate{IsRevise: boolPtrSvc(true)}); err != nil {
		t.Fatalf("seed open: %v", err)
	}

	stats, err := svc.Stats(ctx, "u1")
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if stats.TotalTracked != 3 || stats.Solved != 2 || stats.Revising != 2 {
		t.Fatalf("stats = %+v", stats)
	}
	if stats.ByDifficulty[domain.DifficultyEasy] != 1 || stats.ByDifficulty[domain.DifficultyHard] != 1 || stats.ByDifficulty[domain.DifficultyMedium] != 0 {
		t.Fatalf("by difficulty = %+v", stats.ByDifficulty)
	}
	if stats.ByCompany["Google"] != 2 || stats.ByCompany["Stripe"] != 1 {
		t.Fatalf("by company = %+v", stats.ByCompany)
	}
	if len(stats.RecentlySolved) != 2 {
		t.Fatalf("recently solved = %d, want 2", len(stats.RecentlySolved))
	}
}

func TestTrackingDelete(t *testing.T) {
	db := newSvcDB(t)
	svc := NewTrackingService(db)
	ctx := context.Background()

	q := seedSvcQuestion(t, db, "Two Sum", domain.DifficultyEasy)
	if _, err := svc.Upsert(ctx, "u1", q.ID, TrackingUpdate{IsSolved: boolPtrSvc(true)}); err != nil {
		t.Fatalf("seed: %v", err)
	}

	if err := svc.Delete(ctx, "u1", q.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := svc.Delete(ctx, "u1", q.ID); err != ErrTrackingNotFound {
		t.Fatalf("second delete: got %v", err)
	}
}
