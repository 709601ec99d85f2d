package repo

import (
	"context"
	"testing"
	"time"

	"github.com/preptrack/go-prep-backend/internal/domain"
	"gorm.io/gorm"
)

func newRequestDB(t *testing.T) *gorm.DB {
	t.Helper()
	return newRepoDB(t, &domain.CompanyRequest{}, &domain.RequestMessage{})
}

func TestCreateRequest_Error_NoTable(t *testing.T) {
	db := newRepoDB(t /* no migrations */)
	err := CreateRequest(context.Background(), db, &domain.CompanyRequest{UserID: "u1", Company: "Stripe"})
	if err == nil {
		t.Fatal("expected error creating without table")
	}
}

func TestCreateRequest_WithInitialMessage(t *testing.T) {
	db := newRequestDB(t)
	ctx := context.Background()

	r := &domain.CompanyRequest{
		UserID:  "u1",
		Company: "Stripe",
		Messages: []domain.RequestMessage{
			{SenderID: "u1", Content: "please add Stripe questions"},
		},
	}
	if err := CreateRequest(ctx, db, r); err != nil {
		t.Fatalf("CreateRequest: %v", err)
	}
	if r.ID == "" || r.Status != domain.RequestStatusPending {
		t.Fatalf("fields not assigned: %+v", r)
	}

	got, err := GetRequest(ctx, db, r.ID)
	if err != nil {
		t.Fatalf("GetRequest: %v", err)
	}
	if len(got.Messages) != 1 || got.Messages[0].RequestID != r.ID {
		t.Fatalf("message not linked: %+v", got.Messages)
	}

	if _, err := GetRequest(ctx, db, "missing"); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestListRequests_ScopeAndOrder(t *testing.T) {
	db := newRequestDB(t)
	ctx := context.Background()

	first := &domain.CompanyRequest{UserID: "u1", Company: "Stripe"}
	if err := CreateRequest(ctx, db, first); err != nil {
		t.Fatalf("seed first: %v", err)
	}
	// Force distinct created_at so the DESC ordering is observable.
	if err := db.Model(first).Update("created_at", time.Now().UTC().Add(-time.Hour)).Error; err != nil {
		t.Fatalf("backdate: %v", err)
	}
	second := &domain.CompanyRequest{UserID: "u1", Company: "Databricks"}
	if err := CreateRequest(ctx, db, second); err != nil {
		t.Fatalf("seed second: %v", err)
	}
	other := &domain.CompanyRequest{UserID: "u2", Company: "Plaid"}
	if err := CreateRequest(ctx, db, other); err != nil {
		t.Fatalf("seed other: %v", err)
	}

	mine, err := ListRequests(ctx, db, "u1")
	if err != nil {
		t.Fatalf("ListRequests(u1): %v", err)
	}
	if len(mine) != 2 || mine[0].Company != "Databricks" {
		t.Fatalf("unexpected scoped list: %+v", mine)
	}

	all, err := ListRequests(ctx, db, "")
	if err != nil {
		t.Fatalf("ListRequests(all): %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("all len = %d, want 3", len(all))
	}
}

func TestAppendRequestMessage_BumpsParent(t *testing.T) {
	db := newRequestDB(t)
	ctx := context.Background()

	r := &domain.CompanyRequest{UserID: "u1", Company: "Stripe"}
	if err := CreateRequest(ctx, db, r); err != nil {
		t.Fatalf("CreateRequest: %v", err)
	}
	if err := db.Model(r).Update("updated_at", time.Now().UTC().Add(-time.Hour)).Error; err != nil {
		t.Fatalf("backdate: %v", err)
	}

	m := &domain.RequestMessage{SenderID: "admin", Content: "on it", IsSystem: false}
	if err := AppendRequestMessage(ctx, db, r.ID, m); err != nil {
		t.Fatalf("AppendRequestMessage: %v", err)
	}

	got, err := GetRequest(ctx, db, r.ID)
	if err != nil {
		t.Fatalf("GetRequest: %v", err)
	}
	if len(got.Messages) != 1 || got.Messages[0].Content != "on it" {
		t.Fatalf("message missing: %+v", got.Messages)
	}
	if got.UpdatedAt.Before(time.Now().UTC().Add(-time.Minute)) {
		t.Fatalf("updated_at not bumped: %v", got.UpdatedAt)
	}

	err = AppendRequestMessage(ctx, db, "missing", &domain.RequestMessage{SenderID: "u1", Content: "hi"})
	if err != ErrNotFound {
		t.Fatalf("expected ErrNotFound for unknown request, got %v", err)
	}
}

func TestUpdateRequestStatus(t *testing.T) {
	db := newRequestDB(t)
	ctx := context.Background()

	r := &domain.CompanyRequest{UserID: "u1", Company: "Stripe"}
	if err := CreateRequest(ctx, db, r); err != nil {
		t.Fatalf("CreateRequest: %v", err)
	}

	if err := UpdateRequestStatus(ctx, db, r.ID, domain.RequestStatusCompleted); err != nil {
		t.Fatalf("UpdateRequestStatus: %v", err)
	}
	got, err := GetRequest(ctx, db, r.ID)
	if err != nil {
		t.Fatalf("GetRequest: %v", err)
	}
	if got.Status != domain.RequestStatusCompleted {
		t.Fatalf("status = %q, want completed", got.Status)
	}

	if err := UpdateRequestStatus(ctx, db, "missing", domain.RequestStatusRejected); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
