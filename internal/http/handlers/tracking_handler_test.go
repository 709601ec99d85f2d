package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/preptrack/go-prep-backend/internal/domain"
	"github.com/preptrack/go-prep-backend/internal/repo"
	"github.com/preptrack/go-prep-backend/internal/services"
)

// ---------- test plumbing ----------

type stubTrackingSvc struct {
	upsert func(ctx context.Context, userID, questionID string, in services.TrackingUpdate) (*domain.Tracking, error)
	list   func(ctx context.Context, userID string, f repo.TrackingFilter, page, pageSize int) (*services.TrackingPage, error)
	stats  func(ctx context.Context, userID string) (*services.TrackingStats, error)
	del    func(ctx context.Context, userID, questionID string) error
}

func (s stubTrackingSvc) Upsert(ctx context.Context, userID, questionID string, in services.TrackingUpdate) (*domain.Tracking, error) {
	return s.upsert(ctx, userID, questionID, in)
}
func (s stubTrackingSvc) ListPage(ctx context.Context, userID string, f repo.TrackingFilter, page, pageSize int) (*services.TrackingPage, error) {
	return s.list(ctx, userID, f, page, pageSize)
}
func (s stubTrackingSvc) Stats(ctx context.Context, userID string) (*services.TrackingStats, error) {
	return s.stats(ctx, userID)
}
func (s stubTrackingSvc) Delete(ctx context.Context, userID, questionID string) error {
	return s.del(ctx, userID, questionID)
}

// ---------- helpers ----------

func Test_boolQuery(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/?a=true&b=0&c=maybe", nil)
	if v := boolQuery(c, "a"); v == nil || !*v {
		t.Fatalf("a: got %v", v)
	}
	if v := boolQuery(c, "b"); v == nil || *v {
		t.Fatalf("b: got %v", v)
	}
	if v := boolQuery(c, "c"); v != nil {
		t.Fatalf("c should be nil, got %v", v)
	}
	if v := boolQuery(c, "missing"); v != nil {
		t.Fatalf("missing should be nil, got %v", v)
	}
}

// ---------- auth gate ----------

func TestTracking_AnonymousGets401(t *testing.T) {
	gin.SetMode(gin.TestMode)

	h := NewTrackingHandlers(stubTrackingSvc{})
	r := gin.New()
	r.GET("/tracking", h.ListTracking)
	r.GET("/tracking/stats", h.TrackingStats)
	r.PUT("/tracking/:questionId", h.UpsertTracking)
	r.DELETE("/tracking/:questionId", h.DeleteTracking)

	for _, tc := range []struct{ method, path string }{
		{http.MethodGet, "/tracking"},
		{http.MethodGet, "/tracking/stats"},
		{http.MethodPut, "/tracking/q1"},
		{http.MethodDelete, "/tracking/q1"},
	} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(tc.method, tc.path, nil))
		if w.Code != http.StatusUnauthorized {
			t.Fatalf("%s %s -> %d, want 401", tc.method, tc.path, w.Code)
		}
	}
}

// ---------- ListTracking ----------

func TestListTracking_ForwardsFilterAndPaging(t *testing.T) {
	gin.SetMode(gin.TestMode)

	svc := stubTrackingSvc{
		list: func(ctx context.Context, userID string, f repo.TrackingFilter, page, pageSize int) (*services.TrackingPage, error) {
			if userID != "u1" || page != 3 || pageSize != 10 {
				t.Fatalf("bad args: user=%q page=%d size=%d", userID, page, pageSize)
			}
			if f.IsSolved == nil || !*f.IsSolved || f.IsRevise != nil {
				t.Fatalf("filter wrong: %#v", f)
			}
			return &services.TrackingPage{Items: []domain.Tracking{{ID: "t1"}}, Total: 1, Page: 3, PageSize: 10, TotalPages: 1}, nil
		},
	}
	h := NewTrackingHandlers(svc)
	r := gin.New()
	r.GET("/tracking", h.ListTracking)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/tracking?is_solved=true&page=3&page_size=10", nil)
	req.Header.Set("X-User-ID", "u1")
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("list -> %d body=%s", w.Code, w.Body.String())
	}

	var out services.TrackingPage
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("json: %v", err)
	}
	if len(out.Items) != 1 || out.Items[0].ID != "t1" {
		t.Fatalf("unexpected page: %#v", out)
	}
}

// ---------- UpsertTracking ----------

func TestUpsertTracking_Success(t *testing.T) {
	gin.SetMode(gin.TestMode)

	svc := stubTrackingSvc{
		upsert: func(ctx context.Context, userID, questionID string, in services.TrackingUpdate) (*domain.Tracking, error) {
			if userID != "u1" || questionID != "q1" {
				t.Fatalf("bad args: user=%q question=%q", userID, questionID)
			}
			if in.IsSolved == nil || !*in.IsSolved || in.Notes == nil || *in.Notes != "use a heap" {
				t.Fatalf("payload wrong: %#v", in)
			}
			return &domain.Tracking{ID: "t1", UserID: userID, QuestionID: questionID, IsSolved: true}, nil
		},
	}
	h := NewTrackingHandlers(svc)
	r := gin.New()
	r.PUT("/tracking/:questionId", h.UpsertTracking)

	w := httptest.NewRecorder()
	body := bytes.NewBufferString(`{"isSolved":true,"notes":"use a heap"}`)
	req := httptest.NewRequest(http.MethodPut, "/tracking/q1", body)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-User-ID", "u1")
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("upsert -> %d body=%s", w.Code, w.Body.String())
	}

	var out domain.Tracking
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("json: %v", err)
	}
	if out.ID != "t1" || !out.IsSolved {
		t.Fatalf("unexpected tracking: %#v", out)
	}
}

func TestUpsertTracking_ErrorMappings(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		name string
		err  error
		want int
	}{
		{"question_not_found", services.ErrQuestionNotFound, http.StatusNotFound},
		{"notes_too_long", services.ErrNotesTooLong, http.StatusBadRequest},
		{"generic_500", gorm.ErrInvalidField, http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc := stubTrackingSvc{
				upsert: func(context.Context, string, string, services.TrackingUpdate) (*domain.Tracking, error) {
					return nil, tc.err
				},
			}
			h := NewTrackingHandlers(svc)
			r := gin.New()
			r.PUT("/tracking/:questionId", h.UpsertTracking)

			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPut, "/tracking/q1", bytes.NewBufferString(`{"isSolved":true}`))
			req.Header.Set("Content-Type", "application/json")
			req.Header.Set("X-User-ID", "u1")
			r.ServeHTTP(w, req)
			if w.Code != tc.want {
				t.Fatalf("want %d, got %d body=%s", tc.want, w.Code, w.Body.String())
			}
		})
	}
}

// ---------- TrackingStats ----------

func TestTrackingStats_Success(t *testing.T) {
	gin.SetMode(gin.TestMode)

	svc := stubTrackingSvc{
		stats: func(ctx context.Context, userID string) (*services.TrackingStats, error) {
			return &services.TrackingStats{TotalTracked: 4, Solved: 2}, nil
		},
	}
	h := NewTrackingHandlers(svc)
	r := gin.New()
	r.GET("/tracking/stats", h.TrackingStats)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/tracking/stats", nil)
	req.Header.Set("X-User-ID", "u1")
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("stats -> %d", w.Code)
	}
	var out services.TrackingStats
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("json: %v", err)
	}
	if out.TotalTracked != 4 || out.Solved != 2 {
		t.Fatalf("unexpected stats: %#v", out)
	}
}

// ---------- DeleteTracking ----------

func TestDeleteTracking_NoContent_And_NotFound(t *testing.T) {
	gin.SetMode(gin.TestMode)

	svc := stubTrackingSvc{
		del: func(ctx context.Context, userID, questionID string) error {
			if questionID == "gone" {
				return services.ErrTrackingNotFound
			}
			return nil
		},
	}
	h := NewTrackingHandlers(svc)
	r := gin.New()
	r.DELETE("/tracking/:questionId", h.DeleteTracking)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/tracking/q1", nil)
	req.Header.Set("X-User-ID", "u1")
	r.ServeHTTP(w, req)
	if w.Code != http.StatusNoContent {
		t.Fatalf("delete -> %d", w.Code)
	}

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodDelete, "/tracking/gone", nil)
	req.Header.Set("X-User-ID", "u1")
	r.ServeHTTP(w, req)
	if w.Code != http.StatusNotFound {
		t.Fatalf("gone -> %d", w.Code)
	}
}
