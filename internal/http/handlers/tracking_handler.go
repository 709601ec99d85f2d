// Tracking HTTP handlers.
//
// This file exposes the per-user progress endpoints:
//   - GET    /tracking                 (list, paginated, flag filters)
//   - GET    /tracking/stats           (per-user summary)
//   - PUT    /tracking/{questionId}    (upsert solved/revise/notes)
//   - DELETE /tracking/{questionId}    (remove progress)
//
// All endpoints require an authenticated user.
package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/preptrack/go-prep-backend/internal/domain"
	"github.com/preptrack/go-prep-backend/internal/repo"
	"github.com/preptrack/go-prep-backend/internal/services"
)

// TrackingService defines progress operations consumed by HTTP handlers.
//
// Implementations should be safe for concurrent use and must honor the
// provided context for cancellation and timeouts.
type TrackingService interface {
	// Upsert creates or patches the user's progress on one question.
	Upsert(ctx context.Context, userID, questionID string, in services.TrackingUpdate) (*domain.Tracking, error)
	// ListPage returns one page of the user's progress records.
	ListPage(ctx context.Context, userID string, f repo.TrackingFilter, page, pageSize int) (*services.TrackingPage, error)
	// Stats aggregates the user's progress.
	Stats(ctx context.Context, userID string) (*services.TrackingStats, error)
	// Delete removes the user's progress on one question.
	Delete(ctx context.Context, userID, questionID string) error
}

// UpsertTrackingRequest is the JSON payload for the upsert endpoint. Omitted
// fields leave the stored value alone.
type UpsertTrackingRequest struct {
	IsSolved *bool   `json:"isSolved"`
	IsRevise *bool   `json:"isRevise"`
	Notes    *string `json:"notes"`
}

// TrackingHandlers groups the progress endpoints.
type TrackingHandlers struct {
	svc TrackingService
}

// NewTrackingHandlers constructs TrackingHandlers bound to the given service.
func NewTrackingHandlers(svc TrackingService) *TrackingHandlers {
	return &TrackingHandlers{svc: svc}
}

// boolQuery parses an optional true/false query param, nil when absent.
func boolQuery(c *gin.Context, name string) *bool {
	switch c.Query(name) {
	case "true", "1":
		v := true
		return &v
	case "false", "0":
		v := false
		return &v
	}
	return nil
}

// requireUser resolves the caller, failing the request when anonymous.
func requireUser(c *gin.Context) (string, bool) {
	uid := userID(c)
	if uid == "" {
		fail(c, http.StatusUnauthorized, ErrCodeUnauthorized, "authentication required")
		return "", false
	}
	return uid, true
}

// ListTracking godoc
// @ID          listTracking
// @Summary     List progress (paginated)
// @Description Returns a page of the caller's progress records, most recently touched first, with questions embedded.
// @Tags        Tracking
// @Produce     json
//
// @Param       is_solved  query  bool  false "Filter by solved flag"
// @Param       is_revise  query  bool  false "Filter by revise flag"
// @Param       page       query  int   false "Page number"    minimum(1) default(1)
// @Param       page_size  query  int   false "Items per page" minimum(1) maximum(100) default(20)
//
// @Success     200  {object} services.TrackingPage
// @Failure     401  {object} handlers.ErrorResponse "Unauthorized"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /tracking [get]
func (h *TrackingHandlers) ListTracking(c *gin.Context) {
	uid, authed := requireUser(c)
	if !authed {
		return
	}
	page, pageSize := clampPagination(c)
	f := repo.TrackingFilter{
		IsSolved: boolQuery(c, "is_solved"),
		IsRevise: boolQuery(c, "is_revise"),
	}

	res, err := h.svc.ListPage(c.Request.Context(), uid, f, page, pageSize)
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeListFailed, err.Error())
		return
	}
	ok(c, http.StatusOK, res)
}

// TrackingStats godoc
// @ID          trackingStats
// @Summary     Progress summary
// @Description Returns the caller's totals, solved counts by difficulty and company, and latest solves.
// @Tags        Tracking
// @Produce     json
//
// @Success     200  {object} services.TrackingStats
// @Failure     401  {object} handlers.ErrorResponse "Unauthorized"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /tracking/stats [get]
func (h *TrackingHandlers) TrackingStats(c *gin.Context) {
	uid, authed := requireUser(c)
	if !authed {
		return
	}
	stats, err := h.svc.Stats(c.Request.Context(), uid)
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		return
	}
	ok(c, http.StatusOK, stats)
}

// UpsertTracking godoc
// @ID          upsertTracking
// @Summary     Record progress on a question
// @Description Creates or patches the caller's progress. solvedAt follows the isSolved flag.
// @Tags        Tracking
// @Accept      json
// @Produce     json
//
// @Param       questionId  path  string  true  "Question ID (UUID)"  format(uuid)
// @Param       body        body  handlers.UpsertTrackingRequest  true  "Progress payload"
//
// @Success     200  {object} domain.Tracking
// @Failure     400  {object} handlers.ErrorResponse "Bad request"
// @Failure     401  {object} handlers.ErrorResponse "Unauthorized"
// @Failure     404  {object} handlers.ErrorResponse "Question not found"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /tracking/{questionId} [put]
func (h *TrackingHandlers) UpsertTracking(c *gin.Context) {
	uid, authed := requireUser(c)
	if !authed {
		return
	}
	var req UpsertTrackingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}

	t, err := h.svc.Upsert(c.Request.Context(), uid, c.Param("questionId"), services.TrackingUpdate{
		IsSolved: req.IsSolved,
		IsRevise: req.IsRevise,
		Notes:    req.Notes,
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrQuestionNotFound):
			fail(c, http.StatusNotFound, ErrCodeNotFound, "question not found")
		case errors.Is(err, services.ErrNotesTooLong):
			fail(c, http.StatusBadRequest, ErrCodeBadRequest, err.Error())
		default:
			fail(c, http.StatusInternalServerError, ErrCodeUpdateFailed, err.Error())
		}
		return
	}
	ok(c, http.StatusOK, t)
}

// DeleteTracking godoc
// @ID          deleteTracking
// @Summary     Remove progress on a question
// @Tags        Tracking
// @Produce     json
//
// @Param       questionId  path  string  true  "Question ID (UUID)"  format(uuid)
//
// @Success     204  {string} string "No Content"
// @Failure     401  {object} handlers.ErrorResponse "Unauthorized"
// @Failure     404  {object} handlers.ErrorResponse "No progress recorded"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /tracking/{questionId} [delete]
func (h *TrackingHandlers) DeleteTracking(c *gin.Context) {
	uid, authed := requireUser(c)
	if !authed {
		return
	}
	if err := h.svc.Delete(c.Request.Context(), uid, c.Param("questionId")); err != nil {
		if errors.Is(err, services.ErrTrackingNotFound) {
			fail(c, http.StatusNotFound, ErrCodeNotFound, "no progress recorded for this question")
			return
		}
		fail(c, http.StatusInternalServerError, ErrCodeDeleteFailed, err.Error())
		return
	}
	noContent(c)
}
