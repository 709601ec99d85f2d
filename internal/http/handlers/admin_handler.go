// Admin HTTP handlers.
//
// This file exposes the admin-only catalog endpoints:
//   - POST   /admin/upload           (multipart CSV ingestion)
//   - POST   /admin/questions        (JSON bulk create)
//   - PUT    /admin/questions/{id}   (single-question patch)
//   - DELETE /admin/questions/{id}   (remove question, tags, tracking)
//   - GET    /admin/stats            (dashboard)
//
// The router mounts these behind the admin auth middleware; handlers assume
// the caller is already authorized.
package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/preptrack/go-prep-backend/internal/domain"
	"github.com/preptrack/go-prep-backend/internal/ingest"
	"github.com/preptrack/go-prep-backend/internal/services"
)

// maxUploadBytes caps the accepted CSV size (8 MiB).
const maxUploadBytes = 8 << 20

// ImportService defines the ingestion operations consumed by admin handlers.
//
// Implementations should be safe for concurrent use and must honor the
// provided context for cancellation and timeouts.
type ImportService interface {
	// ImportFile runs the CSV pipeline over a file on disk and removes it.
	ImportFile(ctx context.Context, company string, bucket domain.AskedWithin, path string) (*ingest.Report, error)
	// BulkCreate inserts a batch of questions, skipping invalid entries.
	BulkCreate(ctx context.Context, questions []domain.Question) (int, []ingest.RowErrorDetail, error)
}

// AdminQuestionService defines the single-question admin operations.
type AdminQuestionService interface {
	// Update applies an admin patch to one question.
	Update(ctx context.Context, id string, patch services.QuestionPatch) error
	// Delete removes a question with its tags and tracking rows.
	Delete(ctx context.Context, id string) error
	// AdminDashboard assembles the admin stats payload.
	AdminDashboard(ctx context.Context) (*services.AdminStats, error)
}

// BulkCreateRequest is the JSON payload for the bulk-create endpoint.
type BulkCreateRequest struct {
	Questions []BulkQuestion `json:"questions" binding:"required"`
}

// BulkQuestion is one entry of a bulk-create payload.
type BulkQuestion struct {
	Title          string            `json:"title" example:"Two Sum"`
	Difficulty     string            `json:"difficulty" example:"Easy"`
	Topics         domain.StringList `json:"topics"`
	Link           string            `json:"link" example:"https://leetcode.com/problems/two-sum"`
	AcceptanceRate float64           `json:"acceptanceRate"`
	Frequency      float64           `json:"frequency"`
	Companies      []string          `json:"companies"`
}

// BulkCreateResponse reports the bulk-create outcome.
type BulkCreateResponse struct {
	Created int                     `json:"created"`
	Errors  int                     `json:"errors"`
	Details []ingest.RowErrorDetail `json:"details"`
}

// UpdateQuestionRequest is the JSON payload for the single-question patch.
// Omitted fields leave the stored value alone.
type UpdateQuestionRequest struct {
	Title          *string            `json:"title"`
	Difficulty     *string            `json:"difficulty"`
	Topics         *domain.StringList `json:"topics"`
	Link           *string            `json:"link"`
	AcceptanceRate *float64           `json:"acceptanceRate"`
	Frequency      *float64           `json:"frequency"`
	IsActive       *bool              `json:"isActive"`
}

// AdminHandlers groups the admin endpoints.
type AdminHandlers struct {
	importSvc ImportService
	qSvc      AdminQuestionService
	uploadDir string
}

// NewAdminHandlers constructs AdminHandlers. uploadDir is where multipart
// files are spooled before ingestion.
func NewAdminHandlers(importSvc ImportService, qSvc AdminQuestionService, uploadDir string) *AdminHandlers {
	return &AdminHandlers{importSvc: importSvc, qSvc: qSvc, uploadDir: uploadDir}
}

// Upload godoc
// @ID          adminUpload
// @Summary     Ingest a company CSV (admin)
// @Description Accepts a multipart CSV of one company's questions, reconciles it against the catalog, and returns the ingest report. Row failures never abort the batch.
// @Tags        Admin
// @Accept      multipart/form-data
// @Produce     json
//
// @Param       file          formData  file    true  "CSV file"
// @Param       company       formData  string  true  "Company the file belongs to"  example(Google)
// @Param       asked_within  formData  string  true  "Recency bucket"  Enums(30days, 2months, 6months, older)
//
// @Success     200  {object} ingest.Report
// @Failure     400  {object} handlers.ErrorResponse "Bad request"
// @Failure     413  {object} handlers.ErrorResponse "File too large"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /admin/upload [post]
func (h *AdminHandlers) Upload(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "csv file is required")
		return
	}
	if file.Size > maxUploadBytes {
		fail(c, http.StatusRequestEntityTooLarge, ErrCodePayloadTooLarge, "file exceeds the upload limit")
		return
	}

	// Spool under a fresh name; ImportFile removes it when done.
	dst := filepath.Join(h.uploadDir, fmt.Sprintf("upload_%s.csv", uuid.NewString()))
	if err := c.SaveUploadedFile(file, dst); err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeImportFailed, "failed to store upload")
		return
	}

	company := strings.TrimSpace(c.PostForm("company"))
	bucket := domain.AskedWithin(strings.TrimSpace(c.PostForm("asked_within")))

	rep, err := h.importSvc.ImportFile(c.Request.Context(), company, bucket, dst)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrMissingCompany),
			errors.Is(err, services.ErrInvalidBucket),
			errors.Is(err, services.ErrEmptyUpload):
			fail(c, http.StatusBadRequest, ErrCodeBadRequest, err.Error())
		default:
			fail(c, http.StatusInternalServerError, ErrCodeImportFailed, err.Error())
		}
		return
	}
	ok(c, http.StatusOK, rep)
}

// BulkCreate godoc
// @ID          adminBulkCreate
// @Summary     Bulk-create questions (admin)
// @Description Inserts a batch of questions. Invalid or duplicate entries are reported per row; the rest of the batch proceeds.
// @Tags        Admin
// @Accept      json
// @Produce     json
//
// @Param       body  body  handlers.BulkCreateRequest  true  "Questions payload"
//
// @Success     201  {object} handlers.BulkCreateResponse
// @Failure     400  {object} handlers.ErrorResponse "Bad request"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /admin/questions [post]
func (h *AdminHandlers) BulkCreate(c *gin.Context) {
	var req BulkCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil || len(req.Questions) == 0 {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "questions array required")
		return
	}

	batch := make([]domain.Question, 0, len(req.Questions))
	for _, in := range req.Questions {
		q := domain.Question{
			Title:          in.Title,
			Difficulty:     in.Difficulty,
			Topics:         in.Topics,
			Link:           in.Link,
			AcceptanceRate: in.AcceptanceRate,
			Frequency:      in.Frequency,
		}
		for _, name := range in.Companies {
			if name = strings.TrimSpace(name); name != "" {
				q.Companies = append(q.Companies, domain.CompanyTag{Company: name})
			}
		}
		batch = append(batch, q)
	}

	created, details, err := h.importSvc.BulkCreate(c.Request.Context(), batch)
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeCreateFailed, err.Error())
		return
	}
	if details == nil {
		details = []ingest.RowErrorDetail{}
	}
	ok(c, http.StatusCreated, BulkCreateResponse{
		Created: created,
		Errors:  len(details),
		Details: details,
	})
}

// UpdateQuestion godoc
// @ID          adminUpdateQuestion
// @Summary     Patch one question (admin)
// @Tags        Admin
// @Accept      json
// @Produce     json
//
// @Param       id    path  string  true  "Question ID (UUID)"  format(uuid)
// @Param       body  body  handlers.UpdateQuestionRequest  true  "Patch payload"
//
// @Success     204  {string} string "No Content"
// @Failure     400  {object} handlers.ErrorResponse "Bad request"
// @Failure     404  {object} handlers.ErrorResponse "Question not found"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /admin/questions/{id} [put]
func (h *AdminHandlers) UpdateQuestion(c *gin.Context) {
	var req UpdateQuestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}

	err := h.qSvc.Update(c.Request.Context(), c.Param("id"), services.QuestionPatch{
		Title:          req.Title,
		Difficulty:     req.Difficulty,
		Topics:         req.Topics,
		Link:           req.Link,
		AcceptanceRate: req.AcceptanceRate,
		Frequency:      req.Frequency,
		IsActive:       req.IsActive,
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidDifficulty), errors.Is(err, services.ErrMissingFields):
			fail(c, http.StatusBadRequest, ErrCodeBadRequest, err.Error())
		case errors.Is(err, services.ErrQuestionNotFound):
			fail(c, http.StatusNotFound, ErrCodeNotFound, "question not found")
		default:
			fail(c, http.StatusInternalServerError, ErrCodeUpdateFailed, err.Error())
		}
		return
	}
	noContent(c)
}

// DeleteQuestion godoc
// @ID          adminDeleteQuestion
// @Summary     Delete one question (admin)
// @Description Removes the question together with its company tags and every user's tracking rows.
// @Tags        Admin
// @Produce     json
//
// @Param       id  path  string  true  "Question ID (UUID)"  format(uuid)
//
// @Success     204  {string} string "No Content"
// @Failure     404  {object} handlers.ErrorResponse "Question not found"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /admin/questions/{id} [delete]
func (h *AdminHandlers) DeleteQuestion(c *gin.Context) {
	if err := h.qSvc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		if errors.Is(err, services.ErrQuestionNotFound) {
			fail(c, http.StatusNotFound, ErrCodeNotFound, "question not found")
			return
		}
		fail(c, http.StatusInternalServerError, ErrCodeDeleteFailed, err.Error())
		return
	}
	noContent(c)
}

// AdminStats godoc
// @ID          adminStats
// @Summary     Admin dashboard stats
// @Tags        Admin
// @Produce     json
//
// @Success     200  {object} services.AdminStats
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /admin/stats [get]
func (h *AdminHandlers) AdminStats(c *gin.Context) {
	stats, err := h.qSvc.AdminDashboard(c.Request.Context())
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		return
	}
	ok(c, http.StatusOK, stats)
}
