// Question HTTP handlers.
//
// This file exposes the public catalog endpoints:
//   - GET /questions              (filtered, paginated list)
//   - GET /questions/topics       (distinct topic set)
//   - GET /questions/{id}         (single question)
//   - GET /stats/home             (public dashboard)
//   - GET /stats/companies        (per-company counts)
//   - GET /meta/last-updated      (cache-invalidation timestamp)
//
// Handlers are transport-thin: they validate input, call application services,
// and translate results into HTTP responses.
package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/preptrack/go-prep-backend/internal/domain"
	"github.com/preptrack/go-prep-backend/internal/repo"
	"github.com/preptrack/go-prep-backend/internal/services"
	"github.com/preptrack/go-prep-backend/internal/utils"
)

//
// Service contracts (context-aware)
//

// QuestionService defines catalog operations consumed by HTTP handlers.
//
// Implementations should be safe for concurrent use and must honor the
// provided context for cancellation and timeouts.
type QuestionService interface {
	// List returns one page of the filtered catalog, optionally decorated
	// with the user's progress.
	List(ctx context.Context, f repo.QuestionFilter, page, pageSize int, userID string) (*services.QuestionPage, error)
	// Get fetches one active question.
	Get(ctx context.Context, id, userID string) (*services.QuestionView, error)
	// Topics returns the distinct topic set across active questions.
	Topics(ctx context.Context) ([]string, error)
	// CompanyStats returns per-company question counts.
	CompanyStats(ctx context.Context) ([]repo.CompanyCount, error)
	// Home assembles the public dashboard payload.
	Home(ctx context.Context) (*services.HomeStats, error)
	// LastUpdated returns the catalog timestamp in unix milliseconds.
	LastUpdated(ctx context.Context) (int64, error)
}

// userID extracts the authenticated user id from Gin context (set by upstream
// middleware). If absent, it falls back to "X-User-ID" header (tests use it),
// and finally to "". It never touches c.Request if it's nil.
func userID(c *gin.Context) string {
	if v, ok := c.Get("userID"); ok {
		if s, ok := v.(string); ok && s != "" {
			return s
		}
	}
	if c != nil && c.Request != nil {
		if h := strings.TrimSpace(c.GetHeader("X-User-ID")); h != "" {
			return h
		}
	}
	return ""
}

// Pagination carries pagination metadata for list responses.
type Pagination struct {
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
	HasNext    bool  `json:"has_next"`
}

// ListQuestionsResponse wraps a page of questions and pagination information.
type ListQuestionsResponse struct {
	Questions  []services.QuestionView `json:"questions"`
	Pagination Pagination              `json:"pagination"`
}

// LastUpdatedResponse is the metadata endpoint payload.
type LastUpdatedResponse struct {
	LastUpdated int64 `json:"lastUpdated"`
}

// QuestionHandlers groups the public catalog endpoints.
type QuestionHandlers struct {
	svc QuestionService
}

// NewQuestionHandlers constructs QuestionHandlers bound to the given service.
func NewQuestionHandlers(svc QuestionService) *QuestionHandlers {
	return &QuestionHandlers{svc: svc}
}

// clampPagination parses and bounds page and page_size query params to sane
// defaults and limits, returning (page, pageSize).
func clampPagination(c *gin.Context) (page, pageSize int) {
	const (
		defaultPage     = 1
		defaultPageSize = 20
		maxPageSize     = 100
	)
	page = utils.AtoiDefault(c.Query("page"), defaultPage)
	if page < 1 {
		page = 1
	}
	pageSize = utils.AtoiDefault(c.Query("page_size"), defaultPageSize)
	if pageSize < 1 {
		pageSize = 1
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}
	return
}

// questionFilter builds the repo filter from query params. Topics accepts a
// comma-separated list.
func questionFilter(c *gin.Context) repo.QuestionFilter {
	f := repo.QuestionFilter{
		Company:    strings.TrimSpace(c.Query("company")),
		Difficulty: strings.TrimSpace(c.Query("difficulty")),
		Bucket:     domain.AskedWithin(strings.TrimSpace(c.Query("asked_within"))),
		Search:     strings.TrimSpace(c.Query("search")),
	}
	if raw := c.Query("topics"); raw != "" {
		for _, t := range strings.Split(raw, ",") {
			if t = strings.TrimSpace(t); t != "" {
				f.Topics = append(f.Topics, t)
			}
		}
	}
	return f
}

// ListQuestions godoc
// @ID          listQuestions
// @Summary     List questions (filtered, paginated)
// @Description Returns a page of the catalog. All filters combine with AND; topics match any of the given values.
// @Tags        Questions
// @Produce     json
//
// @Param       company       query  string  false "Company name (substring, case-insensitive)" example(google)
// @Param       difficulty    query  string  false "Easy, Medium or Hard"                       example(Medium)
// @Param       topics        query  string  false "Comma-separated topic list"                 example(Array,Hash Table)
// @Param       asked_within  query  string  false "Recency bucket"                             Enums(30days, 2months, 6months, older)
// @Param       search        query  string  false "Free-text search over title and topics"     example(cache)
// @Param       page          query  int     false "Page number"    minimum(1) default(1)
// @Param       page_size     query  int     false "Items per page" minimum(1) maximum(100) default(20)
//
// @Success     200  {object} handlers.ListQuestionsResponse
// @Failure     400  {object} handlers.ErrorResponse "Bad request"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /questions [get]
func (h *QuestionHandlers) ListQuestions(c *gin.Context) {
	page, pageSize := clampPagination(c)

	res, err := h.svc.List(c.Request.Context(), questionFilter(c), page, pageSize, userID(c))
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidDifficulty), errors.Is(err, services.ErrInvalidBucket):
			fail(c, http.StatusBadRequest, ErrCodeBadRequest, err.Error())
		default:
			fail(c, http.StatusInternalServerError, ErrCodeListFailed, err.Error())
		}
		return
	}

	ok(c, http.StatusOK, ListQuestionsResponse{
		Questions: res.Items,
		Pagination: Pagination{
			Page:       res.Page,
			PageSize:   res.PageSize,
			Total:      res.Total,
			TotalPages: res.TotalPages,
			HasNext:    res.Page < res.TotalPages,
		},
	})
}

// GetQuestion godoc
// @ID          getQuestion
// @Summary     Get one question
// @Description Returns a single active question with its company tags, decorated with the caller's progress when authenticated.
// @Tags        Questions
// @Produce     json
//
// @Param       id  path  string  true  "Question ID (UUID)"  format(uuid)
//
// @Success     200  {object} services.QuestionView
// @Failure     404  {object} handlers.ErrorResponse "Question not found"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /questions/{id} [get]
func (h *QuestionHandlers) GetQuestion(c *gin.Context) {
	q, err := h.svc.Get(c.Request.Context(), c.Param("id"), userID(c))
	if err != nil {
		if errors.Is(err, services.ErrQuestionNotFound) {
			fail(c, http.StatusNotFound, ErrCodeNotFound, "question not found")
			return
		}
		fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		return
	}
	ok(c, http.StatusOK, q)
}

// ListTopics godoc
// @ID          listTopics
// @Summary     List topics
// @Description Returns the sorted distinct topic set across active questions.
// @Tags        Questions
// @Produce     json
//
// @Success     200  {array}  string
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /questions/topics [get]
func (h *QuestionHandlers) ListTopics(c *gin.Context) {
	topics, err := h.svc.Topics(c.Request.Context())
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeListFailed, err.Error())
		return
	}
	if topics == nil {
		topics = []string{}
	}
	ok(c, http.StatusOK, topics)
}

// CompanyStats godoc
// @ID          companyStats
// @Summary     Per-company question counts
// @Description Returns every company with its active question count, most-tagged first.
// @Tags        Stats
// @Produce     json
//
// @Success     200  {array}  repo.CompanyCount
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /stats/companies [get]
func (h *QuestionHandlers) CompanyStats(c *gin.Context) {
	stats, err := h.svc.CompanyStats(c.Request.Context())
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeListFailed, err.Error())
		return
	}
	if stats == nil {
		stats = []repo.CompanyCount{}
	}
	ok(c, http.StatusOK, stats)
}

// HomeStats godoc
// @ID          homeStats
// @Summary     Public dashboard stats
// @Description Returns totals, per-difficulty counts, FAANG counts, and the most-tagged non-FAANG companies.
// @Tags        Stats
// @Produce     json
//
// @Success     200  {object} services.HomeStats
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /stats/home [get]
func (h *QuestionHandlers) HomeStats(c *gin.Context) {
	stats, err := h.svc.Home(c.Request.Context())
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeListFailed, err.Error())
		return
	}
	ok(c, http.StatusOK, stats)
}

// LastUpdated godoc
// @ID          lastUpdated
// @Summary     Catalog last-updated timestamp
// @Description Returns the unix-millisecond timestamp of the last catalog write; clients poll it to invalidate caches. Zero means never written.
// @Tags        Meta
// @Produce     json
//
// @Success     200  {object} handlers.LastUpdatedResponse
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /meta/last-updated [get]
func (h *QuestionHandlers) LastUpdated(c *gin.Context) {
	ts, err := h.svc.LastUpdated(c.Request.Context())
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		return
	}
	ok(c, http.StatusOK, LastUpdatedResponse{LastUpdated: ts})
}
