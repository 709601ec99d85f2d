// Company-request HTTP handlers.
//
// This file exposes the request-thread endpoints:
//   - GET   /requests                    (own requests, or all for admins)
//   - POST  /requests                    (open a request, optional first message)
//   - GET   /requests/{id}               (one request with its thread)
//   - POST  /requests/{id}/messages      (reply in the thread)
//   - PATCH /requests/{id}/status        (admin status transition)
package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/preptrack/go-prep-backend/internal/domain"
	"github.com/preptrack/go-prep-backend/internal/http/middleware"
	"github.com/preptrack/go-prep-backend/internal/services"
)

// RequestService defines company-request operations consumed by HTTP
// handlers.
//
// Implementations should be safe for concurrent use and must honor the
// provided context for cancellation and timeouts.
type RequestService interface {
	// Create opens a request, optionally seeding the thread.
	Create(ctx context.Context, userID, company, message string) (*domain.CompanyRequest, error)
	// List returns the caller's requests, or all of them for admins.
	List(ctx context.Context, userID string, isAdmin bool) ([]domain.CompanyRequest, error)
	// Get fetches one request, enforcing the creator-or-admin rule.
	Get(ctx context.Context, id, userID string, isAdmin bool) (*domain.CompanyRequest, error)
	// AddMessage appends one message to a request's thread.
	AddMessage(ctx context.Context, id, senderID, content string, isAdmin bool) (*domain.RequestMessage, error)
	// UpdateStatus transitions a request and records a system message.
	UpdateStatus(ctx context.Context, id, adminID, status string) error
}

// CreateRequestRequest is the JSON payload for opening a request.
type CreateRequestRequest struct {
	Company string `json:"company" binding:"required" example:"Stripe"`
	Message string `json:"message" example:"Please add Stripe's latest onsite questions"`
}

// AddMessageRequest is the JSON payload for a thread reply.
type AddMessageRequest struct {
	Content string `json:"content" binding:"required" example:"Any update on this?"`
}

// UpdateStatusRequest is the JSON payload for the admin status transition.
type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required" example:"completed"`
}

// RequestHandlers groups the company-request endpoints.
type RequestHandlers struct {
	svc RequestService
}

// NewRequestHandlers constructs RequestHandlers bound to the given service.
func NewRequestHandlers(svc RequestService) *RequestHandlers {
	return &RequestHandlers{svc: svc}
}

// ListRequests godoc
// @ID          listRequests
// @Summary     List company requests
// @Description Returns the caller's requests with their threads, newest first. Admins see every request.
// @Tags        Requests
// @Produce     json
//
// @Success     200  {array}  domain.CompanyRequest
// @Failure     401  {object} handlers.ErrorResponse "Unauthorized"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /requests [get]
func (h *RequestHandlers) ListRequests(c *gin.Context) {
	uid, authed := requireUser(c)
	if !authed {
		return
	}
	items, err := h.svc.List(c.Request.Context(), uid, middleware.IsAdmin(c))
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeListFailed, err.Error())
		return
	}
	if items == nil {
		items = []domain.CompanyRequest{}
	}
	ok(c, http.StatusOK, items)
}

// CreateRequest godoc
// @ID          createRequest
// @Summary     Open a company request
// @Description Asks for a company's questions to be added, optionally starting the thread with a message.
// @Tags        Requests
// @Accept      json
// @Produce     json
//
// @Param       body  body  handlers.CreateRequestRequest  true  "Request payload"
//
// @Success     201  {object} domain.CompanyRequest
// @Failure     400  {object} handlers.ErrorResponse "Bad request"
// @Failure     401  {object} handlers.ErrorResponse "Unauthorized"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /requests [post]
func (h *RequestHandlers) CreateRequest(c *gin.Context) {
	uid, authed := requireUser(c)
	if !authed {
		return
	}
	var req CreateRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}

	r, err := h.svc.Create(c.Request.Context(), uid, req.Company, req.Message)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrEmptyCompanyName), errors.Is(err, services.ErrMessageTooLong):
			fail(c, http.StatusBadRequest, ErrCodeBadRequest, err.Error())
		default:
			fail(c, http.StatusInternalServerError, ErrCodeCreateFailed, err.Error())
		}
		return
	}
	ok(c, http.StatusCreated, r)
}

// GetRequest godoc
// @ID          getRequest
// @Summary     Get one request with its thread
// @Tags        Requests
// @Produce     json
//
// @Param       id  path  string  true  "Request ID (UUID)"  format(uuid)
//
// @Success     200  {object} domain.CompanyRequest
// @Failure     401  {object} handlers.ErrorResponse "Unauthorized"
// @Failure     403  {object} handlers.ErrorResponse "Not the creator"
// @Failure     404  {object} handlers.ErrorResponse "Request not found"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /requests/{id} [get]
func (h *RequestHandlers) GetRequest(c *gin.Context) {
	uid, authed := requireUser(c)
	if !authed {
		return
	}
	r, err := h.svc.Get(c.Request.Context(), c.Param("id"), uid, middleware.IsAdmin(c))
	if err != nil {
		switch {
		case errors.Is(err, services.ErrRequestNotFound):
			fail(c, http.StatusNotFound, ErrCodeNotFound, "request not found")
		case errors.Is(err, services.ErrForbiddenRequest):
			fail(c, http.StatusForbidden, ErrCodeForbidden, err.Error())
		default:
			fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		}
		return
	}
	ok(c, http.StatusOK, r)
}

// AddMessage godoc
// @ID          addRequestMessage
// @Summary     Reply in a request thread
// @Description Appends a message. Only the creator and admins may post; non-admins are blocked once the request is closed.
// @Tags        Requests
// @Accept      json
// @Produce     json
//
// @Param       id    path  string  true  "Request ID (UUID)"  format(uuid)
// @Param       body  body  handlers.AddMessageRequest  true  "Message payload"
//
// @Success     201  {object} domain.RequestMessage
// @Failure     400  {object} handlers.ErrorResponse "Bad request"
// @Failure     401  {object} handlers.ErrorResponse "Unauthorized"
// @Failure     403  {object} handlers.ErrorResponse "Not allowed to post"
// @Failure     404  {object} handlers.ErrorResponse "Request not found"
// @Failure     409  {object} handlers.ErrorResponse "Request closed"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /requests/{id}/messages [post]
func (h *RequestHandlers) AddMessage(c *gin.Context) {
	uid, authed := requireUser(c)
	if !authed {
		return
	}
	var req AddMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}

	m, err := h.svc.AddMessage(c.Request.Context(), c.Param("id"), uid, req.Content, middleware.IsAdmin(c))
	if err != nil {
		switch {
		case errors.Is(err, services.ErrEmptyMessage), errors.Is(err, services.ErrMessageTooLong):
			fail(c, http.StatusBadRequest, ErrCodeBadRequest, err.Error())
		case errors.Is(err, services.ErrRequestNotFound):
			fail(c, http.StatusNotFound, ErrCodeNotFound, "request not found")
		case errors.Is(err, services.ErrForbiddenRequest):
			fail(c, http.StatusForbidden, ErrCodeForbidden, err.Error())
		case errors.Is(err, services.ErrRequestClosed):
			fail(c, http.StatusConflict, ErrCodeConflict, err.Error())
		default:
			fail(c, http.StatusInternalServerError, ErrCodeCreateFailed, err.Error())
		}
		return
	}
	ok(c, http.StatusCreated, m)
}

// UpdateStatus godoc
// @ID          updateRequestStatus
// @Summary     Transition a request (admin)
// @Description Moves a request to pending, completed, or rejected, recording a system message in the thread.
// @Tags        Requests
// @Accept      json
// @Produce     json
//
// @Param       id    path  string  true  "Request ID (UUID)"  format(uuid)
// @Param       body  body  handlers.UpdateStatusRequest  true  "New status"
//
// @Success     204  {string} string "No Content"
// @Failure     400  {object} handlers.ErrorResponse "Bad request"
// @Failure     401  {object} handlers.ErrorResponse "Unauthorized"
// @Failure     404  {object} handlers.ErrorResponse "Request not found"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /requests/{id}/status [patch]
func (h *RequestHandlers) UpdateStatus(c *gin.Context) {
	uid, authed := requireUser(c)
	if !authed {
		return
	}
	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}

	if err := h.svc.UpdateStatus(c.Request.Context(), c.Param("id"), uid, req.Status); err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidStatus):
			fail(c, http.StatusBadRequest, ErrCodeBadRequest, err.Error())
		case errors.Is(err, services.ErrRequestNotFound):
			fail(c, http.StatusNotFound, ErrCodeNotFound, "request not found")
		default:
			fail(c, http.StatusInternalServerError, ErrCodeUpdateFailed, err.Error())
		}
		return
	}
	noContent(c)
}
