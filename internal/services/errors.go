// Package services defines the business logic for the question catalog,
// CSV ingestion, per-user tracking, and company requests. This file
// centralizes common service-level error values so that they can be
// consistently returned by service methods and checked by callers.
//
// These errors are intended for internal use by the service layer and
// translation into user-facing messages or HTTP status codes should be
// performed at the handler/controller layer.
package services

import "errors"

// Catalog-related errors.
var (
	// ErrQuestionNotFound indicates that the requested question does not exist
	// or is inactive.
	ErrQuestionNotFound = errors.New("question not found")

	// ErrInvalidDifficulty is returned when a difficulty value is outside
	// Easy, Medium, Hard.
	ErrInvalidDifficulty = errors.New("invalid difficulty")

	// ErrInvalidBucket is returned when a recency filter value is not one of
	// the accepted buckets.
	ErrInvalidBucket = errors.New("invalid recency bucket")

	// ErrDuplicateQuestion is returned when a create collides with an
	// existing (title, link) pair.
	ErrDuplicateQuestion = errors.New("question already exists")

	// ErrMissingFields is returned when a create or update omits required
	// question fields.
	ErrMissingFields = errors.New("missing required fields")
)

// Import-related errors.
var (
	// ErrMissingCompany is returned when an upload does not name the company
	// whose questions it carries.
	ErrMissingCompany = errors.New("company is required")

	// ErrEmptyUpload is returned when the uploaded CSV contains no data rows.
	ErrEmptyUpload = errors.New("uploaded file has no data rows")
)

// Tracking-related errors.
var (
	// ErrTrackingNotFound indicates that no progress record exists for the
	// (user, question) pair.
	ErrTrackingNotFound = errors.New("tracking record not found")

	// ErrNotesTooLong is returned when tracking notes exceed the configured
	// maximum length.
	ErrNotesTooLong = errors.New("notes too long")
)

// Request-related errors.
var (
	// ErrRequestNotFound indicates that the company request does not exist.
	ErrRequestNotFound = errors.New("request not found")

	// ErrForbiddenRequest is returned when a user touches a request they do
	// not own and lacks admin rights.
	ErrForbiddenRequest = errors.New("cannot access this request")

	// ErrEmptyMessage is returned when a request message has no content.
	ErrEmptyMessage = errors.New("message is empty")

	// ErrMessageTooLong is returned when a request message exceeds the
	// maximum length.
	ErrMessageTooLong = errors.New("message too long")

	// ErrRequestClosed is returned when a user posts to a request that is no
	// longer pending. Admins may still reply.
	ErrRequestClosed = errors.New("request is closed")

	// ErrInvalidStatus is returned when a status transition names an unknown
	// state.
	ErrInvalidStatus = errors.New("invalid request status")
)

// ErrEmptyCompanyName is returned when a company request names no company.
var ErrEmptyCompanyName = errors.New("company name is empty")
