// Package services – ImportService
//
// This file implements ImportService, the application-level component that
// owns the CSV ingestion pipeline. It validates the upload parameters,
// decodes and parses the file, reconciles the parsed rows against a snapshot
// of the catalog, executes the resulting plan one operation at a time, and
// publishes the cache-invalidation timestamp when anything was written.
//
// Row failures never abort a batch: parse errors and per-operation write
// failures land in the report's error list while the rest of the file
// proceeds. Only caller-level mistakes (missing company, bad bucket, empty
// file) surface as errors.
//
// Observability: public methods are OpenTelemetry-instrumented, and batch
// outcomes feed the ingest Prometheus counters.
package services

import (
	"context"
	"errors"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/preptrack/go-prep-backend/internal/domain"
	"github.com/preptrack/go-prep-backend/internal/ingest"
	"github.com/preptrack/go-prep-backend/internal/repo"

	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

var (
	// ingestRows counts parsed input rows by outcome (ok, parse_error).
	ingestRows = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ingest_rows_total",
			Help: "Total number of CSV rows processed, by outcome.",
		},
		[]string{"outcome"},
	)

	// ingestWrites counts executed catalog writes by kind (created, updated,
	// failed).
	ingestWrites = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ingest_writes_total",
			Help: "Total number of catalog writes executed by the ingest pipeline, by kind.",
		},
		[]string{"kind"},
	)
)

// RegisterIngestMetrics registers the ingest collectors on reg. Call once at
// startup; duplicate registration panics by Prometheus convention.
func RegisterIngestMetrics(reg prometheus.Registerer) {
	reg.MustRegister(ingestRows, ingestWrites)
}

// CatalogStore defines the persistence contract required by ImportService.
type CatalogStore interface {
	// FindByTitles returns the reconciliation snapshot for the given titles,
	// company tags preloaded.
	FindByTitles(ctx context.Context, db *gorm.DB, titles []string) ([]domain.Question, error)

	// CreateQuestion inserts a new question with its tags.
	CreateQuestion(ctx context.Context, db *gorm.DB, q *domain.Question) error

	// UpdateQuestionFields applies a partial column update to one question.
	UpdateQuestionFields(ctx context.Context, db *gorm.DB, id string, fields map[string]any) error

	// AppendCompanyTag adds a tag unless the company is already present.
	AppendCompanyTag(ctx context.Context, db *gorm.DB, questionID string, tag domain.CompanyTag) (bool, error)

	// UpsertMetadata writes a metadata key, creating the row when absent.
	UpsertMetadata(ctx context.Context, db *gorm.DB, key string, value int64) error
}

// ImportService coordinates CSV ingestion and bulk question creation.
type ImportService struct {
	// DB is the GORM handle used for persistence.
	DB *gorm.DB
	// Store is the catalog persistence contract.
	Store CatalogStore
}

// NewImportService constructs an ImportService.
func NewImportService(db *gorm.DB, store CatalogStore) *ImportService {
	return &ImportService{DB: db, Store: store}
}

// ImportCSV runs the full pipeline for one uploaded file: decode, parse,
// reconcile, execute, report. company tags every row; bucket is the recency
// bucket the upload asserts for that company.
func (s *ImportService) ImportCSV(ctx context.Context, company string, bucket domain.AskedWithin, r io.Reader) (*ingest.Report, error) {
	tr := otel.Tracer("services/ImportService")
	ctx, span := tr.Start(ctx, "ImportCSV",
		trace.WithAttributes(attribute.String("ingest.company", company)),
	)
	defer span.End()

	company = strings.TrimSpace(company)
	if company == "" {
		return nil, ErrMissingCompany
	}
	if !bucket.Valid() {
		return nil, ErrInvalidBucket
	}

	records, err := ingest.ReadRows(r)
	if err != nil {
		if errors.Is(err, ingest.ErrNoRows) {
			return nil, ErrEmptyUpload
		}
		return nil, err
	}

	rows := make([]ingest.BatchRow, 0, len(records))
	var rowErrs []ingest.RowError
	for i, rec := range records {
		row, err := ingest.ParseRow(rec, i+1, company, bucket)
		if err != nil {
			var re ingest.RowError
			if errors.As(err, &re) {
				rowErrs = append(rowErrs, re)
				ingestRows.WithLabelValues("parse_error").Inc()
				continue
			}
			return nil, err
		}
		rows = append(rows, row)
		ingestRows.WithLabelValues("ok").Inc()
	}

	existing, err := s.snapshot(ctx, rows)
	if err != nil {
		return nil, err
	}

	plan := ingest.Reconcile(rows, existing)
	rep := s.execute(ctx, plan, rowErrs)

	span.SetAttributes(
		attribute.Int("ingest.created", rep.Created),
		attribute.Int("ingest.updated", rep.Updated),
		attribute.Int("ingest.errors", rep.Errors),
	)

	if rep.Created > 0 || rep.Updated > 0 {
		s.publishMetadata(ctx)
	}
	return &rep, nil
}

// ImportFile runs ImportCSV over a file on disk, removing the file afterwards.
// Removal failures are logged, never surfaced: the report is already final.
func (s *ImportService) ImportFile(ctx context.Context, company string, bucket domain.AskedWithin, path string) (*ingest.Report, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	rep, impErr := s.ImportCSV(ctx, company, bucket, f)
	_ = f.Close()
	if err := os.Remove(path); err != nil {
		log.Warn().Err(err).Str("path", path).Msg("failed to remove uploaded file")
	}
	return rep, impErr
}

// BulkCreate inserts a batch of admin-supplied questions, skipping invalid or
// duplicate entries, and bumps the catalog metadata when anything landed.
func (s *ImportService) BulkCreate(ctx context.Context, questions []domain.Question) (created int, details []ingest.RowErrorDetail, err error) {
	tr := otel.Tracer("services/ImportService")
	ctx, span := tr.Start(ctx, "BulkCreate",
		trace.WithAttributes(attribute.Int("ingest.batch_size", len(questions))),
	)
	defer span.End()

	for i := range questions {
		q := questions[i]
		q.Title = strings.TrimSpace(q.Title)
		q.Link = strings.TrimSpace(q.Link)
		if q.Title == "" || q.Link == "" || !domain.ValidDifficulty(q.Difficulty) {
			details = append(details, ingest.RowErrorDetail{Row: i + 1, Message: "missing required fields"})
			continue
		}
		q.IsActive = true
		for j := range q.Companies {
			q.Companies[j].CompanyKey = domain.CompanyKey(q.Companies[j].Company)
		}
		if err := s.Store.CreateQuestion(ctx, s.DB, &q); err != nil {
			if errors.Is(err, repo.ErrDuplicate) || repoDuplicate(err) {
				details = append(details, ingest.RowErrorDetail{Row: i + 1, Message: "question already exists"})
				continue
			}
			return created, details, err
		}
		created++
	}

	if created > 0 {
		s.publishMetadata(ctx)
	}
	return created, details, nil
}

// snapshot loads every catalog question whose title appears in the batch.
func (s *ImportService) snapshot(ctx context.Context, rows []ingest.BatchRow) ([]domain.Question, error) {
	seen := make(map[string]struct{}, len(rows))
	titles := make([]string, 0, len(rows))
	for _, r := range rows {
		if _, ok := seen[r.Title]; ok {
			continue
		}
		seen[r.Title] = struct{}{}
		titles = append(titles, r.Title)
	}
	return s.Store.FindByTitles(ctx, s.DB, titles)
}

// execute runs the plan one operation at a time. There is no batch
// transaction: a failing operation is reported against its row and the rest
// of the plan proceeds. Folded updates ride on their insert, so they succeed
// or fail with it.
func (s *ImportService) execute(ctx context.Context, plan ingest.Plan, rowErrs []ingest.RowError) ingest.Report {
	rep := ingest.Report{
		Skipped: len(plan.Skipped),
		Details: make([]ingest.RowErrorDetail, 0, len(rowErrs)),
	}
	for _, e := range rowErrs {
		rep.Details = append(rep.Details, ingest.RowErrorDetail{Row: e.Row, Message: e.Message})
	}
	rep.Errors = len(rowErrs)

	failedInserts := make(map[*domain.Question]struct{})

	for _, op := range plan.Ops {
		switch {
		case op.Kind == ingest.OpInsert:
			if err := s.Store.CreateQuestion(ctx, s.DB, op.Insert); err != nil {
				log.Error().Err(err).Int("row", op.Row).Str("title", op.Insert.Title).
					Msg("ingest: insert failed")
				failedInserts[op.Insert] = struct{}{}
				rep.AddError(op.Row, "failed to create question")
				ingestWrites.WithLabelValues("failed").Inc()
				continue
			}
			rep.Created++
			ingestWrites.WithLabelValues("created").Inc()

		case op.Folded:
			if _, bad := failedInserts[op.Insert]; bad {
				rep.AddError(op.Row, "failed to create question")
				continue
			}
			// Merged into a pending insert before execution; nothing to write.
			rep.Updated++
			ingestWrites.WithLabelValues("updated").Inc()

		default:
			if err := s.executeUpdate(ctx, op); err != nil {
				log.Error().Err(err).Int("row", op.Row).Str("question_id", op.QuestionID).
					Msg("ingest: update failed")
				rep.AddError(op.Row, "failed to update question")
				ingestWrites.WithLabelValues("failed").Inc()
				continue
			}
			rep.Updated++
			ingestWrites.WithLabelValues("updated").Inc()
		}
	}
	return rep
}

// executeUpdate applies one update op: the scalar patch, then each new
// company tag through the storage layer's insert-if-absent primitive.
func (s *ImportService) executeUpdate(ctx context.Context, op ingest.Op) error {
	if fields := op.Patch.Fields(); len(fields) > 0 {
		if err := s.Store.UpdateQuestionFields(ctx, s.DB, op.QuestionID, fields); err != nil {
			return err
		}
	}
	for _, tag := range op.NewTags {
		if _, err := s.Store.AppendCompanyTag(ctx, s.DB, op.QuestionID, tag); err != nil {
			return err
		}
	}
	return nil
}

// publishMetadata stamps questions_last_updated with the current time in unix
// milliseconds. Failures are logged, never surfaced: the batch already
// succeeded and clients will converge on the next write.
func (s *ImportService) publishMetadata(ctx context.Context) {
	now := time.Now().UTC().UnixMilli()
	if err := s.Store.UpsertMetadata(ctx, s.DB, domain.MetadataKeyQuestionsLastUpdated, now); err != nil {
		log.Warn().Err(err).Msg("ingest: failed to publish metadata timestamp")
	}
}

// repoDuplicate reports whether err looks like a unique-constraint violation
// surfaced by the driver rather than the repo sentinel.
func repoDuplicate(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique constraint") || strings.Contains(msg, "duplicate key")
}
