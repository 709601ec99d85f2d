// Package services – QuestionService
//
// This file implements QuestionService, which owns catalog reads and the
// admin-side single-question mutations. It validates filter parameters,
// paginates, optionally decorates results with the caller's progress, and
// keeps the cache-invalidation metadata in step with every catalog write.
//
// Observability: list and mutation paths are OpenTelemetry-instrumented.
package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/preptrack/go-prep-backend/internal/domain"
	"github.com/preptrack/go-prep-backend/internal/repo"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
)

// FAANG companies get dedicated slots on the home dashboard; everything else
// competes for the top list.
var faangCompanies = []string{"Meta", "Apple", "Amazon", "Netflix", "Google"}

// topCompanyLimit caps the non-FAANG company list on the home dashboard.
const topCompanyLimit = 12

// QuestionView is one catalog entry optionally decorated with the calling
// user's progress.
type QuestionView struct {
	domain.Question
	Progress *domain.Tracking `json:"progress,omitempty"`
}

// QuestionPage is one page of the filtered catalog.
type QuestionPage struct {
	Items      []QuestionView `json:"items"`
	Total      int64          `json:"total"`
	Page       int            `json:"page"`
	PageSize   int            `json:"pageSize"`
	TotalPages int            `json:"totalPages"`
}

// QuestionPatch carries the admin update fields. Nil pointers leave the
// stored value alone.
type QuestionPatch struct {
	Title          *string
	Difficulty     *string
	Topics         *domain.StringList
	Link           *string
	AcceptanceRate *float64
	Frequency      *float64
	IsActive       *bool
}

// HomeStats is the public dashboard payload.
type HomeStats struct {
	Total        int64               `json:"total"`
	ByDifficulty map[string]int64    `json:"byDifficulty"`
	FAANG        []repo.CompanyCount `json:"faang"`
	TopCompanies []repo.CompanyCount `json:"topCompanies"`
}

// AdminStats is the admin dashboard payload.
type AdminStats struct {
	TotalQuestions  int64             `json:"totalQuestions"`
	ByDifficulty    map[string]int64  `json:"byDifficulty"`
	ByRecency       map[string]int64  `json:"byRecency"`
	TotalCompanies  int               `json:"totalCompanies"`
	TrackedUsers    int64             `json:"trackedUsers"`
	RecentQuestions []domain.Question `json:"recentQuestions"`
}

// QuestionService provides catalog reads and admin mutations.
type QuestionService struct {
	// DB is the GORM handle used for persistence.
	DB *gorm.DB
}

// NewQuestionService constructs a QuestionService.
func NewQuestionService(db *gorm.DB) *QuestionService {
	return &QuestionService{DB: db}
}

// List returns one page of the filtered catalog. When userID is non-empty
// each item carries that user's progress record, if any.
func (s *QuestionService) List(ctx context.Context, f repo.QuestionFilter, page, pageSize int, userID string) (*QuestionPage, error) {
	tr := otel.Tracer("services/QuestionService")
	ctx, span := tr.Start(ctx, "List")
	defer span.End()

	if f.Difficulty != "" && !domain.ValidDifficulty(f.Difficulty) {
		return nil, ErrInvalidDifficulty
	}
	if f.Bucket != "" && !f.Bucket.Valid() {
		return nil, ErrInvalidBucket
	}
	if page < 1 {
		page = 1
	}
	if pageSize <= 0 || pageSize > 100 {
		pageSize = 20
	}
	span.SetAttributes(attribute.Int("page", page), attribute.Int("page_size", pageSize))

	total, err := repo.CountQuestions(ctx, s.DB, f)
	if err != nil {
		return nil, err
	}
	out := &QuestionPage{
		Items:    []QuestionView{},
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	}
	if total == 0 {
		return out, nil
	}
	out.TotalPages = int((total + int64(pageSize) - 1) / int64(pageSize))

	items, err := repo.ListQuestions(ctx, s.DB, f, (page-1)*pageSize, pageSize)
	if err != nil {
		return nil, err
	}
	out.Items = s.decorate(ctx, items, userID)
	return out, nil
}

// Get fetches one active question, decorated with the user's progress when
// userID is non-empty.
func (s *QuestionService) Get(ctx context.Context, id, userID string) (*QuestionView, error) {
	q, err := repo.GetQuestion(ctx, s.DB, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrQuestionNotFound
		}
		return nil, err
	}
	view := QuestionView{Question: *q}
	if userID != "" {
		if t, err := repo.GetTracking(ctx, s.DB, userID, id); err == nil {
			view.Progress = t
		}
	}
	return &view, nil
}

// Create inserts a single admin-supplied question and bumps the catalog
// metadata.
func (s *QuestionService) Create(ctx context.Context, q *domain.Question) error {
	q.Title = strings.TrimSpace(q.Title)
	q.Link = strings.TrimSpace(q.Link)
	if q.Title == "" || q.Link == "" {
		return ErrMissingFields
	}
	if !domain.ValidDifficulty(q.Difficulty) {
		return ErrInvalidDifficulty
	}
	q.IsActive = true
	for i := range q.Companies {
		q.Companies[i].CompanyKey = domain.CompanyKey(q.Companies[i].Company)
	}
	if err := repo.CreateQuestion(ctx, s.DB, q); err != nil {
		if repoDuplicate(err) {
			return ErrDuplicateQuestion
		}
		return err
	}
	s.publishMetadata(ctx)
	return nil
}

// Update applies an admin patch to one question and bumps the catalog
// metadata when anything changed.
func (s *QuestionService) Update(ctx context.Context, id string, patch QuestionPatch) error {
	fields := make(map[string]any, 7)
	if patch.Title != nil {
		t := strings.TrimSpace(*patch.Title)
		if t == "" {
			return ErrMissingFields
		}
		fields["title"] = t
	}
	if patch.Difficulty != nil {
		if !domain.ValidDifficulty(*patch.Difficulty) {
			return ErrInvalidDifficulty
		}
		fields["difficulty"] = *patch.Difficulty
	}
	if patch.Topics != nil {
		fields["topics"] = *patch.Topics
	}
	if patch.Link != nil {
		l := strings.TrimSpace(*patch.Link)
		if l == "" {
			return ErrMissingFields
		}
		fields["link"] = l
	}
	if patch.AcceptanceRate != nil {
		fields["acceptance_rate"] = *patch.AcceptanceRate
	}
	if patch.Frequency != nil {
		fields["frequency"] = *patch.Frequency
	}
	if patch.IsActive != nil {
		fields["is_active"] = *patch.IsActive
	}
	if len(fields) == 0 {
		return nil
	}
	fields["updated_at"] = time.Now().UTC()

	if err := repo.UpdateQuestionFields(ctx, s.DB, id, fields); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrQuestionNotFound
		}
		return err
	}
	s.publishMetadata(ctx)
	return nil
}

// Delete removes a question with its tags and tracking rows, then bumps the
// catalog metadata.
func (s *QuestionService) Delete(ctx context.Context, id string) error {
	if err := repo.DeleteQuestion(ctx, s.DB, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrQuestionNotFound
		}
		return err
	}
	s.publishMetadata(ctx)
	return nil
}

// Topics returns the sorted set of topics across active questions.
func (s *QuestionService) Topics(ctx context.Context) ([]string, error) {
	return repo.DistinctTopics(ctx, s.DB)
}

// CompanyStats returns per-company question counts, most-tagged first.
func (s *QuestionService) CompanyStats(ctx context.Context) ([]repo.CompanyCount, error) {
	return repo.CompanyCounts(ctx, s.DB)
}

// Home assembles the public dashboard: totals, per-difficulty counts, FAANG
// counts in fixed order, and the most-tagged non-FAANG companies.
func (s *QuestionService) Home(ctx context.Context) (*HomeStats, error) {
	tr := otel.Tracer("services/QuestionService")
	ctx, span := tr.Start(ctx, "Home")
	defer span.End()

	total, err := repo.CountActiveQuestions(ctx, s.DB)
	if err != nil {
		return nil, err
	}
	byDiff, err := repo.DifficultyCounts(ctx, s.DB)
	if err != nil {
		return nil, err
	}
	companies, err := repo.CompanyCounts(ctx, s.DB)
	if err != nil {
		return nil, err
	}

	byKey := make(map[string]repo.CompanyCount, len(companies))
	for _, c := range companies {
		byKey[domain.CompanyKey(c.Name)] = c
	}

	out := &HomeStats{
		Total:        total,
		ByDifficulty: byDiff,
		FAANG:        make([]repo.CompanyCount, 0, len(faangCompanies)),
		TopCompanies: []repo.CompanyCount{},
	}
	faang := make(map[string]struct{}, len(faangCompanies))
	for _, name := range faangCompanies {
		key := domain.CompanyKey(name)
		faang[key] = struct{}{}
		entry := repo.CompanyCount{Name: name}
		if c, ok := byKey[key]; ok {
			entry.Count = c.Count
		}
		out.FAANG = append(out.FAANG, entry)
	}
	for _, c := range companies {
		if _, ok := faang[domain.CompanyKey(c.Name)]; ok {
			continue
		}
		out.TopCompanies = append(out.TopCompanies, c)
		if len(out.TopCompanies) == topCompanyLimit {
			break
		}
	}
	return out, nil
}

// AdminDashboard assembles the admin stats payload.
func (s *QuestionService) AdminDashboard(ctx context.Context) (*AdminStats, error) {
	total, err := repo.CountActiveQuestions(ctx, s.DB)
	if err != nil {
		return nil, err
	}
	byDiff, err := repo.DifficultyCounts(ctx, s.DB)
	if err != nil {
		return nil, err
	}
	companies, err := repo.CompanyCounts(ctx, s.DB)
	if err != nil {
		return nil, err
	}
	byBucket := make(map[string]int64, 4)
	for _, b := range []domain.AskedWithin{
		domain.AskedWithin30Days, domain.AskedWithin2Months,
		domain.AskedWithin6Months, domain.AskedWithinOlder,
	} {
		n, err := repo.CountByBucket(ctx, s.DB, b)
		if err != nil {
			return nil, err
		}
		byBucket[string(b)] = n
	}
	users, err := repo.CountTrackedUsers(ctx, s.DB)
	if err != nil {
		return nil, err
	}
	recent, err := repo.RecentQuestions(ctx, s.DB, 5)
	if err != nil {
		return nil, err
	}
	return &AdminStats{
		TotalQuestions:  total,
		ByDifficulty:    byDiff,
		ByRecency:       byBucket,
		TotalCompanies:  len(companies),
		TrackedUsers:    users,
		RecentQuestions: recent,
	}, nil
}

// LastUpdated returns the questions_last_updated timestamp in unix
// milliseconds, zero when the catalog has never been written.
func (s *QuestionService) LastUpdated(ctx context.Context) (int64, error) {
	rec, err := repo.GetMetadata(ctx, s.DB, domain.MetadataKeyQuestionsLastUpdated)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, nil
		}
		return 0, err
	}
	return rec.Value, nil
}

// decorate attaches the user's progress to each item. Decoration failures
// degrade to plain items rather than failing the page.
func (s *QuestionService) decorate(ctx context.Context, items []domain.Question, userID string) []QuestionView {
	out := make([]QuestionView, len(items))
	for i := range items {
		out[i] = QuestionView{Question: items[i]}
	}
	if userID == "" {
		return out
	}
	ids := make([]string, len(items))
	for i := range items {
		ids[i] = items[i].ID
	}
	tracked, err := repo.TrackingByQuestionIDs(ctx, s.DB, userID, ids)
	if err != nil {
		log.Warn().Err(err).Str("user_id", userID).Msg("failed to load progress decoration")
		return out
	}
	for i := range out {
		if t, ok := tracked[out[i].ID]; ok {
			row := t
			out[i].Progress = &row
		}
	}
	return out
}

// publishMetadata stamps questions_last_updated after a catalog write.
// Failures are logged, never surfaced.
func (s *QuestionService) publishMetadata(ctx context.Context) {
	now := time.Now().UTC().UnixMilli()
	if err := repo.UpsertMetadata(ctx, s.DB, domain.MetadataKeyQuestionsLastUpdated, now); err != nil {
		log.Warn().Err(err).Msg("failed to publish metadata timestamp")
	}
}
