package services

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gorm.io/gorm"

	"github.com/preptrack/go-prep-backend/internal/domain"
)

// ---------- fake catalog store ----------

type fakeStore struct {
	existing []domain.Question

	created  []*domain.Question
	updates  map[string][]map[string]any
	appends  map[string][]domain.CompanyTag
	metadata map[string]int64

	createErr error
	updateErr error
	appendErr error
	metaErr   error
}

func newFakeStore(existing ...domain.Question) *fakeStore {
	return &fakeStore{
		existing: existing,
		updates:  map[string][]map[string]any{},
		appends:  map[string][]domain.CompanyTag{},
		metadata: map[string]int64{},
	}
}

func (f *fakeStore) FindByTitles(ctx context.Context, db *gorm.DB, titles []string) ([]domain.Question, error) {
	want := make(map[string]struct{}, len(titles))
	for _, t := range titles {
		want[t] = struct{}{}
	}
	var out []domain.Question
	for _, q := range f.existing {
		if _, ok := want[q.Title]; ok {
			out = append(out, q)
		}
	}
	return out, nil
}

func (f *fakeStore) CreateQuestion(ctx context.Context, db *gorm.DB, q *domain.Question) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.created = append(f.created, q)
	return nil
}

func (f *fakeStore) UpdateQuestionFields(ctx context.Context, db *gorm.DB, id string, fields map[string]any) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	f.updates[id] = append(f.updates[id], fields)
	return nil
}

func (f *fakeStore) AppendCompanyTag(ctx context.Context, db *gorm.DB, questionID string, tag domain.CompanyTag) (bool, error) {
	if f.appendErr != nil {
		return false, f.appendErr
	}
	f.appends[questionID] = append(f.appends[questionID], tag)
	return true, nil
}

func (f *fakeStore) UpsertMetadata(ctx context.Context, db *gorm.DB, key string, value int64) error {
	if f.metaErr != nil {
		return f.metaErr
	}
	f.metadata[key] = value
	return nil
}

const sampleCSV = `Title,Difficulty,Topics,URL,Acceptance %,Frequency %
Two Sum,Easy,"Array, Hash Table",https://x/two-sum,49.2,95
LRU Cache,Medium,Design,https://x/lru,41.0,70
`

func TestImportCSV_InputValidation(t *testing.T) {
	svc := NewImportService(nil, newFakeStore())
	ctx := context.Background()

	if _, err := svc.ImportCSV(ctx, "  ", domain.AskedWithin30Days, strings.NewReader(sampleCSV)); err != ErrMissingCompany {
		t.Fatalf("blank company: got %v", err)
	}
	if _, err := svc.ImportCSV(ctx, "Google", "lately", strings.NewReader(sampleCSV)); err != ErrInvalidBucket {
		t.Fatalf("bad bucket: got %v", err)
	}
	if _, err := svc.ImportCSV(ctx, "Google", "", strings.NewReader(sampleCSV)); err != ErrInvalidBucket {
		t.Fatalf("missing bucket: got %v", err)
	}
	if _, err := svc.ImportCSV(ctx, "Google", domain.AskedWithin30Days, strings.NewReader("Title,Difficulty,Link\n")); err != ErrEmptyUpload {
		t.Fatalf("empty file: got %v", err)
	}
}

func TestImportCSV_CreatesAndPublishesMetadata(t *testing.T) {
	store := newFakeStore()
	svc := NewImportService(nil, store)

	rep, err := svc.ImportCSV(context.Background(), "Google", domain.AskedWithin30Days, strings.NewReader(sampleCSV))
	if err != nil {
		t.Fatalf("ImportCSV: %v", err)
	}
	if rep.Created != 2 || rep.Updated != 0 || rep.Skipped != 0 || rep.Errors != 0 {
		t.Fatalf("report = %+v", rep)
	}
	if len(store.created) != 2 {
		t.Fatalf("created = %d, want 2", len(store.created))
	}
	q := store.created[0]
	if q.Title != "Two Sum" || !q.IsActive || len(q.Companies) != 1 {
		t.Fatalf("unexpected insert: %+v", q)
	}
	if q.Companies[0].Company != "Google" || q.Companies[0].AskedWithin != domain.AskedWithin30Days {
		t.Fatalf("unexpected tag: %+v", q.Companies[0])
	}
	if _, ok := store.metadata[domain.MetadataKeyQuestionsLastUpdated]; !ok {
		t.Fatal("expected metadata timestamp to be published")
	}
}

func TestImportCSV_UpdatesExistingAndFreezesCompany(t *testing.T) {
	existing := domain.Question{
		ID: "q1", Title: "Two Sum", Link: "https://x/two-sum",
		Difficulty: domain.DifficultyEasy, IsActive: true,
		Companies: []domain.CompanyTag{{Company: "Google", CompanyKey: "google"}},
	}
	store := newFakeStore(existing)
	svc := NewImportService(nil, store)

	// Same company re-uploaded with different casing: scalar refresh only.
	csv := "Title,Difficulty,URL,Frequency %\nTwo Sum,Easy,https://x/two-sum,80\n"
	rep, err := svc.ImportCSV(context.Background(), "GOOGLE", domain.AskedWithin2Months, strings.NewReader(csv))
	if err != nil {
		t.Fatalf("ImportCSV: %v", err)
	}
	if rep.Created != 0 || rep.Updated != 1 {
		t.Fatalf("report = %+v", rep)
	}
	if len(store.appends["q1"]) != 0 {
		t.Fatalf("existing company must not be re-tagged: %+v", store.appends["q1"])
	}
	ups := store.updates["q1"]
	if len(ups) != 1 || ups[0]["frequency"] != 80.0 {
		t.Fatalf("unexpected scalar update: %+v", ups)
	}

	// A genuinely new company appends one tag.
	store2 := newFakeStore(existing)
	svc2 := NewImportService(nil, store2)
	rep, err = svc2.ImportCSV(context.Background(), "Stripe", domain.AskedWithin30Days,
		strings.NewReader("Title,Difficulty,URL\nTwo Sum,Easy,https://x/two-sum\n"))
	if err != nil {
		t.Fatalf("ImportCSV: %v", err)
	}
	if rep.Updated != 1 {
		t.Fatalf("report = %+v", rep)
	}
	tags := store2.appends["q1"]
	if len(tags) != 1 || tags[0].Company != "Stripe" {
		t.Fatalf("expected one Stripe tag, got %+v", tags)
	}
}

func TestImportCSV_SameBatchDuplicateFolds(t *testing.T) {
	store := newFakeStore()
	svc := NewImportService(nil, store)

	csv := `Title,Difficulty,URL,Acceptance %,Frequency %
Two Sum,Easy,https://x/two-sum,49.2,1
Two Sum,Easy,https://x/two-sum,,3
`
	rep, err := svc.ImportCSV(context.Background(), "Google", domain.AskedWithin30Days, strings.NewReader(csv))
	if err != nil {
		t.Fatalf("ImportCSV: %v", err)
	}
	if rep.Created != 1 || rep.Updated != 1 || rep.Errors != 0 {
		t.Fatalf("report = %+v", rep)
	}
	if len(store.created) != 1 {
		t.Fatalf("created = %d, want a single write", len(store.created))
	}
	q := store.created[0]
	if q.AcceptanceRate != 49.2 || q.Frequency != 3 {
		t.Fatalf("fold lost fields: rate=%v freq=%v", q.AcceptanceRate, q.Frequency)
	}
	if len(q.Companies) != 1 {
		t.Fatalf("company must be deduped within the batch: %+v", q.Companies)
	}
}

func TestImportCSV_RowErrorsReportedWithIndex(t *testing.T) {
	store := newFakeStore()
	svc := NewImportService(nil, store)

	csv := `Title,Difficulty,URL
Two Sum,Easy,https://x/two-sum
,Medium,https://x/missing-title
`
	rep, err := svc.ImportCSV(context.Background(), "Google", domain.AskedWithin30Days, strings.NewReader(csv))
	if err != nil {
		t.Fatalf("ImportCSV: %v", err)
	}
	if rep.Created != 1 || rep.Errors != 1 {
		t.Fatalf("report = %+v", rep)
	}
	if len(rep.Details) != 1 || rep.Details[0].Row != 2 {
		t.Fatalf("expected detail for row 2, got %+v", rep.Details)
	}
}

func TestImportCSV_WriteFailureDoesNotPublishMetadata(t *testing.T) {
	store := newFakeStore()
	store.createErr = errors.New("disk full")
	svc := NewImportService(nil, store)

	rep, err := svc.ImportCSV(context.Background(), "Google", domain.AskedWithin30Days, strings.NewReader(sampleCSV))
	if err != nil {
		t.Fatalf("ImportCSV: %v", err)
	}
	if rep.Created != 0 || rep.Errors != 2 {
		t.Fatalf("report = %+v", rep)
	}
	if len(store.metadata) != 0 {
		t.Fatal("metadata must not be published when nothing was written")
	}
}

func TestImportCSV_MetadataFailureIsSwallowed(t *testing.T) {
	store := newFakeStore()
	store.metaErr = errors.New("metadata down")
	svc := NewImportService(nil, store)

	rep, err := svc.ImportCSV(context.Background(), "Google", domain.AskedWithin30Days, strings.NewReader(sampleCSV))
	if err != nil {
		t.Fatalf("metadata failure must not surface: %v", err)
	}
	if rep.Created != 2 {
		t.Fatalf("report = %+v", rep)
	}
}

func TestImportFile_RemovesUpload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "upload.csv")
	if err := os.WriteFile(path, []byte(sampleCSV), 0o600); err != nil {
		t.Fatalf("write temp file: %v", err)
	}

	store := newFakeStore()
	svc := NewImportService(nil, store)

	rep, err := svc.ImportFile(context.Background(), "Google", domain.AskedWithin30Days, path)
	if err != nil {
		t.Fatalf("ImportFile: %v", err)
	}
	if rep.Created != 2 {
		t.Fatalf("report = %+v", rep)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatal("uploaded file must be removed")
	}
}

func TestImportFile_MissingFile(t *testing.T) {
	svc := NewImportService(nil, newFakeStore())
	if _, err := svc.ImportFile(context.Background(), "Google", domain.AskedWithin30Days, "/nonexistent/upload.csv"); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestBulkCreate(t *testing.T) {
	store := newFakeStore()
	svc := NewImportService(nil, store)

	created, details, err := svc.BulkCreate(context.Background(), []domain.Question{
		{Title: "Two Sum", Link: "https://x/two-sum", Difficulty: domain.DifficultyEasy,
			Companies: []domain.CompanyTag{{Company: "Google"}}},
		{Title: "", Link: "https://x/bad", Difficulty: domain.DifficultyEasy},
		{Title: "LRU Cache", Link: "https://x/lru", Difficulty: "Impossible"},
	})
	if err != nil {
		t.Fatalf("BulkCreate: %v", err)
	}
	if created != 1 || len(details) != 2 {
		t.Fatalf("created=%d details=%+v", created, details)
	}
	if details[0].Row != 2 || details[1].Row != 3 {
		t.Fatalf("wrong rows in details: %+v", details)
	}
	if store.created[0].Companies[0].CompanyKey != "google" {
		t.Fatalf("company key not folded: %+v", store.created[0].Companies[0])
	}
	if _, ok := store.metadata[domain.MetadataKeyQuestionsLastUpdated]; !ok {
		t.Fatal("expected metadata bump after bulk create")
	}
}
