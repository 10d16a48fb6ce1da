package services

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"testing"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/yungbote/ecfr-analyzer-backend/internal/ecfr"
	"github.com/yungbote/ecfr-analyzer-backend/internal/logger"
	"github.com/yungbote/ecfr-analyzer-backend/internal/types"
)

func newTestLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New("development")
	if err != nil {
		t.Fatalf("init logger: %v", err)
	}
	return log
}

func mustJSON(t *testing.T, counts map[string]int) datatypes.JSON {
	t.Helper()
	raw, err := json.Marshal(counts)
	if err != nil {
		t.Fatalf("marshal counts: %v", err)
	}
	return datatypes.JSON(raw)
}

// ---- in-memory repo fakes ----

type fakeAgencyRepo struct {
	mu       sync.Mutex
	agencies []*types.Agency
	getCalls int
}

func (f *fakeAgencyRepo) ReplaceAll(ctx context.Context, tx *gorm.DB, agencies []*types.Agency) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	nextID := uint(1)
	stored := make([]*types.Agency, 0, len(agencies))
	for _, a := range agencies {
		cp := *a
		cp.ID = nextID
		for i := range cp.CfrReferences {
			cp.CfrReferences[i].AgencyID = cp.ID
		}
		nextID++
		stored = append(stored, &cp)
	}
	f.agencies = stored
	return nil
}

func (f *fakeAgencyRepo) GetAll(ctx context.Context, tx *gorm.DB) ([]*types.Agency, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.getCalls++
	return f.agencies, nil
}

func (f *fakeAgencyRepo) GetByID(ctx context.Context, tx *gorm.DB, agencyID uint) (*types.Agency, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.getCalls++
	for _, a := range f.agencies {
		if a.ID == agencyID {
			return a, nil
		}
	}
	return nil, nil
}

type fakeTitleRepo struct {
	mu     sync.Mutex
	titles []*types.Title
}

func (f *fakeTitleRepo) ReplaceAll(ctx context.Context, tx *gorm.DB, titles []*types.Title) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.titles = titles
	return nil
}

func (f *fakeTitleRepo) GetAll(ctx context.Context, tx *gorm.DB) ([]*types.Title, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.titles, nil
}

type fakeChapterRepo struct {
	mu      sync.Mutex
	records []*types.ChapterWordCount
}

func (f *fakeChapterRepo) Upsert(ctx context.Context, tx *gorm.DB, record *types.ChapterWordCount) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, existing := range f.records {
		if existing.TitleNumber == record.TitleNumber &&
			existing.ChapterName == record.ChapterName &&
			existing.Date == record.Date {
			f.records[i] = record
			return nil
		}
	}
	f.records = append(f.records, record)
	return nil
}

func (f *fakeChapterRepo) GetAll(ctx context.Context, tx *gorm.DB) ([]*types.ChapterWordCount, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.records, nil
}

func (f *fakeChapterRepo) GetByTitleNumbers(ctx context.Context, tx *gorm.DB, titleNumbers []int) ([]*types.ChapterWordCount, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	wanted := map[int]bool{}
	for _, n := range titleNumbers {
		wanted[n] = true
	}
	var out []*types.ChapterWordCount
	for _, r := range f.records {
		if wanted[r.TitleNumber] {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeChapterRepo) DistinctDates(ctx context.Context, tx *gorm.DB) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	seen := map[string]bool{}
	var dates []string
	for _, r := range f.records {
		if !seen[r.Date] {
			seen[r.Date] = true
			dates = append(dates, r.Date)
		}
	}
	return dates, nil
}

type fakeRunRepo struct {
	mu   sync.Mutex
	runs []*types.IngestionRun
}

func (f *fakeRunRepo) Create(ctx context.Context, tx *gorm.DB, run *types.IngestionRun) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.runs = append(f.runs, run)
	return nil
}

func (f *fakeRunRepo) Update(ctx context.Context, tx *gorm.DB, run *types.IngestionRun) error {
	return nil
}

func (f *fakeRunRepo) GetLatest(ctx context.Context, tx *gorm.DB) (*types.IngestionRun, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.runs) == 0 {
		return nil, nil
	}
	return f.runs[len(f.runs)-1], nil
}

// ---- upstream client fake ----

type fakeEcfrClient struct {
	mu          sync.Mutex
	agencies    []ecfr.Agency
	titles      []ecfr.Title
	bodies      map[int]any
	agenciesErr error
	bodyErr     map[int]error
}

func (f *fakeEcfrClient) FetchAgencies(ctx context.Context) ([]ecfr.Agency, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.agenciesErr != nil {
		return nil, f.agenciesErr
	}
	return f.agencies, nil
}

func (f *fakeEcfrClient) FetchTitles(ctx context.Context) ([]ecfr.Title, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.titles, nil
}

func (f *fakeEcfrClient) FetchTitleBody(ctx context.Context, titleNumber int, date string) (any, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.bodyErr[titleNumber]; err != nil {
		return nil, err
	}
	body, ok := f.bodies[titleNumber]
	if !ok {
		return nil, fmt.Errorf("no body for title %d", titleNumber)
	}
	return body, nil
}
