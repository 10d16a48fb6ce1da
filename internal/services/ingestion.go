package services

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"github.com/yungbote/ecfr-analyzer-backend/internal/ecfr"
	"github.com/yungbote/ecfr-analyzer-backend/internal/logger"
	"github.com/yungbote/ecfr-analyzer-backend/internal/repos"
	"github.com/yungbote/ecfr-analyzer-backend/internal/types"
	"github.com/yungbote/ecfr-analyzer-backend/internal/utils"
	"github.com/yungbote/ecfr-analyzer-backend/internal/wordcount"
)

type IngestionState string

const (
	StateIdle    IngestionState = "idle"
	StateRunning IngestionState = "running"
	StateFailed  IngestionState = "failed"
	StateDone    IngestionState = "done"
)

// IngestionService runs the fetch -> flatten/aggregate -> persist pipeline:
// agencies first, then titles, then per-(title, date) chapter bodies. One
// coordinator owns the state; Running and Done triggers are acknowledged
// without starting a second run, Failed is retryable.
type IngestionService interface {
	// Trigger starts a background run when the coordinator is idle or
	// failed. It returns the state after the call and whether a new run was
	// started. Failures inside the background run are logged and recorded on
	// the run row, not returned here.
	Trigger(ctx context.Context) (IngestionState, bool, error)
	State() IngestionState
	LatestRun(ctx context.Context) (*types.IngestionRun, error)
}

type ingestionService struct {
	db          *gorm.DB
	log         *logger.Logger
	client      ecfr.Client
	agencyRepo  repos.AgencyRepo
	titleRepo   repos.TitleRepo
	chapterRepo repos.ChapterWordCountRepo
	runRepo     repos.IngestionRunRepo
	cache       StatsCache

	dates       []string
	concurrency int

	mu    sync.Mutex
	state IngestionState
}

func NewIngestionService(
	db *gorm.DB,
	baseLog *logger.Logger,
	client ecfr.Client,
	agencyRepo repos.AgencyRepo,
	titleRepo repos.TitleRepo,
	chapterRepo repos.ChapterWordCountRepo,
	runRepo repos.IngestionRunRepo,
	cache StatsCache,
) IngestionService {
	serviceLog := baseLog.With("service", "IngestionService")
	dates := utils.GetEnvAsList("ECFR_INGEST_DATES", []string{"2025-02-28"}, baseLog)
	concurrency := utils.GetEnvAsInt("INGEST_CONCURRENCY", 1, baseLog)
	if concurrency < 1 {
		concurrency = 1
	}
	return &ingestionService{
		db:          db,
		log:         serviceLog,
		client:      client,
		agencyRepo:  agencyRepo,
		titleRepo:   titleRepo,
		chapterRepo: chapterRepo,
		runRepo:     runRepo,
		cache:       cache,
		dates:       dates,
		concurrency: concurrency,
		state:       StateIdle,
	}
}

func (is *ingestionService) State() IngestionState {
	is.mu.Lock()
	defer is.mu.Unlock()
	return is.state
}

func (is *ingestionService) LatestRun(ctx context.Context) (*types.IngestionRun, error) {
	return is.runRepo.GetLatest(ctx, nil)
}

func (is *ingestionService) Trigger(ctx context.Context) (IngestionState, bool, error) {
	is.mu.Lock()
	defer is.mu.Unlock()

	if is.state == StateRunning || is.state == StateDone {
		return is.state, false, nil
	}

	run := &types.IngestionRun{
		ID:        uuid.New(),
		Status:    string(StateRunning),
		StartedAt: time.Now().UTC(),
	}
	if err := is.runRepo.Create(ctx, nil, run); err != nil {
		return is.state, false, fmt.Errorf("record ingestion run: %w", err)
	}

	is.state = StateRunning
	go is.run(context.Background(), run)
	return is.state, true, nil
}

func (is *ingestionService) run(ctx context.Context, run *types.IngestionRun) {
	err := is.ingest(ctx, run)

	now := time.Now().UTC()
	run.FinishedAt = &now

	is.mu.Lock()
	if err != nil {
		is.state = StateFailed
		run.Status = string(StateFailed)
		run.Error = err.Error()
	} else {
		is.state = StateDone
		run.Status = string(StateDone)
	}
	is.mu.Unlock()

	if updateErr := is.runRepo.Update(ctx, nil, run); updateErr != nil {
		is.log.Error("Failed to record ingestion run outcome", "error", updateErr)
	}

	if err != nil {
		is.log.Error("Ingestion run failed", "run_id", run.ID, "error", err)
		return
	}

	if is.cache != nil {
		if cacheErr := is.cache.Invalidate(ctx, agencyTotalsCacheKey); cacheErr != nil {
			is.log.Warn("Cache invalidation failed after ingestion", "error", cacheErr)
		}
	}
	is.log.Info("Ingestion run complete", "run_id", run.ID,
		"agencies", run.AgencyCount, "titles", run.TitleCount, "chapters", run.ChapterCount)
}

func (is *ingestionService) ingest(ctx context.Context, run *types.IngestionRun) error {
	// Phase 1: agencies, wholesale replace.
	agencyTrees, err := is.client.FetchAgencies(ctx)
	if err != nil {
		return fmt.Errorf("fetch agencies: %w", err)
	}
	flattened := ecfr.FlattenAgencies(agencyTrees)
	is.log.Info("Saving agencies", "count", len(flattened))
	if err := is.agencyRepo.ReplaceAll(ctx, nil, flattened); err != nil {
		return fmt.Errorf("save agencies: %w", err)
	}
	run.AgencyCount = len(flattened)

	// Phase 2: titles, wholesale replace.
	upstreamTitles, err := is.client.FetchTitles(ctx)
	if err != nil {
		return fmt.Errorf("fetch titles: %w", err)
	}
	titles := make([]*types.Title, 0, len(upstreamTitles))
	for _, t := range upstreamTitles {
		titles = append(titles, &types.Title{
			Number:          t.Number,
			Name:            t.Name,
			LatestAmendedOn: t.LatestAmendedOn,
			LatestIssueDate: t.LatestIssueDate,
			UpToDateAsOf:    t.UpToDateAsOf,
			Reserved:        t.Reserved,
		})
	}
	is.log.Info("Saving titles", "count", len(titles))
	if err := is.titleRepo.ReplaceAll(ctx, nil, titles); err != nil {
		return fmt.Errorf("save titles: %w", err)
	}
	run.TitleCount = len(titles)

	// Phase 3: chapter bodies per (title, date). A failed unit is logged
	// and skipped; chapter writes are idempotent upserts so the bounded
	// fan-out is safe.
	var chapterCount atomic.Int64
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(is.concurrency)
	for _, t := range upstreamTitles {
		if t.Reserved {
			is.log.Debug("Skipping reserved title", "title_number", t.Number)
			continue
		}
		for _, date := range is.dates {
			titleNumber := t.Number
			ingestDate := date
			g.Go(func() error {
				n, err := is.ingestTitleBody(gctx, titleNumber, ingestDate)
				if err != nil {
					is.log.Warn("Skipping title body",
						"title_number", titleNumber, "date", ingestDate, "error", err)
					return nil
				}
				chapterCount.Add(int64(n))
				return nil
			})
		}
	}
	if err := g.Wait(); err != nil {
		return err
	}
	run.ChapterCount = int(chapterCount.Load())
	return nil
}

func (is *ingestionService) ingestTitleBody(ctx context.Context, titleNumber int, date string) (int, error) {
	doc, err := is.client.FetchTitleBody(ctx, titleNumber, date)
	if err != nil {
		return 0, err
	}
	records, err := wordcount.ChapterCounts(doc, titleNumber, date)
	if err != nil {
		return 0, err
	}
	for _, record := range records {
		if err := is.chapterRepo.Upsert(ctx, nil, record); err != nil {
			return 0, fmt.Errorf("save chapter %q: %w", record.ChapterName, err)
		}
	}
	is.log.Info("Saved chapter word counts",
		"title_number", titleNumber, "date", date, "chapters", len(records))
	return len(records), nil
}
