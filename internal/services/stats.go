package services

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"gorm.io/gorm"

	"github.com/yungbote/ecfr-analyzer-backend/internal/logger"
	"github.com/yungbote/ecfr-analyzer-backend/internal/repos"
	"github.com/yungbote/ecfr-analyzer-backend/internal/types"
)

const agencyTotalsCacheKey = "stats:agency_totals"

// StatsService answers the read-side aggregate views over agencies,
// references and chapter word counts.
type StatsService interface {
	// ListAgenciesWithTotals returns every agency with its reference list
	// deduplicated and the word total summed across every referenced chapter
	// and every stored date, sorted by sortable name. A chapter shared by
	// several agencies counts fully toward each of them.
	ListAgenciesWithTotals(ctx context.Context, tx *gorm.DB) ([]*types.AgencyWithWordCount, error)
	// AgencyWordCounts merges the word mappings of every chapter the agency
	// references, grouped by word and date, summed across chapters, sorted
	// by descending count. date narrows to one effective date; limit > 0
	// caps the result length.
	AgencyWordCounts(ctx context.Context, tx *gorm.DB, agencyID uint, date string, limit int) ([]*types.WordCount, error)
	AvailableDates(ctx context.Context, tx *gorm.DB) ([]string, error)
	ListTitles(ctx context.Context, tx *gorm.DB) ([]*types.Title, error)
}

type statsService struct {
	db          *gorm.DB
	log         *logger.Logger
	agencyRepo  repos.AgencyRepo
	titleRepo   repos.TitleRepo
	chapterRepo repos.ChapterWordCountRepo
	cache       StatsCache
}

func NewStatsService(
	db *gorm.DB,
	baseLog *logger.Logger,
	agencyRepo repos.AgencyRepo,
	titleRepo repos.TitleRepo,
	chapterRepo repos.ChapterWordCountRepo,
	cache StatsCache,
) StatsService {
	serviceLog := baseLog.With("service", "StatsService")
	return &statsService{
		db:          db,
		log:         serviceLog,
		agencyRepo:  agencyRepo,
		titleRepo:   titleRepo,
		chapterRepo: chapterRepo,
		cache:       cache,
	}
}

func (ss *statsService) ListAgenciesWithTotals(ctx context.Context, tx *gorm.DB) ([]*types.AgencyWithWordCount, error) {
	if ss.cache != nil {
		var cached []*types.AgencyWithWordCount
		hit, err := ss.cache.Get(ctx, agencyTotalsCacheKey, &cached)
		if err != nil {
			ss.log.Warn("Cache read failed, falling through to store", "error", err)
		}
		if hit {
			return cached, nil
		}
	}

	agencies, err := ss.agencyRepo.GetAll(ctx, tx)
	if err != nil {
		return nil, fmt.Errorf("load agencies: %w", err)
	}
	chapters, err := ss.chapterRepo.GetAll(ctx, tx)
	if err != nil {
		return nil, fmt.Errorf("load chapter word counts: %w", err)
	}

	// Total words per (title, chapter), summed over every stored date.
	chapterTotals := map[string]int{}
	for _, chapter := range chapters {
		counts, err := decodeCounts(chapter)
		if err != nil {
			ss.log.Warn("Skipping unreadable chapter word count",
				"title_number", chapter.TitleNumber, "chapter_name", chapter.ChapterName, "error", err)
			continue
		}
		total := 0
		for _, n := range counts {
			total += n
		}
		chapterTotals[refKey(chapter.TitleNumber, chapter.ChapterName)] += total
	}

	results := make([]*types.AgencyWithWordCount, 0, len(agencies))
	for _, agency := range agencies {
		refs := dedupeRefs(agency.CfrReferences)
		total := 0
		for _, ref := range refs {
			total += chapterTotals[refKey(ref.Title, ref.Chapter)]
		}
		row := &types.AgencyWithWordCount{Agency: *agency, TotalWordCount: total}
		row.CfrReferences = refs
		results = append(results, row)
	}

	sort.SliceStable(results, func(i, j int) bool {
		return sortName(&results[i].Agency) < sortName(&results[j].Agency)
	})

	if ss.cache != nil {
		if err := ss.cache.Set(ctx, agencyTotalsCacheKey, results); err != nil {
			ss.log.Warn("Cache write failed", "error", err)
		}
	}
	return results, nil
}

func (ss *statsService) AgencyWordCounts(ctx context.Context, tx *gorm.DB, agencyID uint, date string, limit int) ([]*types.WordCount, error) {
	agency, err := ss.agencyRepo.GetByID(ctx, tx, agencyID)
	if err != nil {
		return nil, fmt.Errorf("load agency %d: %w", agencyID, err)
	}
	if agency == nil {
		return []*types.WordCount{}, nil
	}

	refs := dedupeRefs(agency.CfrReferences)
	titleNumbers := make([]int, 0, len(refs))
	seenTitle := map[int]bool{}
	wanted := map[string]bool{}
	for _, ref := range refs {
		wanted[refKey(ref.Title, ref.Chapter)] = true
		if !seenTitle[ref.Title] {
			seenTitle[ref.Title] = true
			titleNumbers = append(titleNumbers, ref.Title)
		}
	}

	chapters, err := ss.chapterRepo.GetByTitleNumbers(ctx, tx, titleNumbers)
	if err != nil {
		return nil, fmt.Errorf("load chapter word counts: %w", err)
	}

	merged := map[string]*types.WordCount{}
	for _, chapter := range chapters {
		if !wanted[refKey(chapter.TitleNumber, chapter.ChapterName)] {
			continue
		}
		if date != "" && chapter.Date != date {
			continue
		}
		counts, err := decodeCounts(chapter)
		if err != nil {
			ss.log.Warn("Skipping unreadable chapter word count",
				"title_number", chapter.TitleNumber, "chapter_name", chapter.ChapterName, "error", err)
			continue
		}
		for word, n := range counts {
			key := word + "|" + chapter.Date
			if wc, ok := merged[key]; ok {
				wc.Count += n
				continue
			}
			merged[key] = &types.WordCount{Word: word, Count: n, Date: chapter.Date}
		}
	}

	results := make([]*types.WordCount, 0, len(merged))
	for _, wc := range merged {
		results = append(results, wc)
	}
	sort.SliceStable(results, func(i, j int) bool {
		if results[i].Count != results[j].Count {
			return results[i].Count > results[j].Count
		}
		return results[i].Word < results[j].Word
	})
	if limit > 0 && len(results) > limit {
		results = results[:limit]
	}
	return results, nil
}

func (ss *statsService) AvailableDates(ctx context.Context, tx *gorm.DB) ([]string, error) {
	dates, err := ss.chapterRepo.DistinctDates(ctx, tx)
	if err != nil {
		return nil, fmt.Errorf("load dates: %w", err)
	}
	return dates, nil
}

func (ss *statsService) ListTitles(ctx context.Context, tx *gorm.DB) ([]*types.Title, error) {
	titles, err := ss.titleRepo.GetAll(ctx, tx)
	if err != nil {
		return nil, fmt.Errorf("load titles: %w", err)
	}
	return titles, nil
}

func decodeCounts(chapter *types.ChapterWordCount) (map[string]int, error) {
	counts := map[string]int{}
	if len(chapter.WordCount) == 0 {
		return counts, nil
	}
	if err := json.Unmarshal(chapter.WordCount, &counts); err != nil {
		return nil, err
	}
	return counts, nil
}

func refKey(titleNumber int, chapterName string) string {
	return fmt.Sprintf("%d|%s", titleNumber, chapterName)
}

func dedupeRefs(refs []types.CfrReference) []types.CfrReference {
	seen := map[string]bool{}
	out := make([]types.CfrReference, 0, len(refs))
	for _, ref := range refs {
		key := refKey(ref.Title, ref.Chapter)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, ref)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Title != out[j].Title {
			return out[i].Title < out[j].Title
		}
		return out[i].Chapter < out[j].Chapter
	})
	return out
}

func sortName(agency *types.Agency) string {
	if agency.SortableName != "" {
		return agency.SortableName
	}
	return agency.Name
}
