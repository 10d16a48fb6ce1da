package repos

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/yungbote/ecfr-analyzer-backend/internal/logger"
	"github.com/yungbote/ecfr-analyzer-backend/internal/types"
)

type ChapterWordCountRepo interface {
	// Upsert writes one chapter record, replacing the word_count of an
	// existing (title_number, chapter_name, date) row so repeated ingestion
	// runs never accumulate duplicates.
	Upsert(ctx context.Context, tx *gorm.DB, record *types.ChapterWordCount) error
	GetAll(ctx context.Context, tx *gorm.DB) ([]*types.ChapterWordCount, error)
	// GetByTitleNumbers returns every chapter record for the given titles,
	// all chapters and dates included; callers narrow to exact (title,
	// chapter) pairs.
	GetByTitleNumbers(ctx context.Context, tx *gorm.DB, titleNumbers []int) ([]*types.ChapterWordCount, error)
	DistinctDates(ctx context.Context, tx *gorm.DB) ([]string, error)
}

type chapterWordCountRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewChapterWordCountRepo(db *gorm.DB, baseLog *logger.Logger) ChapterWordCountRepo {
	repoLog := baseLog.With("repo", "ChapterWordCountRepo")
	return &chapterWordCountRepo{db: db, log: repoLog}
}

func (cr *chapterWordCountRepo) Upsert(ctx context.Context, tx *gorm.DB, record *types.ChapterWordCount) error {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}

	return transaction.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{
				{Name: "title_number"},
				{Name: "chapter_name"},
				{Name: "date"},
			},
			DoUpdates: clause.AssignmentColumns([]string{"word_count"}),
		}).
		Create(record).Error
}

func (cr *chapterWordCountRepo) GetAll(ctx context.Context, tx *gorm.DB) ([]*types.ChapterWordCount, error) {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}

	var results []*types.ChapterWordCount
	if err := transaction.WithContext(ctx).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (cr *chapterWordCountRepo) GetByTitleNumbers(ctx context.Context, tx *gorm.DB, titleNumbers []int) ([]*types.ChapterWordCount, error) {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}

	var results []*types.ChapterWordCount
	if len(titleNumbers) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("title_number IN ?", titleNumbers).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (cr *chapterWordCountRepo) DistinctDates(ctx context.Context, tx *gorm.DB) ([]string, error) {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}

	var dates []string
	if err := transaction.WithContext(ctx).
		Model(&types.ChapterWordCount{}).
		Distinct("date").
		Order("date DESC").
		Pluck("date", &dates).Error; err != nil {
		return nil, err
	}
	return dates, nil
}
