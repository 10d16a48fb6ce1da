package repos

import (
	"context"

	"gorm.io/gorm"

	"github.com/yungbote/ecfr-analyzer-backend/internal/logger"
	"github.com/yungbote/ecfr-analyzer-backend/internal/types"
)

type TitleRepo interface {
	// ReplaceAll drops every stored title and inserts the given set in one
	// transaction, same wholesale semantics as agencies.
	ReplaceAll(ctx context.Context, tx *gorm.DB, titles []*types.Title) error
	GetAll(ctx context.Context, tx *gorm.DB) ([]*types.Title, error)
}

type titleRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewTitleRepo(db *gorm.DB, baseLog *logger.Logger) TitleRepo {
	repoLog := baseLog.With("repo", "TitleRepo")
	return &titleRepo{db: db, log: repoLog}
}

func (tr *titleRepo) ReplaceAll(ctx context.Context, tx *gorm.DB, titles []*types.Title) error {
	transaction := tx
	if transaction == nil {
		transaction = tr.db
	}

	return transaction.WithContext(ctx).Transaction(func(t *gorm.DB) error {
		if err := t.Where("1 = 1").Delete(&types.Title{}).Error; err != nil {
			return err
		}
		if len(titles) == 0 {
			return nil
		}
		return t.Create(&titles).Error
	})
}

func (tr *titleRepo) GetAll(ctx context.Context, tx *gorm.DB) ([]*types.Title, error) {
	transaction := tx
	if transaction == nil {
		transaction = tr.db
	}

	var results []*types.Title
	if err := transaction.WithContext(ctx).
		Order("number ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
