package repos

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/yungbote/ecfr-analyzer-backend/internal/logger"
	"github.com/yungbote/ecfr-analyzer-backend/internal/types"
)

type IngestionRunRepo interface {
	Create(ctx context.Context, tx *gorm.DB, run *types.IngestionRun) error
	Update(ctx context.Context, tx *gorm.DB, run *types.IngestionRun) error
	GetLatest(ctx context.Context, tx *gorm.DB) (*types.IngestionRun, error)
}

type ingestionRunRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewIngestionRunRepo(db *gorm.DB, baseLog *logger.Logger) IngestionRunRepo {
	repoLog := baseLog.With("repo", "IngestionRunRepo")
	return &ingestionRunRepo{db: db, log: repoLog}
}

func (rr *ingestionRunRepo) Create(ctx context.Context, tx *gorm.DB, run *types.IngestionRun) error {
	transaction := tx
	if transaction == nil {
		transaction = rr.db
	}
	return transaction.WithContext(ctx).Create(run).Error
}

func (rr *ingestionRunRepo) Update(ctx context.Context, tx *gorm.DB, run *types.IngestionRun) error {
	transaction := tx
	if transaction == nil {
		transaction = rr.db
	}
	return transaction.WithContext(ctx).Save(run).Error
}

func (rr *ingestionRunRepo) GetLatest(ctx context.Context, tx *gorm.DB) (*types.IngestionRun, error) {
	transaction := tx
	if transaction == nil {
		transaction = rr.db
	}

	var run types.IngestionRun
	err := transaction.WithContext(ctx).
		Order("started_at DESC").
		First(&run).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &run, nil
}
