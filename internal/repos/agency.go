package repos

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/yungbote/ecfr-analyzer-backend/internal/logger"
	"github.com/yungbote/ecfr-analyzer-backend/internal/types"
)

type AgencyRepo interface {
	// ReplaceAll drops every stored agency and reference, then inserts the
	// given flattened set in one transaction. Row IDs are assigned here;
	// references are inserted with their owning agency.
	ReplaceAll(ctx context.Context, tx *gorm.DB, agencies []*types.Agency) error
	GetAll(ctx context.Context, tx *gorm.DB) ([]*types.Agency, error)
	GetByID(ctx context.Context, tx *gorm.DB, agencyID uint) (*types.Agency, error)
}

type agencyRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewAgencyRepo(db *gorm.DB, baseLog *logger.Logger) AgencyRepo {
	repoLog := baseLog.With("repo", "AgencyRepo")
	return &agencyRepo{db: db, log: repoLog}
}

func (ar *agencyRepo) ReplaceAll(ctx context.Context, tx *gorm.DB, agencies []*types.Agency) error {
	transaction := tx
	if transaction == nil {
		transaction = ar.db
	}

	return transaction.WithContext(ctx).Transaction(func(t *gorm.DB) error {
		if err := t.Where("1 = 1").Delete(&types.CfrReference{}).Error; err != nil {
			return err
		}
		if err := t.Where("1 = 1").Delete(&types.Agency{}).Error; err != nil {
			return err
		}
		for _, agency := range agencies {
			if err := t.Create(agency).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (ar *agencyRepo) GetAll(ctx context.Context, tx *gorm.DB) ([]*types.Agency, error) {
	transaction := tx
	if transaction == nil {
		transaction = ar.db
	}

	var results []*types.Agency
	if err := transaction.WithContext(ctx).
		Preload("CfrReferences").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (ar *agencyRepo) GetByID(ctx context.Context, tx *gorm.DB, agencyID uint) (*types.Agency, error) {
	transaction := tx
	if transaction == nil {
		transaction = ar.db
	}

	var result types.Agency
	err := transaction.WithContext(ctx).
		Preload("CfrReferences").
		Where("id = ?", agencyID).
		First(&result).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &result, nil
}
