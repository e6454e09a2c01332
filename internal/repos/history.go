package repos

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	pkgerrors "github.com/cardspark/cardstudio-backend/internal/pkg/errors"
	"github.com/cardspark/cardstudio-backend/internal/pkg/logger"
	"github.com/cardspark/cardstudio-backend/internal/types"
)

// HistoryRepo is the append-only, query-by-id index of lifecycle entries.
// Upsert inserts unseen ids and updates seen ones in place.
type HistoryRepo interface {
	Upsert(ctx context.Context, tx *gorm.DB, entry *types.HistoryEntry) error
	GetByID(ctx context.Context, tx *gorm.DB, id string) (*types.HistoryEntry, error)
	List(ctx context.Context, tx *gorm.DB) ([]*types.HistoryEntry, error)
	Delete(ctx context.Context, tx *gorm.DB, id string) error
}

type historyRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewHistoryRepo(db *gorm.DB, baseLog *logger.Logger) HistoryRepo {
	return &historyRepo{db: db, log: baseLog.With("repo", "HistoryRepo")}
}

func (r *historyRepo) conn(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

func (r *historyRepo) Upsert(ctx context.Context, tx *gorm.DB, entry *types.HistoryEntry) error {
	return r.conn(tx).WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"title", "platforms", "status", "last_modified"}),
	}).Create(entry).Error
}

func (r *historyRepo) GetByID(ctx context.Context, tx *gorm.DB, id string) (*types.HistoryEntry, error) {
	var entry types.HistoryEntry
	err := r.conn(tx).WithContext(ctx).First(&entry, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

func (r *historyRepo) List(ctx context.Context, tx *gorm.DB) ([]*types.HistoryEntry, error) {
	var out []*types.HistoryEntry
	if err := r.conn(tx).WithContext(ctx).Order("last_modified DESC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *historyRepo) Delete(ctx context.Context, tx *gorm.DB, id string) error {
	res := r.conn(tx).WithContext(ctx).Delete(&types.HistoryEntry{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return pkgerrors.ErrNotFound
	}
	return nil
}
