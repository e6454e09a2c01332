package repos

import (
	"context"
	"errors"

	"gorm.io/gorm"

	pkgerrors "github.com/cardspark/cardstudio-backend/internal/pkg/errors"
	"github.com/cardspark/cardstudio-backend/internal/pkg/logger"
	"github.com/cardspark/cardstudio-backend/internal/types"
)

type ContentRepo interface {
	Create(ctx context.Context, tx *gorm.DB, content *types.GeneratedContent) error
	Update(ctx context.Context, tx *gorm.DB, content *types.GeneratedContent) error
	GetByID(ctx context.Context, tx *gorm.DB, id string) (*types.GeneratedContent, error)
	List(ctx context.Context, tx *gorm.DB) ([]*types.GeneratedContent, error)
	Delete(ctx context.Context, tx *gorm.DB, id string) error
}

type contentRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewContentRepo(db *gorm.DB, baseLog *logger.Logger) ContentRepo {
	return &contentRepo{db: db, log: baseLog.With("repo", "ContentRepo")}
}

func (r *contentRepo) conn(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

func (r *contentRepo) Create(ctx context.Context, tx *gorm.DB, content *types.GeneratedContent) error {
	return r.conn(tx).WithContext(ctx).Create(content).Error
}

func (r *contentRepo) Update(ctx context.Context, tx *gorm.DB, content *types.GeneratedContent) error {
	return r.conn(tx).WithContext(ctx).Save(content).Error
}

func (r *contentRepo) GetByID(ctx context.Context, tx *gorm.DB, id string) (*types.GeneratedContent, error) {
	var content types.GeneratedContent
	err := r.conn(tx).WithContext(ctx).First(&content, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &content, nil
}

func (r *contentRepo) List(ctx context.Context, tx *gorm.DB) ([]*types.GeneratedContent, error) {
	var out []*types.GeneratedContent
	if err := r.conn(tx).WithContext(ctx).Order("created_at DESC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *contentRepo) Delete(ctx context.Context, tx *gorm.DB, id string) error {
	res := r.conn(tx).WithContext(ctx).Delete(&types.GeneratedContent{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return pkgerrors.ErrNotFound
	}
	return nil
}
