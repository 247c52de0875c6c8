package repository

import (
	"context"

	"github.com/MalditoKM/Asistent-Restaurant/internal/authz"
	"github.com/MalditoKM/Asistent-Restaurant/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SaleRepository persists sales with their item snapshots. Items are always
// preloaded in ring-up order so the snapshot reads back exactly as written.
type SaleRepository interface {
	CreateTx(tx *gorm.DB, s *model.Sale) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Sale, error)
	List(ctx context.Context, scope authz.Scope) ([]model.Sale, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) error
	Delete(ctx context.Context, id uuid.UUID) error
	// BulkDelete removes the scoped sales whose ids are listed and reports
	// how many rows went away. An empty id list deletes nothing.
	BulkDelete(ctx context.Context, scope authz.Scope, ids []uuid.UUID) (int64, error)
	DB() *gorm.DB
}

type saleRepo struct{ db *gorm.DB }

func NewSaleRepository(db *gorm.DB) SaleRepository { return &saleRepo{db: db} }

func (r *saleRepo) DB() *gorm.DB { return r.db }

func (r *saleRepo) CreateTx(tx *gorm.DB, s *model.Sale) error {
	return tx.Create(s).Error
}

func (r *saleRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Sale, error) {
	var s model.Sale
	err := r.db.WithContext(ctx).
		Preload("Items", func(q *gorm.DB) *gorm.DB { return q.Order("position asc") }).
		First(&s, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *saleRepo) List(ctx context.Context, scope authz.Scope) ([]model.Sale, error) {
	var sales []model.Sale
	err := scope.Apply(r.db.WithContext(ctx)).
		Preload("Items", func(q *gorm.DB) *gorm.DB { return q.Order("position asc") }).
		Order("sale_date desc, created_at desc").
		Find(&sales).Error
	return sales, err
}

func (r *saleRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	return r.db.WithContext(ctx).Model(&model.Sale{}).Where("id = ?", id).Update("status", status).Error
}

func (r *saleRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Sale{}, "id = ?", id).Error
}

func (r *saleRepo) BulkDelete(ctx context.Context, scope authz.Scope, ids []uuid.UUID) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	res := scope.Apply(r.db.WithContext(ctx)).Where("id IN ?", ids).Delete(&model.Sale{})
	return res.RowsAffected, res.Error
}
