package repository

import (
	"context"

	"github.com/MalditoKM/Asistent-Restaurant/internal/authz"
	"github.com/MalditoKM/Asistent-Restaurant/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PurchaseRepository defines CRUD operations for inventory purchases.
type PurchaseRepository interface {
	Create(ctx context.Context, p *model.Purchase) error
	List(ctx context.Context, scope authz.Scope) ([]model.Purchase, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.Purchase, error)
	Update(ctx context.Context, p *model.Purchase) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type purchaseRepo struct{ db *gorm.DB }

func NewPurchaseRepository(db *gorm.DB) PurchaseRepository { return &purchaseRepo{db: db} }

func (r *purchaseRepo) Create(ctx context.Context, p *model.Purchase) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *purchaseRepo) List(ctx context.Context, scope authz.Scope) ([]model.Purchase, error) {
	var list []model.Purchase
	err := scope.Apply(r.db.WithContext(ctx)).Order("purchase_date desc").Find(&list).Error
	return list, err
}

func (r *purchaseRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Purchase, error) {
	var p model.Purchase
	err := r.db.WithContext(ctx).First(&p, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *purchaseRepo) Update(ctx context.Context, p *model.Purchase) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *purchaseRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Purchase{}, "id = ?", id).Error
}
