package repository

import (
	"context"

	"github.com/MalditoKM/Asistent-Restaurant/internal/authz"
	"github.com/MalditoKM/Asistent-Restaurant/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ProductRepository defines CRUD operations for Product. List takes the
// enforced tenant scope; single-row lookups are unscoped and the service
// checks ownership against the scope afterwards.
type ProductRepository interface {
	Create(ctx context.Context, p *model.Product) error
	List(ctx context.Context, scope authz.Scope) ([]model.Product, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.Product, error)
	Update(ctx context.Context, p *model.Product) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type productRepo struct{ db *gorm.DB }

func NewProductRepository(db *gorm.DB) ProductRepository { return &productRepo{db: db} }

func (r *productRepo) Create(ctx context.Context, p *model.Product) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *productRepo) List(ctx context.Context, scope authz.Scope) ([]model.Product, error) {
	var list []model.Product
	err := scope.Apply(r.db.WithContext(ctx)).Order("name asc").Find(&list).Error
	return list, err
}

func (r *productRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Product, error) {
	var p model.Product
	err := r.db.WithContext(ctx).First(&p, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *productRepo) Update(ctx context.Context, p *model.Product) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *productRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Product{}, "id = ?", id).Error
}
