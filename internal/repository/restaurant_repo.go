package repository

import (
	"context"

	"github.com/MalditoKM/Asistent-Restaurant/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RestaurantRepository owns the tenant directory rows. The Tx variants take
// the transaction handle explicitly so the directory service can couple the
// first-restaurant check, the restaurant insert and the admin insert in one
// atomic unit.
type RestaurantRepository interface {
	ListAllWithUsers(ctx context.Context) ([]model.Restaurant, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.Restaurant, error)
	CountTx(tx *gorm.DB) (int64, error)
	CreateTx(tx *gorm.DB, r *model.Restaurant) error
	UpdateTx(tx *gorm.DB, r *model.Restaurant) error
	Delete(ctx context.Context, id uuid.UUID) error
	DB() *gorm.DB // exposes the DB for transaction creation in service layer
}

type restaurantRepo struct{ db *gorm.DB }

func NewRestaurantRepository(db *gorm.DB) RestaurantRepository { return &restaurantRepo{db: db} }

func (r *restaurantRepo) DB() *gorm.DB { return r.db }

func (r *restaurantRepo) ListAllWithUsers(ctx context.Context) ([]model.Restaurant, error) {
	var list []model.Restaurant
	err := r.db.WithContext(ctx).Preload("Users").Order("name asc").Find(&list).Error
	return list, err
}

func (r *restaurantRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Restaurant, error) {
	var rest model.Restaurant
	err := r.db.WithContext(ctx).Preload("Users").First(&rest, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &rest, nil
}

func (r *restaurantRepo) CountTx(tx *gorm.DB) (int64, error) {
	var n int64
	err := tx.Model(&model.Restaurant{}).Count(&n).Error
	return n, err
}

func (r *restaurantRepo) CreateTx(tx *gorm.DB, rest *model.Restaurant) error {
	return tx.Create(rest).Error
}

func (r *restaurantRepo) UpdateTx(tx *gorm.DB, rest *model.Restaurant) error {
	return tx.Save(rest).Error
}

// Delete removes the restaurant row; users, catalog rows, purchases and
// sales go with it through the ON DELETE CASCADE foreign keys.
func (r *restaurantRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Restaurant{}, "id = ?", id).Error
}
