package repository

import (
	"context"
	"strings"

	"github.com/MalditoKM/Asistent-Restaurant/internal/authz"
	"github.com/MalditoKM/Asistent-Restaurant/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserRepository interface {
	Create(ctx context.Context, u *model.User) error
	CreateTx(tx *gorm.DB, u *model.User) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.User, error)
	// FindByEmail matches case-insensitively across ALL tenants; email is
	// the system-wide login identifier.
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	List(ctx context.Context, scope authz.Scope) ([]model.User, error)
	UpdateTx(tx *gorm.DB, u *model.User) error
	DeleteTx(tx *gorm.DB, id uuid.UUID) error
	CountSuperadminsTx(tx *gorm.DB) (int64, error)
	CountByRestaurantTx(tx *gorm.DB, restaurantID uuid.UUID) (int64, error)
	DB() *gorm.DB
}

type userRepo struct{ db *gorm.DB }

func NewUserRepository(db *gorm.DB) UserRepository { return &userRepo{db: db} }

func (r *userRepo) DB() *gorm.DB { return r.db }

func (r *userRepo) Create(ctx context.Context, u *model.User) error {
	return r.db.WithContext(ctx).Create(u).Error
}

func (r *userRepo) CreateTx(tx *gorm.DB, u *model.User) error {
	return tx.Create(u).Error
}

func (r *userRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	var u model.User
	err := r.db.WithContext(ctx).First(&u, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *userRepo) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	var u model.User
	err := r.db.WithContext(ctx).
		Where("LOWER(email) = ?", strings.ToLower(email)).
		First(&u).Error
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *userRepo) List(ctx context.Context, scope authz.Scope) ([]model.User, error) {
	var users []model.User
	err := scope.Apply(r.db.WithContext(ctx)).Order("name asc").Find(&users).Error
	return users, err
}

func (r *userRepo) UpdateTx(tx *gorm.DB, u *model.User) error {
	return tx.Save(u).Error
}

func (r *userRepo) DeleteTx(tx *gorm.DB, id uuid.UUID) error {
	return tx.Delete(&model.User{}, "id = ?", id).Error
}

func (r *userRepo) CountSuperadminsTx(tx *gorm.DB) (int64, error) {
	var n int64
	err := tx.Model(&model.User{}).Where("role = ?", model.RoleSuperadmin).Count(&n).Error
	return n, err
}

func (r *userRepo) CountByRestaurantTx(tx *gorm.DB, restaurantID uuid.UUID) (int64, error) {
	var n int64
	err := tx.Model(&model.User{}).Where("restaurant_id = ?", restaurantID).Count(&n).Error
	return n, err
}
