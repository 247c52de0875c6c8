package service

import (
	"context"
	"errors"
	"strings"

	"github.com/MalditoKM/Asistent-Restaurant/internal/apierror"
	"github.com/MalditoKM/Asistent-Restaurant/internal/authz"
	"github.com/MalditoKM/Asistent-Restaurant/internal/dto"
	"github.com/MalditoKM/Asistent-Restaurant/internal/model"
	"github.com/MalditoKM/Asistent-Restaurant/internal/repository"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// UserService manages staff accounts inside the tenant boundary resolved by
// the authorization policy.
type UserService interface {
	Create(ctx context.Context, actor authz.Actor, req dto.CreateUserRequest) (*dto.UserResponse, error)
	List(ctx context.Context, actor authz.Actor, scope authz.Scope) ([]dto.UserResponse, error)
	Update(ctx context.Context, actor authz.Actor, id uuid.UUID, req dto.UpdateUserRequest) (*dto.UserResponse, error)
	Delete(ctx context.Context, actor authz.Actor, id uuid.UUID) error
}

type userService struct {
	users repository.UserRepository
}

func NewUserService(users repository.UserRepository) UserService {
	return &userService{users: users}
}

func (s *userService) Create(ctx context.Context, actor authz.Actor, req dto.CreateUserRequest) (*dto.UserResponse, error) {
	role := model.Role(req.Role)
	if !role.Valid() {
		return nil, apierror.Validation("unknown role")
	}

	// Superadmins may target any restaurant; everyone else is pinned to
	// their own.
	restaurantID := actor.RestaurantID
	if req.RestaurantID != nil && actor.Role == model.RoleSuperadmin {
		id, err := uuid.Parse(*req.RestaurantID)
		if err != nil {
			return nil, apierror.Validation("invalid restaurant id")
		}
		restaurantID = id
	}

	if err := authz.CanCreateUser(actor, role, restaurantID); err != nil {
		return nil, err
	}

	email := strings.TrimSpace(strings.ToLower(req.Email))
	if _, err := s.users.FindByEmail(ctx, email); err == nil {
		return nil, apierror.Conflict("a user with this email already exists")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apierror.Transaction(err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcryptCost)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Name:         req.Name,
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
		RestaurantID: restaurantID,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, txError(err)
	}
	resp := userToResponse(user)
	return &resp, nil
}

func (s *userService) List(ctx context.Context, actor authz.Actor, scope authz.Scope) ([]dto.UserResponse, error) {
	users, err := s.users.List(ctx, scope)
	if err != nil {
		return nil, apierror.Transaction(err)
	}
	out := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		out = append(out, userToResponse(&users[i]))
	}
	return out, nil
}

func (s *userService) Update(ctx context.Context, actor authz.Actor, id uuid.UUID, req dto.UpdateUserRequest) (*dto.UserResponse, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.NotFound("user not found")
		}
		return nil, apierror.Transaction(err)
	}

	var newRole *model.Role
	if req.Role != nil {
		role := model.Role(*req.Role)
		if !role.Valid() {
			return nil, apierror.Validation("unknown role")
		}
		newRole = &role
	}

	// Tenant/rank boundary first; the role rules run again inside the tx
	// against a fresh superadmin count.
	if err := authz.CanUpdateUser(actor, user, nil, authz.UpdateUserFacts{}); err != nil {
		return nil, err
	}

	if req.Email != nil {
		newEmail := strings.TrimSpace(strings.ToLower(*req.Email))
		// Updating to one's own current email is a no-op, not a conflict.
		if newEmail != strings.ToLower(user.Email) {
			if other, err := s.users.FindByEmail(ctx, newEmail); err == nil && other.ID != user.ID {
				return nil, apierror.Conflict("a user with this email already exists")
			} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apierror.Transaction(err)
			}
		}
		user.Email = newEmail
	}
	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.Password != nil && *req.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcryptCost)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = string(hash)
	}

	// A role change is guarded like a delete: the superadmin count is read
	// inside the same transaction so a concurrent demotion cannot drop the
	// system to zero superadmins.
	txErr := runTx(ctx, s.users.DB(), func(tx *gorm.DB) error {
		superadmins, err := s.users.CountSuperadminsTx(tx)
		if err != nil {
			return err
		}
		if err := authz.CanUpdateUser(actor, user, newRole, authz.UpdateUserFacts{
			SuperadminCount: superadmins,
		}); err != nil {
			return err
		}
		if newRole != nil {
			user.Role = *newRole
		}
		return s.users.UpdateTx(tx, user)
	})
	if txErr != nil {
		return nil, txError(txErr)
	}
	resp := userToResponse(user)
	return &resp, nil
}

// Delete enforces the full deletion policy, with the superadmin and
// restaurant-user counts read inside the same transaction as the delete so a
// concurrent deletion cannot get both past the guard.
func (s *userService) Delete(ctx context.Context, actor authz.Actor, id uuid.UUID) error {
	target, err := s.users.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apierror.NotFound("user not found")
		}
		return apierror.Transaction(err)
	}

	txErr := runTx(ctx, s.users.DB(), func(tx *gorm.DB) error {
		superadmins, err := s.users.CountSuperadminsTx(tx)
		if err != nil {
			return err
		}
		restaurantUsers, err := s.users.CountByRestaurantTx(tx, target.RestaurantID)
		if err != nil {
			return err
		}
		if err := authz.CanDeleteUser(actor, target, authz.DeleteUserFacts{
			SuperadminCount:     superadmins,
			RestaurantUserCount: restaurantUsers,
		}); err != nil {
			return err
		}
		return s.users.DeleteTx(tx, id)
	})
	if txErr != nil {
		return txError(txErr)
	}
	return nil
}
