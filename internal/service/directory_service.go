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

// bootstrapLockKey serializes the "is this the first restaurant?" decision
// across concurrent registrations via a pg advisory transaction lock.
const bootstrapLockKey = 815001

// DirectoryService owns the tenant directory: restaurants together with
// their user accounts.
type DirectoryService interface {
	ListAll(ctx context.Context, actor authz.Actor) ([]dto.RestaurantResponse, error)
	GetByID(ctx context.Context, actor authz.Actor, id uuid.UUID) (*dto.RestaurantResponse, error)
	Register(ctx context.Context, req dto.RegisterRequest) (*dto.RegisterResponse, error)
	Update(ctx context.Context, actor authz.Actor, id uuid.UUID, req dto.UpdateRestaurantRequest) (*dto.RestaurantResponse, error)
	Delete(ctx context.Context, actor authz.Actor, id uuid.UUID) error
}

type directoryService struct {
	restaurants repository.RestaurantRepository
	users       repository.UserRepository
}

func NewDirectoryService(restaurants repository.RestaurantRepository, users repository.UserRepository) DirectoryService {
	return &directoryService{restaurants: restaurants, users: users}
}

// runTx executes fn inside a GORM transaction when db is available,
// or calls fn(nil) directly when db is nil (unit test mode).
func runTx(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	if db == nil {
		return fn(nil)
	}
	return db.WithContext(ctx).Transaction(fn)
}

func (s *directoryService) ListAll(ctx context.Context, actor authz.Actor) ([]dto.RestaurantResponse, error) {
	if err := authz.CanListAllRestaurants(actor); err != nil {
		return nil, err
	}
	restaurants, err := s.restaurants.ListAllWithUsers(ctx)
	if err != nil {
		return nil, apierror.Transaction(err)
	}
	out := make([]dto.RestaurantResponse, 0, len(restaurants))
	for i := range restaurants {
		out = append(out, restaurantToResponse(&restaurants[i]))
	}
	return out, nil
}

func (s *directoryService) GetByID(ctx context.Context, actor authz.Actor, id uuid.UUID) (*dto.RestaurantResponse, error) {
	// Non-superadmins may only look at their own tenant.
	if actor.Role != model.RoleSuperadmin && actor.RestaurantID != id {
		return nil, apierror.PermissionDenied("not allowed to view this restaurant")
	}
	rest, err := s.restaurants.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.NotFound("restaurant not found")
		}
		return nil, apierror.Transaction(err)
	}
	resp := restaurantToResponse(rest)
	return &resp, nil
}

// Register creates a restaurant and its admin user atomically. The very
// first restaurant registered in an empty system bootstraps ownership: its
// admin is created as the superadmin.
func (s *directoryService) Register(ctx context.Context, req dto.RegisterRequest) (*dto.RegisterResponse, error) {
	email := strings.TrimSpace(strings.ToLower(req.Admin.Email))

	// Pre-flight global uniqueness check. The unique index on users.email is
	// the backstop against a concurrent registration with the same address.
	if _, err := s.users.FindByEmail(ctx, email); err == nil {
		return nil, apierror.Conflict("a user with this email already exists")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apierror.Transaction(err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Admin.Password), bcryptCost)
	if err != nil {
		return nil, err
	}

	rest := model.Restaurant{
		Name:    req.Restaurant.Name,
		Address: req.Restaurant.Address,
		Phone:   req.Restaurant.Phone,
	}
	admin := model.User{
		Name:         req.Admin.Name,
		Email:        email,
		PasswordHash: string(hash),
	}

	txErr := runTx(ctx, s.restaurants.DB(), func(tx *gorm.DB) error {
		if tx != nil {
			// Serialize the empty-system check against concurrent
			// registrations; released automatically at commit/rollback.
			if err := tx.Exec("SELECT pg_advisory_xact_lock(?)", bootstrapLockKey).Error; err != nil {
				return err
			}
		}

		count, err := s.restaurants.CountTx(tx)
		if err != nil {
			return err
		}
		if count == 0 {
			admin.Role = model.RoleSuperadmin
		} else {
			admin.Role = model.RoleAdmin
		}

		if err := s.restaurants.CreateTx(tx, &rest); err != nil {
			return err
		}
		admin.RestaurantID = rest.ID
		return s.users.CreateTx(tx, &admin)
	})
	if txErr != nil {
		return nil, txError(txErr)
	}

	return &dto.RegisterResponse{
		RestaurantID: rest.ID.String(),
		Admin:        userToResponse(&admin),
	}, nil
}

// Update applies restaurant fields and/or one user's account fields in a
// single transaction. An email change is checked against every OTHER user in
// the system; the password is replaced only when a new one is supplied.
func (s *directoryService) Update(ctx context.Context, actor authz.Actor, id uuid.UUID, req dto.UpdateRestaurantRequest) (*dto.RestaurantResponse, error) {
	if err := authz.CanManageRestaurant(actor, id); err != nil {
		return nil, err
	}

	rest, err := s.restaurants.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.NotFound("restaurant not found")
		}
		return nil, apierror.Transaction(err)
	}

	var target *model.User
	if req.Admin != nil {
		userID, err := uuid.Parse(req.Admin.UserID)
		if err != nil {
			return nil, apierror.Validation("invalid user id")
		}
		target, err = s.users.FindByID(ctx, userID)
		if err != nil {
			return nil, apierror.NotFound("user not found")
		}
		if target.RestaurantID != id {
			return nil, apierror.NotFound("user not found")
		}
		// Same rank boundary as the user endpoints: an admin must not be
		// able to rewrite a superadmin's (or fellow admin's) credentials.
		if err := authz.CanUpdateUser(actor, target, nil, authz.UpdateUserFacts{}); err != nil {
			return nil, err
		}

		if req.Admin.Email != nil {
			newEmail := strings.TrimSpace(strings.ToLower(*req.Admin.Email))
			if newEmail != strings.ToLower(target.Email) {
				if other, err := s.users.FindByEmail(ctx, newEmail); err == nil && other.ID != target.ID {
					return nil, apierror.Conflict("a user with this email already exists")
				} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
					return nil, apierror.Transaction(err)
				}
			}
			target.Email = newEmail
		}
		if req.Admin.Name != nil {
			target.Name = *req.Admin.Name
		}
		if req.Admin.Password != nil && *req.Admin.Password != "" {
			hash, err := bcrypt.GenerateFromPassword([]byte(*req.Admin.Password), bcryptCost)
			if err != nil {
				return nil, err
			}
			target.PasswordHash = string(hash)
		}
	}

	if req.Restaurant != nil {
		if req.Restaurant.Name != nil {
			rest.Name = *req.Restaurant.Name
		}
		if req.Restaurant.Address != nil {
			rest.Address = *req.Restaurant.Address
		}
		if req.Restaurant.Phone != nil {
			rest.Phone = *req.Restaurant.Phone
		}
	}

	txErr := runTx(ctx, s.restaurants.DB(), func(tx *gorm.DB) error {
		if req.Restaurant != nil {
			if err := s.restaurants.UpdateTx(tx, rest); err != nil {
				return err
			}
		}
		if target != nil {
			if err := s.users.UpdateTx(tx, target); err != nil {
				return err
			}
		}
		return nil
	})
	if txErr != nil {
		return nil, txError(txErr)
	}

	// Refresh the restaurant+users view after the write.
	refreshed, err := s.restaurants.FindByID(ctx, id)
	if err != nil {
		return nil, apierror.Transaction(err)
	}
	resp := restaurantToResponse(refreshed)
	return &resp, nil
}

// Delete removes a restaurant and, through the cascading foreign keys, every
// user, product, category, customer, purchase and sale scoped to it.
func (s *directoryService) Delete(ctx context.Context, actor authz.Actor, id uuid.UUID) error {
	if err := authz.CanManageRestaurant(actor, id); err != nil {
		return err
	}
	rest, err := s.restaurants.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apierror.NotFound("restaurant not found")
		}
		return apierror.Transaction(err)
	}

	// The cascade would take the restaurant's superadmins with it; refuse if
	// that would leave the system with none. The DB trigger backstops this.
	superadmins := int64(0)
	for i := range rest.Users {
		if rest.Users[i].Role == model.RoleSuperadmin {
			superadmins++
		}
	}
	if superadmins > 0 {
		total, err := s.users.CountSuperadminsTx(s.users.DB())
		if err != nil {
			return apierror.Transaction(err)
		}
		if total <= superadmins {
			return apierror.Conflict("deleting this restaurant would remove the last superadmin")
		}
	}

	if err := s.restaurants.Delete(ctx, id); err != nil {
		return apierror.Transaction(err)
	}
	return nil
}

// txError keeps typed business errors raised inside a transaction intact and
// wraps anything else as a storage failure. A unique-index violation means a
// concurrent write beat the pre-flight email check, so it surfaces as the
// same conflict the pre-check would have reported.
func txError(err error) error {
	var typed *apierror.Error
	if errors.As(err, &typed) {
		return typed
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return apierror.Conflict("a user with this email already exists")
	}
	return apierror.Transaction(err)
}

func restaurantToResponse(r *model.Restaurant) dto.RestaurantResponse {
	users := make([]dto.UserResponse, 0, len(r.Users))
	for i := range r.Users {
		users = append(users, userToResponse(&r.Users[i]))
	}
	return dto.RestaurantResponse{
		ID:      r.ID.String(),
		Name:    r.Name,
		Address: r.Address,
		Phone:   r.Phone,
		Users:   users,
	}
}
