// Package authz is the single source of truth for tenant scoping and
// role-based permissions. Everything here is a pure function over domain
// values; callers pass in whatever counts the rules need so the decisions
// stay deterministic and trivially testable.
package authz

import (
	"github.com/MalditoKM/Asistent-Restaurant/internal/apierror"
	"github.com/MalditoKM/Asistent-Restaurant/internal/model"

	"github.com/google/uuid"
)

// Actor is the authenticated identity a request runs as, as resolved by the
// session layer (JWT claims).
type Actor struct {
	ID           uuid.UUID
	Role         model.Role
	RestaurantID uuid.UUID
}

// RequestedScope is the raw tenant selection supplied by the caller:
// AllTenants true, a specific restaurant id, or neither (own tenant).
type RequestedScope struct {
	AllTenants   bool
	RestaurantID *uuid.UUID
}

// ResolveScope turns the caller's requested scope into an enforced one.
// Superadmins may span all tenants or narrow to any single restaurant; every
// other role is coerced to its own restaurant no matter what it asked for.
func ResolveScope(actor Actor, req RequestedScope) Scope {
	if actor.Role != model.RoleSuperadmin {
		return ScopeFor(actor.RestaurantID)
	}
	if req.RestaurantID != nil {
		return ScopeFor(*req.RestaurantID)
	}
	if req.AllTenants {
		return Scope{all: true}
	}
	return ScopeFor(actor.RestaurantID)
}

// CanManageRestaurant gates restaurant directory mutations (update/delete)
// and the list-all view. Superadmins reach any restaurant; admins only their
// own; sellers and waiters none.
func CanManageRestaurant(actor Actor, restaurantID uuid.UUID) error {
	switch actor.Role {
	case model.RoleSuperadmin:
		return nil
	case model.RoleAdmin:
		if actor.RestaurantID == restaurantID {
			return nil
		}
	}
	return apierror.PermissionDenied("not allowed to manage this restaurant")
}

// CanListAllRestaurants gates the cross-tenant directory view.
func CanListAllRestaurants(actor Actor) error {
	if actor.Role != model.RoleSuperadmin {
		return apierror.PermissionDenied("only a superadmin can list all restaurants")
	}
	return nil
}

// CanCreateUser decides whether actor may add a user with the given role to
// the given restaurant.
func CanCreateUser(actor Actor, role model.Role, restaurantID uuid.UUID) error {
	switch actor.Role {
	case model.RoleSuperadmin:
		return nil
	case model.RoleAdmin:
		if actor.RestaurantID != restaurantID {
			return apierror.PermissionDenied("cannot create users outside your restaurant")
		}
		if role == model.RoleSuperadmin || role == model.RoleAdmin {
			return apierror.PermissionDenied("admins may only create sellers and waiters")
		}
		return nil
	}
	return apierror.PermissionDenied("not allowed to create users")
}

// UpdateUserFacts are the counts the account-edit rules depend on, read in
// the same transaction as the write.
type UpdateUserFacts struct {
	SuperadminCount int64 // system-wide superadmin rows
}

// CanUpdateUser decides whether actor may edit the target account and, when
// newRole is set, move it to that role:
//
//   - a superadmin edits anyone, but a superadmin cannot be demoted while it
//     is the last one system-wide;
//   - an admin edits their own account and the sellers/waiters of their
//     restaurant, and may never hand out admin or superadmin;
//   - sellers and waiters edit nobody through this path.
func CanUpdateUser(actor Actor, target *model.User, newRole *model.Role, facts UpdateUserFacts) error {
	if target == nil {
		return apierror.NotFound("user not found")
	}

	switch actor.Role {
	case model.RoleSuperadmin:
	case model.RoleAdmin:
		if actor.RestaurantID != target.RestaurantID {
			return apierror.PermissionDenied("cannot edit users outside your restaurant")
		}
		if actor.ID != target.ID && (target.Role == model.RoleSuperadmin || target.Role == model.RoleAdmin) {
			return apierror.PermissionDenied("admins may only edit sellers and waiters")
		}
	default:
		return apierror.PermissionDenied("not allowed to edit users")
	}

	if newRole != nil && *newRole != target.Role {
		if actor.Role != model.RoleSuperadmin && (*newRole == model.RoleSuperadmin || *newRole == model.RoleAdmin) {
			return apierror.PermissionDenied("cannot assign this role")
		}
		if target.Role == model.RoleSuperadmin && facts.SuperadminCount <= 1 {
			return apierror.Conflict("cannot demote the last superadmin")
		}
	}
	return nil
}

// DeleteUserFacts are the row counts the deletion rules depend on. The
// directory service gathers them inside the same transaction as the delete
// so concurrent deletions cannot slip past the guards.
type DeleteUserFacts struct {
	SuperadminCount     int64 // system-wide superadmin rows
	RestaurantUserCount int64 // users in the target's restaurant
}

// CanDeleteUser is the full user-deletion rule set:
//
//   - nobody deletes themselves;
//   - a superadmin deletes anyone, except a superadmin when only one is left
//     system-wide, and except a restaurant's last remaining user (delete the
//     restaurant instead of stripping it to zero users);
//   - an admin deletes only sellers/waiters of their own restaurant, with the
//     same last-remaining-user restriction;
//   - sellers and waiters delete nobody.
func CanDeleteUser(actor Actor, target *model.User, facts DeleteUserFacts) error {
	if target == nil {
		return apierror.NotFound("user not found")
	}
	if actor.ID == target.ID {
		return apierror.PermissionDenied("you cannot delete your own account")
	}

	switch actor.Role {
	case model.RoleSuperadmin:
		if target.Role == model.RoleSuperadmin && facts.SuperadminCount <= 1 {
			return apierror.Conflict("cannot delete the last superadmin")
		}
		if facts.RestaurantUserCount <= 1 {
			return apierror.Conflict("cannot delete the last user of a restaurant; delete the restaurant instead")
		}
		return nil

	case model.RoleAdmin:
		if actor.RestaurantID != target.RestaurantID {
			return apierror.PermissionDenied("cannot delete users outside your restaurant")
		}
		if target.Role == model.RoleSuperadmin || target.Role == model.RoleAdmin {
			return apierror.PermissionDenied("admins may only delete sellers and waiters")
		}
		if facts.RestaurantUserCount <= 1 {
			return apierror.Conflict("cannot delete the last user of a restaurant; delete the restaurant instead")
		}
		return nil
	}

	return apierror.PermissionDenied("not allowed to delete users")
}
