package tests

import (
	"testing"

	"github.com/MalditoKM/Asistent-Restaurant/internal/apierror"
	"github.com/MalditoKM/Asistent-Restaurant/internal/authz"
	"github.com/MalditoKM/Asistent-Restaurant/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveScope_NonSuperadminCoerced(t *testing.T) {
	own := uuid.New()
	other := uuid.New()

	for _, role := range []model.Role{model.RoleAdmin, model.RoleSeller, model.RoleWaiter} {
		actor := authz.Actor{ID: uuid.New(), Role: role, RestaurantID: own}

		// Whatever they ask for, they get their own restaurant.
		scope := authz.ResolveScope(actor, authz.RequestedScope{AllTenants: true})
		assert.False(t, scope.All(), "role %s must not span tenants", role)
		id, ok := scope.RestaurantID()
		require.True(t, ok)
		assert.Equal(t, own, id)

		scope = authz.ResolveScope(actor, authz.RequestedScope{RestaurantID: &other})
		id, _ = scope.RestaurantID()
		assert.Equal(t, own, id)
	}
}

func TestResolveScope_Superadmin(t *testing.T) {
	own := uuid.New()
	other := uuid.New()
	actor := authz.Actor{ID: uuid.New(), Role: model.RoleSuperadmin, RestaurantID: own}

	scope := authz.ResolveScope(actor, authz.RequestedScope{AllTenants: true})
	assert.True(t, scope.All())
	_, ok := scope.RestaurantID()
	assert.False(t, ok)

	scope = authz.ResolveScope(actor, authz.RequestedScope{RestaurantID: &other})
	id, ok := scope.RestaurantID()
	require.True(t, ok)
	assert.Equal(t, other, id)

	// No selection defaults to the superadmin's home restaurant.
	scope = authz.ResolveScope(actor, authz.RequestedScope{})
	id, _ = scope.RestaurantID()
	assert.Equal(t, own, id)
}

func TestScope_Contains(t *testing.T) {
	restID := uuid.New()
	scope := authz.ScopeFor(restID)
	assert.True(t, scope.Contains(restID))
	assert.False(t, scope.Contains(uuid.New()))

	super := authz.Actor{ID: uuid.New(), Role: model.RoleSuperadmin, RestaurantID: restID}
	all := authz.ResolveScope(super, authz.RequestedScope{AllTenants: true})
	assert.True(t, all.Contains(uuid.New()))
}

func TestCanDeleteUser_Policy(t *testing.T) {
	restA := uuid.New()
	restB := uuid.New()
	superA := authz.Actor{ID: uuid.New(), Role: model.RoleSuperadmin, RestaurantID: restA}
	adminA := authz.Actor{ID: uuid.New(), Role: model.RoleAdmin, RestaurantID: restA}
	sellerA := authz.Actor{ID: uuid.New(), Role: model.RoleSeller, RestaurantID: restA}

	waiterA := &model.User{ID: uuid.New(), Role: model.RoleWaiter, RestaurantID: restA}
	waiterB := &model.User{ID: uuid.New(), Role: model.RoleWaiter, RestaurantID: restB}
	adminB := &model.User{ID: uuid.New(), Role: model.RoleAdmin, RestaurantID: restB}
	lastSuper := &model.User{ID: uuid.New(), Role: model.RoleSuperadmin, RestaurantID: restB}

	plenty := authz.DeleteUserFacts{SuperadminCount: 2, RestaurantUserCount: 3}

	cases := []struct {
		name   string
		actor  authz.Actor
		target *model.User
		facts  authz.DeleteUserFacts
		kind   apierror.Kind
		ok     bool
	}{
		{"superadmin deletes waiter anywhere", superA, waiterB, plenty, 0, true},
		{"superadmin deletes admin anywhere", superA, adminB, plenty, 0, true},
		{"last superadmin protected", superA, lastSuper,
			authz.DeleteUserFacts{SuperadminCount: 1, RestaurantUserCount: 3}, apierror.KindConflict, false},
		{"last user of restaurant protected", superA, adminB,
			authz.DeleteUserFacts{SuperadminCount: 2, RestaurantUserCount: 1}, apierror.KindConflict, false},
		{"admin deletes own waiter", adminA, waiterA, plenty, 0, true},
		{"admin blocked outside tenant", adminA, waiterB, plenty, apierror.KindPermission, false},
		{"admin blocked on admins", adminA, adminB, plenty, apierror.KindPermission, false},
		{"admin blocked on last user", adminA, waiterA,
			authz.DeleteUserFacts{SuperadminCount: 2, RestaurantUserCount: 1}, apierror.KindConflict, false},
		{"seller deletes nobody", sellerA, waiterA, plenty, apierror.KindPermission, false},
		{"self delete denied", superA, &model.User{ID: superA.ID, Role: model.RoleSuperadmin, RestaurantID: restA},
			plenty, apierror.KindPermission, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := authz.CanDeleteUser(tc.actor, tc.target, tc.facts)
			if tc.ok {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, apierror.IsKind(err, tc.kind))
		})
	}
}

func TestCanUpdateUser_Policy(t *testing.T) {
	restA := uuid.New()
	restB := uuid.New()
	superA := authz.Actor{ID: uuid.New(), Role: model.RoleSuperadmin, RestaurantID: restA}
	adminA := authz.Actor{ID: uuid.New(), Role: model.RoleAdmin, RestaurantID: restA}
	sellerA := authz.Actor{ID: uuid.New(), Role: model.RoleSeller, RestaurantID: restA}

	waiterA := &model.User{ID: uuid.New(), Role: model.RoleWaiter, RestaurantID: restA}
	superUserA := &model.User{ID: uuid.New(), Role: model.RoleSuperadmin, RestaurantID: restA}
	adminSelf := &model.User{ID: adminA.ID, Role: model.RoleAdmin, RestaurantID: restA}
	waiterB := &model.User{ID: uuid.New(), Role: model.RoleWaiter, RestaurantID: restB}

	roleOf := func(r model.Role) *model.Role { return &r }
	two := authz.UpdateUserFacts{SuperadminCount: 2}
	one := authz.UpdateUserFacts{SuperadminCount: 1}

	cases := []struct {
		name    string
		actor   authz.Actor
		target  *model.User
		newRole *model.Role
		facts   authz.UpdateUserFacts
		kind    apierror.Kind
		ok      bool
	}{
		{"superadmin edits anyone", superA, waiterB, nil, two, 0, true},
		{"superadmin demotes one of two superadmins", superA, superUserA, roleOf(model.RoleAdmin), two, 0, true},
		{"sole superadmin demotion blocked", superA, superUserA, roleOf(model.RoleWaiter), one, apierror.KindConflict, false},
		{"sole superadmin keeping its role is fine", superA, superUserA, roleOf(model.RoleSuperadmin), one, 0, true},
		{"admin edits own waiter", adminA, waiterA, nil, two, 0, true},
		{"admin edits own account", adminA, adminSelf, nil, two, 0, true},
		{"admin blocked on superadmin account", adminA, superUserA, nil, two, apierror.KindPermission, false},
		{"admin blocked outside tenant", adminA, waiterB, nil, two, apierror.KindPermission, false},
		{"admin cannot hand out admin", adminA, waiterA, roleOf(model.RoleAdmin), two, apierror.KindPermission, false},
		{"admin cannot promote self to superadmin", adminA, adminSelf, roleOf(model.RoleSuperadmin), two, apierror.KindPermission, false},
		{"seller edits nobody", sellerA, waiterA, nil, two, apierror.KindPermission, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := authz.CanUpdateUser(tc.actor, tc.target, tc.newRole, tc.facts)
			if tc.ok {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, apierror.IsKind(err, tc.kind))
		})
	}
}

func TestCanCreateUser_Policy(t *testing.T) {
	restA := uuid.New()
	adminA := authz.Actor{ID: uuid.New(), Role: model.RoleAdmin, RestaurantID: restA}

	assert.NoError(t, authz.CanCreateUser(adminA, model.RoleSeller, restA))
	assert.NoError(t, authz.CanCreateUser(adminA, model.RoleWaiter, restA))
	assert.Error(t, authz.CanCreateUser(adminA, model.RoleAdmin, restA))
	assert.Error(t, authz.CanCreateUser(adminA, model.RoleSuperadmin, restA))
	assert.Error(t, authz.CanCreateUser(adminA, model.RoleWaiter, uuid.New()))

	waiter := authz.Actor{ID: uuid.New(), Role: model.RoleWaiter, RestaurantID: restA}
	assert.Error(t, authz.CanCreateUser(waiter, model.RoleWaiter, restA))
}
