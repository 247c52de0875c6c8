package tests

import (
	"context"
	"testing"

	"github.com/MalditoKM/Asistent-Restaurant/internal/apierror"
	"github.com/MalditoKM/Asistent-Restaurant/internal/dto"
	"github.com/MalditoKM/Asistent-Restaurant/internal/model"
	"github.com/MalditoKM/Asistent-Restaurant/internal/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestCreateUser_AdminCreatesWaiterInOwnRestaurant(t *testing.T) {
	users := newStubUserRepo()
	svc := service.NewUserService(users)
	restID := uuid.New()
	admin := seedUser(users, model.RoleAdmin, restID, "admin@rest.test")

	resp, err := svc.Create(context.Background(), actorFor(admin), dto.CreateUserRequest{
		Name: "New Waiter", Email: "waiter@rest.test", Password: "longenough", Role: "waiter",
	})
	require.NoError(t, err)
	assert.Equal(t, restID.String(), resp.RestaurantID)
	assert.Equal(t, "waiter", resp.Role)
}

func TestCreateUser_AdminCannotCreateAdmin(t *testing.T) {
	users := newStubUserRepo()
	svc := service.NewUserService(users)
	admin := seedUser(users, model.RoleAdmin, uuid.New(), "admin@rest.test")

	_, err := svc.Create(context.Background(), actorFor(admin), dto.CreateUserRequest{
		Name: "Another Admin", Email: "admin2@rest.test", Password: "longenough", Role: "admin",
	})
	require.Error(t, err)
	assert.True(t, apierror.IsKind(err, apierror.KindPermission))
}

func TestCreateUser_AdminTargetRestaurantIgnored(t *testing.T) {
	users := newStubUserRepo()
	svc := service.NewUserService(users)
	restID := uuid.New()
	admin := seedUser(users, model.RoleAdmin, restID, "admin@rest.test")

	// An admin asking for a foreign restaurant is pinned to their own.
	other := uuid.New().String()
	resp, err := svc.Create(context.Background(), actorFor(admin), dto.CreateUserRequest{
		Name: "Seller", Email: "seller@rest.test", Password: "longenough", Role: "seller",
		RestaurantID: &other,
	})
	require.NoError(t, err)
	assert.Equal(t, restID.String(), resp.RestaurantID)
}

func TestCreateUser_SuperadminTargetsAnyRestaurant(t *testing.T) {
	users := newStubUserRepo()
	svc := service.NewUserService(users)
	super := seedUser(users, model.RoleSuperadmin, uuid.New(), "root@hq.test")

	target := uuid.New()
	targetStr := target.String()
	resp, err := svc.Create(context.Background(), actorFor(super), dto.CreateUserRequest{
		Name: "Remote Admin", Email: "admin@remote.test", Password: "longenough", Role: "admin",
		RestaurantID: &targetStr,
	})
	require.NoError(t, err)
	assert.Equal(t, target.String(), resp.RestaurantID)
}

func TestCreateUser_DuplicateEmailConflict(t *testing.T) {
	users := newStubUserRepo()
	svc := service.NewUserService(users)
	restID := uuid.New()
	admin := seedUser(users, model.RoleAdmin, restID, "admin@rest.test")
	seedUser(users, model.RoleWaiter, restID, "waiter@rest.test")

	_, err := svc.Create(context.Background(), actorFor(admin), dto.CreateUserRequest{
		Name: "Dup", Email: "WAITER@rest.test", Password: "longenough", Role: "waiter",
	})
	require.Error(t, err)
	assert.True(t, apierror.IsKind(err, apierror.KindConflict))
}

func TestCreateUser_RacedDuplicateEmailIsConflict(t *testing.T) {
	users := newStubUserRepo()
	svc := service.NewUserService(users)
	restID := uuid.New()
	admin := seedUser(users, model.RoleAdmin, restID, "admin@rest.test")

	users.createErr = gorm.ErrDuplicatedKey
	_, err := svc.Create(context.Background(), actorFor(admin), dto.CreateUserRequest{
		Name: "Racer", Email: "racer@rest.test", Password: "longenough", Role: "waiter",
	})
	require.Error(t, err)
	assert.True(t, apierror.IsKind(err, apierror.KindConflict))
}

func TestUpdateUser_OwnEmailIsNoop(t *testing.T) {
	users := newStubUserRepo()
	svc := service.NewUserService(users)
	restID := uuid.New()
	admin := seedUser(users, model.RoleAdmin, restID, "admin@rest.test")
	waiter := seedUser(users, model.RoleWaiter, restID, "waiter@rest.test")

	same := "waiter@rest.test"
	_, err := svc.Update(context.Background(), actorFor(admin), waiter.ID, dto.UpdateUserRequest{Email: &same})
	require.NoError(t, err)
}

func TestUpdateUser_AdminCannotPromoteToAdmin(t *testing.T) {
	users := newStubUserRepo()
	svc := service.NewUserService(users)
	restID := uuid.New()
	admin := seedUser(users, model.RoleAdmin, restID, "admin@rest.test")
	waiter := seedUser(users, model.RoleWaiter, restID, "waiter@rest.test")

	role := "admin"
	_, err := svc.Update(context.Background(), actorFor(admin), waiter.ID, dto.UpdateUserRequest{Role: &role})
	require.Error(t, err)
	assert.True(t, apierror.IsKind(err, apierror.KindPermission))
}

func TestUpdateUser_SoleSuperadminDemotionBlocked(t *testing.T) {
	users := newStubUserRepo()
	svc := service.NewUserService(users)
	restID := uuid.New()
	super := seedUser(users, model.RoleSuperadmin, restID, "root@hq.test")
	seedUser(users, model.RoleAdmin, restID, "admin@hq.test")

	// With a single superadmin in the system, no demotion path may succeed,
	// including demoting oneself.
	role := "waiter"
	_, err := svc.Update(context.Background(), actorFor(super), super.ID, dto.UpdateUserRequest{Role: &role})
	require.Error(t, err)
	assert.True(t, apierror.IsKind(err, apierror.KindConflict))

	stored, err := users.FindByID(context.Background(), super.ID)
	require.NoError(t, err)
	assert.Equal(t, model.RoleSuperadmin, stored.Role)
}

func TestUpdateUser_SecondSuperadminDemotable(t *testing.T) {
	users := newStubUserRepo()
	svc := service.NewUserService(users)
	restA := uuid.New()
	restB := uuid.New()
	super := seedUser(users, model.RoleSuperadmin, restA, "root@hq.test")
	otherSuper := seedUser(users, model.RoleSuperadmin, restB, "root2@hq.test")

	role := "admin"
	resp, err := svc.Update(context.Background(), actorFor(super), otherSuper.ID, dto.UpdateUserRequest{Role: &role})
	require.NoError(t, err)
	assert.Equal(t, "admin", resp.Role)

	stored, err := users.FindByID(context.Background(), otherSuper.ID)
	require.NoError(t, err)
	assert.Equal(t, model.RoleAdmin, stored.Role)
}

func TestUpdateUser_AdminCannotEditSuperadminAccount(t *testing.T) {
	users := newStubUserRepo()
	svc := service.NewUserService(users)
	restID := uuid.New()
	super := seedUser(users, model.RoleSuperadmin, restID, "root@hq.test")
	admin := seedUser(users, model.RoleAdmin, restID, "admin@hq.test")

	// Even inside their own restaurant, an admin must not be able to rewrite
	// the credentials of an account ranking at or above them.
	pw := "hijacked-password"
	_, err := svc.Update(context.Background(), actorFor(admin), super.ID, dto.UpdateUserRequest{Password: &pw})
	require.Error(t, err)
	assert.True(t, apierror.IsKind(err, apierror.KindPermission))

	stored, err := users.FindByID(context.Background(), super.ID)
	require.NoError(t, err)
	assert.Equal(t, "x", stored.PasswordHash)
}

func TestUpdateUser_AdminCannotEditFellowAdmin(t *testing.T) {
	users := newStubUserRepo()
	svc := service.NewUserService(users)
	restID := uuid.New()
	admin := seedUser(users, model.RoleAdmin, restID, "admin@hq.test")
	peer := seedUser(users, model.RoleAdmin, restID, "peer@hq.test")

	email := "stolen@hq.test"
	_, err := svc.Update(context.Background(), actorFor(admin), peer.ID, dto.UpdateUserRequest{Email: &email})
	require.Error(t, err)
	assert.True(t, apierror.IsKind(err, apierror.KindPermission))

	stored, err := users.FindByID(context.Background(), peer.ID)
	require.NoError(t, err)
	assert.Equal(t, "peer@hq.test", stored.Email)
}

func TestUpdateUser_AdminEditsOwnAccount(t *testing.T) {
	users := newStubUserRepo()
	svc := service.NewUserService(users)
	admin := seedUser(users, model.RoleAdmin, uuid.New(), "admin@hq.test")

	name := "Renamed Admin"
	resp, err := svc.Update(context.Background(), actorFor(admin), admin.ID, dto.UpdateUserRequest{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "Renamed Admin", resp.Name)
}

func TestDeleteUser_SelfDenied(t *testing.T) {
	users := newStubUserRepo()
	svc := service.NewUserService(users)
	restID := uuid.New()
	super := seedUser(users, model.RoleSuperadmin, restID, "root@hq.test")
	seedUser(users, model.RoleWaiter, restID, "waiter@hq.test")

	err := svc.Delete(context.Background(), actorFor(super), super.ID)
	require.Error(t, err)
	assert.True(t, apierror.IsKind(err, apierror.KindPermission))
}

func TestDeleteUser_SecondSuperadminDeletable(t *testing.T) {
	users := newStubUserRepo()
	svc := service.NewUserService(users)
	restA := uuid.New()
	restB := uuid.New()
	super := seedUser(users, model.RoleSuperadmin, restA, "root@hq.test")
	seedUser(users, model.RoleWaiter, restA, "waiter@hq.test")
	otherSuper := seedUser(users, model.RoleSuperadmin, restB, "root2@hq.test")
	seedUser(users, model.RoleWaiter, restB, "waiter2@hq.test")

	err := svc.Delete(context.Background(), actorFor(super), otherSuper.ID)
	require.NoError(t, err)
	_, err = users.FindByID(context.Background(), otherSuper.ID)
	assert.Error(t, err)
}

func TestDeleteUser_SoleSuperadminOutOfAdminReach(t *testing.T) {
	users := newStubUserRepo()
	svc := service.NewUserService(users)
	restID := uuid.New()
	super := seedUser(users, model.RoleSuperadmin, restID, "root@hq.test")
	admin := seedUser(users, model.RoleAdmin, restID, "admin@hq.test")

	// Self-deletion is denied and admins cannot touch superadmins, so the
	// sole superadmin is unreachable through this API.
	err := svc.Delete(context.Background(), actorFor(super), super.ID)
	require.Error(t, err)
	assert.True(t, apierror.IsKind(err, apierror.KindPermission))

	err = svc.Delete(context.Background(), actorFor(admin), super.ID)
	require.Error(t, err)
	assert.True(t, apierror.IsKind(err, apierror.KindPermission))
}

func TestDeleteUser_LastUserOfRestaurantConflict(t *testing.T) {
	users := newStubUserRepo()
	svc := service.NewUserService(users)
	restA := uuid.New()
	restB := uuid.New()
	super := seedUser(users, model.RoleSuperadmin, restA, "root@hq.test")
	seedUser(users, model.RoleWaiter, restA, "waiter@hq.test")
	soleAdmin := seedUser(users, model.RoleAdmin, restB, "admin@b.test")

	// Restaurant B has exactly one user; stripping it to zero is refused.
	err := svc.Delete(context.Background(), actorFor(super), soleAdmin.ID)
	require.Error(t, err)
	assert.True(t, apierror.IsKind(err, apierror.KindConflict))
}

func TestDeleteUser_AdminOutsideTenantDenied(t *testing.T) {
	users := newStubUserRepo()
	svc := service.NewUserService(users)
	admin := seedUser(users, model.RoleAdmin, uuid.New(), "admin@a.test")
	foreign := seedUser(users, model.RoleWaiter, uuid.New(), "waiter@b.test")
	seedUser(users, model.RoleSeller, foreign.RestaurantID, "seller@b.test")

	err := svc.Delete(context.Background(), actorFor(admin), foreign.ID)
	require.Error(t, err)
	assert.True(t, apierror.IsKind(err, apierror.KindPermission))
}

func TestDeleteUser_AdminDeletesOwnWaiter(t *testing.T) {
	users := newStubUserRepo()
	svc := service.NewUserService(users)
	restID := uuid.New()
	admin := seedUser(users, model.RoleAdmin, restID, "admin@rest.test")
	waiter := seedUser(users, model.RoleWaiter, restID, "waiter@rest.test")

	err := svc.Delete(context.Background(), actorFor(admin), waiter.ID)
	require.NoError(t, err)
	_, err = users.FindByID(context.Background(), waiter.ID)
	assert.Error(t, err)
}
