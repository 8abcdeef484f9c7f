package user_test

import (
	"context"
	"testing"
	"time"

	"styledecor/database/repository/memory"
	"styledecor/models"
	"styledecor/services/user"
	"styledecor/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const secret = "user-test-secret"

func newService() (*user.DefaultUserService, *memory.Store) {
	store := memory.NewStore()
	return user.NewUserService(store.Users(), secret, time.Hour), store
}

func TestSync_CreatesThenUpdates(t *testing.T) {
	svc, _ := newService()
	ctx := context.Background()

	created, err := svc.Sync(ctx, models.UserSyncRequest{UID: "uid-1", Email: " Rina@Example.com "})
	require.NoError(t, err)
	assert.Equal(t, "rina@example.com", created.Email)
	assert.Equal(t, "rina", created.Name)
	assert.Equal(t, models.RoleUser, created.Role)
	assert.True(t, created.IsActive)
	assert.NotEmpty(t, created.PasswordHash)

	_, err = svc.UpdateRole(ctx, created.ID.Hex(), models.RoleAdmin)
	require.NoError(t, err)

	updated, err := svc.Sync(ctx, models.UserSyncRequest{UID: "uid-1", Email: "rina@example.com", Name: "Rina K", PhoneNumber: "0123"})
	require.NoError(t, err)
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, "Rina K", updated.Name)
	assert.Equal(t, "0123", updated.PhoneNumber)
	assert.Equal(t, models.RoleAdmin, updated.Role, "sync never changes the role")
}

func TestSync_RequiresEmail(t *testing.T) {
	svc, _ := newService()

	_, err := svc.Sync(context.Background(), models.UserSyncRequest{UID: "uid-1"})
	var appErr *utils.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, utils.KindValidation, appErr.Kind)
	assert.Equal(t, "Email is required", appErr.Message)
}

func TestSync_KeepsLinkedIdentity(t *testing.T) {
	svc, _ := newService()
	ctx := context.Background()

	admin, err := svc.Sync(ctx, models.UserSyncRequest{UID: "admin-uid", Email: "admin@example.com"})
	require.NoError(t, err)
	_, err = svc.UpdateRole(ctx, admin.ID.Hex(), models.RoleAdmin)
	require.NoError(t, err)

	_, err = svc.Sync(ctx, models.UserSyncRequest{UID: "other-uid", Email: "admin@example.com"})
	assert.Equal(t, utils.KindForbidden, utils.KindOf(err))

	_, err = svc.Sync(ctx, models.UserSyncRequest{Email: "admin@example.com", FCMToken: "fcm-x"})
	assert.Equal(t, utils.KindForbidden, utils.KindOf(err))

	_, err = svc.GetUser(ctx, "other-uid")
	assert.Equal(t, utils.KindNotFound, utils.KindOf(err))

	stored, err := svc.GetUser(ctx, "admin-uid")
	require.NoError(t, err)
	assert.Equal(t, admin.ID, stored.ID)
	assert.Empty(t, stored.FCMToken)

	// A second identity cannot take over an email that belongs to another account.
	_, err = svc.Sync(ctx, models.UserSyncRequest{UID: "other-uid", Email: "other@example.com"})
	require.NoError(t, err)
	_, err = svc.Sync(ctx, models.UserSyncRequest{UID: "other-uid", Email: "admin@example.com"})
	assert.Equal(t, utils.KindForbidden, utils.KindOf(err))
}

func TestGetUser_ByUIDOrID(t *testing.T) {
	svc, _ := newService()
	ctx := context.Background()
	created, err := svc.Sync(ctx, models.UserSyncRequest{UID: "uid-9", Email: "nine@example.com"})
	require.NoError(t, err)

	byUID, err := svc.GetUser(ctx, "uid-9")
	require.NoError(t, err)
	assert.Equal(t, created.ID, byUID.ID)

	byID, err := svc.GetUser(ctx, created.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, created.ID, byID.ID)

	_, err = svc.GetUser(ctx, "missing")
	assert.Equal(t, utils.KindNotFound, utils.KindOf(err))
}

func TestUpdateRole_InvalidRole(t *testing.T) {
	svc, _ := newService()

	_, err := svc.UpdateRole(context.Background(), "64b7f0f0f0f0f0f0f0f0f0f0", "superuser")
	var appErr *utils.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, utils.KindInvalidRole, appErr.Kind)
	assert.Equal(t, "Invalid role. Must be user, admin, or decorator", appErr.Message)
}

func TestDecoratorLifecycle(t *testing.T) {
	svc, _ := newService()
	ctx := context.Background()
	u, err := svc.Sync(ctx, models.UserSyncRequest{Email: "deco@example.com", Name: "Deco"})
	require.NoError(t, err)

	_, err = svc.SetApproval(ctx, u.ID.Hex(), true)
	assert.Equal(t, utils.KindNotFound, utils.KindOf(err), "not a decorator yet")

	d, err := svc.MakeDecorator(ctx, u.ID.Hex(), nil)
	require.NoError(t, err)
	assert.Equal(t, models.RoleDecorator, d.Role)
	require.NotNil(t, d.Decorator)
	assert.False(t, d.Decorator.IsApproved)
	assert.Equal(t, []string{}, d.Decorator.Specialties)

	approved, err := svc.SetApproval(ctx, u.ID.Hex(), true)
	require.NoError(t, err)
	assert.True(t, approved.IsApprovedDecorator())

	phone := "0199"
	profile, err := svc.UpdateDecoratorProfile(ctx, approved.Identity(models.AuthTypeJWT), models.DecoratorProfileUpdate{
		Specialties: []string{"wedding", "stage"},
		PhoneNumber: &phone,
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"wedding", "stage"}, profile.Decorator.Specialties)
	assert.Equal(t, "0199", profile.PhoneNumber)

	demoted, err := svc.UpdateRole(ctx, u.ID.Hex(), models.RoleUser)
	require.NoError(t, err)
	assert.Nil(t, demoted.Decorator)

	again, err := svc.MakeDecorator(ctx, u.ID.Hex(), []string{"office"})
	require.NoError(t, err)
	assert.False(t, again.Decorator.IsApproved, "re-entering the role starts unapproved")

	decorators, err := svc.ListDecorators(ctx)
	require.NoError(t, err)
	assert.Len(t, decorators, 1)

	_, err = svc.MakeDecorator(ctx, "", nil)
	assert.Equal(t, utils.KindValidation, utils.KindOf(err))
}

func TestUpdateDecoratorProfile_RejectsNonDecorator(t *testing.T) {
	svc, _ := newService()
	ctx := context.Background()
	u, err := svc.Sync(ctx, models.UserSyncRequest{Email: "plain@example.com"})
	require.NoError(t, err)

	_, err = svc.UpdateDecoratorProfile(ctx, u.Identity(models.AuthTypeJWT), models.DecoratorProfileUpdate{})
	assert.Equal(t, utils.KindForbidden, utils.KindOf(err))
}

func TestRegisterAndLogin(t *testing.T) {
	svc, _ := newService()
	ctx := context.Background()

	reg, err := svc.Register(ctx, models.RegisterRequest{Name: "Tariq", Email: "Tariq@Example.com", Password: "secret1"})
	require.NoError(t, err)
	assert.NotEmpty(t, reg.Token)
	assert.Equal(t, "tariq@example.com", reg.User.Email)

	claims, err := utils.ParseToken([]byte(secret), reg.Token)
	require.NoError(t, err)
	assert.Equal(t, reg.User.ID.Hex(), claims.UserID)

	_, err = svc.Register(ctx, models.RegisterRequest{Name: "Tariq", Email: "tariq@example.com", Password: "secret1"})
	var appErr *utils.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "A user with this email already exists", appErr.Message)

	_, err = svc.Register(ctx, models.RegisterRequest{Name: "Short", Email: "short@example.com", Password: "123"})
	require.ErrorAs(t, err, &appErr)
	assert.Contains(t, appErr.Details, "password must be at least 6 characters")

	login, err := svc.Login(ctx, models.LoginRequest{Email: "TARIQ@example.com", Password: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, reg.User.ID, login.User.ID)

	_, err = svc.Login(ctx, models.LoginRequest{Email: "tariq@example.com", Password: "wrong"})
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, utils.KindUnauthenticated, appErr.Kind)
	assert.Equal(t, "Invalid email or password", appErr.Message)

	me, err := svc.Me(ctx, reg.User.Identity(models.AuthTypeJWT))
	require.NoError(t, err)
	assert.Equal(t, "Tariq", me.Name)
}
