package auth_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"styledecor/database/repository/memory"
	"styledecor/models"
	"styledecor/services/auth"
	"styledecor/utils"

	fbauth "firebase.google.com/go/v4/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "resolver-test-secret"

type fakeIDTokens struct {
	tokens map[string]*fbauth.Token
	calls  int
}

func (f *fakeIDTokens) VerifyIDToken(_ context.Context, idToken string) (*fbauth.Token, error) {
	f.calls++
	if t, ok := f.tokens[idToken]; ok {
		return t, nil
	}
	return nil, errors.New("ID token has invalid signature")
}

type mapCache struct {
	mu      sync.Mutex
	entries map[string]auth.CachedIdentity
	ttls    map[string]time.Duration
}

func newMapCache() *mapCache {
	return &mapCache{entries: map[string]auth.CachedIdentity{}, ttls: map[string]time.Duration{}}
}

func (c *mapCache) Get(_ context.Context, token string) (*auth.CachedIdentity, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[token]
	if !ok {
		return nil, nil
	}
	return &e, nil
}

func (c *mapCache) Set(_ context.Context, token string, entry auth.CachedIdentity, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[token] = entry
	c.ttls[token] = ttl
	return nil
}

func (c *mapCache) Delete(_ context.Context, token string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, token)
	return nil
}

type fixture struct {
	store    *memory.Store
	idTokens *fakeIDTokens
	cache    *mapCache
	resolver *auth.Resolver
}

func newFixture() *fixture {
	store := memory.NewStore()
	idTokens := &fakeIDTokens{tokens: map[string]*fbauth.Token{}}
	cache := newMapCache()
	resolver := auth.NewResolver(store.Users(), cache,
		auth.NewFirebaseVerifier(idTokens, store.Users()),
		auth.NewJWTVerifier(testSecret, store.Users()),
	)
	return &fixture{store: store, idTokens: idTokens, cache: cache, resolver: resolver}
}

func (f *fixture) seedUser(t *testing.T, email string, active bool) *models.User {
	t.Helper()
	u := &models.User{Account: models.Account{Name: "Sam", Email: email, Role: models.RoleUser, IsActive: active}}
	require.NoError(t, f.store.Users().Create(context.Background(), u))
	return u
}

func issue(t *testing.T, u *models.User, d time.Duration) string {
	t.Helper()
	token, err := utils.GenerateToken([]byte(testSecret), u.ID.Hex(), u.Email, d)
	require.NoError(t, err)
	return token
}

func messageOf(t *testing.T, err error) string {
	t.Helper()
	var appErr *utils.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, utils.KindUnauthenticated, appErr.Kind)
	return appErr.Message
}

func TestBearerToken(t *testing.T) {
	assert.Equal(t, "abc", auth.BearerToken("Bearer abc"))
	assert.Equal(t, "", auth.BearerToken("Basic abc"))
	assert.Equal(t, "", auth.BearerToken(""))
}

func TestResolve_EmptyToken(t *testing.T) {
	f := newFixture()
	_, err := f.resolver.Resolve(context.Background(), "")
	assert.Equal(t, "Not authorized. Please login to access this resource.", messageOf(t, err))
}

func TestResolve_FallsBackToJWT(t *testing.T) {
	f := newFixture()
	u := f.seedUser(t, "sam@example.com", true)
	token := issue(t, u, time.Hour)

	identity, err := f.resolver.Resolve(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, u.ID, identity.UserID)
	assert.Equal(t, models.AuthTypeJWT, identity.AuthType)
	assert.Equal(t, 1, f.idTokens.calls)

	ttl := f.cache.ttls[token]
	assert.True(t, ttl > 0 && ttl <= utils.AuthCacheTTL)
}

func TestResolve_JWTRejections(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	active := f.seedUser(t, "active@example.com", true)
	inactive := f.seedUser(t, "inactive@example.com", false)

	_, err := f.resolver.Resolve(ctx, issue(t, active, -time.Minute))
	assert.Equal(t, "Token expired. Please login again.", messageOf(t, err))

	_, err = f.resolver.Resolve(ctx, "garbage")
	assert.Equal(t, "Invalid token. Please login again.", messageOf(t, err))

	_, err = f.resolver.Resolve(ctx, issue(t, inactive, time.Hour))
	assert.Equal(t, "Account is deactivated. Please contact support.", messageOf(t, err))

	ghost := &models.User{Account: models.Account{ID: active.ID, Email: "ghost@example.com"}}
	ghost.ID[0] ^= 0xff
	_, err = f.resolver.Resolve(ctx, issue(t, ghost, time.Hour))
	assert.Equal(t, "User not found. Token is invalid.", messageOf(t, err))
}

func TestResolve_FirebaseProvisionsUser(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	f.idTokens.tokens["fb-token"] = &fbauth.Token{
		UID:     "uid-1",
		Expires: time.Now().Add(time.Hour).Unix(),
		Claims:  map[string]interface{}{"email": "New.User@Example.com"},
	}

	identity, err := f.resolver.Resolve(ctx, "fb-token")
	require.NoError(t, err)
	assert.Equal(t, models.AuthTypeFirebase, identity.AuthType)
	assert.Equal(t, models.RoleUser, identity.Role)
	assert.Equal(t, "new.user@example.com", identity.Email)
	assert.Equal(t, "new.user", identity.Name)

	stored, err := f.store.Users().GetByFirebaseUID(ctx, "uid-1")
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.True(t, stored.IsActive)
}

func TestResolve_FirebaseLinksExistingEmail(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	existing := f.seedUser(t, "sam@example.com", true)
	f.idTokens.tokens["fb-token"] = &fbauth.Token{
		UID:     "uid-sam",
		Expires: time.Now().Add(time.Hour).Unix(),
		Claims:  map[string]interface{}{"email": "sam@example.com", "name": "Sam S"},
	}

	identity, err := f.resolver.Resolve(ctx, "fb-token")
	require.NoError(t, err)
	assert.Equal(t, existing.ID, identity.UserID)

	linked, err := f.store.Users().GetByID(ctx, existing.ID)
	require.NoError(t, err)
	assert.Equal(t, "uid-sam", linked.FirebaseUID)
	assert.Equal(t, "Sam", linked.Name)
}

func TestResolve_FirebaseNeverRelinksEmail(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	existing := f.seedUser(t, "sam@example.com", true)
	existing.FirebaseUID = "uid-sam"
	existing.SetRole(models.RoleAdmin)
	require.NoError(t, f.store.Users().Update(ctx, existing))

	f.idTokens.tokens["other-token"] = &fbauth.Token{
		UID:     "uid-other",
		Expires: time.Now().Add(time.Hour).Unix(),
		Claims:  map[string]interface{}{"email": "sam@example.com"},
	}

	_, err := f.resolver.Resolve(ctx, "other-token")
	assert.Equal(t, utils.KindUnauthenticated, utils.KindOf(err))

	stored, err := f.store.Users().GetByID(ctx, existing.ID)
	require.NoError(t, err)
	assert.Equal(t, "uid-sam", stored.FirebaseUID)

	other, err := f.store.Users().GetByFirebaseUID(ctx, "uid-other")
	require.NoError(t, err)
	assert.Nil(t, other)
}

func TestResolve_CacheHitReloadsUser(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	u := f.seedUser(t, "sam@example.com", true)
	token := issue(t, u, time.Hour)

	_, err := f.resolver.Resolve(ctx, token)
	require.NoError(t, err)
	require.Equal(t, 1, f.idTokens.calls)

	u.SetRole(models.RoleAdmin)
	require.NoError(t, f.store.Users().Update(ctx, u))

	identity, err := f.resolver.Resolve(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, identity.Role)
	assert.Equal(t, 1, f.idTokens.calls, "cache hit skips verification")
}

func TestResolve_CacheDroppedForDeactivatedUser(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	u := f.seedUser(t, "sam@example.com", true)
	token := issue(t, u, time.Hour)

	_, err := f.resolver.Resolve(ctx, token)
	require.NoError(t, err)

	u.IsActive = false
	require.NoError(t, f.store.Users().Update(ctx, u))

	_, err = f.resolver.Resolve(ctx, token)
	assert.Equal(t, "Account is deactivated. Please contact support.", messageOf(t, err))
	_, cached := f.cache.entries[token]
	assert.False(t, cached)
}

func TestDisplayName(t *testing.T) {
	assert.Equal(t, "Rina", auth.DisplayName(" Rina ", "rina@example.com"))
	assert.Equal(t, "rina", auth.DisplayName("", "rina@example.com"))
	assert.Equal(t, "User", auth.DisplayName("", ""))
}
