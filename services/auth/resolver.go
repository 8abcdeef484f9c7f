package auth

import (
	"context"
	"strings"
	"time"

	userRepo "styledecor/database/repository/user"
	"styledecor/models"
	"styledecor/utils"

	"go.uber.org/zap"
)

// Resolver tries each verifier in order; the first success wins.
type Resolver struct {
	Verifiers []Verifier
	Users     userRepo.UserRepository
	// Cache is optional.
	Cache TokenCache
	Now   func() time.Time
}

func NewResolver(users userRepo.UserRepository, cache TokenCache, verifiers ...Verifier) *Resolver {
	return &Resolver{Verifiers: verifiers, Users: users, Cache: cache, Now: time.Now}
}

// BearerToken extracts the token from an Authorization header value.
func BearerToken(header string) string {
	if !strings.HasPrefix(header, "Bearer ") {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
}

// Resolve authenticates token. When every verifier rejects it the last
// rejection is returned; storage failures short-circuit as internal errors.
func (r *Resolver) Resolve(ctx context.Context, token string) (*models.Identity, error) {
	if token == "" {
		return nil, utils.Unauthenticated("Not authorized. Please login to access this resource.")
	}

	if identity := r.fromCache(ctx, token); identity != nil {
		return identity, nil
	}

	var lastErr error = utils.Unauthenticated("Authentication failed. Invalid token.")
	for _, v := range r.Verifiers {
		identity, err := v.Verify(ctx, token)
		if err == nil {
			r.remember(ctx, token, identity)
			return identity, nil
		}
		if utils.KindOf(err) == utils.KindInternal {
			return nil, err
		}
		zap.L().Debug("Token rejected", zap.String("verifier", v.Name()), zap.Error(err))
		lastErr = err
	}
	return nil, lastErr
}

// Forget drops any cached verification of token.
func (r *Resolver) Forget(ctx context.Context, token string) {
	if r.Cache == nil {
		return
	}
	if err := r.Cache.Delete(ctx, token); err != nil {
		zap.L().Warn("Failed to drop auth cache entry", zap.Error(err))
	}
}

func (r *Resolver) fromCache(ctx context.Context, token string) *models.Identity {
	if r.Cache == nil || r.Users == nil {
		return nil
	}
	entry, err := r.Cache.Get(ctx, token)
	if err != nil {
		zap.L().Warn("Auth cache lookup failed, verifying token", zap.Error(err))
		return nil
	}
	if entry == nil || !entry.ExpiresAt.After(r.now()) {
		return nil
	}

	user, err := r.Users.GetByID(ctx, entry.UserID)
	if err != nil || user == nil || !user.IsActive {
		r.Forget(ctx, token)
		return nil
	}
	identity := user.Identity(entry.AuthType)
	identity.ExpiresAt = entry.ExpiresAt
	return identity
}

func (r *Resolver) remember(ctx context.Context, token string, identity *models.Identity) {
	if r.Cache == nil {
		return
	}
	ttl := cacheTTL(identity, r.now())
	if ttl <= 0 {
		return
	}
	entry := CachedIdentity{UserID: identity.UserID, AuthType: identity.AuthType, ExpiresAt: identity.ExpiresAt}
	if err := r.Cache.Set(ctx, token, entry, ttl); err != nil {
		zap.L().Warn("Failed to cache verified token", zap.Error(err))
	}
}

func (r *Resolver) now() time.Time {
	if r.Now == nil {
		return time.Now()
	}
	return r.Now()
}
