package middleware

import (
	"context"
	"strings"

	"styledecor/models"
	"styledecor/services/auth"
	"styledecor/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// IdentityKey is the gin context key holding the authenticated *models.Identity.
const IdentityKey = "identity"

// IdentityResolver authenticates bearer tokens.
type IdentityResolver interface {
	Resolve(ctx context.Context, token string) (*models.Identity, error)
}

// HybridAuth accepts either an identity-provider token or a self-issued token.
func HybridAuth(resolver IdentityResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := auth.BearerToken(c.GetHeader("Authorization"))
		identity, err := resolver.Resolve(c.Request.Context(), token)
		if err != nil {
			utils.RespondError(c, err)
			return
		}

		c.Set(IdentityKey, identity)
		if l := utils.LoggerFromContext(c); l != nil {
			c.Set("logger", l.With(zap.String("userId", identity.UserID.Hex()), zap.String("role", identity.Role)))
		}
		c.Next()
	}
}

// GetIdentity returns the caller attached by HybridAuth, if any.
func GetIdentity(c *gin.Context) (*models.Identity, bool) {
	v, exists := c.Get(IdentityKey)
	if !exists {
		return nil, false
	}
	identity, ok := v.(*models.Identity)
	return identity, ok && identity != nil
}

// RestrictTo admits only callers holding one of roles.
func RestrictTo(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := GetIdentity(c)
		if !ok {
			utils.RespondError(c, utils.Unauthenticated("Not authorized. Please login first."))
			return
		}
		if !identity.HasRole(roles...) {
			utils.RespondError(c, utils.Forbidden(
				"Access denied. This resource requires one of the following roles: "+strings.Join(roles, ", ")))
			return
		}
		c.Next()
	}
}

// RequireApprovedDecorator admits decorators an admin has approved.
func RequireApprovedDecorator() gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := GetIdentity(c)
		if !ok {
			utils.RespondError(c, utils.Unauthenticated("Not authorized. Please login first."))
			return
		}
		if identity.Role != models.RoleDecorator {
			utils.RespondError(c, utils.Forbidden("Access denied. This resource is only available to decorators."))
			return
		}
		if !identity.IsApproved {
			utils.RespondError(c, utils.Forbidden("Your decorator account is pending approval. Please contact admin."))
			return
		}
		c.Next()
	}
}
