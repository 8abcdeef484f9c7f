package middleware_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"styledecor/middleware"
	"styledecor/models"
	"styledecor/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type stubResolver map[string]*models.Identity

func (s stubResolver) Resolve(_ context.Context, token string) (*models.Identity, error) {
	if token == "" {
		return nil, utils.Unauthenticated("Not authorized. Please login to access this resource.")
	}
	identity, ok := s[token]
	if !ok {
		return nil, utils.Unauthenticated("Authentication failed. Invalid token.")
	}
	return identity, nil
}

var identities = stubResolver{
	"user-token":      {UserID: primitive.NewObjectID(), Role: models.RoleUser},
	"admin-token":     {UserID: primitive.NewObjectID(), Role: models.RoleAdmin},
	"pending-token":   {UserID: primitive.NewObjectID(), Role: models.RoleDecorator},
	"decorator-token": {UserID: primitive.NewObjectID(), Role: models.RoleDecorator, IsApproved: true},
}

func newRouter(handlers ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	chain := append([]gin.HandlerFunc{middleware.HybridAuth(identities)}, handlers...)
	chain = append(chain, func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/test", chain...)
	return router
}

func do(router *gin.Engine, token string) (*httptest.ResponseRecorder, utils.ErrorResponse) {
	req, _ := http.NewRequest("GET", "/test", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var body utils.ErrorResponse
	_ = json.Unmarshal(w.Body.Bytes(), &body)
	return w, body
}

func TestHybridAuth_NoToken(t *testing.T) {
	w, body := do(newRouter(), "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.False(t, body.Success)
	assert.Equal(t, "Not authorized. Please login to access this resource.", body.Message)
}

func TestHybridAuth_InvalidToken(t *testing.T) {
	w, body := do(newRouter(), "nope")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Authentication failed. Invalid token.", body.Message)
}

func TestHybridAuth_AttachesIdentity(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/test", middleware.HybridAuth(identities), func(c *gin.Context) {
		identity, ok := middleware.GetIdentity(c)
		require.True(t, ok)
		assert.Equal(t, models.RoleAdmin, identity.Role)
		c.Status(http.StatusOK)
	})

	w, _ := do(router, "admin-token")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRestrictTo(t *testing.T) {
	router := newRouter(middleware.RestrictTo(models.RoleAdmin))

	w, body := do(router, "user-token")
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "Access denied. This resource requires one of the following roles: admin", body.Message)

	w, _ = do(router, "admin-token")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRestrictTo_WithoutIdentity(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/test", middleware.RestrictTo(models.RoleAdmin), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	w, body := do(router, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Not authorized. Please login first.", body.Message)
}

func TestRequireApprovedDecorator(t *testing.T) {
	router := newRouter(middleware.RequireApprovedDecorator())

	w, body := do(router, "user-token")
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "Access denied. This resource is only available to decorators.", body.Message)

	w, body = do(router, "pending-token")
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "Your decorator account is pending approval. Please contact admin.", body.Message)

	w, _ = do(router, "decorator-token")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRateLimitMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(middleware.RateLimitMiddleware(2))
	router.GET("/test", func(c *gin.Context) { c.Status(http.StatusOK) })

	codes := make([]int, 3)
	for i := range codes {
		w, _ := do(router, "")
		codes[i] = w.Code
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)
}

func TestRequestLogger_SetsRequestID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(middleware.RequestLogger())
	router.GET("/test", func(c *gin.Context) { c.Status(http.StatusOK) })

	w, _ := do(router, "")
	assert.NotEmpty(t, w.Header().Get(middleware.RequestIDHeader))

	req, _ := http.NewRequest("GET", "/test", nil)
	req.Header.Set(middleware.RequestIDHeader, "req-123")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, "req-123", w.Header().Get(middleware.RequestIDHeader))
}
