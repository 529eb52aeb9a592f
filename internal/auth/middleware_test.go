package auth

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/bookshelf/internal/entities"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type memoryRevoker struct {
	revoked map[string]bool
	err     error
}

func (m *memoryRevoker) Revoke(_ context.Context, jti string, _ uint, _ time.Time) error {
	if m.revoked == nil {
		m.revoked = map[string]bool{}
	}
	m.revoked[jti] = true
	return m.err
}

func (m *memoryRevoker) IsRevoked(_ context.Context, jti string) (bool, error) {
	return m.revoked[jti], m.err
}

func setupRouter(t *testing.T, revoker TokenRevoker) (*gin.Engine, *TokenService) {
	t.Helper()
	tokens := NewTokenService("test-secret", "bookshelf", time.Hour)
	mw := NewMiddleware(tokens, revoker, nil)

	router := gin.New()
	router.GET("/me", mw.RequireAuth(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user_id": GetUserID(c), "role": GetUserRole(c), "jti": GetClaims(c).ID})
	})
	router.GET("/admin", mw.RequireAuth(), mw.RequireRole(entities.RoleAdmin), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return router, tokens
}

func do(router *gin.Engine, path, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}

func TestMiddleware_RequireAuth_Valid(t *testing.T) {
	router, tokens := setupRouter(t, nil)
	token, claims, err := tokens.Sign(&entities.User{ID: 5, Role: entities.RoleUser})
	require.NoError(t, err)

	rr := do(router, "/me", "Bearer "+token)
	require.Equal(t, http.StatusOK, rr.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.Equal(t, float64(5), body["user_id"])
	assert.Equal(t, "user", body["role"])
	assert.Equal(t, claims.ID, body["jti"])

	// Scheme is case-insensitive
	rr = do(router, "/me", "bearer "+token)
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestMiddleware_RequireAuth_Rejects(t *testing.T) {
	router, _ := setupRouter(t, nil)

	tests := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"basic scheme", "Basic dXNlcjpwYXNz"},
		{"empty token", "Bearer "},
		{"garbage token", "Bearer not.a.jwt"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := do(router, "/me", tt.header)
			assert.Equal(t, http.StatusUnauthorized, rr.Code)
			assert.Contains(t, rr.Body.String(), CodeUnauthorized)
		})
	}
}

func TestMiddleware_RequireAuth_RevokedToken(t *testing.T) {
	revoker := &memoryRevoker{}
	router, tokens := setupRouter(t, revoker)
	token, claims, err := tokens.Sign(&entities.User{ID: 5, Role: entities.RoleUser})
	require.NoError(t, err)

	require.Equal(t, http.StatusOK, do(router, "/me", "Bearer "+token).Code)

	require.NoError(t, revoker.Revoke(context.Background(), claims.ID, 5, claims.ExpiresAt.Time))
	assert.Equal(t, http.StatusUnauthorized, do(router, "/me", "Bearer "+token).Code)
}

func TestMiddleware_RequireAuth_RevokerFailureRejects(t *testing.T) {
	router, tokens := setupRouter(t, &memoryRevoker{err: errors.New("down")})
	token, _, err := tokens.Sign(&entities.User{ID: 5, Role: entities.RoleUser})
	require.NoError(t, err)

	assert.Equal(t, http.StatusUnauthorized, do(router, "/me", "Bearer "+token).Code)
}

func TestMiddleware_RequireRole(t *testing.T) {
	router, tokens := setupRouter(t, nil)

	userToken, _, err := tokens.Sign(&entities.User{ID: 1, Role: entities.RoleUser})
	require.NoError(t, err)
	adminToken, _, err := tokens.Sign(&entities.User{ID: 2, Role: entities.RoleAdmin})
	require.NoError(t, err)

	assert.Equal(t, http.StatusUnauthorized, do(router, "/admin", "").Code)

	rr := do(router, "/admin", "Bearer "+userToken)
	assert.Equal(t, http.StatusForbidden, rr.Code)
	assert.Contains(t, rr.Body.String(), CodeForbidden)

	assert.Equal(t, http.StatusOK, do(router, "/admin", "Bearer "+adminToken).Code)
}

func TestMiddleware_CustomErrorHandler(t *testing.T) {
	var gotStatus int
	var gotCode string
	mw := NewMiddleware(NewTokenService("s", "i", time.Hour), nil, func(c *gin.Context, status int, code, message string) {
		gotStatus, gotCode = status, code
		c.AbortWithStatus(status)
	})

	router := gin.New()
	router.GET("/x", mw.RequireAuth(), func(c *gin.Context) { c.Status(http.StatusOK) })

	do(router, "/x", "")
	assert.Equal(t, http.StatusUnauthorized, gotStatus)
	assert.Equal(t, CodeUnauthorized, gotCode)
}

func TestContextHelpers_Empty(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())

	assert.Equal(t, uint(0), GetUserID(c))
	assert.Equal(t, entities.UserRole(""), GetUserRole(c))
	assert.Nil(t, GetClaims(c))
}

func TestSecurityHeaders(t *testing.T) {
	router := gin.New()
	router.Use(SecurityHeadersMiddleware())
	router.GET("/test", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	rr := do(router, "/test", "")

	assert.Equal(t, "DENY", rr.Header().Get("X-Frame-Options"))
	assert.Equal(t, "nosniff", rr.Header().Get("X-Content-Type-Options"))
	assert.NotEmpty(t, rr.Header().Get("Content-Security-Policy"))
	assert.Empty(t, rr.Header().Get("Strict-Transport-Security"))

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.Header.Set("X-Forwarded-Proto", "https")
	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	assert.NotEmpty(t, rr.Header().Get("Strict-Transport-Security"))
}
