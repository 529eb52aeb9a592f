package auth

import (
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/bookshelf/internal/entities"
)

// Context keys for the authenticated principal
const (
	ContextKeyUserID = "auth_user_id"
	ContextKeyRole   = "auth_role"
	ContextKeyClaims = "auth_claims"
)

// Codes passed to the ErrorHandler when the gate rejects a request.
const (
	CodeUnauthorized = "UNAUTHORIZED"
	CodeForbidden    = "FORBIDDEN"
)

// ErrorHandler renders a rejection and aborts the request.
type ErrorHandler func(c *gin.Context, status int, code, message string)

func defaultErrorHandler(c *gin.Context, status int, code, message string) {
	c.AbortWithStatusJSON(status, gin.H{"code": code, "error": message})
}

// Middleware is the bearer-token gate in front of protected routes.
type Middleware struct {
	tokens  *TokenService
	revoker TokenRevoker
	onError ErrorHandler
}

// NewMiddleware creates the gate. revoker may be nil, in which case logout
// has no effect on outstanding tokens. onError may be nil.
func NewMiddleware(tokens *TokenService, revoker TokenRevoker, onError ErrorHandler) *Middleware {
	if onError == nil {
		onError = defaultErrorHandler
	}
	return &Middleware{tokens: tokens, revoker: revoker, onError: onError}
}

// RequireAuth rejects requests without a valid, unrevoked bearer token
// with 401 before any handler runs.
func (m *Middleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			m.onError(c, http.StatusUnauthorized, CodeUnauthorized, "authentication required")
			return
		}

		claims, err := m.tokens.Parse(token)
		if err != nil {
			m.onError(c, http.StatusUnauthorized, CodeUnauthorized, "invalid or expired token")
			return
		}

		if m.revoker != nil {
			revoked, err := m.revoker.IsRevoked(c.Request.Context(), claims.ID)
			if err != nil {
				log.Printf("Failed to check token revocation: %v", err)
				m.onError(c, http.StatusUnauthorized, CodeUnauthorized, "unable to verify token")
				return
			}
			if revoked {
				m.onError(c, http.StatusUnauthorized, CodeUnauthorized, "token has been revoked")
				return
			}
		}

		c.Set(ContextKeyUserID, claims.UserID)
		c.Set(ContextKeyRole, claims.Role)
		c.Set(ContextKeyClaims, claims)
		c.Next()
	}
}

// RequireRole admits only principals holding one of roles. It must run
// after RequireAuth.
func (m *Middleware) RequireRole(roles ...entities.UserRole) gin.HandlerFunc {
	roleSet := make(map[entities.UserRole]bool)
	for _, r := range roles {
		roleSet[r] = true
	}

	return func(c *gin.Context) {
		if GetUserID(c) == 0 {
			m.onError(c, http.StatusUnauthorized, CodeUnauthorized, "authentication required")
			return
		}
		if !roleSet[GetUserRole(c)] {
			m.onError(c, http.StatusForbidden, CodeForbidden, "insufficient permissions")
			return
		}
		c.Next()
	}
}

func bearerToken(header string) (string, bool) {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return "", false
	}
	token := strings.TrimSpace(parts[1])
	return token, token != ""
}

// GetUserID retrieves the authenticated user's ID, or 0.
func GetUserID(c *gin.Context) uint {
	if id, exists := c.Get(ContextKeyUserID); exists {
		if userID, ok := id.(uint); ok {
			return userID
		}
	}
	return 0
}

// GetUserRole retrieves the authenticated user's role from the context.
func GetUserRole(c *gin.Context) entities.UserRole {
	if r, exists := c.Get(ContextKeyRole); exists {
		if role, ok := r.(entities.UserRole); ok {
			return role
		}
	}
	return ""
}

// GetClaims retrieves the verified token claims, or nil.
func GetClaims(c *gin.Context) *Claims {
	if v, exists := c.Get(ContextKeyClaims); exists {
		if claims, ok := v.(*Claims); ok {
			return claims
		}
	}
	return nil
}
