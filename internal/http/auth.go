package http

import (
	"errors"
	"math"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/bookshelf/internal/auth"
	"github.com/mrlokans/bookshelf/internal/services"
)

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	AccessToken string    `json:"access_token"`
	TokenType   string    `json:"token_type"`
	ExpiresAt   time.Time `json:"expires_at"`
}

type AuthController struct {
	auth  AuthService
	audit AuditReader
}

// NewAuthController creates the login/logout controller. audit may be nil.
func NewAuthController(authService AuthService, audit AuditReader) *AuthController {
	return &AuthController{auth: authService, audit: audit}
}

// Login handles POST /api/auth/login
func (ac *AuthController) Login(c *gin.Context) {
	var req LoginRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := ac.auth.Login(c.Request.Context(), req.Email, req.Password, c.ClientIP())
	if err != nil {
		ac.logAttempt(c, 0, false)

		var locked *auth.LockedOutError
		switch {
		case errors.As(err, &locked):
			retryAfter := int(math.Ceil(locked.RetryAfter.Seconds()))
			c.Header("Retry-After", strconv.Itoa(retryAfter))
			respondError(c, services.ErrTooManyAttempts(req.Email, retryAfter))
		case errors.Is(err, auth.ErrInvalidCredentials):
			respondError(c, services.ErrInvalidCredentials(req.Email))
		default:
			respondError(c, err)
		}
		return
	}

	ac.logAttempt(c, result.User.ID, true)
	respondOK(c, "login successful", LoginResponse{
		AccessToken: result.AccessToken,
		TokenType:   "Bearer",
		ExpiresAt:   result.ExpiresAt,
	})
}

// Logout handles POST /api/auth/logout. The presented token stops being
// accepted immediately.
func (ac *AuthController) Logout(c *gin.Context) {
	claims := auth.GetClaims(c)
	if err := ac.auth.Logout(c.Request.Context(), claims); err != nil {
		if errors.Is(err, auth.ErrNotAuthenticated) {
			respondError(c, services.ErrUnauthorized("authentication required"))
			return
		}
		respondError(c, err)
		return
	}
	if ac.audit != nil {
		ac.audit.LogAuth(claims.UserID, "logout", c.ClientIP(), c.Request.UserAgent(), true)
	}
	respondOK[any](c, "logged out", nil)
}

func (ac *AuthController) logAttempt(c *gin.Context, userID uint, success bool) {
	if ac.audit == nil {
		return
	}
	ac.audit.LogAuth(userID, "login", c.ClientIP(), c.Request.UserAgent(), success)
}
