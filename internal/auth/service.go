package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/mrlokans/bookshelf/internal/database"
	"github.com/mrlokans/bookshelf/internal/entities"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrNotAuthenticated   = errors.New("not authenticated")
)

// LockedOutError is returned by Login while the client is rate limited.
type LockedOutError struct {
	RetryAfter time.Duration
}

func (e *LockedOutError) Error() string {
	return fmt.Sprintf("too many failed login attempts, retry in %s", e.RetryAfter.Round(time.Second))
}

// UserLookup finds accounts by email for login.
type UserLookup interface {
	GetUserByEmail(ctx context.Context, email string) (*entities.User, error)
}

// LoginResult is a freshly issued access token.
type LoginResult struct {
	AccessToken string
	ExpiresAt   time.Time
	User        *entities.User
}

// Service handles login and logout.
type Service struct {
	users   UserLookup
	tokens  *TokenService
	revoker TokenRevoker
	limiter *RateLimiter
}

// NewService creates an authentication service. limiter and revoker may be nil.
func NewService(users UserLookup, tokens *TokenService, revoker TokenRevoker, limiter *RateLimiter) *Service {
	return &Service{users: users, tokens: tokens, revoker: revoker, limiter: limiter}
}

// Login checks credentials and issues an access token. ip scopes the
// failed-attempt counter.
func (s *Service) Login(ctx context.Context, email, password, ip string) (*LoginResult, error) {
	if s.limiter != nil {
		if allowed, retryAfter := s.limiter.Allow(ip, email); !allowed {
			return nil, &LockedOutError{RetryAfter: retryAfter}
		}
	}

	user, err := s.users.GetUserByEmail(ctx, email)
	if err != nil && !errors.Is(err, database.ErrNotFound) {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	if user == nil || CheckPassword(password, user.PasswordHash) != nil {
		return nil, s.fail(ip, email)
	}

	if s.limiter != nil {
		s.limiter.RecordSuccess(ip, email)
	}

	token, claims, err := s.tokens.Sign(user)
	if err != nil {
		return nil, err
	}
	return &LoginResult{
		AccessToken: token,
		ExpiresAt:   claims.ExpiresAt.Time,
		User:        user,
	}, nil
}

func (s *Service) fail(ip, email string) error {
	if s.limiter != nil {
		if locked, retryAfter := s.limiter.RecordFailure(ip, email); locked {
			return &LockedOutError{RetryAfter: retryAfter}
		}
	}
	return ErrInvalidCredentials
}

// Logout revokes the token described by claims until it expires.
func (s *Service) Logout(ctx context.Context, claims *Claims) error {
	if claims == nil {
		return ErrNotAuthenticated
	}
	if s.revoker == nil {
		return nil
	}
	var expiresAt time.Time
	if claims.ExpiresAt != nil {
		expiresAt = claims.ExpiresAt.Time
	}
	if err := s.revoker.Revoke(ctx, claims.ID, claims.UserID, expiresAt); err != nil {
		return fmt.Errorf("failed to revoke token: %w", err)
	}
	return nil
}
