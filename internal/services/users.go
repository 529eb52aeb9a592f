package services

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/mrlokans/bookshelf/internal/auth"
	"github.com/mrlokans/bookshelf/internal/database"
	"github.com/mrlokans/bookshelf/internal/database/users"
	"github.com/mrlokans/bookshelf/internal/entities"
)

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

const maxNameLength = 100

type UserService struct {
	users      UserStore
	bcryptCost int
	audit      AuditLogger
}

func NewUserService(users UserStore, bcryptCost int, audit AuditLogger) *UserService {
	return &UserService{users: users, bcryptCost: bcryptCost, audit: audit}
}

// Register creates a regular account. Emails are compared case-insensitively.
func (s *UserService) Register(ctx context.Context, email, password, name string) (*entities.User, error) {
	return s.create(ctx, email, password, name, entities.RoleUser)
}

// CreateAdmin creates an admin account. Admins cannot self-register.
func (s *UserService) CreateAdmin(ctx context.Context, email, password, name string) (*entities.User, error) {
	return s.create(ctx, email, password, name, entities.RoleAdmin)
}

func (s *UserService) create(ctx context.Context, email, password, name string, role entities.UserRole) (*entities.User, error) {
	email = users.NormalizeEmail(email)
	name = strings.TrimSpace(name)

	if len(email) > 254 || !emailPattern.MatchString(email) {
		return nil, ErrInvalidRequest("email", "invalid email format")
	}
	if name == "" || len(name) > maxNameLength {
		return nil, ErrInvalidRequest("name", fmt.Sprintf("name must be 1-%d characters", maxNameLength))
	}

	hash, err := auth.HashPassword(password, s.bcryptCost)
	if errors.Is(err, auth.ErrPasswordTooShort) || errors.Is(err, auth.ErrPasswordTooLong) {
		return nil, ErrInvalidRequest("password", err.Error())
	}
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &entities.User{
		Email:        email,
		PasswordHash: hash,
		Name:         name,
		Role:         role,
	}
	if err := s.users.CreateUser(ctx, user); err != nil {
		if errors.Is(err, database.ErrDuplicate) {
			return nil, ErrDuplicateEmail(email)
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	if s.audit != nil {
		s.audit.LogEntity(user.ID, entities.AuditEventUser, "user_register", "user", user.ID,
			fmt.Sprintf("Registered %s account %s", role, email))
	}
	return user, nil
}

// Me returns the profile of the authenticated user.
func (s *UserService) Me(ctx context.Context, userID uint) (*entities.User, error) {
	user, err := s.users.GetUserByID(ctx, userID)
	if errors.Is(err, database.ErrNotFound) {
		return nil, ErrUserNotFound(userID)
	}
	return user, err
}

// List returns every non-admin account.
func (s *UserService) List(ctx context.Context) ([]entities.User, error) {
	list, err := s.users.ListNonAdminUsers(ctx)
	if err != nil {
		return nil, err
	}
	if list == nil {
		list = []entities.User{}
	}
	return list, nil
}

// Get returns a non-admin account. Admin accounts are reported as not found.
func (s *UserService) Get(ctx context.Context, userID uint) (*entities.User, error) {
	user, err := s.users.GetNonAdminUserByID(ctx, userID)
	if errors.Is(err, database.ErrNotFound) {
		return nil, ErrUserNotFound(userID)
	}
	return user, err
}
