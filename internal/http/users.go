package http

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/bookshelf/internal/auth"
	"github.com/mrlokans/bookshelf/internal/entities"
)

type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

// UserProfile is the public view of an account. The password hash never
// leaves the service layer.
type UserProfile struct {
	ID        uint              `json:"id"`
	Email     string            `json:"email"`
	Name      string            `json:"name"`
	Role      entities.UserRole `json:"role"`
	CreatedAt time.Time         `json:"created_at"`
}

func toProfile(u *entities.User) UserProfile {
	return UserProfile{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
	}
}

type UsersController struct {
	users UserService
}

func NewUsersController(users UserService) *UsersController {
	return &UsersController{users: users}
}

// Register handles POST /api/users
func (uc *UsersController) Register(c *gin.Context) {
	var req RegisterRequest
	if !bindJSON(c, &req) {
		return
	}
	user, err := uc.users.Register(c.Request.Context(), req.Email, req.Password, req.Name)
	if err != nil {
		respondError(c, err)
		return
	}
	respondCreated(c, "user registered", toProfile(user))
}

// Me handles GET /api/users/me
func (uc *UsersController) Me(c *gin.Context) {
	user, err := uc.users.Me(c.Request.Context(), auth.GetUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, "profile retrieved", toProfile(user))
}

// List handles GET /api/users (admin)
func (uc *UsersController) List(c *gin.Context) {
	users, err := uc.users.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	profiles := make([]UserProfile, 0, len(users))
	for i := range users {
		profiles = append(profiles, toProfile(&users[i]))
	}
	respondOK(c, "users retrieved", profiles)
}

// Get handles GET /api/users/:user_id (admin)
func (uc *UsersController) Get(c *gin.Context) {
	userID, ok := parseIDParam(c, "user_id")
	if !ok {
		return
	}
	user, err := uc.users.Get(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, "user retrieved", toProfile(user))
}
