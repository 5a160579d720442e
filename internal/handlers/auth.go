package handlers

import (
	"noteful-api/internal/models"
	"noteful-api/internal/repository"
	"noteful-api/pkg/auth"
	"noteful-api/pkg/response"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	userRepo   repository.UserRepository
	jwtManager *auth.JWTManager
}

func NewAuthHandler(userRepo repository.UserRepository, jwtManager *auth.JWTManager) *AuthHandler {
	return &AuthHandler{
		userRepo:   userRepo,
		jwtManager: jwtManager,
	}
}

// Login verifies credentials and issues a bearer token. Unknown
// username and wrong password produce the same response.
func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	user, err := h.userRepo.GetByUsername(c.Request.Context(), req.Username)
	if err != nil {
		response.Error(c, err)
		return
	}

	if user == nil || !auth.CheckPasswordHash(req.Password, user.PasswordHash) {
		response.Unauthorized(c, "Invalid username or password")
		return
	}

	token, err := h.jwtManager.GenerateToken(user.ID, user.Username)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, &models.LoginResponse{AuthToken: token})
}
