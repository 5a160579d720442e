package handlers

import (
	"strings"

	"noteful-api/internal/models"
	"noteful-api/internal/repository"
	"noteful-api/internal/validation"
	"noteful-api/pkg/auth"
	"noteful-api/pkg/response"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	userRepo repository.UserRepository
}

func NewUserHandler(userRepo repository.UserRepository) *UserHandler {
	return &UserHandler{userRepo: userRepo}
}

// Register creates an account: ordered shape validation, bcrypt hash,
// insert. A store-level uniqueness violation on username is the
// authoritative duplicate signal. The password, hashed or plain,
// never appears in the response.
func (h *UserHandler) Register(c *gin.Context) {
	var req models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	username, password, err := validation.ValidateCredentials(req.Username, req.Password)
	if err != nil {
		response.Error(c, err)
		return
	}

	passwordHash, err := auth.HashPassword(password)
	if err != nil {
		response.Error(c, err)
		return
	}

	fullname := strings.TrimSpace(req.Fullname)

	user, err := h.userRepo.Create(c.Request.Context(), fullname, username, passwordHash)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "/api/users/"+user.ID, user.ToResponse())
}

func (h *UserHandler) GetUsers(c *gin.Context) {
	users, err := h.userRepo.GetAll(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	results := make([]*models.UserResponse, 0, len(users))
	for _, user := range users {
		results = append(results, user.ToResponse())
	}

	response.OK(c, results)
}
