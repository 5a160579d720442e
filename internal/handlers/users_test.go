package handlers

import (
	"net/http"
	"strings"
	"testing"

	"noteful-api/internal/config"
	"noteful-api/pkg/auth"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type usersFixture struct {
	router *gin.Engine
	repo   *fakeUserRepo
}

func newUsersFixture() *usersFixture {
	f := &usersFixture{repo: newFakeUserRepo()}

	jwtManager := auth.NewJWTManager(&config.Config{JWTSecret: "test-secret", JWTExpiryHours: 1})
	userHandler := NewUserHandler(f.repo)
	authHandler := NewAuthHandler(f.repo, jwtManager)

	r := gin.New()
	r.GET("/api/users", userHandler.GetUsers)
	r.POST("/api/users", userHandler.Register)
	r.POST("/api/login", authHandler.Login)
	f.router = r
	return f
}

func TestRegister_Success(t *testing.T) {
	f := newUsersFixture()

	w := performRequest(t, f.router, http.MethodPost, "/api/users", gin.H{
		"username": "exampleUser",
		"password": "examplePass",
		"fullname": " Example User ",
	})

	require.Equal(t, http.StatusCreated, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "exampleUser", body["username"])
	assert.Equal(t, "Example User", body["fullname"], "fullname is trimmed")
	assert.NotEmpty(t, body["id"])
	assert.Equal(t, "/api/users/"+body["id"].(string), w.Header().Get("Location"))

	// neither the password nor its hash ever appears externally
	assert.NotContains(t, w.Body.String(), "password")
	assert.NotContains(t, w.Body.String(), "examplePass")
	assert.NotContains(t, w.Body.String(), f.repo.lastHash)

	// the stored hash verifies against the plaintext and nothing else
	assert.True(t, auth.CheckPasswordHash("examplePass", f.repo.lastHash))
	assert.False(t, auth.CheckPasswordHash("examplePasX", f.repo.lastHash))
}

func TestRegister_ShapeViolations(t *testing.T) {
	tests := []struct {
		name     string
		payload  gin.H
		message  string
		location string
	}{
		{
			name:     "missing username",
			payload:  gin.H{"password": "examplePass"},
			message:  "Missing 'username' in request body",
			location: "username",
		},
		{
			name:     "missing password",
			payload:  gin.H{"username": "exampleUser"},
			message:  "Missing 'password' in request body",
			location: "password",
		},
		{
			name:     "non-string username",
			payload:  gin.H{"username": 1234, "password": "examplePass"},
			message:  "incorrect field type: expected username to be string",
			location: "username",
		},
		{
			name:     "non-string password",
			payload:  gin.H{"username": "exampleUser", "password": 1234},
			message:  "incorrect field type: expected password to be string",
			location: "password",
		},
		{
			name:     "leading whitespace username",
			payload:  gin.H{"username": "  bob", "password": "examplePass"},
			message:  "password or username cannot start or end with whitespace",
			location: "username",
		},
		{
			name:     "empty username",
			payload:  gin.H{"username": "", "password": "examplePass"},
			message:  "Must be at least 1 characters long",
			location: "username",
		},
		{
			name:     "password of length 7",
			payload:  gin.H{"username": "exampleUser", "password": "2short7"},
			message:  "Must be at least 8 characters long",
			location: "password",
		},
		{
			name:     "password of length 73",
			payload:  gin.H{"username": "exampleUser", "password": strings.Repeat("x", 73)},
			message:  "Must be at most 72 characters long",
			location: "password",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newUsersFixture()

			w := performRequest(t, f.router, http.MethodPost, "/api/users", tt.payload)

			require.Equal(t, http.StatusUnprocessableEntity, w.Code)
			body := decodeBody(t, w)
			assert.Equal(t, tt.message, body["message"])
			assert.Equal(t, "ValidationError", body["reason"])
			assert.Equal(t, tt.location, body["location"])
			assert.Empty(t, f.repo.byUsername, "no user may be persisted on a shape violation")
		})
	}
}

func TestRegister_DuplicateUsername(t *testing.T) {
	f := newUsersFixture()

	w := performRequest(t, f.router, http.MethodPost, "/api/users", gin.H{
		"username": "exampleUser",
		"password": "examplePass",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = performRequest(t, f.router, http.MethodPost, "/api/users", gin.H{
		"username": "exampleUser",
		"password": "anotherPass",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Username already taken", decodeBody(t, w)["message"])
}

func TestGetUsers_Sanitized(t *testing.T) {
	f := newUsersFixture()

	performRequest(t, f.router, http.MethodPost, "/api/users", gin.H{
		"username": "exampleUser",
		"password": "examplePass",
		"fullname": "Example User",
	})

	w := performRequest(t, f.router, http.MethodGet, "/api/users", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, w.Body.String(), "password")
	assert.NotContains(t, w.Body.String(), f.repo.lastHash)
}

func TestLogin_IssuesToken(t *testing.T) {
	f := newUsersFixture()

	performRequest(t, f.router, http.MethodPost, "/api/users", gin.H{
		"username": "exampleUser",
		"password": "examplePass",
	})

	w := performRequest(t, f.router, http.MethodPost, "/api/login", gin.H{
		"username": "exampleUser",
		"password": "examplePass",
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, decodeBody(t, w)["authToken"])
}

func TestLogin_WrongPasswordAndUnknownUserCollapse(t *testing.T) {
	f := newUsersFixture()

	performRequest(t, f.router, http.MethodPost, "/api/users", gin.H{
		"username": "exampleUser",
		"password": "examplePass",
	})

	w := performRequest(t, f.router, http.MethodPost, "/api/login", gin.H{
		"username": "exampleUser",
		"password": "wrongPassword",
	})
	require.Equal(t, http.StatusUnauthorized, w.Code)
	wrongPass := decodeBody(t, w)["message"]

	w = performRequest(t, f.router, http.MethodPost, "/api/login", gin.H{
		"username": "nobody",
		"password": "examplePass",
	})
	require.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, wrongPass, decodeBody(t, w)["message"])
}
