package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"noteful-api/internal/config"
	"noteful-api/pkg/auth"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newAuthRouter(jwtManager *auth.JWTManager) *gin.Engine {
	r := gin.New()
	r.Use(AuthMiddleware(jwtManager))
	r.GET("/api/notes", func(c *gin.Context) {
		userID, ok := GetCurrentUserID(c)
		if !ok {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "identity missing"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"userId": userID})
	})
	return r
}

func testManager() *auth.JWTManager {
	return auth.NewJWTManager(&config.Config{JWTSecret: "test-secret", JWTExpiryHours: 1})
}

func get(r http.Handler, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/api/notes", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthMiddleware_MissingHeader(t *testing.T) {
	w := get(newAuthRouter(testManager()), "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddleware_BadFormat(t *testing.T) {
	w := get(newAuthRouter(testManager()), "Token abc")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddleware_InvalidToken(t *testing.T) {
	w := get(newAuthRouter(testManager()), "Bearer not.a.token")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddleware_ValidTokenExposesIdentity(t *testing.T) {
	m := testManager()
	token, err := m.GenerateToken("user-1", "bob")
	require.NoError(t, err)

	w := get(newAuthRouter(m), "Bearer "+token)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"userId":"user-1"`)
}
