package response

import (
	"net/http"

	"noteful-api/internal/apperrors"

	"github.com/gin-gonic/gin"
)

// ErrorBody is the JSON shape of every failed request: at least a
// human-readable message, plus reason/location for credential shape
// violations.
type ErrorBody struct {
	Message  string `json:"message"`
	Reason   string `json:"reason,omitempty"`
	Location string `json:"location,omitempty"`
}

func OK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, data)
}

// Created writes 201 with a Location pointer to the new resource.
func Created(c *gin.Context, location string, data interface{}) {
	c.Header("Location", location)
	c.JSON(http.StatusCreated, data)
}

func NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

func BadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, ErrorBody{Message: message})
}

func Unauthorized(c *gin.Context, message string) {
	c.JSON(http.StatusUnauthorized, ErrorBody{Message: message})
}

func NotFound(c *gin.Context, message string) {
	c.JSON(http.StatusNotFound, ErrorBody{Message: message})
}

func TooManyRequests(c *gin.Context, message string) {
	c.JSON(http.StatusTooManyRequests, ErrorBody{Message: message})
}

func InternalServerError(c *gin.Context) {
	c.JSON(http.StatusInternalServerError, ErrorBody{Message: "Internal server error"})
}

// Error translates a domain error into its response. Unrecognized
// failures collapse into an opaque 500; storage detail never reaches
// the client.
func Error(c *gin.Context, err error) {
	appErr := apperrors.As(err)

	body := ErrorBody{Message: appErr.Message}
	if appErr.Status() == http.StatusUnprocessableEntity {
		body.Reason = "ValidationError"
		body.Location = appErr.Field
	}
	c.JSON(appErr.Status(), body)
}
