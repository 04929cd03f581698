package response

import (
	"github.com/gin-gonic/gin"
)

// Envelope is the uniform success body: {statusCode, data, message}.
type Envelope[T any] struct {
	StatusCode int    `json:"statusCode"`
	Data       T      `json:"data"`
	Message    string `json:"message"`
}

// ErrorEnvelope is the uniform error body: {statusCode, message}.
// Details carries field-level validation messages when present.
type ErrorEnvelope struct {
	StatusCode int    `json:"statusCode"`
	Message    string `json:"message"`
	Details    any    `json:"details,omitempty"`
}

// Success writes the success envelope with the given status code.
func Success[T any](c *gin.Context, status int, data T, message string) {
	c.JSON(status, Envelope[T]{StatusCode: status, Data: data, Message: message})
}

// Error writes the error envelope with the given status code.
func Error(c *gin.Context, status int, message string) {
	c.JSON(status, ErrorEnvelope{StatusCode: status, Message: message})
}

// ErrorDetails writes the error envelope with field-level details.
func ErrorDetails(c *gin.Context, status int, message string, details any) {
	c.JSON(status, ErrorEnvelope{StatusCode: status, Message: message, Details: details})
}

// AbortError writes the error envelope and aborts the handler chain.
// Intended for middleware.
func AbortError(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, ErrorEnvelope{StatusCode: status, Message: message})
}
