package http

import (
	"github.com/gin-gonic/gin"
)

// APIError is the body of every error response
type APIError struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

// ErrorEnvelope wraps APIError as {"error": {...}}
type ErrorEnvelope struct {
	Error APIError `json:"error"`
}

// RespondError writes the error envelope with the given status and code
func RespondError(c *gin.Context, status int, code string, err error) {
	msg := "unknown error"
	if err != nil {
		msg = err.Error()
	}
	c.JSON(status, ErrorEnvelope{
		Error: APIError{
			Message: msg,
			Code:    code,
		},
	})
}
