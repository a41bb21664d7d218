package apperr

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Error is an application error that carries the HTTP status it should be
// reported with.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// New creates a new Error.
func New(code int, message string, err error) *Error {
	return &Error{Code: code, Message: message, Err: err}
}

// Common error instances.
var (
	ErrBadRequest     = New(http.StatusBadRequest, "Bad request", nil)
	ErrUnauthorized   = New(http.StatusUnauthorized, "Unauthorized", nil)
	ErrNotFound       = New(http.StatusNotFound, "Not found", nil)
	ErrInternalServer = New(http.StatusInternalServerError, "Internal server error", nil)
	ErrUpstreamDown   = New(http.StatusServiceUnavailable, "Upstream unavailable", nil)
)

// Middleware converts errors attached to the gin context into a JSON
// response. Unknown error types are reported as a 500 without leaking the
// underlying message.
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}
		err := c.Errors.Last().Err
		appErr, ok := err.(*Error)
		if !ok {
			appErr = New(http.StatusInternalServerError, "Internal server error", err)
		}
		c.JSON(appErr.Code, gin.H{"code": appErr.Code, "message": appErr.Message})
		c.Abort()
	}
}
