package middleware

import (
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v5"
)

const (
	// HeaderXRequestID is the canonical request ID header name.
	HeaderXRequestID = "X-Request-ID"
	// ContextKeyRequestID is the echo.Context key holding the request ID.
	ContextKeyRequestID = "request_id"

	maxRequestIDLength = 128
)

// isValidRequestID accepts 1-128 printable ASCII characters so a client
// supplied ID cannot inject control characters into log lines.
func isValidRequestID(id string) bool {
	if id == "" || len(id) > maxRequestIDLength {
		return false
	}
	return strings.IndexFunc(id, func(r rune) bool {
		return r < 0x20 || r > 0x7E
	}) < 0
}

// RequestID returns Echo middleware that tags every request with an ID,
// reusing a valid incoming X-Request-ID or generating a UUIDv4.
func RequestID() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c *echo.Context) error {
			id := c.Request().Header.Get(HeaderXRequestID)
			if !isValidRequestID(id) {
				id = uuid.NewString()
			}
			c.Set(ContextKeyRequestID, id)
			c.Response().Header().Set(HeaderXRequestID, id)
			return next(c)
		}
	}
}
