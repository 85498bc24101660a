package middleware

import "github.com/labstack/echo/v5"

// Vary returns Echo middleware that adds Accept to the Vary header.
// Error responses are negotiated between JSON and CBOR on Accept, so caches
// must key on it.
func Vary() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c *echo.Context) error {
			c.Response().Header().Add("Vary", "Accept")
			return next(c)
		}
	}
}
