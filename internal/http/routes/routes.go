package routes

import (
	"github.com/labstack/echo/v5"

	"github.com/janisto/echo-greeter/internal/http/greeter"
	"github.com/janisto/echo-greeter/internal/view"
)

// Register wires all routes into the root group of e.
func Register(e *echo.Echo, views *view.Engine) {
	greeter.Register(e.Group(""), views)
}
