package respond

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v5"

	applog "github.com/janisto/echo-greeter/internal/platform/logging"
)

// Renderable produces an HTML document.
type Renderable interface {
	Render() (string, error)
}

// HTML renders r and writes it as a 200 text/html response. A render failure
// becomes a 500 plain-text response describing the error.
func HTML(c *echo.Context, r Renderable) error {
	body, err := r.Render()
	if err != nil {
		applog.LogError(c.Request().Context(), "template render failed", err,
			slog.String("path", c.Request().URL.Path))
		return c.String(http.StatusInternalServerError, "Failed to render template: "+err.Error())
	}
	return c.HTML(http.StatusOK, body)
}
