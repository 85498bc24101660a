package greeter

import (
	"log/slog"
	"unicode/utf8"

	"github.com/labstack/echo/v5"

	applog "github.com/janisto/echo-greeter/internal/platform/logging"
	"github.com/janisto/echo-greeter/internal/platform/respond"
	"github.com/janisto/echo-greeter/internal/view"
)

// Register wires the prompt and greeting pages into the provided group.
func Register(g *echo.Group, views *view.Engine) {
	g.GET("/", handlePrompt(views))
	g.POST("/greet", handleGreet(views))
}

// handlePrompt renders the form asking for a name. Query strings and
// bodies are ignored.
func handlePrompt(views *view.Engine) echo.HandlerFunc {
	return func(c *echo.Context) error {
		return respond.HTML(c, views.Page(view.Prompt{}))
	}
}

// handleGreet renders a greeting for the submitted name. The name field must
// be present in the form body but may be empty.
func handleGreet(views *view.Engine) echo.HandlerFunc {
	return func(c *echo.Context) error {
		var form GreetForm
		if err := c.Bind(&form); err != nil {
			return err
		}
		req := c.Request()
		if err := req.ParseForm(); err != nil {
			return respond.Error400("malformed form body")
		}
		if !req.PostForm.Has("name") {
			return respond.Error400("name is required")
		}

		applog.LogInfo(req.Context(), "greet",
			slog.Int("nameLength", utf8.RuneCountInString(form.Name)))

		return respond.HTML(c, views.Page(view.Greet{Name: form.Name}))
	}
}
