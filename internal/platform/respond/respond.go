package respond

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/fxamacker/cbor/v2"
	"github.com/labstack/echo/v5"

	applog "github.com/janisto/echo-greeter/internal/platform/logging"
)

// writeProblem writes a Problem Details response honoring content negotiation.
// Uses application/problem+json (RFC 9457) by default and
// application/problem+cbor when the Accept header prefers CBOR.
func writeProblem(w http.ResponseWriter, r *http.Request, problem ProblemDetails) {
	ensureVary(w.Header(), "Accept")

	if prefersCBOR(r.Header.Get("Accept")) {
		w.Header().Set("Content-Type", "application/problem+cbor")
		w.WriteHeader(problem.Status)
		_ = cbor.NewEncoder(w).Encode(problem)
		return
	}

	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(problem.Status)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(problem)
}

// Recoverer returns Echo middleware that recovers from panics with Problem Details.
// Re-panics on http.ErrAbortHandler to preserve net/http abort semantics.
func Recoverer() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c *echo.Context) error {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if err, ok := rec.(error); ok && errors.Is(err, http.ErrAbortHandler) {
					panic(rec)
				}

				applog.LogError(c.Request().Context(), "panic recovered", fmt.Errorf("%v", rec),
					slog.String("stack", string(debug.Stack())))

				resp, unwrapErr := echo.UnwrapResponse(c.Response())
				if unwrapErr == nil && resp.Committed {
					return
				}
				problem := Error500("internal server error")
				problem.Instance = c.Request().URL.Path
				writeProblem(c.Response(), c.Request(), *problem)
			}()
			return next(c)
		}
	}
}

// NewHTTPErrorHandler returns an Echo HTTPErrorHandler that produces RFC 9457 Problem Details.
// Router misses keep their 404 and 405 status codes; binder failures surface as 400.
func NewHTTPErrorHandler() echo.HTTPErrorHandler {
	return func(c *echo.Context, err error) {
		resp, unwrapErr := echo.UnwrapResponse(c.Response())
		if unwrapErr == nil && resp.Committed {
			return
		}

		var (
			problem *ProblemDetails
			he      *echo.HTTPError
		)
		switch {
		case errors.As(err, &problem):
		case errors.Is(err, echo.ErrNotFound):
			problem = Error404("resource not found")
		case errors.Is(err, echo.ErrMethodNotAllowed):
			problem = Error405(fmt.Sprintf("method %s not allowed", c.Request().Method))
		case errors.As(err, &he):
			problem = NewError(he.Code, he.Message)
		default:
			applog.LogError(c.Request().Context(), "unhandled error", err)
			problem = Error500("internal server error")
		}

		out := *problem
		if out.Instance == "" {
			out.Instance = c.Request().URL.Path
		}
		writeProblem(c.Response(), c.Request(), out)
	}
}
