package logging

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v5"
)

// RequestLogger returns Echo middleware that enriches the request context
// with an slog logger carrying the request ID and W3C trace metadata.
// It expects the request ID middleware to have run first. The logger already
// in the context (the process-wide one by default) is used as the base.
func RequestLogger() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c *echo.Context) error {
			header := c.Request().Header.Get(traceparentHeader)
			reqID, _ := c.Get("request_id").(string)

			ctx := c.Request().Context()
			ctx = contextWithLogger(ctx, loggerWithTrace(LoggerFromContext(ctx), header, reqID))
			c.SetRequest(c.Request().WithContext(ctx))

			return next(c)
		}
	}
}

// AccessLogger returns Echo middleware that logs a structured summary of
// every request once the handler returns. Server errors log at error level,
// client errors at warning level.
func AccessLogger() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c *echo.Context) error {
			start := time.Now()

			err := next(c)

			status, size := 0, int64(0)
			if resp, unwrapErr := echo.UnwrapResponse(c.Response()); unwrapErr == nil {
				status = resp.Status
				size = resp.Size
				if !resp.Committed && err != nil {
					status = statusFromError(err)
				}
			}

			lvl := slog.LevelInfo
			switch {
			case status >= http.StatusInternalServerError:
				lvl = slog.LevelError
			case status >= http.StatusBadRequest:
				lvl = slog.LevelWarn
			}

			ctx := c.Request().Context()
			LoggerFromContext(ctx).LogAttrs(ctx, lvl, "request completed",
				slog.String("method", c.Request().Method),
				slog.String("path", c.Request().URL.Path),
				slog.Int("status", status),
				slog.Int64("bytes", size),
				slog.Duration("duration", time.Since(start)),
			)

			return err
		}
	}
}

// statusFromError returns the status the error handler will most likely
// write for err.
func statusFromError(err error) int {
	var sc interface{ StatusCode() int }
	if errors.As(err, &sc) {
		return sc.StatusCode()
	}
	return http.StatusInternalServerError
}
