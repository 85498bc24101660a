package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os/signal"
	"strings"
	"syscall"
	"time"

	_ "github.com/joho/godotenv/autoload"
	"github.com/labstack/echo/v5"
	"github.com/labstack/echo/v5/middleware"

	"github.com/janisto/echo-greeter/internal/config"
	"github.com/janisto/echo-greeter/internal/http/routes"
	applog "github.com/janisto/echo-greeter/internal/platform/logging"
	appmiddleware "github.com/janisto/echo-greeter/internal/platform/middleware"
	"github.com/janisto/echo-greeter/internal/platform/respond"
	"github.com/janisto/echo-greeter/internal/view"
)

// Version can be overridden at build time: -ldflags "-X main.Version=1.2.3"
var Version = "dev"

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		applog.LogFatal(ctx, "config load failed", err)
	}
	if err := applog.SetLevel(cfg.LogLevel); err != nil {
		applog.LogFatal(ctx, "invalid log level", err)
	}
	if cfg.IsDevelopment() {
		applog.LogWarn(ctx, "running in development mode")
	}

	var viewOpts []view.Option
	if cfg.MinifyHTML {
		viewOpts = append(viewOpts, view.WithMinify())
	}
	views, err := view.New(view.Templates(), viewOpts...)
	if err != nil {
		applog.LogFatal(ctx, "template load failed", err)
	}
	applog.LogDebug(ctx, "templates loaded", slog.String("names", strings.Join(views.Names(), ",")))

	e := echo.New()
	e.HTTPErrorHandler = respond.NewHTTPErrorHandler()
	e.IPExtractor = echo.ExtractIPFromRealIPHeader()
	e.Logger = applog.Logger()

	e.Use(
		appmiddleware.Security(),
		appmiddleware.Vary(),
		appmiddleware.RequestID(),
		middleware.BodyLimit(64<<10),
		applog.RequestLogger(),
		applog.AccessLogger(),
		respond.Recoverer(),
	)

	routes.Register(e, views)

	applog.LogInfo(ctx, "server starting",
		slog.String("addr", config.Address),
		slog.String("environment", cfg.Environment),
		slog.Bool("minifyHTML", cfg.MinifyHTML),
		slog.String("version", Version))

	sc := echo.StartConfig{
		Address:         config.Address,
		GracefulTimeout: 10 * time.Second,
		BeforeServeFunc: func(s *http.Server) error {
			s.ReadTimeout = 5 * time.Second
			s.ReadHeaderTimeout = 2 * time.Second
			s.WriteTimeout = 10 * time.Second
			s.IdleTimeout = 60 * time.Second
			s.MaxHeaderBytes = 64 << 10
			return nil
		},
	}

	sigCtx, cancel := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := sc.Start(sigCtx, e); err != nil {
		log.Fatal(err)
	}

	applog.LogInfo(ctx, "server exited")
}
