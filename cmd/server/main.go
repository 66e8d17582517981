package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net"
	"net/http"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/enrichman/httpgrace"

	"github.com/bazaarhq/adminapi/internal/api/route"
	appctx "github.com/bazaarhq/adminapi/internal/app"
	"github.com/bazaarhq/adminapi/internal/backend"
	"github.com/bazaarhq/adminapi/internal/config"
	"github.com/bazaarhq/adminapi/internal/logger"
	"github.com/bazaarhq/adminapi/internal/mockdb"
	"github.com/bazaarhq/adminapi/internal/notify"
	"github.com/bazaarhq/adminapi/internal/repository"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.WithComponent("main").Fatalf("configuration error: %v", err)
	}

	// Set log level from configuration
	logLevel, err := logrus.ParseLevel(cfg.Misc.LogLevel)
	if err != nil {
		logger.WithComponent("main").Warnf("invalid log level '%s', using 'info': %v", cfg.Misc.LogLevel, err)
		logLevel = logrus.InfoLevel
	}
	logger.Logger.SetLevel(logLevel)
	logger.WithComponent("main").Debugf("log level set to: %s", logLevel.String())
	logger.WithComponent("main").Infof("Backend mode: %s", cfg.Backend.Mode)
	logger.WithComponent("main").Infof("App will run on port: %d", cfg.Server.Port)

	center := notify.New(cfg.Notify.FeedLimit)

	app, err := buildApp(cfg, center)
	if err != nil {
		logger.WithComponent("main").Fatalf("cannot init app: %v", err)
	}
	defer app.Shutdown()

	if err := app.StartWatchers(); err != nil {
		logger.WithComponent("main").Fatalf("cannot start watchers: %v", err)
	}

	gin.SetMode(cfg.Misc.GinMode)
	gin.DefaultWriter = logger.Logger.Writer()
	gin.DefaultErrorWriter = logger.Logger.Writer()

	r := route.SetupRoutes(app, logger.Logger)
	srv := createGraceHttpServer(app.BaseCtx, "admin-api", app.Config.Server, r)

	if err := srv.ListenAndServe(fmt.Sprintf(":%d", cfg.Server.Port)); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.WithComponent("main").Fatal(err)
	}
}

// buildApp wires the backend client per the configured mode. Mock mode loads
// the catalog file into an in-memory store and serves from it; http mode
// proxies to the real marketplace backend.
func buildApp(cfg *config.Config, center *notify.Center) (*appctx.App, error) {
	if cfg.Backend.Mode == "http" {
		client, err := backend.NewHTTPClient(cfg.Backend.BaseURL, cfg.Backend.APIToken, cfg.Backend.Timeout)
		if err != nil {
			return nil, err
		}
		return appctx.New(cfg, client, center)
	}

	repo, err := repository.NewJSONRepository(cfg.Data.FilePath)
	if err != nil {
		return nil, err
	}

	doc, err := repo.Load(context.Background())
	if err != nil {
		return nil, err
	}

	store := mockdb.NewStore(*doc)
	client, err := backend.NewMockClient(store)
	if err != nil {
		return nil, err
	}

	app, err := appctx.New(cfg, client, center)
	if err != nil {
		return nil, err
	}
	app.Repo = repo
	app.Store = store
	return app, nil
}

func createGraceHttpServer(ctx context.Context, name string, serverConfig config.ServerConfig, r *gin.Engine) *httpgrace.Server {
	slogLogger := slog.New(slog.NewTextHandler(logger.Logger.Writer(), nil))

	srv := httpgrace.NewServer(r,
		httpgrace.WithTimeout(serverConfig.ShutDownTimeout),
		httpgrace.WithSignals(syscall.SIGTERM, syscall.SIGINT),
		httpgrace.WithLogger(slogLogger),
		httpgrace.WithBeforeShutdown(func() {
			logger.WithComponent("http").Infof("Shutting down %s server....", name)
		}),
		httpgrace.WithServerOptions(
			httpgrace.WithReadTimeout(serverConfig.ReadTimeout),
			httpgrace.WithWriteTimeout(serverConfig.WriteTimeout),
			httpgrace.WithIdleTimeout(serverConfig.IdleTimeout),
			func(srv *http.Server) {
				srv.BaseContext = func(_ net.Listener) context.Context {
					return ctx
				}
			},
			func(srv *http.Server) {
				srv.ErrorLog = log.New(logger.Logger.Writer(), fmt.Sprintf("[%s] ", name), log.LstdFlags)
			},
		),
	)
	return srv
}
