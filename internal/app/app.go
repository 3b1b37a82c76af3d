package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"qualifaize-web/internal/apiclient"
	"qualifaize-web/internal/config"
	"qualifaize-web/internal/handler"
	"qualifaize-web/internal/interview"
	"qualifaize-web/internal/middleware"
	"qualifaize-web/internal/router"
	"qualifaize-web/internal/session"
	"qualifaize-web/internal/view"
)

type App struct {
	server       *http.Server
	cleanupFuncs []func()
}

func New() (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	store := session.NewStore(cfg.SessionCookieName, cfg.SessionTTL)
	client := apiclient.New(cfg, store)

	userService := apiclient.NewUserService(client)
	documentService := apiclient.NewDocumentService(client)
	interviewService := apiclient.NewInterviewService(client)

	views, err := view.New()
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	authManager := session.NewManager(userService)
	runner := interview.NewRunner(interviewService)
	sessionMiddleware := middleware.NewSessionMiddleware(store)

	appRouter := router.New(cfg, sessionMiddleware, router.Handlers{
		Auth:      handler.NewAuthHandler(authManager, userService, views),
		Dashboard: handler.NewDashboardHandler(views),
		Account:   handler.NewAccountHandler(userService, views),
		Interview: handler.NewInterviewHandler(interviewService, documentService, userService, runner, views),
		History:   handler.NewHistoryHandler(interviewService, views),
		Document:  handler.NewDocumentHandler(documentService, views, cfg.MaxUploadSize),
		User:      handler.NewUserHandler(userService, views),
		Error:     handler.NewErrorHandler(views),
	})

	sweepCtx, sweepCancel := context.WithCancel(context.Background())
	go store.StartSweeper(sweepCtx, time.Minute)

	server := &http.Server{
		Addr:         ":" + cfg.ServerPort,
		Handler:      appRouter,
		ReadTimeout:  cfg.ServerReadTimeout,
		WriteTimeout: cfg.ServerWriteTimeout,
		IdleTimeout:  cfg.ServerIdleTimeout,
	}

	slog.Info("frontend configured", "backend", cfg.BackendBaseURL, "base_path", cfg.BackendBasePath)

	return &App{
		server: server,
		cleanupFuncs: []func(){
			sweepCancel,
		},
	}, nil
}

func (a *App) Run() error {
	go func() {
		slog.Info("server starting", "addr", a.server.Addr)
		if serveErr := a.server.ListenAndServe(); serveErr != nil && !errors.Is(serveErr, http.ErrServerClosed) {
			slog.Error("server failed", "error", serveErr)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	for _, cleanup := range a.cleanupFuncs {
		cleanup()
	}

	if err := a.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}

	slog.Info("server stopped")
	return nil
}
