package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/somtoval/foretrust-api/internal/db"
	"github.com/somtoval/foretrust-api/internal/handlers"
	"github.com/somtoval/foretrust-api/internal/logger"
	"github.com/somtoval/foretrust-api/internal/repository/postgres"
	"github.com/somtoval/foretrust-api/internal/service/auth"
	"github.com/somtoval/foretrust-api/internal/service/auth/tokenmanager"
	"github.com/somtoval/foretrust-api/internal/service/contact"
	"github.com/somtoval/foretrust-api/internal/service/news"
	"github.com/somtoval/foretrust-api/internal/storage"
)

type ServerApp struct {
	ListenAddr string
	Handler    http.Handler
}

func NewServerApp(ctx context.Context, c *Config) (*ServerApp, error) {
	// Initialize logger
	logger, err := logger.New(c.Environment, c.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("error while initializing logger: %w", err)
	}

	// Connect to the database and run migrations
	pool, err := db.ConnectAndMigrate(ctx, c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("error while connecting to db. Err: %w", err)
	}

	// Initialize repositories
	store := postgres.NewStorage(pool)

	// Object storage for article images
	images, err := storage.NewMinioStorage(c.Minio)
	if err != nil {
		return nil, fmt.Errorf("error while creating object storage. Err: %w", err)
	}
	if err := images.EnsureBucket(ctx); err != nil {
		return nil, fmt.Errorf("error while preparing bucket. Err: %w", err)
	}

	// Initialize services
	tokenManager, err := tokenmanager.New(tokenmanager.Config{
		AccessSecretKey:  c.AccessSecretKey,
		RefreshSecretKey: c.RefreshSecretKey,
	})
	if err != nil {
		return nil, fmt.Errorf("error while creating token manager. Err: %w", err)
	}

	authService, err := auth.NewService(auth.Config{}, tokenManager, store.User())
	if err != nil {
		return nil, fmt.Errorf("error while creating auth service. Err: %w", err)
	}
	newsService := news.NewService(store.News(), images)
	contactService := contact.NewService(store.Contact())

	mux := handlers.NewRouter(
		authService,
		newsService,
		contactService,
		logger,
	)

	return &ServerApp{
		ListenAddr: c.ListenAddr,
		Handler:    mux,
	}, nil
}

// Run starts http server and closes gracefully on context cancellation
func (s *ServerApp) Run(ctx context.Context) error {
	httpServer := &http.Server{
		Addr:    s.ListenAddr,
		Handler: s.Handler,
	}

	idleConnsClosed := make(chan struct{})
	srvCtx, srvCtxCancel := context.WithCancel(ctx)
	defer srvCtxCancel()

	go func() {
		<-srvCtx.Done()

		timeoutCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := httpServer.Shutdown(timeoutCtx); err == context.DeadlineExceeded {
			slog.Error("HTTP server shutdown timeout exceeded, forcing shutdown...")
		}
		slog.Info("HTTP server stopped")
		close(idleConnsClosed)
	}()

	// Listen and serve until context is cancelled; then close gracefully connections
	slog.Info("Starting server", "address", s.ListenAddr)
	err := httpServer.ListenAndServe()
	srvCtxCancel()
	<-idleConnsClosed

	return err
}
