package handlers

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/somtoval/foretrust-api/internal/handlers/middleware"
	"github.com/somtoval/foretrust-api/internal/logger"
	"github.com/somtoval/foretrust-api/internal/models"
	"github.com/somtoval/foretrust-api/internal/repository"
	"github.com/somtoval/foretrust-api/internal/service/news"
)

// chain applies middlewares in the given order: m1(m2(...(h)))
func chain(h http.Handler, mds ...func(next http.Handler) http.Handler) http.Handler {
	for i := len(mds) - 1; i >= 0; i-- {
		h = mds[i](h)
	}
	return h
}

func NewRouter(
	authService authService,
	newsService newsService,
	contactService contactService,
	logger logger.Logger,
) http.Handler {
	authMiddleware := middleware.AuthMiddleware(authService)
	adminMiddleware := middleware.AdminMiddleware()

	withAuth := func(h http.Handler) http.Handler {
		return authMiddleware(h)
	}
	withAdmin := func(h http.Handler) http.Handler {
		return authMiddleware(adminMiddleware(h))
	}

	api := http.NewServeMux()

	api.Handle("POST /auth/login", handleLogin(authService, logger))
	api.Handle("POST /auth/refresh", handleRefresh(authService, logger))
	api.Handle("GET /auth/me", withAuth(handleMe()))
	api.Handle("POST /auth/password", withAuth(handleChangePassword(authService, logger)))

	api.Handle("GET /news", handleListNews(newsService, logger))
	api.Handle("GET /news/{id}", handleGetNews(newsService, logger))
	api.Handle("POST /news", withAdmin(handleCreateNews(newsService, logger)))
	api.Handle("PUT /news/{id}", withAdmin(handleUpdateNews(newsService, logger)))
	api.Handle("DELETE /news/{id}", withAdmin(handleDeleteNews(newsService, logger)))

	api.Handle("POST /contact", handleCreateContact(contactService, logger))
	api.Handle("GET /contact", withAdmin(handleListContacts(contactService, logger)))
	api.Handle("GET /contact/{id}", withAdmin(handleGetContact(contactService, logger)))
	api.Handle("DELETE /contact/{id}", withAdmin(handleDeleteContact(contactService, logger)))

	root := http.NewServeMux()
	root.Handle("/api/", http.StripPrefix("/api", api))

	handler := chain(root,
		middleware.LoggerMiddleware(logger),
	)

	return handler
}

type authService interface {
	// Login user with username and password
	// Has to return apperrors.ErrAuthFailed on any credential mismatch
	Login(ctx context.Context, username string, password string) (models.TokenPair, error)

	// Exchange a valid refresh token for a completely new pair
	Refresh(ctx context.Context, refresh string) (models.TokenPair, error)

	// Re-verify the old password then persist the new digest
	ChangePassword(ctx context.Context, user models.User, oldPassword string, newPassword string) error

	// Get request and return user if it authenticated or error
	UserFromRequest(ctx context.Context, r *http.Request) (models.User, error)
}

type newsService interface {
	Create(ctx context.Context, title string, content string, author string, image *news.Image) (models.News, error)
	Get(ctx context.Context, id uuid.UUID) (models.News, error)
	List(ctx context.Context) ([]models.News, error)
	Update(ctx context.Context, id uuid.UUID, arg repository.UpdateNewsParams, image *news.Image) (models.News, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type contactService interface {
	Create(ctx context.Context, arg repository.CreateContactParams) (models.Contact, error)
	Get(ctx context.Context, id uuid.UUID) (models.Contact, error)
	List(ctx context.Context) ([]models.Contact, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
