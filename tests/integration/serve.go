package integration

import (
	"bytes"
	"context"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/stretchr/testify/require"

	"github.com/somtoval/foretrust-api/internal/handlers"
	"github.com/somtoval/foretrust-api/internal/logger"
	"github.com/somtoval/foretrust-api/internal/models"
	"github.com/somtoval/foretrust-api/internal/repository"
	"github.com/somtoval/foretrust-api/internal/repository/postgres"
	"github.com/somtoval/foretrust-api/internal/service/auth"
	"github.com/somtoval/foretrust-api/internal/service/auth/tokenmanager"
	"github.com/somtoval/foretrust-api/internal/service/contact"
	"github.com/somtoval/foretrust-api/internal/service/news"
	"github.com/somtoval/foretrust-api/internal/testutil"
)

type Services struct {
	AuthService    *auth.AuthService
	NewsService    *news.NewsService
	ContactService *contact.ContactService
	UserRepo       repository.UserRepo
}

// In-memory stand-in for the image bucket, no minio required
type memObjectStorage struct {
	objects map[string][]byte
}

func (m *memObjectStorage) EnsureBucket(ctx context.Context) error { return nil }

func (m *memObjectStorage) Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	m.objects[key] = data
	return nil
}

func (m *memObjectStorage) Get(ctx context.Context, key string) (io.ReadCloser, error) {
	return io.NopCloser(bytes.NewReader(m.objects[key])), nil
}

func (m *memObjectStorage) Delete(ctx context.Context, key string) error {
	delete(m.objects, key)
	return nil
}

func (m *memObjectStorage) URL(key string) string {
	return "http://files.local/foretrust-uploads/" + key
}

// Create db transaction and run server with that connection (one connection cause one transaction)
// The transaction is rolled back when the test stops, so the db stays clean
func RunTx(dbpool *pgxpool.Pool, t *testing.T, fn func(srvURL string, s Services)) {
	testutil.WithTx(dbpool, t, func(tx pgx.Tx) {
		// Initialize repositories
		userRepo := &postgres.UserRepo{DB: tx}
		newsRepo := &postgres.NewsRepo{DB: tx}
		contactRepo := &postgres.ContactRepo{DB: tx}

		// Initialize services
		tokenManager, err := tokenmanager.New(tokenmanager.Config{
			AccessSecretKey:  "test-access-secret",
			RefreshSecretKey: "test-refresh-secret",
		})
		require.NoError(t, err, "token manager should be created without errors")

		as, err := auth.NewService(auth.Config{}, tokenManager, userRepo)
		require.NoError(t, err, "auth service starting error", err)

		ns := news.NewService(newsRepo, &memObjectStorage{objects: map[string][]byte{}})
		cs := contact.NewService(contactRepo)

		// Complete all together as router
		router := handlers.NewRouter(as, ns, cs, logger.NewNoOpLogger())

		// Run http server with the router in transaction
		srv := httptest.NewServer(router)
		defer srv.Close()

		fn(srv.URL, Services{
			AuthService:    as,
			NewsService:    ns,
			ContactService: cs,
			UserRepo:       userRepo,
		})
	})
}

// CreateUser stores a user with really hashed password
func CreateUser(t *testing.T, userRepo repository.UserRepo, username string, password string, isAdmin bool) models.User {
	t.Helper()

	hash, err := auth.BcryptHasher{}.Hash(password)
	require.NoError(t, err)

	user, err := userRepo.CreateUser(t.Context(), repository.CreateUserParams{
		Username:       username,
		Email:          username + "@example.com",
		HashedPassword: hash,
		IsActive:       true,
		IsAdmin:        isAdmin,
	})
	require.NoError(t, err)

	return user
}
