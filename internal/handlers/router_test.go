package handlers

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/somtoval/foretrust-api/internal/apperrors"
	"github.com/somtoval/foretrust-api/internal/logger"
	"github.com/somtoval/foretrust-api/internal/models"
	"github.com/somtoval/foretrust-api/internal/repository"
	"github.com/somtoval/foretrust-api/internal/service/news"
)

// Stub services with pluggable behavior per test.
// Methods without a configured func fail loudly so a test can't pass by accident.

type stubAuthService struct {
	loginFn           func(ctx context.Context, username string, password string) (models.TokenPair, error)
	refreshFn         func(ctx context.Context, refresh string) (models.TokenPair, error)
	changePasswordFn  func(ctx context.Context, user models.User, oldPassword string, newPassword string) error
	userFromRequestFn func(ctx context.Context, r *http.Request) (models.User, error)
}

func (s *stubAuthService) Login(ctx context.Context, username string, password string) (models.TokenPair, error) {
	if s.loginFn == nil {
		return models.TokenPair{}, errors.New("loginFn is not set")
	}
	return s.loginFn(ctx, username, password)
}

func (s *stubAuthService) Refresh(ctx context.Context, refresh string) (models.TokenPair, error) {
	if s.refreshFn == nil {
		return models.TokenPair{}, errors.New("refreshFn is not set")
	}
	return s.refreshFn(ctx, refresh)
}

func (s *stubAuthService) ChangePassword(ctx context.Context, user models.User, oldPassword string, newPassword string) error {
	if s.changePasswordFn == nil {
		return errors.New("changePasswordFn is not set")
	}
	return s.changePasswordFn(ctx, user, oldPassword, newPassword)
}

func (s *stubAuthService) UserFromRequest(ctx context.Context, r *http.Request) (models.User, error) {
	if s.userFromRequestFn == nil {
		return models.User{}, apperrors.ErrAuthFailed
	}
	return s.userFromRequestFn(ctx, r)
}

type stubNewsService struct {
	createFn func(ctx context.Context, title string, content string, author string, image *news.Image) (models.News, error)
	getFn    func(ctx context.Context, id uuid.UUID) (models.News, error)
	listFn   func(ctx context.Context) ([]models.News, error)
	updateFn func(ctx context.Context, id uuid.UUID, arg repository.UpdateNewsParams, image *news.Image) (models.News, error)
	deleteFn func(ctx context.Context, id uuid.UUID) error
}

func (s *stubNewsService) Create(ctx context.Context, title string, content string, author string, image *news.Image) (models.News, error) {
	return s.createFn(ctx, title, content, author, image)
}

func (s *stubNewsService) Get(ctx context.Context, id uuid.UUID) (models.News, error) {
	return s.getFn(ctx, id)
}

func (s *stubNewsService) List(ctx context.Context) ([]models.News, error) {
	return s.listFn(ctx)
}

func (s *stubNewsService) Update(ctx context.Context, id uuid.UUID, arg repository.UpdateNewsParams, image *news.Image) (models.News, error) {
	return s.updateFn(ctx, id, arg, image)
}

func (s *stubNewsService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.deleteFn(ctx, id)
}

type stubContactService struct {
	createFn func(ctx context.Context, arg repository.CreateContactParams) (models.Contact, error)
	getFn    func(ctx context.Context, id uuid.UUID) (models.Contact, error)
	listFn   func(ctx context.Context) ([]models.Contact, error)
	deleteFn func(ctx context.Context, id uuid.UUID) error
}

func (s *stubContactService) Create(ctx context.Context, arg repository.CreateContactParams) (models.Contact, error) {
	return s.createFn(ctx, arg)
}

func (s *stubContactService) Get(ctx context.Context, id uuid.UUID) (models.Contact, error) {
	return s.getFn(ctx, id)
}

func (s *stubContactService) List(ctx context.Context) ([]models.Contact, error) {
	return s.listFn(ctx)
}

func (s *stubContactService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.deleteFn(ctx, id)
}

// resolveByToken makes UserFromRequest return the user mapped to the bearer token
func resolveByToken(users map[string]models.User) func(ctx context.Context, r *http.Request) (models.User, error) {
	return func(ctx context.Context, r *http.Request) (models.User, error) {
		token := r.Header.Get("Authorization")
		user, ok := users["Bearer "+token]
		if !ok {
			user, ok = users[token]
		}
		if !ok {
			return models.User{}, apperrors.ErrAuthFailed
		}
		return user, nil
	}
}

type testRouter struct {
	auth    *stubAuthService
	news    *stubNewsService
	contact *stubContactService
	handler http.Handler
}

func newTestRouter(t *testing.T) *testRouter {
	t.Helper()

	tr := &testRouter{
		auth:    &stubAuthService{},
		news:    &stubNewsService{},
		contact: &stubContactService{},
	}
	tr.handler = NewRouter(tr.auth, tr.news, tr.contact, logger.NewNoOpLogger())

	return tr
}

func (tr *testRouter) do(t *testing.T, method string, target string, body io.Reader, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	r := httptest.NewRequest(method, target, body)
	for k, v := range headers {
		r.Header.Set(k, v)
	}

	w := httptest.NewRecorder()
	tr.handler.ServeHTTP(w, r)
	return w
}

func Test_Routing(t *testing.T) {
	t.Parallel()

	t.Run("unknown path is 404", func(t *testing.T) {
		tr := newTestRouter(t)

		w := tr.do(t, "GET", "/api/definitely-not-a-route", nil, nil)

		require.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("wrong method is 405", func(t *testing.T) {
		tr := newTestRouter(t)

		w := tr.do(t, "DELETE", "/api/auth/login", nil, nil)

		require.Equal(t, http.StatusMethodNotAllowed, w.Code)
	})
}
