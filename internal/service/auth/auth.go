package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/somtoval/foretrust-api/internal/apperrors"
	"github.com/somtoval/foretrust-api/internal/models"
	"github.com/somtoval/foretrust-api/internal/repository"
	"github.com/somtoval/foretrust-api/internal/service/auth/tokenmanager"
)

const (
	defaultAccessHeaderName = "Authorization"
	defaultAccessAuthScheme = "Bearer"
)

// Interface to create or compare user password hashes
type PasswordHasher interface {
	// Generate Hash from password
	Hash(password string) (string, error)

	// Compare known hashedPassword and user provided password
	// Must be protected against timing attacks
	Compare(hashedPassword string, password string) error
}

type Config struct {
	// Hasher to use during login or password change
	// BcryptHasher is used if not set
	Hasher PasswordHasher
}

// Auth service
// Stateless except the password digest written by ChangePassword
type AuthService struct {
	// Manager to issue and validate token pairs (access and refresh)
	token *tokenmanager.TokenManager

	// hasher to hash or compare user passwords
	hasher PasswordHasher

	// Repository to access long term data
	userRepo repository.UserRepo

	accessHeaderName string
	accessAuthScheme string
}

func NewService(cfg Config, token *tokenmanager.TokenManager, userRepo repository.UserRepo) (*AuthService, error) {
	hasher := cfg.Hasher
	if hasher == nil {
		hasher = BcryptHasher{}
	}

	if token == nil || userRepo == nil {
		return nil, errors.New("token manager and user repo must not be nil")
	}

	return &AuthService{
		token:            token,
		hasher:           hasher,
		userRepo:         userRepo,
		accessHeaderName: defaultAccessHeaderName,
		accessAuthScheme: defaultAccessAuthScheme,
	}, nil
}

// Authenticate verifies username and password against the stored digest.
// Unknown user, wrong password and corrupt digest all collapse into
// ErrAuthFailed so callers can't enumerate accounts.
func (s *AuthService) Authenticate(ctx context.Context, username string, password string) (models.User, error) {
	user, err := s.userRepo.GetUserByUsername(ctx, username)
	if err != nil {
		return models.User{}, apperrors.ErrAuthFailed
	}

	if err := s.hasher.Compare(user.HashedPassword, password); err != nil {
		return models.User{}, apperrors.ErrAuthFailed
	}

	return user, nil
}

// IssuePair mints a fresh access and refresh token pair for the user
func (s *AuthService) IssuePair(user models.User) (models.TokenPair, error) {
	pair, err := s.token.GeneratePair(user)
	if err != nil {
		return models.TokenPair{}, fmt.Errorf("token could not be generated, sorry. %w", err)
	}

	return pair, nil
}

// Login is Authenticate followed by IssuePair
func (s *AuthService) Login(ctx context.Context, username string, password string) (models.TokenPair, error) {
	user, err := s.Authenticate(ctx, username, password)
	if err != nil {
		return models.TokenPair{}, err
	}

	return s.IssuePair(user)
}

// ResolveAccess validates the access token and resolves its subject to the
// current user record. The record is the source of truth: a user deleted or
// deactivated after the token was issued fails resolution immediately.
func (s *AuthService) ResolveAccess(ctx context.Context, access string) (models.User, error) {
	username, err := s.token.ParseAccess(access)
	if err != nil {
		return models.User{}, err
	}

	return s.resolveSubject(ctx, username)
}

// Refresh validates the refresh token and issues a completely new pair
func (s *AuthService) Refresh(ctx context.Context, refresh string) (models.TokenPair, error) {
	username, err := s.token.ParseRefresh(refresh)
	if err != nil {
		return models.TokenPair{}, err
	}

	user, err := s.resolveSubject(ctx, username)
	if err != nil {
		return models.TokenPair{}, err
	}

	return s.IssuePair(user)
}

// ChangePassword re-verifies the old password before persisting the new
// digest. Exactly one write happens and only on success; a failed check
// leaves the stored digest untouched.
func (s *AuthService) ChangePassword(ctx context.Context, user models.User, oldPassword string, newPassword string) error {
	if err := s.hasher.Compare(user.HashedPassword, oldPassword); err != nil {
		return apperrors.ErrAuthFailed
	}

	hash, err := s.hasher.Hash(newPassword)
	if err != nil {
		return fmt.Errorf("can't use this as password, error=%w", err)
	}

	if err := s.userRepo.UpdatePassword(ctx, user.ID, hash); err != nil {
		return fmt.Errorf("error while saving new password. Err: %w", err)
	}

	return nil
}

// UserFromRequest reads the bearer token from the request and resolves the user
func (s *AuthService) UserFromRequest(ctx context.Context, r *http.Request) (models.User, error) {
	access, err := s.readBearerToken(r)
	if err != nil {
		return models.User{}, err
	}

	return s.ResolveAccess(ctx, access)
}

func (s *AuthService) resolveSubject(ctx context.Context, username string) (models.User, error) {
	user, err := s.userRepo.GetUserByUsername(ctx, username)
	if err != nil || !user.IsActive {
		return models.User{}, apperrors.ErrAuthFailed
	}

	return user, nil
}

func (s *AuthService) readBearerToken(r *http.Request) (string, error) {
	header := r.Header.Get(s.accessHeaderName)

	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, s.accessAuthScheme) || token == "" {
		return "", fmt.Errorf("no bearer token in request: %w", apperrors.ErrInvalidToken)
	}

	return token, nil
}
