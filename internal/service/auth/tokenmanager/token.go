package tokenmanager

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/somtoval/foretrust-api/internal/apperrors"
	"github.com/somtoval/foretrust-api/internal/models"
)

const (
	defaultAccessTokenTTL  = 15 * time.Minute
	defaultRefreshTokenTTL = 7 * 24 * time.Hour
	defaultSigningMethod   = "HS256"
)

// Token type claim values
const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
)

type Claims struct {
	jwt.RegisteredClaims
	TokenType string `json:"type"`
}

// Token manager config with sensible defaults
type Config struct {
	// Secret keys to sign token payloads
	// Both required; must be different so a leaked refresh key can't forge
	// access tokens and vice versa
	AccessSecretKey  string
	RefreshSecretKey string

	// JWT MAC (Message Authentication Code) algorithm
	// If not set than default is used
	Alg string

	// Access and refresh token lifetimes
	// If not set than default is used
	AccessTTL  time.Duration
	RefreshTTL time.Duration
}

// TokenManager issues and validates self contained signed tokens.
// Tokens are stateless: nothing is stored server side and expiry is the
// only deactivation path.
type TokenManager struct {
	accessKey  string
	refreshKey string

	alg jwt.SigningMethod

	accessTTL  time.Duration
	refreshTTL time.Duration
}

func New(cfg Config) (*TokenManager, error) {
	if cfg.AccessSecretKey == "" || cfg.RefreshSecretKey == "" {
		return nil, errors.New("both access and refresh secret keys must not be empty")
	}
	if cfg.AccessSecretKey == cfg.RefreshSecretKey {
		return nil, errors.New("access and refresh secret keys must be different")
	}

	if cfg.Alg == "" {
		cfg.Alg = defaultSigningMethod
	}

	setDefaultDuration := func(field *time.Duration, def time.Duration) {
		if *field == 0 {
			*field = def
		}
	}
	setDefaultDuration(&cfg.AccessTTL, defaultAccessTokenTTL)
	setDefaultDuration(&cfg.RefreshTTL, defaultRefreshTokenTTL)

	return &TokenManager{
		accessKey:  cfg.AccessSecretKey,
		refreshKey: cfg.RefreshSecretKey,
		alg:        jwt.GetSigningMethod(cfg.Alg),
		accessTTL:  cfg.AccessTTL,
		refreshTTL: cfg.RefreshTTL,
	}, nil
}

// GeneratePair mints an access and a refresh token for the user.
// Both carry the username as subject; each is signed with its own key.
func (m *TokenManager) GeneratePair(user models.User) (models.TokenPair, error) {
	now := time.Now().Truncate(time.Second)
	accessExpiresAt := now.Add(m.accessTTL)
	refreshExpiresAt := now.Add(m.refreshTTL)

	access, err := m.sign(user.Username, TokenTypeAccess, now, accessExpiresAt, m.accessKey)
	if err != nil {
		return models.TokenPair{}, fmt.Errorf("error while signing access token. Err: %w", err)
	}

	refresh, err := m.sign(user.Username, TokenTypeRefresh, now, refreshExpiresAt, m.refreshKey)
	if err != nil {
		return models.TokenPair{}, fmt.Errorf("error while signing refresh token. Err: %w", err)
	}

	return models.TokenPair{
		Access:  models.IssuedToken{Value: access, ExpiresAt: accessExpiresAt},
		Refresh: models.IssuedToken{Value: refresh, ExpiresAt: refreshExpiresAt},
	}, nil
}

// ParseAccess validates token with the access key and returns its subject
func (m *TokenManager) ParseAccess(access string) (subject string, err error) {
	return m.parse(access, TokenTypeAccess, m.accessKey)
}

// ParseRefresh validates token with the refresh key and returns its subject
func (m *TokenManager) ParseRefresh(refresh string) (subject string, err error) {
	return m.parse(refresh, TokenTypeRefresh, m.refreshKey)
}

func (m *TokenManager) sign(subject string, tokenType string, issuedAt time.Time, expiresAt time.Time, key string) (string, error) {
	token := jwt.NewWithClaims(
		m.alg,
		Claims{
			RegisteredClaims: jwt.RegisteredClaims{
				ID:        uuid.NewString(),
				Subject:   subject,
				IssuedAt:  jwt.NewNumericDate(issuedAt),
				ExpiresAt: jwt.NewNumericDate(expiresAt),
			},
			TokenType: tokenType,
		},
	)

	return token.SignedString([]byte(key))
}

func (m *TokenManager) parse(raw string, wantType string, key string) (string, error) {
	claims := &Claims{}

	_, err := jwt.ParseWithClaims(
		raw,
		claims,
		func(t *jwt.Token) (any, error) { return []byte(key), nil },
		jwt.WithValidMethods([]string{m.alg.Alg()}),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return "", fmt.Errorf("error while parsing or validating token: %w", apperrors.ErrInvalidToken)
	}

	if claims.Subject == "" {
		return "", fmt.Errorf("token has no subject: %w", apperrors.ErrInvalidToken)
	}

	// Both token kinds share one encoding, so the type claim has to be
	// checked even after the signature verified fine
	if claims.TokenType != wantType {
		return "", fmt.Errorf("expected %q token: %w", wantType, apperrors.ErrWrongTokenType)
	}

	return claims.Subject, nil
}

// RefreshTTL returns configured refresh token lifetime
func (m *TokenManager) RefreshTTL() time.Duration {
	return m.refreshTTL
}
