package tokenmanager

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/somtoval/foretrust-api/internal/apperrors"
	"github.com/somtoval/foretrust-api/internal/models"
)

const (
	testAccessKey  = "test-access-secret-key"
	testRefreshKey = "test-refresh-secret-key"
)

func newTestManager(t *testing.T, accessTTL time.Duration, refreshTTL time.Duration) *TokenManager {
	t.Helper()

	m, err := New(Config{
		AccessSecretKey:  testAccessKey,
		RefreshSecretKey: testRefreshKey,
		AccessTTL:        accessTTL,
		RefreshTTL:       refreshTTL,
	})
	require.NoError(t, err, "token manager should be created without errors")

	return m
}

func Test_TokenManager(t *testing.T) {
	t.Parallel()

	testUser := models.User{Username: "testuser"}

	t.Run("new defaults", func(t *testing.T) {
		m, err := New(Config{AccessSecretKey: "access", RefreshSecretKey: "refresh"})
		require.NoError(t, err, "token manager should be created without errors")

		require.Equal(t, "access", m.accessKey, "access key should be set")
		require.Equal(t, "refresh", m.refreshKey, "refresh key should be set")
		require.Equal(t, defaultAccessTokenTTL, m.accessTTL, "default access token TTL should be set")
		require.Equal(t, defaultRefreshTokenTTL, m.refreshTTL, "default refresh token TTL")
		require.Equal(t, defaultSigningMethod, m.alg.Alg(), "default signing method should be set")
	})

	t.Run("new fails without keys", func(t *testing.T) {
		_, err := New(Config{AccessSecretKey: "access"})
		require.Error(t, err, "missing refresh key should be rejected")

		_, err = New(Config{RefreshSecretKey: "refresh"})
		require.Error(t, err, "missing access key should be rejected")
	})

	t.Run("new fails on equal keys", func(t *testing.T) {
		_, err := New(Config{AccessSecretKey: "same", RefreshSecretKey: "same"})
		require.Error(t, err, "same key for both token kinds should be rejected")
	})

	t.Run("GeneratePair", func(t *testing.T) {
		t.Run("return token pair", func(t *testing.T) {
			m := newTestManager(t, 15*time.Minute, 7*24*time.Hour)

			pair, err := m.GeneratePair(testUser)

			require.NoError(t, err)
			assert.NotEmpty(t, pair.Access.Value, "access token should not be empty")
			assert.WithinDuration(t, time.Now().Add(15*time.Minute), pair.Access.ExpiresAt, time.Second)
			assert.NotEmpty(t, pair.Refresh.Value, "refresh token should not be empty")
			assert.WithinDuration(t, time.Now().Add(7*24*time.Hour), pair.Refresh.ExpiresAt, time.Second)
		})

		t.Run("access claims", func(t *testing.T) {
			m := newTestManager(t, 15*time.Minute, 7*24*time.Hour)

			pair, err := m.GeneratePair(testUser)
			require.NoError(t, err)

			token, err := jwt.ParseWithClaims(pair.Access.Value, &Claims{}, func(token *jwt.Token) (any, error) {
				return []byte(testAccessKey), nil
			})
			require.NoError(t, err)
			require.True(t, token.Valid, "access token should be valid")

			claims, ok := token.Claims.(*Claims)
			require.True(t, ok, "claims should be of type Claims")
			assert.Equal(t, "testuser", claims.Subject, "subject should be the username")
			assert.Equal(t, TokenTypeAccess, claims.TokenType, "access token should carry the access type tag")
			assert.NotEmpty(t, claims.ID, "token has to has jti")
			assert.WithinDuration(t, time.Now(), claims.IssuedAt.Time, time.Second, "issued at should be close to now")
			assert.WithinDuration(t, pair.Access.ExpiresAt, claims.ExpiresAt.Time, 0, "access expires at should match token pair")
		})

		t.Run("refresh claims", func(t *testing.T) {
			m := newTestManager(t, 15*time.Minute, 7*24*time.Hour)

			pair, err := m.GeneratePair(testUser)
			require.NoError(t, err)

			token, err := jwt.ParseWithClaims(pair.Refresh.Value, &Claims{}, func(token *jwt.Token) (any, error) {
				return []byte(testRefreshKey), nil
			})
			require.NoError(t, err)
			require.True(t, token.Valid, "refresh token should be valid")

			claims := token.Claims.(*Claims)
			assert.Equal(t, "testuser", claims.Subject, "subject should be the username")
			assert.Equal(t, TokenTypeRefresh, claims.TokenType, "refresh token should carry the refresh type tag")
		})

		t.Run("generate different tokens", func(t *testing.T) {
			m := newTestManager(t, 15*time.Minute, 7*24*time.Hour)

			pair1, err := m.GeneratePair(testUser)
			require.NoError(t, err)

			pair2, err := m.GeneratePair(testUser)
			require.NoError(t, err)

			assert.NotEqual(t, pair1.Access.Value, pair2.Access.Value, "access tokens should be different")
			assert.NotEqual(t, pair1.Refresh.Value, pair2.Refresh.Value, "refresh tokens should be different")
		})
	})

	t.Run("ParseAccess", func(t *testing.T) {
		t.Run("valid token", func(t *testing.T) {
			m := newTestManager(t, 15*time.Minute, 7*24*time.Hour)

			pair, err := m.GeneratePair(testUser)
			require.NoError(t, err)

			subject, err := m.ParseAccess(pair.Access.Value)
			require.NoError(t, err)
			require.Equal(t, "testuser", subject)
		})

		t.Run("fail on wrong secret", func(t *testing.T) {
			m := newTestManager(t, 15*time.Minute, 7*24*time.Hour)
			other := newTestManager(t, 15*time.Minute, 7*24*time.Hour)
			other.accessKey = "completely-different-key"

			pair, err := other.GeneratePair(testUser)
			require.NoError(t, err)

			_, err = m.ParseAccess(pair.Access.Value)
			require.Error(t, err)
			require.ErrorIs(t, err, apperrors.ErrInvalidToken, "wrong secret should look like any other invalid token")
		})

		t.Run("fail on refresh token", func(t *testing.T) {
			// Refresh token is signed with another key, so even before the
			// type check the signature has to fail
			m := newTestManager(t, 15*time.Minute, 7*24*time.Hour)

			pair, err := m.GeneratePair(testUser)
			require.NoError(t, err)

			_, err = m.ParseAccess(pair.Refresh.Value)
			require.Error(t, err)
			require.ErrorIs(t, err, apperrors.ErrInvalidToken)
		})

		t.Run("fail on expired", func(t *testing.T) {
			m := newTestManager(t, -time.Minute, 7*24*time.Hour)

			pair, err := m.GeneratePair(testUser)
			require.NoError(t, err)

			_, err = m.ParseAccess(pair.Access.Value)
			require.Error(t, err)
			require.ErrorIs(t, err, apperrors.ErrInvalidToken, "expired token should be invalid even with the correct secret")
		})

		t.Run("fail on garbage", func(t *testing.T) {
			m := newTestManager(t, 15*time.Minute, 7*24*time.Hour)

			_, err := m.ParseAccess("not.a.token")
			require.Error(t, err)
			require.ErrorIs(t, err, apperrors.ErrInvalidToken)
		})

		t.Run("wrong type tag", func(t *testing.T) {
			// Sign a refresh-typed token with the ACCESS key: signature is
			// fine, the type tag alone has to reject it
			m := newTestManager(t, 15*time.Minute, 7*24*time.Hour)

			now := time.Now()
			raw, err := m.sign("testuser", TokenTypeRefresh, now, now.Add(time.Hour), m.accessKey)
			require.NoError(t, err)

			_, err = m.ParseAccess(raw)
			require.Error(t, err)
			require.ErrorIs(t, err, apperrors.ErrWrongTokenType, "valid signature with wrong type tag should fail the type check")
		})
	})

	t.Run("ParseRefresh", func(t *testing.T) {
		t.Run("valid token", func(t *testing.T) {
			m := newTestManager(t, 15*time.Minute, 7*24*time.Hour)

			pair, err := m.GeneratePair(testUser)
			require.NoError(t, err)

			subject, err := m.ParseRefresh(pair.Refresh.Value)
			require.NoError(t, err)
			require.Equal(t, "testuser", subject)
		})

		t.Run("fail on access token", func(t *testing.T) {
			m := newTestManager(t, 15*time.Minute, 7*24*time.Hour)

			pair, err := m.GeneratePair(testUser)
			require.NoError(t, err)

			_, err = m.ParseRefresh(pair.Access.Value)
			require.Error(t, err)
			require.ErrorIs(t, err, apperrors.ErrInvalidToken)
		})

		t.Run("wrong type tag", func(t *testing.T) {
			m := newTestManager(t, 15*time.Minute, 7*24*time.Hour)

			now := time.Now()
			raw, err := m.sign("testuser", TokenTypeAccess, now, now.Add(time.Hour), m.refreshKey)
			require.NoError(t, err)

			_, err = m.ParseRefresh(raw)
			require.Error(t, err)
			require.ErrorIs(t, err, apperrors.ErrWrongTokenType)
		})

		t.Run("fail on missing subject", func(t *testing.T) {
			m := newTestManager(t, 15*time.Minute, 7*24*time.Hour)

			now := time.Now()
			raw, err := m.sign("", TokenTypeRefresh, now, now.Add(time.Hour), m.refreshKey)
			require.NoError(t, err)

			_, err = m.ParseRefresh(raw)
			require.Error(t, err)
			require.ErrorIs(t, err, apperrors.ErrInvalidToken)
		})
	})
}
