package service

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskhub/backend/internal/config"
	"github.com/taskhub/backend/internal/model"
)

func testAuthConfig() config.AuthConfig {
	return config.AuthConfig{
		AccessSecret:  "access-secret",
		RefreshSecret: "refresh-secret",
		AccessTTL:     "15m",
		RefreshTTL:    "7d",
	}
}

func newTestTokenService(t *testing.T) *TokenService {
	t.Helper()
	svc, err := NewTokenService(testAuthConfig())
	require.NoError(t, err)
	return svc
}

// signExpired produces a token whose expiry is already in the past.
func signExpired(t *testing.T, secret string, payload model.TokenPayload) string {
	t.Helper()
	claims := tokenClaims{
		UserID: payload.ID,
		Email:  payload.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-2 * time.Hour)),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func TestAccessTokenRoundTrip(t *testing.T) {
	svc := newTestTokenService(t)
	payload := model.TokenPayload{ID: 42, Email: "a@x.com"}

	token, err := svc.IssueAccessToken(payload)
	require.NoError(t, err)

	decoded, err := svc.VerifyAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, payload.ID, decoded.ID)
	assert.Equal(t, payload.Email, decoded.Email)
}

func TestAccessTokenFailsRefreshVerification(t *testing.T) {
	svc := newTestTokenService(t)

	token, err := svc.IssueAccessToken(model.TokenPayload{ID: 1, Email: "a@x.com"})
	require.NoError(t, err)

	_, err = svc.VerifyRefreshToken(token)
	assert.ErrorIs(t, err, ErrTokenInvalid)

	refresh, err := svc.IssueRefreshToken(model.TokenPayload{ID: 1, Email: "a@x.com"})
	require.NoError(t, err)

	_, err = svc.VerifyAccessToken(refresh)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestExpiredAccessTokenIsDistinctFromInvalid(t *testing.T) {
	svc := newTestTokenService(t)

	expired := signExpired(t, "access-secret", model.TokenPayload{ID: 1, Email: "a@x.com"})
	_, err := svc.VerifyAccessToken(expired)
	assert.ErrorIs(t, err, ErrTokenExpired)

	_, err = svc.VerifyAccessToken("not.a.token")
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestTokenWithZeroIDIsInvalid(t *testing.T) {
	svc := newTestTokenService(t)

	token, err := svc.IssueAccessToken(model.TokenPayload{ID: 0, Email: "a@x.com"})
	require.NoError(t, err)

	_, err = svc.VerifyAccessToken(token)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestNewTokenServiceValidation(t *testing.T) {
	cfg := testAuthConfig()
	cfg.AccessSecret = ""
	_, err := NewTokenService(cfg)
	assert.ErrorIs(t, err, ErrMisconfigured)

	cfg = testAuthConfig()
	cfg.RefreshSecret = ""
	_, err = NewTokenService(cfg)
	assert.ErrorIs(t, err, ErrMisconfigured)

	cfg = testAuthConfig()
	cfg.RefreshTTL = "soon"
	_, err = NewTokenService(cfg)
	assert.ErrorIs(t, err, ErrMisconfigured)
}

func TestParseExpiryDaySuffix(t *testing.T) {
	cfg := testAuthConfig()
	cfg.AccessTTL = "2d"
	svc, err := NewTokenService(cfg)
	require.NoError(t, err)
	assert.Equal(t, 48*time.Hour, svc.AccessTTL())

	d, err := parseExpiry("7d")
	require.NoError(t, err)
	assert.Equal(t, 7*24*time.Hour, d)

	_, err = parseExpiry("-1d")
	assert.Error(t, err)
}
