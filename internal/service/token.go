package service

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/taskhub/backend/internal/config"
	"github.com/taskhub/backend/internal/model"
)

var (
	ErrTokenExpired = errors.New("token expired")
	ErrTokenInvalid = errors.New("token invalid")
)

type tokenClaims struct {
	UserID int64  `json:"id"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

// TokenService signs and verifies access and refresh tokens. The two token
// kinds use distinct HMAC secrets, so a leaked refresh token cannot be
// replayed as an access token or vice versa.
type TokenService struct {
	accessSecret  []byte
	refreshSecret []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration
}

func NewTokenService(cfg config.AuthConfig) (*TokenService, error) {
	if cfg.AccessSecret == "" {
		return nil, fmt.Errorf("%w: JWT_SECRET is required", ErrMisconfigured)
	}
	if cfg.RefreshSecret == "" {
		return nil, fmt.Errorf("%w: REFRESH_SECRET is required", ErrMisconfigured)
	}

	accessTTL, err := parseExpiry(cfg.AccessTTL)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid ACCESS_TOKEN_EXPIRES_IN", ErrMisconfigured)
	}

	refreshTTL, err := parseExpiry(cfg.RefreshTTL)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid REFRESH_TOKEN_EXPIRES_IN", ErrMisconfigured)
	}

	return &TokenService{
		accessSecret:  []byte(cfg.AccessSecret),
		refreshSecret: []byte(cfg.RefreshSecret),
		accessTTL:     accessTTL,
		refreshTTL:    refreshTTL,
	}, nil
}

func (s *TokenService) IssueAccessToken(payload model.TokenPayload) (string, error) {
	return sign(payload, s.accessSecret, s.accessTTL)
}

func (s *TokenService) IssueRefreshToken(payload model.TokenPayload) (string, error) {
	return sign(payload, s.refreshSecret, s.refreshTTL)
}

func (s *TokenService) VerifyAccessToken(tokenStr string) (*model.TokenPayload, error) {
	return verify(tokenStr, s.accessSecret)
}

func (s *TokenService) VerifyRefreshToken(tokenStr string) (*model.TokenPayload, error) {
	return verify(tokenStr, s.refreshSecret)
}

func (s *TokenService) AccessTTL() time.Duration {
	return s.accessTTL
}

func sign(payload model.TokenPayload, secret []byte, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := tokenClaims{
		UserID: payload.ID,
		Email:  payload.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

func verify(tokenStr string, secret []byte) (*model.TokenPayload, error) {
	claims := &tokenClaims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrTokenInvalid
		}
		return secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}
	if !token.Valid || claims.UserID == 0 {
		return nil, ErrTokenInvalid
	}

	return &model.TokenPayload{
		ID:    claims.UserID,
		Email: claims.Email,
	}, nil
}

// parseExpiry reads a Go duration string and additionally accepts a day
// suffix ("7d"), which time.ParseDuration does not understand.
func parseExpiry(value string) (time.Duration, error) {
	value = strings.TrimSpace(value)
	if days, ok := strings.CutSuffix(value, "d"); ok {
		n, err := strconv.Atoi(days)
		if err != nil || n < 0 {
			return 0, fmt.Errorf("invalid day duration %q", value)
		}
		return time.Duration(n) * 24 * time.Hour, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil || d < 0 {
		return 0, fmt.Errorf("invalid duration %q", value)
	}
	return d, nil
}
