package service

import (
	"context"
	"strings"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"github.com/taskhub/backend/internal/db"
	"github.com/taskhub/backend/internal/model"
)

type AuthStore interface {
	CreateUser(ctx context.Context, name, email, passwordHash string) (*model.User, error)
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
}

type AuthService struct {
	store  AuthStore
	tokens *TokenService
	log    *logrus.Logger
}

func NewAuthService(store AuthStore, tokens *TokenService, log *logrus.Logger) *AuthService {
	return &AuthService{store: store, tokens: tokens, log: log}
}

func (s *AuthService) Register(ctx context.Context, req model.RegisterRequest) (*model.RegisterResponse, error) {
	name := strings.TrimSpace(req.Name)
	email := NormalizeEmail(req.Email)
	password := req.Password

	if name == "" || email == "" || password == "" {
		return nil, ErrInvalidInput
	}

	// Existence check first for a friendly 409; the unique constraint below
	// is the actual guarantee when two registrations race.
	_, err := s.store.GetUserByEmail(ctx, email)
	if err == nil {
		return nil, ErrConflict
	}
	if !db.IsNoRows(err) {
		return nil, storeError(err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user, err := s.store.CreateUser(ctx, name, email, string(hash))
	if err != nil {
		if db.IsUniqueViolation(err) {
			return nil, ErrConflict
		}
		return nil, storeError(err)
	}

	payload := model.TokenPayload{ID: user.ID, Email: user.Email}
	accessToken, err := s.tokens.IssueAccessToken(payload)
	if err != nil {
		return nil, err
	}
	refreshToken, err := s.tokens.IssueRefreshToken(payload)
	if err != nil {
		return nil, err
	}

	s.log.WithField("email", user.Email).Info("user registered")

	return &model.RegisterResponse{
		User:         user.Public(),
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

func (s *AuthService) Login(ctx context.Context, req model.LoginRequest) (*model.TokenPairResponse, error) {
	email := NormalizeEmail(req.Email)
	password := req.Password

	if email == "" || password == "" {
		return nil, ErrInvalidInput
	}

	user, err := s.store.GetUserByEmail(ctx, email)
	if err != nil {
		if db.IsNoRows(err) {
			// Same failure as a wrong password so the endpoint does not
			// reveal which emails are registered.
			return nil, ErrInvalidCredentials
		}
		return nil, storeError(err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	payload := model.TokenPayload{ID: user.ID, Email: user.Email}
	accessToken, err := s.tokens.IssueAccessToken(payload)
	if err != nil {
		return nil, err
	}
	refreshToken, err := s.tokens.IssueRefreshToken(payload)
	if err != nil {
		return nil, err
	}

	return &model.TokenPairResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

// Refresh mints a new access token from a valid refresh token. The refresh
// token is not rotated, and expired and malformed tokens collapse into one
// signal: a refresh failure always means the client must re-authenticate.
func (s *AuthService) Refresh(req model.RefreshRequest) (*model.AccessTokenResponse, error) {
	if req.RefreshToken == "" {
		return nil, ErrInvalidInput
	}

	payload, err := s.tokens.VerifyRefreshToken(req.RefreshToken)
	if err != nil {
		return nil, ErrInvalidRefreshToken
	}

	accessToken, err := s.tokens.IssueAccessToken(*payload)
	if err != nil {
		return nil, err
	}

	return &model.AccessTokenResponse{AccessToken: accessToken}, nil
}

// NormalizeEmail is applied before every lookup or insert so that the stored
// unique key is always trimmed and lowercased.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
