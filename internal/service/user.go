package service

import (
	"context"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/taskhub/backend/internal/db"
	"github.com/taskhub/backend/internal/model"
)

type UserStore interface {
	CreateUser(ctx context.Context, name, email, passwordHash string) (*model.User, error)
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
	GetUserByID(ctx context.Context, userID int64) (*model.User, error)
	ListUsers(ctx context.Context) ([]model.User, error)
	UpdateUser(ctx context.Context, userID int64, name, email, passwordHash *string) (*model.User, error)
	DeleteUser(ctx context.Context, userID int64) (*model.User, error)
}

type UserService struct {
	store UserStore
}

func NewUserService(store UserStore) *UserService {
	return &UserService{store: store}
}

func (s *UserService) List(ctx context.Context) ([]model.UserResponse, error) {
	users, err := s.store.ListUsers(ctx)
	if err != nil {
		return nil, storeError(err)
	}

	res := make([]model.UserResponse, 0, len(users))
	for i := range users {
		res = append(res, users[i].Public())
	}
	return res, nil
}

func (s *UserService) Get(ctx context.Context, userID int64) (*model.UserResponse, error) {
	user, err := s.store.GetUserByID(ctx, userID)
	if err != nil {
		if db.IsNoRows(err) {
			return nil, ErrNotFound
		}
		return nil, storeError(err)
	}
	res := user.Public()
	return &res, nil
}

func (s *UserService) Create(ctx context.Context, req model.CreateUserRequest) (*model.UserResponse, error) {
	name := strings.TrimSpace(req.Name)
	email := NormalizeEmail(req.Email)
	password := req.Password

	if name == "" || email == "" || password == "" {
		return nil, ErrInvalidInput
	}

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

	res := user.Public()
	return &res, nil
}

func (s *UserService) Update(ctx context.Context, userID int64, req model.UpdateUserRequest) (*model.UserResponse, error) {
	var name, email, passwordHash *string

	if req.Name != nil {
		trimmed := strings.TrimSpace(*req.Name)
		if trimmed == "" {
			return nil, ErrInvalidInput
		}
		name = &trimmed
	}
	if req.Email != nil {
		normalized := NormalizeEmail(*req.Email)
		if normalized == "" {
			return nil, ErrInvalidInput
		}
		email = &normalized
	}
	if req.Password != nil {
		if *req.Password == "" {
			return nil, ErrInvalidInput
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		hashed := string(hash)
		passwordHash = &hashed
	}

	user, err := s.store.UpdateUser(ctx, userID, name, email, passwordHash)
	if err != nil {
		if db.IsNoRows(err) {
			return nil, ErrNotFound
		}
		if db.IsUniqueViolation(err) {
			return nil, ErrConflict
		}
		return nil, storeError(err)
	}

	res := user.Public()
	return &res, nil
}

func (s *UserService) Delete(ctx context.Context, userID int64) (*model.UserResponse, error) {
	user, err := s.store.DeleteUser(ctx, userID)
	if err != nil {
		if db.IsNoRows(err) {
			return nil, ErrNotFound
		}
		return nil, storeError(err)
	}

	res := user.Public()
	return &res, nil
}
