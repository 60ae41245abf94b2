package auth

import (
	"context"
	"fmt"

	"edustack/internal/common"
	"edustack/internal/model"
	"edustack/internal/validation"
)

// UserStore is the slice of the repository the credential service needs.
type UserStore interface {
	GetUser(ctx context.Context, id int64) (*model.User, error)
	GetUserByUsername(ctx context.Context, username string) (*model.User, error)
	CreateUser(ctx context.Context, u model.User) (model.User, error)
}

// Service registers users and checks credentials.
type Service struct {
	users UserStore
}

func NewService(users UserStore) *Service {
	return &Service{users: users}
}

// Register creates a user with a hashed password. A taken username is a
// DuplicateError on the username field; the store's unique constraint
// catches the race between check and insert.
func (s *Service) Register(ctx context.Context, reg validation.Registration) (model.User, error) {
	existing, err := s.users.GetUserByUsername(ctx, reg.User.Username)
	if err != nil {
		return model.User{}, fmt.Errorf("register: %w", err)
	}
	if existing != nil {
		return model.User{}, &common.DuplicateError{Field: "username", Message: "Username already exists"}
	}

	hash, err := HashPassword(reg.Password)
	if err != nil {
		return model.User{}, err
	}
	u := reg.User
	u.PasswordHash = hash
	created, err := s.users.CreateUser(ctx, u)
	if err != nil {
		return model.User{}, fmt.Errorf("register: %w", err)
	}
	return created, nil
}

// Login returns the user whose credentials match, or ErrInvalidCredentials
// without saying which part was wrong.
func (s *Service) Login(ctx context.Context, creds validation.Credentials) (model.User, error) {
	u, err := s.users.GetUserByUsername(ctx, creds.Username)
	if err != nil {
		return model.User{}, fmt.Errorf("login: %w", err)
	}
	hash := ""
	if u != nil {
		hash = u.PasswordHash
	}
	if !CheckPassword(hash, creds.Password) || u == nil {
		return model.User{}, common.ErrInvalidCredentials
	}
	return *u, nil
}

// User loads the account behind an authenticated session. A session whose
// user was removed is reported as ErrUserNotFound.
func (s *Service) User(ctx context.Context, id int64) (model.User, error) {
	u, err := s.users.GetUser(ctx, id)
	if err != nil {
		return model.User{}, fmt.Errorf("load user %d: %w", id, err)
	}
	if u == nil {
		return model.User{}, fmt.Errorf("user %d: %w", id, common.ErrUserNotFound)
	}
	return *u, nil
}
