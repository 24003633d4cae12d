package service

import (
	"context"
	"errors"
	"strings"

	"github.com/pranavkale/eventslots/internal/model"
	"github.com/pranavkale/eventslots/internal/repository"
)

// ErrInvalidCredentials is returned on signin with an unknown email or a
// wrong password. Deliberately indistinguishable between the two cases.
var ErrInvalidCredentials = errors.New("invalid email or password")

// UserStore persists organizer accounts.
type UserStore interface {
	Create(ctx context.Context, u *model.User) error
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	GetByUsername(ctx context.Context, username string) (*model.User, error)
}

// PasswordHasher hashes and verifies passwords.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) error
}

// TokenIssuer signs access tokens for authenticated organizers.
type TokenIssuer interface {
	Issue(userID, username string) (string, error)
}

// UserService handles organizer signup and signin.
type UserService struct {
	users  UserStore
	hasher PasswordHasher
	tokens TokenIssuer
}

// NewUserService constructs a UserService with its dependencies.
func NewUserService(users UserStore, hasher PasswordHasher, tokens TokenIssuer) *UserService {
	return &UserService{users: users, hasher: hasher, tokens: tokens}
}

// Signup creates an organizer account and returns it with a fresh token.
func (s *UserService) Signup(ctx context.Context, req model.SignupRequest) (*model.AuthResponse, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.Username = strings.TrimSpace(req.Username)
	req.Email = normalizeEmail(req.Email)

	if len(req.Name) < 2 || len(req.Name) > 50 {
		return nil, invalid("name must be between 2 and 50 characters")
	}
	if len(req.Username) < 3 || len(req.Username) > 30 {
		return nil, invalid("username must be between 3 and 30 characters")
	}
	if err := checkEmail(req.Email); err != nil {
		return nil, err
	}
	if len(req.Password) < 8 {
		return nil, invalid("password must be at least 8 characters")
	}

	// Fail fast with a precise error; the unique constraints on email and
	// username remain the ground truth under concurrency.
	if existing, err := s.users.GetByEmail(ctx, req.Email); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, repository.ErrEmailTaken
	}
	if existing, err := s.users.GetByUsername(ctx, req.Username); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, repository.ErrUsernameTaken
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, err
	}

	user := model.User{
		Name:         req.Name,
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: hash,
	}
	if err := s.users.Create(ctx, &user); err != nil {
		return nil, err
	}

	token, err := s.tokens.Issue(user.ID, user.Username)
	if err != nil {
		return nil, err
	}
	return &model.AuthResponse{User: user, Token: token}, nil
}

// Signin verifies credentials and returns the user with a fresh token.
func (s *UserService) Signin(ctx context.Context, req model.SigninRequest) (*model.AuthResponse, error) {
	req.Email = normalizeEmail(req.Email)
	if err := checkEmail(req.Email); err != nil {
		return nil, err
	}
	if req.Password == "" {
		return nil, invalid("password is required")
	}

	user, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}
	if err := s.hasher.Compare(user.PasswordHash, req.Password); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.ID, user.Username)
	if err != nil {
		return nil, err
	}
	return &model.AuthResponse{User: *user, Token: token}, nil
}
