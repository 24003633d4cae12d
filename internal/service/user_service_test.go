package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pranavkale/eventslots/internal/model"
	"github.com/pranavkale/eventslots/internal/repository"
)

type fakeUserStore struct {
	byEmail    map[string]model.User
	byUsername map[string]model.User
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{
		byEmail:    make(map[string]model.User),
		byUsername: make(map[string]model.User),
	}
}

func (f *fakeUserStore) Create(ctx context.Context, u *model.User) error {
	u.ID = "user-" + u.Username
	f.byEmail[u.Email] = *u
	f.byUsername[u.Username] = *u
	return nil
}

func (f *fakeUserStore) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	if u, ok := f.byEmail[email]; ok {
		return &u, nil
	}
	return nil, nil
}

func (f *fakeUserStore) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	if u, ok := f.byUsername[username]; ok {
		return &u, nil
	}
	return nil, nil
}

// plainHasher keeps passwords readable so tests can assert on them.
type plainHasher struct{}

func (plainHasher) Hash(password string) (string, error) { return "hash:" + password, nil }

func (plainHasher) Compare(hash, password string) error {
	if hash != "hash:"+password {
		return ErrInvalidCredentials
	}
	return nil
}

type staticTokens struct{}

func (staticTokens) Issue(userID, username string) (string, error) { return "token-" + userID, nil }

func validSignup() model.SignupRequest {
	return model.SignupRequest{
		Name:     "Jane Doe",
		Username: "janedoe",
		Email:    "jane@example.com",
		Password: "correct horse",
	}
}

func TestUserService_Signup(t *testing.T) {
	ctx := context.Background()

	t.Run("creates the account and issues a token", func(t *testing.T) {
		store := newFakeUserStore()
		svc := NewUserService(store, plainHasher{}, staticTokens{})

		resp, err := svc.Signup(ctx, validSignup())
		require.NoError(t, err)
		assert.Equal(t, "janedoe", resp.User.Username)
		assert.Equal(t, "token-user-janedoe", resp.Token)
		assert.Equal(t, "hash:correct horse", store.byEmail["jane@example.com"].PasswordHash)
	})

	t.Run("duplicate email", func(t *testing.T) {
		store := newFakeUserStore()
		svc := NewUserService(store, plainHasher{}, staticTokens{})
		_, err := svc.Signup(ctx, validSignup())
		require.NoError(t, err)

		req := validSignup()
		req.Username = "otheruser"
		_, err = svc.Signup(ctx, req)
		assert.ErrorIs(t, err, repository.ErrEmailTaken)
	})

	t.Run("duplicate username", func(t *testing.T) {
		store := newFakeUserStore()
		svc := NewUserService(store, plainHasher{}, staticTokens{})
		_, err := svc.Signup(ctx, validSignup())
		require.NoError(t, err)

		req := validSignup()
		req.Email = "other@example.com"
		_, err = svc.Signup(ctx, req)
		assert.ErrorIs(t, err, repository.ErrUsernameTaken)
	})

	t.Run("validation", func(t *testing.T) {
		store := newFakeUserStore()
		svc := NewUserService(store, plainHasher{}, staticTokens{})

		tests := []struct {
			name   string
			mutate func(*model.SignupRequest)
		}{
			{"short name", func(r *model.SignupRequest) { r.Name = "J" }},
			{"short username", func(r *model.SignupRequest) { r.Username = "jd" }},
			{"bad email", func(r *model.SignupRequest) { r.Email = "nope" }},
			{"short password", func(r *model.SignupRequest) { r.Password = "short" }},
		}
		for _, tc := range tests {
			t.Run(tc.name, func(t *testing.T) {
				req := validSignup()
				tc.mutate(&req)
				_, err := svc.Signup(ctx, req)
				assert.ErrorIs(t, err, ErrValidation)
			})
		}
	})
}

func TestUserService_Signin(t *testing.T) {
	ctx := context.Background()
	store := newFakeUserStore()
	svc := NewUserService(store, plainHasher{}, staticTokens{})
	_, err := svc.Signup(ctx, validSignup())
	require.NoError(t, err)

	t.Run("valid credentials", func(t *testing.T) {
		resp, err := svc.Signin(ctx, model.SigninRequest{Email: "Jane@Example.com", Password: "correct horse"})
		require.NoError(t, err)
		assert.Equal(t, "janedoe", resp.User.Username)
		assert.NotEmpty(t, resp.Token)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := svc.Signin(ctx, model.SigninRequest{Email: "jane@example.com", Password: "wrong"})
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("unknown email", func(t *testing.T) {
		_, err := svc.Signin(ctx, model.SigninRequest{Email: "nobody@example.com", Password: "correct horse"})
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})
}
