package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// mock implementations
type mockStateRepo struct {
	values map[string]string
	putErr error
}

func newMockStateRepo() *mockStateRepo {
	return &mockStateRepo{values: map[string]string{}}
}

func (m *mockStateRepo) Get(ctx context.Context, key string) (string, bool, error) {
	v, ok := m.values[key]
	return v, ok, nil
}
func (m *mockStateRepo) Put(ctx context.Context, key, value string) error {
	if m.putErr != nil {
		return m.putErr
	}
	m.values[key] = value
	return nil
}
func (m *mockStateRepo) Delete(ctx context.Context, key string) error {
	delete(m.values, key)
	return nil
}
func (m *mockStateRepo) Clear(ctx context.Context) error {
	clear(m.values)
	return nil
}

func TestLogin_DemoCredential(t *testing.T) {
	ctx := context.Background()
	repo := newMockStateRepo()
	svc := NewAuthService(repo, "user@example.com", "", zap.NewNop())

	user, err := svc.Login(ctx, " USER@example.com ", "password")
	require.NoError(t, err)
	assert.Equal(t, "user@example.com", user.Email)
	assert.JSONEq(t, `{"email":"user@example.com"}`, repo.values[UserStateKey])

	current, err := svc.CurrentUser(ctx)
	require.NoError(t, err)
	assert.Equal(t, user, current)
}

func TestLogin_WrongPasswordPersistsNothing(t *testing.T) {
	ctx := context.Background()
	repo := newMockStateRepo()
	svc := NewAuthService(repo, "user@example.com", "", zap.NewNop())

	_, err := svc.Login(ctx, "user@example.com", "hunter2")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(ctx, "someone@else.com", "password")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(ctx, "", "")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	assert.Empty(t, repo.values)
}

func TestLogin_ConfiguredHash(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("needle&thread"), bcrypt.MinCost)
	require.NoError(t, err)

	svc := NewAuthService(newMockStateRepo(), "owner@shop.in", string(hash), zap.NewNop())

	_, err = svc.Login(context.Background(), "owner@shop.in", "password")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(context.Background(), "owner@shop.in", "needle&thread")
	assert.NoError(t, err)
}

func TestLogin_StoreFailure(t *testing.T) {
	repo := newMockStateRepo()
	repo.putErr = errors.New("disk full")
	svc := NewAuthService(repo, "user@example.com", "", zap.NewNop())

	_, err := svc.Login(context.Background(), "user@example.com", "password")
	assert.ErrorContains(t, err, "disk full")
}

func TestLogout(t *testing.T) {
	ctx := context.Background()
	svc := NewAuthService(newMockStateRepo(), "user@example.com", "", zap.NewNop())

	_, err := svc.Login(ctx, "user@example.com", "password")
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx))
	_, err = svc.CurrentUser(ctx)
	assert.ErrorIs(t, err, ErrNotLoggedIn)

	// logging out twice is fine
	assert.NoError(t, svc.Logout(ctx))
}

func TestCurrentUser_CorruptStateIsLoggedOut(t *testing.T) {
	for _, raw := range []string{"not json", `{"email":""}`} {
		repo := newMockStateRepo()
		repo.values[UserStateKey] = raw
		svc := NewAuthService(repo, "user@example.com", "", zap.NewNop())

		_, err := svc.CurrentUser(context.Background())
		assert.ErrorIs(t, err, ErrNotLoggedIn, raw)
	}
}
