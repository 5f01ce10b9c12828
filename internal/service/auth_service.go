package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/andy/boutiquebill/internal/domain"
	"github.com/andy/boutiquebill/internal/repository"
)

// UserStateKey is the store key holding the logged-in user
const UserStateKey = "boutique-bill-user"

// DemoPassword is accepted when no password hash is configured
const DemoPassword = "password"

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrNotLoggedIn        = errors.New("not logged in")
)

// AuthService checks the shop's single credential and remembers who is logged in
type AuthService interface {
	// Login verifies the credentials and persists the user
	Login(ctx context.Context, email, password string) (*domain.User, error)

	// Logout forgets the persisted user
	Logout(ctx context.Context) error

	// CurrentUser returns the persisted user or ErrNotLoggedIn
	CurrentUser(ctx context.Context) (*domain.User, error)
}

type authService struct {
	state        repository.StateRepository
	email        string
	passwordHash string
	logger       *zap.Logger

	demoOnce sync.Once
	demoHash []byte
	demoErr  error
}

// NewAuthService creates an auth service for the configured credential.
// An empty passwordHash accepts DemoPassword.
func NewAuthService(state repository.StateRepository, email, passwordHash string, logger *zap.Logger) AuthService {
	return &authService{
		state:        state,
		email:        email,
		passwordHash: passwordHash,
		logger:       logger,
	}
}

func (s *authService) Login(ctx context.Context, email, password string) (*domain.User, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, ErrInvalidCredentials
	}

	if !strings.EqualFold(email, s.email) {
		s.logger.Info("login rejected", zap.String("email", email), zap.String("reason", "unknown email"))
		return nil, ErrInvalidCredentials
	}

	hash, err := s.hash()
	if err != nil {
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword(hash, []byte(password)); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			s.logger.Info("login rejected", zap.String("email", email), zap.String("reason", "wrong password"))
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to check password: %w", err)
	}

	user := &domain.User{Email: s.email}
	data, err := json.Marshal(user)
	if err != nil {
		return nil, fmt.Errorf("failed to encode user: %w", err)
	}
	if err := s.state.Put(ctx, UserStateKey, string(data)); err != nil {
		return nil, err
	}

	s.logger.Info("logged in", zap.String("email", user.Email))
	return user, nil
}

func (s *authService) Logout(ctx context.Context) error {
	if err := s.state.Delete(ctx, UserStateKey); err != nil {
		return err
	}
	s.logger.Info("logged out")
	return nil
}

func (s *authService) CurrentUser(ctx context.Context) (*domain.User, error) {
	raw, ok, err := s.state.Get(ctx, UserStateKey)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrNotLoggedIn
	}

	user := &domain.User{}
	if err := json.Unmarshal([]byte(raw), user); err != nil {
		s.logger.Warn("ignoring unreadable user state", zap.Error(err))
		return nil, ErrNotLoggedIn
	}
	if err := user.Validate(); err != nil {
		s.logger.Warn("ignoring invalid user state", zap.Error(err))
		return nil, ErrNotLoggedIn
	}

	return user, nil
}

// hash returns the configured bcrypt hash, or a hash of DemoPassword
// generated on first use.
func (s *authService) hash() ([]byte, error) {
	if s.passwordHash != "" {
		return []byte(s.passwordHash), nil
	}

	s.demoOnce.Do(func() {
		s.demoHash, s.demoErr = bcrypt.GenerateFromPassword([]byte(DemoPassword), bcrypt.DefaultCost)
	})
	if s.demoErr != nil {
		return nil, fmt.Errorf("failed to hash demo password: %w", s.demoErr)
	}
	return s.demoHash, nil
}
