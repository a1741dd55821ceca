// Package auth implements username/password accounts with server-side
// sessions.
package auth

import (
	"context"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"recruiterpro/internal/common/errors"
	"recruiterpro/internal/common/logger"
	"recruiterpro/internal/models"
	"recruiterpro/internal/storage"
	"recruiterpro/internal/wallet"
)

const (
	minUsernameLen = 3
	minPasswordLen = 6
)

// Service handles registration, login and session lifecycle.
type Service struct {
	store        storage.Store
	sessions     *SessionStore
	wallet       *wallet.Service
	welcomeBonus int
	logger       logger.Logger
}

// NewService creates the auth service. welcomeBonus is credited to every new
// account.
func NewService(store storage.Store, sessions *SessionStore, w *wallet.Service, welcomeBonus int, log logger.Logger) *Service {
	return &Service{
		store:        store,
		sessions:     sessions,
		wallet:       w,
		welcomeBonus: welcomeBonus,
		logger:       log.WithFields(map[string]interface{}{"component": "auth"}),
	}
}

// Register creates an account, credits the welcome bonus, stores default
// settings and opens a session.
func (s *Service) Register(ctx context.Context, username, password string) (*models.User, *models.Session, error) {
	username = strings.TrimSpace(username)
	if len(username) < minUsernameLen {
		return nil, nil, errors.NewValidationError("username must be at least 3 characters")
	}
	if len(password) < minPasswordLen {
		return nil, nil, errors.NewValidationError("password must be at least 6 characters")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, nil, errors.NewInternalError(err)
	}

	user, err := s.store.CreateUser(ctx, username, string(hash), 0)
	if err != nil {
		return nil, nil, err
	}

	if s.welcomeBonus > 0 {
		_, balance, err := s.wallet.Credit(ctx, user.ID, s.welcomeBonus, "Welcome bonus")
		if err != nil {
			s.logger.Error("welcome bonus credit failed", map[string]interface{}{
				"userId": user.ID,
				"error":  err.Error(),
			})
		} else {
			user.CoinBalance = balance
		}
	}

	if err := s.store.SaveSettings(ctx, models.DefaultSettings(user.ID)); err != nil {
		s.logger.Error("default settings save failed", map[string]interface{}{
			"userId": user.ID,
			"error":  err.Error(),
		})
	}

	session, err := s.sessions.Create(ctx, user.ID)
	if err != nil {
		return nil, nil, err
	}

	s.logger.Info("user registered", map[string]interface{}{
		"userId":   user.ID,
		"username": user.Username,
	})
	return user, session, nil
}

// Login verifies credentials and opens a session.
func (s *Service) Login(ctx context.Context, username, password string) (*models.User, *models.Session, error) {
	user, err := s.store.GetUserByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		return nil, nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, nil, errors.NewInvalidCredentialsError()
	}

	session, err := s.sessions.Create(ctx, user.ID)
	if err != nil {
		return nil, nil, err
	}

	s.logger.Info("user logged in", map[string]interface{}{"userId": user.ID})
	return user, session, nil
}

// Logout drops the session.
func (s *Service) Logout(ctx context.Context, token string) error {
	return s.sessions.Delete(ctx, token)
}

// CurrentUser resolves a session token to its user.
func (s *Service) CurrentUser(ctx context.Context, token string) (*models.User, error) {
	userID, err := s.sessions.Resolve(ctx, token)
	if err != nil {
		return nil, err
	}
	return s.store.GetUserByID(ctx, userID)
}

// Sessions exposes the session store for middleware.
func (s *Service) Sessions() *SessionStore {
	return s.sessions
}
