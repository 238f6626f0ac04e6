package services

import (
	"context"
	"errors"
	"fmt"
	"unicode"

	"go.uber.org/zap"

	"github.com/mycms/portfolio-backend/internal/common"
	"github.com/mycms/portfolio-backend/internal/repository"
	"github.com/mycms/portfolio-backend/model"
	"github.com/mycms/portfolio-backend/util"
)

// AccountService implements signup, login and profile updates.
//
// Credentials are compared as stored plaintext, matching the system
// this replaces. See DESIGN.md for the security note.
type AccountService struct {
	users  repository.Users
	logger *zap.SugaredLogger
}

// NewAccountService wires the service to the user repository.
func NewAccountService(users repository.Users, logger *zap.SugaredLogger) *AccountService {
	return &AccountService{users: users, logger: logger}
}

// validPassword enforces the signup password policy: at least 8
// characters with one lowercase letter, one uppercase letter and one
// digit. Symbols are allowed but not required.
func validPassword(password string) bool {
	if len(password) < 8 {
		return false
	}
	var hasLower, hasUpper, hasDigit bool
	for _, r := range password {
		switch {
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}
	return hasLower && hasUpper && hasDigit
}

// Signup registers a new account and returns its document key.
func (s *AccountService) Signup(ctx context.Context, username, password, realname, birthdate string) (string, error) {
	if util.IsEmpty(username) || util.IsEmpty(password) || util.IsEmpty(realname) || util.IsEmpty(birthdate) {
		return "", fmt.Errorf("all fields are required: %w", common.ErrValidation)
	}
	if !validPassword(password) {
		return "", fmt.Errorf("password must be at least 8 characters with upper, lower and digit: %w", common.ErrValidation)
	}

	// Pre-check for the common case; the unique index on username is
	// what closes the race when two signups arrive together.
	_, err := s.users.Find(ctx, username)
	if err == nil {
		return "", fmt.Errorf("username %s: %w", username, common.ErrConflict)
	}
	if !errors.Is(err, common.ErrNotFound) {
		return "", err
	}

	key, err := s.users.Create(ctx, model.NewUser(username, password, realname, birthdate))
	if err != nil {
		return "", err
	}

	s.logger.Infow("user registered", "username", username)
	return key, nil
}

// Login checks the credentials and returns the reduced user view. The
// failure is deliberately generic: callers cannot tell an unknown
// username from a wrong password.
func (s *AccountService) Login(ctx context.Context, username, password string) (*model.UserView, error) {
	if util.IsEmpty(username) || util.IsEmpty(password) {
		return nil, fmt.Errorf("username and password are required: %w", common.ErrValidation)
	}

	user, err := s.users.Find(ctx, username)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrUnauthorized
		}
		return nil, err
	}
	if user.Password != password {
		return nil, common.ErrUnauthorized
	}

	view := user.View()
	return &view, nil
}

// UpdateProfile applies a partial profile update. Empty patch fields
// leave the stored values unchanged.
func (s *AccountService) UpdateProfile(ctx context.Context, username string, patch model.UserPatch) (*model.User, error) {
	return s.users.Update(ctx, username, patch)
}
