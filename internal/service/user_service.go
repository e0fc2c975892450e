package service

import (
	"log/slog"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"international-payments/internal/auth"
	"international-payments/internal/domain"
	"international-payments/internal/errors"
)

type UserService struct {
	store  domain.Store
	tokens *auth.Manager
	logger *slog.Logger
}

func NewUserService(store domain.Store, tokens *auth.Manager, logger *slog.Logger) *UserService {
	return &UserService{
		store:  store,
		tokens: tokens,
		logger: logger,
	}
}

// Register creates the user and provisions their zero-balance account in one
// unit of work, then returns a signed token for the new identity.
func (s *UserService) Register(username, fullName, password string) (string, error) {
	if username == "" || password == "" {
		return "", errors.NewAppError(errors.InvalidInput, "username and password are required")
	}

	passwordHash, err := auth.HashPassword(password)
	if err != nil {
		s.logger.Error("Failed to hash password", "username", username, "error", err)
		return "", errors.NewAppError(errors.InternalError, "failed to register user")
	}

	user := &domain.User{
		ID:           uuid.New(),
		Username:     username,
		FullName:     fullName,
		PasswordHash: passwordHash,
	}

	err = s.store.WithinTransaction(func(store domain.Store) error {
		if err := store.Users().CreateUser(user); err != nil {
			return err
		}

		account := &domain.Account{
			ID:      uuid.New(),
			UserID:  user.ID,
			Balance: decimal.Zero,
		}
		return store.Accounts().CreateAccount(account)
	})
	if err != nil {
		return "", err
	}

	s.logger.Info("User registered", "user_id", user.ID, "username", username)
	return s.tokens.Issue(user.ID)
}

// Login checks the password against the stored hash and returns a signed
// token. Unknown users and bad passwords get the same answer.
func (s *UserService) Login(username, password string) (string, error) {
	user, err := s.store.Users().UserByUsername(username)
	if err != nil {
		if appErr, ok := err.(*errors.AppError); ok && appErr.Code == errors.UserNotFound {
			s.logger.Warn("Login attempt for unknown user", "username", username)
			return "", errors.NewAppError(errors.Unauthorized, "incorrect username or password")
		}
		return "", err
	}

	if !auth.CheckPassword(user.PasswordHash, password) {
		s.logger.Warn("Login attempt with incorrect password", "username", username)
		return "", errors.NewAppError(errors.Unauthorized, "incorrect username or password")
	}

	return s.tokens.Issue(user.ID)
}
