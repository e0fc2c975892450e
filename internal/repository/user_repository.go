package repository

import (
	"database/sql"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"international-payments/internal/domain"
	"international-payments/internal/errors"
)

type userRepository struct {
	db     SQLExecutor
	logger *slog.Logger
}

func NewUserRepository(db SQLExecutor, logger *slog.Logger) domain.UserRepository {
	return &userRepository{
		db:     db,
		logger: logger,
	}
}

func (r *userRepository) CreateUser(user *domain.User) error {
	query := `
		INSERT INTO users (id, username, full_name, password_hash, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	now := time.Now()
	_, err := r.db.Exec(
		query,
		user.ID,
		user.Username,
		user.FullName,
		user.PasswordHash,
		now,
	)

	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			if pqErr.Code == "23505" { // unique_violation on username
				r.logger.Warn("Duplicate user registration attempt", "username", user.Username)
				return errors.ErrDuplicateUser
			}
		}
		r.logger.Error("Failed to create user", "username", user.Username, "error", err)
		return errors.NewAppError(errors.InternalError, "failed to create user").WithDetails(err.Error())
	}

	user.CreatedAt = now
	r.logger.Info("User created", "user_id", user.ID, "username", user.Username)
	return nil
}

func (r *userRepository) UserByID(id uuid.UUID) (*domain.User, error) {
	query := `
		SELECT id, username, full_name, password_hash, created_at
		FROM users WHERE id = $1
	`

	return r.scanUser(query, id)
}

func (r *userRepository) UserByUsername(username string) (*domain.User, error) {
	query := `
		SELECT id, username, full_name, password_hash, created_at
		FROM users WHERE username = $1
	`

	return r.scanUser(query, username)
}

func (r *userRepository) scanUser(query string, arg interface{}) (*domain.User, error) {
	var user domain.User

	err := r.db.QueryRow(query, arg).Scan(
		&user.ID,
		&user.Username,
		&user.FullName,
		&user.PasswordHash,
		&user.CreatedAt,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, errors.ErrUserNotFound
		}
		r.logger.Error("Failed to read user", "error", err)
		return nil, errors.NewAppError(errors.InternalError, "failed to read user").WithDetails(err.Error())
	}

	return &user, nil
}
