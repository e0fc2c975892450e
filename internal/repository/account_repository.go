package repository

import (
	"database/sql"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"

	"international-payments/internal/domain"
	"international-payments/internal/errors"
)

type accountRepository struct {
	db     SQLExecutor
	logger *slog.Logger
}

func NewAccountRepository(db SQLExecutor, logger *slog.Logger) domain.AccountRepository {
	return &accountRepository{
		db:     db,
		logger: logger,
	}
}

func (r *accountRepository) CreateAccount(account *domain.Account) error {
	query := `
		INSERT INTO accounts (id, user_id, balance, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	now := time.Now()
	_, err := r.db.Exec(
		query,
		account.ID,
		account.UserID,
		account.Balance.String(),
		now,
		now,
	)

	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			if pqErr.Code == "23505" { // unique_violation on user_id
				r.logger.Warn("Duplicate account creation attempt", "user_id", account.UserID)
				return errors.NewAppError(errors.InternalError, "account already exists for user")
			}
		}
		r.logger.Error("Failed to create account", "user_id", account.UserID, "error", err)
		return errors.NewAppError(errors.InternalError, "failed to create account").WithDetails(err.Error())
	}

	account.CreatedAt = now
	account.UpdatedAt = now
	r.logger.Info("Account created", "account_id", account.ID, "user_id", account.UserID)
	return nil
}

func (r *accountRepository) AccountByUserID(userID uuid.UUID) (*domain.Account, error) {
	query := `
		SELECT id, user_id, balance, created_at, updated_at
		FROM accounts WHERE user_id = $1
	`

	return r.scanAccount(r.db.QueryRow(query, userID), userID)
}

func (r *accountRepository) Debit(userID uuid.UUID, amount decimal.Decimal) (*domain.Account, error) {
	// Check-then-act as one conditional update: the WHERE clause guarantees
	// the balance can never go below zero, even under concurrent debits.
	query := `
		UPDATE accounts
		SET balance = balance - $1, updated_at = $2
		WHERE user_id = $3 AND balance >= $1
		RETURNING id, user_id, balance, created_at, updated_at
	`

	account, err := r.scanAccount(r.db.QueryRow(query, amount.String(), time.Now(), userID), userID)
	if err != nil {
		if appErr, ok := err.(*errors.AppError); ok && appErr.Code == errors.AccountNotFound {
			// No row matched: either the account is missing or the balance
			// was insufficient. Look it up to tell the two apart.
			if _, lookupErr := r.AccountByUserID(userID); lookupErr == nil {
				r.logger.Warn("Debit rejected, insufficient balance", "user_id", userID, "amount", amount)
				return nil, errors.ErrInsufficientFunds
			}
			return nil, errors.ErrAccountNotFound
		}
		return nil, err
	}

	r.logger.Info("Account debited", "user_id", userID, "amount", amount, "new_balance", account.Balance)
	return account, nil
}

func (r *accountRepository) Credit(userID uuid.UUID, amount decimal.Decimal) (*domain.Account, error) {
	query := `
		UPDATE accounts
		SET balance = balance + $1, updated_at = $2
		WHERE user_id = $3
		RETURNING id, user_id, balance, created_at, updated_at
	`

	account, err := r.scanAccount(r.db.QueryRow(query, amount.String(), time.Now(), userID), userID)
	if err != nil {
		return nil, err
	}

	r.logger.Info("Account credited", "user_id", userID, "amount", amount, "new_balance", account.Balance)
	return account, nil
}

func (r *accountRepository) scanAccount(row *sql.Row, userID uuid.UUID) (*domain.Account, error) {
	var account domain.Account
	var balanceStr string

	err := row.Scan(
		&account.ID,
		&account.UserID,
		&balanceStr,
		&account.CreatedAt,
		&account.UpdatedAt,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, errors.ErrAccountNotFound
		}
		r.logger.Error("Failed to read account", "user_id", userID, "error", err)
		return nil, errors.NewAppError(errors.InternalError, "failed to read account").WithDetails(err.Error())
	}

	balance, err := decimal.NewFromString(balanceStr)
	if err != nil {
		r.logger.Error("Failed to parse balance", "user_id", userID, "balance_str", balanceStr, "error", err)
		return nil, errors.NewAppError(errors.InternalError, "failed to parse balance").WithDetails(err.Error())
	}

	account.Balance = balance
	return &account, nil
}
