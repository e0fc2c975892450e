package repository

import (
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"international-payments/internal/domain"
	"international-payments/internal/errors"
)

const transactionColumns = `
	id, user_id, recipient_name, recipients_bank, recipients_account_number,
	amount, swift_code, transaction_type, status, created_at, updated_at
`

type transactionRepository struct {
	db     SQLExecutor
	logger *slog.Logger
}

func NewTransactionRepository(db SQLExecutor, logger *slog.Logger) domain.TransactionRepository {
	return &transactionRepository{
		db:     db,
		logger: logger,
	}
}

func (r *transactionRepository) CreateTransaction(tx *domain.Transaction) error {
	query := `
		INSERT INTO transactions
		(id, user_id, recipient_name, recipients_bank, recipients_account_number,
		 amount, swift_code, transaction_type, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	now := time.Now()
	if tx.CreatedAt.IsZero() {
		tx.CreatedAt = now
	}

	_, err := r.db.Exec(
		query,
		tx.ID,
		tx.UserID,
		tx.RecipientName,
		tx.RecipientsBank,
		tx.RecipientsAccountNumber,
		tx.Amount.String(),
		tx.SwiftCode,
		tx.TransactionType,
		string(tx.Status),
		tx.CreatedAt,
		now,
	)

	if err != nil {
		r.logger.Error("Failed to create transaction",
			"user_id", tx.UserID,
			"amount", tx.Amount,
			"error", err)
		return errors.NewAppError(errors.InternalError, "failed to create transaction").WithDetails(err.Error())
	}

	tx.UpdatedAt = now
	r.logger.Info("Transaction created", "transaction_id", tx.ID, "user_id", tx.UserID)
	return nil
}

func (r *transactionRepository) TransactionByID(id uuid.UUID) (*domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE id = $1`

	rows, err := r.queryTransactions(query, id)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, errors.ErrTransactionNotFound
	}
	return &rows[0], nil
}

func (r *transactionRepository) TransactionsByUser(userID uuid.UUID) ([]domain.Transaction, error) {
	query := `
		SELECT ` + transactionColumns + `
		FROM transactions WHERE user_id = $1
		ORDER BY created_at DESC
	`

	return r.queryTransactions(query, userID)
}

func (r *transactionRepository) TransactionsByStatus(status domain.Status) ([]domain.Transaction, error) {
	query := `
		SELECT ` + transactionColumns + `
		FROM transactions WHERE status = $1
		ORDER BY created_at DESC
	`

	return r.queryTransactions(query, string(status))
}

func (r *transactionRepository) AllTransactions() ([]domain.Transaction, error) {
	query := `
		SELECT ` + transactionColumns + `
		FROM transactions
		ORDER BY created_at DESC
	`

	return r.queryTransactions(query)
}

func (r *transactionRepository) UpdateTransactionStatus(id uuid.UUID, status domain.Status) error {
	query := `UPDATE transactions SET status = $1, updated_at = $2 WHERE id = $3`

	result, err := r.db.Exec(query, string(status), time.Now(), id)
	if err != nil {
		r.logger.Error("Failed to update transaction status",
			"transaction_id", id, "status", status, "error", err)
		return errors.NewAppError(errors.InternalError, "failed to update transaction status").WithDetails(err.Error())
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return errors.NewAppError(errors.InternalError, "failed to get rows affected").WithDetails(err.Error())
	}

	if rowsAffected == 0 {
		r.logger.Warn("No transaction found to update", "transaction_id", id)
		return errors.ErrTransactionNotFound
	}

	r.logger.Info("Transaction status updated", "transaction_id", id, "status", status)
	return nil
}

func (r *transactionRepository) queryTransactions(query string, args ...interface{}) ([]domain.Transaction, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		r.logger.Error("Failed to query transactions", "error", err)
		return nil, errors.NewAppError(errors.InternalError, "failed to query transactions").WithDetails(err.Error())
	}
	defer rows.Close()

	var transactions []domain.Transaction
	for rows.Next() {
		var tx domain.Transaction
		var amountStr, statusStr string

		err := rows.Scan(
			&tx.ID,
			&tx.UserID,
			&tx.RecipientName,
			&tx.RecipientsBank,
			&tx.RecipientsAccountNumber,
			&amountStr,
			&tx.SwiftCode,
			&tx.TransactionType,
			&statusStr,
			&tx.CreatedAt,
			&tx.UpdatedAt,
		)
		if err != nil {
			r.logger.Error("Failed to scan transaction", "error", err)
			return nil, errors.NewAppError(errors.InternalError, "failed to scan transaction").WithDetails(err.Error())
		}

		amount, err := decimal.NewFromString(amountStr)
		if err != nil {
			return nil, errors.NewAppError(errors.InternalError, "failed to parse amount").WithDetails(err.Error())
		}
		tx.Amount = amount
		tx.Status = domain.Status(statusStr)

		transactions = append(transactions, tx)
	}

	if err := rows.Err(); err != nil {
		return nil, errors.NewAppError(errors.InternalError, "failed to iterate transactions").WithDetails(err.Error())
	}

	return transactions, nil
}
