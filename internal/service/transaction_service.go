package service

import (
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"international-payments/internal/domain"
	"international-payments/internal/errors"
)

type TransactionService struct {
	store  domain.Store
	logger *slog.Logger
}

func NewTransactionService(store domain.Store, logger *slog.Logger) *TransactionService {
	return &TransactionService{
		store:  store,
		logger: logger,
	}
}

// TransactionsForUser returns the caller's own transactions, most recent
// first.
func (s *TransactionService) TransactionsForUser(userID uuid.UUID) ([]domain.Transaction, error) {
	if _, err := s.store.Users().UserByID(userID); err != nil {
		return nil, err
	}
	return s.store.Transactions().TransactionsByUser(userID)
}

// PendingTransactions returns every pending transaction, most recent first.
func (s *TransactionService) PendingTransactions() ([]domain.Transaction, error) {
	return s.store.Transactions().TransactionsByStatus(domain.StatusPending)
}

// AllTransactions returns every transaction regardless of owner, most recent
// first.
func (s *TransactionService) AllTransactions() ([]domain.Transaction, error) {
	return s.store.Transactions().AllTransactions()
}

// UpdateStatus sets the transaction's status to any of the enumerated
// values. There is no transition table: any status may move to any other.
func (s *TransactionService) UpdateStatus(transactionID uuid.UUID, newStatus string) (string, error) {
	status, ok := domain.ParseStatus(newStatus)
	if !ok {
		return "", errors.NewAppErrorf(errors.InvalidStatus,
			"invalid status %q: must be one of pending, confirmed, denied, flagged", newStatus)
	}

	if _, err := s.store.Transactions().TransactionByID(transactionID); err != nil {
		return "", err
	}

	if err := s.store.Transactions().UpdateTransactionStatus(transactionID, status); err != nil {
		return "", err
	}

	s.logger.Info("Transaction status updated", "transaction_id", transactionID, "status", status)
	return fmt.Sprintf("Transaction status updated to %s", status), nil
}
