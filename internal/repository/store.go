package repository

import (
	"database/sql"
	"log/slog"

	"international-payments/internal/domain"
	"international-payments/internal/errors"
)

// Store is the Postgres-backed domain.Store. It hands out repositories bound
// to the current executor, which is either the pooled *sql.DB or, inside
// WithinTransaction, a single *sql.Tx.
type Store struct {
	executor SQLExecutor
	logger   *slog.Logger
}

func NewStore(db *sql.DB, logger *slog.Logger) *Store {
	return &Store{
		executor: db,
		logger:   logger,
	}
}

func (s *Store) Accounts() domain.AccountRepository {
	return NewAccountRepository(s.executor, s.logger)
}

func (s *Store) Transactions() domain.TransactionRepository {
	return NewTransactionRepository(s.executor, s.logger)
}

func (s *Store) Users() domain.UserRepository {
	return NewUserRepository(s.executor, s.logger)
}

// WithinTransaction executes fn against a Store bound to one database
// transaction, committing on nil and rolling back on error or panic.
func (s *Store) WithinTransaction(fn func(domain.Store) error) error {
	// Only sql.DB can begin transactions; a nested call would deadlock on
	// the same connection.
	db, ok := s.executor.(*sql.DB)
	if !ok {
		return errors.NewAppError(errors.InternalError, "cannot begin transaction from within a transaction")
	}

	tx, err := db.Begin()
	if err != nil {
		return errors.NewAppError(errors.InternalError, "failed to begin transaction").WithDetails(err.Error())
	}

	txStore := &Store{
		executor: &TxWrapper{Tx: tx},
		logger:   s.logger,
	}

	defer func() {
		if p := recover(); p != nil {
			tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(txStore); err != nil {
		tx.Rollback()
		return err
	}

	return tx.Commit()
}

var _ domain.Store = (*Store)(nil)
