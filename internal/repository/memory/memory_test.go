package memory

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"international-payments/internal/domain"
	apperrors "international-payments/internal/errors"
)

func seed(t *testing.T, store *Store, balance string) uuid.UUID {
	t.Helper()

	userID := uuid.New()
	require.NoError(t, store.Accounts().CreateAccount(&domain.Account{
		ID:      uuid.New(),
		UserID:  userID,
		Balance: decimal.RequireFromString(balance),
	}))
	return userID
}

func TestWithinTransactionRollsBackOnError(t *testing.T) {
	store := NewStore()
	userID := seed(t, store, "100")

	err := store.WithinTransaction(func(s domain.Store) error {
		if _, err := s.Accounts().Debit(userID, decimal.RequireFromString("40")); err != nil {
			return err
		}
		return assert.AnError
	})
	require.ErrorIs(t, err, assert.AnError)

	// The debit inside the failed unit of work must not stick.
	account, err := store.Accounts().AccountByUserID(userID)
	require.NoError(t, err)
	assert.True(t, account.Balance.Equal(decimal.RequireFromString("100")),
		"expected balance 100, got %s", account.Balance)
}

func TestWithinTransactionCommits(t *testing.T) {
	store := NewStore()
	userID := seed(t, store, "100")

	err := store.WithinTransaction(func(s domain.Store) error {
		_, err := s.Accounts().Debit(userID, decimal.RequireFromString("40"))
		return err
	})
	require.NoError(t, err)

	account, err := store.Accounts().AccountByUserID(userID)
	require.NoError(t, err)
	assert.True(t, account.Balance.Equal(decimal.RequireFromString("60")))
}

func TestDebitInsufficientFunds(t *testing.T) {
	store := NewStore()
	userID := seed(t, store, "10")

	_, err := store.Accounts().Debit(userID, decimal.RequireFromString("11"))

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.InsufficientFunds, appErr.Code)
}

func TestListOrderingBreaksTimestampTies(t *testing.T) {
	store := NewStore()
	userID := seed(t, store, "100")

	// Same creation instant: later insertions must still list first.
	createdAt := time.Now()
	var ids []uuid.UUID
	for i := 0; i < 3; i++ {
		tx := &domain.Transaction{
			ID:        uuid.New(),
			UserID:    userID,
			Amount:    decimal.RequireFromString("1"),
			Status:    domain.StatusPending,
			CreatedAt: createdAt,
		}
		require.NoError(t, store.Transactions().CreateTransaction(tx))
		ids = append(ids, tx.ID)
	}

	listed, err := store.Transactions().TransactionsByUser(userID)
	require.NoError(t, err)
	require.Len(t, listed, 3)
	assert.Equal(t, ids[2], listed[0].ID)
	assert.Equal(t, ids[0], listed[2].ID)
}
