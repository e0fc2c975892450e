package service

import (
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"international-payments/internal/domain"
	apperrors "international-payments/internal/errors"
	"international-payments/internal/repository/memory"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// seedAccount creates a user with an account holding the given balance.
func seedAccount(t *testing.T, store *memory.Store, balance string) uuid.UUID {
	t.Helper()

	user := &domain.User{
		ID:           uuid.New(),
		Username:     "user-" + uuid.NewString(),
		FullName:     "Test User",
		PasswordHash: "x",
	}
	require.NoError(t, store.Users().CreateUser(user))

	account := &domain.Account{
		ID:      uuid.New(),
		UserID:  user.ID,
		Balance: decimal.RequireFromString(balance),
	}
	require.NoError(t, store.Accounts().CreateAccount(account))

	return user.ID
}

func validTransfer(userID uuid.UUID) *TransferRequest {
	return &TransferRequest{
		UserID:                  userID,
		RecipientName:           "John Smith",
		RecipientsBank:          "First National",
		RecipientsAccountNumber: "1234567890",
		Amount:                  decimal.RequireFromString("40"),
		SwiftCode:               "ABCDEFGH",
		TransactionType:         "international",
		Status:                  "pending",
	}
}

func assertAppError(t *testing.T, err error, code apperrors.ErrorCode) {
	t.Helper()

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, code, appErr.Code)
}

func TestTransferSuccess(t *testing.T) {
	store := memory.NewStore()
	userID := seedAccount(t, store, "100")
	svc := NewPaymentService(store, testLogger())

	result, err := svc.Transfer(validTransfer(userID))
	require.NoError(t, err)

	assert.True(t, result.SenderNewBalance.Equal(decimal.RequireFromString("60")),
		"expected balance 60, got %s", result.SenderNewBalance)
	assert.NotEqual(t, uuid.Nil, result.TransactionID)

	transactions, err := store.Transactions().TransactionsByUser(userID)
	require.NoError(t, err)
	require.Len(t, transactions, 1)

	tx := transactions[0]
	assert.Equal(t, result.TransactionID, tx.ID)
	assert.Equal(t, userID, tx.UserID)
	assert.Equal(t, "John Smith", tx.RecipientName)
	assert.Equal(t, "First National", tx.RecipientsBank)
	assert.Equal(t, "1234567890", tx.RecipientsAccountNumber)
	assert.True(t, tx.Amount.Equal(decimal.RequireFromString("40")))
	assert.Equal(t, "ABCDEFGH", tx.SwiftCode)
	assert.Equal(t, domain.StatusPending, tx.Status)
	assert.False(t, tx.CreatedAt.IsZero())
}

func TestTransferInsufficientFunds(t *testing.T) {
	store := memory.NewStore()
	userID := seedAccount(t, store, "50")
	svc := NewPaymentService(store, testLogger())

	req := validTransfer(userID)
	req.Amount = decimal.RequireFromString("100")

	_, err := svc.Transfer(req)
	assertAppError(t, err, apperrors.InsufficientFunds)

	account, err := store.Accounts().AccountByUserID(userID)
	require.NoError(t, err)
	assert.True(t, account.Balance.Equal(decimal.RequireFromString("50")),
		"balance must be unchanged, got %s", account.Balance)

	transactions, err := store.Transactions().TransactionsByUser(userID)
	require.NoError(t, err)
	assert.Empty(t, transactions)
}

func TestTransferRejectsInvalidFields(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*TransferRequest)
		code   apperrors.ErrorCode
	}{
		{"empty recipient name", func(r *TransferRequest) { r.RecipientName = "" }, apperrors.InvalidInput},
		{"numeric recipient name", func(r *TransferRequest) { r.RecipientName = "John 2nd" }, apperrors.InvalidInput},
		{"invalid bank name", func(r *TransferRequest) { r.RecipientsBank = "Bank #1" }, apperrors.InvalidInput},
		{"short account number", func(r *TransferRequest) { r.RecipientsAccountNumber = "123" }, apperrors.InvalidInput},
		{"zero amount", func(r *TransferRequest) { r.Amount = decimal.Zero }, apperrors.InvalidAmount},
		{"negative amount", func(r *TransferRequest) { r.Amount = decimal.RequireFromString("-10") }, apperrors.InvalidAmount},
		{"seven char swift", func(r *TransferRequest) { r.SwiftCode = "ABCDEFG" }, apperrors.InvalidInput},
		{"punctuated swift", func(r *TransferRequest) { r.SwiftCode = "AB-DEFGH" }, apperrors.InvalidInput},
		{"unknown status", func(r *TransferRequest) { r.Status = "approved" }, apperrors.InvalidStatus},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := memory.NewStore()
			userID := seedAccount(t, store, "100")
			svc := NewPaymentService(store, testLogger())

			req := validTransfer(userID)
			tt.mutate(req)

			_, err := svc.Transfer(req)
			assertAppError(t, err, tt.code)

			// Validation failures must leave no trace.
			account, err := store.Accounts().AccountByUserID(userID)
			require.NoError(t, err)
			assert.True(t, account.Balance.Equal(decimal.RequireFromString("100")))

			transactions, err := store.Transactions().TransactionsByUser(userID)
			require.NoError(t, err)
			assert.Empty(t, transactions)
		})
	}
}

func TestTransferUnknownUser(t *testing.T) {
	store := memory.NewStore()
	svc := NewPaymentService(store, testLogger())

	_, err := svc.Transfer(validTransfer(uuid.New()))
	assertAppError(t, err, apperrors.UserNotFound)
}

func TestTransferDefaults(t *testing.T) {
	store := memory.NewStore()
	userID := seedAccount(t, store, "100")
	svc := NewPaymentService(store, testLogger())

	req := validTransfer(userID)
	req.Status = ""
	req.TransactionType = ""

	result, err := svc.Transfer(req)
	require.NoError(t, err)

	tx, err := store.Transactions().TransactionByID(result.TransactionID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPending, tx.Status)
	assert.Equal(t, "international", tx.TransactionType)
}

func TestTransferNormalizesStatusCasing(t *testing.T) {
	store := memory.NewStore()
	userID := seedAccount(t, store, "100")
	svc := NewPaymentService(store, testLogger())

	req := validTransfer(userID)
	req.Status = "Pending"

	result, err := svc.Transfer(req)
	require.NoError(t, err)

	tx, err := store.Transactions().TransactionByID(result.TransactionID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPending, tx.Status)
}

func TestAddBalance(t *testing.T) {
	store := memory.NewStore()
	userID := seedAccount(t, store, "60")
	svc := NewPaymentService(store, testLogger())

	newBalance, err := svc.AddBalance(userID, decimal.RequireFromString("25"))
	require.NoError(t, err)
	assert.True(t, newBalance.Equal(decimal.RequireFromString("85")),
		"expected balance 85, got %s", newBalance)
}

func TestAddBalanceRejectsNonPositiveAmount(t *testing.T) {
	store := memory.NewStore()
	userID := seedAccount(t, store, "60")
	svc := NewPaymentService(store, testLogger())

	_, err := svc.AddBalance(userID, decimal.Zero)
	assertAppError(t, err, apperrors.InvalidAmount)

	_, err = svc.AddBalance(userID, decimal.RequireFromString("-1"))
	assertAppError(t, err, apperrors.InvalidAmount)
}

func TestAddBalanceUnknownAccount(t *testing.T) {
	store := memory.NewStore()
	svc := NewPaymentService(store, testLogger())

	_, err := svc.AddBalance(uuid.New(), decimal.RequireFromString("10"))
	assertAppError(t, err, apperrors.AccountNotFound)
}

// TestConcurrentTransfersNeverOverdraw drives simultaneous transfers from
// one account and checks that the sufficiency check can never pass against a
// stale balance.
func TestConcurrentTransfersNeverOverdraw(t *testing.T) {
	store := memory.NewStore()
	userID := seedAccount(t, store, "100")
	svc := NewPaymentService(store, testLogger())

	const workers = 20
	amount := decimal.RequireFromString("30")

	var wg sync.WaitGroup
	results := make(chan error, workers)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			req := validTransfer(userID)
			req.Amount = amount
			_, err := svc.Transfer(req)
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	var succeeded int
	for err := range results {
		if err == nil {
			succeeded++
			continue
		}
		assertAppError(t, err, apperrors.InsufficientFunds)
	}

	// 100 / 30 leaves room for exactly three successful debits.
	assert.Equal(t, 3, succeeded)

	account, err := store.Accounts().AccountByUserID(userID)
	require.NoError(t, err)
	assert.True(t, account.Balance.Equal(decimal.RequireFromString("10")),
		"expected balance 10, got %s", account.Balance)
	assert.False(t, account.Balance.IsNegative())

	transactions, err := store.Transactions().TransactionsByUser(userID)
	require.NoError(t, err)
	assert.Len(t, transactions, succeeded)
}
