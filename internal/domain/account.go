package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Account holds the balance for exactly one user. Accounts are provisioned
// at registration and never created or removed by the payment workflow.
type Account struct {
	ID        uuid.UUID       `json:"account_id"`
	UserID    uuid.UUID       `json:"user_id"`
	Balance   decimal.Decimal `json:"balance"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

type AccountRepository interface {
	CreateAccount(account *Account) error
	AccountByUserID(userID uuid.UUID) (*Account, error)
	// Debit atomically subtracts amount from the user's balance and returns
	// the updated account. The sufficiency check and the write are a single
	// conditional update, so two concurrent debits cannot both pass against
	// a stale balance. Fails with ErrInsufficientFunds.
	Debit(userID uuid.UUID, amount decimal.Decimal) (*Account, error)
	// Credit atomically adds amount to the user's balance and returns the
	// updated account.
	Credit(userID uuid.UUID, amount decimal.Decimal) (*Account, error)
}
