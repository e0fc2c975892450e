package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Status is the lifecycle state of a transaction. Values are canonical
// lowercase; ParseStatus normalizes at the boundary.
type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusDenied    Status = "denied"
	StatusFlagged   Status = "flagged"
)

// ParseStatus lowercases s and returns the matching Status, or false when s
// is not one of the enumerated values.
func ParseStatus(s string) (Status, bool) {
	switch Status(strings.ToLower(s)) {
	case StatusPending:
		return StatusPending, true
	case StatusConfirmed:
		return StatusConfirmed, true
	case StatusDenied:
		return StatusDenied, true
	case StatusFlagged:
		return StatusFlagged, true
	}
	return "", false
}

// Transaction records one international payment. Every field except Status
// is immutable once the record is created alongside the paired debit. The
// recipient is external to the system, so only its wire details are kept.
type Transaction struct {
	ID                      uuid.UUID       `json:"id"`
	UserID                  uuid.UUID       `json:"user_id"`
	RecipientName           string          `json:"recipient_name"`
	RecipientsBank          string          `json:"recipients_bank"`
	RecipientsAccountNumber string          `json:"recipients_account_number"`
	Amount                  decimal.Decimal `json:"amount"`
	SwiftCode               string          `json:"swift_code"`
	TransactionType         string          `json:"transaction_type"`
	Status                  Status          `json:"status"`
	CreatedAt               time.Time       `json:"created_at"`
	UpdatedAt               time.Time       `json:"updated_at"`
}

type TransactionRepository interface {
	CreateTransaction(tx *Transaction) error
	TransactionByID(id uuid.UUID) (*Transaction, error)
	// List operations return records ordered by creation time, most recent
	// first.
	TransactionsByUser(userID uuid.UUID) ([]Transaction, error)
	TransactionsByStatus(status Status) ([]Transaction, error)
	AllTransactions() ([]Transaction, error)
	UpdateTransactionStatus(id uuid.UUID, status Status) error
}
