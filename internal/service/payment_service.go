package service

import (
	"log/slog"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"international-payments/internal/domain"
	"international-payments/internal/errors"
	"international-payments/internal/validation"
)

// defaultTransactionType is recorded when the caller leaves the type blank.
const defaultTransactionType = "international"

type PaymentService struct {
	store  domain.Store
	logger *slog.Logger
}

func NewPaymentService(store domain.Store, logger *slog.Logger) *PaymentService {
	return &PaymentService{
		store:  store,
		logger: logger,
	}
}

type TransferRequest struct {
	UserID                  uuid.UUID
	RecipientName           string
	RecipientsBank          string
	RecipientsAccountNumber string
	Amount                  decimal.Decimal
	SwiftCode               string
	TransactionType         string
	Status                  string
}

type TransferResult struct {
	SenderNewBalance decimal.Decimal
	TransactionID    uuid.UUID
}

// Transfer executes an international payment end to end: validate every
// field, resolve the sender, then debit and record inside one unit of work.
// Nothing is read or written until all predicates pass, and the debit is
// never persisted without its transaction record.
func (s *PaymentService) Transfer(req *TransferRequest) (*TransferResult, error) {
	s.logger.Info("Processing transfer",
		"user_id", req.UserID,
		"amount", req.Amount,
		"swift_code", req.SwiftCode)

	if !validation.Name(req.RecipientName) {
		return nil, errors.NewAppError(errors.InvalidInput,
			"invalid recipient name: must contain only letters and be between 1 and 50 characters")
	}
	if !validation.Name(req.RecipientsBank) {
		return nil, errors.NewAppError(errors.InvalidInput,
			"invalid recipient bank: must contain only letters and be between 1 and 50 characters")
	}
	if !validation.AccountNumber(req.RecipientsAccountNumber) {
		return nil, errors.NewAppError(errors.InvalidInput, "invalid recipient account number")
	}
	if !validation.Amount(req.Amount) {
		return nil, errors.NewAppError(errors.InvalidAmount, "invalid amount: must be a positive number")
	}
	if !validation.SwiftCode(req.SwiftCode) {
		return nil, errors.NewAppError(errors.InvalidInput,
			"invalid SWIFT code: must be 8 or 11 alphanumeric characters")
	}

	status := domain.StatusPending
	if req.Status != "" {
		parsed, ok := domain.ParseStatus(req.Status)
		if !ok {
			return nil, errors.NewAppErrorf(errors.InvalidStatus, "invalid status %q", req.Status)
		}
		status = parsed
	}

	transactionType := req.TransactionType
	if transactionType == "" {
		transactionType = defaultTransactionType
	}

	if _, err := s.store.Users().UserByID(req.UserID); err != nil {
		return nil, err
	}
	if _, err := s.store.Accounts().AccountByUserID(req.UserID); err != nil {
		return nil, err
	}

	result := &TransferResult{}
	err := s.store.WithinTransaction(func(store domain.Store) error {
		account, err := store.Accounts().Debit(req.UserID, req.Amount)
		if err != nil {
			return err
		}

		transaction := &domain.Transaction{
			ID:                      uuid.New(),
			UserID:                  req.UserID,
			RecipientName:           req.RecipientName,
			RecipientsBank:          req.RecipientsBank,
			RecipientsAccountNumber: req.RecipientsAccountNumber,
			Amount:                  req.Amount,
			SwiftCode:               req.SwiftCode,
			TransactionType:         transactionType,
			Status:                  status,
		}

		if err := store.Transactions().CreateTransaction(transaction); err != nil {
			return err
		}

		result.SenderNewBalance = account.Balance
		result.TransactionID = transaction.ID
		return nil
	})

	if err != nil {
		return nil, err
	}

	s.logger.Info("Transfer completed",
		"user_id", req.UserID,
		"transaction_id", result.TransactionID,
		"new_balance", result.SenderNewBalance)
	return result, nil
}

// AddBalance credits the caller's own account and returns the new balance.
// No transaction record is created for a top-up.
func (s *PaymentService) AddBalance(userID uuid.UUID, amount decimal.Decimal) (decimal.Decimal, error) {
	if !validation.Amount(amount) {
		return decimal.Decimal{}, errors.NewAppError(errors.InvalidAmount, "invalid amount: must be a positive number")
	}

	account, err := s.store.Accounts().Credit(userID, amount)
	if err != nil {
		return decimal.Decimal{}, err
	}

	s.logger.Info("Balance added", "user_id", userID, "amount", amount, "new_balance", account.Balance)
	return account.Balance, nil
}
