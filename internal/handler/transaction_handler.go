package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"international-payments/internal/domain"
	"international-payments/internal/errors"
	"international-payments/internal/service"
)

type TransactionHandler struct {
	transactionService *service.TransactionService
}

func NewTransactionHandler(transactionService *service.TransactionService) *TransactionHandler {
	return &TransactionHandler{
		transactionService: transactionService,
	}
}

type TransactionResponse struct {
	ID                      string `json:"id"`
	UserID                  string `json:"user_id"`
	RecipientName           string `json:"recipient_name"`
	RecipientsBank          string `json:"recipients_bank"`
	RecipientsAccountNumber string `json:"recipients_account_number"`
	Amount                  string `json:"amount"`
	SwiftCode               string `json:"swift_code"`
	TransactionType         string `json:"transaction_type"`
	Status                  string `json:"status"`
	CreatedAt               string `json:"created_at"`
}

func toTransactionResponses(transactions []domain.Transaction) []TransactionResponse {
	responses := make([]TransactionResponse, len(transactions))
	for i, tx := range transactions {
		responses[i] = TransactionResponse{
			ID:                      tx.ID.String(),
			UserID:                  tx.UserID.String(),
			RecipientName:           tx.RecipientName,
			RecipientsBank:          tx.RecipientsBank,
			RecipientsAccountNumber: tx.RecipientsAccountNumber,
			Amount:                  tx.Amount.String(),
			SwiftCode:               tx.SwiftCode,
			TransactionType:         tx.TransactionType,
			Status:                  string(tx.Status),
			CreatedAt:               tx.CreatedAt.Format(time.RFC3339),
		}
	}
	return responses
}

// MyTransactions lists the caller's own transactions, most recent first.
func (h *TransactionHandler) MyTransactions(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserIDFromContext(r.Context())
	if !ok {
		writeError(w, errors.ErrUnauthorized)
		return
	}

	transactions, err := h.transactionService.TransactionsForUser(userID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toTransactionResponses(transactions))
}

func (h *TransactionHandler) PendingTransactions(w http.ResponseWriter, r *http.Request) {
	transactions, err := h.transactionService.PendingTransactions()
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toTransactionResponses(transactions))
}

func (h *TransactionHandler) AllTransactions(w http.ResponseWriter, r *http.Request) {
	transactions, err := h.transactionService.AllTransactions()
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toTransactionResponses(transactions))
}

type UpdateStatusRequest struct {
	Status string `json:"status"`
}

type UpdateStatusResponse struct {
	Message string `json:"message"`
}

func (h *TransactionHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	transactionID, err := uuid.Parse(vars["transaction_id"])
	if err != nil {
		writeError(w, errors.NewAppError(errors.InvalidInput, "invalid transaction id"))
		return
	}

	var req UpdateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.NewAppError(errors.InvalidInput, "invalid request body"))
		return
	}

	message, err := h.transactionService.UpdateStatus(transactionID, req.Status)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, UpdateStatusResponse{Message: message})
}
