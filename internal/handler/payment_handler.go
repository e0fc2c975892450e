package handler

import (
	"encoding/json"
	"net/http"

	"github.com/shopspring/decimal"

	"international-payments/internal/errors"
	"international-payments/internal/service"
)

type PaymentHandler struct {
	paymentService *service.PaymentService
}

func NewPaymentHandler(paymentService *service.PaymentService) *PaymentHandler {
	return &PaymentHandler{
		paymentService: paymentService,
	}
}

type TransferRequest struct {
	RecipientName           string `json:"recipient_name"`
	RecipientsBank          string `json:"recipients_bank"`
	RecipientsAccountNumber string `json:"recipients_account_number"`
	AmountToTransfer        string `json:"amount_to_transfer"`
	SwiftCode               string `json:"swift_code"`
	TransactionType         string `json:"transaction_type,omitempty"`
	Status                  string `json:"status,omitempty"`
}

type TransferResponse struct {
	SenderNewBalance string `json:"sender_new_balance"`
	TransactionID    string `json:"transaction_id"`
}

func (h *PaymentHandler) Transfer(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserIDFromContext(r.Context())
	if !ok {
		writeError(w, errors.ErrUnauthorized)
		return
	}

	var req TransferRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.NewAppError(errors.InvalidInput, "invalid request body").WithDetails(err.Error()))
		return
	}

	amount, err := decimal.NewFromString(req.AmountToTransfer)
	if err != nil {
		writeError(w, errors.NewAppError(errors.InvalidAmount, "invalid amount format").WithDetails(err.Error()))
		return
	}

	result, err := h.paymentService.Transfer(&service.TransferRequest{
		UserID:                  userID,
		RecipientName:           req.RecipientName,
		RecipientsBank:          req.RecipientsBank,
		RecipientsAccountNumber: req.RecipientsAccountNumber,
		Amount:                  amount,
		SwiftCode:               req.SwiftCode,
		TransactionType:         req.TransactionType,
		Status:                  req.Status,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}

	response := TransferResponse{
		SenderNewBalance: result.SenderNewBalance.String(),
		TransactionID:    result.TransactionID.String(),
	}

	writeJSON(w, http.StatusCreated, response)
}

type AddBalanceRequest struct {
	Amount string `json:"amount"`
}

type AddBalanceResponse struct {
	Message    string `json:"message"`
	NewBalance string `json:"new_balance"`
}

func (h *PaymentHandler) AddBalance(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserIDFromContext(r.Context())
	if !ok {
		writeError(w, errors.ErrUnauthorized)
		return
	}

	var req AddBalanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.NewAppError(errors.InvalidInput, "invalid request body").WithDetails(err.Error()))
		return
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		writeError(w, errors.NewAppError(errors.InvalidAmount, "invalid amount format").WithDetails(err.Error()))
		return
	}

	newBalance, err := h.paymentService.AddBalance(userID, amount)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	response := AddBalanceResponse{
		Message:    "Balance updated successfully",
		NewBalance: newBalance.String(),
	}

	writeJSON(w, http.StatusOK, response)
}
