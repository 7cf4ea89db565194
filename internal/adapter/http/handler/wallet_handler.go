package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/obi/gowallet/internal/adapter/http/dto"
	"github.com/obi/gowallet/internal/adapter/http/middleware"
	"github.com/obi/gowallet/internal/domain"
	"github.com/obi/gowallet/internal/usecase"
)

// WalletService is the wallet use case surface the handler depends on.
type WalletService interface {
	GetWallet(ctx context.Context, userID string) (*domain.Wallet, error)
	Fund(ctx context.Context, input usecase.FundInput) (*usecase.FundResult, error)
	Withdraw(ctx context.Context, input usecase.WithdrawInput) (*usecase.WithdrawResult, error)
	Transfer(ctx context.Context, input usecase.TransferInput) (*usecase.TransferResult, error)
}

// WalletHandler handles wallet-related HTTP requests.
type WalletHandler struct {
	walletUC WalletService
}

// NewWalletHandler creates a new WalletHandler.
func NewWalletHandler(walletUC WalletService) *WalletHandler {
	return &WalletHandler{walletUC: walletUC}
}

// Get returns the caller's wallet.
func (h *WalletHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "")
		return
	}

	wallet, err := h.walletUC.GetWallet(r.Context(), userID)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to get wallet", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, dto.WalletFromDomain(wallet))
}

// Fund credits the caller's wallet.
func (h *WalletHandler) Fund(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "")
		return
	}

	var req dto.FundWalletRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	result, err := h.walletUC.Fund(r.Context(), req.ToUseCaseInput(userID))
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to fund wallet", err.Error())

		return
	}

	writeJSON(w, http.StatusCreated, dto.FundFromResult(result))
}

// Withdraw debits the caller's wallet.
func (h *WalletHandler) Withdraw(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "")
		return
	}

	var req dto.WithdrawRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	result, err := h.walletUC.Withdraw(r.Context(), req.ToUseCaseInput(userID))
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to withdraw", err.Error())

		return
	}

	writeJSON(w, http.StatusCreated, dto.WithdrawFromResult(result))
}

// Transfer moves funds from the caller's wallet to another user's wallet.
func (h *WalletHandler) Transfer(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "")
		return
	}

	var req dto.TransferRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	result, err := h.walletUC.Transfer(r.Context(), req.ToUseCaseInput(userID))
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to transfer", err.Error())

		return
	}

	writeJSON(w, http.StatusCreated, dto.TransferFromResult(result))
}
