package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/obi/gowallet/internal/adapter/http/dto"
	"github.com/obi/gowallet/internal/adapter/http/middleware"
	"github.com/obi/gowallet/internal/domain"
	"github.com/obi/gowallet/internal/usecase"
)

// TransactionService is the ledger read surface the handler depends on.
type TransactionService interface {
	ListByUser(ctx context.Context, input usecase.ListByUserInput) ([]*domain.Transaction, error)
	GetByReference(ctx context.Context, userID, reference string) (*domain.Transaction, error)
}

// TransactionHandler handles ledger read requests.
type TransactionHandler struct {
	transactionUC TransactionService
}

// NewTransactionHandler creates a new TransactionHandler.
func NewTransactionHandler(transactionUC TransactionService) *TransactionHandler {
	return &TransactionHandler{transactionUC: transactionUC}
}

// ListByUser lists the caller's ledger entries, newest first.
func (h *TransactionHandler) ListByUser(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "")
		return
	}

	limit := parseIntQuery(r, "limit", 20)
	offset := parseIntQuery(r, "offset", 0)

	entries, err := h.transactionUC.ListByUser(r.Context(), usecase.ListByUserInput{
		UserID: userID,
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to list transactions", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, dto.TransactionsFromDomain(entries))
}

// GetByReference retrieves one of the caller's ledger entries by reference.
func (h *TransactionHandler) GetByReference(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "")
		return
	}

	reference := chi.URLParam(r, "reference")
	if reference == "" {
		writeError(w, http.StatusBadRequest, "missing reference", "")
		return
	}

	entry, err := h.transactionUC.GetByReference(r.Context(), userID, reference)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to get transaction", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, dto.TransactionFromDomain(entry))
}
