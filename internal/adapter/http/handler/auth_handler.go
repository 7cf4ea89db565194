package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/obi/gowallet/internal/adapter/http/dto"
	"github.com/obi/gowallet/internal/domain"
	"github.com/obi/gowallet/internal/infrastructure/auth"
	"github.com/obi/gowallet/internal/usecase"
)

// UserService is the user use case surface the handler depends on.
type UserService interface {
	Register(ctx context.Context, input usecase.RegisterInput) (*domain.User, *domain.Wallet, error)
	Authenticate(ctx context.Context, email, password string) (*domain.User, error)
}

// AuthHandler handles registration and login.
type AuthHandler struct {
	userUC     UserService
	jwtManager *auth.JWTManager
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(userUC UserService, jwtManager *auth.JWTManager) *AuthHandler {
	return &AuthHandler{
		userUC:     userUC,
		jwtManager: jwtManager,
	}
}

// Register creates a user together with their wallet and returns a token.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	user, wallet, err := h.userUC.Register(r.Context(), req.ToUseCaseInput())
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to register", err.Error())

		return
	}

	token, err := h.jwtManager.Generate(user)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to issue token", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, dto.AuthResponse{
		Token:  token,
		User:   dto.UserFromDomain(user),
		Wallet: dto.WalletFromDomain(wallet),
	})
}

// Login verifies credentials and returns a token.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	user, err := h.userUC.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to login", err.Error())

		return
	}

	token, err := h.jwtManager.Generate(user)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to issue token", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.AuthResponse{
		Token: token,
		User:  dto.UserFromDomain(user),
	})
}
