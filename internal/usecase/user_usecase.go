package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"github.com/obi/gowallet/internal/domain"
	"github.com/obi/gowallet/internal/infrastructure/metrics"
)

// bcryptCost matches the registration flow this service replaced.
const bcryptCost = 12

// UserRepository defines the interface for user persistence.
type UserRepository interface {
	CreateTx(ctx context.Context, tx Transaction, user *domain.User) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByEmailOrPhone(ctx context.Context, email, phone string) (*domain.User, error)
}

// BlacklistChecker screens an identity (email or phone) against an
// external karma blacklist. Consulted only during registration.
type BlacklistChecker interface {
	IsBlacklisted(ctx context.Context, identity string) (bool, error)
}

// UserUseCase handles registration and authentication.
type UserUseCase struct {
	txManager  TransactionManager
	userRepo   UserRepository
	walletRepo WalletRepository
	blacklist  BlacklistChecker
	idGen      IDGenerator
	metrics    *metrics.Metrics
}

// NewUserUseCase creates a new UserUseCase.
func NewUserUseCase(
	txManager TransactionManager,
	userRepo UserRepository,
	walletRepo WalletRepository,
	blacklist BlacklistChecker,
	idGen IDGenerator,
	m *metrics.Metrics,
) *UserUseCase {
	return &UserUseCase{
		txManager:  txManager,
		userRepo:   userRepo,
		walletRepo: walletRepo,
		blacklist:  blacklist,
		idGen:      idGen,
		metrics:    m,
	}
}

// RegisterInput represents input for registering a user.
type RegisterInput struct {
	Email     string
	Phone     string
	Password  string
	FirstName string
	LastName  string
}

// Register creates a user and their zero-balance wallet in one database
// transaction, after blacklist screening of both email and phone.
func (uc *UserUseCase) Register(ctx context.Context, input RegisterInput) (*domain.User, *domain.Wallet, error) {
	input.Email = strings.TrimSpace(strings.ToLower(input.Email))
	input.Phone = strings.TrimSpace(input.Phone)

	if err := domain.ValidateEmail(input.Email); err != nil {
		return nil, nil, err
	}

	if err := domain.ValidatePhone(input.Phone); err != nil {
		return nil, nil, err
	}

	if err := domain.ValidatePassword(input.Password); err != nil {
		return nil, nil, err
	}

	existing, err := uc.userRepo.GetByEmailOrPhone(ctx, input.Email, input.Phone)
	if err != nil && !errors.Is(err, domain.ErrUserNotFound) {
		return nil, nil, err
	}

	if existing != nil {
		return nil, nil, domain.ErrUserExists
	}

	for _, identity := range []string{input.Email, input.Phone} {
		blacklisted, err := uc.blacklist.IsBlacklisted(ctx, identity)
		if err != nil {
			// The screening provider being down must not block
			// registration; the original system fails open here.
			log.Warn().Err(err).Msg("blacklist check failed, allowing registration")
			continue
		}

		if blacklisted {
			if uc.metrics != nil {
				uc.metrics.BlacklistRejections.Inc()
			}
			return nil, nil, domain.ErrUserBlacklisted
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcryptCost)
	if err != nil {
		return nil, nil, err
	}

	now := time.Now().UTC()

	user := &domain.User{
		ID:           uc.idGen.Generate(),
		Email:        input.Email,
		Phone:        input.Phone,
		PasswordHash: string(hash),
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	wallet := &domain.Wallet{
		ID:        uc.idGen.Generate(),
		UserID:    user.ID,
		Balance:   decimal.Zero,
		Currency:  domain.DefaultCurrency,
		CreatedAt: now,
		UpdatedAt: now,
	}

	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return nil, nil, err
	}
	defer tx.Rollback(ctx)

	if err := uc.userRepo.CreateTx(ctx, tx, user); err != nil {
		return nil, nil, err
	}

	if err := uc.walletRepo.CreateTx(ctx, tx, wallet); err != nil {
		return nil, nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, nil, err
	}

	if uc.metrics != nil {
		uc.metrics.UsersRegistered.Inc()
	}

	return user, wallet, nil
}

// Authenticate verifies email/password credentials.
func (uc *UserUseCase) Authenticate(ctx context.Context, email, password string) (*domain.User, error) {
	email = strings.TrimSpace(strings.ToLower(email))

	user, err := uc.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			uc.recordAuthFailure("unknown_email")
			return nil, domain.ErrInvalidCredentials
		}

		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		uc.recordAuthFailure("bad_password")
		return nil, domain.ErrInvalidCredentials
	}

	if uc.metrics != nil {
		uc.metrics.AuthAttempts.WithLabelValues("success").Inc()
	}

	return user, nil
}

func (uc *UserUseCase) recordAuthFailure(reason string) {
	if uc.metrics == nil {
		return
	}

	uc.metrics.AuthAttempts.WithLabelValues("failure").Inc()
	uc.metrics.AuthFailures.WithLabelValues(reason).Inc()
}

// GetUser retrieves a user by ID.
func (uc *UserUseCase) GetUser(ctx context.Context, id string) (*domain.User, error) {
	return uc.userRepo.GetByID(ctx, id)
}
