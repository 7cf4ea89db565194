package usecase_test

import (
	"context"
	"errors"
	"testing"

	gomock "go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"

	"github.com/obi/gowallet/internal/domain"
	"github.com/obi/gowallet/internal/usecase"
	"github.com/obi/gowallet/internal/usecase/mocks"
)

func validRegisterInput() usecase.RegisterInput {
	return usecase.RegisterInput{
		Email:     "ada@example.com",
		Phone:     "+2348012345678",
		Password:  "Sup3rSecret",
		FirstName: "Ada",
		LastName:  "Obi",
	}
}

func TestUserUseCase_RegisterSuccess(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	userRepo := mocks.NewMockUserRepository(ctrl)
	blacklist := mocks.NewMockBlacklistChecker(ctrl)
	walletRepo := mocks.NewMockWalletRepository()
	txMgr := mocks.NewMockTransactionManager()

	input := validRegisterInput()

	userRepo.EXPECT().
		GetByEmailOrPhone(gomock.Any(), input.Email, input.Phone).
		Return(nil, domain.ErrUserNotFound)
	blacklist.EXPECT().IsBlacklisted(gomock.Any(), input.Email).Return(false, nil)
	blacklist.EXPECT().IsBlacklisted(gomock.Any(), input.Phone).Return(false, nil)

	var storedUser *domain.User
	userRepo.EXPECT().
		CreateTx(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, tx usecase.Transaction, user *domain.User) error {
			storedUser = user
			return nil
		})

	uc := usecase.NewUserUseCase(txMgr, userRepo, walletRepo, blacklist, mocks.NewMockIDGenerator(), nil)

	user, wallet, err := uc.Register(context.Background(), input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if user.Email != input.Email {
		t.Errorf("unexpected email: %s", user.Email)
	}
	if user.PasswordHash == "" || user.PasswordHash == input.Password {
		t.Error("password must be stored hashed")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		t.Errorf("stored hash does not match password: %v", err)
	}
	if storedUser == nil || storedUser.ID != user.ID {
		t.Error("user was not persisted")
	}

	if wallet == nil {
		t.Fatal("expected a wallet")
	}
	if wallet.UserID != user.ID {
		t.Errorf("wallet belongs to %s, expected %s", wallet.UserID, user.ID)
	}
	if !wallet.Balance.IsZero() {
		t.Errorf("new wallet must start at zero, got %s", wallet.Balance)
	}
	if wallet.Currency != domain.DefaultCurrency {
		t.Errorf("unexpected currency: %s", wallet.Currency)
	}

	if len(txMgr.Begun) != 1 || !txMgr.Begun[0].Committed {
		t.Error("user and wallet must be created in one committed transaction")
	}
}

func TestUserUseCase_RegisterNormalizesEmail(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	userRepo := mocks.NewMockUserRepository(ctrl)
	blacklist := mocks.NewMockBlacklistChecker(ctrl)

	input := validRegisterInput()
	input.Email = "  Ada@Example.COM "

	userRepo.EXPECT().
		GetByEmailOrPhone(gomock.Any(), "ada@example.com", input.Phone).
		Return(nil, domain.ErrUserNotFound)
	blacklist.EXPECT().IsBlacklisted(gomock.Any(), "ada@example.com").Return(false, nil)
	blacklist.EXPECT().IsBlacklisted(gomock.Any(), input.Phone).Return(false, nil)
	userRepo.EXPECT().CreateTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)

	uc := usecase.NewUserUseCase(
		mocks.NewMockTransactionManager(), userRepo,
		mocks.NewMockWalletRepository(), blacklist, mocks.NewMockIDGenerator(),
		nil,
	)

	user, _, err := uc.Register(context.Background(), input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.Email != "ada@example.com" {
		t.Errorf("email not normalized: %s", user.Email)
	}
}

func TestUserUseCase_RegisterValidation(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*usecase.RegisterInput)
		errorType error
	}{
		{
			name:      "invalid email",
			mutate:    func(in *usecase.RegisterInput) { in.Email = "not-an-email" },
			errorType: domain.ErrInvalidEmail,
		},
		{
			name:      "invalid phone",
			mutate:    func(in *usecase.RegisterInput) { in.Phone = "abc" },
			errorType: domain.ErrInvalidPhone,
		},
		{
			name:      "short password",
			mutate:    func(in *usecase.RegisterInput) { in.Password = "Ab1" },
			errorType: domain.ErrPasswordTooWeak,
		},
		{
			name:      "password without digits",
			mutate:    func(in *usecase.RegisterInput) { in.Password = "NoDigitsHere" },
			errorType: domain.ErrPasswordTooWeak,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			uc := usecase.NewUserUseCase(
				mocks.NewMockTransactionManager(),
				mocks.NewMockUserRepository(ctrl),
				mocks.NewMockWalletRepository(),
				mocks.NewMockBlacklistChecker(ctrl),
				mocks.NewMockIDGenerator(),
				nil,
			)

			input := validRegisterInput()
			tt.mutate(&input)

			_, _, err := uc.Register(context.Background(), input)
			if !errors.Is(err, tt.errorType) {
				t.Errorf("expected %v, got %v", tt.errorType, err)
			}
		})
	}
}

func TestUserUseCase_RegisterDuplicateIdentity(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	userRepo := mocks.NewMockUserRepository(ctrl)
	input := validRegisterInput()

	userRepo.EXPECT().
		GetByEmailOrPhone(gomock.Any(), input.Email, input.Phone).
		Return(&domain.User{ID: "user-1"}, nil)

	uc := usecase.NewUserUseCase(
		mocks.NewMockTransactionManager(), userRepo,
		mocks.NewMockWalletRepository(),
		mocks.NewMockBlacklistChecker(ctrl),
		mocks.NewMockIDGenerator(),
		nil,
	)

	_, _, err := uc.Register(context.Background(), input)
	if !errors.Is(err, domain.ErrUserExists) {
		t.Errorf("expected ErrUserExists, got %v", err)
	}
}

func TestUserUseCase_RegisterBlacklistedIdentity(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	userRepo := mocks.NewMockUserRepository(ctrl)
	blacklist := mocks.NewMockBlacklistChecker(ctrl)
	input := validRegisterInput()

	userRepo.EXPECT().
		GetByEmailOrPhone(gomock.Any(), input.Email, input.Phone).
		Return(nil, domain.ErrUserNotFound)
	blacklist.EXPECT().IsBlacklisted(gomock.Any(), input.Email).Return(true, nil)

	uc := usecase.NewUserUseCase(
		mocks.NewMockTransactionManager(), userRepo,
		mocks.NewMockWalletRepository(), blacklist,
		mocks.NewMockIDGenerator(),
		nil,
	)

	_, _, err := uc.Register(context.Background(), input)
	if !errors.Is(err, domain.ErrUserBlacklisted) {
		t.Errorf("expected ErrUserBlacklisted, got %v", err)
	}
}

func TestUserUseCase_RegisterBlacklistOutageFailsOpen(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	userRepo := mocks.NewMockUserRepository(ctrl)
	blacklist := mocks.NewMockBlacklistChecker(ctrl)
	input := validRegisterInput()

	userRepo.EXPECT().
		GetByEmailOrPhone(gomock.Any(), input.Email, input.Phone).
		Return(nil, domain.ErrUserNotFound)
	blacklist.EXPECT().
		IsBlacklisted(gomock.Any(), gomock.Any()).
		Return(false, errors.New("karma api unreachable")).
		Times(2)
	userRepo.EXPECT().CreateTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)

	uc := usecase.NewUserUseCase(
		mocks.NewMockTransactionManager(), userRepo,
		mocks.NewMockWalletRepository(), blacklist,
		mocks.NewMockIDGenerator(),
		nil,
	)

	user, wallet, err := uc.Register(context.Background(), input)
	if err != nil {
		t.Fatalf("registration must proceed when screening is down, got %v", err)
	}
	if user == nil || wallet == nil {
		t.Error("expected user and wallet despite screening outage")
	}
}

func TestUserUseCase_RegisterRollsBackOnWalletFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	userRepo := mocks.NewMockUserRepository(ctrl)
	blacklist := mocks.NewMockBlacklistChecker(ctrl)
	walletRepo := mocks.NewMockWalletRepository()
	txMgr := mocks.NewMockTransactionManager()
	input := validRegisterInput()

	userRepo.EXPECT().
		GetByEmailOrPhone(gomock.Any(), input.Email, input.Phone).
		Return(nil, domain.ErrUserNotFound)
	blacklist.EXPECT().IsBlacklisted(gomock.Any(), gomock.Any()).Return(false, nil).Times(2)
	userRepo.EXPECT().CreateTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)

	walletErr := errors.New("wallet insert failed")
	walletRepo.CreateTxFunc = func(ctx context.Context, tx usecase.Transaction, wallet *domain.Wallet) error {
		return walletErr
	}

	uc := usecase.NewUserUseCase(txMgr, userRepo, walletRepo, blacklist, mocks.NewMockIDGenerator(), nil)

	_, _, err := uc.Register(context.Background(), input)
	if !errors.Is(err, walletErr) {
		t.Fatalf("expected wallet error, got %v", err)
	}
	if len(txMgr.Begun) != 1 || !txMgr.Begun[0].RolledBack {
		t.Error("expected the transaction to be rolled back")
	}
}

func TestUserUseCase_Authenticate(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("Sup3rSecret"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash failed: %v", err)
	}

	stored := &domain.User{
		ID:           "user-1",
		Email:        "ada@example.com",
		PasswordHash: string(hash),
	}

	tests := []struct {
		name      string
		email     string
		password  string
		repoUser  *domain.User
		repoErr   error
		errorType error
	}{
		{
			name:     "valid credentials",
			email:    "ada@example.com",
			password: "Sup3rSecret",
			repoUser: stored,
		},
		{
			name:     "email is case insensitive",
			email:    "ADA@Example.com",
			password: "Sup3rSecret",
			repoUser: stored,
		},
		{
			name:      "wrong password",
			email:     "ada@example.com",
			password:  "WrongPass1",
			repoUser:  stored,
			errorType: domain.ErrInvalidCredentials,
		},
		{
			name:      "unknown user",
			email:     "ghost@example.com",
			password:  "Sup3rSecret",
			repoErr:   domain.ErrUserNotFound,
			errorType: domain.ErrInvalidCredentials,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			userRepo := mocks.NewMockUserRepository(ctrl)
			userRepo.EXPECT().
				GetByEmail(gomock.Any(), gomock.Any()).
				Return(tt.repoUser, tt.repoErr)

			uc := usecase.NewUserUseCase(
				mocks.NewMockTransactionManager(), userRepo,
				mocks.NewMockWalletRepository(),
				mocks.NewMockBlacklistChecker(ctrl),
				mocks.NewMockIDGenerator(),
				nil,
			)

			user, err := uc.Authenticate(context.Background(), tt.email, tt.password)
			if tt.errorType != nil {
				if !errors.Is(err, tt.errorType) {
					t.Errorf("expected %v, got %v", tt.errorType, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if user.ID != "user-1" {
				t.Errorf("unexpected user: %+v", user)
			}
		})
	}
}
