package usecase

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/obi/gowallet/internal/domain"
	"github.com/obi/gowallet/internal/infrastructure/metrics"
)

// WalletUseCase orchestrates all balance-affecting operations. Every
// mutation runs inside exactly one database transaction: the wallet row is
// locked, re-read, validated, the new balance is written, and the matching
// ledger entry is appended before commit. Transient storage conflicts are
// retried through the Retrier.
type WalletUseCase struct {
	txManager  TransactionManager
	walletRepo WalletRepository
	txnRepo    TransactionRepository
	idGen      IDGenerator
	retrier    Retrier
	metrics    *metrics.Metrics
	limits     Limits
}

// NewWalletUseCase creates a new WalletUseCase.
func NewWalletUseCase(
	txManager TransactionManager,
	walletRepo WalletRepository,
	txnRepo TransactionRepository,
	idGen IDGenerator,
	retrier Retrier,
	m *metrics.Metrics,
	limits Limits,
) *WalletUseCase {
	return &WalletUseCase{
		txManager:  txManager,
		walletRepo: walletRepo,
		txnRepo:    txnRepo,
		idGen:      idGen,
		retrier:    retrier,
		metrics:    m,
		limits:     limits,
	}
}

// GetWallet retrieves the wallet owned by a user.
func (uc *WalletUseCase) GetWallet(ctx context.Context, userID string) (*domain.Wallet, error) {
	return uc.walletRepo.GetByUserID(ctx, userID)
}

// FundInput represents input for funding a wallet.
type FundInput struct {
	UserID    string
	Amount    decimal.Decimal
	Reference string // optional; generated when empty
}

// FundResult is the outcome of a successful funding.
type FundResult struct {
	Wallet      *domain.Wallet
	Transaction *domain.Transaction
}

// Fund credits a wallet and appends the matching funding entry.
func (uc *WalletUseCase) Fund(ctx context.Context, input FundInput) (*FundResult, error) {
	start := time.Now()

	if err := domain.ValidateAmount(input.Amount); err != nil {
		uc.recordError("fund", err)
		return nil, err
	}

	if input.Amount.LessThan(uc.limits.MinDeposit) {
		uc.recordError("fund", domain.ErrAmountTooSmall)
		return nil, fmt.Errorf("%w: minimum deposit is %s", domain.ErrAmountTooSmall, uc.limits.MinDeposit)
	}

	if input.Amount.GreaterThan(uc.limits.MaxDeposit) {
		uc.recordError("fund", domain.ErrAmountTooLarge)
		return nil, fmt.Errorf("%w: maximum deposit is %s", domain.ErrAmountTooLarge, uc.limits.MaxDeposit)
	}

	var result *FundResult

	err := uc.retrier.Retry(ctx, func() error {
		r, err := uc.fundOnce(ctx, input)
		if err != nil {
			return err
		}

		result = r

		return nil
	})
	if err != nil {
		uc.recordError("fund", err)
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.FundingsCreated.Inc()
		uc.metrics.OperationDuration.WithLabelValues("fund").Observe(time.Since(start).Seconds())
		uc.metrics.OperationAmount.WithLabelValues("fund").Observe(input.Amount.InexactFloat64())
	}

	return result, nil
}

func (uc *WalletUseCase) fundOnce(ctx context.Context, input FundInput) (*FundResult, error) {
	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	wallet, err := uc.walletRepo.GetByUserIDForUpdate(ctx, tx, input.UserID)
	if err != nil {
		return nil, err
	}

	reference := input.Reference
	if reference == "" {
		reference = uc.idGen.Reference(domain.CategoryFunding)
	} else if err := uc.checkReferenceUnused(ctx, reference); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	newBalance := wallet.ApplyCredit(input.Amount)

	if err := domain.ValidateBalance(newBalance); err != nil {
		return nil, err
	}

	entry := &domain.Transaction{
		ID:            uc.idGen.Generate(),
		WalletID:      wallet.ID,
		Type:          domain.TypeCredit,
		Category:      domain.CategoryFunding,
		Amount:        input.Amount,
		BalanceBefore: wallet.Balance,
		BalanceAfter:  newBalance,
		Reference:     reference,
		Description:   "Wallet funding",
		Status:        domain.StatusCompleted,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := entry.Validate(); err != nil {
		return nil, err
	}

	if err := uc.txnRepo.Create(ctx, tx, entry); err != nil {
		return nil, err
	}

	if err := uc.walletRepo.UpdateBalance(ctx, tx, wallet.ID, newBalance, now); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	wallet.Balance = newBalance
	wallet.UpdatedAt = now

	return &FundResult{Wallet: wallet, Transaction: entry}, nil
}

// WithdrawInput represents input for a withdrawal.
type WithdrawInput struct {
	UserID string
	Amount decimal.Decimal
}

// WithdrawResult is the outcome of a successful withdrawal.
type WithdrawResult struct {
	Wallet      *domain.Wallet
	Transaction *domain.Transaction
}

// Withdraw debits a wallet and appends the matching withdrawal entry.
// A balance short of the amount fails with ErrInsufficientFunds and
// leaves both the wallet and the ledger untouched.
func (uc *WalletUseCase) Withdraw(ctx context.Context, input WithdrawInput) (*WithdrawResult, error) {
	start := time.Now()

	if err := domain.ValidateAmount(input.Amount); err != nil {
		uc.recordError("withdraw", err)
		return nil, err
	}

	if input.Amount.LessThan(uc.limits.MinWithdrawal) {
		uc.recordError("withdraw", domain.ErrAmountTooSmall)
		return nil, fmt.Errorf("%w: minimum withdrawal is %s", domain.ErrAmountTooSmall, uc.limits.MinWithdrawal)
	}

	var result *WithdrawResult

	err := uc.retrier.Retry(ctx, func() error {
		r, err := uc.withdrawOnce(ctx, input)
		if err != nil {
			return err
		}

		result = r

		return nil
	})
	if err != nil {
		uc.recordError("withdraw", err)
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.WithdrawalsCreated.Inc()
		uc.metrics.OperationDuration.WithLabelValues("withdraw").Observe(time.Since(start).Seconds())
		uc.metrics.OperationAmount.WithLabelValues("withdraw").Observe(input.Amount.InexactFloat64())
	}

	return result, nil
}

func (uc *WalletUseCase) withdrawOnce(ctx context.Context, input WithdrawInput) (*WithdrawResult, error) {
	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	wallet, err := uc.walletRepo.GetByUserIDForUpdate(ctx, tx, input.UserID)
	if err != nil {
		return nil, err
	}

	if err := wallet.ValidateDebit(input.Amount); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	newBalance := wallet.ApplyDebit(input.Amount)

	entry := &domain.Transaction{
		ID:            uc.idGen.Generate(),
		WalletID:      wallet.ID,
		Type:          domain.TypeDebit,
		Category:      domain.CategoryWithdrawal,
		Amount:        input.Amount,
		BalanceBefore: wallet.Balance,
		BalanceAfter:  newBalance,
		Reference:     uc.idGen.Reference(domain.CategoryWithdrawal),
		Description:   "Wallet withdrawal",
		Status:        domain.StatusCompleted,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := entry.Validate(); err != nil {
		return nil, err
	}

	if err := uc.txnRepo.Create(ctx, tx, entry); err != nil {
		return nil, err
	}

	if err := uc.walletRepo.UpdateBalance(ctx, tx, wallet.ID, newBalance, now); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	wallet.Balance = newBalance
	wallet.UpdatedAt = now

	return &WithdrawResult{Wallet: wallet, Transaction: entry}, nil
}

// TransferInput represents input for a wallet-to-wallet transfer.
type TransferInput struct {
	FromUserID  string
	ToUserID    string
	Amount      decimal.Decimal
	Description string // optional
}

// TransferResult is the outcome of a successful transfer: both updated
// wallets plus the paired ledger entries sharing one reference.
type TransferResult struct {
	FromWallet  *domain.Wallet
	ToWallet    *domain.Wallet
	DebitEntry  *domain.Transaction
	CreditEntry *domain.Transaction
}

// Transfer moves funds between two wallets. Both rows are locked in one
// query ordered by wallet ID, so two opposite-direction transfers on the
// same pair can never deadlock on each other. The two balance writes and
// the two ledger entries commit as a single atomic unit.
func (uc *WalletUseCase) Transfer(ctx context.Context, input TransferInput) (*TransferResult, error) {
	start := time.Now()

	if err := domain.ValidateAmount(input.Amount); err != nil {
		uc.recordError("transfer", err)
		return nil, err
	}

	if input.FromUserID == input.ToUserID {
		uc.recordError("transfer", domain.ErrSameWallet)
		return nil, domain.ErrSameWallet
	}

	if err := domain.ValidateDescription(input.Description); err != nil {
		uc.recordError("transfer", err)
		return nil, err
	}

	var result *TransferResult

	err := uc.retrier.Retry(ctx, func() error {
		r, err := uc.transferOnce(ctx, input)
		if err != nil {
			return err
		}

		result = r

		return nil
	})
	if err != nil {
		uc.recordError("transfer", err)
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.TransfersCreated.Inc()
		uc.metrics.OperationDuration.WithLabelValues("transfer").Observe(time.Since(start).Seconds())
		uc.metrics.OperationAmount.WithLabelValues("transfer").Observe(input.Amount.InexactFloat64())
	}

	return result, nil
}

func (uc *WalletUseCase) transferOnce(ctx context.Context, input TransferInput) (*TransferResult, error) {
	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	// Lock both rows in canonical order. The repository orders the
	// FOR UPDATE by wallet ID; sorting the user IDs here keeps the
	// query input deterministic as well.
	userIDs := []string{input.FromUserID, input.ToUserID}
	sort.Strings(userIDs)

	wallets, err := uc.walletRepo.GetByUserIDsForUpdate(ctx, tx, userIDs)
	if err != nil {
		return nil, err
	}

	if len(wallets) != 2 {
		return nil, domain.ErrWalletNotFound
	}

	var fromWallet, toWallet *domain.Wallet
	for _, w := range wallets {
		switch w.UserID {
		case input.FromUserID:
			fromWallet = w
		case input.ToUserID:
			toWallet = w
		}
	}

	if fromWallet == nil || toWallet == nil {
		return nil, domain.ErrWalletNotFound
	}

	if fromWallet.Currency != toWallet.Currency {
		return nil, domain.ErrCurrencyMismatch
	}

	if err := fromWallet.ValidateDebit(input.Amount); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	reference := uc.idGen.Reference(domain.CategoryTransfer)

	fromNewBalance := fromWallet.ApplyDebit(input.Amount)
	toNewBalance := toWallet.ApplyCredit(input.Amount)

	if err := domain.ValidateBalance(toNewBalance); err != nil {
		return nil, err
	}

	debitDescription := input.Description
	creditDescription := input.Description
	if input.Description == "" {
		debitDescription = "Transfer to " + input.ToUserID
		creditDescription = "Transfer from " + input.FromUserID
	}

	debitEntry := &domain.Transaction{
		ID:                uc.idGen.Generate(),
		WalletID:          fromWallet.ID,
		RecipientWalletID: &toWallet.ID,
		Type:              domain.TypeDebit,
		Category:          domain.CategoryTransfer,
		Amount:            input.Amount,
		BalanceBefore:     fromWallet.Balance,
		BalanceAfter:      fromNewBalance,
		Reference:         reference,
		Description:       debitDescription,
		Status:            domain.StatusCompleted,
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	creditEntry := &domain.Transaction{
		ID:                uc.idGen.Generate(),
		WalletID:          toWallet.ID,
		RecipientWalletID: &fromWallet.ID,
		Type:              domain.TypeCredit,
		Category:          domain.CategoryTransfer,
		Amount:            input.Amount,
		BalanceBefore:     toWallet.Balance,
		BalanceAfter:      toNewBalance,
		Reference:         reference,
		Description:       creditDescription,
		Status:            domain.StatusCompleted,
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	for _, entry := range []*domain.Transaction{debitEntry, creditEntry} {
		if err := entry.Validate(); err != nil {
			return nil, err
		}

		if err := uc.txnRepo.Create(ctx, tx, entry); err != nil {
			return nil, err
		}
	}

	if err := uc.walletRepo.UpdateBalance(ctx, tx, fromWallet.ID, fromNewBalance, now); err != nil {
		return nil, err
	}

	if err := uc.walletRepo.UpdateBalance(ctx, tx, toWallet.ID, toNewBalance, now); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	fromWallet.Balance = fromNewBalance
	fromWallet.UpdatedAt = now
	toWallet.Balance = toNewBalance
	toWallet.UpdatedAt = now

	return &TransferResult{
		FromWallet:  fromWallet,
		ToWallet:    toWallet,
		DebitEntry:  debitEntry,
		CreditEntry: creditEntry,
	}, nil
}

// checkReferenceUnused rejects a caller-supplied reference that is
// already in the ledger. The unique index on reference closes the race
// between two concurrent calls carrying the same key.
func (uc *WalletUseCase) checkReferenceUnused(ctx context.Context, reference string) error {
	_, err := uc.txnRepo.GetByReference(ctx, reference)
	if err == nil {
		return domain.ErrDuplicateReference
	}

	if !errors.Is(err, domain.ErrTransactionNotFound) {
		return err
	}

	return nil
}

func (uc *WalletUseCase) recordError(operation string, err error) {
	if uc.metrics == nil {
		return
	}

	uc.metrics.OperationErrors.WithLabelValues(operation, errorType(err)).Inc()
}

// errorType maps an operation error to a low-cardinality metric label.
func errorType(err error) string {
	switch {
	case errors.Is(err, domain.ErrInsufficientFunds):
		return "insufficient_funds"
	case errors.Is(err, domain.ErrWalletNotFound):
		return "wallet_not_found"
	case errors.Is(err, domain.ErrDuplicateReference):
		return "duplicate_reference"
	case errors.Is(err, domain.ErrSameWallet):
		return "same_wallet"
	case errors.Is(err, domain.ErrCurrencyMismatch):
		return "currency_mismatch"
	case errors.Is(err, domain.ErrInvalidAmount),
		errors.Is(err, domain.ErrInvalidAmountScale),
		errors.Is(err, domain.ErrAmountTooSmall),
		errors.Is(err, domain.ErrAmountTooLarge):
		return "invalid_amount"
	case errors.Is(err, domain.ErrTxRetryable):
		return "transient_conflict"
	default:
		return "internal"
	}
}
