package mocks

import (
	"context"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/obi/gowallet/internal/domain"
	"github.com/obi/gowallet/internal/usecase"
)

// MockWalletRepository is a mock implementation of WalletRepository.
type MockWalletRepository struct {
	mu      sync.RWMutex
	wallets map[string]*domain.Wallet // keyed by user ID

	CreateTxFunc              func(ctx context.Context, tx usecase.Transaction, wallet *domain.Wallet) error
	GetByUserIDFunc           func(ctx context.Context, userID string) (*domain.Wallet, error)
	GetByUserIDForUpdateFunc  func(ctx context.Context, tx usecase.Transaction, userID string) (*domain.Wallet, error)
	GetByUserIDsForUpdateFunc func(ctx context.Context, tx usecase.Transaction, userIDs []string) ([]*domain.Wallet, error)
	UpdateBalanceFunc         func(ctx context.Context, tx usecase.Transaction, walletID string, balance decimal.Decimal, updatedAt time.Time) error
}

func NewMockWalletRepository() *MockWalletRepository {
	return &MockWalletRepository{
		wallets: make(map[string]*domain.Wallet),
	}
}

// Seed adds a wallet to the in-memory store.
func (m *MockWalletRepository) Seed(wallet *domain.Wallet) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.wallets[wallet.UserID] = wallet
}

func (m *MockWalletRepository) CreateTx(ctx context.Context, tx usecase.Transaction, wallet *domain.Wallet) error {
	if m.CreateTxFunc != nil {
		return m.CreateTxFunc(ctx, tx, wallet)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.wallets[wallet.UserID] = wallet
	return nil
}

func (m *MockWalletRepository) GetByUserID(ctx context.Context, userID string) (*domain.Wallet, error) {
	if m.GetByUserIDFunc != nil {
		return m.GetByUserIDFunc(ctx, userID)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if w, ok := m.wallets[userID]; ok {
		return w, nil
	}
	return nil, domain.ErrWalletNotFound
}

func (m *MockWalletRepository) GetByUserIDForUpdate(ctx context.Context, tx usecase.Transaction, userID string) (*domain.Wallet, error) {
	if m.GetByUserIDForUpdateFunc != nil {
		return m.GetByUserIDForUpdateFunc(ctx, tx, userID)
	}
	return m.GetByUserID(ctx, userID)
}

func (m *MockWalletRepository) GetByUserIDsForUpdate(ctx context.Context, tx usecase.Transaction, userIDs []string) ([]*domain.Wallet, error) {
	if m.GetByUserIDsForUpdateFunc != nil {
		return m.GetByUserIDsForUpdateFunc(ctx, tx, userIDs)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var wallets []*domain.Wallet
	for _, id := range userIDs {
		if w, ok := m.wallets[id]; ok {
			wallets = append(wallets, w)
		}
	}
	sort.Slice(wallets, func(i, j int) bool { return wallets[i].ID < wallets[j].ID })
	return wallets, nil
}

func (m *MockWalletRepository) UpdateBalance(ctx context.Context, tx usecase.Transaction, walletID string, balance decimal.Decimal, updatedAt time.Time) error {
	if m.UpdateBalanceFunc != nil {
		return m.UpdateBalanceFunc(ctx, tx, walletID, balance, updatedAt)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, w := range m.wallets {
		if w.ID == walletID {
			w.Balance = balance
			w.UpdatedAt = updatedAt
		}
	}
	return nil
}

// MockTransactionRepository is a mock implementation of TransactionRepository.
type MockTransactionRepository struct {
	mu      sync.RWMutex
	entries []*domain.Transaction

	CreateFunc                func(ctx context.Context, tx usecase.Transaction, entry *domain.Transaction) error
	GetByReferenceFunc        func(ctx context.Context, reference string) (*domain.Transaction, error)
	GetByReferenceForUserFunc func(ctx context.Context, userID, reference string) (*domain.Transaction, error)
	ListByWalletFunc          func(ctx context.Context, walletID string, limit, offset int) ([]*domain.Transaction, error)
	ListByUserFunc            func(ctx context.Context, userID string, limit, offset int) ([]*domain.Transaction, error)
}

func NewMockTransactionRepository() *MockTransactionRepository {
	return &MockTransactionRepository{}
}

// Entries returns a copy of everything inserted so far.
func (m *MockTransactionRepository) Entries() []*domain.Transaction {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*domain.Transaction, len(m.entries))
	copy(out, m.entries)
	return out
}

func (m *MockTransactionRepository) Create(ctx context.Context, tx usecase.Transaction, entry *domain.Transaction) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, tx, entry)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, e := range m.entries {
		if e.Reference == entry.Reference && e.Type == entry.Type {
			return domain.ErrDuplicateReference
		}
	}
	m.entries = append(m.entries, entry)
	return nil
}

func (m *MockTransactionRepository) GetByReference(ctx context.Context, reference string) (*domain.Transaction, error) {
	if m.GetByReferenceFunc != nil {
		return m.GetByReferenceFunc(ctx, reference)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, e := range m.entries {
		if e.Reference == reference {
			return e, nil
		}
	}
	return nil, domain.ErrTransactionNotFound
}

func (m *MockTransactionRepository) GetByReferenceForUser(ctx context.Context, userID, reference string) (*domain.Transaction, error) {
	if m.GetByReferenceForUserFunc != nil {
		return m.GetByReferenceForUserFunc(ctx, userID, reference)
	}
	return nil, domain.ErrTransactionNotFound
}

func (m *MockTransactionRepository) ListByWallet(ctx context.Context, walletID string, limit, offset int) ([]*domain.Transaction, error) {
	if m.ListByWalletFunc != nil {
		return m.ListByWalletFunc(ctx, walletID, limit, offset)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*domain.Transaction
	for _, e := range m.entries {
		if e.WalletID == walletID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (m *MockTransactionRepository) ListByUser(ctx context.Context, userID string, limit, offset int) ([]*domain.Transaction, error) {
	if m.ListByUserFunc != nil {
		return m.ListByUserFunc(ctx, userID, limit, offset)
	}
	return nil, nil
}

// MockTransaction is a mock database transaction.
type MockTransaction struct {
	CommitFunc   func(ctx context.Context) error
	RollbackFunc func(ctx context.Context) error

	Committed  bool
	RolledBack bool
}

func (m *MockTransaction) Commit(ctx context.Context) error {
	if m.CommitFunc != nil {
		return m.CommitFunc(ctx)
	}
	m.Committed = true
	return nil
}

func (m *MockTransaction) Rollback(ctx context.Context) error {
	if m.RollbackFunc != nil {
		return m.RollbackFunc(ctx)
	}
	if !m.Committed {
		m.RolledBack = true
	}
	return nil
}

// MockTransactionManager is a mock implementation of TransactionManager.
type MockTransactionManager struct {
	BeginFunc func(ctx context.Context) (usecase.Transaction, error)

	mu    sync.Mutex
	Begun []*MockTransaction
}

func NewMockTransactionManager() *MockTransactionManager {
	return &MockTransactionManager{}
}

func (m *MockTransactionManager) Begin(ctx context.Context) (usecase.Transaction, error) {
	if m.BeginFunc != nil {
		return m.BeginFunc(ctx)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	tx := &MockTransaction{}
	m.Begun = append(m.Begun, tx)
	return tx, nil
}

// MockIDGenerator is a mock implementation of IDGenerator.
type MockIDGenerator struct {
	mu      sync.Mutex
	counter int

	GenerateFunc  func() string
	ReferenceFunc func(category domain.TransactionCategory) string
}

func NewMockIDGenerator() *MockIDGenerator {
	return &MockIDGenerator{}
}

func (m *MockIDGenerator) Generate() string {
	if m.GenerateFunc != nil {
		return m.GenerateFunc()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.counter++
	return "id-" + strconv.Itoa(m.counter)
}

func (m *MockIDGenerator) Reference(category domain.TransactionCategory) string {
	if m.ReferenceFunc != nil {
		return m.ReferenceFunc(category)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.counter++
	return string(category) + "-ref-" + strconv.Itoa(m.counter)
}

// MockRetrier runs the operation once, no backoff.
type MockRetrier struct {
	RetryFunc func(ctx context.Context, operation func() error) error
}

func NewMockRetrier() *MockRetrier {
	return &MockRetrier{}
}

func (m *MockRetrier) Retry(ctx context.Context, operation func() error) error {
	if m.RetryFunc != nil {
		return m.RetryFunc(ctx, operation)
	}
	return operation()
}
