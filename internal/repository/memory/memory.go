// Package memory is an in-memory domain.Store. It backs the unit tests so
// the ledger and the transaction store can be exercised without Postgres,
// with the same serialization and commit-or-rollback guarantees.
package memory

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"international-payments/internal/domain"
	"international-payments/internal/errors"
)

type data struct {
	accounts     map[uuid.UUID]*domain.Account // keyed by user id
	transactions map[uuid.UUID]*domain.Transaction
	seq          map[uuid.UUID]int // insertion order, tie-break for equal timestamps
	nextSeq      int
	users        map[uuid.UUID]*domain.User
	byUsername   map[string]uuid.UUID
}

func (d *data) clone() *data {
	c := &data{
		accounts:     make(map[uuid.UUID]*domain.Account, len(d.accounts)),
		transactions: make(map[uuid.UUID]*domain.Transaction, len(d.transactions)),
		seq:          make(map[uuid.UUID]int, len(d.seq)),
		nextSeq:      d.nextSeq,
		users:        make(map[uuid.UUID]*domain.User, len(d.users)),
		byUsername:   make(map[string]uuid.UUID, len(d.byUsername)),
	}
	for k, v := range d.accounts {
		a := *v
		c.accounts[k] = &a
	}
	for k, v := range d.transactions {
		t := *v
		c.transactions[k] = &t
	}
	for k, v := range d.seq {
		c.seq[k] = v
	}
	for k, v := range d.users {
		u := *v
		c.users[k] = &u
	}
	for k, v := range d.byUsername {
		c.byUsername[k] = v
	}
	return c
}

// Store implements domain.Store over mutex-guarded maps. A single store
// mutex serializes every operation, which also makes debit's check-then-act
// atomic the way the Postgres conditional update does.
type Store struct {
	mu   *sync.Mutex
	inTx bool
	data *data
}

func NewStore() *Store {
	return &Store{
		mu: &sync.Mutex{},
		data: &data{
			accounts:     make(map[uuid.UUID]*domain.Account),
			transactions: make(map[uuid.UUID]*domain.Transaction),
			seq:          make(map[uuid.UUID]int),
			users:        make(map[uuid.UUID]*domain.User),
			byUsername:   make(map[string]uuid.UUID),
		},
	}
}

// lock acquires the store mutex unless we are already inside a unit of work
// that holds it.
func (s *Store) lock() func() {
	if s.inTx {
		return func() {}
	}
	s.mu.Lock()
	return s.mu.Unlock
}

func (s *Store) Accounts() domain.AccountRepository         { return accountRepo{s} }
func (s *Store) Transactions() domain.TransactionRepository { return transactionRepo{s} }
func (s *Store) Users() domain.UserRepository               { return userRepo{s} }

// WithinTransaction snapshots the data, runs fn under the store mutex, and
// restores the snapshot when fn fails.
func (s *Store) WithinTransaction(fn func(domain.Store) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := s.data.clone()
	child := &Store{mu: s.mu, inTx: true, data: s.data}

	if err := fn(child); err != nil {
		*s.data = *snapshot
		return err
	}
	return nil
}

var _ domain.Store = (*Store)(nil)

type accountRepo struct{ s *Store }

func (r accountRepo) CreateAccount(account *domain.Account) error {
	defer r.s.lock()()

	if _, exists := r.s.data.accounts[account.UserID]; exists {
		return errors.NewAppError(errors.InternalError, "account already exists for user")
	}

	now := time.Now()
	account.CreatedAt = now
	account.UpdatedAt = now
	a := *account
	r.s.data.accounts[account.UserID] = &a
	return nil
}

func (r accountRepo) AccountByUserID(userID uuid.UUID) (*domain.Account, error) {
	defer r.s.lock()()

	account, ok := r.s.data.accounts[userID]
	if !ok {
		return nil, errors.ErrAccountNotFound
	}
	a := *account
	return &a, nil
}

func (r accountRepo) Debit(userID uuid.UUID, amount decimal.Decimal) (*domain.Account, error) {
	defer r.s.lock()()

	account, ok := r.s.data.accounts[userID]
	if !ok {
		return nil, errors.ErrAccountNotFound
	}
	if account.Balance.LessThan(amount) {
		return nil, errors.ErrInsufficientFunds
	}

	account.Balance = account.Balance.Sub(amount)
	account.UpdatedAt = time.Now()
	a := *account
	return &a, nil
}

func (r accountRepo) Credit(userID uuid.UUID, amount decimal.Decimal) (*domain.Account, error) {
	defer r.s.lock()()

	account, ok := r.s.data.accounts[userID]
	if !ok {
		return nil, errors.ErrAccountNotFound
	}

	account.Balance = account.Balance.Add(amount)
	account.UpdatedAt = time.Now()
	a := *account
	return &a, nil
}

type transactionRepo struct{ s *Store }

func (r transactionRepo) CreateTransaction(tx *domain.Transaction) error {
	defer r.s.lock()()

	now := time.Now()
	if tx.CreatedAt.IsZero() {
		tx.CreatedAt = now
	}
	tx.UpdatedAt = now

	t := *tx
	r.s.data.transactions[tx.ID] = &t
	r.s.data.seq[tx.ID] = r.s.data.nextSeq
	r.s.data.nextSeq++
	return nil
}

func (r transactionRepo) TransactionByID(id uuid.UUID) (*domain.Transaction, error) {
	defer r.s.lock()()

	tx, ok := r.s.data.transactions[id]
	if !ok {
		return nil, errors.ErrTransactionNotFound
	}
	t := *tx
	return &t, nil
}

func (r transactionRepo) TransactionsByUser(userID uuid.UUID) ([]domain.Transaction, error) {
	return r.list(func(tx *domain.Transaction) bool { return tx.UserID == userID })
}

func (r transactionRepo) TransactionsByStatus(status domain.Status) ([]domain.Transaction, error) {
	return r.list(func(tx *domain.Transaction) bool { return tx.Status == status })
}

func (r transactionRepo) AllTransactions() ([]domain.Transaction, error) {
	return r.list(func(*domain.Transaction) bool { return true })
}

func (r transactionRepo) UpdateTransactionStatus(id uuid.UUID, status domain.Status) error {
	defer r.s.lock()()

	tx, ok := r.s.data.transactions[id]
	if !ok {
		return errors.ErrTransactionNotFound
	}
	tx.Status = status
	tx.UpdatedAt = time.Now()
	return nil
}

func (r transactionRepo) list(match func(*domain.Transaction) bool) ([]domain.Transaction, error) {
	defer r.s.lock()()

	var out []domain.Transaction
	for _, tx := range r.s.data.transactions {
		if match(tx) {
			out = append(out, *tx)
		}
	}

	seq := r.s.data.seq
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return seq[out[i].ID] > seq[out[j].ID]
	})
	return out, nil
}

type userRepo struct{ s *Store }

func (r userRepo) CreateUser(user *domain.User) error {
	defer r.s.lock()()

	if _, exists := r.s.data.byUsername[user.Username]; exists {
		return errors.ErrDuplicateUser
	}

	user.CreatedAt = time.Now()
	u := *user
	r.s.data.users[user.ID] = &u
	r.s.data.byUsername[user.Username] = user.ID
	return nil
}

func (r userRepo) UserByID(id uuid.UUID) (*domain.User, error) {
	defer r.s.lock()()

	user, ok := r.s.data.users[id]
	if !ok {
		return nil, errors.ErrUserNotFound
	}
	u := *user
	return &u, nil
}

func (r userRepo) UserByUsername(username string) (*domain.User, error) {
	defer r.s.lock()()

	id, ok := r.s.data.byUsername[username]
	if !ok {
		return nil, errors.ErrUserNotFound
	}
	u := *r.s.data.users[id]
	return &u, nil
}
