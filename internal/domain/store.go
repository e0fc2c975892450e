package domain

// Store groups the repositories behind a single persistence boundary and
// provides a unit of work. Implementations: Postgres (production) and an
// in-memory store (tests).
type Store interface {
	Accounts() AccountRepository
	Transactions() TransactionRepository
	Users() UserRepository
	// WithinTransaction runs fn against a Store whose writes commit or roll
	// back as one unit. The payment workflow relies on this so a debit is
	// never persisted without its transaction record.
	WithinTransaction(fn func(Store) error) error
}
