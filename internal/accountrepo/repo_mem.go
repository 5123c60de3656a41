package accountrepo

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/go-banco/banco/internal/domain"
)

// RepoMem is an in-memory account store with the same contract as RepoPGS.
//
// It backs the memory driver and tests. Fixtures are installed explicitly
// through Seed by the caller; there is no process-wide sample data. Values
// are copied in and out so callers never share the stored structs, and the
// same version discipline as the Postgres repo applies.
type RepoMem struct {
	mu       sync.RWMutex
	accounts map[int64]domain.Account
	nextID   int64
}

// NewRepoMem returns an empty in-memory account repository.
func NewRepoMem() *RepoMem {
	return &RepoMem{
		accounts: make(map[int64]domain.Account),
	}
}

// Seed installs the given accounts as fixtures, assigning IDs to accounts
// that do not carry one yet.
func (r *RepoMem) Seed(accounts ...domain.Account) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, a := range accounts {
		if a.ID == 0 {
			r.nextID++
			a.ID = r.nextID
		} else if a.ID > r.nextID {
			r.nextID = a.ID
		}

		if a.CreatedAt.IsZero() {
			a.CreatedAt = time.Now().UTC()
		}

		r.accounts[a.ID] = a
	}
}

// Create stores the account under a fresh id and returns it.
func (r *RepoMem) Create(ctx context.Context, account domain.Account) (domain.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	account.ID = r.nextID
	account.Version = 0
	account.CreatedAt = time.Now().UTC()

	r.accounts[account.ID] = account

	return account, nil
}

// Get returns the account with the given id.
func (r *RepoMem) Get(ctx context.Context, id int64) (domain.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	a, ok := r.accounts[id]
	if !ok {
		return domain.Account{}, domain.ErrAccountNotFound
	}

	return a, nil
}

// List returns all accounts ordered by id.
func (r *RepoMem) List(ctx context.Context) ([]domain.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	items := make([]domain.Account, 0, len(r.accounts))
	for _, a := range r.accounts {
		items = append(items, a)
	}

	sort.Slice(items, func(i, j int) bool { return items[i].ID < items[j].ID })

	return items, nil
}

// Update persists the account and returns the stored representation.
//
// The stored version must match the account's version; otherwise the account
// was updated since it was read and domain.ErrStaleAccount is returned.
func (r *RepoMem) Update(ctx context.Context, account domain.Account) (domain.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.accounts[account.ID]
	if !ok {
		return domain.Account{}, domain.ErrAccountNotFound
	}

	if stored.Version != account.Version {
		return domain.Account{}, domain.ErrStaleAccount
	}

	account.Version++
	account.CreatedAt = stored.CreatedAt
	r.accounts[account.ID] = account

	return account, nil
}

// Delete removes the account with the given id.
func (r *RepoMem) Delete(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.accounts[id]; !ok {
		return domain.ErrAccountNotFound
	}

	delete(r.accounts, id)

	return nil
}
