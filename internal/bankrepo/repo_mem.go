package bankrepo

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/go-banco/banco/internal/domain"
)

// RepoMem is an in-memory bank store with the same contract as RepoPGS.
//
// Fixtures are installed explicitly through Seed; the account collections of
// seeded banks are kept as given, in insertion order. Banks are copied in
// and out, account pointers included, so callers never share the stored
// structs.
type RepoMem struct {
	mu     sync.RWMutex
	banks  map[int64]domain.Bank
	nextID int64
}

// NewRepoMem returns an empty in-memory bank repository.
func NewRepoMem() *RepoMem {
	return &RepoMem{
		banks: make(map[int64]domain.Bank),
	}
}

// cloneBank returns a copy of the bank whose accounts slice and the accounts
// it points to are owned by the caller.
func cloneBank(b domain.Bank) domain.Bank {
	if b.Accounts == nil {
		return b
	}

	accounts := make([]*domain.Account, len(b.Accounts))
	for i, a := range b.Accounts {
		copied := *a
		accounts[i] = &copied
	}

	b.Accounts = accounts

	return b
}

// Seed installs the given banks as fixtures, assigning IDs to banks that do
// not carry one yet.
func (r *RepoMem) Seed(banks ...domain.Bank) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, b := range banks {
		if b.ID == 0 {
			r.nextID++
			b.ID = r.nextID
		} else if b.ID > r.nextID {
			r.nextID = b.ID
		}

		if b.CreatedAt.IsZero() {
			b.CreatedAt = time.Now().UTC()
		}

		r.banks[b.ID] = cloneBank(b)
	}
}

// Get returns the bank with the given id.
func (r *RepoMem) Get(ctx context.Context, id int64) (domain.Bank, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	b, ok := r.banks[id]
	if !ok {
		return domain.Bank{}, domain.ErrBankNotFound
	}

	return cloneBank(b), nil
}

// List returns all banks ordered by id.
func (r *RepoMem) List(ctx context.Context) ([]domain.Bank, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	items := make([]domain.Bank, 0, len(r.banks))
	for _, b := range r.banks {
		items = append(items, cloneBank(b))
	}

	sort.Slice(items, func(i, j int) bool { return items[i].ID < items[j].ID })

	return items, nil
}

// Update persists the bank and returns the stored representation, applying
// the same version check as the Postgres repo.
func (r *RepoMem) Update(ctx context.Context, bank domain.Bank) (domain.Bank, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.banks[bank.ID]
	if !ok {
		return domain.Bank{}, domain.ErrBankNotFound
	}

	if stored.Version != bank.Version {
		return domain.Bank{}, domain.ErrStaleBank
	}

	bank.Version++
	bank.CreatedAt = stored.CreatedAt
	r.banks[bank.ID] = cloneBank(bank)

	return cloneBank(bank), nil
}
