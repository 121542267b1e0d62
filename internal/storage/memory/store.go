// Package memory is an in-process storage.Store with the same uniqueness,
// ownership and cascade rules as the Postgres schema. Handler tests use it.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/hongminglow/adboard-be/internal/models"
	"github.com/hongminglow/adboard-be/internal/storage"
)

var _ storage.Store = (*Store)(nil)

// Store keeps accounts and listings in maps guarded by a single mutex.
type Store struct {
	mu            sync.Mutex
	now           func() time.Time
	nextAccountID int64
	nextListingID int64
	accounts      map[int64]models.Account
	listings      map[int64]models.Listing
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{
		now:      time.Now,
		accounts: map[int64]models.Account{},
		listings: map[int64]models.Listing{},
	}
}

// Ping always succeeds.
func (s *Store) Ping(context.Context) error { return nil }

// Close is a no-op.
func (s *Store) Close() {}

func (s *Store) CreateAccount(_ context.Context, account models.Account) (models.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.taken(0, account.Name, account.Email) {
		return models.Account{}, storage.ErrAlreadyExists
	}
	s.nextAccountID++
	account.ID = s.nextAccountID
	account.CreatedAt = s.now().UTC()
	s.accounts[account.ID] = account
	return account, nil
}

func (s *Store) GetAccount(_ context.Context, id int64) (models.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := s.accounts[id]
	if !ok {
		return models.Account{}, storage.ErrNotFound
	}
	return a, nil
}

func (s *Store) UpdateAccount(_ context.Context, id int64, patch models.AccountPatch) (models.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := s.accounts[id]
	if !ok {
		return models.Account{}, storage.ErrNotFound
	}
	patch.Apply(&a)
	if s.taken(id, a.Name, a.Email) {
		return models.Account{}, storage.ErrAlreadyExists
	}
	s.accounts[id] = a
	return a, nil
}

func (s *Store) DeleteAccount(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.accounts[id]; !ok {
		return storage.ErrNotFound
	}
	for lid, l := range s.listings {
		if l.OwnerID == id {
			delete(s.listings, lid)
		}
	}
	delete(s.accounts, id)
	return nil
}

func (s *Store) FindByCredentials(_ context.Context, email, passwordHash string) (models.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, id := range s.accountIDs() {
		a := s.accounts[id]
		if a.Email == email && a.PasswordHash == passwordHash {
			return a, nil
		}
	}
	return models.Account{}, storage.ErrNotFound
}

func (s *Store) CreateListing(_ context.Context, listing models.Listing) (models.Listing, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.accounts[listing.OwnerID]; !ok {
		return models.Listing{}, storage.ErrInvalidReference
	}
	s.nextListingID++
	listing.ID = s.nextListingID
	listing.CreatedAt = s.now().UTC()
	s.listings[listing.ID] = listing
	return listing, nil
}

func (s *Store) GetListing(_ context.Context, id int64) (models.Listing, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	l, ok := s.listings[id]
	if !ok {
		return models.Listing{}, storage.ErrNotFound
	}
	return l, nil
}

func (s *Store) UpdateListing(_ context.Context, id int64, patch models.ListingPatch) (models.Listing, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	l, ok := s.listings[id]
	if !ok {
		return models.Listing{}, storage.ErrNotFound
	}
	patch.Apply(&l)
	s.listings[id] = l
	return l, nil
}

func (s *Store) DeleteListing(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.listings[id]; !ok {
		return storage.ErrNotFound
	}
	delete(s.listings, id)
	return nil
}

func (s *Store) IsOwner(_ context.Context, accountID, listingID int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.accounts[accountID]; !ok {
		return false, nil
	}
	l, ok := s.listings[listingID]
	return ok && l.OwnerID == accountID, nil
}

// taken reports whether another account than self already uses name or email.
// Callers hold s.mu.
func (s *Store) taken(self int64, name, email string) bool {
	for id, a := range s.accounts {
		if id == self {
			continue
		}
		if a.Name == name || a.Email == email {
			return true
		}
	}
	return false
}

// accountIDs returns ids in insertion order so lookups are deterministic.
func (s *Store) accountIDs() []int64 {
	ids := make([]int64, 0, len(s.accounts))
	for id := range s.accounts {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
