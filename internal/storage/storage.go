package storage

import (
	"context"
	"errors"

	"github.com/hongminglow/adboard-be/internal/models"
)

// ErrNotFound indicates a record does not exist.
var ErrNotFound = errors.New("record not found")

// ErrAlreadyExists indicates a uniqueness conflict.
var ErrAlreadyExists = errors.New("record already exists")

// ErrInvalidReference indicates a write pointed at a row that does not exist,
// such as a listing whose owner was deleted concurrently.
var ErrInvalidReference = errors.New("referenced record does not exist")

// AccountStore captures account persistence needed by handlers and the authenticator.
type AccountStore interface {
	CreateAccount(ctx context.Context, account models.Account) (models.Account, error)
	GetAccount(ctx context.Context, id int64) (models.Account, error)
	// UpdateAccount loads the account, applies patch and persists it in one transaction.
	UpdateAccount(ctx context.Context, id int64, patch models.AccountPatch) (models.Account, error)
	// DeleteAccount removes the account together with every listing it owns.
	DeleteAccount(ctx context.Context, id int64) error
	FindByCredentials(ctx context.Context, email, passwordHash string) (models.Account, error)
}

// ListingStore captures listing persistence needed by handlers.
type ListingStore interface {
	CreateListing(ctx context.Context, listing models.Listing) (models.Listing, error)
	GetListing(ctx context.Context, id int64) (models.Listing, error)
	UpdateListing(ctx context.Context, id int64, patch models.ListingPatch) (models.Listing, error)
	DeleteListing(ctx context.Context, id int64) error
	// IsOwner reports whether accountID owns listingID. A missing listing is not owned.
	IsOwner(ctx context.Context, accountID, listingID int64) (bool, error)
}

// Store is the full repository handle built at startup.
type Store interface {
	AccountStore
	ListingStore
	Ping(ctx context.Context) error
	Close()
}
