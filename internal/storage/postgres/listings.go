package postgres

import (
	"context"

	"github.com/hongminglow/adboard-be/internal/models"
	"github.com/hongminglow/adboard-be/internal/storage"
	"github.com/jackc/pgx/v5"
)

const listingColumns = `id, owner_id, title, description, created_at`

// CreateListing inserts a new listing row.
func (s *Store) CreateListing(ctx context.Context, listing models.Listing) (models.Listing, error) {
	const query = `
		INSERT INTO listings (owner_id, title, description)
		VALUES ($1, $2, $3)
		RETURNING ` + listingColumns
	row := s.pool.QueryRow(ctx, query, listing.OwnerID, listing.Title, listing.Description)
	return scanListing(row)
}

// GetListing fetches a listing by id.
func (s *Store) GetListing(ctx context.Context, id int64) (models.Listing, error) {
	const query = `SELECT ` + listingColumns + ` FROM listings WHERE id = $1`
	return scanListing(s.pool.QueryRow(ctx, query, id))
}

// UpdateListing locks the row, applies the supplied fields and writes it back.
func (s *Store) UpdateListing(ctx context.Context, id int64, patch models.ListingPatch) (models.Listing, error) {
	var updated models.Listing
	err := s.withTx(ctx, func(tx pgx.Tx) error {
		const selectQuery = `SELECT ` + listingColumns + ` FROM listings WHERE id = $1 FOR UPDATE`
		current, err := scanListing(tx.QueryRow(ctx, selectQuery, id))
		if err != nil {
			return err
		}
		patch.Apply(&current)

		const updateQuery = `
			UPDATE listings SET title = $2, description = $3
			WHERE id = $1
			RETURNING ` + listingColumns
		updated, err = scanListing(tx.QueryRow(ctx, updateQuery, id, current.Title, current.Description))
		return err
	})
	if err != nil {
		return models.Listing{}, err
	}
	return updated, nil
}

// DeleteListing removes a listing by id.
func (s *Store) DeleteListing(ctx context.Context, id int64) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM listings WHERE id = $1`, id)
	if err != nil {
		return mapError(err)
	}
	if tag.RowsAffected() == 0 {
		return storage.ErrNotFound
	}
	return nil
}

// IsOwner joins accounts and listings to check ownership.
func (s *Store) IsOwner(ctx context.Context, accountID, listingID int64) (bool, error) {
	const query = `
		SELECT EXISTS (
			SELECT 1
			FROM accounts a
			JOIN listings l ON l.owner_id = a.id
			WHERE a.id = $1 AND l.id = $2
		)`
	var owned bool
	if err := s.pool.QueryRow(ctx, query, accountID, listingID).Scan(&owned); err != nil {
		return false, mapError(err)
	}
	return owned, nil
}

func scanListing(row pgx.Row) (models.Listing, error) {
	var l models.Listing
	if err := row.Scan(&l.ID, &l.OwnerID, &l.Title, &l.Description, &l.CreatedAt); err != nil {
		return models.Listing{}, mapError(err)
	}
	return l, nil
}
