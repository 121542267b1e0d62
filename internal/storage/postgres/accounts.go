package postgres

import (
	"context"

	"github.com/hongminglow/adboard-be/internal/models"
	"github.com/hongminglow/adboard-be/internal/storage"
	"github.com/jackc/pgx/v5"
)

const accountColumns = `id, name, email, password_hash, created_at`

// CreateAccount inserts a new account row.
func (s *Store) CreateAccount(ctx context.Context, account models.Account) (models.Account, error) {
	const query = `
		INSERT INTO accounts (name, email, password_hash)
		VALUES ($1, $2, $3)
		RETURNING ` + accountColumns
	row := s.pool.QueryRow(ctx, query, account.Name, account.Email, account.PasswordHash)
	return scanAccount(row)
}

// GetAccount fetches an account by id.
func (s *Store) GetAccount(ctx context.Context, id int64) (models.Account, error) {
	const query = `SELECT ` + accountColumns + ` FROM accounts WHERE id = $1`
	return scanAccount(s.pool.QueryRow(ctx, query, id))
}

// UpdateAccount locks the row, applies the supplied fields and writes it back.
func (s *Store) UpdateAccount(ctx context.Context, id int64, patch models.AccountPatch) (models.Account, error) {
	var updated models.Account
	err := s.withTx(ctx, func(tx pgx.Tx) error {
		const selectQuery = `SELECT ` + accountColumns + ` FROM accounts WHERE id = $1 FOR UPDATE`
		current, err := scanAccount(tx.QueryRow(ctx, selectQuery, id))
		if err != nil {
			return err
		}
		patch.Apply(&current)

		const updateQuery = `
			UPDATE accounts SET name = $2, email = $3, password_hash = $4
			WHERE id = $1
			RETURNING ` + accountColumns
		updated, err = scanAccount(tx.QueryRow(ctx, updateQuery, id, current.Name, current.Email, current.PasswordHash))
		return err
	})
	if err != nil {
		return models.Account{}, err
	}
	return updated, nil
}

// DeleteAccount removes the account's listings and then the account itself.
func (s *Store) DeleteAccount(ctx context.Context, id int64) error {
	return s.withTx(ctx, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM listings WHERE owner_id = $1`, id); err != nil {
			return mapError(err)
		}
		tag, err := tx.Exec(ctx, `DELETE FROM accounts WHERE id = $1`, id)
		if err != nil {
			return mapError(err)
		}
		if tag.RowsAffected() == 0 {
			return storage.ErrNotFound
		}
		return nil
	})
}

// FindByCredentials fetches the account whose email and password digest both match.
func (s *Store) FindByCredentials(ctx context.Context, email, passwordHash string) (models.Account, error) {
	const query = `
		SELECT ` + accountColumns + `
		FROM accounts
		WHERE email = $1 AND password_hash = $2
		LIMIT 1`
	return scanAccount(s.pool.QueryRow(ctx, query, email, passwordHash))
}

func scanAccount(row pgx.Row) (models.Account, error) {
	var a models.Account
	if err := row.Scan(&a.ID, &a.Name, &a.Email, &a.PasswordHash, &a.CreatedAt); err != nil {
		return models.Account{}, mapError(err)
	}
	return a, nil
}
