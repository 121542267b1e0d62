package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/hongminglow/adboard-be/internal/apperr"
	"github.com/hongminglow/adboard-be/internal/models"
	"github.com/hongminglow/adboard-be/internal/storage"
)

// Header names carrying credentials on mutating listing requests.
const (
	EmailHeader    = "email"
	PasswordHeader = "password"
)

// Credentials is an email/password pair supplied by a client.
type Credentials struct {
	Email    string
	Password string
}

// FromRequest reads credentials from the request headers.
func FromRequest(r *http.Request) Credentials {
	return Credentials{
		Email:    strings.TrimSpace(r.Header.Get(EmailHeader)),
		Password: r.Header.Get(PasswordHeader),
	}
}

// Hasher produces the stored digest of a password.
type Hasher interface {
	Hash(secret string) string
}

// Authenticator resolves credentials to the account they belong to.
type Authenticator struct {
	accounts storage.AccountStore
	hasher   Hasher
}

// NewAuthenticator creates an authenticator over the account store.
func NewAuthenticator(accounts storage.AccountStore, hasher Hasher) *Authenticator {
	return &Authenticator{accounts: accounts, hasher: hasher}
}

// Authenticate returns the account matching both email and password. Unknown
// email and wrong password fail identically.
func (a *Authenticator) Authenticate(ctx context.Context, creds Credentials) (models.Account, error) {
	if creds.Email == "" || creds.Password == "" {
		return models.Account{}, apperr.E(apperr.NotAuthenticated, "email and password headers are required")
	}
	account, err := a.accounts.FindByCredentials(ctx, creds.Email, a.hasher.Hash(creds.Password))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return models.Account{}, apperr.E(apperr.NotAuthenticated, "invalid credentials")
		}
		return models.Account{}, apperr.Wrap(err, "authenticate")
	}
	return account, nil
}
