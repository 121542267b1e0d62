package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/hongminglow/adboard-be/internal/apperr"
	"github.com/hongminglow/adboard-be/internal/auth"
	"github.com/hongminglow/adboard-be/internal/http/respond"
	"github.com/hongminglow/adboard-be/internal/models"
	"github.com/hongminglow/adboard-be/internal/models/dto"
	"github.com/hongminglow/adboard-be/internal/storage"
	"github.com/hongminglow/adboard-be/internal/validate"
)

const accountNotFound = "account not found"

// AccountHandler owns the /account endpoints. None of them require credentials.
type AccountHandler struct {
	accounts storage.AccountStore
	hasher   auth.Hasher
	logger   *slog.Logger
}

// NewAccountHandler constructs the handler.
func NewAccountHandler(accounts storage.AccountStore, hasher auth.Hasher, logger *slog.Logger) *AccountHandler {
	return &AccountHandler{
		accounts: accounts,
		hasher:   hasher,
		logger:   logger.With("component", "account_handler"),
	}
}

// Register attaches account routes to the router.
func (h *AccountHandler) Register(r chi.Router) {
	r.Post("/account", handle(h.create))
	r.Get("/account/{id}", handle(h.get))
	r.Patch("/account/{id}", handle(h.patch))
	r.Delete("/account/{id}", handle(h.delete))
}

func (h *AccountHandler) create(w http.ResponseWriter, r *http.Request) error {
	fields, err := decodeAndValidate(w, r, validate.NewAccount)
	if err != nil {
		return err
	}

	created, err := h.accounts.CreateAccount(r.Context(), models.Account{
		Name:         fields["name"],
		Email:        fields["email"],
		PasswordHash: h.hasher.Hash(fields["password"]),
	})
	if err != nil {
		if errors.Is(err, storage.ErrAlreadyExists) {
			return apperr.E(apperr.Conflict, "account already exists")
		}
		return apperr.Wrap(err, "create account")
	}

	h.logger.InfoContext(r.Context(), "account created", "account_id", created.ID)
	respond.JSON(w, http.StatusOK, dto.CreatedResponse{ID: created.ID})
	return nil
}

func (h *AccountHandler) get(w http.ResponseWriter, r *http.Request) error {
	id, err := pathID(r, accountNotFound)
	if err != nil {
		return err
	}
	account, err := h.fetch(r, id)
	if err != nil {
		return err
	}

	respond.JSON(w, http.StatusOK, dto.AccountResponse{
		ID:           account.ID,
		Username:     account.Name,
		Email:        account.Email,
		CreationTime: account.CreatedAt.UTC().Format(time.RFC3339),
	})
	return nil
}

func (h *AccountHandler) patch(w http.ResponseWriter, r *http.Request) error {
	id, err := pathID(r, accountNotFound)
	if err != nil {
		return err
	}
	fields, err := decodeAndValidate(w, r, validate.PatchAccount)
	if err != nil {
		return err
	}

	patch := models.AccountPatch{
		Name:  fields.Ptr("name"),
		Email: fields.Ptr("email"),
	}
	if password, ok := fields["password"]; ok {
		digest := h.hasher.Hash(password)
		patch.PasswordHash = &digest
	}

	updated, err := h.accounts.UpdateAccount(r.Context(), id, patch)
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrNotFound):
			return apperr.E(apperr.NotFound, accountNotFound)
		case errors.Is(err, storage.ErrAlreadyExists):
			return apperr.E(apperr.Conflict, "name is taken")
		default:
			return apperr.Wrap(err, "update account")
		}
	}

	h.logger.InfoContext(r.Context(), "account updated", "account_id", id, "fields", len(fields))
	respond.JSON(w, http.StatusOK, dto.AccountPatchResponse{
		ID:           updated.ID,
		Username:     updated.Name,
		CreationTime: updated.CreatedAt.Unix(),
	})
	return nil
}

func (h *AccountHandler) delete(w http.ResponseWriter, r *http.Request) error {
	id, err := pathID(r, accountNotFound)
	if err != nil {
		return err
	}
	if _, err := h.fetch(r, id); err != nil {
		return err
	}

	if err := h.accounts.DeleteAccount(r.Context(), id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return apperr.E(apperr.NotFound, accountNotFound)
		}
		return apperr.Wrap(err, "delete account")
	}

	h.logger.InfoContext(r.Context(), "account deleted", "account_id", id)
	respond.JSON(w, http.StatusOK, dto.StatusResponse{Status: "success"})
	return nil
}

func (h *AccountHandler) fetch(r *http.Request, id int64) (models.Account, error) {
	account, err := h.accounts.GetAccount(r.Context(), id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return models.Account{}, apperr.E(apperr.NotFound, accountNotFound)
		}
		return models.Account{}, apperr.Wrap(err, "fetch account")
	}
	return account, nil
}
