package handlers

import (
	"context"
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

const (
	listingNotFound  = "advertisement not found"
	listingForbidden = "you cannot interact with this ad"
)

// Authenticator resolves request credentials to an account.
type Authenticator interface {
	Authenticate(ctx context.Context, creds auth.Credentials) (models.Account, error)
}

// ListingHandler owns the /listing endpoints. Reads are public; every
// mutation authenticates from the email/password headers.
type ListingHandler struct {
	listings storage.ListingStore
	auth     Authenticator
	logger   *slog.Logger
}

// NewListingHandler constructs the handler.
func NewListingHandler(listings storage.ListingStore, authenticator Authenticator, logger *slog.Logger) *ListingHandler {
	return &ListingHandler{
		listings: listings,
		auth:     authenticator,
		logger:   logger.With("component", "listing_handler"),
	}
}

// Register attaches listing routes to the router.
func (h *ListingHandler) Register(r chi.Router) {
	r.Post("/listing", handle(h.create))
	r.Get("/listing/{id}", handle(h.get))
	r.Patch("/listing/{id}", handle(h.patch))
	r.Delete("/listing/{id}", handle(h.delete))
}

func (h *ListingHandler) get(w http.ResponseWriter, r *http.Request) error {
	id, err := pathID(r, listingNotFound)
	if err != nil {
		return err
	}
	listing, err := h.fetch(r, id)
	if err != nil {
		return err
	}

	respond.JSON(w, http.StatusOK, dto.ListingResponse{
		ID:          listing.ID,
		Title:       listing.Title,
		Description: listing.Description,
		CreatedAt:   listing.CreatedAt.UTC().Format(time.RFC3339),
	})
	return nil
}

func (h *ListingHandler) create(w http.ResponseWriter, r *http.Request) error {
	owner, err := h.auth.Authenticate(r.Context(), auth.FromRequest(r))
	if err != nil {
		return err
	}
	fields, err := decodeAndValidate(w, r, validate.NewListing)
	if err != nil {
		return err
	}

	created, err := h.listings.CreateListing(r.Context(), models.Listing{
		OwnerID:     owner.ID,
		Title:       fields["title"],
		Description: fields["description"],
	})
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrAlreadyExists):
			return apperr.E(apperr.Conflict, "advertisement already exists")
		case errors.Is(err, storage.ErrInvalidReference):
			return apperr.E(apperr.Conflict, "owner account no longer exists")
		default:
			return apperr.Wrap(err, "create listing")
		}
	}

	h.logger.InfoContext(r.Context(), "listing created", "listing_id", created.ID, "owner_id", owner.ID)
	respond.JSON(w, http.StatusOK, dto.CreatedResponse{ID: created.ID})
	return nil
}

func (h *ListingHandler) patch(w http.ResponseWriter, r *http.Request) error {
	id, err := pathID(r, listingNotFound)
	if err != nil {
		return err
	}
	account, err := h.auth.Authenticate(r.Context(), auth.FromRequest(r))
	if err != nil {
		return err
	}
	fields, err := decodeAndValidate(w, r, validate.PatchListing)
	if err != nil {
		return err
	}
	if err := h.authorize(r, account.ID, id); err != nil {
		return err
	}

	updated, err := h.listings.UpdateListing(r.Context(), id, models.ListingPatch{
		Title:       fields.Ptr("title"),
		Description: fields.Ptr("description"),
	})
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrNotFound):
			return apperr.E(apperr.NotFound, listingNotFound)
		case errors.Is(err, storage.ErrAlreadyExists):
			return apperr.E(apperr.Conflict, "advertisement is busy")
		default:
			return apperr.Wrap(err, "update listing")
		}
	}

	h.logger.InfoContext(r.Context(), "listing updated", "listing_id", id, "owner_id", account.ID)
	respond.JSON(w, http.StatusOK, dto.ListingPatchResponse{
		ID:          updated.ID,
		Title:       updated.Title,
		Description: updated.Description,
		CreatedAt:   updated.CreatedAt.Unix(),
	})
	return nil
}

func (h *ListingHandler) delete(w http.ResponseWriter, r *http.Request) error {
	id, err := pathID(r, listingNotFound)
	if err != nil {
		return err
	}
	account, err := h.auth.Authenticate(r.Context(), auth.FromRequest(r))
	if err != nil {
		return err
	}
	if _, err := h.fetch(r, id); err != nil {
		return err
	}
	if err := h.authorize(r, account.ID, id); err != nil {
		return err
	}

	if err := h.listings.DeleteListing(r.Context(), id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return apperr.E(apperr.NotFound, listingNotFound)
		}
		return apperr.Wrap(err, "delete listing")
	}

	h.logger.InfoContext(r.Context(), "listing deleted", "listing_id", id, "owner_id", account.ID)
	respond.JSON(w, http.StatusOK, dto.StatusResponse{Status: "success"})
	return nil
}

// authorize checks ownership with a read separate from the mutation that follows.
func (h *ListingHandler) authorize(r *http.Request, accountID, listingID int64) error {
	owned, err := h.listings.IsOwner(r.Context(), accountID, listingID)
	if err != nil {
		return apperr.Wrap(err, "check listing owner")
	}
	if !owned {
		return apperr.E(apperr.Forbidden, listingForbidden)
	}
	return nil
}

func (h *ListingHandler) fetch(r *http.Request, id int64) (models.Listing, error) {
	listing, err := h.listings.GetListing(r.Context(), id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return models.Listing{}, apperr.E(apperr.NotFound, listingNotFound)
		}
		return models.Listing{}, apperr.Wrap(err, "fetch listing")
	}
	return listing, nil
}
