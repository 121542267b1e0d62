package models

import "time"

// Listing is an advertisement owned by exactly one account.
type Listing struct {
	ID          int64     `json:"id"`
	OwnerID     int64     `json:"owner_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

// ListingPatch carries the fields a partial update supplied. Nil means untouched.
type ListingPatch struct {
	Title       *string
	Description *string
}

// Apply copies the supplied fields onto l. The owner never changes.
func (p ListingPatch) Apply(l *Listing) {
	if p.Title != nil {
		l.Title = *p.Title
	}
	if p.Description != nil {
		l.Description = *p.Description
	}
}
