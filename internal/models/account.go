package models

import "time"

// Account is a registered identity that can own listings.
type Account struct {
	ID           int64     `json:"id"`
	Name         string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"creation_time"`
}

// AccountPatch carries the fields a partial update supplied. Nil means untouched.
type AccountPatch struct {
	Name         *string
	Email        *string
	PasswordHash *string
}

// Apply copies the supplied fields onto a.
func (p AccountPatch) Apply(a *Account) {
	if p.Name != nil {
		a.Name = *p.Name
	}
	if p.Email != nil {
		a.Email = *p.Email
	}
	if p.PasswordHash != nil {
		a.PasswordHash = *p.PasswordHash
	}
}
