// internal/domain/models/identity.go
package models

import (
	"time"
)

// Identity is a sign-in credential held by the identity provider.
// Account documents share its ID; nothing else about it leaves the provider.
type Identity struct {
	ID                string     `bson:"_id" json:"id"`
	Email             string     `bson:"email" json:"email"` // lowercase, unique
	PasswordHash      string     `bson:"password_hash" json:"-"`
	DisplayName       string     `bson:"display_name,omitempty" json:"display_name,omitempty"`
	Disabled          bool       `bson:"disabled" json:"disabled"`
	CreatedAt         time.Time  `bson:"created_at" json:"created_at"`
	PasswordChangedAt *time.Time `bson:"password_changed_at,omitempty" json:"password_changed_at,omitempty"`
}
