// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// User is an account able to authenticate and own listings.
// Accounts are immutable after signup; there is no profile-edit flow.
type User struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"userName"`
	Phone        string    `json:"phone"`
	Email        string    `json:"email"` // unique login identifier, stored case-sensitively
	PasswordHash string    `json:"-"`     // bcrypt hash, never serialized
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// Identity is the resolved result of a verified session token: the subset of
// account data downstream handlers may rely on.
type Identity struct {
	ID    uuid.UUID
	Email string
	Name  string
	Role  Role
}
