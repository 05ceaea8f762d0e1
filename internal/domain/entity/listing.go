package entity

import (
	"time"

	"github.com/google/uuid"
)

// Listing is a classified ad for a property or space, owned by exactly one
// user. Listings are read-only after creation except for deletion.
type Listing struct {
	ID      uuid.UUID `json:"id"`
	OwnerID uuid.UUID `json:"user"`
	// Images holds 1..5 storage paths relative to the public static root.
	Images      []string `json:"images"`
	Price       float64  `json:"price"`
	Category    Category `json:"category"`
	Description string   `json:"description"`
	Location    string   `json:"location"`
	Contact     string   `json:"contact"`
	// ContactEmail is the advertised contact address. It is user-supplied
	// and may differ from the owner's account email; lookups by email use
	// this field, not the account email.
	ContactEmail string    `json:"email"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`

	// Owner carries the owning account's display fields when the listing
	// was loaded with its owner joined. Nil otherwise, or when the owner
	// was removed and the listing survived as an orphan.
	Owner *OwnerSummary `json:"owner,omitempty"`
}

// OwnerSummary is the public subset of the owning account shown alongside a
// listing.
type OwnerSummary struct {
	Name  string `json:"userName"`
	Email string `json:"email"`
}

// OwnedBy reports whether userID is the listing's owner. This is the whole of
// the authorization rule for listing mutation: only the owner may delete.
func (l *Listing) OwnedBy(userID uuid.UUID) bool {
	return l.OwnerID == userID
}
