package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ListingModel mirrors the 'listings' table. OwnerID references users.id but
// is deliberately not a database-enforced foreign key: the cascade on account
// deletion is application-level, and a listing may briefly outlive its owner.
type ListingModel struct {
	ID      uuid.UUID `gorm:"type:uuid;primaryKey"`
	OwnerID uuid.UUID `gorm:"type:uuid;not null;index"`
	// Images stores the ordered relative paths as a JSON array.
	Images       []string `gorm:"serializer:json;type:text;not null"`
	Price        float64  `gorm:"not null"`
	Category     string   `gorm:"type:varchar(32);not null;index"`
	Description  string   `gorm:"type:text;not null"`
	Location     string   `gorm:"type:varchar(255);not null"`
	Contact      string   `gorm:"type:varchar(64);not null"`
	ContactEmail string   `gorm:"type:varchar(255);not null;index"`
	CreatedAt    time.Time
	UpdatedAt    time.Time

	Owner *UserModel `gorm:"foreignKey:OwnerID;references:ID"`
}

// TableName explicitly sets the table name for GORM.
func (ListingModel) TableName() string {
	return "listings"
}

// BeforeCreate assigns the id in the application so both database drivers
// behave identically.
func (m *ListingModel) BeforeCreate(*gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}

	return nil
}
