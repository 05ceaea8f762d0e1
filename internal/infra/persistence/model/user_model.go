// Package model contains the GORM persistence models mirroring the database
// schema.
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserModel mirrors the 'users' table.
type UserModel struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	Email        string    `gorm:"type:varchar(255);unique;not null"`
	Name         string    `gorm:"type:varchar(100);not null"`
	Phone        string    `gorm:"type:varchar(32)"`
	PasswordHash string    `gorm:"type:varchar(255);not null"`
	Role         string    `gorm:"type:varchar(16);not null;default:user"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TableName explicitly sets the table name for GORM.
func (UserModel) TableName() string {
	return "users"
}

// BeforeCreate assigns the id in the application so both database drivers
// behave identically.
func (m *UserModel) BeforeCreate(*gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}

	return nil
}
