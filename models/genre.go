package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Genre represents a book classification in the database using GORM.
// It corresponds to the 'genres' table.
type Genre struct {
	ID        string `gorm:"primaryKey" json:"id"`
	Name      string `gorm:"not null" json:"name"`
	CreatedAt int64  `gorm:"not null" json:"created_at"` // Unix timestamp
	UpdatedAt int64  `gorm:"not null" json:"updated_at"` // Unix timestamp
}

// TableName explicitly sets the table name for GORM.
func (Genre) TableName() string {
	return "genres"
}

// BeforeCreate mints an opaque id when the caller did not supply one
func (g *Genre) BeforeCreate(tx *gorm.DB) error {
	if g.ID == "" {
		g.ID = uuid.NewString()
	}
	return nil
}

// URL returns the canonical detail path for this genre.
func (g *Genre) URL() string {
	return "/catalog/genres/" + g.ID
}
