package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CopyStatus enumerates the loan states a physical copy can be in.
type CopyStatus string

const (
	StatusAvailable   CopyStatus = "Available"
	StatusMaintenance CopyStatus = "Maintenance"
	StatusLoaned      CopyStatus = "Loaned"
	StatusReserved    CopyStatus = "Reserved"
)

// CopyStatuses lists every valid status, in form-display order.
func CopyStatuses() []CopyStatus {
	return []CopyStatus{StatusAvailable, StatusMaintenance, StatusLoaned, StatusReserved}
}

// Valid reports whether s is a member of the status enum.
func (s CopyStatus) Valid() bool {
	switch s {
	case StatusAvailable, StatusMaintenance, StatusLoaned, StatusReserved:
		return true
	}
	return false
}

// Copy represents a physical copy of a book in the database using GORM.
// It corresponds to the 'copies' table. Copies are leaf records: nothing
// references them, so they delete unconditionally.
type Copy struct {
	ID        string     `gorm:"primaryKey" json:"id"`
	BookID    string     `gorm:"not null;index" json:"book_id"`
	Imprint   string     `gorm:"not null" json:"imprint"`
	Status    CopyStatus `gorm:"not null;default:'Maintenance'" json:"status"`
	DueBack   time.Time  `gorm:"not null" json:"due_back"`
	CreatedAt int64      `gorm:"not null" json:"created_at"` // Unix timestamp
	UpdatedAt int64      `gorm:"not null" json:"updated_at"` // Unix timestamp

	// Relationships
	Book *Book `gorm:"foreignKey:BookID" json:"book,omitempty"`
}

// TableName explicitly sets the table name for GORM.
func (Copy) TableName() string {
	return "copies"
}

// BeforeCreate mints an opaque id and applies the field defaults the form
// layer leaves unset
func (c *Copy) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	if c.Status == "" {
		c.Status = StatusMaintenance
	}
	if c.DueBack.IsZero() {
		c.DueBack = time.Now()
	}
	return nil
}

// URL returns the canonical detail path for this copy.
func (c *Copy) URL() string {
	return "/catalog/copies/" + c.ID
}

// DueBackDisplay formats the due date for listings and detail pages.
func (c *Copy) DueBackDisplay() string {
	return c.DueBack.Format(dateDisplayLayout)
}

// DueBackISO returns the due date in ISO form for form pre-fill, or ""
// when the copy has not been saved yet.
func (c *Copy) DueBackISO() string {
	if c.DueBack.IsZero() {
		return ""
	}
	return c.DueBack.Format("2006-01-02")
}

// IsAvailable reports whether the copy is on the shelf right now.
func (c *Copy) IsAvailable() bool {
	return c.Status == StatusAvailable
}

// BookTitle returns the joined book's title, or "" when the reference did
// not resolve.
func (c *Copy) BookTitle() string {
	if c.Book == nil {
		return ""
	}
	return c.Book.Title
}
