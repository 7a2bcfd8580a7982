package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const dateDisplayLayout = "Jan 2, 2006"

// Author represents a book author in the database using GORM.
// It corresponds to the 'authors' table.
type Author struct {
	ID          string     `gorm:"primaryKey" json:"id"`
	FirstName   string     `gorm:"not null" json:"first_name"`
	FamilyName  string     `gorm:"not null" json:"family_name"`
	DateOfBirth *time.Time `gorm:"" json:"date_of_birth,omitempty"` // Nullable
	DateOfDeath *time.Time `gorm:"" json:"date_of_death,omitempty"` // Nullable
	CreatedAt   int64      `gorm:"not null" json:"created_at"`      // Unix timestamp
	UpdatedAt   int64      `gorm:"not null" json:"updated_at"`      // Unix timestamp

	// Relationships
	Books []Book `gorm:"foreignKey:AuthorID" json:"books,omitempty"`
}

// TableName explicitly sets the table name for GORM.
func (Author) TableName() string {
	return "authors"
}

// BeforeCreate mints an opaque id when the caller did not supply one
func (a *Author) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return nil
}

// Name returns "Family, First". When either part is missing the record is
// malformed and an empty string is returned rather than a half-built name.
func (a *Author) Name() string {
	if a.FirstName == "" || a.FamilyName == "" {
		return ""
	}
	return a.FamilyName + ", " + a.FirstName
}

// Lifespan renders the author's dates as "Dec 16, 1775 - Jul 18, 1817",
// leaving either side blank when unknown. Never persisted; derived on read.
func (a *Author) Lifespan() string {
	return formatDate(a.DateOfBirth) + " - " + formatDate(a.DateOfDeath)
}

// DateOfBirthISO returns the birth date in ISO form for form pre-fill,
// or "" when unset.
func (a *Author) DateOfBirthISO() string {
	return formatISO(a.DateOfBirth)
}

// DateOfDeathISO returns the death date in ISO form for form pre-fill,
// or "" when unset.
func (a *Author) DateOfDeathISO() string {
	return formatISO(a.DateOfDeath)
}

// URL returns the canonical detail path for this author.
func (a *Author) URL() string {
	return "/catalog/authors/" + a.ID
}

func formatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(dateDisplayLayout)
}

func formatISO(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("2006-01-02")
}
