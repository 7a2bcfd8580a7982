package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Book represents a catalogued work in the database using GORM.
// It corresponds to the 'books' table. Physical copies of a book are
// tracked separately as Copy records.
type Book struct {
	ID       string `gorm:"primaryKey" json:"id"`
	Title    string `gorm:"not null" json:"title"`
	Summary  string `gorm:"not null" json:"summary"`
	ISBN     string `gorm:"not null" json:"isbn"`
	AuthorID string `gorm:"not null;index" json:"author_id"`

	CreatedAt int64 `gorm:"not null" json:"created_at"` // Unix timestamp
	UpdatedAt int64 `gorm:"not null" json:"updated_at"` // Unix timestamp

	// Relationships
	// Author is a pointer so a dangling AuthorID preloads to nil instead
	// of a zero-value record; there is no FK constraint preventing it.
	Author *Author `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
	Genres []Genre `gorm:"many2many:book_genres" json:"genres,omitempty"`
	Copies []Copy  `gorm:"foreignKey:BookID" json:"copies,omitempty"`
}

// TableName explicitly sets the table name for GORM.
func (Book) TableName() string {
	return "books"
}

// BeforeCreate mints an opaque id when the caller did not supply one
func (b *Book) BeforeCreate(tx *gorm.DB) error {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	return nil
}

// URL returns the canonical detail path for this book.
func (b *Book) URL() string {
	return "/catalog/books/" + b.ID
}

// AuthorName returns the resolved author's display name, or "" when the
// reference did not resolve.
func (b *Book) AuthorName() string {
	if b.Author == nil {
		return ""
	}
	return b.Author.Name()
}
