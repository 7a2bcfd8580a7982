package repository

import (
	"github.com/openshelf/librarycatalog/models"
)

// GenreRepositoryInterface defines the methods for genre data operations
type GenreRepositoryInterface interface {
	Create(genre *models.Genre) error
	GetByID(id string) (*models.Genre, error)
	// GetByNameFold matches the genre name case-insensitively; used by the
	// idempotent-create check before inserting a new genre.
	GetByNameFold(name string) (*models.Genre, error)
	ListAll() ([]models.Genre, error)
	Update(genre *models.Genre) error
	Delete(id string) error
	// ListBooks returns the books referencing this genre (its dependents).
	ListBooks(genreID string) ([]models.Book, error)
}

// AuthorRepositoryInterface defines the methods for author data operations
type AuthorRepositoryInterface interface {
	Create(author *models.Author) error
	GetByID(id string) (*models.Author, error)
	ListAll() ([]models.Author, error)
	Update(author *models.Author) error
	Delete(id string) error
	// ListBooks returns the books referencing this author (its dependents).
	ListBooks(authorID string) ([]models.Book, error)
}

// BookRepositoryInterface defines the methods for book data operations
type BookRepositoryInterface interface {
	// Create inserts the book and attaches the given genre ids to it.
	Create(book *models.Book, genreIDs []string) error
	// GetByID preloads the book's author and genres.
	GetByID(id string) (*models.Book, error)
	ListAll() ([]models.Book, error)
	// Update replaces the record under its existing id and swaps the genre
	// set for genreIDs.
	Update(book *models.Book, genreIDs []string) error
	Delete(id string) error
	// ListCopies returns the physical copies of this book (its dependents).
	ListCopies(bookID string) ([]models.Copy, error)
}

// CopyRepositoryInterface defines the methods for copy data operations.
// Copies are leaf records; unlike the other repositories, Delete on an
// already-removed copy is a no-op rather than a not-found error.
type CopyRepositoryInterface interface {
	Create(copy *models.Copy) error
	// GetByID preloads the copy's book.
	GetByID(id string) (*models.Copy, error)
	ListAll() ([]models.Copy, error)
	Update(copy *models.Copy) error
	Delete(id string) error
}
