package repository

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/openshelf/librarycatalog/models"
)

// BookRepository handles database operations for Book entities and their
// genre associations
type BookRepository struct {
	DB *gorm.DB
}

// NewBookRepository creates a new instance of BookRepository
func NewBookRepository(db *gorm.DB) *BookRepository {
	return &BookRepository{DB: db}
}

// Create creates a new book record and attaches the given genre IDs
func (r *BookRepository) Create(book *models.Book, genreIDs []string) error {
	now := time.Now().Unix()
	if book.CreatedAt == 0 {
		book.CreatedAt = now
	}
	if book.UpdatedAt == 0 {
		book.UpdatedAt = now
	}

	// Genres are attached separately so Create never upserts genre rows
	if err := r.DB.Omit("Genres").Create(book).Error; err != nil {
		return fmt.Errorf("failed to create book %s: %w", book.Title, err)
	}
	if err := r.replaceGenres(book, genreIDs); err != nil {
		return err
	}
	return nil
}

// GetByID retrieves a book by its ID, preloading Author and Genres
func (r *BookRepository) GetByID(id string) (*models.Book, error) {
	var book models.Book
	err := r.DB.Preload("Author").Preload("Genres").First(&book, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get book by ID %s: %w", id, err)
	}
	return &book, nil
}

// ListAll retrieves all books, preloading each book's author
func (r *BookRepository) ListAll() ([]models.Book, error) {
	var books []models.Book
	if err := r.DB.Preload("Author").Find(&books).Error; err != nil {
		return nil, fmt.Errorf("failed to list books: %w", err)
	}
	return books, nil
}

// Update replaces an existing book's details under its existing ID and
// swaps its genre set for the given genre IDs
func (r *BookRepository) Update(book *models.Book, genreIDs []string) error {
	book.UpdatedAt = time.Now().Unix()
	result := r.DB.Model(&models.Book{ID: book.ID}).Updates(models.Book{
		Title:     book.Title,
		Summary:   book.Summary,
		ISBN:      book.ISBN,
		AuthorID:  book.AuthorID,
		UpdatedAt: book.UpdatedAt,
	})
	if result.Error != nil {
		return fmt.Errorf("failed to update book ID %s: %w", book.ID, result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	if err := r.replaceGenres(book, genreIDs); err != nil {
		return err
	}
	return nil
}

// Delete removes a book by its ID along with its genre associations
func (r *BookRepository) Delete(id string) error {
	book := models.Book{ID: id}
	if err := r.DB.Model(&book).Association("Genres").Clear(); err != nil {
		return fmt.Errorf("failed to clear genres for book ID %s: %w", id, err)
	}
	result := r.DB.Delete(&models.Book{}, "id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete book ID %s: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// ListCopies retrieves all physical copies of the given book ID
func (r *BookRepository) ListCopies(bookID string) ([]models.Copy, error) {
	var copies []models.Copy
	err := r.DB.Where("book_id = ?", bookID).Find(&copies).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list copies for book ID %s: %w", bookID, err)
	}
	return copies, nil
}

func (r *BookRepository) replaceGenres(book *models.Book, genreIDs []string) error {
	genres := make([]models.Genre, 0, len(genreIDs))
	for _, id := range genreIDs {
		genres = append(genres, models.Genre{ID: id})
	}
	err := r.DB.Model(book).Association("Genres").Replace(genres)
	if err != nil {
		return fmt.Errorf("failed to set genres for book ID %s: %w", book.ID, err)
	}
	return nil
}
