package repository

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/openshelf/librarycatalog/models"
)

// AuthorRepository handles database operations for Author entities
type AuthorRepository struct {
	DB *gorm.DB
}

// NewAuthorRepository creates a new instance of AuthorRepository
func NewAuthorRepository(db *gorm.DB) *AuthorRepository {
	return &AuthorRepository{DB: db}
}

// Create creates a new author record in the database
func (r *AuthorRepository) Create(author *models.Author) error {
	now := time.Now().Unix()
	if author.CreatedAt == 0 {
		author.CreatedAt = now
	}
	if author.UpdatedAt == 0 {
		author.UpdatedAt = now
	}

	if err := r.DB.Create(author).Error; err != nil {
		return fmt.Errorf("failed to create author %s %s: %w", author.FirstName, author.FamilyName, err)
	}
	return nil
}

// GetByID retrieves an author by their ID
func (r *AuthorRepository) GetByID(id string) (*models.Author, error) {
	var author models.Author
	err := r.DB.First(&author, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get author by ID %s: %w", id, err)
	}
	return &author, nil
}

// ListAll retrieves all authors, ordered by family name then first name
func (r *AuthorRepository) ListAll() ([]models.Author, error) {
	var authors []models.Author
	err := r.DB.Order("family_name ASC, first_name ASC").Find(&authors).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list authors: %w", err)
	}
	return authors, nil
}

// Update updates an existing author's details under their existing ID.
// Select forces the nullable date columns to be written even when cleared.
func (r *AuthorRepository) Update(author *models.Author) error {
	author.UpdatedAt = time.Now().Unix()
	result := r.DB.Model(&models.Author{ID: author.ID}).
		Select("FirstName", "FamilyName", "DateOfBirth", "DateOfDeath", "UpdatedAt").
		Updates(models.Author{
			FirstName:   author.FirstName,
			FamilyName:  author.FamilyName,
			DateOfBirth: author.DateOfBirth,
			DateOfDeath: author.DateOfDeath,
			UpdatedAt:   author.UpdatedAt,
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update author ID %s: %w", author.ID, result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Delete removes an author by their ID
func (r *AuthorRepository) Delete(id string) error {
	result := r.DB.Delete(&models.Author{}, "id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete author ID %s: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// ListBooks retrieves all books written by the given author ID
func (r *AuthorRepository) ListBooks(authorID string) ([]models.Book, error) {
	var books []models.Book
	err := r.DB.Where("author_id = ?", authorID).Find(&books).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list books for author ID %s: %w", authorID, err)
	}
	return books, nil
}
