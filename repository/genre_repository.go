package repository

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/openshelf/librarycatalog/models"
)

// GenreRepository handles database operations for Genre entities
type GenreRepository struct {
	DB *gorm.DB
}

// NewGenreRepository creates a new instance of GenreRepository
func NewGenreRepository(db *gorm.DB) *GenreRepository {
	return &GenreRepository{DB: db}
}

// Create creates a new genre record in the database
func (r *GenreRepository) Create(genre *models.Genre) error {
	now := time.Now().Unix()
	if genre.CreatedAt == 0 {
		genre.CreatedAt = now
	}
	if genre.UpdatedAt == 0 {
		genre.UpdatedAt = now
	}

	if err := r.DB.Create(genre).Error; err != nil {
		return fmt.Errorf("failed to create genre %s: %w", genre.Name, err)
	}
	return nil
}

// GetByID retrieves a genre by its ID
func (r *GenreRepository) GetByID(id string) (*models.Genre, error) {
	var genre models.Genre
	err := r.DB.First(&genre, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get genre by ID %s: %w", id, err)
	}
	return &genre, nil
}

// GetByNameFold retrieves a genre whose name matches case-insensitively
func (r *GenreRepository) GetByNameFold(name string) (*models.Genre, error) {
	var genre models.Genre
	err := r.DB.Where("name = ? COLLATE NOCASE", name).First(&genre).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get genre by name %s: %w", name, err)
	}
	return &genre, nil
}

// ListAll retrieves all genres, ordered by name
func (r *GenreRepository) ListAll() ([]models.Genre, error) {
	var genres []models.Genre
	if err := r.DB.Order("name ASC").Find(&genres).Error; err != nil {
		return nil, fmt.Errorf("failed to list genres: %w", err)
	}
	return genres, nil
}

// Update updates an existing genre's details under its existing ID
func (r *GenreRepository) Update(genre *models.Genre) error {
	genre.UpdatedAt = time.Now().Unix()
	result := r.DB.Model(&models.Genre{ID: genre.ID}).Updates(models.Genre{
		Name:      genre.Name,
		UpdatedAt: genre.UpdatedAt,
	})
	if result.Error != nil {
		return fmt.Errorf("failed to update genre ID %s: %w", genre.ID, result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Delete removes a genre by its ID
func (r *GenreRepository) Delete(id string) error {
	result := r.DB.Delete(&models.Genre{}, "id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete genre ID %s: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// ListBooks retrieves all books tagged with the given genre ID
func (r *GenreRepository) ListBooks(genreID string) ([]models.Book, error) {
	var books []models.Book
	err := r.DB.
		Joins("JOIN book_genres ON book_genres.book_id = books.id").
		Where("book_genres.genre_id = ?", genreID).
		Find(&books).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list books for genre ID %s: %w", genreID, err)
	}
	return books, nil
}
