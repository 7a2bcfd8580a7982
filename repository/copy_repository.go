package repository

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/openshelf/librarycatalog/models"
)

// CopyRepository handles database operations for Copy entities
type CopyRepository struct {
	DB *gorm.DB
}

// NewCopyRepository creates a new instance of CopyRepository
func NewCopyRepository(db *gorm.DB) *CopyRepository {
	return &CopyRepository{DB: db}
}

// Create creates a new copy record in the database
func (r *CopyRepository) Create(copy *models.Copy) error {
	now := time.Now().Unix()
	if copy.CreatedAt == 0 {
		copy.CreatedAt = now
	}
	if copy.UpdatedAt == 0 {
		copy.UpdatedAt = now
	}

	if err := r.DB.Create(copy).Error; err != nil {
		return fmt.Errorf("failed to create copy of book ID %s: %w", copy.BookID, err)
	}
	return nil
}

// GetByID retrieves a copy by its ID, preloading its Book
func (r *CopyRepository) GetByID(id string) (*models.Copy, error) {
	var copy models.Copy
	err := r.DB.Preload("Book").First(&copy, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get copy by ID %s: %w", id, err)
	}
	return &copy, nil
}

// ListAll retrieves all copies, preloading each copy's book
func (r *CopyRepository) ListAll() ([]models.Copy, error) {
	var copies []models.Copy
	if err := r.DB.Preload("Book").Find(&copies).Error; err != nil {
		return nil, fmt.Errorf("failed to list copies: %w", err)
	}
	return copies, nil
}

// Update updates an existing copy's details under its existing ID
func (r *CopyRepository) Update(copy *models.Copy) error {
	copy.UpdatedAt = time.Now().Unix()
	result := r.DB.Model(&models.Copy{ID: copy.ID}).Updates(models.Copy{
		BookID:    copy.BookID,
		Imprint:   copy.Imprint,
		Status:    copy.Status,
		DueBack:   copy.DueBack,
		UpdatedAt: copy.UpdatedAt,
	})
	if result.Error != nil {
		return fmt.Errorf("failed to update copy ID %s: %w", copy.ID, result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Delete removes a copy by its ID. Deleting a copy that is already gone is
// a no-op: copies are leaf records and their delete is idempotent.
func (r *CopyRepository) Delete(id string) error {
	result := r.DB.Delete(&models.Copy{}, "id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete copy ID %s: %w", id, result.Error)
	}
	return nil
}
