package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/openshelf/librarycatalog/models"
)

func TestAuthorCreateAndGet(t *testing.T) {
	db := newTestDB(t)
	repo := NewAuthorRepository(db)
	author := seedAuthor(t, db)

	got, err := repo.GetByID(author.ID)
	require.NoError(t, err)
	assert.Equal(t, "Austen, Jane", got.Name())

	_, err = repo.GetByID("missing")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestAuthorListAllOrdered(t *testing.T) {
	db := newTestDB(t)
	repo := NewAuthorRepository(db)
	require.NoError(t, repo.Create(&models.Author{FirstName: "Herman", FamilyName: "Melville"}))
	require.NoError(t, repo.Create(&models.Author{FirstName: "Jane", FamilyName: "Austen"}))

	authors, err := repo.ListAll()
	require.NoError(t, err)
	require.Len(t, authors, 2)
	assert.Equal(t, "Austen", authors[0].FamilyName)
	assert.Equal(t, "Melville", authors[1].FamilyName)
}

func TestAuthorUpdatePreservesIDAndClearsDates(t *testing.T) {
	db := newTestDB(t)
	repo := NewAuthorRepository(db)

	birth := time.Date(1775, time.December, 16, 0, 0, 0, 0, time.UTC)
	author := &models.Author{FirstName: "Jane", FamilyName: "Austen", DateOfBirth: &birth}
	require.NoError(t, repo.Create(author))

	updated := &models.Author{ID: author.ID, FirstName: "Jane", FamilyName: "Austin"}
	require.NoError(t, repo.Update(updated))

	got, err := repo.GetByID(author.ID)
	require.NoError(t, err)
	assert.Equal(t, author.ID, got.ID)
	assert.Equal(t, "Austin", got.FamilyName)
	// an update with no dates clears the stored ones
	assert.Nil(t, got.DateOfBirth)
}

func TestAuthorDeleteAndListBooks(t *testing.T) {
	db := newTestDB(t)
	repo := NewAuthorRepository(db)
	author := seedAuthor(t, db)
	book := seedBook(t, db, author.ID)

	books, err := repo.ListBooks(author.ID)
	require.NoError(t, err)
	require.Len(t, books, 1)
	assert.Equal(t, book.ID, books[0].ID)

	require.NoError(t, repo.Delete(author.ID))
	assert.ErrorIs(t, repo.Delete(author.ID), gorm.ErrRecordNotFound)
}
