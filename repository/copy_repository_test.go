package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/openshelf/librarycatalog/models"
)

func TestCopyCreateDefaults(t *testing.T) {
	db := newTestDB(t)
	repo := NewCopyRepository(db)
	author := seedAuthor(t, db)
	book := seedBook(t, db, author.ID)

	c := &models.Copy{BookID: book.ID, Imprint: "Penguin Classics, 2003"}
	require.NoError(t, repo.Create(c))

	got, err := repo.GetByID(c.ID)
	require.NoError(t, err)
	assert.NotEmpty(t, got.ID)
	assert.Equal(t, models.StatusMaintenance, got.Status)
	assert.WithinDuration(t, time.Now(), got.DueBack, time.Minute)
	require.NotNil(t, got.Book)
	assert.Equal(t, book.Title, got.Book.Title)
}

func TestCopyUpdatePreservesID(t *testing.T) {
	db := newTestDB(t)
	repo := NewCopyRepository(db)
	author := seedAuthor(t, db)
	book := seedBook(t, db, author.ID)

	c := &models.Copy{BookID: book.ID, Imprint: "First printing"}
	require.NoError(t, repo.Create(c))

	c.Imprint = "Second printing"
	c.Status = models.StatusLoaned
	require.NoError(t, repo.Update(c))

	got, err := repo.GetByID(c.ID)
	require.NoError(t, err)
	assert.Equal(t, "Second printing", got.Imprint)
	assert.Equal(t, models.StatusLoaned, got.Status)
}

func TestCopyUpdateMissing(t *testing.T) {
	db := newTestDB(t)
	repo := NewCopyRepository(db)

	err := repo.Update(&models.Copy{ID: "missing", BookID: "b", Imprint: "x"})
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestCopyDeleteIdempotent(t *testing.T) {
	db := newTestDB(t)
	repo := NewCopyRepository(db)
	author := seedAuthor(t, db)
	book := seedBook(t, db, author.ID)

	c := &models.Copy{BookID: book.ID, Imprint: "Penguin Classics, 2003"}
	require.NoError(t, repo.Create(c))

	require.NoError(t, repo.Delete(c.ID))
	// copies are leaf records: a repeat delete is a quiet no-op
	require.NoError(t, repo.Delete(c.ID))

	_, err := repo.GetByID(c.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
