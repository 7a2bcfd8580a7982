package repository

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/openshelf/librarycatalog/models"
)

// newTestDB opens a throwaway in-memory database migrated with the catalog
// schema. cache=shared with a single connection keeps all goroutines on the
// same database.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Discard})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	err = db.AutoMigrate(&models.Author{}, &models.Genre{}, &models.Book{}, &models.Copy{})
	require.NoError(t, err)
	return db
}

func seedAuthor(t *testing.T, db *gorm.DB) *models.Author {
	t.Helper()
	author := &models.Author{FirstName: "Jane", FamilyName: "Austen"}
	require.NoError(t, NewAuthorRepository(db).Create(author))
	return author
}

func seedGenre(t *testing.T, db *gorm.DB, name string) *models.Genre {
	t.Helper()
	genre := &models.Genre{Name: name}
	require.NoError(t, NewGenreRepository(db).Create(genre))
	return genre
}

func seedBook(t *testing.T, db *gorm.DB, authorID string, genreIDs ...string) *models.Book {
	t.Helper()
	book := &models.Book{
		Title:    "Pride and Prejudice",
		Summary:  "A novel of manners.",
		ISBN:     "9780141439518",
		AuthorID: authorID,
	}
	require.NoError(t, NewBookRepository(db).Create(book, genreIDs))
	return book
}
