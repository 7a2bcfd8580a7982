package handlers

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHomeIndexCounts(t *testing.T) {
	env := newTestEnv(t)
	author := env.seedAuthor(t)
	env.seedGenre(t, "Fiction")
	book := env.seedBook(t, author.ID)
	env.seedCopy(t, book.ID) // seeded as Available

	w := env.get(t, "/catalog/")
	assert.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "<strong>Books:</strong> 1")
	assert.Contains(t, body, "<strong>Copies:</strong> 1")
	assert.Contains(t, body, "<strong>Copies available:</strong> 1")
	assert.Contains(t, body, "<strong>Authors:</strong> 1")
	assert.Contains(t, body, "<strong>Genres:</strong> 1")
}

func TestHomeIndexEmptyCatalog(t *testing.T) {
	env := newTestEnv(t)

	w := env.get(t, "/catalog/")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "<strong>Books:</strong> 0")
}
