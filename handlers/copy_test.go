package handlers

import (
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openshelf/librarycatalog/models"
)

func TestCopyCreateSuccess(t *testing.T) {
	env := newTestEnv(t)
	author := env.seedAuthor(t)
	book := env.seedBook(t, author.ID)

	form := url.Values{
		"book":     {book.ID},
		"imprint":  {"Penguin Classics, 2003"},
		"status":   {"Available"},
		"due_back": {"2026-09-01"},
	}
	w := env.postForm(t, "/catalog/copies/create", form)
	assert.Equal(t, http.StatusSeeOther, w.Code)

	copies, err := env.copies.ListAll()
	require.NoError(t, err)
	require.Len(t, copies, 1)
	assert.Equal(t, models.StatusAvailable, copies[0].Status)
	assert.Equal(t, "2026-09-01", copies[0].DueBackISO())
}

func TestCopyCreateInvalidStatus(t *testing.T) {
	env := newTestEnv(t)
	author := env.seedAuthor(t)
	book := env.seedBook(t, author.ID)

	form := url.Values{
		"book":    {book.ID},
		"imprint": {"Penguin Classics, 2003"},
		"status":  {"Lost"},
	}
	w := env.postForm(t, "/catalog/copies/create", form)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), "Status must be one of")
}

func TestCopyCreateMissingFields(t *testing.T) {
	env := newTestEnv(t)

	w := env.postForm(t, "/catalog/copies/create", url.Values{})

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "Book must be specified")
	assert.Contains(t, body, "Imprint must not be empty")
}

func TestCopyUpdatePreservesID(t *testing.T) {
	env := newTestEnv(t)
	author := env.seedAuthor(t)
	book := env.seedBook(t, author.ID)
	c := env.seedCopy(t, book.ID)

	form := url.Values{
		"book":    {book.ID},
		"imprint": {"Second printing"},
		"status":  {"Loaned"},
	}
	w := env.postForm(t, "/catalog/copies/"+c.ID+"/update", form)
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, c.URL(), w.Header().Get("Location"))

	got, err := env.copies.GetByID(c.ID)
	require.NoError(t, err)
	assert.Equal(t, c.ID, got.ID)
	assert.Equal(t, "Second printing", got.Imprint)
	assert.Equal(t, models.StatusLoaned, got.Status)
}

func TestCopyDeleteIsUnguarded(t *testing.T) {
	env := newTestEnv(t)
	author := env.seedAuthor(t)
	book := env.seedBook(t, author.ID)
	c := env.seedCopy(t, book.ID)

	w := env.postForm(t, "/catalog/copies/"+c.ID+"/delete", url.Values{"id": {c.ID}})
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/catalog/copies", w.Header().Get("Location"))

	_, err := env.copies.GetByID(c.ID)
	assert.Error(t, err)
}

func TestCopyDeleteAlreadyGone(t *testing.T) {
	env := newTestEnv(t)
	author := env.seedAuthor(t)
	book := env.seedBook(t, author.ID)
	c := env.seedCopy(t, book.ID)

	require.NoError(t, env.copies.Delete(c.ID))

	// deleting a copy that is already gone quietly redirects
	w := env.postForm(t, "/catalog/copies/"+c.ID+"/delete", url.Values{"id": {c.ID}})
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/catalog/copies", w.Header().Get("Location"))
}

func TestCopyDetailNotFoundVsDeleteFormRedirect(t *testing.T) {
	env := newTestEnv(t)

	w := env.get(t, "/catalog/copies/no-such-id")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = env.get(t, "/catalog/copies/no-such-id/delete")
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/catalog/copies", w.Header().Get("Location"))
}

func TestCopyListShowsBookAndStatus(t *testing.T) {
	env := newTestEnv(t)
	author := env.seedAuthor(t)
	book := env.seedBook(t, author.ID)
	c := env.seedCopy(t, book.ID)

	w := env.get(t, "/catalog/copies")
	assert.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, book.Title)
	assert.Contains(t, body, c.Imprint)
	assert.Contains(t, body, "Available")
}
