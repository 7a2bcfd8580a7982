package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"github.com/openshelf/librarycatalog/models"
	"github.com/openshelf/librarycatalog/repository"
	"github.com/openshelf/librarycatalog/validator"
	"github.com/openshelf/librarycatalog/web"
)

type GenreHandler struct {
	Repo     repository.GenreRepositoryInterface
	Renderer *web.Renderer
}

// List renders all genres ordered by name
func (h *GenreHandler) List(w http.ResponseWriter, r *http.Request) {
	genres, err := h.Repo.ListAll()
	if err != nil {
		renderServerError(h.Renderer, w, err)
		return
	}
	h.Renderer.HTML(w, http.StatusOK, "genre_list", map[string]any{
		"Title":  "Genre List",
		"Genres": genres,
	})
}

// Detail renders one genre plus the books tagged with it. The genre and its
// books are fetched concurrently and joined before rendering.
func (h *GenreHandler) Detail(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "genre_id")

	genre, books, err := h.fetchWithBooks(r, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			renderNotFound(h.Renderer, w)
		} else {
			renderServerError(h.Renderer, w, err)
		}
		return
	}

	h.Renderer.HTML(w, http.StatusOK, "genre_detail", map[string]any{
		"Title": "Genre Detail",
		"Genre": genre,
		"Books": books,
	})
}

// CreateForm renders a blank genre form
func (h *GenreHandler) CreateForm(w http.ResponseWriter, r *http.Request) {
	h.renderForm(w, http.StatusOK, "Create Genre", &models.Genre{}, nil)
}

// Create validates the submitted name and inserts a new genre. Creation is
// idempotent on the name: when a genre with the same name already exists
// (compared case-insensitively) no record is inserted and the client is
// redirected to the existing genre instead.
func (h *GenreHandler) Create(w http.ResponseWriter, r *http.Request) {
	name, v := h.parseForm(r)
	if !v.Valid() {
		h.renderForm(w, http.StatusUnprocessableEntity, "Create Genre", &models.Genre{Name: name}, v.Errors)
		return
	}

	existing, err := h.Repo.GetByNameFold(name)
	if err == nil {
		http.Redirect(w, r, existing.URL(), http.StatusSeeOther)
		return
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		renderServerError(h.Renderer, w, err)
		return
	}

	genre := &models.Genre{Name: name}
	if err := h.Repo.Create(genre); err != nil {
		renderServerError(h.Renderer, w, err)
		return
	}
	http.Redirect(w, r, genre.URL(), http.StatusSeeOther)
}

// UpdateForm renders the form pre-filled with the stored genre
func (h *GenreHandler) UpdateForm(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "genre_id")

	genre, err := h.Repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			renderNotFound(h.Renderer, w)
		} else {
			renderServerError(h.Renderer, w, err)
		}
		return
	}
	h.renderForm(w, http.StatusOK, "Update Genre", genre, nil)
}

// Update replaces the genre's fields under its existing id
func (h *GenreHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "genre_id")

	name, v := h.parseForm(r)
	if !v.Valid() {
		h.renderForm(w, http.StatusUnprocessableEntity, "Update Genre", &models.Genre{ID: id, Name: name}, v.Errors)
		return
	}

	genre := &models.Genre{ID: id, Name: name}
	if err := h.Repo.Update(genre); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			renderNotFound(h.Renderer, w)
		} else {
			renderServerError(h.Renderer, w, err)
		}
		return
	}
	http.Redirect(w, r, genre.URL(), http.StatusSeeOther)
}

// DeleteForm renders the delete confirmation page, listing any books that
// still reference the genre. A missing genre redirects to the list instead
// of 404ing; delete is deliberately more lenient than detail and update.
func (h *GenreHandler) DeleteForm(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "genre_id")

	genre, books, err := h.fetchWithBooks(r, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			http.Redirect(w, r, "/catalog/genres", http.StatusFound)
		} else {
			renderServerError(h.Renderer, w, err)
		}
		return
	}

	h.Renderer.HTML(w, http.StatusOK, "genre_delete", map[string]any{
		"Title": "Delete Genre",
		"Genre": genre,
		"Books": books,
	})
}

// Delete removes the genre named by the submitted form id, but only after
// re-checking that no books reference it. The dependent check always
// re-queries at submit time; a client-supplied count is never trusted.
func (h *GenreHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		renderServerError(h.Renderer, w, err)
		return
	}
	id := r.PostFormValue("id")

	genre, books, err := h.fetchWithBooks(r, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			http.Redirect(w, r, "/catalog/genres", http.StatusSeeOther)
		} else {
			renderServerError(h.Renderer, w, err)
		}
		return
	}

	if len(books) > 0 {
		// delete refused, not failed: show the confirmation page again
		h.Renderer.HTML(w, http.StatusOK, "genre_delete", map[string]any{
			"Title": "Delete Genre",
			"Genre": genre,
			"Books": books,
		})
		return
	}

	if err := h.Repo.Delete(id); err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		renderServerError(h.Renderer, w, err)
		return
	}
	http.Redirect(w, r, "/catalog/genres", http.StatusSeeOther)
}

// fetchWithBooks looks up the genre and its dependent books concurrently
func (h *GenreHandler) fetchWithBooks(r *http.Request, id string) (*models.Genre, []models.Book, error) {
	var (
		genre *models.Genre
		books []models.Book
	)
	g, _ := errgroup.WithContext(r.Context())
	g.Go(func() error {
		var err error
		genre, err = h.Repo.GetByID(id)
		return err
	})
	g.Go(func() error {
		var err error
		books, err = h.Repo.ListBooks(id)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return genre, books, nil
}

func (h *GenreHandler) parseForm(r *http.Request) (string, *validator.Validator) {
	v := validator.New()
	if err := r.ParseForm(); err != nil {
		v.AddError("name", "unable to read submitted form")
		return "", v
	}
	name := validator.Sanitize(r.PostFormValue("name"))
	v.Check(validator.RunesBetween(name, 3, 100), "name", "Genre name must contain between 3 and 100 characters")
	return name, v
}

func (h *GenreHandler) renderForm(w http.ResponseWriter, status int, title string, genre *models.Genre, fieldErrors map[string]string) {
	h.Renderer.HTML(w, status, "genre_form", map[string]any{
		"Title":  title,
		"Genre":  genre,
		"Errors": fieldErrors,
	})
}
