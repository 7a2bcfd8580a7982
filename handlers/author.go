package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"github.com/openshelf/librarycatalog/models"
	"github.com/openshelf/librarycatalog/repository"
	"github.com/openshelf/librarycatalog/validator"
	"github.com/openshelf/librarycatalog/web"
)

type AuthorHandler struct {
	Repo     repository.AuthorRepositoryInterface
	Renderer *web.Renderer
}

// List renders all authors ordered by family name
func (h *AuthorHandler) List(w http.ResponseWriter, r *http.Request) {
	authors, err := h.Repo.ListAll()
	if err != nil {
		renderServerError(h.Renderer, w, err)
		return
	}
	h.Renderer.HTML(w, http.StatusOK, "author_list", map[string]any{
		"Title":   "Author List",
		"Authors": authors,
	})
}

// Detail renders one author plus their books, fetched concurrently.
// An author with no books is a valid page, not an error.
func (h *AuthorHandler) Detail(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "author_id")

	author, books, err := h.fetchWithBooks(r, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			renderNotFound(h.Renderer, w)
		} else {
			renderServerError(h.Renderer, w, err)
		}
		return
	}

	h.Renderer.HTML(w, http.StatusOK, "author_detail", map[string]any{
		"Title":  "Author Detail",
		"Author": author,
		"Books":  books,
	})
}

// CreateForm renders a blank author form
func (h *AuthorHandler) CreateForm(w http.ResponseWriter, r *http.Request) {
	h.renderForm(w, http.StatusOK, "Create Author", &models.Author{}, nil)
}

// Create validates the submitted fields and inserts a new author. Unlike
// genres, duplicate authors are permitted; every valid submit inserts.
func (h *AuthorHandler) Create(w http.ResponseWriter, r *http.Request) {
	author, v := h.parseForm(r)
	if !v.Valid() {
		h.renderForm(w, http.StatusUnprocessableEntity, "Create Author", author, v.Errors)
		return
	}

	if err := h.Repo.Create(author); err != nil {
		renderServerError(h.Renderer, w, err)
		return
	}
	http.Redirect(w, r, author.URL(), http.StatusSeeOther)
}

// UpdateForm renders the form pre-filled with the stored author
func (h *AuthorHandler) UpdateForm(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "author_id")

	author, err := h.Repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			renderNotFound(h.Renderer, w)
		} else {
			renderServerError(h.Renderer, w, err)
		}
		return
	}
	h.renderForm(w, http.StatusOK, "Update Author", author, nil)
}

// Update replaces the author's fields under their existing id. On a
// validation failure the form re-renders with the submitted values, not
// the stored ones.
func (h *AuthorHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "author_id")

	author, v := h.parseForm(r)
	author.ID = id
	if !v.Valid() {
		h.renderForm(w, http.StatusUnprocessableEntity, "Update Author", author, v.Errors)
		return
	}

	if err := h.Repo.Update(author); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			renderNotFound(h.Renderer, w)
		} else {
			renderServerError(h.Renderer, w, err)
		}
		return
	}
	http.Redirect(w, r, author.URL(), http.StatusSeeOther)
}

// DeleteForm renders the delete confirmation page, listing any books that
// still reference the author. A missing author redirects to the list.
func (h *AuthorHandler) DeleteForm(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "author_id")

	author, books, err := h.fetchWithBooks(r, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			http.Redirect(w, r, "/catalog/authors", http.StatusFound)
		} else {
			renderServerError(h.Renderer, w, err)
		}
		return
	}

	h.Renderer.HTML(w, http.StatusOK, "author_delete", map[string]any{
		"Title":  "Delete Author",
		"Author": author,
		"Books":  books,
	})
}

// Delete removes the author named by the submitted form id after
// re-querying their books at submit time. With dependents present the
// confirmation page re-renders and nothing is deleted.
func (h *AuthorHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		renderServerError(h.Renderer, w, err)
		return
	}
	id := r.PostFormValue("id")

	author, books, err := h.fetchWithBooks(r, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			http.Redirect(w, r, "/catalog/authors", http.StatusSeeOther)
		} else {
			renderServerError(h.Renderer, w, err)
		}
		return
	}

	if len(books) > 0 {
		h.Renderer.HTML(w, http.StatusOK, "author_delete", map[string]any{
			"Title":  "Delete Author",
			"Author": author,
			"Books":  books,
		})
		return
	}

	if err := h.Repo.Delete(id); err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		renderServerError(h.Renderer, w, err)
		return
	}
	http.Redirect(w, r, "/catalog/authors", http.StatusSeeOther)
}

func (h *AuthorHandler) fetchWithBooks(r *http.Request, id string) (*models.Author, []models.Book, error) {
	var (
		author *models.Author
		books  []models.Book
	)
	g, _ := errgroup.WithContext(r.Context())
	g.Go(func() error {
		var err error
		author, err = h.Repo.GetByID(id)
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
	return author, books, nil
}

// parseForm sanitises and validates the author form, returning the
// submitted values as an Author regardless of validity so a failed submit
// can re-render what the user typed.
func (h *AuthorHandler) parseForm(r *http.Request) (*models.Author, *validator.Validator) {
	v := validator.New()
	author := &models.Author{}
	if err := r.ParseForm(); err != nil {
		v.AddError("first_name", "unable to read submitted form")
		return author, v
	}

	author.FirstName = validator.Sanitize(r.PostFormValue("first_name"))
	author.FamilyName = validator.Sanitize(r.PostFormValue("family_name"))

	v.Check(validator.RunesBetween(author.FirstName, 1, 100), "first_name", "First name must be specified and at most 100 characters")
	v.Check(author.FirstName == "" || validator.Matches(author.FirstName, validator.AlphaNumRX), "first_name", "First name has non-alphanumeric characters")
	v.Check(validator.RunesBetween(author.FamilyName, 1, 100), "family_name", "Family name must be specified and at most 100 characters")
	v.Check(author.FamilyName == "" || validator.Matches(author.FamilyName, validator.AlphaNumRX), "family_name", "Family name has non-alphanumeric characters")

	author.DateOfBirth = parseOptionalDate(v, r.PostFormValue("date_of_birth"), "date_of_birth")
	author.DateOfDeath = parseOptionalDate(v, r.PostFormValue("date_of_death"), "date_of_death")
	// no ordering is enforced between birth and death dates

	return author, v
}

func parseOptionalDate(v *validator.Validator, raw, field string) *time.Time {
	t, ok, err := validator.ParseDate(raw)
	if err != nil {
		v.AddError(field, "Invalid date")
		return nil
	}
	if !ok {
		return nil
	}
	return &t
}

func (h *AuthorHandler) renderForm(w http.ResponseWriter, status int, title string, author *models.Author, fieldErrors map[string]string) {
	h.Renderer.HTML(w, status, "author_form", map[string]any{
		"Title":  title,
		"Author": author,
		"Errors": fieldErrors,
	})
}
