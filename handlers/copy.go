package handlers

import (
	"errors"
	"net/http"
	"sort"

	"github.com/facette/natsort"
	"github.com/go-chi/chi/v5"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"github.com/openshelf/librarycatalog/models"
	"github.com/openshelf/librarycatalog/repository"
	"github.com/openshelf/librarycatalog/validator"
	"github.com/openshelf/librarycatalog/web"
)

// CopyHandler serves the copy lifecycle. Copies are leaf records with no
// dependents, so their delete flow has no guard; it only has to tolerate a
// copy that was already removed.
type CopyHandler struct {
	Repo     repository.CopyRepositoryInterface
	BookRepo repository.BookRepositoryInterface
	Renderer *web.Renderer
}

// List renders all copies joined to their books, in natural order of book
// title then imprint
func (h *CopyHandler) List(w http.ResponseWriter, r *http.Request) {
	copies, err := h.Repo.ListAll()
	if err != nil {
		renderServerError(h.Renderer, w, err)
		return
	}
	sort.SliceStable(copies, func(i, j int) bool {
		if copies[i].BookTitle() != copies[j].BookTitle() {
			return natsort.Compare(copies[i].BookTitle(), copies[j].BookTitle())
		}
		return natsort.Compare(copies[i].Imprint, copies[j].Imprint)
	})
	h.Renderer.HTML(w, http.StatusOK, "copy_list", map[string]any{
		"Title":  "Copy List",
		"Copies": copies,
	})
}

// Detail renders one copy with its book resolved
func (h *CopyHandler) Detail(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "copy_id")

	copy, err := h.Repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			renderNotFound(h.Renderer, w)
		} else {
			renderServerError(h.Renderer, w, err)
		}
		return
	}

	h.Renderer.HTML(w, http.StatusOK, "copy_detail", map[string]any{
		"Title": "Copy: " + copy.BookTitle(),
		"Copy":  copy,
	})
}

// CreateForm renders a blank copy form with every book as a reference
// candidate
func (h *CopyHandler) CreateForm(w http.ResponseWriter, r *http.Request) {
	books, err := h.BookRepo.ListAll()
	if err != nil {
		renderServerError(h.Renderer, w, err)
		return
	}
	h.renderForm(w, http.StatusOK, "Create Copy", &models.Copy{}, books, nil)
}

// Create validates the submitted fields and inserts a new copy. Status
// defaults to Maintenance and the due date to now when left unset.
func (h *CopyHandler) Create(w http.ResponseWriter, r *http.Request) {
	copy, v := h.parseForm(r)
	if !v.Valid() {
		h.rerenderForm(w, "Create Copy", copy, v.Errors)
		return
	}

	if err := h.Repo.Create(copy); err != nil {
		renderServerError(h.Renderer, w, err)
		return
	}
	http.Redirect(w, r, copy.URL(), http.StatusSeeOther)
}

// UpdateForm renders the form pre-filled with the stored copy
func (h *CopyHandler) UpdateForm(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "copy_id")

	var (
		copy  *models.Copy
		books []models.Book
	)
	g, _ := errgroup.WithContext(r.Context())
	g.Go(func() error {
		var err error
		copy, err = h.Repo.GetByID(id)
		return err
	})
	g.Go(func() error {
		var err error
		books, err = h.BookRepo.ListAll()
		return err
	})
	if err := g.Wait(); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			renderNotFound(h.Renderer, w)
		} else {
			renderServerError(h.Renderer, w, err)
		}
		return
	}

	h.renderForm(w, http.StatusOK, "Update Copy", copy, books, nil)
}

// Update replaces the copy's fields under its existing id
func (h *CopyHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "copy_id")

	copy, v := h.parseForm(r)
	copy.ID = id
	if !v.Valid() {
		h.rerenderForm(w, "Update Copy", copy, v.Errors)
		return
	}

	if err := h.Repo.Update(copy); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			renderNotFound(h.Renderer, w)
		} else {
			renderServerError(h.Renderer, w, err)
		}
		return
	}
	http.Redirect(w, r, copy.URL(), http.StatusSeeOther)
}

// DeleteForm renders the delete confirmation page. A missing copy
// redirects to the list rather than 404ing.
func (h *CopyHandler) DeleteForm(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "copy_id")

	copy, err := h.Repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			http.Redirect(w, r, "/catalog/copies", http.StatusFound)
		} else {
			renderServerError(h.Renderer, w, err)
		}
		return
	}

	h.Renderer.HTML(w, http.StatusOK, "copy_delete", map[string]any{
		"Title": "Delete Copy",
		"Copy":  copy,
	})
}

// Delete removes the copy named by the submitted form id. Nothing
// references copies, so there is no dependent guard; deleting a copy that
// is already gone quietly redirects.
func (h *CopyHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		renderServerError(h.Renderer, w, err)
		return
	}
	id := r.PostFormValue("id")

	if err := h.Repo.Delete(id); err != nil {
		renderServerError(h.Renderer, w, err)
		return
	}
	http.Redirect(w, r, "/catalog/copies", http.StatusSeeOther)
}

// parseForm sanitises and validates the copy form, returning the submitted
// values regardless of validity so a failed submit re-renders them.
func (h *CopyHandler) parseForm(r *http.Request) (*models.Copy, *validator.Validator) {
	v := validator.New()
	copy := &models.Copy{}
	if err := r.ParseForm(); err != nil {
		v.AddError("imprint", "unable to read submitted form")
		return copy, v
	}

	copy.BookID = validator.Sanitize(r.PostFormValue("book"))
	copy.Imprint = validator.Sanitize(r.PostFormValue("imprint"))
	copy.Status = models.CopyStatus(validator.Sanitize(r.PostFormValue("status")))

	v.Check(copy.BookID != "", "book", "Book must be specified")
	v.Check(copy.Imprint != "", "imprint", "Imprint must not be empty")
	v.Check(copy.Status == "" || copy.Status.Valid(), "status", "Status must be one of Available, Maintenance, Loaned or Reserved")

	if t := parseOptionalDate(v, r.PostFormValue("due_back"), "due_back"); t != nil {
		copy.DueBack = *t
	}

	return copy, v
}

func (h *CopyHandler) rerenderForm(w http.ResponseWriter, title string, copy *models.Copy, fieldErrors map[string]string) {
	books, err := h.BookRepo.ListAll()
	if err != nil {
		renderServerError(h.Renderer, w, err)
		return
	}
	h.renderForm(w, http.StatusUnprocessableEntity, title, copy, books, fieldErrors)
}

func (h *CopyHandler) renderForm(w http.ResponseWriter, status int, title string, copy *models.Copy, books []models.Book, fieldErrors map[string]string) {
	h.Renderer.HTML(w, status, "copy_form", map[string]any{
		"Title":    title,
		"Copy":     copy,
		"Books":    books,
		"Statuses": models.CopyStatuses(),
		"Errors":   fieldErrors,
	})
}
