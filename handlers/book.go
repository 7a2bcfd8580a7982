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

// BookHandler serves the book lifecycle. It also reads the author and
// genre repositories to build the reference candidate lists on the form
// pages.
type BookHandler struct {
	Repo       repository.BookRepositoryInterface
	AuthorRepo repository.AuthorRepositoryInterface
	GenreRepo  repository.GenreRepositoryInterface
	Renderer   *web.Renderer
}

// bookForm carries a submitted book form through validation so a failed
// submit can re-render exactly what the user entered.
type bookForm struct {
	book     *models.Book
	genreIDs []string
}

// List renders all books in natural title order with their authors
func (h *BookHandler) List(w http.ResponseWriter, r *http.Request) {
	books, err := h.Repo.ListAll()
	if err != nil {
		renderServerError(h.Renderer, w, err)
		return
	}
	sort.SliceStable(books, func(i, j int) bool {
		return natsort.Compare(books[i].Title, books[j].Title)
	})
	h.Renderer.HTML(w, http.StatusOK, "book_list", map[string]any{
		"Title": "Book List",
		"Books": books,
	})
}

// Detail renders one book plus its copies, fetched concurrently. The
// author reference may dangle; the page renders a placeholder rather than
// failing when it does not resolve.
func (h *BookHandler) Detail(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "book_id")

	book, copies, err := h.fetchWithCopies(r, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			renderNotFound(h.Renderer, w)
		} else {
			renderServerError(h.Renderer, w, err)
		}
		return
	}

	h.Renderer.HTML(w, http.StatusOK, "book_detail", map[string]any{
		"Title":  book.Title,
		"Book":   book,
		"Copies": copies,
	})
}

// CreateForm renders a blank book form with every author and genre as
// reference candidates, loaded concurrently
func (h *BookHandler) CreateForm(w http.ResponseWriter, r *http.Request) {
	authors, genres, err := h.fetchCandidates(r)
	if err != nil {
		renderServerError(h.Renderer, w, err)
		return
	}
	h.renderForm(w, http.StatusOK, "Create Book", &models.Book{}, nil, authors, genres, nil)
}

// Create validates the submitted fields and inserts a new book with its
// genre references
func (h *BookHandler) Create(w http.ResponseWriter, r *http.Request) {
	form, v := h.parseForm(r)
	if !v.Valid() {
		h.rerenderForm(w, r, "Create Book", form, v.Errors)
		return
	}

	if err := h.Repo.Create(form.book, form.genreIDs); err != nil {
		renderServerError(h.Renderer, w, err)
		return
	}
	http.Redirect(w, r, form.book.URL(), http.StatusSeeOther)
}

// UpdateForm renders the form pre-filled with the stored book, its current
// genre selections marked
func (h *BookHandler) UpdateForm(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "book_id")

	var (
		book    *models.Book
		authors []models.Author
		genres  []models.Genre
	)
	g, _ := errgroup.WithContext(r.Context())
	g.Go(func() error {
		var err error
		book, err = h.Repo.GetByID(id)
		return err
	})
	g.Go(func() error {
		var err error
		authors, err = h.AuthorRepo.ListAll()
		return err
	})
	g.Go(func() error {
		var err error
		genres, err = h.GenreRepo.ListAll()
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

	selected := make(map[string]bool, len(book.Genres))
	for _, genre := range book.Genres {
		selected[genre.ID] = true
	}
	h.renderForm(w, http.StatusOK, "Update Book", book, selected, authors, genres, nil)
}

// Update replaces the book's fields and genre set under its existing id
func (h *BookHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "book_id")

	form, v := h.parseForm(r)
	form.book.ID = id
	if !v.Valid() {
		h.rerenderForm(w, r, "Update Book", form, v.Errors)
		return
	}

	if err := h.Repo.Update(form.book, form.genreIDs); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			renderNotFound(h.Renderer, w)
		} else {
			renderServerError(h.Renderer, w, err)
		}
		return
	}
	http.Redirect(w, r, form.book.URL(), http.StatusSeeOther)
}

// DeleteForm renders the delete confirmation page, listing any copies that
// still reference the book. A missing book redirects to the list.
func (h *BookHandler) DeleteForm(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "book_id")

	book, copies, err := h.fetchWithCopies(r, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			http.Redirect(w, r, "/catalog/books", http.StatusFound)
		} else {
			renderServerError(h.Renderer, w, err)
		}
		return
	}

	h.Renderer.HTML(w, http.StatusOK, "book_delete", map[string]any{
		"Title":  "Delete Book",
		"Book":   book,
		"Copies": copies,
	})
}

// Delete removes the book named by the submitted form id after re-querying
// its copies at submit time; with copies present the confirmation page
// re-renders and nothing is deleted
func (h *BookHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		renderServerError(h.Renderer, w, err)
		return
	}
	id := r.PostFormValue("id")

	book, copies, err := h.fetchWithCopies(r, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			http.Redirect(w, r, "/catalog/books", http.StatusSeeOther)
		} else {
			renderServerError(h.Renderer, w, err)
		}
		return
	}

	if len(copies) > 0 {
		h.Renderer.HTML(w, http.StatusOK, "book_delete", map[string]any{
			"Title":  "Delete Book",
			"Book":   book,
			"Copies": copies,
		})
		return
	}

	if err := h.Repo.Delete(id); err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		renderServerError(h.Renderer, w, err)
		return
	}
	http.Redirect(w, r, "/catalog/books", http.StatusSeeOther)
}

func (h *BookHandler) fetchWithCopies(r *http.Request, id string) (*models.Book, []models.Copy, error) {
	var (
		book   *models.Book
		copies []models.Copy
	)
	g, _ := errgroup.WithContext(r.Context())
	g.Go(func() error {
		var err error
		book, err = h.Repo.GetByID(id)
		return err
	})
	g.Go(func() error {
		var err error
		copies, err = h.Repo.ListCopies(id)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return book, copies, nil
}

func (h *BookHandler) fetchCandidates(r *http.Request) ([]models.Author, []models.Genre, error) {
	var (
		authors []models.Author
		genres  []models.Genre
	)
	g, _ := errgroup.WithContext(r.Context())
	g.Go(func() error {
		var err error
		authors, err = h.AuthorRepo.ListAll()
		return err
	})
	g.Go(func() error {
		var err error
		genres, err = h.GenreRepo.ListAll()
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return authors, genres, nil
}

// parseForm sanitises and validates the book form. Genre ids arrive as a
// normalised list whether the user picked zero, one, or many.
func (h *BookHandler) parseForm(r *http.Request) (*bookForm, *validator.Validator) {
	v := validator.New()
	form := &bookForm{book: &models.Book{}}
	if err := r.ParseForm(); err != nil {
		v.AddError("title", "unable to read submitted form")
		return form, v
	}

	form.book.Title = validator.Sanitize(r.PostFormValue("title"))
	form.book.Summary = validator.Sanitize(r.PostFormValue("summary"))
	form.book.ISBN = validator.Sanitize(r.PostFormValue("isbn"))
	form.book.AuthorID = validator.Sanitize(r.PostFormValue("author"))
	for _, raw := range r.PostForm["genre"] {
		if id := validator.Sanitize(raw); id != "" {
			form.genreIDs = append(form.genreIDs, id)
		}
	}

	v.Check(form.book.Title != "", "title", "Title must not be empty")
	v.Check(form.book.Summary != "", "summary", "Summary must not be empty")
	v.Check(form.book.ISBN != "", "isbn", "ISBN must not be empty")
	v.Check(form.book.AuthorID != "", "author", "Author must be specified")

	return form, v
}

// rerenderForm reloads the candidate lists and shows the form again with
// the user's submitted values and field errors
func (h *BookHandler) rerenderForm(w http.ResponseWriter, r *http.Request, title string, form *bookForm, fieldErrors map[string]string) {
	authors, genres, err := h.fetchCandidates(r)
	if err != nil {
		renderServerError(h.Renderer, w, err)
		return
	}
	selected := make(map[string]bool, len(form.genreIDs))
	for _, id := range form.genreIDs {
		selected[id] = true
	}
	h.renderForm(w, http.StatusUnprocessableEntity, title, form.book, selected, authors, genres, fieldErrors)
}

func (h *BookHandler) renderForm(w http.ResponseWriter, status int, title string, book *models.Book, selected map[string]bool, authors []models.Author, genres []models.Genre, fieldErrors map[string]string) {
	if selected == nil {
		selected = map[string]bool{}
	}
	h.Renderer.HTML(w, status, "book_form", map[string]any{
		"Title":          title,
		"Book":           book,
		"Authors":        authors,
		"Genres":         genres,
		"SelectedGenres": selected,
		"Errors":         fieldErrors,
	})
}
