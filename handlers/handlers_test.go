package handlers

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/openshelf/librarycatalog/models"
	"github.com/openshelf/librarycatalog/repository"
	"github.com/openshelf/librarycatalog/web"
)

// testEnv wires real repositories over an in-memory database behind the
// same routes main.go registers, so handler tests exercise the full
// request path including guarded-delete re-queries.
type testEnv struct {
	db      *gorm.DB
	router  chi.Router
	genres  *repository.GenreRepository
	authors *repository.AuthorRepository
	books   *repository.BookRepository
	copies  *repository.CopyRepository
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Discard})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, db.AutoMigrate(&models.Author{}, &models.Genre{}, &models.Book{}, &models.Copy{}))

	renderer, err := web.NewRenderer()
	require.NoError(t, err)

	env := &testEnv{
		db:      db,
		genres:  repository.NewGenreRepository(db),
		authors: repository.NewAuthorRepository(db),
		books:   repository.NewBookRepository(db),
		copies:  repository.NewCopyRepository(db),
	}

	homeHandler := &HomeHandler{DB: sqlDB, Renderer: renderer}
	genreHandler := &GenreHandler{Repo: env.genres, Renderer: renderer}
	authorHandler := &AuthorHandler{Repo: env.authors, Renderer: renderer}
	bookHandler := &BookHandler{Repo: env.books, AuthorRepo: env.authors, GenreRepo: env.genres, Renderer: renderer}
	copyHandler := &CopyHandler{Repo: env.copies, BookRepo: env.books, Renderer: renderer}

	r := chi.NewRouter()
	r.Route("/catalog", func(r chi.Router) {
		r.Get("/", homeHandler.Index)
		r.Route("/genres", func(r chi.Router) {
			r.Get("/", genreHandler.List)
			r.Get("/create", genreHandler.CreateForm)
			r.Post("/create", genreHandler.Create)
			r.Route("/{genre_id}", func(r chi.Router) {
				r.Get("/", genreHandler.Detail)
				r.Get("/update", genreHandler.UpdateForm)
				r.Post("/update", genreHandler.Update)
				r.Get("/delete", genreHandler.DeleteForm)
				r.Post("/delete", genreHandler.Delete)
			})
		})
		r.Route("/authors", func(r chi.Router) {
			r.Get("/", authorHandler.List)
			r.Get("/create", authorHandler.CreateForm)
			r.Post("/create", authorHandler.Create)
			r.Route("/{author_id}", func(r chi.Router) {
				r.Get("/", authorHandler.Detail)
				r.Get("/update", authorHandler.UpdateForm)
				r.Post("/update", authorHandler.Update)
				r.Get("/delete", authorHandler.DeleteForm)
				r.Post("/delete", authorHandler.Delete)
			})
		})
		r.Route("/books", func(r chi.Router) {
			r.Get("/", bookHandler.List)
			r.Get("/create", bookHandler.CreateForm)
			r.Post("/create", bookHandler.Create)
			r.Route("/{book_id}", func(r chi.Router) {
				r.Get("/", bookHandler.Detail)
				r.Get("/update", bookHandler.UpdateForm)
				r.Post("/update", bookHandler.Update)
				r.Get("/delete", bookHandler.DeleteForm)
				r.Post("/delete", bookHandler.Delete)
			})
		})
		r.Route("/copies", func(r chi.Router) {
			r.Get("/", copyHandler.List)
			r.Get("/create", copyHandler.CreateForm)
			r.Post("/create", copyHandler.Create)
			r.Route("/{copy_id}", func(r chi.Router) {
				r.Get("/", copyHandler.Detail)
				r.Get("/update", copyHandler.UpdateForm)
				r.Post("/update", copyHandler.Update)
				r.Get("/delete", copyHandler.DeleteForm)
				r.Post("/delete", copyHandler.Delete)
			})
		})
	})
	env.router = r
	return env
}

func (env *testEnv) get(t *testing.T, path string) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, path, nil)
	env.router.ServeHTTP(w, r)
	return w
}

func (env *testEnv) postForm(t *testing.T, path string, form url.Values) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	env.router.ServeHTTP(w, r)
	return w
}

func (env *testEnv) seedAuthor(t *testing.T) *models.Author {
	t.Helper()
	author := &models.Author{FirstName: "Jane", FamilyName: "Austen"}
	require.NoError(t, env.authors.Create(author))
	return author
}

func (env *testEnv) seedGenre(t *testing.T, name string) *models.Genre {
	t.Helper()
	genre := &models.Genre{Name: name}
	require.NoError(t, env.genres.Create(genre))
	return genre
}

func (env *testEnv) seedBook(t *testing.T, authorID string, genreIDs ...string) *models.Book {
	t.Helper()
	book := &models.Book{
		Title:    "Pride and Prejudice",
		Summary:  "A novel of manners.",
		ISBN:     "9780141439518",
		AuthorID: authorID,
	}
	require.NoError(t, env.books.Create(book, genreIDs))
	return book
}

func (env *testEnv) seedCopy(t *testing.T, bookID string) *models.Copy {
	t.Helper()
	c := &models.Copy{BookID: bookID, Imprint: "Penguin Classics, 2003", Status: models.StatusAvailable}
	require.NoError(t, env.copies.Create(c))
	return c
}
