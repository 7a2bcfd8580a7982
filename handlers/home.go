package handlers

import (
	"database/sql"
	"net/http"

	"golang.org/x/sync/errgroup"

	"github.com/openshelf/librarycatalog/database"
	"github.com/openshelf/librarycatalog/models"
	"github.com/openshelf/librarycatalog/web"
)

// HomeHandler serves the catalog index page with collection tallies.
type HomeHandler struct {
	DB       *sql.DB
	Renderer *web.Renderer
}

// Index counts every collection concurrently and renders the totals
func (h *HomeHandler) Index(w http.ResponseWriter, r *http.Request) {
	var counts database.CatalogCounts

	g, _ := errgroup.WithContext(r.Context())
	g.Go(func() error {
		var err error
		counts.Books, err = database.CountRows(h.DB, "books")
		return err
	})
	g.Go(func() error {
		var err error
		counts.Copies, err = database.CountRows(h.DB, "copies")
		return err
	})
	g.Go(func() error {
		var err error
		counts.CopiesAvailable, err = database.CountCopiesByStatus(h.DB, string(models.StatusAvailable))
		return err
	})
	g.Go(func() error {
		var err error
		counts.Authors, err = database.CountRows(h.DB, "authors")
		return err
	})
	g.Go(func() error {
		var err error
		counts.Genres, err = database.CountRows(h.DB, "genres")
		return err
	})
	if err := g.Wait(); err != nil {
		renderServerError(h.Renderer, w, err)
		return
	}

	h.Renderer.HTML(w, http.StatusOK, "home", map[string]any{
		"Title":  "Local Library Home",
		"Counts": counts,
	})
}
