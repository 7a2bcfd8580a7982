package handlers

import (
	"log"
	"net/http"

	"github.com/openshelf/librarycatalog/web"
)

// renderNotFound writes the generic 404 page for a primary record that does
// not exist.
func renderNotFound(rd *web.Renderer, w http.ResponseWriter) {
	rd.HTML(w, http.StatusNotFound, "error", map[string]any{
		"Title":   "Not Found",
		"Message": "The record you requested does not exist.",
	})
}

// renderServerError logs the failure and writes the generic 500 page.
// Store failures are never retried here; they land on this page.
func renderServerError(rd *web.Renderer, w http.ResponseWriter, err error) {
	log.Printf("internal error: %v", err)
	rd.HTML(w, http.StatusInternalServerError, "error", map[string]any{
		"Title":   "Server Error",
		"Message": "Something went wrong handling your request.",
	})
}
