package main

import (
	"log"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"github.com/rs/cors"

	"github.com/openshelf/librarycatalog/config"
	"github.com/openshelf/librarycatalog/database"
	"github.com/openshelf/librarycatalog/handlers"
	"github.com/openshelf/librarycatalog/repository"
	"github.com/openshelf/librarycatalog/web"
)

func main() {
	err := godotenv.Load()
	if err != nil {
		log.Printf("Info: No .env file found or error loading: %v", err)
	}
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("FATAL: Failed to load configuration: %v", err)
	}

	if err := os.MkdirAll(filepath.Dir(cfg.DatabasePath), 0755); err != nil {
		log.Fatalf("FATAL: Failed to create database directory: %v", err)
	}

	db, err := database.InitGormDB(cfg.DatabasePath)
	if err != nil {
		log.Fatalf("FATAL: Failed to initialize database: %v", err)
	}
	if err := database.AutoMigrateModels(db); err != nil {
		log.Fatalf("FATAL: Failed to migrate database: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("FATAL: Failed to get underlying sql.DB: %v", err)
	}

	renderer, err := web.NewRenderer()
	if err != nil {
		log.Fatalf("FATAL: Failed to parse templates: %v", err)
	}

	genreRepo := repository.NewGenreRepository(db)
	authorRepo := repository.NewAuthorRepository(db)
	bookRepo := repository.NewBookRepository(db)
	copyRepo := repository.NewCopyRepository(db)

	homeHandler := &handlers.HomeHandler{DB: sqlDB, Renderer: renderer}
	genreHandler := &handlers.GenreHandler{Repo: genreRepo, Renderer: renderer}
	authorHandler := &handlers.AuthorHandler{Repo: authorRepo, Renderer: renderer}
	bookHandler := &handlers.BookHandler{Repo: bookRepo, AuthorRepo: authorRepo, GenreRepo: genreRepo, Renderer: renderer}
	copyHandler := &handlers.CopyHandler{Repo: copyRepo, BookRepo: bookRepo, Renderer: renderer}

	r := chi.NewRouter()

	corsOptions := cors.Options{
		AllowedOrigins: []string{"http://localhost:5173"}, //TODO: configurable
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}
	corsHandler := cors.New(corsOptions)

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(corsHandler.Handler)
	r.Use(handlers.RateLimit(cfg.RateLimitRPS, cfg.RateLimitBurst))

	r.Get("/", func(w http.ResponseWriter, req *http.Request) {
		http.Redirect(w, req, "/catalog/", http.StatusFound)
	})

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

	serverAddr := ":" + cfg.Port
	log.Printf("Server listening on %s", serverAddr)
	server := &http.Server{
		Addr:         serverAddr,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}
	log.Fatal(server.ListenAndServe())
}
