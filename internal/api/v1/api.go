package v1

import (
	"net/http"

	"github.com/bookhive/bookhive/internal/middleware"
	"github.com/bookhive/bookhive/internal/search"
	"github.com/bookhive/bookhive/internal/store"
	"github.com/gorilla/mux"
)

type Handler struct {
	store    *store.Store
	resolver *search.Resolver
}

// NewHandler is a constructor for the v1.Handler
func NewHandler(store *store.Store, resolver *search.Resolver) *Handler {
	return &Handler{
		store:    store,
		resolver: resolver,
	}
}

func Server(router *mux.Router, handler *Handler) {
	sr := router.PathPrefix("/api/v1").Subrouter()
	middleware := middleware.NewMiddleware(handler.store)
	sr.Use(middleware.HandleCORS)
	sr.Use(middleware.LoggingRequest)
	sr.Methods(http.MethodOptions)

	sr.HandleFunc("/books", handler.listBooks).Methods(http.MethodGet)
	// /books/search must register before /books/{id} so "search" is not
	// taken for an id.
	sr.HandleFunc("/books/search", handler.searchBooks).Methods(http.MethodGet)
	sr.HandleFunc("/books/genre/{genre}", handler.listBooksByGenre).Methods(http.MethodGet)
	sr.HandleFunc("/books/{id:[0-9]+}", handler.getBook).Methods(http.MethodGet)
	sr.HandleFunc("/authors", handler.listAuthors).Methods(http.MethodGet)
	sr.HandleFunc("/reviews/{bookID:[0-9]+}", handler.listReviews).Methods(http.MethodGet)
	sr.HandleFunc("/reviews", handler.createReview).Methods(http.MethodPost)
}
