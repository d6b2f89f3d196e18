package v1

import (
	"errors"
	"net/http"
	"strings"

	"github.com/bookhive/bookhive/internal/http/request"
	"github.com/bookhive/bookhive/internal/http/response"
	"github.com/bookhive/bookhive/internal/log"
	"github.com/bookhive/bookhive/internal/search"
	"github.com/bookhive/bookhive/internal/upstream"
	"go.uber.org/zap"
)

func (h *Handler) listBooks(w http.ResponseWriter, r *http.Request) {
	books, err := h.store.ListBooks()
	if err != nil {
		log.Error("Error listing books", zap.Error(err))
		response.ServerError(w, r, err)
		return
	}
	response.OK(w, r, books)
}

func (h *Handler) getBook(w http.ResponseWriter, r *http.Request) {
	id := request.RouteIntParam(r, "id")

	book, err := h.store.FindBookByID(int64(id))
	if err != nil {
		log.Error("Error finding book", zap.Int("id", id), zap.Error(err))
		response.ServerError(w, r, err)
		return
	}
	if book == nil {
		response.NotFound(w, r)
		return
	}
	response.OK(w, r, book)
}

func (h *Handler) listBooksByGenre(w http.ResponseWriter, r *http.Request) {
	genre := strings.TrimSpace(request.RouteStringParam(r, "genre"))
	if genre == "" {
		response.BadRequest(w, r, errors.New("genre parameter is required"))
		return
	}

	books, err := h.store.ListBooksByGenre(genre)
	if err != nil {
		log.Error("Error listing books by genre", zap.String("genre", genre), zap.Error(err))
		response.ServerError(w, r, err)
		return
	}
	response.OK(w, r, books)
}

func (h *Handler) searchBooks(w http.ResponseWriter, r *http.Request) {
	query := request.QueryStringParam(r, "query", "")

	books, err := h.resolver.Search(r.Context(), query)
	switch {
	case errors.Is(err, search.ErrInvalidQuery):
		response.BadRequest(w, r, err)
		return
	case errors.Is(err, upstream.ErrUpstream):
		// Gateway fault, not an empty result.
		response.BadGateway(w, r, err)
		return
	case err != nil:
		log.Error("Search failed", zap.String("query", query), zap.Error(err))
		response.ServerError(w, r, err)
		return
	}
	response.OK(w, r, books)
}
