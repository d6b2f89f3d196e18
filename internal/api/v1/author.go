package v1

import (
	"net/http"

	"github.com/bookhive/bookhive/internal/http/response"
	"github.com/bookhive/bookhive/internal/log"
	"go.uber.org/zap"
)

func (h *Handler) listAuthors(w http.ResponseWriter, r *http.Request) {
	authors, err := h.store.ListAuthors()
	if err != nil {
		log.Error("Error listing authors", zap.Error(err))
		response.ServerError(w, r, err)
		return
	}
	response.OK(w, r, authors)
}
