package v1

import (
	"encoding/json"
	"net/http"

	"github.com/bookhive/bookhive/internal/http/request"
	"github.com/bookhive/bookhive/internal/http/response"
	"github.com/bookhive/bookhive/internal/log"
	"github.com/bookhive/bookhive/internal/model"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

func (h *Handler) listReviews(w http.ResponseWriter, r *http.Request) {
	bookID := request.RouteIntParam(r, "bookID")

	reviews, err := h.store.ListReviewsByBook(int64(bookID))
	if err != nil {
		log.Error("Error listing reviews", zap.Int("book_id", bookID), zap.Error(err))
		response.ServerError(w, r, err)
		return
	}
	response.OK(w, r, reviews)
}

func (h *Handler) createReview(w http.ResponseWriter, r *http.Request) {
	var review model.Review
	if err := json.NewDecoder(r.Body).Decode(&review); err != nil {
		response.BadRequest(w, r, errors.Wrap(err, "invalid review payload"))
		return
	}

	if err := validateNewReview(&review); err != nil {
		response.BadRequest(w, r, err)
		return
	}

	created, err := h.store.AddReview(&review)
	if err != nil {
		log.Error("Error creating review",
			zap.Int64("book_id", review.BookID),
			zap.Int64("user_id", review.UserID),
			zap.Error(err))
		response.ServerError(w, r, err)
		return
	}
	response.Created(w, r, created)
}

func validateNewReview(review *model.Review) error {
	if review.BookID <= 0 {
		return errors.New("book_id is required")
	}
	if review.UserID <= 0 {
		return errors.New("user_id is required")
	}
	if review.Rating < model.ReviewRatingMin || review.Rating > model.ReviewRatingMax {
		return errors.Errorf("rating must be between %d and %d", model.ReviewRatingMin, model.ReviewRatingMax)
	}
	return nil
}
