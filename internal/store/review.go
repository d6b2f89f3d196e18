package store

import (
	"database/sql"

	"github.com/bookhive/bookhive/internal/model"
	"github.com/pkg/errors"
)

// InsertReview inserts one user-submitted review. The schema CHECK on rating
// surfaces as an error here rather than being swallowed.
func (t *Tx) InsertReview(bookID, userID int64, rating int, comment *string) (int64, error) {
	stmt := `
	    INSERT INTO reviews (
	    book_id, user_id, rating, comment
	    ) VALUES (?,?,?,?) RETURNING id`

	var id int64
	if err := t.tx.QueryRow(stmt, bookID, userID, rating, comment).Scan(&id); err != nil {
		return 0, errors.Wrap(err, "failed to insert review")
	}
	return id, nil
}

func (s *Store) AddReview(review *model.Review) (*model.Review, error) {
	err := s.WithTx(func(tx *Tx) error {
		id, err := tx.InsertReview(review.BookID, review.UserID, review.Rating, review.Comment)
		if err != nil {
			return err
		}
		review.ID = id
		return nil
	})
	if err != nil {
		return nil, err
	}
	return review, nil
}

func (s *Store) ListReviewsByBook(bookID int64) ([]*model.Review, error) {
	stmt := `
	    SELECT id, book_id, user_id, rating, comment FROM reviews
	    WHERE book_id = ? ORDER BY id DESC`
	rows, err := s.db.Query(stmt, bookID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list reviews")
	}
	defer rows.Close()

	list := make([]*model.Review, 0)
	for rows.Next() {
		var review model.Review
		var comment sql.NullString
		if err := rows.Scan(&review.ID, &review.BookID, &review.UserID, &review.Rating, &comment); err != nil {
			return nil, errors.Wrap(err, "failed to scan review")
		}
		if comment.Valid {
			review.Comment = &comment.String
		}
		list = append(list, &review)
	}
	return list, rows.Err()
}
