package model

// Review ratings are constrained to [1,5] by a CHECK in the schema; the same
// range is validated at the API boundary before the insert is attempted.
type Review struct {
	ID      int64   `json:"id"`
	BookID  int64   `json:"book_id"`
	UserID  int64   `json:"user_id"`
	Rating  int     `json:"rating"`
	Comment *string `json:"comment"`
}

const (
	ReviewRatingMin = 1
	ReviewRatingMax = 5
)
