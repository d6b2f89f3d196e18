package model //import "github.com/bookhive/bookhive/internal/model"

// Book is one catalog row. Optional columns stay nil when the upstream
// provider never reported them; they are not coerced to ""/0.
type Book struct {
	ID            int64    `json:"id"`
	Title         string   `json:"title"`
	AuthorID      *int64   `json:"author_id"`
	Genre         *string  `json:"genre"`
	Description   *string  `json:"description"`
	Rating        *float64 `json:"rating"`
	ImageURL      *string  `json:"image_url"`
	PublishedYear *int     `json:"published_year"`
}

// Record is the canonical shape an upstream item is normalized into before
// it touches the store. Title is the only required field.
type Record struct {
	Title         string
	AuthorName    string
	Genre         *string
	Description   *string
	Rating        *float64
	ImageURL      *string
	PublishedYear *int
}
