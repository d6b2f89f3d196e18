// Package normalize maps raw upstream items onto the canonical record shape
// the store ingests. It owns the skip-or-keep decision for malformed items.
package normalize

import (
	"strconv"
	"strings"

	"github.com/bookhive/bookhive/internal/model"
	"github.com/bookhive/bookhive/internal/upstream"
	"github.com/pkg/errors"
)

// ErrInvalidRecord marks an upstream item that cannot become a record.
// Callers skip the item and continue; it never aborts a page.
var ErrInvalidRecord = errors.New("invalid upstream record")

// UnknownAuthor is the sentinel used when a provider reports no author.
const UnknownAuthor = "Unknown Author"

// FromVolume normalizes one Google Books volume. The genre tag is the swept
// subject for ingestion, or the volume's own first category for search
// results when subject is empty.
func FromVolume(v *upstream.Volume, subject string) (*model.Record, error) {
	info := v.VolumeInfo

	title := strings.TrimSpace(info.Title)
	if title == "" {
		return nil, errors.Wrap(ErrInvalidRecord, "missing title")
	}

	rec := &model.Record{
		Title:      title,
		AuthorName: UnknownAuthor,
	}

	if len(info.Authors) > 0 {
		if name := strings.TrimSpace(info.Authors[0]); name != "" {
			rec.AuthorName = name
		}
	}

	genre := subject
	if genre == "" && len(info.Categories) > 0 {
		genre = info.Categories[0]
	}
	if genre != "" {
		rec.Genre = &genre
	}

	if info.Description != "" {
		description := info.Description
		rec.Description = &description
	}

	// Rating comes through only when the provider reported a well-formed
	// number; nothing is inferred.
	rec.Rating = info.AverageRating
	rec.PublishedYear = parseYear(info.PublishedDate)

	if links := info.ImageLinks; links != nil {
		// Prefer the larger variant when both are present.
		switch {
		case links.Thumbnail != "":
			rec.ImageURL = &links.Thumbnail
		case links.SmallThumbnail != "":
			rec.ImageURL = &links.SmallThumbnail
		}
	}

	return rec, nil
}

// FromWork normalizes one Open Library work from a subject listing.
func FromWork(w *upstream.Work, subject string) (*model.Record, error) {
	title := strings.TrimSpace(w.Title)
	if title == "" {
		return nil, errors.Wrap(ErrInvalidRecord, "missing title")
	}

	rec := &model.Record{
		Title:      title,
		AuthorName: UnknownAuthor,
	}

	if len(w.Authors) > 0 {
		if name := strings.TrimSpace(w.Authors[0].Name); name != "" {
			rec.AuthorName = name
		}
	}

	if subject != "" {
		genre := subject
		rec.Genre = &genre
	}

	if w.Description != nil && w.Description.Value != "" {
		description := w.Description.Value
		rec.Description = &description
	}

	rec.PublishedYear = w.FirstPublishYear

	coverID := w.CoverID
	if coverID == nil {
		coverID = w.CoverI
	}
	if coverID != nil {
		coverURL := upstream.CoverURL(*coverID)
		rec.ImageURL = &coverURL
	}

	return rec, nil
}

// parseYear reads the leading four characters of a date-like string.
// Anything non-numeric normalizes to absent rather than erroring.
func parseYear(date string) *int {
	if len(date) < 4 {
		return nil
	}
	year, err := strconv.Atoi(date[:4])
	if err != nil {
		return nil
	}
	return &year
}
