package fetch // import "github.com/bookhive/bookhive/internal/fetch"

import (
	"context"

	"github.com/bookhive/bookhive/internal/model"
	"github.com/bookhive/bookhive/internal/normalize"
	"github.com/bookhive/bookhive/internal/upstream"
)

// Item is one raw upstream record, still in its provider shape.
type Item interface {
	// Normalize maps the item onto the canonical record shape, tagged with
	// the subject being swept.
	Normalize(subject string) (*model.Record, error)
}

// Source yields raw catalog items one page at a time. An empty page means
// the subject is exhausted.
type Source interface {
	Name() model.Provider
	PageCap() int
	FetchPage(ctx context.Context, subject string, offset, limit int) ([]Item, error)
}

type googleSource struct {
	client *upstream.GoogleBooks
}

// NewGoogleSource adapts the commercial-catalog client to the Source
// interface.
func NewGoogleSource(client *upstream.GoogleBooks) Source {
	return &googleSource{client: client}
}

func (s *googleSource) Name() model.Provider {
	return model.ProviderGoogleBooks
}

func (s *googleSource) PageCap() int {
	return upstream.GoogleBooksPageCap
}

func (s *googleSource) FetchPage(ctx context.Context, subject string, offset, limit int) ([]Item, error) {
	volumes, err := s.client.SubjectPage(ctx, subject, offset, limit)
	if err != nil {
		return nil, err
	}
	items := make([]Item, len(volumes))
	for i := range volumes {
		items[i] = volumeItem{v: &volumes[i]}
	}
	return items, nil
}

type volumeItem struct {
	v *upstream.Volume
}

func (it volumeItem) Normalize(subject string) (*model.Record, error) {
	return normalize.FromVolume(it.v, subject)
}

type openLibrarySource struct {
	client *upstream.OpenLibrary
}

// NewOpenLibrarySource adapts the library-subjects client to the Source
// interface.
func NewOpenLibrarySource(client *upstream.OpenLibrary) Source {
	return &openLibrarySource{client: client}
}

func (s *openLibrarySource) Name() model.Provider {
	return model.ProviderOpenLibrary
}

func (s *openLibrarySource) PageCap() int {
	return upstream.OpenLibraryPageCap
}

func (s *openLibrarySource) FetchPage(ctx context.Context, subject string, offset, limit int) ([]Item, error) {
	works, err := s.client.SubjectPage(ctx, subject, offset, limit)
	if err != nil {
		return nil, err
	}
	items := make([]Item, len(works))
	for i := range works {
		items[i] = workItem{w: &works[i]}
	}
	return items, nil
}

type workItem struct {
	w *upstream.Work
}

func (it workItem) Normalize(subject string) (*model.Record, error) {
	return normalize.FromWork(it.w, subject)
}
