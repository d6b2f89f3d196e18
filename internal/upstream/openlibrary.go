package upstream

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/bookhive/bookhive/internal/ratelimit"
)

const (
	// OpenLibraryBaseURL is the production endpoint; tests point the client
	// at an httptest server instead.
	OpenLibraryBaseURL = "https://openlibrary.org"

	// OpenLibraryPageCap is the most works one subjects request may return.
	OpenLibraryPageCap = 100

	openLibraryName = "Open Library"
)

// OpenLibrary is the library-subjects client. Requests are paced by the
// limiter so the public API is not hammered.
type OpenLibrary struct {
	baseURL string
	client  *http.Client
	limiter *ratelimit.Limiter
}

func NewOpenLibrary(baseURL string, client *http.Client, limiter *ratelimit.Limiter) *OpenLibrary {
	return &OpenLibrary{
		baseURL: baseURL,
		client:  client,
		limiter: limiter,
	}
}

// Work is one item of a subjects response.
type Work struct {
	Title            string       `json:"title"`
	Authors          []WorkAuthor `json:"authors"`
	FirstPublishYear *int         `json:"first_publish_year"`
	CoverID          *int64       `json:"cover_id"`
	CoverI           *int64       `json:"cover_i"`
	Description      *Text        `json:"description"`
}

type WorkAuthor struct {
	Name string `json:"name"`
}

// Text decodes the Open Library string-or-{"value": string} union.
type Text struct {
	Value string
}

func (t *Text) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		t.Value = s
		return nil
	}

	var obj struct {
		Value string `json:"value"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	t.Value = obj.Value
	return nil
}

type subjectResponse struct {
	Works []Work `json:"works"`
}

// SubjectPage fetches one page of works for a subject. An empty slice means
// the subject is exhausted.
func (c *OpenLibrary) SubjectPage(ctx context.Context, subject string, offset, limit int) ([]Work, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	params := url.Values{}
	params.Set("limit", fmt.Sprintf("%d", limit))
	params.Set("offset", fmt.Sprintf("%d", offset))
	endpoint := fmt.Sprintf("%s/subjects/%s.json?%s", c.baseURL, url.PathEscape(subject), params.Encode())

	var result subjectResponse
	if err := getJSON(ctx, c.client, openLibraryName, endpoint, &result); err != nil {
		return nil, err
	}
	return result.Works, nil
}

// CoverURL builds the large cover image URL for a cover id.
func CoverURL(coverID int64) string {
	return fmt.Sprintf("https://covers.openlibrary.org/b/id/%d-L.jpg", coverID)
}
