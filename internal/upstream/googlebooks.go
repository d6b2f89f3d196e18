package upstream

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
)

const (
	// GoogleBooksBaseURL is the production endpoint; tests point the client
	// at an httptest server instead.
	GoogleBooksBaseURL = "https://www.googleapis.com/books/v1"

	// GoogleBooksPageCap is the most volumes one request may return.
	GoogleBooksPageCap = 40

	googleBooksName = "Google Books"
)

// GoogleBooks is the commercial-catalog client.
type GoogleBooks struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

func NewGoogleBooks(baseURL, apiKey string, client *http.Client) *GoogleBooks {
	return &GoogleBooks{
		baseURL: baseURL,
		apiKey:  apiKey,
		client:  client,
	}
}

// Volume is one item of a volumes response.
type Volume struct {
	VolumeInfo VolumeInfo `json:"volumeInfo"`
}

type VolumeInfo struct {
	Title         string      `json:"title"`
	Authors       []string    `json:"authors"`
	Description   string      `json:"description"`
	Categories    []string    `json:"categories"`
	PublishedDate string      `json:"publishedDate"`
	AverageRating *float64    `json:"averageRating"`
	ImageLinks    *ImageLinks `json:"imageLinks"`
}

type ImageLinks struct {
	Thumbnail      string `json:"thumbnail"`
	SmallThumbnail string `json:"smallThumbnail"`
}

type volumesResponse struct {
	TotalItems int      `json:"totalItems"`
	Items      []Volume `json:"items"`
}

// SubjectPage fetches one page of a subject-scoped listing. An empty slice
// means the subject is exhausted.
func (c *GoogleBooks) SubjectPage(ctx context.Context, subject string, startIndex, maxResults int) ([]Volume, error) {
	return c.volumes(ctx, "subject:"+subject, startIndex, maxResults)
}

// Search runs a raw free-text query, not subject-scoped.
func (c *GoogleBooks) Search(ctx context.Context, query string, maxResults int) ([]Volume, error) {
	return c.volumes(ctx, query, 0, maxResults)
}

func (c *GoogleBooks) volumes(ctx context.Context, query string, startIndex, maxResults int) ([]Volume, error) {
	params := url.Values{}
	params.Set("q", query)
	params.Set("maxResults", strconv.Itoa(maxResults))
	params.Set("startIndex", strconv.Itoa(startIndex))
	if c.apiKey != "" {
		params.Set("key", c.apiKey)
	}

	endpoint := fmt.Sprintf("%s/volumes?%s", c.baseURL, params.Encode())

	var result volumesResponse
	if err := getJSON(ctx, c.client, googleBooksName, endpoint, &result); err != nil {
		return nil, err
	}
	return result.Items, nil
}
