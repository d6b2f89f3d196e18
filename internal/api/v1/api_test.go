package v1

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/bookhive/bookhive/internal/database"
	"github.com/bookhive/bookhive/internal/log"
	"github.com/bookhive/bookhive/internal/model"
	"github.com/bookhive/bookhive/internal/search"
	"github.com/bookhive/bookhive/internal/store"
	"github.com/bookhive/bookhive/internal/upstream"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func init() {
	log.Logger = zap.NewNop()
}

// newTestServer wires a real store and resolver behind the v1 routes, with
// the commercial catalog stubbed by an httptest server.
func newTestServer(t *testing.T, catalogStatus int, catalogBody string) (*httptest.Server, *store.Store) {
	t.Helper()

	dsn := filepath.Join(t.TempDir(), "bookhive_test.db")
	db, err := database.NewDB(dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, database.Migrate(context.Background(), db))
	st := store.NewStore(db)

	catalogSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(catalogStatus)
		_, _ = w.Write([]byte(catalogBody))
	}))
	t.Cleanup(catalogSrv.Close)

	catalog := upstream.NewGoogleBooks(catalogSrv.URL, "", upstream.NewHTTPClient(5*time.Second))
	resolver, err := search.NewResolver(st, catalog, 16, 5*time.Minute, 20)
	require.NoError(t, err)

	router := mux.NewRouter()
	Server(router, NewHandler(st, resolver))

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv, st
}

func seedBook(t *testing.T, st *store.Store, title, author, genre string) int64 {
	t.Helper()
	var id int64
	require.NoError(t, st.WithTx(func(tx *store.Tx) error {
		authorID, err := tx.UpsertAuthor(author)
		if err != nil {
			return err
		}
		_, id, err = tx.InsertBookIfAbsent(&model.Record{Title: title, AuthorName: author, Genre: &genre}, &authorID)
		return err
	}))
	return id
}

func getJSON(t *testing.T, srv *httptest.Server, path string, v any) int {
	t.Helper()
	resp, err := http.Get(srv.URL + path)
	require.NoError(t, err)
	defer resp.Body.Close()
	if v != nil && resp.StatusCode < 300 {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(v))
	}
	return resp.StatusCode
}

func TestListBooks(t *testing.T) {
	srv, st := newTestServer(t, http.StatusOK, `{"totalItems": 0}`)
	seedBook(t, st, "Dune", "Frank Herbert", "Fiction")
	seedBook(t, st, "Hyperion", "Dan Simmons", "Fiction")

	var books []*model.Book
	status := getJSON(t, srv, "/api/v1/books", &books)
	assert.Equal(t, http.StatusOK, status)
	assert.Len(t, books, 2)
}

func TestGetBook(t *testing.T) {
	srv, st := newTestServer(t, http.StatusOK, `{"totalItems": 0}`)
	id := seedBook(t, st, "Dune", "Frank Herbert", "Fiction")

	var book model.Book
	status := getJSON(t, srv, "/api/v1/books/"+strconv.FormatInt(id, 10), &book)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Dune", book.Title)

	status = getJSON(t, srv, "/api/v1/books/99999", nil)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestListBooksByGenre(t *testing.T) {
	srv, st := newTestServer(t, http.StatusOK, `{"totalItems": 0}`)
	seedBook(t, st, "Dune", "Frank Herbert", "Fiction")
	seedBook(t, st, "SICP", "Harold Abelson", "Computers")

	var books []*model.Book
	status := getJSON(t, srv, "/api/v1/books/genre/computers", &books)
	assert.Equal(t, http.StatusOK, status)
	require.Len(t, books, 1)
	assert.Equal(t, "SICP", books[0].Title)
}

func TestSearchBooks(t *testing.T) {
	srv, st := newTestServer(t, http.StatusOK, `{"totalItems": 0}`)
	seedBook(t, st, "Dune Messiah", "Frank Herbert", "Fiction")

	var books []*model.Book
	status := getJSON(t, srv, "/api/v1/books/search?query=dune", &books)
	assert.Equal(t, http.StatusOK, status)
	require.Len(t, books, 1)
	assert.Equal(t, "Dune Messiah", books[0].Title)
}

func TestSearchBooksRequiresQuery(t *testing.T) {
	srv, _ := newTestServer(t, http.StatusOK, `{"totalItems": 0}`)

	status := getJSON(t, srv, "/api/v1/books/search", nil)
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestSearchBooksUpstreamFault(t *testing.T) {
	srv, _ := newTestServer(t, http.StatusInternalServerError, "boom")

	status := getJSON(t, srv, "/api/v1/books/search?query=dune", nil)
	assert.Equal(t, http.StatusBadGateway, status)
}

func TestSearchBooksEmptyAnswer(t *testing.T) {
	srv, _ := newTestServer(t, http.StatusOK, `{"totalItems": 0}`)

	var books []*model.Book
	status := getJSON(t, srv, "/api/v1/books/search?query=nothing", &books)
	assert.Equal(t, http.StatusOK, status)
	assert.Empty(t, books)
}

func TestListAuthors(t *testing.T) {
	srv, st := newTestServer(t, http.StatusOK, `{"totalItems": 0}`)
	seedBook(t, st, "Dune", "Frank Herbert", "Fiction")

	var authors []*model.Author
	status := getJSON(t, srv, "/api/v1/authors", &authors)
	assert.Equal(t, http.StatusOK, status)
	require.Len(t, authors, 1)
	assert.Equal(t, "Frank Herbert", authors[0].Name)
}

func TestCreateReview(t *testing.T) {
	srv, st := newTestServer(t, http.StatusOK, `{"totalItems": 0}`)
	require.NoError(t, st.SeedUsers(1))
	id := seedBook(t, st, "Dune", "Frank Herbert", "Fiction")

	body := `{"book_id": ` + strconv.FormatInt(id, 10) + `, "user_id": 1, "rating": 5, "comment": "Great."}`
	resp, err := http.Post(srv.URL+"/api/v1/reviews", "application/json", strings.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var created model.Review
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&created))
	assert.NotZero(t, created.ID)

	var reviews []*model.Review
	status := getJSON(t, srv, "/api/v1/reviews/"+strconv.FormatInt(id, 10), &reviews)
	assert.Equal(t, http.StatusOK, status)
	assert.Len(t, reviews, 1)
}

func TestCreateReviewValidation(t *testing.T) {
	srv, _ := newTestServer(t, http.StatusOK, `{"totalItems": 0}`)

	bodies := []string{
		`not json`,
		`{"book_id": 0, "user_id": 1, "rating": 3}`,
		`{"book_id": 1, "user_id": 0, "rating": 3}`,
		`{"book_id": 1, "user_id": 1, "rating": 0}`,
		`{"book_id": 1, "user_id": 1, "rating": 6}`,
	}
	for _, body := range bodies {
		resp, err := http.Post(srv.URL+"/api/v1/reviews", "application/json", strings.NewReader(body))
		require.NoError(t, err)
		resp.Body.Close()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, body)
	}
}
