package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/bookhive/bookhive/internal/database"
	"github.com/bookhive/bookhive/internal/log"
	"github.com/bookhive/bookhive/internal/model"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func init() {
	log.Logger = zap.NewNop()
}

func newTestStore(t *testing.T) *Store {
	t.Helper()

	dsn := filepath.Join(t.TempDir(), "bookhive_test.db")
	db, err := database.NewDB(dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, database.Migrate(context.Background(), db))
	return NewStore(db)
}

func upsertAuthor(t *testing.T, s *Store, name string) int64 {
	t.Helper()
	var id int64
	require.NoError(t, s.WithTx(func(tx *Tx) error {
		var err error
		id, err = tx.UpsertAuthor(name)
		return err
	}))
	return id
}

func insertBook(t *testing.T, s *Store, rec *model.Record, authorID *int64) (bool, int64) {
	t.Helper()
	var inserted bool
	var id int64
	require.NoError(t, s.WithTx(func(tx *Tx) error {
		var err error
		inserted, id, err = tx.InsertBookIfAbsent(rec, authorID)
		return err
	}))
	return inserted, id
}

func TestUpsertAuthorIdempotent(t *testing.T) {
	s := newTestStore(t)

	first := upsertAuthor(t, s, "Frank Herbert")
	second := upsertAuthor(t, s, "Frank Herbert")
	assert.Equal(t, first, second)

	other := upsertAuthor(t, s, "Ursula K. Le Guin")
	assert.NotEqual(t, first, other)

	authors, err := s.ListAuthors()
	require.NoError(t, err)
	assert.Len(t, authors, 2)
}

func TestUpsertAuthorRejectsEmptyName(t *testing.T) {
	s := newTestStore(t)

	err := s.WithTx(func(tx *Tx) error {
		_, err := tx.UpsertAuthor("")
		return err
	})
	assert.Error(t, err)
}

func TestInsertBookIfAbsent(t *testing.T) {
	s := newTestStore(t)
	authorID := upsertAuthor(t, s, "Frank Herbert")

	rec := &model.Record{Title: "Dune", AuthorName: "Frank Herbert"}

	inserted, firstID := insertBook(t, s, rec, &authorID)
	assert.True(t, inserted)

	inserted, dupID := insertBook(t, s, rec, &authorID)
	assert.False(t, inserted)
	assert.Equal(t, firstID, dupID)

	// Same title under another author is a different book.
	otherID := upsertAuthor(t, s, "Somebody Else")
	inserted, _ = insertBook(t, s, rec, &otherID)
	assert.True(t, inserted)

	count, err := s.CountBooks()
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestInsertBookIfAbsentNullAuthor(t *testing.T) {
	s := newTestStore(t)

	rec := &model.Record{Title: "Orphan Work"}

	inserted, firstID := insertBook(t, s, rec, nil)
	assert.True(t, inserted)

	inserted, dupID := insertBook(t, s, rec, nil)
	assert.False(t, inserted)
	assert.Equal(t, firstID, dupID)
}

func TestBookNullFieldsRoundTrip(t *testing.T) {
	s := newTestStore(t)

	_, id := insertBook(t, s, &model.Record{Title: "Bare"}, nil)

	book, err := s.FindBookByID(id)
	require.NoError(t, err)
	require.NotNil(t, book)

	assert.Equal(t, "Bare", book.Title)
	assert.Nil(t, book.AuthorID)
	assert.Nil(t, book.Genre)
	assert.Nil(t, book.Description)
	assert.Nil(t, book.Rating)
	assert.Nil(t, book.ImageURL)
	assert.Nil(t, book.PublishedYear)
}

func TestFindBookByIDMissing(t *testing.T) {
	s := newTestStore(t)

	book, err := s.FindBookByID(42)
	require.NoError(t, err)
	assert.Nil(t, book)
}

func TestInsertBookByTitleIfAbsent(t *testing.T) {
	s := newTestStore(t)

	require.NoError(t, s.WithTx(func(tx *Tx) error {
		inserted, _, err := tx.InsertBookByTitleIfAbsent(&model.Record{Title: "Dune"})
		require.NoError(t, err)
		assert.True(t, inserted)

		// Case-insensitive dedup.
		inserted, _, err = tx.InsertBookByTitleIfAbsent(&model.Record{Title: "DUNE"})
		require.NoError(t, err)
		assert.False(t, inserted)
		return nil
	}))

	count, err := s.CountBooks()
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	// The lightweight path never resolves an author.
	books, err := s.ListBooksByTitles([]string{"dune"})
	require.NoError(t, err)
	require.Len(t, books, 1)
	assert.Nil(t, books[0].AuthorID)
}

func TestFindBooksByTitleSubstring(t *testing.T) {
	s := newTestStore(t)

	insertBook(t, s, &model.Record{Title: "The Dispossessed"}, nil)
	insertBook(t, s, &model.Record{Title: "Dune Messiah"}, nil)
	insertBook(t, s, &model.Record{Title: "Dune"}, nil)

	books, err := s.FindBooksByTitleSubstring("dUnE")
	require.NoError(t, err)
	require.Len(t, books, 2)
	// Newest rows first.
	assert.Equal(t, "Dune", books[0].Title)
	assert.Equal(t, "Dune Messiah", books[1].Title)

	books, err = s.FindBooksByTitleSubstring("nothing-here")
	require.NoError(t, err)
	assert.Empty(t, books)
}

func TestListBooksByGenre(t *testing.T) {
	s := newTestStore(t)

	fantasy := "Fantasy"
	scifi := "Science"
	insertBook(t, s, &model.Record{Title: "A", Genre: &fantasy}, nil)
	insertBook(t, s, &model.Record{Title: "B", Genre: &scifi}, nil)

	books, err := s.ListBooksByGenre("fantasy")
	require.NoError(t, err)
	require.Len(t, books, 1)
	assert.Equal(t, "A", books[0].Title)
}

func TestListBooksByTitles(t *testing.T) {
	s := newTestStore(t)

	insertBook(t, s, &model.Record{Title: "Dune"}, nil)
	insertBook(t, s, &model.Record{Title: "Hyperion"}, nil)
	insertBook(t, s, &model.Record{Title: "Solaris"}, nil)

	books, err := s.ListBooksByTitles([]string{"DUNE", "Solaris"})
	require.NoError(t, err)
	assert.Len(t, books, 2)

	books, err = s.ListBooksByTitles(nil)
	require.NoError(t, err)
	assert.Empty(t, books)
}

func TestReviewRatingConstraint(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.SeedUsers(1))
	_, bookID := insertBook(t, s, &model.Record{Title: "Dune"}, nil)

	comment := "A classic."
	review, err := s.AddReview(&model.Review{BookID: bookID, UserID: 1, Rating: 5, Comment: &comment})
	require.NoError(t, err)
	assert.NotZero(t, review.ID)

	// The CHECK violation is surfaced, not swallowed.
	_, err = s.AddReview(&model.Review{BookID: bookID, UserID: 1, Rating: 6})
	assert.Error(t, err)

	reviews, err := s.ListReviewsByBook(bookID)
	require.NoError(t, err)
	require.Len(t, reviews, 1)
	require.NotNil(t, reviews[0].Comment)
	assert.Equal(t, "A classic.", *reviews[0].Comment)
}

func TestSeedUsersIdempotent(t *testing.T) {
	s := newTestStore(t)

	require.NoError(t, s.SeedUsers(5))
	require.NoError(t, s.SeedUsers(5))

	count, err := s.CountUsers()
	require.NoError(t, err)
	assert.Equal(t, 5, count)
}

func TestWithTxRollsBackOnError(t *testing.T) {
	s := newTestStore(t)

	boom := errors.New("boom")
	err := s.WithTx(func(tx *Tx) error {
		if _, _, err := tx.InsertBookIfAbsent(&model.Record{Title: "Ghost"}, nil); err != nil {
			return err
		}
		return boom
	})
	require.True(t, errors.Is(err, boom))

	count, err := s.CountBooks()
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}
