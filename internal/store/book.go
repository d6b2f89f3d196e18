package store

import (
	"database/sql"
	"strings"

	"github.com/bookhive/bookhive/internal/model"
	"github.com/pkg/errors"
)

const bookColumns = `id, title, author_id, genre, description, rating, image_url, published_year`

// InsertBookIfAbsent inserts one ingested record, deduplicated on the
// (title, author_id) pair. Duplicate calls are no-ops reporting inserted
// false together with the existing row id. The read-then-insert pair is safe
// because it always runs inside the page's transaction; UNIQUE(title,
// author_id) remains as a backstop.
func (t *Tx) InsertBookIfAbsent(rec *model.Record, authorID *int64) (inserted bool, id int64, err error) {
	// author_id is nullable, so the match has to be null-safe.
	checkStmt := `SELECT id FROM books WHERE title = ? AND author_id IS ?`
	err = t.tx.QueryRow(checkStmt, rec.Title, authorID).Scan(&id)
	switch {
	case err == nil:
		return false, id, nil
	case !errors.Is(err, sql.ErrNoRows):
		return false, 0, errors.Wrapf(err, "failed to check for existing book %q", rec.Title)
	}

	stmt := `
	    INSERT INTO books (
	    title, author_id, genre, description, rating, image_url, published_year
	    ) VALUES (?,?,?,?,?,?,?) RETURNING id`
	if err := t.tx.QueryRow(stmt,
		rec.Title,
		authorID,
		rec.Genre,
		rec.Description,
		rec.Rating,
		rec.ImageURL,
		rec.PublishedYear,
	).Scan(&id); err != nil {
		return false, 0, errors.Wrapf(err, "failed to insert book %q", rec.Title)
	}
	return true, id, nil
}

// InsertBookByTitleIfAbsent is the lightweight search-path insert: dedup by
// case-insensitive title only, and no author row is resolved, so author_id
// stays NULL. Full-detail ingestion goes through InsertBookIfAbsent instead.
func (t *Tx) InsertBookByTitleIfAbsent(rec *model.Record) (inserted bool, id int64, err error) {
	err = t.tx.QueryRow(`SELECT id FROM books WHERE lower(title) = lower(?)`, rec.Title).Scan(&id)
	switch {
	case err == nil:
		return false, id, nil
	case !errors.Is(err, sql.ErrNoRows):
		return false, 0, errors.Wrapf(err, "failed to check for existing book %q", rec.Title)
	}

	stmt := `
	    INSERT INTO books (
	    title, genre, description, rating, image_url, published_year
	    ) VALUES (?,?,?,?,?,?) RETURNING id`
	if err := t.tx.QueryRow(stmt,
		rec.Title,
		rec.Genre,
		rec.Description,
		rec.Rating,
		rec.ImageURL,
		rec.PublishedYear,
	).Scan(&id); err != nil {
		return false, 0, errors.Wrapf(err, "failed to insert book %q", rec.Title)
	}
	return true, id, nil
}

func (s *Store) CountBooks() (int, error) {
	var count int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM books`).Scan(&count); err != nil {
		return 0, errors.Wrap(err, "failed to count books")
	}
	return count, nil
}

// FindBookByID returns nil without error when the id is unknown.
func (s *Store) FindBookByID(id int64) (*model.Book, error) {
	row := s.db.QueryRow(`SELECT `+bookColumns+` FROM books WHERE id = ?`, id)
	book, err := scanBook(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrapf(err, "failed to find book %d", id)
	}
	return book, nil
}

// FindBooksByTitleSubstring matches titles case-insensitively, newest rows
// first.
func (s *Store) FindBooksByTitleSubstring(q string) ([]*model.Book, error) {
	stmt := `SELECT ` + bookColumns + ` FROM books
	    WHERE lower(title) LIKE '%' || lower(?) || '%' ORDER BY id DESC`
	return s.queryBooks(stmt, q)
}

func (s *Store) ListBooks() ([]*model.Book, error) {
	stmt := `SELECT ` + bookColumns + ` FROM books
	    ORDER BY rating DESC NULLS LAST, id DESC`
	return s.queryBooks(stmt)
}

func (s *Store) ListBooksByGenre(genre string) ([]*model.Book, error) {
	stmt := `SELECT ` + bookColumns + ` FROM books
	    WHERE lower(genre) = lower(?) ORDER BY rating DESC NULLS LAST, id DESC`
	return s.queryBooks(stmt, genre)
}

// ListBooksByTitles returns the rows whose titles match the given ones
// case-insensitively but otherwise exactly. The search resolver uses it to
// re-read just-inserted rows with their assigned ids.
func (s *Store) ListBooksByTitles(titles []string) ([]*model.Book, error) {
	if len(titles) == 0 {
		return []*model.Book{}, nil
	}

	placeholders := make([]string, len(titles))
	args := make([]any, len(titles))
	for i, title := range titles {
		placeholders[i] = "?"
		args[i] = strings.ToLower(title)
	}

	stmt := `SELECT ` + bookColumns + ` FROM books
	    WHERE lower(title) IN (` + strings.Join(placeholders, ",") + `) ORDER BY id DESC`
	return s.queryBooks(stmt, args...)
}

func (s *Store) queryBooks(stmt string, args ...any) ([]*model.Book, error) {
	rows, err := s.db.Query(stmt, args...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to query books")
	}
	defer rows.Close()

	list := make([]*model.Book, 0)
	for rows.Next() {
		book, err := scanBook(rows)
		if err != nil {
			return nil, errors.Wrap(err, "failed to scan book")
		}
		list = append(list, book)
	}
	return list, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanBook(sc scanner) (*model.Book, error) {
	var book model.Book
	var (
		authorID      sql.NullInt64
		genre         sql.NullString
		description   sql.NullString
		rating        sql.NullFloat64
		imageURL      sql.NullString
		publishedYear sql.NullInt64
	)

	if err := sc.Scan(
		&book.ID,
		&book.Title,
		&authorID,
		&genre,
		&description,
		&rating,
		&imageURL,
		&publishedYear,
	); err != nil {
		return nil, err
	}

	if authorID.Valid {
		book.AuthorID = &authorID.Int64
	}
	if genre.Valid {
		book.Genre = &genre.String
	}
	if description.Valid {
		book.Description = &description.String
	}
	if rating.Valid {
		book.Rating = &rating.Float64
	}
	if imageURL.Valid {
		book.ImageURL = &imageURL.String
	}
	if publishedYear.Valid {
		year := int(publishedYear.Int64)
		book.PublishedYear = &year
	}
	return &book, nil
}
