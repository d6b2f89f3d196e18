package store

import (
	"database/sql"

	"github.com/bookhive/bookhive/internal/model"
	"github.com/pkg/errors"
)

// UpsertAuthor resolves a display name to an author id, creating the row on
// first encounter. The insert is guarded by UNIQUE(name) and ignored on
// conflict, then the id is read back; repeated calls with the same name are
// idempotent. Authors are never updated or merged after creation.
func (t *Tx) UpsertAuthor(name string) (int64, error) {
	if name == "" {
		return 0, errors.New("author name is required")
	}

	stmt := `INSERT INTO authors (name) VALUES (?) ON CONFLICT(name) DO NOTHING`
	if _, err := t.tx.Exec(stmt, name); err != nil {
		return 0, errors.Wrapf(err, "failed to insert author %q", name)
	}

	var id int64
	if err := t.tx.QueryRow(`SELECT id FROM authors WHERE name = ?`, name).Scan(&id); err != nil {
		return 0, errors.Wrapf(err, "failed to read back author %q", name)
	}
	return id, nil
}

func (s *Store) ListAuthors() ([]*model.Author, error) {
	rows, err := s.db.Query(`SELECT id, name, bio FROM authors ORDER BY name ASC`)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list authors")
	}
	defer rows.Close()

	list := make([]*model.Author, 0)
	for rows.Next() {
		var author model.Author
		var bio sql.NullString
		if err := rows.Scan(&author.ID, &author.Name, &bio); err != nil {
			return nil, errors.Wrap(err, "failed to scan author")
		}
		if bio.Valid {
			author.Bio = &bio.String
		}
		list = append(list, &author)
	}
	return list, rows.Err()
}
