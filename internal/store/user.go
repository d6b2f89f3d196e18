package store

import (
	"fmt"

	"github.com/pkg/errors"
)

// SeedUsers creates placeholder accounts reviews can reference. Emails are
// unique, so re-seeding an already seeded database is a no-op.
func (s *Store) SeedUsers(count int) error {
	return s.WithTx(func(t *Tx) error {
		stmt := `INSERT INTO users (name, email) VALUES (?,?) ON CONFLICT(email) DO NOTHING`
		for i := 1; i <= count; i++ {
			name := fmt.Sprintf("User %d", i)
			email := fmt.Sprintf("user%d@example.com", i)
			if _, err := t.tx.Exec(stmt, name, email); err != nil {
				return errors.Wrapf(err, "failed to seed user %q", email)
			}
		}
		return nil
	})
}

func (s *Store) CountUsers() (int, error) {
	var count int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM users`).Scan(&count); err != nil {
		return 0, errors.Wrap(err, "failed to count users")
	}
	return count, nil
}
