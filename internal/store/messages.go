package store

import (
	"context"

	"github.com/pkg/errors"
)

// ListMessages returns all contact messages, newest first.
func (s *Store) ListMessages(ctx context.Context) ([]Message, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, email, body, created_at
		FROM messages
		ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, errors.Wrap(err, "listing messages")
	}
	defer rows.Close()

	var msgs []Message
	for rows.Next() {
		var m Message
		if err := rows.Scan(&m.ID, &m.Name, &m.Email, &m.Body, &m.CreatedAt); err != nil {
			return nil, errors.Wrap(err, "scanning message")
		}
		msgs = append(msgs, m)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "iterating messages")
	}

	return msgs, nil
}

// InsertMessage stores a contact submission and returns its generated id.
func (s *Store) InsertMessage(ctx context.Context, name, email, body string) (int64, error) {
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO messages (name, email, body)
		VALUES (?, ?, ?)`, name, email, body)
	if err != nil {
		return 0, errors.Wrap(err, "inserting message")
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, errors.Wrap(err, "reading message id")
	}
	return id, nil
}

// DeleteMessage removes one message by id. Deleting an id that does not
// exist is a no-op.
func (s *Store) DeleteMessage(ctx context.Context, id int64) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM messages WHERE id = ?", id)
	return errors.Wrap(err, "deleting message")
}
