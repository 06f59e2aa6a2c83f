package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// SaveSession stores the serialized session payload, replacing any previous
// one. The session table holds at most one row.
func (s *Store) SaveSession(ctx context.Context, payload []byte) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO session (id, payload, updated_at)
		 VALUES (1, ?, datetime('now'))
		 ON CONFLICT(id) DO UPDATE SET
			payload    = excluded.payload,
			updated_at = excluded.updated_at`,
		string(payload),
	)
	if err != nil {
		return fmt.Errorf("saving session: %w", err)
	}
	return nil
}

// LoadSession returns the serialized session payload, or ErrNotFound when no
// session has been saved.
func (s *Store) LoadSession(ctx context.Context) ([]byte, error) {
	var payload string
	err := s.db.QueryRowContext(ctx,
		`SELECT payload FROM session WHERE id = 1`,
	).Scan(&payload)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("loading session: %w", err)
	}
	return []byte(payload), nil
}

// DeleteSession removes the persisted session. Deleting when no session
// exists is not an error.
func (s *Store) DeleteSession(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM session WHERE id = 1`); err != nil {
		return fmt.Errorf("deleting session: %w", err)
	}
	return nil
}
