package history

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/mager/cochlea/cochlea"
)

const createTable = `CREATE TABLE IF NOT EXISTS recommendation_history (
	position     INTEGER PRIMARY KEY,
	track_name   TEXT NOT NULL,
	track_artist TEXT NOT NULL
)`

// PostgresStore keeps one row per remembered pair, ordered by position.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgresStore creates the history table if needed.
func NewPostgresStore(ctx context.Context, db *sql.DB) (*PostgresStore, error) {
	if _, err := db.ExecContext(ctx, createTable); err != nil {
		return nil, fmt.Errorf("history: creating table: %w", err)
	}
	return &PostgresStore{db: db}, nil
}

func (s *PostgresStore) Load(ctx context.Context) ([]cochlea.Pair, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT track_name, track_artist FROM recommendation_history ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("history: %w", err)
	}
	defer rows.Close()

	var pairs []cochlea.Pair
	for rows.Next() {
		var p cochlea.Pair
		if err := rows.Scan(&p.Name, &p.Artist); err != nil {
			return nil, fmt.Errorf("history: %w", err)
		}
		pairs = append(pairs, p)
	}
	return pairs, rows.Err()
}

func (s *PostgresStore) Save(ctx context.Context, pairs []cochlea.Pair) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("history: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM recommendation_history`); err != nil {
		return fmt.Errorf("history: %w", err)
	}
	for i, p := range pairs {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO recommendation_history (position, track_name, track_artist) VALUES ($1, $2, $3)`,
			i, p.Name, p.Artist,
		); err != nil {
			return fmt.Errorf("history: %w", err)
		}
	}
	return tx.Commit()
}

func (s *PostgresStore) Close() error {
	return s.db.Close()
}
