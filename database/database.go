package database

import (
	"context"
	"database/sql"

	_ "github.com/lib/pq"
	"go.uber.org/zap"
)

// Open opens and pings a postgres connection.
func Open(ctx context.Context, url string, logger *zap.SugaredLogger) (*sql.DB, error) {
	db, err := sql.Open("postgres", url)
	if err != nil {
		logger.Errorw("Failed to open database connection", "error", err)
		return nil, err
	}

	err = db.PingContext(ctx)
	if err != nil {
		logger.Errorw("Failed to ping database", "error", err)
		db.Close()
		return nil, err
	}

	return db, nil
}
