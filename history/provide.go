package history

import (
	"context"
	"fmt"
	"io"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/mager/cochlea/config"
	"github.com/mager/cochlea/database"
	"github.com/mager/cochlea/firestore"
)

// NewStore builds the store named by cfg.HistoryBackend.
func NewStore(ctx context.Context, cfg config.Config, log *zap.SugaredLogger) (Store, error) {
	switch cfg.HistoryBackend {
	case "", "file":
		return NewFileStore(cfg.HistoryPath, log), nil
	case "none":
		return NopStore{}, nil
	case "postgres":
		db, err := database.Open(ctx, cfg.DatabaseURL, log)
		if err != nil {
			return nil, err
		}
		return NewPostgresStore(ctx, db)
	case "firestore":
		client, err := firestore.NewClient(ctx, cfg.FirestoreProject, log)
		if err != nil {
			return nil, err
		}
		return NewFirestoreStore(client), nil
	default:
		return nil, fmt.Errorf("history: unknown backend %q", cfg.HistoryBackend)
	}
}

// ProvideRecorder opens the history on start and closes its store on stop.
func ProvideRecorder(lc fx.Lifecycle, cfg config.Config, log *zap.SugaredLogger) (*Recorder, error) {
	store, err := NewStore(context.Background(), cfg, log)
	if err != nil {
		return nil, err
	}
	r := NewRecorder(store, cfg.HistorySize, log)

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			r.Open(ctx)
			return nil
		},
		OnStop: func(context.Context) error {
			if c, ok := store.(io.Closer); ok {
				return c.Close()
			}
			return nil
		},
	})
	return r, nil
}

var Options = ProvideRecorder
