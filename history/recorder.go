package history

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/mager/cochlea/cochlea"
	"github.com/mager/cochlea/metrics"
)

// Recorder pairs a Log with the Store that persists it.
type Recorder struct {
	mu    sync.Mutex
	log   *Log
	store Store
	l     *zap.SugaredLogger
}

func NewRecorder(store Store, size int, l *zap.SugaredLogger) *Recorder {
	return &Recorder{log: NewLog(size), store: store, l: l}
}

// Open seeds the log from the store. A store that cannot be read leaves the
// history empty.
func (r *Recorder) Open(ctx context.Context) {
	pairs, err := r.store.Load(ctx)
	if err != nil {
		r.l.Warnw("Starting with empty history", "error", err)
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.log.Add(pairs...)
	metrics.HistorySize.Set(float64(r.log.Len()))
	r.l.Infow("Loaded history", "entries", r.log.Len())
}

// Record appends a batch and rewrites the store. The in-memory log keeps the
// batch even when saving fails.
func (r *Recorder) Record(ctx context.Context, pairs []cochlea.Pair) error {
	if len(pairs) == 0 {
		return nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.log.Add(pairs...)
	metrics.HistorySize.Set(float64(r.log.Len()))
	return r.store.Save(ctx, r.log.Entries())
}

// Recent returns the remembered pairs oldest first.
func (r *Recorder) Recent() []cochlea.Pair {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.log.Entries()
}
