package history

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/mager/cochlea/cochlea"
)

// Store persists the full history. Save always rewrites everything.
type Store interface {
	Load(ctx context.Context) ([]cochlea.Pair, error)
	Save(ctx context.Context, pairs []cochlea.Pair) error
}

// FileStore keeps the history as a JSON array on disk.
type FileStore struct {
	path string
	log  *zap.SugaredLogger
}

func NewFileStore(path string, log *zap.SugaredLogger) *FileStore {
	return &FileStore{path: path, log: log}
}

// Load treats a missing or unreadable file as an empty history.
func (s *FileStore) Load(context.Context) ([]cochlea.Pair, error) {
	b, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		s.log.Warnw("Ignoring unreadable history file", "path", s.path, "error", err)
		return nil, nil
	}

	var pairs []cochlea.Pair
	if err := json.Unmarshal(b, &pairs); err != nil {
		s.log.Warnw("Ignoring corrupt history file", "path", s.path, "error", err)
		return nil, nil
	}
	return pairs, nil
}

// Save writes to a temp file in the same directory and renames it over the
// old one.
func (s *FileStore) Save(_ context.Context, pairs []cochlea.Pair) error {
	if pairs == nil {
		pairs = []cochlea.Pair{}
	}
	b, err := json.MarshalIndent(pairs, "", "  ")
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".history-*")
	if err != nil {
		return fmt.Errorf("history: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(b); err != nil {
		tmp.Close()
		return fmt.Errorf("history: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("history: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("history: %w", err)
	}
	return nil
}

// NopStore keeps history in memory only.
type NopStore struct{}

func (NopStore) Load(context.Context) ([]cochlea.Pair, error) { return nil, nil }

func (NopStore) Save(context.Context, []cochlea.Pair) error { return nil }
