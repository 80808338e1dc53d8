package history

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/mager/cochlea/cochlea"
)

const (
	firestoreCollection = "history"
	firestoreDoc        = "recent"
)

type historyDoc struct {
	Pairs []cochlea.Pair `firestore:"pairs"`
}

// FirestoreStore keeps the whole history in a single document.
type FirestoreStore struct {
	client *firestore.Client
}

func NewFirestoreStore(client *firestore.Client) *FirestoreStore {
	return &FirestoreStore{client: client}
}

func (s *FirestoreStore) doc() *firestore.DocumentRef {
	return s.client.Collection(firestoreCollection).Doc(firestoreDoc)
}

func (s *FirestoreStore) Load(ctx context.Context) ([]cochlea.Pair, error) {
	snap, err := s.doc().Get(ctx)
	if status.Code(err) == codes.NotFound {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("history: %w", err)
	}

	var d historyDoc
	if err := snap.DataTo(&d); err != nil {
		return nil, fmt.Errorf("history: %w", err)
	}
	return d.Pairs, nil
}

func (s *FirestoreStore) Save(ctx context.Context, pairs []cochlea.Pair) error {
	if _, err := s.doc().Set(ctx, historyDoc{Pairs: pairs}); err != nil {
		return fmt.Errorf("history: %w", err)
	}
	return nil
}

func (s *FirestoreStore) Close() error {
	return s.client.Close()
}
