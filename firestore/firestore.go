package firestore

import (
	"context"

	"cloud.google.com/go/firestore"
	"go.uber.org/zap"
)

// NewClient creates a firestore client for projectID.
func NewClient(ctx context.Context, projectID string, logger *zap.SugaredLogger) (*firestore.Client, error) {
	client, err := firestore.NewClient(ctx, projectID)
	if err != nil {
		logger.Errorw("Failed to create firestore client", "project", projectID, "error", err)
		return nil, err
	}
	return client, nil
}
