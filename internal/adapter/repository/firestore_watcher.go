package repository

import (
	"context"

	"cloud.google.com/go/firestore"

	"ekanwe/internal/domain/repository"
	"ekanwe/pkg/logger"
)

type firestoreWatcher struct {
	client *firestore.Client
}

func NewFirestoreWatcher(client *firestore.Client) repository.SnapshotWatcher {
	return &firestoreWatcher{
		client: client,
	}
}

// WatchDocument streams the full document on every remote change until ctx is
// cancelled. Cancelling stops further callbacks; it does not abort writes
// already in flight elsewhere.
func (w *firestoreWatcher) WatchDocument(ctx context.Context, collection, id string, send func(data map[string]interface{})) {
	iter := w.client.Collection(collection).Doc(id).Snapshots(ctx)
	defer iter.Stop()

	for {
		snap, err := iter.Next()
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			logger.Warn("Document watch ended: collection=%s, id=%s, error=%v", collection, id, err)
			return
		}
		if !snap.Exists() {
			continue
		}
		send(snap.Data())
	}
}

// WatchCollection streams the whole collection as a replacement snapshot on
// every change. Consumers recompute derived views from the snapshot rather
// than patching previous state.
func (w *firestoreWatcher) WatchCollection(ctx context.Context, collection string, send func(docs []map[string]interface{})) {
	iter := w.client.Collection(collection).Snapshots(ctx)
	defer iter.Stop()

	for {
		snap, err := iter.Next()
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			logger.Warn("Collection watch ended: collection=%s, error=%v", collection, err)
			return
		}

		docs, err := snap.Documents.GetAll()
		if err != nil {
			logger.Warn("Collection watch read failed: collection=%s, error=%v", collection, err)
			continue
		}

		payload := make([]map[string]interface{}, 0, len(docs))
		for _, doc := range docs {
			data := doc.Data()
			data["id"] = doc.Ref.ID
			payload = append(payload, data)
		}
		send(payload)
	}
}
