package repository

import "context"

// SnapshotWatcher streams full replacement snapshots of store documents to a
// callback. Each remote change delivers the whole document (or collection)
// again; consumers recompute derived state from the snapshot instead of
// patching. Both methods block until ctx is cancelled.
type SnapshotWatcher interface {
	WatchDocument(ctx context.Context, collection, id string, send func(data map[string]interface{}))
	WatchCollection(ctx context.Context, collection string, send func(docs []map[string]interface{}))
}
