package media

import "context"

// Store is the blob backend. Two implementations exist: Postgres-backed
// (DBStore, the default) and S3-compatible (S3Store).
type Store interface {
	Save(ctx context.Context, f *File) error
	Open(ctx context.Context, key string) (*File, error)
	Delete(ctx context.Context, key string) error
}
