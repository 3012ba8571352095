package progress

import "context"

// Store is the persistence slot for a single serialized UserProgress record.
//
// Load returns (nil, nil) when no record has been saved yet; that is the
// expected first-run state, not an error. Save overwrites the previous blob.
type Store interface {
	Load(ctx context.Context) ([]byte, error)
	Save(ctx context.Context, data []byte) error
}
