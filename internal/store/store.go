package store

import "context"

// Store reads and writes the whole document. Get and Set have no
// partial-field transactions: two concurrent read-modify-write cycles from
// separate writers can lose an update, so mutation paths must serialize
// above this interface.
type Store interface {
	Get(ctx context.Context) (Document, error)
	Set(ctx context.Context, doc Document) error
}
