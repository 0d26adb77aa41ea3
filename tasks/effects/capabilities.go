// Package effects holds the concrete effects used by applications: an HTTP
// JSON fetch and key/value storage reads and writes. Each reads its
// capability from the services bundle under a well-known name.
package effects

import "context"

// Capability names looked up in the services bundle.
const (
	FetchCapability   = "fetch"
	StorageCapability = "storage"
)

// Fetcher retrieves the body stored at url.
type Fetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// Storage is a persistent string key/value store.
type Storage interface {
	// GetItem reports found=false, without error, when key is absent.
	GetItem(ctx context.Context, key string) (value string, found bool, err error)
	SetItem(ctx context.Context, key, value string) error
}

// Item is the outcome of a storage effect.
type Item struct {
	Key   string `json:"key"`
	Value string `json:"value"`
	Found bool   `json:"found"`
}
