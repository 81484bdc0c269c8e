package ports

import "context"

// StoredResponse is the exact HTTP response recorded for an idempotency key,
// replayed byte for byte when the key is reused.
type StoredResponse struct {
	StatusCode int
	Body       []byte
	OrderID    string
}

// IdempotencyStore makes order creation safe to retry: the first response
// for a key is stored, later requests with the same key read it back.
// Get returns (nil, nil) when the key has not been seen.
type IdempotencyStore interface {
	Get(ctx context.Context, key string) (*StoredResponse, error)
	Save(ctx context.Context, key string, response StoredResponse) error
}
