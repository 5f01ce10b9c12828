package repository

import (
	"context"
)

// StateRepository manages small named values such as the logged-in user
type StateRepository interface {
	// Get returns the value for key and whether it was present
	Get(ctx context.Context, key string) (string, bool, error)
	Put(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
	// Clear removes every key
	Clear(ctx context.Context) error
}
