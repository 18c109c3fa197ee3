// Package metadata is the client's durable key/value store. It backs the
// persisted credential and any other small piece of client state that must
// survive a restart.
package metadata

import (
	"context"
)

type Repository interface {
	// Get returns the value stored under key; ok is false when absent.
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key string, value string) error
	Delete(ctx context.Context, key string) error
	List(ctx context.Context) (map[string]string, error)
	Clear(ctx context.Context) error
}
