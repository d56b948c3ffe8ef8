// Package storage provides the durable key-value store that backs servly's
// session state: the cart mirror, profile mirrors, and the auth token.
package storage

import (
	"context"
	"errors"
)

// Well-known keys mirrored by the session bridge.
const (
	KeyCart            = "cart"
	KeyUserDetails     = "userDetails"
	KeyProviderDetails = "providerDetails"
	KeyToken           = "token"
)

// ErrNotFound is returned by Get when the key has never been written.
var ErrNotFound = errors.New("storage: key not found")

// Store is a string-keyed durable store. Implementations are last-writer-wins
// with no cross-process locking; concurrent writers can clobber each other.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}
