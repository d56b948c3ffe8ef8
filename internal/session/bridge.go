// Package session keeps durable storage eventually consistent with the
// in-memory state: the cart is mirrored after every mutation, the user and
// provider profiles on every save, and everything is rehydrated once at
// startup. Write failures are absorbed on purpose; a session without a
// working store degrades to memory-only, it never breaks.
package session

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/rs/zerolog"

	"github.com/servly-app/servly/internal/cart"
	"github.com/servly-app/servly/internal/storage"
)

// Bridge binds the in-memory stores to durable storage.
type Bridge struct {
	store storage.Store
	log   zerolog.Logger
}

func NewBridge(store storage.Store, log zerolog.Logger) *Bridge {
	return &Bridge{store: store, log: log}
}

// AttachCart hydrates the cart from its stored snapshot and subscribes a
// save-on-change mirror. Call exactly once at startup; an absent key or an
// unreadable snapshot hydrates an empty cart.
func (b *Bridge) AttachCart(ctx context.Context, c *cart.Store) {
	raw, err := b.store.Get(ctx, storage.KeyCart)
	switch {
	case err == nil:
		var items []cart.LineItem
		if jsonErr := json.Unmarshal([]byte(raw), &items); jsonErr == nil {
			c.ReplaceAll(items)
		} else {
			b.log.Debug().Err(jsonErr).Msg("discarding unreadable cart snapshot")
		}
	case !errors.Is(err, storage.ErrNotFound):
		b.log.Debug().Err(err).Msg("cart load failed, starting empty")
	}

	c.Subscribe(func(items []cart.LineItem) {
		if items == nil {
			items = []cart.LineItem{}
		}
		data, err := json.Marshal(items)
		if err != nil {
			return
		}
		// Best effort: a failed write leaves this session memory-only.
		if err := b.store.Set(ctx, storage.KeyCart, string(data)); err != nil {
			b.log.Debug().Err(err).Msg("cart save failed, continuing in memory")
		}
	})
}

// Token returns the stored bearer token, or "" when not logged in.
func (b *Bridge) Token(ctx context.Context) string {
	token, err := b.store.Get(ctx, storage.KeyToken)
	if err != nil {
		return ""
	}
	return token
}

func (b *Bridge) SetToken(ctx context.Context, token string) error {
	return b.store.Set(ctx, storage.KeyToken, token)
}

func (b *Bridge) ClearToken(ctx context.Context) error {
	return b.store.Delete(ctx, storage.KeyToken)
}

// load unmarshals a stored JSON object. Absent keys and parse failures both
// read as "nothing stored".
func (b *Bridge) load(ctx context.Context, key string, out any) bool {
	raw, err := b.store.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			b.log.Debug().Err(err).Str("key", key).Msg("load failed")
		}
		return false
	}
	if err := json.Unmarshal([]byte(raw), out); err != nil {
		b.log.Debug().Err(err).Str("key", key).Msg("discarding unreadable snapshot")
		return false
	}
	return true
}

// save mirrors a JSON object best-effort, matching the cart save path.
func (b *Bridge) save(ctx context.Context, key string, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		return
	}
	if err := b.store.Set(ctx, key, string(data)); err != nil {
		b.log.Debug().Err(err).Str("key", key).Msg("save failed, continuing in memory")
	}
}
