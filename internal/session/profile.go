package session

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/servly-app/servly/internal/storage"
)

// UserProfile mirrors the authenticated consumer's details.
type UserProfile struct {
	UserID   string `json:"userId,omitempty"`
	Name     string `json:"name,omitempty"`
	Email    string `json:"email,omitempty"`
	Phone    string `json:"phone,omitempty"`
	Location string `json:"location,omitempty"`
}

// ProviderProfile mirrors the provider's details.
type ProviderProfile struct {
	ProviderID   string  `json:"providerId,omitempty"`
	BusinessName string  `json:"businessName,omitempty"`
	Email        string  `json:"email,omitempty"`
	Phone        string  `json:"phone,omitempty"`
	Location     string  `json:"location,omitempty"`
	AvgRating    float64 `json:"avgRating,omitempty"`
}

// UserProfile returns the mirrored profile, or nil when none is stored.
func (b *Bridge) UserProfile(ctx context.Context) *UserProfile {
	var p UserProfile
	if !b.load(ctx, storage.KeyUserDetails, &p) {
		return nil
	}
	return &p
}

func (b *Bridge) SaveUserProfile(ctx context.Context, p *UserProfile) {
	b.save(ctx, storage.KeyUserDetails, p)
}

func (b *Bridge) ClearUserProfile(ctx context.Context) {
	if err := b.store.Delete(ctx, storage.KeyUserDetails); err != nil {
		b.log.Debug().Err(err).Msg("user profile delete failed")
	}
}

// ProviderProfile returns the mirrored provider profile, or nil when none
// is stored. Snapshots written by older releases nested the object under a
// "profile" field; those are unwrapped here once on load.
func (b *Bridge) ProviderProfile(ctx context.Context) *ProviderProfile {
	raw, err := b.store.Get(ctx, storage.KeyProviderDetails)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			b.log.Debug().Err(err).Msg("provider profile load failed")
		}
		return nil
	}

	payload := []byte(raw)
	var legacy struct {
		Profile json.RawMessage `json:"profile"`
	}
	if err := json.Unmarshal(payload, &legacy); err == nil && len(legacy.Profile) > 0 {
		payload = legacy.Profile
	}

	var p ProviderProfile
	if err := json.Unmarshal(payload, &p); err != nil {
		b.log.Debug().Err(err).Msg("discarding unreadable provider profile")
		return nil
	}
	return &p
}

func (b *Bridge) SaveProviderProfile(ctx context.Context, p *ProviderProfile) {
	b.save(ctx, storage.KeyProviderDetails, p)
}

func (b *Bridge) ClearProviderProfile(ctx context.Context) {
	if err := b.store.Delete(ctx, storage.KeyProviderDetails); err != nil {
		b.log.Debug().Err(err).Msg("provider profile delete failed")
	}
}
