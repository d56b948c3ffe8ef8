package session

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/servly-app/servly/internal/cart"
	"github.com/servly-app/servly/internal/storage"
)

type memStore map[string]string

func (m memStore) Get(_ context.Context, key string) (string, error) {
	v, ok := m[key]
	if !ok {
		return "", storage.ErrNotFound
	}
	return v, nil
}

func (m memStore) Set(_ context.Context, key, value string) error {
	m[key] = value
	return nil
}

func (m memStore) Delete(_ context.Context, key string) error {
	delete(m, key)
	return nil
}

// brokenStore fails every operation, standing in for disabled storage.
type brokenStore struct{}

func (brokenStore) Get(context.Context, string) (string, error) {
	return "", errors.New("storage disabled")
}

func (brokenStore) Set(context.Context, string, string) error {
	return errors.New("storage disabled")
}

func (brokenStore) Delete(context.Context, string) error {
	return errors.New("storage disabled")
}

func newBridge(store storage.Store) *Bridge {
	return NewBridge(store, zerolog.Nop())
}

func TestAttachCart_SavesAfterEveryMutation(t *testing.T) {
	ctx := context.Background()
	store := memStore{}
	c := cart.NewStore()

	newBridge(store).AttachCart(ctx, c)

	c.Add(cart.LineItem{ProviderID: "p1", ServiceName: "A", Cost: 100})
	assert.JSONEq(t,
		`[{"serviceId":"","providerId":"p1","serviceName":"A","cost":100}]`,
		store[storage.KeyCart])

	c.Clear()
	assert.Equal(t, "[]", store[storage.KeyCart])
}

func TestAttachCart_RoundTrip(t *testing.T) {
	ctx := context.Background()
	store := memStore{}

	first := cart.NewStore()
	newBridge(store).AttachCart(ctx, first)
	first.Add(cart.LineItem{ServiceID: "svc-1", ProviderID: "p1", ServiceName: "A", Cost: 100})
	first.Add(cart.LineItem{ServiceID: "svc-2", ProviderID: "p2", ServiceName: "B", Cost: 200})

	// A fresh store hydrated from the same mirror sees the same items.
	second := cart.NewStore()
	newBridge(store).AttachCart(ctx, second)

	assert.Equal(t, first.Items(), second.Items())
}

func TestAttachCart_AbsentKeyHydratesEmpty(t *testing.T) {
	c := cart.NewStore()
	newBridge(memStore{}).AttachCart(context.Background(), c)

	assert.Empty(t, c.Items())
}

func TestAttachCart_CorruptSnapshotHydratesEmpty(t *testing.T) {
	store := memStore{storage.KeyCart: `{not json`}
	c := cart.NewStore()

	newBridge(store).AttachCart(context.Background(), c)

	assert.Empty(t, c.Items())
}

func TestAttachCart_WriteFailureIsAbsorbed(t *testing.T) {
	c := cart.NewStore()
	newBridge(brokenStore{}).AttachCart(context.Background(), c)

	// The mirror is broken but the in-memory cart keeps working.
	c.Add(cart.LineItem{ProviderID: "p1", ServiceName: "A", Cost: 100})
	assert.Equal(t, 1, c.Len())
}

func TestToken_RoundTrip(t *testing.T) {
	ctx := context.Background()
	b := newBridge(memStore{})

	assert.Empty(t, b.Token(ctx))

	require.NoError(t, b.SetToken(ctx, "srv_abc"))
	assert.Equal(t, "srv_abc", b.Token(ctx))

	require.NoError(t, b.ClearToken(ctx))
	assert.Empty(t, b.Token(ctx))
}

func TestUserProfile_RoundTrip(t *testing.T) {
	ctx := context.Background()
	b := newBridge(memStore{})

	assert.Nil(t, b.UserProfile(ctx))

	b.SaveUserProfile(ctx, &UserProfile{UserID: "u1", Name: "Asha", Email: "asha@example.com"})

	got := b.UserProfile(ctx)
	require.NotNil(t, got)
	assert.Equal(t, "Asha", got.Name)

	b.ClearUserProfile(ctx)
	assert.Nil(t, b.UserProfile(ctx))
}

func TestUserProfile_CorruptSnapshotReadsAsAbsent(t *testing.T) {
	store := memStore{storage.KeyUserDetails: `not json`}
	b := newBridge(store)

	assert.Nil(t, b.UserProfile(context.Background()))
}

func TestProviderProfile_UnwrapsLegacyShape(t *testing.T) {
	// Older releases stored the provider object nested under "profile".
	store := memStore{
		storage.KeyProviderDetails: `{"profile": {"providerId": "p1", "businessName": "Asha Plumbing"}}`,
	}
	b := newBridge(store)

	got := b.ProviderProfile(context.Background())
	require.NotNil(t, got)
	assert.Equal(t, "p1", got.ProviderID)
	assert.Equal(t, "Asha Plumbing", got.BusinessName)
}

func TestProviderProfile_FlatShape(t *testing.T) {
	store := memStore{
		storage.KeyProviderDetails: `{"providerId": "p2", "businessName": "Delhi Electric"}`,
	}
	b := newBridge(store)

	got := b.ProviderProfile(context.Background())
	require.NotNil(t, got)
	assert.Equal(t, "p2", got.ProviderID)
}
