// Package cart holds the in-memory booking cart. All mutation goes through
// the four Store operations; the items slice is never exposed directly.
package cart

// LineItem is one bookable service from one provider. Cost is a snapshot
// taken when the item was added and is not re-fetched.
type LineItem struct {
	ServiceID   string  `json:"serviceId"`
	ProviderID  string  `json:"providerId"`
	ServiceName string  `json:"serviceName"`
	Cost        float64 `json:"cost"`
	Description string  `json:"description,omitempty"`
	ImageURL    string  `json:"imageUrl,omitempty"`
	Location    string  `json:"location,omitempty"`
}

// Key is the de-duplication key. Two line items are "the same" when they
// share a provider and a service name; ServiceID is deliberately not part
// of the key.
type Key struct {
	ProviderID  string
	ServiceName string
}

// Key returns the item's de-duplication key.
func (i LineItem) Key() Key {
	return Key{ProviderID: i.ProviderID, ServiceName: i.ServiceName}
}

// RemoveBy selects which line items a Remove call drops.
type RemoveBy interface {
	matches(LineItem) bool
}

// ByKey removes the item with the given de-duplication key.
type ByKey Key

func (k ByKey) matches(i LineItem) bool {
	return i.ProviderID == k.ProviderID && i.ServiceName == k.ServiceName
}

// ByPredicate removes every item the function reports true for.
type ByPredicate func(LineItem) bool

func (p ByPredicate) matches(i LineItem) bool {
	return p(i)
}
