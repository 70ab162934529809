package client

import (
	"context"
	"sync"

	"campusbook/internal/domain"
	"campusbook/internal/modules/booking"
)

// CachedBooking is a list entry plus a flag marking optimistic inserts that
// the server has not yet echoed back in a full list fetch.
type CachedBooking struct {
	booking.BookingListItem
	PendingConfirmation bool
}

// BookingCache is the parent view's locally held booking list. New bookings
// are prepended optimistically with PendingConfirmation set; only a full
// Refresh clears the tags.
type BookingCache struct {
	mu      sync.Mutex
	api     *Client
	kind    domain.ResourceKind
	entries []CachedBooking
}

func NewBookingCache(api *Client, kind domain.ResourceKind) *BookingCache {
	return &BookingCache{api: api, kind: kind}
}

// Prepend inserts an accepted booking at the head of the list, tagged as
// awaiting server confirmation.
func (c *BookingCache) Prepend(resource domain.Resource, rec booking.BookingResponse) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry := CachedBooking{
		BookingListItem: booking.BookingListItem{
			ID:               rec.ID,
			Reference:        rec.Reference,
			ResourceID:       resource.ID,
			ResourceName:     resource.Name,
			ResourceLocation: resource.Location,
			Status:           rec.Status,
			CreatedAt:        rec.CreatedAt,
		},
		PendingConfirmation: true,
	}
	c.entries = append([]CachedBooking{entry}, c.entries...)
}

// Refresh replaces the cache with the server's list. Fetch failures are
// non-fatal: the list degrades to empty (a 401 simply means no bookings for
// this session), and the error is reported for an optional banner.
func (c *BookingCache) Refresh(ctx context.Context) error {
	items, err := c.api.ListBookings(ctx, c.kind)

	c.mu.Lock()
	defer c.mu.Unlock()

	if err != nil {
		c.entries = nil
		return err
	}

	entries := make([]CachedBooking, 0, len(items))
	for _, it := range items {
		entries = append(entries, CachedBooking{BookingListItem: it})
	}
	c.entries = entries
	return nil
}

// Entries returns a copy of the current list.
func (c *BookingCache) Entries() []CachedBooking {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]CachedBooking, len(c.entries))
	copy(out, c.entries)
	return out
}
