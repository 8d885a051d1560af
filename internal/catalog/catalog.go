// Package catalog serves the read-only hotel catalog: lookups by id and the
// dashboard search with type, price and amenity filters.
package catalog

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/avstrong/lodgix/internal/booking"
)

type Sort string

const (
	SortRecommended Sort = "recommended"
	SortPriceLow    Sort = "price-low"
	SortPriceHigh   Sort = "price-high"
	SortRating      Sort = "rating"

	TypeAll = "all"
)

type storage interface {
	GetHotel(ctx context.Context, id string) (*booking.Hotel, error)
	GetHotels(ctx context.Context) ([]*booking.Hotel, error)
}

type Filter struct {
	Query string
	Type  string
	// MinPrice and MaxPrice bound the headline price in thousands, inclusive.
	// A zero MaxPrice leaves the range open.
	MinPrice  float64
	MaxPrice  float64
	Amenities []string
	Sort      Sort
}

type Manager struct {
	storage storage
}

func New(storage storage) *Manager {
	return &Manager{storage: storage}
}

func (m *Manager) Hotel(ctx context.Context, id string) (*booking.Hotel, error) {
	h, err := m.storage.GetHotel(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get hotel %s from storage: %w", id, err)
	}

	return h, nil
}

func (m *Manager) Search(ctx context.Context, filter Filter) ([]*booking.Hotel, error) {
	hotels, err := m.storage.GetHotels(ctx)
	if err != nil {
		return nil, fmt.Errorf("get hotels from storage: %w", err)
	}

	return Apply(hotels, filter), nil
}

// Apply filters hotels and orders them. Recommended keeps catalog order.
func Apply(hotels []*booking.Hotel, filter Filter) []*booking.Hotel {
	out := make([]*booking.Hotel, 0, len(hotels))

	for _, h := range hotels {
		if filter.match(h) {
			out = append(out, h)
		}
	}

	switch filter.Sort {
	case SortPriceLow:
		slices.SortStableFunc(out, func(a, b *booking.Hotel) int { return cmp.Compare(a.Price, b.Price) })
	case SortPriceHigh:
		slices.SortStableFunc(out, func(a, b *booking.Hotel) int { return cmp.Compare(b.Price, a.Price) })
	case SortRating:
		slices.SortStableFunc(out, func(a, b *booking.Hotel) int { return cmp.Compare(b.Rating, a.Rating) })
	case SortRecommended, "":
	}

	return out
}

func (f Filter) match(h *booking.Hotel) bool {
	if q := strings.TrimSpace(f.Query); q != "" && !strings.Contains(strings.ToLower(h.Name), strings.ToLower(q)) {
		return false
	}

	if f.Type != "" && f.Type != TypeAll && h.Type != f.Type {
		return false
	}

	thousands := float64(h.Price) / 1000 //nolint:gomnd
	if thousands < f.MinPrice || (f.MaxPrice > 0 && thousands > f.MaxPrice) {
		return false
	}

	for _, want := range f.Amenities {
		if !hasAmenity(h.Amenities, want) {
			return false
		}
	}

	return true
}

func hasAmenity(amenities []string, want string) bool {
	want = strings.ToLower(want)

	return slices.ContainsFunc(amenities, func(a string) bool {
		return strings.Contains(strings.ToLower(a), want)
	})
}

func ParseSort(s string) (Sort, error) {
	switch sort := Sort(s); sort {
	case "", SortRecommended, SortPriceLow, SortPriceHigh, SortRating:
		return sort, nil
	default:
		return "", fmt.Errorf("sort %q: %w", s, ErrUnknownSort)
	}
}
