// Package favorite keeps the hotels a guest marked on the dashboard.
package favorite

import (
	"context"
	"errors"
	"fmt"

	"github.com/avstrong/lodgix/internal/booking"
	"github.com/avstrong/lodgix/internal/logger"
)

type storage interface {
	AddFavorite(ctx context.Context, guestID, hotelID string) error
	RemoveFavorite(ctx context.Context, guestID, hotelID string) error
	GetFavorites(ctx context.Context, guestID string) ([]string, error)
}

type hotelCatalog interface {
	Hotel(ctx context.Context, id string) (*booking.Hotel, error)
}

type Manager struct {
	l       *logger.Logger
	storage storage
	catalog hotelCatalog
}

func New(l *logger.Logger, storage storage, catalog hotelCatalog) *Manager {
	return &Manager{
		l:       l,
		storage: storage,
		catalog: catalog,
	}
}

func guestFrom(ctx context.Context) (string, error) {
	guestID, ok := booking.GuestIDFromContext(ctx)
	if !ok {
		return "", booking.ErrGuestRequired
	}

	return guestID, nil
}

// Add marks a catalog hotel as favorite. Adding twice is a no-op.
func (m *Manager) Add(ctx context.Context, hotelID string) error {
	guestID, err := guestFrom(ctx)
	if err != nil {
		return err
	}

	if _, err := m.catalog.Hotel(ctx, hotelID); err != nil {
		return fmt.Errorf("get hotel %s: %w", hotelID, err)
	}

	if err := m.storage.AddFavorite(ctx, guestID, hotelID); err != nil {
		return fmt.Errorf("add favorite to storage: %w", err)
	}

	return nil
}

func (m *Manager) Remove(ctx context.Context, hotelID string) error {
	guestID, err := guestFrom(ctx)
	if err != nil {
		return err
	}

	if err := m.storage.RemoveFavorite(ctx, guestID, hotelID); err != nil {
		return fmt.Errorf("remove favorite from storage: %w", err)
	}

	return nil
}

// Hotels returns the guest's favorite hotels in the order they were added.
// Favorites of hotels gone from the catalog are skipped.
func (m *Manager) Hotels(ctx context.Context) ([]*booking.Hotel, error) {
	guestID, err := guestFrom(ctx)
	if err != nil {
		return nil, err
	}

	ids, err := m.storage.GetFavorites(ctx, guestID)
	if err != nil {
		return nil, fmt.Errorf("get favorites of guest %s: %w", guestID, err)
	}

	hotels := make([]*booking.Hotel, 0, len(ids))

	for _, id := range ids {
		h, err := m.catalog.Hotel(ctx, id)
		if errors.Is(err, booking.ErrRecordNotFound) {
			m.l.LogWarnf("Favorite hotel %s of guest %s is no longer listed", id, guestID)

			continue
		}

		if err != nil {
			return nil, fmt.Errorf("get hotel %s: %w", id, err)
		}

		hotels = append(hotels, h)
	}

	return hotels, nil
}

func (m *Manager) Count(ctx context.Context) (int, error) {
	guestID, err := guestFrom(ctx)
	if err != nil {
		return 0, err
	}

	ids, err := m.storage.GetFavorites(ctx, guestID)
	if err != nil {
		return 0, fmt.Errorf("get favorites of guest %s: %w", guestID, err)
	}

	return len(ids), nil
}
