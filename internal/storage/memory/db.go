package memory

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/avstrong/lodgix/internal/booking"
	"github.com/avstrong/lodgix/internal/logger"
)

type Config struct {
	L *logger.Logger
}

type DB struct {
	mu         sync.RWMutex
	l          *logger.Logger
	hotels     map[string]*booking.Hotel
	hotelOrder []string
	bookings   map[string][]*booking.FinalizedBooking
	favorites  map[string][]string
}

func New(conf Config) *DB {
	//nolint:exhaustruct
	return &DB{
		l:        conf.L,
		hotels:   make(map[string]*booking.Hotel),
		bookings:  make(map[string][]*booking.FinalizedBooking),
		favorites: make(map[string][]string),
	}
}

func copyBooking(b *booking.FinalizedBooking) *booking.FinalizedBooking {
	c := *b
	c.LineItems = slices.Clone(b.LineItems)

	return &c
}

func (db *DB) SaveHotels(_ context.Context, hotels []*booking.Hotel) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	for _, h := range hotels {
		if _, ok := db.hotels[h.ID]; !ok {
			db.hotelOrder = append(db.hotelOrder, h.ID)
		}

		db.hotels[h.ID] = h
	}

	return nil
}

func (db *DB) GetHotel(_ context.Context, id string) (*booking.Hotel, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	h, ok := db.hotels[id]
	if !ok {
		return nil, fmt.Errorf("hotel %s: %w", id, booking.ErrRecordNotFound)
	}

	return h, nil
}

func (db *DB) GetHotels(_ context.Context) ([]*booking.Hotel, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	out := make([]*booking.Hotel, 0, len(db.hotelOrder))
	for _, id := range db.hotelOrder {
		out = append(out, db.hotels[id])
	}

	return out, nil
}

func (db *DB) AppendBooking(_ context.Context, guestID string, b *booking.FinalizedBooking) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	for _, existing := range db.bookings[guestID] {
		if existing.ReceiptID == b.ReceiptID {
			return fmt.Errorf("booking %s: %w", b.ReceiptID, booking.ErrDuplicateReceipt)
		}
	}

	db.bookings[guestID] = append(db.bookings[guestID], copyBooking(b))
	db.l.LogDebugf("Booking %s appended for guest %s", b.ReceiptID, guestID)

	return nil
}

func (db *DB) GetBookings(_ context.Context, guestID string) ([]*booking.FinalizedBooking, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	stored := db.bookings[guestID]
	out := make([]*booking.FinalizedBooking, 0, len(stored))

	for _, b := range stored {
		out = append(out, copyBooking(b))
	}

	return out, nil
}

func (db *DB) GetBooking(_ context.Context, guestID, receiptID string) (*booking.FinalizedBooking, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	for _, b := range db.bookings[guestID] {
		if b.ReceiptID == receiptID {
			return copyBooking(b), nil
		}
	}

	return nil, fmt.Errorf("booking %s: %w", receiptID, booking.ErrRecordNotFound)
}

func (db *DB) AddFavorite(_ context.Context, guestID, hotelID string) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	if !slices.Contains(db.favorites[guestID], hotelID) {
		db.favorites[guestID] = append(db.favorites[guestID], hotelID)
	}

	return nil
}

func (db *DB) RemoveFavorite(_ context.Context, guestID, hotelID string) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	db.favorites[guestID] = slices.DeleteFunc(db.favorites[guestID], func(id string) bool { return id == hotelID })

	return nil
}

func (db *DB) GetFavorites(_ context.Context, guestID string) ([]string, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	return append([]string{}, db.favorites[guestID]...), nil
}
