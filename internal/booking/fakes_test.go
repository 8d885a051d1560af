package booking

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

var errNotifyDown = errors.New("notification service unavailable")

func testHotel() *Hotel {
	return &Hotel{
		ID:   "1",
		Name: "Grand Hyatt Mumbai",
		RoomTypes: []RoomType{
			{ID: "ordinary", Name: "Ordinary Room", Price: 8500},
			{ID: "deluxe", Name: "Deluxe Room", Price: 1000},
		},
	}
}

type fakeCatalog struct {
	hotels map[string]*Hotel
}

func newFakeCatalog(hotels ...*Hotel) *fakeCatalog {
	c := &fakeCatalog{hotels: make(map[string]*Hotel)}
	for _, h := range hotels {
		c.hotels[h.ID] = h
	}

	return c
}

func (c *fakeCatalog) Hotel(_ context.Context, id string) (*Hotel, error) {
	h, ok := c.hotels[id]
	if !ok {
		return nil, ErrRecordNotFound
	}

	return h, nil
}

type fakeStorage struct {
	mu        sync.Mutex
	bookings  map[string][]*FinalizedBooking
	appendErr error
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{bookings: make(map[string][]*FinalizedBooking)}
}

func (s *fakeStorage) AppendBooking(_ context.Context, guestID string, b *FinalizedBooking) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.appendErr != nil {
		return s.appendErr
	}

	for _, existing := range s.bookings[guestID] {
		if existing.ReceiptID == b.ReceiptID {
			return ErrDuplicateReceipt
		}
	}

	s.bookings[guestID] = append(s.bookings[guestID], b)

	return nil
}

func (s *fakeStorage) GetBookings(_ context.Context, guestID string) ([]*FinalizedBooking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return append([]*FinalizedBooking(nil), s.bookings[guestID]...), nil
}

func (s *fakeStorage) GetBooking(_ context.Context, guestID, receiptID string) (*FinalizedBooking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, b := range s.bookings[guestID] {
		if b.ReceiptID == receiptID {
			return b, nil
		}
	}

	return nil, ErrRecordNotFound
}

func (s *fakeStorage) count(guestID string) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.bookings[guestID])
}

// fakeIDGen hands out fixed ids first, then HTL1, HTL2, ...
type fakeIDGen struct {
	fixed []string
	n     int
}

func (g *fakeIDGen) GetID(context.Context) (string, error) {
	if len(g.fixed) > 0 {
		id := g.fixed[0]
		g.fixed = g.fixed[1:]

		return id, nil
	}

	g.n++

	return fmt.Sprintf("HTL%d", g.n), nil
}

type fakeNotifier struct {
	mu   sync.Mutex
	sent []Notification
	err  error
}

func (n *fakeNotifier) Notify(_ context.Context, notification Notification) error {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.sent = append(n.sent, notification)

	return n.err
}
