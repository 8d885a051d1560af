package booking

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/avstrong/lodgix/internal/logger"
	"github.com/avstrong/lodgix/internal/metrics"
)

const (
	// DefaultDraftTTL is how long an unfinished draft is kept.
	DefaultDraftTTL = 24 * time.Hour

	receiptAttempts = 3
)

type idGenerator interface {
	GetID(ctx context.Context) (string, error)
}

type storageReader interface {
	GetBookings(ctx context.Context, guestID string) ([]*FinalizedBooking, error)
	GetBooking(ctx context.Context, guestID, receiptID string) (*FinalizedBooking, error)
}

type storageWriter interface {
	AppendBooking(ctx context.Context, guestID string, booking *FinalizedBooking) error
}

type storage interface {
	storageReader
	storageWriter
}

type hotelCatalog interface {
	Hotel(ctx context.Context, id string) (*Hotel, error)
}

type notifier interface {
	Notify(ctx context.Context, n Notification) error
}

type Manager struct {
	l           *logger.Logger
	storage     storage
	catalog     hotelCatalog
	idGenerator idGenerator
	notifier    notifier
	draftTTL    time.Duration
	now         func() time.Time

	mu     sync.Mutex
	drafts map[string]*Draft
}

type Option func(m *Manager)

// WithNotifier enables the best-effort booking notification.
func WithNotifier(n notifier) Option {
	return func(m *Manager) {
		m.notifier = n
	}
}

// WithDraftTTL sets how long a draft lives after it was opened.
func WithDraftTTL(ttl time.Duration) Option {
	return func(m *Manager) {
		if ttl > 0 {
			m.draftTTL = ttl
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(m *Manager) {
		m.now = now
	}
}

func New(l *logger.Logger, storage storage, catalog hotelCatalog, idGenerator idGenerator, opts ...Option) *Manager {
	m := &Manager{
		l:           l,
		storage:     storage,
		catalog:     catalog,
		idGenerator: idGenerator,
		draftTTL:    DefaultDraftTTL,
		now:         time.Now,
		drafts:      make(map[string]*Draft),
	}

	for _, opt := range opts {
		opt(m)
	}

	return m
}

func guestFrom(ctx context.Context) (string, error) {
	guestID, ok := GuestIDFromContext(ctx)
	if !ok {
		return "", ErrGuestRequired
	}

	return guestID, nil
}

// draftLocked must be called with m.mu held. Expired drafts are dropped.
func (m *Manager) draftLocked(guestID, draftID string) (*Draft, error) {
	d, ok := m.drafts[draftID]
	if ok && m.expired(d, m.now()) {
		delete(m.drafts, draftID)

		ok = false
	}

	if !ok || d.GuestID != guestID {
		return nil, fmt.Errorf("draft %s: %w", draftID, ErrRecordNotFound)
	}

	return d, nil
}

func (m *Manager) expired(d *Draft, now time.Time) bool {
	return now.Sub(d.CreatedAt) > m.draftTTL
}

// ExpireDrafts drops drafts older than the draft TTL and reports how many
// were removed. Confirmed drafts go the same way; their bookings stay recorded.
func (m *Manager) ExpireDrafts() int {
	now := m.now()

	m.mu.Lock()
	defer m.mu.Unlock()

	var n int

	for id, d := range m.drafts {
		if m.expired(d, now) {
			delete(m.drafts, id)

			n++
		}
	}

	if n > 0 {
		metrics.DraftsExpired.Add(float64(n))
		m.l.LogDebugf("%d expired drafts dropped, %d left", n, len(m.drafts))
	}

	return n
}

// RunJanitor expires drafts every interval until ctx is done.
func (m *Manager) RunJanitor(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.ExpireDrafts()
		}
	}
}

func (m *Manager) view(ctx context.Context, d *Draft) (*DraftView, error) {
	hotel, err := m.catalog.Hotel(ctx, d.HotelID)
	if err != nil {
		return nil, fmt.Errorf("get hotel %s: %w", d.HotelID, err)
	}

	return &DraftView{
		Draft: d.clone(),
		Quote: quote(d, hotel),
	}, nil
}

// OpenDraft starts the booking flow for a hotel in details stage.
func (m *Manager) OpenDraft(ctx context.Context, hotelID string) (*DraftView, error) {
	guestID, err := guestFrom(ctx)
	if err != nil {
		return nil, err
	}

	hotel, err := m.catalog.Hotel(ctx, hotelID)
	if err != nil {
		return nil, fmt.Errorf("get hotel %s: %w", hotelID, err)
	}

	if len(hotel.RoomTypes) == 0 {
		return nil, fmt.Errorf("open draft for hotel %s: %w", hotelID, ErrNoRoomTypes)
	}

	d := &Draft{
		ID:            uuid.NewString(),
		GuestID:       guestID,
		HotelID:       hotel.ID,
		Stage:         StageDetails,
		SelectedRooms: []SelectedRoom{},
		CreatedAt:     m.now().UTC(),
	}

	m.mu.Lock()
	m.drafts[d.ID] = d
	m.mu.Unlock()

	metrics.DraftsOpened.Inc()
	m.l.LogDebugf("Draft %s opened for hotel %s", d.ID, hotel.ID)

	return &DraftView{
		Draft: d.clone(),
		Quote: quote(d, hotel),
	}, nil
}

func (m *Manager) Draft(ctx context.Context, draftID string) (*DraftView, error) {
	return m.withDraft(ctx, draftID, func(*Draft) error { return nil })
}

func (m *Manager) UpdateDetails(ctx context.Context, draftID string, patch DetailsPatch) (*DraftView, error) {
	return m.withDraft(ctx, draftID, func(d *Draft) error {
		return d.UpdateDetails(patch)
	})
}

func (m *Manager) SetRoomQuantity(ctx context.Context, draftID, roomTypeID string, quantity int) (*DraftView, error) {
	return m.withDraft(ctx, draftID, func(d *Draft) error {
		return d.SetRoomQuantity(roomTypeID, quantity)
	})
}

func (m *Manager) SubmitDetails(ctx context.Context, draftID string) (*DraftView, error) {
	return m.withDraft(ctx, draftID, func(d *Draft) error {
		hotel, err := m.catalog.Hotel(ctx, d.HotelID)
		if err != nil {
			return fmt.Errorf("get hotel %s: %w", d.HotelID, err)
		}

		err = d.SubmitDetails(hotel)
		countTransition(StageDetails, StagePayment, err)

		return err
	})
}

func (m *Manager) BackToDetails(ctx context.Context, draftID string) (*DraftView, error) {
	return m.withDraft(ctx, draftID, func(d *Draft) error {
		err := d.Back()
		countTransition(StagePayment, StageDetails, err)

		return err
	})
}

// AbandonDraft discards a draft. Bookings already finalized from it stay recorded.
func (m *Manager) AbandonDraft(ctx context.Context, draftID string) error {
	guestID, err := guestFrom(ctx)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, err := m.draftLocked(guestID, draftID); err != nil {
		return err
	}

	delete(m.drafts, draftID)

	return nil
}

func (m *Manager) withDraft(ctx context.Context, draftID string, fn func(d *Draft) error) (*DraftView, error) {
	guestID, err := guestFrom(ctx)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	d, err := m.draftLocked(guestID, draftID)
	if err != nil {
		return nil, err
	}

	if err := fn(d); err != nil {
		return nil, err
	}

	return m.view(ctx, d)
}

// Finalize converts a draft in payment stage into a booking, records it in the
// guest's history and then sends the booking notification. A draft that was
// already confirmed yields the booking recorded for it.
func (m *Manager) Finalize(ctx context.Context, draftID string, input FinalizeInput) (*FinalizedBooking, error) {
	guestID, err := guestFrom(ctx)
	if err != nil {
		return nil, err
	}

	booking, created, err := m.finalize(ctx, guestID, draftID, input)
	if err != nil {
		return nil, err
	}

	if !created {
		return booking, nil
	}

	metrics.BookingsFinalized.WithLabelValues(string(booking.PaymentMethod), string(booking.Status)).Inc()
	metrics.BookingAmount.Observe(float64(booking.TotalAmount))
	m.l.LogInfo("Booking %s recorded for guest %s, status %s", booking.ReceiptID, guestID, booking.Status)

	m.notify(context.WithoutCancel(ctx), booking)

	return booking, nil
}

func (m *Manager) finalize(ctx context.Context, guestID, draftID string, input FinalizeInput) (*FinalizedBooking, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	d, err := m.draftLocked(guestID, draftID)
	if err != nil {
		return nil, false, err
	}

	if d.Stage == StageConfirmed {
		existing, err := m.storage.GetBooking(ctx, guestID, d.ReceiptID)
		if err != nil {
			return nil, false, fmt.Errorf("get booking %s: %w", d.ReceiptID, err)
		}

		return existing, false, nil
	}

	err = d.checkFinalize(input)
	countTransition(StagePayment, StageConfirmed, err)

	if err != nil {
		return nil, false, err
	}

	hotel, err := m.catalog.Hotel(ctx, d.HotelID)
	if err != nil {
		return nil, false, fmt.Errorf("get hotel %s: %w", d.HotelID, err)
	}

	booking, err := m.record(ctx, guestID, d, hotel, input)
	if err != nil {
		return nil, false, err
	}

	d.confirm(booking.ReceiptID)

	return booking, true, nil
}

// record appends the booking, drawing a fresh receipt id when the generated
// one is already taken.
func (m *Manager) record(ctx context.Context, guestID string, d *Draft, hotel *Hotel, input FinalizeInput) (*FinalizedBooking, error) {
	var err error

	for range receiptAttempts {
		var receiptID string

		receiptID, err = m.idGenerator.GetID(ctx)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrNextID, err)
		}

		booking := d.buildBooking(hotel, input, receiptID, m.now())

		err = m.storage.AppendBooking(ctx, guestID, booking)
		if err == nil {
			return booking, nil
		}

		if !errors.Is(err, ErrDuplicateReceipt) {
			return nil, fmt.Errorf("append booking to storage: %w", err)
		}

		m.l.LogWarnf("Receipt id %s already taken, drawing another", receiptID)
	}

	return nil, fmt.Errorf("append booking to storage: %w", err)
}

func (m *Manager) notify(ctx context.Context, booking *FinalizedBooking) {
	if m.notifier == nil {
		metrics.Notifications.WithLabelValues("skipped").Inc()
		m.l.LogDebugf("Notification disabled, booking %s stays local", booking.ReceiptID)

		return
	}

	if err := m.notifier.Notify(ctx, notificationFor(booking)); err != nil {
		m.l.LogWarnf("Could not notify about booking %s: %v", booking.ReceiptID, err.Error())

		return
	}

	m.l.LogInfo("Notification sent for booking %s", booking.ReceiptID)
}

func (m *Manager) History(ctx context.Context, filter HistoryFilter) ([]*FinalizedBooking, error) {
	guestID, err := guestFrom(ctx)
	if err != nil {
		return nil, err
	}

	bookings, err := m.storage.GetBookings(ctx, guestID)
	if err != nil {
		return nil, fmt.Errorf("get bookings of guest %s: %w", guestID, err)
	}

	return FilterBookings(bookings, filter), nil
}

func (m *Manager) Booking(ctx context.Context, receiptID string) (*FinalizedBooking, error) {
	guestID, err := guestFrom(ctx)
	if err != nil {
		return nil, err
	}

	b, err := m.storage.GetBooking(ctx, guestID, receiptID)
	if err != nil {
		return nil, fmt.Errorf("get booking %s: %w", receiptID, err)
	}

	return b, nil
}

func countTransition(from, to Stage, err error) {
	result := "ok"
	if err != nil {
		result = "blocked"
	}

	metrics.DraftTransitions.WithLabelValues(string(from), string(to), result).Inc()
}
