// Package badgerdb keeps the hotel catalog and guest booking histories in a
// BadgerDB directory so that bookings survive restarts.
package badgerdb

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"slices"
	"strconv"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"

	"github.com/avstrong/lodgix/internal/booking"
	"github.com/avstrong/lodgix/internal/logger"
)

// Key layout:
//
//	hotel:<id>                       -> hotel JSON
//	hotel_index:<%08d position>      -> hotel id
//	booking:<guest>\x00<%010d seq>   -> booking JSON
//	receipt:<guest>\x00<receipt id>  -> booking key
//	favorite:<guest>\x00<hotel id>    -> %020d insertion sequence
const (
	hotelPrefix      = "hotel:"
	hotelIndexPrefix = "hotel_index:"
	bookingPrefix    = "booking:"
	receiptPrefix    = "receipt:"
	favoritePrefix   = "favorite:"
	sep              = "\x00"
)

type Config struct {
	L        *logger.Logger
	Path     string
	InMemory bool
}

type DB struct {
	db *badger.DB
	l  *logger.Logger
}

func Open(conf Config) (*DB, error) {
	opts := badger.DefaultOptions(conf.Path).WithLogger(conf.L.Badger())
	if conf.InMemory {
		opts = opts.WithDir("").WithValueDir("").WithInMemory(true)
	}

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger at %q: %w", conf.Path, err)
	}

	return &DB{db: db, l: conf.L}, nil
}

func (s *DB) Close() error {
	if err := s.db.Close(); err != nil {
		return fmt.Errorf("close badger: %w", err)
	}

	return nil
}

func countPrefix(txn *badger.Txn, prefix []byte) int {
	opts := badger.DefaultIteratorOptions
	opts.PrefetchValues = false
	opts.Prefix = prefix

	it := txn.NewIterator(opts)
	defer it.Close()

	var n int
	for it.Rewind(); it.Valid(); it.Next() {
		n++
	}

	return n
}

func getJSON(txn *badger.Txn, key []byte, v any) error {
	item, err := txn.Get(key)
	if errors.Is(err, badger.ErrKeyNotFound) {
		return booking.ErrRecordNotFound
	}

	if err != nil {
		return fmt.Errorf("get %q: %w", key, err)
	}

	return item.Value(func(val []byte) error {
		return json.Unmarshal(val, v)
	})
}

func (s *DB) SaveHotels(_ context.Context, hotels []*booking.Hotel) error {
	return s.db.Update(func(txn *badger.Txn) error {
		next := countPrefix(txn, []byte(hotelIndexPrefix))

		for _, h := range hotels {
			data, err := json.Marshal(h)
			if err != nil {
				return fmt.Errorf("marshal hotel %s: %w", h.ID, err)
			}

			key := []byte(hotelPrefix + h.ID)

			_, err = txn.Get(key)

			switch {
			case errors.Is(err, badger.ErrKeyNotFound):
				index := []byte(fmt.Sprintf("%s%08d", hotelIndexPrefix, next))
				if err := txn.Set(index, []byte(h.ID)); err != nil {
					return fmt.Errorf("set hotel index: %w", err)
				}

				next++
			case err != nil:
				return fmt.Errorf("get hotel %s: %w", h.ID, err)
			}

			if err := txn.Set(key, data); err != nil {
				return fmt.Errorf("set hotel %s: %w", h.ID, err)
			}
		}

		return nil
	})
}

func (s *DB) GetHotel(_ context.Context, id string) (*booking.Hotel, error) {
	var h booking.Hotel

	err := s.db.View(func(txn *badger.Txn) error {
		return getJSON(txn, []byte(hotelPrefix+id), &h)
	})
	if err != nil {
		return nil, fmt.Errorf("hotel %s: %w", id, err)
	}

	return &h, nil
}

func (s *DB) GetHotels(_ context.Context) ([]*booking.Hotel, error) {
	var hotels []*booking.Hotel

	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(hotelIndexPrefix)

		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			id, err := it.Item().ValueCopy(nil)
			if err != nil {
				return fmt.Errorf("read hotel index: %w", err)
			}

			var h booking.Hotel
			if err := getJSON(txn, []byte(hotelPrefix+string(id)), &h); err != nil {
				return fmt.Errorf("hotel %s: %w", id, err)
			}

			hotels = append(hotels, &h)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return hotels, nil
}

func (s *DB) AppendBooking(_ context.Context, guestID string, b *booking.FinalizedBooking) error {
	data, err := json.Marshal(b)
	if err != nil {
		return fmt.Errorf("marshal booking %s: %w", b.ReceiptID, err)
	}

	err = s.db.Update(func(txn *badger.Txn) error {
		receiptKey := []byte(receiptPrefix + guestID + sep + b.ReceiptID)

		_, err := txn.Get(receiptKey)
		if err == nil {
			return fmt.Errorf("booking %s: %w", b.ReceiptID, booking.ErrDuplicateReceipt)
		}

		if !errors.Is(err, badger.ErrKeyNotFound) {
			return fmt.Errorf("get receipt %s: %w", b.ReceiptID, err)
		}

		guestPrefix := bookingPrefix + guestID + sep
		seq := countPrefix(txn, []byte(guestPrefix))
		bookingKey := []byte(fmt.Sprintf("%s%010d", guestPrefix, seq))

		if err := txn.Set(bookingKey, data); err != nil {
			return fmt.Errorf("set booking: %w", err)
		}

		if err := txn.Set(receiptKey, bookingKey); err != nil {
			return fmt.Errorf("set receipt index: %w", err)
		}

		return nil
	})
	if err != nil {
		return err
	}

	s.l.LogDebugf("Booking %s appended for guest %s", b.ReceiptID, guestID)

	return nil
}

func (s *DB) GetBookings(_ context.Context, guestID string) ([]*booking.FinalizedBooking, error) {
	bookings := []*booking.FinalizedBooking{}

	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(bookingPrefix + guestID + sep)

		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			var b booking.FinalizedBooking

			if err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &b)
			}); err != nil {
				return fmt.Errorf("decode booking: %w", err)
			}

			bookings = append(bookings, &b)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return bookings, nil
}

func (s *DB) GetBooking(_ context.Context, guestID, receiptID string) (*booking.FinalizedBooking, error) {
	var b booking.FinalizedBooking

	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(receiptPrefix + guestID + sep + receiptID))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return booking.ErrRecordNotFound
		}

		if err != nil {
			return fmt.Errorf("get receipt: %w", err)
		}

		bookingKey, err := item.ValueCopy(nil)
		if err != nil {
			return fmt.Errorf("read receipt index: %w", err)
		}

		return getJSON(txn, bookingKey, &b)
	})
	if err != nil {
		return nil, fmt.Errorf("booking %s: %w", receiptID, err)
	}

	return &b, nil
}

func favoriteKey(guestID, hotelID string) []byte {
	return []byte(favoritePrefix + guestID + sep + hotelID)
}

func lastFavoriteSeq(txn *badger.Txn, guestID string) (uint64, error) {
	opts := badger.DefaultIteratorOptions
	opts.Prefix = []byte(favoritePrefix + guestID + sep)

	it := txn.NewIterator(opts)
	defer it.Close()

	var last uint64

	for it.Rewind(); it.Valid(); it.Next() {
		val, err := it.Item().ValueCopy(nil)
		if err != nil {
			return 0, fmt.Errorf("read favorite: %w", err)
		}

		seq, err := strconv.ParseUint(string(val), 10, 64)
		if err != nil {
			return 0, fmt.Errorf("parse favorite sequence: %w", err)
		}

		last = max(last, seq)
	}

	return last, nil
}

func (s *DB) AddFavorite(_ context.Context, guestID, hotelID string) error {
	err := s.db.Update(func(txn *badger.Txn) error {
		key := favoriteKey(guestID, hotelID)

		_, err := txn.Get(key)
		if err == nil {
			return nil
		}

		if !errors.Is(err, badger.ErrKeyNotFound) {
			return fmt.Errorf("get favorite: %w", err)
		}

		last, err := lastFavoriteSeq(txn, guestID)
		if err != nil {
			return err
		}

		return txn.Set(key, []byte(fmt.Sprintf("%020d", last+1)))
	})
	if err != nil {
		return fmt.Errorf("add favorite %s: %w", hotelID, err)
	}

	return nil
}

func (s *DB) RemoveFavorite(_ context.Context, guestID, hotelID string) error {
	err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Delete(favoriteKey(guestID, hotelID))
	})
	if err != nil {
		return fmt.Errorf("remove favorite %s: %w", hotelID, err)
	}

	return nil
}

// GetFavorites lists hotel ids in the order they were added.
func (s *DB) GetFavorites(_ context.Context, guestID string) ([]string, error) {
	type entry struct {
		hotelID string
		added   string
	}

	var entries []entry

	err := s.db.View(func(txn *badger.Txn) error {
		prefix := []byte(favoritePrefix + guestID + sep)

		opts := badger.DefaultIteratorOptions
		opts.Prefix = prefix

		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			added, err := it.Item().ValueCopy(nil)
			if err != nil {
				return fmt.Errorf("read favorite: %w", err)
			}

			entries = append(entries, entry{hotelID: string(it.Item().Key()[len(prefix):]), added: string(added)})
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	slices.SortStableFunc(entries, func(a, b entry) int { return cmp.Compare(a.added, b.added) })

	ids := make([]string, 0, len(entries))
	for _, e := range entries {
		ids = append(ids, e.hotelID)
	}

	return ids, nil
}
