package app

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/avstrong/lodgix/internal/booking"
	"github.com/avstrong/lodgix/internal/catalog"
	"github.com/avstrong/lodgix/internal/config"
	"github.com/avstrong/lodgix/internal/favorite"
	receiptid "github.com/avstrong/lodgix/internal/idgen/receipt"
	"github.com/avstrong/lodgix/internal/logger"
	"github.com/avstrong/lodgix/internal/migration"
	"github.com/avstrong/lodgix/internal/notify"
	"github.com/avstrong/lodgix/internal/storage/badgerdb"
	"github.com/avstrong/lodgix/internal/storage/memory"
	"github.com/avstrong/lodgix/internal/transport/web"
)

type storage interface {
	GetHotel(ctx context.Context, id string) (*booking.Hotel, error)
	GetHotels(ctx context.Context) ([]*booking.Hotel, error)
	SaveHotels(ctx context.Context, hotels []*booking.Hotel) error
	AppendBooking(ctx context.Context, guestID string, b *booking.FinalizedBooking) error
	GetBookings(ctx context.Context, guestID string) ([]*booking.FinalizedBooking, error)
	GetBooking(ctx context.Context, guestID, receiptID string) (*booking.FinalizedBooking, error)
	AddFavorite(ctx context.Context, guestID, hotelID string) error
	RemoveFavorite(ctx context.Context, guestID, hotelID string) error
	GetFavorites(ctx context.Context, guestID string) ([]string, error)
}

// openStorage returns the configured backend and a func releasing it.
func openStorage(l *logger.Logger, conf config.StorageConfig) (storage, func() error, error) {
	switch conf.Driver {
	case config.DriverBadger:
		db, err := badgerdb.Open(badgerdb.Config{L: l, Path: conf.Path}) //nolint:exhaustruct
		if err != nil {
			return nil, nil, fmt.Errorf("open badger storage: %w", err)
		}

		return db, db.Close, nil
	default:
		return memory.New(memory.Config{L: l}), func() error { return nil }, nil
	}
}

func Run(l *logger.Logger, conf *config.Config) error {
	ctx, cancel := signal.NotifyContext(
		context.Background(),
		syscall.SIGINT,
		syscall.SIGTERM,
		syscall.SIGHUP,
	)
	defer cancel()

	db, closeStorage, err := openStorage(l, conf.Storage)
	if err != nil {
		return err
	}

	defer func() {
		if err := closeStorage(); err != nil {
			l.LogErrorf("Failed to close storage: %v", err.Error())
		}
	}()

	l.LogInfo("Storage %s is ready", conf.Storage.Driver)

	if err := migration.Up(ctx, l, db); err != nil {
		return fmt.Errorf("up catalog migration: %w", err)
	}

	hotels := catalog.New(db)

	opts := []booking.Option{booking.WithDraftTTL(conf.Booking.DraftTTL)}

	if conf.Notify.Enabled {
		//nolint:exhaustruct
		opts = append(opts, booking.WithNotifier(notify.New(notify.Config{
			L:       l,
			URL:     conf.Notify.URL,
			Token:   conf.Notify.Token,
			Timeout: conf.Notify.Timeout,
		})))

		l.LogInfo("Booking notifications go to %s", conf.Notify.URL)
	}

	bookManager := booking.New(l.With("booking"), db, hotels, receiptid.New(), opts...)

	go bookManager.RunJanitor(ctx, conf.Booking.DraftSweepInterval)

	favorites := favorite.New(l.With("favorite"), db, hotels)

	webConf := web.Conf{
		L:                 l,
		ServerLogger:      log.Default(),
		Host:              conf.Server.Host,
		Port:              conf.Server.Port,
		ReadHeaderTimeout: conf.Server.ReadHeaderTimeout,
		LivenessEndpoint:  conf.Server.LivenessEndpoint,
		CORSOrigins:       conf.Server.CORSOrigins,
		RateLimitRequests: conf.Server.RateLimitRequests,
		RateLimitWindow:   conf.Server.RateLimitWindow,
		MaxUploadBytes:    conf.Server.MaxUploadBytes,
	}

	srv, err := web.New(ctx, webConf, bookManager, hotels, favorites)
	if err != nil {
		return fmt.Errorf("init http server: %w", err)
	}

	//nolint:contextcheck
	go func() {
		<-ctx.Done()

		ctx, cancel := context.WithTimeout(context.Background(), conf.Server.ShutdownTimeout)
		defer cancel()

		if err := srv.Srv().Shutdown(ctx); err != nil {
			l.LogErrorf("Failed to stop http server: %v", err.Error())
		}
	}()

	l.LogInfo("Application is running on %v:%v...", webConf.Host, webConf.Port)

	if err := srv.Srv().ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		cancel()

		return fmt.Errorf("run http server: %w", err)
	}

	l.LogInfo("Application stopped gracefully")

	return nil
}
