package migration

import (
	"context"
	"fmt"

	"github.com/avstrong/lodgix/internal/booking"
	"github.com/avstrong/lodgix/internal/logger"
)

type storage interface {
	GetHotels(ctx context.Context) ([]*booking.Hotel, error)
	SaveHotels(ctx context.Context, hotels []*booking.Hotel) error
}

// Up seeds the sample catalog when storage holds no hotels yet.
func Up(ctx context.Context, l *logger.Logger, storage storage) error {
	existing, err := storage.GetHotels(ctx)
	if err != nil {
		return fmt.Errorf("get hotels from storage: %w", err)
	}

	if len(existing) > 0 {
		l.LogInfo("Catalog already holds %d hotels, migration skipped", len(existing))

		return nil
	}

	hotels := SampleHotels()

	if err := storage.SaveHotels(ctx, hotels); err != nil {
		return fmt.Errorf("save hotels to storage: %w", err)
	}

	l.LogInfo("Catalog seeded with %d hotels", len(hotels))

	return nil
}
