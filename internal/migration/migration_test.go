package migration

import (
	"context"
	"testing"

	"github.com/avstrong/lodgix/internal/logger"
	"github.com/avstrong/lodgix/internal/storage/memory"
)

func TestUp(t *testing.T) {
	ctx := context.Background()
	db := memory.New(memory.Config{L: logger.Nop()})

	if err := Up(ctx, logger.Nop(), db); err != nil {
		t.Fatalf("Up() error = %v", err)
	}

	hotels, err := db.GetHotels(ctx)
	if err != nil {
		t.Fatalf("GetHotels() error = %v", err)
	}

	if len(hotels) != len(SampleHotels()) {
		t.Fatalf("Expected %d hotels, got %d", len(SampleHotels()), len(hotels))
	}

	for _, h := range hotels {
		if len(h.RoomTypes) == 0 {
			t.Errorf("Hotel %s has no room types", h.ID)
		}
	}

	// a second run must not duplicate or overwrite the catalog
	if err := Up(ctx, logger.Nop(), db); err != nil {
		t.Fatalf("second Up() error = %v", err)
	}

	again, _ := db.GetHotels(ctx)
	if len(again) != len(hotels) {
		t.Errorf("Expected %d hotels after rerun, got %d", len(hotels), len(again))
	}
}
