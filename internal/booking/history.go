package booking

import "strings"

const statusAll = "all"

type HistoryFilter struct {
	// Search matches guest name, hotel name or receipt id, case-insensitively.
	Search string
	// Status is a booking status or "all".
	Status string
	// Date matches part of the check-in or check-out date.
	Date string
}

type HistorySummary struct {
	Total       int            `json:"total"`
	ByStatus    map[Status]int `json:"byStatus"`
	TotalAmount int            `json:"totalAmount"`
}

func (f HistoryFilter) match(b *FinalizedBooking) bool {
	if q := strings.ToLower(strings.TrimSpace(f.Search)); q != "" {
		if !strings.Contains(strings.ToLower(b.GuestName), q) &&
			!strings.Contains(strings.ToLower(b.HotelName), q) &&
			!strings.Contains(strings.ToLower(b.ReceiptID), q) {
			return false
		}
	}

	if f.Status != "" && f.Status != statusAll && string(b.Status) != f.Status {
		return false
	}

	if f.Date != "" && !strings.Contains(b.CheckIn, f.Date) && !strings.Contains(b.CheckOut, f.Date) {
		return false
	}

	return true
}

// FilterBookings keeps the bookings matching every non-empty criterion, in order.
func FilterBookings(bookings []*FinalizedBooking, filter HistoryFilter) []*FinalizedBooking {
	out := make([]*FinalizedBooking, 0, len(bookings))

	for _, b := range bookings {
		if filter.match(b) {
			out = append(out, b)
		}
	}

	return out
}

func Summarize(bookings []*FinalizedBooking) HistorySummary {
	s := HistorySummary{ByStatus: make(map[Status]int)}

	for _, b := range bookings {
		s.Total++
		s.ByStatus[b.Status]++
		s.TotalAmount += b.TotalAmount
	}

	return s
}
