package booking

import (
	"strings"
	"time"
)

// ServiceFee is added once to every booking total.
const ServiceFee = 500

// MaxRoomsPerType bounds the quantity of a single room type in a draft.
const MaxRoomsPerType = 10

const unknownRoomName = "Unknown Room"

const secondsPerDay = 24 * 60 * 60

var dateLayouts = []string{time.DateOnly, time.RFC3339}

func parseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}

	return time.Time{}, false
}

// ComputeNights returns the number of nights between check-in and check-out,
// rounded up. Missing or unparsable dates and non-positive ranges give 0.
func ComputeNights(checkIn, checkOut string) int {
	in, ok := parseDate(checkIn)
	if !ok {
		return 0
	}

	out, ok := parseDate(checkOut)
	if !ok {
		return 0
	}

	// Unix seconds instead of Time.Sub, which saturates at about 292 years.
	secs := out.Unix() - in.Unix()
	if secs <= 0 {
		return 0
	}

	return int((secs + secondsPerDay - 1) / secondsPerDay)
}

// ComputeTotal prices the selection for the given number of nights and adds
// ServiceFee. Rooms missing from roomTypes contribute nothing.
func ComputeTotal(selectedRooms []SelectedRoom, roomTypes []RoomType, nights int) int {
	return subtotal(selectedRooms, roomTypes, nights) + ServiceFee
}

func subtotal(selectedRooms []SelectedRoom, roomTypes []RoomType, nights int) int {
	var sum int

	for _, sr := range selectedRooms {
		if rt, ok := findRoomType(roomTypes, sr.RoomTypeID); ok {
			sum += rt.Price * nights * sr.Quantity
		}
	}

	return sum
}

// LineItems describes each selection with its catalog name and nightly price.
func LineItems(selectedRooms []SelectedRoom, roomTypes []RoomType) []LineItem {
	items := make([]LineItem, 0, len(selectedRooms))

	for _, sr := range selectedRooms {
		item := LineItem{
			RoomTypeID: sr.RoomTypeID,
			Name:       unknownRoomName,
			Quantity:   sr.Quantity,
		}

		if rt, ok := findRoomType(roomTypes, sr.RoomTypeID); ok {
			item.Name = rt.Name
			item.Price = rt.Price
		}

		items = append(items, item)
	}

	return items
}

func quote(d *Draft, hotel *Hotel) Quote {
	nights := ComputeNights(d.Details.CheckIn, d.Details.CheckOut)
	sub := subtotal(d.SelectedRooms, hotel.RoomTypes, nights)

	return Quote{
		Nights:     nights,
		LineItems:  LineItems(d.SelectedRooms, hotel.RoomTypes),
		Subtotal:   sub,
		ServiceFee: ServiceFee,
		Total:      sub + ServiceFee,
	}
}

func findRoomType(roomTypes []RoomType, id string) (RoomType, bool) {
	for _, rt := range roomTypes {
		if rt.ID == id {
			return rt, true
		}
	}

	return RoomType{}, false
}
