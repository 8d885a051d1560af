package booking

// SetRoomQuantity returns a copy of selectedRooms with roomTypeID set to
// quantity. A zero quantity removes the entry. The input is never modified.
func SetRoomQuantity(selectedRooms []SelectedRoom, roomTypeID string, quantity int) []SelectedRoom {
	out := make([]SelectedRoom, 0, len(selectedRooms)+1)
	found := false

	for _, sr := range selectedRooms {
		if sr.RoomTypeID != roomTypeID {
			out = append(out, sr)

			continue
		}

		found = true

		if quantity != 0 {
			out = append(out, SelectedRoom{RoomTypeID: roomTypeID, Quantity: quantity})
		}
	}

	if !found && quantity != 0 {
		out = append(out, SelectedRoom{RoomTypeID: roomTypeID, Quantity: quantity})
	}

	return out
}

func totalRooms(selectedRooms []SelectedRoom) int {
	var n int

	for _, sr := range selectedRooms {
		n += sr.Quantity
	}

	return n
}
