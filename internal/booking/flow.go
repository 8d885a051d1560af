package booking

import (
	"fmt"
	"slices"
	"time"
)

func (d *Draft) clone() *Draft {
	c := *d
	c.SelectedRooms = slices.Clone(d.SelectedRooms)

	return &c
}

func (d *Draft) ensureEditable() error {
	if d.Stage != StageDetails {
		return fmt.Errorf("draft %s is in %s stage: %w", d.ID, d.Stage, ErrDraftFrozen)
	}

	return nil
}

func (d *Draft) UpdateDetails(patch DetailsPatch) error {
	if err := d.ensureEditable(); err != nil {
		return err
	}

	apply := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}

	apply(&d.Details.GuestName, patch.GuestName)
	apply(&d.Details.Email, patch.Email)
	apply(&d.Details.Phone, patch.Phone)
	apply(&d.Details.CheckIn, patch.CheckIn)
	apply(&d.Details.CheckOut, patch.CheckOut)
	apply(&d.Details.SpecialRequests, patch.SpecialRequests)

	return nil
}

func (d *Draft) SetRoomQuantity(roomTypeID string, quantity int) error {
	if err := d.ensureEditable(); err != nil {
		return err
	}

	inputErr := newInputError()

	if roomTypeID == "" {
		inputErr.addError("roomTypeId", "provide roomTypeId")
	}

	switch {
	case quantity < 0:
		inputErr.addError("quantity", "quantity must not be negative")
	case quantity > MaxRoomsPerType:
		inputErr.addError("quantity", fmt.Sprintf("at most %d rooms of one type can be booked", MaxRoomsPerType))
	}

	if err := inputErr.orNil(); err != nil {
		return err
	}

	d.SelectedRooms = SetRoomQuantity(d.SelectedRooms, roomTypeID, quantity)

	return nil
}

// SubmitDetails moves the draft from details to payment when the form is complete.
func (d *Draft) SubmitDetails(hotel *Hotel) error {
	if d.Stage != StageDetails {
		return fmt.Errorf("submit details from %s: %w", d.Stage, ErrInvalidTransition)
	}

	if err := d.validateForPayment(hotel); err != nil {
		return err
	}

	d.Stage = StagePayment

	return nil
}

// Back returns a draft in payment stage to details, keeping every field.
func (d *Draft) Back() error {
	if d.Stage != StagePayment {
		return fmt.Errorf("back to details from %s: %w", d.Stage, ErrInvalidTransition)
	}

	d.Stage = StageDetails

	return nil
}

func (d *Draft) checkFinalize(input FinalizeInput) error {
	if d.Stage != StagePayment {
		return fmt.Errorf("finalize from %s: %w", d.Stage, ErrInvalidTransition)
	}

	return validatePayment(input)
}

func (d *Draft) buildBooking(hotel *Hotel, input FinalizeInput, receiptID string, now time.Time) *FinalizedBooking {
	q := quote(d, hotel)

	status := StatusPending
	if input.PaymentMethod == PaymentCash {
		status = StatusConfirmed
	}

	var proof string
	if input.PaymentMethod == PaymentBank && input.Receipt != nil {
		proof = input.Receipt.FileName
	}

	return &FinalizedBooking{
		ReceiptID:       receiptID,
		GuestID:         d.GuestID,
		GuestName:       d.Details.GuestName,
		Email:           d.Details.Email,
		Phone:           d.Details.Phone,
		HotelID:         hotel.ID,
		HotelName:       hotel.Name,
		CheckIn:         d.Details.CheckIn,
		CheckOut:        d.Details.CheckOut,
		Nights:          q.Nights,
		LineItems:       q.LineItems,
		PaymentMethod:   input.PaymentMethod,
		ReceiptProof:    proof,
		TotalAmount:     q.Total,
		Status:          status,
		BookingDate:     now.UTC().Format(time.DateOnly),
		SpecialRequests: d.Details.SpecialRequests,
	}
}

func (d *Draft) confirm(receiptID string) {
	d.Stage = StageConfirmed
	d.ReceiptID = receiptID
}

func notificationFor(b *FinalizedBooking) Notification {
	paymentStatus := PaymentStatusPending
	if b.PaymentMethod == PaymentCash {
		paymentStatus = PaymentStatusPaid
	}

	var roomID string
	if len(b.LineItems) > 0 {
		roomID = b.LineItems[0].RoomTypeID
	}

	return Notification{
		GuestID:       b.GuestID,
		RoomID:        roomID,
		CheckInDate:   b.CheckIn,
		CheckOutDate:  b.CheckOut,
		TotalAmount:   b.TotalAmount,
		Status:        b.Status,
		PaymentStatus: paymentStatus,
		HotelName:     b.HotelName,
	}
}
