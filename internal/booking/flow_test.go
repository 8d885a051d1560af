package booking

import (
	"errors"
	"reflect"
	"testing"
	"time"
)

func validDraft() *Draft {
	return &Draft{
		ID:      "d1",
		GuestID: "42",
		HotelID: "1",
		Stage:   StageDetails,
		Details: Details{
			GuestName: "Asha Rao",
			Email:     "asha@example.com",
			Phone:     "+91 98200 00000",
			CheckIn:   "2024-06-01",
			CheckOut:  "2024-06-04",
		},
		SelectedRooms: []SelectedRoom{{RoomTypeID: "deluxe", Quantity: 2}},
	}
}

func TestSubmitDetailsValidation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(d *Draft)
		want   map[string][]string
	}{
		{
			name: "empty form",
			mutate: func(d *Draft) {
				d.Details = Details{}
				d.SelectedRooms = nil
			},
			want: map[string][]string{
				"name":          {"Name is required"},
				"email":         {"Email is required"},
				"phone":         {"Phone number is required"},
				"checkIn":       {"Check-in date is required"},
				"checkOut":      {"Check-out date is required"},
				"selectedRooms": {"Please select at least one room type"},
			},
		},
		{
			name:   "blank name",
			mutate: func(d *Draft) { d.Details.GuestName = "   " },
			want:   map[string][]string{"name": {"Name is required"}},
		},
		{
			name:   "malformed email",
			mutate: func(d *Draft) { d.Details.Email = "asha@example" },
			want:   map[string][]string{"email": {"Email is invalid"}},
		},
		{
			name:   "reversed dates",
			mutate: func(d *Draft) { d.Details.CheckOut = "2024-05-30" },
			want:   map[string][]string{"checkOut": {"Check-out date must be after check-in date"}},
		},
		{
			name:   "unparsable check-in",
			mutate: func(d *Draft) { d.Details.CheckIn = "06/01/2024" },
			want:   map[string][]string{"checkIn": {"Check-in date is invalid"}},
		},
		{
			name:   "unknown room type",
			mutate: func(d *Draft) { d.SelectedRooms = []SelectedRoom{{RoomTypeID: "penthouse", Quantity: 1}} },
			want: map[string][]string{
				"selectedRooms": {`Room type "penthouse" is not offered by Grand Hyatt Mumbai`},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := validDraft()
			tt.mutate(d)

			err := d.SubmitDetails(testHotel())

			inputErr := IsInputError(err)
			if inputErr == nil {
				t.Fatalf("Expected input error, got %v", err)
			}

			if !reflect.DeepEqual(inputErr.Fields(), tt.want) {
				t.Errorf("Fields() = %v, want %v", inputErr.Fields(), tt.want)
			}

			if d.Stage != StageDetails {
				t.Errorf("Stage changed to %s on blocked transition", d.Stage)
			}
		})
	}
}

func TestDraftTransitions(t *testing.T) {
	d := validDraft()

	if err := d.Back(); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("Back() from details error = %v, want ErrInvalidTransition", err)
	}

	if err := d.SubmitDetails(testHotel()); err != nil {
		t.Fatalf("SubmitDetails() error = %v", err)
	}

	if d.Stage != StagePayment {
		t.Fatalf("Expected payment stage, got %s", d.Stage)
	}

	if err := d.SetRoomQuantity("deluxe", 1); !errors.Is(err, ErrDraftFrozen) {
		t.Errorf("SetRoomQuantity() in payment error = %v, want ErrDraftFrozen", err)
	}

	if err := d.SubmitDetails(testHotel()); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("SubmitDetails() twice error = %v, want ErrInvalidTransition", err)
	}

	if err := d.Back(); err != nil {
		t.Fatalf("Back() error = %v", err)
	}

	if d.Stage != StageDetails || d.Details.GuestName != "Asha Rao" || len(d.SelectedRooms) != 1 {
		t.Errorf("Back() lost draft data: %+v", d)
	}
}

func TestDraftEdits(t *testing.T) {
	d := validDraft()
	phone := "12345"

	if err := d.UpdateDetails(DetailsPatch{Phone: &phone}); err != nil {
		t.Fatalf("UpdateDetails() error = %v", err)
	}

	if d.Details.Phone != "12345" || d.Details.GuestName != "Asha Rao" {
		t.Errorf("Unexpected details after patch: %+v", d.Details)
	}

	err := d.SetRoomQuantity("deluxe", -1)
	if inputErr := IsInputError(err); inputErr == nil || inputErr.Fields()["quantity"] == nil {
		t.Errorf("Expected quantity input error, got %v", err)
	}

	for _, qty := range []int{MaxRoomsPerType + 1, 1 << 61} {
		err = d.SetRoomQuantity("deluxe", qty)
		if inputErr := IsInputError(err); inputErr == nil || inputErr.Fields()["quantity"] == nil {
			t.Errorf("SetRoomQuantity(%d) expected quantity input error, got %v", qty, err)
		}
	}

	if err := d.SetRoomQuantity("deluxe", MaxRoomsPerType); err != nil {
		t.Fatalf("SetRoomQuantity(max) error = %v", err)
	}

	if err := d.SetRoomQuantity("deluxe", 0); err != nil {
		t.Fatalf("SetRoomQuantity() error = %v", err)
	}

	if len(d.SelectedRooms) != 0 {
		t.Errorf("Expected room removed, got %+v", d.SelectedRooms)
	}
}

func TestBuildBooking(t *testing.T) {
	d := validDraft()
	d.Stage = StagePayment
	now := time.Date(2024, 5, 20, 23, 30, 0, 0, time.UTC)

	tests := []struct {
		name       string
		input      FinalizeInput
		wantStatus Status
		wantProof  string
	}{
		{name: "cash", input: FinalizeInput{PaymentMethod: PaymentCash}, wantStatus: StatusConfirmed},
		{name: "card", input: FinalizeInput{PaymentMethod: PaymentCard}, wantStatus: StatusPending},
		{
			name:       "bank",
			input:      FinalizeInput{PaymentMethod: PaymentBank, Receipt: &Attachment{FileName: "transfer.png"}},
			wantStatus: StatusPending,
			wantProof:  "transfer.png",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := d.buildBooking(testHotel(), tt.input, "HTL1", now)

			if b.Status != tt.wantStatus {
				t.Errorf("Status = %s, want %s", b.Status, tt.wantStatus)
			}

			if b.ReceiptProof != tt.wantProof {
				t.Errorf("ReceiptProof = %q, want %q", b.ReceiptProof, tt.wantProof)
			}

			if b.Nights != 3 || b.TotalAmount != 6500 {
				t.Errorf("Nights = %d, TotalAmount = %d, want 3 and 6500", b.Nights, b.TotalAmount)
			}

			if b.BookingDate != "2024-05-20" {
				t.Errorf("BookingDate = %s", b.BookingDate)
			}
		})
	}
}

func TestCheckFinalize(t *testing.T) {
	d := validDraft()

	if err := d.checkFinalize(FinalizeInput{PaymentMethod: PaymentCash}); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("checkFinalize() from details error = %v", err)
	}

	d.Stage = StagePayment

	err := d.checkFinalize(FinalizeInput{PaymentMethod: PaymentBank})
	if inputErr := IsInputError(err); inputErr == nil || inputErr.Fields()["receipt"][0] != "Please upload a payment receipt to continue." {
		t.Errorf("Expected receipt required error, got %v", err)
	}

	err = d.checkFinalize(FinalizeInput{PaymentMethod: "crypto"})
	if inputErr := IsInputError(err); inputErr == nil || inputErr.Fields()["paymentMethod"] == nil {
		t.Errorf("Expected payment method error, got %v", err)
	}
}

func TestNotificationFor(t *testing.T) {
	b := &FinalizedBooking{
		GuestID:       "42",
		CheckIn:       "2024-06-01",
		CheckOut:      "2024-06-04",
		LineItems:     []LineItem{{RoomTypeID: "deluxe"}, {RoomTypeID: "ordinary"}},
		PaymentMethod: PaymentCash,
		Status:        StatusConfirmed,
		TotalAmount:   6500,
		HotelName:     "Grand Hyatt Mumbai",
	}

	n := notificationFor(b)

	want := Notification{
		GuestID:       "42",
		RoomID:        "deluxe",
		CheckInDate:   "2024-06-01",
		CheckOutDate:  "2024-06-04",
		TotalAmount:   6500,
		Status:        StatusConfirmed,
		PaymentStatus: PaymentStatusPaid,
		HotelName:     "Grand Hyatt Mumbai",
	}

	if n != want {
		t.Errorf("notificationFor() = %+v, want %+v", n, want)
	}

	b.PaymentMethod = PaymentBank
	if notificationFor(b).PaymentStatus != PaymentStatusPending {
		t.Error("Expected pending payment status for bank transfer")
	}
}
