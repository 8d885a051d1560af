package booking

import "time"

type Stage string

const (
	StageDetails   Stage = "details"
	StagePayment   Stage = "payment"
	StageConfirmed Stage = "confirmed"
)

type PaymentMethod string

const (
	PaymentCard PaymentMethod = "card"
	PaymentBank PaymentMethod = "bank"
	PaymentCash PaymentMethod = "cash"
)

func (p PaymentMethod) valid() bool {
	switch p {
	case PaymentCard, PaymentBank, PaymentCash:
		return true
	default:
		return false
	}
}

type Status string

const (
	StatusConfirmed Status = "confirmed"
	StatusPending   Status = "pending"
)

type PaymentStatus string

const (
	PaymentStatusPaid    PaymentStatus = "paid"
	PaymentStatusPending PaymentStatus = "pending"
)

type RoomType struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Price       int    `json:"price"`
	Description string `json:"description"`
}

type Facility struct {
	Name    string `json:"name"`
	Details string `json:"details"`
}

type Hotel struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Address     string     `json:"address"`
	Type        string     `json:"type"`
	Rating      float64    `json:"rating"`
	Reviews     int        `json:"reviews"`
	Stars       int        `json:"stars"`
	Amenities   []string   `json:"amenities"`
	Price       int        `json:"price"`
	Discount    int        `json:"discount"`
	Image       string     `json:"image"`
	Images      []string   `json:"images"`
	Description string     `json:"description"`
	Facilities  []Facility `json:"facilities"`
	RoomTypes   []RoomType `json:"roomTypes"`
}

func (h *Hotel) RoomType(id string) (RoomType, bool) {
	return findRoomType(h.RoomTypes, id)
}

type SelectedRoom struct {
	RoomTypeID string `json:"roomTypeId"`
	Quantity   int    `json:"quantity"`
}

// Details is the guest form of a draft.
type Details struct {
	GuestName       string `json:"name" validate:"required"`
	Email           string `json:"email" validate:"required,basicemail"`
	Phone           string `json:"phone" validate:"required"`
	CheckIn         string `json:"checkIn" validate:"required"`
	CheckOut        string `json:"checkOut" validate:"required"`
	SpecialRequests string `json:"specialRequests"`
}

// DetailsPatch carries a partial form edit; nil fields are left untouched.
type DetailsPatch struct {
	GuestName       *string `json:"name"`
	Email           *string `json:"email"`
	Phone           *string `json:"phone"`
	CheckIn         *string `json:"checkIn"`
	CheckOut        *string `json:"checkOut"`
	SpecialRequests *string `json:"specialRequests"`
}

type Draft struct {
	ID            string         `json:"id"`
	GuestID       string         `json:"guestId"`
	HotelID       string         `json:"hotelId"`
	Stage         Stage          `json:"stage"`
	Details       Details        `json:"details"`
	SelectedRooms []SelectedRoom `json:"selectedRooms"`
	ReceiptID     string         `json:"receiptId,omitempty"`
	CreatedAt     time.Time      `json:"createdAt"`
}

type Quote struct {
	Nights     int        `json:"nights"`
	LineItems  []LineItem `json:"lineItems"`
	Subtotal   int        `json:"subtotal"`
	ServiceFee int        `json:"serviceFee"`
	Total      int        `json:"total"`
}

type DraftView struct {
	Draft *Draft `json:"draft"`
	Quote Quote  `json:"quote"`
}

type Attachment struct {
	FileName    string `json:"fileName"`
	ContentType string `json:"contentType"`
	Size        int64  `json:"size"`
}

type FinalizeInput struct {
	PaymentMethod PaymentMethod
	Receipt       *Attachment
}

type LineItem struct {
	RoomTypeID string `json:"id"`
	Name       string `json:"name"`
	Quantity   int    `json:"quantity"`
	Price      int    `json:"price"`
}

type FinalizedBooking struct {
	ReceiptID       string        `json:"receiptId"`
	GuestID         string        `json:"guestId"`
	GuestName       string        `json:"guestName"`
	Email           string        `json:"email"`
	Phone           string        `json:"phone"`
	HotelID         string        `json:"hotelId"`
	HotelName       string        `json:"hotelName"`
	CheckIn         string        `json:"checkIn"`
	CheckOut        string        `json:"checkOut"`
	Nights          int           `json:"nights"`
	LineItems       []LineItem    `json:"selectedRooms"`
	PaymentMethod   PaymentMethod `json:"paymentMethod"`
	ReceiptProof    string        `json:"receiptProof,omitempty"`
	TotalAmount     int           `json:"totalAmount"`
	Status          Status        `json:"status"`
	BookingDate     string        `json:"bookingDate"`
	SpecialRequests string        `json:"specialRequests"`
}

// Notification is the payload sent to the booking notification service.
type Notification struct {
	GuestID       string        `json:"guest_id"`
	RoomID        string        `json:"room_id"`
	CheckInDate   string        `json:"check_in_date"`
	CheckOutDate  string        `json:"check_out_date"`
	TotalAmount   int           `json:"total_amount"`
	Status        Status        `json:"status"`
	PaymentStatus PaymentStatus `json:"payment_status"`
	HotelName     string        `json:"hotel_name"`
}
