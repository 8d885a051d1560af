// Package receipt renders finalized bookings as downloadable receipts.
package receipt

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"

	"github.com/avstrong/lodgix/internal/booking"
)

const (
	FormatText = "text"
	FormatPDF  = "pdf"

	brand = "Lodgix"
)

func FileName(b *booking.FinalizedBooking, format string) string {
	ext := "txt"
	if format == FormatPDF {
		ext = "pdf"
	}

	return fmt.Sprintf("receipt-%s.%s", b.ReceiptID, ext)
}

// Text renders the plain text receipt.
func Text(b *booking.FinalizedBooking) string {
	var sb strings.Builder

	section := func(title string) {
		fmt.Fprintf(&sb, "\n%s\n%s\n", title, strings.Repeat("-", len(title)))
	}

	sb.WriteString("BOOKING RECEIPT\n================\n\n")
	fmt.Fprintf(&sb, "Receipt ID: %s\n", b.ReceiptID)
	fmt.Fprintf(&sb, "Booking Date: %s\n", formatDate(b.BookingDate))
	fmt.Fprintf(&sb, "Status: %s\n", b.Status)

	section("GUEST INFORMATION")
	fmt.Fprintf(&sb, "Name: %s\n", b.GuestName)
	fmt.Fprintf(&sb, "Phone: %s\n", b.Phone)
	fmt.Fprintf(&sb, "Email: %s\n", b.Email)

	section("HOTEL DETAILS")
	fmt.Fprintf(&sb, "Hotel: %s\n", b.HotelName)
	fmt.Fprintf(&sb, "Check-in: %s\n", formatDate(b.CheckIn))
	fmt.Fprintf(&sb, "Check-out: %s\n", formatDate(b.CheckOut))
	fmt.Fprintf(&sb, "Nights: %d\n", b.Nights)

	section("ROOM DETAILS")

	for _, item := range b.LineItems {
		fmt.Fprintf(&sb, "%s: %d × ₹%s = ₹%s\n",
			item.Name, item.Quantity, FormatAmount(item.Price), FormatAmount(lineTotal(item, b.Nights)))
	}

	section("PAYMENT INFORMATION")
	fmt.Fprintf(&sb, "Payment Method: %s\n", b.PaymentMethod)
	fmt.Fprintf(&sb, "Service Fee: ₹%s\n", FormatAmount(booking.ServiceFee))
	fmt.Fprintf(&sb, "Total Amount: ₹%s\n", FormatAmount(b.TotalAmount))

	fmt.Fprintf(&sb, "\nThank you for choosing %s!", brand)

	return sb.String()
}

// PDF writes a single page A4 receipt. Core PDF fonts have no rupee glyph,
// amounts are prefixed with "Rs." instead.
//
//nolint:gomnd // page layout in millimetres
func PDF(w io.Writer, b *booking.FinalizedBooking) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Booking receipt "+b.ReceiptID, true)
	pdf.AddPage()

	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(190, 10, brand+" booking receipt")
	pdf.Ln(12)

	line := func(label, value string) {
		pdf.SetFont("Arial", "B", 11)
		pdf.Cell(45, 7, label)
		pdf.SetFont("Arial", "", 11)
		pdf.Cell(145, 7, tr(value))
		pdf.Ln(7)
	}

	heading := func(title string) {
		pdf.Ln(4)
		pdf.SetFont("Arial", "B", 13)
		pdf.Cell(190, 8, title)
		pdf.Ln(9)
	}

	line("Receipt ID:", b.ReceiptID)
	line("Booking Date:", formatDate(b.BookingDate))
	line("Status:", string(b.Status))

	heading("Guest information")
	line("Name:", b.GuestName)
	line("Phone:", b.Phone)
	line("Email:", b.Email)

	heading("Hotel details")
	line("Hotel:", b.HotelName)
	line("Check-in:", formatDate(b.CheckIn))
	line("Check-out:", formatDate(b.CheckOut))
	line("Nights:", strconv.Itoa(b.Nights))

	heading("Room details")

	for _, item := range b.LineItems {
		line(item.Name+":", fmt.Sprintf("%d x Rs.%s = Rs.%s",
			item.Quantity, FormatAmount(item.Price), FormatAmount(lineTotal(item, b.Nights))))
	}

	heading("Payment information")
	line("Payment Method:", string(b.PaymentMethod))

	if b.ReceiptProof != "" {
		line("Payment Proof:", b.ReceiptProof)
	}

	line("Service Fee:", "Rs."+FormatAmount(booking.ServiceFee))
	line("Total Amount:", "Rs."+FormatAmount(b.TotalAmount))

	pdf.Ln(8)
	pdf.SetFont("Arial", "I", 11)
	pdf.Cell(190, 7, "Thank you for choosing "+brand+"!")

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("render pdf receipt %s: %w", b.ReceiptID, err)
	}

	return nil
}

func lineTotal(item booking.LineItem, nights int) int {
	return item.Price * item.Quantity * nights
}

func formatDate(s string) string {
	for _, layout := range []string{time.DateOnly, time.RFC3339} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format("02 Jan 2006")
		}
	}

	if s == "" {
		return "N/A"
	}

	return s
}

// FormatAmount groups digits the Indian way: 1234567 becomes 12,34,567.
func FormatAmount(n int) string {
	sign := ""
	if n < 0 {
		sign, n = "-", -n
	}

	digits := strconv.Itoa(n)
	if len(digits) <= 3 { //nolint:gomnd
		return sign + digits
	}

	head, tail := digits[:len(digits)-3], digits[len(digits)-3:]

	var groups []string
	for len(head) > 2 { //nolint:gomnd
		groups = append([]string{head[len(head)-2:]}, groups...)
		head = head[:len(head)-2]
	}

	groups = append([]string{head}, groups...)

	return sign + strings.Join(groups, ",") + "," + tail
}
