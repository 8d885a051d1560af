package web

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-json"

	"github.com/avstrong/lodgix/internal/booking"
	"github.com/avstrong/lodgix/internal/catalog"
	"github.com/avstrong/lodgix/internal/favorite"
	receiptid "github.com/avstrong/lodgix/internal/idgen/receipt"
	"github.com/avstrong/lodgix/internal/logger"
	"github.com/avstrong/lodgix/internal/migration"
	"github.com/avstrong/lodgix/internal/storage/memory"
)

const testGuest = "42"

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	ctx := context.Background()
	l := logger.Nop()

	db := memory.New(memory.Config{L: l})
	if err := migration.Up(ctx, l, db); err != nil {
		t.Fatalf("migration.Up() error = %v", err)
	}

	hotels := catalog.New(db)
	manager := booking.New(l, db, hotels, receiptid.New())

	srv, err := New(ctx, Conf{
		L:                 l,
		Host:              "localhost",
		Port:              "0",
		ReadHeaderTimeout: time.Second,
		LivenessEndpoint:  "/liveness",
		CORSOrigins:       []string{"*"},
		MaxUploadBytes:    1 << 20,
	}, manager, hotels, favorite.New(l, db, hotels))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)

	return ts
}

type client struct {
	t     *testing.T
	base  string
	guest string
}

func (c *client) do(method, path, contentType string, body []byte) *http.Response {
	c.t.Helper()

	req, err := http.NewRequestWithContext(context.Background(), method, c.base+path, bytes.NewReader(body))
	if err != nil {
		c.t.Fatalf("NewRequest() error = %v", err)
	}

	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	if c.guest != "" {
		req.Header.Set(guestHeader, c.guest)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		c.t.Fatalf("%s %s error = %v", method, path, err)
	}

	c.t.Cleanup(func() { resp.Body.Close() })

	return resp
}

func (c *client) json(method, path string, in any, wantStatus int, out any) {
	c.t.Helper()

	var body []byte

	if in != nil {
		var err error
		if body, err = json.Marshal(in); err != nil {
			c.t.Fatalf("marshal request: %v", err)
		}
	}

	resp := c.do(method, path, "application/json", body)
	if resp.StatusCode != wantStatus {
		c.t.Fatalf("%s %s status = %d, want %d", method, path, resp.StatusCode, wantStatus)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			c.t.Fatalf("decode %s %s response: %v", method, path, err)
		}
	}
}

func (c *client) finalize(draftID string, method booking.PaymentMethod, receiptName string) *http.Response {
	c.t.Helper()

	var buf bytes.Buffer

	mw := multipart.NewWriter(&buf)
	_ = mw.WriteField("paymentMethod", string(method))

	if receiptName != "" {
		fw, err := mw.CreateFormFile("receipt", receiptName)
		if err != nil {
			c.t.Fatalf("CreateFormFile() error = %v", err)
		}

		_, _ = fw.Write([]byte("%PDF-1.4 transfer"))
	}

	_ = mw.Close()

	return c.do(http.MethodPost, "/api/drafts/v1/"+draftID+"/finalize", mw.FormDataContentType(), buf.Bytes())
}

// paymentStage opens a draft for hotel 1 with two deluxe rooms for three nights.
func (c *client) paymentStage() string {
	c.t.Helper()

	var view booking.DraftView

	c.json(http.MethodPost, "/api/drafts/v1", map[string]string{"hotelId": "1"}, http.StatusCreated, &view)

	id := view.Draft.ID

	c.json(http.MethodPatch, "/api/drafts/v1/"+id, map[string]string{
		"name":     "Asha Rao",
		"email":    "asha@example.com",
		"phone":    "+91 98200 00000",
		"checkIn":  "2024-06-01",
		"checkOut": "2024-06-04",
	}, http.StatusOK, nil)

	c.json(http.MethodPut, "/api/drafts/v1/"+id+"/rooms/deluxe", map[string]int{"quantity": 2}, http.StatusOK, &view)

	if view.Quote.Nights != 3 || view.Quote.Total != 75500 {
		c.t.Fatalf("Unexpected quote %+v", view.Quote)
	}

	c.json(http.MethodPost, "/api/drafts/v1/"+id+"/submit", nil, http.StatusOK, &view)

	if view.Draft.Stage != booking.StagePayment {
		c.t.Fatalf("Stage = %s, want payment", view.Draft.Stage)
	}

	return id
}

func TestLiveness(t *testing.T) {
	ts := newTestServer(t)
	c := &client{t: t, base: ts.URL}

	if resp := c.do(http.MethodGet, "/liveness", "", nil); resp.StatusCode != http.StatusNoContent {
		t.Errorf("status = %d, want 204", resp.StatusCode)
	}

	if resp := c.do(http.MethodGet, "/metrics", "", nil); resp.StatusCode != http.StatusOK {
		t.Errorf("metrics status = %d, want 200", resp.StatusCode)
	}
}

func TestSearchHotels(t *testing.T) {
	ts := newTestServer(t)
	c := &client{t: t, base: ts.URL}

	var out hotelsResponse

	c.json(http.MethodGet, "/api/hotels/v1?sort=price-high&amenities=spa,gym", nil, http.StatusOK, &out)

	if out.Count != 2 || out.Hotels[0].ID != "3" || out.Hotels[1].ID != "1" {
		t.Errorf("Unexpected hotels %+v", out.Hotels)
	}

	c.json(http.MethodGet, "/api/hotels/v1?sort=cheapest", nil, http.StatusBadRequest, nil)
	c.json(http.MethodGet, "/api/hotels/v1?minPrice=abc", nil, http.StatusBadRequest, nil)
	c.json(http.MethodGet, "/api/hotels/v1/2", nil, http.StatusOK, nil)
	c.json(http.MethodGet, "/api/hotels/v1/404", nil, http.StatusNotFound, nil)
}

func TestGuestRequired(t *testing.T) {
	ts := newTestServer(t)
	c := &client{t: t, base: ts.URL}

	c.json(http.MethodPost, "/api/drafts/v1", map[string]string{"hotelId": "1"}, http.StatusUnauthorized, nil)
	c.json(http.MethodGet, "/api/bookings/v1", nil, http.StatusUnauthorized, nil)
	c.json(http.MethodPut, "/api/favorites/v1/1", nil, http.StatusUnauthorized, nil)
}

func TestFavorites(t *testing.T) {
	ts := newTestServer(t)
	c := &client{t: t, base: ts.URL, guest: testGuest}

	c.json(http.MethodPut, "/api/favorites/v1/3", nil, http.StatusNoContent, nil)
	c.json(http.MethodPut, "/api/favorites/v1/1", nil, http.StatusNoContent, nil)
	c.json(http.MethodPut, "/api/favorites/v1/404", nil, http.StatusNotFound, nil)

	var out hotelsResponse

	c.json(http.MethodGet, "/api/favorites/v1", nil, http.StatusOK, &out)

	if out.Count != 2 || out.Hotels[0].ID != "3" || out.Hotels[1].ID != "1" {
		t.Errorf("Unexpected favorites %+v", out.Hotels)
	}

	c.json(http.MethodDelete, "/api/favorites/v1/3", nil, http.StatusNoContent, nil)

	var history historyResponse

	c.json(http.MethodGet, "/api/bookings/v1", nil, http.StatusOK, &history)

	if history.Favorites != 1 {
		t.Errorf("History favorites = %d, want 1", history.Favorites)
	}
}

func TestCashBookingFlow(t *testing.T) {
	ts := newTestServer(t)
	c := &client{t: t, base: ts.URL, guest: testGuest}

	id := c.paymentStage()

	resp := c.finalize(id, booking.PaymentCash, "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("finalize status = %d, want 200", resp.StatusCode)
	}

	var b booking.FinalizedBooking
	if err := json.NewDecoder(resp.Body).Decode(&b); err != nil {
		t.Fatalf("decode booking: %v", err)
	}

	if b.Status != booking.StatusConfirmed || b.TotalAmount != 75500 || !strings.HasPrefix(b.ReceiptID, "HTL") {
		t.Errorf("Unexpected booking %+v", b)
	}

	var history historyResponse

	c.json(http.MethodGet, "/api/bookings/v1?status=confirmed", nil, http.StatusOK, &history)

	if history.Summary.Total != 1 || history.Bookings[0].ReceiptID != b.ReceiptID {
		t.Errorf("Unexpected history %+v", history)
	}

	text := c.do(http.MethodGet, "/api/bookings/v1/"+b.ReceiptID+"/receipt", "", nil)

	var buf bytes.Buffer
	_, _ = buf.ReadFrom(text.Body)

	if !strings.Contains(buf.String(), "BOOKING RECEIPT") || !strings.Contains(buf.String(), b.ReceiptID) {
		t.Errorf("Unexpected text receipt:\n%s", buf.String())
	}

	pdf := c.do(http.MethodGet, "/api/bookings/v1/"+b.ReceiptID+"/receipt?format=pdf", "", nil)
	if ct := pdf.Header.Get("Content-Type"); ct != "application/pdf" {
		t.Errorf("Content-Type = %q, want application/pdf", ct)
	}

	c.json(http.MethodGet, "/api/bookings/v1/"+b.ReceiptID+"/receipt?format=docx", nil, http.StatusBadRequest, nil)

	other := &client{t: t, base: ts.URL, guest: "7"}
	other.json(http.MethodGet, "/api/bookings/v1/"+b.ReceiptID, nil, http.StatusNotFound, nil)
	other.json(http.MethodGet, "/api/drafts/v1/"+id, nil, http.StatusNotFound, nil)
}

func TestBankTransferNeedsReceipt(t *testing.T) {
	ts := newTestServer(t)
	c := &client{t: t, base: ts.URL, guest: testGuest}

	id := c.paymentStage()

	resp := c.finalize(id, booking.PaymentBank, "")
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("finalize status = %d, want 400", resp.StatusCode)
	}

	var errResp errorResponse
	if err := json.NewDecoder(resp.Body).Decode(&errResp); err != nil {
		t.Fatalf("decode error: %v", err)
	}

	if len(errResp.Fields["receipt"]) == 0 {
		t.Errorf("Expected receipt field error, got %+v", errResp)
	}

	var history historyResponse

	c.json(http.MethodGet, "/api/bookings/v1", nil, http.StatusOK, &history)

	if history.Summary.Total != 0 {
		t.Errorf("Expected no bookings, got %d", history.Summary.Total)
	}

	resp = c.finalize(id, booking.PaymentBank, "transfer.pdf")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("finalize with receipt status = %d, want 200", resp.StatusCode)
	}

	var b booking.FinalizedBooking
	if err := json.NewDecoder(resp.Body).Decode(&b); err != nil {
		t.Fatalf("decode booking: %v", err)
	}

	if b.Status != booking.StatusPending || b.ReceiptProof != "transfer.pdf" {
		t.Errorf("Unexpected booking %+v", b)
	}
}

func TestDraftErrors(t *testing.T) {
	ts := newTestServer(t)
	c := &client{t: t, base: ts.URL, guest: testGuest}

	var view booking.DraftView

	c.json(http.MethodPost, "/api/drafts/v1", map[string]string{"hotelId": "1"}, http.StatusCreated, &view)

	id := view.Draft.ID

	c.json(http.MethodPost, "/api/drafts/v1/"+id+"/finalize", map[string]string{"paymentMethod": "cash"}, http.StatusConflict, nil)
	c.json(http.MethodPost, "/api/drafts/v1/"+id+"/back", nil, http.StatusConflict, nil)
	c.json(http.MethodPost, "/api/drafts/v1/"+id+"/submit", nil, http.StatusBadRequest, nil)
	c.json(http.MethodPut, "/api/drafts/v1/"+id+"/rooms/deluxe", map[string]int{"quantity": -1}, http.StatusBadRequest, nil)
	c.json(http.MethodPut, "/api/drafts/v1/"+id+"/rooms/deluxe", map[string]string{}, http.StatusBadRequest, nil)
	c.json(http.MethodPut, "/api/drafts/v1/"+id+"/rooms/ordinary", map[string]int{"quantity": 1 << 61}, http.StatusBadRequest, nil)
	c.json(http.MethodPost, "/api/drafts/v1", map[string]string{"hotelId": "404"}, http.StatusNotFound, nil)
	c.json(http.MethodPost, "/api/drafts/v1", map[string]string{}, http.StatusBadRequest, nil)

	c.json(http.MethodDelete, "/api/drafts/v1/"+id, nil, http.StatusNoContent, nil)
	c.json(http.MethodGet, "/api/drafts/v1/"+id, nil, http.StatusNotFound, nil)
}
