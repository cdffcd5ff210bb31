package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mzohaibq/roomstay/internal/booking"
	"github.com/mzohaibq/roomstay/internal/middleware"
	"github.com/mzohaibq/roomstay/internal/model"
	"github.com/mzohaibq/roomstay/internal/utils"
)

const testSecret = "test-secret"

// stubStore is an in-memory booking.Store for handler tests.
type stubStore struct {
	mu     sync.Mutex
	infos  map[uint64]*booking.CategoryInfo
	rows   []model.Booking
	nextID uint64
}

func newStubStore() *stubStore {
	s := &stubStore{infos: make(map[uint64]*booking.CategoryInfo)}
	s.infos[1] = &booking.CategoryInfo{
		Category: model.RoomCategory{
			ID: 1, MaxGuests: 4,
			Price4h: 2000, Price6h: 2800, Price12h: 4500, Price24h: 7000,
		},
		Currency: "PKR",
		Bookable: true,
	}
	return s
}

func (s *stubStore) RoomCategoryInfo(_ context.Context, id uint64) (*booking.CategoryInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	info, ok := s.infos[id]
	if !ok {
		return nil, booking.ErrRoomCategoryNotFound
	}
	return info, nil
}

func (s *stubStore) BookingsInRange(_ context.Context, categoryID uint64, from, to time.Time) ([]model.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []model.Booking
	for _, b := range s.rows {
		if b.RoomCategoryID == categoryID && b.Status != model.BookingCancelled &&
			b.StartAt.Before(to) && b.EndAt.After(from) {
			out = append(out, b)
		}
	}
	return out, nil
}

func (s *stubStore) CreateBooking(_ context.Context, b *model.Booking) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	b.ID = s.nextID
	s.rows = append(s.rows, *b)
	return nil
}

var handlerTestNow = time.Date(2026, 9, 1, 8, 0, 0, 0, time.UTC)

func newBookingApp(t *testing.T) (*echo.Echo, *stubStore) {
	t.Helper()
	store := newStubStore()
	engine := booking.NewEngine(store, booking.WithClock(func() time.Time { return handlerTestNow }))
	h := NewBookingHandler(engine, nil, nil)

	e := echo.New()
	e.Validator = NewValidator()
	e.POST("/v1/bookings", h.Create, middleware.OptionalAuth(testSecret))
	return e, store
}

func createPayload() map[string]any {
	return map[string]any{
		"room_category_id": 1,
		"customer_name":    "Ali Raza",
		"customer_email":   "ali@example.com",
		"guests":           2,
		"stay_type":        "12h",
		"start_at":         "2026-09-01T10:00:00Z",
		"end_at":           "2026-09-01T22:00:00Z",
	}
}

func postJSON(e *echo.Echo, path string, payload map[string]any, auth string) *httptest.ResponseRecorder {
	body, _ := json.Marshal(payload)
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(string(body)))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestCreateBookingGuest(t *testing.T) {
	e, _ := newBookingApp(t)

	rec := postJSON(e, "/v1/bookings", createPayload(), "")
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var resp bookingResp
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Reference)
	assert.Nil(t, resp.UserID)
	assert.Equal(t, "PENDING", resp.Status)
	assert.Equal(t, int64(4500), resp.TotalPrice)
	assert.Equal(t, "PKR", resp.Currency)
}

func TestCreateBookingAttachesUser(t *testing.T) {
	e, _ := newBookingApp(t)

	tok, err := utils.NewAccessToken(testSecret, 42, model.RoleCustomer, 5)
	require.NoError(t, err)

	rec := postJSON(e, "/v1/bookings", createPayload(), "Bearer "+tok.Token)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var resp bookingResp
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotNil(t, resp.UserID)
	assert.Equal(t, uint64(42), *resp.UserID)
}

func TestCreateBookingIgnoresClientPrice(t *testing.T) {
	e, _ := newBookingApp(t)

	payload := createPayload()
	payload["total_price"] = 1 // must be discarded; price is server-computed
	rec := postJSON(e, "/v1/bookings", payload, "")
	require.Equal(t, http.StatusCreated, rec.Code)

	var resp bookingResp
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, int64(4500), resp.TotalPrice)
}

func TestCreateBookingCurrency(t *testing.T) {
	e, _ := newBookingApp(t)

	// Omitted currency falls back to the property's.
	rec := postJSON(e, "/v1/bookings", createPayload(), "")
	require.Equal(t, http.StatusCreated, rec.Code)
	var resp bookingResp
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "PKR", resp.Currency)

	payload := createPayload()
	payload["currency"] = "usd"
	payload["start_at"] = "2026-09-02T10:00:00Z"
	payload["end_at"] = "2026-09-02T22:00:00Z"
	rec = postJSON(e, "/v1/bookings", payload, "")
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "USD", resp.Currency)

	payload = createPayload()
	payload["currency"] = "rupees"
	rec = postJSON(e, "/v1/bookings", payload, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateBookingConflict(t *testing.T) {
	e, _ := newBookingApp(t)

	require.Equal(t, http.StatusCreated, postJSON(e, "/v1/bookings", createPayload(), "").Code)

	rec := postJSON(e, "/v1/bookings", createPayload(), "")
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), "conflicting_booking_id")
}

func TestCreateBookingRejections(t *testing.T) {
	e, _ := newBookingApp(t)

	cases := []struct {
		name   string
		mutate func(map[string]any)
		want   int
	}{
		{"unknown category", func(p map[string]any) { p["room_category_id"] = 99 }, http.StatusNotFound},
		{"unknown stay type", func(p map[string]any) { p["stay_type"] = "8h" }, http.StatusBadRequest},
		{"missing email", func(p map[string]any) { delete(p, "customer_email") }, http.StatusBadRequest},
		{"zero guests", func(p map[string]any) { p["guests"] = 0 }, http.StatusBadRequest},
		{"too many guests", func(p map[string]any) { p["guests"] = 9 }, http.StatusBadRequest},
		{"bad start format", func(p map[string]any) { p["start_at"] = "tomorrow" }, http.StatusBadRequest},
		{"end before start", func(p map[string]any) { p["end_at"] = "2026-09-01T09:00:00Z" }, http.StatusBadRequest},
		{"start in past", func(p map[string]any) {
			p["start_at"] = "2026-08-31T10:00:00Z"
			p["end_at"] = "2026-08-31T22:00:00Z"
		}, http.StatusBadRequest},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			payload := createPayload()
			tc.mutate(payload)
			rec := postJSON(e, "/v1/bookings", payload, "")
			assert.Equal(t, tc.want, rec.Code, rec.Body.String())
		})
	}
}
