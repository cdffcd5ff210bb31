package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/mzohaibq/roomstay/internal/booking"
	"github.com/mzohaibq/roomstay/internal/metrics"
	"github.com/mzohaibq/roomstay/internal/middleware"
	"github.com/mzohaibq/roomstay/internal/model"
	"github.com/mzohaibq/roomstay/internal/repository"
	"github.com/mzohaibq/roomstay/internal/service"
)

// BookingHandler serves booking creation (guests and signed-in customers),
// the guest lookup endpoint and the customer's own-booking routes.
type BookingHandler struct {
	Engine    *booking.Engine
	Bookings  *repository.BookingRepo
	Publisher *service.EventPublisher // optional
}

func NewBookingHandler(e *booking.Engine, b *repository.BookingRepo, p *service.EventPublisher) *BookingHandler {
	return &BookingHandler{Engine: e, Bookings: b, Publisher: p}
}

// createBookingReq deliberately has no price field: the total is computed
// server-side from the category tier and anything a client sends is ignored.
type createBookingReq struct {
	RoomCategoryID uint64  `json:"room_category_id" validate:"required"`
	CustomerName   string  `json:"customer_name" validate:"required"`
	CustomerEmail  string  `json:"customer_email" validate:"required,email"`
	CustomerPhone  *string `json:"customer_phone"`
	Guests         uint32  `json:"guests" validate:"required,min=1"`
	StayType       string  `json:"stay_type" validate:"required"`
	StartAt        string  `json:"start_at" validate:"required"`
	EndAt          string  `json:"end_at" validate:"required"`
	Currency       string  `json:"currency" validate:"omitempty,len=3"`
	PaymentMethod  string  `json:"payment_method"`
}

// Create admits a new booking.  Anonymous requests produce guest bookings;
// with a Bearer token the booking is attached to the caller.
func (h *BookingHandler) Create(c echo.Context) error {
	var req createBookingReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "missing or invalid fields"})
	}
	start, err := time.Parse(time.RFC3339, req.StartAt)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "start_at must be RFC 3339"})
	}
	end, err := time.Parse(time.RFC3339, req.EndAt)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "end_at must be RFC 3339"})
	}

	var userID *uint64
	if uid, ok := middleware.CurrentUserID(c); ok {
		userID = &uid
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	b, err := h.Engine.Admit(ctx, &booking.Request{
		RoomCategoryID: req.RoomCategoryID,
		UserID:         userID,
		CustomerName:   strings.TrimSpace(req.CustomerName),
		CustomerEmail:  strings.ToLower(strings.TrimSpace(req.CustomerEmail)),
		CustomerPhone:  req.CustomerPhone,
		Guests:         req.Guests,
		StayType:       req.StayType,
		StartAt:        start,
		EndAt:          end,
		Currency:       strings.ToUpper(strings.TrimSpace(req.Currency)),
		PaymentMethod:  req.PaymentMethod,
	})
	if err != nil {
		return admissionError(c, err)
	}

	metrics.BookingsCreated.Inc()
	return c.JSON(http.StatusCreated, toBookingResp(b))
}

// admissionError maps engine sentinels onto HTTP responses.
func admissionError(c echo.Context, err error) error {
	var conflict *booking.ConflictError
	switch {
	case errors.As(err, &conflict):
		metrics.BookingConflicts.Inc()
		return c.JSON(http.StatusConflict, echo.Map{
			"error":                  "room not available for the selected period",
			"conflicting_booking_id": conflict.BookingID,
		})
	case errors.Is(err, booking.ErrRoomCategoryNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "room category not found"})
	case errors.Is(err, booking.ErrPropertyNotBookable):
		return c.JSON(http.StatusConflict, echo.Map{"error": "property is not accepting bookings"})
	case errors.Is(err, booking.ErrUnknownStayType),
		errors.Is(err, booking.ErrUnknownPaymentMethod),
		errors.Is(err, booking.ErrInvalidInterval),
		errors.Is(err, booking.ErrStartInPast),
		errors.Is(err, booking.ErrMissingCustomer),
		errors.Is(err, booking.ErrInvalidGuests),
		errors.Is(err, booking.ErrTooManyGuests):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": strings.TrimPrefix(err.Error(), "booking: ")})
	}
	return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create booking failed"})
}

// Lookup lets a guest retrieve their booking by reference plus the email it
// was made under.  Both must match; the reference alone is not enough.
func (h *BookingHandler) Lookup(c echo.Context) error {
	ref := strings.TrimSpace(c.QueryParam("reference"))
	email := strings.ToLower(strings.TrimSpace(c.QueryParam("email")))
	if ref == "" || email == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "reference and email required"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	b, err := h.Bookings.GetByReference(ctx, ref)
	if err != nil {
		if errors.Is(err, repository.ErrBookingNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "booking not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	if !strings.EqualFold(b.CustomerEmail, email) {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "booking not found"})
	}
	return c.JSON(http.StatusOK, toBookingResp(b))
}

// ListMine returns the authenticated customer's bookings, newest stay first.
func (h *BookingHandler) ListMine(c echo.Context) error {
	uid, ok := middleware.CurrentUserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	bs, err := h.Bookings.ListByUser(ctx, uid)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"bookings": toBookingList(bs)})
}

// GetMine returns one of the caller's bookings by id.
func (h *BookingHandler) GetMine(c echo.Context) error {
	uid, ok := middleware.CurrentUserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid booking id"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	b, err := h.Bookings.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrBookingNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "booking not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	if b.UserID == nil || *b.UserID != uid {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "booking not found"})
	}
	return c.JSON(http.StatusOK, toBookingResp(b))
}

// CancelMine cancels one of the caller's live bookings.  Cancelling frees
// the interval for re-booking immediately.
func (h *BookingHandler) CancelMine(c echo.Context) error {
	uid, ok := middleware.CurrentUserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid booking id"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	b, err := h.Bookings.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrBookingNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "booking not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	if b.UserID == nil || *b.UserID != uid {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "booking not found"})
	}
	if !booking.CanTransition(b.Status, model.BookingCancelled) {
		return c.JSON(http.StatusConflict, echo.Map{"error": "booking cannot be cancelled in its current state"})
	}

	from := b.Status
	if err := h.Bookings.UpdateStatus(ctx, b.ID, from, model.BookingCancelled); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "booking changed concurrently, retry"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "cancel failed"})
	}
	b.Status = model.BookingCancelled

	metrics.StatusTransitions.WithLabelValues(string(from), string(model.BookingCancelled)).Inc()
	if h.Publisher != nil {
		h.Publisher.BookingStatusChanged(ctx, b, from)
	}
	return c.JSON(http.StatusOK, toBookingResp(b))
}
