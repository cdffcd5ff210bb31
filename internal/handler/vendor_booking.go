package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/mzohaibq/roomstay/internal/booking"
	"github.com/mzohaibq/roomstay/internal/metrics"
	"github.com/mzohaibq/roomstay/internal/middleware"
	"github.com/mzohaibq/roomstay/internal/repository"
	"github.com/mzohaibq/roomstay/internal/service"
)

// VendorBookingHandler lets vendors see and progress the bookings on their
// own properties.
type VendorBookingHandler struct {
	Bookings  *repository.BookingRepo
	Publisher *service.EventPublisher // optional
}

func NewVendorBookingHandler(b *repository.BookingRepo, p *service.EventPublisher) *VendorBookingHandler {
	return &VendorBookingHandler{Bookings: b, Publisher: p}
}

// ListByProperty returns the bookings across a property the vendor owns,
// optionally filtered by ?status=.
func (h *VendorBookingHandler) ListByProperty(c echo.Context) error {
	uid, ok := middleware.CurrentUserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	propertyID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid property id"})
	}
	status := strings.ToUpper(strings.TrimSpace(c.QueryParam("status")))
	if status != "" {
		if _, ok := booking.ParseStatus(status); !ok {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown status"})
		}
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	bs, err := h.Bookings.ListByProperty(ctx, propertyID, uid, status)
	switch {
	case err == nil:
		return c.JSON(http.StatusOK, echo.Map{"bookings": toBookingList(bs)})
	case errors.Is(err, repository.ErrPropertyNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "property not found"})
	case errors.Is(err, repository.ErrForbidden):
		return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
	default:
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
}

type statusChangeReq struct {
	Status string `json:"status" validate:"required"`
}

// UpdateStatus moves a booking on the vendor's property through the
// lifecycle (confirm, complete, cancel).  Illegal transitions are refused.
func (h *VendorBookingHandler) UpdateStatus(c echo.Context) error {
	uid, ok := middleware.CurrentUserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := strconv.ParseUint(c.Param("bookingId"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid booking id"})
	}
	var req statusChangeReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	target, ok := booking.ParseStatus(strings.ToUpper(strings.TrimSpace(req.Status)))
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown status"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	b, err := h.Bookings.GetForOwner(ctx, id, uid)
	switch {
	case err == nil:
	case errors.Is(err, repository.ErrBookingNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "booking not found"})
	case errors.Is(err, repository.ErrForbidden):
		return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
	default:
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}

	if !booking.CanTransition(b.Status, target) {
		return c.JSON(http.StatusConflict, echo.Map{"error": "invalid status transition"})
	}

	from := b.Status
	if err := h.Bookings.UpdateStatus(ctx, b.ID, from, target); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "booking changed concurrently, retry"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update status failed"})
	}
	b.Status = target

	metrics.StatusTransitions.WithLabelValues(string(from), string(target)).Inc()
	if h.Publisher != nil {
		h.Publisher.BookingStatusChanged(ctx, b, from)
	}
	return c.JSON(http.StatusOK, toBookingResp(b))
}
