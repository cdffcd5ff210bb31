package handler

import (
	"database/sql"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/mzohaibq/roomstay/internal/booking"
	"github.com/mzohaibq/roomstay/internal/metrics"
	"github.com/mzohaibq/roomstay/internal/model"
	"github.com/mzohaibq/roomstay/internal/repository"
	"github.com/mzohaibq/roomstay/internal/service"
)

// AdminHandler serves the platform-wide admin surface: user and vendor
// management plus oversight over all bookings.
type AdminHandler struct {
	Users     *repository.UserRepo
	Bookings  *repository.BookingRepo
	Publisher *service.EventPublisher // optional
}

func NewAdminHandler(u *repository.UserRepo, b *repository.BookingRepo, p *service.EventPublisher) *AdminHandler {
	return &AdminHandler{Users: u, Bookings: b, Publisher: p}
}

// ListUsers returns all users, optionally filtered by ?role=.
func (h *AdminHandler) ListUsers(c echo.Context) error {
	role := strings.ToUpper(strings.TrimSpace(c.QueryParam("role")))
	switch role {
	case "", model.RoleAdmin, model.RoleVendor, model.RoleCustomer:
	default:
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown role"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	users, err := h.Users.List(ctx, role)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	out := make([]userPart, 0, len(users))
	for _, u := range users {
		out = append(out, userPart{ID: u.ID, Email: u.Email, Role: u.Role, VendorStatus: u.VendorStatus})
	}
	return c.JSON(http.StatusOK, echo.Map{"users": out})
}

// ListVendors returns all vendor accounts with their approval state.
func (h *AdminHandler) ListVendors(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	users, err := h.Users.List(ctx, model.RoleVendor)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	out := make([]userPart, 0, len(users))
	for _, u := range users {
		out = append(out, userPart{ID: u.ID, Email: u.Email, Role: u.Role, VendorStatus: u.VendorStatus})
	}
	return c.JSON(http.StatusOK, echo.Map{"vendors": out})
}

type vendorStatusReq struct {
	Status string `json:"status" validate:"required"`
}

// UpdateVendorStatus approves or suspends a vendor account.  Suspending
// takes the vendor's inventory off the public surface without touching
// existing bookings.
func (h *AdminHandler) UpdateVendorStatus(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid user id"})
	}
	var req vendorStatusReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	status := strings.ToUpper(strings.TrimSpace(req.Status))
	switch status {
	case model.VendorPending, model.VendorApproved, model.VendorSuspended:
	default:
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown vendor status"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	if err := h.Users.UpdateVendorStatus(ctx, id, status); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "vendor not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update vendor failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"id": id, "vendor_status": status})
}

// ListBookings returns every booking on the platform, optionally filtered by
// ?status=.
func (h *AdminHandler) ListBookings(c echo.Context) error {
	status := strings.ToUpper(strings.TrimSpace(c.QueryParam("status")))
	if status != "" {
		if _, ok := booking.ParseStatus(status); !ok {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown status"})
		}
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	bs, err := h.Bookings.ListAll(ctx, status)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"bookings": toBookingList(bs)})
}

// UpdateBookingStatus lets an admin progress any booking through the same
// lifecycle rules vendors are held to.
func (h *AdminHandler) UpdateBookingStatus(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
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

	b, err := h.Bookings.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrBookingNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "booking not found"})
		}
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
