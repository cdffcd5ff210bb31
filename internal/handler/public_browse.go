package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/mzohaibq/roomstay/internal/booking"
	"github.com/mzohaibq/roomstay/internal/repository"
)

// PublicHandler serves the unauthenticated browse and availability
// endpoints.
type PublicHandler struct {
	Properties *repository.PropertyRepo
	Categories *repository.RoomCategoryRepo
	Engine     *booking.Engine
}

func NewPublicHandler(p *repository.PropertyRepo, rc *repository.RoomCategoryRepo, e *booking.Engine) *PublicHandler {
	return &PublicHandler{Properties: p, Categories: rc, Engine: e}
}

// ListProperties returns properties currently accepting bookings, optionally
// filtered by ?city=.
func (h *PublicHandler) ListProperties(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	props, err := h.Properties.ListBookable(ctx, c.QueryParam("city"))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"properties": toPropertyList(props)})
}

// GetProperty returns one property with its room categories.  Deactivated
// properties are hidden from the public surface.
func (h *PublicHandler) GetProperty(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid property id"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	p, err := h.Properties.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrPropertyNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "property not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	if !p.IsActive {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "property not found"})
	}

	cats, err := h.Categories.ListByProperty(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"property":        toPropertyResp(p),
		"room_categories": toCategoryList(cats),
	})
}

// CheckAvailability reports whether a room category is free over
// [?start, ?end), both RFC 3339.  When taken, the conflicting booking id is
// included so a client can surface "taken until ...".
func (h *PublicHandler) CheckAvailability(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid room category id"})
	}
	start, err := time.Parse(time.RFC3339, c.QueryParam("start"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "start must be RFC 3339"})
	}
	end, err := time.Parse(time.RFC3339, c.QueryParam("end"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "end must be RFC 3339"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	conflictID, available, err := h.Engine.CheckAvailability(ctx, id, start, end)
	if err != nil {
		switch {
		case errors.Is(err, booking.ErrInvalidInterval):
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "end must be after start"})
		case errors.Is(err, booking.ErrRoomCategoryNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "room category not found"})
		case errors.Is(err, booking.ErrPropertyNotBookable):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "room category not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "availability check failed"})
	}
	if !available {
		return c.JSON(http.StatusOK, echo.Map{"available": false, "conflicting_booking_id": conflictID})
	}
	return c.JSON(http.StatusOK, echo.Map{"available": true})
}
