package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/mzohaibq/roomstay/internal/middleware"
	"github.com/mzohaibq/roomstay/internal/model"
	"github.com/mzohaibq/roomstay/internal/repository"
)

// VendorRoomCategoryHandler serves the room category CRUD nested under a
// vendor's properties.
type VendorRoomCategoryHandler struct {
	Categories *repository.RoomCategoryRepo
	Properties *repository.PropertyRepo
}

func NewVendorRoomCategoryHandler(rc *repository.RoomCategoryRepo, p *repository.PropertyRepo) *VendorRoomCategoryHandler {
	return &VendorRoomCategoryHandler{Categories: rc, Properties: p}
}

type roomCategoryReq struct {
	Name      string  `json:"name" validate:"required"`
	MaxGuests uint32  `json:"max_guests" validate:"required,min=1"`
	Beds      uint32  `json:"beds"`
	Bathrooms uint32  `json:"bathrooms"`
	AreaSqm   *uint32 `json:"area_sqm"`
	Price4h   int64   `json:"price_4h" validate:"min=0"`
	Price6h   int64   `json:"price_6h" validate:"min=0"`
	Price12h  int64   `json:"price_12h" validate:"min=0"`
	Price24h  int64   `json:"price_24h" validate:"min=0"`
}

// Create adds a room category to one of the vendor's properties.
func (h *VendorRoomCategoryHandler) Create(c echo.Context) error {
	uid, ok := middleware.CurrentUserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	propertyID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid property id"})
	}
	var req roomCategoryReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name, max_guests and non-negative prices required"})
	}

	rc := &model.RoomCategory{
		PropertyID: propertyID,
		Name:       strings.TrimSpace(req.Name),
		MaxGuests:  req.MaxGuests,
		Beds:       req.Beds,
		Bathrooms:  req.Bathrooms,
		AreaSqm:    req.AreaSqm,
		Price4h:    req.Price4h,
		Price6h:    req.Price6h,
		Price12h:   req.Price12h,
		Price24h:   req.Price24h,
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	switch err := h.Categories.Create(ctx, rc, uid); {
	case err == nil:
		return c.JSON(http.StatusCreated, toCategoryResp(rc))
	case errors.Is(err, repository.ErrPropertyNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "property not found"})
	case errors.Is(err, repository.ErrForbidden):
		return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
	default:
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create room category failed"})
	}
}

// List returns the categories of one of the vendor's properties.
func (h *VendorRoomCategoryHandler) List(c echo.Context) error {
	uid, ok := middleware.CurrentUserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	propertyID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid property id"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	if _, err := h.Properties.GetByIDAndOwner(ctx, propertyID, uid); err != nil {
		if errors.Is(err, repository.ErrPropertyNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "property not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}

	cats, err := h.Categories.ListByProperty(ctx, propertyID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"room_categories": toCategoryList(cats)})
}

// Update replaces the mutable fields of a category.
func (h *VendorRoomCategoryHandler) Update(c echo.Context) error {
	uid, ok := middleware.CurrentUserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := strconv.ParseUint(c.Param("categoryId"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid room category id"})
	}
	var req roomCategoryReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name, max_guests and non-negative prices required"})
	}

	rc := &model.RoomCategory{
		ID:        id,
		Name:      strings.TrimSpace(req.Name),
		MaxGuests: req.MaxGuests,
		Beds:      req.Beds,
		Bathrooms: req.Bathrooms,
		AreaSqm:   req.AreaSqm,
		Price4h:   req.Price4h,
		Price6h:   req.Price6h,
		Price12h:  req.Price12h,
		Price24h:  req.Price24h,
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	switch err := h.Categories.Update(ctx, rc, uid); {
	case err == nil:
		return c.JSON(http.StatusOK, toCategoryResp(rc))
	case errors.Is(err, repository.ErrRoomCategoryNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "room category not found"})
	case errors.Is(err, repository.ErrForbidden):
		return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
	default:
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update room category failed"})
	}
}

// Delete removes a category.  Refused while live bookings reference it;
// price changes never touch existing bookings, deletion must not either.
func (h *VendorRoomCategoryHandler) Delete(c echo.Context) error {
	uid, ok := middleware.CurrentUserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := strconv.ParseUint(c.Param("categoryId"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid room category id"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	switch err := h.Categories.Delete(ctx, id, uid); {
	case err == nil:
		return c.JSON(http.StatusOK, echo.Map{"message": "room category deleted"})
	case errors.Is(err, repository.ErrRoomCategoryNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "room category not found"})
	case errors.Is(err, repository.ErrForbidden):
		return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
	case errors.Is(err, repository.ErrConflict):
		return c.JSON(http.StatusConflict, echo.Map{"error": "room category has live bookings"})
	default:
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete room category failed"})
	}
}
