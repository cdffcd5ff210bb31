package handler

import (
	"database/sql"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/mzohaibq/roomstay/internal/middleware"
	"github.com/mzohaibq/roomstay/internal/model"
	"github.com/mzohaibq/roomstay/internal/repository"
)

// VendorPropertyHandler serves the property CRUD used by approved vendors.
type VendorPropertyHandler struct {
	Properties      *repository.PropertyRepo
	DefaultCurrency string
}

func NewVendorPropertyHandler(p *repository.PropertyRepo, defaultCurrency string) *VendorPropertyHandler {
	return &VendorPropertyHandler{Properties: p, DefaultCurrency: defaultCurrency}
}

type propertyReq struct {
	Name        string  `json:"name" validate:"required"`
	Description *string `json:"description"`
	City        string  `json:"city" validate:"required"`
	Address     *string `json:"address"`
	Currency    string  `json:"currency"`
	IsActive    *bool   `json:"is_active"`
}

// Create registers a new property under the calling vendor.  Properties
// start active unless the request says otherwise.
func (h *VendorPropertyHandler) Create(c echo.Context) error {
	uid, ok := middleware.CurrentUserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req propertyReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name and city required"})
	}

	currency := strings.ToUpper(strings.TrimSpace(req.Currency))
	if currency == "" {
		currency = h.DefaultCurrency
	}
	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}
	p := &model.Property{
		OwnerID:     uid,
		Name:        strings.TrimSpace(req.Name),
		Description: req.Description,
		City:        strings.TrimSpace(req.City),
		Address:     req.Address,
		Currency:    currency,
		IsActive:    active,
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	if err := h.Properties.Create(ctx, p); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create property failed"})
	}
	return c.JSON(http.StatusCreated, toPropertyResp(p))
}

// List returns all properties of the calling vendor, including inactive
// ones.
func (h *VendorPropertyHandler) List(c echo.Context) error {
	uid, ok := middleware.CurrentUserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	props, err := h.Properties.ListByOwner(ctx, uid)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"properties": toPropertyList(props)})
}

// Get returns one of the vendor's own properties.
func (h *VendorPropertyHandler) Get(c echo.Context) error {
	uid, ok := middleware.CurrentUserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid property id"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	p, err := h.Properties.GetByIDAndOwner(ctx, id, uid)
	if err != nil {
		if errors.Is(err, repository.ErrPropertyNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "property not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, toPropertyResp(p))
}

// Update replaces the mutable fields of one of the vendor's properties.
func (h *VendorPropertyHandler) Update(c echo.Context) error {
	uid, ok := middleware.CurrentUserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid property id"})
	}
	var req propertyReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name and city required"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	existing, err := h.Properties.GetByIDAndOwner(ctx, id, uid)
	if err != nil {
		if errors.Is(err, repository.ErrPropertyNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "property not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}

	currency := strings.ToUpper(strings.TrimSpace(req.Currency))
	if currency == "" {
		currency = existing.Currency
	}
	active := existing.IsActive
	if req.IsActive != nil {
		active = *req.IsActive
	}
	p := &model.Property{
		ID:          id,
		OwnerID:     uid,
		Name:        strings.TrimSpace(req.Name),
		Description: req.Description,
		City:        strings.TrimSpace(req.City),
		Address:     req.Address,
		Currency:    currency,
		IsActive:    active,
	}
	if err := h.Properties.Update(ctx, p, uid); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "property not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update property failed"})
	}
	return c.JSON(http.StatusOK, toPropertyResp(p))
}

// Delete removes a property and its categories.  Refused while live
// bookings exist anywhere under it.
func (h *VendorPropertyHandler) Delete(c echo.Context) error {
	uid, ok := middleware.CurrentUserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid property id"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	switch err := h.Properties.DeleteByIDAndOwner(ctx, id, uid); {
	case err == nil:
		return c.JSON(http.StatusOK, echo.Map{"message": "property deleted"})
	case errors.Is(err, sql.ErrNoRows):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "property not found"})
	case errors.Is(err, repository.ErrForbidden):
		return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
	case errors.Is(err, repository.ErrConflict):
		return c.JSON(http.StatusConflict, echo.Map{"error": "property has live bookings"})
	default:
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete property failed"})
	}
}
