package handler

// dto.go holds the JSON response shapes shared by the public, customer,
// vendor and admin handlers, together with their mapping helpers.

import (
	"time"

	"github.com/mzohaibq/roomstay/internal/model"
)

type propertyResp struct {
	ID          uint64  `json:"id"`
	OwnerID     uint64  `json:"owner_id"`
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
	City        string  `json:"city"`
	Address     *string `json:"address,omitempty"`
	Currency    string  `json:"currency"`
	IsActive    bool    `json:"is_active"`
}

func toPropertyResp(p *model.Property) propertyResp {
	return propertyResp{
		ID:          p.ID,
		OwnerID:     p.OwnerID,
		Name:        p.Name,
		Description: p.Description,
		City:        p.City,
		Address:     p.Address,
		Currency:    p.Currency,
		IsActive:    p.IsActive,
	}
}

func toPropertyList(ps []*model.Property) []propertyResp {
	out := make([]propertyResp, 0, len(ps))
	for _, p := range ps {
		out = append(out, toPropertyResp(p))
	}
	return out
}

type categoryResp struct {
	ID         uint64  `json:"id"`
	PropertyID uint64  `json:"property_id"`
	Name       string  `json:"name"`
	MaxGuests  uint32  `json:"max_guests"`
	Beds       uint32  `json:"beds"`
	Bathrooms  uint32  `json:"bathrooms"`
	AreaSqm    *uint32 `json:"area_sqm,omitempty"`
	Price4h    int64   `json:"price_4h"`
	Price6h    int64   `json:"price_6h"`
	Price12h   int64   `json:"price_12h"`
	Price24h   int64   `json:"price_24h"`
}

func toCategoryResp(rc *model.RoomCategory) categoryResp {
	return categoryResp{
		ID:         rc.ID,
		PropertyID: rc.PropertyID,
		Name:       rc.Name,
		MaxGuests:  rc.MaxGuests,
		Beds:       rc.Beds,
		Bathrooms:  rc.Bathrooms,
		AreaSqm:    rc.AreaSqm,
		Price4h:    rc.Price4h,
		Price6h:    rc.Price6h,
		Price12h:   rc.Price12h,
		Price24h:   rc.Price24h,
	}
}

func toCategoryList(rcs []*model.RoomCategory) []categoryResp {
	out := make([]categoryResp, 0, len(rcs))
	for _, rc := range rcs {
		out = append(out, toCategoryResp(rc))
	}
	return out
}

type bookingResp struct {
	ID             uint64    `json:"id"`
	Reference      string    `json:"reference"`
	RoomCategoryID uint64    `json:"room_category_id"`
	UserID         *uint64   `json:"user_id,omitempty"`
	CustomerName   string    `json:"customer_name"`
	CustomerEmail  string    `json:"customer_email"`
	CustomerPhone  *string   `json:"customer_phone,omitempty"`
	Guests         uint32    `json:"guests"`
	StayType       string    `json:"stay_type"`
	StartAt        time.Time `json:"start_at"`
	EndAt          time.Time `json:"end_at"`
	TotalPrice     int64     `json:"total_price"`
	Currency       string    `json:"currency"`
	PaymentMethod  string    `json:"payment_method"`
	Status         string    `json:"status"`
	CreatedAt      time.Time `json:"created_at"`
}

func toBookingResp(b *model.Booking) bookingResp {
	return bookingResp{
		ID:             b.ID,
		Reference:      b.Reference,
		RoomCategoryID: b.RoomCategoryID,
		UserID:         b.UserID,
		CustomerName:   b.CustomerName,
		CustomerEmail:  b.CustomerEmail,
		CustomerPhone:  b.CustomerPhone,
		Guests:         b.Guests,
		StayType:       b.StayType,
		StartAt:        b.StartAt,
		EndAt:          b.EndAt,
		TotalPrice:     b.TotalPrice,
		Currency:       b.Currency,
		PaymentMethod:  b.PaymentMethod,
		Status:         string(b.Status),
		CreatedAt:      b.CreatedAt,
	}
}

func toBookingList(bs []*model.Booking) []bookingResp {
	out := make([]bookingResp, 0, len(bs))
	for _, b := range bs {
		out = append(out, toBookingResp(b))
	}
	return out
}
