package model

import "time"

// RoomCategory is a bookable unit type within a property (e.g. "Deluxe
// Suite") with its own capacity and tiered hourly pricing.  The four price
// fields are flat amounts in the property's currency for the fixed stay
// durations of 4, 6, 12 and 24 hours; there is no interpolation between
// tiers.  Identity (ID, PropertyID) is immutable, pricing and capacity are
// mutable by the property's owner.
type RoomCategory struct {
	ID         uint64
	PropertyID uint64
	Name       string
	MaxGuests  uint32
	Beds       uint32
	Bathrooms  uint32
	AreaSqm    *uint32 // nil when unspecified
	Price4h    int64
	Price6h    int64
	Price12h   int64
	Price24h   int64
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
