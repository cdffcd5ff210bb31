package model

import "time"

// Property represents a venue (hotel, guesthouse, short-stay building) owned
// by a vendor.  A property contains one or more room categories.  It is
// bookable only while IsActive is true and its owner is an approved vendor.
//
// Fields:
//  ID          – primary key identifier.
//  OwnerID     – user ID of the owning vendor.
//  Name        – property name, unique per owner.
//  Description – optional free-text description.
//  City        – city the property is located in.
//  Address     – optional street address.
//  Currency    – ISO-ish currency code all room prices are quoted in.
//  IsActive    – whether the property accepts bookings.
//  CreatedAt   – creation timestamp.
//  UpdatedAt   – last update timestamp.
type Property struct {
	ID          uint64
	OwnerID     uint64
	Name        string
	Description *string
	City        string
	Address     *string
	Currency    string
	IsActive    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
