package model

import "time"

// Role names stored in users.role and carried in the JWT "role" claim.
const (
	RoleAdmin    = "ADMIN"
	RoleVendor   = "VENDOR"
	RoleCustomer = "CUSTOMER"
)

// Vendor approval states stored in users.vendor_status.  Only rows with
// role VENDOR carry a meaningful value; a vendor starts PENDING and must be
// APPROVED by an admin before their properties become bookable.
const (
	VendorPending   = "PENDING"
	VendorApproved  = "APPROVED"
	VendorSuspended = "SUSPENDED"
)

// User mirrors the `users` table.  Password hashes are bcrypt; JSON tags are
// omitted because handlers expose their own response types.
type User struct {
	ID           uint64
	Email        string
	PasswordHash string
	Role         string
	VendorStatus string // empty for non-vendors
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// RefreshToken mirrors the `refresh_tokens` table.  Only the SHA-256 hash of
// the raw token is stored.
type RefreshToken struct {
	ID        uint64
	UserID    uint64
	TokenHash string
	ExpiresAt time.Time
	RevokedAt *time.Time
	CreatedAt time.Time
}
