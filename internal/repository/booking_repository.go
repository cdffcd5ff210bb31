package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/mzohaibq/roomstay/internal/booking"
	"github.com/mzohaibq/roomstay/internal/model"
)

// BookingRepo encapsulates all database queries related to bookings.  It is
// also the production implementation of the admission engine's Store
// interface.
type BookingRepo struct {
	db *sql.DB
}

func NewBookingRepo(db *sql.DB) *BookingRepo {
	return &BookingRepo{db: db}
}

const bookingColumns = `id, reference, room_category_id, user_id, customer_name, customer_email, customer_phone,
	guests, stay_type, start_at, end_at, total_price, currency, payment_method, status, created_at, updated_at`

// RoomCategoryInfo resolves a category together with its property's currency
// and whether the property currently accepts bookings (active row and an
// approved vendor behind it).
func (r *BookingRepo) RoomCategoryInfo(ctx context.Context, id uint64) (*booking.CategoryInfo, error) {
	const q = `SELECT rc.id, rc.property_id, rc.name, rc.max_guests, rc.beds, rc.bathrooms, rc.area_sqm,
	                  rc.price_4h, rc.price_6h, rc.price_12h, rc.price_24h, rc.created_at, rc.updated_at,
	                  p.currency, (p.is_active = 1 AND u.vendor_status = 'APPROVED')
	           FROM room_categories rc
	           JOIN properties p ON p.id = rc.property_id
	           JOIN users u ON u.id = p.owner_id
	           WHERE rc.id = ?`
	var info booking.CategoryInfo
	rc := &info.Category
	err := r.db.QueryRowContext(ctx, q, id).Scan(
		&rc.ID, &rc.PropertyID, &rc.Name, &rc.MaxGuests, &rc.Beds, &rc.Bathrooms, &rc.AreaSqm,
		&rc.Price4h, &rc.Price6h, &rc.Price12h, &rc.Price24h, &rc.CreatedAt, &rc.UpdatedAt,
		&info.Currency, &info.Bookable)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, booking.ErrRoomCategoryNotFound
	}
	if err != nil {
		return nil, err
	}
	return &info, nil
}

// BookingsInRange returns non-cancelled bookings of a category whose
// intervals intersect [from, to).  The half-open comparison lives in the SQL
// so only candidates cross the wire; the engine re-applies the same rule over
// the rows.
func (r *BookingRepo) BookingsInRange(ctx context.Context, categoryID uint64, from, to time.Time) ([]model.Booking, error) {
	const q = "SELECT " + bookingColumns + ` FROM bookings
	           WHERE room_category_id = ? AND status <> 'CANCELLED' AND start_at < ? AND end_at > ?
	           ORDER BY start_at`
	rows, err := r.db.QueryContext(ctx, q, categoryID, to.UTC(), from.UTC())
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.Booking, 0)
	for rows.Next() {
		var b model.Booking
		if err := rows.Scan(scanBookingDest(&b)...); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

// CreateBooking inserts a booking row and fills in the generated ID and
// timestamps.
func (r *BookingRepo) CreateBooking(ctx context.Context, b *model.Booking) error {
	const q = `INSERT INTO bookings
	           (reference, room_category_id, user_id, customer_name, customer_email, customer_phone,
	            guests, stay_type, start_at, end_at, total_price, currency, payment_method, status)
	           VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q,
		b.Reference, b.RoomCategoryID, b.UserID, b.CustomerName, b.CustomerEmail, b.CustomerPhone,
		b.Guests, b.StayType, b.StartAt.UTC(), b.EndAt.UTC(), b.TotalPrice, b.Currency, b.PaymentMethod, b.Status)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	b.ID = uint64(id)
	return r.db.QueryRowContext(ctx,
		"SELECT created_at, updated_at FROM bookings WHERE id = ?", b.ID).
		Scan(&b.CreatedAt, &b.UpdatedAt)
}

// GetByID fetches a booking by id.
func (r *BookingRepo) GetByID(ctx context.Context, id uint64) (*model.Booking, error) {
	return r.getOne(ctx, "SELECT "+bookingColumns+" FROM bookings WHERE id = ?", id)
}

// GetByReference fetches a booking by its public reference code.  Used by
// the guest lookup endpoint, which additionally matches on customer email.
func (r *BookingRepo) GetByReference(ctx context.Context, reference string) (*model.Booking, error) {
	return r.getOne(ctx, "SELECT "+bookingColumns+" FROM bookings WHERE reference = ?", reference)
}

// GetForOwner fetches a booking only when it sits on a property owned by
// ownerID; otherwise ErrForbidden.
func (r *BookingRepo) GetForOwner(ctx context.Context, id, ownerID uint64) (*model.Booking, error) {
	b, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	var dbOwnerID uint64
	err = r.db.QueryRowContext(ctx,
		`SELECT p.owner_id FROM room_categories rc
		 JOIN properties p ON p.id = rc.property_id
		 WHERE rc.id = ?`, b.RoomCategoryID).Scan(&dbOwnerID)
	if err != nil {
		return nil, err
	}
	if dbOwnerID != ownerID {
		return nil, ErrForbidden
	}
	return b, nil
}

// ListByUser returns a customer's bookings, newest stay first.
func (r *BookingRepo) ListByUser(ctx context.Context, userID uint64) ([]*model.Booking, error) {
	return r.list(ctx,
		"SELECT "+bookingColumns+" FROM bookings WHERE user_id = ? ORDER BY start_at DESC", userID)
}

// ListByProperty returns the bookings across all categories of a property
// owned by ownerID, optionally filtered by status.
func (r *BookingRepo) ListByProperty(ctx context.Context, propertyID, ownerID uint64, status string) ([]*model.Booking, error) {
	var dbOwnerID uint64
	err := r.db.QueryRowContext(ctx, "SELECT owner_id FROM properties WHERE id = ?", propertyID).Scan(&dbOwnerID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrPropertyNotFound
	}
	if err != nil {
		return nil, err
	}
	if dbOwnerID != ownerID {
		return nil, ErrForbidden
	}
	q := `SELECT b.id, b.reference, b.room_category_id, b.user_id, b.customer_name, b.customer_email, b.customer_phone,
	             b.guests, b.stay_type, b.start_at, b.end_at, b.total_price, b.currency, b.payment_method, b.status,
	             b.created_at, b.updated_at
	      FROM bookings b
	      JOIN room_categories rc ON rc.id = b.room_category_id
	      WHERE rc.property_id = ?`
	args := []any{propertyID}
	if status != "" {
		q += " AND b.status = ?"
		args = append(args, status)
	}
	q += " ORDER BY b.start_at DESC"
	return r.list(ctx, q, args...)
}

// ListAll returns every booking, optionally filtered by status.  Admin only.
func (r *BookingRepo) ListAll(ctx context.Context, status string) ([]*model.Booking, error) {
	q := "SELECT " + bookingColumns + " FROM bookings"
	args := []any{}
	if status != "" {
		q += " WHERE status = ?"
		args = append(args, status)
	}
	q += " ORDER BY start_at DESC"
	return r.list(ctx, q, args...)
}

// UpdateStatus moves a booking from one status to another.  The WHERE clause
// carries the expected current status so a concurrent transition loses
// cleanly: zero affected rows comes back as ErrConflict when the row exists
// in a different state.
func (r *BookingRepo) UpdateStatus(ctx context.Context, id uint64, from, to model.BookingStatus) error {
	res, err := r.db.ExecContext(ctx,
		"UPDATE bookings SET status = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ? AND status = ?",
		to, id, from)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		var current string
		err := r.db.QueryRowContext(ctx, "SELECT status FROM bookings WHERE id = ?", id).Scan(&current)
		if errors.Is(err, sql.ErrNoRows) {
			return ErrBookingNotFound
		}
		if err != nil {
			return err
		}
		return ErrConflict
	}
	return nil
}

func (r *BookingRepo) getOne(ctx context.Context, q string, args ...any) (*model.Booking, error) {
	var b model.Booking
	err := r.db.QueryRowContext(ctx, q, args...).Scan(scanBookingDest(&b)...)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *BookingRepo) list(ctx context.Context, q string, args ...any) ([]*model.Booking, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]*model.Booking, 0)
	for rows.Next() {
		b := new(model.Booking)
		if err := rows.Scan(scanBookingDest(b)...); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func scanBookingDest(b *model.Booking) []any {
	return []any{&b.ID, &b.Reference, &b.RoomCategoryID, &b.UserID, &b.CustomerName, &b.CustomerEmail,
		&b.CustomerPhone, &b.Guests, &b.StayType, &b.StartAt, &b.EndAt, &b.TotalPrice, &b.Currency,
		&b.PaymentMethod, &b.Status, &b.CreatedAt, &b.UpdatedAt}
}
