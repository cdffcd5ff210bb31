package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/mzohaibq/roomstay/internal/model"
)

// RoomCategoryRepo encapsulates all database queries related to room
// categories.  Ownership checks go through the parent property.
type RoomCategoryRepo struct {
	db *sql.DB
}

func NewRoomCategoryRepo(db *sql.DB) *RoomCategoryRepo {
	return &RoomCategoryRepo{db: db}
}

const roomCategoryColumns = "id, property_id, name, max_guests, beds, bathrooms, area_sqm, price_4h, price_6h, price_12h, price_24h, created_at, updated_at"

// Create inserts a category under a property owned by ownerID.  ErrForbidden
// is returned when the property belongs to someone else,
// ErrPropertyNotFound when it does not exist.
func (r *RoomCategoryRepo) Create(ctx context.Context, rc *model.RoomCategory, ownerID uint64) error {
	if err := r.checkOwner(ctx, rc.PropertyID, ownerID); err != nil {
		return err
	}
	const q = `INSERT INTO room_categories
	           (property_id, name, max_guests, beds, bathrooms, area_sqm, price_4h, price_6h, price_12h, price_24h)
	           VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q, rc.PropertyID, rc.Name, rc.MaxGuests, rc.Beds, rc.Bathrooms,
		rc.AreaSqm, rc.Price4h, rc.Price6h, rc.Price12h, rc.Price24h)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	rc.ID = uint64(id)
	return r.db.QueryRowContext(ctx, "SELECT "+roomCategoryColumns+" FROM room_categories WHERE id = ?", rc.ID).
		Scan(scanRoomCategoryDest(rc)...)
}

// GetByID fetches a category by id.
func (r *RoomCategoryRepo) GetByID(ctx context.Context, id uint64) (*model.RoomCategory, error) {
	var rc model.RoomCategory
	err := r.db.QueryRowContext(ctx, "SELECT "+roomCategoryColumns+" FROM room_categories WHERE id = ?", id).
		Scan(scanRoomCategoryDest(&rc)...)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrRoomCategoryNotFound
	}
	if err != nil {
		return nil, err
	}
	return &rc, nil
}

// ListByProperty returns all categories of a property ordered by id.
func (r *RoomCategoryRepo) ListByProperty(ctx context.Context, propertyID uint64) ([]*model.RoomCategory, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+roomCategoryColumns+" FROM room_categories WHERE property_id = ? ORDER BY id", propertyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]*model.RoomCategory, 0)
	for rows.Next() {
		rc := new(model.RoomCategory)
		if err := rows.Scan(scanRoomCategoryDest(rc)...); err != nil {
			return nil, err
		}
		out = append(out, rc)
	}
	return out, rows.Err()
}

// Update persists the mutable fields of a category whose property is owned
// by ownerID.  PropertyID itself is never changed.
func (r *RoomCategoryRepo) Update(ctx context.Context, rc *model.RoomCategory, ownerID uint64) error {
	existing, err := r.GetByID(ctx, rc.ID)
	if err != nil {
		return err
	}
	if err := r.checkOwner(ctx, existing.PropertyID, ownerID); err != nil {
		return err
	}
	const q = `UPDATE room_categories
	           SET name = ?, max_guests = ?, beds = ?, bathrooms = ?, area_sqm = ?,
	               price_4h = ?, price_6h = ?, price_12h = ?, price_24h = ?, updated_at = CURRENT_TIMESTAMP
	           WHERE id = ?`
	if _, err := r.db.ExecContext(ctx, q, rc.Name, rc.MaxGuests, rc.Beds, rc.Bathrooms, rc.AreaSqm,
		rc.Price4h, rc.Price6h, rc.Price12h, rc.Price24h, rc.ID); err != nil {
		return err
	}
	rc.PropertyID = existing.PropertyID
	return r.db.QueryRowContext(ctx, "SELECT "+roomCategoryColumns+" FROM room_categories WHERE id = ?", rc.ID).
		Scan(scanRoomCategoryDest(rc)...)
}

// Delete removes a category whose property is owned by ownerID.  ErrConflict
// is returned while live bookings reference it.
func (r *RoomCategoryRepo) Delete(ctx context.Context, id, ownerID uint64) error {
	existing, err := r.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := r.checkOwner(ctx, existing.PropertyID, ownerID); err != nil {
		return err
	}
	var live int
	if err := r.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM bookings WHERE room_category_id = ? AND status IN ('PENDING','CONFIRMED')", id).
		Scan(&live); err != nil {
		return err
	}
	if live > 0 {
		return ErrConflict
	}
	_, err = r.db.ExecContext(ctx, "DELETE FROM room_categories WHERE id = ?", id)
	return err
}

// checkOwner verifies propertyID exists and belongs to ownerID.
func (r *RoomCategoryRepo) checkOwner(ctx context.Context, propertyID, ownerID uint64) error {
	var dbOwnerID uint64
	err := r.db.QueryRowContext(ctx, "SELECT owner_id FROM properties WHERE id = ?", propertyID).Scan(&dbOwnerID)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrPropertyNotFound
	}
	if err != nil {
		return err
	}
	if dbOwnerID != ownerID {
		return ErrForbidden
	}
	return nil
}

func scanRoomCategoryDest(rc *model.RoomCategory) []any {
	return []any{&rc.ID, &rc.PropertyID, &rc.Name, &rc.MaxGuests, &rc.Beds, &rc.Bathrooms, &rc.AreaSqm,
		&rc.Price4h, &rc.Price6h, &rc.Price12h, &rc.Price24h, &rc.CreatedAt, &rc.UpdatedAt}
}
