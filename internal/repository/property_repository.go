package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/mzohaibq/roomstay/internal/model"
)

// PropertyRepo encapsulates all database queries related to properties.
type PropertyRepo struct {
	db *sql.DB
}

// NewPropertyRepo constructs a PropertyRepo with the provided DB handle.
func NewPropertyRepo(db *sql.DB) *PropertyRepo {
	return &PropertyRepo{db: db}
}

const propertyColumns = "id, owner_id, name, description, city, address, currency, is_active, created_at, updated_at"

// Create inserts a new property.  On success the ID, timestamps and default
// fields are populated on the passed struct.
func (r *PropertyRepo) Create(ctx context.Context, p *model.Property) error {
	const q = `INSERT INTO properties (owner_id, name, description, city, address, currency, is_active)
	           VALUES (?, ?, ?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q, p.OwnerID, p.Name, p.Description, p.City, p.Address, p.Currency, p.IsActive)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	p.ID = uint64(id)
	// Query back the full row to populate timestamps and defaults.
	return r.db.QueryRowContext(ctx, "SELECT "+propertyColumns+" FROM properties WHERE id = ?", p.ID).
		Scan(scanPropertyDest(p)...)
}

// GetByID fetches a property by id regardless of owner.
func (r *PropertyRepo) GetByID(ctx context.Context, id uint64) (*model.Property, error) {
	var p model.Property
	err := r.db.QueryRowContext(ctx, "SELECT "+propertyColumns+" FROM properties WHERE id = ?", id).
		Scan(scanPropertyDest(&p)...)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrPropertyNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// GetByIDAndOwner fetches a property only if it belongs to the given owner.
// ErrPropertyNotFound covers both a missing row and foreign ownership so the
// API does not leak which properties exist.
func (r *PropertyRepo) GetByIDAndOwner(ctx context.Context, id, ownerID uint64) (*model.Property, error) {
	var p model.Property
	err := r.db.QueryRowContext(ctx,
		"SELECT "+propertyColumns+" FROM properties WHERE id = ? AND owner_id = ?", id, ownerID).
		Scan(scanPropertyDest(&p)...)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrPropertyNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// ListByOwner returns all properties for one owner ordered by id.
func (r *PropertyRepo) ListByOwner(ctx context.Context, ownerID uint64) ([]*model.Property, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+propertyColumns+" FROM properties WHERE owner_id = ? ORDER BY id", ownerID)
	if err != nil {
		return nil, err
	}
	return collectProperties(rows)
}

// ListBookable returns properties that currently accept bookings: the row is
// active and the owning vendor is approved.  Used by the public browse
// endpoints, optionally narrowed to a city.
func (r *PropertyRepo) ListBookable(ctx context.Context, city string) ([]*model.Property, error) {
	q := `SELECT p.id, p.owner_id, p.name, p.description, p.city, p.address, p.currency, p.is_active, p.created_at, p.updated_at
	      FROM properties p
	      JOIN users u ON u.id = p.owner_id
	      WHERE p.is_active = 1 AND u.vendor_status = 'APPROVED'`
	args := []any{}
	if city != "" {
		q += " AND p.city = ?"
		args = append(args, city)
	}
	q += " ORDER BY p.id"
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	return collectProperties(rows)
}

// Update persists the mutable fields of a property owned by ownerID.  It
// returns sql.ErrNoRows when nothing matched (missing or not owned).
func (r *PropertyRepo) Update(ctx context.Context, p *model.Property, ownerID uint64) error {
	const q = `UPDATE properties
	           SET name = ?, description = ?, city = ?, address = ?, currency = ?, is_active = ?, updated_at = CURRENT_TIMESTAMP
	           WHERE id = ? AND owner_id = ?`
	res, err := r.db.ExecContext(ctx, q, p.Name, p.Description, p.City, p.Address, p.Currency, p.IsActive, p.ID, ownerID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		// MySQL reports zero affected rows for a no-op update too; confirm
		// the row is really absent before treating this as not-found.
		var exists uint64
		scanErr := r.db.QueryRowContext(ctx,
			"SELECT id FROM properties WHERE id = ? AND owner_id = ?", p.ID, ownerID).Scan(&exists)
		if errors.Is(scanErr, sql.ErrNoRows) {
			return sql.ErrNoRows
		}
		return scanErr
	}
	return nil
}

// DeleteByIDAndOwner removes a property together with its room categories,
// provided it belongs to the owner and none of its categories has live
// bookings.  ErrConflict is returned when live bookings exist, ErrForbidden
// when the property is owned by someone else.
func (r *PropertyRepo) DeleteByIDAndOwner(ctx context.Context, id, ownerID uint64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		} else {
			_ = tx.Commit()
		}
	}()
	var dbOwnerID uint64
	if err = tx.QueryRowContext(ctx, "SELECT owner_id FROM properties WHERE id = ?", id).Scan(&dbOwnerID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return sql.ErrNoRows
		}
		return err
	}
	if dbOwnerID != ownerID {
		err = ErrForbidden
		return err
	}
	var live int
	if err = tx.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM bookings b
		 JOIN room_categories rc ON rc.id = b.room_category_id
		 WHERE rc.property_id = ? AND b.status IN ('PENDING','CONFIRMED')`, id).Scan(&live); err != nil {
		return err
	}
	if live > 0 {
		err = ErrConflict
		return err
	}
	if _, err = tx.ExecContext(ctx,
		`DELETE b FROM bookings b
		 JOIN room_categories rc ON rc.id = b.room_category_id
		 WHERE rc.property_id = ?`, id); err != nil {
		return err
	}
	if _, err = tx.ExecContext(ctx, "DELETE FROM room_categories WHERE property_id = ?", id); err != nil {
		return err
	}
	_, err = tx.ExecContext(ctx, "DELETE FROM properties WHERE id = ?", id)
	return err
}

func scanPropertyDest(p *model.Property) []any {
	return []any{&p.ID, &p.OwnerID, &p.Name, &p.Description, &p.City, &p.Address,
		&p.Currency, &p.IsActive, &p.CreatedAt, &p.UpdatedAt}
}

func collectProperties(rows *sql.Rows) ([]*model.Property, error) {
	defer rows.Close()
	out := make([]*model.Property, 0)
	for rows.Next() {
		p := new(model.Property)
		if err := rows.Scan(scanPropertyDest(p)...); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
