package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/mzohaibq/roomstay/internal/model"
	"github.com/mzohaibq/roomstay/internal/utils"
)

type UserRepo struct{ DB *sql.DB }

func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{DB: db} }

var ErrEmailExists = errors.New("email already exists")

// Create inserts a user and returns its ID.  Vendors start with vendor_status
// PENDING; other roles leave the column NULL.
func (r *UserRepo) Create(ctx context.Context, email, password, role string, cost int) (uint64, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	hash, err := utils.HashPassword(password, cost)
	if err != nil {
		return 0, err
	}
	var vendorStatus any
	if role == model.RoleVendor {
		vendorStatus = model.VendorPending
	}
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO users (email, password_hash, role, vendor_status) VALUES (?,?,?,?)",
		email, hash, role, vendorStatus)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			return 0, ErrEmailExists
		}
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// GetByEmail fetches a user by normalized email.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (model.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	return r.scanOne(r.DB.QueryRowContext(ctx,
		"SELECT id,email,password_hash,role,vendor_status,is_active,created_at,updated_at FROM users WHERE email=? LIMIT 1",
		email))
}

// GetByID fetches a user by id.
func (r *UserRepo) GetByID(ctx context.Context, id uint64) (model.User, error) {
	return r.scanOne(r.DB.QueryRowContext(ctx,
		"SELECT id,email,password_hash,role,vendor_status,is_active,created_at,updated_at FROM users WHERE id=? LIMIT 1",
		id))
}

// List returns users, optionally filtered by role, newest first.
func (r *UserRepo) List(ctx context.Context, role string) ([]model.User, error) {
	q := "SELECT id,email,password_hash,role,vendor_status,is_active,created_at,updated_at FROM users"
	args := []any{}
	if role != "" {
		q += " WHERE role=?"
		args = append(args, role)
	}
	q += " ORDER BY created_at DESC"
	rows, err := r.DB.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.User, 0)
	for rows.Next() {
		var u model.User
		var vendorStatus sql.NullString
		if err := rows.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Role, &vendorStatus,
			&u.IsActive, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, err
		}
		u.VendorStatus = vendorStatus.String
		out = append(out, u)
	}
	return out, rows.Err()
}

// UpdateVendorStatus sets the approval state of a vendor account.  It
// returns sql.ErrNoRows when the id does not belong to a VENDOR row.
func (r *UserRepo) UpdateVendorStatus(ctx context.Context, id uint64, status string) error {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE users SET vendor_status=? WHERE id=? AND role=?",
		status, id, model.RoleVendor)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		// Distinguish "not a vendor" from "already in this state".
		var role string
		if err := r.DB.QueryRowContext(ctx, "SELECT role FROM users WHERE id=?", id).Scan(&role); err != nil {
			return err
		}
		if role != model.RoleVendor {
			return sql.ErrNoRows
		}
	}
	return nil
}

func (r *UserRepo) scanOne(row *sql.Row) (model.User, error) {
	var u model.User
	var vendorStatus sql.NullString
	err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Role, &vendorStatus,
		&u.IsActive, &u.CreatedAt, &u.UpdatedAt)
	u.VendorStatus = vendorStatus.String
	return u, err
}
