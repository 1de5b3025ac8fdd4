package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/roshnikutty/neighborfoods-api/internal/model"
)

// SellerRepo encapsulates all database queries for seller listings.  It
// depends on a sql.DB connection configured at startup.
type SellerRepo struct {
	db *sql.DB
}

// NewSellerRepo constructs a SellerRepo with the provided DB handle.  This
// allows dependency injection of the database in tests and at startup.
func NewSellerRepo(db *sql.DB) *SellerRepo {
	return &SellerRepo{db: db}
}

const sellerColumns = "id, seller_name, dish, cuisine, listed_at, plate_count, plate_cost, allergens, email, status"

func scanSeller(row interface{ Scan(...any) error }) (*model.SellerListing, error) {
	var l model.SellerListing
	var cuisine sql.NullString
	err := row.Scan(&l.ID, &l.SellerName, &l.Dish, &cuisine, &l.ListedAt,
		&l.PlateCount, &l.PlateCost, &l.Allergens, &l.Email, &l.Status)
	if err != nil {
		return nil, err
	}
	if cuisine.Valid {
		l.Cuisine = cuisine.String
	}
	return &l, nil
}

// Create inserts a new seller listing.  On success the listing's ID is
// populated with the auto-generated value and the row is read back so the
// caller receives store-applied defaults.
func (r *SellerRepo) Create(ctx context.Context, l *model.SellerListing) error {
	const qInsert = `INSERT INTO seller_listings
	                 (seller_name, dish, cuisine, listed_at, plate_count, plate_cost, allergens, email, status)
	                 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	var cuisine any
	if l.Cuisine != "" {
		cuisine = l.Cuisine
	}
	res, err := r.db.ExecContext(ctx, qInsert,
		l.SellerName, l.Dish, cuisine, l.ListedAt, l.PlateCount, l.PlateCost,
		l.Allergens, l.Email, l.Status)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	l.ID = uint64(id)

	got, err := r.GetByID(ctx, l.ID)
	if err != nil {
		return err
	}
	*l = *got
	return nil
}

// GetByID fetches a seller listing by its ID.  It returns ErrListingNotFound
// if no row exists.
func (r *SellerRepo) GetByID(ctx context.Context, id uint64) (*model.SellerListing, error) {
	l, err := scanSeller(r.db.QueryRowContext(ctx,
		"SELECT "+sellerColumns+" FROM seller_listings WHERE id = ?", id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrListingNotFound
		}
		return nil, err
	}
	return l, nil
}

// List returns all seller listings in store order.  Callers must not assume
// any particular ordering.
func (r *SellerRepo) List(ctx context.Context) ([]*model.SellerListing, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT "+sellerColumns+" FROM seller_listings")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*model.SellerListing
	for rows.Next() {
		l, err := scanSeller(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Update applies a partial field set to an existing listing.  Only the
// fields present in f are written.  When the update changes plate_count and
// the client did not pin status explicitly, status is recomputed from the
// new count so a direct PUT to zero cannot drift from the sold_out state the
// reservation path maintains.  Returns ErrListingNotFound when the id does
// not resolve.
func (r *SellerRepo) Update(ctx context.Context, id uint64, f *model.UpdateMealFields) error {
	if f.Empty() {
		// Nothing to write; still report missing ids.
		var one int
		err := r.db.QueryRowContext(ctx, "SELECT 1 FROM seller_listings WHERE id = ?", id).Scan(&one)
		if errors.Is(err, sql.ErrNoRows) {
			return ErrListingNotFound
		}
		return err
	}

	set := make([]string, 0, 9)
	args := make([]any, 0, 10)
	if f.SellerName != nil {
		set = append(set, "seller_name = ?")
		args = append(args, *f.SellerName)
	}
	if f.Dish != nil {
		set = append(set, "dish = ?")
		args = append(args, *f.Dish)
	}
	if f.Cuisine != nil {
		set = append(set, "cuisine = ?")
		args = append(args, *f.Cuisine)
	}
	if f.Date != nil {
		set = append(set, "listed_at = ?")
		args = append(args, f.Date.UTC())
	}
	if f.PlateCount != nil {
		set = append(set, "plate_count = ?")
		args = append(args, *f.PlateCount)
	}
	if f.PlateCost != nil {
		set = append(set, "plate_cost = ?")
		args = append(args, *f.PlateCost)
	}
	if f.Allergens != nil {
		set = append(set, "allergens = ?")
		args = append(args, *f.Allergens)
	}
	if f.Email != nil {
		// Lowercased on write like every other email path; the permissive
		// update contract skips the format check.
		set = append(set, "email = ?")
		args = append(args, strings.ToLower(strings.TrimSpace(*f.Email)))
	}
	switch {
	case f.Status != nil:
		set = append(set, "status = ?")
		args = append(args, *f.Status)
	case f.PlateCount != nil:
		status := model.StatusAvailable
		if *f.PlateCount == 0 {
			status = model.StatusSoldOut
		}
		set = append(set, "status = ?")
		args = append(args, status)
	}

	args = append(args, id)
	res, err := r.db.ExecContext(ctx,
		"UPDATE seller_listings SET "+strings.Join(set, ", ")+" WHERE id = ?", args...)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		// MySQL reports zero affected rows both for missing ids and for
		// writes that change nothing; only the former is an error.
		var one int
		err := r.db.QueryRowContext(ctx, "SELECT 1 FROM seller_listings WHERE id = ?", id).Scan(&one)
		if errors.Is(err, sql.ErrNoRows) {
			return ErrListingNotFound
		}
		return err
	}
	return nil
}

// Delete removes a listing by id.  Deleting an id that is already gone is
// not an error: delete is idempotent.
func (r *SellerRepo) Delete(ctx context.Context, id uint64) error {
	_, err := r.db.ExecContext(ctx, "DELETE FROM seller_listings WHERE id = ?", id)
	return err
}

// Reserve atomically claims count plates from a listing.  The decrement and
// the sold_out flip happen in a single conditional UPDATE guarded by
// `plate_count >= count`, so two concurrent reservations can never both
// succeed against insufficient inventory and the count can never go
// negative.  The status assignment is listed first in the SET clause: MySQL
// evaluates SET left to right, so it still sees the pre-decrement count.
//
// The statement runs inside a transaction together with the readback.  The
// UPDATE's row lock is held until commit, so the returned listing carries
// exactly the count this reservation produced, not a later one.
//
// Returns the updated listing on success, ErrListingNotFound when the id
// does not resolve and ErrSoldOut when fewer than count plates remain (in
// which case nothing is mutated).
func (r *SellerRepo) Reserve(ctx context.Context, id uint64, count uint32) (*model.SellerListing, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback() }()

	const q = `UPDATE seller_listings
	           SET status = IF(plate_count - ? = 0, ?, status),
	               plate_count = plate_count - ?
	           WHERE id = ? AND plate_count >= ?`
	res, err := tx.ExecContext(ctx, q, count, model.StatusSoldOut, count, id, count)
	if err != nil {
		return nil, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return nil, err
	}
	if n == 0 {
		// Distinguish a missing listing from insufficient inventory.
		var one int
		err := tx.QueryRowContext(ctx, "SELECT 1 FROM seller_listings WHERE id = ?", id).Scan(&one)
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrListingNotFound
		}
		if err != nil {
			return nil, err
		}
		return nil, ErrSoldOut
	}

	l, err := scanSeller(tx.QueryRowContext(ctx,
		"SELECT "+sellerColumns+" FROM seller_listings WHERE id = ?", id))
	if err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return l, nil
}
