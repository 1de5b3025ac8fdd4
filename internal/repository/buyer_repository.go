package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/roshnikutty/neighborfoods-api/internal/model"
)

// BuyerRepo encapsulates all database queries for buyer requests.
type BuyerRepo struct {
	db *sql.DB
}

// NewBuyerRepo constructs a BuyerRepo with the provided DB handle.
func NewBuyerRepo(db *sql.DB) *BuyerRepo {
	return &BuyerRepo{db: db}
}

const buyerColumns = "id, buyer_name, requested_at, plate_count, email"

func scanBuyer(row interface{ Scan(...any) error }) (*model.BuyerRequest, error) {
	var b model.BuyerRequest
	err := row.Scan(&b.ID, &b.BuyerName, &b.RequestedAt, &b.PlateCount, &b.Email)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// Create inserts a new buyer request and reads the row back so the caller
// receives store-applied defaults.
func (r *BuyerRepo) Create(ctx context.Context, b *model.BuyerRequest) error {
	const qInsert = `INSERT INTO buyer_requests (buyer_name, requested_at, plate_count, email)
	                 VALUES (?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, qInsert, b.BuyerName, b.RequestedAt, b.PlateCount, b.Email)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	b.ID = uint64(id)

	got, err := r.GetByID(ctx, b.ID)
	if err != nil {
		return err
	}
	*b = *got
	return nil
}

// GetByID fetches a buyer request by id.  It returns ErrBuyerNotFound when
// no row exists.
func (r *BuyerRepo) GetByID(ctx context.Context, id uint64) (*model.BuyerRequest, error) {
	b, err := scanBuyer(r.db.QueryRowContext(ctx,
		"SELECT "+buyerColumns+" FROM buyer_requests WHERE id = ?", id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrBuyerNotFound
		}
		return nil, err
	}
	return b, nil
}

// List returns all buyer requests in store order.
func (r *BuyerRepo) List(ctx context.Context) ([]*model.BuyerRequest, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT "+buyerColumns+" FROM buyer_requests")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*model.BuyerRequest
	for rows.Next() {
		b, err := scanBuyer(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Update applies a partial field set to an existing buyer request.  Returns
// ErrBuyerNotFound when the id does not resolve.
func (r *BuyerRepo) Update(ctx context.Context, id uint64, f *model.UpdateBuyerFields) error {
	if f.Empty() {
		var one int
		err := r.db.QueryRowContext(ctx, "SELECT 1 FROM buyer_requests WHERE id = ?", id).Scan(&one)
		if errors.Is(err, sql.ErrNoRows) {
			return ErrBuyerNotFound
		}
		return err
	}

	set := make([]string, 0, 4)
	args := make([]any, 0, 5)
	if f.BuyerName != nil {
		set = append(set, "buyer_name = ?")
		args = append(args, *f.BuyerName)
	}
	if f.Date != nil {
		set = append(set, "requested_at = ?")
		args = append(args, f.Date.UTC())
	}
	if f.PlateCount != nil {
		set = append(set, "plate_count = ?")
		args = append(args, *f.PlateCount)
	}
	if f.Email != nil {
		set = append(set, "email = ?")
		args = append(args, strings.ToLower(strings.TrimSpace(*f.Email)))
	}

	args = append(args, id)
	res, err := r.db.ExecContext(ctx,
		"UPDATE buyer_requests SET "+strings.Join(set, ", ")+" WHERE id = ?", args...)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		var one int
		err := r.db.QueryRowContext(ctx, "SELECT 1 FROM buyer_requests WHERE id = ?", id).Scan(&one)
		if errors.Is(err, sql.ErrNoRows) {
			return ErrBuyerNotFound
		}
		return err
	}
	return nil
}

// Delete removes a buyer request by id.  Idempotent like the seller delete.
func (r *BuyerRepo) Delete(ctx context.Context, id uint64) error {
	_, err := r.db.ExecContext(ctx, "DELETE FROM buyer_requests WHERE id = ?", id)
	return err
}
