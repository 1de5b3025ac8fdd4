// Package handler implements the HTTP endpoints of the marketplace API.
//
// Handlers depend on the narrow store interfaces below rather than on the
// concrete repositories, so tests can substitute in-memory fakes.  The
// repository types satisfy these interfaces.
package handler

import (
	"context"

	"github.com/roshnikutty/neighborfoods-api/internal/model"
)

// SellerStore is the persistence contract for seller listings.  All
// operations are atomic at the single-row level; Reserve is additionally
// required to perform its sufficiency check and decrement as one atomic
// step so concurrent reservations serialize against the same listing.
type SellerStore interface {
	Create(ctx context.Context, l *model.SellerListing) error
	GetByID(ctx context.Context, id uint64) (*model.SellerListing, error)
	List(ctx context.Context) ([]*model.SellerListing, error)
	Update(ctx context.Context, id uint64, f *model.UpdateMealFields) error
	Delete(ctx context.Context, id uint64) error
	Reserve(ctx context.Context, id uint64, count uint32) (*model.SellerListing, error)
}

// BuyerStore is the persistence contract for buyer requests.
type BuyerStore interface {
	Create(ctx context.Context, b *model.BuyerRequest) error
	GetByID(ctx context.Context, id uint64) (*model.BuyerRequest, error)
	List(ctx context.Context) ([]*model.BuyerRequest, error)
	Update(ctx context.Context, id uint64, f *model.UpdateBuyerFields) error
	Delete(ctx context.Context, id uint64) error
}

// UserStore is the persistence contract for the authentication gate.
type UserStore interface {
	Create(ctx context.Context, username, password, firstName, lastName string, cost int) (uint64, error)
	GetByUsername(ctx context.Context, username string) (model.User, error)
}
