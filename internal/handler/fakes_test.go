package handler

import (
	"context"
	"database/sql"
	"sync"

	"github.com/roshnikutty/neighborfoods-api/internal/model"
	"github.com/roshnikutty/neighborfoods-api/internal/repository"
	"github.com/roshnikutty/neighborfoods-api/internal/utils"
)

// fakeSellerStore is an in-memory SellerStore.  Reserve performs its
// sufficiency check and decrement under one lock, matching the atomicity the
// SQL conditional update provides in production.
type fakeSellerStore struct {
	mu     sync.Mutex
	nextID uint64
	items  map[uint64]model.SellerListing
}

func newFakeSellerStore() *fakeSellerStore {
	return &fakeSellerStore{items: make(map[uint64]model.SellerListing)}
}

func (f *fakeSellerStore) Create(_ context.Context, l *model.SellerListing) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	l.ID = f.nextID
	f.items[l.ID] = *l
	return nil
}

func (f *fakeSellerStore) GetByID(_ context.Context, id uint64) (*model.SellerListing, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	l, ok := f.items[id]
	if !ok {
		return nil, repository.ErrListingNotFound
	}
	return &l, nil
}

func (f *fakeSellerStore) List(_ context.Context) ([]*model.SellerListing, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]*model.SellerListing, 0, len(f.items))
	for _, l := range f.items {
		cp := l
		out = append(out, &cp)
	}
	return out, nil
}

func (f *fakeSellerStore) Update(_ context.Context, id uint64, fields *model.UpdateMealFields) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	l, ok := f.items[id]
	if !ok {
		return repository.ErrListingNotFound
	}
	if fields.SellerName != nil {
		l.SellerName = *fields.SellerName
	}
	if fields.Dish != nil {
		l.Dish = *fields.Dish
	}
	if fields.Cuisine != nil {
		l.Cuisine = *fields.Cuisine
	}
	if fields.Date != nil {
		l.ListedAt = fields.Date.UTC()
	}
	if fields.PlateCount != nil {
		l.PlateCount = *fields.PlateCount
	}
	if fields.PlateCost != nil {
		l.PlateCost = *fields.PlateCost
	}
	if fields.Allergens != nil {
		l.Allergens = *fields.Allergens
	}
	if fields.Email != nil {
		l.Email = *fields.Email
	}
	switch {
	case fields.Status != nil:
		l.Status = *fields.Status
	case fields.PlateCount != nil && *fields.PlateCount == 0:
		l.Status = model.StatusSoldOut
	case fields.PlateCount != nil:
		l.Status = model.StatusAvailable
	}
	f.items[id] = l
	return nil
}

func (f *fakeSellerStore) Delete(_ context.Context, id uint64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.items, id)
	return nil
}

func (f *fakeSellerStore) Reserve(_ context.Context, id uint64, count uint32) (*model.SellerListing, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	l, ok := f.items[id]
	if !ok {
		return nil, repository.ErrListingNotFound
	}
	if l.PlateCount < count {
		return nil, repository.ErrSoldOut
	}
	l.PlateCount -= count
	if l.PlateCount == 0 {
		l.Status = model.StatusSoldOut
	}
	f.items[id] = l
	return &l, nil
}

// fakeBuyerStore is an in-memory BuyerStore.
type fakeBuyerStore struct {
	mu     sync.Mutex
	nextID uint64
	items  map[uint64]model.BuyerRequest
}

func newFakeBuyerStore() *fakeBuyerStore {
	return &fakeBuyerStore{items: make(map[uint64]model.BuyerRequest)}
}

func (f *fakeBuyerStore) Create(_ context.Context, b *model.BuyerRequest) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	b.ID = f.nextID
	f.items[b.ID] = *b
	return nil
}

func (f *fakeBuyerStore) GetByID(_ context.Context, id uint64) (*model.BuyerRequest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.items[id]
	if !ok {
		return nil, repository.ErrBuyerNotFound
	}
	return &b, nil
}

func (f *fakeBuyerStore) List(_ context.Context) ([]*model.BuyerRequest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]*model.BuyerRequest, 0, len(f.items))
	for _, b := range f.items {
		cp := b
		out = append(out, &cp)
	}
	return out, nil
}

func (f *fakeBuyerStore) Update(_ context.Context, id uint64, fields *model.UpdateBuyerFields) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.items[id]
	if !ok {
		return repository.ErrBuyerNotFound
	}
	if fields.BuyerName != nil {
		b.BuyerName = *fields.BuyerName
	}
	if fields.Date != nil {
		b.RequestedAt = fields.Date.UTC()
	}
	if fields.PlateCount != nil {
		b.PlateCount = *fields.PlateCount
	}
	if fields.Email != nil {
		b.Email = *fields.Email
	}
	f.items[id] = b
	return nil
}

func (f *fakeBuyerStore) Delete(_ context.Context, id uint64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.items, id)
	return nil
}

// fakeUserStore is an in-memory UserStore that hashes passwords for real so
// the token exchange can verify them.
type fakeUserStore struct {
	mu     sync.Mutex
	nextID uint64
	users  map[string]model.User
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: make(map[string]model.User)}
}

func (f *fakeUserStore) Create(_ context.Context, username, password, firstName, lastName string, cost int) (uint64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.users[username]; ok {
		return 0, repository.ErrUsernameExists
	}
	hash, err := utils.HashPassword(password, cost)
	if err != nil {
		return 0, err
	}
	f.nextID++
	f.users[username] = model.User{
		ID:           f.nextID,
		Username:     username,
		PasswordHash: hash,
		FirstName:    firstName,
		LastName:     lastName,
	}
	return f.nextID, nil
}

func (f *fakeUserStore) GetByUsername(_ context.Context, username string) (model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[username]
	if !ok {
		return model.User{}, sql.ErrNoRows
	}
	return u, nil
}
