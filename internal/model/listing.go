// Package model defines the persisted entities of the marketplace and their
// public API projections.  Wire field names (seller_name, sell_dish, ...)
// are kept stable for existing clients; internal Go names describe what the
// fields actually are.
package model

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// Listing status values.  A listing starts out available and is flipped to
// sold_out by the reservation transaction when its plate count reaches zero.
const (
	StatusAvailable = "available"
	StatusSoldOut   = "sold_out"
)

// emailPattern is a conservative local@domain.tld check.  Addresses are
// lowercased before persistence.
var emailPattern = regexp.MustCompile(`^\w+([.-]?\w+)*@\w+([.-]?\w+)*(\.\w{2,3})+$`)

// SellerListing mirrors the seller_listings table.
//
// Fields:
//  ID         – primary key identifier, assigned by the store.
//  SellerName – name of the home cook offering the meal.
//  Dish       – name of the dish.
//  Cuisine    – optional cuisine label.
//  ListedAt   – when the listing was posted (defaults to creation time).
//  PlateCount – plates still available; never negative.
//  PlateCost  – price per plate.
//  Allergens  – free-form allergen description.
//  Email      – contact address, stored lowercased.
//  Status     – "available" or "sold_out".
type SellerListing struct {
	ID         uint64    // seller_listings.id
	SellerName string    // seller_listings.seller_name
	Dish       string    // seller_listings.dish
	Cuisine    string    // seller_listings.cuisine
	ListedAt   time.Time // seller_listings.listed_at
	PlateCount uint32    // seller_listings.plate_count
	PlateCost  float64   // seller_listings.plate_cost
	Allergens  string    // seller_listings.allergens
	Email      string    // seller_listings.email
	Status     string    // seller_listings.status
}

// BuyerRequest mirrors the buyer_requests table.  A buyer request is a
// standing "looking for N plates" post; it is not linked to any particular
// seller listing.
type BuyerRequest struct {
	ID          uint64    // buyer_requests.id
	BuyerName   string    // buyer_requests.buyer_name
	RequestedAt time.Time // buyer_requests.requested_at
	PlateCount  uint32    // buyer_requests.plate_count
	Email       string    // buyer_requests.email
}

// MealRepr is the public projection of a SellerListing.  The internal id is
// exposed as meal_id and no internal-only fields are included.
type MealRepr struct {
	MealID       uint64    `json:"meal_id"`
	SellerName   string    `json:"seller_name"`
	Dish         string    `json:"sell_dish"`
	Cuisine      string    `json:"sell_cuisine,omitempty"`
	Date         time.Time `json:"sell_date"`
	PlateCount   uint32    `json:"sell_plate_count"`
	PlateCost    float64   `json:"sell_plate_cost"`
	Allergens    string    `json:"sell_allergens"`
	EmailAddress string    `json:"sell_email_address"`
	Status       string    `json:"sell_status"`
}

// Repr returns the listing's public projection.
func (s *SellerListing) Repr() MealRepr {
	return MealRepr{
		MealID:       s.ID,
		SellerName:   s.SellerName,
		Dish:         s.Dish,
		Cuisine:      s.Cuisine,
		Date:         s.ListedAt,
		PlateCount:   s.PlateCount,
		PlateCost:    s.PlateCost,
		Allergens:    s.Allergens,
		EmailAddress: s.Email,
		Status:       s.Status,
	}
}

// BuyerRepr is the public projection of a BuyerRequest.
type BuyerRepr struct {
	BuyerID      uint64    `json:"buyer_id"`
	BuyerName    string    `json:"buyer_name"`
	Date         time.Time `json:"buy_date"`
	PlateCount   uint32    `json:"buy_plate_count"`
	EmailAddress string    `json:"buy_email_address"`
}

// Repr returns the buyer request's public projection.
func (b *BuyerRequest) Repr() BuyerRepr {
	return BuyerRepr{
		BuyerID:      b.ID,
		BuyerName:    b.BuyerName,
		Date:         b.RequestedAt,
		PlateCount:   b.PlateCount,
		EmailAddress: b.Email,
	}
}

// MissingFieldError reports the first required field absent from a create
// payload.  Validation is fail-fast: fields are checked in their declared
// order and checking stops at the first failure.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("missing required field `%s`", e.Field)
}

// ErrInvalidEmail is returned when a contact address does not match the
// local@domain.tld pattern.
var ErrInvalidEmail = &MalformedFieldError{Field: "email address"}

// MalformedFieldError reports a field that is present but malformed.
type MalformedFieldError struct {
	Field string
}

func (e *MalformedFieldError) Error() string {
	return fmt.Sprintf("invalid %s", e.Field)
}

// NormalizeEmail validates an address against the email pattern and returns
// it trimmed and lowercased, ready for persistence.
func NormalizeEmail(raw string) (string, error) {
	addr := strings.TrimSpace(raw)
	if !emailPattern.MatchString(addr) {
		return "", ErrInvalidEmail
	}
	return strings.ToLower(addr), nil
}

// CreateMealRequest is the POST /meals payload.  Pointer fields distinguish
// "absent" from "zero value" so required-field checks see what the client
// actually sent.
type CreateMealRequest struct {
	SellerName *string    `json:"seller_name"`
	Dish       *string    `json:"sell_dish"`
	Cuisine    *string    `json:"sell_cuisine"`
	Date       *time.Time `json:"sell_date"`
	PlateCount *uint32    `json:"sell_plate_count"`
	PlateCost  *float64   `json:"sell_plate_cost"`
	Allergens  *string    `json:"sell_allergens"`
	Email      *string    `json:"sell_email_address"`
}

// Listing validates the payload and builds the SellerListing to persist.
// Required fields are checked in declared order; the first missing one is
// reported and no further checks run.  The email is normalized, the listing
// date defaults to now and status defaults to available.
func (r *CreateMealRequest) Listing(now time.Time) (*SellerListing, error) {
	switch {
	case r.SellerName == nil:
		return nil, &MissingFieldError{Field: "seller_name"}
	case r.Dish == nil:
		return nil, &MissingFieldError{Field: "sell_dish"}
	case r.PlateCount == nil:
		return nil, &MissingFieldError{Field: "sell_plate_count"}
	case r.PlateCost == nil:
		return nil, &MissingFieldError{Field: "sell_plate_cost"}
	case r.Allergens == nil:
		return nil, &MissingFieldError{Field: "sell_allergens"}
	case r.Email == nil:
		return nil, &MissingFieldError{Field: "sell_email_address"}
	}
	email, err := NormalizeEmail(*r.Email)
	if err != nil {
		return nil, err
	}
	l := &SellerListing{
		SellerName: *r.SellerName,
		Dish:       *r.Dish,
		ListedAt:   now.UTC(),
		PlateCount: *r.PlateCount,
		PlateCost:  *r.PlateCost,
		Allergens:  *r.Allergens,
		Email:      email,
		Status:     StatusAvailable,
	}
	if r.Cuisine != nil {
		l.Cuisine = *r.Cuisine
	}
	if r.Date != nil {
		l.ListedAt = r.Date.UTC()
	}
	return l, nil
}

// CreateBuyerRequest is the POST /buyers payload.
type CreateBuyerRequest struct {
	BuyerName  *string    `json:"buyer_name"`
	Date       *time.Time `json:"buy_date"`
	PlateCount *uint32    `json:"buy_plate_count"`
	Email      *string    `json:"buy_email_address"`
}

// Request validates the payload and builds the BuyerRequest to persist.
func (r *CreateBuyerRequest) Request(now time.Time) (*BuyerRequest, error) {
	switch {
	case r.BuyerName == nil:
		return nil, &MissingFieldError{Field: "buyer_name"}
	case r.PlateCount == nil:
		return nil, &MissingFieldError{Field: "buy_plate_count"}
	case r.Email == nil:
		return nil, &MissingFieldError{Field: "buy_email_address"}
	}
	email, err := NormalizeEmail(*r.Email)
	if err != nil {
		return nil, err
	}
	b := &BuyerRequest{
		BuyerName:   *r.BuyerName,
		RequestedAt: now.UTC(),
		PlateCount:  *r.PlateCount,
		Email:       email,
	}
	if r.Date != nil {
		b.RequestedAt = r.Date.UTC()
	}
	return b, nil
}

// UpdateMealFields is the PUT /meals/:id payload.  Every field is optional;
// only the fields the client sent are written.  No field-level validation is
// applied beyond what the store enforces -- a deliberate permissiveness kept
// from the original API.
type UpdateMealFields struct {
	SellerName *string    `json:"seller_name"`
	Dish       *string    `json:"sell_dish"`
	Cuisine    *string    `json:"sell_cuisine"`
	Date       *time.Time `json:"sell_date"`
	PlateCount *uint32    `json:"sell_plate_count"`
	PlateCost  *float64   `json:"sell_plate_cost"`
	Allergens  *string    `json:"sell_allergens"`
	Email      *string    `json:"sell_email_address"`
	Status     *string    `json:"sell_status"`
}

// Empty reports whether the payload carries no recognized fields.
func (u *UpdateMealFields) Empty() bool {
	return u.SellerName == nil && u.Dish == nil && u.Cuisine == nil &&
		u.Date == nil && u.PlateCount == nil && u.PlateCost == nil &&
		u.Allergens == nil && u.Email == nil && u.Status == nil
}

// UpdateBuyerFields is the PUT /buyers/:id payload.
type UpdateBuyerFields struct {
	BuyerName  *string    `json:"buyer_name"`
	Date       *time.Time `json:"buy_date"`
	PlateCount *uint32    `json:"buy_plate_count"`
	Email      *string    `json:"buy_email_address"`
}

// Empty reports whether the payload carries no recognized fields.
func (u *UpdateBuyerFields) Empty() bool {
	return u.BuyerName == nil && u.Date == nil && u.PlateCount == nil && u.Email == nil
}
