package handler

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/roshnikutty/neighborfoods-api/internal/queue"
	"github.com/roshnikutty/neighborfoods-api/internal/repository"
)

// ReservationHandler serves the purchase operation: atomically decrement a
// listing's plate count and flip it to sold_out when it reaches zero.
type ReservationHandler struct {
	Listings SellerStore
	// Publish emits the meal.reserved event after a successful decrement.
	// Publishing is best-effort: failures are logged, never surfaced to the
	// buyer.  A nil Publish disables events (tests, broker-less deploys).
	Publish func(ctx context.Context, ev queue.MealReservedEvent) error
}

func NewReservationHandler(listings SellerStore, publish func(context.Context, queue.MealReservedEvent) error) *ReservationHandler {
	if listings == nil {
		panic("nil store passed to NewReservationHandler")
	}
	return &ReservationHandler{Listings: listings, Publish: publish}
}

// reserveReq carries the requested plate count.  The buyer id in the path is
// part of the legacy route shape; no buyer record is dereferenced because no
// buyer->listing relationship is persisted.
type reserveReq struct {
	PlateCount *uint32 `json:"buy_plate_count"`
}

// Reserve handles POST /meals/:mealId/:buyId.
//
// The sufficiency check and the decrement execute as one atomic store
// operation, so two concurrent reservations that together exceed the
// remaining plates resolve to exactly one success and one sold-out.  A
// sold-out response mutates nothing.  Reserve never moves a listing from
// sold_out back to available; only an explicit update can do that.
func (h *ReservationHandler) Reserve(c echo.Context) error {
	mealID, err := pathID(c, "mealId")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid meal id"})
	}
	if _, err := pathID(c, "buyId"); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid buyer id"})
	}

	var req reserveReq
	if err := c.Bind(&req); err != nil || req.PlateCount == nil || *req.PlateCount == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "buy_plate_count must be a positive integer"})
	}
	count := *req.PlateCount

	ctx, cancel := reqContext(c)
	defer cancel()

	listing, err := h.Listings.Reserve(ctx, mealID, count)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrListingNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "meal not found"})
		case errors.Is(err, repository.ErrSoldOut):
			// Expected user-facing condition, not an error to log.
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "sold out"})
		default:
			log.Printf("reserve: meal=%d count=%d failed: %v", mealID, count, err)
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal server error"})
		}
	}

	if h.Publish != nil {
		buyerUserID, _ := getUserID(c)
		ev := queue.MealReservedEvent{
			MealID:          listing.ID,
			BuyerUserID:     buyerUserID,
			SellerName:      listing.SellerName,
			Dish:            listing.Dish,
			PlatesReserved:  count,
			PlatesRemaining: listing.PlateCount,
			Status:          listing.Status,
			ReservedAt:      time.Now().UTC().Format(time.RFC3339),
		}
		if err := h.Publish(ctx, ev); err != nil {
			log.Printf("reserve: publish meal.reserved failed: %v", err)
		}
	}

	return c.JSON(http.StatusOK, listing.Repr())
}
