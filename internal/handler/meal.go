package handler

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/roshnikutty/neighborfoods-api/internal/model"
	"github.com/roshnikutty/neighborfoods-api/internal/repository"
)

// MealHandler serves the seller-listing lifecycle: list, create, partial
// update and idempotent delete.  The reservation transaction lives in
// ReservationHandler.
type MealHandler struct {
	Listings SellerStore
}

func NewMealHandler(listings SellerStore) *MealHandler {
	if listings == nil {
		panic("nil store passed to NewMealHandler")
	}
	return &MealHandler{Listings: listings}
}

// List handles GET /meals.  Responds 200 with all listings projected to
// their public representation, wrapped in a "meals" envelope.  Order is
// store-native; clients must not assume any sort.
func (h *MealHandler) List(c echo.Context) error {
	ctx, cancel := reqContext(c)
	defer cancel()

	listings, err := h.Listings.List(ctx)
	if err != nil {
		log.Printf("meals: list failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal server error"})
	}
	meals := make([]model.MealRepr, 0, len(listings))
	for _, l := range listings {
		meals = append(meals, l.Repr())
	}
	return c.JSON(http.StatusOK, echo.Map{"meals": meals})
}

// Create handles POST /meals.  Required fields are checked fail-fast in
// declared order and the first missing one is named in the 400 body; the
// contact email is validated and lowercased.  Responds 201 with the public
// projection of the stored listing.
func (h *MealHandler) Create(c echo.Context) error {
	var req model.CreateMealRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	listing, err := req.Listing(time.Now())
	if err != nil {
		if status, body, ok := validationStatus(err); ok {
			return c.JSON(status, body)
		}
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	ctx, cancel := reqContext(c)
	defer cancel()

	if err := h.Listings.Create(ctx, listing); err != nil {
		log.Printf("meals: create failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal server error"})
	}
	return c.JSON(http.StatusCreated, listing.Repr())
}

// Update handles PUT /meals/:id.  It applies whatever recognized fields the
// client sent without further validation and responds 204 with no body.
// Responds 404 when the id does not resolve.
func (h *MealHandler) Update(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid meal id"})
	}
	var fields model.UpdateMealFields
	if err := c.Bind(&fields); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	ctx, cancel := reqContext(c)
	defer cancel()

	if err := h.Listings.Update(ctx, id, &fields); err != nil {
		if errors.Is(err, repository.ErrListingNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "meal not found"})
		}
		log.Printf("meals: update id=%d failed: %v", id, err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal server error"})
	}
	return c.NoContent(http.StatusNoContent)
}

// Delete handles DELETE /meals/:id.  Delete is idempotent: removing an id
// that is already gone responds 204 just like removing a live one.
func (h *MealHandler) Delete(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid meal id"})
	}

	ctx, cancel := reqContext(c)
	defer cancel()

	if err := h.Listings.Delete(ctx, id); err != nil {
		log.Printf("meals: delete id=%d failed: %v", id, err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal server error"})
	}
	return c.NoContent(http.StatusNoContent)
}
