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

// BuyerHandler serves the buyer-request lifecycle.  It mirrors MealHandler
// plus a fetch-by-id endpoint.
type BuyerHandler struct {
	Buyers BuyerStore
}

func NewBuyerHandler(buyers BuyerStore) *BuyerHandler {
	if buyers == nil {
		panic("nil store passed to NewBuyerHandler")
	}
	return &BuyerHandler{Buyers: buyers}
}

// List handles GET /buyers.  This is the one unauthenticated listing
// endpoint; sellers browse open requests without an account.
func (h *BuyerHandler) List(c echo.Context) error {
	ctx, cancel := reqContext(c)
	defer cancel()

	requests, err := h.Buyers.List(ctx)
	if err != nil {
		log.Printf("buyers: list failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal server error"})
	}
	buyers := make([]model.BuyerRepr, 0, len(requests))
	for _, b := range requests {
		buyers = append(buyers, b.Repr())
	}
	return c.JSON(http.StatusOK, echo.Map{"buyers": buyers})
}

// Get handles GET /buyers/:id.
func (h *BuyerHandler) Get(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid buyer id"})
	}

	ctx, cancel := reqContext(c)
	defer cancel()

	b, err := h.Buyers.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrBuyerNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "buyer not found"})
		}
		log.Printf("buyers: get id=%d failed: %v", id, err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal server error"})
	}
	return c.JSON(http.StatusOK, b.Repr())
}

// Create handles POST /buyers with the same fail-fast required-field rules
// as meal creation.
func (h *BuyerHandler) Create(c echo.Context) error {
	var req model.CreateBuyerRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	b, err := req.Request(time.Now())
	if err != nil {
		if status, body, ok := validationStatus(err); ok {
			return c.JSON(status, body)
		}
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	ctx, cancel := reqContext(c)
	defer cancel()

	if err := h.Buyers.Create(ctx, b); err != nil {
		log.Printf("buyers: create failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal server error"})
	}
	return c.JSON(http.StatusCreated, b.Repr())
}

// Update handles PUT /buyers/:id.
func (h *BuyerHandler) Update(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid buyer id"})
	}
	var fields model.UpdateBuyerFields
	if err := c.Bind(&fields); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	ctx, cancel := reqContext(c)
	defer cancel()

	if err := h.Buyers.Update(ctx, id, &fields); err != nil {
		if errors.Is(err, repository.ErrBuyerNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "buyer not found"})
		}
		log.Printf("buyers: update id=%d failed: %v", id, err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal server error"})
	}
	return c.NoContent(http.StatusNoContent)
}

// Delete handles DELETE /buyers/:id, idempotently.
func (h *BuyerHandler) Delete(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid buyer id"})
	}

	ctx, cancel := reqContext(c)
	defer cancel()

	if err := h.Buyers.Delete(ctx, id); err != nil {
		log.Printf("buyers: delete id=%d failed: %v", id, err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal server error"})
	}
	return c.NoContent(http.StatusNoContent)
}
