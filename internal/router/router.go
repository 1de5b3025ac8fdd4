package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4" // Echo web framework used for routing

	"github.com/roshnikutty/neighborfoods-api/internal/handler"    // handlers implementing the endpoints
	"github.com/roshnikutty/neighborfoods-api/internal/middleware" // JWT authentication middleware
)

// Handlers groups everything the router wires up.  Cache is the Redis
// response-cache middleware applied to the two listing GETs; pass nil to
// register them without caching.
type Handlers struct {
	Auth        *handler.AuthHandler
	Meals       *handler.MealHandler
	Buyers      *handler.BuyerHandler
	Reservation *handler.ReservationHandler
	Cache       echo.MiddlewareFunc
}

// Register wires all application routes on the provided Echo instance.
// Unmatched paths fall through to Echo's default 404 body
// {"message":"Not Found"}, which is the contract for unknown routes.
func Register(e *echo.Echo, h Handlers, jwtSecret string) {
	// Health check for load balancers and monitoring.
	e.GET("/healthz", handler.Health)

	// Account endpoints are open: registration and token exchange are how a
	// client obtains the credential every protected route requires.
	e.POST("/users", h.Auth.Register)
	e.POST("/users/token", h.Auth.Token)

	// Browsing buyer requests is public; everything else on /buyers is not.
	cache := h.Cache
	if cache == nil {
		cache = func(next echo.HandlerFunc) echo.HandlerFunc { return next }
	}
	e.GET("/buyers", h.Buyers.List, cache)

	auth := middleware.JWTAuth(jwtSecret)

	// Seller listings.
	e.GET("/meals", h.Meals.List, auth, cache)
	e.POST("/meals", h.Meals.Create, auth)
	e.PUT("/meals/:id", h.Meals.Update, auth)
	e.DELETE("/meals/:id", h.Meals.Delete, auth)

	// The reservation transaction.  The buyer id segment is part of the
	// legacy path shape; the plate count travels in the request body.
	e.POST("/meals/:mealId/:buyId", h.Reservation.Reserve, auth)

	// Buyer requests.
	e.GET("/buyers/:id", h.Buyers.Get, auth)
	e.POST("/buyers", h.Buyers.Create, auth)
	e.PUT("/buyers/:id", h.Buyers.Update, auth)
	e.DELETE("/buyers/:id", h.Buyers.Delete, auth)
}
