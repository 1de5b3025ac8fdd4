// Package queue defines message payloads exchanged over the message broker.
package queue

// MealReservedEvent is published after a reservation successfully decrements
// a listing.  It carries enough information for downstream consumers to log
// or notify without querying the primary database.
type MealReservedEvent struct {
	MealID          uint64 `json:"meal_id"`
	BuyerUserID     uint64 `json:"buyer_user_id"`
	SellerName      string `json:"seller_name"`
	Dish            string `json:"dish"`
	PlatesReserved  uint32 `json:"plates_reserved"`
	PlatesRemaining uint32 `json:"plates_remaining"`
	Status          string `json:"status"`
	ReservedAt      string `json:"reserved_at"`
}
