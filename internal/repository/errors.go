// Package repository contains data access logic separated from HTTP
// handlers.  This file defines sentinel errors reused across repositories so
// handlers can map failure scenarios to HTTP statuses with errors.Is.
package repository

import "errors"

// ErrListingNotFound is returned when a seller listing id does not resolve.
// Handlers should translate this into an HTTP 404 response.
var ErrListingNotFound = errors.New("listing not found")

// ErrBuyerNotFound is returned when a buyer request id does not resolve.
var ErrBuyerNotFound = errors.New("buyer request not found")

// ErrSoldOut is returned by the reservation transaction when fewer plates
// remain than were requested.  It is an expected, user-visible condition and
// must not be conflated with store failures; handlers translate it into a
// 400 with a "sold out" message.
var ErrSoldOut = errors.New("sold out")

// ErrUsernameExists is returned when registration collides with an existing
// account.  Handlers should translate this into an HTTP 409 response.
var ErrUsernameExists = errors.New("username already exists")
