// Package repository defines error types that are reused across multiple
// repositories. These sentinel values allow higher layers such as
// handlers to distinguish between different failure scenarios and map
// them onto HTTP status codes: uniqueness violations become 409,
// missing entities become 404.
package repository

import "errors"

// ErrLoginExists is returned when registering a login that is already
// taken. Handlers should translate this into an HTTP 409 response.
var ErrLoginExists = errors.New("login already exists")

// ErrUserNotFound is returned when no user matches the given login or id.
var ErrUserNotFound = errors.New("user not found")

// ErrReservationNotFound is returned when a reservation id does not
// resolve, or when the id/hotel pair given to a delete does not match
// an existing row.
var ErrReservationNotFound = errors.New("reservation not found")

// ErrHotelNotFound is returned when a hotel id does not resolve.
var ErrHotelNotFound = errors.New("hotel not found")
