package model

import "time"

// Reservation records a user's booking of a hotel for a date range.
// Each reservation is owned by exactly one user via UserID; the
// owner's reservation list is the set of rows sharing that UserID,
// ordered by creation.  Dates are calendar dates in YYYY-MM-DD form
// with no time-zone semantics.
//
// Fields:
//  ID            – primary key identifier.
//  UserID        – user who made the reservation.
//  HotelID       – hotel being reserved.
//  DateStart     – first day of the stay (YYYY-MM-DD).
//  DateEnd       – last day of the stay (YYYY-MM-DD).
//  GuestQuantity – number of guests, always positive (defaults to 1).
//  CreatedAt     – creation timestamp.
//  UpdatedAt     – last update timestamp.
type Reservation struct {
    ID            uint64    // reservations.id
    UserID        uint64    // reservations.user_id
    HotelID       uint64    // reservations.hotel_id
    DateStart     string    // reservations.date_start
    DateEnd       string    // reservations.date_end
    GuestQuantity uint32    // reservations.guest_quantity
    CreatedAt     time.Time // reservations.created_at
    UpdatedAt     time.Time // reservations.updated_at
}
