// Package queue defines message payloads exchanged over the message broker.
package queue

// ReservationEvent is published when a reservation is created or
// cancelled.  It carries enough information for downstream consumers to
// log, notify or feed analytics without querying the primary database.
type ReservationEvent struct {
    Action        string `json:"action"` // "created" or "cancelled"
    ReservationID uint64 `json:"reservation_id"`
    UserID        uint64 `json:"user_id"`
    UserLogin     string `json:"user_login,omitempty"`
    HotelID       uint64 `json:"hotel_id"`
    DateStart     string `json:"date_start,omitempty"`
    DateEnd       string `json:"date_end,omitempty"`
    GuestQuantity uint32 `json:"guest_quantity,omitempty"`
    OccurredAt    string `json:"occurred_at"`
}

const (
    // ActionCreated marks a successful reservation creation.
    ActionCreated = "created"
    // ActionCancelled marks a reservation deletion.
    ActionCancelled = "cancelled"
)
