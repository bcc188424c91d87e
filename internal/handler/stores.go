package handler

import (
    "context"

    "github.com/dkaverin/hotel-booking/internal/model"
    "github.com/dkaverin/hotel-booking/internal/repository"
)

// The store interfaces below name exactly what the handlers consume
// from the repository layer.  The SQL repositories satisfy them; tests
// substitute in-memory fakes.

// UserStore persists user identity and owns the account cascade delete.
type UserStore interface {
    Create(ctx context.Context, login, password string, cost int) (uint64, error)
    GetByLogin(ctx context.Context, login string) (model.User, error)
    GetByID(ctx context.Context, id uint64) (model.User, error)
    List(ctx context.Context) ([]model.User, error)
    DeleteCascade(ctx context.Context, id uint64) error
}

// ReservationStore creates, lists, updates and deletes reservations.
type ReservationStore interface {
    Create(ctx context.Context, res *model.Reservation) error
    ListByUser(ctx context.Context, userID uint64) ([]repository.ReservationDetail, error)
    ListAll(ctx context.Context) ([]repository.ReservationDetail, error)
    Update(ctx context.Context, id uint64, p repository.ReservationPatch) error
    Delete(ctx context.Context, id, hotelID uint64) error
}

// HotelStore serves the hotel catalog.
type HotelStore interface {
    List(ctx context.Context, f repository.HotelFilter) ([]model.Hotel, int64, error)
    Featured(ctx context.Context) ([]model.Hotel, error)
    GetByID(ctx context.Context, id uint64) (model.Hotel, error)
    Create(ctx context.Context, h *model.Hotel) error
    Update(ctx context.Context, id uint64, p repository.HotelPatch) (model.Hotel, error)
    Delete(ctx context.Context, id uint64) error
}

// ReviewStore reads the reviews embedded into hotel detail responses.
type ReviewStore interface {
    ListByHotel(ctx context.Context, hotelID uint64) ([]repository.ReviewDetail, error)
}
