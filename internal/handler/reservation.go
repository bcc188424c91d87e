package handler

import (
    "context"
    "errors"
    "math"
    "net/http"
    "strconv"
    "time"

    "github.com/labstack/echo/v4"

    "github.com/dkaverin/hotel-booking/internal/middleware"
    "github.com/dkaverin/hotel-booking/internal/model"
    "github.com/dkaverin/hotel-booking/internal/queue"
    "github.com/dkaverin/hotel-booking/internal/repository"
    queue_publisher "github.com/dkaverin/hotel-booking/internal/service"
)

// ReservationHandler serves reservation creation, listing, partial
// update and deletion.  Methods assume authentication and role checks
// have already run in middleware.
type ReservationHandler struct {
    Users        UserStore
    Reservations ReservationStore
}

func NewReservationHandler(u UserStore, r ReservationStore) *ReservationHandler {
    if u == nil || r == nil {
        panic("nil store passed to NewReservationHandler")
    }
    return &ReservationHandler{Users: u, Reservations: r}
}

type createReservationReq struct {
    HotelID       uint64 `json:"hotelId"`
    DateStart     string `json:"dateStart"`
    DateEnd       string `json:"dateEnd"`
    GuestQuantity int    `json:"guestQuantity"`
}

type updateReservationReq struct {
    DateStart     *string `json:"dateStart"`
    DateEnd       *string `json:"dateEnd"`
    GuestQuantity *int    `json:"guestQuantity"`
}

// validDate reports whether s is a calendar date in YYYY-MM-DD form.
func validDate(s string) bool {
    _, err := time.Parse("2006-01-02", s)
    return err == nil
}

// Create handles POST /users/:id/reservations.  The owner must resolve
// to an existing user; the insert itself runs as one atomic unit in
// the store, so a reservation is either fully created and owned or
// not created at all.  A creation event is published best-effort.
func (h *ReservationHandler) Create(c echo.Context) error {
    userID, err := strconv.ParseUint(c.Param("id"), 10, 64)
    if err != nil || userID == 0 {
        return respondErr(c, http.StatusBadRequest, "invalid user id")
    }
    var req createReservationReq
    if err := c.Bind(&req); err != nil {
        return respondErr(c, http.StatusBadRequest, "invalid body")
    }
    if req.HotelID == 0 {
        return respondErr(c, http.StatusBadRequest, "hotelId is required")
    }
    if !validDate(req.DateStart) || !validDate(req.DateEnd) {
        return respondErr(c, http.StatusBadRequest, "dates must be YYYY-MM-DD")
    }
    if req.GuestQuantity < 0 {
        return respondErr(c, http.StatusBadRequest, "guestQuantity must be positive")
    }
    // The column is 32-bit unsigned; anything larger would silently
    // truncate on conversion.
    if int64(req.GuestQuantity) > math.MaxUint32 {
        return respondErr(c, http.StatusBadRequest, "guestQuantity is too large")
    }
    if req.GuestQuantity == 0 {
        req.GuestQuantity = 1
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    owner, err := h.Users.GetByID(ctx, userID)
    if err != nil {
        if errors.Is(err, repository.ErrUserNotFound) {
            return respondErr(c, http.StatusNotFound, "user not found")
        }
        return respondErr(c, http.StatusInternalServerError, "query failed")
    }

    res := model.Reservation{
        UserID:        userID,
        HotelID:       req.HotelID,
        DateStart:     req.DateStart,
        DateEnd:       req.DateEnd,
        GuestQuantity: uint32(req.GuestQuantity),
    }
    if err := h.Reservations.Create(ctx, &res); err != nil {
        switch {
        case errors.Is(err, repository.ErrUserNotFound):
            return respondErr(c, http.StatusNotFound, "user not found")
        case errors.Is(err, repository.ErrHotelNotFound):
            return respondErr(c, http.StatusNotFound, "hotel not found")
        default:
            return respondErr(c, http.StatusInternalServerError, "create reservation failed")
        }
    }

    // Best-effort: a lost event never fails the booking.
    _ = queue_publisher.PublishReservationEvent(ctx, queue.ReservationEvent{
        Action:        queue.ActionCreated,
        ReservationID: res.ID,
        UserID:        owner.ID,
        UserLogin:     owner.Login,
        HotelID:       res.HotelID,
        DateStart:     res.DateStart,
        DateEnd:       res.DateEnd,
        GuestQuantity: res.GuestQuantity,
        OccurredAt:    time.Now().UTC().Format(time.RFC3339),
    })

    return respond(c, http.StatusCreated, echo.Map{
        "id":             res.ID,
        "user_id":        res.UserID,
        "hotel_id":       res.HotelID,
        "date_start":     res.DateStart,
        "date_end":       res.DateEnd,
        "guest_quantity": res.GuestQuantity,
    })
}

// ListByUser handles GET /users/:id/reservations.  The list comes back
// in creation order with the owning user expanded on every entry.
func (h *ReservationHandler) ListByUser(c echo.Context) error {
    userID, err := strconv.ParseUint(c.Param("id"), 10, 64)
    if err != nil || userID == 0 {
        return respondErr(c, http.StatusBadRequest, "invalid user id")
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    details, err := h.Reservations.ListByUser(ctx, userID)
    if err != nil {
        if errors.Is(err, repository.ErrUserNotFound) {
            return respondErr(c, http.StatusNotFound, "user not found")
        }
        return respondErr(c, http.StatusInternalServerError, "query failed")
    }
    return respond(c, http.StatusOK, echo.Map{"reservations": details})
}

// Update handles PATCH /reservations/:id.  Only the supplied fields
// change.  No availability or overlap checking is performed.
func (h *ReservationHandler) Update(c echo.Context) error {
    id, err := strconv.ParseUint(c.Param("id"), 10, 64)
    if err != nil || id == 0 {
        return respondErr(c, http.StatusBadRequest, "invalid id")
    }
    var req updateReservationReq
    if err := c.Bind(&req); err != nil {
        return respondErr(c, http.StatusBadRequest, "invalid body")
    }
    patch := repository.ReservationPatch{}
    if req.DateStart != nil {
        if !validDate(*req.DateStart) {
            return respondErr(c, http.StatusBadRequest, "dateStart must be YYYY-MM-DD")
        }
        patch.DateStart = req.DateStart
    }
    if req.DateEnd != nil {
        if !validDate(*req.DateEnd) {
            return respondErr(c, http.StatusBadRequest, "dateEnd must be YYYY-MM-DD")
        }
        patch.DateEnd = req.DateEnd
    }
    if req.GuestQuantity != nil {
        if *req.GuestQuantity <= 0 {
            return respondErr(c, http.StatusBadRequest, "guestQuantity must be positive")
        }
        if int64(*req.GuestQuantity) > math.MaxUint32 {
            return respondErr(c, http.StatusBadRequest, "guestQuantity is too large")
        }
        q := uint32(*req.GuestQuantity)
        patch.GuestQuantity = &q
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    if err := h.Reservations.Update(ctx, id, patch); err != nil {
        if errors.Is(err, repository.ErrReservationNotFound) {
            return respondErr(c, http.StatusNotFound, "reservation not found")
        }
        return respondErr(c, http.StatusInternalServerError, "update failed")
    }
    return respond(c, http.StatusOK, nil)
}

// Delete handles DELETE /reservations/:id/hotels/:hotelId.  The row
// delete is the entire logical operation: the owner's list is derived
// from the owner column, so nothing is left pointing at the removed
// reservation.  A cancellation event is published best-effort.
func (h *ReservationHandler) Delete(c echo.Context) error {
    id, err := strconv.ParseUint(c.Param("id"), 10, 64)
    if err != nil || id == 0 {
        return respondErr(c, http.StatusBadRequest, "invalid id")
    }
    hotelID, err := strconv.ParseUint(c.Param("hotelId"), 10, 64)
    if err != nil || hotelID == 0 {
        return respondErr(c, http.StatusBadRequest, "invalid hotel id")
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    if err := h.Reservations.Delete(ctx, id, hotelID); err != nil {
        if errors.Is(err, repository.ErrReservationNotFound) {
            return respondErr(c, http.StatusNotFound, "reservation not found")
        }
        return respondErr(c, http.StatusInternalServerError, "delete failed")
    }

    ev := queue.ReservationEvent{
        Action:        queue.ActionCancelled,
        ReservationID: id,
        HotelID:       hotelID,
        OccurredAt:    time.Now().UTC().Format(time.RFC3339),
    }
    if u, ok := middleware.CurrentUser(c); ok {
        ev.UserID = u.ID
        ev.UserLogin = u.Login
    }
    _ = queue_publisher.PublishReservationEvent(ctx, ev)

    return respond(c, http.StatusOK, nil)
}

// ListAll handles GET /reservations for admins.
func (h *ReservationHandler) ListAll(c echo.Context) error {
    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    details, err := h.Reservations.ListAll(ctx)
    if err != nil {
        return respondErr(c, http.StatusInternalServerError, "query failed")
    }
    return respond(c, http.StatusOK, echo.Map{"reservations": details})
}
