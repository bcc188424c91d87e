package repository

import (
    "context"
    "database/sql"
    "strings"

    "github.com/dkaverin/hotel-booking/internal/model"
)

// ReservationRepo provides CRUD operations for reservations.  A
// reservation is owned by exactly one user through its user_id column;
// the owner's reservation list is derived by querying that column, so
// creating or deleting a reservation is a single atomic unit and no
// user-side reference list can go stale.  Dates are stored in DATE
// columns and surfaced as YYYY-MM-DD strings.
type ReservationRepo struct {
    db *sql.DB
}

// NewReservationRepo returns a new ReservationRepo bound to the given database.
func NewReservationRepo(db *sql.DB) *ReservationRepo { return &ReservationRepo{db: db} }

// UserRef is the owning-user reference expanded into reservation
// listings, in place of a bare id.
type UserRef struct {
    ID    uint64 `json:"id"`
    Login string `json:"login"`
}

// ReservationDetail is a reservation row joined with its owning user
// and the title of the reserved hotel.  It is the shape returned to
// API clients.
type ReservationDetail struct {
    ID            uint64  `json:"id"`
    HotelID       uint64  `json:"hotel_id"`
    HotelTitle    string  `json:"hotel_title"`
    DateStart     string  `json:"date_start"`
    DateEnd       string  `json:"date_end"`
    GuestQuantity uint32  `json:"guest_quantity"`
    User          UserRef `json:"user"`
}

// ReservationPatch carries the optional fields of a partial update.
// Nil pointers leave the corresponding column untouched.
type ReservationPatch struct {
    DateStart     *string
    DateEnd       *string
    GuestQuantity *uint32
}

// Create inserts a reservation for the given owner inside one
// transaction.  The owner row is locked and checked first so a
// concurrent account deletion cannot race the insert; a missing owner
// yields ErrUserNotFound and a missing hotel ErrHotelNotFound.  On
// success the generated id and timestamps are populated on res.
func (r *ReservationRepo) Create(ctx context.Context, res *model.Reservation) error {
    tx, err := r.db.BeginTx(ctx, nil)
    if err != nil {
        return err
    }
    defer func() { _ = tx.Rollback() }()

    var ownerID uint64
    if err := tx.QueryRowContext(ctx,
        "SELECT id FROM users WHERE id=? FOR SHARE", res.UserID).Scan(&ownerID); err != nil {
        if err == sql.ErrNoRows {
            return ErrUserNotFound
        }
        return err
    }

    result, err := tx.ExecContext(ctx,
        `INSERT INTO reservations (user_id, hotel_id, date_start, date_end, guest_quantity)
         VALUES (?, ?, ?, ?, ?)`,
        res.UserID, res.HotelID, res.DateStart, res.DateEnd, res.GuestQuantity)
    if err != nil {
        // MySQL reports a failed foreign key check as error 1452; the
        // only remaining FK on the insert is the hotel reference.
        if strings.Contains(err.Error(), "1452") {
            return ErrHotelNotFound
        }
        return err
    }
    id, err := result.LastInsertId()
    if err != nil {
        return err
    }
    res.ID = uint64(id)

    // Query back the full row to populate timestamps and defaults.
    err = tx.QueryRowContext(ctx,
        `SELECT DATE_FORMAT(date_start,'%Y-%m-%d'), DATE_FORMAT(date_end,'%Y-%m-%d'),
                guest_quantity, created_at, updated_at
         FROM reservations WHERE id = ?`, res.ID).
        Scan(&res.DateStart, &res.DateEnd, &res.GuestQuantity, &res.CreatedAt, &res.UpdatedAt)
    if err != nil {
        return err
    }
    return tx.Commit()
}

// ListByUser returns the user's reservations in creation order, each
// with its owning-user reference expanded and the hotel title joined
// in.  It returns ErrUserNotFound when the user does not exist, which
// is distinct from an existing user with no reservations (empty slice).
func (r *ReservationRepo) ListByUser(ctx context.Context, userID uint64) ([]ReservationDetail, error) {
    var exists uint64
    if err := r.db.QueryRowContext(ctx,
        "SELECT id FROM users WHERE id=? LIMIT 1", userID).Scan(&exists); err != nil {
        if err == sql.ErrNoRows {
            return nil, ErrUserNotFound
        }
        return nil, err
    }
    const q = `SELECT r.id, r.hotel_id, COALESCE(h.title, ''),
                      DATE_FORMAT(r.date_start,'%Y-%m-%d'), DATE_FORMAT(r.date_end,'%Y-%m-%d'),
                      r.guest_quantity, u.id, u.login
               FROM reservations r
               JOIN users u ON u.id = r.user_id
               LEFT JOIN hotels h ON h.id = r.hotel_id
               WHERE r.user_id = ?
               ORDER BY r.id ASC`
    return r.queryDetails(ctx, q, userID)
}

// ListAll returns every reservation with owner and hotel expanded,
// newest first.
func (r *ReservationRepo) ListAll(ctx context.Context) ([]ReservationDetail, error) {
    const q = `SELECT r.id, r.hotel_id, COALESCE(h.title, ''),
                      DATE_FORMAT(r.date_start,'%Y-%m-%d'), DATE_FORMAT(r.date_end,'%Y-%m-%d'),
                      r.guest_quantity, u.id, u.login
               FROM reservations r
               JOIN users u ON u.id = r.user_id
               LEFT JOIN hotels h ON h.id = r.hotel_id
               ORDER BY r.id DESC`
    return r.queryDetails(ctx, q)
}

func (r *ReservationRepo) queryDetails(ctx context.Context, q string, args ...any) ([]ReservationDetail, error) {
    rows, err := r.db.QueryContext(ctx, q, args...)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    details := make([]ReservationDetail, 0)
    for rows.Next() {
        var d ReservationDetail
        if err := rows.Scan(
            &d.ID, &d.HotelID, &d.HotelTitle,
            &d.DateStart, &d.DateEnd,
            &d.GuestQuantity, &d.User.ID, &d.User.Login,
        ); err != nil {
            return nil, err
        }
        details = append(details, d)
    }
    return details, rows.Err()
}

// Update applies a partial update: only the fields set on the patch
// change.  A patch with no fields is a no-op.  Returns
// ErrReservationNotFound when the id does not resolve.
func (r *ReservationRepo) Update(ctx context.Context, id uint64, p ReservationPatch) error {
    set := []string{}
    args := []any{}
    if p.DateStart != nil {
        set = append(set, "date_start=?")
        args = append(args, *p.DateStart)
    }
    if p.DateEnd != nil {
        set = append(set, "date_end=?")
        args = append(args, *p.DateEnd)
    }
    if p.GuestQuantity != nil {
        set = append(set, "guest_quantity=?")
        args = append(args, *p.GuestQuantity)
    }

    // Existence is checked separately because MySQL reports zero
    // affected rows for updates that change nothing.
    var exists uint64
    if err := r.db.QueryRowContext(ctx,
        "SELECT id FROM reservations WHERE id=? LIMIT 1", id).Scan(&exists); err != nil {
        if err == sql.ErrNoRows {
            return ErrReservationNotFound
        }
        return err
    }
    if len(set) == 0 {
        return nil
    }
    args = append(args, id)
    _, err := r.db.ExecContext(ctx,
        "UPDATE reservations SET "+strings.Join(set, ", ")+" WHERE id=?", args...)
    return err
}

// Delete removes the reservation matching both the reservation id and
// the hotel id.  Because the owner's list is derived from the user_id
// column, the single row delete is the whole logical operation and no
// dangling reference survives it.  Returns ErrReservationNotFound when
// the pair does not match a row.
func (r *ReservationRepo) Delete(ctx context.Context, id, hotelID uint64) error {
    res, err := r.db.ExecContext(ctx,
        "DELETE FROM reservations WHERE id=? AND hotel_id=?", id, hotelID)
    if err != nil {
        return err
    }
    n, err := res.RowsAffected()
    if err != nil {
        return err
    }
    if n == 0 {
        return ErrReservationNotFound
    }
    return nil
}
