package repository

import (
    "context"
    "database/sql"
    "encoding/json"
    "strings"

    "github.com/dkaverin/hotel-booking/internal/model"
)

// HotelRepo provides catalog access to hotels.  Image lists are stored
// as a JSON array in the `images` column and packed/unpacked here so
// the rest of the application only ever sees []string.
type HotelRepo struct {
    db *sql.DB
}

// NewHotelRepo returns a new HotelRepo bound to the given database.
func NewHotelRepo(db *sql.DB) *HotelRepo { return &HotelRepo{db: db} }

// HotelFilter defines filters and pagination for browsing hotels.
// Zero values disable the corresponding filter.
type HotelFilter struct {
    Search   string  // case-insensitive substring match on title
    Country  string  // case-insensitive substring match on country
    MinPrice float64 // lower price bound (exclusive when > 0)
    MaxPrice float64 // upper price bound (exclusive when > 0)
    Limit    int     // page size
    Page     int     // 1-based page number
}

// HotelPatch carries the optional fields of a partial hotel update.
type HotelPatch struct {
    Title       *string
    Description *string
    Country     *string
    Price       *float64
    Rating      *float64
    Images      []string // nil leaves images untouched
}

const hotelColumns = "id,title,description,country,price,rating,images,created_at,updated_at"

func scanHotel(s interface{ Scan(...any) error }) (model.Hotel, error) {
    var h model.Hotel
    var images []byte
    err := s.Scan(&h.ID, &h.Title, &h.Description, &h.Country, &h.Price, &h.Rating,
        &images, &h.CreatedAt, &h.UpdatedAt)
    if err != nil {
        return model.Hotel{}, err
    }
    if len(images) > 0 {
        if err := json.Unmarshal(images, &h.Images); err != nil {
            return model.Hotel{}, err
        }
    }
    if h.Images == nil {
        h.Images = []string{}
    }
    return h, nil
}

// List returns a page of hotels matching the filter together with the
// number of the last page for the same filter.  Results are ordered by
// id so pages are stable between requests.
func (r *HotelRepo) List(ctx context.Context, f HotelFilter) ([]model.Hotel, int64, error) {
    where := []string{}
    args := []any{}
    if f.Search != "" {
        where = append(where, "LOWER(title) LIKE ?")
        args = append(args, "%"+strings.ToLower(f.Search)+"%")
    }
    if f.Country != "" {
        where = append(where, "LOWER(country) LIKE ?")
        args = append(args, "%"+strings.ToLower(f.Country)+"%")
    }
    if f.MinPrice > 0 {
        where = append(where, "price > ?")
        args = append(args, f.MinPrice)
    }
    if f.MaxPrice > 0 {
        where = append(where, "price < ?")
        args = append(args, f.MaxPrice)
    }
    cond := "1=1"
    if len(where) > 0 {
        cond = strings.Join(where, " AND ")
    }

    var total int64
    if err := r.db.QueryRowContext(ctx,
        "SELECT COUNT(*) FROM hotels WHERE "+cond, args...).Scan(&total); err != nil {
        return nil, 0, err
    }

    limit := f.Limit
    if limit <= 0 {
        limit = 10
    }
    page := f.Page
    if page <= 0 {
        page = 1
    }
    offset := (page - 1) * limit

    dataSQL := "SELECT " + hotelColumns + " FROM hotels WHERE " + cond +
        " ORDER BY id ASC LIMIT ? OFFSET ?"
    argsData := append(append([]any{}, args...), limit, offset)
    rows, err := r.db.QueryContext(ctx, dataSQL, argsData...)
    if err != nil {
        return nil, 0, err
    }
    defer rows.Close()

    hotels := make([]model.Hotel, 0, limit)
    for rows.Next() {
        h, err := scanHotel(rows)
        if err != nil {
            return nil, 0, err
        }
        hotels = append(hotels, h)
    }
    if err := rows.Err(); err != nil {
        return nil, 0, err
    }
    lastPage := (total + int64(limit) - 1) / int64(limit)
    return hotels, lastPage, nil
}

// Featured returns the six cheapest hotels.
func (r *HotelRepo) Featured(ctx context.Context) ([]model.Hotel, error) {
    rows, err := r.db.QueryContext(ctx,
        "SELECT "+hotelColumns+" FROM hotels ORDER BY price ASC LIMIT 6")
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    hotels := make([]model.Hotel, 0, 6)
    for rows.Next() {
        h, err := scanHotel(rows)
        if err != nil {
            return nil, err
        }
        hotels = append(hotels, h)
    }
    return hotels, rows.Err()
}

// GetByID fetches a single hotel.  Reviews are loaded separately by the
// review repository.
func (r *HotelRepo) GetByID(ctx context.Context, id uint64) (model.Hotel, error) {
    row := r.db.QueryRowContext(ctx,
        "SELECT "+hotelColumns+" FROM hotels WHERE id=? LIMIT 1", id)
    h, err := scanHotel(row)
    if err == sql.ErrNoRows {
        return model.Hotel{}, ErrHotelNotFound
    }
    return h, err
}

// Create inserts a hotel and populates its generated id and timestamps.
func (r *HotelRepo) Create(ctx context.Context, h *model.Hotel) error {
    images, err := json.Marshal(h.Images)
    if err != nil {
        return err
    }
    res, err := r.db.ExecContext(ctx,
        `INSERT INTO hotels (title, description, country, price, rating, images)
         VALUES (?, ?, ?, ?, ?, ?)`,
        h.Title, h.Description, h.Country, h.Price, h.Rating, images)
    if err != nil {
        return err
    }
    id, err := res.LastInsertId()
    if err != nil {
        return err
    }
    h.ID = uint64(id)
    return r.db.QueryRowContext(ctx,
        "SELECT created_at, updated_at FROM hotels WHERE id=?", h.ID).
        Scan(&h.CreatedAt, &h.UpdatedAt)
}

// Update applies a partial update and returns the updated row.
// Returns ErrHotelNotFound when the id does not resolve.
func (r *HotelRepo) Update(ctx context.Context, id uint64, p HotelPatch) (model.Hotel, error) {
    set := []string{}
    args := []any{}
    if p.Title != nil {
        set = append(set, "title=?")
        args = append(args, *p.Title)
    }
    if p.Description != nil {
        set = append(set, "description=?")
        args = append(args, *p.Description)
    }
    if p.Country != nil {
        set = append(set, "country=?")
        args = append(args, *p.Country)
    }
    if p.Price != nil {
        set = append(set, "price=?")
        args = append(args, *p.Price)
    }
    if p.Rating != nil {
        set = append(set, "rating=?")
        args = append(args, *p.Rating)
    }
    if p.Images != nil {
        images, err := json.Marshal(p.Images)
        if err != nil {
            return model.Hotel{}, err
        }
        set = append(set, "images=?")
        args = append(args, images)
    }
    if len(set) > 0 {
        args = append(args, id)
        if _, err := r.db.ExecContext(ctx,
            "UPDATE hotels SET "+strings.Join(set, ", ")+" WHERE id=?", args...); err != nil {
            return model.Hotel{}, err
        }
    }
    return r.GetByID(ctx, id)
}

// Delete removes a hotel and its reviews in one transaction.  Returns
// ErrHotelNotFound when the id does not resolve.
func (r *HotelRepo) Delete(ctx context.Context, id uint64) error {
    tx, err := r.db.BeginTx(ctx, nil)
    if err != nil {
        return err
    }
    defer func() { _ = tx.Rollback() }()

    if _, err := tx.ExecContext(ctx, "DELETE FROM reviews WHERE hotel_id=?", id); err != nil {
        return err
    }
    res, err := tx.ExecContext(ctx, "DELETE FROM hotels WHERE id=?", id)
    if err != nil {
        return err
    }
    n, err := res.RowsAffected()
    if err != nil {
        return err
    }
    if n == 0 {
        return ErrHotelNotFound
    }
    return tx.Commit()
}
