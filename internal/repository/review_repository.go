package repository

import (
    "context"
    "database/sql"
    "time"
)

// ReviewRepo reads reviews for the hotel detail view.  Review creation
// and deletion endpoints are not part of this API; rows are written by
// other tooling and removed through the user and hotel cascade deletes.
type ReviewRepo struct {
    db *sql.DB
}

// NewReviewRepo returns a new ReviewRepo bound to the given database.
func NewReviewRepo(db *sql.DB) *ReviewRepo { return &ReviewRepo{db: db} }

// ReviewDetail is a review row with its author reference expanded.
type ReviewDetail struct {
    ID        uint64    `json:"id"`
    Content   string    `json:"content"`
    Author    UserRef   `json:"author"`
    CreatedAt time.Time `json:"created_at"`
}

// ListByHotel returns a hotel's reviews with authors expanded, oldest
// first.  Reviews whose author was deleted do not exist by invariant,
// so an inner join is safe.
func (r *ReviewRepo) ListByHotel(ctx context.Context, hotelID uint64) ([]ReviewDetail, error) {
    const q = `SELECT rv.id, rv.content, u.id, u.login, rv.created_at
               FROM reviews rv
               JOIN users u ON u.id = rv.author_id
               WHERE rv.hotel_id = ?
               ORDER BY rv.id ASC`
    rows, err := r.db.QueryContext(ctx, q, hotelID)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    reviews := make([]ReviewDetail, 0)
    for rows.Next() {
        var d ReviewDetail
        if err := rows.Scan(&d.ID, &d.Content, &d.Author.ID, &d.Author.Login, &d.CreatedAt); err != nil {
            return nil, err
        }
        reviews = append(reviews, d)
    }
    return reviews, rows.Err()
}
