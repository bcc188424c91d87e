package model

import "time"

// Hotel mirrors the `hotels` table.  Images are kept as a JSON array
// in a single column and unpacked by the repository when scanning.
// Reviews are not embedded; they live in the reviews table keyed on
// hotel_id and are joined in by the repository for the detail view.
//
// Fields:
//  ID          – primary key identifier.
//  Title       – display name of the hotel.
//  Description – free-form description text.
//  Country     – country the hotel is located in.
//  Price       – price per night.
//  Rating      – aggregate rating.
//  Images      – list of image URLs.
//  CreatedAt   – creation timestamp.
//  UpdatedAt   – last update timestamp.
type Hotel struct {
    ID          uint64    // hotels.id
    Title       string    // hotels.title
    Description string    // hotels.description
    Country     string    // hotels.country
    Price       float64   // hotels.price
    Rating      float64   // hotels.rating
    Images      []string  // hotels.images (JSON array)
    CreatedAt   time.Time // hotels.created_at
    UpdatedAt   time.Time // hotels.updated_at
}
