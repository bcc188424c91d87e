package model

import "time"

// Review is a comment left on a hotel by a user.  Reviews have no
// management endpoints of their own; the entity exists because hotel
// detail embeds its reviews and because deleting a user must also
// remove everything that user authored.
//
// Fields:
//  ID        – primary key identifier.
//  HotelID   – hotel the review belongs to.
//  AuthorID  – user who wrote the review.
//  Content   – review text.
//  CreatedAt – creation timestamp.
type Review struct {
    ID        uint64    // reviews.id
    HotelID   uint64    // reviews.hotel_id
    AuthorID  uint64    // reviews.author_id
    Content   string    // reviews.content
    CreatedAt time.Time // reviews.created_at
}
