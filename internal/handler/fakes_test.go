package handler

import (
	"context"
	"sort"

	"github.com/dkaverin/hotel-booking/internal/model"
	"github.com/dkaverin/hotel-booking/internal/repository"
	"github.com/dkaverin/hotel-booking/internal/utils"
)

// In-memory stand-ins for the SQL repositories.  They share one memDB
// so the cascade behavior of account deletion can be observed from the
// reservation side, mirroring how the real stores share one database.

type memDB struct {
	userSeq      uint64
	users        map[uint64]model.User
	resSeq       uint64
	reservations []model.Reservation
	revSeq       uint64
	reviews      []model.Review
}

func newMemDB() *memDB {
	return &memDB{users: map[uint64]model.User{}}
}

func (db *memDB) addUser(login, password string, role model.Role) model.User {
	hash, _ := utils.HashPassword(password, 4)
	db.userSeq++
	u := model.User{ID: db.userSeq, Login: login, PasswordHash: hash, Role: role}
	db.users[u.ID] = u
	return u
}

func (db *memDB) addReview(hotelID, authorID uint64, content string) model.Review {
	db.revSeq++
	rv := model.Review{ID: db.revSeq, HotelID: hotelID, AuthorID: authorID, Content: content}
	db.reviews = append(db.reviews, rv)
	return rv
}

type fakeUsers struct{ db *memDB }

func (f *fakeUsers) Create(_ context.Context, login, password string, cost int) (uint64, error) {
	for _, u := range f.db.users {
		if u.Login == login {
			return 0, repository.ErrLoginExists
		}
	}
	u := f.db.addUser(login, password, model.RoleUser)
	return u.ID, nil
}

func (f *fakeUsers) GetByLogin(_ context.Context, login string) (model.User, error) {
	for _, u := range f.db.users {
		if u.Login == login {
			return u, nil
		}
	}
	return model.User{}, repository.ErrUserNotFound
}

func (f *fakeUsers) GetByID(_ context.Context, id uint64) (model.User, error) {
	u, ok := f.db.users[id]
	if !ok {
		return model.User{}, repository.ErrUserNotFound
	}
	return u, nil
}

func (f *fakeUsers) List(_ context.Context) ([]model.User, error) {
	out := make([]model.User, 0, len(f.db.users))
	for _, u := range f.db.users {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeUsers) DeleteCascade(_ context.Context, id uint64) error {
	if _, ok := f.db.users[id]; !ok {
		return repository.ErrUserNotFound
	}
	delete(f.db.users, id)
	kept := f.db.reservations[:0]
	for _, r := range f.db.reservations {
		if r.UserID != id {
			kept = append(kept, r)
		}
	}
	f.db.reservations = kept
	keptRevs := f.db.reviews[:0]
	for _, rv := range f.db.reviews {
		if rv.AuthorID != id {
			keptRevs = append(keptRevs, rv)
		}
	}
	f.db.reviews = keptRevs
	return nil
}

type fakeReservations struct{ db *memDB }

func (f *fakeReservations) Create(_ context.Context, res *model.Reservation) error {
	if _, ok := f.db.users[res.UserID]; !ok {
		return repository.ErrUserNotFound
	}
	f.db.resSeq++
	res.ID = f.db.resSeq
	f.db.reservations = append(f.db.reservations, *res)
	return nil
}

func (f *fakeReservations) detail(r model.Reservation) repository.ReservationDetail {
	owner := f.db.users[r.UserID]
	return repository.ReservationDetail{
		ID:            r.ID,
		HotelID:       r.HotelID,
		DateStart:     r.DateStart,
		DateEnd:       r.DateEnd,
		GuestQuantity: r.GuestQuantity,
		User:          repository.UserRef{ID: owner.ID, Login: owner.Login},
	}
}

func (f *fakeReservations) ListByUser(_ context.Context, userID uint64) ([]repository.ReservationDetail, error) {
	if _, ok := f.db.users[userID]; !ok {
		return nil, repository.ErrUserNotFound
	}
	out := make([]repository.ReservationDetail, 0)
	for _, r := range f.db.reservations {
		if r.UserID == userID {
			out = append(out, f.detail(r))
		}
	}
	return out, nil
}

func (f *fakeReservations) ListAll(_ context.Context) ([]repository.ReservationDetail, error) {
	out := make([]repository.ReservationDetail, 0, len(f.db.reservations))
	for _, r := range f.db.reservations {
		out = append(out, f.detail(r))
	}
	return out, nil
}

func (f *fakeReservations) Update(_ context.Context, id uint64, p repository.ReservationPatch) error {
	for i, r := range f.db.reservations {
		if r.ID != id {
			continue
		}
		if p.DateStart != nil {
			r.DateStart = *p.DateStart
		}
		if p.DateEnd != nil {
			r.DateEnd = *p.DateEnd
		}
		if p.GuestQuantity != nil {
			r.GuestQuantity = *p.GuestQuantity
		}
		f.db.reservations[i] = r
		return nil
	}
	return repository.ErrReservationNotFound
}

func (f *fakeReservations) Delete(_ context.Context, id, hotelID uint64) error {
	for i, r := range f.db.reservations {
		if r.ID == id && r.HotelID == hotelID {
			f.db.reservations = append(f.db.reservations[:i], f.db.reservations[i+1:]...)
			return nil
		}
	}
	return repository.ErrReservationNotFound
}

type fakeHotels struct {
	seq    uint64
	hotels map[uint64]model.Hotel
}

func newFakeHotels() *fakeHotels { return &fakeHotels{hotels: map[uint64]model.Hotel{}} }

func (f *fakeHotels) sorted() []model.Hotel {
	out := make([]model.Hotel, 0, len(f.hotels))
	for _, h := range f.hotels {
		out = append(out, h)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (f *fakeHotels) List(_ context.Context, flt repository.HotelFilter) ([]model.Hotel, int64, error) {
	out := make([]model.Hotel, 0)
	for _, h := range f.sorted() {
		if flt.MinPrice > 0 && h.Price <= flt.MinPrice {
			continue
		}
		if flt.MaxPrice > 0 && h.Price >= flt.MaxPrice {
			continue
		}
		out = append(out, h)
	}
	limit := int64(flt.Limit)
	if limit <= 0 {
		limit = 10
	}
	lastPage := (int64(len(out)) + limit - 1) / limit
	return out, lastPage, nil
}

func (f *fakeHotels) Featured(_ context.Context) ([]model.Hotel, error) {
	out := f.sorted()
	sort.Slice(out, func(i, j int) bool { return out[i].Price < out[j].Price })
	if len(out) > 6 {
		out = out[:6]
	}
	return out, nil
}

func (f *fakeHotels) GetByID(_ context.Context, id uint64) (model.Hotel, error) {
	h, ok := f.hotels[id]
	if !ok {
		return model.Hotel{}, repository.ErrHotelNotFound
	}
	return h, nil
}

func (f *fakeHotels) Create(_ context.Context, h *model.Hotel) error {
	f.seq++
	h.ID = f.seq
	f.hotels[h.ID] = *h
	return nil
}

func (f *fakeHotels) Update(_ context.Context, id uint64, p repository.HotelPatch) (model.Hotel, error) {
	h, ok := f.hotels[id]
	if !ok {
		return model.Hotel{}, repository.ErrHotelNotFound
	}
	if p.Title != nil {
		h.Title = *p.Title
	}
	if p.Description != nil {
		h.Description = *p.Description
	}
	if p.Country != nil {
		h.Country = *p.Country
	}
	if p.Price != nil {
		h.Price = *p.Price
	}
	if p.Rating != nil {
		h.Rating = *p.Rating
	}
	if p.Images != nil {
		h.Images = p.Images
	}
	f.hotels[id] = h
	return h, nil
}

func (f *fakeHotels) Delete(_ context.Context, id uint64) error {
	if _, ok := f.hotels[id]; !ok {
		return repository.ErrHotelNotFound
	}
	delete(f.hotels, id)
	return nil
}

type fakeReviews struct{ db *memDB }

func (f *fakeReviews) ListByHotel(_ context.Context, hotelID uint64) ([]repository.ReviewDetail, error) {
	out := make([]repository.ReviewDetail, 0)
	for _, rv := range f.db.reviews {
		if rv.HotelID != hotelID {
			continue
		}
		author := f.db.users[rv.AuthorID]
		out = append(out, repository.ReviewDetail{
			ID:      rv.ID,
			Content: rv.Content,
			Author:  repository.UserRef{ID: author.ID, Login: author.Login},
		})
	}
	return out, nil
}
