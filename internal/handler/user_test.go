package handler

import (
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dkaverin/hotel-booking/internal/model"
)

func TestListUsersFiltersAdmins(t *testing.T) {
	db := newMemDB()
	db.addUser("root", "pw", model.RoleAdmin)
	db.addUser("alice", "pw", model.RoleUser)
	db.addUser("bob", "pw", model.RoleUser)
	h := NewUserHandler(&fakeUsers{db: db})

	e := echo.New()
	req, rec := jsonRequest(http.MethodGet, "/users", "")
	require.NoError(t, h.ListUsers(e.NewContext(req, rec)))
	require.Equal(t, http.StatusOK, rec.Code)

	users := envelope(t, rec)["data"].(map[string]any)["users"].([]any)
	require.Len(t, users, 2)
	for _, item := range users {
		assert.NotEqual(t, float64(model.RoleAdmin), item.(map[string]any)["role"])
	}
}

func TestDeleteUserCascades(t *testing.T) {
	db := newMemDB()
	alice := db.addUser("alice", "pw", model.RoleUser)
	bob := db.addUser("bob", "pw", model.RoleUser)
	uh := NewUserHandler(&fakeUsers{db: db})
	rh := NewReservationHandler(&fakeUsers{db: db}, &fakeReservations{db: db})
	createReservation(t, rh, "1", `{"hotelId":5,"dateStart":"2024-01-01","dateEnd":"2024-01-05"}`)

	hotels := newFakeHotels()
	hh := NewHotelHandler(hotels, &fakeReviews{db: db})
	hot := seedHotel(t, hotels, "Grand Palace", "Spain", 300)
	db.addReview(hot.ID, alice.ID, "will not survive the account")
	db.addReview(hot.ID, bob.ID, "stays")

	e := echo.New()
	req, rec := jsonRequest(http.MethodDelete, "/users/1", "")
	c := e.NewContext(req, rec)
	c.SetPath("/users/:id")
	c.SetParamNames("id")
	c.SetParamValues("1")
	require.NoError(t, uh.DeleteUser(c))
	require.Equal(t, http.StatusOK, rec.Code)

	// The account is gone and nothing still references it.
	code, _ := listForUser(t, rh, "1")
	assert.Equal(t, http.StatusNotFound, code)
	req, rec = jsonRequest(http.MethodGet, "/reservations", "")
	require.NoError(t, rh.ListAll(e.NewContext(req, rec)))
	data := envelope(t, rec)["data"].(map[string]any)
	assert.Empty(t, data["reservations"])
	_, ok := db.users[alice.ID]
	assert.False(t, ok)

	// Reviews authored by the deleted account are gone from the hotel
	// detail; other authors' reviews are untouched.
	code, env := hotelGet(t, hh, "1")
	require.Equal(t, http.StatusOK, code)
	reviews := env["data"].(map[string]any)["reviews"].([]any)
	require.Len(t, reviews, 1)
	assert.Equal(t, "bob", reviews[0].(map[string]any)["author"].(map[string]any)["login"])
}

func TestDeleteUserNotFound(t *testing.T) {
	h := NewUserHandler(&fakeUsers{db: newMemDB()})
	e := echo.New()
	req, rec := jsonRequest(http.MethodDelete, "/users/9", "")
	c := e.NewContext(req, rec)
	c.SetPath("/users/:id")
	c.SetParamNames("id")
	c.SetParamValues("9")
	require.NoError(t, h.DeleteUser(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "user not found", envelope(t, rec)["error"])
}
