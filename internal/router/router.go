package router // package router defines how HTTP routes are registered for the API

import (
    "github.com/labstack/echo/v4"

    "github.com/dkaverin/hotel-booking/internal/handler"
    "github.com/dkaverin/hotel-booking/internal/middleware"
    "github.com/dkaverin/hotel-booking/internal/model"
)

// RegisterRoutes registers routes that carry no auth requirement at
// all.  Currently that is only the health check used by load balancers.
func RegisterRoutes(e *echo.Echo) {
    e.GET("/healthz", handler.Health)
}

// RegisterAuth registers the credential endpoints.  All three are
// public: register and login establish the token cookie, logout clears
// it, and none of them require an existing session.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler) {
    e.POST("/register", a.Register)
    e.POST("/login", a.Login)
    e.POST("/logout", a.Logout)
}

// RegisterHotels registers the hotel catalog.  The browse endpoints
// are public and sit behind the response cache; the management
// endpoints require the admin role.
func RegisterHotels(e *echo.Echo, h *handler.HotelHandler, cache echo.MiddlewareFunc) {
    e.GET("/hotels", h.List, cache)
    e.GET("/hotels/featured", h.Featured, cache)
    e.GET("/hotels/:id", h.Get, cache)

    admin := middleware.RequireRole(model.RoleAdmin)
    e.POST("/hotels", h.CreateHotel, admin)
    e.PATCH("/hotels/:id", h.UpdateHotel, admin)
    e.DELETE("/hotels/:id", h.DeleteHotel, admin)
}

// RegisterUsers registers account management and reservation routes.
// Reservation CRUD requires any authenticated identity; user listing,
// user deletion and the global reservation listing require admin.
// Role sets are exact: listing them both is what lets an admin call
// the authenticated endpoints too.
func RegisterUsers(e *echo.Echo, u *handler.UserHandler, r *handler.ReservationHandler) {
    admin := middleware.RequireRole(model.RoleAdmin)
    authed := middleware.RequireRole(model.RoleAdmin, model.RoleUser)

    e.GET("/users", u.ListUsers, admin)
    e.DELETE("/users/:id", u.DeleteUser, admin)

    e.POST("/users/:id/reservations", r.Create, authed)
    e.GET("/users/:id/reservations", r.ListByUser, authed)
    e.PATCH("/reservations/:id", r.Update, authed)
    e.DELETE("/reservations/:id/hotels/:hotelId", r.Delete, authed)
    e.GET("/reservations", r.ListAll, admin)
}
