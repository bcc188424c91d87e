package handler

import (
    "context"
    "errors"
    "net/http"
    "strconv"
    "time"

    "github.com/labstack/echo/v4"

    "github.com/dkaverin/hotel-booking/internal/model"
    "github.com/dkaverin/hotel-booking/internal/repository"
)

// UserHandler serves the admin account management endpoints.
type UserHandler struct {
    Users UserStore
}

func NewUserHandler(u UserStore) *UserHandler {
    return &UserHandler{Users: u}
}

// ListUsers handles GET /users.  Admin accounts are filtered out of
// the listing here: the store returns everyone and hiding admins is a
// presentation choice of this endpoint, not a storage rule.
func (h *UserHandler) ListUsers(c echo.Context) error {
    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    users, err := h.Users.List(ctx)
    if err != nil {
        return respondErr(c, http.StatusInternalServerError, "query failed")
    }
    out := make([]userPart, 0, len(users))
    for _, u := range users {
        if u.Role == model.RoleAdmin {
            continue
        }
        out = append(out, mapUser(u))
    }
    return respond(c, http.StatusOK, echo.Map{"users": out})
}

// DeleteUser handles DELETE /users/:id.  The account is removed
// together with all reservations it owns and all reviews it authored;
// the cascade is one transaction, so either everything referencing the
// user disappears or the delete reports an error and nothing changed.
func (h *UserHandler) DeleteUser(c echo.Context) error {
    id, err := strconv.ParseUint(c.Param("id"), 10, 64)
    if err != nil || id == 0 {
        return respondErr(c, http.StatusBadRequest, "invalid id")
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    if err := h.Users.DeleteCascade(ctx, id); err != nil {
        if errors.Is(err, repository.ErrUserNotFound) {
            return respondErr(c, http.StatusNotFound, "user not found")
        }
        return respondErr(c, http.StatusInternalServerError, "delete failed")
    }
    return respond(c, http.StatusOK, nil)
}
