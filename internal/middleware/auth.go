package middleware // middleware provides shared request processing for handlers

import (
    "context"
    "errors"
    "net/http"
    "time"

    "github.com/labstack/echo/v4"

    "github.com/dkaverin/hotel-booking/internal/model"
    "github.com/dkaverin/hotel-booking/internal/repository"
    "github.com/dkaverin/hotel-booking/internal/utils"
)

// TokenCookie is the name of the HTTP-only cookie carrying the session token.
const TokenCookie = "token"

// userKey is the context key under which the resolved user is stored.
const userKey = "user"

// UserStore is the subset of the user repository the authentication
// gate needs: resolving a token subject to a live user record.
type UserStore interface {
    GetByID(ctx context.Context, id uint64) (model.User, error)
}

// Authenticate returns an Echo middleware that resolves the session
// token cookie into a live user and stores it in the request context.
// A missing or invalid token is not fatal here: the request proceeds
// with no identity attached so public routes stay reachable, and it is
// RequireRole's job to reject anonymous requests where identity is
// required.  A token that verifies but whose subject no longer exists
// is a hard authentication failure and stops the request.
func Authenticate(secret string, users UserStore) echo.MiddlewareFunc {
    return func(next echo.HandlerFunc) echo.HandlerFunc {
        return func(c echo.Context) error {
            cookie, err := c.Cookie(TokenCookie)
            if err != nil || cookie.Value == "" {
                return next(c) // no token: anonymous
            }
            uid, err := utils.ParseSessionToken(secret, cookie.Value)
            if err != nil {
                return next(c) // bad token: anonymous
            }

            ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
            defer cancel()
            u, err := users.GetByID(ctx, uid)
            if err != nil {
                if errors.Is(err, repository.ErrUserNotFound) {
                    return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authenticated user not found"})
                }
                return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
            }
            c.Set(userKey, u)
            return next(c)
        }
    }
}

// CurrentUser returns the user resolved by Authenticate, if any.
func CurrentUser(c echo.Context) (model.User, bool) {
    u, ok := c.Get(userKey).(model.User)
    return u, ok
}
