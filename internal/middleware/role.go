package middleware

import (
    "net/http"

    "github.com/labstack/echo/v4"

    "github.com/dkaverin/hotel-booking/internal/model"
)

// RequireRole returns a middleware that enforces that an authenticated
// user is present and holds one of the specified roles.  A request
// without identity is treated as having no privileges and rejected.
// Role sets are matched by exact membership: an admin does not pass a
// check that names only other roles.  It assumes Authenticate has run
// earlier in the chain.
func RequireRole(roles ...model.Role) echo.MiddlewareFunc {
    allowed := make(map[model.Role]bool, len(roles))
    for _, r := range roles {
        allowed[r] = true
    }
    return func(next echo.HandlerFunc) echo.HandlerFunc {
        return func(c echo.Context) error {
            u, ok := CurrentUser(c)
            if !ok || !allowed[u.Role] {
                return c.JSON(http.StatusForbidden, echo.Map{"error": "access denied"})
            }
            return next(c)
        }
    }
}
