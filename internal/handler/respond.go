package handler

import (
    "github.com/labstack/echo/v4"
)

// All routes answer with one envelope shape: failures are
// {"error": "<message>"} and successes are {"error": null, "data": ...}.

func respond(c echo.Context, status int, data any) error {
    return c.JSON(status, echo.Map{"error": nil, "data": data})
}

func respondErr(c echo.Context, status int, msg string) error {
    return c.JSON(status, echo.Map{"error": msg})
}
