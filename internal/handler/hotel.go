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

// HotelHandler serves the hotel catalog: public browse endpoints and
// the admin management endpoints.  The browse endpoints sit behind the
// Redis response cache registered in the router.
type HotelHandler struct {
    Hotels  HotelStore
    Reviews ReviewStore
}

func NewHotelHandler(h HotelStore, r ReviewStore) *HotelHandler {
    return &HotelHandler{Hotels: h, Reviews: r}
}

type hotelPart struct {
    ID          uint64   `json:"id"`
    Title       string   `json:"title"`
    Description string   `json:"description"`
    Country     string   `json:"country"`
    Price       float64  `json:"price"`
    Rating      float64  `json:"rating"`
    Images      []string `json:"images"`
}

func mapHotel(h model.Hotel) hotelPart {
    return hotelPart{
        ID:          h.ID,
        Title:       h.Title,
        Description: h.Description,
        Country:     h.Country,
        Price:       h.Price,
        Rating:      h.Rating,
        Images:      h.Images,
    }
}

type hotelReq struct {
    Title       *string  `json:"title"`
    Description *string  `json:"description"`
    Country     *string  `json:"country"`
    Price       *float64 `json:"price"`
    Rating      *float64 `json:"rating"`
    Images      []string `json:"images"`
}

// List handles GET /hotels with search, country and price filters plus
// pagination.  The response carries the page of hotels and the number
// of the last page for the same filter.
func (h *HotelHandler) List(c echo.Context) error {
    f := repository.HotelFilter{
        Search:  c.QueryParam("search"),
        Country: c.QueryParam("country"),
        Limit:   10,
        Page:    1,
    }
    if v, err := strconv.ParseFloat(c.QueryParam("min"), 64); err == nil {
        f.MinPrice = v
    }
    if v, err := strconv.ParseFloat(c.QueryParam("max"), 64); err == nil {
        f.MaxPrice = v
    }
    if v, err := strconv.Atoi(c.QueryParam("limit")); err == nil && v > 0 {
        f.Limit = v
    }
    if v, err := strconv.Atoi(c.QueryParam("page")); err == nil && v > 0 {
        f.Page = v
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    hotels, lastPage, err := h.Hotels.List(ctx, f)
    if err != nil {
        return respondErr(c, http.StatusInternalServerError, "query failed")
    }
    out := make([]hotelPart, 0, len(hotels))
    for _, hot := range hotels {
        out = append(out, mapHotel(hot))
    }
    return respond(c, http.StatusOK, echo.Map{"hotels": out, "lastPage": lastPage})
}

// Featured handles GET /hotels/featured: the six cheapest hotels.
func (h *HotelHandler) Featured(c echo.Context) error {
    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    hotels, err := h.Hotels.Featured(ctx)
    if err != nil {
        return respondErr(c, http.StatusInternalServerError, "query failed")
    }
    out := make([]hotelPart, 0, len(hotels))
    for _, hot := range hotels {
        out = append(out, mapHotel(hot))
    }
    return respond(c, http.StatusOK, echo.Map{"hotels": out})
}

// Get handles GET /hotels/:id and embeds the hotel's reviews with
// their authors expanded.
func (h *HotelHandler) Get(c echo.Context) error {
    id, err := strconv.ParseUint(c.Param("id"), 10, 64)
    if err != nil || id == 0 {
        return respondErr(c, http.StatusBadRequest, "invalid id")
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    hot, err := h.Hotels.GetByID(ctx, id)
    if err != nil {
        if errors.Is(err, repository.ErrHotelNotFound) {
            return respondErr(c, http.StatusNotFound, "hotel not found")
        }
        return respondErr(c, http.StatusInternalServerError, "query failed")
    }
    reviews, err := h.Reviews.ListByHotel(ctx, id)
    if err != nil {
        return respondErr(c, http.StatusInternalServerError, "query failed")
    }
    return respond(c, http.StatusOK, echo.Map{"hotel": mapHotel(hot), "reviews": reviews})
}

// CreateHotel handles POST /hotels for admins.
func (h *HotelHandler) CreateHotel(c echo.Context) error {
    var req hotelReq
    if err := c.Bind(&req); err != nil {
        return respondErr(c, http.StatusBadRequest, "invalid body")
    }
    if req.Title == nil || *req.Title == "" {
        return respondErr(c, http.StatusBadRequest, "title is required")
    }
    hot := model.Hotel{Title: *req.Title, Images: req.Images}
    if req.Description != nil {
        hot.Description = *req.Description
    }
    if req.Country != nil {
        hot.Country = *req.Country
    }
    if req.Price != nil {
        hot.Price = *req.Price
    }
    if req.Rating != nil {
        hot.Rating = *req.Rating
    }
    if hot.Images == nil {
        hot.Images = []string{}
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    if err := h.Hotels.Create(ctx, &hot); err != nil {
        return respondErr(c, http.StatusInternalServerError, "create hotel failed")
    }
    return respond(c, http.StatusCreated, echo.Map{"hotel": mapHotel(hot)})
}

// UpdateHotel handles PATCH /hotels/:id for admins.  Only the supplied
// fields change; the full updated hotel is returned.
func (h *HotelHandler) UpdateHotel(c echo.Context) error {
    id, err := strconv.ParseUint(c.Param("id"), 10, 64)
    if err != nil || id == 0 {
        return respondErr(c, http.StatusBadRequest, "invalid id")
    }
    var req hotelReq
    if err := c.Bind(&req); err != nil {
        return respondErr(c, http.StatusBadRequest, "invalid body")
    }
    patch := repository.HotelPatch{
        Title:       req.Title,
        Description: req.Description,
        Country:     req.Country,
        Price:       req.Price,
        Rating:      req.Rating,
        Images:      req.Images,
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    hot, err := h.Hotels.Update(ctx, id, patch)
    if err != nil {
        if errors.Is(err, repository.ErrHotelNotFound) {
            return respondErr(c, http.StatusNotFound, "hotel not found")
        }
        return respondErr(c, http.StatusInternalServerError, "update failed")
    }
    return respond(c, http.StatusOK, echo.Map{"hotel": mapHotel(hot)})
}

// DeleteHotel handles DELETE /hotels/:id for admins.  The hotel's
// reviews go with it in the same transaction.
func (h *HotelHandler) DeleteHotel(c echo.Context) error {
    id, err := strconv.ParseUint(c.Param("id"), 10, 64)
    if err != nil || id == 0 {
        return respondErr(c, http.StatusBadRequest, "invalid id")
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    if err := h.Hotels.Delete(ctx, id); err != nil {
        if errors.Is(err, repository.ErrHotelNotFound) {
            return respondErr(c, http.StatusNotFound, "hotel not found")
        }
        return respondErr(c, http.StatusInternalServerError, "delete failed")
    }
    return respond(c, http.StatusOK, nil)
}
