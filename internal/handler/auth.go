package handler

import (
    "context"
    "errors"
    "net/http"
    "strings"
    "time"

    "github.com/labstack/echo/v4"

    "github.com/dkaverin/hotel-booking/internal/config"
    "github.com/dkaverin/hotel-booking/internal/middleware"
    "github.com/dkaverin/hotel-booking/internal/model"
    "github.com/dkaverin/hotel-booking/internal/repository"
    "github.com/dkaverin/hotel-booking/internal/utils"
)

// AuthHandler bundles dependencies for the credential endpoints.
type AuthHandler struct {
    Cfg   config.Config
    Users UserStore
}

func NewAuthHandler(cfg config.Config, u UserStore) *AuthHandler {
    return &AuthHandler{Cfg: cfg, Users: u}
}

// ----- DTOs -----

type credentialsReq struct {
    Login    string `json:"login"`
    Password string `json:"password"`
}

type userPart struct {
    ID    uint64     `json:"id"`
    Login string     `json:"login"`
    Role  model.Role `json:"role"`
}

func mapUser(u model.User) userPart {
    return userPart{ID: u.ID, Login: u.Login, Role: u.Role}
}

// setTokenCookie attaches the session token as an HTTP-only cookie so
// scripts in the browser never see it.
func setTokenCookie(c echo.Context, tok utils.SessionToken) {
    c.SetCookie(&http.Cookie{
        Name:     middleware.TokenCookie,
        Value:    tok.Token,
        Expires:  tok.Exp,
        HttpOnly: true,
        Path:     "/",
    })
}

// Register creates a user, issues a session token and sets it as the
// token cookie.  An empty password is rejected before anything is
// stored; a taken login is reported as a conflict.
func (h *AuthHandler) Register(c echo.Context) error {
    var req credentialsReq
    if err := c.Bind(&req); err != nil {
        return respondErr(c, http.StatusBadRequest, "invalid body")
    }
    req.Login = strings.TrimSpace(req.Login)
    if req.Login == "" {
        return respondErr(c, http.StatusBadRequest, "login is required")
    }
    if req.Password == "" {
        return respondErr(c, http.StatusBadRequest, "password is empty")
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    uid, err := h.Users.Create(ctx, req.Login, req.Password, h.Cfg.BcryptCost)
    if err != nil {
        if errors.Is(err, repository.ErrLoginExists) {
            return respondErr(c, http.StatusConflict, "login already exists")
        }
        return respondErr(c, http.StatusInternalServerError, "create user failed")
    }

    tok, err := utils.NewSessionToken(h.Cfg.JWTSecret, uid, h.Cfg.SessionTTL)
    if err != nil {
        return respondErr(c, http.StatusInternalServerError, "issue token failed")
    }
    setTokenCookie(c, tok)

    return respond(c, http.StatusCreated, echo.Map{
        "user": userPart{ID: uid, Login: req.Login, Role: model.RoleUser},
    })
}

// Login verifies a credential pair and sets a fresh token cookie.  A
// missing user and a wrong password are distinct failures; neither
// path does any work beyond the one lookup plus the hash comparison.
func (h *AuthHandler) Login(c echo.Context) error {
    var req credentialsReq
    if err := c.Bind(&req); err != nil {
        return respondErr(c, http.StatusBadRequest, "invalid body")
    }
    req.Login = strings.TrimSpace(req.Login)
    if req.Login == "" || req.Password == "" {
        return respondErr(c, http.StatusBadRequest, "login/password required")
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    u, err := h.Users.GetByLogin(ctx, req.Login)
    if err != nil {
        if errors.Is(err, repository.ErrUserNotFound) {
            return respondErr(c, http.StatusUnauthorized, "user not found")
        }
        return respondErr(c, http.StatusInternalServerError, "query failed")
    }
    if !utils.VerifyPassword(u.PasswordHash, req.Password) {
        return respondErr(c, http.StatusUnauthorized, "wrong password")
    }

    tok, err := utils.NewSessionToken(h.Cfg.JWTSecret, u.ID, h.Cfg.SessionTTL)
    if err != nil {
        return respondErr(c, http.StatusInternalServerError, "issue token failed")
    }
    setTokenCookie(c, tok)

    return respond(c, http.StatusOK, echo.Map{"user": mapUser(u)})
}

// Logout clears the token cookie.  Tokens are stateless so there is
// nothing to revoke server-side; the session ends when the cookie does.
func (h *AuthHandler) Logout(c echo.Context) error {
    c.SetCookie(&http.Cookie{
        Name:     middleware.TokenCookie,
        Value:    "",
        MaxAge:   -1,
        HttpOnly: true,
        Path:     "/",
    })
    return respond(c, http.StatusOK, nil)
}
