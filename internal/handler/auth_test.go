package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dkaverin/hotel-booking/internal/config"
	"github.com/dkaverin/hotel-booking/internal/middleware"
	"github.com/dkaverin/hotel-booking/internal/model"
	"github.com/dkaverin/hotel-booking/internal/utils"
)

func testConfig() config.Config {
	return config.Config{JWTSecret: "test-secret", SessionTTL: 60, BcryptCost: 4}
}

func jsonRequest(method, target, body string) (*http.Request, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	return req, httptest.NewRecorder()
}

func envelope(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func tokenCookie(rec *httptest.ResponseRecorder) *http.Cookie {
	for _, ck := range rec.Result().Cookies() {
		if ck.Name == middleware.TokenCookie {
			return ck
		}
	}
	return nil
}

func TestRegister(t *testing.T) {
	db := newMemDB()
	h := NewAuthHandler(testConfig(), &fakeUsers{db: db})
	e := echo.New()

	req, rec := jsonRequest(http.MethodPost, "/register", `{"login":"alice","password":"secret123"}`)
	require.NoError(t, h.Register(e.NewContext(req, rec)))
	require.Equal(t, http.StatusCreated, rec.Code)

	env := envelope(t, rec)
	assert.Nil(t, env["error"])
	user := env["data"].(map[string]any)["user"].(map[string]any)
	assert.Equal(t, "alice", user["login"])

	// The cookie carries a verifiable token bound to the new account.
	ck := tokenCookie(rec)
	require.NotNil(t, ck)
	assert.True(t, ck.HttpOnly)
	uid, err := utils.ParseSessionToken("test-secret", ck.Value)
	require.NoError(t, err)

	// The stored credential is a hash, never the plaintext.
	stored := db.users[uid]
	assert.NotEqual(t, "secret123", stored.PasswordHash)
	assert.True(t, utils.VerifyPassword(stored.PasswordHash, "secret123"))
	assert.Equal(t, model.RoleUser, stored.Role)
}

func TestRegisterDuplicateLogin(t *testing.T) {
	db := newMemDB()
	db.addUser("alice", "pw", model.RoleUser)
	h := NewAuthHandler(testConfig(), &fakeUsers{db: db})
	e := echo.New()

	req, rec := jsonRequest(http.MethodPost, "/register", `{"login":"alice","password":"other"}`)
	require.NoError(t, h.Register(e.NewContext(req, rec)))
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "login already exists", envelope(t, rec)["error"])
}

func TestRegisterEmptyPassword(t *testing.T) {
	h := NewAuthHandler(testConfig(), &fakeUsers{db: newMemDB()})
	e := echo.New()

	req, rec := jsonRequest(http.MethodPost, "/register", `{"login":"alice","password":""}`)
	require.NoError(t, h.Register(e.NewContext(req, rec)))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "password is empty", envelope(t, rec)["error"])
}

func TestLogin(t *testing.T) {
	db := newMemDB()
	u := db.addUser("alice", "secret123", model.RoleUser)
	h := NewAuthHandler(testConfig(), &fakeUsers{db: db})
	e := echo.New()

	req, rec := jsonRequest(http.MethodPost, "/login", `{"login":"alice","password":"secret123"}`)
	require.NoError(t, h.Login(e.NewContext(req, rec)))
	require.Equal(t, http.StatusOK, rec.Code)

	ck := tokenCookie(rec)
	require.NotNil(t, ck)
	uid, err := utils.ParseSessionToken("test-secret", ck.Value)
	require.NoError(t, err)
	assert.Equal(t, u.ID, uid)
}

func TestLoginWrongPassword(t *testing.T) {
	db := newMemDB()
	db.addUser("alice", "secret123", model.RoleUser)
	h := NewAuthHandler(testConfig(), &fakeUsers{db: db})
	e := echo.New()

	req, rec := jsonRequest(http.MethodPost, "/login", `{"login":"alice","password":"nope"}`)
	require.NoError(t, h.Login(e.NewContext(req, rec)))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "wrong password", envelope(t, rec)["error"])
}

func TestLoginUnknownUser(t *testing.T) {
	h := NewAuthHandler(testConfig(), &fakeUsers{db: newMemDB()})
	e := echo.New()

	req, rec := jsonRequest(http.MethodPost, "/login", `{"login":"ghost","password":"pw"}`)
	require.NoError(t, h.Login(e.NewContext(req, rec)))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "user not found", envelope(t, rec)["error"])
}

func TestLogoutClearsCookie(t *testing.T) {
	h := NewAuthHandler(testConfig(), &fakeUsers{db: newMemDB()})
	e := echo.New()

	req, rec := jsonRequest(http.MethodPost, "/logout", "")
	require.NoError(t, h.Logout(e.NewContext(req, rec)))
	assert.Equal(t, http.StatusOK, rec.Code)

	ck := tokenCookie(rec)
	require.NotNil(t, ck)
	assert.Empty(t, ck.Value)
	assert.Negative(t, ck.MaxAge)
}
