package utils // package utils provides helper functions for token creation and hashing

import (
    "errors"
    "time"

    "github.com/golang-jwt/jwt/v5" // JWT library for creating and parsing signed tokens
)

// ErrInvalidToken is returned by ParseSessionToken when the token is
// absent, malformed, signed with an unexpected method, carries a bad
// signature or has expired.  Callers treat all of these the same way:
// the request carries no identity.
var ErrInvalidToken = errors.New("invalid token")

// SessionToken represents a signed JWT session token along with its
// expiry.  The Token field contains the serialized JWT string; Exp
// stores the UTC expiration time.  Session tokens are transported in
// an HTTP-only cookie and are fully stateless: validity is decided by
// the signature and expiry alone, never by a server-side lookup.
type SessionToken struct {
    Token string    // the serialized JWT string
    Exp   time.Time // the UTC expiration time
}

// NewSessionToken builds and signs an HS256 JWT binding the given user
// ID.  It takes the signing secret, the user ID as the token subject
// and a TTL in minutes.  The JWT includes standard claims: subject
// (sub), expiration (exp) and issued at (iat).  The secret is loaded
// once at startup and never mutated, so issuance is a pure function
// over it.
func NewSessionToken(secret string, userID uint64, ttlMin int) (SessionToken, error) {
    exp := time.Now().UTC().Add(time.Duration(ttlMin) * time.Minute)
    claims := jwt.MapClaims{
        "sub": userID,
        "exp": exp.Unix(),
        "iat": time.Now().UTC().Unix(),
    }
    t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
    signed, err := t.SignedString([]byte(secret))
    if err != nil {
        return SessionToken{}, err
    }
    return SessionToken{Token: signed, Exp: exp}, nil
}

// ParseSessionToken verifies a raw session token string and returns the
// user ID it binds.  The signing method must be HMAC; tokens signed
// with any other algorithm are rejected.  An empty string, a failed
// signature check or an expired token all yield ErrInvalidToken.
func ParseSessionToken(secret, raw string) (uint64, error) {
    if raw == "" {
        return 0, ErrInvalidToken
    }
    tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
        if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
            return nil, ErrInvalidToken
        }
        return []byte(secret), nil
    })
    if err != nil || !tok.Valid {
        return 0, ErrInvalidToken
    }
    claims, ok := tok.Claims.(jwt.MapClaims)
    if !ok {
        return 0, ErrInvalidToken
    }
    // JWT numeric values decode as float64.
    sub, ok := claims["sub"].(float64)
    if !ok || sub <= 0 {
        return 0, ErrInvalidToken
    }
    return uint64(sub), nil
}
