// Package auth holds the credential primitives: signed session tokens
// and password hashing.
package auth

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/userauth/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// Claims is the token payload: the registered claims ("sub" carries the
// username, "exp" the expiry) plus the numeric user id.
type Claims struct {
	jwt.RegisteredClaims
	UserID int64 `json:"id"`
}

// TokenClaims is what a verified token yields to callers.
type TokenClaims struct {
	UserID    int64
	Username  string
	ExpiresAt time.Time
}

// TokenCodec creates and verifies HMAC-signed, time-limited tokens.
// The secret and the algorithm are fixed for the lifetime of the codec.
type TokenCodec struct {
	secret  []byte
	method  jwt.SigningMethod
	nowFunc func() time.Time
}

// NewTokenCodec returns a codec for one of the HMAC algorithms (HS256, HS384, HS512).
func NewTokenCodec(secretKey, algorithm string) (*TokenCodec, error) {
	if secretKey == "" {
		return nil, errors.New("secret key is required")
	}
	method, ok := jwt.GetSigningMethod(algorithm).(*jwt.SigningMethodHMAC)
	if !ok {
		return nil, fmt.Errorf("unsupported signing algorithm %q", algorithm)
	}
	return &TokenCodec{
		secret:  []byte(secretKey),
		method:  method,
		nowFunc: time.Now,
	}, nil
}

// Issue signs a token for the user that expires ttl from now.
func (c *TokenCodec) Issue(userID int64, username string, ttl time.Duration) (string, error) {
	token := jwt.NewWithClaims(c.method, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   username,
			ExpiresAt: jwt.NewNumericDate(c.nowFunc().Add(ttl)),
		},
		UserID: userID,
	})

	tokenString, err := token.SignedString(c.secret)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// ParseAndVerify checks the signature, the algorithm and the expiry of
// tokenString and returns its claims.
//
// Failures are one of common.ErrEmptyToken, common.ErrExpiredToken or
// common.ErrMalformedToken (possibly wrapped). A token whose exp is not in
// the future is reported as expired even when its signature does not verify.
func (c *TokenCodec) ParseAndVerify(tokenString string) (*TokenClaims, error) {
	if strings.TrimSpace(tokenString) == "" {
		return nil, common.ErrEmptyToken
	}

	claims := &Claims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return c.secret, nil
	},
		jwt.WithValidMethods([]string{c.method.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(c.nowFunc),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) || c.expiredUnverified(tokenString) {
			return nil, common.ErrExpiredToken
		}
		return nil, fmt.Errorf("%w: %v", common.ErrMalformedToken, err)
	}

	return &TokenClaims{
		UserID:    claims.UserID,
		Username:  claims.Subject,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}

// expiredUnverified reports whether the token is well-formed enough to read
// an exp claim and that claim is not in the future. Used only to classify a
// failure; it never makes a token acceptable.
func (c *TokenCodec) expiredUnverified(tokenString string) bool {
	claims := &Claims{}
	if _, _, err := jwt.NewParser().ParseUnverified(tokenString, claims); err != nil {
		return false
	}
	if claims.ExpiresAt == nil {
		return false
	}
	return !c.nowFunc().Before(claims.ExpiresAt.Time)
}
