// Package session carries the signed access token in an HTTP cookie.
package session

import (
	"net/http"
	"strings"
	"time"

	"github.com/dmitrijs2005/userauth/internal/common"
	"github.com/dmitrijs2005/userauth/internal/server/auth"
	"github.com/dmitrijs2005/userauth/internal/server/models"
)

// TokenCodec issues and verifies access tokens.
type TokenCodec interface {
	Issue(userID int64, username string, ttl time.Duration) (string, error)
	ParseAndVerify(token string) (*auth.TokenClaims, error)
}

type Manager struct {
	codec  TokenCodec
	ttl    time.Duration
	secure bool
}

func NewManager(codec TokenCodec, ttl time.Duration, secure bool) *Manager {
	return &Manager{codec: codec, ttl: ttl, secure: secure}
}

// Attach issues a token for u and sets it as the session cookie on w.
// The cookie has no Max-Age; the token's own expiry bounds its validity.
func (m *Manager) Attach(w http.ResponseWriter, u *models.User) error {
	token, err := m.codec.Issue(u.ID, u.UserName, m.ttl)
	if err != nil {
		return err
	}

	http.SetCookie(w, &http.Cookie{
		Name:     common.SessionCookieName,
		Value:    token,
		Path:     common.SessionCookiePath,
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

// Clear tells the client to drop the session cookie. It is safe to call
// when no cookie was ever set.
func (m *Manager) Clear(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     common.SessionCookieName,
		Value:    "",
		Path:     common.SessionCookiePath,
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// Extract returns the raw cookie value without validating it.
func (m *Manager) Extract(r *http.Request) (string, bool) {
	c, err := r.Cookie(common.SessionCookieName)
	if err != nil {
		return "", false
	}
	return c.Value, true
}

func (m *Manager) Validate(token string) (*auth.TokenClaims, error) {
	if strings.TrimSpace(token) == "" {
		return nil, common.ErrEmptyToken
	}
	return m.codec.ParseAndVerify(token)
}

// SubjectIDOf reports the user id carried by the request's session, or false
// when there is no usable session.
func (m *Manager) SubjectIDOf(r *http.Request) (int64, bool) {
	token, ok := m.Extract(r)
	if !ok {
		return 0, false
	}
	claims, err := m.Validate(token)
	if err != nil {
		return 0, false
	}
	return claims.UserID, true
}
