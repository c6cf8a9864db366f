package auth

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/dmitrijs2005/userauth/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

func newCodec(t *testing.T, secret, alg string) *TokenCodec {
	t.Helper()
	c, err := NewTokenCodec(secret, alg)
	if err != nil {
		t.Fatalf("NewTokenCodec error: %v", err)
	}
	return c
}

func TestIssueAndParse_RoundTrip(t *testing.T) {
	t.Parallel()

	for _, alg := range []string{"HS256", "HS384", "HS512"} {
		c := newCodec(t, "super-secret", alg)

		tok, err := c.Issue(42, "alice", time.Hour)
		if err != nil {
			t.Fatalf("%s: Issue error: %v", alg, err)
		}

		claims, err := c.ParseAndVerify(tok)
		if err != nil {
			t.Fatalf("%s: ParseAndVerify error: %v", alg, err)
		}
		if claims.UserID != 42 || claims.Username != "alice" {
			t.Fatalf("%s: claims mismatch: %+v", alg, claims)
		}
		if !claims.ExpiresAt.After(time.Now()) {
			t.Fatalf("%s: expiry must be in the future, got %v", alg, claims.ExpiresAt)
		}
	}
}

func TestIssue_ClaimNames(t *testing.T) {
	t.Parallel()

	c := newCodec(t, "k", "HS256")
	tok, err := c.Issue(7, "bob", time.Minute)
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	raw := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(tok, raw); err != nil {
		t.Fatalf("ParseUnverified error: %v", err)
	}
	if raw["sub"] != "bob" {
		t.Fatalf("sub: got %v", raw["sub"])
	}
	if raw["id"] != float64(7) {
		t.Fatalf("id: got %v", raw["id"])
	}
	if _, ok := raw["exp"]; !ok {
		t.Fatalf("exp claim missing")
	}
}

func TestParseAndVerify_Expired(t *testing.T) {
	t.Parallel()

	c := newCodec(t, "secret", "HS256")
	tok, err := c.Issue(1, "u1", -1*time.Second)
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	_, err = c.ParseAndVerify(tok)
	if !errors.Is(err, common.ErrExpiredToken) {
		t.Fatalf("expected common.ErrExpiredToken, got %v", err)
	}
}

func TestParseAndVerify_ExpiresExactlyAtExp(t *testing.T) {
	t.Parallel()

	c := newCodec(t, "secret", "HS256")
	issued := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	c.nowFunc = func() time.Time { return issued }

	tok, err := c.Issue(1, "u1", time.Minute)
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	c.nowFunc = func() time.Time { return issued.Add(59 * time.Second) }
	if _, err := c.ParseAndVerify(tok); err != nil {
		t.Fatalf("token must be valid before exp, got %v", err)
	}

	c.nowFunc = func() time.Time { return issued.Add(time.Minute) }
	if _, err := c.ParseAndVerify(tok); !errors.Is(err, common.ErrExpiredToken) {
		t.Fatalf("token must be expired at exp, got %v", err)
	}
}

func TestParseAndVerify_ExpiredWithWrongSignature(t *testing.T) {
	t.Parallel()

	other := newCodec(t, "other-secret", "HS256")
	tok, err := other.Issue(1, "u1", -time.Minute)
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	c := newCodec(t, "secret", "HS256")
	if _, err := c.ParseAndVerify(tok); !errors.Is(err, common.ErrExpiredToken) {
		t.Fatalf("expected common.ErrExpiredToken, got %v", err)
	}
}

func TestParseAndVerify_WrongSecret(t *testing.T) {
	t.Parallel()

	tok, err := newCodec(t, "right-secret", "HS256").Issue(2, "u2", time.Hour)
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	_, err = newCodec(t, "wrong-secret", "HS256").ParseAndVerify(tok)
	if !errors.Is(err, common.ErrMalformedToken) {
		t.Fatalf("expected common.ErrMalformedToken for invalid signature, got %v", err)
	}
}

func TestParseAndVerify_AlgorithmMismatch(t *testing.T) {
	t.Parallel()

	tok, err := newCodec(t, "secret", "HS512").Issue(3, "u3", time.Hour)
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	_, err = newCodec(t, "secret", "HS256").ParseAndVerify(tok)
	if !errors.Is(err, common.ErrMalformedToken) {
		t.Fatalf("expected common.ErrMalformedToken for algorithm mismatch, got %v", err)
	}
}

func TestParseAndVerify_NoneAlgorithmRejected(t *testing.T) {
	t.Parallel()

	unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "mallory",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
		UserID: 1,
	})
	tok, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("SignedString error: %v", err)
	}

	_, err = newCodec(t, "secret", "HS256").ParseAndVerify(tok)
	if !errors.Is(err, common.ErrMalformedToken) {
		t.Fatalf("expected common.ErrMalformedToken, got %v", err)
	}
}

func TestParseAndVerify_MissingExpiry(t *testing.T) {
	t.Parallel()

	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{Subject: "u"},
		UserID:           1,
	}).SignedString([]byte("secret"))
	if err != nil {
		t.Fatalf("SignedString error: %v", err)
	}

	_, err = newCodec(t, "secret", "HS256").ParseAndVerify(tok)
	if !errors.Is(err, common.ErrMalformedToken) {
		t.Fatalf("expected common.ErrMalformedToken, got %v", err)
	}
}

func TestParseAndVerify_EmptyAndMalformed(t *testing.T) {
	t.Parallel()

	c := newCodec(t, "k", "HS256")

	for _, in := range []string{"", "   ", "\t\n"} {
		if _, err := c.ParseAndVerify(in); !errors.Is(err, common.ErrEmptyToken) {
			t.Fatalf("ParseAndVerify(%q): expected common.ErrEmptyToken, got %v", in, err)
		}
	}

	for _, in := range []string{"not.a.jwt", "garbage", strings.Repeat("a.", 3)} {
		if _, err := c.ParseAndVerify(in); !errors.Is(err, common.ErrMalformedToken) {
			t.Fatalf("ParseAndVerify(%q): expected common.ErrMalformedToken, got %v", in, err)
		}
	}
}

func TestNewTokenCodec_Rejects(t *testing.T) {
	t.Parallel()

	if _, err := NewTokenCodec("", "HS256"); err == nil {
		t.Fatal("expected error for empty secret")
	}
	for _, alg := range []string{"", "none", "RS256", "ES256", "HS1"} {
		if _, err := NewTokenCodec("k", alg); err == nil {
			t.Fatalf("expected error for algorithm %q", alg)
		}
	}
}
