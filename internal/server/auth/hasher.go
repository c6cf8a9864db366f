package auth

import (
	"fmt"

	"github.com/dmitrijs2005/userauth/internal/common"
	"golang.org/x/crypto/bcrypt"
)

// MaxPasswordBytes is the longest input bcrypt hashes without truncation.
const MaxPasswordBytes = 72

var (
	ErrEmptyPassword   = fmt.Errorf("%w: password cannot be empty", common.ErrorValidation)
	ErrPasswordTooLong = fmt.Errorf("%w: password must be at most %d bytes", common.ErrorValidation, MaxPasswordBytes)
)

// BcryptHasher hashes passwords with bcrypt. Every call uses a fresh random
// salt which is embedded in the returned hash.
type BcryptHasher struct {
	cost int
}

// NewBcryptHasher returns a hasher using cost, or bcrypt.DefaultCost when
// cost is outside the range bcrypt accepts.
func NewBcryptHasher(cost int) *BcryptHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &BcryptHasher{cost: cost}
}

// Hash returns the bcrypt hash of password.
func (h *BcryptHasher) Hash(password string) (string, error) {
	if password == "" {
		return "", ErrEmptyPassword
	}
	if len(password) > MaxPasswordBytes {
		return "", ErrPasswordTooLong
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// Verify reports whether password matches hash. A malformed hash is a mismatch,
// and so is a password longer than bcrypt would have hashed.
func (h *BcryptHasher) Verify(password, hash string) bool {
	if len(password) > MaxPasswordBytes {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
