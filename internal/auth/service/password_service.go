package service

import (
	"errors"

	apperr "github.com/Ibrahim4Grace/spot/internal/errors"
	"github.com/Ibrahim4Grace/spot/pkg/constant"
	"golang.org/x/crypto/bcrypt"
)

// PasswordService wraps bcrypt with a configured work factor. Primitive
// failures surface as internal errors, never as auth failures.
type PasswordService struct {
	cost int
}

func NewPasswordService(cost int) *PasswordService {
	if cost == 0 {
		cost = constant.DefaultBcryptCost
	}

	return &PasswordService{cost: cost}
}

func (s *PasswordService) Hash(plain string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(plain), s.cost)
	if err != nil {
		return "", apperr.Internal("failed to hash password")
	}

	return string(hashed), nil
}

// Compare reports whether plain matches hash. A mismatch is (false, nil); a
// malformed hash is an internal error so it is never mistaken for bad
// credentials.
func (s *PasswordService) Compare(plain, hash string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain))
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return false, nil
	default:
		return false, apperr.Internal("failed to compare password")
	}
}
