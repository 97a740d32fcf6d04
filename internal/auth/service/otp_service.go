package service

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	"github.com/Ibrahim4Grace/spot/internal/auth/domain"
	apperr "github.com/Ibrahim4Grace/spot/internal/errors"
	"github.com/Ibrahim4Grace/spot/pkg/constant"
	"golang.org/x/crypto/bcrypt"
)

// OtpService manages one-time numeric codes: generation, verification and
// invalidation. Codes are bcrypt-hashed at rest; the plaintext is returned
// exactly once, to be carried in the outbound email.
type OtpService struct {
	otps   domain.OtpRepository
	window time.Duration
	now    func() time.Time
}

func NewOtpService(otps domain.OtpRepository) *OtpService {
	return &OtpService{
		otps:   otps,
		window: constant.OtpWindow,
		now:    time.Now,
	}
}

// Create persists a fresh OTP through the service's own repository.
func (s *OtpService) Create(ctx context.Context, userID string) (*domain.Otp, string, error) {
	return s.CreateIn(ctx, s.otps, userID)
}

// CreateIn persists through the given repository handle so the caller can run
// it inside its own transaction, e.g. atomically with a user insert. It does
// not deduplicate; the caller deletes any prior record first.
func (s *OtpService) CreateIn(ctx context.Context, otps domain.OtpRepository, userID string) (*domain.Otp, string, error) {
	code, err := generateCode()
	if err != nil {
		return nil, "", apperr.Internal("failed to generate OTP")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(code), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", apperr.Internal("failed to hash OTP")
	}

	now := s.now()
	otp := &domain.Otp{
		UserID:    userID,
		CodeHash:  string(hashed),
		ExpiresAt: now.Add(s.window),
		CreatedAt: now,
	}

	if err := otps.Create(ctx, otp); err != nil {
		return nil, "", err
	}

	return otp, code, nil
}

// Verify fails closed: missing record, expired record and hash mismatch all
// return false. On success the record is marked verified but not deleted, so
// IsVerified can be polled before the caller commits its follow-up step. The
// conditional MarkVerified ensures only one concurrent caller claims a code.
func (s *OtpService) Verify(ctx context.Context, userID, candidate string) bool {
	otp, err := s.otps.Get(ctx, userID)
	if err != nil || otp == nil {
		return false
	}

	if otp.Expired(s.now()) {
		return false
	}

	if bcrypt.CompareHashAndPassword([]byte(otp.CodeHash), []byte(candidate)) != nil {
		return false
	}

	claimed, err := s.otps.MarkVerified(ctx, userID, s.now())

	return err == nil && claimed
}

func (s *OtpService) IsVerified(ctx context.Context, userID string) bool {
	otp, err := s.otps.Get(ctx, userID)
	if err != nil || otp == nil {
		return false
	}

	return !otp.Expired(s.now()) && otp.Verified
}

func (s *OtpService) Delete(ctx context.Context, userID string) error {
	return s.otps.Delete(ctx, userID)
}

func generateCode() (string, error) {
	upper := new(big.Int).Exp(big.NewInt(10), big.NewInt(constant.OtpLength), nil)

	n, err := rand.Int(rand.Reader, upper)
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("%0*d", constant.OtpLength, n), nil
}
