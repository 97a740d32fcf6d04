package domain

//go:generate mockgen -destination=../../mocks/mock_store.go -package=mocks github.com/Ibrahim4Grace/spot/internal/auth/domain Store,UserRepository,OtpRepository,Mailer

import (
	"context"
	"time"
)

// Identifier selects a user either by id or by email.
type Identifier struct {
	ID    string
	Email string
}

func ByID(id string) Identifier { return Identifier{ID: id} }

func ByEmail(email string) Identifier { return Identifier{Email: email} }

// UserRepository returns (nil, nil) when no user matches.
type UserRepository interface {
	Find(ctx context.Context, ident Identifier) (*User, error)
	Create(ctx context.Context, user *User) error
	Update(ctx context.Context, user *User) error
}

type OtpRepository interface {
	Get(ctx context.Context, userID string) (*Otp, error)
	Create(ctx context.Context, otp *Otp) error
	// MarkVerified sets the verified flag on the live, unexpired record.
	// It reports false when the record was already verified, expired or
	// missing, so only one of two concurrent callers can claim a code.
	MarkVerified(ctx context.Context, userID string, now time.Time) (bool, error)
	// Delete is idempotent.
	Delete(ctx context.Context, userID string) error
}

// Store bundles the repositories and the unit of work. Repositories obtained
// from the Store passed to a WithinTx callback run inside that transaction.
type Store interface {
	Users() UserRepository
	Otps() OtpRepository
	WithinTx(ctx context.Context, fn func(ctx context.Context, s Store) error) error
}

// Mail variants understood by the delivery worker.
const (
	MailRegisterOtp     = "register-otp"
	MailWelcome         = "welcome"
	MailForgotOtp       = "forgot-otp"
	MailResetSuccessful = "reset-successful"
)

type Mail struct {
	Variant string            `json:"variant"`
	To      string            `json:"to"`
	Context map[string]string `json:"context,omitempty"`
}

// Mailer enqueues a notification. Delivery is asynchronous and best-effort;
// callers must not treat a Send failure as fatal to their own flow.
type Mailer interface {
	Send(ctx context.Context, mail Mail) error
}
