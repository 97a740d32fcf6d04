package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Ibrahim4Grace/spot/internal/auth/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Querier is the subset of pgx used by the repositories. *pgxpool.Pool,
// pgx.Tx and pgxmock all satisfy it, so the same code runs against the pool,
// inside a transaction, and under test.
type Querier interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Begin(ctx context.Context) (pgx.Tx, error)
}

type Store struct {
	db Querier
}

func NewStore(db Querier) *Store {
	return &Store{db: db}
}

func (s *Store) Users() domain.UserRepository { return &userRepository{db: s.db} }

func (s *Store) Otps() domain.OtpRepository { return &otpRepository{db: s.db} }

// WithinTx runs fn with a Store bound to a single transaction. It rolls back
// on error or panic and commits otherwise.
func (s *Store) WithinTx(ctx context.Context, fn func(ctx context.Context, s domain.Store) error) (err error) {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback(ctx)
			panic(p)
		}
		if err != nil {
			_ = tx.Rollback(ctx)
			return
		}
		err = tx.Commit(ctx)
	}()

	err = fn(ctx, NewStore(tx))

	return err
}

type userRepository struct {
	db Querier
}

const userColumns = `id, first_name, last_name, email, password_hash, role, email_verified, is_active, created_at, updated_at`

func (r *userRepository) Find(ctx context.Context, ident domain.Identifier) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1 LIMIT 1`
	arg := ident.Email
	if ident.ID != "" {
		query = `SELECT ` + userColumns + ` FROM users WHERE id = $1 LIMIT 1`
		arg = ident.ID
	}

	row := r.db.QueryRow(ctx, query, arg)

	var user domain.User
	err := row.Scan(&user.ID, &user.FirstName, &user.LastName, &user.Email, &user.PasswordHash,
		&user.Role, &user.EmailVerified, &user.Active, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	return &user, nil
}

func (r *userRepository) Create(ctx context.Context, user *domain.User) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO users (id, first_name, last_name, email, password_hash, role, email_verified, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`, user.ID, user.FirstName, user.LastName, user.Email, user.PasswordHash,
		user.Role, user.EmailVerified, user.Active, user.CreatedAt, user.UpdatedAt)

	return err
}

func (r *userRepository) Update(ctx context.Context, user *domain.User) error {
	_, err := r.db.Exec(ctx, `
		UPDATE users
		SET first_name = $2, last_name = $3, email = $4, password_hash = $5,
		    role = $6, email_verified = $7, is_active = $8, updated_at = $9
		WHERE id = $1
	`, user.ID, user.FirstName, user.LastName, user.Email, user.PasswordHash,
		user.Role, user.EmailVerified, user.Active, user.UpdatedAt)

	return err
}

type otpRepository struct {
	db Querier
}

func (r *otpRepository) Get(ctx context.Context, userID string) (*domain.Otp, error) {
	row := r.db.QueryRow(ctx, `
		SELECT user_id, code_hash, expires_at, verified, created_at
		FROM otps
		WHERE user_id = $1
		LIMIT 1
	`, userID)

	var otp domain.Otp
	err := row.Scan(&otp.UserID, &otp.CodeHash, &otp.ExpiresAt, &otp.Verified, &otp.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get otp: %w", err)
	}

	return &otp, nil
}

func (r *otpRepository) Create(ctx context.Context, otp *domain.Otp) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO otps (user_id, code_hash, expires_at, verified, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`, otp.UserID, otp.CodeHash, otp.ExpiresAt, otp.Verified, otp.CreatedAt)

	return err
}

// MarkVerified is the concurrency guard for one-time use: the conditional
// update lets exactly one caller observe a row change for a given code.
func (r *otpRepository) MarkVerified(ctx context.Context, userID string, now time.Time) (bool, error) {
	tag, err := r.db.Exec(ctx, `
		UPDATE otps
		SET verified = TRUE
		WHERE user_id = $1 AND NOT verified AND expires_at > $2
	`, userID, now)
	if err != nil {
		return false, fmt.Errorf("failed to mark otp verified: %w", err)
	}

	return tag.RowsAffected() == 1, nil
}

func (r *otpRepository) Delete(ctx context.Context, userID string) error {
	_, err := r.db.Exec(ctx, `DELETE FROM otps WHERE user_id = $1`, userID)

	return err
}
