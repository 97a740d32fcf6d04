package postgres_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Ibrahim4Grace/spot/internal/auth/domain"
	repo "github.com/Ibrahim4Grace/spot/internal/auth/repository/postgres"
	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var userColumns = []string{
	"id", "first_name", "last_name", "email", "password_hash",
	"role", "email_verified", "is_active", "created_at", "updated_at",
}

func userRow(u *domain.User) *pgxmock.Rows {
	return pgxmock.NewRows(userColumns).AddRow(
		u.ID, u.FirstName, u.LastName, u.Email, u.PasswordHash,
		u.Role, u.EmailVerified, u.Active, u.CreatedAt, u.UpdatedAt)
}

func testUser() *domain.User {
	now := time.Now()
	return &domain.User{
		ID:           "user-123",
		FirstName:    "Ada",
		LastName:     "Lovelace",
		Email:        "ada@example.com",
		PasswordHash: "hash",
		Role:         domain.RoleBorrower,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

func TestUserRepository_Find(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	store := repo.NewStore(mock)
	ctx := context.Background()
	expected := testUser()

	t.Run("by email", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM users WHERE email").
			WithArgs(expected.Email).
			WillReturnRows(userRow(expected))

		user, err := store.Users().Find(ctx, domain.ByEmail(expected.Email))
		require.NoError(t, err)
		assert.Equal(t, expected.ID, user.ID)
		assert.Equal(t, domain.RoleBorrower, user.Role)
	})

	t.Run("by id", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM users WHERE id").
			WithArgs(expected.ID).
			WillReturnRows(userRow(expected))

		user, err := store.Users().Find(ctx, domain.ByID(expected.ID))
		require.NoError(t, err)
		assert.Equal(t, expected.Email, user.Email)
	})

	t.Run("not found", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM users WHERE email").
			WithArgs("nobody@example.com").
			WillReturnError(pgx.ErrNoRows)

		user, err := store.Users().Find(ctx, domain.ByEmail("nobody@example.com"))
		require.NoError(t, err)
		assert.Nil(t, user)
	})

	t.Run("database error", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM users WHERE email").
			WithArgs(expected.Email).
			WillReturnError(errors.New("db error"))

		_, err := store.Users().Find(ctx, domain.ByEmail(expected.Email))
		assert.Error(t, err)
	})
}

func TestUserRepository_CreateAndUpdate(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	store := repo.NewStore(mock)
	ctx := context.Background()
	user := testUser()

	t.Run("create", func(t *testing.T) {
		mock.ExpectExec("INSERT INTO users").
			WithArgs(user.ID, user.FirstName, user.LastName, user.Email, user.PasswordHash,
				user.Role, user.EmailVerified, user.Active, user.CreatedAt, user.UpdatedAt).
			WillReturnResult(pgxmock.NewResult("INSERT", 1))

		assert.NoError(t, store.Users().Create(ctx, user))
	})

	t.Run("update", func(t *testing.T) {
		mock.ExpectExec("UPDATE users").
			WithArgs(user.ID, user.FirstName, user.LastName, user.Email, user.PasswordHash,
				user.Role, user.EmailVerified, user.Active, user.UpdatedAt).
			WillReturnResult(pgxmock.NewResult("UPDATE", 1))

		assert.NoError(t, store.Users().Update(ctx, user))
	})

	t.Run("create error", func(t *testing.T) {
		mock.ExpectExec("INSERT INTO users").
			WithArgs(user.ID, user.FirstName, user.LastName, user.Email, user.PasswordHash,
				user.Role, user.EmailVerified, user.Active, user.CreatedAt, user.UpdatedAt).
			WillReturnError(errors.New("db error"))

		assert.Error(t, store.Users().Create(ctx, user))
	})
}

func TestOtpRepository(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	store := repo.NewStore(mock)
	ctx := context.Background()
	now := time.Now()
	otp := &domain.Otp{
		UserID:    "user-123",
		CodeHash:  "code-hash",
		ExpiresAt: now.Add(15 * time.Minute),
		CreatedAt: now,
	}

	t.Run("get", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM otps").
			WithArgs(otp.UserID).
			WillReturnRows(pgxmock.NewRows([]string{"user_id", "code_hash", "expires_at", "verified", "created_at"}).
				AddRow(otp.UserID, otp.CodeHash, otp.ExpiresAt, false, otp.CreatedAt))

		got, err := store.Otps().Get(ctx, otp.UserID)
		require.NoError(t, err)
		assert.Equal(t, otp.CodeHash, got.CodeHash)
		assert.False(t, got.Verified)
	})

	t.Run("get missing", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM otps").
			WithArgs("ghost").
			WillReturnError(pgx.ErrNoRows)

		got, err := store.Otps().Get(ctx, "ghost")
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("create", func(t *testing.T) {
		mock.ExpectExec("INSERT INTO otps").
			WithArgs(otp.UserID, otp.CodeHash, otp.ExpiresAt, otp.Verified, otp.CreatedAt).
			WillReturnResult(pgxmock.NewResult("INSERT", 1))

		assert.NoError(t, store.Otps().Create(ctx, otp))
	})

	t.Run("mark verified claims the row", func(t *testing.T) {
		mock.ExpectExec("UPDATE otps").
			WithArgs(otp.UserID, pgxmock.AnyArg()).
			WillReturnResult(pgxmock.NewResult("UPDATE", 1))

		claimed, err := store.Otps().MarkVerified(ctx, otp.UserID, now)
		require.NoError(t, err)
		assert.True(t, claimed)
	})

	t.Run("mark verified loses the race", func(t *testing.T) {
		mock.ExpectExec("UPDATE otps").
			WithArgs(otp.UserID, pgxmock.AnyArg()).
			WillReturnResult(pgxmock.NewResult("UPDATE", 0))

		claimed, err := store.Otps().MarkVerified(ctx, otp.UserID, now)
		require.NoError(t, err)
		assert.False(t, claimed)
	})

	t.Run("delete is idempotent", func(t *testing.T) {
		mock.ExpectExec("DELETE FROM otps").
			WithArgs(otp.UserID).
			WillReturnResult(pgxmock.NewResult("DELETE", 1))
		assert.NoError(t, store.Otps().Delete(ctx, otp.UserID))

		mock.ExpectExec("DELETE FROM otps").
			WithArgs(otp.UserID).
			WillReturnResult(pgxmock.NewResult("DELETE", 0))
		assert.NoError(t, store.Otps().Delete(ctx, otp.UserID))
	})
}

func TestStore_WithinTx(t *testing.T) {
	t.Run("commit on success", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		store := repo.NewStore(mock)
		user := testUser()

		mock.ExpectBegin()
		mock.ExpectExec("INSERT INTO users").
			WithArgs(user.ID, user.FirstName, user.LastName, user.Email, user.PasswordHash,
				user.Role, user.EmailVerified, user.Active, user.CreatedAt, user.UpdatedAt).
			WillReturnResult(pgxmock.NewResult("INSERT", 1))
		mock.ExpectCommit()

		err = store.WithinTx(context.Background(), func(ctx context.Context, tx domain.Store) error {
			return tx.Users().Create(ctx, user)
		})

		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("rollback on error", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		store := repo.NewStore(mock)

		mock.ExpectBegin()
		mock.ExpectRollback()

		wantErr := errors.New("boom")
		err = store.WithinTx(context.Background(), func(ctx context.Context, tx domain.Store) error {
			return wantErr
		})

		assert.ErrorIs(t, err, wantErr)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
