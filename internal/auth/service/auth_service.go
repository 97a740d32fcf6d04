package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/Ibrahim4Grace/spot/internal/auth/domain"
	"github.com/Ibrahim4Grace/spot/internal/auth/dto"
	apperr "github.com/Ibrahim4Grace/spot/internal/errors"
	"github.com/google/uuid"
)

// AuthService composes the store, token, password, OTP and mail services into
// the registration, login, verification and password-reset flows. It owns the
// transactional boundaries; email dispatch always happens outside them.
type AuthService struct {
	store     domain.Store
	tokens    TokenGenerator
	passwords *PasswordService
	otps      *OtpService
	mailer    domain.Mailer
	logger    *slog.Logger
}

func NewAuthService(store domain.Store, tokens TokenGenerator, passwords *PasswordService,
	otps *OtpService, mailer domain.Mailer, logger *slog.Logger) *AuthService {
	return &AuthService{
		store:     store,
		tokens:    tokens,
		passwords: passwords,
		otps:      otps,
		mailer:    mailer,
		logger:    logger,
	}
}

// Register creates the user and its OTP atomically, then dispatches the
// confirmation email best-effort. The user starts unverified and inactive.
func (s *AuthService) Register(ctx context.Context, input dto.RegisterInput) (*dto.RegisterOutput, error) {
	role := domain.Role(input.Role)
	if input.Role == "" {
		role = domain.RoleBorrower
	}

	var (
		user     *domain.User
		plainOtp string
		token    string
	)

	err := s.store.WithinTx(ctx, func(ctx context.Context, tx domain.Store) error {
		existing, err := tx.Users().Find(ctx, domain.ByEmail(input.Email))
		if err != nil {
			return err
		}
		if existing != nil {
			return apperr.ErrEmailAlreadyInUse
		}

		hash, err := s.passwords.Hash(input.Password)
		if err != nil {
			return err
		}

		now := time.Now()
		user = &domain.User{
			ID:           uuid.NewString(),
			FirstName:    input.FirstName,
			LastName:     input.LastName,
			Email:        input.Email,
			PasswordHash: hash,
			Role:         role,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		if err := tx.Users().Create(ctx, user); err != nil {
			return err
		}

		_, plainOtp, err = s.otps.CreateIn(ctx, tx.Otps(), user.ID)
		if err != nil {
			return err
		}

		token, err = s.tokens.IssueEmailVerification(user.ID, user.Role)

		return err
	})
	if err != nil {
		return nil, err
	}

	s.dispatch(ctx, domain.Mail{
		Variant: domain.MailRegisterOtp,
		To:      user.Email,
		Context: map[string]string{"first_name": user.FirstName, "otp": plainOtp},
	})

	return &dto.RegisterOutput{User: dto.NewUserOutput(user), Token: token}, nil
}

// VerifyRegistrationOtp confirms the code presented with the email
// verification token, activates the account and retires the OTP.
func (s *AuthService) VerifyRegistrationOtp(ctx context.Context, token, code string) (*dto.UserOutput, error) {
	user, err := s.userFromVerificationToken(ctx, token)
	if err != nil {
		return nil, err
	}

	if !s.otps.Verify(ctx, user.ID, code) {
		return nil, apperr.ErrInvalidOtp
	}

	user.EmailVerified = true
	user.Active = true
	user.UpdatedAt = time.Now()
	if err := s.store.Users().Update(ctx, user); err != nil {
		return nil, err
	}

	if err := s.otps.Delete(ctx, user.ID); err != nil {
		return nil, err
	}

	s.dispatch(ctx, domain.Mail{
		Variant: domain.MailWelcome,
		To:      user.Email,
		Context: map[string]string{"first_name": user.FirstName},
	})

	out := dto.NewUserOutput(user)

	return &out, nil
}

// Login never distinguishes an unknown email from a wrong password.
func (s *AuthService) Login(ctx context.Context, input dto.LoginInput) (*dto.LoginOutput, error) {
	user, err := s.store.Users().Find(ctx, domain.ByEmail(input.Email))
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperr.ErrInvalidCredentials
	}

	match, err := s.passwords.Compare(input.Password, user.PasswordHash)
	if err != nil {
		return nil, err
	}
	if !match {
		return nil, apperr.ErrInvalidCredentials
	}

	accessToken, err := s.tokens.IssueAccess(user.ID, user.Role)
	if err != nil {
		return nil, err
	}

	refreshToken, err := s.tokens.IssueRefresh(user.ID, user.Role)
	if err != nil {
		return nil, err
	}

	return &dto.LoginOutput{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User:         dto.NewUserOutput(user),
	}, nil
}

// Refresh mints a new access token from a valid refresh token. An invalid or
// expired refresh token sends the caller back to login.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*dto.RefreshOutput, error) {
	claims, err := s.tokens.VerifyRefresh(refreshToken)
	if err != nil {
		return nil, apperr.ErrInvalidToken
	}

	accessToken, err := s.tokens.IssueAccess(claims.UserID, domain.Role(claims.Role))
	if err != nil {
		return nil, err
	}

	return &dto.RefreshOutput{AccessToken: accessToken}, nil
}

// ForgotPassword replaces any live OTP with a fresh one and returns the
// verification token. The code itself only travels by email.
func (s *AuthService) ForgotPassword(ctx context.Context, email string) (*dto.ForgotPasswordOutput, error) {
	user, err := s.store.Users().Find(ctx, domain.ByEmail(email))
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperr.ErrAccountNotFound
	}

	if err := s.otps.Delete(ctx, user.ID); err != nil {
		return nil, err
	}

	_, plainOtp, err := s.otps.Create(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	token, err := s.tokens.IssueEmailVerification(user.ID, user.Role)
	if err != nil {
		return nil, err
	}

	s.dispatch(ctx, domain.Mail{
		Variant: domain.MailForgotOtp,
		To:      user.Email,
		Context: map[string]string{"first_name": user.FirstName, "otp": plainOtp},
	})

	return &dto.ForgotPasswordOutput{Token: token}, nil
}

// VerifyResetOtp confirms the reset code without touching the verified/active
// flags; it only marks the OTP verified to unlock ResetPassword.
func (s *AuthService) VerifyResetOtp(ctx context.Context, token, code string) (*dto.UserOutput, error) {
	user, err := s.userFromVerificationToken(ctx, token)
	if err != nil {
		return nil, err
	}

	if !s.otps.Verify(ctx, user.ID, code) {
		return nil, apperr.ErrInvalidOtp
	}

	out := dto.NewUserOutput(user)

	return &out, nil
}

// ResetPassword commits a new password once the OTP has been verified.
func (s *AuthService) ResetPassword(ctx context.Context, token, newPassword string) error {
	user, err := s.userFromVerificationToken(ctx, token)
	if err != nil {
		return err
	}

	if !s.otps.IsVerified(ctx, user.ID) {
		return apperr.ErrOtpNotVerified
	}

	same, err := s.passwords.Compare(newPassword, user.PasswordHash)
	if err != nil {
		return err
	}
	if same {
		return apperr.ErrDuplicatePassword
	}

	hash, err := s.passwords.Hash(newPassword)
	if err != nil {
		return err
	}

	user.PasswordHash = hash
	user.UpdatedAt = time.Now()
	if err := s.store.Users().Update(ctx, user); err != nil {
		return err
	}

	if err := s.otps.Delete(ctx, user.ID); err != nil {
		return err
	}

	s.dispatch(ctx, domain.Mail{
		Variant: domain.MailResetSuccessful,
		To:      user.Email,
		Context: map[string]string{"first_name": user.FirstName},
	})

	return nil
}

// CurrentUser resolves the identity attached by the access guard.
func (s *AuthService) CurrentUser(ctx context.Context, userID string) (*dto.UserOutput, error) {
	user, err := s.store.Users().Find(ctx, domain.ByID(userID))
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperr.ErrUserNotFound
	}

	out := dto.NewUserOutput(user)

	return &out, nil
}

func (s *AuthService) userFromVerificationToken(ctx context.Context, token string) (*domain.User, error) {
	claims, err := s.tokens.VerifyEmailVerification(token)
	if err != nil {
		return nil, apperr.ErrInvalidToken
	}

	user, err := s.store.Users().Find(ctx, domain.ByID(claims.UserID))
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperr.ErrUserNotFound
	}

	return user, nil
}

// dispatch enqueues an email without letting a queue failure affect the flow.
func (s *AuthService) dispatch(ctx context.Context, mail domain.Mail) {
	if err := s.mailer.Send(ctx, mail); err != nil {
		s.logger.Warn("email dispatch failed", "variant", mail.Variant, "to", mail.To, "error", err)
	}
}
