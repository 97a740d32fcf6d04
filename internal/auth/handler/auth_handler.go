package handler

import (
	"errors"
	"strings"

	"github.com/Ibrahim4Grace/spot/internal/auth/dto"
	"github.com/Ibrahim4Grace/spot/internal/auth/service"
	apperr "github.com/Ibrahim4Grace/spot/internal/errors"
	"github.com/Ibrahim4Grace/spot/pkg/constant"
	"github.com/gofiber/fiber/v2"
)

type AuthHandler struct {
	authService *service.AuthService
}

func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var input dto.RegisterInput
	if err := c.BodyParser(&input); err != nil {
		return badRequest(c, "invalid input")
	}

	if err := input.Validate(); err != nil {
		return respondError(c, err)
	}

	out, err := h.authService.Register(c.Context(), input)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": constant.MsgVerifyOtpSent,
		"data":    out,
	})
}

func (h *AuthHandler) VerifyOtp(c *fiber.Ctx) error {
	token, err := bearerToken(c)
	if err != nil {
		return respondError(c, err)
	}

	var input dto.OtpInput
	if err := c.BodyParser(&input); err != nil {
		return badRequest(c, "invalid input")
	}

	if err := input.Validate(); err != nil {
		return respondError(c, err)
	}

	user, err := h.authService.VerifyRegistrationOtp(c.Context(), token, input.Otp)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": constant.MsgEmailVerified,
		"data":    user,
	})
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var input dto.LoginInput
	if err := c.BodyParser(&input); err != nil {
		return badRequest(c, "invalid input")
	}

	if err := input.Validate(); err != nil {
		return respondError(c, err)
	}

	out, err := h.authService.Login(c.Context(), input)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": constant.MsgLoginSuccessful,
		"data":    out,
	})
}

func (h *AuthHandler) Refresh(c *fiber.Ctx) error {
	var input dto.RefreshInput
	if err := c.BodyParser(&input); err != nil {
		return badRequest(c, "invalid input")
	}

	if err := input.Validate(); err != nil {
		return respondError(c, err)
	}

	out, err := h.authService.Refresh(c.Context(), input.RefreshToken)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": constant.MsgTokenRefreshed,
		"data":    out,
	})
}

func (h *AuthHandler) ForgotPassword(c *fiber.Ctx) error {
	var input dto.ForgotPasswordInput
	if err := c.BodyParser(&input); err != nil {
		return badRequest(c, "invalid input")
	}

	if err := input.Validate(); err != nil {
		return respondError(c, err)
	}

	out, err := h.authService.ForgotPassword(c.Context(), input.Email)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": constant.MsgEmailSent,
		"data":    out,
	})
}

func (h *AuthHandler) VerifyResetOtp(c *fiber.Ctx) error {
	token, err := bearerToken(c)
	if err != nil {
		return respondError(c, err)
	}

	var input dto.OtpInput
	if err := c.BodyParser(&input); err != nil {
		return badRequest(c, "invalid input")
	}

	if err := input.Validate(); err != nil {
		return respondError(c, err)
	}

	user, err := h.authService.VerifyResetOtp(c.Context(), token, input.Otp)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": constant.MsgOtpVerified,
		"data":    user,
	})
}

func (h *AuthHandler) ResetPassword(c *fiber.Ctx) error {
	token, err := bearerToken(c)
	if err != nil {
		return respondError(c, err)
	}

	var input dto.UpdatePasswordInput
	if err := c.BodyParser(&input); err != nil {
		return badRequest(c, "invalid input")
	}

	if err := input.Validate(); err != nil {
		return respondError(c, err)
	}

	if err := h.authService.ResetPassword(c.Context(), token, input.NewPassword); err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": constant.MsgPasswordUpdated,
	})
}

// Me returns the identity the access guard attached to the request.
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	userID, _ := c.Locals(constant.CtxUserID).(string)

	user, err := h.authService.CurrentUser(c.Context(), userID)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"data": user})
}

func bearerToken(c *fiber.Ctx) (string, error) {
	header := c.Get(fiber.HeaderAuthorization)
	if !strings.HasPrefix(header, "Bearer ") {
		return "", apperr.ErrInvalidAuthHeader
	}

	token := strings.TrimPrefix(header, "Bearer ")
	if token == "" {
		return "", apperr.ErrInvalidAuthHeader
	}

	return token, nil
}

func badRequest(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": message})
}

// respondError maps the error taxonomy onto the wire shape. Unknown errors
// become opaque 500s.
func respondError(c *fiber.Ctx, err error) error {
	var e *apperr.Error
	if errors.As(err, &e) {
		body := fiber.Map{"error": e.Message}
		if len(e.Fields) > 0 {
			body["fields"] = e.Fields
		}
		return c.Status(e.Status).JSON(body)
	}

	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal server error"})
}
