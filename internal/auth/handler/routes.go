package handler

import (
	"github.com/gofiber/fiber/v2"
)

// PublicPaths lists the routes the access guard lets through unauthenticated.
func PublicPaths() []string {
	return []string{
		"/api/v1/auth/register",
		"/api/v1/auth/verify-otp",
		"/api/v1/auth/login",
		"/api/v1/auth/refresh",
		"/api/v1/auth/password/forgot",
		"/api/v1/auth/password/verify-otp",
		"/api/v1/auth/password/reset",
	}
}

// RegisterRoutes mounts the guard in front of everything; the auth flows are
// public and gate themselves with verification tokens where needed.
func RegisterRoutes(app *fiber.App, h *AuthHandler, guard *AuthGuard) {
	app.Use(guard.Handle)

	auth := app.Group("/api/v1/auth")
	auth.Post("/register", h.Register)
	auth.Post("/verify-otp", h.VerifyOtp)
	auth.Post("/login", h.Login)
	auth.Post("/refresh", h.Refresh)
	auth.Post("/password/forgot", h.ForgotPassword)
	auth.Post("/password/verify-otp", h.VerifyResetOtp)
	auth.Patch("/password/reset", h.ResetPassword)

	api := app.Group("/api/v1")
	api.Get("/me", h.Me)
}
