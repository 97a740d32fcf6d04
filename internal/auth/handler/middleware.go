package handler

import (
	"github.com/Ibrahim4Grace/spot/internal/auth/domain"
	"github.com/Ibrahim4Grace/spot/internal/auth/service"
	apperr "github.com/Ibrahim4Grace/spot/internal/errors"
	"github.com/Ibrahim4Grace/spot/pkg/constant"
	"github.com/gofiber/fiber/v2"
)

// AuthGuard verifies bearer access tokens ahead of protected handlers. The
// check is purely local: signature and expiry only, no store round-trip.
type AuthGuard struct {
	tokens service.TokenGenerator
	public map[string]struct{}
}

// NewAuthGuard marks the given paths as public; everything else it is mounted
// on requires a valid access token.
func NewAuthGuard(tokens service.TokenGenerator, publicPaths ...string) *AuthGuard {
	public := make(map[string]struct{}, len(publicPaths))
	for _, p := range publicPaths {
		public[p] = struct{}{}
	}

	return &AuthGuard{tokens: tokens, public: public}
}

func (g *AuthGuard) Handle(c *fiber.Ctx) error {
	if _, ok := g.public[c.Path()]; ok {
		return c.Next()
	}

	token, err := bearerToken(c)
	if err != nil {
		return respondError(c, err)
	}

	claims, err := g.tokens.VerifyAccess(token)
	if err != nil {
		return respondError(c, apperr.ErrInvalidToken)
	}

	c.Locals(constant.CtxUserID, claims.UserID)
	c.Locals(constant.CtxUserRole, claims.Role)
	c.Locals(constant.CtxToken, token)

	return c.Next()
}

// RequireRole gates a route group on the role carried by the access token.
// It must run after Handle.
func (g *AuthGuard) RequireRole(role domain.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		got, _ := c.Locals(constant.CtxUserRole).(string)
		if got != string(role) {
			return respondError(c, apperr.Unauthorized("insufficient role"))
		}

		return c.Next()
	}
}
