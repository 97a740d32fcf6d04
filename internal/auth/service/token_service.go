package service

//go:generate mockgen -destination=../../mocks/mock_token_generator.go -package=mocks github.com/Ibrahim4Grace/spot/internal/auth/service TokenGenerator

import (
	"fmt"
	"time"

	"github.com/Ibrahim4Grace/spot/internal/auth/domain"
	apperr "github.com/Ibrahim4Grace/spot/internal/errors"
	"github.com/golang-jwt/jwt/v5"
)

type TokenGenerator interface {
	IssueAccess(userID string, role domain.Role) (string, error)
	IssueRefresh(userID string, role domain.Role) (string, error)
	IssueEmailVerification(userID string, role domain.Role) (string, error)
	VerifyAccess(tokenString string) (*JWTCustomClaims, error)
	VerifyRefresh(tokenString string) (*JWTCustomClaims, error)
	VerifyEmailVerification(tokenString string) (*JWTCustomClaims, error)
}

// TokenConfig is passed at construction; the service never reads ambient
// state, so rotating secrets or testing with fakes is a constructor call.
type TokenConfig struct {
	AuthSecret    string
	RefreshSecret string
	EmailSecret   string
	AccessExpiry  time.Duration
	RefreshExpiry time.Duration
	EmailExpiry   time.Duration
}

// TokenService issues and verifies the three token kinds. Each kind signs
// with its own secret, so a token of one kind can never verify as another.
type TokenService struct {
	cfg TokenConfig
}

type JWTCustomClaims struct {
	jwt.RegisteredClaims
	UserID string `json:"user_id"`
	Role   string `json:"role"`
}

func NewTokenService(cfg TokenConfig) *TokenService {
	return &TokenService{cfg: cfg}
}

func (ts *TokenService) IssueAccess(userID string, role domain.Role) (string, error) {
	return ts.issue(ts.cfg.AuthSecret, ts.cfg.AccessExpiry, userID, role)
}

func (ts *TokenService) IssueRefresh(userID string, role domain.Role) (string, error) {
	return ts.issue(ts.cfg.RefreshSecret, ts.cfg.RefreshExpiry, userID, role)
}

func (ts *TokenService) IssueEmailVerification(userID string, role domain.Role) (string, error) {
	return ts.issue(ts.cfg.EmailSecret, ts.cfg.EmailExpiry, userID, role)
}

func (ts *TokenService) VerifyAccess(tokenString string) (*JWTCustomClaims, error) {
	return ts.verify(ts.cfg.AuthSecret, tokenString)
}

func (ts *TokenService) VerifyRefresh(tokenString string) (*JWTCustomClaims, error) {
	return ts.verify(ts.cfg.RefreshSecret, tokenString)
}

func (ts *TokenService) VerifyEmailVerification(tokenString string) (*JWTCustomClaims, error) {
	return ts.verify(ts.cfg.EmailSecret, tokenString)
}

func (ts *TokenService) issue(secret string, expiry time.Duration, userID string, role domain.Role) (string, error) {
	now := time.Now()

	claims := JWTCustomClaims{
		UserID: userID,
		Role:   string(role),
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(expiry)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

// verify treats malformed, mis-signed and expired tokens identically: callers
// cannot tell a bad token from an absent one.
func (ts *TokenService) verify(secret, tokenString string) (*JWTCustomClaims, error) {
	claims := &JWTCustomClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	})

	if err != nil || !token.Valid {
		return nil, apperr.ErrInvalidToken
	}

	return claims, nil
}
