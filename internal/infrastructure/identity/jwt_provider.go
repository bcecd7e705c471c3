// Package identity provides the local JWT identity provider: it verifies
// bearer credentials into Principals and mints tokens at login. In
// deployments backed by an external provider only the VerifyCredential
// side is swapped out.
package identity

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/bountyhq/platform-api/internal/core/domain"
)

// JWTProvider verifies and issues HS256-signed session tokens.
type JWTProvider struct {
	secret   []byte
	tokenTTL time.Duration
}

func NewJWTProvider(secret string, tokenTTL time.Duration) *JWTProvider {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &JWTProvider{secret: []byte(secret), tokenTTL: tokenTTL}
}

// VerifyCredential parses and validates raw, returning the principal it
// identifies. Expired, malformed, and mis-signed tokens all fail; the
// caller is expected to collapse every failure into Unauthorized.
func (p *JWTProvider) VerifyCredential(_ context.Context, raw string) (domain.Principal, error) {
	claims := jwt.MapClaims{}
	tkn, err := jwt.ParseWithClaims(raw, claims, func(token *jwt.Token) (interface{}, error) {
		if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return p.secret, nil
	})
	if err != nil {
		return domain.Principal{}, fmt.Errorf("verify credential: %w", err)
	}
	if !tkn.Valid {
		return domain.Principal{}, errors.New("verify credential: token invalid")
	}

	sub, _ := claims["sub"].(string)
	if sub == "" {
		return domain.Principal{}, errors.New("verify credential: missing subject claim")
	}

	return domain.Principal{UserID: sub, Claims: map[string]any(claims)}, nil
}

// IssueToken mints a session token for user.
func (p *JWTProvider) IssueToken(user *domain.User) (string, error) {
	claims := jwt.MapClaims{
		"sub":   user.ID,
		"email": user.Email,
		"role":  string(user.Role),
		"exp":   time.Now().Add(p.tokenTTL).Unix(),
		"iat":   time.Now().Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(p.secret)
}
