package service

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/accountshq/accounts-service/internal/auth/domain"
	"github.com/accountshq/accounts-service/internal/common/clock"
	"github.com/accountshq/accounts-service/internal/common/jwtverify"
	"github.com/accountshq/accounts-service/internal/observability/metrics"
)

// TokenIssuer signs access tokens with the process-wide secret handed to it
// at construction. The token is self-contained: nothing is stored server
// side, validity is signature plus expiry.
type TokenIssuer struct {
	jwtSecret      []byte
	clock          clock.Clock
	accessTokenTTL time.Duration
}

func NewTokenIssuer(jwtSecret string, accessTokenTTL time.Duration, clock clock.Clock) *TokenIssuer {
	return &TokenIssuer{
		jwtSecret:      []byte(jwtSecret),
		clock:          clock,
		accessTokenTTL: accessTokenTTL,
	}
}

func (ti *TokenIssuer) IssueAccessToken(user domain.User) (string, error) {
	now := ti.clock.Now()
	claims := jwt.MapClaims{
		"id":       string(user.ID),
		"username": user.Username,
		"email":    user.Email,
		"iat":      now.Unix(),
		"exp":      now.Add(ti.accessTokenTTL).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := t.SignedString(ti.jwtSecret)
	if err != nil {
		return "", err
	}

	metrics.AccessTokensIssued.Inc()
	return tokenString, nil
}

func (ti *TokenIssuer) ParseToken(tokenString string) (jwtverify.Claims, error) {
	return jwtverify.ParseToken(tokenString, ti.jwtSecret)
}
