// Package auth validates the access tokens issued by the identity service and
// turns them into request sessions.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/abdelhalimemara/debrah-exp-v5.8/internal/domain/shared"
	"github.com/abdelhalimemara/debrah-exp-v5.8/internal/infrastructure/config"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrInvalidToken  = errors.New("invalid token")
	ErrExpiredToken  = errors.New("token has expired")
	ErrInvalidClaims = errors.New("invalid token claims")
)

// Claims are the access token claims this service reads
type Claims struct {
	jwt.RegisteredClaims
	OfficeID string `json:"office_id"`
	UserID   string `json:"user_id"`
	Username string `json:"username"`
}

// Session converts the claims into a request session
func (c *Claims) Session() (shared.Session, error) {
	officeID, err := uuid.Parse(c.OfficeID)
	if err != nil {
		return shared.Session{}, shared.ErrSessionRequired
	}
	userID, err := uuid.Parse(c.UserID)
	if err != nil {
		return shared.Session{}, fmt.Errorf("%w: user_id", ErrInvalidClaims)
	}
	return shared.NewSession(officeID, userID, c.Username)
}

// RemainingTTL is how long the token stays valid
func (c *Claims) RemainingTTL() time.Duration {
	if c.ExpiresAt == nil {
		return 0
	}
	if ttl := time.Until(c.ExpiresAt.Time); ttl > 0 {
		return ttl
	}
	return 0
}

// TokenValidator checks HS256 access tokens
type TokenValidator struct {
	secret []byte
	issuer string
}

// NewTokenValidator creates a validator for the configured secret and issuer
func NewTokenValidator(cfg config.JWTConfig) *TokenValidator {
	return &TokenValidator{secret: []byte(cfg.Secret), issuer: cfg.Issuer}
}

// Validate parses the token and checks its signature, expiry and issuer
func (v *TokenValidator) Validate(tokenString string) (*Claims, error) {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	}
	if v.issuer != "" {
		opts = append(opts, jwt.WithIssuer(v.issuer))
	}

	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(*jwt.Token) (any, error) {
		return v.secret, nil
	}, opts...)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidClaims
	}
	return claims, nil
}

// Issue signs a token for a session. The identity service issues real
// tokens; this serves local seeding and tests.
func (v *TokenValidator) Issue(session shared.Session, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   session.UserID.String(),
			Issuer:    v.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		OfficeID: session.OfficeID.String(),
		UserID:   session.UserID.String(),
		Username: session.Username,
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(v.secret)
}
