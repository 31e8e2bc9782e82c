package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"quetzal-gate/internal/domain"
)

// SessionTTL is the fixed lifetime of a session token and its cookie.
const SessionTTL = 30 * 24 * time.Hour

type sessionClaims struct {
	UserID int64       `json:"userId"`
	Email  string      `json:"email"`
	Name   string      `json:"nome"`
	Role   domain.Role `json:"role"`
	jwt.RegisteredClaims
}

// TokenCodec signs and verifies HS256 session tokens.
type TokenCodec struct {
	secret []byte
	now    func() time.Time
}

// NewTokenCodec creates a codec bound to secret. A nil now uses time.Now.
func NewTokenCodec(secret []byte, now func() time.Time) (*TokenCodec, error) {
	if len(secret) == 0 {
		return nil, errors.New("token secret is required")
	}
	if now == nil {
		now = time.Now
	}
	key := make([]byte, len(secret))
	copy(key, secret)
	return &TokenCodec{secret: key, now: now}, nil
}

// Issue signs id with an issued-at of now and an expiry SessionTTL later.
func (c *TokenCodec) Issue(id domain.Identity) (string, error) {
	if id.UserID <= 0 {
		return "", fmt.Errorf("issue token: invalid user id %d", id.UserID)
	}
	if !id.Role.Valid() {
		return "", fmt.Errorf("issue token: invalid role %q", id.Role)
	}
	now := c.now()
	claims := sessionClaims{
		UserID: id.UserID,
		Email:  id.Email,
		Name:   id.Name,
		Role:   id.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(SessionTTL)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify checks the signature and expiry of token and returns its claim set.
// Any failure yields the zero Identity and false.
func (c *TokenCodec) Verify(token string) (domain.Identity, bool) {
	if token == "" {
		return domain.Identity{}, false
	}
	var claims sessionClaims
	_, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return c.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(c.now),
	)
	if err != nil {
		return domain.Identity{}, false
	}
	if claims.UserID <= 0 || !claims.Role.Valid() || claims.IssuedAt == nil {
		return domain.Identity{}, false
	}
	return domain.Identity{
		UserID:    claims.UserID,
		Email:     claims.Email,
		Name:      claims.Name,
		Role:      claims.Role,
		IssuedAt:  claims.IssuedAt.Time,
		ExpiresAt: claims.ExpiresAt.Time,
	}, true
}
