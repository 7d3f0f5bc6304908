// Package session validates the bearer tokens issued by the auth service.
package session

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	// ErrSessionExpired means the client must log out and sign in again.
	ErrSessionExpired = errors.New("session expired")
	ErrInvalidToken   = errors.New("invalid token")
)

type Claims struct {
	OwnerID   string
	Email     string
	Role      string
	ExpiresAt time.Time
}

type Verifier struct {
	secret []byte
	now    func() time.Time
}

func NewVerifier(secret string) *Verifier {
	return &Verifier{
		secret: []byte(secret),
		now:    time.Now,
	}
}

// Verify checks the HS256 signature and expiry of token and extracts its owner.
func (v *Verifier) Verify(token string) (Claims, error) {
	if token == "" {
		return Claims{}, fmt.Errorf("%w: token is empty", ErrInvalidToken)
	}

	mc := jwt.MapClaims{}
	_, err := jwt.ParseWithClaims(token, mc, func(*jwt.Token) (any, error) {
		return v.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(v.now),
	)
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return Claims{}, ErrSessionExpired
	case err != nil:
		return Claims{}, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	ownerID, err := ownerFromClaims(mc)
	if err != nil {
		return Claims{}, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	exp, err := mc.GetExpirationTime()
	if err != nil || exp == nil {
		return Claims{}, fmt.Errorf("%w: exp claim", ErrInvalidToken)
	}

	email, _ := mc["email"].(string)
	role, _ := mc["role"].(string)

	return Claims{
		OwnerID:   ownerID,
		Email:     email,
		Role:      role,
		ExpiresAt: exp.Time,
	}, nil
}

// ownerFromClaims prefers user_id, which the auth service may encode as a number, and falls back to sub.
func ownerFromClaims(mc jwt.MapClaims) (string, error) {
	switch id := mc["user_id"].(type) {
	case string:
		if id != "" {
			return id, nil
		}
	case float64:
		return strconv.FormatFloat(id, 'f', -1, 64), nil
	}

	sub, err := mc.GetSubject()
	if err != nil {
		return "", fmt.Errorf("sub claim: %w", err)
	}
	if sub == "" {
		return "", errors.New("token has no user_id or sub claim")
	}

	return sub, nil
}
