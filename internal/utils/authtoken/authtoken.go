// Package authtoken issues the HMAC-signed bearer tokens accepted by the API.
// The subject claim is the user recorded as author or approver of journal entries.
package authtoken

import (
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Params describes one token. Now defaults to time.Now.
type Params struct {
	Subject string
	Secret  string
	Issuer  string
	TTL     time.Duration
	Now     func() time.Time
}

// Issue signs a token for p.Subject with HS256.
func Issue(p Params) (string, error) {
	if strings.TrimSpace(p.Subject) == "" {
		return "", errors.New("token subject is required")
	}
	if p.Secret == "" {
		return "", errors.New("token secret is required")
	}
	if p.TTL <= 0 {
		return "", errors.New("token lifetime must be positive")
	}
	now := time.Now
	if p.Now != nil {
		now = p.Now
	}
	issued := now()
	claims := jwt.RegisteredClaims{
		Issuer:    p.Issuer,
		Subject:   p.Subject,
		ExpiresAt: jwt.NewNumericDate(issued.Add(p.TTL)),
		IssuedAt:  jwt.NewNumericDate(issued),
		NotBefore: jwt.NewNumericDate(issued),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(p.Secret))
}
