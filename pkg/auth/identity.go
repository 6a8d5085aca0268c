package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const cookieIssuer = "recruitment-console"

// ErrInvalidIdentity is returned for any cookie that fails verification.
var ErrInvalidIdentity = errors.New("invalid identity cookie")

// IdentityClaims is the payload of the signed identity cookie.
type IdentityClaims struct {
	Authenticated bool   `json:"authenticated"`
	Username      string `json:"username"`
	Role          string `json:"role"`
	Department    string `json:"department"`
	SessionID     string `json:"sid"`
	jwt.RegisteredClaims
}

// CookieSigner signs and verifies identity cookies with HS256.
type CookieSigner struct {
	secret []byte
	ttl    time.Duration
}

func NewCookieSigner(secret string, ttl time.Duration) *CookieSigner {
	if ttl <= 0 {
		ttl = 12 * time.Hour
	}
	return &CookieSigner{secret: []byte(secret), ttl: ttl}
}

// TTL is the lifetime given to newly signed cookies.
func (s *CookieSigner) TTL() time.Duration {
	return s.ttl
}

// Sign stamps issuer, subject and expiry onto claims and returns the token.
func (s *CookieSigner) Sign(claims IdentityClaims) (string, error) {
	now := time.Now()
	claims.RegisteredClaims = jwt.RegisteredClaims{
		Issuer:    cookieIssuer,
		Subject:   claims.Username,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign identity cookie: %w", err)
	}
	return signed, nil
}

// Parse verifies raw and returns its claims.
func (s *CookieSigner) Parse(raw string) (*IdentityClaims, error) {
	if raw == "" {
		return nil, ErrInvalidIdentity
	}
	claims := &IdentityClaims{}
	_, err := jwt.ParseWithClaims(raw, claims, func(token *jwt.Token) (interface{}, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(cookieIssuer),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidIdentity, err)
	}
	return claims, nil
}
