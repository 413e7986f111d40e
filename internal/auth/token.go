package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Token verification failure kinds. Each maps to a distinct caller-visible
// outcome; the request layer decides which ones collapse into a generic
// response.
var (
	ErrTokenExpired      = errors.New("token expired")
	ErrTokenMalformed    = errors.New("token malformed")
	ErrTokenBadSignature = errors.New("token signature invalid")
	ErrSubjectMismatch   = errors.New("token subject mismatch")
)

// MinSecretLen is the minimum signing key size in bytes (256 bits).
const MinSecretLen = 32

// Claims carried by a session token.
type Claims struct {
	jwt.RegisteredClaims
}

// TokenCodec issues and verifies signed bearer tokens. It is stateless aside
// from the signing key fixed at construction and safe for concurrent use.
type TokenCodec struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenCodec creates a TokenCodec. A signing key shorter than MinSecretLen
// is a configuration error and refuses construction outright.
func NewTokenCodec(secret string, ttl time.Duration) (*TokenCodec, error) {
	if len(secret) < MinSecretLen {
		return nil, fmt.Errorf("signing key must be at least %d bytes (got %d)", MinSecretLen, len(secret))
	}
	if ttl <= 0 {
		return nil, fmt.Errorf("token ttl must be positive (got %v)", ttl)
	}
	return &TokenCodec{
		secret: []byte(secret),
		ttl:    ttl,
	}, nil
}

// Issue creates a signed token for the given subject, valid for the
// configured ttl from now.
func (c *TokenCodec) Issue(subject string) (string, error) {
	if subject == "" {
		return "", fmt.Errorf("subject is required")
	}

	now := time.Now()
	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(c.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return tokenString, nil
}

// Verify decodes a token and checks signature, structure and expiry in one
// step. It fails closed: any problem yields a classified error and no claims.
func (c *TokenCodec) Verify(tokenString string) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, c.keyFunc)
	if err != nil {
		return nil, classifyTokenError(err)
	}
	if !token.Valid {
		return nil, ErrTokenMalformed
	}
	if claims.Subject == "" {
		return nil, ErrTokenMalformed
	}

	return claims, nil
}

// ExtractSubject verifies signature and structure and returns the embedded
// subject WITHOUT enforcing expiry. It exists so callers can look up the
// account a token names before trusting it; Validate must still be called
// before the request is honored.
func (c *TokenCodec) ExtractSubject(tokenString string) (string, error) {
	claims := &Claims{}

	_, err := jwt.ParseWithClaims(tokenString, claims, c.keyFunc, jwt.WithoutClaimsValidation())
	if err != nil {
		return "", classifyTokenError(err)
	}
	if claims.Subject == "" {
		return "", ErrTokenMalformed
	}

	return claims.Subject, nil
}

// Validate performs the full check: signature, structure, expiry, and that
// the token was issued for expectedSubject.
func (c *TokenCodec) Validate(tokenString, expectedSubject string) error {
	claims, err := c.Verify(tokenString)
	if err != nil {
		return err
	}
	if claims.Subject != expectedSubject {
		return ErrSubjectMismatch
	}
	return nil
}

// TTL returns the configured token lifetime.
func (c *TokenCodec) TTL() time.Duration {
	return c.ttl
}

func (c *TokenCodec) keyFunc(token *jwt.Token) (interface{}, error) {
	if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
		return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
	}
	return c.secret, nil
}

// classifyTokenError maps jwt/v5 parse failures onto the codec's taxonomy.
// Signature problems are checked before claim validity: a token with a bad
// signature must never be reported as merely expired.
func classifyTokenError(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenMalformed):
		return ErrTokenMalformed
	case errors.Is(err, jwt.ErrTokenSignatureInvalid),
		errors.Is(err, jwt.ErrTokenUnverifiable):
		return ErrTokenBadSignature
	case errors.Is(err, jwt.ErrTokenExpired):
		return ErrTokenExpired
	default:
		return fmt.Errorf("token verification failed: %w", err)
	}
}
