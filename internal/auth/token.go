package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Tagged verification failures. The HTTP layer collapses all of them into
// one uniform unauthorized response; the distinction exists for logs and
// tests only.
var (
	// ErrTokenExpired indicates a well-formed, correctly signed token past
	// its expiry.
	ErrTokenExpired = errors.New("auth: token expired")
	// ErrBadSignature indicates a signature that does not verify against the
	// service secret.
	ErrBadSignature = errors.New("auth: bad signature")
	// ErrTokenMalformed indicates a token that is not a parseable JWT.
	ErrTokenMalformed = errors.New("auth: malformed token")
)

// TokenService issues and verifies signed, time-limited bearer tokens
// carrying a subject identifier (the client CIF). Tokens are stateless;
// expiry is the only invalidation mechanism.
type TokenService struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewTokenService constructs a token service signing with secret and issuing
// tokens valid for ttl.
func NewTokenService(secret []byte, ttl time.Duration) *TokenService {
	return &TokenService{secret: secret, ttl: ttl, now: time.Now}
}

// WithClock overrides the time source. Used by tests to simulate expiry.
func (s *TokenService) WithClock(now func() time.Time) *TokenService {
	s.now = now
	return s
}

// Issue produces an HS256-signed token with subject and an absolute expiry
// s.ttl from now.
func (s *TokenService) Issue(subject string) (string, error) {
	issued := s.now()
	claims := jwt.RegisteredClaims{
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(issued),
		ExpiresAt: jwt.NewNumericDate(issued.Add(s.ttl)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// Verify checks signature and expiry and returns the subject identifier.
// Failures come back as exactly one of ErrTokenExpired, ErrBadSignature or
// ErrTokenMalformed.
func (s *TokenService) Verify(tokenString string) (string, error) {
	if tokenString == "" {
		return "", ErrTokenMalformed
	}

	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.now),
		jwt.WithExpirationRequired(),
	)
	claims := &jwt.RegisteredClaims{}
	token, err := parser.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrBadSignature
		}
		return s.secret, nil
	})
	switch {
	case err == nil:
	case errors.Is(err, jwt.ErrTokenExpired):
		return "", ErrTokenExpired
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return "", ErrBadSignature
	default:
		return "", ErrTokenMalformed
	}
	if !token.Valid || claims.Subject == "" {
		return "", ErrTokenMalformed
	}
	return claims.Subject, nil
}
