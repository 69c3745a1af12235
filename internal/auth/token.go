package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultTokenTTL applies when neither the caller nor the config sets a lifetime.
const DefaultTokenTTL = 60 * time.Minute

// TokenConfig is the immutable signing setup shared by every request.
type TokenConfig struct {
	Secret    string
	Algorithm string
	Issuer    string
	TTL       time.Duration
}

// Claims is the identity carried by an access token.
type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// TokenManager issues and verifies signed access tokens.
type TokenManager struct {
	secret []byte
	method jwt.SigningMethod
	issuer string
	ttl    time.Duration
	now    func() time.Time
}

// NewTokenManager validates cfg and returns a manager bound to it.
// Only HMAC algorithms are accepted since the key is a shared secret.
func NewTokenManager(cfg TokenConfig) (*TokenManager, error) {
	if cfg.Secret == "" {
		return nil, errors.New("token secret is required")
	}
	method := jwt.GetSigningMethod(cfg.Algorithm)
	if _, ok := method.(*jwt.SigningMethodHMAC); !ok {
		return nil, fmt.Errorf("unsupported signing algorithm %q", cfg.Algorithm)
	}
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	return &TokenManager{
		secret: []byte(cfg.Secret),
		method: method,
		issuer: cfg.Issuer,
		ttl:    ttl,
		now:    time.Now,
	}, nil
}

// Issue signs a token for subject with the given role. A non-positive ttl
// uses the configured lifetime.
func (t *TokenManager) Issue(subject, role string, ttl time.Duration) (string, error) {
	if ttl <= 0 {
		ttl = t.ttl
	}
	now := t.now()
	claims := Claims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    t.issuer,
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(t.method, claims).SignedString(t.secret)
}

// Verify checks signature, algorithm, issuer and expiry and returns the claims.
func (t *TokenManager) Verify(token string) (Claims, error) {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{t.method.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(t.now),
	}
	if t.issuer != "" {
		opts = append(opts, jwt.WithIssuer(t.issuer))
	}

	var claims Claims
	parsed, err := jwt.ParseWithClaims(token, &claims, func(*jwt.Token) (any, error) {
		return t.secret, nil
	}, opts...)
	if err != nil {
		return Claims{}, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}
	if !parsed.Valid || claims.Subject == "" {
		return Claims{}, ErrInvalidToken
	}
	return claims, nil
}
