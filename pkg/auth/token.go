package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/angelmondragon/pawhaven-backend/pkg/config"
	"github.com/angelmondragon/pawhaven-backend/pkg/enums"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var signingMethod = jwt.SigningMethodHS256

// clockSkew tolerates small drift between the api replicas.
const clockSkew = 30 * time.Second

// Identity is what a token asserts about its bearer.
type Identity struct {
	UserID uuid.UUID
	Role   enums.UserRole
	Name   string
}

// Claims is the JWT body: {"id","role","name"} plus the registered claims.
type Claims struct {
	UserID uuid.UUID      `json:"id"`
	Role   enums.UserRole `json:"role"`
	Name   string         `json:"name"`
	jwt.RegisteredClaims
}

// Identity returns the bearer described by the claims.
func (c *Claims) Identity() Identity {
	return Identity{UserID: c.UserID, Role: c.Role, Name: c.Name}
}

// Issuer signs and verifies HS256 access tokens.
type Issuer struct {
	secret []byte
	issuer string
	ttl    time.Duration
	parser *jwt.Parser
}

func NewIssuer(cfg config.JWTConfig) (*Issuer, error) {
	switch {
	case cfg.Secret == "":
		return nil, errors.New("jwt secret is required")
	case cfg.Issuer == "":
		return nil, errors.New("jwt issuer is required")
	case cfg.TTL() <= 0:
		return nil, errors.New("jwt expiration must be positive")
	}
	return &Issuer{
		secret: []byte(cfg.Secret),
		issuer: cfg.Issuer,
		ttl:    cfg.TTL(),
		parser: jwt.NewParser(
			jwt.WithValidMethods([]string{signingMethod.Alg()}),
			jwt.WithIssuer(cfg.Issuer),
			jwt.WithExpirationRequired(),
			jwt.WithIssuedAt(),
			jwt.WithLeeway(clockSkew),
		),
	}, nil
}

// Issue mints a token for who, valid from now for the configured TTL.
func (i *Issuer) Issue(who Identity, now time.Time) (string, error) {
	if who.UserID == uuid.Nil {
		return "", errors.New("user id is required")
	}
	if !who.Role.IsValid() {
		return "", fmt.Errorf("invalid user role %q", who.Role)
	}
	claims := Claims{
		UserID: who.UserID,
		Role:   who.Role,
		Name:   who.Name,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Issuer:    i.issuer,
			Subject:   who.UserID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.ttl)),
		},
	}
	signed, err := jwt.NewWithClaims(signingMethod, claims).SignedString(i.secret)
	if err != nil {
		return "", fmt.Errorf("sign jwt: %w", err)
	}
	return signed, nil
}

// Verify checks signature, issuer and expiry and returns the typed claims.
func (i *Issuer) Verify(token string) (*Claims, error) {
	claims := &Claims{}
	if _, err := i.parser.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return i.secret, nil
	}); err != nil {
		return nil, err
	}
	if claims.UserID == uuid.Nil {
		return nil, errors.New("token missing user id")
	}
	if !claims.Role.IsValid() {
		return nil, fmt.Errorf("token carries unknown role %q", claims.Role)
	}
	return claims, nil
}
