// Package auth issues and verifies the bearer tokens of the API.
//
// Tokens are signed with RS256 when the PEM keypair configured by
// JWT_PRIVATE_KEY_PATH / JWT_PUBLIC_KEY_PATH exists, and with HS256 over
// JWT_SECRET otherwise.
package auth

import (
	"crypto/rsa"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/BruksfildServices01/orders-api/internal/config"
	userdomain "github.com/BruksfildServices01/orders-api/internal/domain/user"
	"github.com/BruksfildServices01/orders-api/internal/models"
)

var ErrInvalidToken = errors.New("invalid token")

type Claims struct {
	Email string   `json:"email"`
	Roles []string `json:"roles"`
	jwt.RegisteredClaims
}

// Principal converts the subject and roles into the caller of an operation.
func (c *Claims) Principal() (userdomain.Principal, error) {
	id, err := uuid.Parse(c.Subject)
	if err != nil {
		return userdomain.Principal{}, fmt.Errorf("%w: bad subject", ErrInvalidToken)
	}
	return userdomain.Principal{ID: id, Roles: c.Roles}, nil
}

type Issuer struct {
	method    jwt.SigningMethod
	signKey   any
	verifyKey any
	ttl       time.Duration
	now       func() time.Time
}

func NewHMAC(secret []byte, ttl time.Duration) *Issuer {
	return &Issuer{
		method:    jwt.SigningMethodHS256,
		signKey:   secret,
		verifyKey: secret,
		ttl:       ttl,
		now:       time.Now,
	}
}

func NewRSA(priv *rsa.PrivateKey, pub *rsa.PublicKey, ttl time.Duration) *Issuer {
	return &Issuer{
		method:    jwt.SigningMethodRS256,
		signKey:   priv,
		verifyKey: pub,
		ttl:       ttl,
		now:       time.Now,
	}
}

// FromConfig prefers the RSA keypair and falls back to the shared secret
// when either PEM file is missing.
func FromConfig(cfg *config.Config) (*Issuer, error) {
	if !fileExists(cfg.JWTPrivateKeyPath) || !fileExists(cfg.JWTPublicKeyPath) {
		return NewHMAC([]byte(cfg.JWTSecret), cfg.JWTTTL), nil
	}

	priv, pub, err := LoadKeyPair(cfg.JWTPrivateKeyPath, cfg.JWTPublicKeyPath)
	if err != nil {
		return nil, err
	}
	return NewRSA(priv, pub, cfg.JWTTTL), nil
}

func (i *Issuer) Algorithm() string {
	return i.method.Alg()
}

func (i *Issuer) Issue(u *models.User) (string, error) {
	now := i.now()

	claims := Claims{
		Email: u.Email,
		Roles: userdomain.Roles(u.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   u.ID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.ttl)),
		},
	}

	return jwt.NewWithClaims(i.method, claims).SignedString(i.signKey)
}

func (i *Issuer) Parse(tokenString string) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(
		tokenString,
		claims,
		func(*jwt.Token) (any, error) { return i.verifyKey, nil },
		jwt.WithValidMethods([]string{i.method.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(i.now),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}
	if !token.Valid {
		return nil, ErrInvalidToken
	}

	return claims, nil
}

func fileExists(path string) bool {
	if path == "" {
		return false
	}
	_, err := os.Stat(path)
	return err == nil
}
