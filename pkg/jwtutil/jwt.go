package jwtutil

import (
	"time"

	"affiliate-service/pkg/config"

	"github.com/golang-jwt/jwt/v5"
)

// AdminClaims are the JWT claims carried by administrative tokens.
type AdminClaims struct {
	Subject string `json:"sub_name,omitempty"`
	Role    string `json:"role,omitempty"`
	jwt.RegisteredClaims
}

// JWT validates and issues admin tokens with a configured signing key.
type JWT struct {
	key    []byte
	expiry time.Duration
}

// New creates a JWT utility from configuration.
func New(cfg *config.JWTConfig) *JWT {
	return &JWT{
		key:    []byte(cfg.SigningKey),
		expiry: time.Duration(cfg.ExpirationHours) * time.Hour,
	}
}

// Generate issues a signed token for an administrative subject.
func (j *JWT) Generate(subject, role string) (string, error) {
	now := time.Now()
	claims := AdminClaims{
		Subject: subject,
		Role:    role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(j.expiry)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(j.key)
}

// ValidateToken validates and parses a token string.
func (j *JWT) ValidateToken(tokenString string) (*AdminClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &AdminClaims{}, func(token *jwt.Token) (interface{}, error) {
		return j.key, nil
	})
	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(*AdminClaims); ok && token.Valid {
		return claims, nil
	}

	return nil, jwt.ErrSignatureInvalid
}
