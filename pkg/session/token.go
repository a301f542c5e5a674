package session

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Token errors
var (
	ErrExpiredToken = errors.New("token has expired")
	ErrInvalidToken = errors.New("invalid token")
)

// Claims are the visitor session claims carried in the JWT. The session
// is anonymous: it only pins a visitor id and the name they signed
// their postcard with.
type Claims struct {
	VisitorID string `json:"visitor_id"`
	Name      string `json:"name,omitempty"`
	jwt.RegisteredClaims
}

// TokenConfig configures token generation and validation
type TokenConfig struct {
	SecretKey string
	Issuer    string
	TTL       time.Duration
}

// TokenManager issues and validates visitor session tokens
type TokenManager struct {
	config TokenConfig
}

// NewTokenManager creates a token manager. HS256 only.
func NewTokenManager(config TokenConfig) (*TokenManager, error) {
	if config.SecretKey == "" {
		return nil, errors.New("secret key is required")
	}
	if config.Issuer == "" {
		config.Issuer = "postcards"
	}
	if config.TTL == 0 {
		config.TTL = 24 * time.Hour
	}
	return &TokenManager{config: config}, nil
}

// Generate issues a signed token for a visitor
func (m *TokenManager) Generate(visitorID, name string) (string, error) {
	now := time.Now()
	claims := Claims{
		VisitorID: visitorID,
		Name:      name,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    m.config.Issuer,
			Subject:   visitorID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.config.TTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(m.config.SecretKey))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// Validate parses and validates a token, returning its claims
func (m *TokenManager) Validate(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(m.config.SecretKey), nil
	}, jwt.WithIssuer(m.config.Issuer))

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}
	if !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
