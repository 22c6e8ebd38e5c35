package jwtutil

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Config holds JWT configuration
type Config struct {
	SigningKey      string
	ExpirationHours int
	Issuer          string
}

// UserClaims represents the JWT claims for an issued access token.
// RegisteredClaims.ID carries the access token id.
type UserClaims struct {
	UserID uint   `json:"user_id"`
	Email  string `json:"email"`
	Role   string `json:"role,omitempty"`
	jwt.RegisteredClaims
}

// JWTUtil signs and verifies access tokens
type JWTUtil struct {
	config *Config
}

var defaultUtil = &JWTUtil{}

// Initialize sets up the package-level JWT utility with configuration
func Initialize(config *Config) {
	defaultUtil = NewJWTUtil(config)
}

// Default returns the package-level JWT utility
func Default() *JWTUtil {
	return defaultUtil
}

// NewJWTUtil creates a new JWT utility with the given configuration
func NewJWTUtil(config *Config) *JWTUtil {
	return &JWTUtil{config: config}
}

// TokenTTL is how long a freshly issued token stays valid
func (j *JWTUtil) TokenTTL() time.Duration {
	if j.config == nil {
		return 0
	}
	return time.Duration(j.config.ExpirationHours) * time.Hour
}

// GenerateToken signs a token for the user with tokenID as its jti
func (j *JWTUtil) GenerateToken(userID uint, email, role, tokenID string, expiresAt time.Time) (string, error) {
	if j.config == nil {
		return "", errors.New("JWT configuration not provided")
	}

	claims := UserClaims{
		UserID: userID,
		Email:  email,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        tokenID,
			Issuer:    j.config.Issuer,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(j.config.SigningKey))
}

// ValidateToken verifies the signature and expiry and returns the claims
func (j *JWTUtil) ValidateToken(tokenString string) (*UserClaims, error) {
	if j.config == nil {
		return nil, errors.New("JWT configuration not provided")
	}

	token, err := jwt.ParseWithClaims(
		tokenString,
		&UserClaims{},
		func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return []byte(j.config.SigningKey), nil
		},
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*UserClaims)
	if !ok || !token.Valid || claims.ID == "" {
		return nil, errors.New("invalid token")
	}

	return claims, nil
}
