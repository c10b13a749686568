// Package auth issues and validates the signed identity tokens carried as
// bearer credentials.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenTTL is how long an issued token stays valid.
const TokenTTL = 7 * 24 * time.Hour

var (
	ErrExpired   = errors.New("token expired")
	ErrMalformed = errors.New("invalid token")
)

// Claims is the token payload: {user_id, exp}.
type Claims struct {
	UserID int64 `json:"user_id"`
	jwt.RegisteredClaims
}

// TokenService signs tokens with a process-wide HS256 secret.
type TokenService struct {
	secret []byte
	now    func() time.Time
}

func NewTokenService(secret string) *TokenService {
	return &TokenService{secret: []byte(secret), now: time.Now}
}

// SetClock replaces the time source used for issuing and expiry checks.
func (s *TokenService) SetClock(now func() time.Time) {
	s.now = now
}

// Issue returns a token for userID expiring TokenTTL from now.
func (s *TokenService) Issue(userID int64) (string, error) {
	claims := Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(s.now().Add(TokenTTL)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return tokenString, nil
}

// Validate returns the embedded user id. Expiry is reported as ErrExpired,
// anything else that fails parsing or verification as ErrMalformed.
func (s *TokenService) Validate(tokenString string) (int64, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(tokenString, claims,
		func(*jwt.Token) (any, error) { return s.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.now),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return 0, ErrExpired
		}
		return 0, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if claims.UserID == 0 {
		return 0, fmt.Errorf("%w: missing user_id", ErrMalformed)
	}
	return claims.UserID, nil
}
