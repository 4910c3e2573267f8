package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/yafiirfan/backend.movie/internal/apperr"
)

// Claims is the access-token payload: the user id plus the registered
// expiry/issued-at claims.
type Claims struct {
	UserID int `json:"uid"`
	jwt.RegisteredClaims
}

// TokenManager signs and verifies access tokens with a process-wide HS256
// secret injected at startup.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
}

func NewTokenManager(secret []byte, ttl time.Duration) *TokenManager {
	return &TokenManager{secret: secret, ttl: ttl}
}

// Issue signs a token binding the user id, expiring after the configured TTL.
func (m *TokenManager) Issue(userID int) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
	})

	return token.SignedString(m.secret)
}

// Parse validates the signature, signing method, and expiry, returning the
// claims. Every failure mode collapses to an invalid-token error carrying
// the parse error as its internal cause.
func (m *TokenManager) Parse(tokenString string) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return m.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, apperr.InvalidToken(err)
	}
	if !token.Valid {
		return nil, apperr.ErrInvalidToken
	}

	return claims, nil
}

// Verify parses the token and returns the embedded user id.
func (m *TokenManager) Verify(tokenString string) (int, error) {
	claims, err := m.Parse(tokenString)
	if err != nil {
		return 0, err
	}
	return claims.UserID, nil
}
