package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenStatus classifies the outcome of verifying a bearer token. The API
// treats everything but TokenValid as anonymous; the distinction exists so
// the middleware can log what actually happened.
type TokenStatus int

const (
	TokenAbsent TokenStatus = iota
	TokenMalformed
	TokenExpired
	TokenValid
)

func (s TokenStatus) String() string {
	switch s {
	case TokenAbsent:
		return "absent"
	case TokenMalformed:
		return "malformed"
	case TokenExpired:
		return "expired"
	case TokenValid:
		return "valid"
	default:
		return "unknown"
	}
}

// VerifyResult is the internal outcome of token verification.
type VerifyResult struct {
	Status TokenStatus
	UserID int64
}

// IssueToken signs an HS256 token carrying the user id and an expiry of
// now + ttl.
func IssueToken(secret string, userID int64, ttl time.Duration) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"id":  userID,
		"exp": time.Now().Add(ttl).Unix(),
	})
	return token.SignedString([]byte(secret))
}

// VerifyToken decodes and validates a bearer token. It never returns an
// error: any failure collapses into a non-valid status.
func VerifyToken(secret, tokenString string) VerifyResult {
	if tokenString == "" {
		return VerifyResult{Status: TokenAbsent}
	}

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return VerifyResult{Status: TokenExpired}
		}
		return VerifyResult{Status: TokenMalformed}
	}
	if !token.Valid {
		return VerifyResult{Status: TokenMalformed}
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return VerifyResult{Status: TokenMalformed}
	}
	id, ok := claims["id"].(float64)
	if !ok || id <= 0 {
		return VerifyResult{Status: TokenMalformed}
	}

	return VerifyResult{Status: TokenValid, UserID: int64(id)}
}
