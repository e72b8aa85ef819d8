package security

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/golang-jwt/jwt/v5"
)

const (
	claimUserID = "id"
	claimRole   = "role"
)

// TokenManager issues and verifies HS256 session tokens carrying {id, role}.
type TokenManager struct {
	auth *jwtauth.JWTAuth
	ttl  time.Duration
	now  func() time.Time
}

func NewTokenManager(secret []byte, ttl time.Duration) *TokenManager {
	return &TokenManager{
		auth: jwtauth.New("HS256", secret, nil),
		ttl:  ttl,
		now:  time.Now,
	}
}

func (m *TokenManager) GenerateToken(userID, role string) (string, error) {
	now := m.now()
	claims := jwt.MapClaims{
		claimUserID: userID,
		claimRole:   role,
		"exp":       now.Add(m.ttl).Unix(),
		"iat":       now.Unix(),
	}
	_, tokenString, err := m.auth.Encode(claims)
	return tokenString, err
}

// ParseToken checks signature and expiry and returns the embedded id and role.
func (m *TokenManager) ParseToken(tokenString string) (string, string, error) {
	if tokenString == "" {
		return "", "", errors.New("empty token")
	}
	token, err := jwtauth.VerifyToken(m.auth, tokenString)
	if err != nil {
		return "", "", err
	}
	raw, err := token.AsMap(context.Background())
	if err != nil {
		return "", "", fmt.Errorf("reading claims: %w", err)
	}
	claims := jwt.MapClaims(raw)

	userID, err := GetUserIDFromClaims(claims)
	if err != nil {
		return "", "", err
	}
	role, err := GetUserRoleFromClaims(claims)
	if err != nil {
		return "", "", err
	}
	return userID, role, nil
}

func GetUserIDFromClaims(claims jwt.MapClaims) (string, error) {
	id, ok := claims[claimUserID].(string)
	if !ok || id == "" {
		return "", errors.New("id claim is missing or not a string")
	}
	return id, nil
}

func GetUserRoleFromClaims(claims jwt.MapClaims) (string, error) {
	role, ok := claims[claimRole].(string)
	if !ok || role == "" {
		return "", errors.New("role claim is missing or not a string")
	}
	return role, nil
}
