package utils

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

// JwtSecret is assigned from config at startup.
var JwtSecret = []byte("change-me-in-production")

const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"

	AccessTokenTTL  = 15 * time.Minute
	RefreshTokenTTL = 7 * 24 * time.Hour
)

type Claims struct {
	UserId    int64  `json:"user_id"`
	Username  string `json:"username"`
	TokenType string `json:"token_type"`
	jwt.RegisteredClaims
}

type TokenPair struct {
	Access           string
	Refresh          string
	RefreshID        string
	AccessExpiresAt  time.Time
	RefreshExpiresAt time.Time
}

func generateToken(userID int64, username, tokenType, id string, ttl time.Duration) (string, time.Time, error) {
	exp := time.Now().Add(ttl)
	claims := &Claims{
		UserId:    userID,
		Username:  username,
		TokenType: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        id,
			ExpiresAt: jwt.NewNumericDate(exp),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Subject:   username,
		},
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	s, err := t.SignedString(JwtSecret)
	return s, exp, err
}

// GenerateTokenPair issues a short-lived access token and a refresh token
// carrying a unique jti so the refresh side can be revoked server-side.
func GenerateTokenPair(userID int64, username string) (TokenPair, error) {
	access, accessExp, err := generateToken(userID, username, TokenTypeAccess, uuid.NewString(), AccessTokenTTL)
	if err != nil {
		return TokenPair{}, err
	}

	refreshID := uuid.NewString()
	refresh, refreshExp, err := generateToken(userID, username, TokenTypeRefresh, refreshID, RefreshTokenTTL)
	if err != nil {
		return TokenPair{}, err
	}

	return TokenPair{
		Access:           access,
		Refresh:          refresh,
		RefreshID:        refreshID,
		AccessExpiresAt:  accessExp,
		RefreshExpiresAt: refreshExp,
	}, nil
}

func ParseToken(tokenStr string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		return JwtSecret, nil
	})

	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil
	}

	return nil, errors.New("Invalid Token")
}
