package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/shopora/ecommerce-api/config"
	"github.com/shopora/ecommerce-api/models"
)

var (
	ErrInvalidToken   = errors.New("invalid or expired token")
	ErrWrongTokenType = errors.New("unexpected token type")
)

// TokenPair is the bearer credential set issued on login, activation and
// social login.
type TokenPair struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

// IssuePair signs a fresh access/refresh pair for the user.
func IssuePair(cfg config.AuthConfig, user *models.User) (TokenPair, error) {
	access, err := signToken(cfg.JWTSecret, user, "access", cfg.AccessTTL)
	if err != nil {
		return TokenPair{}, err
	}
	refresh, err := signToken(cfg.JWTSecret, user, "refresh", cfg.RefreshTTL)
	if err != nil {
		return TokenPair{}, err
	}
	return TokenPair{Access: access, Refresh: refresh}, nil
}

// RefreshAccess validates a refresh token and returns a new access token.
func RefreshAccess(cfg config.AuthConfig, refresh string) (string, uint, error) {
	claims, err := ParseToken(cfg.JWTSecret, refresh)
	if err != nil {
		return "", 0, err
	}
	if claims["token_type"] != "refresh" {
		return "", 0, ErrWrongTokenType
	}
	userID, ok := claims["user_id"].(float64)
	if !ok {
		return "", 0, ErrInvalidToken
	}
	username, _ := claims["username"].(string)
	u := &models.User{ID: uint(userID), Username: username}
	access, err := signToken(cfg.JWTSecret, u, "access", cfg.AccessTTL)
	return access, uint(userID), err
}

// ParseToken verifies the signature and expiry and returns the claims.
func ParseToken(secret, tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid token signing method")
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

func signToken(secret string, user *models.User, tokenType string, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"user_id":    user.ID,
		"username":   user.Username,
		"token_type": tokenType,
		"exp":        time.Now().Add(ttl).Unix(),
		"iat":        time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}
