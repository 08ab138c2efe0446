package utils

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

type Claims struct {
	StaffID  uint   `json:"staffId"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}

func GenerateToken(staffID uint, username, secret string, ttl time.Duration) (string, error) {
	claims := &Claims{
		StaffID:  staffID,
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}
