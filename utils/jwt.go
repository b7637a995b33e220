package utils

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt"

	"slotbook/config"
	"slotbook/models"
)

func secretKey() []byte {
	secret := config.AppConfig.JWTSecret
	if secret == "" {
		secret = "slotbook-dev-secret"
	}
	return []byte(secret)
}

// GenerateToken creates a signed JWT for a session. The token expires after duration.
func GenerateToken(session models.Session, duration time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"sub":  session.UserID,
		"role": string(session.Role),
		"iat":  time.Now().Unix(),
		"exp":  time.Now().Add(duration).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secretKey())
}

// ValidateToken parses and validates a token string and returns the token if valid.
func ValidateToken(tokenString string) (*jwt.Token, error) {
	return jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return secretKey(), nil
	})
}

// SessionFromToken extracts the requester identity from the "sub" and "role" claims.
// A missing role defaults to client.
func SessionFromToken(tokenString string) (models.Session, error) {
	token, err := ValidateToken(tokenString)
	if err != nil {
		return models.Session{}, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return models.Session{}, errors.New("invalid token")
	}

	sub, ok := claims["sub"].(string)
	if !ok || sub == "" {
		return models.Session{}, errors.New("token does not contain a valid 'sub' claim")
	}

	role := models.RoleClient
	if r, ok := claims["role"].(string); ok && r != "" {
		role = models.Role(r)
	}
	switch role {
	case models.RoleClient, models.RoleProvider:
	default:
		return models.Session{}, errors.New("token carries an unknown role")
	}

	return models.Session{UserID: sub, Role: role}, nil
}
