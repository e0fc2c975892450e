// Package auth resolves caller identity. It issues and verifies HS256
// bearer tokens whose subject is the user id, and wraps password hashing so
// the rest of the code never touches bcrypt directly.
package auth

import (
	"fmt"

	"github.com/dgrijalva/jwt-go"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"international-payments/internal/errors"
)

type Manager struct {
	privateKey []byte
}

func NewManager(privateKey string) *Manager {
	return &Manager{privateKey: []byte(privateKey)}
}

// Issue signs a token identifying userID.
func (m *Manager) Issue(userID uuid.UUID) (string, error) {
	claims := jwt.StandardClaims{
		Subject: userID.String(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString(m.privateKey)
	if err != nil {
		return "", fmt.Errorf("error while signing token: %w", err)
	}

	return signedToken, nil
}

// Verify parses a signed token and returns the user id it identifies. Any
// parse or signature failure comes back as ErrUnauthorized.
func (m *Manager) Verify(tokenString string) (uuid.UUID, error) {
	var claims jwt.StandardClaims
	_, err := jwt.ParseWithClaims(tokenString, &claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return m.privateKey, nil
	})
	if err != nil {
		return uuid.Nil, errors.ErrUnauthorized
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return uuid.Nil, errors.ErrUnauthorized
	}

	return userID, nil
}

// HashPassword returns the bcrypt hash to store for password.
func HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("error while hashing password: %w", err)
	}
	return string(hashed), nil
}

// CheckPassword reports whether password matches the stored hash.
func CheckPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
