package services

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

var ErrBadPassword = errors.New("incorrect password")

// AdminSecret is the fixed shared secret that opens the admin views.
const AdminSecret = "kiln-and-loom"

// AuthService checks the admin password server-side against a bcrypt hash
// of the shared secret.
type AuthService struct {
	hash []byte
}

func NewAuthService(secret string) (*AuthService, error) {
	h, err := bcrypt.GenerateFromPassword([]byte(secret), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	return &AuthService{hash: h}, nil
}

func (s *AuthService) Check(password string) error {
	if bcrypt.CompareHashAndPassword(s.hash, []byte(password)) != nil {
		return ErrBadPassword
	}
	return nil
}
