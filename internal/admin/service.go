package admin

import (
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/crypto/bcrypt"
)

type Service struct {
	creds  Credentials
	secret []byte
	ttl    time.Duration
}

func NewService(creds Credentials, secret string, ttl time.Duration) *Service {
	if ttl <= 0 {
		ttl = 72 * time.Hour
	}
	return &Service{creds: creds, secret: []byte(secret), ttl: ttl}
}

// Enabled reports whether an operator account and signing key are configured.
func (s *Service) Enabled() bool {
	return s.creds.Email != "" && s.creds.PasswordHash != "" && len(s.secret) > 0
}

func (s *Service) Authenticate(email, password string) error {
	if !s.Enabled() || !strings.EqualFold(strings.TrimSpace(email), s.creds.Email) {
		return ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(s.creds.PasswordHash), []byte(password)) != nil {
		return ErrInvalidCredentials
	}
	return nil
}

// IssueToken signs an HS256 token accepted by the protected catalog routes.
func (s *Service) IssueToken() (string, time.Time, error) {
	exp := time.Now().Add(s.ttl)
	claims := jwt.MapClaims{
		"user_id": "admin",
		"email":   s.creds.Email,
		"exp":     exp.Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, exp, nil
}
