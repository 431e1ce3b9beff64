package admin

import "errors"

var ErrInvalidCredentials = errors.New("invalid email or password")

// Credentials identify the single catalog operator. PasswordHash is a bcrypt
// hash, never the plain password.
type Credentials struct {
	Email        string
	PasswordHash string
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}
