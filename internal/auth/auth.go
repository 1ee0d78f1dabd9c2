package auth

import (
	"github.com/golang-jwt/jwt/v5"

	"github.com/frahmantamala/capacity-tracker/internal/user"
)

// Claims carries the subject id and role. Tokens cannot be revoked before
// they expire.
type Claims struct {
	UserID string `json:"id"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// TokenGenerator issues and verifies bearer tokens.
type TokenGenerator interface {
	GenerateToken(userID, role string) (string, error)
	ValidateToken(tokenString string) (*Claims, error)
}

// PasswordHasher hides the hashing scheme from the service.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) error
}

type RegisterResponse struct {
	Msg   string        `json:"msg"`
	Token string        `json:"token"`
	User  user.Response `json:"user"`
}

type LoginResponse struct {
	Token string        `json:"token"`
	User  user.Response `json:"user"`
}
