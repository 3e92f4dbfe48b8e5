package utils

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt"
)

// Role is the caller's authorization role.
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleEmployee Role = "employee"
	RoleGuest    Role = "guest"
)

// Principal is the verified identity behind a bearer token.
type Principal struct {
	ID   string
	Role Role
}

// GenerateToken creates a signed HS256 token for subject with the given role.
// The service never issues tokens itself; this exists for tooling and tests.
func GenerateToken(subject string, role Role, secret []byte, duration time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"sub":  subject,
		"role": string(role),
		"iat":  time.Now().Unix(),
		"exp":  time.Now().Add(duration).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

// ValidateToken parses and validates a token string and returns the token if valid.
func ValidateToken(tokenString string, secret []byte) (*jwt.Token, error) {
	return jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		// Ensure that the token's signing method is HMAC.
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return secret, nil
	})
}

// VerifyPrincipal validates the token and extracts the subject and role.
// Hosted-auth tokens carry the role under app_metadata.role; a token with no
// recognised role is treated as a guest.
func VerifyPrincipal(tokenString string, secret []byte) (*Principal, error) {
	if len(secret) == 0 {
		return nil, errors.New("token verification is not configured")
	}
	token, err := ValidateToken(tokenString, secret)
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}

	sub, ok := claims["sub"].(string)
	if !ok || sub == "" {
		return nil, errors.New("token does not contain a valid 'sub' claim")
	}

	role, _ := claims["role"].(string)
	if meta, ok := claims["app_metadata"].(map[string]interface{}); ok {
		if r, ok := meta["role"].(string); ok && r != "" {
			role = r
		}
	}

	switch Role(role) {
	case RoleAdmin, RoleEmployee:
		return &Principal{ID: sub, Role: Role(role)}, nil
	default:
		return &Principal{ID: sub, Role: RoleGuest}, nil
	}
}
