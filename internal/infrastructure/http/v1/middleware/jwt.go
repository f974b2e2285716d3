package middleware

import (
	"fmt"

	"github.com/golang-jwt/jwt/v5"

	"storekeeper/internal/core/appctx"
)

// Claims carries the session payload inside the JWT.
type Claims struct {
	jwt.RegisteredClaims

	Email   string   `json:"email,omitempty"`
	Roles   []string `json:"roles,omitempty"`
	IsAdmin bool     `json:"is_admin,omitempty"`
}

// HS256Validator validates HMAC-signed tokens issued by the auth service.
type HS256Validator struct {
	secret []byte
}

// NewHS256Validator creates a validator for the shared signing secret.
func NewHS256Validator(secret string) *HS256Validator {
	return &HS256Validator{secret: []byte(secret)}
}

// ValidateToken parses and verifies the token, returning the session.
func (v *HS256Validator) ValidateToken(tokenString string) (*appctx.Session, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return v.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("parse token: %w", err)
	}
	if !token.Valid {
		return nil, fmt.Errorf("token is not valid")
	}
	if claims.Subject == "" {
		return nil, fmt.Errorf("token has no subject")
	}

	return &appctx.Session{
		UserID:    claims.Subject,
		Email:     claims.Email,
		Roles:     claims.Roles,
		IsAdmin:   claims.IsAdmin,
		SessionID: claims.ID,
	}, nil
}

// Ensure interface compliance.
var _ TokenValidator = (*HS256Validator)(nil)
