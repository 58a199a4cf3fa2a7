package types

import "github.com/golang-jwt/jwt/v4"

// AdminClaims is the payload of the admin_session cookie.
type AdminClaims struct {
	SessionID string    `json:"sid"`
	Email     string    `json:"email"`
	Role      AdminRole `json:"role"`
	jwt.RegisteredClaims
}
