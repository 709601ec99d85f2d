// Package middleware contains shared Gin middleware used by the HTTP layer.
//
// This file implements JWT bearer authentication. Tokens are HMAC-signed and
// carry the user id and role; validated claims are published on the Gin
// context ("userID", "role") for handlers downstream.
//
// Three variants cover the API surface:
//   - Auth:         token required, 401 otherwise
//   - OptionalAuth: claims published when a valid token is present, requests
//     without one pass through anonymously
//   - RequireAdmin: 403 unless the validated role is "admin"
package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
)

// RoleAdmin is the role claim value that unlocks admin endpoints.
const RoleAdmin = "admin"

// Claims is the JWT payload accepted by the API.
type Claims struct {
	UserID string `json:"user_id"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// bearerToken extracts the token from the Authorization header, empty when
// absent or not a Bearer scheme.
func bearerToken(c *gin.Context) string {
	h := c.GetHeader("Authorization")
	if h == "" {
		return ""
	}
	tok := strings.TrimPrefix(h, "Bearer ")
	if tok == h {
		return ""
	}
	return strings.TrimSpace(tok)
}

// parseClaims validates an HMAC-signed token string against secret.
func parseClaims(tokenString string, secret []byte) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return secret, nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, jwt.ErrTokenUnverifiable
	}
	return claims, nil
}

func publishClaims(c *gin.Context, claims *Claims) {
	c.Set("userID", claims.UserID)
	c.Set("role", claims.Role)
}

func authFail(c *gin.Context, status int, code, msg string) {
	c.AbortWithStatusJSON(status, gin.H{
		"request_id": c.Writer.Header().Get("X-Request-ID"),
		"code":       code,
		"message":    msg,
	})
}

// Auth returns middleware that rejects requests without a valid bearer token.
func Auth(secret string) gin.HandlerFunc {
	key := []byte(secret)
	return func(c *gin.Context) {
		tok := bearerToken(c)
		if tok == "" {
			authFail(c, http.StatusUnauthorized, "unauthorized", "bearer token required")
			return
		}
		claims, err := parseClaims(tok, key)
		if err != nil {
			authFail(c, http.StatusUnauthorized, "unauthorized", "invalid token")
			return
		}
		publishClaims(c, claims)
		c.Next()
	}
}

// OptionalAuth returns middleware that publishes claims when a valid token is
// present and lets anonymous requests through untouched. An invalid token is
// still rejected so clients never silently degrade to anonymous.
func OptionalAuth(secret string) gin.HandlerFunc {
	key := []byte(secret)
	return func(c *gin.Context) {
		tok := bearerToken(c)
		if tok == "" {
			c.Next()
			return
		}
		claims, err := parseClaims(tok, key)
		if err != nil {
			authFail(c, http.StatusUnauthorized, "unauthorized", "invalid token")
			return
		}
		publishClaims(c, claims)
		c.Next()
	}
}

// RequireAdmin returns middleware that blocks non-admin callers. It must run
// after Auth.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !IsAdmin(c) {
			authFail(c, http.StatusForbidden, "forbidden", "admin access required")
			return
		}
		c.Next()
	}
}

// IsAdmin reports whether the validated claims carry the admin role.
func IsAdmin(c *gin.Context) bool {
	v, ok := c.Get("role")
	if !ok {
		return false
	}
	role, _ := v.(string)
	return role == RoleAdmin
}
