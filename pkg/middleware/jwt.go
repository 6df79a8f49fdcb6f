package middleware

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/nvtimofeev/ticketly/pkg/response"
)

const (
	// AuthorizationHeader is the header carrying the bearer token
	AuthorizationHeader = "Authorization"
	// ContextKeyUserID is the gin context key for the caller's user ID
	ContextKeyUserID = "user_id"
	// ContextKeyUserRole is the gin context key for the caller's role
	ContextKeyUserRole = "user_role"
	// ContextKeyUserEmail is the gin context key for the caller's email
	ContextKeyUserEmail = "user_email"
)

var (
	ErrMissingToken = errors.New("missing authorization token")
	ErrInvalidToken = errors.New("invalid authorization token")
)

// JWTConfig holds configuration for the JWT middleware
type JWTConfig struct {
	Secret    string
	SkipPaths []string
}

// JWTMiddleware validates the bearer token and stores the resolved
// identity (user id, role, email) in the request context. Every
// downstream handler reads identity from here instead of re-resolving
// the session.
func JWTMiddleware(config *JWTConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, path := range config.SkipPaths {
			if c.Request.URL.Path == path {
				c.Next()
				return
			}
		}

		claims, err := parseToken(c.GetHeader(AuthorizationHeader), config.Secret)
		if err != nil {
			response.Unauthorized(c, "Authentication required")
			c.Abort()
			return
		}

		c.Set(ContextKeyUserID, claims.UserID)
		c.Set(ContextKeyUserRole, claims.Role)
		c.Set(ContextKeyUserEmail, claims.Email)

		c.Next()
	}
}

// TokenClaims is the identity carried by an access token
type TokenClaims struct {
	UserID string
	Email  string
	Role   string
}

func parseToken(header, secret string) (*TokenClaims, error) {
	if header == "" {
		return nil, ErrMissingToken
	}

	tokenString := strings.TrimPrefix(header, "Bearer ")
	if tokenString == header {
		return nil, ErrInvalidToken
	}

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidToken
	}

	userID, _ := claims["user_id"].(string)
	if userID == "" {
		return nil, ErrInvalidToken
	}
	email, _ := claims["email"].(string)
	role, _ := claims["role"].(string)

	return &TokenClaims{
		UserID: userID,
		Email:  email,
		Role:   role,
	}, nil
}

// RequireRole aborts with 403 unless the caller's role is one of the
// allowed roles. Must run after JWTMiddleware.
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, ok := GetUserRole(c)
		if !ok {
			response.Unauthorized(c, "Authentication required")
			c.Abort()
			return
		}

		for _, allowed := range roles {
			if role == allowed {
				c.Next()
				return
			}
		}

		response.Error(c, 403, "FORBIDDEN", "Insufficient permissions", "")
		c.Abort()
	}
}

// GetUserID returns the authenticated caller's user ID
func GetUserID(c *gin.Context) (string, bool) {
	id, exists := c.Get(ContextKeyUserID)
	if !exists {
		return "", false
	}
	userID, ok := id.(string)
	return userID, ok
}

// GetUserRole returns the authenticated caller's role
func GetUserRole(c *gin.Context) (string, bool) {
	r, exists := c.Get(ContextKeyUserRole)
	if !exists {
		return "", false
	}
	role, ok := r.(string)
	return role, ok
}

// GetUserEmail returns the authenticated caller's email
func GetUserEmail(c *gin.Context) (string, bool) {
	e, exists := c.Get(ContextKeyUserEmail)
	if !exists {
		return "", false
	}
	email, ok := e.(string)
	return email, ok
}
