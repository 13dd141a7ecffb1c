package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"studio-portfolio/pkg/jwt"

	"github.com/gin-gonic/gin"
)

const (
	ContextUserID   = "user_id"
	ContextUserRole = "user_role"

	contextVerified = "account_verified"
)

// ErrAccountNotFound is returned by an AccountLookup for unknown users.
var ErrAccountNotFound = errors.New("account not found")

// Account is the stored state of a token's subject.
type Account struct {
	Role   string
	Active bool
}

// AccountLookup loads the current role and status of a user, so that role
// changes and deactivation apply to tokens issued earlier.
type AccountLookup interface {
	LookupAccount(ctx context.Context, userID string) (Account, error)
}

// identify resolves the caller behind claims. With a nil lookup the token
// claims are trusted as issued.
func identify(c *gin.Context, accounts AccountLookup, claims *jwt.Claims) (string, int, string) {
	if accounts == nil {
		return claims.Role, 0, ""
	}
	account, err := accounts.LookupAccount(c.Request.Context(), claims.UserID)
	switch {
	case errors.Is(err, ErrAccountNotFound):
		return "", http.StatusUnauthorized, "Account no longer exists"
	case err != nil:
		return "", http.StatusServiceUnavailable, "Unable to verify account"
	case !account.Active:
		return "", http.StatusForbidden, "Account is deactivated"
	}
	return account.Role, 0, ""
}

func bearerToken(c *gin.Context) (string, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return "", false
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
		return "", false
	}
	return strings.TrimSpace(parts[1]), true
}

// AuthMiddleware rejects requests without a valid bearer token or whose
// account is gone or deactivated. The role comes from the account.
func AuthMiddleware(jwtService *jwt.Service, accounts AccountLookup) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetBool(contextVerified) && c.GetString(ContextUserID) != "" {
			c.Next()
			return
		}

		token, ok := bearerToken(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required"})
			c.Abort()
			return
		}

		claims, err := jwtService.ValidateToken(token)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			c.Abort()
			return
		}

		role, status, message := identify(c, accounts, claims)
		if status != 0 {
			c.JSON(status, gin.H{"error": message})
			c.Abort()
			return
		}

		c.Set(ContextUserID, claims.UserID)
		c.Set(ContextUserRole, role)
		c.Set(contextVerified, true)
		c.Next()
	}
}

// OptionalAuthMiddleware sets the caller identity when a valid token for an
// active account is present and lets every other request through anonymous.
func OptionalAuthMiddleware(jwtService *jwt.Service, accounts AccountLookup) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token, ok := bearerToken(c); ok {
			if claims, err := jwtService.ValidateToken(token); err == nil {
				if role, status, _ := identify(c, accounts, claims); status == 0 {
					c.Set(ContextUserID, claims.UserID)
					c.Set(ContextUserRole, role)
					c.Set(contextVerified, true)
				}
			}
		}
		c.Next()
	}
}

// RequireRoles must run after AuthMiddleware.
func RequireRoles(roles ...string) gin.HandlerFunc {
	allowed := make(map[string]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}

	return func(c *gin.Context) {
		role := c.GetString(ContextUserRole)
		if _, ok := allowed[role]; !ok {
			c.JSON(http.StatusForbidden, gin.H{"error": "Insufficient permissions"})
			c.Abort()
			return
		}
		c.Next()
	}
}
