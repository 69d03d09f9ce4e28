package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/lalith-99/fixit/internal/auth"
	"github.com/lalith-99/fixit/internal/models"
	"github.com/lalith-99/fixit/internal/session"
)

// Context keys for values the auth middleware stores in gin.Context.
const (
	ContextKeyClaims = "claims"
	ContextKeyUserID = "user_id"
)

// AuthMiddleware rejects requests without a valid, non-revoked bearer
// token. On success the claims are available through GetClaims.
//
// Flow for each request:
//  1. Read "Authorization: Bearer <token>"; missing or malformed is 401.
//  2. Verify signature, expiry and issuer; any failure is 401.
//  3. Look the jti up in the revocation set. A signed-out token is 401.
//     If the set cannot be reached the answer is 503, not a pass.
//  4. Store the claims in gin.Context and continue.
//
// Handlers behind it never see an anonymous request, so they can call
// GetCaller without checking for the zero value.
func AuthMiddleware(secret string, revoker session.Revoker) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "missing authorization header",
			})
			return
		}

		tokenString, ok := bearerToken(header)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "invalid authorization format, expected: Bearer <token>",
			})
			return
		}

		claims, err := auth.ParseToken(tokenString, secret)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "invalid or expired token",
			})
			return
		}

		revoked, err := revoker.IsRevoked(c.Request.Context(), claims.ID)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{
				"error": "session check unavailable",
			})
			return
		}
		if revoked {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "invalid or expired token",
			})
			return
		}

		setClaims(c, claims)
		c.Next()
	}
}

// OptionalAuth stores claims when a usable token is present and otherwise
// lets the request through anonymously. Used by the role router, which
// has its own answer for "not signed in".
func OptionalAuth(secret string, revoker session.Revoker) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, ok := bearerToken(c.GetHeader("Authorization"))
		if ok {
			claims, err := auth.ParseToken(tokenString, secret)
			if err == nil {
				revoked, err := revoker.IsRevoked(c.Request.Context(), claims.ID)
				if err == nil && !revoked {
					setClaims(c, claims)
				}
			}
		}
		c.Next()
	}
}

func bearerToken(header string) (string, bool) {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}

func setClaims(c *gin.Context, claims *auth.Claims) {
	c.Set(ContextKeyClaims, claims)
	c.Set(ContextKeyUserID, claims.UserID)
}

// GetClaims returns the token claims, or nil for an anonymous request.
func GetClaims(c *gin.Context) *auth.Claims {
	val, exists := c.Get(ContextKeyClaims)
	if !exists {
		return nil
	}
	claims, ok := val.(*auth.Claims)
	if !ok {
		return nil
	}
	return claims
}

func GetUserID(c *gin.Context) uuid.UUID {
	val, exists := c.Get(ContextKeyUserID)
	if !exists {
		return uuid.Nil
	}
	id, ok := val.(uuid.UUID)
	if !ok {
		return uuid.Nil
	}
	return id
}

// GetCaller returns the identity store queries should run as. For an
// anonymous request it is the zero Caller, which no policy matches.
func GetCaller(c *gin.Context) models.Caller {
	claims := GetClaims(c)
	if claims == nil {
		return models.Caller{}
	}
	return claims.Caller()
}
