package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/lalith-99/fixit/internal/models"
)

const issuer = "fixit"

// Claims is the payload inside every JWT token.
//
// Role is carried for convenience only. The store re-reads the role from
// the profiles table on every policy check, so a stale role in a token
// never grants anything.
type Claims struct {
	UserID uuid.UUID   `json:"user_id"`
	Email  string      `json:"email"`
	Role   models.Role `json:"role"`
	jwt.RegisteredClaims
}

// GenerateToken creates a signed HS256 JWT for a profile.
//
// Parameters:
//   - userID, email, role: who this token represents.
//   - secret: the HMAC key to sign with (config.JWTSecret).
//   - ttl: how long until the token expires (config.TokenTTL, 24h default).
//
// Each token gets a random ID (jti). Sign-out stores that ID in the
// revocation set, so only this token stops working and any other session
// of the same user stays signed in.
func GenerateToken(userID uuid.UUID, email string, role models.Role, secret string, ttl time.Duration) (string, error) {
	now := time.Now()

	claims := Claims{
		UserID: userID,
		Email:  email,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    issuer,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}

	return signed, nil
}

// ParseToken validates a JWT string and extracts the claims.
// It checks the signature, expiry, issuer, and that the method is HMAC.
func ParseToken(tokenString, secret string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{},
		func(token *jwt.Token) (any, error) {
			// Reject "none" and asymmetric algorithms before verifying.
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return []byte(secret), nil
		},
		jwt.WithIssuer(issuer),
	)
	if err != nil {
		return nil, fmt.Errorf("parse token: %w", err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token claims")
	}

	return claims, nil
}

// Caller converts the claims into the identity store queries run as.
func (c *Claims) Caller() models.Caller {
	return models.Caller{UserID: c.UserID, Email: c.Email}
}
