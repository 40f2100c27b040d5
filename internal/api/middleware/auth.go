package middleware

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/liliang-cn/closet/internal/domain"
)

const userIDKey = "closet.user_id"

// Auth returns a bearer token middleware. Tokens are HS256 JWTs signed with
// secret whose subject is the user ID. With an empty secret every request is
// attributed to defaultUser.
func Auth(secret, defaultUser string) gin.HandlerFunc {
	return func(c *gin.Context) {
		// Skip auth if no secret configured
		if secret == "" {
			c.Set(userIDKey, defaultUser)
			c.Next()
			return
		}

		userID, err := verify(bearerToken(c), secret)
		if err != nil {
			_ = c.Error(err)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": domain.ErrUnauthorized.Error()})
			return
		}

		c.Set(userIDKey, userID)
		c.Next()
	}
}

// UserID returns the user attached by Auth
func UserID(c *gin.Context) string {
	return c.GetString(userIDKey)
}

func bearerToken(c *gin.Context) string {
	auth := c.GetHeader("Authorization")
	if len(auth) > 7 && strings.EqualFold(auth[:7], "Bearer ") {
		return strings.TrimSpace(auth[7:])
	}
	return ""
}

// verify returns the token subject, or an error wrapping domain.ErrUnauthorized.
func verify(tokenString, secret string) (string, error) {
	if tokenString == "" {
		return "", fmt.Errorf("missing bearer token: %w", domain.ErrUnauthorized)
	}

	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(*jwt.Token) (any, error) {
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return "", fmt.Errorf("%w: %w", domain.ErrUnauthorized, err)
	}
	if !token.Valid || claims.Subject == "" {
		return "", fmt.Errorf("token without subject: %w", domain.ErrUnauthorized)
	}
	return claims.Subject, nil
}
