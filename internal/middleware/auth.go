package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/igabaycare/clinic-core/internal/config"
)

const (
	ContextUserID   = "userID"
	ContextClinicID = "clinicID"
	ContextUserRole = "userRole"
	ContextUserName = "userName"
)

// AuthMiddleware verifies bearer tokens issued by the clinic's auth service.
// Claims: sub (user uuid), clinicId (clinic uuid), role, name (display
// name printed on issued documents).
func AuthMiddleware(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing_authorization_header"})
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid_authorization_header"})
			return
		}

		token, err := jwt.Parse(parts[1], func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrTokenMalformed
			}
			return []byte(cfg.JWTSecret), nil
		})
		if err != nil || !token.Valid {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid_token"})
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid_token_claims"})
			return
		}

		sub, _ := claims["sub"].(string)
		clinic, _ := claims["clinicId"].(string)
		role, _ := claims["role"].(string)
		name, _ := claims["name"].(string)

		userID, err1 := uuid.Parse(sub)
		clinicID, err2 := uuid.Parse(clinic)
		if err1 != nil || err2 != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid_token_payload"})
			return
		}

		c.Set(ContextUserID, userID)
		c.Set(ContextClinicID, clinicID)
		c.Set(ContextUserRole, role)
		c.Set(ContextUserName, strings.TrimSpace(name))

		c.Next()
	}
}

// RequireRole rejects requests whose token role is not one of roles.
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString(ContextUserRole)
		for _, r := range roles {
			if role == r {
				c.Next()
				return
			}
		}
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "forbidden"})
	}
}

func UserID(c *gin.Context) uuid.UUID {
	return c.MustGet(ContextUserID).(uuid.UUID)
}

// UserName is empty when the token carries no name claim.
func UserName(c *gin.Context) string {
	return c.GetString(ContextUserName)
}

func ClinicID(c *gin.Context) uuid.UUID {
	return c.MustGet(ContextClinicID).(uuid.UUID)
}
