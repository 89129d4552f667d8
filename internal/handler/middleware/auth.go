package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"examgate/internal/domain/identity"
	"examgate/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type AuthMiddleware struct {
	tokenValidator usecase.TokenValidator
}

const (
	ctxApplicantIDKey = "applicant_id"
	ctxRoleKey        = "applicant_role"
)

func NewAuthMiddleware(tokenValidator usecase.TokenValidator) *AuthMiddleware {
	return &AuthMiddleware{
		tokenValidator: tokenValidator,
	}
}

func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		var token string

		authHeader := c.GetHeader("Authorization")
		if authHeader != "" && strings.HasPrefix(authHeader, "Bearer ") {
			token = strings.TrimSpace(authHeader[len("Bearer "):])
		}

		if token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Access token required",
			})
			c.Abort()
			return
		}

		applicantID, role, err := m.tokenValidator.ValidateToken(token)
		if err != nil {
			slog.Warn("Token validation failed in auth middleware", "error", err.Error())
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Invalid or expired token",
			})
			c.Abort()
			return
		}

		c.Set(ctxApplicantIDKey, applicantID)
		c.Set(ctxRoleKey, role)
		c.Set("jwt_claims", map[string]any{
			"applicant_id": applicantID.String(),
			"role":         string(role),
		})
		c.Next()
	}
}

// RequireAdmin assumes RequireAuth ran earlier in the chain.
func (m *AuthMiddleware) RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		role, ok := GetRole(c)
		if !ok {
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
			c.Abort()
			return
		}

		if role != identity.RoleAdmin {
			c.JSON(http.StatusForbidden, gin.H{
				"error": "Insufficient permissions",
			})
			c.Abort()
			return
		}

		c.Next()
	}
}

func GetApplicantID(c *gin.Context) (uuid.UUID, bool) {
	applicantID, exists := c.Get(ctxApplicantIDKey)
	if !exists {
		return uuid.Nil, false
	}

	id, ok := applicantID.(uuid.UUID)
	return id, ok
}

func GetRole(c *gin.Context) (identity.Role, bool) {
	roleValue, exists := c.Get(ctxRoleKey)
	if !exists {
		return "", false
	}

	role, ok := roleValue.(identity.Role)
	return role, ok
}
