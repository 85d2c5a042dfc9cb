package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Ang3lito/rabiesresq/internal/handler"
	"github.com/Ang3lito/rabiesresq/internal/repository"
	"github.com/Ang3lito/rabiesresq/pkg/auth"
)

// Context keys set by Authenticate and ResolvePersonnel.
const (
	CtxUserID      = "userID"
	CtxUserEmail   = "userEmail"
	CtxUserRole    = "userRole"
	CtxPersonnelID = "personnelID"
	CtxClinicID    = "clinicID"
)

type AuthMiddleware struct {
	jwtSvc        auth.JWTService
	personnelRepo repository.PersonnelRepository
}

func NewAuthMiddleware(jwtSvc auth.JWTService, personnelRepo repository.PersonnelRepository) *AuthMiddleware {
	return &AuthMiddleware{jwtSvc: jwtSvc, personnelRepo: personnelRepo}
}

// Authenticate verifies the bearer token and sets user info in context
func (m *AuthMiddleware) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("missing authorization header"))
			c.Abort()
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("invalid authorization format"))
			c.Abort()
			return
		}

		claims, err := m.jwtSvc.ValidateToken(parts[1])
		if err != nil {
			c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("invalid token"))
			c.Abort()
			return
		}

		c.Set(CtxUserID, claims.UserID.String())
		c.Set(CtxUserEmail, claims.Email)
		c.Set(CtxUserRole, claims.Role)
		c.Next()
	}
}

// RequireRole gates a route group to the listed roles.
func (m *AuthMiddleware) RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString(CtxUserRole)
		for _, allowed := range roles {
			if role == allowed {
				c.Next()
				return
			}
		}
		c.JSON(http.StatusForbidden, handler.NewErrorResponse("insufficient role"))
		c.Abort()
	}
}

// UserID extracts the authenticated user's id from the gin context.
func UserID(c *gin.Context) (uuid.UUID, error) {
	return uuid.Parse(c.GetString(CtxUserID))
}

// ResolvePersonnel loads the acting staff member's extension row and
// sets its id and clinic in context. Mount behind
// RequireRole(model.RoleClinicPersonnel).
func (m *AuthMiddleware) ResolvePersonnel() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, err := UserID(c)
		if err != nil {
			c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("invalid user id"))
			c.Abort()
			return
		}
		personnel, err := m.personnelRepo.GetByUserID(c.Request.Context(), userID)
		if err != nil {
			c.JSON(http.StatusForbidden, handler.NewErrorResponse("no staff profile for user"))
			c.Abort()
			return
		}
		c.Set(CtxPersonnelID, personnel.ID.String())
		c.Set(CtxClinicID, personnel.ClinicID.String())
		c.Next()
	}
}

// PersonnelID extracts the resolved staff member id from the context.
func PersonnelID(c *gin.Context) (uuid.UUID, error) {
	return uuid.Parse(c.GetString(CtxPersonnelID))
}

// ClinicID extracts the resolved staff member's clinic from the context.
func ClinicID(c *gin.Context) (uuid.UUID, error) {
	return uuid.Parse(c.GetString(CtxClinicID))
}
