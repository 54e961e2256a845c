package middleware

import (
	"net/http"
	"strings"

	"github.com/Meenakshi-1306/Tutedude/internal/model"
	"github.com/Meenakshi-1306/Tutedude/pkg/jwtutil"
	"github.com/Meenakshi-1306/Tutedude/pkg/logger"
	"github.com/Meenakshi-1306/Tutedude/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// Echo context keys set by Auth
const (
	UserIDKey = "user_id"
	EmailKey  = "email"
	RoleKey   = "role"
)

// Auth verifies the bearer token and stores the caller's identity in the context
func Auth(jwtUtil *jwtutil.JWTUtil) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			log := logger.FromContext(c)

			tokenString := c.Request().Header.Get(echo.HeaderAuthorization)
			if tokenString == "" {
				log.Warn("Missing authorization token")
				prometheus.RecordAuthError("missing_token")
				return c.JSON(http.StatusUnauthorized, echo.Map{"success": false, "error": "authentication required"})
			}

			// Remove "Bearer " prefix if present
			if len(tokenString) > 7 && strings.ToUpper(tokenString[0:7]) == "BEARER " {
				tokenString = tokenString[7:]
			}

			claims, err := jwtUtil.ValidateToken(tokenString)
			if err != nil {
				log.Warn("Invalid token", zap.Error(err))
				prometheus.RecordAuthError("invalid_token")
				return c.JSON(http.StatusUnauthorized, echo.Map{"success": false, "error": "invalid token"})
			}

			c.Set(UserIDKey, claims.UserID)
			c.Set(EmailKey, claims.Email)
			c.Set(RoleKey, model.Role(claims.Role))

			logger.Attach(c, log.With(
				zap.String("user_id", claims.UserID),
				zap.String("role", claims.Role),
			))

			return next(c)
		}
	}
}

// RequireRole rejects callers whose token carries none of the given roles
func RequireRole(roles ...model.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role := RoleOf(c)
			for _, r := range roles {
				if role == r {
					return next(c)
				}
			}

			logger.FromContext(c).Warn("Role not permitted",
				zap.String("role", string(role)),
				zap.String("path", c.Path()),
			)
			return c.JSON(http.StatusForbidden, echo.Map{
				"success": false,
				"error":   "this action is not available for your account type",
			})
		}
	}
}

// UserIDOf returns the authenticated user's id, or "" outside Auth
func UserIDOf(c echo.Context) string {
	id, _ := c.Get(UserIDKey).(string)
	return id
}

// RoleOf returns the authenticated user's role, or "" outside Auth
func RoleOf(c echo.Context) model.Role {
	role, _ := c.Get(RoleKey).(model.Role)
	return role
}
