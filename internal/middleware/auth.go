package middleware

import (
	"net/http"
	"strings"

	"github.com/AGKL-Team/AGKL-Sales-backend/pkg/jwtutil"
	"github.com/AGKL-Team/AGKL-Sales-backend/pkg/logger"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// AuthMiddleware validates the identity provider's access token and
// stores the acting user in the context. The token subject becomes the
// audit actor for every mutation in the request.
func AuthMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		log := logger.FromContext(c)

		// Get the Authorization header
		authHeader := c.Request().Header.Get("Authorization")
		if authHeader == "" {
			log.Warn("Missing Authorization header")
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing authorization token"})
		}

		// Check if it's a Bearer token
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			log.Warn("Invalid Authorization header format")
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid authorization format, expected Bearer token"})
		}

		// Extract the token
		tokenString := parts[1]

		// Validate the token
		claims, err := jwtutil.ValidateToken(tokenString)
		if err != nil {
			log.Error("Invalid access token", zap.Error(err))
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid or expired token"})
		}

		if claims.Subject == "" {
			log.Warn("Access token does not carry a subject")
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "token subject is required"})
		}

		// Store user info in context for later use
		c.Set("user_id", claims.Subject)
		c.Set("email", claims.Email)
		c.Set("access_token", tokenString)

		// Token is valid, proceed with the request
		return next(c)
	}
}

// ActorFromContext retrieves the acting user id from the context.
// Returns "", false when the request was not authenticated.
func ActorFromContext(c echo.Context) (string, bool) {
	actor, ok := c.Get("user_id").(string)
	return actor, ok
}

// TokenFromContext retrieves the raw access token from the context
func TokenFromContext(c echo.Context) (string, bool) {
	token, ok := c.Get("access_token").(string)
	return token, ok
}
