package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/sajidk24/recipeshare/backend/internal/models"
	"github.com/sajidk24/recipeshare/backend/internal/repositories"
)

// RequireAdmin gates a route group to admin accounts. Expects the JWT
// middleware to have stored the caller's claims in the context.
func RequireAdmin(userRepo repositories.UserRepository) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, ok := c.Get("user").(*models.JwtCustomClaims)
			if !ok || claims == nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
			}

			user, err := userRepo.GetUserByID(claims.UserID)
			if err != nil {
				return echo.NewHTTPError(http.StatusNotFound, "User not found")
			}
			if !user.IsAdmin {
				return echo.NewHTTPError(http.StatusForbidden, "Access denied: Admins only")
			}

			return next(c)
		}
	}
}
