package handlers

import (
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/sajidk24/recipeshare/backend/internal/models"
)

// getUserIDFromContext returns the authenticated user's account ID, or 0 when
// the request carries no valid claims.
func getUserIDFromContext(c echo.Context) uint {
	claims, ok := c.Get("user").(*models.JwtCustomClaims)
	if !ok || claims == nil {
		return 0
	}
	return claims.UserID
}

// userIDString renders an account ID the way the Mongo documents store it.
func userIDString(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}
