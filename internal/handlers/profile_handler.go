package handlers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/sajidk24/recipeshare/backend/internal/models"
	"github.com/sajidk24/recipeshare/backend/internal/repositories"
)

// ProfileHandler serves the aggregated chef profile and the follow toggle
type ProfileHandler struct {
	chefRepository   repositories.ChefRepository
	userRepository   repositories.UserRepository
	recipeRepository repositories.RecipeRepository
}

// NewProfileHandler creates a new ProfileHandler
func NewProfileHandler(chefRepo repositories.ChefRepository, userRepo repositories.UserRepository, recipeRepo repositories.RecipeRepository) *ProfileHandler {
	return &ProfileHandler{
		chefRepository:   chefRepo,
		userRepository:   userRepo,
		recipeRepository: recipeRepo,
	}
}

// RegisterProfileRoutes registers profile-related routes
func (h *ProfileHandler) RegisterProfileRoutes(g *echo.Group) {
	g.GET("/profile/:userId", h.GetProfile)
	g.POST("/profile/:userId/follow", h.ToggleFollow)
}

// GetProfile aggregates the account record, chef details, edge counts and the
// chef's recipes into a single view
func (h *ProfileHandler) GetProfile(c echo.Context) error {
	userID := c.Param("userId")
	ctx := c.Request().Context()

	chef, err := h.chefRepository.GetChefByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Chef not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Server error")
	}

	profile := models.Profile{
		Phone:          chef.Phone,
		Address:        chef.Address,
		FollowersCount: len(chef.Followers),
		FollowingCount: len(chef.Following),
		Recipes:        []models.Recipe{},
	}

	// The account record is canonical for name and email
	if id, err := strconv.ParseUint(userID, 10, 32); err == nil {
		if user, err := h.userRepository.GetUserByID(uint(id)); err == nil {
			profile.Name = user.Name
			profile.Email = user.Email
		}
	}

	recipes, err := h.recipeRepository.GetRecipesByUserID(ctx, userID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Server error")
	}
	profile.Recipes = recipes

	return c.JSON(http.StatusOK, profile)
}

// ToggleFollowRequest is the follow toggle request body
type ToggleFollowRequest struct {
	CurrentUserID string `json:"currentUserId" validate:"required"`
}

// ToggleFollow follows the chef when the caller is not yet following them and
// unfollows otherwise. Both sides of the edge are updated together.
func (h *ProfileHandler) ToggleFollow(c echo.Context) error {
	targetUserID := c.Param("userId")

	var req ToggleFollowRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	followed, err := h.chefRepository.ToggleFollow(c.Request().Context(), targetUserID, req.CurrentUserID)
	if err != nil {
		switch {
		case errors.Is(err, repositories.ErrSelfFollow):
			return echo.NewHTTPError(http.StatusBadRequest, "You can't follow yourself")
		case errors.Is(err, repositories.ErrNotFound):
			return echo.NewHTTPError(http.StatusNotFound, "Chef not found")
		case errors.Is(err, repositories.ErrPartialUpdate):
			log.Printf("follow toggle left asymmetric state for %s/%s: %v", targetUserID, req.CurrentUserID, err)
			return echo.NewHTTPError(http.StatusInternalServerError, "Server error")
		default:
			log.Printf("follow toggle failed for %s/%s: %v", targetUserID, req.CurrentUserID, err)
			return echo.NewHTTPError(http.StatusInternalServerError, "Server error")
		}
	}

	message := "Unfollowed successfully"
	if followed {
		message = "Followed successfully"
	}
	return c.JSON(http.StatusOK, echo.Map{"message": message})
}
