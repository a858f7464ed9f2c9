package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/sajidk24/recipeshare/backend/internal/models"
	"github.com/sajidk24/recipeshare/backend/internal/repositories"
)

// AdminHandler serves the moderation and analytics endpoints
type AdminHandler struct {
	userRepository   repositories.UserRepository
	recipeRepository repositories.RecipeRepository
}

// NewAdminHandler creates a new AdminHandler
func NewAdminHandler(userRepo repositories.UserRepository, recipeRepo repositories.RecipeRepository) *AdminHandler {
	return &AdminHandler{
		userRepository:   userRepo,
		recipeRepository: recipeRepo,
	}
}

// RegisterAdminRoutes registers admin-only routes
func (h *AdminHandler) RegisterAdminRoutes(g *echo.Group) {
	g.GET("/analytics", h.GetAnalytics)
	g.GET("/users", h.GetUsers)
	g.POST("/users", h.AddUser)
	g.PUT("/users/:id", h.UpdateUser)
	g.DELETE("/users/:id", h.DeleteUser)
	g.GET("/recipes", h.GetRecipes)
	g.POST("/recipes", h.AddRecipe)
	g.GET("/recipes/pending", h.GetPendingRecipes)
	g.PUT("/recipes/:id/approve", h.ApproveRecipe)
	g.DELETE("/recipes/:id", h.DeleteRecipe)
}

// GetAnalytics returns totals and per-day signup/recipe counts
func (h *AdminHandler) GetAnalytics(c echo.Context) error {
	ctx := c.Request().Context()

	totalUsers, err := h.userRepository.CountUsers()
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Server error while fetching analytics")
	}
	totalRecipes, err := h.recipeRepository.CountRecipes(ctx)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Server error while fetching analytics")
	}
	dailyNewUsers, err := h.userRepository.DailyNewUsers()
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Server error while fetching analytics")
	}
	dailyNewRecipes, err := h.recipeRepository.DailyNewRecipes(ctx)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Server error while fetching analytics")
	}

	return c.JSON(http.StatusOK, echo.Map{
		"totalUsers":      totalUsers,
		"totalRecipes":    totalRecipes,
		"dailyNewUsers":   dailyNewUsers,
		"dailyNewRecipes": dailyNewRecipes,
	})
}

// GetUsers returns every account record
func (h *AdminHandler) GetUsers(c echo.Context) error {
	users, err := h.userRepository.GetUsers()
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Server error while fetching users")
	}
	return c.JSON(http.StatusOK, users)
}

// AddUser creates an account record directly
func (h *AdminHandler) AddUser(c echo.Context) error {
	var user models.User
	if err := c.Bind(&user); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := h.userRepository.CreateUser(&user); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Server error while adding user")
	}
	return c.JSON(http.StatusOK, user)
}

// UpdateUser updates an account record by ID
func (h *AdminHandler) UpdateUser(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid user ID")
	}

	user, err := h.userRepository.GetUserByID(uint(id))
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "User not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Server error while updating user")
	}

	var updates models.User
	if err := c.Bind(&updates); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	if updates.Name != "" {
		user.Name = updates.Name
	}
	if updates.Email != "" {
		user.Email = updates.Email
	}
	if updates.Phone != "" {
		user.Phone = updates.Phone
	}
	user.IsAdmin = updates.IsAdmin

	if err := h.userRepository.UpdateUser(user); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Server error while updating user")
	}
	return c.JSON(http.StatusOK, user)
}

// DeleteUser deletes an account record by ID
func (h *AdminHandler) DeleteUser(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid user ID")
	}
	if err := h.userRepository.DeleteUser(uint(id)); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Server error while deleting user")
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "User deleted successfully"})
}

// GetRecipes returns every recipe
func (h *AdminHandler) GetRecipes(c echo.Context) error {
	recipes, err := h.recipeRepository.GetAllRecipes(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Server error while fetching recipes")
	}
	return c.JSON(http.StatusOK, recipes)
}

// AddRecipe creates a recipe directly, already approved
func (h *AdminHandler) AddRecipe(c echo.Context) error {
	var recipe models.Recipe
	if err := c.Bind(&recipe); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if recipe.UserID == "" || recipe.RecipeName == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Missing required fields: userId or recipeName.")
	}
	if recipe.Status == "" {
		recipe.Status = models.RecipeStatusApproved
	}
	if err := h.recipeRepository.CreateRecipe(c.Request().Context(), &recipe); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Server error while adding recipe")
	}
	return c.JSON(http.StatusCreated, recipe)
}

// GetPendingRecipes returns recipes awaiting moderation
func (h *AdminHandler) GetPendingRecipes(c echo.Context) error {
	recipes, err := h.recipeRepository.GetRecipesByStatus(c.Request().Context(), models.RecipeStatusPending)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Server error while fetching recipes")
	}
	return c.JSON(http.StatusOK, recipes)
}

// ApproveRecipe marks a pending recipe as approved
func (h *AdminHandler) ApproveRecipe(c echo.Context) error {
	err := h.recipeRepository.SetRecipeStatus(c.Request().Context(), c.Param("id"), models.RecipeStatusApproved)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Recipe not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Server error while approving recipe")
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Recipe approved successfully"})
}

// DeleteRecipe deletes a recipe by ID
func (h *AdminHandler) DeleteRecipe(c echo.Context) error {
	if err := h.recipeRepository.DeleteRecipe(c.Request().Context(), c.Param("id")); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Recipe not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Server error while deleting recipe")
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Recipe deleted successfully"})
}
