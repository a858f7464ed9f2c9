package handlers

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/sajidk24/recipeshare/backend/internal/models"
	"github.com/sajidk24/recipeshare/backend/internal/repositories"
)

// RecipeHandler handles recipe CRUD with image upload
type RecipeHandler struct {
	recipeRepository repositories.RecipeRepository
	uploadDir        string
}

// NewRecipeHandler creates a new RecipeHandler storing images under uploadDir
func NewRecipeHandler(recipeRepo repositories.RecipeRepository, uploadDir string) *RecipeHandler {
	return &RecipeHandler{
		recipeRepository: recipeRepo,
		uploadDir:        uploadDir,
	}
}

// RegisterRecipeRoutes registers recipe-related routes
func (h *RecipeHandler) RegisterRecipeRoutes(g *echo.Group) {
	g.GET("/recipe/user/:userId", h.GetUserRecipes)
	g.POST("/recipe", h.CreateRecipe)
	g.PUT("/recipe/:recipeId", h.UpdateRecipe)
	g.DELETE("/recipe/:recipeId", h.DeleteRecipe)
}

// GetUserRecipes returns all recipes owned by a user
func (h *RecipeHandler) GetUserRecipes(c echo.Context) error {
	recipes, err := h.recipeRepository.GetRecipesByUserID(c.Request().Context(), c.Param("userId"))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to fetch recipes. Please try again.")
	}
	if len(recipes) == 0 {
		return echo.NewHTTPError(http.StatusNotFound, "No recipes found for this user.")
	}
	return c.JSON(http.StatusOK, recipes)
}

// CreateRecipe creates a new recipe from a multipart form with an optional image
func (h *RecipeHandler) CreateRecipe(c echo.Context) error {
	userID := c.FormValue("userId")
	recipeName := c.FormValue("recipeName")
	cuisineType := c.FormValue("cuisineType")
	steps := c.FormValue("steps")

	if userID == "" || recipeName == "" || cuisineType == "" || steps == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Missing required fields: userId, recipeName, cuisineType, or steps.")
	}

	recipe := &models.Recipe{
		UserID:      userID,
		RecipeName:  recipeName,
		CuisineType: cuisineType,
		Ingredients: splitIngredients(c.FormValue("ingredients")),
		Steps:       steps,
		Status:      models.RecipeStatusPending,
	}

	if file, err := c.FormFile("image"); err == nil {
		imageURL, err := h.saveImage(file)
		if err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, "Failed to store recipe image.")
		}
		recipe.ImageURL = imageURL
	}

	if err := h.recipeRepository.CreateRecipe(c.Request().Context(), recipe); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to add recipe.")
	}

	return c.JSON(http.StatusCreated, echo.Map{"message": "Recipe added successfully!", "recipe": recipe})
}

// UpdateRecipe updates an existing recipe, optionally replacing its image
func (h *RecipeHandler) UpdateRecipe(c echo.Context) error {
	recipeID := c.Param("recipeId")
	ctx := c.Request().Context()

	recipe, err := h.recipeRepository.GetRecipeByID(ctx, recipeID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Recipe not found.")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to update recipe.")
	}

	if v := c.FormValue("recipeName"); v != "" {
		recipe.RecipeName = v
	}
	if v := c.FormValue("cuisineType"); v != "" {
		recipe.CuisineType = v
	}
	if v := c.FormValue("ingredients"); v != "" {
		recipe.Ingredients = splitIngredients(v)
	}
	if v := c.FormValue("steps"); v != "" {
		recipe.Steps = v
	}
	if file, err := c.FormFile("image"); err == nil {
		imageURL, err := h.saveImage(file)
		if err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, "Failed to store recipe image.")
		}
		recipe.ImageURL = imageURL
	}

	if err := h.recipeRepository.UpdateRecipe(ctx, recipeID, recipe); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to update recipe.")
	}

	return c.JSON(http.StatusOK, echo.Map{"message": "Recipe updated successfully!", "updatedRecipe": recipe})
}

// DeleteRecipe deletes a recipe by ID
func (h *RecipeHandler) DeleteRecipe(c echo.Context) error {
	err := h.recipeRepository.DeleteRecipe(c.Request().Context(), c.Param("recipeId"))
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Recipe not found.")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to delete recipe.")
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Recipe deleted successfully!"})
}

// saveImage stores an uploaded image under the upload dir with a timestamped
// name and returns the public URL path
func (h *RecipeHandler) saveImage(file *multipart.FileHeader) (string, error) {
	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	name := fmt.Sprintf("%d%s", time.Now().UnixNano(), filepath.Ext(file.Filename))
	dst, err := os.Create(filepath.Join(h.uploadDir, name))
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", err
	}
	return "/uploads/" + name, nil
}

// splitIngredients parses the comma-separated ingredients form field
func splitIngredients(raw string) []string {
	if raw == "" {
		return []string{}
	}
	parts := strings.Split(raw, ",")
	ingredients := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			ingredients = append(ingredients, trimmed)
		}
	}
	return ingredients
}
