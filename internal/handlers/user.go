package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/sajidk24/recipeshare/backend/internal/models"
	"github.com/sajidk24/recipeshare/backend/internal/repositories"
)

// UserHandler handles account details and favorites
type UserHandler struct {
	userRepository repositories.UserRepository
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(userRepo repositories.UserRepository) *UserHandler {
	return &UserHandler{userRepository: userRepo}
}

// RegisterUserRoutes registers account-detail and favorites routes
func (h *UserHandler) RegisterUserRoutes(g *echo.Group) {
	g.GET("/auth/userdetails/:userId", h.GetUserDetails)
	g.PUT("/auth/userdetails/:userId", h.UpdateUserDetails)
	g.GET("/auth/favorites/:userId", h.GetFavorites)
	g.POST("/auth/favorites/:userId", h.AddFavorite)
	g.POST("/auth/favorites/:userId/remove", h.RemoveFavorite)
}

func (h *UserHandler) userFromParam(c echo.Context) (*models.User, error) {
	id, err := strconv.ParseUint(c.Param("userId"), 10, 32)
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "Invalid user ID")
	}
	user, err := h.userRepository.GetUserByID(uint(id))
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, echo.NewHTTPError(http.StatusNotFound, "User not found")
		}
		return nil, echo.NewHTTPError(http.StatusInternalServerError, "Server error")
	}
	return user, nil
}

// GetUserDetails returns an account record by ID
func (h *UserHandler) GetUserDetails(c echo.Context) error {
	user, err := h.userFromParam(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// UpdateUserDetails updates the mutable account fields
func (h *UserHandler) UpdateUserDetails(c echo.Context) error {
	user, err := h.userFromParam(c)
	if err != nil {
		return err
	}

	var req models.UpdateUserDetailsRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if req.Name != "" {
		user.Name = req.Name
	}
	if req.Email != "" {
		user.Email = req.Email
	}
	if req.Phone != "" {
		user.Phone = req.Phone
	}
	if req.Address != "" {
		user.Address = req.Address
	}
	if req.PostalCode != "" {
		user.PostalCode = req.PostalCode
	}
	if req.Age != 0 {
		user.Age = req.Age
	}
	if req.Gender != "" {
		user.Gender = req.Gender
	}
	if req.ProfessionalChef != nil {
		user.ProfessionalChef = *req.ProfessionalChef
	}
	if req.Experience != 0 {
		user.Experience = req.Experience
	}

	if err := h.userRepository.UpdateUser(user); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Server error")
	}

	return c.JSON(http.StatusOK, echo.Map{"msg": "User details updated successfully", "user": user})
}

// GetFavorites returns the user's bookmarked recipe IDs
func (h *UserHandler) GetFavorites(c echo.Context) error {
	user, err := h.userFromParam(c)
	if err != nil {
		return err
	}

	favorites, err := h.userRepository.GetFavorites(user.ID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Server error")
	}
	return c.JSON(http.StatusOK, favorites)
}

// AddFavorite bookmarks a recipe for the user
func (h *UserHandler) AddFavorite(c echo.Context) error {
	user, err := h.userFromParam(c)
	if err != nil {
		return err
	}

	var req struct {
		RecipeID string `json:"recipeId" validate:"required"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	favorites, err := h.userRepository.GetFavorites(user.ID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Server error")
	}
	for _, fav := range favorites {
		if fav.RecipeID == req.RecipeID {
			return echo.NewHTTPError(http.StatusBadRequest, "Recipe already in favorites")
		}
	}

	if err := h.userRepository.AddFavorite(user.ID, req.RecipeID); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Server error")
	}
	return c.JSON(http.StatusOK, echo.Map{"msg": "Recipe added to favorites"})
}

// RemoveFavorite removes a bookmarked recipe
func (h *UserHandler) RemoveFavorite(c echo.Context) error {
	user, err := h.userFromParam(c)
	if err != nil {
		return err
	}

	var req struct {
		RecipeID string `json:"recipeId" validate:"required"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.userRepository.RemoveFavorite(user.ID, req.RecipeID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Recipe not in favorites")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Server error")
	}
	return c.JSON(http.StatusOK, echo.Map{"msg": "Recipe removed from favorites"})
}
