package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/sajidk24/recipeshare/backend/internal/models"
	"github.com/sajidk24/recipeshare/backend/internal/repositories"
)

// ChefHandler handles chef profile HTTP requests
type ChefHandler struct {
	chefRepository repositories.ChefRepository
	userRepository repositories.UserRepository
}

// NewChefHandler creates a new ChefHandler
func NewChefHandler(chefRepo repositories.ChefRepository, userRepo repositories.UserRepository) *ChefHandler {
	return &ChefHandler{
		chefRepository: chefRepo,
		userRepository: userRepo,
	}
}

// RegisterChefRoutes registers chef-related routes
func (h *ChefHandler) RegisterChefRoutes(g *echo.Group) {
	g.GET("/chef/all", h.GetChefs)
	g.GET("/chef/:userId", h.GetChef)
	g.POST("/chef", h.CreateChef)
	g.PUT("/chef/:userId", h.UpdateChef)
}

// chefView joins a chef document with the canonical account name and email.
type chefView struct {
	models.Chef
	Name  string `json:"name"`
	Email string `json:"email"`
}

func (h *ChefHandler) joinAccount(chef models.Chef) chefView {
	view := chefView{Chef: chef}
	if id, err := strconv.ParseUint(chef.UserID, 10, 32); err == nil {
		if user, err := h.userRepository.GetUserByID(uint(id)); err == nil {
			view.Name = user.Name
			view.Email = user.Email
		}
	}
	return view
}

// GetChefs returns all chefs, optionally filtered by a search query matching
// the account name or email, or the chef's phone number
func (h *ChefHandler) GetChefs(c echo.Context) error {
	search := strings.ToLower(c.QueryParam("search"))

	chefs, err := h.chefRepository.GetChefs(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Server error occurred while fetching chefs")
	}

	views := []chefView{}
	for _, chef := range chefs {
		view := h.joinAccount(chef)
		if search != "" &&
			!strings.Contains(strings.ToLower(view.Name), search) &&
			!strings.Contains(strings.ToLower(view.Email), search) &&
			!strings.Contains(strings.ToLower(view.Phone), search) {
			continue
		}
		views = append(views, view)
	}

	return c.JSON(http.StatusOK, views)
}

// GetChef returns the chef details for an account ID
func (h *ChefHandler) GetChef(c echo.Context) error {
	userID := c.Param("userId")

	chef, err := h.chefRepository.GetChefByUserID(c.Request().Context(), userID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Chef not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Server error")
	}

	return c.JSON(http.StatusOK, h.joinAccount(*chef))
}

// CreateChef adds chef details for an account
func (h *ChefHandler) CreateChef(c echo.Context) error {
	var req models.CreateChefRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if req.UserID == "" {
		if id := getUserIDFromContext(c); id != 0 {
			req.UserID = userIDString(id)
		}
	}
	if req.UserID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "User ID is required")
	}

	// One chef document per account
	if _, err := h.chefRepository.GetChefByUserID(c.Request().Context(), req.UserID); err == nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Chef details already exist. Use PUT to update.")
	}

	chef := &models.Chef{
		UserID:           req.UserID,
		Phone:            req.Phone,
		Address:          req.Address,
		PostalCode:       req.PostalCode,
		Age:              req.Age,
		Gender:           req.Gender,
		ProfessionalChef: req.ProfessionalChef,
		Experience:       req.Experience,
	}

	if err := h.chefRepository.CreateChef(c.Request().Context(), chef); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Server error occurred while adding chef details.")
	}

	return c.JSON(http.StatusCreated, echo.Map{"message": "Chef details added successfully!", "chef": chef})
}

// UpdateChef updates existing chef details
func (h *ChefHandler) UpdateChef(c echo.Context) error {
	userID := c.Param("userId")

	var req models.UpdateChefRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	chef, err := h.chefRepository.GetChefByUserID(c.Request().Context(), userID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Chef not found. Use POST to add details.")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Server error")
	}

	if req.Phone != "" {
		chef.Phone = req.Phone
	}
	if req.Address != "" {
		chef.Address = req.Address
	}
	if req.PostalCode != "" {
		chef.PostalCode = req.PostalCode
	}
	if req.Age != 0 {
		chef.Age = req.Age
	}
	if req.Gender != "" {
		chef.Gender = req.Gender
	}
	if req.ProfessionalChef != nil {
		chef.ProfessionalChef = *req.ProfessionalChef
	}
	if req.Experience != 0 {
		chef.Experience = req.Experience
	}

	if err := h.chefRepository.UpdateChef(c.Request().Context(), chef); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Server error occurred while updating chef details.")
	}

	return c.JSON(http.StatusOK, echo.Map{"message": "Chef details updated successfully!", "chef": chef})
}
