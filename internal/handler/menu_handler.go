package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"bookameal/internal/errors"
	"bookameal/internal/service"
)

// MenuHandler bundles menu endpoints. Listing is open to any authenticated
// user; adding and removing meals is admin-gated at the router.
type MenuHandler struct {
	svc service.MealService
}

// NewMenuHandler creates a handler layer.
func NewMenuHandler(svc service.MealService) *MenuHandler {
	return &MenuHandler{svc: svc}
}

// AddToMenuRequest identifies the meal to put on the menu.
type AddToMenuRequest struct {
	MealID uint `json:"meal_id" validate:"required"`
}

// AddToMenu godoc
// @Summary Add a meal to the menu (admin)
// @Tags menu
// @Accept json
// @Produce json
// @Security TokenAuth
// @Param request body AddToMenuRequest true "Meal reference"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /menu [post]
func (h *MenuHandler) AddToMenu(c echo.Context) error {
	var req AddToMenuRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "missing meal_id")
	}

	meal, err := h.svc.AddToMenu(c.Request().Context(), req.MealID)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "meal has been successfully added to the menu",
		"meal":    meal,
	})
}

// RemoveFromMenu godoc
// @Summary Remove a meal from the menu (admin)
// @Tags menu
// @Produce json
// @Security TokenAuth
// @Param meal_id path int true "Meal ID"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /menu/{meal_id} [delete]
func (h *MenuHandler) RemoveFromMenu(c echo.Context) error {
	mealID, err := strconv.Atoi(c.Param("meal_id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid meal_id")
	}

	meal, err := h.svc.RemoveFromMenu(c.Request().Context(), uint(mealID))
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "meal has been successfully removed from the menu",
		"meal":    meal,
	})
}

// GetMenuItem godoc
// @Summary Get a meal currently on the menu
// @Tags menu
// @Produce json
// @Security TokenAuth
// @Param meal_id path int true "Meal ID"
// @Success 200 {object} model.Meal
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /menu/{meal_id} [get]
func (h *MenuHandler) GetMenuItem(c echo.Context) error {
	mealID, err := strconv.Atoi(c.Param("meal_id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid meal_id")
	}

	meal, err := h.svc.GetMenuItem(c.Request().Context(), uint(mealID))
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, meal)
}

// ListMenu godoc
// @Summary List meals on the menu
// @Tags menu
// @Produce json
// @Security TokenAuth
// @Success 200 {array} model.Meal
// @Router /menu [get]
func (h *MenuHandler) ListMenu(c echo.Context) error {
	meals, err := h.svc.ListMenu(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"menu": meals})
}
