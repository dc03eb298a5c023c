package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"bookameal/internal/errors"
	"bookameal/internal/service"
)

// MealHandler bundles meal catalog endpoints. All of them are admin-gated at
// the router.
type MealHandler struct {
	svc service.MealService
}

// NewMealHandler creates a handler layer.
func NewMealHandler(svc service.MealService) *MealHandler {
	return &MealHandler{svc: svc}
}

// CreateMealRequest represents a meal creation request.
type CreateMealRequest struct {
	Name   string `json:"name" validate:"required"`
	Price  int    `json:"price" validate:"required,gt=0"`
	InMenu bool   `json:"in_menu"`
}

// UpdateMealRequest represents a full meal update.
type UpdateMealRequest struct {
	Name   string `json:"name" validate:"required"`
	Price  int    `json:"price" validate:"required,gt=0"`
	InMenu bool   `json:"in_menu"`
}

// CreateMeal godoc
// @Summary Create a meal (admin)
// @Tags meals
// @Accept json
// @Produce json
// @Security TokenAuth
// @Param request body CreateMealRequest true "Meal payload"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /meals [post]
func (h *MealHandler) CreateMeal(c echo.Context) error {
	var req CreateMealRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	meal, err := h.svc.CreateMeal(c.Request().Context(), req.Name, req.Price, req.InMenu)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusCreated, map[string]interface{}{
		"message": "meal has been successfully created",
		"meal":    meal,
	})
}

// GetMeal godoc
// @Summary Get meal by id (admin)
// @Tags meals
// @Produce json
// @Security TokenAuth
// @Param id path int true "Meal ID"
// @Success 200 {object} model.Meal
// @Failure 404 {object} errors.ErrorResponse
// @Router /meals/{id} [get]
func (h *MealHandler) GetMeal(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	meal, err := h.svc.GetMeal(c.Request().Context(), uint(id))
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, meal)
}

// ListMeals godoc
// @Summary List all meals (admin)
// @Tags meals
// @Produce json
// @Security TokenAuth
// @Success 200 {array} model.Meal
// @Router /meals [get]
func (h *MealHandler) ListMeals(c echo.Context) error {
	meals, err := h.svc.ListMeals(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"meals": meals})
}

// UpdateMeal godoc
// @Summary Update a meal (admin)
// @Tags meals
// @Accept json
// @Produce json
// @Security TokenAuth
// @Param id path int true "Meal ID"
// @Param request body UpdateMealRequest true "Meal payload"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /meals/{id} [put]
func (h *MealHandler) UpdateMeal(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	var req UpdateMealRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	meal, err := h.svc.UpdateMeal(c.Request().Context(), uint(id), req.Name, req.Price, req.InMenu)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "meal has been successfully updated",
		"meal":    meal,
	})
}

// DeleteMeal godoc
// @Summary Delete a meal (admin)
// @Tags meals
// @Produce json
// @Security TokenAuth
// @Param id path int true "Meal ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} errors.ErrorResponse
// @Router /meals/{id} [delete]
func (h *MealHandler) DeleteMeal(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	if err := h.svc.DeleteMeal(c.Request().Context(), uint(id)); err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, map[string]string{
		"message": "meal has been successfully deleted",
	})
}
