package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"bookameal/internal/auth"
	"bookameal/internal/errors"
	"bookameal/internal/service"
)

// OrderHandler bundles order endpoints. All of them require a token; the
// requester identity comes from the token claims, never from the payload.
type OrderHandler struct {
	svc service.OrderService
}

// NewOrderHandler creates a handler layer.
func NewOrderHandler(svc service.OrderService) *OrderHandler {
	return &OrderHandler{svc: svc}
}

// OrderRequest identifies the meal being ordered.
type OrderRequest struct {
	MealID uint `json:"meal_id" validate:"required"`
}

// CreateOrder godoc
// @Summary Place an order for a meal on the menu
// @Tags orders
// @Accept json
// @Produce json
// @Security TokenAuth
// @Param request body OrderRequest true "Meal reference"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /orders [post]
func (h *OrderHandler) CreateOrder(c echo.Context) error {
	claims, ok := auth.ClaimsFrom(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
	}

	var req OrderRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "missing meal_id")
	}

	order, err := h.svc.CreateOrder(c.Request().Context(), claims.UserID, req.MealID)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusCreated, map[string]interface{}{
		"message": "your order has been successfully created",
		"order":   order,
	})
}

// GetOrder godoc
// @Summary Get an order (owner or admin)
// @Tags orders
// @Produce json
// @Security TokenAuth
// @Param id path int true "Order ID"
// @Success 200 {object} model.Order
// @Failure 404 {object} errors.ErrorResponse
// @Router /orders/{id} [get]
func (h *OrderHandler) GetOrder(c echo.Context) error {
	claims, ok := auth.ClaimsFrom(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	order, err := h.svc.GetOrder(c.Request().Context(), uint(id), claims.UserID, claims.Admin)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, order)
}

// ListOrders godoc
// @Summary List orders: all for admins, own otherwise
// @Tags orders
// @Produce json
// @Security TokenAuth
// @Success 200 {array} model.Order
// @Router /orders [get]
func (h *OrderHandler) ListOrders(c echo.Context) error {
	claims, ok := auth.ClaimsFrom(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
	}

	orders, err := h.svc.ListOrders(c.Request().Context(), claims.UserID, claims.Admin)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"orders": orders})
}

// UpdateOrder godoc
// @Summary Repoint an order at a different on-menu meal (owner or admin)
// @Tags orders
// @Accept json
// @Produce json
// @Security TokenAuth
// @Param id path int true "Order ID"
// @Param request body OrderRequest true "New meal reference"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /orders/{id} [put]
func (h *OrderHandler) UpdateOrder(c echo.Context) error {
	claims, ok := auth.ClaimsFrom(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	var req OrderRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "missing meal_id")
	}

	order, err := h.svc.UpdateOrder(c.Request().Context(), uint(id), req.MealID, claims.UserID, claims.Admin)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "your order has been successfully updated",
		"order":   order,
	})
}

// DeleteOrder godoc
// @Summary Delete an order (owner or admin)
// @Tags orders
// @Produce json
// @Security TokenAuth
// @Param id path int true "Order ID"
// @Success 200 {object} map[string]string
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /orders/{id} [delete]
func (h *OrderHandler) DeleteOrder(c echo.Context) error {
	claims, ok := auth.ClaimsFrom(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	if err := h.svc.DeleteOrder(c.Request().Context(), uint(id), claims.UserID, claims.Admin); err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, map[string]string{
		"message": "your order has been successfully deleted",
	})
}
