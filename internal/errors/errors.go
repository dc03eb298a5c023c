package errors

import (
	"errors"
	"net/http"
)

// Domain errors. Messages mirror the wire contract exactly: existing clients
// match on them, so rewording is a breaking change.
var (
	// ErrUserNotFound is returned when a user id does not resolve.
	ErrUserNotFound = errors.New("user does not exists")
	// ErrMealNotFound is returned when a meal id does not resolve.
	ErrMealNotFound = errors.New("meal does not exists")
	// ErrOrderNotFound is returned when an order id does not resolve. It is
	// also returned when a non-admin reads another user's order, so callers
	// cannot distinguish foreign orders from missing ones.
	ErrOrderNotFound = errors.New("order does not exists")
	// ErrEmailTaken is returned when creating or updating a user with an
	// email held by a different user.
	ErrEmailTaken = errors.New("user with that email already exists")
	// ErrMealNameTaken is returned when creating or renaming a meal to a name
	// held by a different meal.
	ErrMealNameTaken = errors.New("meal with that name already exists")
	// ErrNoChange is returned when an update payload is identical to the
	// current record.
	ErrNoChange = errors.New("No changes detected")
	// ErrNotOnMenu is returned when ordering a meal whose in_menu flag is off.
	ErrNotOnMenu = errors.New("kindly ensure that this meal is in the menu")
	// ErrAlreadyInMenu is returned when adding a meal that is already on the menu.
	ErrAlreadyInMenu = errors.New("meal already in the menu")
	// ErrAlreadyNotInMenu is returned when removing a meal that is not on the menu.
	ErrAlreadyNotInMenu = errors.New("meal already not in the menu")
	// ErrOutsideServingHours is returned when an order is placed outside the
	// configured serving window.
	ErrOutsideServingHours = errors.New("orders can only be placed during serving hours")
	// ErrSameMeal is returned when an order update points at the meal the
	// order already holds.
	ErrSameMeal = errors.New("You had ordered this meal initially")
	// ErrNotOrderOwner is returned when a non-admin updates or deletes an
	// order they do not own.
	ErrNotOrderOwner = errors.New("order does not belong to you")
	// ErrNotAccountOwner is returned when a non-admin updates or deletes a
	// user record that is not their own.
	ErrNotAccountOwner = errors.New("you are not authorized to manipulate this account")
	// ErrInvalidCredentials is returned on login failure. Deliberately the
	// same for an unknown email and a wrong password.
	ErrInvalidCredentials = errors.New("invalid email address or password")
	// ErrInvalidPassword is returned when the current password on a reset
	// does not verify.
	ErrInvalidPassword = errors.New("invalid password")
)

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message, code string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
		Code:       code,
	}
}

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{
		Error: e.Message,
		Code:  e.Code,
	}
}

// MapErrorToHTTP maps domain errors to HTTP errors. Ownership denials on
// order writes map to 401 rather than 403, and conflicts to 400 rather than
// 409, because that is what the deployed clients already expect.
func MapErrorToHTTP(err error) *HTTPError {
	switch {
	case errors.Is(err, ErrUserNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "USER_NOT_FOUND")
	case errors.Is(err, ErrMealNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "MEAL_NOT_FOUND")
	case errors.Is(err, ErrOrderNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "ORDER_NOT_FOUND")
	case errors.Is(err, ErrEmailTaken):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "EMAIL_TAKEN")
	case errors.Is(err, ErrMealNameTaken):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "MEAL_NAME_TAKEN")
	case errors.Is(err, ErrNoChange):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "NO_CHANGE")
	case errors.Is(err, ErrNotOnMenu):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "NOT_ON_MENU")
	case errors.Is(err, ErrAlreadyInMenu):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "ALREADY_IN_MENU")
	case errors.Is(err, ErrAlreadyNotInMenu):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "ALREADY_NOT_IN_MENU")
	case errors.Is(err, ErrOutsideServingHours):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "OUTSIDE_SERVING_HOURS")
	case errors.Is(err, ErrSameMeal):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "NO_CHANGE")
	case errors.Is(err, ErrNotOrderOwner):
		return NewHTTPError(http.StatusUnauthorized, err.Error(), "NOT_ORDER_OWNER")
	case errors.Is(err, ErrNotAccountOwner):
		return NewHTTPError(http.StatusUnauthorized, err.Error(), "NOT_ACCOUNT_OWNER")
	case errors.Is(err, ErrInvalidCredentials):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "INVALID_CREDENTIALS")
	case errors.Is(err, ErrInvalidPassword):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "INVALID_PASSWORD")
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
	}
}
