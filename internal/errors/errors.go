package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrAuthenticationFailed is returned when credentials do not match any account.
	ErrAuthenticationFailed = errors.New("invalid credentials")
	// ErrAuthorizationFailed is returned when the requester lacks rights for the operation.
	ErrAuthorizationFailed = errors.New("operation not allowed")
	// ErrUserBlocked is returned when a blocked account attempts an operation.
	ErrUserBlocked = errors.New("account is blocked")
	// ErrUserNotFound is returned when a user is not found.
	ErrUserNotFound = errors.New("user not found")
	// ErrCarNotFound is returned when a car is not found.
	ErrCarNotFound = errors.New("car not found")
	// ErrRecordNotFound is returned when a service record is not found for the car.
	ErrRecordNotFound = errors.New("service record not found")
	// ErrFavoriteNotFound is returned when the (user, car) favorite pair does not exist.
	ErrFavoriteNotFound = errors.New("favorite not found")
	// ErrAlreadyFavorited is returned when the (user, car) favorite pair already exists.
	ErrAlreadyFavorited = errors.New("car already in favorites")
	// ErrEmailTaken is returned when another account already uses the email.
	ErrEmailTaken = errors.New("an account with this email already exists")
	// ErrUsernameTaken is returned when another account already uses the username.
	ErrUsernameTaken = errors.New("this username is already taken")
	// ErrVINTaken is returned when another car already carries the VIN.
	ErrVINTaken = errors.New("another car has this VIN")
	// ErrSellLimit is returned when a regular user already has an active listing.
	ErrSellLimit = errors.New("user cannot have more than one active listing")
	// ErrInvalidPassword is returned when the supplied password is empty or unusable.
	ErrInvalidPassword = errors.New("password must not be empty")
	// ErrInvalidRole is returned when the supplied role is not a known role.
	ErrInvalidRole = errors.New("invalid role")
	// ErrInvalidStatus is returned when the supplied car status is unknown.
	ErrInvalidStatus = errors.New("invalid status")
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

// MapErrorToHTTP maps domain errors to HTTP errors. Unknown errors become a
// generic 500 so internal detail never leaks to clients.
func MapErrorToHTTP(err error) *HTTPError {
	switch {
	case errors.Is(err, ErrAuthenticationFailed):
		return NewHTTPError(http.StatusUnauthorized, err.Error(), "AUTHENTICATION_FAILED")
	case errors.Is(err, ErrAuthorizationFailed):
		return NewHTTPError(http.StatusForbidden, err.Error(), "AUTHORIZATION_FAILED")
	case errors.Is(err, ErrUserBlocked):
		return NewHTTPError(http.StatusForbidden, err.Error(), "USER_BLOCKED")
	case errors.Is(err, ErrUserNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "USER_NOT_FOUND")
	case errors.Is(err, ErrCarNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "CAR_NOT_FOUND")
	case errors.Is(err, ErrRecordNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "RECORD_NOT_FOUND")
	case errors.Is(err, ErrFavoriteNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "FAVORITE_NOT_FOUND")
	case errors.Is(err, ErrAlreadyFavorited):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "ALREADY_FAVORITED")
	case errors.Is(err, ErrEmailTaken):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "EMAIL_TAKEN")
	case errors.Is(err, ErrUsernameTaken):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "USERNAME_TAKEN")
	case errors.Is(err, ErrVINTaken):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "VIN_TAKEN")
	case errors.Is(err, ErrSellLimit):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "SELL_LIMIT")
	case errors.Is(err, ErrInvalidPassword):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "INVALID_PASSWORD")
	case errors.Is(err, ErrInvalidRole):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "INVALID_ROLE")
	case errors.Is(err, ErrInvalidStatus):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "INVALID_STATUS")
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
	}
}
