package custom_error

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrUnauthenticated = errors.New("not authenticated")
	ErrAlreadyReturned = errors.New("allocation already returned")
)

type NotFoundError struct {
	Resource string
	ID       string
}

func NewNotFound(resource string, id fmt.Stringer) *NotFoundError {
	return &NotFoundError{Resource: resource, ID: id.String()}
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Resource, e.ID)
}

// CapacityError is returned when an allocation asks for more than is available.
type CapacityError struct {
	Requested int
	Available int
}

func (e *CapacityError) Error() string {
	return fmt.Sprintf("insufficient quantity available: requested %d, available %d", e.Requested, e.Available)
}

type ValidationError struct {
	Property string `json:"property"`
	Message  string `json:"message"`
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Property, e.Message)
}

func NewValidation(property, message string) *ValidationError {
	return &ValidationError{Property: property, Message: message}
}

// StatusCode maps an error returned by a service to the HTTP status the
// handlers respond with.
func StatusCode(err error) int {
	var (
		notFound   *NotFoundError
		capacity   *CapacityError
		validation *ValidationError
		unique     *UniqueViolationError
		foreignKey *ForeignKeyViolationError
	)

	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, ErrUnauthenticated):
		return http.StatusUnauthorized
	case errors.As(err, &notFound):
		return http.StatusNotFound
	case errors.As(err, &capacity), errors.Is(err, ErrAlreadyReturned):
		return http.StatusConflict
	case errors.As(err, &validation):
		return http.StatusBadRequest
	case errors.As(err, &unique):
		return http.StatusConflict
	case errors.As(err, &foreignKey):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
