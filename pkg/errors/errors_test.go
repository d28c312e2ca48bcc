package custom_error

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
)

func TestStatusCode(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{"unauthenticated", ErrUnauthenticated, http.StatusUnauthorized},
		{"wrapped unauthenticated", fmt.Errorf("list projects: %w", ErrUnauthenticated), http.StatusUnauthorized},
		{"not found", NewNotFound("project", uuid.New()), http.StatusNotFound},
		{"capacity", &CapacityError{Requested: 5, Available: 2}, http.StatusConflict},
		{"already returned", ErrAlreadyReturned, http.StatusConflict},
		{"validation", NewValidation("quantity", "must be positive"), http.StatusBadRequest},
		{"unique violation", WrapDBError("duplicate sku", "23505"), http.StatusConflict},
		{"foreign key violation", WrapDBError("project", "23503"), http.StatusUnprocessableEntity},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, StatusCode(tt.err))
		})
	}
}

func TestFromDB(t *testing.T) {
	err := FromDB("insert item", &pq.Error{Code: "23505", Message: "duplicate key"})
	var unique *UniqueViolationError
	assert.True(t, errors.As(err, &unique))

	err = FromDB("insert task", &pq.Error{Code: "23503", Message: "fk"})
	var fk *ForeignKeyViolationError
	assert.True(t, errors.As(err, &fk))

	cause := errors.New("connection reset")
	err = FromDB("insert task", cause)
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "insert task")
}

func TestCapacityErrorMessage(t *testing.T) {
	err := &CapacityError{Requested: 7, Available: 3}
	assert.Equal(t, "insufficient quantity available: requested 7, available 3", err.Error())
}
