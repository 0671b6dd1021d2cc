// Package server provides the HTTP REST API for the matching engine.
package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/nexten/smartmatch/internal/schemas"
	"github.com/nexten/smartmatch/internal/weights"
)

// ErrRecordNotFound indicates a stored record was not found.
type ErrRecordNotFound struct {
	Kind string
	ID   string
}

func (e *ErrRecordNotFound) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Kind, e.ID)
}

// ErrMatchNotFound indicates a stored match result was not found.
type ErrMatchNotFound struct {
	ID uuid.UUID
}

func (e *ErrMatchNotFound) Error() string {
	return fmt.Sprintf("match result not found: %s", e.ID)
}

// ErrValidation indicates request validation failure.
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// ErrPersistenceDisabled indicates an endpoint requiring a database was
// called on a server running without one.
type ErrPersistenceDisabled struct{}

func (e *ErrPersistenceDisabled) Error() string {
	return "persistence is not configured on this server"
}

// HTTPStatus returns the appropriate HTTP status code for an error.
func HTTPStatus(err error) int {
	var schemaErr *schemas.ValidationError
	var profileErr *weights.UnknownProfileError
	var recordErr *ErrRecordNotFound
	var matchErr *ErrMatchNotFound
	var validationErr *ErrValidation
	var persistenceErr *ErrPersistenceDisabled
	var paramsErr validator.ValidationErrors

	switch {
	case errors.As(err, &schemaErr),
		errors.As(err, &profileErr),
		errors.As(err, &validationErr),
		errors.As(err, &paramsErr):
		return http.StatusBadRequest
	case errors.As(err, &recordErr), errors.As(err, &matchErr):
		return http.StatusNotFound
	case errors.As(err, &persistenceErr):
		return http.StatusNotImplemented
	default:
		return http.StatusInternalServerError
	}
}
