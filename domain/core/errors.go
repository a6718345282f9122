package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// Not found errors
	ErrNotFound            = errors.New("resource not found")
	ErrCalculationNotFound = fmt.Errorf("%w: calculation", ErrNotFound)

	// Validation errors
	ErrUnknownPrior          = errors.New("Unknown prior type")
	ErrIntervalArity         = errors.New("argument interval must have two elements")
	ErrIntervalBound         = errors.New("interval bounds must be numbers")
	ErrNotEnoughObservations = errors.New("not enough observations")
	ErrConstantData          = errors.New("data are essentially constant")

	// Computation errors
	ErrIntegration = errors.New("numerical integration failed")
	ErrNonFinite   = errors.New("non-finite value in computation")
)

// Error constructors with context
func NewNotFoundError(resource string, id string) error {
	return fmt.Errorf("%w: %s with id %s", ErrNotFound, resource, id)
}

func NewIntegrationError(lower, upper float64, err error) error {
	return fmt.Errorf("%w on (%g, %g): %v", ErrIntegration, lower, upper, err)
}

// Error checking helpers
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

func IsValidationError(err error) bool {
	return errors.Is(err, ErrUnknownPrior) ||
		errors.Is(err, ErrIntervalArity) ||
		errors.Is(err, ErrIntervalBound) ||
		errors.Is(err, ErrNotEnoughObservations) ||
		errors.Is(err, ErrConstantData)
}

func IsComputationError(err error) bool {
	return errors.Is(err, ErrIntegration) ||
		errors.Is(err, ErrNonFinite)
}
