package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// Not found errors
	ErrNotFound        = errors.New("resource not found")
	ErrSampleNotFound  = fmt.Errorf("%w: sample", ErrNotFound)
	ErrResultNotFound  = fmt.Errorf("%w: result", ErrNotFound)
	ErrStationNotFound = fmt.Errorf("%w: station", ErrNotFound)
	ErrSessionNotFound = fmt.Errorf("%w: session", ErrNotFound)

	// Input and model errors
	ErrInvalidInput     = errors.New("invalid input")
	ErrModelUnavailable = errors.New("model artifact unavailable")
	ErrUnknownModel     = errors.New("unknown model kind")

	// Access errors
	ErrUnauthorized = errors.New("role not permitted")
	ErrUnknownRole  = errors.New("unknown role")

	// Rendering errors
	ErrRenderFailed = errors.New("report rendering failed")
	ErrEmptyResults = fmt.Errorf("%w: no results to render", ErrRenderFailed)
)

// Error constructors with context
func NewNotFoundError(resource string, id string) error {
	return fmt.Errorf("%w: %s with id %s", ErrNotFound, resource, id)
}

func NewInvalidInputError(field string, reason string) error {
	return fmt.Errorf("%w: %s: %s", ErrInvalidInput, field, reason)
}

func NewModelUnavailableError(kind string, cause error) error {
	return fmt.Errorf("%w: %s: %v", ErrModelUnavailable, kind, cause)
}

func NewUnauthorizedError(role string, target string) error {
	return fmt.Errorf("%w: role %s may not access %s", ErrUnauthorized, role, target)
}

// Error checking helpers
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

func IsInvalidInputError(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}

func IsModelUnavailableError(err error) bool {
	return errors.Is(err, ErrModelUnavailable) || errors.Is(err, ErrUnknownModel)
}

func IsUnauthorizedError(err error) bool {
	return errors.Is(err, ErrUnauthorized)
}

func IsRenderError(err error) bool {
	return errors.Is(err, ErrRenderFailed)
}
