package board

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel error kinds for this package. These allow errors.Is/As from callers.
var (
	ErrMissingFields    = errors.New("missing required fields")
	ErrInvalidBudget    = errors.New("invalid budget")
	ErrPersist          = errors.New("persist requirements")
	ErrUnknownCriterion = errors.New("unknown criterion")
	ErrInvalidCriterion = errors.New("invalid criterion")
	ErrUnknownSort      = errors.New("unknown sort mode")
)

// MissingFieldsError lists the required fields that were empty or invalid.
type MissingFieldsError struct {
	Fields []string
}

func (e *MissingFieldsError) Error() string {
	return fmt.Sprintf("%s: %s", ErrMissingFields, strings.Join(e.Fields, ", "))
}

func (e *MissingFieldsError) Unwrap() error { return ErrMissingFields }

// InvalidBudgetError is returned under the reject policy.
type InvalidBudgetError struct {
	Value string
}

func (e *InvalidBudgetError) Error() string {
	return fmt.Sprintf("%s: %q", ErrInvalidBudget, e.Value)
}

func (e *InvalidBudgetError) Unwrap() error { return ErrInvalidBudget }
