package models

import (
	"errors"
	"fmt"
)

var (
	ErrGeneral          = errors.New("an error occurred on the server during your request")
	ErrResourceNotFound = errors.New("there is no")
	ErrStorage          = errors.New("the change could not be stored and was not applied")
	ErrValidation       = errors.New("validation failed")
)

var (
	ErrMaxCausesExceeded            = fmt.Errorf("maximum of %d active causes allowed per recipient", MaxActiveCauses)
	ErrGoalExceeded                 = errors.New("allocation exceeds the goal amount")
	ErrGoalBelowAllocated           = errors.New("the goal amount cannot be lower than the amount already allocated to the cause")
	ErrInsufficientUnallocatedFunds = errors.New("insufficient unallocated funds")
	ErrInsufficientCategoryBalance  = errors.New("insufficient funds in give category")
	ErrAlreadyCompleted             = errors.New("this cause has already been completed")
)

// ValidationError describes input that was rejected before any storage
// access. Every ValidationError matches ErrValidation with errors.Is.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

func invalid(field, format string, args ...any) error {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

// domainErrors pass through Atomic unchanged. Everything else that aborts a
// unit of work is reported as ErrStorage.
var domainErrors = []error{
	ErrResourceNotFound,
	ErrValidation,
	ErrMaxCausesExceeded,
	ErrGoalExceeded,
	ErrGoalBelowAllocated,
	ErrInsufficientUnallocatedFunds,
	ErrInsufficientCategoryBalance,
	ErrAlreadyCompleted,
	ErrStorage,
}

func isDomainError(err error) bool {
	for _, target := range domainErrors {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
