package engine

import (
	"errors"
	"fmt"

	"github.com/roach88/unsei/internal/astro"
	"github.com/roach88/unsei/internal/ir"
	"github.com/roach88/unsei/internal/sukuyo"
)

// RuntimeError represents a failure to compute a FortuneResult.
//
// Runtime errors include:
//   - Invalid date: the input is not a proleptic Gregorian date
//   - Did not converge: a solar-term or new-moon root finder failed
//   - Unmapped lunar month: the lunisolar converter produced a month with
//     no Sukuyo base mansion (an internal invariant violation)
//
// RuntimeError wraps the underlying cause, so errors.Is matches the
// sentinels of the ir, astro and sukuyo packages.
type RuntimeError struct {
	// Code identifies the error category.
	Code RuntimeErrorCode

	// Message is a human-readable description.
	Message string

	// Date is the requested date as YYYY-MM-DD (unpadded parts are kept
	// verbatim for invalid dates).
	Date string

	// Err is the underlying cause.
	Err error
}

// RuntimeErrorCode categorizes runtime errors.
type RuntimeErrorCode string

const (
	// ErrCodeInvalidDate indicates the input date does not exist.
	ErrCodeInvalidDate RuntimeErrorCode = "INVALID_DATE"

	// ErrCodeDidNotConverge indicates a root finder gave up.
	ErrCodeDidNotConverge RuntimeErrorCode = "DID_NOT_CONVERGE"

	// ErrCodeUnmappedLunarMonth indicates a lunar month outside 1..12.
	ErrCodeUnmappedLunarMonth RuntimeErrorCode = "UNMAPPED_LUNAR_MONTH"

	// ErrCodeInternal covers any other failure.
	ErrCodeInternal RuntimeErrorCode = "INTERNAL"
)

// Error implements the error interface.
func (e *RuntimeError) Error() string {
	if e.Date != "" {
		return fmt.Sprintf("%s: %s (date=%s)", e.Code, e.Message, e.Date)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause.
func (e *RuntimeError) Unwrap() error { return e.Err }

// IsInvalidDate returns true if the error reports an invalid input date.
// Uses errors.As to handle wrapped errors.
func IsInvalidDate(err error) bool {
	var re *RuntimeError
	if errors.As(err, &re) {
		return re.Code == ErrCodeInvalidDate
	}
	return errors.Is(err, ir.ErrInvalidDate)
}

// IsConvergenceError returns true if a root finder failed to converge.
// Matches both RuntimeError with ErrCodeDidNotConverge and a bare
// astro.ConvergenceError.
func IsConvergenceError(err error) bool {
	var re *RuntimeError
	if errors.As(err, &re) {
		return re.Code == ErrCodeDidNotConverge
	}
	return errors.Is(err, astro.ErrDidNotConverge)
}

// IsInvariantViolation returns true if the error signals an internal
// inconsistency rather than bad input.
func IsInvariantViolation(err error) bool {
	var re *RuntimeError
	if errors.As(err, &re) {
		return re.Code == ErrCodeUnmappedLunarMonth
	}
	return errors.Is(err, sukuyo.ErrUnmappedLunarMonth)
}

// CodeOf returns the RuntimeErrorCode carried by err, or ErrCodeInternal.
func CodeOf(err error) RuntimeErrorCode {
	var re *RuntimeError
	if errors.As(err, &re) {
		return re.Code
	}
	return ErrCodeInternal
}

// NewInvalidDateError creates a RuntimeError for a rejected date.
func NewInvalidDateError(y, m, d int, cause error) *RuntimeError {
	return &RuntimeError{
		Code:    ErrCodeInvalidDate,
		Message: "not a valid Gregorian date",
		Date:    fmt.Sprintf("%04d-%02d-%02d", y, m, d),
		Err:     cause,
	}
}

// classify turns an error from one of the calculation packages into a
// RuntimeError for date.
func classify(date ir.CalendarDate, stage string, err error) *RuntimeError {
	re := &RuntimeError{
		Code:    ErrCodeInternal,
		Message: fmt.Sprintf("%s: %v", stage, err),
		Date:    date.String(),
		Err:     err,
	}
	switch {
	case errors.Is(err, astro.ErrDidNotConverge):
		re.Code = ErrCodeDidNotConverge
	case errors.Is(err, sukuyo.ErrUnmappedLunarMonth):
		re.Code = ErrCodeUnmappedLunarMonth
	case errors.Is(err, ir.ErrInvalidDate):
		re.Code = ErrCodeInvalidDate
	}
	return re
}
