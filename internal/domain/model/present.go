package model

import (
	"errors"
	"fmt"
	"strings"
)

// PresenterFailure records one presenter that rejected a notification.
type PresenterFailure struct {
	Presenter string `json:"presenter"`
	Error     string `json:"error"`
}

// PresentError is returned when one or more presenters failed. Succeeded
// counts the presenters that still showed the notification.
type PresentError struct {
	Failures  []PresenterFailure
	Succeeded int
	errs      []error
}

// NewPresentError builds a PresentError; names and errs are parallel.
func NewPresentError(names []string, errs []error, succeeded int) *PresentError {
	failures := make([]PresenterFailure, len(errs))
	for i, err := range errs {
		failures[i] = PresenterFailure{Presenter: names[i], Error: err.Error()}
	}
	return &PresentError{Failures: failures, Succeeded: succeeded, errs: errs}
}

// Partial reports whether at least one presenter succeeded.
func (e *PresentError) Partial() bool {
	return e.Succeeded > 0
}

func (e *PresentError) Error() string {
	parts := make([]string, len(e.Failures))
	for i, f := range e.Failures {
		parts[i] = f.Presenter + ": " + f.Error
	}
	return fmt.Sprintf("%d of %d presenters failed: %s", len(e.Failures), len(e.Failures)+e.Succeeded, strings.Join(parts, "; "))
}

func (e *PresentError) Unwrap() []error {
	return e.errs
}

// PresenterFailures extracts per-presenter failures from err, if any.
func PresenterFailures(err error) ([]PresenterFailure, bool) {
	var presentErr *PresentError
	if !errors.As(err, &presentErr) {
		return nil, false
	}
	return presentErr.Failures, presentErr.Partial()
}
