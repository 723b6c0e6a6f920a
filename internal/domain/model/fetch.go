package model

import (
	"errors"
	"fmt"
)

// Reason classifies why a resolution ended the way it did.
type Reason string

const (
	ReasonAttached     Reason = "attached"
	ReasonURLAbsent    Reason = "url_absent"
	ReasonURLMalformed Reason = "url_malformed"
	ReasonNetwork      Reason = "network"
	ReasonTimeout      Reason = "timeout"
	ReasonBadStatus    Reason = "bad_status"
	ReasonTooLarge     Reason = "too_large"
	ReasonNotImage     Reason = "not_image"
	ReasonDecode       Reason = "decode"
	ReasonStaging      Reason = "staging"
	ReasonPanic        Reason = "panic"
)

// Image is a downloaded and validated image payload.
type Image struct {
	SourceURL   string
	Data        []byte
	ContentType string
	Extension   string
	Width       int
	Height      int
}

// FetchError is the failure side of a fetch or stage attempt.
type FetchError struct {
	Reason Reason
	Err    error
}

func (e *FetchError) Error() string {
	if e.Err == nil {
		return string(e.Reason)
	}
	return fmt.Sprintf("%s: %v", e.Reason, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// NewFetchError wraps err with a failure reason.
func NewFetchError(reason Reason, err error) *FetchError {
	return &FetchError{Reason: reason, Err: err}
}

// ReasonOf extracts the failure reason carried by err, or ReasonNetwork when
// err is not a FetchError.
func ReasonOf(err error) Reason {
	if err == nil {
		return ReasonAttached
	}
	var fetchErr *FetchError
	if errors.As(err, &fetchErr) {
		return fetchErr.Reason
	}
	return ReasonNetwork
}
