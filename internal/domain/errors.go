package domain

import (
	"errors"
	"fmt"
)

type NotFoundError struct {
	Resource string
	Err      error
}

func (e NotFoundError) Error() string {
	if e.Resource == "" {
		return "not found"
	}
	return fmt.Sprintf("%s not found", e.Resource)
}

func (e NotFoundError) Unwrap() error { return e.Err }

type ValidationError struct {
	Field string
	Msg   string
	Err   error
}

func (e ValidationError) Error() string {
	if e.Msg != "" && e.Field != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Msg)
	}
	if e.Msg != "" {
		return e.Msg
	}
	if e.Field != "" {
		return fmt.Sprintf("invalid %s", e.Field)
	}
	return "validation error"
}

func (e ValidationError) Unwrap() error { return e.Err }

type InternalError struct {
	Msg string
	Err error
}

func (e InternalError) Error() string {
	if e.Msg != "" {
		return e.Msg
	}
	return "internal error"
}

func (e InternalError) Unwrap() error { return e.Err }

// MissingDataError marks a required field absent from the booking record or
// request. Optional fields never produce it; they render blank.
type MissingDataError struct {
	Field string
}

func (e MissingDataError) Error() string {
	if e.Field == "" {
		return "missing required data"
	}
	return fmt.Sprintf("missing required field: %s", e.Field)
}

// InvalidAddressError is returned before dispatch when the recipient fails
// syntactic validation.
type InvalidAddressError struct {
	Address string
	Err     error
}

func (e InvalidAddressError) Error() string {
	return fmt.Sprintf("invalid recipient email address %q", e.Address)
}

func (e InvalidAddressError) Unwrap() error { return e.Err }

// OversizedAttachmentError is returned before dispatch when the decoded
// attachment exceeds the configured ceiling.
type OversizedAttachmentError struct {
	Size  int64
	Limit int64
}

func (e OversizedAttachmentError) Error() string {
	return fmt.Sprintf("attachment size %.2f MB exceeds limit of %.2f MB",
		float64(e.Size)/(1<<20), float64(e.Limit)/(1<<20))
}

// RenderTimeoutError reports that fonts/images were not ready in time.
// Rendering continues with whatever loaded; it is logged, not returned.
type RenderTimeoutError struct {
	Pending int
	Err     error
}

func (e RenderTimeoutError) Error() string {
	return fmt.Sprintf("asset wait timed out with %d asset(s) pending", e.Pending)
}

func (e RenderTimeoutError) Unwrap() error { return e.Err }

// ProviderError wraps a failed call to the email provider. No retry is done.
type ProviderError struct {
	Provider string
	Status   int
	Err      error
}

func (e ProviderError) Error() string {
	msg := "email provider error"
	if e.Provider != "" {
		msg = e.Provider + " error"
	}
	if e.Status != 0 {
		msg = fmt.Sprintf("%s (status %d)", msg, e.Status)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e ProviderError) Unwrap() error { return e.Err }

func IsNotFound(err error) bool {
	var target NotFoundError
	return errors.As(err, &target)
}

func IsValidation(err error) bool {
	var target ValidationError
	return errors.As(err, &target)
}

func IsInternal(err error) bool {
	var target InternalError
	return errors.As(err, &target)
}

func IsMissingData(err error) bool {
	var target MissingDataError
	return errors.As(err, &target)
}

func IsInvalidAddress(err error) bool {
	var target InvalidAddressError
	return errors.As(err, &target)
}

func IsOversizedAttachment(err error) bool {
	var target OversizedAttachmentError
	return errors.As(err, &target)
}

func IsRenderTimeout(err error) bool {
	var target RenderTimeoutError
	return errors.As(err, &target)
}

func IsProvider(err error) bool {
	var target ProviderError
	return errors.As(err, &target)
}
